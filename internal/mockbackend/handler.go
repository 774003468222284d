package mockbackend

import (
	"bytes"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
)

const maxImageBytes = 16 << 20

// Handler serves the coaching backend contract from memory.
type Handler struct {
	store  *Store
	logger *slog.Logger
}

// NewHandler constructs the mock backend handler.
func NewHandler(store *Store, logger *slog.Logger) *Handler {
	return &Handler{
		store:  store,
		logger: logger.With("component", "mockbackend.handler"),
	}
}

// GetProfile returns the stored profile, or an empty object when none exists.
func (h *Handler) GetProfile(c *gin.Context) {
	profile, ok := h.store.Profile()
	if !ok {
		c.JSON(http.StatusOK, gin.H{})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile replaces the stored profile.
func (h *Handler) SaveProfile(c *gin.Context) {
	var profile coach.Profile
	if err := c.ShouldBindJSON(&profile); err != nil {
		fail(c, badRequest("Invalid profile payload", err))
		return
	}
	h.store.SaveProfile(profile)
	h.logger.Info("profile saved", "present", profile.Present())
	c.JSON(http.StatusOK, gin.H{"status": "ok", "message": "Profile saved successfully"})
}

// MealPlan returns the canned plan.
func (h *Handler) MealPlan(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.MealPlan())
}

// AnalyzeImage accepts a multipart "image" upload and returns a mock nutrition estimate.
func (h *Handler) AnalyzeImage(c *gin.Context) {
	header, err := c.FormFile("image")
	if err != nil {
		fail(c, badRequest("No image uploaded", err))
		return
	}
	if header.Filename == "" {
		fail(c, badRequest("Empty filename", nil))
		return
	}
	file, err := header.Open()
	if err != nil {
		fail(c, serverError("Could not read upload", err))
		return
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, maxImageBytes))
	if err != nil {
		fail(c, serverError("Could not read upload", err))
		return
	}

	width, height := 0, 0
	if cfg, _, err := image.DecodeConfig(bytes.NewReader(data)); err == nil {
		width, height = cfg.Width, cfg.Height
	}
	h.logger.Info("image analyzed", "filename", header.Filename, "bytes", len(data), "width", width, "height", height)
	c.JSON(http.StatusOK, mockAnalysis(width, height))
}

type chatRequest struct {
	Message string `json:"message"`
}

// Chat answers with the canned assistant reply.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, badRequest("Invalid JSON body", err))
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		fail(c, badRequest("No message provided", nil))
		return
	}
	c.JSON(http.StatusOK, gin.H{"reply": chatFallbackReply, "source": "fallback"})
}

// Health reports readiness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, coach.HealthStatus{Status: "healthy", AIConfigured: false, Database: "memory"})
}

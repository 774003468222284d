package mockbackend

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-healthcoach/internal/infra/config"
)

// NewRouter wires up the backend routes under /api and returns a configured server.
func NewRouter(cfg *config.Config, handler *Handler) *http.Server {
	return &http.Server{
		Addr:           cfg.MockBackend.Address,
		Handler:        NewEngine(cfg.MockBackend.AllowedOrigins, handler),
		ReadTimeout:    cfg.MockBackend.ReadTimeout,
		WriteTimeout:   cfg.MockBackend.WriteTimeout,
		MaxHeaderBytes: 1 << 20,
	}
}

// NewEngine builds the gin engine; tests mount it on httptest servers.
func NewEngine(allowedOrigins []string, handler *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)

	router := gin.New()
	router.MaxMultipartMemory = maxImageBytes
	router.Use(
		gin.Recovery(),
		requestLogger(handler.logger),
		corsMiddleware(allowedOrigins),
		errorHandlingMiddleware(handler.logger),
	)

	api := router.Group("/api")
	{
		api.GET("/profile", handler.GetProfile)
		api.POST("/profile", handler.SaveProfile)
		api.GET("/mealplan", handler.MealPlan)
		api.POST("/analyze_image", handler.AnalyzeImage)
		api.POST("/chat", handler.Chat)
		api.GET("/health", handler.Health)
	}

	return router
}

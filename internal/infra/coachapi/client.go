package coachapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"strings"
	"sync/atomic"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"

	"github.com/yanqian/ai-healthcoach/internal/domain/coach"
	apperrors "github.com/yanqian/ai-healthcoach/pkg/errors"
)

const (
	defaultBaseURL = "http://localhost:5000/api"
	maxBodyBytes   = 8 << 20
)

// StatusError is the cause of a server_error: a non-success HTTP response.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("status=%d body=%s", e.StatusCode, e.Body)
}

// Client talks to the coaching backend. Every call is a single exchange without retries.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	revision   atomic.Uint64
}

// NewClient builds a backend client.
func NewClient(baseURL string, timeout time.Duration, logger *slog.Logger) *Client {
	url := strings.TrimSpace(baseURL)
	if url == "" {
		url = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(url, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger.With("component", "coachapi.client"),
	}
}

// BaseURL returns the normalized backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ProfileRevision counts successful profile writes in this session.
func (c *Client) ProfileRevision() uint64 {
	return c.revision.Load()
}

// GetProfile reads the stored profile. The bool is false when no profile exists yet.
func (c *Client) GetProfile(ctx context.Context) (coach.Profile, bool, error) {
	body, err := c.do(ctx, http.MethodGet, "/profile", nil, "")
	if err != nil {
		return coach.Profile{}, false, err
	}
	if len(bytes.TrimSpace(body)) == 0 || string(bytes.TrimSpace(body)) == "null" {
		return coach.Profile{}, false, nil
	}
	var profile coach.Profile
	if err := decode(body, &profile); err != nil {
		return coach.Profile{}, false, err
	}
	return profile, profile.Present(), nil
}

// PutProfile stores the profile and returns the backend confirmation.
func (c *Client) PutProfile(ctx context.Context, profile coach.Profile) (coach.SaveResult, error) {
	payload, err := json.Marshal(profile)
	if err != nil {
		return coach.SaveResult{}, fmt.Errorf("encode profile: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/profile", bytes.NewReader(payload), "application/json")
	if err != nil {
		return coach.SaveResult{}, err
	}

	var confirmation struct {
		Status  string `json:"status"`
		Message string `json:"message"`
	}
	if err := decode(body, &confirmation); err != nil {
		return coach.SaveResult{}, err
	}
	result := coach.SaveResult{Status: confirmation.Status, Message: confirmation.Message}

	var echoed coach.Profile
	if err := json.Unmarshal(body, &echoed); err == nil && echoed.Present() {
		result.Profile = &echoed
	}
	c.revision.Add(1)
	return result, nil
}

// GetMealPlan fetches the plan generated for the current profile.
func (c *Client) GetMealPlan(ctx context.Context) (coach.MealPlan, error) {
	body, err := c.do(ctx, http.MethodGet, "/mealplan", nil, "")
	if err != nil {
		return coach.MealPlan{}, err
	}
	var plan coach.MealPlan
	if err := decode(body, &plan); err != nil {
		return coach.MealPlan{}, err
	}
	return plan, nil
}

// AnalyzeImage uploads an image as the multipart field "image".
func (c *Client) AnalyzeImage(ctx context.Context, file coach.ImageFile) (coach.AnalysisResult, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	name := strings.TrimSpace(file.Name)
	if name == "" {
		name = "image"
	}
	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="image"; filename="%s"`, quoteEscaper.Replace(name)))
	header.Set("Content-Type", mimetype.Detect(file.Data).String())
	part, err := writer.CreatePart(header)
	if err != nil {
		return nil, fmt.Errorf("build image part: %w", err)
	}
	if _, err := part.Write(file.Data); err != nil {
		return nil, fmt.Errorf("write image part: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	body, err := c.do(ctx, http.MethodPost, "/analyze_image", &buf, writer.FormDataContentType())
	if err != nil {
		return nil, err
	}
	var result coach.AnalysisResult
	if err := decode(body, &result); err != nil {
		return nil, err
	}
	if result == nil {
		return nil, apperrors.Wrap(apperrors.CodeValidation, "analysis response was not an object", nil)
	}
	return result, nil
}

// SendChatMessage posts one message. A response without a usable reply field is not an
// error: the raw body is returned for display.
func (c *Client) SendChatMessage(ctx context.Context, message string) (coach.ChatReply, error) {
	payload, err := json.Marshal(map[string]string{"message": message})
	if err != nil {
		return coach.ChatReply{}, fmt.Errorf("encode chat message: %w", err)
	}
	body, err := c.do(ctx, http.MethodPost, "/chat", bytes.NewReader(payload), "application/json")
	if err != nil {
		return coach.ChatReply{}, withFallbackReply(err)
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, body); err != nil {
		return coach.ChatReply{}, apperrors.Wrap(apperrors.CodeValidation, "chat response is not json", err)
	}
	reply := coach.ChatReply{Raw: json.RawMessage(compact.Bytes())}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err == nil {
		var text string
		if err := json.Unmarshal(fields["reply"], &text); err == nil && text != "" {
			reply.Reply = text
			reply.HasReply = true
		}
	}
	if !reply.HasReply {
		c.logger.Warn("chat response missing reply", "code", apperrors.CodeValidation, "body", truncate(compact.String(), 256))
	}
	return reply, nil
}

// withFallbackReply keeps the user-facing reply a failing chat response may carry.
// The error stays a server_error.
func withFallbackReply(err error) error {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return err
	}
	var body struct {
		Reply string `json:"reply"`
	}
	if json.Unmarshal([]byte(statusErr.Body), &body) != nil || strings.TrimSpace(body.Reply) == "" {
		return err
	}
	return apperrors.Wrap(apperrors.CodeServer, "backend returned a fallback reply", &coach.ReplyError{
		Reply: body.Reply,
		Err:   statusErr,
	})
}

// Health probes the backend status endpoint.
func (c *Client) Health(ctx context.Context) (coach.HealthStatus, error) {
	body, err := c.do(ctx, http.MethodGet, "/health", nil, "")
	if err != nil {
		return coach.HealthStatus{}, err
	}
	var status coach.HealthStatus
	if err := decode(body, &status); err != nil {
		return coach.HealthStatus{}, err
	}
	return status, nil
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s request: %w", path, err)
	}
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("backend request failed", "method", method, "path", path, "request_id", requestID, "error", err)
		return nil, apperrors.Wrap(apperrors.CodeNetwork, "backend unreachable", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeNetwork, "read backend response", err)
	}
	c.logger.Info("backend request", "method", method, "path", path, "status", resp.StatusCode, "request_id", requestID, "latency_ms", time.Since(start).Milliseconds())

	if resp.StatusCode >= 300 {
		return nil, apperrors.Wrap(apperrors.CodeServer, "backend returned an error", &StatusError{
			StatusCode: resp.StatusCode,
			Body:       truncate(string(payload), 4<<10),
		})
	}
	return payload, nil
}

func decode(body []byte, out any) error {
	if err := json.Unmarshal(body, out); err != nil {
		return apperrors.Wrap(apperrors.CodeValidation, "unexpected response shape", err)
	}
	return nil
}

func truncate(value string, limit int) string {
	if len(value) <= limit {
		return value
	}
	return value[:limit]
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

package mockbackend

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// apiError is a failed request rendered in the backend's {"error": ...} body shape.
type apiError struct {
	status  int
	message string
	cause   error
}

func (e *apiError) Error() string {
	if e.cause != nil {
		return e.message + ": " + e.cause.Error()
	}
	return e.message
}

func (e *apiError) Unwrap() error {
	return e.cause
}

// body mirrors the Flask responses: a user-facing "error", plus "detail" on server faults.
func (e *apiError) body() gin.H {
	h := gin.H{"error": e.message}
	if e.status >= http.StatusInternalServerError && e.cause != nil {
		h["detail"] = e.cause.Error()
	}
	return h
}

func badRequest(message string, cause error) *apiError {
	return &apiError{status: http.StatusBadRequest, message: message, cause: cause}
}

func serverError(message string, cause error) *apiError {
	return &apiError{status: http.StatusInternalServerError, message: message, cause: cause}
}

func toAPIError(err error) *apiError {
	var apiErr *apiError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return serverError("Internal server error", err)
}

func fail(c *gin.Context, err *apiError) {
	_ = c.Error(err)
	c.Abort()
}

// Package middleware holds the Gin middleware the HTTP surface applies
// across all routes: Prometheus request metrics and a single
// error-to-JSON responder consolidating the teacher's inline
// c.JSON(status, gin.H{"error": ...}) calls into one place, the Go
// analogue of the original Rust service's handle_rejection.
package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kurenaio/ayt-dictionary/internal/catalogue"
)

// APIError pairs an HTTP status with a message; handlers record it with
// c.Error and ErrorHandler writes it out.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string { return e.Message }

// NotFound builds the catalogue.ErrNotFound response used by the term
// GET/PUT/DELETE handlers (SPEC_FULL.md §5's restored 404 semantics).
func NotFound(message string) *APIError {
	return &APIError{Status: http.StatusNotFound, Message: message}
}

func BadRequest(message string) *APIError {
	return &APIError{Status: http.StatusBadRequest, Message: message}
}

// ErrorHandler drains gin.Context errors recorded via c.Error and
// writes the last one as a {"error": "..."} JSON envelope, in the
// manner of main.rs's handle_rejection: an APIError keeps its own
// status (404 or 400), catalogue.ErrNotFound maps to 404, and any other
// error to 500. Handlers call c.Error(err) and return rather than
// writing the response directly.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err

		var apiErr *APIError
		switch {
		case errors.As(err, &apiErr):
			c.JSON(apiErr.Status, gin.H{"error": apiErr.Message})
		case errors.Is(err, catalogue.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "term id does not exist"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
	}
}

// NoRouteHandler answers unmatched routes and methods with the same
// JSON envelope other errors use, the Gin equivalent of warp's
// NOT_FOUND / METHOD_NOT_ALLOWED rejections.
func NoRouteHandler(c *gin.Context) {
	c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
}

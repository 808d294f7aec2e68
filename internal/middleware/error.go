package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/seniorcare/admin-api/internal/handler"
)

// ErrorHandler logs every error attached to the context and renders the
// last one when no handler has written a response yet. Handlers that call
// RespondError render their own body, so this only fills the gap.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		requestID := c.GetString(ContextRequestID)
		for _, e := range c.Errors {
			log.Error().
				Err(e.Err).
				Str("request_id", requestID).
				Str("method", c.Request.Method).
				Str("path", c.Request.URL.Path).
				Msg("request error")
		}

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		status := http.StatusInternalServerError
		message := "internal server error"
		if sc, ok := lastErr.Err.(interface{ StatusCode() int }); ok {
			status = sc.StatusCode()
			message = lastErr.Error()
		}

		c.JSON(status, handler.NewErrorResponse(message))
	}
}

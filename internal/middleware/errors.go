package middleware

import (
	"log/slog"
	"net/http"

	"github.com/14kear/csi-portal/internal/apperr"
	sl "github.com/14kear/sso-prettyslog/slogpretty/errors"
	"github.com/gin-gonic/gin"
)

// ErrorHandler turns the last error attached to the context into the JSON error envelope.
// With hideInternal set, messages of internal errors are replaced by a generic text.
func ErrorHandler(log *slog.Logger, hideInternal bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		kind := apperr.KindOf(err)
		status := kind.HTTPStatus()

		message := apperr.MessageOf(err)
		if !kind.Exposed() {
			if hideInternal {
				message = http.StatusText(status)
			} else {
				message = err.Error()
			}
		}

		if status >= http.StatusInternalServerError {
			log.Error("request failed",
				slog.String("method", c.Request.Method),
				slog.String("path", c.Request.URL.Path),
				sl.Err(err),
			)
		} else {
			log.Debug("request rejected",
				slog.String("path", c.Request.URL.Path),
				slog.String("code", kind.Code()),
				sl.Err(err),
			)
		}

		c.AbortWithStatusJSON(status, gin.H{
			"success": false,
			"error": gin.H{
				"code":    kind.Code(),
				"message": message,
			},
		})
	}
}

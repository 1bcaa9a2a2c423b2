package middleware

import (
	"context"
	"strconv"
	"strings"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/gin-gonic/gin"
)

type AuditRecorder interface {
	Record(ctx context.Context, entry *entity.Log)
}

// Audit writes one audit row per successful state-changing request.
// Recording errors never reach the caller.
func Audit(recorder AuditRecorder, apiPrefix string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if safeMethod(c.Request.Method) || len(c.Errors) > 0 {
			return
		}
		status := c.Writer.Status()
		if status < 200 || status >= 300 {
			return
		}

		entry := &entity.Log{
			Action: "http." + strings.ToLower(c.Request.Method),
			Entity: routeEntity(c.FullPath(), apiPrefix),
			Method: c.Request.Method,
			Path:   c.Request.URL.Path,
			Status: status,
			IP:     c.ClientIP(),
		}
		if actor, ok := ActorFrom(c); ok {
			uid := actor.ID
			entry.UserID = &uid
		}
		if id, err := strconv.ParseInt(c.Param("id"), 10, 64); err == nil {
			entry.EntityID = &id
		}

		recorder.Record(context.WithoutCancel(c.Request.Context()), entry)
	}
}

// routeEntity returns the first path segment after prefix, e.g. "surveys" for /api/v1/surveys/:id.
func routeEntity(route, prefix string) string {
	rest := strings.TrimPrefix(route, prefix)
	rest = strings.TrimPrefix(rest, "/")
	if rest == "" {
		return "unknown"
	}
	if i := strings.IndexByte(rest, '/'); i >= 0 {
		rest = rest[:i]
	}
	return rest
}

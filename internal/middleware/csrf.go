package middleware

import (
	"net/http"
	"strconv"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/csrf"
	"github.com/gin-gonic/gin"
)

// CallerKey identifies who a CSRF token belongs to: the user when authenticated, the client IP otherwise.
func CallerKey(c *gin.Context) string {
	if actor, ok := ActorFrom(c); ok {
		return "user:" + strconv.FormatInt(actor.ID, 10)
	}
	return "ip:" + c.ClientIP()
}

// CSRF requires a valid X-CSRF-Token on unsafe methods. Routes listed in exempt (by route pattern) are skipped.
func CSRF(manager *csrf.Manager, exempt ...string) gin.HandlerFunc {
	skip := make(map[string]struct{}, len(exempt))
	for _, route := range exempt {
		skip[route] = struct{}{}
	}

	return func(c *gin.Context) {
		if safeMethod(c.Request.Method) {
			c.Next()
			return
		}
		if _, ok := skip[c.FullPath()]; ok {
			c.Next()
			return
		}

		ok, err := manager.Validate(c.Request.Context(), CallerKey(c), c.GetHeader(csrf.HeaderName))
		if err != nil {
			abort(c, apperr.E(apperr.KindInternal, "csrf check failed", err))
			return
		}
		if !ok {
			abort(c, apperr.Authorization("invalid csrf token"))
			return
		}
		c.Next()
	}
}

func safeMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

package middleware

import (
	"mime"
	"net/http"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/gin-gonic/gin"
)

const (
	mimeJSON      = "application/json"
	mimeMultipart = "multipart/form-data"
)

// BodyLimit caps request bodies at limit bytes. Multipart uploads carry their own limit.
func BodyLimit(limit int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limit > 0 && c.Request.Body != nil && mediaType(c) != mimeMultipart {
			c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, limit)
		}
		c.Next()
	}
}

// RequireContentType rejects unsafe requests carrying a body of any other media type.
func RequireContentType(allowed ...string) gin.HandlerFunc {
	if len(allowed) == 0 {
		allowed = []string{mimeJSON, mimeMultipart}
	}
	return func(c *gin.Context) {
		if safeMethod(c.Request.Method) || c.Request.ContentLength == 0 {
			c.Next()
			return
		}
		mt := mediaType(c)
		for _, a := range allowed {
			if mt == a {
				c.Next()
				return
			}
		}
		abort(c, apperr.New(apperr.KindUnsupportedMediaType, "unsupported content type"))
	}
}

func mediaType(c *gin.Context) string {
	mt, _, err := mime.ParseMediaType(c.GetHeader("Content-Type"))
	if err != nil {
		return ""
	}
	return mt
}

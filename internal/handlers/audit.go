package handlers

import (
	"net/http"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/gin-gonic/gin"
)

type AuditHandler struct {
	audit *services.Audit
}

func NewAuditHandler(audit *services.Audit) *AuditHandler {
	return &AuditHandler{audit: audit}
}

// List returns audit entries filtered by user_id, entity and an RFC3339 from/to window.
func (h *AuditHandler) List(c *gin.Context) {
	userID, ok := optionalID(c, "user_id")
	if !ok {
		return
	}
	from, ok := optionalTime(c, "from")
	if !ok {
		return
	}
	to, ok := optionalTime(c, "to")
	if !ok {
		return
	}
	page, ok := pageQuery(c)
	if !ok {
		return
	}

	logs, err := h.audit.List(c.Request.Context(), entity.LogFilter{
		UserID: userID,
		Entity: c.Query("entity"),
		From:   from,
		To:     to,
		Page:   page,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, logs)
}

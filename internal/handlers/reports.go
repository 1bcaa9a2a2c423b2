package handlers

import (
	"fmt"
	"net/http"

	"github.com/14kear/csi-portal/internal/export"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/gin-gonic/gin"
)

type ReportsHandler struct {
	reports *services.Reports
}

func NewReportsHandler(reports *services.Reports) *ReportsHandler {
	return &ReportsHandler{reports: reports}
}

func (h *ReportsHandler) Summary(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	summary, err := h.reports.Summary(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, summary)
}

// Export streams the report as an attachment. The format defaults to csv.
func (h *ReportsHandler) Export(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	file, err := h.reports.Export(c.Request.Context(), id, c.DefaultQuery("format", string(export.FormatCSV)))
	if err != nil {
		fail(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, file.Name))
	c.Data(http.StatusOK, file.ContentType, file.Data)
}

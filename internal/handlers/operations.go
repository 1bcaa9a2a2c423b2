package handlers

import (
	"net/http"
	"time"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/gin-gonic/gin"
)

type OperationsHandler struct {
	operations *services.Operations
}

type CreateOperationRequest struct {
	SurveyID     int64                `json:"survey_id" binding:"required,gt=0"`
	Type         entity.OperationType `json:"type" binding:"required,oneof=blast reminder"`
	Frequency    entity.Frequency     `json:"frequency" binding:"required,oneof=once daily weekly monthly"`
	Subject      string               `json:"subject" binding:"required,max=300"`
	TemplateBody string               `json:"template_body" binding:"max=20000"`
	FirstRunAt   time.Time            `json:"first_run_at" binding:"required"`
}

func NewOperationsHandler(operations *services.Operations) *OperationsHandler {
	return &OperationsHandler{operations: operations}
}

func (h *OperationsHandler) Create(c *gin.Context) {
	var req CreateOperationRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	op, err := h.operations.Create(c.Request.Context(), actor, services.OperationInput{
		SurveyID:     req.SurveyID,
		Type:         req.Type,
		Frequency:    req.Frequency,
		Subject:      req.Subject,
		TemplateBody: req.TemplateBody,
		FirstRunAt:   req.FirstRunAt,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, op)
}

func (h *OperationsHandler) List(c *gin.Context) {
	surveyID, ok := optionalID(c, "survey_id")
	if !ok {
		return
	}

	ops, err := h.operations.List(c.Request.Context(), surveyID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, ops)
}

func (h *OperationsHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	op, err := h.operations.Get(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, op)
}

func (h *OperationsHandler) Cancel(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.operations.Cancel(c.Request.Context(), actor, id); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"id": id, "status": entity.OperationCancelled})
}

func (h *OperationsHandler) RunNow(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	op, err := h.operations.RunNow(c.Request.Context(), actor, id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, op)
}

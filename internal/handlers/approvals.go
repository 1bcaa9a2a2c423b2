package handlers

import (
	"net/http"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/gin-gonic/gin"
)

type ApprovalsHandler struct {
	approvals *services.Approvals
}

type TakeoutRequest struct {
	ID     int64  `json:"question_response_id" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"required,takeout_reason"`
}

type ApproveRequest struct {
	ID     int64  `json:"question_response_id" binding:"required,gt=0"`
	Reason string `json:"reason" binding:"omitempty,takeout_reason"`
}

type CancelProposalRequest struct {
	ID int64 `json:"question_response_id" binding:"required,gt=0"`
}

type BulkApproveRequest struct {
	IDs    []int64 `json:"question_response_ids" binding:"required,min=1,max=500,dive,gt=0"`
	Reason string  `json:"reason" binding:"omitempty,takeout_reason"`
}

func NewApprovalsHandler(approvals *services.Approvals) *ApprovalsHandler {
	return &ApprovalsHandler{approvals: approvals}
}

func (h *ApprovalsHandler) Propose(c *gin.Context) {
	var req TakeoutRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.approvals.Propose(c.Request.Context(), actor, req.ID, req.Reason); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"question_response_id": req.ID, "status": entity.TakeoutProposed})
}

func (h *ApprovalsHandler) Approve(c *gin.Context) {
	var req ApproveRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.approvals.Approve(c.Request.Context(), actor, req.ID, req.Reason); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"question_response_id": req.ID, "status": entity.TakeoutTakenOut})
}

func (h *ApprovalsHandler) Reject(c *gin.Context) {
	var req TakeoutRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.approvals.Reject(c.Request.Context(), actor, req.ID, req.Reason); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"question_response_id": req.ID, "status": entity.TakeoutRejected})
}

func (h *ApprovalsHandler) Cancel(c *gin.Context) {
	var req CancelProposalRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.approvals.Cancel(c.Request.Context(), actor, req.ID); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"question_response_id": req.ID, "status": entity.TakeoutActive})
}

func (h *ApprovalsHandler) BulkApprove(c *gin.Context) {
	var req BulkApproveRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	results, err := h.approvals.BulkApprove(c.Request.Context(), actor, req.IDs, req.Reason)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, results)
}

func (h *ApprovalsHandler) Pending(c *gin.Context) {
	surveyID, ok := optionalID(c, "survey_id")
	if !ok {
		return
	}

	pending, err := h.approvals.Pending(c.Request.Context(), surveyID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, pending)
}

func (h *ApprovalsHandler) History(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	history, err := h.approvals.History(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, history)
}

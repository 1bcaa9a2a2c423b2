package handlers

import (
	"net/http"

	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/gin-gonic/gin"
)

type OrgHandler struct {
	org *services.Org
}

type CreateOrgUnitRequest struct {
	Name     string `json:"name" binding:"required,max=200"`
	Code     string `json:"code" binding:"omitempty,max=50"`
	ParentID *int64 `json:"parent_id" binding:"omitempty,gt=0"`
}

type ApplicationDepartmentRequest struct {
	ApplicationID int64 `json:"application_id" binding:"required,gt=0"`
	DepartmentID  int64 `json:"department_id" binding:"required,gt=0"`
}

type FunctionApplicationRequest struct {
	FunctionID    int64 `json:"function_id" binding:"required,gt=0"`
	ApplicationID int64 `json:"application_id" binding:"required,gt=0"`
}

func NewOrgHandler(org *services.Org) *OrgHandler {
	return &OrgHandler{org: org}
}

func (h *OrgHandler) CreateUnit(kind entity.OrgKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateOrgUnitRequest
		if !bindJSON(c, &req) {
			return
		}
		actor, ok := currentActor(c)
		if !ok {
			return
		}

		id, err := h.org.CreateUnit(c.Request.Context(), actor, entity.OrgUnit{
			Kind:     kind,
			ParentID: req.ParentID,
			Code:     req.Code,
			Name:     req.Name,
		})
		if err != nil {
			fail(c, err)
			return
		}

		respond(c, http.StatusCreated, gin.H{"id": id})
	}
}

func (h *OrgHandler) ListUnits(kind entity.OrgKind) gin.HandlerFunc {
	return func(c *gin.Context) {
		parentID, ok := optionalID(c, "parent_id")
		if !ok {
			return
		}

		units, err := h.org.ListUnits(c.Request.Context(), kind, parentID)
		if err != nil {
			fail(c, err)
			return
		}

		respond(c, http.StatusOK, units)
	}
}

func (h *OrgHandler) DeleteUnit(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.org.DeleteUnit(c.Request.Context(), actor, entity.OrgKind(c.Param("kind")), id); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"id": id})
}

func (h *OrgHandler) MapApplicationDepartment(c *gin.Context) {
	var req ApplicationDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.org.MapApplicationDepartment(c.Request.Context(), req.ApplicationID, req.DepartmentID); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, req)
}

func (h *OrgHandler) UnmapApplicationDepartment(c *gin.Context) {
	var req ApplicationDepartmentRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.org.UnmapApplicationDepartment(c.Request.Context(), req.ApplicationID, req.DepartmentID); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, req)
}

func (h *OrgHandler) ApplicationsByDepartment(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	apps, err := h.org.ApplicationsByDepartment(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, apps)
}

func (h *OrgHandler) MapFunctionApplication(c *gin.Context) {
	var req FunctionApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.org.MapFunctionApplication(c.Request.Context(), req.FunctionID, req.ApplicationID); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, req)
}

func (h *OrgHandler) UnmapFunctionApplication(c *gin.Context) {
	var req FunctionApplicationRequest
	if !bindJSON(c, &req) {
		return
	}

	if err := h.org.UnmapFunctionApplication(c.Request.Context(), req.FunctionID, req.ApplicationID); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, req)
}

func (h *OrgHandler) ApplicationsByFunction(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	apps, err := h.org.ApplicationsByFunction(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, apps)
}

package handlers

import (
	"net/http"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/gin-gonic/gin"
)

type UsersHandler struct {
	users *services.Users
}

type CreateUserRequest struct {
	Email        string      `json:"email" binding:"required,email"`
	Name         string      `json:"name" binding:"required,max=200"`
	Password     string      `json:"password" binding:"required,min=8,max=128"`
	Role         entity.Role `json:"role" binding:"required,user_role"`
	DepartmentID *int64      `json:"department_id" binding:"omitempty,gt=0"`
}

type UpdateUserRequest struct {
	Name         *string      `json:"name" binding:"omitempty,min=1,max=200"`
	Role         *entity.Role `json:"role" binding:"omitempty,user_role"`
	DepartmentID *int64       `json:"department_id" binding:"omitempty,gt=0"`
	IsActive     *bool        `json:"is_active"`
	Password     string       `json:"password" binding:"omitempty,min=8,max=128"`
}

func NewUsersHandler(users *services.Users) *UsersHandler {
	return &UsersHandler{users: users}
}

func (h *UsersHandler) Create(c *gin.Context) {
	var req CreateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	id, err := h.users.CreateUser(c.Request.Context(), actor, services.CreateUserInput{
		Email:        req.Email,
		Name:         req.Name,
		Password:     req.Password,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusCreated, gin.H{"id": id})
}

func (h *UsersHandler) List(c *gin.Context) {
	role := entity.Role(c.Query("role"))
	if role != "" && !role.Valid() {
		fail(c, apperr.Validation("unknown role"))
		return
	}

	users, err := h.users.ListUsers(c.Request.Context(), role)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, users)
}

func (h *UsersHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), id)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, user)
}

func (h *UsersHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserRequest
	if !bindJSON(c, &req) {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := h.users.UpdateUser(c.Request.Context(), actor, id, services.UpdateUserInput{
		Name:         req.Name,
		Role:         req.Role,
		DepartmentID: req.DepartmentID,
		IsActive:     req.IsActive,
		Password:     req.Password,
	})
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, user)
}

func (h *UsersHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		return
	}
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	if err := h.users.DeleteUser(c.Request.Context(), actor, id); err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"id": id})
}

package handlers

import (
	"net/http"

	"github.com/14kear/csi-portal/internal/csrf"
	"github.com/14kear/csi-portal/internal/middleware"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	users *services.Users
	csrf  *csrf.Manager
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func NewAuthHandler(users *services.Users, csrfManager *csrf.Manager) *AuthHandler {
	return &AuthHandler{users: users, csrf: csrfManager}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	token, user, err := h.users.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, gin.H{"access_token": token, "user": user})
}

func (h *AuthHandler) Me(c *gin.Context) {
	actor, ok := currentActor(c)
	if !ok {
		return
	}

	user, err := h.users.GetUser(c.Request.Context(), actor.ID)
	if err != nil {
		fail(c, err)
		return
	}

	respond(c, http.StatusOK, user)
}

// CSRFToken issues a token bound to the caller. Authenticated callers get a token bound to their user id.
func (h *AuthHandler) CSRFToken(c *gin.Context) {
	token, err := h.csrf.Issue(c.Request.Context(), middleware.CallerKey(c))
	if err != nil {
		fail(c, err)
		return
	}

	c.Header(csrf.HeaderName, token)
	respond(c, http.StatusOK, gin.H{"csrf_token": token})
}

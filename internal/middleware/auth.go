package middleware

import (
	"context"
	"strings"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/lib/jwt"
	"github.com/gin-gonic/gin"
)

const actorKey = "actor"

// UserProvider loads the current state of an account.
type UserProvider interface {
	UserByID(ctx context.Context, id int64) (entity.User, error)
}

type AuthMiddleware struct {
	secret string
	users  UserProvider
}

func NewAuthMiddleware(secret string, users UserProvider) *AuthMiddleware {
	return &AuthMiddleware{secret: secret, users: users}
}

// Middleware rejects requests without a valid bearer access token or whose account
// was removed or disabled after the token was issued.
func (m *AuthMiddleware) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		accessToken := extractTokenFromHeader(c.GetHeader("Authorization"))
		if accessToken == "" {
			abort(c, apperr.Authentication("missing access token"))
			return
		}

		actor, err := m.authenticate(c.Request.Context(), accessToken)
		if err != nil {
			abort(c, err)
			return
		}

		c.Set(actorKey, actor)
		c.Next()
	}
}

// Optional sets the actor when a valid token is present and lets anonymous callers through.
func (m *AuthMiddleware) Optional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if accessToken := extractTokenFromHeader(c.GetHeader("Authorization")); accessToken != "" {
			if actor, err := m.authenticate(c.Request.Context(), accessToken); err == nil {
				c.Set(actorKey, actor)
			}
		}
		c.Next()
	}
}

// authenticate resolves the token to the stored account. The stored role wins over the claim.
func (m *AuthMiddleware) authenticate(ctx context.Context, accessToken string) (entity.Actor, error) {
	claims, err := jwt.ParseAccessToken(accessToken, m.secret)
	if err != nil {
		return entity.Actor{}, apperr.E(apperr.KindAuthentication, "invalid access token", err)
	}

	user, err := m.users.UserByID(ctx, claims.ID)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindNotFound {
			return entity.Actor{}, apperr.E(apperr.KindAuthentication, "account no longer exists", err)
		}
		return entity.Actor{}, err
	}
	if !user.IsActive {
		return entity.Actor{}, apperr.Authentication("account is disabled")
	}

	return entity.Actor{ID: user.ID, Email: user.Email, Role: user.Role}, nil
}

// RequireRole lets through only actors holding one of roles. It must run after Middleware.
func RequireRole(roles ...entity.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			abort(c, apperr.Authentication("unauthorized"))
			return
		}
		if !actor.HasRole(roles...) {
			abort(c, apperr.Authorization("insufficient role"))
			return
		}
		c.Next()
	}
}

func ActorFrom(c *gin.Context) (entity.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return entity.Actor{}, false
	}
	actor, ok := v.(entity.Actor)
	return actor, ok
}

func SetActor(c *gin.Context, actor entity.Actor) {
	c.Set(actorKey, actor)
}

func abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

func extractTokenFromHeader(header string) string {
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return ""
	}
	return parts[1]
}

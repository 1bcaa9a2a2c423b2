package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/14kear/csi-portal/internal/apperr"
	"github.com/14kear/csi-portal/internal/csrf"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/lib/jwt"
	"github.com/14kear/csi-portal/utils"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

type envelope struct {
	Success bool `json:"success"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func newEngine(hideInternal bool) *gin.Engine {
	r := gin.New()
	r.Use(ErrorHandler(utils.Discard(), hideInternal))
	return r
}

type userTable map[int64]entity.User

func (u userTable) UserByID(_ context.Context, id int64) (entity.User, error) {
	user, ok := u[id]
	if !ok {
		return entity.User{}, apperr.NotFound("user not found")
	}
	return user, nil
}

var accounts = userTable{
	7: {ID: 7, Email: "lead@example.com", Role: entity.RoleITLead, IsActive: true},
	8: {ID: 8, Email: "admin@example.com", Role: entity.RoleAdmin, IsActive: true},
	9: {ID: 9, Email: "gone@example.com", Role: entity.RoleAdmin, IsActive: false},
}

func bearer(t *testing.T, id int64, role entity.Role) string {
	t.Helper()
	token, err := jwt.NewAccessToken(entity.User{ID: id, Email: "lead@example.com", Role: role}, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}

func do(r http.Handler, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuth_MissingAndInvalidToken(t *testing.T) {
	r := newEngine(true)
	auth := NewAuthMiddleware(testSecret, accounts)
	r.GET("/me", auth.Middleware(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	env := decode(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "AUTHENTICATION_ERROR", env.Error.Code)

	w = do(r, http.MethodGet, "/me", "", map[string]string{"Authorization": "Bearer garbage"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_SetsActorAndChecksRole(t *testing.T) {
	r := newEngine(true)
	auth := NewAuthMiddleware(testSecret, accounts)
	r.GET("/me", auth.Middleware(), func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": actor.ID, "role": actor.Role})
	})
	r.GET("/admin", auth.Middleware(), RequireRole(entity.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodGet, "/me", "", map[string]string{"Authorization": bearer(t, 7, entity.RoleITLead)})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"id":7,"role":"it_lead"}`, w.Body.String())

	w = do(r, http.MethodGet, "/admin", "", map[string]string{"Authorization": bearer(t, 7, entity.RoleITLead)})
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "AUTHORIZATION_ERROR", decode(t, w).Error.Code)

	w = do(r, http.MethodGet, "/admin", "", map[string]string{"Authorization": bearer(t, 8, entity.RoleAdmin)})
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuth_StoredAccountStateWins(t *testing.T) {
	r := newEngine(true)
	auth := NewAuthMiddleware(testSecret, accounts)
	r.GET("/admin", auth.Middleware(), RequireRole(entity.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/optional", auth.Optional(), func(c *gin.Context) {
		_, ok := ActorFrom(c)
		c.JSON(http.StatusOK, gin.H{"authenticated": ok})
	})

	// demoted after the token was issued
	w := do(r, http.MethodGet, "/admin", "", map[string]string{"Authorization": bearer(t, 7, entity.RoleAdmin)})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodGet, "/admin", "", map[string]string{"Authorization": bearer(t, 9, entity.RoleAdmin)})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "account is disabled", decode(t, w).Error.Message)

	w = do(r, http.MethodGet, "/admin", "", map[string]string{"Authorization": bearer(t, 404, entity.RoleAdmin)})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "account no longer exists", decode(t, w).Error.Message)

	w = do(r, http.MethodGet, "/optional", "", map[string]string{"Authorization": bearer(t, 9, entity.RoleAdmin)})
	assert.JSONEq(t, `{"authenticated":false}`, w.Body.String())
}

func TestErrorHandler_Envelope(t *testing.T) {
	r := newEngine(true)
	r.GET("/missing", func(c *gin.Context) {
		_ = c.Error(apperr.NotFound("survey not found"))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(apperr.Database(errors.New("connection refused")))
	})

	w := do(r, http.MethodGet, "/missing", "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	env := decode(t, w)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
	assert.Equal(t, "survey not found", env.Error.Message)

	w = do(r, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	env = decode(t, w)
	assert.Equal(t, "DATABASE_ERROR", env.Error.Code)
	assert.NotContains(t, env.Error.Message, "connection refused")
}

func TestErrorHandler_ShowsInternalDetailsOutsideProd(t *testing.T) {
	r := newEngine(false)
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("nil pointer somewhere"))
	})

	w := do(r, http.MethodGet, "/boom", "", nil)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "nil pointer somewhere", decode(t, w).Error.Message)
}

type fakeRecorder struct {
	mu      sync.Mutex
	entries []*entity.Log
}

func (f *fakeRecorder) Record(_ context.Context, entry *entity.Log) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, entry)
}

func TestAudit_RecordsEverySuccessfulStateChange(t *testing.T) {
	rec := &fakeRecorder{}
	r := newEngine(true)
	api := r.Group("/api/v1", func(c *gin.Context) {
		SetActor(c, entity.Actor{ID: 3, Role: entity.RoleAdmin})
	}, Audit(rec, "/api/v1"))
	api.POST("/surveys", func(c *gin.Context) { c.Status(http.StatusCreated) })
	api.PUT("/surveys/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.GET("/surveys/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	api.DELETE("/surveys/:id", func(c *gin.Context) { _ = c.Error(apperr.Conflict("not deletable")) })
	api.PATCH("/surveys/:id/status", func(c *gin.Context) { c.Status(http.StatusBadRequest) })

	do(r, http.MethodPost, "/api/v1/surveys", `{}`, nil)
	do(r, http.MethodPut, "/api/v1/surveys/12", `{}`, nil)
	do(r, http.MethodGet, "/api/v1/surveys/12", "", nil)
	do(r, http.MethodDelete, "/api/v1/surveys/12", "", nil)
	do(r, http.MethodPatch, "/api/v1/surveys/12/status", `{}`, nil)

	require.Len(t, rec.entries, 2)

	first := rec.entries[0]
	assert.Equal(t, "http.post", first.Action)
	assert.Equal(t, "surveys", first.Entity)
	assert.Equal(t, http.StatusCreated, first.Status)
	require.NotNil(t, first.UserID)
	assert.Equal(t, int64(3), *first.UserID)
	assert.Nil(t, first.EntityID)

	second := rec.entries[1]
	assert.Equal(t, http.MethodPut, second.Method)
	assert.Equal(t, "/api/v1/surveys/12", second.Path)
	require.NotNil(t, second.EntityID)
	assert.Equal(t, int64(12), *second.EntityID)
}

func TestRouteEntity(t *testing.T) {
	assert.Equal(t, "approvals", routeEntity("/api/v1/approvals/approve", "/api/v1"))
	assert.Equal(t, "org", routeEntity("/api/v1/org/:kind/:id", "/api/v1"))
	assert.Equal(t, "unknown", routeEntity("/api/v1", "/api/v1"))
}

func TestCSRF(t *testing.T) {
	manager := csrf.NewManager(csrf.NewMemoryStore(), time.Hour)
	r := newEngine(true)
	r.Use(CSRF(manager, "/login"))
	r.GET("/token", func(c *gin.Context) {
		token, err := manager.Issue(c.Request.Context(), CallerKey(c))
		require.NoError(t, err)
		c.String(http.StatusOK, token)
	})
	r.POST("/login", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.POST("/surveys", func(c *gin.Context) { c.Status(http.StatusCreated) })

	w := do(r, http.MethodPost, "/surveys", `{}`, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = do(r, http.MethodPost, "/login", `{}`, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	token := do(r, http.MethodGet, "/token", "", nil).Body.String()
	w = do(r, http.MethodPost, "/surveys", `{}`, map[string]string{csrf.HeaderName: token})
	assert.Equal(t, http.StatusCreated, w.Code)

	w = do(r, http.MethodPost, "/surveys", `{}`, map[string]string{csrf.HeaderName: "stale"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRateLimit(t *testing.T) {
	r := newEngine(true)
	r.Use(RateLimit(1, 1))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, do(r, http.MethodGet, "/ping", "", nil).Code)
	w := do(r, http.MethodGet, "/ping", "", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "RATE_LIMITED", decode(t, w).Error.Code)
}

func TestRateLimit_SweepsIdleClients(t *testing.T) {
	l := newIPLimiter(1, 1)
	now := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	l.now = func() time.Time { return now }

	assert.True(t, l.allow("10.0.0.1"))
	now = now.Add(10 * time.Minute)
	assert.True(t, l.allow("10.0.0.2"))

	assert.Len(t, l.clients, 1)
}

func TestRequireContentType(t *testing.T) {
	r := newEngine(true)
	r.Use(RequireContentType())
	r.POST("/surveys", func(c *gin.Context) { c.Status(http.StatusCreated) })

	req := httptest.NewRequest(http.MethodPost, "/surveys", strings.NewReader("title=x"))
	req.Header.Set("Content-Type", "text/plain")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)

	w = do(r, http.MethodPost, "/surveys", `{"title":"x"}`, nil)
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestBodyLimit(t *testing.T) {
	r := newEngine(true)
	r.Use(BodyLimit(8))
	r.POST("/echo", func(c *gin.Context) {
		var body map[string]any
		if err := c.ShouldBindJSON(&body); err != nil {
			var maxErr *http.MaxBytesError
			if errors.As(err, &maxErr) {
				_ = c.Error(apperr.New(apperr.KindPayloadTooLarge, "request body too large"))
				return
			}
			_ = c.Error(apperr.Validation("invalid body"))
			return
		}
		c.Status(http.StatusOK)
	})

	w := do(r, http.MethodPost, "/echo", `{"title":"much too long"}`, nil)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

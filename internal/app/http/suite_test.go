package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	httpapp "github.com/14kear/csi-portal/internal/app/http"
	"github.com/14kear/csi-portal/internal/config"
	"github.com/14kear/csi-portal/internal/csrf"
	"github.com/14kear/csi-portal/internal/email"
	"github.com/14kear/csi-portal/internal/entity"
	"github.com/14kear/csi-portal/internal/handlers"
	"github.com/14kear/csi-portal/internal/lib/jwt"
	"github.com/14kear/csi-portal/internal/middleware"
	"github.com/14kear/csi-portal/internal/repo"
	"github.com/14kear/csi-portal/internal/routes"
	"github.com/14kear/csi-portal/internal/services"
	"github.com/14kear/csi-portal/internal/services/mocks"
	"github.com/14kear/csi-portal/utils"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const secret = "suite-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

// Suite wires the real router, middleware and services over mocked storage.
type Suite struct {
	*testing.T
	Engine    *gin.Engine
	Users     *mocks.MockUserStorage
	Surveys   *mocks.MockSurveyStorage
	Questions *mocks.MockQuestionStorage
	Approvals *mocks.MockApprovalStorage
	Reports   *mocks.MockReportStorage
	Logs      *mocks.MockLogStorage
	Accounts  *accountBook

	mu      sync.Mutex
	entries []entity.Log
}

func newSuite(t *testing.T) *Suite {
	t.Helper()

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	log := utils.Discard()
	cfg := &config.Config{
		Env:         utils.EnvProd,
		FrontendDir: t.TempDir(),
		HTTP: config.HTTPConfig{
			Port:           0,
			RequestTimeout: 5 * time.Second,
			MaxBodyBytes:   1 << 20,
			AllowedOrigins: []string{"http://localhost:5173"},
		},
	}

	s := &Suite{
		T:         t,
		Users:     mocks.NewMockUserStorage(ctrl),
		Surveys:   mocks.NewMockSurveyStorage(ctrl),
		Questions: mocks.NewMockQuestionStorage(ctrl),
		Approvals: mocks.NewMockApprovalStorage(ctrl),
		Reports:   mocks.NewMockReportStorage(ctrl),
		Logs:      mocks.NewMockLogStorage(ctrl),
		Accounts:  &accountBook{users: make(map[int64]entity.User)},
	}

	templates, err := email.LoadTemplates()
	require.NoError(t, err)

	audit := services.NewAudit(log, s.Logs)
	usersService := services.NewUsers(log, s.Users, audit, secret, time.Hour)
	surveysService := services.NewSurveys(log, s.Surveys, s.Questions, audit)
	approvalsService := services.NewApprovals(log, s.Approvals, mocks.NewMockMailer(ctrl), templates, audit)
	reportsService := services.NewReports(log, s.Surveys, s.Reports)
	csrfManager := csrf.NewManager(csrf.NewMemoryStore(), time.Hour)

	require.NoError(t, handlers.RegisterValidators())

	h := routes.Handlers{
		Auth:       handlers.NewAuthHandler(usersService, csrfManager),
		Users:      handlers.NewUsersHandler(usersService),
		Org:        handlers.NewOrgHandler(services.NewOrg(log, nil, audit)),
		Surveys:    handlers.NewSurveysHandler(surveysService),
		Responses:  handlers.NewResponsesHandler(services.NewResponses(log, s.Surveys, s.Questions, nil)),
		Approvals:  handlers.NewApprovalsHandler(approvalsService),
		Audit:      handlers.NewAuditHandler(audit),
		Operations: handlers.NewOperationsHandler(nil),
		Reports:    handlers.NewReportsHandler(reportsService),
		Uploads:    handlers.NewUploadsHandler(nil, 1<<20),
	}

	app := httpapp.NewApp(log, cfg, h, middleware.NewAuthMiddleware(secret, s.Accounts), csrfManager, audit)
	s.Engine = app.Engine()
	return s
}

// accountBook holds the stored account state the auth middleware re-reads on every request.
type accountBook struct {
	mu    sync.Mutex
	users map[int64]entity.User
}

func (b *accountBook) put(u entity.User) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.users[u.ID] = u
}

func (b *accountBook) UserByID(_ context.Context, id int64) (entity.User, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	u, ok := b.users[id]
	if !ok {
		return entity.User{}, repo.ErrUserNotFound
	}
	return u, nil
}

// captureLogs accepts n audit writes and keeps them for inspection.
func (s *Suite) captureLogs(n int) {
	s.Logs.EXPECT().SaveLog(gomock.Any(), gomock.Any()).Times(n).DoAndReturn(
		func(_ context.Context, entry *entity.Log) (int64, error) {
			s.mu.Lock()
			defer s.mu.Unlock()
			s.entries = append(s.entries, *entry)
			return int64(len(s.entries)), nil
		})
}

func (s *Suite) token(id int64, role entity.Role) string {
	s.Helper()
	user := entity.User{ID: id, Email: gofakeit.Email(), Role: role, IsActive: true}
	s.Accounts.put(user)
	token, err := jwt.NewAccessToken(user, secret, time.Hour)
	require.NoError(s, err)
	return token
}

// tokenWithoutAccount signs a valid token for an account the store does not know.
func (s *Suite) tokenWithoutAccount(id int64, role entity.Role) string {
	s.Helper()
	token, err := jwt.NewAccessToken(entity.User{ID: id, Email: gofakeit.Email(), Role: role}, secret, time.Hour)
	require.NoError(s, err)
	return token
}

func (s *Suite) csrfToken(bearer string) string {
	s.Helper()
	w := s.do(http.MethodGet, "/api/v1/csrf-token", nil, bearer, "")
	require.Equal(s, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"csrf_token"`
		} `json:"data"`
	}
	require.NoError(s, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(s, resp.Data.Token)
	return resp.Data.Token
}

func (s *Suite) do(method, path string, body any, bearer, csrfToken string) *httptest.ResponseRecorder {
	s.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(s, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	if csrfToken != "" {
		req.Header.Set(csrf.HeaderName, csrfToken)
	}

	w := httptest.NewRecorder()
	s.Engine.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (s *Suite) decode(w *httptest.ResponseRecorder) envelope {
	s.Helper()
	var env envelope
	require.NoError(s, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

func TestSuite_LoginAndMe(t *testing.T) {
	s := newSuite(t)

	mail := gofakeit.Email()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct horse"), bcrypt.MinCost)
	require.NoError(t, err)
	user := entity.User{ID: 4, Email: mail, Name: "Lead", PassHash: hash, Role: entity.RoleITLead, IsActive: true}

	s.Users.EXPECT().UserByEmail(gomock.Any(), mail).Return(user, nil)
	s.captureLogs(1)

	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": mail, "password": "correct horse"}, "", "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var login struct {
		AccessToken string      `json:"access_token"`
		User        entity.User `json:"user"`
	}
	env := s.decode(w)
	assert.True(t, env.Success)
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Equal(t, int64(4), login.User.ID)
	assert.NotContains(t, string(env.Data), "pass_hash")

	require.Len(t, s.entries, 1)
	assert.Equal(t, "auth", s.entries[0].Entity)
	assert.Nil(t, s.entries[0].UserID)

	s.Accounts.put(user)
	s.Users.EXPECT().UserByID(gomock.Any(), int64(4)).Return(user, nil)
	w = s.do(http.MethodGet, "/api/v1/auth/me", nil, login.AccessToken, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSuite_LoginValidation(t *testing.T) {
	s := newSuite(t)

	w := s.do(http.MethodPost, "/api/v1/auth/login", map[string]string{"email": "not-an-email", "password": "x"}, "", "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	env := s.decode(w)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Message, "email")
}

func TestSuite_MissingTokenIsUnauthorized(t *testing.T) {
	s := newSuite(t)

	w := s.do(http.MethodGet, "/api/v1/surveys", nil, "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.False(t, s.decode(w).Success)
}

func TestSuite_DisabledOrDemotedAccountLosesAccess(t *testing.T) {
	s := newSuite(t)
	bearer := s.token(2, entity.RoleAdmin)

	s.Accounts.put(entity.User{ID: 2, Email: "former@example.com", Role: entity.RoleRespondent, IsActive: true})
	w := s.do(http.MethodGet, "/api/v1/surveys", nil, bearer, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	s.Accounts.put(entity.User{ID: 2, Email: "former@example.com", Role: entity.RoleAdmin, IsActive: false})
	w = s.do(http.MethodGet, "/api/v1/surveys", nil, bearer, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "AUTHENTICATION_ERROR", s.decode(w).Error.Code)

	w = s.do(http.MethodGet, "/api/v1/surveys", nil, s.tokenWithoutAccount(3, entity.RoleAdmin), "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSuite_RespondentsBehindOneAddressKeepTheirTokens(t *testing.T) {
	s := newSuite(t)

	first := s.csrfToken("")
	second := s.csrfToken("")
	require.NotEqual(t, first, second)

	s.Surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(12)).Return(entity.Survey{}, repo.ErrSurveyNotFound).Times(2)

	body := map[string]any{"survey_id": 12, "answers": []map[string]any{{"question_id": 1, "value": "5"}}}
	for _, token := range []string{first, second} {
		w := s.do(http.MethodPost, "/api/v1/responses", body, "", token)
		assert.Equal(t, http.StatusNotFound, w.Code, w.Body.String())
	}
}

func TestSuite_RespondentCannotReadSurveys(t *testing.T) {
	s := newSuite(t)

	w := s.do(http.MethodGet, "/api/v1/surveys", nil, s.token(9, entity.RoleRespondent), "")
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "AUTHORIZATION_ERROR", s.decode(w).Error.Code)
}

func TestSuite_CreateSurveyRequiresCSRFAndIsAudited(t *testing.T) {
	s := newSuite(t)
	bearer := s.token(1, entity.RoleAdmin)
	body := map[string]any{
		"title":      "Q3 satisfaction",
		"start_date": "2030-01-01T00:00:00Z",
		"end_date":   "2030-02-01T00:00:00Z",
	}

	w := s.do(http.MethodPost, "/api/v1/surveys", body, bearer, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	token := s.csrfToken(bearer)

	s.Surveys.EXPECT().SaveSurvey(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, survey *entity.Survey) (int64, error) {
			assert.Equal(t, entity.SurveyStatusDraft, survey.Status)
			assert.Equal(t, int64(1), survey.CreatedBy)
			return 11, nil
		})
	s.captureLogs(2)

	w = s.do(http.MethodPost, "/api/v1/surveys", body, bearer, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.JSONEq(t, `{"id":11}`, string(s.decode(w).Data))

	require.Len(t, s.entries, 2)
	assert.Equal(t, "surveys.create", s.entries[0].Action)
	request := s.entries[1]
	assert.Equal(t, "http.post", request.Action)
	assert.Equal(t, "surveys", request.Entity)
	assert.Equal(t, http.StatusCreated, request.Status)
	require.NotNil(t, request.UserID)
	assert.Equal(t, int64(1), *request.UserID)
}

func TestSuite_CreateSurveyRejectsEndBeforeStart(t *testing.T) {
	s := newSuite(t)
	bearer := s.token(1, entity.RoleAdmin)
	token := s.csrfToken(bearer)

	w := s.do(http.MethodPost, "/api/v1/surveys", map[string]any{
		"title":      "Backwards",
		"start_date": "2030-02-01T00:00:00Z",
		"end_date":   "2030-01-01T00:00:00Z",
	}, bearer, token)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", s.decode(w).Error.Code)
}

func TestSuite_ApproveOutsideProposedIsConflict(t *testing.T) {
	s := newSuite(t)
	bearer := s.token(3, entity.RoleDepartmentHead)
	token := s.csrfToken(bearer)

	s.Approvals.EXPECT().GetQuestionResponse(gomock.Any(), int64(5)).
		Return(entity.QuestionResponse{ID: 5, TakeoutStatus: entity.TakeoutActive}, nil)

	w := s.do(http.MethodPost, "/api/v1/approvals/approve", map[string]any{"question_response_id": 5}, bearer, token)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "CONFLICT", s.decode(w).Error.Code)
}

func TestSuite_ProposeNeedsReasonAndRole(t *testing.T) {
	s := newSuite(t)

	lead := s.token(2, entity.RoleITLead)
	w := s.do(http.MethodPost, "/api/v1/approvals/propose",
		map[string]any{"question_response_id": 5, "reason": " "}, lead, s.csrfToken(lead))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, s.decode(w).Error.Message, "reason")

	head := s.token(3, entity.RoleDepartmentHead)
	w = s.do(http.MethodPost, "/api/v1/approvals/propose",
		map[string]any{"question_response_id": 5, "reason": "duplicate answer"}, head, s.csrfToken(head))
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestSuite_ExportIsAnAttachment(t *testing.T) {
	s := newSuite(t)

	s.Surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(3)).Return(entity.Survey{ID: 3, Title: "CSI"}, nil)
	s.Reports.EXPECT().CountResponses(gomock.Any(), int64(3)).Return(0, nil)
	s.Reports.EXPECT().SurveyQuestionStats(gomock.Any(), int64(3)).Return(nil, nil)
	s.Reports.EXPECT().OptionDistribution(gomock.Any(), int64(3)).Return(nil, nil)
	s.Reports.EXPECT().ExportRows(gomock.Any(), int64(3)).Return(nil, nil)

	w := s.do(http.MethodGet, "/api/v1/reports/surveys/3/export?format=csv", nil, s.token(1, entity.RoleAdmin), "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, `attachment; filename="survey-3-report.csv"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
}

func TestSuite_ExportUnknownFormat(t *testing.T) {
	s := newSuite(t)

	w := s.do(http.MethodGet, "/api/v1/reports/surveys/3/export?format=docx", nil, s.token(1, entity.RoleAdmin), "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSuite_PublicSurveyMustBeOpen(t *testing.T) {
	s := newSuite(t)

	s.Surveys.EXPECT().GetSurveyByID(gomock.Any(), int64(4)).Return(entity.Survey{ID: 4, Status: entity.SurveyStatusDraft}, nil)
	s.Questions.EXPECT().GetQuestionsBySurveyID(gomock.Any(), int64(4)).Return(nil, nil)

	w := s.do(http.MethodGet, "/api/v1/public/surveys/4", nil, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuite_PingAndUnknownRoute(t *testing.T) {
	s := newSuite(t)

	w := s.do(http.MethodGet, "/ping", nil, "", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(http.MethodGet, "/api/v1/nowhere", nil, "", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", s.decode(w).Error.Code)

	w = s.do(http.MethodGet, "/", nil, "", "")
	assert.Equal(t, http.StatusFound, w.Code)
}

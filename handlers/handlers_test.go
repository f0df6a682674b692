package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gachigayo/models"
	"gachigayo/services"
	"gachigayo/services/backend"
)

// fakeBackend drives the handlers through the real service layer.
type fakeBackend struct {
	backend.Backend

	requestDetailFn func(ctx context.Context, requestID string) (*models.DetailedHelpRequest, error)
	fetchProposalFn func(ctx context.Context, requestID string) (*models.ReservationDetails, error)
	listOpenFn      func(ctx context.Context, access string) ([]models.HelpRequest, error)
}

func (f *fakeBackend) RequestDetail(ctx context.Context, requestID string) (*models.DetailedHelpRequest, error) {
	return f.requestDetailFn(ctx, requestID)
}

func (f *fakeBackend) FetchProposal(ctx context.Context, requestID string) (*models.ReservationDetails, error) {
	return f.fetchProposalFn(ctx, requestID)
}

func (f *fakeBackend) ListOpenRequests(ctx context.Context, access string) ([]models.HelpRequest, error) {
	return f.listOpenFn(ctx, access)
}

// withSession stands in for the real session middleware.
func withSession(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		c.Set(ctxSessionID, "sess-1")
		c.Set(ctxAccessToken, "token-1")
		return next(c)
	}
}

func doRequest(e *echo.Echo, method, target string) (*httptest.ResponseRecorder, map[string]any) {
	req := httptest.NewRequest(method, target, nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	var body map[string]any
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	return rec, body
}

func TestHelperHandler_Detail(t *testing.T) {
	fake := &fakeBackend{
		requestDetailFn: func(ctx context.Context, requestID string) (*models.DetailedHelpRequest, error) {
			assert.Equal(t, "r1", requestID)
			return &models.DetailedHelpRequest{
				ID:            "r1",
				SeniorFanName: "박영희",
				Stage:         models.StageRequested,
			}, nil
		},
	}
	e := echo.New()
	NewHelperHandler(services.NewHelperService(fake)).RegisterRoutes(e.Group("/api"), withSession)

	rec, body := doRequest(e, http.MethodGet, "/api/helper/requests/r1")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, body["provisional"])
	assert.Equal(t, float64(2), body["step"])
	assert.Equal(t, "도움 진행 중", body["stageLabel"])
}

func TestHelperHandler_Detail_NotFound(t *testing.T) {
	fake := &fakeBackend{
		requestDetailFn: func(ctx context.Context, requestID string) (*models.DetailedHelpRequest, error) {
			return nil, &backend.APIError{StatusCode: 404}
		},
	}
	e := echo.New()
	NewHelperHandler(services.NewHelperService(fake)).RegisterRoutes(e.Group("/api"), withSession)

	rec, body := doRequest(e, http.MethodGet, "/api/helper/requests/gone")

	require.Equal(t, http.StatusNotFound, rec.Code)
	// The dead end still offers a way back.
	assert.Equal(t, "/helper/dashboard", body["backTo"])
	assert.NotEmpty(t, body["error"])
}

func TestHelperHandler_Dashboard(t *testing.T) {
	fake := &fakeBackend{
		listOpenFn: func(ctx context.Context, access string) ([]models.HelpRequest, error) {
			assert.Equal(t, "token-1", access)
			return []models.HelpRequest{{ID: "r1", TeamName: "한화 이글스"}}, nil
		},
	}
	e := echo.New()
	NewHelperHandler(services.NewHelperService(fake)).RegisterRoutes(e.Group("/api"), withSession)

	rec, body := doRequest(e, http.MethodGet, "/api/helper/dashboard")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, body["requests"], 1)
	assert.Equal(t, false, body["degraded"])
}

func TestSeniorHandler_Teams(t *testing.T) {
	svc := services.NewSeniorService(&fakeBackend{}, nil, time.Second)
	e := echo.New()
	NewSeniorHandler(svc).RegisterRoutes(e.Group("/api"), withSession)

	rec, body := doRequest(e, http.MethodGet, "/api/senior/teams")

	require.Equal(t, http.StatusOK, rec.Code)
	teams, ok := body["teams"].([]any)
	require.True(t, ok)
	assert.Len(t, teams, 10)
}

func TestSeniorHandler_Confirmation_NotFound(t *testing.T) {
	fake := &fakeBackend{
		fetchProposalFn: func(ctx context.Context, requestID string) (*models.ReservationDetails, error) {
			return nil, backend.ErrNotFound
		},
	}
	svc := services.NewSeniorService(fake, nil, time.Second)
	e := echo.New()
	NewSeniorHandler(svc).RegisterRoutes(e.Group("/api"), withSession)

	rec, body := doRequest(e, http.MethodGet, "/api/senior/confirmation/gone")

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "/senior/my-page", body["backTo"])
}

func TestAuthHandler_Landing(t *testing.T) {
	auth := services.NewAuthService(&fakeBackend{}, services.NewSessionService(nil, 0))
	e := echo.New()
	noop := func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	NewAuthHandler(auth).RegisterRoutes(e.Group("/api"), noop)

	rec, body := doRequest(e, http.MethodGet, "/api/landing")

	require.Equal(t, http.StatusOK, rec.Code)
	roles, ok := body["roles"].([]any)
	require.True(t, ok)
	require.Len(t, roles, 2)

	first, ok := roles[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "senior", first["role"])
	assert.Equal(t, "/login?role=senior", first["loginTo"])
}

func TestBearerToken(t *testing.T) {
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer sess-1")
	c := e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "sess-1", bearerToken(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	c = e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "", bearerToken(c))

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Basic abc")
	c = e.NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "", bearerToken(c))
}

func TestRespondError_Mapping(t *testing.T) {
	e := echo.New()

	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantText   string
	}{
		{
			name:       "validation error",
			err:        &services.ValidationError{Message: "경기 날짜를 선택해주세요."},
			wantStatus: http.StatusBadRequest,
			wantText:   "경기 날짜를 선택해주세요.",
		},
		{
			name:       "backend detail passes through",
			err:        &backend.APIError{StatusCode: 400, Detail: "이미 신청한 경기예요."},
			wantStatus: http.StatusBadRequest,
			wantText:   "이미 신청한 경기예요.",
		},
		{
			name:       "backend error without detail",
			err:        &backend.APIError{StatusCode: 500},
			wantStatus: http.StatusInternalServerError,
			wantText:   backend.GenericErrorText,
		},
		{
			name:       "in-flight create",
			err:        services.ErrCreateInFlight,
			wantStatus: http.StatusTooManyRequests,
			wantText:   "요청을 처리하고 있어요. 잠시만 기다려주세요.",
		},
		{
			name:       "unknown error",
			err:        assert.AnError,
			wantStatus: http.StatusBadGateway,
			wantText:   backend.GenericErrorText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			require.NoError(t, respondError(c, tt.err))
			assert.Equal(t, tt.wantStatus, rec.Code)

			var body map[string]string
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantText, body["error"])
		})
	}
}

func TestRespondError_SessionExpired(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, respondError(c, services.ErrSessionExpired))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "/login", body["redirectTo"])
}

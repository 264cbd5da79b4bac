package handlers_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cloudedumatch_backend/internal/handlers"
	"cloudedumatch_backend/internal/services"
	"cloudedumatch_backend/internal/services/dto"
	"cloudedumatch_backend/internal/validator"
	"cloudedumatch_backend/pkg/apperrors"
)

type fakeAuthService struct {
	services.AuthService

	registerFn func(req *dto.RegisterRequest) (*dto.TokenResponse, error)
	loginFn    func(req *dto.LoginRequest) (*dto.TokenResponse, error)
}

func (f *fakeAuthService) Register(req *dto.RegisterRequest) (*dto.TokenResponse, error) {
	return f.registerFn(req)
}

func (f *fakeAuthService) Login(req *dto.LoginRequest) (*dto.TokenResponse, error) {
	return f.loginFn(req)
}

func newAuthRouter(svc services.AuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handlers.NewAuthHandler(handlers.NewBaseHandler(validator.New()), svc)
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req, err := http.NewRequest(method, path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthRegister(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{
		registerFn: func(req *dto.RegisterRequest) (*dto.TokenResponse, error) {
			assert.Equal(t, "newuser", req.Username)
			return &dto.TokenResponse{AccessToken: "tok-123", TokenType: "bearer"}, nil
		},
	}
	r := newAuthRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register",
		`{"username":"newuser","email":"new@example.com","password":"longenough1"}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok-123", resp.AccessToken)
	assert.Equal(t, "bearer", resp.TokenType)
}

func TestAuthRegisterRejectsShortPassword(t *testing.T) {
	t.Parallel()

	called := false
	svc := &fakeAuthService{
		registerFn: func(req *dto.RegisterRequest) (*dto.TokenResponse, error) {
			called = true
			return nil, nil
		},
	}
	r := newAuthRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/register",
		`{"username":"newuser","email":"new@example.com","password":"short"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.False(t, called, "service must not be reached on validation failure")
}

func TestAuthLogin(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{
		loginFn: func(req *dto.LoginRequest) (*dto.TokenResponse, error) {
			assert.Equal(t, "someone", req.Login)
			return &dto.TokenResponse{AccessToken: "tok-456", TokenType: "bearer"}, nil
		},
	}
	r := newAuthRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"login":"someone","password":"whatever1"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp dto.TokenResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "tok-456", resp.AccessToken)
}

func TestAuthLoginBadCredentials(t *testing.T) {
	t.Parallel()

	svc := &fakeAuthService{
		loginFn: func(req *dto.LoginRequest) (*dto.TokenResponse, error) {
			return nil, apperrors.ErrInvalidCredentials
		},
	}
	r := newAuthRouter(svc)

	w := doJSON(t, r, http.MethodPost, "/api/v1/auth/login",
		`{"login":"someone","password":"wrongpass"}`)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	var resp apperrors.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotNil(t, resp.Error)
	assert.Equal(t, apperrors.CodeInvalidCredentials, resp.Error.Code)
}

func TestMeRequiresToken(t *testing.T) {
	t.Parallel()

	r := newAuthRouter(&fakeAuthService{})

	req, err := http.NewRequest(http.MethodGet, "/api/v1/me", nil)
	require.NoError(t, err)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

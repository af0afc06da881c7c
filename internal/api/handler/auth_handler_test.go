package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/sudhanthirapriya/face-recognition-project/internal/core/domain"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, phone, password string) (string, *domain.Identity, error)
	logoutFn  func(ctx context.Context, token string) error
	profileFn func(ctx context.Context, identityID string) (*domain.Identity, error)
}

func (s *stubAuthService) Login(ctx context.Context, phone, password string) (string, *domain.Identity, error) {
	return s.loginFn(ctx, phone, password)
}

func (s *stubAuthService) Logout(ctx context.Context, token string) error {
	return s.logoutFn(ctx, token)
}

func (s *stubAuthService) Profile(ctx context.Context, identityID string) (*domain.Identity, error) {
	return s.profileFn(ctx, identityID)
}

func loginContext(t *testing.T, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, phone, password string) (string, *domain.Identity, error) {
			if phone != "+1777" || password != "p" {
				t.Fatalf("unexpected credentials: %s %s", phone, password)
			}
			return "tok123", &domain.Identity{ID: "id-1", Phone: phone, Name: "Carol"}, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	c, rec := loginContext(t, `{"phone":"+1777","password":"p"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp["status"] != "success" || resp["token"] != "tok123" {
		t.Fatalf("unexpected response: %v", resp)
	}

	cookies := rec.Result().Cookies()
	var found bool
	for _, ck := range cookies {
		if ck.Name == SessionCookieName && ck.Value == "tok123" && ck.HttpOnly {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected session cookie to be set, got %v", cookies)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Identity, error) {
			return "", nil, domain.ErrInvalidCredentials
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	c, rec := loginContext(t, `{"phone":"+1777","password":"bad"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid phone number or password.") {
		t.Fatalf("expected generic credentials message, got %s", rec.Body.String())
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	called := false
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Identity, error) {
			called = true
			return "", nil, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	c, rec := loginContext(t, `{"phone":"+1777"}`)
	if err := handler.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	if called {
		t.Fatalf("service should not be called on validation failure")
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	var revokedToken string
	stub := &stubAuthService{
		logoutFn: func(_ context.Context, token string) error {
			revokedToken = token
			return nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("token", "tok123")

	if err := handler.Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if revokedToken != "tok123" {
		t.Fatalf("expected token revoked, got %q", revokedToken)
	}
}

func TestAuthHandler_Logout_MissingSession(t *testing.T) {
	handler := NewAuthHandler(&stubAuthService{}, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := handler.Logout(c)
	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

func TestAuthHandler_Dashboard(t *testing.T) {
	stub := &stubAuthService{
		profileFn: func(_ context.Context, identityID string) (*domain.Identity, error) {
			if identityID != "id-1" {
				t.Fatalf("unexpected identity id: %s", identityID)
			}
			return &domain.Identity{ID: "id-1", Name: "Carol", Phone: "+1777"}, nil
		},
	}
	handler := NewAuthHandler(stub, time.Hour)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("identity_id", "id-1")

	if err := handler.Dashboard(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"name":"Carol"`) {
		t.Fatalf("expected profile in body, got %s", rec.Body.String())
	}
	if strings.Contains(rec.Body.String(), "password") {
		t.Fatalf("password hash leaked: %s", rec.Body.String())
	}
}

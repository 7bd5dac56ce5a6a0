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
	"github.com/rs/zerolog"

	"github.com/ferreteria-epa/backoffice/internal/api/middleware"
	"github.com/ferreteria-epa/backoffice/internal/core/domain"
)

type stubAuthService struct {
	loginFn func(ctx context.Context, email, password string) (*domain.Session, error)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	return s.loginFn(ctx, email, password)
}

func newTestEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func newAuthHandler(stub *stubAuthService) *AuthHandler {
	return NewAuthHandler(stub, CookieOptions{Name: "authToken"}, zerolog.Nop())
}

func postLogin(t *testing.T, h *AuthHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var resp map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	return resp["message"]
}

func TestAuthHandler_Login_Success(t *testing.T) {
	expires := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			if email != "admin@test.com" || password != "admin123" {
				t.Fatalf("unexpected args: %s %s", email, password)
			}
			return &domain.Session{Token: "signed.jwt.token", ExpiresAt: expires}, nil
		},
	}

	rec := postLogin(t, newAuthHandler(stub), `{"email":"admin@test.com","password":"admin123"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); msg != "login successful" {
		t.Fatalf("unexpected message %q", msg)
	}
	if strings.Contains(rec.Body.String(), "signed.jwt.token") {
		t.Fatalf("token leaked in body: %s", rec.Body.String())
	}

	cookies := rec.Result().Cookies()
	if len(cookies) != 1 {
		t.Fatalf("expected one cookie, got %d", len(cookies))
	}
	ck := cookies[0]
	if ck.Name != "authToken" || ck.Value != "signed.jwt.token" {
		t.Fatalf("unexpected cookie %s=%s", ck.Name, ck.Value)
	}
	if !ck.HttpOnly || ck.SameSite != http.SameSiteLaxMode || ck.Path != "/" {
		t.Fatalf("cookie attributes wrong: %+v", ck)
	}
	if !ck.Expires.Equal(expires) {
		t.Fatalf("cookie expiry %v, want %v", ck.Expires, expires)
	}
}

func TestAuthHandler_Login_Failures(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"not found", domain.ErrPrincipalNotFound, http.StatusUnauthorized, "user not found"},
		{"bad password", domain.ErrInvalidCredentials, http.StatusUnauthorized, "Invalid password"},
		{"infrastructure", errors.New("login: sign: boom"), http.StatusInternalServerError, "Internal server error"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			stub := &stubAuthService{
				loginFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
					return nil, tc.err
				},
			}

			rec := postLogin(t, newAuthHandler(stub), `{"email":"x@test.com","password":"whatever"}`)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if msg := decodeMessage(t, rec); msg != tc.message {
				t.Fatalf("expected %q, got %q", tc.message, msg)
			}
			if len(rec.Result().Cookies()) != 0 {
				t.Fatalf("no cookie expected on failure")
			}
		})
	}
}

func TestAuthHandler_Login_InvalidPayload(t *testing.T) {
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, email, password string) (*domain.Session, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	h := newAuthHandler(stub)

	for name, body := range map[string]string{
		"malformed":        `{"email":`,
		"missing password": `{"email":"a@test.com"}`,
	} {
		t.Run(name, func(t *testing.T) {
			rec := postLogin(t, h, body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
		})
	}
}

func TestAuthHandler_Logout(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodPost, "/api/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := newAuthHandler(&stubAuthService{}).Logout(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != "authToken" || cookies[0].MaxAge >= 0 {
		t.Fatalf("expected expired auth cookie, got %+v", cookies)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := newTestEcho()
	req := httptest.NewRequest(http.MethodGet, "/api/login/me", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.ContextSubjectID, "emp-42")
	c.Set(middleware.ContextRole, "employee")

	if err := newAuthHandler(&stubAuthService{}).Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp meResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.ID != "emp-42" || resp.Role != "employee" {
		t.Fatalf("unexpected body %+v", resp)
	}
}

func TestAuthHandler_Me_WithoutGate(t *testing.T) {
	e := newTestEcho()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/api/login/me", nil), httptest.NewRecorder())

	err := newAuthHandler(&stubAuthService{}).Me(c)

	var he *echo.HTTPError
	if !errors.As(err, &he) || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 HTTPError, got %v", err)
	}
}

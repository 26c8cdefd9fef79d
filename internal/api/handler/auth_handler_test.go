package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iotrelay/telemetry-api/internal/core/domain"
	"github.com/iotrelay/telemetry-api/internal/core/ports"
)

type stubAuthService struct {
	loginFn  func(ctx context.Context, username, password string) (string, domain.Role, error)
	createFn func(ctx context.Context, username, password string, role domain.Role) error
	users    []domain.UserInfo
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (string, domain.Role, error) {
	return s.loginFn(ctx, username, password)
}

func (s *stubAuthService) Authenticate(_ context.Context, _ string) (ports.Claims, bool) {
	return ports.Claims{}, false
}

func (s *stubAuthService) CreateUser(ctx context.Context, username, password string, role domain.Role) error {
	return s.createFn(ctx, username, password, role)
}

func (s *stubAuthService) ListUsers(_ context.Context) []domain.UserInfo {
	return s.users
}

func TestAuthHandler_Login_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, username, password string) (string, domain.Role, error) {
			if username != "carol" || password != "s3cret" {
				t.Fatalf("unexpected credentials: %s/%s", username, password)
			}
			return "tok-abc", domain.RoleManager, nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"carol","password":"s3cret"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.Login(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "tok-abc" || resp["role"] != "manager" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestAuthHandler_Login_BadCredentialsPropagate(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		loginFn: func(_ context.Context, _, _ string) (string, domain.Role, error) {
			return "", "", domain.ErrInvalidCredentials
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"carol","password":"wrong"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/login", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	err := h.Login(c)
	if !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials to propagate, got %v", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	for _, payload := range []string{
		`{"password":"pw"}`,
		`{"username":"carol"}`,
		`{}`,
	} {
		e := newTestEcho()
		stub := &stubAuthService{
			loginFn: func(_ context.Context, _, _ string) (string, domain.Role, error) {
				t.Fatalf("payload %s: service must not be called", payload)
				return "", "", nil
			},
		}
		h := NewAuthHandler(stub)

		req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(payload))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		_ = h.Login(c)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("payload %s: expected 400, got %d", payload, rec.Code)
		}
	}
}

func TestAuthHandler_CreateUser_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		createFn: func(_ context.Context, username, password string, role domain.Role) error {
			if username != "bob" || password != "pw" || role != domain.RoleReporter {
				t.Fatalf("unexpected args: %s %s %s", username, password, role)
			}
			return nil
		},
	}
	h := NewAuthHandler(stub)

	body := strings.NewReader(`{"username":"bob","password":"pw","role":"reporter"}`)
	req := httptest.NewRequest(http.MethodPost, "/api/users", body)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.CreateUser(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "user created") {
		t.Fatalf("unexpected body: %s", rec.Body.String())
	}
}

func TestAuthHandler_CreateUser_ServiceErrorsPropagate(t *testing.T) {
	for _, want := range []error{domain.ErrUserExists, domain.ErrInvalidRole} {
		e := newTestEcho()
		stub := &stubAuthService{
			createFn: func(_ context.Context, _, _ string, _ domain.Role) error {
				return want
			},
		}
		h := NewAuthHandler(stub)

		body := strings.NewReader(`{"username":"bob","password":"pw","role":"reporter"}`)
		req := httptest.NewRequest(http.MethodPost, "/api/users", body)
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		if err := h.CreateUser(c); !errors.Is(err, want) {
			t.Fatalf("expected %v to propagate, got %v", want, err)
		}
	}
}

func TestAuthHandler_ListUsers(t *testing.T) {
	e := newTestEcho()
	stub := &stubAuthService{
		users: []domain.UserInfo{
			{Username: "alice", Role: domain.RoleAdmin},
			{Username: "bob", Role: domain.RoleReporter},
		},
	}
	h := NewAuthHandler(stub)

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ListUsers(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var users []map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 || users[0]["username"] != "alice" {
		t.Fatalf("unexpected users payload: %+v", users)
	}
	for _, u := range users {
		if _, leaked := u["passwordHash"]; leaked {
			t.Fatalf("password material leaked: %+v", u)
		}
	}
}

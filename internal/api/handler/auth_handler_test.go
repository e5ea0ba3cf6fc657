package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/drivehq/drive-api/internal/api/middleware"
	"github.com/drivehq/drive-api/internal/core/domain"
	"github.com/drivehq/drive-api/internal/core/ports"
)

type stubAuthService struct {
	exchangeFn func(ctx context.Context, in ports.ExchangeInput) (*ports.AuthResult, error)
	registerFn func(ctx context.Context, name, email, password string) (*ports.AuthResult, error)
	loginFn    func(ctx context.Context, email, password string) (*ports.AuthResult, error)
	meFn       func(ctx context.Context, id string) (*domain.User, error)
}

func (s *stubAuthService) Exchange(ctx context.Context, in ports.ExchangeInput) (*ports.AuthResult, error) {
	return s.exchangeFn(ctx, in)
}

func (s *stubAuthService) Register(ctx context.Context, name, email, password string) (*ports.AuthResult, error) {
	return s.registerFn(ctx, name, email, password)
}

func (s *stubAuthService) Login(ctx context.Context, email, password string) (*ports.AuthResult, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAuthService) Me(ctx context.Context, id string) (*domain.User, error) {
	return s.meFn(ctx, id)
}

func newTestContext(e *echo.Echo, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Exchange_Success(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		exchangeFn: func(_ context.Context, in ports.ExchangeInput) (*ports.AuthResult, error) {
			if in.UserID != "u1" || in.Email != "a@x.com" || in.ProviderToken != "ptok" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.AuthResult{
				Token: "signed-token",
				User:  &domain.User{ID: in.UserID, Email: in.Email, Name: "Alice"},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(e, http.MethodPost, "/token-exchange",
		`{"userId":"u1","email":"a@x.com","name":"Alice","providerToken":"ptok"}`)

	if err := h.Exchange(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["token"] != "signed-token" {
		t.Fatalf("token missing from response: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["id"] != "u1" || user["email"] != "a@x.com" {
		t.Fatalf("unexpected user payload: %+v", resp)
	}
}

func TestAuthHandler_Exchange_MissingFields(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		exchangeFn: func(_ context.Context, _ ports.ExchangeInput) (*ports.AuthResult, error) {
			return nil, domain.ErrMissingClaimFields
		},
	}
	h := NewAuthHandler(stub)

	c, _ := newTestContext(e, http.MethodPost, "/token-exchange", `{"email":"a@x.com"}`)

	err := h.Exchange(c)
	if err == nil {
		t.Fatalf("expected error to propagate to the error handler")
	}
	if !strings.Contains(err.Error(), "required") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestAuthHandler_Exchange_InvalidPayload(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(e, http.MethodPost, "/token-exchange", `{not-json`)

	if err := h.Exchange(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	stub := &stubAuthService{
		registerFn: func(_ context.Context, name, email, _ string) (*ports.AuthResult, error) {
			return &ports.AuthResult{
				Token: "t",
				User:  &domain.User{ID: "id1", Name: name, Email: email},
			}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(e, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"alice@example.com","password":"s3cret"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_ValidationFailure(t *testing.T) {
	e := echo.New()
	e.Validator = NewValidator()
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(e, http.MethodPost, "/auth/register",
		`{"name":"Alice","email":"not-an-email","password":"s3cret"}`)

	if err := h.Register(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	e := echo.New()
	stub := &stubAuthService{
		meFn: func(_ context.Context, id string) (*domain.User, error) {
			if id != "u1" {
				t.Fatalf("unexpected id: %s", id)
			}
			return &domain.User{ID: id, Email: "a@x.com"}, nil
		},
	}
	h := NewAuthHandler(stub)

	c, rec := newTestContext(e, http.MethodGet, "/auth/me", "")
	c.Set(middleware.IdentityKey, domain.Identity{ID: "u1", Email: "a@x.com"})

	if err := h.Me(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthHandler_Me_NoIdentity(t *testing.T) {
	e := echo.New()
	h := NewAuthHandler(&stubAuthService{})

	c, rec := newTestContext(e, http.MethodGet, "/auth/me", "")

	if err := h.Me(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

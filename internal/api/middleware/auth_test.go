package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/pkg/token"
)

func newContext(header string) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/users", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

func passNext(c echo.Context) error { return nil }

func TestAuth_MissingHeader(t *testing.T) {
	mw := Auth(token.NewManager("secret", "", time.Hour))

	if err := mw(passNext)(newContext("")); err != domain.ErrUnauthorized {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuth_MalformedHeader(t *testing.T) {
	mw := Auth(token.NewManager("secret", "", time.Hour))

	for _, header := range []string{"token123", "Basic abc", "Bearer"} {
		if err := mw(passNext)(newContext(header)); err != domain.ErrUnauthorized {
			t.Fatalf("expected ErrUnauthorized for %q, got %v", header, err)
		}
	}
}

func TestAuth_InvalidToken(t *testing.T) {
	mw := Auth(token.NewManager("secret", "", time.Hour))

	if err := mw(passNext)(newContext("Bearer not-a-token")); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuth_WrongSecret(t *testing.T) {
	signed, err := token.NewManager("other", "", time.Hour).Issue(token.Claims{
		Subject: "507f1f77bcf86cd799439011",
		Role:    domain.RoleUser,
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	mw := Auth(token.NewManager("secret", "", time.Hour))
	if err := mw(passNext)(newContext("Bearer " + signed)); err != domain.ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestAuth_InjectsClaims(t *testing.T) {
	tokens := token.NewManager("secret", "", time.Hour)
	signed, err := tokens.Issue(token.Claims{
		Subject: "507f1f77bcf86cd799439011",
		Role:    domain.RoleAdmin,
		Email:   "ada@x.com",
	})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	c := newContext("Bearer " + signed)
	called := false
	err = Auth(tokens)(func(c echo.Context) error {
		called = true
		sub, role := Principal(c)
		if sub != "507f1f77bcf86cd799439011" || role != domain.RoleAdmin {
			t.Fatalf("unexpected principal: %s %s", sub, role)
		}
		return nil
	})(c)

	if err != nil {
		t.Fatalf("middleware returned error: %v", err)
	}
	if !called {
		t.Fatalf("next handler not reached")
	}
}

func TestAuth_SchemeIsCaseInsensitive(t *testing.T) {
	tokens := token.NewManager("secret", "", time.Hour)
	signed, err := tokens.Issue(token.Claims{Subject: "u1", Role: domain.RoleUser})
	if err != nil {
		t.Fatalf("issue failed: %v", err)
	}

	if err := Auth(tokens)(passNext)(newContext("bearer " + signed)); err != nil {
		t.Fatalf("lowercase scheme rejected: %v", err)
	}
}

package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/pkg/token"
)

// Context keys under which the authenticated principal's claims are stored.
const (
	CtxSubject = "auth_subject"
	CtxRole    = "auth_role"
	CtxEmail   = "auth_email"
)

// Auth verifies the bearer token and injects its claims into the request
// context. Absence of a token and an invalid token are both 401.
func Auth(tokens *token.Manager) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := bearerToken(c.Request().Header.Get("Authorization"))
			if raw == "" {
				return domain.ErrUnauthorized
			}

			claims, err := tokens.Verify(raw)
			if err != nil {
				return domain.ErrInvalidToken
			}

			c.Set(CtxSubject, claims.Subject)
			c.Set(CtxRole, claims.Role)
			c.Set(CtxEmail, claims.Email)

			return next(c)
		}
	}
}

// bearerToken extracts the token from an Authorization header value,
// tolerating extra whitespace. Empty when the header is missing or not a
// bearer scheme.
func bearerToken(header string) string {
	fields := strings.Fields(header)
	if len(fields) != 2 || !strings.EqualFold(fields[0], "bearer") {
		return ""
	}
	return fields[1]
}

// Principal reads the authenticated subject and role injected by Auth.
func Principal(c echo.Context) (subject string, role domain.Role) {
	subject, _ = c.Get(CtxSubject).(string)
	role, _ = c.Get(CtxRole).(domain.Role)
	return subject, role
}

package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// AdminOnly rejects any principal whose role is not ADMIN.
func AdminOnly() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, role := Principal(c)
			if subject == "" {
				return domain.ErrUnauthorized
			}
			if role != domain.RoleAdmin {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// AdminOrSelf admits admins, and non-admins only when the path parameter
// names their own account.
func AdminOrSelf(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, role := Principal(c)
			if subject == "" {
				return domain.ErrUnauthorized
			}
			if role != domain.RoleAdmin && subject != c.Param(param) {
				return domain.ErrForbidden
			}
			return next(c)
		}
	}
}

// ValidateID rejects syntactically malformed user ids before authorization
// and handlers run, as a validation failure rather than a not-found.
func ValidateID(param string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !domain.ValidUserID(c.Param(param)) {
				return domain.NewValidationError(domain.FieldError{
					Path:    param,
					Message: "must be a valid user id",
				})
			}
			return next(c)
		}
	}
}

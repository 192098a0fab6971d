package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/core/ports"
)

// ActiveUser re-checks the authenticated subject against the store on every
// protected request. Tokens are stateless and non-revocable, so this gate
// is what makes blocking take effect before the token expires: a vanished
// account is 401, a blocked one 403.
func ActiveUser(repo ports.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			subject, _ := Principal(c)
			if subject == "" {
				return domain.ErrUnauthorized
			}

			user, err := repo.FindByID(c.Request().Context(), subject)
			if err != nil {
				return err
			}
			if user == nil {
				return domain.ErrUnauthorized
			}
			if !user.IsActive {
				return domain.ErrUserBlocked
			}

			return next(c)
		}
	}
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/core/ports"
)

// AuthHandler exposes the unauthenticated account endpoints.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  map[string]any
// @Failure      409   {object}  map[string]any
// @Router       /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	req.normalize()

	details, err := structDetails(c, &req)
	if err != nil {
		return err
	}
	birthDate, fe := parseBirthDate(req.BirthDate)
	if fe != nil {
		details = append(details, *fe)
	}
	if fe := checkPassword(req.Password); fe != nil {
		details = append(details, *fe)
	}
	if len(details) > 0 {
		return domain.NewValidationError(details...)
	}

	created, err := h.authService.Register(c.Request().Context(), ports.RegisterInput{
		FullName:  req.FullName,
		Email:     req.Email,
		Password:  req.Password,
		BirthDate: birthDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toUserResponse(created))
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  authResponse
// @Failure      400   {object}  map[string]any
// @Failure      401   {object}  map[string]any
// @Failure      403   {object}  map[string]any
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := bindStrict(c, &req); err != nil {
		return err
	}
	req.normalize()

	details, err := structDetails(c, &req)
	if err != nil {
		return err
	}
	if fe := checkPassword(req.Password); fe != nil {
		details = append(details, *fe)
	}
	if len(details) > 0 {
		return domain.NewValidationError(details...)
	}

	result, err := h.authService.Login(c.Request().Context(), ports.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, authResponse{
		Token: result.Token,
		User:  toUserResponse(&result.User),
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/core/ports"
)

// UserHandler exposes the authenticated user-management endpoints.
type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// List returns one page of users. Admin only.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        page   query     int     false  "Page number (>=1)"
// @Param        limit  query     int     false  "Page size (1-100)"
// @Param        sort   query     string  false  "Sort key"  Enums(createdAt:1, createdAt:-1, fullName:1, fullName:-1)
// @Success      200    {object}  userPageResponse
// @Failure      400    {object}  map[string]any
// @Router       /users [get]
func (h *UserHandler) List(c echo.Context) error {
	params, err := parseListParams(c)
	if err != nil {
		return err
	}

	page, err := h.userService.List(c.Request().Context(), params)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserPageResponse(page))
}

// GetByID returns a single user. Admin or self.
//
// @Summary      Get a user by id
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]any
// @Router       /users/{id} [get]
func (h *UserHandler) GetByID(c echo.Context) error {
	user, err := h.userService.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(user))
}

// Update applies a partial update to a user. Admin or self.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string             true  "User id"
// @Param        body  body      updateUserRequest  true  "Fields to update"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  map[string]any
// @Failure      404   {object}  map[string]any
// @Router       /users/{id} [patch]
func (h *UserHandler) Update(c echo.Context) error {
	var req updateUserRequest
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
	if req.empty() {
		details = append(details, domain.FieldError{Path: "body", Message: "provide at least one field to update"})
	}
	if len(details) > 0 {
		return domain.NewValidationError(details...)
	}

	updated, err := h.userService.UpdatePartial(c.Request().Context(), c.Param("id"), domain.UserPatch{
		FullName:  req.FullName,
		BirthDate: birthDate,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toUserResponse(updated))
}

// Block deactivates a user account. Admin or self.
//
// @Summary      Block a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]any
// @Router       /users/{id}/block [patch]
func (h *UserHandler) Block(c echo.Context) error {
	updated, err := h.userService.Block(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}

// Unblock reactivates a user account. Admin or self.
//
// @Summary      Unblock a user
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "User id"
// @Success      200  {object}  userResponse
// @Failure      404  {object}  map[string]any
// @Router       /users/{id}/unblock [patch]
func (h *UserHandler) Unblock(c echo.Context) error {
	updated, err := h.userService.Unblock(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(updated))
}

// Delete permanently removes a user account. Admin or self.
//
// @Summary      Delete a user
// @Tags         users
// @Security     BearerAuth
// @Param        id   path  string  true  "User id"
// @Success      204  "No Content"
// @Failure      404  {object}  map[string]any
// @Router       /users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	if err := h.userService.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

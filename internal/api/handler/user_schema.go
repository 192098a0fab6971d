package handler

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// --- Request types ---

type registerRequest struct {
	FullName  string  `json:"fullName"  validate:"required,min=2,max=100"`
	Email     string  `json:"email"     validate:"required,email"`
	Password  string  `json:"password"  validate:"required"`
	BirthDate *string `json:"birthDate"`
}

func (r *registerRequest) normalize() {
	r.FullName = normalizeName(r.FullName)
	r.Email = normalizeEmail(r.Email)
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

func (r *loginRequest) normalize() {
	r.Email = normalizeEmail(r.Email)
}

type updateUserRequest struct {
	FullName  *string `json:"fullName"  validate:"omitempty,min=2,max=100"`
	BirthDate *string `json:"birthDate"`
}

func (r *updateUserRequest) normalize() {
	if r.FullName != nil {
		trimmed := normalizeName(*r.FullName)
		r.FullName = &trimmed
	}
}

func (r *updateUserRequest) empty() bool {
	return r.FullName == nil && r.BirthDate == nil
}

// --- Response types ---

// userResponse is the wire shape of a SafeUser. It has no field for the
// password hash at all.
type userResponse struct {
	ID        string  `json:"id"`
	FullName  string  `json:"fullName"`
	BirthDate *string `json:"birthDate"`
	Email     string  `json:"email"`
	Role      string  `json:"role"`
	IsActive  bool    `json:"isActive"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userPageResponse struct {
	Items []userResponse `json:"items"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
	Total int64          `json:"total"`
	Pages int            `json:"pages"`
}

func toUserResponse(u *domain.SafeUser) userResponse {
	var birth *string
	if u.BirthDate != nil {
		s := u.BirthDate.UTC().Format("2006-01-02")
		birth = &s
	}
	return userResponse{
		ID:        u.ID,
		FullName:  u.FullName,
		BirthDate: birth,
		Email:     u.Email,
		Role:      string(u.Role),
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt.UTC().Format(time.RFC3339),
		UpdatedAt: u.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

func toUserPageResponse(page domain.UserPage) userPageResponse {
	items := make([]userResponse, 0, len(page.Items))
	for i := range page.Items {
		items = append(items, toUserResponse(&page.Items[i]))
	}
	return userPageResponse{
		Items: items,
		Page:  page.Page,
		Limit: page.Limit,
		Total: page.Total,
		Pages: page.Pages,
	}
}

// --- List query coercion ---

const (
	defaultPage  = 1
	defaultLimit = 20
	maxLimit     = 100
	// maxPage keeps skip = (page-1)*limit far away from integer overflow;
	// no negative skip can ever reach the store.
	maxPage = 1_000_000
)

// parseListParams coerces the string query params into validated pagination
// settings, collecting every offending parameter.
func parseListParams(c echo.Context) (domain.ListParams, error) {
	params := domain.ListParams{
		Page:  defaultPage,
		Limit: defaultLimit,
		Sort:  domain.SortCreatedAtDesc,
	}

	var details []domain.FieldError

	if raw := c.QueryParam("page"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxPage {
			details = append(details, domain.FieldError{Path: "page", Message: "must be an integer between 1 and 1000000"})
		} else {
			params.Page = n
		}
	}

	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > maxLimit {
			details = append(details, domain.FieldError{Path: "limit", Message: "must be an integer between 1 and 100"})
		} else {
			params.Limit = n
		}
	}

	if raw := c.QueryParam("sort"); raw != "" {
		sort := domain.UserSort(raw)
		if !sort.Valid() {
			details = append(details, domain.FieldError{Path: "sort", Message: "must be one of: createdAt:1, createdAt:-1, fullName:1, fullName:-1"})
		} else {
			params.Sort = sort
		}
	}

	if len(details) > 0 {
		return domain.ListParams{}, domain.NewValidationError(details...)
	}
	return params, nil
}

package ports

import (
	"context"
	"time"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// RegisterInput is the normalized registration command produced by the
// validation layer. Email is already lower-cased and trimmed; BirthDate,
// when present, is a UTC midnight instant.
type RegisterInput struct {
	FullName  string
	Email     string
	Password  string
	BirthDate *time.Time
}

// LoginInput is the normalized login command.
type LoginInput struct {
	Email    string
	Password string
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token string
	User  domain.SafeUser
}

// AuthService covers the unauthenticated account operations.
type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (*domain.SafeUser, error)
	Login(ctx context.Context, input LoginInput) (*LoginResult, error)
}

// UserService covers the authenticated user-management operations.
type UserService interface {
	GetByID(ctx context.Context, id string) (*domain.SafeUser, error)
	List(ctx context.Context, params domain.ListParams) (domain.UserPage, error)
	UpdatePartial(ctx context.Context, id string, patch domain.UserPatch) (*domain.SafeUser, error)
	Block(ctx context.Context, id string) (*domain.SafeUser, error)
	Unblock(ctx context.Context, id string) (*domain.SafeUser, error)
	Delete(ctx context.Context, id string) error
}

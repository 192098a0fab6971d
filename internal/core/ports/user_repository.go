package ports

import (
	"context"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// UserRepository is the persistence boundary for user accounts.
//
// Lookups return (nil, nil) when no record matches, including when the id
// is not syntactically valid for the store. Only FindByEmailWithSecret may
// surface the password hash.
type UserRepository interface {
	Create(ctx context.Context, user domain.NewUser) (*domain.SafeUser, error)
	FindByEmail(ctx context.Context, email string) (*domain.SafeUser, error)
	FindByEmailWithSecret(ctx context.Context, email string) (*domain.UserWithSecret, error)
	FindByID(ctx context.Context, id string) (*domain.SafeUser, error)
	List(ctx context.Context, params domain.ListParams) (domain.UserPage, error)
	UpdatePartial(ctx context.Context, id string, patch domain.UserPatch) (*domain.SafeUser, error)
	SetActive(ctx context.Context, id string, active bool) (*domain.SafeUser, error)
	DeleteByID(ctx context.Context, id string) (bool, error)
}

// UserCache is an optional read-through cache for SafeUser lookups by id.
// Implementations must fail soft: a cache miss and a cache outage look the
// same to callers.
type UserCache interface {
	Get(ctx context.Context, id string) (*domain.SafeUser, bool)
	Set(ctx context.Context, user *domain.SafeUser)
	Invalidate(ctx context.Context, id string)
}

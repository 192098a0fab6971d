package service

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/useraccounts/user-service/internal/api/metrics"
	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/core/ports"
)

// UserService implements the authenticated user-management use cases.
// The cache is optional; a nil cache means every read hits the repository.
type UserService struct {
	repo   ports.UserRepository
	cache  ports.UserCache
	logger zerolog.Logger
}

func NewUserService(repo ports.UserRepository, cache ports.UserCache, logger zerolog.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, logger: logger}
}

// GetByID returns a single account, reading through the cache when one is
// configured.
func (s *UserService) GetByID(ctx context.Context, id string) (*domain.SafeUser, error) {
	if s.cache != nil {
		if user, ok := s.cache.Get(ctx, id); ok {
			return user, nil
		}
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if s.cache != nil {
		s.cache.Set(ctx, user)
	}
	return user, nil
}

// List returns one page of accounts under the validated pagination params.
func (s *UserService) List(ctx context.Context, params domain.ListParams) (domain.UserPage, error) {
	return s.repo.List(ctx, params)
}

// UpdatePartial applies the allowed fields to an account. The empty-patch
// case is rejected by validation before it ever reaches this method.
func (s *UserService) UpdatePartial(ctx context.Context, id string, patch domain.UserPatch) (*domain.SafeUser, error) {
	updated, err := s.repo.UpdatePartial(ctx, id, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrUserNotFound
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("user_id", id).Msg("user updated")
	return updated, nil
}

// Block deactivates an account; a blocked account can no longer log in.
func (s *UserService) Block(ctx context.Context, id string) (*domain.SafeUser, error) {
	return s.setActive(ctx, id, false)
}

// Unblock reactivates an account.
func (s *UserService) Unblock(ctx context.Context, id string) (*domain.SafeUser, error) {
	return s.setActive(ctx, id, true)
}

// Delete permanently removes an account. Terminal: a second delete of the
// same id reports ErrUserNotFound.
func (s *UserService) Delete(ctx context.Context, id string) error {
	removed, err := s.repo.DeleteByID(ctx, id)
	if err != nil {
		return err
	}
	if !removed {
		return domain.ErrUserNotFound
	}

	s.invalidate(ctx, id)
	metrics.DeletedTotal.Inc()
	s.logger.Info().Str("user_id", id).Msg("user deleted")
	return nil
}

func (s *UserService) setActive(ctx context.Context, id string, active bool) (*domain.SafeUser, error) {
	updated, err := s.repo.SetActive(ctx, id, active)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, domain.ErrUserNotFound
	}

	s.invalidate(ctx, id)
	s.logger.Info().Str("user_id", id).Bool("is_active", active).Msg("user active flag changed")
	return updated, nil
}

func (s *UserService) invalidate(ctx context.Context, id string) {
	if s.cache != nil {
		s.cache.Invalidate(ctx, id)
	}
}

package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/useraccounts/user-service/internal/api/metrics"
	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/core/ports"
	"github.com/useraccounts/user-service/internal/pkg/password"
	"github.com/useraccounts/user-service/internal/pkg/token"
)

// AuthService implements registration and login on top of the repository,
// the credential engine, and the token issuer.
type AuthService struct {
	repo   ports.UserRepository
	hasher *password.Hasher
	tokens *token.Manager
	logger zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, hasher *password.Hasher, tokens *token.Manager, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, tokens: tokens, logger: logger}
}

// Register creates an account with role USER, active, and a hashed
// credential. The email pre-check fails fast on the common case; the race
// it leaves open is closed by the store's unique index, which surfaces as
// the same domain.ErrDuplicateEmail.
func (s *AuthService) Register(ctx context.Context, input ports.RegisterInput) (*domain.SafeUser, error) {
	existing, err := s.repo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
		return nil, domain.ErrDuplicateEmail
	}

	hash, err := s.hasher.Hash(ctx, input.Password)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created, err := s.repo.Create(ctx, domain.NewUser{
		FullName:     input.FullName,
		BirthDate:    input.BirthDate,
		Email:        input.Email,
		PasswordHash: hash,
		Role:         domain.RoleUser,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEmail) {
			metrics.RegistrationsTotal.WithLabelValues("duplicate_email").Inc()
		}
		return nil, err
	}

	metrics.RegistrationsTotal.WithLabelValues("created").Inc()
	s.logger.Info().Str("user_id", created.ID).Msg("user registered")
	return created, nil
}

// Login authenticates by email and password and issues an access token.
// A missing account and a credential mismatch produce the identical
// ErrInvalidCredentials so callers cannot enumerate registered emails.
// The blocked check runs only after the credential matched.
func (s *AuthService) Login(ctx context.Context, input ports.LoginInput) (*ports.LoginResult, error) {
	user, err := s.repo.FindByEmailWithSecret(ctx, input.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(input.Password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		metrics.LoginsTotal.WithLabelValues("invalid_credentials").Inc()
		return nil, domain.ErrInvalidCredentials
	}

	if !user.IsActive {
		metrics.LoginsTotal.WithLabelValues("blocked").Inc()
		return nil, domain.ErrUserBlocked
	}

	signed, err := s.tokens.Issue(token.Claims{
		Subject: user.ID,
		Role:    user.Role,
		Email:   user.Email,
	})
	if err != nil {
		return nil, err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	s.logger.Info().Str("user_id", user.ID).Msg("user logged in")
	return &ports.LoginResult{Token: signed, User: user.SafeUser}, nil
}

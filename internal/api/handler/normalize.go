package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/useraccounts/user-service/internal/core/domain"
	"github.com/useraccounts/user-service/internal/pkg/password"
)

// Normalization is a pure pre-pass over raw input: it rewrites values into
// canonical form so the structural checks that follow see exactly what
// would be stored. Each helper is side-effect free and idempotent.

// normalizeName trims surrounding whitespace from a display name.
func normalizeName(s string) string {
	return strings.TrimSpace(s)
}

// normalizeEmail lower-cases and trims an email so lookups and the unique
// index operate on one canonical spelling.
func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// parseBirthDate converts an optional ISO calendar date into a UTC midnight
// instant. It enforces the date-only not-in-the-future rule; an empty or
// absent value is simply no date.
func parseBirthDate(raw *string) (*time.Time, *domain.FieldError) {
	if raw == nil {
		return nil, nil
	}
	s := strings.TrimSpace(*raw)
	if s == "" {
		return nil, nil
	}

	t, err := time.ParseInLocation("2006-01-02", s, time.UTC)
	if err != nil {
		return nil, &domain.FieldError{Path: "birthDate", Message: "must be a calendar date (YYYY-MM-DD)"}
	}

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if t.After(today) {
		return nil, &domain.FieldError{Path: "birthDate", Message: "must not be in the future"}
	}
	return &t, nil
}

// checkPassword enforces the credential length bound in bytes, the unit
// bcrypt operates in. A rune-based tag check undercounts multibyte input
// and would let an over-long password through to the hasher. The empty
// case is left to the required tag so it reports a single failure.
func checkPassword(plain string) *domain.FieldError {
	if plain == "" {
		return nil
	}
	if len(plain) < password.MinLength || len(plain) > password.MaxLength {
		return &domain.FieldError{
			Path:    "password",
			Message: fmt.Sprintf("must be between %d and %d bytes", password.MinLength, password.MaxLength),
		}
	}
	return nil
}

// bindStrict decodes a JSON body into v, rejecting unknown fields. Payloads
// that do not decode at all come back as a single body-level validation
// failure.
func bindStrict(c echo.Context, v any) error {
	dec := json.NewDecoder(c.Request().Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return domain.NewValidationError(domain.FieldError{Path: "body", Message: "request body is required"})
		}
		return domain.NewValidationError(domain.FieldError{Path: "body", Message: err.Error()})
	}
	return nil
}

// structDetails runs the structural check and unwraps its field failures so
// callers can merge them with normalization failures before responding.
func structDetails(c echo.Context, v any) ([]domain.FieldError, error) {
	err := c.Validate(v)
	if err == nil {
		return nil, nil
	}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return ve.Details, nil
	}
	return nil, err
}

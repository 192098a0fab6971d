package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/useraccounts/user-service/internal/core/domain"
)

func TestIssueVerifyRoundTrip(t *testing.T) {
	m := NewManager("secret", "", 0)

	signed, err := m.Issue(Claims{Subject: "user-1", Role: domain.RoleAdmin, Email: "a@x.com"})
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestVerifyWrongSecret(t *testing.T) {
	signed, err := NewManager("secret", "", 0).Issue(Claims{Subject: "u", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = NewManager("other", "", 0).Verify(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyWrongIssuer(t *testing.T) {
	signed, err := NewManager("secret", "other-service", time.Hour).Issue(Claims{Subject: "u", Role: domain.RoleUser})
	require.NoError(t, err)

	_, err = NewManager("secret", DefaultIssuer, time.Hour).Verify(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyExpired(t *testing.T) {
	m := NewManager("secret", "", time.Minute)
	m.now = func() time.Time { return time.Now().Add(-2 * time.Minute) }

	signed, err := m.Issue(Claims{Subject: "u", Role: domain.RoleUser})
	require.NoError(t, err)

	m.now = time.Now
	_, err = m.Verify(signed)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRejectsForeignAlgorithm(t *testing.T) {
	// A token signed with "none" must never get past the pinned HS256 check.
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub":  "u",
		"role": string(domain.RoleUser),
		"iss":  DefaultIssuer,
		"exp":  time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = NewManager("secret", "", 0).Verify(raw)
	assert.ErrorIs(t, err, domain.ErrInvalidToken)
}

func TestVerifyRejectsMalformedClaims(t *testing.T) {
	m := NewManager("secret", "", 0)

	mint := func(payload jwt.MapClaims) string {
		payload["iss"] = DefaultIssuer
		payload["exp"] = time.Now().Add(time.Hour).Unix()
		raw, err := jwt.NewWithClaims(jwt.SigningMethodHS256, payload).SignedString([]byte("secret"))
		require.NoError(t, err)
		return raw
	}

	_, err := m.Verify(mint(jwt.MapClaims{"role": string(domain.RoleUser)}))
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "missing subject")

	_, err = m.Verify(mint(jwt.MapClaims{"sub": "u", "role": "SUPERUSER"}))
	assert.ErrorIs(t, err, domain.ErrInvalidToken, "role outside the allowed set")
}

func TestIssueOmitsEmptyEmail(t *testing.T) {
	m := NewManager("secret", "", 0)

	signed, err := m.Issue(Claims{Subject: "u", Role: domain.RoleUser})
	require.NoError(t, err)

	claims, err := m.Verify(signed)
	require.NoError(t, err)
	assert.Empty(t, claims.Email)
}

// Package token issues and verifies the bearer tokens used for API access.
// A single signing algorithm (HS256) and a fixed issuer are pinned at both
// ends; there is no algorithm negotiation and no revocation list, so a
// token is valid exactly as long as its signature and expiry hold.
package token

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/useraccounts/user-service/internal/core/domain"
)

// DefaultIssuer identifies tokens minted by this service.
const DefaultIssuer = "user-service"

// DefaultTTL is the access-token lifetime when none is configured.
const DefaultTTL = 24 * time.Hour

// Claims are the identity facts embedded in an access token.
type Claims struct {
	Subject string
	Role    domain.Role
	Email   string
}

// Manager signs and verifies access tokens.
type Manager struct {
	secret []byte
	issuer string
	ttl    time.Duration
	now    func() time.Time
}

// NewManager builds a Manager. Empty issuer and non-positive ttl fall back
// to the package defaults.
func NewManager(secret string, issuer string, ttl time.Duration) *Manager {
	if issuer == "" {
		issuer = DefaultIssuer
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		secret: []byte(secret),
		issuer: issuer,
		ttl:    ttl,
		now:    time.Now,
	}
}

// Issue signs an access token for the given claims.
func (m *Manager) Issue(claims Claims) (string, error) {
	now := m.now()

	payload := jwt.MapClaims{
		"sub":  claims.Subject,
		"role": string(claims.Role),
		"iss":  m.issuer,
		"iat":  now.Unix(),
		"exp":  now.Add(m.ttl).Unix(),
	}
	if claims.Email != "" {
		payload["email"] = claims.Email
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, payload)
	signed, err := t.SignedString(m.secret)
	if err != nil {
		return "", err
	}
	return signed, nil
}

// Verify checks signature, algorithm, issuer, and expiry, then validates
// the claim shape: subject present, role in the allowed set. Every failure
// mode collapses into domain.ErrInvalidToken.
func (m *Manager) Verify(raw string) (*Claims, error) {
	payload := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(raw, payload, m.keyFunc,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(m.issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !parsed.Valid {
		return nil, domain.ErrInvalidToken
	}

	sub, _ := payload["sub"].(string)
	roleStr, _ := payload["role"].(string)
	role := domain.Role(roleStr)
	if sub == "" || !role.Valid() {
		return nil, domain.ErrInvalidToken
	}

	email, _ := payload["email"].(string)

	return &Claims{Subject: sub, Role: role, Email: email}, nil
}

func (m *Manager) keyFunc(t *jwt.Token) (interface{}, error) {
	if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return m.secret, nil
}

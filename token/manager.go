// Package token produces and parses the bearer tokens handed to the session
// lifecycle after a successful login. The lifecycle itself treats tokens as
// opaque strings; this package is the collaborator that gives them shape.
package token

import (
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/tenantflow/authcore/identity"
)

// Claims carried inside a session token.
type Claims struct {
	TenantID string `json:"tid,omitempty"`
	Role     string `json:"role"`
	Email    string `json:"email,omitempty"`
	Name     string `json:"name,omitempty"`
	jwtlib.RegisteredClaims
}

// Manager mints and parses HMAC-signed session tokens.
type Manager struct {
	secret  []byte
	issuer  string
	ttl     time.Duration
	nowTime func() time.Time
}

// ManagerOption configures a Manager.
type ManagerOption func(*Manager)

// WithNowTime sets the clock function (primarily for testing).
func WithNowTime(nowFunc func() time.Time) ManagerOption {
	return func(m *Manager) {
		m.nowTime = nowFunc
	}
}

// New creates a token manager. ttl is the validity window stamped into every
// minted token and reported to the session lifecycle.
func New(secret []byte, issuer string, ttl time.Duration, options ...ManagerOption) (*Manager, error) {
	if len(secret) == 0 {
		return nil, errors.New("[token.New] signing secret is required")
	}
	if ttl <= 0 {
		return nil, errors.New("[token.New] ttl must be positive")
	}

	m := &Manager{
		secret:  secret,
		issuer:  issuer,
		ttl:     ttl,
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(m)
	}
	return m, nil
}

// TTL returns the validity window minted tokens carry, for the caller to
// forward to the session lifecycle alongside the token.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Mint signs a token for the given identity.
func (m *Manager) Mint(id identity.Identity) (string, error) {
	if err := id.Validate(); err != nil {
		return "", errors.Wrap(err, "[Manager.Mint] invalid identity")
	}

	now := m.nowTime()
	claims := Claims{
		TenantID: id.TenantID,
		Role:     string(id.Role),
		Email:    id.Email,
		Name:     id.FullName,
		RegisteredClaims: jwtlib.RegisteredClaims{
			Issuer:    m.issuer,
			Subject:   id.UserID,
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(m.ttl)),
			ID:        uuid.New().String(),
		},
	}

	signed, err := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", errors.Wrap(err, "[Manager.Mint] sign token")
	}
	return signed, nil
}

// Parse verifies a token's signature and expiry and returns the identity it
// carries.
func (m *Manager) Parse(raw string) (identity.Identity, error) {
	var claims Claims
	parsed, err := jwtlib.ParseWithClaims(raw, &claims, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %q", t.Header["alg"])
		}
		return m.secret, nil
	}, jwtlib.WithTimeFunc(m.nowTime), jwtlib.WithIssuer(m.issuer))
	if err != nil {
		return identity.Identity{}, errors.Wrap(err, "[Manager.Parse] parse token")
	}
	if !parsed.Valid {
		return identity.Identity{}, errors.New("[Manager.Parse] token is not valid")
	}

	id := identity.Identity{
		UserID:   claims.Subject,
		TenantID: claims.TenantID,
		Role:     identity.Role(claims.Role),
		Email:    claims.Email,
		FullName: claims.Name,
		Active:   true,
	}
	if err := id.Validate(); err != nil {
		return identity.Identity{}, errors.Wrap(err, "[Manager.Parse] invalid identity claims")
	}
	return id, nil
}

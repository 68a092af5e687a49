// Package auth issues and checks the bearer tokens that identify a user to
// the API. Accounts live outside this service; a token only carries the user ID.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/wordpractice/internal/domain"
)

// AccessToken is a signed HS256 token and what it grants.
type AccessToken struct {
	Token     string
	UserID    uuid.UUID
	ExpiresAt time.Time
}

// JWTManager signs and verifies access tokens with a shared secret. The
// secret length is enforced by configuration validation.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	now       func() time.Time
	parser    *jwt.Parser
}

func NewJWTManager(secret, issuer string, accessTTL time.Duration) *JWTManager {
	m := &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		now:       time.Now,
	}
	m.parser = jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuer),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(func() time.Time { return m.now() }),
	)
	return m
}

// IssueAccessToken signs a token whose subject is userID. The guest has no
// tokens.
func (m *JWTManager) IssueAccessToken(userID uuid.UUID) (AccessToken, error) {
	if userID == uuid.Nil {
		return AccessToken{}, errors.New("issue token: guest user has no token")
	}

	now := m.now()
	expires := now.Add(m.accessTTL)
	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		Issuer:    m.issuer,
		ExpiresAt: jwt.NewNumericDate(expires),
		IssuedAt:  jwt.NewNumericDate(now),
		ID:        uuid.NewString(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return AccessToken{}, fmt.Errorf("sign token: %w", err)
	}
	return AccessToken{Token: signed, UserID: userID, ExpiresAt: expires.Truncate(time.Second)}, nil
}

// ValidateAccessToken returns the user a token was issued for. Every failure
// matches domain.ErrUnauthorized.
func (m *JWTManager) ValidateAccessToken(token string) (uuid.UUID, error) {
	if token == "" {
		return uuid.Nil, fmt.Errorf("%w: empty token", domain.ErrUnauthorized)
	}

	claims := &jwt.RegisteredClaims{}
	if _, err := m.parser.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return uuid.Nil, fmt.Errorf("%w: %w", domain.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil || userID == uuid.Nil {
		return uuid.Nil, fmt.Errorf("%w: invalid subject %q", domain.ErrUnauthorized, claims.Subject)
	}
	return userID, nil
}

package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/eventpill-api/internal/config"
	"github.com/eventpill-api/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// TokenTTL is the fixed validity window of every bearer token.
const TokenTTL = time.Hour

// DefaultSubject is used when Issue is called without a subject.
const DefaultSubject = "guest"

// Claims holds the JWT payload fields.
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// Provider signs and verifies HS256 JWTs with a shared secret.
type Provider struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewProvider(secret string) (*Provider, error) {
	if secret == "" {
		return nil, errors.New("jwt secret is not configured")
	}
	if len(secret) < config.MinJWTSecretLen {
		return nil, fmt.Errorf("jwt secret must be at least %d bytes", config.MinJWTSecretLen)
	}
	return &Provider{secret: []byte(secret), ttl: TokenTTL, now: time.Now}, nil
}

// Issue mints a token for subjectID valid for TokenTTL.
func (p *Provider) Issue(subjectID string) (string, error) {
	if subjectID == "" {
		subjectID = DefaultSubject
	}
	now := p.now()
	claims := Claims{
		UserID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subjectID,
			ExpiresAt: jwt.NewNumericDate(now.Add(p.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(p.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w: %w", domain.ErrSigning, err)
	}
	return signed, nil
}

// Verify parses tokenStr and checks signature, algorithm and expiry.
// Every failure wraps domain.ErrInvalidCredential.
func (p *Provider) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(p.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidCredential, err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("invalid token claims: %w", domain.ErrInvalidCredential)
	}
	return claims, nil
}

// Package session issues and verifies the signed session token carried in the
// "token" cookie.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/project-tracker/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// CookieName is the credential carrier.
const CookieName = "token"

// Codec signs HS256 tokens whose subject is a user ID. The key is fixed at
// construction and never changes for the life of the process.
type Codec struct {
	key    []byte
	ttl    time.Duration
	parser *jwt.Parser
}

func NewCodec(key []byte, ttl time.Duration) *Codec {
	k := make([]byte, len(key))
	copy(k, key)
	return &Codec{
		key: k,
		ttl: ttl,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

// TTL is how long an issued token stays valid.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Issue returns a signed token for userID.
func (c *Codec) Issue(userID string) (string, error) {
	if userID == "" {
		return "", errors.New("issue token: empty subject")
	}
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Verify returns the subject of raw. Every failure, including an empty
// token, is reported as domain.ErrTokenInvalid.
func (c *Codec) Verify(raw string) (string, error) {
	if raw == "" {
		return "", domain.ErrTokenInvalid
	}

	var claims jwt.RegisteredClaims
	token, err := c.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return c.key, nil
	})
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}
	if claims.Subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return claims.Subject, nil
}

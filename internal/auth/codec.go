package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret indicates the signing secret is absent from configuration.
// Minting must fail loudly rather than issue an unsigned credential.
var ErrNoSecret = errors.New("session secret is not configured")

// Codec mints and verifies the stateless admin session credential. A token
// carries only a role marker and an expiry; there is no server-side session
// record, so a token cannot be revoked before it expires.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec constructs a codec signing with the provided symmetric secret.
// Tokens expire after ttl; a non-positive ttl falls back to 12 hours.
func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 12 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured token lifetime.
func (c *Codec) TTL() time.Duration {
	return c.ttl
}

// Mint issues a signed admin session token valid for the configured TTL.
func (c *Codec) Mint() (string, error) {
	if len(c.secret) == 0 {
		return "", ErrNoSecret
	}

	claims := jwt.MapClaims{
		"role": "admin",
		"exp":  time.Now().Add(c.ttl).Unix(),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("sign session token: %w", err)
	}

	return signed, nil
}

// Verify reports whether the token is well formed, carries the admin role,
// was signed with the current secret, and has not expired. Every failure
// mode yields false; callers cannot distinguish a forged token from a
// missing one.
func (c *Codec) Verify(token string) bool {
	if token == "" || len(c.secret) == 0 {
		return false
	}

	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	)

	parsed, err := parser.Parse(token, func(*jwt.Token) (any, error) {
		return c.secret, nil
	})
	if err != nil || !parsed.Valid {
		return false
	}

	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return false
	}

	role, _ := claims["role"].(string)
	return role == "admin"
}

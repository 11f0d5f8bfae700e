// Package state encodes the pending-login state round-tripped through the
// identity provider. The state is an HMAC-signed token so a callback can
// only carry a return path this process issued.
package state

import (
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// stateTTL bounds how long a login redirect may stay pending.
const stateTTL = time.Hour

type claims struct {
	ReturnTo string `json:"return_to"`
	jwt.RegisteredClaims
}

// Codec signs and verifies pending-login state values.
type Codec struct {
	secret []byte
	now    func() time.Time
}

func NewCodec(secret string) *Codec {
	return &Codec{secret: []byte(secret), now: time.Now}
}

// Encode wraps the return path in a signed, expiring state value.
func (c *Codec) Encode(returnTo string) (string, error) {
	now := c.now()
	cl := claims{
		ReturnTo: SanitizeReturnTo(returnTo),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(stateTTL)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, cl).SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign state: %w", err)
	}
	return signed, nil
}

// Decode returns the return path carried by a state value. Absent,
// tampered or expired state degrades to the site root rather than failing
// the login.
func (c *Codec) Decode(raw string) string {
	if raw == "" {
		return "/"
	}
	var cl claims
	_, err := jwt.ParseWithClaims(raw, &cl,
		func(*jwt.Token) (interface{}, error) { return c.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(c.now),
	)
	if err != nil {
		return "/"
	}
	return SanitizeReturnTo(cl.ReturnTo)
}

// SanitizeReturnTo normalizes a return path to a local one. Absolute URLs
// and protocol-relative paths would be open redirects.
func SanitizeReturnTo(p string) string {
	if p == "" || !strings.HasPrefix(p, "/") || strings.HasPrefix(p, "//") {
		return "/"
	}
	return p
}

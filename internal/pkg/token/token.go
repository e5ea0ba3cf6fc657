// Package token signs and verifies the first-party HS256 bearer tokens
// issued by the token exchange. Verification supports an ordered list of
// secrets so provider-signed tokens keep working while sessions migrate to
// the first-party secret.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrNoSecret means no signing secret is configured at all. Callers must
// surface this as a server fault, never as a bad-token rejection.
var ErrNoSecret = errors.New("token: no secret configured")

// Sign issues an HS256 token embedding the user's identity plus standard
// issued-at/expires-at fields.
func Sign(id, email, name, picture string, secret []byte, ttl time.Duration) (string, error) {
	if len(secret) == 0 {
		return "", ErrNoSecret
	}

	now := time.Now()
	claims := jwt.MapClaims{
		"id":    id,
		"email": email,
		"name":  name,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	if picture != "" {
		claims["picture"] = picture
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(secret)
}

// Verifier validates bearer tokens against an ordered list of secrets.
type Verifier struct {
	secrets [][]byte
}

// NewVerifier builds a Verifier from the given secrets in priority order,
// skipping empty entries.
func NewVerifier(secrets ...string) *Verifier {
	v := &Verifier{}
	for _, s := range secrets {
		if s != "" {
			v.secrets = append(v.secrets, []byte(s))
		}
	}
	return v
}

// Verify checks signature and expiry against each configured secret in
// order and returns the claims of the first successful attempt. When every
// attempt fails, the first attempt's error is returned. With no secrets
// configured the result is ErrNoSecret.
func (v *Verifier) Verify(raw string) (jwt.MapClaims, error) {
	if len(v.secrets) == 0 {
		return nil, ErrNoSecret
	}

	var firstErr error
	for _, secret := range v.secrets {
		claims := jwt.MapClaims{}
		_, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (interface{}, error) {
			if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
				return nil, jwt.ErrTokenSignatureInvalid
			}
			return secret, nil
		})
		if err == nil {
			return claims, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return nil, firstErr
}

// Subject returns the token subject under either the "id" or the standard
// "sub" claim name.
func Subject(claims jwt.MapClaims) string {
	if id, _ := claims["id"].(string); id != "" {
		return id
	}
	sub, _ := claims["sub"].(string)
	return sub
}

// Picture returns the avatar URL under either "picture" or "image".
func Picture(claims jwt.MapClaims) string {
	if p, _ := claims["picture"].(string); p != "" {
		return p
	}
	img, _ := claims["image"].(string)
	return img
}

package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pedrohsilva/tarefas-api/internal/domain"
)

// TokenIssuer mints and verifies the bearer tokens used on every
// authenticated request. Tokens are HS256 JWTs carrying the subject
// (the user's email) and an absolute expiry; there is no server-side
// revocation, expiry is the only termination mechanism.
type TokenIssuer struct {
	key []byte
	ttl time.Duration
	loc *time.Location
	now func() time.Time
}

func NewTokenIssuer(key []byte, ttl time.Duration, loc *time.Location) *TokenIssuer {
	if loc == nil {
		loc = time.UTC
	}
	return &TokenIssuer{key: key, ttl: ttl, loc: loc, now: time.Now}
}

// Issue signs a token for the given subject. Issuance and verification
// read the clock in the same fixed time zone so expiry never crosses a
// zone boundary.
func (i *TokenIssuer) Issue(subject string) (string, error) {
	now := i.now().In(i.loc)
	claims := jwt.MapClaims{
		"sub": subject,
		"iat": now.Unix(),
		"exp": now.Add(i.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(i.key)
	if err != nil {
		return "", fmt.Errorf("sign jwt: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry and returns the subject.
// There is no decode-without-verify path.
func (i *TokenIssuer) Verify(raw string) (string, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return i.key, nil
	}, jwt.WithTimeFunc(func() time.Time { return i.now().In(i.loc) }))
	if err != nil || !token.Valid {
		return "", domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", domain.ErrTokenInvalid
	}
	if _, ok := claims["exp"]; !ok {
		return "", domain.ErrTokenInvalid
	}

	subject, ok := claims["sub"].(string)
	if !ok || subject == "" {
		return "", domain.ErrTokenInvalid
	}
	return subject, nil
}

package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"rentwheels/pkg/sanitizer"
)

var ErrInvalidCredential = errors.New("invalid session credential")

// TokenVerifier issues and verifies HS256 session tokens carrying the
// caller's email as identity.
type TokenVerifier struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenVerifier(secret string, ttl time.Duration) *TokenVerifier {
	return &TokenVerifier{
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func (v *TokenVerifier) TTL() time.Duration {
	return v.ttl
}

// Issue signs a session token for the given email.
func (v *TokenVerifier) Issue(email string) (string, error) {
	email = sanitizer.SanitizeEmail(email)
	if email == "" {
		return "", fmt.Errorf("email cannot be empty")
	}

	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(v.ttl).Unix(),
	})

	return token.SignedString(v.secret)
}

// Verify validates the token signature and expiry and returns the email
// claim. Any failure maps to ErrInvalidCredential; callers never see
// library-level detail.
func (v *TokenVerifier) Verify(tokenString string) (string, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !token.Valid {
		return "", ErrInvalidCredential
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", ErrInvalidCredential
	}

	email, ok := claims["email"].(string)
	if !ok || email == "" {
		return "", ErrInvalidCredential
	}

	return sanitizer.SanitizeEmail(email), nil
}

package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v4"

	apperrors "taskplanner/internal/errors"
)

// DefaultAccessTokenTTL is used when no expiry is configured.
const DefaultAccessTokenTTL = 30 * time.Minute

// TokenService issues and verifies signed bearer tokens. Tokens are
// self-contained: the subject claim carries the user email and the expiry is
// always issued-at plus the configured TTL. There is no revocation list; the
// short TTL is the trade-off for keeping the server stateless.
type TokenService struct {
	secret []byte
	method jwt.SigningMethod
	ttl    time.Duration
}

// NewTokenService creates a token service for the given secret and HMAC
// algorithm name. Unknown or non-HMAC algorithms fall back to HS256.
func NewTokenService(secret, algorithm string, ttl time.Duration) *TokenService {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}
	if ttl <= 0 {
		ttl = DefaultAccessTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		method: method,
		ttl:    ttl,
	}
}

// Issue signs a new access token for the given user email.
func (s *TokenService) Issue(email string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   email,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	return jwt.NewWithClaims(s.method, claims).SignedString(s.secret)
}

// Verify checks signature and expiry and returns the subject email.
// Malformed tokens, wrong signing methods, expired tokens and tokens without a
// subject all fail with ErrInvalidToken.
func (s *TokenService) Verify(tokenString string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenString, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return "", apperrors.ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", apperrors.ErrInvalidToken
	}
	return claims.Subject, nil
}

package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/spendwise/expense-api/internal/core/domain"
)

// DefaultTokenTTL is the token validity window when none is configured.
const DefaultTokenTTL = 12 * time.Hour

// TokenService issues and verifies self-contained HS256 tokens encoding a
// user id and an expiry. There is no revocation list; logout is client-side
// discard.
type TokenService struct {
	secret []byte
	ttl    time.Duration
}

func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(secret), ttl: ttl}
}

// Issue produces a signed token for the given user id.
func (s *TokenService) Issue(userID int64) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(s.ttl).Unix(),
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Verify parses and validates a token, returning the embedded user id.
// Malformed tokens, wrong signatures, unexpected signing methods, and
// elapsed expiries all surface as domain.ErrTokenInvalid.
func (s *TokenService) Verify(token string) (int64, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return s.secret, nil
	})
	if err != nil || !tkn.Valid {
		return 0, domain.ErrTokenInvalid
	}

	// JSON numbers decode as float64 inside MapClaims.
	id, ok := claims["user_id"].(float64)
	if !ok || id <= 0 {
		return 0, domain.ErrTokenInvalid
	}
	return int64(id), nil
}

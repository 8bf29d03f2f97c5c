package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	UserID  uint64 `json:"uid"`
	IsStaff bool   `json:"staff"`
	jwt.RegisteredClaims
}

// SignToken mints an HS256 bearer token for the given identity. Token
// issuance is not exposed over HTTP; this exists for provisioning and
// tests.
func SignToken(secret string, userID uint64, isStaff bool, ttl time.Duration) (string, error) {
	claims := Claims{
		UserID:  userID,
		IsStaff: isStaff,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies an HS256 bearer token and returns the actor it
// represents.
func ParseToken(secret, tokenString string) (Actor, error) {
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Anonymous, ErrInvalidToken
	}
	return Actor{UserID: claims.UserID, IsStaff: claims.IsStaff, Authenticated: true}, nil
}

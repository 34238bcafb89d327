package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidSessionToken = errors.New("invalid session token")

// SessionClaims carries the authenticated user identity inside a signed
// session token.
type SessionClaims struct {
	jwt.RegisteredClaims
	UserID string `json:"id"`
}

func GenerateSessionToken(userID string, secret []byte, expiry time.Duration) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiry)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
		UserID: userID,
	})

	return token.SignedString(secret)
}

// ParseSessionToken verifies the signature and expiry and returns the user
// identity claim. Any failure collapses to ErrInvalidSessionToken.
func ParseSessionToken(tokenString string, secret []byte) (string, error) {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidSessionToken
		}
		return secret, nil
	})
	if err != nil || !token.Valid {
		return "", ErrInvalidSessionToken
	}

	if claims.UserID == "" {
		return "", ErrInvalidSessionToken
	}

	return claims.UserID, nil
}

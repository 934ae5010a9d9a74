package server

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/bookhub/bookhub/internal/model"
)

// claims carried by an access token: subject is the user id, role gates views.
type accessClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// issueAccessToken creates a signed HS256 JWT for the given principal.
func issueAccessToken(signKey []byte, userID string, role model.Role, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := accessClaims{
		Role: role.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(signKey)
}

// parseAccessToken verifies signature and expiry and returns subject and role.
// Unknown role strings are rejected here, at the parsing boundary.
func parseAccessToken(signKey []byte, raw string) (userID string, role model.Role, err error) {
	var claims accessClaims
	tok, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return signKey, nil
	})
	if err != nil || !tok.Valid {
		return "", "", errors.New("invalid token")
	}
	r, err := model.ParseRole(claims.Role)
	if err != nil {
		return "", "", err
	}
	return claims.Subject, r, nil
}

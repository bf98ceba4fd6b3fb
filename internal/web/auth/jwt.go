// Package auth issues and checks the signed unlock tokens the web front-end
// stores in cookies after a password gate has been passed.
package auth

import (
	"errors"
	"time"

	"github.com/dmitrijs2005/appgallery/internal/common"
	"github.com/golang-jwt/jwt/v5"
)

// ScopeRegister unlocks the registration form.
const ScopeRegister = "register"

// EditScope unlocks the edit form of one entry only.
func EditScope(entryID string) string {
	return "edit:" + entryID
}

// Claims: стандартные утверждения плюс область действия разблокировки.
type Claims struct {
	jwt.RegisteredClaims
	Scope string `json:"scope"`
}

func GenerateToken(scope string, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		Scope: scope,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// GetScopeFromToken verifies tokenString and returns its scope.
// Expired tokens yield common.ErrTokenExpired, anything else that fails
// verification common.ErrInvalidToken.
func GetScopeFromToken(tokenString string, secretKey []byte) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithExpirationRequired())
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", common.ErrTokenExpired
		}
		return "", common.ErrInvalidToken
	}

	if !token.Valid {
		return "", common.ErrInvalidToken
	}

	return claims.Scope, nil
}

// HasScope reports whether tokenString is valid and grants exactly scope.
func HasScope(tokenString string, secretKey []byte, scope string) bool {
	got, err := GetScopeFromToken(tokenString, secretKey)
	return err == nil && got == scope
}

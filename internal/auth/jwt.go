// Package auth issues and verifies the signed session pointer that marks the
// active user in the local record store.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/examoracle/internal/common"
	"github.com/dmitrijs2005/examoracle/internal/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the public user next to the registered claims, so a
// reload restores the session without another lookup.
type Claims struct {
	jwt.RegisteredClaims
	User models.User `json:"user"`
}

// GenerateToken signs an HS256 token for user valid for validityDuration.
func GenerateToken(user models.User, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		User: user,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns the user it carries.
// Expired tokens yield common.ErrTokenExpired, anything else unverifiable
// yields common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*models.User, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.User.ID == "" || claims.Subject != claims.User.ID {
		return nil, common.ErrInvalidToken
	}

	return &claims.User, nil
}

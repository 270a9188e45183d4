package utils

import (
	"errors"
	"fmt"
	"time"

	"github.com/o1egl/paseto"
)

// SessionTokenExpiry bounds one interactive session.
const SessionTokenExpiry = 12 * time.Hour

// SymmetricKeySize is the key length PASETO v2 local tokens require.
const SymmetricKeySize = 32

// TokenClaims struct represents the data in the token (UserID, Role, Expiry).
type TokenClaims struct {
	UserID int       `json:"userId"`
	Role   string    `json:"role"`
	Expiry time.Time `json:"expiry"`
}

// GenerateSessionToken encrypts claims for the given user and role into a
// PASETO token. The key is passed in explicitly; there is no ambient
// key-holding global.
func GenerateSessionToken(key []byte, userID int, role string, expiry time.Duration) (string, error) {
	if len(key) != SymmetricKeySize {
		return "", fmt.Errorf("symmetric key must be %d bytes long, got %d", SymmetricKeySize, len(key))
	}
	claims := TokenClaims{
		UserID: userID,
		Role:   role,
		Expiry: time.Now().Add(expiry),
	}
	token, err := paseto.NewV2().Encrypt(key, claims, nil)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// ValidateSessionToken decrypts the token, checks expiry and, when roles
// are given, requires the claim's role to match one of them.
func ValidateSessionToken(key []byte, tokenString string, requiredRoles ...string) (*TokenClaims, error) {
	if len(key) != SymmetricKeySize {
		return nil, fmt.Errorf("symmetric key must be %d bytes long, got %d", SymmetricKeySize, len(key))
	}
	var claims TokenClaims
	if err := paseto.NewV2().Decrypt(tokenString, key, &claims, nil); err != nil {
		return nil, fmt.Errorf("failed to decrypt token: %w", err)
	}
	if time.Now().After(claims.Expiry) {
		return nil, errors.New("token expired")
	}
	if len(requiredRoles) == 0 {
		return &claims, nil
	}
	for _, role := range requiredRoles {
		if claims.Role == role {
			return &claims, nil
		}
	}
	return nil, errors.New("insufficient permissions")
}

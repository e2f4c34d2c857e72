package utils

import (
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AuthClaims are the JWT claims carried by access tokens. Role travels in the
// token so the authorization middleware can evaluate capabilities without a
// user lookup per request.
type AuthClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateJWT creates a signed HS256 access token for the given user and role.
func GenerateJWT(userID, role, secret string, expiryDuration time.Duration, issuer string) (string, error) {
	now := time.Now()
	claims := AuthClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID,
			ExpiresAt: jwt.NewNumericDate(now.Add(expiryDuration)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseAndValidateJWT parses a token string and validates its signature and
// standard claims, returning the AuthClaims when valid.
func ParseAndValidateJWT(tokenString string, secretKey string) (*AuthClaims, error) {
	claims := &AuthClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return []byte(secretKey), nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, jwt.ErrTokenSignatureInvalid
	}
	return claims, nil
}

// HashRefreshToken generates the SHA256 hash under which refresh tokens are stored.
func HashRefreshToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash compares a raw refresh token with its stored hash.
func CompareRefreshTokenHash(token, storedHash string) bool {
	return HashRefreshToken(token) == storedHash
}

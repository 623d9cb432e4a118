package session

import (
	"time" // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// CookieName is the session cookie the token travels in.
const CookieName = "session"

// Lifetime is how long a session token stays valid.
const Lifetime = 24 * time.Hour

// Claims carried by a session token. The token holds only the username; the
// middleware resolves it to a full user snapshot per request, so stale
// profile data never outlives the snapshot cache.
type Claims struct {
	Username             string `json:"username"` // Custom claim for the account name
	jwt.RegisteredClaims        // Standard JWT claims
}

// GenerateToken creates a signed session token for a username.
func GenerateToken(username, secret string) (string, error) {
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(Lifetime)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken parses and validates a session token string.
func ParseToken(tokenStr, secret string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil
	})
	if err != nil {
		return nil, err
	}
	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}
	return nil, jwt.ErrSignatureInvalid
}

package auth

import (
	"fmt"
	"time"

	"backr/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "backr"

// SessionClaims is the JWT payload for a logged-in wallet. The subject is
// the lowercase wallet address.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// IssueSessionToken creates an HS256 session token for a wallet address.
func IssueSessionToken(address, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   model.NormalizeAddress(address),
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ValidateSessionToken parses a session token and returns the wallet address
// it was issued to.
func ValidateSessionToken(tokenString, secret string) (string, error) {
	var claims SessionClaims
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithIssuer(issuer), jwt.WithExpirationRequired())
	if err != nil {
		return "", err
	}
	if !token.Valid || claims.Subject == "" {
		return "", fmt.Errorf("invalid session token")
	}
	return claims.Subject, nil
}

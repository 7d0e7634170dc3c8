// Package auth maps HTTP bearer tokens onto ledger actors. A token's
// subject claim is the actor id every guarded operation runs as.
package auth

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"iprights/internal/domain/shared/actor"
)

const tokenTTL = 24 * time.Hour

// Claims carries the authenticated actor identity.
type Claims struct {
	Actor string `json:"actor"`
	jwt.RegisteredClaims
}

// JWTService signs and verifies actor tokens with HS256.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service
func NewJWTService(secret string) *JWTService {
	return &JWTService{secret: []byte(secret)}
}

// Issue signs a token for the actor
func (s *JWTService) Issue(who actor.ID) (string, error) {
	if who.IsZero() {
		return "", fmt.Errorf("actor is required")
	}

	now := time.Now()
	claims := &Claims{
		Actor: who.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   who.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses a token and returns the actor it authenticates
func (s *JWTService) Verify(tokenString string) (actor.ID, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to parse token: %w", err)
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return "", fmt.Errorf("invalid token")
	}

	who := actor.ID(claims.Actor)
	if who.IsZero() {
		who = actor.ID(claims.Subject)
	}
	if who.IsZero() {
		return "", fmt.Errorf("token carries no actor")
	}
	return who, nil
}

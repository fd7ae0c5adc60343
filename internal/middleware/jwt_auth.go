package middleware

import (
	"context"
	"errors"
	"fmt"

	"github.com/anonto42/community-engine/internal/models"
	"github.com/golang-jwt/jwt/v4"
)

// JWTAuthenticator verifies HS256 tokens signed with a shared secret
type JWTAuthenticator struct {
	secret []byte
}

// NewJWTAuthenticator creates a new JWTAuthenticator
func NewJWTAuthenticator(secret string) *JWTAuthenticator {
	return &JWTAuthenticator{secret: []byte(secret)}
}

// Authenticate parses the token and maps its claims onto an actor. The user
// id comes from the user_id claim, falling back to sub.
func (a *JWTAuthenticator) Authenticate(_ context.Context, tokenString string) (*models.Actor, error) {
	claims := &models.JwtCustomClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return a.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}

	userID := claims.UserID
	if userID == "" {
		userID = claims.Subject
	}
	if userID == "" {
		return nil, errors.New("token carries no user id")
	}
	return &models.Actor{
		UserID:      userID,
		DisplayName: claims.Name,
		Role:        normalizeRole(claims.Role),
	}, nil
}

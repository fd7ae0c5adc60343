package middleware

import (
	"context"

	"firebase.google.com/go/v4/auth"
	"github.com/anonto42/community-engine/internal/models"
)

// IDTokenVerifier is the part of *auth.Client used here
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseAuthenticator verifies Firebase ID tokens. Display name and role
// are read from the name and role claims.
type FirebaseAuthenticator struct {
	verifier IDTokenVerifier
}

// NewFirebaseAuthenticator creates a new FirebaseAuthenticator
func NewFirebaseAuthenticator(verifier IDTokenVerifier) *FirebaseAuthenticator {
	return &FirebaseAuthenticator{verifier: verifier}
}

// Authenticate verifies the ID token and maps it onto an actor
func (a *FirebaseAuthenticator) Authenticate(ctx context.Context, idToken string) (*models.Actor, error) {
	token, err := a.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return nil, err
	}
	name, _ := token.Claims["name"].(string)
	role, _ := token.Claims["role"].(string)
	return &models.Actor{
		UserID:      token.UID,
		DisplayName: name,
		Role:        normalizeRole(role),
	}, nil
}

package models

import "github.com/golang-jwt/jwt/v4"

const (
	RoleAdmin  = "admin"
	RoleMember = "member"
)

// Actor is the authenticated caller as supplied by the identity provider
type Actor struct {
	UserID      string `json:"user_id"`
	DisplayName string `json:"display_name"`
	Role        string `json:"role"`
}

// IsAdmin reports whether the actor bypasses ownership checks
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// CanModify reports whether the actor may mutate a record owned by authorID
func (a Actor) CanModify(authorID string) bool {
	return a.IsAdmin() || (a.UserID != "" && a.UserID == authorID)
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID string `json:"user_id"`
	Name   string `json:"name"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

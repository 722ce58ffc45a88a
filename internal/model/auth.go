package model

import (
	"errors"

	"github.com/golang-jwt/jwt/v5"
)

// AuthRequest types
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type ChangePasswordRequest struct {
	NewPassword     string `json:"new_password" binding:"required"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// AuthResponse types
type TokenResponse struct {
	AccessToken string  `json:"access_token"`
	ExpiresAt   int64   `json:"expires_at"`
	Session     Session `json:"session"`
}

// Auth errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Session holds what the API knows about the logged-in operator.
type Session struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	IsAdmin     bool   `json:"is_admin"`
	TherapistID int    `json:"therapist_id,omitempty"`
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	jwt.RegisteredClaims
	Email       string `json:"email"`
	Name        string `json:"name"`
	IsAdmin     bool   `json:"is_admin"`
	TherapistID int    `json:"therapist_id,omitempty"`
}

func (c *TokenClaims) Session() Session {
	return Session{
		Email:       c.Email,
		Name:        c.Name,
		IsAdmin:     c.IsAdmin,
		TherapistID: c.TherapistID,
	}
}

package models

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// UserRole distinguishes the authenticated principal kinds.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RoleStudent UserRole = "STUDENT"
)

// Session is the explicit record of an authenticated principal. Exactly one
// session is active per run; a new login displaces the previous one.
type Session struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      UserRole  `json:"role"`
	Name      string    `json:"name"`
	Token     string    `json:"token"`
	IssuedAt  time.Time `json:"issued_at"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Valid reports whether the session has not yet expired.
func (s *Session) Valid(now time.Time) bool {
	return s != nil && now.Before(s.ExpiresAt)
}

// JWTClaims represents the JWT payload for access tokens.
type JWTClaims struct {
	UserID string   `json:"user_id"`
	Role   UserRole `json:"role"`
	Name   string   `json:"name"`
	jwt.RegisteredClaims
}

// RegisterRequest holds a new student registration payload.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,unimail"`
	Password string `json:"password" validate:"required,unipass"`
}

// StudentLoginRequest holds student credentials.
type StudentLoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginRequest holds admin credentials.
type AdminLoginRequest struct {
	AdminID  string `json:"admin_id" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest carries a replacement password.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required,unipass"`
}

// EnrollRequest names the subject to enroll in.
type EnrollRequest struct {
	SubjectID string `json:"subject_id" validate:"required,len=3,numeric"`
}

// CreateSubjectRequest adds a subject to the catalog.
type CreateSubjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Credits     int    `json:"credits" validate:"omitempty,min=1,max=12"`
}

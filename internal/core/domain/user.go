package domain

import "time"

// User represents an account that can own projects and collaborate on others.
type User struct {
	UserID                 string     `json:"userID"` // Primary Key (UUID)
	Name                   string     `json:"name"`
	Email                  string     `json:"email"` // Unique login identifier
	PasswordHash           string     `json:"-"`
	AuthProvider           string     `json:"authProvider"` // "local" or "google"
	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
	AuditFields
}

// GoogleUserInfo holds the subset of the Google userinfo payload we consume.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

package dto

import "time"

// LoginRequest defines the credentials for a local login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries a refresh token for rotation.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken" binding:"required"`
}

// GoogleIDTokenRequest carries a Google ID token for token-based sign-in.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// LoginResponse represents the response for a successful login or refresh.
type LoginResponse struct {
	AccessToken        string       `json:"accessToken"`
	AccessTokenExpiry  time.Time    `json:"accessTokenExpiry"`
	RefreshToken       string       `json:"refreshToken"`
	RefreshTokenExpiry time.Time    `json:"refreshTokenExpiry"`
	User               UserResponse `json:"user"`
}

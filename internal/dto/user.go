package dto

import (
	"time"

	"github.com/gestorlab/freela_backend/internal/core/domain"
)

// RegisterUserRequest defines the data required to register a local user.
type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
}

// UpdateUserRequest defines the data allowed for updating a user.
// Using pointers to differentiate between omitted fields and zero-value fields.
type UpdateUserRequest struct {
	Name *string `json:"name" binding:"omitempty,min=2,max=100"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID       string    `json:"userID"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO.
func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Name:         user.Name,
		Email:        user.Email,
		AuthProvider: user.AuthProvider,
		CreatedAt:    user.CreatedAt,
	}
}

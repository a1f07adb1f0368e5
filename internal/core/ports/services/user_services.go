package services

import (
	"context"

	"github.com/gestorlab/freela_backend/internal/core/domain"
	"github.com/gestorlab/freela_backend/internal/dto"
)

// UserReaderSvc defines read operations for user data
type UserReaderSvc interface {
	// GetUserByID retrieves a specific user by their ID.
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)

	// GetUserByEmail retrieves a specific user by their email address.
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
}

// UserWriterSvc defines write operations for user data
type UserWriterSvc interface {
	// RegisterUser creates a new local-auth user with a hashed password.
	RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error)

	// UpdateUser updates the requesting user's own profile details.
	UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error)
}

// UserAuthenticatorSvc defines credential verification operations
type UserAuthenticatorSvc interface {
	// AuthenticateUser verifies an email/password pair and returns the user.
	// Returns ErrUnauthorized on any credential mismatch.
	AuthenticateUser(ctx context.Context, email string, password string) (*domain.User, error)

	// FindOrCreateGoogleUser resolves a Google sign-in to a local user,
	// creating the account on first login.
	FindOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error)
}

// UserSvcFacade combines all user-related service interfaces
// This is a facade for clients that need access to all operations
type UserSvcFacade interface {
	UserReaderSvc
	UserWriterSvc
	UserAuthenticatorSvc
}

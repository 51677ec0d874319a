package userRepo

import (
	"context"
	"errors"

	"swatrental/models"
)

// ErrDuplicateEmail is returned when another user already holds the email.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository defines methods for user data access.
type UserRepository interface {
	// Create inserts a new user record.
	Create(ctx context.Context, user *models.User) error
	// GetByID retrieves a user by its unique ID. It returns nil, nil when none exists.
	GetByID(ctx context.Context, id string) (*models.User, error)
	// GetByEmail retrieves a user by its email address. It returns nil, nil when none exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetAll retrieves all users, newest first.
	GetAll(ctx context.Context) ([]models.User, error)
}

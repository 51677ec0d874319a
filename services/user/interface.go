package user

import (
	"context"
	"time"

	userRepo "swatrental/database/repository/user"
	"swatrental/models"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

type UserService interface {
	// Authentication
	Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, email, password string) (*AuthResponse, error)
	ResolveActor(ctx context.Context, userID string) (models.Actor, error)

	// User Management
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetAllUsers(ctx context.Context, actor models.Actor) ([]models.User, error)

	// Admin / Utility
	EnsureAdmin(ctx context.Context, email, password string) error
}

// DefaultUserService is the production implementation.
type DefaultUserService struct {
	Repo userRepo.UserRepository
	// AuthCache caches user roles; nil disables caching.
	AuthCache *redis.Client
	TokenTTL  time.Duration
	Logger    *zap.Logger
}

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Phone    string `json:"phone"`
	CNIC     string `json:"cnic"`
}

// AuthResponse contains the user's ID, token, and additional details.
type AuthResponse struct {
	ID    string `json:"id"`
	Token string `json:"token"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
	Role  string `json:"role"`
}

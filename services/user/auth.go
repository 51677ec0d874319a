package user

import (
	"context"
	"errors"
	"strings"
	"time"

	userRepo "swatrental/database/repository/user"
	"swatrental/models"
	"swatrental/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

const defaultTokenTTL = 30 * 24 * time.Hour

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *DefaultUserService) tokenTTL() time.Duration {
	if s.TokenTTL <= 0 {
		return defaultTokenTTL
	}
	return s.TokenTTL
}

func (s *DefaultUserService) Register(ctx context.Context, req RegisterRequest) (*AuthResponse, error) {
	if strings.TrimSpace(req.Name) == "" || len(req.Password) < 6 {
		return nil, utils.Validation("name and a password of at least 6 characters are required")
	}
	return s.createUser(ctx, req, models.RoleUser)
}

func (s *DefaultUserService) createUser(ctx context.Context, req RegisterRequest, role string) (*AuthResponse, error) {
	email := normalizeEmail(req.Email)
	if email == "" {
		return nil, utils.Validation("email is required")
	}

	existing, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		return nil, utils.Internal("registration failed, please try again", err)
	}
	if existing != nil {
		return nil, utils.NewError(utils.KindConflict, "User already exists")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, utils.Internal("failed to hash password", err)
	}

	u := &models.User{
		ID:           uuid.New().String(),
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: string(hash),
		Phone:        req.Phone,
		CNIC:         req.CNIC,
		Role:         role,
		CreatedAt:    time.Now(),
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		if errors.Is(err, userRepo.ErrDuplicateEmail) {
			return nil, utils.NewError(utils.KindConflict, "User already exists")
		}
		return nil, utils.Internal("registration failed, please try again", err)
	}

	s.Logger.Info("user registered", zap.String("userID", u.ID), zap.String("role", role))
	return s.authResponse(u)
}

func (s *DefaultUserService) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	u, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		s.Logger.Error("Login: failed to fetch user", zap.Error(err))
		return nil, utils.Internal("authentication failed, please try again", err)
	}
	if u == nil {
		return nil, utils.NewError(utils.KindUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, utils.NewError(utils.KindUnauthorized, "Invalid email or password")
	}
	return s.authResponse(u)
}

func (s *DefaultUserService) authResponse(u *models.User) (*AuthResponse, error) {
	token, err := utils.GenerateToken(u.ID, u.Role, s.tokenTTL())
	if err != nil {
		return nil, utils.Internal("failed to issue token", err)
	}
	return &AuthResponse{
		ID:    u.ID,
		Token: token,
		Name:  u.Name,
		Email: u.Email,
		Phone: u.Phone,
		Role:  u.Role,
	}, nil
}

// ResolveActor maps a token subject to the caller's current role, consulting
// the auth cache before the repository.
func (s *DefaultUserService) ResolveActor(ctx context.Context, userID string) (models.Actor, error) {
	key := utils.AuthCachePrefix + userID
	if s.AuthCache != nil {
		role, err := s.AuthCache.Get(ctx, key).Result()
		if err == nil && role != "" {
			return models.Actor{ID: userID, Role: role}, nil
		}
		if err != nil && !errors.Is(err, redis.Nil) {
			s.Logger.Warn("auth cache read failed", zap.Error(err))
		}
	}

	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return models.Actor{}, utils.Internal("failed to resolve user", err)
	}
	if u == nil {
		return models.Actor{}, utils.NewError(utils.KindUnauthorized, "User no longer exists")
	}

	if s.AuthCache != nil {
		if err := s.AuthCache.Set(ctx, key, u.Role, utils.AuthCacheTTL).Err(); err != nil {
			s.Logger.Warn("auth cache write failed", zap.Error(err))
		}
	}
	return models.Actor{ID: u.ID, Role: u.Role}, nil
}

package user

import (
	"context"

	"swatrental/models"
	"swatrental/services/policy"
	"swatrental/utils"

	"go.uber.org/zap"
)

func (s *DefaultUserService) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		return nil, utils.Internal("failed to fetch user", err)
	}
	if u == nil {
		return nil, utils.NotFound("User")
	}
	return u, nil
}

func (s *DefaultUserService) GetAllUsers(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if err := policy.Authorize(actor, policy.UserList, policy.Resource{}); err != nil {
		return nil, err
	}
	users, err := s.Repo.GetAll(ctx)
	if err != nil {
		return nil, utils.Internal("failed to list users", err)
	}
	return users, nil
}

// EnsureAdmin creates the bootstrap admin account unless the email is already registered.
func (s *DefaultUserService) EnsureAdmin(ctx context.Context, email, password string) error {
	existing, err := s.Repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Role != models.RoleAdmin {
			s.Logger.Warn("bootstrap admin email belongs to a regular user", zap.String("email", existing.Email))
		}
		return nil
	}

	_, err = s.createUser(ctx, RegisterRequest{Name: "Admin", Email: email, Password: password}, models.RoleAdmin)
	return err
}

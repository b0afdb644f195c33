package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/permission"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"github.com/google/uuid"
)

// UserService implements user administration on top of the user repository.
// It owns the only code paths that may touch the password column, and always
// goes through models.User.SetPassword so plaintext is never persisted.
type UserService struct {
	userRepo repository.UserRepository
	salt     string
}

// CreateUserInput carries the fields for a new account. ID is optional; a
// random one is assigned when the caller does not supply an external ID.
type CreateUserInput struct {
	ID         string
	Name       string
	Password   string
	Permission permission.Permission
}

// UpdateUserInput carries a partial user update. Nil fields are left alone.
type UpdateUserInput struct {
	ID         string
	Password   *string
	Permission *permission.Permission
	Expired    *bool
}

// NewUserService returns a UserService. salt is the process-wide password
// salt from configuration.
func NewUserService(userRepo repository.UserRepository, salt string) *UserService {
	return &UserService{userRepo: userRepo, salt: salt}
}

func (s *UserService) ListUsers(ctx context.Context, limit, offset int) ([]models.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

func (s *UserService) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

func (s *UserService) CreateUser(ctx context.Context, in CreateUserInput) (*models.User, error) {
	if err := validation.ValidateUsername(in.Name); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.ID == "" {
		in.ID = uuid.NewString()
	} else if err := validation.ValidateTextID(in.ID); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	user := &models.User{
		ID:         in.ID,
		Name:       in.Name,
		Permission: in.Permission,
	}
	user.SetPassword(in.Password, s.salt)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) UpdateUser(ctx context.Context, in UpdateUserInput) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.SetPassword(*in.Password, s.salt)
	}
	if in.Permission != nil {
		user.Permission = *in.Permission
	}
	if in.Expired != nil {
		user.Expired = *in.Expired
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *UserService) DeleteUser(ctx context.Context, id string) error {
	// Ensure the user exists so deletion of an unknown id reports not-found.
	if _, err := s.userRepo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.userRepo.Delete(ctx, id)
}

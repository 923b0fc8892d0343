package service

import (
	"context"

	"yamdb/internal/http-api/apperr"
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/permission"
	"yamdb/internal/http-api/repository"
)

// UserPatch carries the fields of a partial update. Nil fields are kept.
type UserPatch struct {
	Username  *string
	Email     *string
	FirstName *string
	LastName  *string
	Bio       *string
	Role      *models.Role
}

type UserService interface {
	List(ctx context.Context, search string, page repository.Page) ([]models.User, int64, error)
	Get(ctx context.Context, username string) (*models.User, error)
	Create(ctx context.Context, actor permission.Subject, user *models.User) error
	Update(ctx context.Context, actor permission.Subject, user *models.User, patch UserPatch) error
	Delete(ctx context.Context, user *models.User) error
}

type userService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

var userUniqueMessages = map[string]string{
	"username": msgUsernameTaken,
	"email":    msgEmailTaken,
}

func (s *userService) List(ctx context.Context, search string, page repository.Page) ([]models.User, int64, error) {
	return s.users.List(ctx, search, page)
}

func (s *userService) Get(ctx context.Context, username string) (*models.User, error) {
	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		return nil, notFound(err, "user")
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, actor permission.Subject, user *models.User) error {
	if !permission.CanAssignRole(actor, models.RoleUser, user.Role) {
		return apperr.ErrForbidden
	}
	user.ID = ""
	v := apperr.NewValidationError()
	user.Bio = plainText(v, "bio", user.Bio)
	if err := v.OrNil(); err != nil {
		return err
	}
	return duplicateField(s.users.Create(ctx, user), userUniqueMessages)
}

// Update applies patch to user. Changing the role needs an admin, on
// any account including the caller's own.
func (s *userService) Update(ctx context.Context, actor permission.Subject, user *models.User, patch UserPatch) error {
	if patch.Role != nil && !permission.CanAssignRole(actor, user.Role, *patch.Role) {
		return apperr.ErrForbidden
	}
	var bio string
	if patch.Bio != nil {
		v := apperr.NewValidationError()
		bio = plainText(v, "bio", *patch.Bio)
		if err := v.OrNil(); err != nil {
			return err
		}
	}

	if patch.Username != nil {
		user.Username = *patch.Username
	}
	if patch.Email != nil {
		user.Email = *patch.Email
	}
	if patch.FirstName != nil {
		user.FirstName = *patch.FirstName
	}
	if patch.LastName != nil {
		user.LastName = *patch.LastName
	}
	if patch.Bio != nil {
		user.Bio = bio
	}
	if patch.Role != nil {
		user.Role = *patch.Role
	}

	return duplicateField(s.users.Update(ctx, user), userUniqueMessages)
}

func (s *userService) Delete(ctx context.Context, user *models.User) error {
	return notFound(s.users.Delete(ctx, user.ID), "user")
}

package dto

import (
	"yamdb/internal/http-api/models"
	"yamdb/internal/http-api/service"
)

type UserResponse struct {
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	FirstName string      `json:"first_name"`
	LastName  string      `json:"last_name"`
	Bio       string      `json:"bio"`
	Role      models.Role `json:"role"`
}

func FromModelToUserResponse(user *models.User) UserResponse {
	return UserResponse{
		Username:  user.Username,
		Email:     user.Email,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		Role:      user.Role,
	}
}

// CreateUserRequest is the admin shape for creating an account.
type CreateUserRequest struct {
	Username  string       `json:"username" binding:"required,username"`
	Email     string       `json:"email" binding:"required,email,max=254"`
	FirstName string       `json:"first_name" binding:"max=150"`
	LastName  string       `json:"last_name" binding:"max=150"`
	Bio       string       `json:"bio"`
	Role      *models.Role `json:"role"`
}

func (r *CreateUserRequest) ToModel() *models.User {
	user := &models.User{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Role:      models.RoleUser,
	}
	if r.Role != nil {
		user.Role = *r.Role
	}
	return user
}

// UpdateUserRequest is a partial update; absent fields are kept.
type UpdateUserRequest struct {
	Username  *string      `json:"username" binding:"omitempty,username"`
	Email     *string      `json:"email" binding:"omitempty,email,max=254"`
	FirstName *string      `json:"first_name" binding:"omitempty,max=150"`
	LastName  *string      `json:"last_name" binding:"omitempty,max=150"`
	Bio       *string      `json:"bio"`
	Role      *models.Role `json:"role"`
}

func (r *UpdateUserRequest) ToPatch() service.UserPatch {
	return service.UserPatch{
		Username:  r.Username,
		Email:     r.Email,
		FirstName: r.FirstName,
		LastName:  r.LastName,
		Bio:       r.Bio,
		Role:      r.Role,
	}
}

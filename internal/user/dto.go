package user

import (
	"time"
)

// UserDTO is the merged view of a User, its UserDetails, and the
// resolved role name that every read operation returns.
type UserDTO struct {
	ID          uint      `json:"id"`
	Email       string    `json:"email"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	FirstName   string    `json:"first_name"`
	MiddleName  string    `json:"middle_name,omitempty"`
	LastName    string    `json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	Role        string    `json:"role"`
	RoleID      uint      `json:"role_id"`
	Country     string    `json:"country"`
	AvatarURL   string    `json:"avatar_url,omitempty"`
}

type CreateUserInput struct {
	Email       string    `json:"email" validate:"required,email"`
	IsActive    *bool     `json:"is_active"`
	FirstName   string    `json:"first_name" validate:"required,min=2,max=50"`
	MiddleName  string    `json:"middle_name" validate:"omitempty,max=50"`
	LastName    string    `json:"last_name" validate:"required,min=2,max=50"`
	DateOfBirth time.Time `json:"date_of_birth" validate:"required"`
	RoleID      uint      `json:"role_id" validate:"required,gte=1"`
	Country     string    `json:"country" validate:"required,max=50"`
	AvatarURL   string    `json:"avatar_url" validate:"omitempty,url"`
}

// UpdateUserInput carries a partial update. Every field is a pointer:
// nil means "not provided, keep the stored value". There is no way to
// explicitly clear an optional field short of sending an empty string.
type UpdateUserInput struct {
	Email       *string    `json:"email" validate:"omitempty,email"`
	IsActive    *bool      `json:"is_active"`
	FirstName   *string    `json:"first_name" validate:"omitempty,min=2,max=50"`
	MiddleName  *string    `json:"middle_name" validate:"omitempty,max=50"`
	LastName    *string    `json:"last_name" validate:"omitempty,min=2,max=50"`
	DateOfBirth *time.Time `json:"date_of_birth"`
	RoleID      *uint      `json:"role_id" validate:"omitempty,gte=1"`
	Country     *string    `json:"country" validate:"omitempty,max=50"`
	AvatarURL   *string    `json:"avatar_url" validate:"omitempty,url"`
}

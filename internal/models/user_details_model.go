package models

import (
	"time"
)

// UserDetails is the profile record owned 1:1 by a User. The unique index
// on UserID enforces the cardinality; RoleID is a non-owning reference.
type UserDetails struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	UserID      uint      `gorm:"uniqueIndex;not null" json:"user_id"`
	FirstName   string    `gorm:"size:50" json:"first_name"`
	MiddleName  string    `gorm:"size:50" json:"middle_name,omitempty"`
	LastName    string    `gorm:"size:50" json:"last_name"`
	DateOfBirth time.Time `json:"date_of_birth"`
	RoleID      uint      `gorm:"not null" json:"role_id"`
	Role        *Role     `gorm:"foreignKey:RoleID;constraint:OnDelete:RESTRICT,OnUpdate:CASCADE" json:"role,omitempty"`
	Country     string    `gorm:"size:50" json:"country"`
	AvatarURL   string    `gorm:"size:255" json:"avatar_url,omitempty"`
}

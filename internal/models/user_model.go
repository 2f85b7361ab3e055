package models

import (
	"time"
)

type User struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	Email     string       `gorm:"uniqueIndex;size:100;not null" json:"email"`
	IsActive  bool         `gorm:"default:true" json:"is_active"`
	CreatedAt time.Time    `json:"created_at"`
	Details   *UserDetails `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE,OnUpdate:CASCADE" json:"details,omitempty"`
}

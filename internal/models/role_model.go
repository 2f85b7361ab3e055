package models

type Role struct {
	ID          uint          `gorm:"primaryKey" json:"id"`
	Name        string        `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Description string        `gorm:"size:255" json:"description,omitempty"`
	Details     []UserDetails `gorm:"foreignKey:RoleID" json:"-"`
}

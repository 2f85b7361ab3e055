package user

import (
	"time"

	"github.com/p3mo/userdir/internal/models"
	"github.com/p3mo/userdir/internal/role"
	"gorm.io/gorm"
)

// SeedSampleUser creates the initial admin account with full details.
// No-op when any user already exists.
func SeedSampleUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		u := models.User{
			Email:     "mehmet@example.com",
			IsActive:  true,
			CreatedAt: time.Now().UTC(),
		}
		if err := tx.Create(&u).Error; err != nil {
			return err
		}

		details := models.UserDetails{
			UserID:      u.ID,
			FirstName:   "Mehmet",
			LastName:    "Sabirli",
			DateOfBirth: time.Date(1980, 1, 1, 0, 0, 0, 0, time.UTC),
			RoleID:      role.AdminRoleID,
			Country:     "United Kingdom",
		}
		return tx.Create(&details).Error
	})
}

package role

import (
	"github.com/p3mo/userdir/internal/models"
	"gorm.io/gorm"
)

// The three built-in roles. User data assumes these ids exist, so they
// are seeded before anything else touches the store.
const (
	AdminRoleID uint = 1
	UserRoleID  uint = 2
	GuestRoleID uint = 3
)

func SeedDefaultRoles(db *gorm.DB) error {
	roles := []models.Role{
		{ID: AdminRoleID, Name: "Admin", Description: "Administrator with full access"},
		{ID: UserRoleID, Name: "User", Description: "Standard user with limited access"},
		{ID: GuestRoleID, Name: "Guest", Description: "Guest user with read-only access"},
	}

	for _, r := range roles {
		var existing models.Role
		if err := db.Where("id = ?", r.ID).First(&existing).Error; err == gorm.ErrRecordNotFound {
			if err := db.Create(&r).Error; err != nil {
				return err
			}
		}
	}

	return nil
}

package role

import (
	"errors"

	"github.com/p3mo/userdir/internal/models"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports that no role exists with the requested id.
	ErrNotFound = errors.New("role not found")
	// ErrInUse reports a blocked delete: at least one user profile still
	// references the role. The role is left untouched.
	ErrInUse = errors.New("role is assigned to users")
)

func ListRoles(db *gorm.DB) ([]models.Role, error) {
	var roles []models.Role
	if err := db.Find(&roles).Error; err != nil {
		return nil, err
	}
	return roles, nil
}

func GetRole(db *gorm.DB, id uint) (*models.Role, error) {
	var role models.Role
	if err := db.First(&role, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &role, nil
}

func CreateRole(db *gorm.DB, name string, description string) (*models.Role, error) {
	role := models.Role{Name: name, Description: description}
	if err := db.Create(&role).Error; err != nil {
		return nil, err
	}
	return &role, nil
}

func UpdateRole(db *gorm.DB, id uint, name string, description string) (*models.Role, error) {
	role, err := GetRole(db, id)
	if err != nil {
		return nil, err
	}

	role.Name = name
	role.Description = description
	if err := db.Save(role).Error; err != nil {
		return nil, err
	}
	return role, nil
}

// DeleteRole removes a role unless any UserDetails still references it.
// The in-use check runs in the same transaction as the delete so a
// concurrent assignment cannot slip between check and removal.
func DeleteRole(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var role models.Role
		if err := tx.First(&role, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var refs int64
		if err := tx.Model(&models.UserDetails{}).Where("role_id = ?", id).Count(&refs).Error; err != nil {
			return err
		}
		if refs > 0 {
			return ErrInUse
		}

		return tx.Delete(&role).Error
	})
}

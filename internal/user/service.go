package user

import (
	"errors"
	"time"

	"github.com/p3mo/userdir/internal/models"
	"github.com/p3mo/userdir/internal/role"
	"gorm.io/gorm"
)

var (
	// ErrNotFound reports that no user exists with the requested id.
	ErrNotFound = errors.New("user not found")
	// ErrRoleNotFound reports a create/update referencing a role id that
	// does not exist in the store.
	ErrRoleNotFound = errors.New("role not found")
)

// Defaults substituted when a user has no details row. Reads stay
// robust against partially-provisioned accounts instead of failing.
const (
	defaultName    = "Unknown"
	defaultCountry = "Unknown"
	defaultRole    = "User"
)

func toDTO(u *models.User) UserDTO {
	dto := UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
	}

	if u.Details == nil {
		dto.FirstName = defaultName
		dto.LastName = defaultName
		dto.DateOfBirth = time.Time{}
		dto.RoleID = role.UserRoleID
		dto.Role = defaultRole
		dto.Country = defaultCountry
		return dto
	}

	dto.FirstName = u.Details.FirstName
	dto.MiddleName = u.Details.MiddleName
	dto.LastName = u.Details.LastName
	dto.DateOfBirth = u.Details.DateOfBirth
	dto.RoleID = u.Details.RoleID
	dto.Country = u.Details.Country
	dto.AvatarURL = u.Details.AvatarURL

	if u.Details.Role != nil {
		dto.Role = u.Details.Role.Name
	} else {
		dto.Role = defaultName
	}

	return dto
}

func fetchUser(db *gorm.DB, id uint) (*models.User, error) {
	var u models.User
	err := db.Preload("Details.Role").First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

func roleExists(db *gorm.DB, roleID uint) (bool, error) {
	var count int64
	if err := db.Model(&models.Role{}).Where("id = ?", roleID).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func ListUsers(db *gorm.DB) ([]UserDTO, error) {
	var users []models.User
	if err := db.Preload("Details.Role").Find(&users).Error; err != nil {
		return nil, err
	}

	dtos := make([]UserDTO, 0, len(users))
	for i := range users {
		dtos = append(dtos, toDTO(&users[i]))
	}
	return dtos, nil
}

func GetUser(db *gorm.DB, id uint) (*UserDTO, error) {
	u, err := fetchUser(db, id)
	if err != nil {
		return nil, err
	}
	dto := toDTO(u)
	return &dto, nil
}

// CreateUser persists a User and its owned UserDetails as one
// transaction; a failure writing either leaves neither behind.
func CreateUser(db *gorm.DB, in CreateUserInput) (*UserDTO, error) {
	ok, err := roleExists(db, in.RoleID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrRoleNotFound
	}

	isActive := true
	if in.IsActive != nil {
		isActive = *in.IsActive
	}

	u := models.User{
		Email:     in.Email,
		IsActive:  isActive,
		CreatedAt: time.Now().UTC(),
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&u).Error; err != nil {
			return err
		}

		details := models.UserDetails{
			UserID:      u.ID,
			FirstName:   in.FirstName,
			MiddleName:  in.MiddleName,
			LastName:    in.LastName,
			DateOfBirth: in.DateOfBirth,
			RoleID:      in.RoleID,
			Country:     in.Country,
			AvatarURL:   in.AvatarURL,
		}
		return tx.Create(&details).Error
	})
	if err != nil {
		return nil, err
	}

	return GetUser(db, u.ID)
}

// UpdateUser applies the fields present in the input and leaves the
// rest untouched. A user without a details row gets one created on
// first update, referencing the user's id.
func UpdateUser(db *gorm.DB, id uint, in UpdateUserInput) (*UserDTO, error) {
	var u models.User
	err := db.Preload("Details").First(&u, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if in.RoleID != nil {
		ok, err := roleExists(db, *in.RoleID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrRoleNotFound
		}
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if in.Email != nil {
			u.Email = *in.Email
		}
		if in.IsActive != nil {
			u.IsActive = *in.IsActive
		}
		if err := tx.Save(&u).Error; err != nil {
			return err
		}

		details := u.Details
		if details == nil {
			details = &models.UserDetails{
				UserID: u.ID,
				RoleID: role.UserRoleID,
			}
		}

		if in.FirstName != nil {
			details.FirstName = *in.FirstName
		}
		if in.MiddleName != nil {
			details.MiddleName = *in.MiddleName
		}
		if in.LastName != nil {
			details.LastName = *in.LastName
		}
		if in.DateOfBirth != nil {
			details.DateOfBirth = *in.DateOfBirth
		}
		if in.RoleID != nil {
			details.RoleID = *in.RoleID
		}
		if in.Country != nil {
			details.Country = *in.Country
		}
		if in.AvatarURL != nil {
			details.AvatarURL = *in.AvatarURL
		}

		return tx.Save(details).Error
	})
	if err != nil {
		return nil, err
	}

	return GetUser(db, id)
}

// DeleteUser removes the user and its details together. The details
// delete is issued explicitly rather than relying on the store's
// cascade, so the invariant holds on backends without one.
func DeleteUser(db *gorm.DB, id uint) error {
	return db.Transaction(func(tx *gorm.DB) error {
		var u models.User
		if err := tx.First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		if err := tx.Where("user_id = ?", id).Delete(&models.UserDetails{}).Error; err != nil {
			return err
		}
		return tx.Delete(&u).Error
	})
}

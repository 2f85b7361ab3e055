package user

import (
	"errors"
	"log"
	"strings"

	"github.com/p3mo/userdir/internal/database"
	"github.com/p3mo/userdir/internal/models"
	"github.com/p3mo/userdir/internal/response"
	"github.com/p3mo/userdir/internal/utils"
	"github.com/p3mo/userdir/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

func ListUsersHandler(c *fiber.Ctx) error {
	users, err := ListUsers(database.DB)
	if err != nil {
		log.Printf("Failed to list users: %v", err)
		return response.InternalError(c, "Failed to fetch users")
	}

	return response.Success(c, users, "Users retrieved successfully")
}

func GetUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	dto, err := GetUser(database.DB, uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "User")
		}
		log.Printf("Failed to get user %d: %v", id, err)
		return response.InternalError(c, "Failed to fetch user")
	}

	return response.Success(c, dto, "User retrieved successfully")
}

func CreateUserHandler(c *fiber.Ctx) error {
	var in CreateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	in.FirstName = policy.Sanitize(in.FirstName)
	in.MiddleName = policy.Sanitize(in.MiddleName)
	in.LastName = policy.Sanitize(in.LastName)
	in.Country = policy.Sanitize(in.Country)

	if fields := validation.Struct(in); fields != nil {
		return response.ValidationError(c, fields)
	}

	var existing int64
	database.DB.Model(&models.User{}).Where("email = ?", in.Email).Count(&existing)
	if existing > 0 {
		return response.Conflict(c, "User with this email already exists")
	}

	dto, err := CreateUser(database.DB, in)
	if err != nil {
		if errors.Is(err, ErrRoleNotFound) {
			return response.NotFound(c, "Role")
		}
		log.Printf("Failed to create user %q: %v", in.Email, err)
		return response.InternalError(c, "Failed to create user")
	}

	return response.Created(c, dto, "User created successfully")
}

func UpdateUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	var in UpdateUserInput
	if err := c.BodyParser(&in); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	sanitizeField(in.FirstName)
	sanitizeField(in.MiddleName)
	sanitizeField(in.LastName)
	sanitizeField(in.Country)

	if fields := validation.Struct(in); fields != nil {
		return response.ValidationError(c, fields)
	}

	dto, err := UpdateUser(database.DB, uint(id), in)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "User")
		}
		if errors.Is(err, ErrRoleNotFound) {
			return response.NotFound(c, "Role")
		}
		log.Printf("Failed to update user %d: %v", id, err)
		return response.InternalError(c, "Failed to update user")
	}

	return response.Success(c, dto, "User updated successfully")
}

func DeleteUserHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	if err := DeleteUser(database.DB, uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "User")
		}
		log.Printf("Failed to delete user %d: %v", id, err)
		return response.InternalError(c, "Failed to delete user")
	}

	return response.NoContent(c)
}

// UploadAvatarHandler stores an uploaded image (local disk or S3,
// whichever storage mode is active) and points the user's avatar URL
// at it.
func UploadAvatarHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	current, err := GetUser(database.DB, uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "User")
		}
		log.Printf("Failed to get user %d: %v", id, err)
		return response.InternalError(c, "Failed to fetch user")
	}

	file, err := c.FormFile("avatar")
	if err != nil {
		return response.BadRequest(c, "Avatar file is required", nil)
	}

	if !strings.HasPrefix(file.Header.Get("Content-Type"), "image/") {
		return response.ValidationError(c, map[string]string{
			"avatar": "avatar must be an image",
		})
	}

	url, err := utils.UploadFile(file)
	if err != nil {
		log.Printf("Failed to store avatar for user %d: %v", id, err)
		return response.InternalError(c, "Failed to store avatar")
	}

	dto, err := UpdateUser(database.DB, uint(id), UpdateUserInput{AvatarURL: &url})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "User")
		}
		log.Printf("Failed to set avatar for user %d: %v", id, err)
		return response.InternalError(c, "Failed to update avatar")
	}

	// Replaced locally-stored avatars are removed best-effort.
	if strings.HasPrefix(current.AvatarURL, "/uploads/") {
		if err := utils.DeleteFromLocal(current.AvatarURL); err != nil {
			log.Printf("Failed to remove old avatar %s: %v", current.AvatarURL, err)
		}
	}

	return response.Success(c, dto, "Avatar uploaded successfully")
}

func sanitizeField(s *string) {
	if s != nil {
		*s = policy.Sanitize(*s)
	}
}

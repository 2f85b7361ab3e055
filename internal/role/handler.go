package role

import (
	"errors"
	"log"

	"github.com/p3mo/userdir/internal/database"
	"github.com/p3mo/userdir/internal/response"
	"github.com/p3mo/userdir/internal/validation"
	"github.com/gofiber/fiber/v2"
	"github.com/microcosm-cc/bluemonday"
)

var policy = bluemonday.StrictPolicy()

type roleBody struct {
	Name        string `json:"name" validate:"required,max=50"`
	Description string `json:"description" validate:"max=255"`
}

func ListRolesHandler(c *fiber.Ctx) error {
	roles, err := ListRoles(database.DB)
	if err != nil {
		log.Printf("Failed to list roles: %v", err)
		return response.InternalError(c, "Failed to fetch roles")
	}

	return response.Success(c, roles, "Roles retrieved successfully")
}

func GetRoleHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID", nil)
	}

	r, err := GetRole(database.DB, uint(id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Role")
		}
		log.Printf("Failed to get role %d: %v", id, err)
		return response.InternalError(c, "Failed to fetch role")
	}

	return response.Success(c, r, "Role retrieved successfully")
}

func CreateRoleHandler(c *fiber.Ctx) error {
	var body roleBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	body.Name = policy.Sanitize(body.Name)
	body.Description = policy.Sanitize(body.Description)

	if fields := validation.Struct(body); fields != nil {
		return response.ValidationError(c, fields)
	}

	r, err := CreateRole(database.DB, body.Name, body.Description)
	if err != nil {
		log.Printf("Failed to create role %q: %v", body.Name, err)
		return response.InternalError(c, "Failed to create role")
	}

	return response.Created(c, r, "Role created successfully")
}

func UpdateRoleHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID", nil)
	}

	var body roleBody
	if err := c.BodyParser(&body); err != nil {
		return response.BadRequest(c, "Invalid request body", err.Error())
	}

	body.Name = policy.Sanitize(body.Name)
	body.Description = policy.Sanitize(body.Description)

	if fields := validation.Struct(body); fields != nil {
		return response.ValidationError(c, fields)
	}

	r, err := UpdateRole(database.DB, uint(id), body.Name, body.Description)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Role")
		}
		log.Printf("Failed to update role %d: %v", id, err)
		return response.InternalError(c, "Failed to update role")
	}

	return response.Success(c, r, "Role updated successfully")
}

func DeleteRoleHandler(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return response.BadRequest(c, "Invalid role ID", nil)
	}

	if err := DeleteRole(database.DB, uint(id)); err != nil {
		if errors.Is(err, ErrNotFound) {
			return response.NotFound(c, "Role")
		}
		if errors.Is(err, ErrInUse) {
			return response.Conflict(c, "Cannot delete role that is assigned to users")
		}
		log.Printf("Failed to delete role %d: %v", id, err)
		return response.InternalError(c, "Failed to delete role")
	}

	return response.NoContent(c)
}

package server

import (
	"github.com/p3mo/userdir/internal/pdf"
	"github.com/p3mo/userdir/internal/role"
	"github.com/p3mo/userdir/internal/stats"
	"github.com/p3mo/userdir/internal/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRoutes(app *fiber.App) {
	// Middleware
	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, PUT, DELETE, OPTIONS",
	}))

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"message": "User directory API is running",
		})
	})

	api := app.Group("/api")

	// ==========================================
	// USER DIRECTORY
	// ==========================================
	userGroup := api.Group("/users")
	userGroup.Get("/", user.ListUsersHandler)
	userGroup.Post("/", user.CreateUserHandler)
	userGroup.Get("/:id", user.GetUserHandler)
	userGroup.Put("/:id", user.UpdateUserHandler)
	userGroup.Delete("/:id", user.DeleteUserHandler)
	userGroup.Post("/:id/avatar", user.UploadAvatarHandler)

	// ==========================================
	// ROLE DIRECTORY
	// ==========================================
	roleGroup := api.Group("/roles")
	roleGroup.Get("/", role.ListRolesHandler)
	roleGroup.Post("/", role.CreateRoleHandler)
	roleGroup.Get("/:id", role.GetRoleHandler)
	roleGroup.Put("/:id", role.UpdateRoleHandler)
	roleGroup.Delete("/:id", role.DeleteRoleHandler)

	// ==========================================
	// STATISTICS
	// ==========================================
	statsGroup := api.Group("/stats")
	statsGroup.Get("/active", stats.ActiveUserStatsHandler)
	statsGroup.Get("/roles", stats.RoleDistributionHandler)
	statsGroup.Get("/registration", stats.RegistrationStatsHandler)

	// ==========================================
	// PDF EXPORT
	// ==========================================
	api.Get("/pdf/:userId", pdf.GenerateUserPDFHandler)
}

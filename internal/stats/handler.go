package stats

import (
	"log"

	"github.com/p3mo/userdir/internal/database"
	"github.com/p3mo/userdir/internal/response"
	"github.com/gofiber/fiber/v2"
)

func ActiveUserStatsHandler(c *fiber.Ctx) error {
	s, err := ActiveUserStats(database.DB)
	if err != nil {
		log.Printf("Failed to compute active user stats: %v", err)
		return response.InternalError(c, "Failed to fetch active user stats")
	}

	return response.Success(c, s, "Active user stats retrieved successfully")
}

func RoleDistributionHandler(c *fiber.Ctx) error {
	counts, err := RoleDistribution(database.DB)
	if err != nil {
		log.Printf("Failed to compute role distribution: %v", err)
		return response.InternalError(c, "Failed to fetch role distribution")
	}

	return response.Success(c, counts, "Role distribution retrieved successfully")
}

func RegistrationStatsHandler(c *fiber.Ctx) error {
	counts, err := RegistrationsByMonth(database.DB)
	if err != nil {
		log.Printf("Failed to compute registration stats: %v", err)
		return response.InternalError(c, "Failed to fetch registration stats")
	}

	return response.Success(c, counts, "Registration stats retrieved successfully")
}

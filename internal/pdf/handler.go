package pdf

import (
	"errors"
	"fmt"
	"log"

	"github.com/p3mo/userdir/internal/database"
	"github.com/p3mo/userdir/internal/response"
	"github.com/gofiber/fiber/v2"
)

// FrontendURL is the base URL of the frontend that serves the profile
// pages the renderer prints. Set once at startup from config.
var FrontendURL = "http://localhost:5500"

func GenerateUserPDFHandler(c *fiber.Ctx) error {
	userID, err := c.ParamsInt("userId")
	if err != nil {
		return response.BadRequest(c, "Invalid user ID", nil)
	}

	pdfBytes, err := GenerateUserPDF(database.DB, uint(userID), FrontendURL)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return response.NotFound(c, "User")
		}
		log.Printf("Failed to generate PDF for user %d: %v", userID, err)
		return response.InternalError(c, "Failed to generate PDF")
	}

	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="user-%d.pdf"`, userID))
	return c.Send(pdfBytes)
}

package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamboard/config"
	"teamboard/models"
	"teamboard/utils"
)

// Login exchanges a previously issued user ID for a session token. The ID is
// the whole credential; there is no password layer in this system.
func Login(c *fiber.Ctx) error {
	var input struct {
		UserID string `json:"userId" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	userID := strings.ToUpper(strings.TrimSpace(input.UserID))

	var user models.User
	if err := config.DB.First(&user, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Unknown user ID", nil)
		}
		utils.LogError("login_lookup_failed", err, map[string]interface{}{"user_id": userID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", nil)
	}

	token, err := utils.GenerateSessionToken(&user)
	if err != nil {
		utils.LogError("session_token_failed", err, map[string]interface{}{"user_id": user.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Login failed", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"user":  user,
		"token": token,
	}))
}

// GetCurrentUser returns the session user.
func GetCurrentUser(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	return c.JSON(utils.SuccessResponse(user))
}

// Logout exists for client symmetry; sessions are stateless tokens, so the
// server only acknowledges and the client drops its copy.
func Logout(c *fiber.Ctx) error {
	c.ClearCookie("session_token")
	return c.JSON(fiber.Map{
		"message": "Logged out",
	})
}

package controller

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/services"
	"teamboard/utils"
)

type AnnouncementController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewAnnouncementController(db *gorm.DB, logger *log.Logger) *AnnouncementController {
	return &AnnouncementController{DB: db, Logger: logger}
}

// CreateAnnouncement posts a notice to the session user's team.
func (ac *AnnouncementController) CreateAnnouncement(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if user.TeamID == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You are not in a team", nil)
	}

	var input struct {
		Title   string `json:"title" validate:"required,max=200"`
		Content string `json:"content" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	announcement := models.Announcement{
		TeamID:    *user.TeamID,
		Title:     input.Title,
		Content:   input.Content,
		CreatedBy: user.Name,
	}

	if err := ac.DB.Create(&announcement).Error; err != nil {
		utils.LogError("announcement_create_failed", err, map[string]interface{}{"team_id": *user.TeamID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create announcement", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(announcement))
}

// GetAnnouncements lists the team's announcements, newest first.
func (ac *AnnouncementController) GetAnnouncements(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if user.TeamID == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You are not in a team", nil)
	}

	var announcements []models.Announcement
	err := ac.DB.Where("team_id = ?", *user.TeamID).Find(&announcements).Error
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load announcements", nil)
	}
	services.SortAnnouncementsNewestFirst(announcements)

	return c.JSON(utils.SuccessResponse(announcements))
}

// UpdateAnnouncement edits title/content; the first edit moves updatedAt off
// createdAt.
func (ac *AnnouncementController) UpdateAnnouncement(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	announcementID := c.Params("id")

	var input struct {
		Title   string `json:"title" validate:"required,max=200"`
		Content string `json:"content" validate:"required"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	announcement, err := ac.teamAnnouncement(user, announcementID)
	if err != nil {
		return ac.accessError(c, err)
	}

	services.ApplyAnnouncementEdit(announcement, input.Title, input.Content, time.Now())
	if err := ac.DB.Save(announcement).Error; err != nil {
		utils.LogError("announcement_update_failed", err, map[string]interface{}{"announcement_id": announcementID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update announcement", nil)
	}

	return c.JSON(utils.SuccessResponse(announcement))
}

// DeleteAnnouncement removes a notice from the team's board.
func (ac *AnnouncementController) DeleteAnnouncement(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	announcementID := c.Params("id")

	announcement, err := ac.teamAnnouncement(user, announcementID)
	if err != nil {
		return ac.accessError(c, err)
	}

	if err := ac.DB.Delete(announcement).Error; err != nil {
		utils.LogError("announcement_delete_failed", err, map[string]interface{}{"announcement_id": announcementID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete announcement", nil)
	}

	return c.JSON(fiber.Map{
		"message": "Announcement deleted",
	})
}

// teamAnnouncement loads an announcement and checks it belongs to the
// session user's team.
func (ac *AnnouncementController) teamAnnouncement(user *models.User, id string) (*models.Announcement, error) {
	var announcement models.Announcement
	if err := ac.DB.First(&announcement, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if user.TeamID == nil || *user.TeamID != announcement.TeamID {
		return nil, errWrongTeam
	}
	return &announcement, nil
}

var errWrongTeam = errors.New("entity belongs to another team")

func (ac *AnnouncementController) accessError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Announcement not found", nil)
	case errors.Is(err, errWrongTeam):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Announcement belongs to another team", nil)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load announcement", nil)
	}
}

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

type IssueController struct {
	DB     *gorm.DB
	Logger *log.Logger
}

func NewIssueController(db *gorm.DB, logger *log.Logger) *IssueController {
	return &IssueController{DB: db, Logger: logger}
}

// CreateIssue files a new issue for the session user's team.
func (ic *IssueController) CreateIssue(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if user.TeamID == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You are not in a team", nil)
	}

	var input struct {
		Title       string `json:"title" validate:"required,max=200"`
		Description string `json:"description" validate:"required"`
		Status      string `json:"status" validate:"omitempty,oneof=open in-progress resolved"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	status := input.Status
	if status == "" {
		status = models.IssueStatusOpen
	}

	issue := models.Issue{
		TeamID:      *user.TeamID,
		Title:       input.Title,
		Description: input.Description,
		Status:      status,
		CreatedBy:   user.Name,
		CreatedByID: user.ID,
	}

	if err := ic.DB.Create(&issue).Error; err != nil {
		utils.LogError("issue_create_failed", err, map[string]interface{}{"team_id": *user.TeamID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create issue", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(issue))
}

// GetIssues lists the team's issues, newest first. An optional status query
// narrows the list.
func (ic *IssueController) GetIssues(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	if user.TeamID == nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "You are not in a team", nil)
	}

	query := ic.DB.Where("team_id = ?", *user.TeamID)
	if status := c.Query("status"); status != "" {
		query = query.Where("status = ?", status)
	}

	var issues []models.Issue
	if err := query.Find(&issues).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load issues", nil)
	}
	services.SortIssuesNewestFirst(issues)

	return c.JSON(utils.SuccessResponse(issues))
}

// UpdateIssue edits content or moves status. Content edits are reserved for
// the creator; a bare status change is open to the whole team, since status
// is the one field the workflow mutates independently.
func (ic *IssueController) UpdateIssue(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	issueID := c.Params("id")

	var input struct {
		Title       string `json:"title" validate:"omitempty,max=200"`
		Description string `json:"description"`
		Status      string `json:"status" validate:"omitempty,oneof=open in-progress resolved"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	issue, err := ic.teamIssue(user, issueID)
	if err != nil {
		return ic.accessError(c, err)
	}

	edit := services.IssueEdit{
		Title:       input.Title,
		Description: input.Description,
		Status:      input.Status,
	}
	if err := services.ApplyIssueEdit(issue, user.ID, edit, time.Now()); err != nil {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Only the creator can edit this issue", nil)
	}

	if err := ic.DB.Save(issue).Error; err != nil {
		utils.LogError("issue_update_failed", err, map[string]interface{}{"issue_id": issueID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update issue", nil)
	}

	return c.JSON(utils.SuccessResponse(issue))
}

// DeleteIssue removes an issue; only its creator may do so.
func (ic *IssueController) DeleteIssue(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	issueID := c.Params("id")

	issue, err := ic.teamIssue(user, issueID)
	if err != nil {
		return ic.accessError(c, err)
	}

	if !services.IsIssueCreator(issue, user.ID) {
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Only the creator can delete this issue", nil)
	}

	if err := ic.DB.Delete(issue).Error; err != nil {
		utils.LogError("issue_delete_failed", err, map[string]interface{}{"issue_id": issueID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to delete issue", nil)
	}

	return c.JSON(fiber.Map{
		"message": "Issue deleted",
	})
}

func (ic *IssueController) teamIssue(user *models.User, id string) (*models.Issue, error) {
	var issue models.Issue
	if err := ic.DB.First(&issue, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, utils.ErrNotFound
		}
		return nil, err
	}
	if user.TeamID == nil || *user.TeamID != issue.TeamID {
		return nil, errWrongTeam
	}
	return &issue, nil
}

func (ic *IssueController) accessError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Issue not found", nil)
	case errors.Is(err, errWrongTeam):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Issue belongs to another team", nil)
	default:
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load issue", nil)
	}
}

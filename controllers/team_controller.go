package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/services"
	"teamboard/utils"
)

type TeamController struct {
	DB         *gorm.DB
	Membership *services.Membership
	Logger     *log.Logger
}

func NewTeamController(db *gorm.DB, logger *log.Logger) *TeamController {
	return &TeamController{
		DB:         db,
		Membership: services.NewMembership(services.NewGormMembershipStore(db), logger),
		Logger:     logger,
	}
}

// CreateTeam sets up a team and its leader account in one step and logs the
// leader straight in. The returned user ID is what the leader will type to
// log back in later, so the client is expected to display it prominently.
func (tc *TeamController) CreateTeam(c *fiber.Ctx) error {
	var input struct {
		Name       string `json:"name" validate:"required,max=100"`
		MaxMembers int    `json:"maxMembers" validate:"required,gte=2,lte=20"`
		LeaderName string `json:"leaderName" validate:"required,max=100"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	team, leader, err := tc.Membership.CreateTeam(input.Name, input.MaxMembers, input.LeaderName)
	if err != nil {
		utils.LogError("team_create_failed", err, map[string]interface{}{"name": input.Name})
		return utils.ErrorResponse(c, utils.StatusForError(err), "Failed to create team", nil)
	}

	token, err := utils.GenerateSessionToken(leader)
	if err != nil {
		utils.LogError("session_token_failed", err, map[string]interface{}{"user_id": leader.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to create team", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(fiber.Map{
		"team":  team,
		"user":  leader,
		"token": token,
	}))
}

// JoinTeam adds a member by team ID or scanned QR payload. Capacity is
// enforced here; a full team answers 409.
func (tc *TeamController) JoinTeam(c *fiber.Ctx) error {
	var input struct {
		TeamID     string `json:"teamId"`
		QRPayload  string `json:"qrPayload"`
		MemberName string `json:"memberName" validate:"required,max=100"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	teamID := input.TeamID
	if input.QRPayload != "" {
		decoded, err := utils.DecodeTeamQR(input.QRPayload)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid QR payload", err)
		}
		teamID = decoded
	}
	if teamID == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "teamId or qrPayload is required", nil)
	}

	user, member, err := tc.Membership.Join(teamID, input.MemberName)
	if err != nil {
		var capErr *utils.CapacityError
		switch {
		case errors.Is(err, utils.ErrNotFound):
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found", nil)
		case errors.As(err, &capErr):
			return utils.ErrorResponse(c, fiber.StatusConflict, "Team is full", capErr)
		default:
			utils.LogError("team_join_failed", err, map[string]interface{}{"team_id": teamID})
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to join team", nil)
		}
	}

	token, err := utils.GenerateSessionToken(user)
	if err != nil {
		utils.LogError("session_token_failed", err, map[string]interface{}{"user_id": user.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to join team", nil)
	}

	return c.Status(fiber.StatusCreated).JSON(utils.SuccessResponse(fiber.Map{
		"user":   user,
		"member": member,
		"token":  token,
	}))
}

// GetTeam returns a team with its current member count.
func (tc *TeamController) GetTeam(c *fiber.Ctx) error {
	teamID := c.Params("id")

	var team models.Team
	if err := tc.DB.First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load team", nil)
	}

	var memberCount int64
	if err := tc.DB.Model(&models.TeamMember{}).Where("team_id = ?", teamID).Count(&memberCount).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load team", nil)
	}

	return c.JSON(utils.SuccessResponse(fiber.Map{
		"team":        team,
		"memberCount": memberCount,
	}))
}

// GetTeamQR renders the invite QR code for a team as a PNG.
func (tc *TeamController) GetTeamQR(c *fiber.Ctx) error {
	teamID := c.Params("id")

	var team models.Team
	if err := tc.DB.First(&team, "id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.ErrorResponse(c, fiber.StatusNotFound, "Team not found", nil)
		}
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load team", nil)
	}

	png, err := utils.TeamQRPNG(team.ID, 256)
	if err != nil {
		utils.LogError("qr_render_failed", err, map[string]interface{}{"team_id": team.ID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to render QR code", nil)
	}

	c.Set("Content-Type", "image/png")
	return c.Send(png)
}

// GetTeamMembers lists a team's members, oldest join first.
func (tc *TeamController) GetTeamMembers(c *fiber.Ctx) error {
	teamID := c.Params("id")

	var members []models.TeamMember
	if err := tc.DB.Where("team_id = ?", teamID).Order("joined_at asc").Find(&members).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load members", nil)
	}

	return c.JSON(utils.SuccessResponse(members))
}

// UpdateMemberRole lets the team leader rename a member's role.
func (tc *TeamController) UpdateMemberRole(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	memberID := c.Params("id")

	var input struct {
		Role string `json:"role" validate:"required,max=50"`
	}

	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body", err)
	}
	if err := utils.ValidateStruct(input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Validation failed", err)
	}

	member, err := tc.Membership.UpdateRole(user, memberID, input.Role)
	if err != nil {
		return tc.memberAccessError(c, memberID, err)
	}

	return c.JSON(utils.SuccessResponse(member))
}

// RemoveMember takes a member off the roster and detaches their login
// account from the team. The account stays so the removed user's ID remains
// resolvable at login; it simply no longer carries team access.
func (tc *TeamController) RemoveMember(c *fiber.Ctx) error {
	user := c.Locals("user").(*models.User)
	memberID := c.Params("id")

	if _, err := tc.Membership.Remove(user, memberID); err != nil {
		return tc.memberAccessError(c, memberID, err)
	}

	return c.JSON(fiber.Map{
		"message": "Member removed",
	})
}

func (tc *TeamController) memberAccessError(c *fiber.Ctx, memberID string, err error) error {
	switch {
	case errors.Is(err, utils.ErrNotFound):
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Member not found", nil)
	case errors.Is(err, services.ErrNotLeader):
		return utils.ErrorResponse(c, fiber.StatusForbidden, "Only the team leader can manage members", nil)
	default:
		utils.LogError("member_update_failed", err, map[string]interface{}{"member_id": memberID})
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update member", nil)
	}
}

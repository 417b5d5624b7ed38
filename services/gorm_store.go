package services

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"teamboard/models"
	"teamboard/utils"
)

// idAssignAttempts bounds the retry loop when a freshly generated login ID
// collides with an existing row.
const idAssignAttempts = 5

type gormMembershipStore struct {
	db *gorm.DB
}

// NewGormMembershipStore backs the membership rules with the application
// database.
func NewGormMembershipStore(db *gorm.DB) MembershipStore {
	return &gormMembershipStore{db: db}
}

func (s *gormMembershipStore) TeamByID(id string) (*models.Team, error) {
	var team models.Team
	if err := s.db.First(&team, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("team %s: %w", id, utils.ErrNotFound)
		}
		return nil, &utils.StoreError{Op: "load team " + id, Err: err}
	}
	return &team, nil
}

func (s *gormMembershipStore) MemberCount(teamID string) (int64, error) {
	var count int64
	err := s.db.Model(&models.TeamMember{}).Where("team_id = ?", teamID).Count(&count).Error
	if err != nil {
		return 0, &utils.StoreError{Op: "count members of " + teamID, Err: err}
	}
	return count, nil
}

func (s *gormMembershipStore) CreateTeamWithLeader(team *models.Team, leader *models.User) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := assignUserID(tx, leader); err != nil {
			return err
		}
		if err := tx.Create(leader).Error; err != nil {
			return err
		}

		team.LeaderID = leader.ID
		if err := tx.Create(team).Error; err != nil {
			return err
		}

		// Backfill in the same transaction so a leader row never exists
		// without its team reference.
		leader.TeamID = &team.ID
		return tx.Model(leader).Update("team_id", team.ID).Error
	})
	if err != nil {
		return &utils.StoreError{Op: "create team with leader", Err: err}
	}
	return nil
}

func (s *gormMembershipStore) CreateMembership(user *models.User, member *models.TeamMember) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := assignUserID(tx, user); err != nil {
			return err
		}
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		member.UserID = user.ID
		return tx.Create(member).Error
	})
	if err != nil {
		return &utils.StoreError{Op: "create membership", Err: err}
	}
	return nil
}

func (s *gormMembershipStore) MemberByID(id string) (*models.TeamMember, error) {
	var member models.TeamMember
	if err := s.db.First(&member, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("member %s: %w", id, utils.ErrNotFound)
		}
		return nil, &utils.StoreError{Op: "load member " + id, Err: err}
	}
	return &member, nil
}

func (s *gormMembershipStore) UpdateMemberRole(member *models.TeamMember, role string) error {
	if err := s.db.Model(member).Update("role", role).Error; err != nil {
		return &utils.StoreError{Op: "update role of member " + member.ID, Err: err}
	}
	return nil
}

func (s *gormMembershipStore) RemoveMembership(member *models.TeamMember) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(member).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).
			Where("id = ?", member.UserID).
			Update("team_id", nil).Error
	})
	if err != nil {
		return &utils.StoreError{Op: "remove member " + member.ID, Err: err}
	}
	return nil
}

// assignUserID generates a short login ID and checks it against existing
// users before handing it out.
func assignUserID(tx *gorm.DB, user *models.User) error {
	for i := 0; i < idAssignAttempts; i++ {
		id, err := utils.GenerateUserID()
		if err != nil {
			return err
		}
		var count int64
		if err := tx.Model(&models.User{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			user.ID = id
			return nil
		}
	}
	return errors.New("could not assign a unique user id")
}

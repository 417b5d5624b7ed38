package services

import (
	"errors"
	"fmt"
	"log"

	"teamboard/models"
	"teamboard/utils"
)

// DefaultMemberRole is assigned at join time; team management can change it
// afterwards.
const DefaultMemberRole = "member"

// ErrNotLeader is returned when someone other than the team's leader tries
// to manage its roster.
var ErrNotLeader = errors.New("not the team leader")

// MembershipStore is what the membership rules need from persistence. The
// two Create methods are atomic: either both rows land or neither does.
type MembershipStore interface {
	// TeamByID returns utils.ErrNotFound when the team does not exist.
	TeamByID(id string) (*models.Team, error)
	MemberCount(teamID string) (int64, error)
	// CreateTeamWithLeader persists both rows, assigns the leader's login ID,
	// and backfills team.LeaderID and leader.TeamID.
	CreateTeamWithLeader(team *models.Team, leader *models.User) error
	// CreateMembership persists the user and membership rows, assigning the
	// user's login ID and stamping it on the membership row.
	CreateMembership(user *models.User, member *models.TeamMember) error
	// MemberByID returns utils.ErrNotFound when the membership row does not
	// exist.
	MemberByID(id string) (*models.TeamMember, error)
	UpdateMemberRole(member *models.TeamMember, role string) error
	// RemoveMembership deletes the membership row and clears the linked
	// user's team reference in the same transaction. The login account row
	// itself stays.
	RemoveMembership(member *models.TeamMember) error
}

// Membership enforces team capacity, role defaults, and join eligibility.
type Membership struct {
	store  MembershipStore
	logger *log.Logger
}

func NewMembership(store MembershipStore, logger *log.Logger) *Membership {
	return &Membership{store: store, logger: logger}
}

// CreateTeam creates the leader's user account and the team in one logical
// operation and returns both.
func (m *Membership) CreateTeam(name string, maxMembers int, leaderName string) (*models.Team, *models.User, error) {
	leader := &models.User{
		Name: leaderName,
		Type: models.UserTypeLeader,
	}
	team := &models.Team{
		Name:       name,
		MaxMembers: maxMembers,
		LeaderName: leaderName,
	}

	if err := m.store.CreateTeamWithLeader(team, leader); err != nil {
		return nil, nil, fmt.Errorf("create team %q: %w", name, err)
	}

	m.logger.Printf("team %s created by leader %s (max %d members)", team.ID, leader.ID, maxMembers)
	return team, leader, nil
}

// Join adds a member to an existing team. It fails with utils.ErrNotFound
// for an unknown team and *utils.CapacityError for a full one. Duplicate
// member names within a team are allowed. The capacity check happens at join
// time only; it is not re-validated against later concurrent joins.
func (m *Membership) Join(teamID, memberName string) (*models.User, *models.TeamMember, error) {
	team, err := m.store.TeamByID(teamID)
	if err != nil {
		return nil, nil, err
	}

	count, err := m.store.MemberCount(teamID)
	if err != nil {
		return nil, nil, err
	}
	if count >= int64(team.MaxMembers) {
		return nil, nil, &utils.CapacityError{TeamID: teamID, MaxMembers: team.MaxMembers}
	}

	user := &models.User{
		Name:   memberName,
		Type:   models.UserTypeMember,
		TeamID: &team.ID,
	}
	member := &models.TeamMember{
		Name:   memberName,
		TeamID: team.ID,
		Role:   DefaultMemberRole,
	}

	if err := m.store.CreateMembership(user, member); err != nil {
		return nil, nil, fmt.Errorf("join team %s: %w", teamID, err)
	}

	m.logger.Printf("user %s joined team %s as %q", user.ID, teamID, member.Role)
	return user, member, nil
}

// UpdateRole renames a member's role. Only the leader of the member's team
// may do so; anyone else gets ErrNotLeader.
func (m *Membership) UpdateRole(actor *models.User, memberID, role string) (*models.TeamMember, error) {
	member, err := m.memberForLeader(actor, memberID)
	if err != nil {
		return nil, err
	}
	if err := m.store.UpdateMemberRole(member, role); err != nil {
		return nil, fmt.Errorf("update role of member %s: %w", memberID, err)
	}
	return member, nil
}

// Remove takes a member off the team's roster and detaches their login
// account from the team, so a removed member's session no longer resolves to
// team-scoped access. The account itself survives and its ID stays
// resolvable at login.
func (m *Membership) Remove(actor *models.User, memberID string) (*models.TeamMember, error) {
	member, err := m.memberForLeader(actor, memberID)
	if err != nil {
		return nil, err
	}
	if err := m.store.RemoveMembership(member); err != nil {
		return nil, fmt.Errorf("remove member %s: %w", memberID, err)
	}
	m.logger.Printf("member %s removed from team %s by %s", member.ID, member.TeamID, actor.ID)
	return member, nil
}

// memberForLeader loads a member row and checks the actor leads that
// member's team.
func (m *Membership) memberForLeader(actor *models.User, memberID string) (*models.TeamMember, error) {
	member, err := m.store.MemberByID(memberID)
	if err != nil {
		return nil, err
	}
	if !actor.IsLeader() || actor.TeamID == nil || *actor.TeamID != member.TeamID {
		return nil, ErrNotLeader
	}
	return member, nil
}

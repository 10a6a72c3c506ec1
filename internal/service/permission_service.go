package service

import (
	"context"

	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/types"
)

// ============================================
// Permission Service
// ============================================

// PermissionService answers access questions for clubs and teams.
// A creator always counts as an admin even without a membership record.
type PermissionService interface {
	IsClubAdmin(ctx context.Context, clubID, userID string) (bool, error)
	IsTeamAdmin(ctx context.Context, teamID, userID string) (bool, error)
	CanAccessClub(ctx context.Context, clubID, userID string) (bool, error)
	CanAccessTeam(ctx context.Context, teamID, userID string) (bool, error)
	CanAccessOrg(ctx context.Context, orgKind, orgID, userID string) (bool, error)
	IsOrgAdmin(ctx context.Context, orgKind, orgID, userID string) (bool, error)
}

type permissionService struct {
	clubRepo repository.ClubRepository
	teamRepo repository.TeamRepository
}

func NewPermissionService(clubRepo repository.ClubRepository, teamRepo repository.TeamRepository) PermissionService {
	return &permissionService{clubRepo: clubRepo, teamRepo: teamRepo}
}

func (s *permissionService) IsClubAdmin(ctx context.Context, clubID, userID string) (bool, error) {
	club, err := s.clubRepo.FindByID(ctx, clubID)
	if err != nil {
		return false, err
	}
	if club == nil {
		return false, ErrNotFound
	}
	if club.CreatedBy == userID {
		return true, nil
	}

	m, err := s.clubRepo.FindMembership(ctx, clubID, userID)
	if err != nil {
		return false, err
	}
	if m == nil {
		return false, nil
	}
	return hasRole(m.Roles, types.RoleClubAdmin), nil
}

// IsTeamAdmin is true for the team creator, a team_admin member, or any
// admin of the owning club.
func (s *permissionService) IsTeamAdmin(ctx context.Context, teamID, userID string) (bool, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return false, err
	}
	if team == nil {
		return false, ErrNotFound
	}
	if team.CreatedBy == userID {
		return true, nil
	}

	m, err := s.teamRepo.FindMembership(ctx, teamID, userID)
	if err != nil {
		return false, err
	}
	if m != nil && hasRole(m.Roles, types.RoleTeamAdmin) {
		return true, nil
	}

	return s.IsClubAdmin(ctx, team.ClubID, userID)
}

func (s *permissionService) CanAccessClub(ctx context.Context, clubID, userID string) (bool, error) {
	club, err := s.clubRepo.FindByID(ctx, clubID)
	if err != nil {
		return false, err
	}
	if club == nil {
		return false, ErrNotFound
	}
	if club.CreatedBy == userID {
		return true, nil
	}

	m, err := s.clubRepo.FindMembership(ctx, clubID, userID)
	if err != nil {
		return false, err
	}
	return m != nil, nil
}

func (s *permissionService) CanAccessTeam(ctx context.Context, teamID, userID string) (bool, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return false, err
	}
	if team == nil {
		return false, ErrNotFound
	}
	if team.CreatedBy == userID {
		return true, nil
	}

	ok, err := s.teamRepo.IsMember(ctx, teamID, userID)
	if err != nil {
		return false, err
	}
	if ok {
		return true, nil
	}

	// Club admins can reach every team under their club
	return s.IsClubAdmin(ctx, team.ClubID, userID)
}

func (s *permissionService) CanAccessOrg(ctx context.Context, orgKind, orgID, userID string) (bool, error) {
	switch orgKind {
	case types.OrgClub:
		return s.CanAccessClub(ctx, orgID, userID)
	case types.OrgTeam:
		return s.CanAccessTeam(ctx, orgID, userID)
	default:
		return false, ErrInvalidInput
	}
}

func (s *permissionService) IsOrgAdmin(ctx context.Context, orgKind, orgID, userID string) (bool, error) {
	switch orgKind {
	case types.OrgClub:
		return s.IsClubAdmin(ctx, orgID, userID)
	case types.OrgTeam:
		return s.IsTeamAdmin(ctx, orgID, userID)
	default:
		return false, ErrInvalidInput
	}
}

func hasRole(roles []string, role string) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}

package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/clubhub-dev/clubhub-backend/internal/notification"
	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/socket"
	"github.com/clubhub-dev/clubhub-backend/internal/types"
)

// ============================================
// Team Service
// ============================================

type TeamService interface {
	Create(ctx context.Context, clubID, userID, name string, description *string) (*repository.Team, error)
	GetByID(ctx context.Context, teamID, userID string) (*repository.Team, error)
	ListByClub(ctx context.Context, clubID, userID string) ([]*repository.Team, error)
	Update(ctx context.Context, teamID, userID string, name, description *string) (*repository.Team, error)
	Delete(ctx context.Context, teamID, userID string) error

	ListMembers(ctx context.Context, teamID, userID string) ([]*repository.TeamMembership, error)
	AddMember(ctx context.Context, teamID, actorID, targetUserID string, roles []string) (*repository.TeamMembership, error)
	UpdateMemberRoles(ctx context.Context, teamID, actorID, targetUserID string, roles []string) error
	RemoveMember(ctx context.Context, teamID, actorID, targetUserID string) error
}

type teamService struct {
	teamRepo    repository.TeamRepository
	clubRepo    repository.ClubRepository
	userRepo    repository.UserRepository
	permissions PermissionService
	members     MemberService
	notifSvc    *notification.Service
	broadcaster *socket.Broadcaster
}

func NewTeamService(
	teamRepo repository.TeamRepository,
	clubRepo repository.ClubRepository,
	userRepo repository.UserRepository,
	permissions PermissionService,
	members MemberService,
	notifSvc *notification.Service,
	broadcaster *socket.Broadcaster,
) TeamService {
	return &teamService{
		teamRepo:    teamRepo,
		clubRepo:    clubRepo,
		userRepo:    userRepo,
		permissions: permissions,
		members:     members,
		notifSvc:    notifSvc,
		broadcaster: broadcaster,
	}
}

func (s *teamService) Create(ctx context.Context, clubID, userID, name string, description *string) (*repository.Team, error) {
	ok, err := s.permissions.CanAccessClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	team := &repository.Team{
		ClubID:      clubID,
		Name:        name,
		Description: description,
		CreatedBy:   userID,
	}
	if err := s.teamRepo.Create(ctx, team); err != nil {
		return nil, fmt.Errorf("failed to create team: %w", err)
	}

	s.members.InvalidateClubMembers(ctx, clubID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastTeamCreated(clubID, map[string]interface{}{
			"teamId": team.ID,
			"name":   team.Name,
		})
	}
	return team, nil
}

func (s *teamService) GetByID(ctx context.Context, teamID, userID string) (*repository.Team, error) {
	ok, err := s.permissions.CanAccessTeam(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.teamRepo.FindByID(ctx, teamID)
}

func (s *teamService) ListByClub(ctx context.Context, clubID, userID string) ([]*repository.Team, error) {
	ok, err := s.permissions.CanAccessClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.teamRepo.FindByClubID(ctx, clubID)
}

func (s *teamService) Update(ctx context.Context, teamID, userID string, name, description *string) (*repository.Team, error) {
	ok, err := s.permissions.IsTeamAdmin(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		team.Name = trimmed
	}
	if description != nil {
		team.Description = description
	}

	if err := s.teamRepo.Update(ctx, team); err != nil {
		return nil, err
	}

	s.members.InvalidateClubMembers(ctx, team.ClubID)
	return team, nil
}

func (s *teamService) Delete(ctx context.Context, teamID, userID string) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrNotFound
	}

	ok, err := s.permissions.IsTeamAdmin(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	if err := s.teamRepo.Delete(ctx, teamID); err != nil {
		return err
	}

	s.members.InvalidateClubMembers(ctx, team.ClubID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastTeamDeleted(team.ClubID, teamID)
	}
	return nil
}

func (s *teamService) ListMembers(ctx context.Context, teamID, userID string) ([]*repository.TeamMembership, error) {
	ok, err := s.permissions.CanAccessTeam(ctx, teamID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.teamRepo.FindMemberships(ctx, teamID)
}

func (s *teamService) AddMember(ctx context.Context, teamID, actorID, targetUserID string, roles []string) (*repository.TeamMembership, error) {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return nil, err
	}
	if team == nil {
		return nil, ErrNotFound
	}

	ok, err := s.permissions.IsTeamAdmin(ctx, teamID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if err := validateTeamRoles(roles); err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.teamRepo.FindMembership(ctx, teamID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	m := &repository.TeamMembership{
		TeamID: teamID,
		UserID: targetUserID,
		Roles:  roles,
	}
	if err := s.teamRepo.AddMember(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to add team member: %w", err)
	}

	s.members.InvalidateClubMembers(ctx, team.ClubID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastTeamMemberAdded(team.ClubID, teamID, map[string]interface{}{
			"userId": targetUserID,
			"name":   target.Name,
			"roles":  roles,
		})
	}
	if s.notifSvc != nil {
		s.notifSvc.Send(ctx, targetUserID, notification.TypeTeamMemberAdded,
			"Added to team",
			fmt.Sprintf("You were added to %s", team.Name),
			map[string]interface{}{"teamId": teamID, "clubId": team.ClubID})
	}

	return m, nil
}

func (s *teamService) UpdateMemberRoles(ctx context.Context, teamID, actorID, targetUserID string, roles []string) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrNotFound
	}

	ok, err := s.permissions.IsTeamAdmin(ctx, teamID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	if err := validateTeamRoles(roles); err != nil {
		return err
	}

	existing, err := s.teamRepo.FindMembership(ctx, teamID, targetUserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.teamRepo.UpdateMemberRoles(ctx, teamID, targetUserID, roles); err != nil {
		return err
	}

	s.members.InvalidateClubMembers(ctx, team.ClubID)
	return nil
}

func (s *teamService) RemoveMember(ctx context.Context, teamID, actorID, targetUserID string) error {
	team, err := s.teamRepo.FindByID(ctx, teamID)
	if err != nil {
		return err
	}
	if team == nil {
		return ErrNotFound
	}

	// Members may leave a team on their own
	if actorID != targetUserID {
		ok, err := s.permissions.IsTeamAdmin(ctx, teamID, actorID)
		if err != nil {
			return err
		}
		if !ok {
			return ErrForbidden
		}
	}

	existing, err := s.teamRepo.FindMembership(ctx, teamID, targetUserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.teamRepo.RemoveMember(ctx, teamID, targetUserID); err != nil {
		return err
	}

	s.members.InvalidateClubMembers(ctx, team.ClubID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastTeamMemberRemoved(team.ClubID, teamID, targetUserID)
	}
	return nil
}

func validateTeamRoles(roles []string) error {
	if len(roles) == 0 {
		return ErrInvalidInput
	}
	for _, r := range roles {
		if !types.IsValidTeamRole(r) {
			return ErrInvalidInput
		}
	}
	return nil
}

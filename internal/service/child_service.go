package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/socket"
)

// ============================================
// Child Service
// ============================================

// ChildService manages guardian-owned child records. Children never have
// accounts, they appear in club member views through their team link.
type ChildService interface {
	Create(ctx context.Context, guardianID, name string, teamID *string) (*repository.Child, error)
	GetByID(ctx context.Context, childID, userID string) (*repository.Child, error)
	ListMine(ctx context.Context, guardianID string) ([]*repository.Child, error)
	Update(ctx context.Context, childID, guardianID string, name *string, teamID *string) (*repository.Child, error)
	Delete(ctx context.Context, childID, guardianID string) error
}

type childService struct {
	childRepo   repository.ChildRepository
	teamRepo    repository.TeamRepository
	members     MemberService
	broadcaster *socket.Broadcaster
}

func NewChildService(
	childRepo repository.ChildRepository,
	teamRepo repository.TeamRepository,
	members MemberService,
	broadcaster *socket.Broadcaster,
) ChildService {
	return &childService{
		childRepo:   childRepo,
		teamRepo:    teamRepo,
		members:     members,
		broadcaster: broadcaster,
	}
}

func (s *childService) Create(ctx context.Context, guardianID, name string, teamID *string) (*repository.Child, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	var clubID string
	if teamID != nil {
		team, err := s.teamRepo.FindByID(ctx, *teamID)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, ErrNotFound
		}
		clubID = team.ClubID
	}

	child := &repository.Child{
		GuardianID: guardianID,
		Name:       name,
		TeamID:     teamID,
	}
	if err := s.childRepo.Create(ctx, child); err != nil {
		return nil, fmt.Errorf("failed to create child: %w", err)
	}

	if clubID != "" {
		s.reportChildChange(ctx, clubID)
	}
	return child, nil
}

func (s *childService) GetByID(ctx context.Context, childID, userID string) (*repository.Child, error) {
	child, err := s.childRepo.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrNotFound
	}
	if child.GuardianID != userID {
		return nil, ErrForbidden
	}
	return child, nil
}

func (s *childService) ListMine(ctx context.Context, guardianID string) ([]*repository.Child, error) {
	return s.childRepo.FindByGuardian(ctx, guardianID)
}

func (s *childService) Update(ctx context.Context, childID, guardianID string, name *string, teamID *string) (*repository.Child, error) {
	child, err := s.childRepo.FindByID(ctx, childID)
	if err != nil {
		return nil, err
	}
	if child == nil {
		return nil, ErrNotFound
	}
	if child.GuardianID != guardianID {
		return nil, ErrForbidden
	}

	// Both the old and new team's club views go stale on a move
	affected := map[string]bool{}
	if child.TeamID != nil {
		if team, err := s.teamRepo.FindByID(ctx, *child.TeamID); err == nil && team != nil {
			affected[team.ClubID] = true
		}
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		child.Name = trimmed
	}
	if teamID != nil {
		if *teamID == "" {
			child.TeamID = nil
		} else {
			team, err := s.teamRepo.FindByID(ctx, *teamID)
			if err != nil {
				return nil, err
			}
			if team == nil {
				return nil, ErrNotFound
			}
			child.TeamID = teamID
			affected[team.ClubID] = true
		}
	}

	if err := s.childRepo.Update(ctx, child); err != nil {
		return nil, err
	}

	for clubID := range affected {
		s.reportChildChange(ctx, clubID)
	}
	return child, nil
}

func (s *childService) Delete(ctx context.Context, childID, guardianID string) error {
	child, err := s.childRepo.FindByID(ctx, childID)
	if err != nil {
		return err
	}
	if child == nil {
		return ErrNotFound
	}
	if child.GuardianID != guardianID {
		return ErrForbidden
	}

	var clubID string
	if child.TeamID != nil {
		if team, err := s.teamRepo.FindByID(ctx, *child.TeamID); err == nil && team != nil {
			clubID = team.ClubID
		}
	}

	if err := s.childRepo.Delete(ctx, childID); err != nil {
		return err
	}

	if clubID != "" {
		s.reportChildChange(ctx, clubID)
	}
	return nil
}

func (s *childService) reportChildChange(ctx context.Context, clubID string) {
	s.members.InvalidateClubMembers(ctx, clubID)
	if s.broadcaster != nil {
		s.broadcaster.ReportMutation(clubID, socket.MutationChildChanged, nil, "")
	}
}

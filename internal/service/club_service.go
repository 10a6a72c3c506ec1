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
// Club Service
// ============================================

type ClubService interface {
	Create(ctx context.Context, userID, name string, description, avatar *string) (*repository.Club, error)
	GetByID(ctx context.Context, clubID, userID string) (*repository.Club, error)
	ListMine(ctx context.Context, userID string) ([]*repository.Club, error)
	Update(ctx context.Context, clubID, userID string, name, description, avatar *string) (*repository.Club, error)
	Delete(ctx context.Context, clubID, userID string) error

	ListMembers(ctx context.Context, clubID, userID string) ([]*Member, error)
	AddMember(ctx context.Context, clubID, actorID, targetUserID string, roles []string) (*repository.ClubMembership, error)
	UpdateMemberRoles(ctx context.Context, clubID, actorID, targetUserID string, roles []string) error
	RemoveMemberRole(ctx context.Context, clubID, actorID, targetUserID, role string) error
	RemoveMember(ctx context.Context, clubID, actorID, targetUserID string) error
}

type clubService struct {
	clubRepo    repository.ClubRepository
	userRepo    repository.UserRepository
	permissions PermissionService
	members     MemberService
	notifSvc    *notification.Service
	broadcaster *socket.Broadcaster
}

func NewClubService(
	clubRepo repository.ClubRepository,
	userRepo repository.UserRepository,
	permissions PermissionService,
	members MemberService,
	notifSvc *notification.Service,
	broadcaster *socket.Broadcaster,
) ClubService {
	return &clubService{
		clubRepo:    clubRepo,
		userRepo:    userRepo,
		permissions: permissions,
		members:     members,
		notifSvc:    notifSvc,
		broadcaster: broadcaster,
	}
}

// Create stores a new club. The creator is not given a membership record,
// the member view synthesizes an admin entry for them instead.
func (s *clubService) Create(ctx context.Context, userID, name string, description, avatar *string) (*repository.Club, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrInvalidInput
	}

	club := &repository.Club{
		Name:        name,
		Description: description,
		Avatar:      avatar,
		CreatedBy:   userID,
	}
	if err := s.clubRepo.Create(ctx, club); err != nil {
		return nil, fmt.Errorf("failed to create club: %w", err)
	}
	return club, nil
}

func (s *clubService) GetByID(ctx context.Context, clubID, userID string) (*repository.Club, error) {
	ok, err := s.permissions.CanAccessClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.clubRepo.FindByID(ctx, clubID)
}

func (s *clubService) ListMine(ctx context.Context, userID string) ([]*repository.Club, error) {
	return s.clubRepo.FindByUserID(ctx, userID)
}

func (s *clubService) Update(ctx context.Context, clubID, userID string, name, description, avatar *string) (*repository.Club, error) {
	ok, err := s.permissions.IsClubAdmin(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	club, err := s.clubRepo.FindByID(ctx, clubID)
	if err != nil {
		return nil, err
	}
	if club == nil {
		return nil, ErrNotFound
	}

	if name != nil {
		trimmed := strings.TrimSpace(*name)
		if trimmed == "" {
			return nil, ErrInvalidInput
		}
		club.Name = trimmed
	}
	if description != nil {
		club.Description = description
	}
	if avatar != nil {
		club.Avatar = avatar
	}

	if err := s.clubRepo.Update(ctx, club); err != nil {
		return nil, err
	}

	if s.broadcaster != nil {
		s.broadcaster.ReportMutation(clubID, socket.MutationClubUpdated, nil, userID)
	}
	return club, nil
}

// Delete removes the club. Only the creator may do this.
func (s *clubService) Delete(ctx context.Context, clubID, userID string) error {
	club, err := s.clubRepo.FindByID(ctx, clubID)
	if err != nil {
		return err
	}
	if club == nil {
		return ErrNotFound
	}
	if club.CreatedBy != userID {
		return ErrForbidden
	}

	if err := s.clubRepo.Delete(ctx, clubID); err != nil {
		return err
	}
	s.members.InvalidateClubMembers(ctx, clubID)
	return nil
}

func (s *clubService) ListMembers(ctx context.Context, clubID, userID string) ([]*Member, error) {
	ok, err := s.permissions.CanAccessClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.members.AggregateClubMembers(ctx, clubID)
}

func (s *clubService) AddMember(ctx context.Context, clubID, actorID, targetUserID string, roles []string) (*repository.ClubMembership, error) {
	ok, err := s.permissions.IsClubAdmin(ctx, clubID, actorID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if err := validateClubRoles(roles); err != nil {
		return nil, err
	}

	target, err := s.userRepo.FindByID(ctx, targetUserID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, ErrUserNotFound
	}

	existing, err := s.clubRepo.FindMembership(ctx, clubID, targetUserID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrConflict
	}

	m := &repository.ClubMembership{
		ClubID: clubID,
		UserID: targetUserID,
		Roles:  roles,
	}
	if err := s.clubRepo.AddMember(ctx, m); err != nil {
		return nil, fmt.Errorf("failed to add club member: %w", err)
	}

	s.members.InvalidateClubMembers(ctx, clubID)

	if s.broadcaster != nil {
		s.broadcaster.BroadcastMemberAdded(clubID, map[string]interface{}{
			"userId": targetUserID,
			"name":   target.Name,
			"roles":  roles,
		})
	}
	if s.notifSvc != nil {
		club, _ := s.clubRepo.FindByID(ctx, clubID)
		clubName := clubID
		if club != nil {
			clubName = club.Name
		}
		s.notifSvc.Send(ctx, targetUserID, notification.TypeClubMemberAdded,
			"Added to club",
			fmt.Sprintf("You were added to %s", clubName),
			map[string]interface{}{"clubId": clubID})
	}

	return m, nil
}

func (s *clubService) UpdateMemberRoles(ctx context.Context, clubID, actorID, targetUserID string, roles []string) error {
	ok, err := s.permissions.IsClubAdmin(ctx, clubID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	if err := validateClubRoles(roles); err != nil {
		return err
	}

	existing, err := s.clubRepo.FindMembership(ctx, clubID, targetUserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.clubRepo.UpdateMemberRoles(ctx, clubID, targetUserID, roles); err != nil {
		return err
	}

	s.members.InvalidateClubMembers(ctx, clubID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMemberRoleUpdated(clubID, targetUserID, roles)
	}
	return nil
}

// RemoveMemberRole drops a single role from a membership, leaving the
// membership in place even when its role set becomes empty.
func (s *clubService) RemoveMemberRole(ctx context.Context, clubID, actorID, targetUserID, role string) error {
	ok, err := s.permissions.IsClubAdmin(ctx, clubID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	existing, err := s.clubRepo.FindMembership(ctx, clubID, targetUserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	remaining := make([]string, 0, len(existing.Roles))
	found := false
	for _, r := range existing.Roles {
		if r == role {
			found = true
			continue
		}
		remaining = append(remaining, r)
	}
	if !found {
		return ErrNotFound
	}

	if err := s.clubRepo.UpdateMemberRoles(ctx, clubID, targetUserID, remaining); err != nil {
		return err
	}

	s.members.InvalidateClubMembers(ctx, clubID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMemberRoleUpdated(clubID, targetUserID, remaining)
	}
	return nil
}

func (s *clubService) RemoveMember(ctx context.Context, clubID, actorID, targetUserID string) error {
	ok, err := s.permissions.IsClubAdmin(ctx, clubID, actorID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	existing, err := s.clubRepo.FindMembership(ctx, clubID, targetUserID)
	if err != nil {
		return err
	}
	if existing == nil {
		return ErrNotFound
	}

	if err := s.clubRepo.RemoveMember(ctx, clubID, targetUserID); err != nil {
		return err
	}

	s.members.InvalidateClubMembers(ctx, clubID)
	if s.broadcaster != nil {
		s.broadcaster.BroadcastMemberRemoved(clubID, targetUserID)
	}
	return nil
}

func validateClubRoles(roles []string) error {
	if len(roles) == 0 {
		return ErrInvalidInput
	}
	for _, r := range roles {
		if !types.IsValidClubRole(r) {
			return ErrInvalidInput
		}
	}
	return nil
}

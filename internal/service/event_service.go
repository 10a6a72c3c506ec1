package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/clubhub-dev/clubhub-backend/internal/repository"
)

// ============================================
// Event Service
// ============================================

type EventService interface {
	Create(ctx context.Context, clubID, userID, title string, startsAt time.Time, teamID *string, dutyRoles []string) (*repository.Event, error)
	GetByID(ctx context.Context, eventID, userID string) (*repository.Event, error)
	ListByClub(ctx context.Context, clubID, userID string) ([]*repository.Event, error)
	Delete(ctx context.Context, eventID, userID string) error
}

type eventService struct {
	eventRepo   repository.EventRepository
	clubRepo    repository.ClubRepository
	permissions PermissionService
}

func NewEventService(
	eventRepo repository.EventRepository,
	clubRepo repository.ClubRepository,
	permissions PermissionService,
) EventService {
	return &eventService{
		eventRepo:   eventRepo,
		clubRepo:    clubRepo,
		permissions: permissions,
	}
}

// Create stores an event with its assignable duty roles. Duty roles are
// free-form labels ("grill", "cake", "cleanup"), deduplicated on write.
func (s *eventService) Create(ctx context.Context, clubID, userID, title string, startsAt time.Time, teamID *string, dutyRoles []string) (*repository.Event, error) {
	ok, err := s.permissions.IsClubAdmin(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrInvalidInput
	}

	seen := map[string]bool{}
	roles := make([]string, 0, len(dutyRoles))
	for _, r := range dutyRoles {
		r = strings.TrimSpace(r)
		if r == "" || seen[r] {
			continue
		}
		seen[r] = true
		roles = append(roles, r)
	}

	event := &repository.Event{
		ClubID:    clubID,
		TeamID:    teamID,
		Title:     title,
		StartsAt:  startsAt,
		DutyRoles: roles,
		CreatedBy: userID,
	}
	if err := s.eventRepo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to create event: %w", err)
	}
	return event, nil
}

func (s *eventService) GetByID(ctx context.Context, eventID, userID string) (*repository.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	ok, err := s.permissions.CanAccessClub(ctx, event.ClubID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return event, nil
}

func (s *eventService) ListByClub(ctx context.Context, clubID, userID string) ([]*repository.Event, error) {
	ok, err := s.permissions.CanAccessClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}
	return s.eventRepo.FindByClub(ctx, clubID)
}

func (s *eventService) Delete(ctx context.Context, eventID, userID string) error {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return err
	}
	if event == nil {
		return ErrNotFound
	}

	ok, err := s.permissions.IsClubAdmin(ctx, event.ClubID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}
	return s.eventRepo.Delete(ctx, eventID)
}

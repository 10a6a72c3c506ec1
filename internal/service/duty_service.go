package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/clubhub-dev/clubhub-backend/internal/duty"
	"github.com/clubhub-dev/clubhub-backend/internal/notification"
	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/socket"
)

// ============================================
// Duty Service (completion and point awards)
// ============================================

// PointsPerDuty is credited once per approved completion
const PointsPerDuty = 5

type DutyService interface {
	MarkCompleted(ctx context.Context, eventID, dutyRole, assigneeID string) (*duty.Completion, error)
	Approve(ctx context.Context, completionID, approverID string) (*duty.Completion, error)
	ListByEvent(ctx context.Context, eventID, userID string) ([]*duty.Completion, error)
	MyCompletions(ctx context.Context, userID string) ([]*duty.Completion, error)
	Balance(ctx context.Context, userID string) (*duty.Balance, error)
	Leaderboard(ctx context.Context, clubID, userID string, limit int) ([]*duty.Balance, error)
}

type dutyService struct {
	store       duty.Store
	eventRepo   repository.EventRepository
	clubRepo    repository.ClubRepository
	permissions PermissionService
	members     MemberService
	notifSvc    *notification.Service
	broadcaster *socket.Broadcaster
}

func NewDutyService(
	store duty.Store,
	eventRepo repository.EventRepository,
	clubRepo repository.ClubRepository,
	permissions PermissionService,
	members MemberService,
	notifSvc *notification.Service,
	broadcaster *socket.Broadcaster,
) DutyService {
	return &dutyService{
		store:       store,
		eventRepo:   eventRepo,
		clubRepo:    clubRepo,
		permissions: permissions,
		members:     members,
		notifSvc:    notifSvc,
		broadcaster: broadcaster,
	}
}

// MarkCompleted records that the assignee finished a duty on an event.
// The duty role must be one the event defines, and each (event, role,
// assignee) triple completes at most once.
func (s *dutyService) MarkCompleted(ctx context.Context, eventID, dutyRole, assigneeID string) (*duty.Completion, error) {
	event, err := s.eventRepo.FindByID(ctx, eventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	ok, err := s.permissions.CanAccessClub(ctx, event.ClubID, assigneeID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	if !hasRole(event.DutyRoles, dutyRole) {
		return nil, ErrDutyNotAssignable
	}

	c := &duty.Completion{
		EventID:    eventID,
		DutyRole:   dutyRole,
		AssigneeID: assigneeID,
	}
	if err := s.store.CreateCompletion(ctx, c); err != nil {
		if errors.Is(err, duty.ErrDuplicate) {
			return nil, ErrDutyCompleted
		}
		return nil, fmt.Errorf("failed to record completion: %w", err)
	}

	if s.broadcaster != nil {
		s.broadcaster.BroadcastDutyCompleted(event.ClubID, map[string]interface{}{
			"completionId": c.ID,
			"eventId":      eventID,
			"dutyRole":     dutyRole,
			"assigneeId":   assigneeID,
		})
	}
	return c, nil
}

// Approve moves a completion to its terminal state and credits the
// assignee exactly PointsPerDuty points. The transition and the credit
// are one atomic step in the ledger; a second approval fails without
// touching the balance.
func (s *dutyService) Approve(ctx context.Context, completionID, approverID string) (*duty.Completion, error) {
	c, err := s.store.FindCompletionByID(ctx, completionID)
	if err != nil {
		if errors.Is(err, duty.ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if c == nil {
		return nil, ErrNotFound
	}

	event, err := s.eventRepo.FindByID(ctx, c.EventID)
	if err != nil {
		return nil, err
	}
	if event == nil {
		return nil, ErrNotFound
	}

	ok, err := s.permissions.IsClubAdmin(ctx, event.ClubID, approverID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	approved, err := s.store.Approve(ctx, completionID, approverID, PointsPerDuty)
	if err != nil {
		switch {
		case errors.Is(err, duty.ErrNotFound):
			return nil, ErrNotFound
		case errors.Is(err, duty.ErrAlreadyApproved):
			return nil, ErrDutyApproved
		default:
			return nil, fmt.Errorf("failed to approve completion: %w", err)
		}
	}

	if s.notifSvc != nil {
		s.notifSvc.Send(ctx, approved.AssigneeID, notification.TypeDutyApproved,
			"Duty approved",
			fmt.Sprintf("Your %s duty was approved, %d points credited", approved.DutyRole, PointsPerDuty),
			map[string]interface{}{
				"eventId":      approved.EventID,
				"completionId": approved.ID,
				"points":       PointsPerDuty,
			})
	}
	if s.broadcaster != nil {
		s.broadcaster.BroadcastDutyApproved(event.ClubID, map[string]interface{}{
			"completionId": approved.ID,
			"eventId":      approved.EventID,
			"assigneeId":   approved.AssigneeID,
			"points":       PointsPerDuty,
		})
	}
	return approved, nil
}

func (s *dutyService) ListByEvent(ctx context.Context, eventID, userID string) ([]*duty.Completion, error) {
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
	return s.store.ListByEvent(ctx, eventID)
}

func (s *dutyService) MyCompletions(ctx context.Context, userID string) ([]*duty.Completion, error) {
	return s.store.ListByAssignee(ctx, userID)
}

func (s *dutyService) Balance(ctx context.Context, userID string) (*duty.Balance, error) {
	return s.store.Balance(ctx, userID)
}

// Leaderboard ranks the club's members by points. Balances belong to
// users globally, so the club's aggregated member view filters them.
func (s *dutyService) Leaderboard(ctx context.Context, clubID, userID string, limit int) ([]*duty.Balance, error) {
	ok, err := s.permissions.CanAccessClub(ctx, clubID, userID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrForbidden
	}

	members, err := s.members.AggregateClubMembers(ctx, clubID)
	if err != nil {
		return nil, err
	}
	inClub := make(map[string]bool, len(members))
	for _, m := range members {
		inClub[m.Principal] = true
	}

	balances, err := s.store.TopBalances(ctx, 0)
	if err != nil {
		return nil, err
	}

	ranked := make([]*duty.Balance, 0, len(balances))
	for _, b := range balances {
		if !inClub[b.UserID] {
			continue
		}
		ranked = append(ranked, b)
		if limit > 0 && len(ranked) == limit {
			break
		}
	}
	return ranked, nil
}

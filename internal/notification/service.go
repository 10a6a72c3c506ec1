package notification

import (
	"context"
	"log"

	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/socket"
)

// Notification types
const (
	TypeDutyApproved    = "DUTY_APPROVED"
	TypeDutyCompleted   = "DUTY_COMPLETED"
	TypeDutyReminder    = "DUTY_REMINDER"
	TypeClubMemberAdded = "CLUB_MEMBER_ADDED"
	TypeTeamMemberAdded = "TEAM_MEMBER_ADDED"
)

// Service handles persisting and pushing notifications
type Service struct {
	notificationRepo repository.NotificationRepository
	broadcaster      *socket.Broadcaster
}

// NewService creates a new notification service
func NewService(notificationRepo repository.NotificationRepository) *Service {
	return &Service{
		notificationRepo: notificationRepo,
	}
}

func (s *Service) SetBroadcaster(b *socket.Broadcaster) {
	s.broadcaster = b
}

// Send persists a notification and pushes it to the user if connected.
// Failures are logged, never propagated: a missed notification must not
// fail the mutation that produced it.
func (s *Service) Send(ctx context.Context, userID, notifType, title, message string, data map[string]interface{}) {
	n := &repository.Notification{
		UserID:  userID,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}

	if err := s.notificationRepo.Create(ctx, n); err != nil {
		log.Printf("[Notification] ⚠️ Failed to persist notification for user %s: %v", userID, err)
		return
	}

	if s.broadcaster != nil {
		s.broadcaster.SendNotification(userID, map[string]interface{}{
			"id":        n.ID,
			"type":      n.Type,
			"title":     n.Title,
			"message":   n.Message,
			"data":      n.Data,
			"createdAt": n.CreatedAt,
		})

		unread, err := s.notificationRepo.CountUnread(ctx, userID)
		if err == nil {
			s.broadcaster.SendNotificationCount(userID, unread, unread)
		}
	}
}

// SendBatch sends the same notification to several users
func (s *Service) SendBatch(ctx context.Context, userIDs []string, notifType, title, message string, data map[string]interface{}) {
	for _, userID := range userIDs {
		s.Send(ctx, userID, notifType, title, message, data)
	}
}

package cron

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/clubhub-dev/clubhub-backend/internal/db"
	"github.com/clubhub-dev/clubhub-backend/internal/duty"
	"github.com/clubhub-dev/clubhub-backend/internal/notification"
	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/robfig/cron/v3"
)

// Scheduler handles scheduled background jobs
type Scheduler struct {
	cron             *cron.Cron
	notifSvc         *notification.Service
	dutyStore        duty.Store
	eventRepo        repository.EventRepository
	notificationRepo repository.NotificationRepository
	redis            *db.RedisDB
}

// NewScheduler creates a new scheduler
func NewScheduler(
	notifSvc *notification.Service,
	dutyStore duty.Store,
	eventRepo repository.EventRepository,
	notificationRepo repository.NotificationRepository,
	redis *db.RedisDB,
) *Scheduler {
	return &Scheduler{
		cron:             cron.New(),
		notifSvc:         notifSvc,
		dutyStore:        dutyStore,
		eventRepo:        eventRepo,
		notificationRepo: notificationRepo,
		redis:            redis,
	}
}

// Start starts the scheduler
func (s *Scheduler) Start() {
	// Run every day at 9 AM - remind event owners of unapproved duties
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[Cron] Running duty approval reminder check...")
		s.remindPendingApprovals()
	})

	// Run every day at 9 AM - remind event owners of upcoming duties
	s.cron.AddFunc("0 9 * * *", func() {
		log.Println("[Cron] Running upcoming event duty check...")
		s.remindUpcomingDuties()
	})

	// Snapshot the point standings every night at 2 AM
	s.cron.AddFunc("0 2 * * *", func() {
		log.Println("[Cron] Running leaderboard snapshot...")
		s.snapshotLeaderboard()
	})

	// Clean up old notifications - Run every Sunday at midnight
	s.cron.AddFunc("0 0 * * 0", func() {
		log.Println("[Cron] Running notification cleanup...")
		s.cleanupOldNotifications()
	})

	s.cron.Start()
	log.Println("[Cron] ✅ Scheduler started")
}

// Stop stops the scheduler
func (s *Scheduler) Stop() {
	s.cron.Stop()
	log.Println("[Cron] Scheduler stopped")
}

// remindPendingApprovals notifies event owners about completions that
// still wait for approval
func (s *Scheduler) remindPendingApprovals() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	completions, err := s.dutyStore.ListAwaitingApproval(ctx)
	if err != nil {
		log.Printf("[Cron] ⚠️ Failed to list pending approvals: %v", err)
		return
	}
	if len(completions) == 0 {
		return
	}

	pendingByEvent := make(map[string]int)
	for _, c := range completions {
		pendingByEvent[c.EventID]++
	}

	for eventID, count := range pendingByEvent {
		event, err := s.eventRepo.FindByID(ctx, eventID)
		if err != nil || event == nil {
			continue
		}
		s.notifSvc.Send(ctx, event.CreatedBy, notification.TypeDutyReminder,
			"Duties awaiting approval",
			formatPendingMessage(event.Title, count),
			map[string]interface{}{"eventId": eventID, "pending": count})
	}
	log.Printf("[Cron] Sent approval reminders for %d events", len(pendingByEvent))
}

// remindUpcomingDuties notifies event owners about events starting within
// a day that still define duty roles
func (s *Scheduler) remindUpcomingDuties() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	events, err := s.eventRepo.FindUpcoming(ctx, 24*time.Hour)
	if err != nil {
		log.Printf("[Cron] ⚠️ Failed to list upcoming events: %v", err)
		return
	}

	sent := 0
	for _, event := range events {
		if len(event.DutyRoles) == 0 {
			continue
		}
		s.notifSvc.Send(ctx, event.CreatedBy, notification.TypeDutyReminder,
			"Event duties tomorrow",
			formatUpcomingMessage(event.Title, len(event.DutyRoles)),
			map[string]interface{}{"eventId": event.ID})
		sent++
	}
	if sent > 0 {
		log.Printf("[Cron] Sent %d upcoming duty reminders", sent)
	}
}

// snapshotLeaderboard caches the global top balances for cheap reads
func (s *Scheduler) snapshotLeaderboard() {
	if s.redis == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	top, err := s.dutyStore.TopBalances(ctx, 25)
	if err != nil {
		log.Printf("[Cron] ⚠️ Failed to read balances: %v", err)
		return
	}
	if err := s.redis.SetCache(ctx, "leaderboard:global", top, 25*time.Hour); err != nil {
		log.Printf("[Cron] ⚠️ Failed to cache leaderboard: %v", err)
		return
	}
	log.Printf("[Cron] Cached leaderboard snapshot with %d entries", len(top))
}

// cleanupOldNotifications deletes notifications older than 30 days
func (s *Scheduler) cleanupOldNotifications() {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cutoff := time.Now().AddDate(0, 0, -30)
	deleted, err := s.notificationRepo.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		log.Printf("[Cron] ⚠️ Failed to clean up notifications: %v", err)
		return
	}
	log.Printf("[Cron] Deleted %d old notifications", deleted)
}

func formatPendingMessage(title string, count int) string {
	if count == 1 {
		return fmt.Sprintf("1 duty on %s is waiting for your approval", title)
	}
	return fmt.Sprintf("%d duties on %s are waiting for your approval", count, title)
}

func formatUpcomingMessage(title string, roles int) string {
	return fmt.Sprintf("%s starts within 24 hours with %d duty roles defined", title, roles)
}

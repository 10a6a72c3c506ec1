// Package duty holds the duty-completion and point-award ledger.
//
// The ledger sits behind the Store interface so the backing engine can be
// swapped without touching call sites: the embedded go-memdb store is the
// interim single-writer engine, the PostgreSQL store the durable one.
package duty

import (
	"context"
	"errors"
	"time"
)

// Completion tracks one duty for one assignee on one event.
// A record is created in status "completed" and can only move to "approved".
type Completion struct {
	ID            string     `json:"id"`
	EventID       string     `json:"eventId"`
	DutyRole      string     `json:"dutyRole"`
	AssigneeID    string     `json:"assigneeId"`
	Status        string     `json:"status"`
	CompletedAt   time.Time  `json:"completedAt"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	ApprovedBy    *string    `json:"approvedBy,omitempty"`
	PointsAwarded bool       `json:"pointsAwarded"`
}

// Balance is a user's accumulated point balance
type Balance struct {
	UserID    string    `json:"userId"`
	Points    int       `json:"points"`
	UpdatedAt time.Time `json:"updatedAt"`
}

var (
	ErrDuplicate       = errors.New("completion already exists for this duty")
	ErrNotFound        = errors.New("completion not found")
	ErrAlreadyApproved = errors.New("completion already approved")
)

// Store defines ledger operations. Approve must be atomic: the status
// transition and the point credit either both happen or neither does.
type Store interface {
	CreateCompletion(ctx context.Context, c *Completion) error
	FindCompletion(ctx context.Context, eventID, dutyRole, assigneeID string) (*Completion, error)
	FindCompletionByID(ctx context.Context, id string) (*Completion, error)
	ListByEvent(ctx context.Context, eventID string) ([]*Completion, error)
	ListByAssignee(ctx context.Context, assigneeID string) ([]*Completion, error)
	ListAwaitingApproval(ctx context.Context) ([]*Completion, error)
	Approve(ctx context.Context, id, approverID string, points int) (*Completion, error)
	Balance(ctx context.Context, userID string) (*Balance, error)
	TopBalances(ctx context.Context, limit int) ([]*Balance, error)
}

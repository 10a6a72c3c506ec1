package duty

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	memdb "github.com/hashicorp/go-memdb"
)

const (
	tableCompletions = "duty_completions"
	tablePoints      = "user_points"
)

func ledgerSchema() *memdb.DBSchema {
	return &memdb.DBSchema{
		Tables: map[string]*memdb.TableSchema{
			tableCompletions: {
				Name: tableCompletions,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "ID"},
					},
					"duty": {
						Name:   "duty",
						Unique: true,
						Indexer: &memdb.CompoundIndex{
							Indexes: []memdb.Indexer{
								&memdb.StringFieldIndex{Field: "EventID"},
								&memdb.StringFieldIndex{Field: "DutyRole"},
								&memdb.StringFieldIndex{Field: "AssigneeID"},
							},
						},
					},
					"event": {
						Name:    "event",
						Indexer: &memdb.StringFieldIndex{Field: "EventID"},
					},
					"assignee": {
						Name:    "assignee",
						Indexer: &memdb.StringFieldIndex{Field: "AssigneeID"},
					},
					"status": {
						Name:    "status",
						Indexer: &memdb.StringFieldIndex{Field: "Status"},
					},
				},
			},
			tablePoints: {
				Name: tablePoints,
				Indexes: map[string]*memdb.IndexSchema{
					"id": {
						Name:    "id",
						Unique:  true,
						Indexer: &memdb.StringFieldIndex{Field: "UserID"},
					},
				},
			},
		},
	}
}

// MemStore is the embedded go-memdb ledger. It is the interim backing store:
// contents do not survive a restart.
type MemStore struct {
	db *memdb.MemDB
}

// NewMemStore creates an empty in-memory ledger
func NewMemStore() (*MemStore, error) {
	db, err := memdb.NewMemDB(ledgerSchema())
	if err != nil {
		return nil, err
	}
	return &MemStore{db: db}, nil
}

func (s *MemStore) CreateCompletion(ctx context.Context, c *Completion) error {
	txn := s.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(tableCompletions, "duty", c.EventID, c.DutyRole, c.AssigneeID)
	if err != nil {
		return err
	}
	if existing != nil {
		return ErrDuplicate
	}

	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = "completed"
	}
	if c.CompletedAt.IsZero() {
		c.CompletedAt = time.Now()
	}

	cp := *c
	if err := txn.Insert(tableCompletions, &cp); err != nil {
		return err
	}
	txn.Commit()
	return nil
}

func (s *MemStore) FindCompletion(ctx context.Context, eventID, dutyRole, assigneeID string) (*Completion, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableCompletions, "duty", eventID, dutyRole, assigneeID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	c := *(raw.(*Completion))
	return &c, nil
}

func (s *MemStore) FindCompletionByID(ctx context.Context, id string) (*Completion, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tableCompletions, "id", id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, nil
	}
	c := *(raw.(*Completion))
	return &c, nil
}

func (s *MemStore) ListByEvent(ctx context.Context, eventID string) ([]*Completion, error) {
	return s.list("event", eventID)
}

func (s *MemStore) ListByAssignee(ctx context.Context, assigneeID string) ([]*Completion, error) {
	return s.list("assignee", assigneeID)
}

func (s *MemStore) ListAwaitingApproval(ctx context.Context) ([]*Completion, error) {
	return s.list("status", "completed")
}

func (s *MemStore) list(index string, args ...interface{}) ([]*Completion, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tableCompletions, index, args...)
	if err != nil {
		return nil, err
	}
	var completions []*Completion
	for raw := it.Next(); raw != nil; raw = it.Next() {
		c := *(raw.(*Completion))
		completions = append(completions, &c)
	}
	return completions, nil
}

// Approve transitions a completion to approved and credits the assignee's
// balance in one write transaction
func (s *MemStore) Approve(ctx context.Context, id, approverID string, points int) (*Completion, error) {
	txn := s.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tableCompletions, "id", id)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return nil, ErrNotFound
	}

	c := *(raw.(*Completion))
	if c.Status == "approved" {
		return nil, ErrAlreadyApproved
	}

	now := time.Now()
	c.Status = "approved"
	c.ApprovedAt = &now
	c.ApprovedBy = &approverID
	c.PointsAwarded = true

	if err := txn.Insert(tableCompletions, &c); err != nil {
		return nil, err
	}

	balance := &Balance{UserID: c.AssigneeID}
	if rawBal, err := txn.First(tablePoints, "id", c.AssigneeID); err != nil {
		return nil, err
	} else if rawBal != nil {
		b := *(rawBal.(*Balance))
		balance = &b
	}
	balance.Points += points
	balance.UpdatedAt = now

	if err := txn.Insert(tablePoints, balance); err != nil {
		return nil, err
	}

	txn.Commit()
	return &c, nil
}

func (s *MemStore) Balance(ctx context.Context, userID string) (*Balance, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tablePoints, "id", userID)
	if err != nil {
		return nil, err
	}
	if raw == nil {
		return &Balance{UserID: userID}, nil
	}
	b := *(raw.(*Balance))
	return &b, nil
}

func (s *MemStore) TopBalances(ctx context.Context, limit int) ([]*Balance, error) {
	txn := s.db.Txn(false)
	defer txn.Abort()

	it, err := txn.Get(tablePoints, "id")
	if err != nil {
		return nil, err
	}
	var balances []*Balance
	for raw := it.Next(); raw != nil; raw = it.Next() {
		b := *(raw.(*Balance))
		balances = append(balances, &b)
	}
	sort.Slice(balances, func(i, j int) bool {
		return balances[i].Points > balances[j].Points
	})
	if limit > 0 && len(balances) > limit {
		balances = balances[:limit]
	}
	return balances, nil
}

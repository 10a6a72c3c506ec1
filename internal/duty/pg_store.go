package duty

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgStore is the server-authoritative ledger backed by PostgreSQL
type PgStore struct {
	pool *pgxpool.Pool
}

// NewPgStore creates a PostgreSQL-backed ledger
func NewPgStore(pool *pgxpool.Pool) *PgStore {
	return &PgStore{pool: pool}
}

func (s *PgStore) CreateCompletion(ctx context.Context, c *Completion) error {
	query := `
		INSERT INTO duty_completions (event_id, duty_role, assignee_id, status)
		VALUES ($1, $2, $3, 'completed')
		RETURNING id, status, completed_at
	`
	err := s.pool.QueryRow(ctx, query, c.EventID, c.DutyRole, c.AssigneeID).
		Scan(&c.ID, &c.Status, &c.CompletedAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	return err
}

func isUniqueViolation(err error) bool {
	if pgErr, ok := err.(*pgconn.PgError); ok {
		return pgErr.Code == "23505"
	}
	return false
}

const completionColumns = `id, event_id, duty_role, assignee_id, status, completed_at, approved_at, approved_by, points_awarded`

func (s *PgStore) FindCompletion(ctx context.Context, eventID, dutyRole, assigneeID string) (*Completion, error) {
	query := `
		SELECT ` + completionColumns + `
		FROM duty_completions WHERE event_id = $1 AND duty_role = $2 AND assignee_id = $3
	`
	return s.scanOne(s.pool.QueryRow(ctx, query, eventID, dutyRole, assigneeID))
}

func (s *PgStore) FindCompletionByID(ctx context.Context, id string) (*Completion, error) {
	query := `
		SELECT ` + completionColumns + `
		FROM duty_completions WHERE id = $1
	`
	return s.scanOne(s.pool.QueryRow(ctx, query, id))
}

func (s *PgStore) scanOne(row pgx.Row) (*Completion, error) {
	c := &Completion{}
	err := row.Scan(
		&c.ID, &c.EventID, &c.DutyRole, &c.AssigneeID, &c.Status,
		&c.CompletedAt, &c.ApprovedAt, &c.ApprovedBy, &c.PointsAwarded,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PgStore) ListByEvent(ctx context.Context, eventID string) ([]*Completion, error) {
	query := `
		SELECT ` + completionColumns + `
		FROM duty_completions WHERE event_id = $1
		ORDER BY completed_at DESC
	`
	return s.listQuery(ctx, query, eventID)
}

func (s *PgStore) ListByAssignee(ctx context.Context, assigneeID string) ([]*Completion, error) {
	query := `
		SELECT ` + completionColumns + `
		FROM duty_completions WHERE assignee_id = $1
		ORDER BY completed_at DESC
	`
	return s.listQuery(ctx, query, assigneeID)
}

func (s *PgStore) ListAwaitingApproval(ctx context.Context) ([]*Completion, error) {
	query := `
		SELECT ` + completionColumns + `
		FROM duty_completions WHERE status = 'completed'
		ORDER BY completed_at
	`
	return s.listQuery(ctx, query)
}

func (s *PgStore) listQuery(ctx context.Context, query string, args ...interface{}) ([]*Completion, error) {
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var completions []*Completion
	for rows.Next() {
		c := &Completion{}
		if err := rows.Scan(
			&c.ID, &c.EventID, &c.DutyRole, &c.AssigneeID, &c.Status,
			&c.CompletedAt, &c.ApprovedAt, &c.ApprovedBy, &c.PointsAwarded,
		); err != nil {
			return nil, err
		}
		completions = append(completions, c)
	}
	return completions, nil
}

// Approve runs the status transition and the point credit in one transaction
func (s *PgStore) Approve(ctx context.Context, id, approverID string, points int) (*Completion, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	c := &Completion{}
	query := `
		SELECT ` + completionColumns + `
		FROM duty_completions WHERE id = $1 FOR UPDATE
	`
	err = tx.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.EventID, &c.DutyRole, &c.AssigneeID, &c.Status,
		&c.CompletedAt, &c.ApprovedAt, &c.ApprovedBy, &c.PointsAwarded,
	)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if c.Status == "approved" {
		return nil, ErrAlreadyApproved
	}

	update := `
		UPDATE duty_completions
		SET status = 'approved', approved_at = NOW(), approved_by = $2, points_awarded = TRUE
		WHERE id = $1
		RETURNING status, approved_at, approved_by, points_awarded
	`
	if err := tx.QueryRow(ctx, update, id, approverID).
		Scan(&c.Status, &c.ApprovedAt, &c.ApprovedBy, &c.PointsAwarded); err != nil {
		return nil, err
	}

	credit := `
		INSERT INTO user_points (user_id, points, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id) DO UPDATE SET points = user_points.points + $2, updated_at = NOW()
	`
	if _, err := tx.Exec(ctx, credit, c.AssigneeID, points); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *PgStore) Balance(ctx context.Context, userID string) (*Balance, error) {
	query := `SELECT user_id, points, updated_at FROM user_points WHERE user_id = $1`
	b := &Balance{}
	err := s.pool.QueryRow(ctx, query, userID).Scan(&b.UserID, &b.Points, &b.UpdatedAt)
	if err == pgx.ErrNoRows {
		return &Balance{UserID: userID}, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *PgStore) TopBalances(ctx context.Context, limit int) ([]*Balance, error) {
	query := `
		SELECT user_id, points, updated_at FROM user_points
		ORDER BY points DESC
	`
	args := []interface{}{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}
	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var balances []*Balance
	for rows.Next() {
		b := &Balance{}
		if err := rows.Scan(&b.UserID, &b.Points, &b.UpdatedAt); err != nil {
			return nil, err
		}
		balances = append(balances, b)
	}
	return balances, nil
}

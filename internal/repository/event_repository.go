package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Event is a club event carrying assignable duty roles
type Event struct {
	ID        string
	ClubID    string
	TeamID    *string
	Title     string
	StartsAt  time.Time
	DutyRoles []string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// EventRepository defines event data operations
type EventRepository interface {
	Create(ctx context.Context, event *Event) error
	FindByID(ctx context.Context, id string) (*Event, error)
	FindByClub(ctx context.Context, clubID string) ([]*Event, error)
	FindUpcoming(ctx context.Context, within time.Duration) ([]*Event, error)
	Update(ctx context.Context, event *Event) error
	Delete(ctx context.Context, id string) error
}

type pgEventRepository struct {
	pool *pgxpool.Pool
}

// NewEventRepository creates a new PostgreSQL event repository
func NewEventRepository(pool *pgxpool.Pool) EventRepository {
	return &pgEventRepository{pool: pool}
}

func (r *pgEventRepository) Create(ctx context.Context, event *Event) error {
	query := `
		INSERT INTO events (club_id, team_id, title, starts_at, duty_roles, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		event.ClubID, event.TeamID, event.Title, event.StartsAt, event.DutyRoles, event.CreatedBy,
	).Scan(&event.ID, &event.CreatedAt, &event.UpdatedAt)
}

func (r *pgEventRepository) FindByID(ctx context.Context, id string) (*Event, error) {
	query := `
		SELECT id, club_id, team_id, title, starts_at, duty_roles, created_by, created_at, updated_at
		FROM events WHERE id = $1
	`
	event := &Event{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&event.ID, &event.ClubID, &event.TeamID, &event.Title, &event.StartsAt,
		&event.DutyRoles, &event.CreatedBy, &event.CreatedAt, &event.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return event, nil
}

func (r *pgEventRepository) FindByClub(ctx context.Context, clubID string) ([]*Event, error) {
	query := `
		SELECT id, club_id, team_id, title, starts_at, duty_roles, created_by, created_at, updated_at
		FROM events WHERE club_id = $1
		ORDER BY starts_at
	`
	rows, err := r.pool.Query(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func (r *pgEventRepository) FindUpcoming(ctx context.Context, within time.Duration) ([]*Event, error) {
	query := `
		SELECT id, club_id, team_id, title, starts_at, duty_roles, created_by, created_at, updated_at
		FROM events WHERE starts_at BETWEEN NOW() AND $1
		ORDER BY starts_at
	`
	rows, err := r.pool.Query(ctx, query, time.Now().Add(within))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanEvents(rows)
}

func scanEvents(rows pgx.Rows) ([]*Event, error) {
	var events []*Event
	for rows.Next() {
		event := &Event{}
		if err := rows.Scan(
			&event.ID, &event.ClubID, &event.TeamID, &event.Title, &event.StartsAt,
			&event.DutyRoles, &event.CreatedBy, &event.CreatedAt, &event.UpdatedAt,
		); err != nil {
			return nil, err
		}
		events = append(events, event)
	}
	return events, nil
}

func (r *pgEventRepository) Update(ctx context.Context, event *Event) error {
	query := `
		UPDATE events SET title = $2, starts_at = $3, duty_roles = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, event.ID, event.Title, event.StartsAt, event.DutyRoles)
	return err
}

func (r *pgEventRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM events WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

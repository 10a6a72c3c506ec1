package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Child is a guardian-managed record, optionally attached to a team
type Child struct {
	ID         string
	GuardianID string
	Name       string
	TeamID     *string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// ChildRepository defines child data operations
type ChildRepository interface {
	Create(ctx context.Context, child *Child) error
	FindByID(ctx context.Context, id string) (*Child, error)
	FindByGuardian(ctx context.Context, guardianID string) ([]*Child, error)
	FindByTeam(ctx context.Context, teamID string) ([]*Child, error)
	FindByClub(ctx context.Context, clubID string) ([]*Child, error)
	Update(ctx context.Context, child *Child) error
	Delete(ctx context.Context, id string) error
}

type pgChildRepository struct {
	pool *pgxpool.Pool
}

// NewChildRepository creates a new PostgreSQL child repository
func NewChildRepository(pool *pgxpool.Pool) ChildRepository {
	return &pgChildRepository{pool: pool}
}

func (r *pgChildRepository) Create(ctx context.Context, child *Child) error {
	query := `
		INSERT INTO children (guardian_id, name, team_id)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query, child.GuardianID, child.Name, child.TeamID).
		Scan(&child.ID, &child.CreatedAt, &child.UpdatedAt)
}

func (r *pgChildRepository) FindByID(ctx context.Context, id string) (*Child, error) {
	query := `
		SELECT id, guardian_id, name, team_id, created_at, updated_at
		FROM children WHERE id = $1
	`
	child := &Child{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&child.ID, &child.GuardianID, &child.Name, &child.TeamID,
		&child.CreatedAt, &child.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return child, nil
}

func (r *pgChildRepository) FindByGuardian(ctx context.Context, guardianID string) ([]*Child, error) {
	query := `
		SELECT id, guardian_id, name, team_id, created_at, updated_at
		FROM children WHERE guardian_id = $1
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query, guardianID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChildren(rows)
}

func (r *pgChildRepository) FindByTeam(ctx context.Context, teamID string) ([]*Child, error) {
	query := `
		SELECT id, guardian_id, name, team_id, created_at, updated_at
		FROM children WHERE team_id = $1
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChildren(rows)
}

// FindByClub returns children whose team belongs to the given club
func (r *pgChildRepository) FindByClub(ctx context.Context, clubID string) ([]*Child, error) {
	query := `
		SELECT c.id, c.guardian_id, c.name, c.team_id, c.created_at, c.updated_at
		FROM children c
		JOIN teams t ON t.id = c.team_id
		WHERE t.club_id = $1
		ORDER BY c.name
	`
	rows, err := r.pool.Query(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanChildren(rows)
}

func scanChildren(rows pgx.Rows) ([]*Child, error) {
	var children []*Child
	for rows.Next() {
		child := &Child{}
		if err := rows.Scan(
			&child.ID, &child.GuardianID, &child.Name, &child.TeamID,
			&child.CreatedAt, &child.UpdatedAt,
		); err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	return children, nil
}

func (r *pgChildRepository) Update(ctx context.Context, child *Child) error {
	query := `
		UPDATE children SET name = $2, team_id = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, child.ID, child.Name, child.TeamID)
	return err
}

func (r *pgChildRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM children WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

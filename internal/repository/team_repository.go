package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// Team Models
// ============================================

// Team is a sub-organization under a club with its own membership
type Team struct {
	ID          string
	ClubID      string
	Name        string
	Description *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TeamMembership is a (team, user) pair carrying a set of team roles
type TeamMembership struct {
	ID       string
	TeamID   string
	UserID   string
	Roles    []string
	JoinedAt time.Time
	User     *User
}

// ============================================
// Team Repository Interface
// ============================================

// TeamRepository defines team data operations
type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	FindByID(ctx context.Context, id string) (*Team, error)
	FindByClubID(ctx context.Context, clubID string) ([]*Team, error)
	FindByUserID(ctx context.Context, userID string) ([]*Team, error)
	Update(ctx context.Context, team *Team) error
	Delete(ctx context.Context, id string) error

	// Membership operations
	AddMember(ctx context.Context, m *TeamMembership) error
	FindMemberships(ctx context.Context, teamID string) ([]*TeamMembership, error)
	FindMembership(ctx context.Context, teamID, userID string) (*TeamMembership, error)
	UpdateMemberRoles(ctx context.Context, teamID, userID string, roles []string) error
	RemoveMember(ctx context.Context, teamID, userID string) error
	IsMember(ctx context.Context, teamID, userID string) (bool, error)
}

// ============================================
// PostgreSQL Team Repository Implementation
// ============================================

type pgTeamRepository struct {
	pool *pgxpool.Pool
}

// NewTeamRepository creates a new PostgreSQL team repository
func NewTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &pgTeamRepository{pool: pool}
}

func (r *pgTeamRepository) Create(ctx context.Context, team *Team) error {
	query := `
		INSERT INTO teams (club_id, name, description, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		team.ClubID, team.Name, team.Description, team.CreatedBy,
	).Scan(&team.ID, &team.CreatedAt, &team.UpdatedAt)
}

func (r *pgTeamRepository) FindByID(ctx context.Context, id string) (*Team, error) {
	query := `
		SELECT id, club_id, name, description, created_by, created_at, updated_at
		FROM teams WHERE id = $1
	`
	team := &Team{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&team.ID, &team.ClubID, &team.Name, &team.Description,
		&team.CreatedBy, &team.CreatedAt, &team.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return team, nil
}

func (r *pgTeamRepository) FindByClubID(ctx context.Context, clubID string) ([]*Team, error) {
	query := `
		SELECT id, club_id, name, description, created_by, created_at, updated_at
		FROM teams WHERE club_id = $1
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeams(rows)
}

// FindByUserID returns teams the user created or holds a membership in
func (r *pgTeamRepository) FindByUserID(ctx context.Context, userID string) ([]*Team, error) {
	query := `
		SELECT DISTINCT t.id, t.club_id, t.name, t.description, t.created_by, t.created_at, t.updated_at
		FROM teams t
		LEFT JOIN team_memberships tm ON tm.team_id = t.id
		WHERE t.created_by = $1 OR tm.user_id = $1
		ORDER BY t.name
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanTeams(rows)
}

func scanTeams(rows pgx.Rows) ([]*Team, error) {
	var teams []*Team
	for rows.Next() {
		team := &Team{}
		if err := rows.Scan(
			&team.ID, &team.ClubID, &team.Name, &team.Description,
			&team.CreatedBy, &team.CreatedAt, &team.UpdatedAt,
		); err != nil {
			return nil, err
		}
		teams = append(teams, team)
	}
	return teams, nil
}

func (r *pgTeamRepository) Update(ctx context.Context, team *Team) error {
	query := `
		UPDATE teams SET name = $2, description = $3, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, team.ID, team.Name, team.Description)
	return err
}

func (r *pgTeamRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM teams WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *pgTeamRepository) AddMember(ctx context.Context, m *TeamMembership) error {
	query := `
		INSERT INTO team_memberships (team_id, user_id, roles)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at
	`
	return r.pool.QueryRow(ctx, query, m.TeamID, m.UserID, m.Roles).
		Scan(&m.ID, &m.JoinedAt)
}

func (r *pgTeamRepository) FindMemberships(ctx context.Context, teamID string) ([]*TeamMembership, error) {
	query := `
		SELECT id, team_id, user_id, roles, joined_at
		FROM team_memberships WHERE team_id = $1
	`
	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*TeamMembership
	for rows.Next() {
		m := &TeamMembership{}
		if err := rows.Scan(&m.ID, &m.TeamID, &m.UserID, &m.Roles, &m.JoinedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, nil
}

func (r *pgTeamRepository) FindMembership(ctx context.Context, teamID, userID string) (*TeamMembership, error) {
	query := `
		SELECT id, team_id, user_id, roles, joined_at
		FROM team_memberships WHERE team_id = $1 AND user_id = $2
	`
	m := &TeamMembership{}
	err := r.pool.QueryRow(ctx, query, teamID, userID).Scan(
		&m.ID, &m.TeamID, &m.UserID, &m.Roles, &m.JoinedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgTeamRepository) UpdateMemberRoles(ctx context.Context, teamID, userID string, roles []string) error {
	query := `UPDATE team_memberships SET roles = $3 WHERE team_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, teamID, userID, roles)
	return err
}

func (r *pgTeamRepository) RemoveMember(ctx context.Context, teamID, userID string) error {
	query := `DELETE FROM team_memberships WHERE team_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, teamID, userID)
	return err
}

func (r *pgTeamRepository) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM team_memberships WHERE team_id = $1 AND user_id = $2)`
	var exists bool
	err := r.pool.QueryRow(ctx, query, teamID, userID).Scan(&exists)
	return exists, err
}

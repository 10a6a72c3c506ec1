package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// Club Models
// ============================================

// Club is a top-level organization owning teams, members and a vault
type Club struct {
	ID          string
	Name        string
	Description *string
	Avatar      *string
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// ClubMembership is a (club, user) pair carrying a set of club roles
type ClubMembership struct {
	ID       string
	ClubID   string
	UserID   string
	Roles    []string
	JoinedAt time.Time
	User     *User
}

// ============================================
// Club Repository Interface
// ============================================

// ClubRepository defines club data operations
type ClubRepository interface {
	Create(ctx context.Context, club *Club) error
	FindByID(ctx context.Context, id string) (*Club, error)
	FindByUserID(ctx context.Context, userID string) ([]*Club, error)
	Update(ctx context.Context, club *Club) error
	Delete(ctx context.Context, id string) error

	// Membership operations
	AddMember(ctx context.Context, m *ClubMembership) error
	FindMemberships(ctx context.Context, clubID string) ([]*ClubMembership, error)
	FindMembership(ctx context.Context, clubID, userID string) (*ClubMembership, error)
	UpdateMemberRoles(ctx context.Context, clubID, userID string, roles []string) error
	RemoveMember(ctx context.Context, clubID, userID string) error
}

// ============================================
// PostgreSQL Club Repository Implementation
// ============================================

type pgClubRepository struct {
	pool *pgxpool.Pool
}

// NewClubRepository creates a new PostgreSQL club repository
func NewClubRepository(pool *pgxpool.Pool) ClubRepository {
	return &pgClubRepository{pool: pool}
}

func (r *pgClubRepository) Create(ctx context.Context, club *Club) error {
	query := `
		INSERT INTO clubs (name, description, avatar, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`
	return r.pool.QueryRow(ctx, query,
		club.Name, club.Description, club.Avatar, club.CreatedBy,
	).Scan(&club.ID, &club.CreatedAt, &club.UpdatedAt)
}

func (r *pgClubRepository) FindByID(ctx context.Context, id string) (*Club, error) {
	query := `
		SELECT id, name, description, avatar, created_by, created_at, updated_at
		FROM clubs WHERE id = $1
	`
	club := &Club{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&club.ID, &club.Name, &club.Description, &club.Avatar,
		&club.CreatedBy, &club.CreatedAt, &club.UpdatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return club, nil
}

// FindByUserID returns clubs the user created or holds a membership in
func (r *pgClubRepository) FindByUserID(ctx context.Context, userID string) ([]*Club, error) {
	query := `
		SELECT DISTINCT c.id, c.name, c.description, c.avatar, c.created_by, c.created_at, c.updated_at
		FROM clubs c
		LEFT JOIN club_memberships cm ON cm.club_id = c.id
		WHERE c.created_by = $1 OR cm.user_id = $1
		ORDER BY c.name
	`
	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var clubs []*Club
	for rows.Next() {
		club := &Club{}
		if err := rows.Scan(
			&club.ID, &club.Name, &club.Description, &club.Avatar,
			&club.CreatedBy, &club.CreatedAt, &club.UpdatedAt,
		); err != nil {
			return nil, err
		}
		clubs = append(clubs, club)
	}
	return clubs, nil
}

func (r *pgClubRepository) Update(ctx context.Context, club *Club) error {
	query := `
		UPDATE clubs SET name = $2, description = $3, avatar = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.pool.Exec(ctx, query, club.ID, club.Name, club.Description, club.Avatar)
	return err
}

func (r *pgClubRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM clubs WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

func (r *pgClubRepository) AddMember(ctx context.Context, m *ClubMembership) error {
	query := `
		INSERT INTO club_memberships (club_id, user_id, roles)
		VALUES ($1, $2, $3)
		RETURNING id, joined_at
	`
	return r.pool.QueryRow(ctx, query, m.ClubID, m.UserID, m.Roles).
		Scan(&m.ID, &m.JoinedAt)
}

func (r *pgClubRepository) FindMemberships(ctx context.Context, clubID string) ([]*ClubMembership, error) {
	query := `
		SELECT id, club_id, user_id, roles, joined_at
		FROM club_memberships WHERE club_id = $1
	`
	rows, err := r.pool.Query(ctx, query, clubID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var memberships []*ClubMembership
	for rows.Next() {
		m := &ClubMembership{}
		if err := rows.Scan(&m.ID, &m.ClubID, &m.UserID, &m.Roles, &m.JoinedAt); err != nil {
			return nil, err
		}
		memberships = append(memberships, m)
	}
	return memberships, nil
}

func (r *pgClubRepository) FindMembership(ctx context.Context, clubID, userID string) (*ClubMembership, error) {
	query := `
		SELECT id, club_id, user_id, roles, joined_at
		FROM club_memberships WHERE club_id = $1 AND user_id = $2
	`
	m := &ClubMembership{}
	err := r.pool.QueryRow(ctx, query, clubID, userID).Scan(
		&m.ID, &m.ClubID, &m.UserID, &m.Roles, &m.JoinedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return m, nil
}

func (r *pgClubRepository) UpdateMemberRoles(ctx context.Context, clubID, userID string, roles []string) error {
	query := `UPDATE club_memberships SET roles = $3 WHERE club_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, clubID, userID, roles)
	return err
}

func (r *pgClubRepository) RemoveMember(ctx context.Context, clubID, userID string) error {
	query := `DELETE FROM club_memberships WHERE club_id = $1 AND user_id = $2`
	_, err := r.pool.Exec(ctx, query, clubID, userID)
	return err
}

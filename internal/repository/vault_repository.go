package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ============================================
// Vault Models
// ============================================

// Subfolder is a named grouping under a club or team vault folder
type Subfolder struct {
	ID         string
	Name       string
	ParentKind string // "club" or "team"
	ParentID   string
	CreatedBy  string
	CreatedAt  time.Time
}

// VaultItem is an uploaded photo or file belonging to a club or team,
// optionally filed under a subfolder
type VaultItem struct {
	ID          string
	ClubID      *string
	TeamID      *string
	SubfolderID *string
	FileName    string
	StoragePath string
	ContentType *string
	SizeBytes   int64
	UploadedBy  string
	UploadedAt  time.Time
}

// OrgCounts holds per-organization vault content counts
type OrgCounts struct {
	Photos     int
	Files      int
	Subfolders int
}

// ============================================
// Vault Repository Interface
// ============================================

// VaultRepository defines photo, file and subfolder data operations
type VaultRepository interface {
	// Subfolders
	CreateSubfolder(ctx context.Context, sf *Subfolder) error
	FindSubfolderByID(ctx context.Context, id string) (*Subfolder, error)
	FindSubfoldersByParent(ctx context.Context, parentKind, parentID string) ([]*Subfolder, error)
	DeleteSubfolder(ctx context.Context, id string) error

	// Photos and files (kind is "photos" or "files")
	CreateItem(ctx context.Context, kind string, item *VaultItem) error
	FindItemsByOrg(ctx context.Context, kind, orgKind, orgID string) ([]*VaultItem, error)
	FindItemsBySubfolder(ctx context.Context, kind, subfolderID string) ([]*VaultItem, error)
	DeleteItem(ctx context.Context, kind, id string) error

	// Folder counts
	CountByOrg(ctx context.Context, orgKind, orgID string) (*OrgCounts, error)
}

// ============================================
// PostgreSQL Vault Repository Implementation
// ============================================

type pgVaultRepository struct {
	pool *pgxpool.Pool
}

// NewVaultRepository creates a new PostgreSQL vault repository
func NewVaultRepository(pool *pgxpool.Pool) VaultRepository {
	return &pgVaultRepository{pool: pool}
}

func (r *pgVaultRepository) CreateSubfolder(ctx context.Context, sf *Subfolder) error {
	query := `
		INSERT INTO subfolders (name, parent_kind, parent_id, created_by)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return r.pool.QueryRow(ctx, query, sf.Name, sf.ParentKind, sf.ParentID, sf.CreatedBy).
		Scan(&sf.ID, &sf.CreatedAt)
}

func (r *pgVaultRepository) FindSubfolderByID(ctx context.Context, id string) (*Subfolder, error) {
	query := `
		SELECT id, name, parent_kind, parent_id, created_by, created_at
		FROM subfolders WHERE id = $1
	`
	sf := &Subfolder{}
	err := r.pool.QueryRow(ctx, query, id).Scan(
		&sf.ID, &sf.Name, &sf.ParentKind, &sf.ParentID, &sf.CreatedBy, &sf.CreatedAt,
	)
	if err == pgx.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return sf, nil
}

func (r *pgVaultRepository) FindSubfoldersByParent(ctx context.Context, parentKind, parentID string) ([]*Subfolder, error) {
	query := `
		SELECT id, name, parent_kind, parent_id, created_by, created_at
		FROM subfolders WHERE parent_kind = $1 AND parent_id = $2
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query, parentKind, parentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subfolders []*Subfolder
	for rows.Next() {
		sf := &Subfolder{}
		if err := rows.Scan(
			&sf.ID, &sf.Name, &sf.ParentKind, &sf.ParentID, &sf.CreatedBy, &sf.CreatedAt,
		); err != nil {
			return nil, err
		}
		subfolders = append(subfolders, sf)
	}
	return subfolders, nil
}

// DeleteSubfolder removes the subfolder record; photos and files that
// referenced it are reparented to the organization root via ON DELETE SET NULL
func (r *pgVaultRepository) DeleteSubfolder(ctx context.Context, id string) error {
	query := `DELETE FROM subfolders WHERE id = $1`
	_, err := r.pool.Exec(ctx, query, id)
	return err
}

// itemTable maps a content kind to its table, rejecting anything else
func itemTable(kind string) (string, error) {
	switch kind {
	case "photos":
		return "photos", nil
	case "files":
		return "files", nil
	default:
		return "", fmt.Errorf("unknown vault content kind: %q", kind)
	}
}

func (r *pgVaultRepository) CreateItem(ctx context.Context, kind string, item *VaultItem) error {
	table, err := itemTable(kind)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		INSERT INTO %s (club_id, team_id, subfolder_id, file_name, storage_path, content_type, size_bytes, uploaded_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, uploaded_at
	`, table)
	return r.pool.QueryRow(ctx, query,
		item.ClubID, item.TeamID, item.SubfolderID, item.FileName,
		item.StoragePath, item.ContentType, item.SizeBytes, item.UploadedBy,
	).Scan(&item.ID, &item.UploadedAt)
}

// FindItemsByOrg returns unfiled content at the organization root, newest first
func (r *pgVaultRepository) FindItemsByOrg(ctx context.Context, kind, orgKind, orgID string) ([]*VaultItem, error) {
	table, err := itemTable(kind)
	if err != nil {
		return nil, err
	}
	column := "club_id"
	if orgKind == "team" {
		column = "team_id"
	}
	query := fmt.Sprintf(`
		SELECT id, club_id, team_id, subfolder_id, file_name, storage_path, content_type, size_bytes, uploaded_by, uploaded_at
		FROM %s WHERE %s = $1 AND subfolder_id IS NULL
		ORDER BY uploaded_at DESC
	`, table, column)
	rows, err := r.pool.Query(ctx, query, orgID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVaultItems(rows)
}

func (r *pgVaultRepository) FindItemsBySubfolder(ctx context.Context, kind, subfolderID string) ([]*VaultItem, error) {
	table, err := itemTable(kind)
	if err != nil {
		return nil, err
	}
	query := fmt.Sprintf(`
		SELECT id, club_id, team_id, subfolder_id, file_name, storage_path, content_type, size_bytes, uploaded_by, uploaded_at
		FROM %s WHERE subfolder_id = $1
		ORDER BY uploaded_at DESC
	`, table)
	rows, err := r.pool.Query(ctx, query, subfolderID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanVaultItems(rows)
}

func scanVaultItems(rows pgx.Rows) ([]*VaultItem, error) {
	var items []*VaultItem
	for rows.Next() {
		item := &VaultItem{}
		if err := rows.Scan(
			&item.ID, &item.ClubID, &item.TeamID, &item.SubfolderID, &item.FileName,
			&item.StoragePath, &item.ContentType, &item.SizeBytes, &item.UploadedBy, &item.UploadedAt,
		); err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func (r *pgVaultRepository) DeleteItem(ctx context.Context, kind, id string) error {
	table, err := itemTable(kind)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE id = $1`, table), id)
	return err
}

func (r *pgVaultRepository) CountByOrg(ctx context.Context, orgKind, orgID string) (*OrgCounts, error) {
	column := "club_id"
	if orgKind == "team" {
		column = "team_id"
	}
	query := fmt.Sprintf(`
		SELECT
			(SELECT COUNT(*) FROM photos WHERE %s = $1),
			(SELECT COUNT(*) FROM files WHERE %s = $1),
			(SELECT COUNT(*) FROM subfolders WHERE parent_kind = $2 AND parent_id = $1)
	`, column, column)
	counts := &OrgCounts{}
	err := r.pool.QueryRow(ctx, query, orgID, orgKind).
		Scan(&counts.Photos, &counts.Files, &counts.Subfolders)
	if err != nil {
		return nil, err
	}
	return counts, nil
}

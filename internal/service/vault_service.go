package service

import (
	"context"
	"fmt"
	"log"
	"path"
	"regexp"
	"strings"

	"github.com/clubhub-dev/clubhub-backend/internal/config"
	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/socket"
	"github.com/clubhub-dev/clubhub-backend/internal/types"
	"github.com/google/uuid"
)

// ============================================
// Vault Service (folder resolution and uploads)
// ============================================

const maxSubfolderNameLen = 50

var subfolderNameRe = regexp.MustCompile(`^[A-Za-z0-9 _-]+$`)

// ParentRef identifies the organization that owns a vault folder.
// Kind is always "club" or "team".
type ParentRef struct {
	Kind string `json:"kind"`
	ID   string `json:"id"`
}

// ParseFolderID resolves a synthetic folder id ("club_<id>" or
// "team_<id>") into its organization reference.
func ParseFolderID(folderID string) (ParentRef, error) {
	switch {
	case strings.HasPrefix(folderID, "club_"):
		id := strings.TrimPrefix(folderID, "club_")
		if id == "" {
			return ParentRef{}, ErrInvalidFolderID
		}
		return ParentRef{Kind: types.OrgClub, ID: id}, nil
	case strings.HasPrefix(folderID, "team_"):
		id := strings.TrimPrefix(folderID, "team_")
		if id == "" {
			return ParentRef{}, ErrInvalidFolderID
		}
		return ParentRef{Kind: types.OrgTeam, ID: id}, nil
	default:
		return ParentRef{}, ErrInvalidFolderID
	}
}

// FolderID renders the synthetic folder id for this organization
func (p ParentRef) FolderID() string {
	return fmt.Sprintf("%s_%s", p.Kind, p.ID)
}

// VaultFolder is one top-level entry in a user's vault: a club or team
// the user can see, with content counts.
type VaultFolder struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Kind           string `json:"kind"`
	PhotoCount     int    `json:"photoCount"`
	FileCount      int    `json:"fileCount"`
	SubfolderCount int    `json:"subfolderCount"`
}

// UploadRequest describes an incoming photo or file upload
type UploadRequest struct {
	FolderID    string
	SubfolderID *string
	FileName    string
	ContentType *string
	SizeBytes   int64
}

type VaultService interface {
	ListFolders(ctx context.Context, viewerID string) ([]*VaultFolder, error)
	ListSubfolders(ctx context.Context, viewerID, folderID string) ([]*repository.Subfolder, error)
	ListFolderContents(ctx context.Context, viewerID, folderID, kind string, subfolderID *string) ([]*repository.VaultItem, error)
	CreateSubfolder(ctx context.Context, viewerID, folderID, name string) (*repository.Subfolder, error)
	DeleteSubfolder(ctx context.Context, viewerID, subfolderID string) error
	Upload(ctx context.Context, viewerID, kind string, req *UploadRequest) (*repository.VaultItem, error)
}

type vaultService struct {
	cfg         *config.Config
	vaultRepo   repository.VaultRepository
	clubRepo    repository.ClubRepository
	teamRepo    repository.TeamRepository
	permissions PermissionService
	broadcaster *socket.Broadcaster
}

func NewVaultService(
	cfg *config.Config,
	vaultRepo repository.VaultRepository,
	clubRepo repository.ClubRepository,
	teamRepo repository.TeamRepository,
	permissions PermissionService,
	broadcaster *socket.Broadcaster,
) VaultService {
	return &vaultService{
		cfg:         cfg,
		vaultRepo:   vaultRepo,
		clubRepo:    clubRepo,
		teamRepo:    teamRepo,
		permissions: permissions,
		broadcaster: broadcaster,
	}
}

// ListFolders returns one folder per club and team the viewer belongs to
// or created. A failing count query degrades that folder to zero counts
// instead of failing the whole listing.
func (s *vaultService) ListFolders(ctx context.Context, viewerID string) ([]*VaultFolder, error) {
	clubs, err := s.clubRepo.FindByUserID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list clubs: %w", err)
	}
	teams, err := s.teamRepo.FindByUserID(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}

	folders := make([]*VaultFolder, 0, len(clubs)+len(teams))
	for _, club := range clubs {
		ref := ParentRef{Kind: types.OrgClub, ID: club.ID}
		folders = append(folders, s.buildFolder(ctx, ref, club.Name))
	}
	for _, team := range teams {
		ref := ParentRef{Kind: types.OrgTeam, ID: team.ID}
		folders = append(folders, s.buildFolder(ctx, ref, team.Name))
	}
	return folders, nil
}

func (s *vaultService) buildFolder(ctx context.Context, ref ParentRef, name string) *VaultFolder {
	folder := &VaultFolder{
		ID:   ref.FolderID(),
		Name: name,
		Kind: ref.Kind,
	}
	counts, err := s.vaultRepo.CountByOrg(ctx, ref.Kind, ref.ID)
	if err != nil {
		log.Printf("[Vault] ⚠️ Failed to count contents of %s: %v", folder.ID, err)
		return folder
	}
	folder.PhotoCount = counts.Photos
	folder.FileCount = counts.Files
	folder.SubfolderCount = counts.Subfolders
	return folder
}

func (s *vaultService) ListSubfolders(ctx context.Context, viewerID, folderID string) ([]*repository.Subfolder, error) {
	ref, err := s.resolveAccessibleFolder(ctx, viewerID, folderID)
	if err != nil {
		return nil, err
	}
	return s.vaultRepo.FindSubfoldersByParent(ctx, ref.Kind, ref.ID)
}

// ListFolderContents returns photos or files of a folder, newest first.
// Without a subfolder id only unfiled content at the organization root is
// returned.
func (s *vaultService) ListFolderContents(ctx context.Context, viewerID, folderID, kind string, subfolderID *string) ([]*repository.VaultItem, error) {
	if !types.IsValidContentKind(kind) {
		return nil, ErrInvalidInput
	}
	ref, err := s.resolveAccessibleFolder(ctx, viewerID, folderID)
	if err != nil {
		return nil, err
	}

	if subfolderID != nil {
		sf, err := s.vaultRepo.FindSubfolderByID(ctx, *subfolderID)
		if err != nil {
			return nil, err
		}
		if sf == nil || sf.ParentKind != ref.Kind || sf.ParentID != ref.ID {
			return nil, ErrNotFound
		}
		return s.vaultRepo.FindItemsBySubfolder(ctx, kind, *subfolderID)
	}
	return s.vaultRepo.FindItemsByOrg(ctx, kind, ref.Kind, ref.ID)
}

// CreateSubfolder validates the name before touching storage: non-empty,
// at most 50 characters, letters, digits, spaces, hyphens and underscores.
func (s *vaultService) CreateSubfolder(ctx context.Context, viewerID, folderID, name string) (*repository.Subfolder, error) {
	if err := validateSubfolderName(name); err != nil {
		return nil, err
	}

	ref, err := s.resolveAccessibleFolder(ctx, viewerID, folderID)
	if err != nil {
		return nil, err
	}

	sf := &repository.Subfolder{
		Name:       name,
		ParentKind: ref.Kind,
		ParentID:   ref.ID,
		CreatedBy:  viewerID,
	}
	if err := s.vaultRepo.CreateSubfolder(ctx, sf); err != nil {
		return nil, fmt.Errorf("failed to create subfolder: %w", err)
	}

	if clubID := s.owningClubID(ctx, ref); clubID != "" && s.broadcaster != nil {
		s.broadcaster.BroadcastSubfolderCreated(clubID, map[string]interface{}{
			"subfolderId": sf.ID,
			"folderId":    folderID,
			"name":        sf.Name,
		}, viewerID)
	}
	return sf, nil
}

// DeleteSubfolder removes the grouping only. Its photos and files are
// reparented to the organization root, never deleted with it.
func (s *vaultService) DeleteSubfolder(ctx context.Context, viewerID, subfolderID string) error {
	sf, err := s.vaultRepo.FindSubfolderByID(ctx, subfolderID)
	if err != nil {
		return err
	}
	if sf == nil {
		return ErrNotFound
	}

	ref := ParentRef{Kind: sf.ParentKind, ID: sf.ParentID}
	ok, err := s.permissions.IsOrgAdmin(ctx, ref.Kind, ref.ID, viewerID)
	if err != nil {
		return err
	}
	if !ok {
		return ErrForbidden
	}

	if err := s.vaultRepo.DeleteSubfolder(ctx, subfolderID); err != nil {
		return err
	}

	if clubID := s.owningClubID(ctx, ref); clubID != "" && s.broadcaster != nil {
		s.broadcaster.BroadcastSubfolderDeleted(clubID, subfolderID, viewerID)
	}
	return nil
}

// Upload records a photo or file and computes its storage path:
// vault/club_<c>[/team_<t>][/subfolders/<s>]/images|files/<generated>.
// Team uploads carry both the club and team segments.
func (s *vaultService) Upload(ctx context.Context, viewerID, kind string, req *UploadRequest) (*repository.VaultItem, error) {
	if !types.IsValidContentKind(kind) {
		return nil, ErrInvalidInput
	}
	if strings.TrimSpace(req.FileName) == "" {
		return nil, ErrInvalidInput
	}

	ref, err := s.resolveAccessibleFolder(ctx, viewerID, req.FolderID)
	if err != nil {
		return nil, err
	}

	item := &repository.VaultItem{
		FileName:    req.FileName,
		ContentType: req.ContentType,
		SizeBytes:   req.SizeBytes,
		UploadedBy:  viewerID,
	}

	var clubID string
	segments := []string{s.cfg.VaultRoot}
	switch ref.Kind {
	case types.OrgClub:
		clubID = ref.ID
		item.ClubID = &ref.ID
		segments = append(segments, "club_"+ref.ID)
	case types.OrgTeam:
		team, err := s.teamRepo.FindByID(ctx, ref.ID)
		if err != nil {
			return nil, err
		}
		if team == nil {
			return nil, ErrNotFound
		}
		clubID = team.ClubID
		item.TeamID = &ref.ID
		segments = append(segments, "club_"+team.ClubID, "team_"+ref.ID)
	}

	if req.SubfolderID != nil {
		sf, err := s.vaultRepo.FindSubfolderByID(ctx, *req.SubfolderID)
		if err != nil {
			return nil, err
		}
		if sf == nil || sf.ParentKind != ref.Kind || sf.ParentID != ref.ID {
			return nil, ErrNotFound
		}
		item.SubfolderID = req.SubfolderID
		segments = append(segments, "subfolders", sf.ID)
	}

	if kind == types.ContentPhotos {
		segments = append(segments, "images")
	} else {
		segments = append(segments, "files")
	}
	segments = append(segments, generatedFileName(req.FileName))
	item.StoragePath = path.Join(segments...)

	if err := s.vaultRepo.CreateItem(ctx, kind, item); err != nil {
		return nil, fmt.Errorf("failed to record upload: %w", err)
	}

	if clubID != "" && s.broadcaster != nil {
		s.broadcaster.BroadcastUpload(clubID, kind, map[string]interface{}{
			"itemId":   item.ID,
			"folderId": req.FolderID,
			"fileName": item.FileName,
		}, viewerID)
	}
	return item, nil
}

// resolveAccessibleFolder parses the folder id, checks the organization
// exists and that the viewer may see it
func (s *vaultService) resolveAccessibleFolder(ctx context.Context, viewerID, folderID string) (ParentRef, error) {
	ref, err := ParseFolderID(folderID)
	if err != nil {
		return ParentRef{}, err
	}

	ok, err := s.permissions.CanAccessOrg(ctx, ref.Kind, ref.ID, viewerID)
	if err != nil {
		return ParentRef{}, err
	}
	if !ok {
		return ParentRef{}, ErrForbidden
	}
	return ref, nil
}

// owningClubID maps a folder's organization to the club whose room gets
// the broadcast
func (s *vaultService) owningClubID(ctx context.Context, ref ParentRef) string {
	if ref.Kind == types.OrgClub {
		return ref.ID
	}
	team, err := s.teamRepo.FindByID(ctx, ref.ID)
	if err != nil || team == nil {
		return ""
	}
	return team.ClubID
}

func validateSubfolderName(name string) error {
	if name == "" || len(name) > maxSubfolderNameLen {
		return ErrInvalidFolderName
	}
	if !subfolderNameRe.MatchString(name) {
		return ErrInvalidFolderName
	}
	return nil
}

// generatedFileName keeps the original extension but replaces the name
// with a fresh uuid so uploads never collide
func generatedFileName(original string) string {
	ext := strings.ToLower(path.Ext(original))
	return uuid.New().String() + ext
}

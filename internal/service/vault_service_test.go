package service

import (
	"context"
	"strings"
	"testing"

	"github.com/clubhub-dev/clubhub-backend/internal/config"
	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newVaultFixture() (*fakeClubRepo, *fakeTeamRepo, *fakeVaultRepo, VaultService) {
	clubRepo := newFakeClubRepo(&repository.Club{ID: "5", Name: "FC Vault", CreatedBy: "admin"})
	teamRepo := newFakeTeamRepo(&repository.Team{ID: "9", ClubID: "5", Name: "Nine", CreatedBy: "admin"})
	vaultRepo := newFakeVaultRepo()

	permissions := NewPermissionService(clubRepo, teamRepo)
	cfg := &config.Config{VaultRoot: "vault"}
	svc := NewVaultService(cfg, vaultRepo, clubRepo, teamRepo, permissions, nil)
	return clubRepo, teamRepo, vaultRepo, svc
}

func TestParseFolderID(t *testing.T) {
	ref, err := ParseFolderID("club_5")
	require.NoError(t, err)
	assert.Equal(t, ParentRef{Kind: types.OrgClub, ID: "5"}, ref)
	assert.Equal(t, "club_5", ref.FolderID())

	ref, err = ParseFolderID("team_9")
	require.NoError(t, err)
	assert.Equal(t, ParentRef{Kind: types.OrgTeam, ID: "9"}, ref)

	for _, bad := range []string{"", "club_", "team_", "folder_1", "club5", "CLUB_5"} {
		_, err := ParseFolderID(bad)
		assert.ErrorIs(t, err, ErrInvalidFolderID, "folder id %q", bad)
	}
}

func TestListFolders_VisibleOrgsWithCounts(t *testing.T) {
	ctx := context.Background()
	_, _, vaultRepo, svc := newVaultFixture()

	clubID := "5"
	vaultRepo.items["photos"] = []*repository.VaultItem{
		{ID: "i1", ClubID: &clubID, FileName: "a.jpg"},
	}
	vaultRepo.subfolders["sf-1"] = &repository.Subfolder{
		ID: "sf-1", Name: "Archive", ParentKind: types.OrgClub, ParentID: "5",
	}

	folders, err := svc.ListFolders(ctx, "admin")
	require.NoError(t, err)
	require.Len(t, folders, 2)

	byID := map[string]*VaultFolder{}
	for _, f := range folders {
		byID[f.ID] = f
	}
	require.Contains(t, byID, "club_5")
	require.Contains(t, byID, "team_9")

	assert.Equal(t, 1, byID["club_5"].PhotoCount)
	assert.Equal(t, 0, byID["club_5"].FileCount)
	assert.Equal(t, 1, byID["club_5"].SubfolderCount)
	assert.Equal(t, "FC Vault", byID["club_5"].Name)
	assert.Equal(t, 0, byID["team_9"].PhotoCount)
}

func TestListFolders_OutsiderSeesNothing(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newVaultFixture()

	folders, err := svc.ListFolders(ctx, "stranger")
	require.NoError(t, err)
	assert.Empty(t, folders)
}

func TestCreateSubfolder_NameValidation(t *testing.T) {
	ctx := context.Background()

	valid := []string{
		"a",
		"Team Photos",
		"Match-Day_2026",
		strings.Repeat("x", 50),
	}
	invalid := []string{
		"",
		strings.Repeat("x", 51),
		"bad/name",
		"no!bang",
		"dots.not.allowed",
		"tab\tname",
	}

	for _, name := range valid {
		_, _, vaultRepo, svc := newVaultFixture()
		_, err := svc.CreateSubfolder(ctx, "admin", "club_5", name)
		assert.NoError(t, err, "name %q", name)
		assert.Equal(t, 1, vaultRepo.subfolderWrites, "name %q", name)
	}

	for _, name := range invalid {
		_, _, vaultRepo, svc := newVaultFixture()
		_, err := svc.CreateSubfolder(ctx, "admin", "club_5", name)
		assert.ErrorIs(t, err, ErrInvalidFolderName, "name %q", name)
		// Rejected before any storage write
		assert.Zero(t, vaultRepo.subfolderWrites, "name %q", name)
	}
}

func TestCreateSubfolder_RequiresAccess(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newVaultFixture()

	_, err := svc.CreateSubfolder(ctx, "stranger", "club_5", "Photos")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestUpload_TeamSubfolderStoragePath(t *testing.T) {
	ctx := context.Background()
	_, _, vaultRepo, svc := newVaultFixture()

	vaultRepo.nextSubfolderID = "3"
	sf, err := svc.CreateSubfolder(ctx, "admin", "team_9", "Matchday")
	require.NoError(t, err)
	require.Equal(t, "3", sf.ID)

	item, err := svc.Upload(ctx, "admin", types.ContentPhotos, &UploadRequest{
		FolderID:    "team_9",
		SubfolderID: &sf.ID,
		FileName:    "Goal Photo.JPG",
		SizeBytes:   1024,
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(item.StoragePath, "vault/club_5/team_9/subfolders/3/images/"),
		"got %q", item.StoragePath)
	assert.True(t, strings.HasSuffix(item.StoragePath, ".jpg"), "got %q", item.StoragePath)
	assert.NotContains(t, item.StoragePath, "Goal Photo")

	require.NotNil(t, item.TeamID)
	assert.Equal(t, "9", *item.TeamID)
	assert.Nil(t, item.ClubID)
}

func TestUpload_ClubRootStoragePath(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newVaultFixture()

	item, err := svc.Upload(ctx, "admin", types.ContentFiles, &UploadRequest{
		FolderID: "club_5",
		FileName: "minutes.pdf",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(item.StoragePath, "vault/club_5/files/"), "got %q", item.StoragePath)
	assert.True(t, strings.HasSuffix(item.StoragePath, ".pdf"), "got %q", item.StoragePath)
	require.NotNil(t, item.ClubID)
	assert.Equal(t, "5", *item.ClubID)
}

func TestUpload_ForeignSubfolderRejected(t *testing.T) {
	ctx := context.Background()
	_, _, vaultRepo, svc := newVaultFixture()

	// Subfolder lives under the club, upload targets the team folder
	vaultRepo.subfolders["other"] = &repository.Subfolder{
		ID: "other", Name: "Elsewhere", ParentKind: types.OrgClub, ParentID: "5",
	}
	other := "other"

	_, err := svc.Upload(ctx, "admin", types.ContentPhotos, &UploadRequest{
		FolderID:    "team_9",
		SubfolderID: &other,
		FileName:    "pic.jpg",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListFolderContents_NewestFirstAndScoped(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newVaultFixture()

	first, err := svc.Upload(ctx, "admin", types.ContentPhotos, &UploadRequest{
		FolderID: "club_5", FileName: "first.jpg",
	})
	require.NoError(t, err)
	second, err := svc.Upload(ctx, "admin", types.ContentPhotos, &UploadRequest{
		FolderID: "club_5", FileName: "second.jpg",
	})
	require.NoError(t, err)

	items, err := svc.ListFolderContents(ctx, "admin", "club_5", types.ContentPhotos, nil)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, second.ID, items[0].ID)
	assert.Equal(t, first.ID, items[1].ID)
}

func TestListFolderContents_SubfolderScope(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newVaultFixture()

	sf, err := svc.CreateSubfolder(ctx, "admin", "club_5", "Archive")
	require.NoError(t, err)

	filed, err := svc.Upload(ctx, "admin", types.ContentFiles, &UploadRequest{
		FolderID: "club_5", SubfolderID: &sf.ID, FileName: "filed.pdf",
	})
	require.NoError(t, err)
	unfiled, err := svc.Upload(ctx, "admin", types.ContentFiles, &UploadRequest{
		FolderID: "club_5", FileName: "unfiled.pdf",
	})
	require.NoError(t, err)

	// Root listing shows only unfiled content
	root, err := svc.ListFolderContents(ctx, "admin", "club_5", types.ContentFiles, nil)
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, unfiled.ID, root[0].ID)

	// Subfolder listing shows only its own content
	scoped, err := svc.ListFolderContents(ctx, "admin", "club_5", types.ContentFiles, &sf.ID)
	require.NoError(t, err)
	require.Len(t, scoped, 1)
	assert.Equal(t, filed.ID, scoped[0].ID)
}

func TestDeleteSubfolder_ReparentsContents(t *testing.T) {
	ctx := context.Background()
	_, _, _, svc := newVaultFixture()

	sf, err := svc.CreateSubfolder(ctx, "admin", "club_5", "Doomed")
	require.NoError(t, err)

	filed, err := svc.Upload(ctx, "admin", types.ContentPhotos, &UploadRequest{
		FolderID: "club_5", SubfolderID: &sf.ID, FileName: "keep.jpg",
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteSubfolder(ctx, "admin", sf.ID))

	// Content survives at the organization root
	root, err := svc.ListFolderContents(ctx, "admin", "club_5", types.ContentPhotos, nil)
	require.NoError(t, err)
	require.Len(t, root, 1)
	assert.Equal(t, filed.ID, root[0].ID)
}

func TestDeleteSubfolder_RequiresAdmin(t *testing.T) {
	ctx := context.Background()
	clubRepo, _, _, svc := newVaultFixture()

	clubRepo.memberships["5"] = []*repository.ClubMembership{
		{ClubID: "5", UserID: "plain", Roles: []string{types.RoleMember}},
	}

	sf, err := svc.CreateSubfolder(ctx, "admin", "club_5", "Locked")
	require.NoError(t, err)

	err = svc.DeleteSubfolder(ctx, "plain", sf.ID)
	assert.ErrorIs(t, err, ErrForbidden)
}

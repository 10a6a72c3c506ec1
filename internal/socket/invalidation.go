// internal/socket/invalidation.go
package socket

// Mutation identifies a state change reported by a service
type Mutation string

const (
	MutationClubUpdated      Mutation = "club_updated"
	MutationMemberAdded      Mutation = "member_added"
	MutationMemberRemoved    Mutation = "member_removed"
	MutationMemberRoleChange Mutation = "member_role_changed"
	MutationTeamCreated      Mutation = "team_created"
	MutationTeamDeleted      Mutation = "team_deleted"
	MutationTeamMemberAdded  Mutation = "team_member_added"
	MutationTeamMemberGone   Mutation = "team_member_removed"
	MutationChildChanged     Mutation = "child_changed"
	MutationSubfolderCreated Mutation = "subfolder_created"
	MutationSubfolderDeleted Mutation = "subfolder_deleted"
	MutationPhotoUploaded    Mutation = "photo_uploaded"
	MutationFileUploaded     Mutation = "file_uploaded"
	MutationDutyCompleted    Mutation = "duty_completed"
	MutationDutyApproved     Mutation = "duty_approved"
)

// View identifies a derived read view a client may hold
type View string

const (
	ViewClubMembers    View = "club_members"
	ViewClubList       View = "club_list"
	ViewVaultFolders   View = "vault_folders"
	ViewSubfolders     View = "subfolders"
	ViewFolderContents View = "folder_contents"
	ViewDuties         View = "duties"
	ViewPoints         View = "points"
	ViewLeaderboard    View = "leaderboard"
)

// invalidatedViews maps each mutation kind to the derived views it makes
// stale. Kept in one place so invalidation happens by declaration, not by
// convention at every call site.
var invalidatedViews = map[Mutation][]View{
	MutationClubUpdated:      {ViewClubList},
	MutationMemberAdded:      {ViewClubMembers, ViewVaultFolders},
	MutationMemberRemoved:    {ViewClubMembers, ViewVaultFolders},
	MutationMemberRoleChange: {ViewClubMembers},
	MutationTeamCreated:      {ViewClubMembers, ViewVaultFolders},
	MutationTeamDeleted:      {ViewClubMembers, ViewVaultFolders},
	MutationTeamMemberAdded:  {ViewClubMembers, ViewVaultFolders},
	MutationTeamMemberGone:   {ViewClubMembers, ViewVaultFolders},
	MutationChildChanged:     {ViewClubMembers},
	MutationSubfolderCreated: {ViewVaultFolders, ViewSubfolders},
	MutationSubfolderDeleted: {ViewVaultFolders, ViewSubfolders, ViewFolderContents},
	MutationPhotoUploaded:    {ViewVaultFolders, ViewFolderContents},
	MutationFileUploaded:     {ViewVaultFolders, ViewFolderContents},
	MutationDutyCompleted:    {ViewDuties},
	MutationDutyApproved:     {ViewDuties, ViewPoints, ViewLeaderboard},
}

// ViewsFor returns the derived views invalidated by a mutation
func ViewsFor(m Mutation) []View {
	return invalidatedViews[m]
}

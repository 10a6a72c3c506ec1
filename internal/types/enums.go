package types

// Club roles
const (
	RoleClubAdmin = "club_admin"
	RoleMember    = "member"
	RoleParent    = "parent"
)

// Team roles
const (
	RoleTeamAdmin = "team_admin"
	RoleCoach     = "coach"
	RolePlayer    = "player"
)

// Duty completion status values
const (
	DutyPending   = "pending"
	DutyCompleted = "completed"
	DutyApproved  = "approved"
)

// Vault organization kinds
const (
	OrgClub = "club"
	OrgTeam = "team"
)

// Vault content kinds
const (
	ContentPhotos = "photos"
	ContentFiles  = "files"
)

// User Status values
const (
	UserOnline  = "online"
	UserOffline = "offline"
	UserAway    = "away"
)

// Valid role values for validation
var ValidClubRoles = []string{
	RoleClubAdmin, RoleMember, RoleParent,
}

var ValidTeamRoles = []string{
	RoleTeamAdmin, RoleCoach, RolePlayer, RoleParent,
}

var ValidContentKinds = []string{
	ContentPhotos, ContentFiles,
}

// Helper functions for validation
func IsValidClubRole(role string) bool {
	for _, r := range ValidClubRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidTeamRole(role string) bool {
	for _, r := range ValidTeamRoles {
		if r == role {
			return true
		}
	}
	return false
}

func IsValidContentKind(kind string) bool {
	for _, k := range ValidContentKinds {
		if k == kind {
			return true
		}
	}
	return false
}

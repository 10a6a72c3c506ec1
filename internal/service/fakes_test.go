package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clubhub-dev/clubhub-backend/internal/repository"
)

var errFakeDown = errors.New("backend unavailable")

// ============================================
// In-memory repository fakes
// ============================================

type fakeUserRepo struct {
	users map[string]*repository.User
}

func newFakeUserRepo(users ...*repository.User) *fakeUserRepo {
	r := &fakeUserRepo{users: map[string]*repository.User{}}
	for _, u := range users {
		r.users[u.ID] = u
	}
	return r
}

func (r *fakeUserRepo) Create(ctx context.Context, user *repository.User) error {
	if user.ID == "" {
		user.ID = fmt.Sprintf("user-%d", len(r.users)+1)
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) FindByID(ctx context.Context, id string) (*repository.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*repository.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) SearchByName(ctx context.Context, name string, limit int) ([]*repository.User, error) {
	return nil, nil
}

func (r *fakeUserRepo) Update(ctx context.Context, user *repository.User) error { return nil }

func (r *fakeUserRepo) UpdateLastActive(ctx context.Context, userID string) error { return nil }

func (r *fakeUserRepo) SaveRefreshToken(ctx context.Context, token *repository.RefreshToken) error {
	return nil
}

func (r *fakeUserRepo) FindRefreshToken(ctx context.Context, token string) (*repository.RefreshToken, error) {
	return nil, nil
}

func (r *fakeUserRepo) DeleteRefreshToken(ctx context.Context, token string) error { return nil }

type fakeClubRepo struct {
	clubs           map[string]*repository.Club
	memberships     map[string][]*repository.ClubMembership
	failMemberships bool
}

func newFakeClubRepo(clubs ...*repository.Club) *fakeClubRepo {
	r := &fakeClubRepo{
		clubs:       map[string]*repository.Club{},
		memberships: map[string][]*repository.ClubMembership{},
	}
	for _, c := range clubs {
		r.clubs[c.ID] = c
	}
	return r
}

func (r *fakeClubRepo) Create(ctx context.Context, club *repository.Club) error {
	if club.ID == "" {
		club.ID = fmt.Sprintf("club-%d", len(r.clubs)+1)
	}
	r.clubs[club.ID] = club
	return nil
}

func (r *fakeClubRepo) FindByID(ctx context.Context, id string) (*repository.Club, error) {
	return r.clubs[id], nil
}

func (r *fakeClubRepo) FindByUserID(ctx context.Context, userID string) ([]*repository.Club, error) {
	var out []*repository.Club
	for _, c := range r.clubs {
		if c.CreatedBy == userID {
			out = append(out, c)
			continue
		}
		for _, m := range r.memberships[c.ID] {
			if m.UserID == userID {
				out = append(out, c)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeClubRepo) Update(ctx context.Context, club *repository.Club) error { return nil }

func (r *fakeClubRepo) Delete(ctx context.Context, id string) error {
	delete(r.clubs, id)
	return nil
}

func (r *fakeClubRepo) AddMember(ctx context.Context, m *repository.ClubMembership) error {
	m.JoinedAt = time.Now()
	r.memberships[m.ClubID] = append(r.memberships[m.ClubID], m)
	return nil
}

func (r *fakeClubRepo) FindMemberships(ctx context.Context, clubID string) ([]*repository.ClubMembership, error) {
	if r.failMemberships {
		return nil, errFakeDown
	}
	return r.memberships[clubID], nil
}

func (r *fakeClubRepo) FindMembership(ctx context.Context, clubID, userID string) (*repository.ClubMembership, error) {
	for _, m := range r.memberships[clubID] {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeClubRepo) UpdateMemberRoles(ctx context.Context, clubID, userID string, roles []string) error {
	for _, m := range r.memberships[clubID] {
		if m.UserID == userID {
			m.Roles = roles
		}
	}
	return nil
}

func (r *fakeClubRepo) RemoveMember(ctx context.Context, clubID, userID string) error {
	kept := r.memberships[clubID][:0]
	for _, m := range r.memberships[clubID] {
		if m.UserID != userID {
			kept = append(kept, m)
		}
	}
	r.memberships[clubID] = kept
	return nil
}

type fakeTeamRepo struct {
	teams           map[string]*repository.Team
	memberships     map[string][]*repository.TeamMembership
	failTeamList    bool
	failMemberships map[string]bool
}

func newFakeTeamRepo(teams ...*repository.Team) *fakeTeamRepo {
	r := &fakeTeamRepo{
		teams:           map[string]*repository.Team{},
		memberships:     map[string][]*repository.TeamMembership{},
		failMemberships: map[string]bool{},
	}
	for _, t := range teams {
		r.teams[t.ID] = t
	}
	return r
}

func (r *fakeTeamRepo) Create(ctx context.Context, team *repository.Team) error {
	if team.ID == "" {
		team.ID = fmt.Sprintf("team-%d", len(r.teams)+1)
	}
	r.teams[team.ID] = team
	return nil
}

func (r *fakeTeamRepo) FindByID(ctx context.Context, id string) (*repository.Team, error) {
	return r.teams[id], nil
}

func (r *fakeTeamRepo) FindByClubID(ctx context.Context, clubID string) ([]*repository.Team, error) {
	if r.failTeamList {
		return nil, errFakeDown
	}
	var out []*repository.Team
	for _, t := range r.teams {
		if t.ClubID == clubID {
			out = append(out, t)
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) FindByUserID(ctx context.Context, userID string) ([]*repository.Team, error) {
	var out []*repository.Team
	for _, t := range r.teams {
		if t.CreatedBy == userID {
			out = append(out, t)
			continue
		}
		for _, m := range r.memberships[t.ID] {
			if m.UserID == userID {
				out = append(out, t)
				break
			}
		}
	}
	return out, nil
}

func (r *fakeTeamRepo) Update(ctx context.Context, team *repository.Team) error { return nil }

func (r *fakeTeamRepo) Delete(ctx context.Context, id string) error {
	delete(r.teams, id)
	return nil
}

func (r *fakeTeamRepo) AddMember(ctx context.Context, m *repository.TeamMembership) error {
	m.JoinedAt = time.Now()
	r.memberships[m.TeamID] = append(r.memberships[m.TeamID], m)
	return nil
}

func (r *fakeTeamRepo) FindMemberships(ctx context.Context, teamID string) ([]*repository.TeamMembership, error) {
	if r.failMemberships[teamID] {
		return nil, errFakeDown
	}
	return r.memberships[teamID], nil
}

func (r *fakeTeamRepo) FindMembership(ctx context.Context, teamID, userID string) (*repository.TeamMembership, error) {
	for _, m := range r.memberships[teamID] {
		if m.UserID == userID {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeTeamRepo) UpdateMemberRoles(ctx context.Context, teamID, userID string, roles []string) error {
	return nil
}

func (r *fakeTeamRepo) RemoveMember(ctx context.Context, teamID, userID string) error { return nil }

func (r *fakeTeamRepo) IsMember(ctx context.Context, teamID, userID string) (bool, error) {
	for _, m := range r.memberships[teamID] {
		if m.UserID == userID {
			return true, nil
		}
	}
	return false, nil
}

type fakeChildRepo struct {
	children   map[string]*repository.Child
	failByClub bool
	teams      *fakeTeamRepo
}

func newFakeChildRepo(teams *fakeTeamRepo, children ...*repository.Child) *fakeChildRepo {
	r := &fakeChildRepo{children: map[string]*repository.Child{}, teams: teams}
	for _, c := range children {
		r.children[c.ID] = c
	}
	return r
}

func (r *fakeChildRepo) Create(ctx context.Context, child *repository.Child) error {
	if child.ID == "" {
		child.ID = fmt.Sprintf("child-%d", len(r.children)+1)
	}
	r.children[child.ID] = child
	return nil
}

func (r *fakeChildRepo) FindByID(ctx context.Context, id string) (*repository.Child, error) {
	return r.children[id], nil
}

func (r *fakeChildRepo) FindByGuardian(ctx context.Context, guardianID string) ([]*repository.Child, error) {
	var out []*repository.Child
	for _, c := range r.children {
		if c.GuardianID == guardianID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChildRepo) FindByTeam(ctx context.Context, teamID string) ([]*repository.Child, error) {
	var out []*repository.Child
	for _, c := range r.children {
		if c.TeamID != nil && *c.TeamID == teamID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChildRepo) FindByClub(ctx context.Context, clubID string) ([]*repository.Child, error) {
	if r.failByClub {
		return nil, errFakeDown
	}
	var out []*repository.Child
	for _, c := range r.children {
		if c.TeamID == nil {
			continue
		}
		team := r.teams.teams[*c.TeamID]
		if team != nil && team.ClubID == clubID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (r *fakeChildRepo) Update(ctx context.Context, child *repository.Child) error { return nil }

func (r *fakeChildRepo) Delete(ctx context.Context, id string) error {
	delete(r.children, id)
	return nil
}

type fakeEventRepo struct {
	events map[string]*repository.Event
}

func newFakeEventRepo(events ...*repository.Event) *fakeEventRepo {
	r := &fakeEventRepo{events: map[string]*repository.Event{}}
	for _, e := range events {
		r.events[e.ID] = e
	}
	return r
}

func (r *fakeEventRepo) Create(ctx context.Context, event *repository.Event) error {
	if event.ID == "" {
		event.ID = fmt.Sprintf("event-%d", len(r.events)+1)
	}
	r.events[event.ID] = event
	return nil
}

func (r *fakeEventRepo) FindByID(ctx context.Context, id string) (*repository.Event, error) {
	return r.events[id], nil
}

func (r *fakeEventRepo) FindByClub(ctx context.Context, clubID string) ([]*repository.Event, error) {
	var out []*repository.Event
	for _, e := range r.events {
		if e.ClubID == clubID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (r *fakeEventRepo) FindUpcoming(ctx context.Context, within time.Duration) ([]*repository.Event, error) {
	return nil, nil
}

func (r *fakeEventRepo) Update(ctx context.Context, event *repository.Event) error { return nil }

func (r *fakeEventRepo) Delete(ctx context.Context, id string) error {
	delete(r.events, id)
	return nil
}

type fakeVaultRepo struct {
	subfolders       map[string]*repository.Subfolder
	items            map[string][]*repository.VaultItem // keyed by kind
	subfolderWrites  int
	nextSubfolderID  string
	failCounts       bool
}

func newFakeVaultRepo() *fakeVaultRepo {
	return &fakeVaultRepo{
		subfolders: map[string]*repository.Subfolder{},
		items:      map[string][]*repository.VaultItem{},
	}
}

func (r *fakeVaultRepo) CreateSubfolder(ctx context.Context, sf *repository.Subfolder) error {
	r.subfolderWrites++
	if sf.ID == "" {
		if r.nextSubfolderID != "" {
			sf.ID = r.nextSubfolderID
		} else {
			sf.ID = fmt.Sprintf("sf-%d", len(r.subfolders)+1)
		}
	}
	sf.CreatedAt = time.Now()
	r.subfolders[sf.ID] = sf
	return nil
}

func (r *fakeVaultRepo) FindSubfolderByID(ctx context.Context, id string) (*repository.Subfolder, error) {
	return r.subfolders[id], nil
}

func (r *fakeVaultRepo) FindSubfoldersByParent(ctx context.Context, parentKind, parentID string) ([]*repository.Subfolder, error) {
	var out []*repository.Subfolder
	for _, sf := range r.subfolders {
		if sf.ParentKind == parentKind && sf.ParentID == parentID {
			out = append(out, sf)
		}
	}
	return out, nil
}

func (r *fakeVaultRepo) DeleteSubfolder(ctx context.Context, id string) error {
	delete(r.subfolders, id)
	for kind, items := range r.items {
		for _, item := range items {
			if item.SubfolderID != nil && *item.SubfolderID == id {
				item.SubfolderID = nil
			}
		}
		r.items[kind] = items
	}
	return nil
}

func (r *fakeVaultRepo) CreateItem(ctx context.Context, kind string, item *repository.VaultItem) error {
	item.ID = fmt.Sprintf("item-%d", len(r.items[kind])+1)
	item.UploadedAt = time.Now()
	r.items[kind] = append(r.items[kind], item)
	return nil
}

func (r *fakeVaultRepo) FindItemsByOrg(ctx context.Context, kind, orgKind, orgID string) ([]*repository.VaultItem, error) {
	var out []*repository.VaultItem
	for _, item := range r.items[kind] {
		if item.SubfolderID != nil {
			continue
		}
		if orgKind == "club" && item.ClubID != nil && *item.ClubID == orgID {
			out = append(out, item)
		}
		if orgKind == "team" && item.TeamID != nil && *item.TeamID == orgID {
			out = append(out, item)
		}
	}
	// Newest first
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *fakeVaultRepo) FindItemsBySubfolder(ctx context.Context, kind, subfolderID string) ([]*repository.VaultItem, error) {
	var out []*repository.VaultItem
	for _, item := range r.items[kind] {
		if item.SubfolderID != nil && *item.SubfolderID == subfolderID {
			out = append(out, item)
		}
	}
	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out, nil
}

func (r *fakeVaultRepo) DeleteItem(ctx context.Context, kind, id string) error { return nil }

func (r *fakeVaultRepo) CountByOrg(ctx context.Context, orgKind, orgID string) (*repository.OrgCounts, error) {
	if r.failCounts {
		return nil, errFakeDown
	}
	counts := &repository.OrgCounts{}
	match := func(item *repository.VaultItem) bool {
		if orgKind == "club" {
			return item.ClubID != nil && *item.ClubID == orgID
		}
		return item.TeamID != nil && *item.TeamID == orgID
	}
	for _, item := range r.items["photos"] {
		if match(item) {
			counts.Photos++
		}
	}
	for _, item := range r.items["files"] {
		if match(item) {
			counts.Files++
		}
	}
	for _, sf := range r.subfolders {
		if sf.ParentKind == orgKind && sf.ParentID == orgID {
			counts.Subfolders++
		}
	}
	return counts, nil
}

package service

import (
	"context"
	"testing"

	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memberByPrincipal(members []*Member, principal string) *Member {
	for _, m := range members {
		if m.Principal == principal {
			return m
		}
	}
	return nil
}

func principals(members []*Member) []string {
	out := make([]string, 0, len(members))
	for _, m := range members {
		out = append(out, m.Principal)
	}
	return out
}

func TestAggregateClubMembers_MergesAllSources(t *testing.T) {
	ctx := context.Background()

	clubRepo := newFakeClubRepo(&repository.Club{ID: "42", Name: "FC Test", CreatedBy: "p1"})
	clubRepo.memberships["42"] = []*repository.ClubMembership{
		{ClubID: "42", UserID: "p2", Roles: []string{types.RoleMember}},
	}

	teamRepo := newFakeTeamRepo(&repository.Team{ID: "t1", ClubID: "42", Name: "Juniors", CreatedBy: "p1"})
	teamRepo.memberships["t1"] = []*repository.TeamMembership{
		{TeamID: "t1", UserID: "p2", Roles: []string{types.RoleCoach}},
		{TeamID: "t1", UserID: "p3", Roles: []string{types.RolePlayer}},
	}

	childRepo := newFakeChildRepo(teamRepo, &repository.Child{
		ID: "c1", GuardianID: "p3", Name: "Kid One", TeamID: strPtr("t1"),
	})

	userRepo := newFakeUserRepo(
		&repository.User{ID: "p1", Name: "Alice"},
		&repository.User{ID: "p2", Name: "Bob"},
		&repository.User{ID: "p3", Name: "Carol"},
	)

	svc := NewMemberService(clubRepo, teamRepo, childRepo, userRepo, nil)
	members, err := svc.AggregateClubMembers(ctx, "42")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"p1", "p2", "p3", "child_c1"}, principals(members))

	// Creator appears exactly once, synthesized as admin
	creator := memberByPrincipal(members, "p1")
	require.NotNil(t, creator)
	assert.True(t, creator.IsCreator)
	assert.Equal(t, []string{types.RoleClubAdmin}, creator.Roles)
	assert.Equal(t, "Alice", creator.DisplayName)

	// Direct member who also plays on a team is deduplicated, keeping
	// the club roles and gaining the team flag
	p2 := memberByPrincipal(members, "p2")
	require.NotNil(t, p2)
	assert.Equal(t, []string{types.RoleMember}, p2.Roles)
	assert.True(t, p2.IsTeamMember)
	assert.Equal(t, []string{"Juniors"}, p2.TeamNames)
	assert.False(t, p2.IsCreator)

	// Team-only member gets an entry with no club roles
	p3 := memberByPrincipal(members, "p3")
	require.NotNil(t, p3)
	assert.Empty(t, p3.Roles)
	assert.True(t, p3.IsTeamMember)

	// Child record becomes a synthetic principal with its team's name
	kid := memberByPrincipal(members, "child_c1")
	require.NotNil(t, kid)
	assert.True(t, kid.IsChild)
	assert.Equal(t, "Kid One", kid.DisplayName)
	assert.Equal(t, []string{"Juniors"}, kid.TeamNames)
}

func TestAggregateClubMembers_CreatorWithMembershipNotDuplicated(t *testing.T) {
	ctx := context.Background()

	clubRepo := newFakeClubRepo(&repository.Club{ID: "c", Name: "Club", CreatedBy: "p1"})
	clubRepo.memberships["c"] = []*repository.ClubMembership{
		{ClubID: "c", UserID: "p1", Roles: []string{types.RoleClubAdmin, types.RoleParent}},
	}

	teamRepo := newFakeTeamRepo()
	childRepo := newFakeChildRepo(teamRepo)
	userRepo := newFakeUserRepo(&repository.User{ID: "p1", Name: "Alice"})

	svc := NewMemberService(clubRepo, teamRepo, childRepo, userRepo, nil)
	members, err := svc.AggregateClubMembers(ctx, "c")
	require.NoError(t, err)

	require.Len(t, members, 1)
	assert.True(t, members[0].IsCreator)
	// The stored role set wins over the synthesized one
	assert.Equal(t, []string{types.RoleClubAdmin, types.RoleParent}, members[0].Roles)
}

func TestAggregateClubMembers_MissingProfileFallsBackToPrincipal(t *testing.T) {
	ctx := context.Background()

	clubRepo := newFakeClubRepo(&repository.Club{ID: "c", Name: "Club", CreatedBy: "ghost"})
	teamRepo := newFakeTeamRepo()
	childRepo := newFakeChildRepo(teamRepo)
	userRepo := newFakeUserRepo()

	svc := NewMemberService(clubRepo, teamRepo, childRepo, userRepo, nil)
	members, err := svc.AggregateClubMembers(ctx, "c")
	require.NoError(t, err)

	require.Len(t, members, 1)
	assert.Equal(t, "ghost", members[0].DisplayName)
}

func TestAggregateClubMembers_TeamNamesWithoutDuplicates(t *testing.T) {
	ctx := context.Background()

	clubRepo := newFakeClubRepo(&repository.Club{ID: "c", Name: "Club", CreatedBy: "p1"})
	teamRepo := newFakeTeamRepo(
		&repository.Team{ID: "t1", ClubID: "c", Name: "Juniors", CreatedBy: "p1"},
		&repository.Team{ID: "t2", ClubID: "c", Name: "Seniors", CreatedBy: "p1"},
	)
	teamRepo.memberships["t1"] = []*repository.TeamMembership{{TeamID: "t1", UserID: "p2"}}
	teamRepo.memberships["t2"] = []*repository.TeamMembership{{TeamID: "t2", UserID: "p2"}}

	childRepo := newFakeChildRepo(teamRepo)
	userRepo := newFakeUserRepo(&repository.User{ID: "p2", Name: "Bob"})

	svc := NewMemberService(clubRepo, teamRepo, childRepo, userRepo, nil)
	members, err := svc.AggregateClubMembers(ctx, "c")
	require.NoError(t, err)

	p2 := memberByPrincipal(members, "p2")
	require.NotNil(t, p2)
	assert.ElementsMatch(t, []string{"Juniors", "Seniors"}, p2.TeamNames)
}

func TestAggregateClubMembers_PartialFailuresDegrade(t *testing.T) {
	ctx := context.Background()

	clubRepo := newFakeClubRepo(&repository.Club{ID: "c", Name: "Club", CreatedBy: "p1"})
	clubRepo.memberships["c"] = []*repository.ClubMembership{
		{ClubID: "c", UserID: "p2", Roles: []string{types.RoleMember}},
	}

	teamRepo := newFakeTeamRepo(
		&repository.Team{ID: "good", ClubID: "c", Name: "Good", CreatedBy: "p1"},
		&repository.Team{ID: "bad", ClubID: "c", Name: "Bad", CreatedBy: "p1"},
	)
	teamRepo.memberships["good"] = []*repository.TeamMembership{{TeamID: "good", UserID: "p3"}}
	teamRepo.memberships["bad"] = []*repository.TeamMembership{{TeamID: "bad", UserID: "p4"}}
	teamRepo.failMemberships["bad"] = true

	childRepo := newFakeChildRepo(teamRepo)
	childRepo.failByClub = true

	userRepo := newFakeUserRepo()

	svc := NewMemberService(clubRepo, teamRepo, childRepo, userRepo, nil)
	members, err := svc.AggregateClubMembers(ctx, "c")
	require.NoError(t, err)

	// The broken team and child source are skipped, the rest survives
	assert.ElementsMatch(t, []string{"p1", "p2", "p3"}, principals(members))
}

func TestAggregateClubMembers_RootFailuresAreFatal(t *testing.T) {
	ctx := context.Background()

	clubRepo := newFakeClubRepo(&repository.Club{ID: "c", Name: "Club", CreatedBy: "p1"})
	clubRepo.failMemberships = true

	teamRepo := newFakeTeamRepo()
	childRepo := newFakeChildRepo(teamRepo)
	userRepo := newFakeUserRepo()

	svc := NewMemberService(clubRepo, teamRepo, childRepo, userRepo, nil)
	_, err := svc.AggregateClubMembers(ctx, "c")
	assert.Error(t, err)
}

func TestAggregateClubMembers_UnknownClub(t *testing.T) {
	ctx := context.Background()

	teamRepo := newFakeTeamRepo()
	svc := NewMemberService(newFakeClubRepo(), teamRepo, newFakeChildRepo(teamRepo), newFakeUserRepo(), nil)

	_, err := svc.AggregateClubMembers(ctx, "nope")
	assert.ErrorIs(t, err, ErrNotFound)
}

func strPtr(s string) *string {
	return &s
}

package service

import (
	"context"
	"testing"

	"github.com/clubhub-dev/clubhub-backend/internal/duty"
	"github.com/clubhub-dev/clubhub-backend/internal/repository"
	"github.com/clubhub-dev/clubhub-backend/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newDutyFixture(t *testing.T) (*duty.MemStore, *fakeClubRepo, DutyService) {
	t.Helper()

	store, err := duty.NewMemStore()
	require.NoError(t, err)

	clubRepo := newFakeClubRepo(&repository.Club{ID: "c1", Name: "FC Duty", CreatedBy: "admin"})
	clubRepo.memberships["c1"] = []*repository.ClubMembership{
		{ClubID: "c1", UserID: "helper", Roles: []string{types.RoleMember}},
		{ClubID: "c1", UserID: "other", Roles: []string{types.RoleMember}},
	}

	teamRepo := newFakeTeamRepo()
	eventRepo := newFakeEventRepo(&repository.Event{
		ID:        "e1",
		ClubID:    "c1",
		Title:     "Home Game",
		DutyRoles: []string{"grill", "kiosk"},
		CreatedBy: "admin",
	})

	permissions := NewPermissionService(clubRepo, teamRepo)
	members := NewMemberService(clubRepo, teamRepo, newFakeChildRepo(teamRepo), newFakeUserRepo(), nil)
	svc := NewDutyService(store, eventRepo, clubRepo, permissions, members, nil, nil)
	return store, clubRepo, svc
}

func TestMarkCompleted(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	c, err := svc.MarkCompleted(ctx, "e1", "grill", "helper")
	require.NoError(t, err)
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "completed", c.Status)
	assert.Equal(t, "helper", c.AssigneeID)
	assert.False(t, c.PointsAwarded)
	assert.False(t, c.CompletedAt.IsZero())
}

func TestMarkCompleted_UndefinedRole(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	_, err := svc.MarkCompleted(ctx, "e1", "referee", "helper")
	assert.ErrorIs(t, err, ErrDutyNotAssignable)
}

func TestMarkCompleted_Duplicate(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	_, err := svc.MarkCompleted(ctx, "e1", "grill", "helper")
	require.NoError(t, err)

	_, err = svc.MarkCompleted(ctx, "e1", "grill", "helper")
	assert.ErrorIs(t, err, ErrDutyCompleted)

	// Same role by someone else is a separate completion
	_, err = svc.MarkCompleted(ctx, "e1", "grill", "other")
	assert.NoError(t, err)
}

func TestMarkCompleted_OutsiderForbidden(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	_, err := svc.MarkCompleted(ctx, "e1", "grill", "stranger")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMarkCompleted_UnknownEvent(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	_, err := svc.MarkCompleted(ctx, "nope", "grill", "helper")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApprove_CreditsPointsOnce(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	c, err := svc.MarkCompleted(ctx, "e1", "grill", "helper")
	require.NoError(t, err)

	approved, err := svc.Approve(ctx, c.ID, "admin")
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.True(t, approved.PointsAwarded)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "admin", *approved.ApprovedBy)
	assert.NotNil(t, approved.ApprovedAt)

	balance, err := svc.Balance(ctx, "helper")
	require.NoError(t, err)
	assert.Equal(t, PointsPerDuty, balance.Points)

	// Approved is terminal and the balance does not move again
	_, err = svc.Approve(ctx, c.ID, "admin")
	assert.ErrorIs(t, err, ErrDutyApproved)

	balance, err = svc.Balance(ctx, "helper")
	require.NoError(t, err)
	assert.Equal(t, PointsPerDuty, balance.Points)
}

func TestApprove_RequiresClubAdmin(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	c, err := svc.MarkCompleted(ctx, "e1", "grill", "helper")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, c.ID, "helper")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestApprove_UnknownCompletion(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	_, err := svc.Approve(ctx, "missing", "admin")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBalance_AccumulatesAcrossEvents(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	c1, err := svc.MarkCompleted(ctx, "e1", "grill", "helper")
	require.NoError(t, err)
	c2, err := svc.MarkCompleted(ctx, "e1", "kiosk", "helper")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, c1.ID, "admin")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, c2.ID, "admin")
	require.NoError(t, err)

	balance, err := svc.Balance(ctx, "helper")
	require.NoError(t, err)
	assert.Equal(t, 2*PointsPerDuty, balance.Points)
}

func TestBalance_StartsAtZero(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	balance, err := svc.Balance(ctx, "helper")
	require.NoError(t, err)
	assert.Equal(t, 0, balance.Points)
}

func TestLeaderboard_OnlyClubMembersRanked(t *testing.T) {
	ctx := context.Background()
	store, _, svc := newDutyFixture(t)

	c1, err := svc.MarkCompleted(ctx, "e1", "grill", "helper")
	require.NoError(t, err)
	c2, err := svc.MarkCompleted(ctx, "e1", "kiosk", "other")
	require.NoError(t, err)

	_, err = svc.Approve(ctx, c1.ID, "admin")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, c2.ID, "admin")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, c1.ID, "admin")
	require.ErrorIs(t, err, ErrDutyApproved)

	// A stranger with a bigger balance stays off the club's board
	stray := &duty.Completion{EventID: "elsewhere", DutyRole: "grill", AssigneeID: "stranger"}
	require.NoError(t, store.CreateCompletion(ctx, stray))
	_, err = store.Approve(ctx, stray.ID, "someone", 100)
	require.NoError(t, err)

	ranked, err := svc.Leaderboard(ctx, "c1", "helper", 10)
	require.NoError(t, err)
	require.Len(t, ranked, 2)
	for _, b := range ranked {
		assert.NotEqual(t, "stranger", b.UserID)
		assert.Equal(t, PointsPerDuty, b.Points)
	}
}

func TestLeaderboard_LimitAndAccess(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	c1, err := svc.MarkCompleted(ctx, "e1", "grill", "helper")
	require.NoError(t, err)
	c2, err := svc.MarkCompleted(ctx, "e1", "kiosk", "other")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, c1.ID, "admin")
	require.NoError(t, err)
	_, err = svc.Approve(ctx, c2.ID, "admin")
	require.NoError(t, err)

	ranked, err := svc.Leaderboard(ctx, "c1", "helper", 1)
	require.NoError(t, err)
	assert.Len(t, ranked, 1)

	_, err = svc.Leaderboard(ctx, "c1", "stranger", 10)
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestListByEvent(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	_, err := svc.MarkCompleted(ctx, "e1", "grill", "helper")
	require.NoError(t, err)
	_, err = svc.MarkCompleted(ctx, "e1", "kiosk", "other")
	require.NoError(t, err)

	completions, err := svc.ListByEvent(ctx, "e1", "helper")
	require.NoError(t, err)
	assert.Len(t, completions, 2)

	_, err = svc.ListByEvent(ctx, "e1", "stranger")
	assert.ErrorIs(t, err, ErrForbidden)
}

func TestMyCompletions(t *testing.T) {
	ctx := context.Background()
	_, _, svc := newDutyFixture(t)

	_, err := svc.MarkCompleted(ctx, "e1", "grill", "helper")
	require.NoError(t, err)
	_, err = svc.MarkCompleted(ctx, "e1", "kiosk", "other")
	require.NoError(t, err)

	mine, err := svc.MyCompletions(ctx, "helper")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "grill", mine[0].DutyRole)
}

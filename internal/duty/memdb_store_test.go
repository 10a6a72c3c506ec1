package duty

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *MemStore {
	t.Helper()
	store, err := NewMemStore()
	require.NoError(t, err)
	return store
}

func TestCreateCompletion_Defaults(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	c := &Completion{EventID: "e1", DutyRole: "grill", AssigneeID: "u1"}
	require.NoError(t, store.CreateCompletion(ctx, c))

	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "completed", c.Status)
	assert.False(t, c.CompletedAt.IsZero())
	assert.False(t, c.PointsAwarded)

	found, err := store.FindCompletionByID(ctx, c.ID)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, c.ID, found.ID)

	byDuty, err := store.FindCompletion(ctx, "e1", "grill", "u1")
	require.NoError(t, err)
	require.NotNil(t, byDuty)
	assert.Equal(t, c.ID, byDuty.ID)
}

func TestCreateCompletion_DuplicateTriple(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	require.NoError(t, store.CreateCompletion(ctx, &Completion{EventID: "e1", DutyRole: "grill", AssigneeID: "u1"}))

	err := store.CreateCompletion(ctx, &Completion{EventID: "e1", DutyRole: "grill", AssigneeID: "u1"})
	assert.ErrorIs(t, err, ErrDuplicate)

	// Any change to the triple makes it a distinct duty
	assert.NoError(t, store.CreateCompletion(ctx, &Completion{EventID: "e1", DutyRole: "kiosk", AssigneeID: "u1"}))
	assert.NoError(t, store.CreateCompletion(ctx, &Completion{EventID: "e1", DutyRole: "grill", AssigneeID: "u2"}))
	assert.NoError(t, store.CreateCompletion(ctx, &Completion{EventID: "e2", DutyRole: "grill", AssigneeID: "u1"}))
}

func TestApprove_AtomicStatusAndCredit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	c := &Completion{EventID: "e1", DutyRole: "grill", AssigneeID: "u1"}
	require.NoError(t, store.CreateCompletion(ctx, c))

	approved, err := store.Approve(ctx, c.ID, "admin", 5)
	require.NoError(t, err)
	assert.Equal(t, "approved", approved.Status)
	assert.True(t, approved.PointsAwarded)
	require.NotNil(t, approved.ApprovedBy)
	assert.Equal(t, "admin", *approved.ApprovedBy)
	require.NotNil(t, approved.ApprovedAt)

	balance, err := store.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, balance.Points)
}

func TestApprove_TerminalState(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	c := &Completion{EventID: "e1", DutyRole: "grill", AssigneeID: "u1"}
	require.NoError(t, store.CreateCompletion(ctx, c))

	_, err := store.Approve(ctx, c.ID, "admin", 5)
	require.NoError(t, err)

	_, err = store.Approve(ctx, c.ID, "admin", 5)
	assert.ErrorIs(t, err, ErrAlreadyApproved)

	// The failed second approval never touched the balance
	balance, err := store.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 5, balance.Points)
}

func TestApprove_UnknownID(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	_, err := store.Approve(ctx, "missing", "admin", 5)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestBalance_Accumulates(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	for i := 0; i < 3; i++ {
		c := &Completion{EventID: fmt.Sprintf("e%d", i), DutyRole: "grill", AssigneeID: "u1"}
		require.NoError(t, store.CreateCompletion(ctx, c))
		_, err := store.Approve(ctx, c.ID, "admin", 5)
		require.NoError(t, err)
	}

	balance, err := store.Balance(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 15, balance.Points)
}

func TestBalance_UnknownUserIsZero(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	balance, err := store.Balance(ctx, "nobody")
	require.NoError(t, err)
	assert.Equal(t, "nobody", balance.UserID)
	assert.Equal(t, 0, balance.Points)
}

func TestTopBalances_OrderingAndLimit(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	credit := func(user string, times int) {
		for i := 0; i < times; i++ {
			c := &Completion{EventID: fmt.Sprintf("%s-e%d", user, i), DutyRole: "grill", AssigneeID: user}
			require.NoError(t, store.CreateCompletion(ctx, c))
			_, err := store.Approve(ctx, c.ID, "admin", 5)
			require.NoError(t, err)
		}
	}
	credit("low", 1)
	credit("high", 3)
	credit("mid", 2)

	all, err := store.TopBalances(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "high", all[0].UserID)
	assert.Equal(t, "mid", all[1].UserID)
	assert.Equal(t, "low", all[2].UserID)

	top2, err := store.TopBalances(ctx, 2)
	require.NoError(t, err)
	require.Len(t, top2, 2)
	assert.Equal(t, "high", top2[0].UserID)
	assert.Equal(t, "mid", top2[1].UserID)
}

func TestListIndexes(t *testing.T) {
	ctx := context.Background()
	store := newTestStore(t)

	a := &Completion{EventID: "e1", DutyRole: "grill", AssigneeID: "u1"}
	b := &Completion{EventID: "e1", DutyRole: "kiosk", AssigneeID: "u2"}
	c := &Completion{EventID: "e2", DutyRole: "grill", AssigneeID: "u1"}
	require.NoError(t, store.CreateCompletion(ctx, a))
	require.NoError(t, store.CreateCompletion(ctx, b))
	require.NoError(t, store.CreateCompletion(ctx, c))

	byEvent, err := store.ListByEvent(ctx, "e1")
	require.NoError(t, err)
	assert.Len(t, byEvent, 2)

	byAssignee, err := store.ListByAssignee(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, byAssignee, 2)

	_, err = store.Approve(ctx, a.ID, "admin", 5)
	require.NoError(t, err)

	pending, err := store.ListAwaitingApproval(ctx)
	require.NoError(t, err)
	require.Len(t, pending, 2)
	for _, p := range pending {
		assert.Equal(t, "completed", p.Status)
	}
}

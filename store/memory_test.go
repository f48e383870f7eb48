// The memory store must honor the same conditional-update contract as
// the Mongo store; these tests pin that contract down.
// File: store/memory_test.go
package store

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sports-scheduler/models"
)

func newTestSession(t *testing.T, stores *Stores, slots int) *models.Session {
	t.Helper()
	sess := &models.Session{
		SportID:        primitive.NewObjectID(),
		CreatorID:      primitive.NewObjectID(),
		Date:           "2030-01-01",
		Time:           "10:00",
		Venue:          "Court 1",
		Slots:          slots,
		Players:        []primitive.ObjectID{},
		PendingPlayers: []primitive.ObjectID{},
	}
	require.NoError(t, stores.Sessions.Insert(context.Background(), sess))
	return sess
}

func TestAddPendingPlayer_Preconditions(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	sess := newTestSession(t, stores, 1)
	user := primitive.NewObjectID()

	// unknown session
	ok, err := stores.Sessions.AddPendingPlayer(ctx, primitive.NewObjectID(), user)
	require.NoError(t, err)
	assert.False(t, ok)

	// creator may not request
	ok, err = stores.Sessions.AddPendingPlayer(ctx, sess.ID, sess.CreatorID)
	require.NoError(t, err)
	assert.False(t, ok)

	// first request lands
	ok, err = stores.Sessions.AddPendingPlayer(ctx, sess.ID, user)
	require.NoError(t, err)
	assert.True(t, ok)

	// duplicate request is refused
	ok, err = stores.Sessions.AddPendingPlayer(ctx, sess.ID, user)
	require.NoError(t, err)
	assert.False(t, ok)

	got, err := stores.Sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{user}, got.PendingPlayers)
}

func TestAddPendingPlayer_RefusedWhenFull(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	sess := newTestSession(t, stores, 1)

	first := primitive.NewObjectID()
	ok, err := stores.Sessions.ApprovePlayer(ctx, sess.ID, first)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = stores.Sessions.AddPendingPlayer(ctx, sess.ID, primitive.NewObjectID())
	require.NoError(t, err)
	assert.False(t, ok, "full session must refuse new requests")
}

func TestApprovePlayer_MovesPendingToConfirmed(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	sess := newTestSession(t, stores, 2)
	user := primitive.NewObjectID()

	ok, err := stores.Sessions.AddPendingPlayer(ctx, sess.ID, user)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = stores.Sessions.ApprovePlayer(ctx, sess.ID, user)
	require.NoError(t, err)
	assert.True(t, ok)

	got, err := stores.Sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{user}, got.Players)
	assert.Empty(t, got.PendingPlayers)

	// approving again is refused by the already-confirmed guard
	ok, err = stores.Sessions.ApprovePlayer(ctx, sess.ID, user)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestApprovePlayer_NeverExceedsCapacity(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	const slots = 3
	const contenders = 20
	sess := newTestSession(t, stores, slots)

	var wg sync.WaitGroup
	wg.Add(contenders)
	for i := 0; i < contenders; i++ {
		go func() {
			defer wg.Done()
			_, _ = stores.Sessions.ApprovePlayer(ctx, sess.ID, primitive.NewObjectID())
		}()
	}
	wg.Wait()

	got, err := stores.Sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Len(t, got.Players, slots, "concurrent approvals must stop exactly at capacity")
}

func TestRemoveParticipant_ReturnsPreImage(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	sess := newTestSession(t, stores, 2)
	member := primitive.NewObjectID()
	pending := primitive.NewObjectID()

	ok, err := stores.Sessions.ApprovePlayer(ctx, sess.ID, member)
	require.NoError(t, err)
	require.True(t, ok)
	ok, err = stores.Sessions.AddPendingPlayer(ctx, sess.ID, pending)
	require.NoError(t, err)
	require.True(t, ok)

	before, err := stores.Sessions.RemoveParticipant(ctx, sess.ID, member)
	require.NoError(t, err)
	assert.True(t, before.HasPlayer(member), "pre-image must show the membership that was removed")

	got, err := stores.Sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Players)
	assert.Equal(t, []primitive.ObjectID{pending}, got.PendingPlayers)

	// pending-only user: both lists are scrubbed, pre-image shows no membership
	before, err = stores.Sessions.RemoveParticipant(ctx, sess.ID, pending)
	require.NoError(t, err)
	assert.False(t, before.HasPlayer(pending))

	got, err = stores.Sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.Empty(t, got.PendingPlayers)
}

func TestCancel_SetsFlagAndReason(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	sess := newTestSession(t, stores, 2)

	require.NoError(t, stores.Sessions.Cancel(ctx, sess.ID, "rained out"))

	got, err := stores.Sessions.GetByID(ctx, sess.ID)
	require.NoError(t, err)
	assert.True(t, got.Cancelled)
	assert.Equal(t, "rained out", got.CancelReason)

	assert.ErrorIs(t, stores.Sessions.Cancel(ctx, primitive.NewObjectID(), "x"), ErrNotFound)
}

func TestUserStore_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()

	u := &models.User{Name: "A", Email: "a@example.com"}
	require.NoError(t, stores.Users.Insert(ctx, u))
	assert.False(t, u.ID.IsZero(), "insert must assign an id")

	dup := &models.User{Name: "B", Email: "a@example.com"}
	assert.ErrorIs(t, stores.Users.Insert(ctx, dup), ErrDuplicate)
}

func TestSportStore_ListSortedAndFiltered(t *testing.T) {
	ctx := context.Background()
	stores := NewMemoryStores()
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	for _, s := range []models.Sport{
		{Name: "Tennis", CreatedBy: alice},
		{Name: "Badminton", CreatedBy: bob},
		{Name: "Cricket", CreatedBy: alice},
	} {
		sp := s
		require.NoError(t, stores.Sports.Insert(ctx, &sp))
	}

	all, err := stores.Sports.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Badminton", all[0].Name)
	assert.Equal(t, "Cricket", all[1].Name)
	assert.Equal(t, "Tennis", all[2].Name)

	mine, err := stores.Sports.List(ctx, &alice)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}

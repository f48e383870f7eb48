// File: services/sport_service_test.go
package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sports-scheduler/models"
	"sports-scheduler/store"
)

func newSportFixture(t *testing.T) (*SportService, *store.Stores, *models.User, *models.User) {
	t.Helper()
	stores := store.NewMemoryStores()
	svc := NewSportService(stores.Users, stores.Sports)

	admin := &models.User{Name: "admin", Email: "admin@example.com", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, stores.Users.Insert(context.Background(), admin))
	regular := &models.User{Name: "regular", Email: "regular@example.com", PasswordHash: "x"}
	require.NoError(t, stores.Users.Insert(context.Background(), regular))

	return svc, stores, admin, regular
}

func TestSportCreate_AdminOnly(t *testing.T) {
	svc, _, admin, regular := newSportFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, regular.ID, "Tennis")
	assert.ErrorIs(t, err, ErrAdminOnly)

	_, err = svc.Create(ctx, primitive.NewObjectID(), "Tennis")
	assert.ErrorIs(t, err, ErrAdminOnly)

	sp, err := svc.Create(ctx, admin.ID, "Tennis")
	require.NoError(t, err)
	assert.Equal(t, "Tennis", sp.Name)
	assert.Equal(t, admin.ID, sp.CreatedBy)
}

func TestSportCreate_Duplicate(t *testing.T) {
	svc, _, admin, _ := newSportFixture(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, admin.ID, "Tennis")
	require.NoError(t, err)

	_, err = svc.Create(ctx, admin.ID, "Tennis")
	assert.ErrorIs(t, err, ErrSportExists)

	_, err = svc.Create(ctx, admin.ID, "")
	assert.ErrorIs(t, err, ErrMissingFields)
}

func TestSportResolve(t *testing.T) {
	svc, _, admin, _ := newSportFixture(t)
	ctx := context.Background()

	sp, err := svc.Create(ctx, admin.ID, "Badminton")
	require.NoError(t, err)

	byID, err := svc.Resolve(ctx, sp.ID.Hex())
	require.NoError(t, err)
	assert.Equal(t, sp.ID, byID.ID)

	byName, err := svc.Resolve(ctx, "Badminton")
	require.NoError(t, err)
	assert.Equal(t, sp.ID, byName.ID)

	// a well-formed hex id that matches nothing falls through to the
	// name lookup before failing
	_, err = svc.Resolve(ctx, primitive.NewObjectID().Hex())
	assert.ErrorIs(t, err, ErrSportNotFound)

	_, err = svc.Resolve(ctx, "Quidditch")
	assert.ErrorIs(t, err, ErrSportNotFound)
}

func TestSportList_FilterByCreator(t *testing.T) {
	svc, stores, admin, _ := newSportFixture(t)
	ctx := context.Background()

	other := &models.User{Name: "admin2", Email: "admin2@example.com", PasswordHash: "x", IsAdmin: true}
	require.NoError(t, stores.Users.Insert(ctx, other))

	_, err := svc.Create(ctx, admin.ID, "Tennis")
	require.NoError(t, err)
	_, err = svc.Create(ctx, other.ID, "Cricket")
	require.NoError(t, err)

	all, err := svc.List(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := svc.List(ctx, &admin.ID)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Tennis", mine[0].Name)
}

// Package store owns persistence for users, sports and sessions.
// File: store/store.go
package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sports-scheduler/models"
)

var (
	// ErrNotFound is returned when a referenced document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrDuplicate is returned when a unique index rejects an insert.
	ErrDuplicate = errors.New("duplicate document")
)

// UserStore persists accounts.
type UserStore interface {
	Insert(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error)
}

// SportStore persists sport categories.
type SportStore interface {
	Insert(ctx context.Context, s *models.Sport) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Sport, error)
	GetByName(ctx context.Context, name string) (*models.Sport, error)
	// List returns sports sorted by name; createdBy narrows to one creator.
	List(ctx context.Context, createdBy *primitive.ObjectID) ([]models.Sport, error)
}

// SessionStore persists play sessions. The conditional mutators return
// false (without error) when the document exists but the update's
// preconditions did not hold, so callers can re-read and classify the
// failure. Each mutator is a single document update: two racing calls can
// never take the confirmed-player list past capacity.
type SessionStore interface {
	Insert(ctx context.Context, s *models.Session) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error)
	List(ctx context.Context) ([]models.Session, error)

	// AddPendingPlayer files a join request. Preconditions: not cancelled,
	// userID is not the creator, not confirmed, not already pending, and
	// the confirmed list is below capacity.
	AddPendingPlayer(ctx context.Context, sessionID, userID primitive.ObjectID) (bool, error)

	// ApprovePlayer moves userID from pending to confirmed. Preconditions:
	// not cancelled, userID not already confirmed, capacity remains.
	// The pending entry is removed even if it was never there.
	ApprovePlayer(ctx context.Context, sessionID, userID primitive.ObjectID) (bool, error)

	// PullPendingPlayer drops a join request; no-op if userID was not pending.
	PullPendingPlayer(ctx context.Context, sessionID, userID primitive.ObjectID) error

	// RemoveParticipant pulls userID from both the confirmed and pending
	// lists and returns the document as it was before the update.
	RemoveParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) (*models.Session, error)

	// Cancel marks the session cancelled with the given reason.
	Cancel(ctx context.Context, sessionID primitive.ObjectID, reason string) error
}

// Stores bundles the three collections behind one injection point.
type Stores struct {
	Users    UserStore
	Sports   SportStore
	Sessions SessionStore
}

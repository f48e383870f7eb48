// In-memory implementation of the store interfaces. It mirrors the
// conditional-update semantics of the Mongo stores under a mutex, so the
// services and handlers can be tested without a running database.
// File: store/memory.go
package store

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sports-scheduler/models"
)

// NewMemoryStores returns an empty, fully in-memory Stores bundle.
func NewMemoryStores() *Stores {
	return &Stores{
		Users:    &memoryUserStore{users: make(map[primitive.ObjectID]models.User)},
		Sports:   &memorySportStore{sports: make(map[primitive.ObjectID]models.Sport)},
		Sessions: &memorySessionStore{sessions: make(map[primitive.ObjectID]models.Session)},
	}
}

// ----------------------- users -----------------------

type memoryUserStore struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]models.User
}

func (s *memoryUserStore) Insert(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return ErrDuplicate
		}
	}
	u.ID = primitive.NewObjectID()
	u.CreatedAt = time.Now().UTC()
	s.users[u.ID] = *u
	return nil
}

func (s *memoryUserStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (s *memoryUserStore) GetByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memoryUserStore) GetByIDs(_ context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			result = append(result, u)
		}
	}
	return result, nil
}

// ----------------------- sports -----------------------

type memorySportStore struct {
	mu     sync.Mutex
	sports map[primitive.ObjectID]models.Sport
}

func (s *memorySportStore) Insert(_ context.Context, sp *models.Sport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.sports {
		if existing.Name == sp.Name {
			return ErrDuplicate
		}
	}
	sp.ID = primitive.NewObjectID()
	sp.CreatedAt = time.Now().UTC()
	s.sports[sp.ID] = *sp
	return nil
}

func (s *memorySportStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Sport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sp, ok := s.sports[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &sp, nil
}

func (s *memorySportStore) GetByName(_ context.Context, name string) (*models.Sport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, sp := range s.sports {
		if sp.Name == name {
			out := sp
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

func (s *memorySportStore) List(_ context.Context, createdBy *primitive.ObjectID) ([]models.Sport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []models.Sport
	for _, sp := range s.sports {
		if createdBy != nil && sp.CreatedBy != *createdBy {
			continue
		}
		result = append(result, sp)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name < result[j].Name })
	return result, nil
}

// ----------------------- sessions -----------------------

type memorySessionStore struct {
	mu       sync.Mutex
	sessions map[primitive.ObjectID]models.Session
}

func copySession(s models.Session) models.Session {
	s.InitialPlayers = append([]string(nil), s.InitialPlayers...)
	s.Players = append([]primitive.ObjectID(nil), s.Players...)
	s.PendingPlayers = append([]primitive.ObjectID(nil), s.PendingPlayers...)
	return s
}

func (s *memorySessionStore) Insert(_ context.Context, sess *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess.ID = primitive.NewObjectID()
	sess.CreatedAt = time.Now().UTC()
	s.sessions[sess.ID] = copySession(*sess)
	return nil
}

func (s *memorySessionStore) GetByID(_ context.Context, id primitive.ObjectID) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := copySession(sess)
	return &out, nil
}

func (s *memorySessionStore) List(_ context.Context) ([]models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]models.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		result = append(result, copySession(sess))
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Date != result[j].Date {
			return result[i].Date < result[j].Date
		}
		return result[i].Time < result[j].Time
	})
	return result, nil
}

func (s *memorySessionStore) AddPendingPlayer(_ context.Context, sessionID, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if sess.Cancelled || sess.CreatorID == userID || sess.HasPlayer(userID) ||
		sess.IsPending(userID) || sess.IsFull() {
		return false, nil
	}
	sess.PendingPlayers = append(sess.PendingPlayers, userID)
	s.sessions[sessionID] = sess
	return true, nil
}

func (s *memorySessionStore) ApprovePlayer(_ context.Context, sessionID, userID primitive.ObjectID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return false, nil
	}
	if sess.Cancelled || sess.HasPlayer(userID) || sess.IsFull() {
		return false, nil
	}
	sess.PendingPlayers = removeID(sess.PendingPlayers, userID)
	sess.Players = append(sess.Players, userID)
	s.sessions[sessionID] = sess
	return true, nil
}

func (s *memorySessionStore) PullPendingPlayer(_ context.Context, sessionID, userID primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	sess.PendingPlayers = removeID(sess.PendingPlayers, userID)
	s.sessions[sessionID] = sess
	return nil
}

func (s *memorySessionStore) RemoveParticipant(_ context.Context, sessionID, userID primitive.ObjectID) (*models.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return nil, ErrNotFound
	}
	before := copySession(sess)
	sess.Players = removeID(sess.Players, userID)
	sess.PendingPlayers = removeID(sess.PendingPlayers, userID)
	s.sessions[sessionID] = sess
	return &before, nil
}

func (s *memorySessionStore) Cancel(_ context.Context, sessionID primitive.ObjectID, reason string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return ErrNotFound
	}
	sess.Cancelled = true
	sess.CancelReason = reason
	s.sessions[sessionID] = sess
	return nil
}

func removeID(ids []primitive.ObjectID, target primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, id := range ids {
		if id != target {
			out = append(out, id)
		}
	}
	return out
}

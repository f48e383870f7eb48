// File: services/session_service.go
package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"sports-scheduler/logger"
	"sports-scheduler/models"
	"sports-scheduler/store"
)

// SessionService enforces the session lifecycle: creation, join requests,
// approvals, rejections, leaving and cancellation, plus the dashboard
// partition. Capacity and membership preconditions are re-checked by the
// store inside a single conditional update, so two racing approvals can
// never overfill a session; the read-before-update here exists to report
// the precise reason when a precondition fails.
type SessionService struct {
	stores   *store.Stores
	sports   *SportService
	notifier Notifier

	// now is swapped out by tests that need a fixed clock.
	now func() time.Time
}

// NewSessionService wires the lifecycle service. A nil notifier is
// replaced with a no-op.
func NewSessionService(stores *store.Stores, sports *SportService, notifier Notifier) *SessionService {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	return &SessionService{
		stores:   stores,
		sports:   sports,
		notifier: notifier,
		now:      time.Now,
	}
}

// ----------------------- creation -----------------------

// Create schedules a new session. The sport reference may be a hex id or
// an exact sport name. initialPlayers is a comma-separated list of
// free-text names; empty entries are dropped.
func (s *SessionService) Create(ctx context.Context, creatorID primitive.ObjectID, sportRef, date, timeStr, venue, initialPlayers string, slots int) (*models.Session, error) {
	if sportRef == "" || date == "" || timeStr == "" || venue == "" {
		return nil, ErrMissingFields
	}
	if slots < 1 {
		return nil, ErrInvalidSlots
	}

	sport, err := s.sports.Resolve(ctx, sportRef)
	if err != nil {
		return nil, err
	}

	sess := &models.Session{
		SportID:        sport.ID,
		CreatorID:      creatorID,
		Date:           date,
		Time:           timeStr,
		Venue:          venue,
		Slots:          slots,
		InitialPlayers: splitPlayerNames(initialPlayers),
		Players:        []primitive.ObjectID{},
		PendingPlayers: []primitive.ObjectID{},
	}
	if err := s.stores.Sessions.Insert(ctx, sess); err != nil {
		return nil, err
	}

	logger.Info.Printf("Session %s created: sport=%s date=%s time=%s slots=%d",
		sess.ID.Hex(), sport.Name, date, timeStr, slots)
	return sess, nil
}

func splitPlayerNames(raw string) []string {
	names := []string{}
	for _, part := range strings.Split(raw, ",") {
		if name := strings.TrimSpace(part); name != "" {
			names = append(names, name)
		}
	}
	return names
}

// ----------------------- dashboard -----------------------

// ListForUser partitions every session into the three dashboard lists:
// created (the user's own), joined (confirmed member), and available
// (future, not cancelled, has room, and the user is neither creator nor
// member). A session the user is merely pending on still shows as
// available; the join endpoint rejects the duplicate request.
func (s *SessionService) ListForUser(ctx context.Context, userID primitive.ObjectID) (*models.Dashboard, error) {
	sessions, err := s.stores.Sessions.List(ctx)
	if err != nil {
		return nil, err
	}

	sportNames, err := s.sportNameIndex(ctx)
	if err != nil {
		return nil, err
	}
	userIndex, err := s.playerIndex(ctx, sessions)
	if err != nil {
		return nil, err
	}

	now := s.now()
	dash := &models.Dashboard{
		Created:   []models.SessionView{},
		Joined:    []models.SessionView{},
		Available: []models.SessionView{},
	}
	for i := range sessions {
		sess := &sessions[i]
		view := buildView(sess, sportNames, userIndex)

		switch {
		case sess.CreatorID == userID:
			dash.Created = append(dash.Created, view)
		case sess.HasPlayer(userID):
			dash.Joined = append(dash.Joined, view)
		case !sess.Cancelled && sess.IsFuture(now) && !sess.IsFull():
			dash.Available = append(dash.Available, view)
		}
	}
	return dash, nil
}

func (s *SessionService) sportNameIndex(ctx context.Context) (map[primitive.ObjectID]string, error) {
	sports, err := s.stores.Sports.List(ctx, nil)
	if err != nil {
		return nil, err
	}
	names := make(map[primitive.ObjectID]string, len(sports))
	for _, sp := range sports {
		names[sp.ID] = sp.Name
	}
	return names, nil
}

// playerIndex resolves every confirmed player across all sessions in one
// store round trip.
func (s *SessionService) playerIndex(ctx context.Context, sessions []models.Session) (map[primitive.ObjectID]models.UserSummary, error) {
	seen := make(map[primitive.ObjectID]struct{})
	var ids []primitive.ObjectID
	for i := range sessions {
		for _, p := range sessions[i].Players {
			if _, ok := seen[p]; !ok {
				seen[p] = struct{}{}
				ids = append(ids, p)
			}
		}
	}
	users, err := s.stores.Users.GetByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	index := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for i := range users {
		index[users[i].ID] = users[i].Summary()
	}
	return index, nil
}

func buildView(sess *models.Session, sportNames map[primitive.ObjectID]string, users map[primitive.ObjectID]models.UserSummary) models.SessionView {
	sportName, ok := sportNames[sess.SportID]
	if !ok {
		sportName = "Unknown"
	}

	joined := make([]models.UserSummary, 0, len(sess.Players))
	for _, p := range sess.Players {
		if u, ok := users[p]; ok {
			joined = append(joined, u)
		} else {
			joined = append(joined, models.UserSummary{ID: p.Hex()})
		}
	}

	return models.SessionView{
		ID:             sess.ID.Hex(),
		Sport:          sportName,
		Date:           sess.Date,
		Time:           sess.Time,
		Venue:          sess.Venue,
		InitialPlayers: sess.InitialPlayers,
		Cancelled:      sess.Cancelled,
		CancelReason:   sess.CancelReason,
		NeededPlayers:  sess.RemainingSlots(),
		PendingCount:   len(sess.PendingPlayers),
		JoinedCount:    len(sess.Players),
		JoinedPlayers:  joined,
	}
}

// ----------------------- join workflow -----------------------

// RequestJoin files a join request for userID. The request lands on the
// pending list until the creator or an admin decides it.
func (s *SessionService) RequestJoin(ctx context.Context, sessionID, userID primitive.ObjectID) error {
	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.classifyJoin(sess, userID); err != nil {
		return err
	}

	ok, err := s.stores.Sessions.AddPendingPlayer(ctx, sessionID, userID)
	if err != nil {
		return err
	}
	if !ok {
		// lost a race since the read above; re-read for the real reason
		sess, err = s.getSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := s.classifyJoin(sess, userID); err != nil {
			return err
		}
		return ErrNoSlots
	}

	s.notifier.Notify([]string{sess.CreatorID.Hex()}, map[string]interface{}{
		"action":    "joinRequested",
		"sessionId": sessionID.Hex(),
		"userId":    userID.Hex(),
	})
	logger.Info.Printf("Join request: session=%s user=%s", sessionID.Hex(), userID.Hex())
	return nil
}

// classifyJoin maps the session state to the join-request precondition
// errors, in the order the original workflow checks them.
func (s *SessionService) classifyJoin(sess *models.Session, userID primitive.ObjectID) error {
	switch {
	case sess.Cancelled:
		return ErrSessionCancelled
	case !sess.IsFuture(s.now()):
		return ErrPastSession
	case sess.CreatorID == userID:
		return ErrCreatorJoin
	case sess.HasPlayer(userID):
		return ErrAlreadyJoined
	case sess.IsPending(userID):
		return ErrAlreadyRequested
	case sess.IsFull():
		return ErrNoSlots
	}
	return nil
}

// Approve confirms a pending player. Only the creator or an admin may
// approve. Approving a user who is already confirmed just clears any
// stale pending entry. The capacity check is part of the store update, so
// an approval can never take the session past its slot count.
func (s *SessionService) Approve(ctx context.Context, sessionID, actorID, targetID primitive.ObjectID) error {
	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, sess, actorID); err != nil {
		return err
	}
	if sess.Cancelled {
		return ErrSessionCancelled
	}
	if sess.IsFull() {
		return ErrNoSlots
	}

	ok, err := s.stores.Sessions.ApprovePlayer(ctx, sessionID, targetID)
	if err != nil {
		return err
	}
	if !ok {
		sess, err = s.getSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if sess.Cancelled {
			return ErrSessionCancelled
		}
		if sess.HasPlayer(targetID) {
			// duplicate approval; just make sure no pending entry lingers
			return s.stores.Sessions.PullPendingPlayer(ctx, sessionID, targetID)
		}
		return ErrNoSlots
	}

	s.notifier.Notify([]string{targetID.Hex()}, map[string]interface{}{
		"action":    "approved",
		"sessionId": sessionID.Hex(),
	})
	logger.Info.Printf("Approved: session=%s player=%s by=%s", sessionID.Hex(), targetID.Hex(), actorID.Hex())
	return nil
}

// Reject drops a pending join request. Rejecting a user who is not
// pending is a no-op; the same user may request to join again later.
func (s *SessionService) Reject(ctx context.Context, sessionID, actorID, targetID primitive.ObjectID) error {
	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, sess, actorID); err != nil {
		return err
	}
	if sess.Cancelled {
		return ErrSessionCancelled
	}

	if err := s.stores.Sessions.PullPendingPlayer(ctx, sessionID, targetID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	s.notifier.Notify([]string{targetID.Hex()}, map[string]interface{}{
		"action":    "rejected",
		"sessionId": sessionID.Hex(),
	})
	return nil
}

// Leave removes userID from both the confirmed and pending lists. It
// reports ErrNotParticipant when the user was not a confirmed player
// before the removal; a pending-only user gets that error even though
// their request has been withdrawn. Leaving a cancelled session is still
// permitted.
func (s *SessionService) Leave(ctx context.Context, sessionID, userID primitive.ObjectID) error {
	before, err := s.stores.Sessions.RemoveParticipant(ctx, sessionID, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}
	if !before.HasPlayer(userID) {
		return ErrNotParticipant
	}
	logger.Info.Printf("Left session: session=%s user=%s", sessionID.Hex(), userID.Hex())
	return nil
}

// Cancel marks a session cancelled. Irreversible; existing members are
// not evicted but no further join/approve/reject mutations are accepted.
func (s *SessionService) Cancel(ctx context.Context, sessionID, actorID primitive.ObjectID, reason string) error {
	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if err := s.authorize(ctx, sess, actorID); err != nil {
		return err
	}
	if reason == "" {
		reason = "Cancelled"
	}

	if err := s.stores.Sessions.Cancel(ctx, sessionID, reason); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrSessionNotFound
		}
		return err
	}

	var affected []string
	for _, p := range sess.Players {
		affected = append(affected, p.Hex())
	}
	for _, p := range sess.PendingPlayers {
		affected = append(affected, p.Hex())
	}
	if len(affected) > 0 {
		s.notifier.Notify(affected, map[string]interface{}{
			"action":    "sessionCancelled",
			"sessionId": sessionID.Hex(),
			"reason":    reason,
		})
	}
	logger.Info.Printf("Session cancelled: session=%s by=%s reason=%q", sessionID.Hex(), actorID.Hex(), reason)
	return nil
}

// PendingRequests resolves the pending list to user summaries, in request
// order. Owner-or-admin only.
func (s *SessionService) PendingRequests(ctx context.Context, sessionID, actorID primitive.ObjectID) ([]models.UserSummary, error) {
	sess, err := s.getSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(ctx, sess, actorID); err != nil {
		return nil, err
	}

	users, err := s.stores.Users.GetByIDs(ctx, sess.PendingPlayers)
	if err != nil {
		return nil, err
	}
	byID := make(map[primitive.ObjectID]models.UserSummary, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].Summary()
	}

	pending := make([]models.UserSummary, 0, len(sess.PendingPlayers))
	for _, id := range sess.PendingPlayers {
		if u, ok := byID[id]; ok {
			pending = append(pending, u)
		} else {
			pending = append(pending, models.UserSummary{ID: id.Hex()})
		}
	}
	return pending, nil
}

// Get returns a session by id.
func (s *SessionService) Get(ctx context.Context, sessionID primitive.ObjectID) (*models.Session, error) {
	return s.getSession(ctx, sessionID)
}

// ----------------------- helpers -----------------------

func (s *SessionService) getSession(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	sess, err := s.stores.Sessions.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	return sess, nil
}

// authorize passes when the actor is the session creator or an admin.
func (s *SessionService) authorize(ctx context.Context, sess *models.Session, actorID primitive.ObjectID) error {
	if sess.CreatorID == actorID {
		return nil
	}
	actor, err := s.stores.Users.GetByID(ctx, actorID)
	if err != nil || !actor.IsAdmin {
		return ErrNotAuthorized
	}
	return nil
}

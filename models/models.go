// Package models defines the data structures used across the application.
// File: models/models.go
package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ----------------------- user model -----------------------

// User is an account. Users are created on registration and are
// immutable afterwards; there are no update or delete paths.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	IsAdmin      bool               `bson:"is_admin" json:"isAdmin"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}

// UserSummary is the wire form of a user (never carries credentials).
type UserSummary struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	IsAdmin bool   `json:"isAdmin"`
}

// Summary converts a stored user to its wire form.
func (u *User) Summary() UserSummary {
	return UserSummary{
		ID:      u.ID.Hex(),
		Name:    u.Name,
		Email:   u.Email,
		IsAdmin: u.IsAdmin,
	}
}

// ----------------------- sport model -----------------------

// Sport is a named category an admin has made available for sessions.
type Sport struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	CreatedBy primitive.ObjectID `bson:"created_by" json:"createdBy"`
	CreatedAt time.Time          `bson:"created_at" json:"createdAt"`
}

// ----------------------- session model -----------------------

// startTimeLayout matches the date and time strings the client submits
// ("2006-01-02" and "15:04" from the HTML date/time inputs).
const startTimeLayout = "2006-01-02T15:04"

// Session is a scheduled occurrence of a sport at a date/time/venue.
// Players holds confirmed participants, PendingPlayers the join requests
// awaiting a decision. The creator is never a member of either list.
type Session struct {
	ID             primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	SportID        primitive.ObjectID   `bson:"sport_id" json:"sportId"`
	CreatorID      primitive.ObjectID   `bson:"creator_id" json:"creatorId"`
	Date           string               `bson:"date" json:"date"`
	Time           string               `bson:"time" json:"time"`
	Venue          string               `bson:"venue" json:"venue"`
	Slots          int                  `bson:"slots" json:"slots"`
	InitialPlayers []string             `bson:"initial_players" json:"initialPlayers"`
	Players        []primitive.ObjectID `bson:"players" json:"players"`
	PendingPlayers []primitive.ObjectID `bson:"pending_players" json:"pendingPlayers"`
	Cancelled      bool                 `bson:"cancelled" json:"cancelled"`
	CancelReason   string               `bson:"cancel_reason,omitempty" json:"cancelReason,omitempty"`
	CreatedAt      time.Time            `bson:"created_at" json:"createdAt"`
}

// StartTime combines the Date and Time strings into a timestamp in the
// server's local zone. Unparseable input yields the zero time, which all
// callers treat as "in the past".
func (s *Session) StartTime() time.Time {
	t, err := time.ParseInLocation(startTimeLayout, s.Date+"T"+s.Time, time.Local)
	if err != nil {
		return time.Time{}
	}
	return t
}

// IsFuture reports whether the session starts strictly after now.
func (s *Session) IsFuture(now time.Time) bool {
	return s.StartTime().After(now)
}

// HasPlayer reports whether id is a confirmed participant.
func (s *Session) HasPlayer(id primitive.ObjectID) bool {
	for _, p := range s.Players {
		if p == id {
			return true
		}
	}
	return false
}

// IsPending reports whether id has an undecided join request.
func (s *Session) IsPending(id primitive.ObjectID) bool {
	for _, p := range s.PendingPlayers {
		if p == id {
			return true
		}
	}
	return false
}

// IsFull reports whether the confirmed list has reached capacity.
func (s *Session) IsFull() bool {
	return len(s.Players) >= s.Slots
}

// RemainingSlots is how many confirmed players the session still needs.
func (s *Session) RemainingSlots() int {
	if n := s.Slots - len(s.Players); n > 0 {
		return n
	}
	return 0
}

// ----------------------- dashboard views -----------------------

// SessionView is the enriched wire form of a session used by the
// dashboard lists and the reports.
type SessionView struct {
	ID             string        `json:"id"`
	Sport          string        `json:"sport"`
	Date           string        `json:"date"`
	Time           string        `json:"time"`
	Venue          string        `json:"venue"`
	InitialPlayers []string      `json:"initialPlayers"`
	Cancelled      bool          `json:"cancelled"`
	CancelReason   string        `json:"cancelReason"`
	NeededPlayers  int           `json:"neededPlayers"`
	PendingCount   int           `json:"pendingCount"`
	JoinedCount    int           `json:"joinedCount"`
	JoinedPlayers  []UserSummary `json:"joinedPlayers"`
}

// Dashboard partitions every session into exactly one of three lists
// relative to a given user.
type Dashboard struct {
	Created   []SessionView `json:"created"`
	Joined    []SessionView `json:"joined"`
	Available []SessionView `json:"available"`
}

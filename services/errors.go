// Package services holds the application's business rules.
// File: services/errors.go
package services

import "errors"

// Sentinel errors surfaced to the controllers, which map them onto HTTP
// status codes. Messages double as the client-facing error strings.
var (
	ErrMissingFields      = errors.New("missing required fields")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")

	ErrAdminOnly   = errors.New("admin only")
	ErrSportExists = errors.New("sport already exists")

	ErrSportNotFound   = errors.New("sport not found")
	ErrSessionNotFound = errors.New("session not found")

	ErrInvalidSlots     = errors.New("slots must be at least 1")
	ErrSessionCancelled = errors.New("session is cancelled")
	ErrPastSession      = errors.New("cannot join past session")
	ErrCreatorJoin      = errors.New("creator already in session")
	ErrAlreadyJoined    = errors.New("already joined")
	ErrAlreadyRequested = errors.New("already requested to join")
	ErrNoSlots          = errors.New("no slots available")
	ErrNotParticipant   = errors.New("you are not part of this session")
	ErrNotAuthorized    = errors.New("only creator or admin")
)

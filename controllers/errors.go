// Package controllers provides the HTTP handlers for the scheduler API.
// File: controllers/errors.go
package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sports-scheduler/logger"
	"sports-scheduler/services"
)

// statusFor maps service errors onto HTTP status codes. Anything
// unrecognized is a storage or programming failure and reports 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrMissingFields),
		errors.Is(err, services.ErrInvalidSlots),
		errors.Is(err, services.ErrSportNotFound),
		errors.Is(err, services.ErrSessionCancelled),
		errors.Is(err, services.ErrPastSession),
		errors.Is(err, services.ErrCreatorJoin),
		errors.Is(err, services.ErrAlreadyJoined),
		errors.Is(err, services.ErrAlreadyRequested),
		errors.Is(err, services.ErrNoSlots),
		errors.Is(err, services.ErrNotParticipant):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, services.ErrAdminOnly),
		errors.Is(err, services.ErrNotAuthorized):
		return http.StatusForbidden
	case errors.Is(err, services.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrEmailTaken),
		errors.Is(err, services.ErrSportExists):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the error as JSON. Internal failures are logged in
// full but reported to the client without detail.
func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		logger.Error.Printf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// File: controllers/session_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sports-scheduler/middleware"
	"sports-scheduler/services"
	"sports-scheduler/websocket"
)

// SessionController handles the session lifecycle endpoints.
type SessionController struct {
	Sessions *services.SessionService
}

// NewSessionController creates a SessionController.
func NewSessionController(sessions *services.SessionService) *SessionController {
	return &SessionController{Sessions: sessions}
}

type createSessionRequest struct {
	Sport         string `json:"sport"`
	Date          string `json:"date"`
	Time          string `json:"time"`
	Venue         string `json:"venue"`
	Players       string `json:"players"`
	NeededPlayers *int   `json:"neededPlayers"`
}

// Create schedules a session with the caller as creator.
func (sc *SessionController) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var in createSessionRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, services.ErrMissingFields)
		return
	}
	if in.Sport == "" || in.Date == "" || in.Time == "" || in.Venue == "" || in.NeededPlayers == nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Missing required fields (sport, date, time, venue, neededPlayers)",
		})
		return
	}

	sess, err := sc.Sessions.Create(c.Request.Context(), userID,
		in.Sport, in.Date, in.Time, in.Venue, in.Players, *in.NeededPlayers)
	if err != nil {
		respondError(c, err)
		return
	}

	websocket.PublishSessionCreated()
	c.JSON(http.StatusCreated, gin.H{
		"message": "Session created",
		"session": gin.H{"id": sess.ID.Hex()},
	})
}

// List returns the caller's dashboard: created, joined and available.
func (sc *SessionController) List(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	dash, err := sc.Sessions.ListForUser(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}

// Join files a join request for the caller.
func (sc *SessionController) Join(c *gin.Context) {
	userID, sessionID, ok := sc.idsFromRequest(c)
	if !ok {
		return
	}
	if err := sc.Sessions.RequestJoin(c.Request.Context(), sessionID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Join request sent"})
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// Cancel marks the session cancelled (creator or admin only).
func (sc *SessionController) Cancel(c *gin.Context) {
	userID, sessionID, ok := sc.idsFromRequest(c)
	if !ok {
		return
	}

	var in cancelRequest
	_ = c.ShouldBindJSON(&in) // body is optional

	if err := sc.Sessions.Cancel(c.Request.Context(), sessionID, userID, in.Reason); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Session cancelled"})
}

// Leave removes the caller from the session.
func (sc *SessionController) Leave(c *gin.Context) {
	userID, sessionID, ok := sc.idsFromRequest(c)
	if !ok {
		return
	}
	if err := sc.Sessions.Leave(c.Request.Context(), sessionID, userID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Left session"})
}

type decisionRequest struct {
	PlayerID string `json:"playerId"`
}

// Approve confirms a pending player (creator or admin only).
func (sc *SessionController) Approve(c *gin.Context) {
	userID, sessionID, ok := sc.idsFromRequest(c)
	if !ok {
		return
	}
	targetID, ok := sc.targetFromBody(c)
	if !ok {
		return
	}
	if err := sc.Sessions.Approve(c.Request.Context(), sessionID, userID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Approved"})
}

// Reject drops a pending join request (creator or admin only).
func (sc *SessionController) Reject(c *gin.Context) {
	userID, sessionID, ok := sc.idsFromRequest(c)
	if !ok {
		return
	}
	targetID, ok := sc.targetFromBody(c)
	if !ok {
		return
	}
	if err := sc.Sessions.Reject(c.Request.Context(), sessionID, userID, targetID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Rejected"})
}

// Pending lists the undecided join requests with user details (creator
// or admin only).
func (sc *SessionController) Pending(c *gin.Context) {
	userID, sessionID, ok := sc.idsFromRequest(c)
	if !ok {
		return
	}
	pending, err := sc.Sessions.PendingRequests(c.Request.Context(), sessionID, userID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"pending": pending})
}

// QRCode renders a PNG QR code encoding the session's join link.
func (sc *SessionController) QRCode(c *gin.Context) {
	_, sessionID, ok := sc.idsFromRequest(c)
	if !ok {
		return
	}
	// 404 for sessions that don't exist, same as the JSON endpoints
	if _, err := sc.Sessions.Get(c.Request.Context(), sessionID); err != nil {
		respondError(c, err)
		return
	}

	png, err := services.GenerateJoinQRCode(sessionID.Hex(), 256)
	if err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

// ----------------------- request plumbing -----------------------

// idsFromRequest pulls the caller identity and the :id path parameter,
// writing the error response itself when either is unusable.
func (sc *SessionController) idsFromRequest(c *gin.Context) (userID, sessionID primitive.ObjectID, ok bool) {
	userID, ok = middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	sessionID, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": services.ErrSessionNotFound.Error()})
		return primitive.NilObjectID, primitive.NilObjectID, false
	}
	return userID, sessionID, true
}

func (sc *SessionController) targetFromBody(c *gin.Context) (primitive.ObjectID, bool) {
	var in decisionRequest
	if err := c.ShouldBindJSON(&in); err != nil || in.PlayerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "playerId is required"})
		return primitive.NilObjectID, false
	}
	targetID, err := primitive.ObjectIDFromHex(in.PlayerID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid playerId"})
		return primitive.NilObjectID, false
	}
	return targetID, true
}

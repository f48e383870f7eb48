// File: controllers/sport_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"sports-scheduler/middleware"
	"sports-scheduler/services"
)

// SportController handles the sport catalog endpoints.
type SportController struct {
	Sports *services.SportService
}

// NewSportController creates a SportController.
func NewSportController(sports *services.SportService) *SportController {
	return &SportController{Sports: sports}
}

type createSportRequest struct {
	Name string `json:"name"`
}

// Create adds a sport (admin only, enforced by middleware and re-checked
// by the service).
func (sc *SportController) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var in createSportRequest
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Sport name is required"})
		return
	}

	sport, err := sc.Sports.Create(c.Request.Context(), userID, in.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message": "Sport created",
		"sport":   gin.H{"id": sport.ID.Hex(), "name": sport.Name},
	})
}

// List returns the catalog sorted by name. With ?mine=true only the
// caller's sports are returned, which requires an identity.
func (sc *SportController) List(c *gin.Context) {
	var createdBy *primitive.ObjectID
	if c.Query("mine") == "true" {
		userID, ok := middleware.IdentityFromRequest(c)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		createdBy = &userID
	}

	sports, err := sc.Sports.List(c.Request.Context(), createdBy)
	if err != nil {
		respondError(c, err)
		return
	}

	out := make([]gin.H, 0, len(sports))
	for i := range sports {
		out = append(out, gin.H{"id": sports[i].ID.Hex(), "name": sports[i].Name})
	}
	c.JSON(http.StatusOK, out)
}

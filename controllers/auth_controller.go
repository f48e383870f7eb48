// File: controllers/auth_controller.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"

	"sports-scheduler/logger"
	"sports-scheduler/services"
)

// AuthController handles registration, login and logout.
type AuthController struct {
	Users *services.UserService
}

// NewAuthController creates an AuthController.
func NewAuthController(users *services.UserService) *AuthController {
	return &AuthController{Users: users}
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Register creates an account and returns its summary.
func (ac *AuthController) Register(c *gin.Context) {
	var in registerRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, services.ErrMissingFields)
		return
	}

	user, err := ac.Users.Register(c.Request.Context(), in.Name, in.Email, in.Password, in.Role)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "User registered successfully!",
		"user":    user.Summary(),
	})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials, starts a cookie session and returns the
// user summary.
func (ac *AuthController) Login(c *gin.Context) {
	var in loginRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		respondError(c, services.ErrMissingFields)
		return
	}

	user, err := ac.Users.Authenticate(c.Request.Context(), in.Email, in.Password)
	if err != nil {
		respondError(c, err)
		return
	}

	session := sessions.Default(c)
	session.Set("userID", user.ID.Hex())
	session.Set("isAdmin", user.IsAdmin)
	if err := session.Save(); err != nil {
		logger.Error.Printf("Login: failed to save session: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	logger.Info.Printf("Login: %s", user.Email)
	c.JSON(http.StatusOK, gin.H{
		"message": "Login successful!",
		"user":    user.Summary(),
	})
}

// Logout clears the cookie session.
func (ac *AuthController) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	if err := session.Save(); err != nil {
		logger.Warn.Printf("Logout: failed to clear session: %v", err)
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out"})
}

// Health is the load balancer health check.
func Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

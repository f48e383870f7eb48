// File: controllers/router.go
package controllers

import (
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"

	"sports-scheduler/middleware"
	"sports-scheduler/services"
	"sports-scheduler/store"
	"sports-scheduler/websocket"
)

// NewRouter builds the full API router over the given stores. The same
// construction serves production (Mongo stores, websocket notifier) and
// tests (in-memory stores, mock notifier).
func NewRouter(stores *store.Stores, notifier services.Notifier, sessionSecret string) *gin.Engine {
	router := gin.Default()

	cookieStore := cookie.NewStore([]byte(sessionSecret))
	cookieStore.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7, // 7 days
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	router.Use(sessions.Sessions("scheduler_session", cookieStore))

	userService := services.NewUserService(stores.Users)
	sportService := services.NewSportService(stores.Users, stores.Sports)
	sessionService := services.NewSessionService(stores, sportService, notifier)
	reportService := services.NewReportService(stores)

	auth := NewAuthController(userService)
	sports := NewSportController(sportService)
	sessionsCtl := NewSessionController(sessionService)
	reports := NewReportController(reportService)

	// Public routes
	router.GET("/health", Health)
	router.POST("/register", auth.Register)
	router.POST("/login", auth.Login)
	router.POST("/logout", auth.Logout)
	router.GET("/sports", sports.List) // identity only needed for ?mine=true

	// Protected routes
	protected := router.Group("/", middleware.AuthRequired)
	{
		protected.POST("/sports", middleware.AdminRequired(stores.Users), sports.Create)

		protected.POST("/sessions", sessionsCtl.Create)
		protected.GET("/sessions", sessionsCtl.List)
		protected.POST("/sessions/join/:id", sessionsCtl.Join)
		protected.POST("/sessions/leave/:id", sessionsCtl.Leave)
		protected.POST("/sessions/:id/cancel", sessionsCtl.Cancel)
		protected.POST("/sessions/:id/approve", sessionsCtl.Approve)
		protected.POST("/sessions/:id/reject", sessionsCtl.Reject)
		protected.GET("/sessions/:id/pending", sessionsCtl.Pending)
		protected.GET("/sessions/:id/qr", sessionsCtl.QRCode)

		protected.GET("/reports", middleware.AdminRequired(stores.Users), reports.Summary)

		protected.GET("/ws", Notifications)
	}

	return router
}

// Notifications upgrades the request to a websocket tied to the caller.
func Notifications(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}
	websocket.ServeWs(c.Writer, c.Request, userID.Hex())
}

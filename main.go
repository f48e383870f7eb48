// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"sports-scheduler/controllers"
	"sports-scheduler/logger"
	"sports-scheduler/store"
	"sports-scheduler/websocket"
)

func main() {
	// .env is optional; real deployments set the environment directly
	if err := godotenv.Load(); err != nil {
		logger.Debug.Println("No .env file found, using process environment")
	}

	env := os.Getenv("APP_ENV")
	logger.SetLogLevel(env)
	if env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	mongoURI := os.Getenv("MONGO_URI")
	if mongoURI == "" {
		mongoURI = "mongodb://127.0.0.1:27017/sports_scheduler"
	}
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		sessionSecret = "dev-secret"
		logger.Warn.Println("SESSION_SECRET not set, using development default")
	}

	ctx := context.Background()
	client, err := store.Open(ctx, mongoURI)
	if err != nil {
		logger.Error.Fatalf("failed to connect to MongoDB: %v", err)
	}
	defer func() {
		_ = client.Disconnect(ctx)
	}()

	stores := store.NewMongoStores(client.Database("sports_scheduler"))
	router := controllers.NewRouter(stores, websocket.Messenger{}, sessionSecret)

	// Start the notification hub
	go websocket.HandleMessages()

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info.Printf("sports-scheduler listening on :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error.Fatalf("server error: %v", err)
		}
	}()

	// Block until interrupted, then drain in-flight requests
	stop, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()
	<-stop.Done()

	logger.Info.Println("shutting down")
	shutdownCtx, shutdownCancel := context.WithTimeout(ctx, 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn.Printf("shutdown: %v", err)
	}
}

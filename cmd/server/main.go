package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"campuschat-backend/internal/config"
	"campuschat-backend/internal/database"
	"campuschat-backend/internal/handlers"
	"campuschat-backend/internal/repository"
	"campuschat-backend/internal/router"
	"campuschat-backend/internal/services"
	"campuschat-backend/internal/session"
)

func main() {
	log.Println("🚀 Starting CampusChat Backend...")

	// ──── Step 1: Load Environment Variables ────
	cfg := config.Load()
	log.Println("✓ Environment variables loaded")

	// ──── Step 2: Initialize PostgreSQL Connection Pool ────
	pool, err := database.NewPostgresPool(cfg.DatabaseURL(), cfg.DBConnectionLimit)
	if err != nil {
		log.Fatalf("✗ PostgreSQL connection failed: %v", err)
	}
	defer pool.Close()
	log.Println("✓ PostgreSQL connected")

	// ──── Step 3: Initialize Redis Client ────
	redisClient, err := database.NewRedisClient(cfg.RedisURL)
	if err != nil {
		log.Fatalf("✗ Redis connection failed: %v", err)
	}
	defer redisClient.Close()
	log.Println("✓ Redis connected")

	// ──── Step 4: Run Database Migrations ────
	if err := database.RunMigrations(pool, "migrations"); err != nil {
		log.Fatalf("✗ Database migration failed: %v", err)
	}
	log.Println("✓ Database migrations applied")

	// ──── Initialize Repositories ────
	userRepo := repository.NewUserRepo(pool)
	chatRepo := repository.NewChatRepo(pool)
	messageRepo := repository.NewMessageRepo(pool)

	// ──── Step 5: Initialize Completion Client ────
	completionService, err := services.NewCompletionService(cfg.GeminiAPIKey, cfg.GeminiModel, cfg.SystemPrompt)
	if err != nil {
		log.Fatalf("✗ Gemini client initialization failed: %v", err)
	}
	defer completionService.Close()
	log.Println("✓ Gemini client initialized")

	// ──── Initialize Services ────
	authService := services.NewAuthService(userRepo, chatRepo)
	chatService := services.NewChatService(chatRepo, messageRepo, completionService, cfg.AIRequestTimeout)
	sessionStore := session.NewStore(redisClient, cfg.SessionSecret)

	// ──── Initialize Handlers ────
	authHandler := handlers.NewAuthHandler(authService, sessionStore)
	chatHandler := handlers.NewChatHandler(chatService)
	sessionHandler := handlers.NewSessionHandler(sessionStore)

	// ──── Step 6: Start HTTP Server ────
	r := router.New(authHandler, chatHandler, sessionHandler, cfg.FrontendURL)

	server := &http.Server{
		Addr:        fmt.Sprintf(":%s", cfg.Port),
		Handler:     r,
		ReadTimeout: 15 * time.Second,
		// sendMessage blocks on the completion call, so the write timeout
		// must outlast the completion timeout.
		WriteTimeout: cfg.AIRequestTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan

		log.Println("Shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		server.Shutdown(ctx)
	}()

	log.Printf("✓ CampusChat Backend ready on http://localhost:%s", cfg.Port)
	log.Printf("  API: http://localhost:%s/api", cfg.Port)

	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("Server error: %v", err)
	}
}

package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"campuschat-backend/internal/handlers"
	"campuschat-backend/internal/middleware"
)

func New(
	authHandler *handlers.AuthHandler,
	chatHandler *handlers.ChatHandler,
	sessionHandler *handlers.SessionHandler,
	frontendURL string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.CORS(frontendURL))

	// Auth rate limiter (10 req/min per IP)
	authLimiter := middleware.NewRateLimiter(10, time.Minute)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(authLimiter.Middleware)
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
		})

		r.Post("/createChat", chatHandler.CreateChat)
		r.Post("/deleteChat", chatHandler.DeleteChat)
		r.Post("/getMessages", chatHandler.GetMessages)
		r.Post("/sendMessage", chatHandler.SendMessage)
		r.Post("/searchChats", chatHandler.SearchChats)

		r.Get("/session", sessionHandler.Get)
		r.Post("/session/theme", sessionHandler.SetTheme)
		r.Post("/logout", sessionHandler.Logout)
	})

	return r
}

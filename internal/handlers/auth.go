package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"campuschat-backend/internal/models"
	"campuschat-backend/internal/session"
)

type authService interface {
	Register(ctx context.Context, req models.RegisterRequest) error
	Login(ctx context.Context, req models.LoginRequest) (*models.User, []models.ChatSummary, error)
}

type sessionCreator interface {
	Create(ctx context.Context, state *session.State) (string, error)
}

type AuthHandler struct {
	auth     authService
	sessions sessionCreator
}

func NewAuthHandler(auth authService, sessions sessionCreator) *AuthHandler {
	return &AuthHandler{auth: auth, sessions: sessions}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "All fields are required")
		return
	}

	if err := h.auth.Register(r.Context(), req); err != nil {
		handleServiceError(w, err, "An error occurred during registration")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "User registered successfully",
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "Email and password are required")
		return
	}

	user, chats, err := h.auth.Login(r.Context(), req)
	if err != nil {
		handleServiceError(w, err, "An error occurred during login")
		return
	}

	// The session record is best effort: login still succeeds without it.
	token, err := h.sessions.Create(r.Context(), &session.State{
		UserID:   user.ID,
		Name:     user.Name,
		Email:    user.Email,
		Role:     user.Role,
		DarkMode: true,
	})
	if err != nil {
		log.Printf("failed to create session for user %d: %v", user.ID, err)
	} else {
		setSessionCookie(w, token)
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Login successful",
		"user":    user.Profile(),
		"chats":   chats,
	})
}

func setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(session.TTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"campuschat-backend/internal/session"
)

type sessionStore interface {
	Load(ctx context.Context, token string) (*session.State, error)
	Update(ctx context.Context, token string, state *session.State) error
	Clear(ctx context.Context, token string) error
}

type SessionHandler struct {
	sessions sessionStore
}

func NewSessionHandler(sessions sessionStore) *SessionHandler {
	return &SessionHandler{sessions: sessions}
}

type setThemeRequest struct {
	DarkMode bool `json:"darkMode"`
}

// Get returns the signed-in user's persisted identity and theme.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	state, _, ok := h.loadState(w, r)
	if !ok {
		return
	}

	writeSuccess(w, map[string]interface{}{
		"user": map[string]interface{}{
			"id":    state.UserID,
			"name":  state.Name,
			"email": state.Email,
			"role":  state.Role,
		},
		"darkMode": state.DarkMode,
	})
}

func (h *SessionHandler) SetTheme(w http.ResponseWriter, r *http.Request) {
	state, token, ok := h.loadState(w, r)
	if !ok {
		return
	}

	var req setThemeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeFailure(w, "A darkMode value is required")
		return
	}

	state.DarkMode = req.DarkMode
	if err := h.sessions.Update(r.Context(), token, state); err != nil {
		handleServiceError(w, err, "An error occurred while saving the theme")
		return
	}

	writeSuccess(w, map[string]interface{}{
		"message": "Theme updated",
	})
}

func (h *SessionHandler) Logout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(session.CookieName)
	if err == nil {
		h.sessions.Clear(r.Context(), cookie.Value)
	}
	clearSessionCookie(w)

	writeSuccess(w, map[string]interface{}{
		"message": "Logged out successfully",
	})
}

func (h *SessionHandler) loadState(w http.ResponseWriter, r *http.Request) (*session.State, string, bool) {
	cookie, err := r.Cookie(session.CookieName)
	if err != nil {
		writeFailure(w, "Not signed in")
		return nil, "", false
	}

	state, err := h.sessions.Load(r.Context(), cookie.Value)
	if err != nil {
		writeFailure(w, "Not signed in")
		return nil, "", false
	}
	return state, cookie.Value, true
}

func clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

package handlers

import (
	"log"
	"net/http"
	"strings"

	"wincmd/internal/auth"
	"wincmd/internal/middleware"
	"wincmd/internal/models"
)

type AuthHandler struct {
	sessions    *auth.SessionManager
	userService *auth.UserService
}

func NewAuthHandler(sessions *auth.SessionManager, userService *auth.UserService) *AuthHandler {
	return &AuthHandler{
		sessions:    sessions,
		userService: userService,
	}
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input models.LoginInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "username and password are required"})
		return
	}

	user, err := h.userService.Authenticate(input.Username, input.Password)
	if err != nil {
		audit(h.userService, nil, "login_failed", "Username: "+input.Username, r)
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "invalid username or password"})
		return
	}

	if err := h.sessions.SetUser(w, r, user.ID, user.IsAdmin, input.Remember); err != nil {
		log.Printf("Session error: %v", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "failed to create session"})
		return
	}

	audit(h.userService, &user.ID, "login_success", "", r)
	writeJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, _ := h.sessions.GetUserID(r)
	if userID > 0 {
		audit(h.userService, &userID, "logout", "", r)
	}

	h.sessions.Clear(w, r)
	w.WriteHeader(http.StatusNoContent)
}

// Me returns the user behind the current session.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, middleware.GetUser(r))
}

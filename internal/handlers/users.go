package handlers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"wincmd/internal/auth"
	"wincmd/internal/middleware"
	"wincmd/internal/models"

	"github.com/go-chi/chi/v5"
)

type UsersHandler struct {
	userService *auth.UserService
}

func NewUsersHandler(userService *auth.UserService) *UsersHandler {
	return &UsersHandler{userService: userService}
}

func (h *UsersHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.userService.List()
	if err != nil {
		writeError(w, err)
		return
	}
	if users == nil {
		users = []models.User{}
	}
	writeJSON(w, http.StatusOK, users)
}

func (h *UsersHandler) Create(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.GetUser(r)

	var input models.UserInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}

	input.Username = strings.TrimSpace(input.Username)
	if input.Username == "" || input.Password == "" {
		writeError(w, fmt.Errorf("%w: username and password are required", errBadRequest))
		return
	}
	if len(input.Password) < 6 {
		writeError(w, fmt.Errorf("%w: password must be at least 6 characters", errBadRequest))
		return
	}

	user, err := h.userService.Create(input.Username, input.Password, input.IsAdmin)
	if err != nil {
		writeError(w, err)
		return
	}

	audit(h.userService, &currentUser.ID, "user_create", "Username: "+input.Username, r)
	writeJSON(w, http.StatusCreated, user)
}

func (h *UsersHandler) Delete(w http.ResponseWriter, r *http.Request) {
	currentUser := middleware.GetUser(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, fmt.Errorf("%w: invalid user id", errBadRequest))
		return
	}
	if id == currentUser.ID {
		writeError(w, fmt.Errorf("%w: cannot delete your own account", errBadRequest))
		return
	}

	if err := h.userService.Delete(id); err != nil {
		writeError(w, err)
		return
	}

	audit(h.userService, &currentUser.ID, "user_delete", "User ID: "+strconv.FormatInt(id, 10), r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user := middleware.GetUser(r)

	var input models.PasswordInput
	if err := decodeJSON(r, &input); err != nil {
		writeError(w, err)
		return
	}
	if len(input.NewPassword) < 6 {
		writeError(w, fmt.Errorf("%w: password must be at least 6 characters", errBadRequest))
		return
	}

	if err := h.userService.ChangePassword(user.ID, input.CurrentPassword, input.NewPassword); err != nil {
		writeError(w, err)
		return
	}

	audit(h.userService, &user.ID, "password_change", "", r)
	w.WriteHeader(http.StatusNoContent)
}

func (h *UsersHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeError(w, fmt.Errorf("%w: limit must be a positive integer", errBadRequest))
			return
		}
		limit = n
	}

	logs, err := h.userService.GetAuditLogs(limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if logs == nil {
		logs = []models.AuditLog{}
	}
	writeJSON(w, http.StatusOK, logs)
}

package handlers

import (
	"errors"
	"fmt"
	"log"
	"net/http"

	"wincmd/internal/auth"
	"wincmd/internal/netstat"
	"wincmd/internal/taskkill"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

var errBadRequest = errors.New("bad request")

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Failed to encode response: %v", err)
	}
}

// writeError maps err onto a status code and writes {"error": "..."}.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError || status == http.StatusBadGateway {
		log.Printf("Request failed: %v", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, netstat.ErrSectionNotFound):
		return http.StatusBadGateway
	case errors.Is(err, errBadRequest),
		errors.Is(err, netstat.ErrInvalidParameter),
		errors.Is(err, netstat.ErrInvalidPort),
		errors.Is(err, taskkill.ErrInvalidParameter),
		errors.Is(err, auth.ErrInvalidPassword):
		return http.StatusBadRequest
	case errors.Is(err, auth.ErrUserNotFound):
		return http.StatusNotFound
	case errors.Is(err, auth.ErrUserExists), errors.Is(err, netstat.ErrNoFreePort):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func decodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

// audit records an action; a failed write is logged, never returned.
func audit(users *auth.UserService, userID *int64, action, details string, r *http.Request) {
	if err := users.LogAction(userID, action, details, getClientIP(r)); err != nil {
		log.Printf("Failed to write audit log (%s): %v", action, err)
	}
}

func getClientIP(r *http.Request) string {
	// Check X-Forwarded-For header for proxy setups
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		return xff
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}
	return r.RemoteAddr
}

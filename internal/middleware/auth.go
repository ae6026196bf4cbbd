package middleware

import (
	"context"
	"net/http"

	"wincmd/internal/auth"
	"wincmd/internal/models"

	jsoniter "github.com/json-iterator/go"
)

type contextKey string

const UserContextKey contextKey = "user"

type AuthMiddleware struct {
	sessions    *auth.SessionManager
	userService *auth.UserService
}

func NewAuthMiddleware(sessions *auth.SessionManager, userService *auth.UserService) *AuthMiddleware {
	return &AuthMiddleware{
		sessions:    sessions,
		userService: userService,
	}
}

func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, ok := m.sessions.GetUserID(r)
		if !ok {
			deny(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := m.userService.GetByID(userID)
		if err != nil {
			m.sessions.Clear(w, r)
			deny(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := GetUser(r)
		if user == nil || !user.IsAdmin {
			deny(w, http.StatusForbidden, "forbidden")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func GetUser(r *http.Request) *models.User {
	user, _ := r.Context().Value(UserContextKey).(*models.User)
	return user
}

func deny(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(w).Encode(map[string]string{"error": message})
}

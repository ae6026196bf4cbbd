package auth

import (
	"net/http"

	"github.com/gorilla/sessions"
)

const (
	SessionName    = "wincmd-session"
	SessionUserID  = "user_id"
	SessionIsAdmin = "is_admin"

	// RememberMaxAge is the cookie lifetime for logins that ask to be remembered.
	RememberMaxAge = 86400 * 30
)

// SessionManager keeps the logged-in user in a signed cookie. Nothing is
// stored server side, so a restart with the same secret keeps users logged in.
type SessionManager struct {
	store *sessions.CookieStore
}

func NewSessionManager(secret string, maxAge int, secure bool) *SessionManager {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
	}
	return &SessionManager{store: store}
}

func (m *SessionManager) Get(r *http.Request) (*sessions.Session, error) {
	return m.store.Get(r, SessionName)
}

func (m *SessionManager) SetUser(w http.ResponseWriter, r *http.Request, userID int64, isAdmin bool, remember bool) error {
	session, err := m.Get(r)
	if err != nil {
		return err
	}

	session.Values[SessionUserID] = userID
	session.Values[SessionIsAdmin] = isAdmin
	if remember {
		session.Options.MaxAge = RememberMaxAge
	}

	return session.Save(r, w)
}

func (m *SessionManager) GetUserID(r *http.Request) (int64, bool) {
	session, err := m.Get(r)
	if err != nil {
		return 0, false
	}

	userID, ok := session.Values[SessionUserID].(int64)
	return userID, ok
}

func (m *SessionManager) Clear(w http.ResponseWriter, r *http.Request) error {
	session, err := m.Get(r)
	if err != nil {
		return err
	}

	session.Values = make(map[interface{}]interface{})
	session.Options.MaxAge = -1

	return session.Save(r, w)
}

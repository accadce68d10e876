package middleware

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"hotelchain/internal/metrics"
)

// contextKey is an unexported type for context keys in this package.
type contextKey string

const sessionContextKey contextKey = "session"

// SessionTTL is how long a session stays valid after login.
const SessionTTL = 24 * time.Hour

// ErrNoSession is returned by a SessionStore when the token is unknown or expired.
var ErrNoSession = errors.New("session not found")

// Session represents an authenticated principal.
type Session struct {
	UserID    int64     `json:"user_id"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore keeps sessions keyed by opaque token.
type SessionStore interface {
	Get(ctx context.Context, token string) (Session, error)
	Set(ctx context.Context, token string, session Session) error
	Destroy(ctx context.Context, token string) error
}

// MemoryStore is an in-memory session store.
type MemoryStore struct {
	mu       sync.Mutex
	sessions map[string]Session
	ttl      time.Duration
}

// NewMemoryStore creates a new in-memory session store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		sessions: make(map[string]Session),
		ttl:      SessionTTL,
	}
}

// Get retrieves a session by token.
// PRE: token is non-empty
// POST: Returns the session if present and not expired; expired sessions are removed
func (ms *MemoryStore) Get(_ context.Context, token string) (Session, error) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	session, ok := ms.sessions[token]
	if !ok {
		return Session{}, ErrNoSession
	}
	if time.Since(session.CreatedAt) > ms.ttl {
		delete(ms.sessions, token)
		return Session{}, ErrNoSession
	}
	return session, nil
}

// Set stores a session under token, replacing any previous value.
func (ms *MemoryStore) Set(_ context.Context, token string, session Session) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	ms.sessions[token] = session
	return nil
}

// Destroy removes a session by token. Unknown tokens are ignored.
func (ms *MemoryStore) Destroy(_ context.Context, token string) error {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	delete(ms.sessions, token)
	return nil
}

// CreateSession stores a fresh session for the principal and returns its token.
// PRE: userID > 0, role is a known role
// POST: Session is stored with CreatedAt = now
func CreateSession(ctx context.Context, store SessionStore, userID int64, email, role string) (string, error) {
	token, err := NewToken()
	if err != nil {
		return "", err
	}
	err = store.Set(ctx, token, Session{
		UserID:    userID,
		Email:     email,
		Role:      role,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// SessionCookieName is the cookie carrying the session token.
const SessionCookieName = "hotel_session"

// Auth returns middleware that extracts the session from the cookie and sets it in context.
// It does NOT block unauthenticated requests; use RequireAuth or RequireRole for that.
func Auth(sessions SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err == nil && cookie.Value != "" {
				session, err := sessions.Get(r.Context(), cookie.Value)
				switch {
				case err == nil:
					r = r.WithContext(ContextWithSession(r.Context(), session))
				case !errors.Is(err, ErrNoSession):
					slog.Error("auth_event", "event", "session_lookup_error", "error", err.Error())
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth returns middleware that sends unauthenticated requests to /login.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := GetSessionFromContext(r.Context()); !ok {
			metrics.AuthDeniedTotal.WithLabelValues("no_session").Inc()
			http.Redirect(w, r, "/login", http.StatusSeeOther)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireRole returns middleware that admits only sessions holding one of roles.
// Missing sessions go to /login; other roles are sent to the landing page.
func RequireRole(roles ...string) func(http.Handler) http.Handler {
	roleSet := make(map[string]bool, len(roles))
	for _, r := range roles {
		roleSet[r] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			session, ok := GetSessionFromContext(r.Context())
			if !ok {
				metrics.AuthDeniedTotal.WithLabelValues("no_session").Inc()
				http.Redirect(w, r, "/login", http.StatusSeeOther)
				return
			}
			if !roleSet[session.Role] {
				metrics.AuthDeniedTotal.WithLabelValues("wrong_role").Inc()
				slog.Info("auth_event", "event", "role_denied", "user_id", session.UserID, "role", session.Role, "path", r.URL.Path)
				http.Redirect(w, r, "/", http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// GetSessionFromContext extracts the session from the request context.
func GetSessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(sessionContextKey).(Session)
	return session, ok
}

// ContextWithSession returns a context with the given session set.
func ContextWithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey, sess)
}

// SetSessionCookie sets the session cookie on the response.
// secure is false only for plain-HTTP development.
func SetSessionCookie(w http.ResponseWriter, token string, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   int(SessionTTL / time.Second),
	})
}

// ClearSessionCookie removes the session cookie.
func ClearSessionCookie(w http.ResponseWriter, secure bool) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		HttpOnly: true,
		Secure:   secure,
		SameSite: http.SameSiteStrictMode,
		Path:     "/",
		MaxAge:   -1,
	})
}

// NewToken returns a random 256-bit hex token.
func NewToken() (string, error) {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}

package server

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"schedbot/internal/instrumentation"
	"schedbot/internal/scheduler"
)

// DefaultSessionTimeout is how long an idle scheduling session is kept.
const DefaultSessionTimeout = 24 * time.Hour

// sessionEntry tracks one scheduling session and its last use for cleanup.
type sessionEntry struct {
	session    *scheduler.Session
	lastAccess time.Time
}

// SessionManager maps connection identities to scheduling sessions, so a
// "whenever I'm free" follow-up lands on the slot suggested to the same
// caller. Idle sessions are evicted in the background.
type SessionManager struct {
	sessions       map[string]*sessionEntry
	mu             sync.RWMutex
	cleanupTicker  *time.Ticker
	cleanupDone    chan bool
	sessionTimeout time.Duration
	logger         *slog.Logger
	metrics        *instrumentation.Metrics
}

// NewSessionManager creates a session manager with the default timeout.
func NewSessionManager() *SessionManager {
	return NewSessionManagerWithLogger(DefaultSessionTimeout, slog.Default())
}

// NewSessionManagerWithLogger creates a session manager with a custom
// timeout and logger.
func NewSessionManagerWithLogger(timeout time.Duration, logger *slog.Logger) *SessionManager {
	if logger == nil {
		logger = slog.Default()
	}

	m := &SessionManager{
		sessions:       make(map[string]*sessionEntry),
		cleanupTicker:  time.NewTicker(10 * time.Minute),
		cleanupDone:    make(chan bool),
		sessionTimeout: timeout,
		logger:         logger,
	}

	go m.cleanupExpiredSessions()

	return m
}

// SetMetrics wires the active session gauge. Safe to leave unset; a nil
// recorder makes all session accounting a no-op.
func (m *SessionManager) SetMetrics(metrics *instrumentation.Metrics) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.metrics = metrics
}

// ErrNoAuthorizationHeader is returned when no Authorization header is provided.
var ErrNoAuthorizationHeader = errors.New("no authorization header provided")

type sessionIDKey struct{}

// WithSessionID stores a resolved session ID on the context. The HTTP
// transport calls this per request so tool handlers can key state by
// caller rather than by MCP connection.
func WithSessionID(ctx context.Context, sessionID string) context.Context {
	return context.WithValue(ctx, sessionIDKey{}, sessionID)
}

// SessionIDFromContext returns the session ID stored by WithSessionID,
// or "" when none was resolved.
func SessionIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(sessionIDKey{}).(string)
	return id
}

// ResolveSessionID derives a stable session ID from an HTTP request's
// Bearer token, so each caller keeps its own conversational state on the
// streamable-http transport.
func (m *SessionManager) ResolveSessionID(r *http.Request) (string, error) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", ErrNoAuthorizationHeader
	}
	hash := sha256.Sum256([]byte(authHeader))
	return hex.EncodeToString(hash[:]), nil
}

// SessionFor returns the scheduling session for an ID, creating it on
// first use. Stdio transport passes "default".
func (m *SessionManager) SessionFor(sessionID string) *scheduler.Session {
	m.mu.Lock()
	defer m.mu.Unlock()

	if entry, ok := m.sessions[sessionID]; ok {
		entry.lastAccess = time.Now()
		return entry.session
	}

	session := &scheduler.Session{}
	m.sessions[sessionID] = &sessionEntry{
		session:    session,
		lastAccess: time.Now(),
	}
	if m.metrics != nil {
		m.metrics.IncrementActiveSessions(context.Background())
	}
	return session
}

// RemoveSession drops a session.
func (m *SessionManager) RemoveSession(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.sessions[sessionID]; !ok {
		return
	}
	delete(m.sessions, sessionID)
	if m.metrics != nil {
		m.metrics.DecrementActiveSessions(context.Background())
	}
}

// Count returns the number of live sessions.
func (m *SessionManager) Count() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// cleanupExpiredSessions periodically removes idle sessions.
func (m *SessionManager) cleanupExpiredSessions() {
	for {
		select {
		case <-m.cleanupTicker.C:
			m.mu.Lock()
			now := time.Now()
			expiredCount := 0
			for sessionID, entry := range m.sessions {
				if now.Sub(entry.lastAccess) > m.sessionTimeout {
					delete(m.sessions, sessionID)
					expiredCount++
				}
			}
			if m.metrics != nil {
				for i := 0; i < expiredCount; i++ {
					m.metrics.DecrementActiveSessions(context.Background())
				}
			}
			m.mu.Unlock()
			if expiredCount > 0 {
				m.logger.Info("cleaned up expired sessions", "count", expiredCount)
			}
		case <-m.cleanupDone:
			return
		}
	}
}

// Stop stops the session cleanup goroutine.
func (m *SessionManager) Stop() {
	if m.cleanupTicker != nil {
		m.cleanupTicker.Stop()
	}
	if m.cleanupDone != nil {
		close(m.cleanupDone)
	}
}

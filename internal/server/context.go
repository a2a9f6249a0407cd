package server

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"schedbot/internal/calendar"
	"schedbot/internal/instrumentation"
	"schedbot/internal/logging"
	"schedbot/internal/scheduler"
)

// ServerContext holds the shared state of one schedbot server: the roster
// of calendar accounts, the assistant built over them, and per-connection
// scheduling sessions.
type ServerContext struct {
	ctx       context.Context
	cancel    context.CancelFunc
	accounts  []string
	clients   map[string]*calendar.Client // account name to calendar client
	assistant *scheduler.Assistant
	sessions  *SessionManager
	logger    *slog.Logger
	metrics   *instrumentation.Metrics
	audit     *instrumentation.AuditLogger
	mu        sync.RWMutex
	shutdown  bool
}

// NewServerContext builds the roster from the given account names and
// creates the assistant over it. Accounts without a stored token are
// skipped with a warning so a partially authorized roster still serves.
func NewServerContext(ctx context.Context, accounts []string, opts scheduler.Options) (*ServerContext, error) {
	if len(accounts) == 0 {
		return nil, fmt.Errorf("at least one calendar account is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	shutdownCtx, cancel := context.WithCancel(ctx)

	clients := make(map[string]*calendar.Client)
	var roster []scheduler.User
	for _, account := range accounts {
		if !calendar.HasTokenForAccount(account) {
			logger.Warn("no token for account, skipping; run 'schedbot auth' to authorize",
				logging.User(account))
			continue
		}
		client, err := calendar.NewClientForAccount(shutdownCtx, account)
		if err != nil {
			logger.Warn("failed to create calendar client, skipping account",
				logging.User(account), logging.Err(err))
			continue
		}
		clients[account] = client
		roster = append(roster, scheduler.User{
			ID:  account,
			Cal: calendar.NewInstrumentedGateway(client, opts.Metrics),
		})
	}
	if len(roster) == 0 {
		cancel()
		return nil, fmt.Errorf("no authorized calendar accounts; run 'schedbot auth' first")
	}

	return &ServerContext{
		ctx:       shutdownCtx,
		cancel:    cancel,
		accounts:  accounts,
		clients:   clients,
		assistant: scheduler.New(roster, nil, opts),
		sessions:  NewSessionManagerWithLogger(DefaultSessionTimeout, logger),
		logger:    logger,
	}, nil
}

// NewServerContextWithAssistant wires a prebuilt assistant, used by tests
// and by callers that construct the roster themselves.
func NewServerContextWithAssistant(ctx context.Context, assistant *scheduler.Assistant, logger *slog.Logger) *ServerContext {
	if logger == nil {
		logger = slog.Default()
	}
	shutdownCtx, cancel := context.WithCancel(ctx)
	return &ServerContext{
		ctx:       shutdownCtx,
		cancel:    cancel,
		clients:   make(map[string]*calendar.Client),
		assistant: assistant,
		sessions:  NewSessionManagerWithLogger(DefaultSessionTimeout, logger),
		logger:    logger,
	}
}

// Context returns the server context.
func (sc *ServerContext) Context() context.Context {
	return sc.ctx
}

// Assistant returns the scheduling assistant.
func (sc *ServerContext) Assistant() *scheduler.Assistant {
	return sc.assistant
}

// Sessions returns the session manager.
func (sc *ServerContext) Sessions() *SessionManager {
	return sc.sessions
}

// SetInstrumentation wires the metrics recorder and audit logger used by
// the tool layer.
func (sc *ServerContext) SetInstrumentation(metrics *instrumentation.Metrics, audit *instrumentation.AuditLogger) {
	sc.mu.Lock()
	defer sc.mu.Unlock()
	sc.metrics = metrics
	sc.audit = audit
	sc.sessions.SetMetrics(metrics)
}

// Metrics returns the metrics recorder, or nil when instrumentation is
// not configured.
func (sc *ServerContext) Metrics() *instrumentation.Metrics {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.metrics
}

// AuditLogger returns the audit logger, or nil when not configured.
func (sc *ServerContext) AuditLogger() *instrumentation.AuditLogger {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.audit
}

// CalendarClientForAccount returns the calendar client for an account, or
// nil when the account was not authorized at startup.
func (sc *ServerContext) CalendarClientForAccount(account string) *calendar.Client {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.clients[account]
}

// AccountCount returns the number of authorized roster accounts.
func (sc *ServerContext) AccountCount() int {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return len(sc.clients)
}

// IsShutdown returns whether the server has been shut down.
func (sc *ServerContext) IsShutdown() bool {
	sc.mu.RLock()
	defer sc.mu.RUnlock()
	return sc.shutdown
}

// Shutdown cancels the server context and stops session cleanup.
func (sc *ServerContext) Shutdown() error {
	sc.mu.Lock()
	defer sc.mu.Unlock()

	if sc.shutdown {
		return nil
	}

	sc.shutdown = true
	sc.sessions.Stop()
	sc.cancel()
	return nil
}

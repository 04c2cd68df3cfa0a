package crm

import (
	"context"
	"sync"
)

// SessionStore is the single source of truth for who is logged in and what
// they can do. Identity is always rehydrated from the backend; a locally
// cached user is never trusted across page loads, and token presence alone is
// never read as "authenticated".
//
// State machine: the store is built with loading=true and user absent. The
// first Bootstrap outcome, success or failure, drops loading to false exactly
// once. From there Login and Logout move user between populated and absent;
// loading never goes true again without building a new store.
type SessionStore struct {
	mu     sync.RWMutex
	client *Client
	cfg    Config
	logger Logger

	user    *User
	loading bool

	listeners  map[int]func()
	listenerID int
}

// SessionOption customizes store construction
type SessionOption func(*SessionStore)

// WithSessionLogger sets the logger
func WithSessionLogger(logger Logger) SessionOption {
	return func(s *SessionStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewSessionStore builds a store in its pre-bootstrap state
func NewSessionStore(client *Client, cfg Config, opts ...SessionOption) *SessionStore {
	if client == nil {
		panic("Missing Client in session store...")
	}

	s := &SessionStore{
		client:    client,
		cfg:       cfg,
		logger:    defLogger{},
		loading:   true,
		listeners: map[int]func(){},
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Bootstrap rehydrates the session from the identity endpoint. Any failure,
// transport or authorization, resolves to an absent user; the call never
// surfaces an error. The loading flag drops on the first completion only.
func (s *SessionStore) Bootstrap(ctx context.Context) {
	user := &User{}
	err := s.client.Get(ctx, s.cfg.GetIdentityPath(), user)
	if err != nil {
		if !IsUnauthorizedError(err) {
			s.logger.Warn("session bootstrap failed: %s", err)
		}
		user = nil
	} else if user.ID == "" {
		// a 200 with an empty or null body is not an identity
		s.logger.Warn("identity endpoint returned no user id, treating session as absent")
		user = nil
	}

	s.mu.Lock()
	s.user = user
	s.loading = false
	s.mu.Unlock()

	s.notify()
}

// Refresh re-fetches the identity on demand, e.g. after a password change
func (s *SessionStore) Refresh(ctx context.Context) {
	s.Bootstrap(ctx)
}

// Login authenticates against the backend. On success the returned token, if
// any, is persisted, and the identity is re-fetched before the call returns
// so the caller is guaranteed an up-to-date user. The raw login response is
// returned for navigation purposes only. On failure the session state is left
// untouched.
func (s *SessionStore) Login(ctx context.Context, payload LoginPayload) (*LoginResult, error) {
	result := &LoginResult{}

	body := map[string]string{
		"email":    payload.GetIdentifier(),
		"password": payload.GetPassword(),
	}

	if err := s.client.Post(ctx, s.cfg.GetLoginPath(), body, result); err != nil {
		return nil, err
	}

	if result.Token != "" {
		if err := s.client.Tokens().Set(ctx, result.Token); err != nil {
			s.logger.Warn("failed to persist bearer token: %s", err)
		}
	}

	// Reload the user from the server rather than trusting the login body,
	// which may be stale or partial.
	s.Bootstrap(ctx)

	return result, nil
}

// Logout tears the session down. The backend call is best-effort; the token
// and the in-memory user are cleared no matter what, and calling Logout with
// no session is a no-op with the same end state.
func (s *SessionStore) Logout(ctx context.Context) {
	if err := s.client.Post(ctx, s.cfg.GetLogoutPath(), nil, nil); err != nil {
		s.logger.Debug("logout endpoint failed, clearing locally: %s", err)
	}

	if err := s.client.Tokens().Clear(ctx); err != nil {
		s.logger.Warn("failed to clear bearer token: %s", err)
	}

	s.mu.Lock()
	s.user = nil
	s.mu.Unlock()

	s.notify()
}

// Loading reports whether the initial bootstrap is still in flight
func (s *SessionStore) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// CurrentUser returns the authenticated user, or false when absent
func (s *SessionStore) CurrentUser() (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil, false
	}
	return s.user, true
}

// IsAdmin reports whether the session role is in the admin allow-list
func (s *SessionStore) IsAdmin() bool {
	user, ok := s.CurrentUser()
	return ok && IsAdminRole(user.RoleName)
}

// IsSuperAdmin reports whether the session role is the super admin role
func (s *SessionStore) IsSuperAdmin() bool {
	user, ok := s.CurrentUser()
	return ok && user.RoleName == RoleSuperAdmin
}

// HasPermission reports whether the session holds a granted (module, action)
// pair. Exact match only, false when no user is present.
func (s *SessionStore) HasPermission(module, action string) bool {
	user, ok := s.CurrentUser()
	return ok && user.Can(module, action)
}

// Subscribe registers a change listener and returns its unsubscribe func.
// Listeners fire after every state transition, on the calling goroutine.
func (s *SessionStore) Subscribe(fn func()) func() {
	s.mu.Lock()
	s.listenerID++
	id := s.listenerID
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *SessionStore) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}

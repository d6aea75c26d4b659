// Package session is the auth gate: the single source of truth for the
// viewer's credential, injected into every component that needs it.
package session

import (
	"sync"

	"github.com/amiyamandal-dev/bizbrief/internal/auth"
	"github.com/amiyamandal-dev/bizbrief/internal/domain"
	"github.com/amiyamandal-dev/bizbrief/pkg/logger"
)

// Session guards the credential slot and notifies observers when the
// credential is missing or rejected.
type Session struct {
	mu           sync.Mutex
	store        TokenStore
	token        string
	onInvalidate []func()
	onAuthNeeded []func()
	logger       *logger.Logger
}

// New creates a session over store, reading the current token once
func New(store TokenStore, log *logger.Logger) *Session {
	if log == nil {
		log = logger.Nop()
	}
	s := &Session{
		store:  store,
		logger: log.WithComponent("session"),
	}

	token, err := store.Load()
	if err != nil {
		s.logger.Warn("Failed to load stored token", "error", err)
	}
	s.token = token
	return s
}

// Token returns the current credential, or "" when logged out
func (s *Session) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Username returns the name carried by the current token
func (s *Session) Username() string {
	return auth.Username(s.Token())
}

// LoggedIn reports whether a credential is present
func (s *Session) LoggedIn() bool {
	return s.Token() != ""
}

// RequireAuth returns the credential, or notifies the auth-required
// observers and returns domain.ErrAuthRequired. Callers abort on error.
func (s *Session) RequireAuth() (string, error) {
	s.mu.Lock()
	token := s.token
	observers := append([]func(){}, s.onAuthNeeded...)
	s.mu.Unlock()

	if token != "" {
		return token, nil
	}
	for _, fn := range observers {
		fn()
	}
	return "", domain.ErrAuthRequired
}

// OnUnauthorized handles a 401 from a mutating call: the credential is
// cleared and the invalidation observers run. Safe to call repeatedly.
func (s *Session) OnUnauthorized() {
	s.clear()

	s.mu.Lock()
	observers := append([]func(){}, s.onInvalidate...)
	s.mu.Unlock()

	s.logger.Info("Credential rejected by backend")
	for _, fn := range observers {
		fn()
	}
}

// SetToken stores a freshly issued credential
func (s *Session) SetToken(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Store(token); err != nil {
		return err
	}
	s.token = token
	return nil
}

// Logout clears the credential without notifying observers
func (s *Session) Logout() error {
	return s.clear()
}

func (s *Session) clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.token = ""
	if err := s.store.Clear(); err != nil {
		s.logger.Warn("Failed to clear stored token", "error", err)
		return err
	}
	return nil
}

// OnInvalidate registers fn to run after a 401 cleared the credential
func (s *Session) OnInvalidate(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onInvalidate = append(s.onInvalidate, fn)
}

// OnAuthRequired registers fn to run when an action needs a credential that
// is not there. Front ends use it to show the login page.
func (s *Session) OnAuthRequired(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onAuthNeeded = append(s.onAuthNeeded, fn)
}

package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/coffeenme/coffeenme/internal/client/api"
	"github.com/coffeenme/coffeenme/internal/client/models"
	"github.com/coffeenme/coffeenme/internal/client/storage"
	"github.com/coffeenme/coffeenme/internal/logging"
)

// Session is the single source of truth for "who is the current actor".
//
// Invariant: user is non-nil iff token is non-empty and was validated
// against the API in this process lifetime. A token that fails validation
// is purged from durable storage and the session stays guest.
//
// All methods are safe for concurrent use; login attempts are serialized so
// partial token writes cannot interleave.
type Session struct {
	api   api.Client
	store storage.KV
	log   logging.Logger

	mu    sync.Mutex
	token string
	user  *models.CurrentUser
}

// NewSession builds an uninitialized session. Call Initialize before any
// authorization-sensitive decision.
func NewSession(client api.Client, store storage.KV, log logging.Logger) *Session {
	return &Session{api: client, store: store, log: log}
}

// Initialize restores the session from durable storage: if a token is
// present it is validated by fetching the profile; on any failure the token
// is purged and the session silently degrades to guest. After Initialize
// returns, the session is internally consistent.
func (s *Session) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.store.Get(ctx, storage.KeyToken)
	if err != nil {
		s.log.Error(ctx, "reading stored token, continuing as guest", "err", err)
		return nil
	}
	token := string(raw)
	if token == "" {
		return nil
	}

	s.api.SetToken(token)
	user, err := s.api.Me(ctx)
	if err != nil {
		s.api.ClearToken()
		if derr := s.store.Delete(ctx, storage.KeyToken); derr != nil {
			s.log.Error(ctx, "purging rejected token", "err", derr)
		}
		s.log.Warn(ctx, "stored token rejected, continuing as guest", "err", err)
		return nil
	}

	s.token = token
	s.user = user
	s.log.Info(ctx, "session restored", "user", user.Username)
	return nil
}

// Login exchanges credentials for a token, persists it, then validates it
// by fetching the profile. If the profile fetch fails the token is purged
// and ErrProfileFetch is returned: a login either yields a fully validated
// session or leaves the caller guest. Re-login while authenticated simply
// replaces the identity.
func (s *Session) Login(ctx context.Context, username, password string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	token, err := s.api.ObtainToken(ctx, username, password)
	if err != nil {
		return fmt.Errorf("obtaining token: %w", err)
	}
	if err := s.store.Set(ctx, storage.KeyToken, []byte(token)); err != nil {
		return fmt.Errorf("persisting token: %w", err)
	}

	s.api.SetToken(token)
	user, err := s.api.Me(ctx)
	if err != nil {
		s.api.ClearToken()
		if derr := s.store.Delete(ctx, storage.KeyToken); derr != nil {
			s.log.Error(ctx, "purging token after failed profile fetch", "err", derr)
		}
		s.token = ""
		s.user = nil
		return fmt.Errorf("%w: %s", ErrProfileFetch, err)
	}

	s.token = token
	s.user = user
	s.log.Info(ctx, "logged in", "user", user.Username)
	return nil
}

// Logout purges the durable token and clears the in-memory session.
// It cannot fail and is idempotent; a second call is a no-op.
func (s *Session) Logout(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.Delete(ctx, storage.KeyToken); err != nil {
		s.log.Error(ctx, "purging token on logout", "err", err)
	}
	s.api.ClearToken()
	s.token = ""
	s.user = nil
}

// CurrentUser returns the validated identity, or nil in guest mode.
func (s *Session) CurrentUser() *models.CurrentUser {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.user
}

// IsAuthenticated reports whether a validated token is present.
func (s *Session) IsAuthenticated() bool {
	return s.CurrentUser() != nil
}

// IsStaff reports whether the current user may use the admin surface.
func (s *Session) IsStaff() bool {
	u := s.CurrentUser()
	return u != nil && (u.IsStaff || u.IsSuperuser)
}

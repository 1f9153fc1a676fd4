// Package state holds the process-wide client state and mirrors it to durable storage.
package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"ishakiro/internal/domain/entities"
	"ishakiro/internal/ports/output"
)

// Durable storage keys.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyLanguage = "language"
)

var (
	_ output.TokenSource       = (*SessionStore)(nil)
	_ output.SessionRepository = (*SessionStore)(nil)
	_ output.LocaleRepository  = (*LocaleStore)(nil)
)

// SessionStore owns the token and user of the current session.
// Every mutation updates memory first, then the durable copy, under the same lock.
// A nil storage keeps the session in memory only.
type SessionStore struct {
	mu      sync.Mutex
	token   string
	user    entities.User
	storage output.Storage
	logger  *slog.Logger
}

func NewSessionStore(storage output.Storage, logger *slog.Logger) *SessionStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &SessionStore{storage: storage, logger: logger}
}

// Load seeds the session from durable storage. A corrupt user record is dropped.
func (s *SessionStore) Load(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	token, _, err := s.storage.Get(ctx, KeyToken)
	if err != nil {
		return fmt.Errorf("load token: %w", err)
	}
	raw, ok, err := s.storage.Get(ctx, KeyUser)
	if err != nil {
		return fmt.Errorf("load user: %w", err)
	}

	var user entities.User
	if ok && raw != "" {
		if err := json.Unmarshal([]byte(raw), &user); err != nil {
			s.logger.Warn("state: ignoring unreadable stored user", "error", err)
			user = nil
		}
	}
	s.token = token
	s.user = user
	return nil
}

// Token returns the current bearer token, "" when logged out.
func (s *SessionStore) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// Snapshot returns a copy of the current session.
func (s *SessionStore) Snapshot() entities.Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return entities.Session{
		Token:           s.token,
		User:            copyUser(s.user),
		IsAuthenticated: s.token != "",
	}
}

// Set replaces token and user. Memory is updated even when persisting fails.
func (s *SessionStore) Set(ctx context.Context, token string, user entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	s.user = copyUser(user)
	return s.persist(ctx)
}

// Clear forgets the session and removes its durable keys.
func (s *SessionStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	s.user = nil
	return s.persist(ctx)
}

// persist mirrors token and user. Caller holds mu.
func (s *SessionStore) persist(ctx context.Context) error {
	if s.storage == nil {
		return nil
	}
	var errs []error
	if s.token != "" {
		errs = append(errs, s.storage.Set(ctx, KeyToken, s.token))
	} else {
		errs = append(errs, s.storage.Delete(ctx, KeyToken))
	}
	if s.user != nil {
		data, err := json.Marshal(s.user)
		if err != nil {
			errs = append(errs, fmt.Errorf("encode user: %w", err))
		} else {
			errs = append(errs, s.storage.Set(ctx, KeyUser, string(data)))
		}
	} else {
		errs = append(errs, s.storage.Delete(ctx, KeyUser))
	}
	if err := errors.Join(errs...); err != nil {
		s.logger.Error("state: persist session failed", "error", err)
		return fmt.Errorf("persist session: %w", err)
	}
	return nil
}

func copyUser(u entities.User) entities.User {
	if u == nil {
		return nil
	}
	out := make(entities.User, len(u))
	for k, v := range u {
		out[k] = v
	}
	return out
}

package state

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"ishakiro/internal/ports/output"
)

// LocaleStore owns the active language code.
type LocaleStore struct {
	mu          sync.Mutex
	code        string
	defaultCode string
	storage     output.Storage
	logger      *slog.Logger
}

func NewLocaleStore(defaultCode string, storage output.Storage, logger *slog.Logger) *LocaleStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &LocaleStore{
		code:        defaultCode,
		defaultCode: defaultCode,
		storage:     storage,
		logger:      logger,
	}
}

// Load adopts the stored code when accept reports it as usable; otherwise the code is left unchanged.
func (l *LocaleStore) Load(ctx context.Context, accept func(code string) bool) error {
	if l.storage == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()

	saved, ok, err := l.storage.Get(ctx, KeyLanguage)
	if err != nil {
		return fmt.Errorf("load language: %w", err)
	}
	if !ok || saved == "" {
		return nil
	}
	if accept != nil && !accept(saved) {
		l.logger.Warn("state: ignoring unknown stored language", "language", saved)
		return nil
	}
	l.code = saved
	return nil
}

// Code returns the active language code.
func (l *LocaleStore) Code() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.code
}

// Set changes the active code and persists it. Memory is updated even when persisting fails.
func (l *LocaleStore) Set(ctx context.Context, code string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.code = code
	if l.storage == nil {
		return nil
	}
	if err := l.storage.Set(ctx, KeyLanguage, code); err != nil {
		l.logger.Error("state: persist language failed", "language", code, "error", err)
		return fmt.Errorf("persist language: %w", err)
	}
	return nil
}

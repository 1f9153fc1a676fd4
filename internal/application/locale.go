package application

import (
	"context"
	"strings"

	"ishakiro/internal/domain"
	"ishakiro/internal/ports/output"
)

type LocaleService struct {
	translator output.T
	store      output.LocaleRepository
}

func NewLocaleService(translator output.T, store output.LocaleRepository) *LocaleService {
	return &LocaleService{
		translator: translator,
		store:      store,
	}
}

// SwitchLanguage activates code and persists it. Codes without a table are rejected.
func (s *LocaleService) SwitchLanguage(ctx context.Context, code string) error {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" || !s.translator.Has(code) {
		return domain.ErrUnknownLanguage
	}
	return s.store.Set(ctx, code)
}

// InitLanguage adopts the saved language when a table exists for it.
func (s *LocaleService) InitLanguage(ctx context.Context) error {
	return s.store.Load(ctx, s.translator.Has)
}

func (s *LocaleService) Language() string {
	return s.store.Code()
}

// T renders key in the active language. It never fails: unknown keys come back verbatim.
func (s *LocaleService) T(key string, params map[string]any) string {
	return s.translator.T(s.store.Code(), key, params)
}

// Lookup resolves a dotted path such as "errors.cannotConnect" without parameters.
func (s *LocaleService) Lookup(path string) string {
	return s.T(path, nil)
}

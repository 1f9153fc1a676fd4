package input

import "context"

type LocaleUseCase interface {
	SwitchLanguage(ctx context.Context, code string) error
	InitLanguage(ctx context.Context) error
	Language() string
	T(key string, params map[string]any) string
	Lookup(path string) string
}

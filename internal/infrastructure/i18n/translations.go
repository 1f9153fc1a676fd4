package i18n

import (
	"embed"
	"fmt"
	"io/fs"
	"log/slog"
	"path"
	"sort"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"ishakiro/internal/ports/output"
)

//go:embed active.*.toml
var localeFS embed.FS

// DefaultLocale is the locale every lookup falls back to.
const DefaultLocale = "en"

// Ensure Translator implements the output.T port.
var _ output.T = (*Translator)(nil)

// Translator resolves message keys against static per-locale tables.
// Tables are immutable after construction, so a Translator is safe for concurrent use.
type Translator struct {
	tables        map[string]map[string]string
	defaultLocale string
	logger        *slog.Logger
}

// NewTranslator builds a Translator from the embedded active.*.toml tables.
func NewTranslator(logger *slog.Logger) (*Translator, error) {
	return LoadFS(localeFS, DefaultLocale, logger)
}

// LoadFS reads every active.<locale>.toml file at the root of fsys.
// Top-level keys are flat message ids; keys inside a TOML table are addressed as "table.key".
func LoadFS(fsys fs.FS, defaultLocale string, logger *slog.Logger) (*Translator, error) {
	if logger == nil {
		logger = slog.Default()
	}
	files, err := fs.Glob(fsys, "active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("i18n: glob tables: %w", err)
	}
	sort.Strings(files)

	t := &Translator{
		tables:        make(map[string]map[string]string, len(files)),
		defaultLocale: defaultLocale,
		logger:        logger,
	}
	for _, file := range files {
		locale := strings.TrimSuffix(strings.TrimPrefix(path.Base(file), "active."), ".toml")
		if _, err := language.Parse(locale); err != nil {
			return nil, fmt.Errorf("i18n: %s: invalid locale %q: %w", file, locale, err)
		}
		data, err := fs.ReadFile(fsys, file)
		if err != nil {
			return nil, fmt.Errorf("i18n: read %s: %w", file, err)
		}
		var raw map[string]any
		if err := toml.Unmarshal(data, &raw); err != nil {
			return nil, fmt.Errorf("i18n: parse %s: %w", file, err)
		}
		messages := make(map[string]string)
		if err := flatten("", raw, messages); err != nil {
			return nil, fmt.Errorf("i18n: %s: %w", file, err)
		}
		t.tables[locale] = messages
	}

	if len(t.tables[defaultLocale]) == 0 {
		return nil, fmt.Errorf("i18n: default locale %q has no messages", defaultLocale)
	}
	return t, nil
}

func flatten(prefix string, raw map[string]any, out map[string]string) error {
	for key, value := range raw {
		id := key
		if prefix != "" {
			id = prefix + "." + key
		}
		switch v := value.(type) {
		case string:
			out[id] = v
		case map[string]any:
			if err := flatten(id, v, out); err != nil {
				return err
			}
		default:
			return fmt.Errorf("key %q: expected string or table, got %T", id, value)
		}
	}
	return nil
}

// T renders the message identified by key for the given locale.
// If the key is missing for locale it falls back to the default locale,
// then finally to the key itself.
func (t *Translator) T(locale, key string, params map[string]any) string {
	if key == "" {
		return ""
	}
	template, ok := t.lookup(locale, key)
	if !ok {
		t.logger.Debug("i18n: missing key", "key", key, "locale", locale)
		return key
	}
	return substitute(template, params)
}

func (t *Translator) lookup(locale, key string) (string, bool) {
	if resolved := t.Resolve(locale); resolved != "" {
		if msg, ok := t.tables[resolved][key]; ok {
			return msg, true
		}
	}
	msg, ok := t.tables[t.defaultLocale][key]
	return msg, ok
}

// Resolve maps a locale code to the table that serves it, or "" when no table does.
// "RW" and "rw-RW" both resolve to "rw".
func (t *Translator) Resolve(locale string) string {
	code := strings.TrimSpace(locale)
	if code == "" {
		return ""
	}
	if _, ok := t.tables[code]; ok {
		return code
	}
	tag, err := language.Parse(code)
	if err != nil {
		return ""
	}
	if _, ok := t.tables[tag.String()]; ok {
		return tag.String()
	}
	base, _ := tag.Base()
	if _, ok := t.tables[base.String()]; ok {
		return base.String()
	}
	return ""
}

// Has reports whether locale is served by its own table.
func (t *Translator) Has(locale string) bool {
	return t.Resolve(locale) != ""
}

// Locales returns the available locale codes in sorted order.
func (t *Translator) Locales() []string {
	out := make([]string, 0, len(t.tables))
	for locale := range t.tables {
		out = append(out, locale)
	}
	sort.Strings(out)
	return out
}

// substitute replaces every {name} whose name is present in params.
// Unknown placeholders and unbalanced braces are kept verbatim.
func substitute(template string, params map[string]any) string {
	if len(params) == 0 || !strings.Contains(template, "{") {
		return template
	}
	var b strings.Builder
	b.Grow(len(template))
	rest := template
	for {
		open := strings.IndexByte(rest, '{')
		if open < 0 {
			b.WriteString(rest)
			break
		}
		end := strings.IndexByte(rest[open+1:], '}')
		if end < 0 {
			b.WriteString(rest)
			break
		}
		end += open + 1
		name := rest[open+1 : end]
		value, ok := params[name]
		if !ok || strings.ContainsRune(name, '{') {
			b.WriteString(rest[:open+1])
			rest = rest[open+1:]
			continue
		}
		b.WriteString(rest[:open])
		b.WriteString(fmt.Sprint(value))
		rest = rest[end+1:]
	}
	return b.String()
}

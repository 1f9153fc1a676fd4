package i18n

import (
	"testing"
	"testing/fstest"
)

func newTestTranslator(t *testing.T) *Translator {
	t.Helper()
	tr, err := NewTranslator(nil)
	if err != nil {
		t.Fatalf("NewTranslator: %v", err)
	}
	return tr
}

func TestTranslator_T_Locales(t *testing.T) {
	tr := newTestTranslator(t)

	tests := []struct {
		locale string
		key    string
		want   string
	}{
		{"en", "home", "Home"},
		{"rw", "home", "Ahabanza"},
		{"RW", "home", "Ahabanza"},
		{"rw-RW", "home", "Ahabanza"},
		{"fr", "home", "Home"},
		{"", "home", "Home"},
		{"not a locale", "home", "Home"},
		{"en", "doesNotExist", "doesNotExist"},
		{"rw", "doesNotExist", "doesNotExist"},
		{"en", "errors.loginFailed", "Login failed"},
		{"rw", "errors.loginFailed", "Kwinjira byanze"},
		{"en", "madeWithLove", "Made with ❤️ for Rwanda"},
	}
	for _, tt := range tests {
		if got := tr.T(tt.locale, tt.key, nil); got != tt.want {
			t.Errorf("T(%q, %q) = %q, want %q", tt.locale, tt.key, got, tt.want)
		}
	}
}

func TestTranslator_T_EmptyKey(t *testing.T) {
	tr := newTestTranslator(t)
	if got := tr.T("en", "", nil); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestTranslator_T_Params(t *testing.T) {
	tr := newTestTranslator(t)

	if got := tr.T("en", "noItemsYet", map[string]any{"filter": "lost"}); got != "No lost items yet" {
		t.Errorf("en: got %q", got)
	}
	if got := tr.T("rw", "noItemsYet", map[string]any{"filter": "lost"}); got != "Nta bintu lost bigezweho" {
		t.Errorf("rw: got %q", got)
	}
	if got := tr.T("en", "noItemsYet", nil); got != "No {filter} items yet" {
		t.Errorf("without params: got %q", got)
	}
	if got := tr.T("en", "noItemsYet", map[string]any{"other": "x"}); got != "No {filter} items yet" {
		t.Errorf("unmatched params: got %q", got)
	}
}

func TestTranslator_FallbackToDefaultForMissingKey(t *testing.T) {
	fsys := fstest.MapFS{
		"active.en.toml": {Data: []byte("home = \"Home\"\nonlyEnglish = \"English only\"\n")},
		"active.rw.toml": {Data: []byte("home = \"Ahabanza\"\n")},
	}
	tr, err := LoadFS(fsys, "en", nil)
	if err != nil {
		t.Fatalf("LoadFS: %v", err)
	}
	if got := tr.T("rw", "onlyEnglish", nil); got != "English only" {
		t.Errorf("got %q, want fallback to en", got)
	}
}

func TestLoadFS_RequiresDefaultLocale(t *testing.T) {
	fsys := fstest.MapFS{
		"active.rw.toml": {Data: []byte("home = \"Ahabanza\"\n")},
	}
	if _, err := LoadFS(fsys, "en", nil); err == nil {
		t.Fatal("expected error when default locale is missing")
	}
}

func TestLoadFS_RejectsNonStringValues(t *testing.T) {
	fsys := fstest.MapFS{
		"active.en.toml": {Data: []byte("home = 1\n")},
	}
	if _, err := LoadFS(fsys, "en", nil); err == nil {
		t.Fatal("expected error for non-string message")
	}
}

func TestTranslator_HasAndLocales(t *testing.T) {
	tr := newTestTranslator(t)

	if !tr.Has("en") || !tr.Has("rw") {
		t.Error("expected en and rw tables")
	}
	if tr.Has("fr") {
		t.Error("fr should not be available")
	}
	locales := tr.Locales()
	if len(locales) != 2 || locales[0] != "en" || locales[1] != "rw" {
		t.Errorf("Locales() = %v", locales)
	}
}

func TestTranslator_TablesHaveSameKeys(t *testing.T) {
	tr := newTestTranslator(t)
	for key := range tr.tables["en"] {
		if _, ok := tr.tables["rw"][key]; !ok {
			t.Errorf("rw is missing key %q", key)
		}
	}
}

func TestSubstitute(t *testing.T) {
	tests := []struct {
		name     string
		template string
		params   map[string]any
		want     string
	}{
		{"no placeholders", "Home", map[string]any{"a": 1}, "Home"},
		{"repeated", "{a} and {a}", map[string]any{"a": "x"}, "x and x"},
		{"non-string value", "{n} items", map[string]any{"n": 3}, "3 items"},
		{"unbalanced", "open { brace", map[string]any{"a": "x"}, "open { brace"},
		{"nested braces", "{{a}}", map[string]any{"a": "x"}, "{x}"},
		{"value with braces is not re-expanded", "{a} {b}", map[string]any{"a": "{b}", "b": "y"}, "{b} y"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := substitute(tt.template, tt.params); got != tt.want {
				t.Errorf("substitute(%q) = %q, want %q", tt.template, got, tt.want)
			}
		})
	}
}

package output

// T is the translation contract for user-facing text.
type T interface {
	// T renders the message identified by key for the given locale.
	// params fills {name} placeholders and may be nil.
	T(locale, key string, params map[string]any) string
	// Has reports whether locale has its own table.
	Has(locale string) bool
}

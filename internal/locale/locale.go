// Package locale maps the application's supported locale codes to the
// language names used when instructing the LLM.
package locale

import "strings"

// DefaultLocale is used when a requested locale is unknown or empty.
const DefaultLocale = "en"

// languageNames maps supported locale codes to English language names.
var languageNames = map[string]string{
	"en": "English",
	"fr": "French",
	"de": "German",
	"it": "Italian",
}

// Supported reports whether the locale code is one the application handles.
func Supported(code string) bool {
	_, ok := languageNames[strings.ToLower(code)]
	return ok
}

// Normalize lowercases the locale code and falls back to the default for
// unknown or empty values.
func Normalize(code string) string {
	code = strings.ToLower(strings.TrimSpace(code))
	if _, ok := languageNames[code]; ok {
		return code
	}
	return DefaultLocale
}

// LanguageName returns the language name for a locale code, defaulting to
// English for unknown codes.
func LanguageName(code string) string {
	if name, ok := languageNames[strings.ToLower(code)]; ok {
		return name
	}
	return "English"
}

// All returns the supported locale codes in a stable order.
func All() []string {
	return []string{"en", "fr", "de", "it"}
}

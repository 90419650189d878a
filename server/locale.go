package server

import (
	"net/http"
	"strings"

	"golang.org/x/text/language"
)

// DefaultLocale is used when the client expresses no usable preference.
const DefaultLocale = "en"

// SupportedLocales lists the locales pages are served under. The default
// locale must come first so the language matcher falls back to it.
var SupportedLocales = []string{"en", "fr"}

// Locales answers locale questions for the edge gate: whether a path
// carries a locale prefix, and which locale to redirect a bare path to.
type Locales struct {
	supported []string
	matcher   language.Matcher
}

func NewLocales() *Locales {
	tags := make([]language.Tag, len(SupportedLocales))
	for i, locale := range SupportedLocales {
		tags[i] = language.Make(locale)
	}
	return &Locales{
		supported: SupportedLocales,
		matcher:   language.NewMatcher(tags),
	}
}

// Contains reports whether the given string is a supported locale.
func (l *Locales) Contains(locale string) bool {
	for _, supported := range l.supported {
		if locale == supported {
			return true
		}
	}
	return false
}

// FromPath returns the locale prefix of the path, if it has one.
// "/en" and "/en/dashboard" carry a locale; "/enx/dashboard" does not.
func (l *Locales) FromPath(path string) (string, bool) {
	seg, _, _ := strings.Cut(strings.TrimPrefix(path, "/"), "/")
	if l.Contains(seg) {
		return seg, true
	}
	return "", false
}

// Strip removes the locale prefix and returns (locale, rest). The rest is
// always a rooted path; "/en" strips to "/".
func (l *Locales) Strip(path string) (string, string) {
	locale, ok := l.FromPath(path)
	if !ok {
		return "", path
	}
	rest := strings.TrimPrefix(path, "/"+locale)
	if rest == "" {
		rest = "/"
	}
	return locale, rest
}

// Negotiate picks the locale for a request without a locale prefix, by
// matching the Accept-Language header against the supported locales. The
// default locale wins when the header is absent or unintelligible.
func (l *Locales) Negotiate(r *http.Request) string {
	accept := r.Header.Get("Accept-Language")
	if accept == "" {
		return DefaultLocale
	}

	tags, _, err := language.ParseAcceptLanguage(accept)
	if err != nil || len(tags) == 0 {
		return DefaultLocale
	}

	_, index, _ := l.matcher.Match(tags...)
	return l.supported[index]
}

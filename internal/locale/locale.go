// Package locale maps URL paths to supported locales and back. All
// functions are pure; callers pass URL paths without query strings.
package locale

import "strings"

// Locale is a supported language code. Non-default locales appear as the
// first URL path segment; the default locale has no prefix.
type Locale string

const (
	English    Locale = "en"
	Portuguese Locale = "pt"
	Spanish    Locale = "es"
	French     Locale = "fr"

	// Default is the locale that carries no URL prefix.
	Default = English
)

// Supported lists every locale the application can render.
var Supported = []Locale{English, Portuguese, Spanish, French}

// Parse returns the supported locale matching s (case-insensitive).
func Parse(s string) (Locale, bool) {
	c := Locale(strings.ToLower(strings.TrimSpace(s)))
	for _, l := range Supported {
		if c == l {
			return l, true
		}
	}
	return "", false
}

// IsDefault reports whether l is the prefixless default locale.
func IsDefault(l Locale) bool { return l == Default }

// ResolveFromPath inspects the first path segment and returns the
// matching non-default locale. Unknown prefixes and the default locale
// both yield ok=false: the path encodes no locale.
func ResolveFromPath(path string) (Locale, bool) {
	seg := firstSegment(path)
	if seg == "" {
		return "", false
	}
	l, ok := Parse(seg)
	if !ok || IsDefault(l) {
		return "", false
	}
	return l, true
}

// StripFromPath removes a leading recognized locale segment. Paths
// without one are returned unchanged apart from normalization; the
// result always begins with "/" and never carries a trailing slash
// except for the root path itself.
func StripFromPath(path string) string {
	p := normalize(path)
	if _, ok := ResolveFromPath(p); !ok {
		return p
	}
	rest := p[1:]
	if i := strings.Index(rest, "/"); i >= 0 {
		return normalize(rest[i:])
	}
	return "/"
}

// BuildLocalizedPath strips any existing locale prefix from path and
// re-adds the prefix for l. The default locale produces a bare path.
// Idempotent under repeated application with the same locale.
func BuildLocalizedPath(path string, l Locale) string {
	p := StripFromPath(path)
	if IsDefault(l) {
		return p
	}
	if p == "/" {
		return "/" + string(l)
	}
	return "/" + string(l) + p
}

// firstSegment returns the first path segment without surrounding
// slashes, or "" for the root path.
func firstSegment(path string) string {
	p := strings.TrimPrefix(normalize(path), "/")
	if i := strings.Index(p, "/"); i >= 0 {
		return p[:i]
	}
	return p
}

// normalize guarantees a leading "/" and drops any trailing slash so
// "/pt/" and "/pt" resolve identically. Root stays "/".
func normalize(path string) string {
	p := strings.TrimSpace(path)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	for len(p) > 1 && strings.HasSuffix(p, "/") {
		p = p[:len(p)-1]
	}
	return p
}

// Package pathutil holds the path notation rules shared by the shell and the
// completion engine: home marker expansion and separator handling.
package pathutil

import (
	"path/filepath"
	"strings"
)

const (
	// HomeMarker is the leading token that stands for the home directory.
	HomeMarker = "~"
	// Slash is the forward separator glyph.
	Slash = '/'
	// Backslash is the backward separator glyph.
	Backslash = '\\'
)

// IsSeparator reports whether c is one of the two accepted separator glyphs
func IsSeparator(c byte) bool {
	return c == Slash || c == Backslash
}

// DetectSeparator returns whichever separator glyph appears first in s,
// or the platform separator when s contains neither.
func DetectSeparator(s string) byte {
	if i := strings.IndexAny(s, `/\`); i >= 0 {
		return s[i]
	}
	return filepath.Separator
}

// Normalize rewrites every separator glyph in s to sep
func Normalize(s string, sep byte) string {
	if !strings.ContainsAny(s, `/\`) {
		return s
	}
	b := []byte(s)
	for i := range b {
		if IsSeparator(b[i]) {
			b[i] = sep
		}
	}
	return string(b)
}

// LastSeparator returns the index of the last separator glyph in s, or -1.
func LastSeparator(s string) int {
	return strings.LastIndexAny(s, `/\`)
}

// ExpandHome replaces a leading home marker with home.
// Only "~" and "~" followed by a separator are expanded; "~user" is left
// untouched. An empty home leaves p unchanged.
func ExpandHome(p, home string) string {
	if home == "" || !strings.HasPrefix(p, HomeMarker) {
		return p
	}
	rest := p[len(HomeMarker):]
	if rest != "" && !IsSeparator(rest[0]) {
		return p
	}
	return filepath.Join(home, filepath.FromSlash(Normalize(rest, Slash)))
}

// Resolve makes p absolute, resolving relative paths against cwd
func Resolve(p, cwd string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(cwd, p)
}

// AbbreviateHome replaces a leading home directory in p with the home marker.
// The match must end on a path component boundary.
func AbbreviateHome(p, home string) string {
	home = strings.TrimRight(home, `/\`)
	if home == "" || !strings.HasPrefix(p, home) {
		return p
	}
	rest := p[len(home):]
	if rest != "" && !IsSeparator(rest[0]) {
		return p
	}
	return HomeMarker + rest
}

package completion

import (
	"path/filepath"
	"regexp"
	"strings"

	"github.com/NikitaCOEUR/navsh/internal/pathutil"
)

// cdPattern matches the cd invocation form completion applies to
var cdPattern = regexp.MustCompile(`^(\s*cd\s+)(.*)$`)

// ParsedTarget is the breakdown of a partially typed cd argument
type ParsedTarget struct {
	Prefix      string   // Matched "cd " invocation text, verbatim
	Typed       string   // Argument as typed
	Sep         byte     // Separator glyph the user is typing with
	TypedBase   string   // Typed text through the last separator, original glyphs
	Base        string   // TypedBase with native separators
	Name        string   // Text after the last separator, used as a prefix filter
	EndsWithSep bool     // Typed ends exactly at a separator
	BaseDir     string   // Absolute directory the candidates live in
	ShownBase   string   // Base as it should be displayed, without trailing separator
	Siblings    []string // Matching subdirectories of BaseDir, sorted
}

// Parse breaks line into a ParsedTarget, resolving relative bases against cwd.
// It returns false when line is not a cd invocation with an argument slot.
func (e *Engine) Parse(line, cwd string) (*ParsedTarget, bool) {
	m := cdPattern.FindStringSubmatch(line)
	if m == nil {
		return nil, false
	}

	t := &ParsedTarget{
		Prefix: m[1],
		Typed:  m[2],
		Sep:    pathutil.DetectSeparator(m[2]),
	}

	unified := pathutil.Normalize(t.Typed, filepath.Separator)
	last := pathutil.LastSeparator(unified)
	if last >= 0 {
		t.TypedBase = t.Typed[:last+1]
		t.Base = unified[:last+1]
		t.Name = unified[last+1:]
		t.EndsWithSep = last == len(unified)-1
	} else {
		t.Name = unified
	}

	home := e.fs.HomeDir()

	t.BaseDir = cwd
	if t.Base != "" {
		t.BaseDir = pathutil.Resolve(pathutil.ExpandHome(t.Base, home), cwd)
	}

	t.ShownBase = shownBase(t, home)
	t.Siblings = e.siblings(t.BaseDir, t.Name)

	return t, true
}

// shownBase renders the base the way the user typed it: same separator glyph,
// home marker kept when the base came from one.
func shownBase(t *ParsedTarget, home string) string {
	if t.Base == "" {
		return ""
	}

	sep := string(t.Sep)

	if strings.HasPrefix(t.TypedBase, pathutil.HomeMarker) && home != "" {
		abs := pathutil.ExpandHome(t.Base, home)
		if rel := pathutil.AbbreviateHome(abs, home); rel != abs {
			return strings.TrimSuffix(pathutil.Normalize(rel, t.Sep), sep)
		}
	}

	return strings.TrimSuffix(pathutil.Normalize(t.TypedBase, t.Sep), sep)
}

// siblings lists subdirectories of dir whose name starts with prefix,
// ignoring case, in collation order.
func (e *Engine) siblings(dir, prefix string) []string {
	lowered := strings.ToLower(prefix)

	var matches []string
	for _, name := range e.fs.ListSubdirs(dir) {
		if strings.HasPrefix(strings.ToLower(name), lowered) {
			matches = append(matches, name)
		}
	}

	e.collator.SortStrings(matches)
	return matches
}

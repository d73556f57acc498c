// Package completion completes the directory argument of the cd built-in.
//
// Repeated requests for the same line cycle through the matching
// subdirectories one at a time. The cycle is frozen on its first request and
// only restarts when the working directory, the cd prefix, or the typed base
// path changes, or when the host calls Reset.
package completion

// Span is the byte range [Start, End) of the input line a suggestion replaces
type Span struct {
	Start int
	End   int
}

// Suggestion is a single completion proposal
type Suggestion struct {
	Text string // Replacement text for Span
	Span Span
}

// Apply returns line with the suggestion substituted into its span
func (s Suggestion) Apply(line string) string {
	return line[:s.Span.Start] + s.Text + line[s.Span.End:]
}

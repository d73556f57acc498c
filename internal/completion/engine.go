package completion

import (
	"context"

	"github.com/NikitaCOEUR/navsh/internal/fsquery"
	"github.com/NikitaCOEUR/navsh/internal/logger"
	"github.com/NikitaCOEUR/navsh/internal/trace"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// keySep joins cycle key parts; it cannot occur in a path
const keySep = "\x00"

// cycleState is the frozen candidate list of an ongoing cycle.
// idx is always a valid index into candidates, which is never empty.
type cycleState struct {
	key        string
	candidates []string
	idx        int
}

// Engine completes cd arguments and remembers the current cycle.
// It is not safe for concurrent use.
type Engine struct {
	fs       fsquery.FS
	collator *collate.Collator
	log      *logger.Logger
	cycle    *cycleState
}

// NewEngine creates a completion engine reading the filesystem through fs
func NewEngine(fs fsquery.FS, log *logger.Logger) *Engine {
	if log == nil {
		log = logger.Nop()
	}
	return &Engine{
		fs:       fs,
		collator: collate.New(language.Und),
		log:      log.Component("completion"),
	}
}

// Complete proposes the next directory for the cd argument in line.
// cwd is read once and used as a snapshot for the whole query.
func (e *Engine) Complete(ctx context.Context, line string, cwd func() string) (Suggestion, bool) {
	defer trace.Region(ctx, "completion")()

	dir := cwd()
	t, ok := e.Parse(line, dir)
	if !ok {
		return Suggestion{}, false
	}

	key := dir + keySep + t.Prefix + keySep + t.TypedBase

	var next cycleState
	continued := e.cycle != nil && e.cycle.key == key
	if continued {
		next = cycleState{
			key:        key,
			candidates: e.cycle.candidates,
			idx:        (e.cycle.idx + 1) % len(e.cycle.candidates),
		}
	} else {
		next = cycleState{key: key, candidates: t.Siblings}
	}

	if len(next.candidates) == 0 {
		e.log.Debug().Str("line", line).Str("base_dir", t.BaseDir).Msg("No directory candidates")
		return Suggestion{}, false
	}

	e.cycle = &next
	choice := next.candidates[next.idx]

	e.log.Debug().
		Str("line", line).
		Str("base_dir", t.BaseDir).
		Int("candidates", len(next.candidates)).
		Int("index", next.idx).
		Bool("continued", continued).
		Msg("Directory completion")

	text := choice
	if t.Base != "" {
		text = t.ShownBase + string(t.Sep) + choice
	}
	trace.Log(ctx, "completion", text)

	return Suggestion{
		Text: text,
		Span: Span{Start: len(t.Prefix), End: len(line)},
	}, true
}

// Reset forgets the current cycle. The host calls it once per submitted line.
func (e *Engine) Reset() {
	e.cycle = nil
}

// Package repl is the navsh host loop: it reads lines, feeds completion
// requests to the completion engine and submitted lines to the shell.
package repl

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/NikitaCOEUR/navsh/internal/completion"
	"github.com/NikitaCOEUR/navsh/internal/derrors"
	"github.com/NikitaCOEUR/navsh/internal/logger"
	"github.com/NikitaCOEUR/navsh/internal/prompt"
	"github.com/NikitaCOEUR/navsh/internal/shell"
	"golang.org/x/term"
)

// Loop owns the shell state between lines. It processes one line at a time.
type Loop struct {
	machine   *shell.Machine
	completer *completion.Engine
	prompt    *prompt.Renderer
	log       *logger.Logger
	state     shell.State

	// ctx is the session context, set while RunTerminal or RunLines runs
	ctx context.Context
}

// New creates a loop starting from the given state
func New(machine *shell.Machine, completer *completion.Engine, renderer *prompt.Renderer, initial shell.State, log *logger.Logger) *Loop {
	if log == nil {
		log = logger.Nop()
	}
	return &Loop{
		machine:   machine,
		completer: completer,
		prompt:    renderer,
		log:       log.Component("repl"),
		state:     initial,
	}
}

// State returns the current shell state
func (l *Loop) State() shell.State {
	return l.state
}

// Prompt renders the prompt for the current state
func (l *Loop) Prompt() string {
	return l.prompt.Render(l.machine.DisplayPath(l.state))
}

// Submit processes one submitted line and returns the text to print.
// quit is true when the line asked to end the session.
func (l *Loop) Submit(ctx context.Context, line string) (out string, quit bool) {
	l.completer.Reset()

	res, err := l.machine.Execute(ctx, line, l.state)
	if errors.Is(err, shell.ErrQuit) {
		return "", true
	}
	l.state = res.State

	var b strings.Builder
	writeLine(&b, res.Output)
	if err != nil {
		entry := l.log.Debug().Str("line", line).Err(err)
		var coded derrors.NavshError
		if errors.As(err, &coded) {
			entry = entry.Str("code", coded.Code())
		}
		entry.Msg("Line failed")
		writeLine(&b, err.Error())
	}
	return b.String(), false
}

func writeLine(b *strings.Builder, s string) {
	if s == "" {
		return
	}
	b.WriteString(s)
	if !strings.HasSuffix(s, "\n") {
		b.WriteByte('\n')
	}
}

// AutoComplete is a term.Terminal AutoCompleteCallback completing on Tab.
// The text left of the cursor is completed; the text right of it is kept.
func (l *Loop) AutoComplete(line string, pos int, key rune) (string, int, bool) {
	if key != '\t' {
		return "", 0, false
	}

	head, tail := line[:pos], line[pos:]
	s, ok := l.completer.Complete(l.sessionContext(), head, func() string { return l.state.Cwd })
	if !ok {
		return "", 0, false
	}

	head = s.Apply(head)
	return head + tail, len(head), true
}

func (l *Loop) sessionContext() context.Context {
	if l.ctx == nil {
		return context.Background()
	}
	return l.ctx
}

// Run drives the loop from in until end of input or a quit alias.
// A terminal gets raw-mode line editing with Tab completion; anything else
// is read line by line.
func (l *Loop) Run(ctx context.Context, in *os.File, out io.Writer) error {
	fd := int(in.Fd())
	if !term.IsTerminal(fd) {
		return l.RunLines(ctx, in, out)
	}

	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enter raw mode: %w", err)
	}
	defer func() { _ = term.Restore(fd, oldState) }()

	t := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, out}, "")

	// Delegated commands run with the terminal back in cooked mode
	cooked := func() func() {
		_ = term.Restore(fd, oldState)
		return func() { _, _ = term.MakeRaw(fd) }
	}

	return l.RunTerminal(ctx, t, cooked)
}

// RunTerminal reads lines from t. cooked, when non-nil, is called around
// each submitted line and returns the function that undoes it.
func (l *Loop) RunTerminal(ctx context.Context, t *term.Terminal, cooked func() func()) error {
	l.ctx = ctx
	defer func() { l.ctx = nil }()
	t.AutoCompleteCallback = l.AutoComplete

	for {
		t.SetPrompt(l.Prompt())

		line, err := t.ReadLine()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read line: %w", err)
		}

		resume := func() {}
		if cooked != nil {
			resume = cooked()
		}
		out, quit := l.Submit(ctx, line)
		resume()

		if quit {
			return nil
		}
		if _, err := io.WriteString(t, out); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
}

// RunLines reads newline-terminated lines from in, without completion
func (l *Loop) RunLines(ctx context.Context, in io.Reader, out io.Writer) error {
	l.ctx = ctx
	defer func() { l.ctx = nil }()
	scanner := bufio.NewScanner(in)

	for {
		if _, err := io.WriteString(out, l.Prompt()); err != nil {
			return fmt.Errorf("failed to write prompt: %w", err)
		}

		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return fmt.Errorf("failed to read line: %w", err)
			}
			return nil
		}

		text, quit := l.Submit(ctx, scanner.Text())
		if quit {
			return nil
		}
		if _, err := io.WriteString(out, text); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
}

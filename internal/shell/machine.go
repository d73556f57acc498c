package shell

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/NikitaCOEUR/navsh/internal/executor"
	"github.com/NikitaCOEUR/navsh/internal/fsquery"
	"github.com/NikitaCOEUR/navsh/internal/logger"
	"github.com/NikitaCOEUR/navsh/internal/pathutil"
)

// ErrQuit is returned when the line is one of the quit aliases.
// The host must exit with status 0.
var ErrQuit = errors.New("quit")

// QuitAliases are the literal lines that end the session
var QuitAliases = []string{":q", ":quit", ":exit"}

const (
	cdBuiltin  = "cd"
	pwdBuiltin = "pwd"
	prevMarker = "-"
)

// Machine dispatches command lines against a State
type Machine struct {
	fs   fsquery.FS
	exec executor.Executor
	log  *logger.Logger
}

// NewMachine creates a state machine delegating unknown commands to exec
func NewMachine(fs fsquery.FS, exec executor.Executor, log *logger.Logger) *Machine {
	if log == nil {
		log = logger.Nop()
	}
	return &Machine{fs: fs, exec: exec, log: log.Component("shell")}
}

// Execute runs one raw input line against st.
//
// Built-ins are checked in order: quit aliases, cd, pwd. Anything else is
// handed verbatim to the executor in st.Cwd. The returned state is st unless
// a cd succeeded. A failing delegated command returns its captured output
// together with the executor's error.
func (m *Machine) Execute(ctx context.Context, raw string, st State) (Result, error) {
	cmd := strings.TrimSpace(raw)
	if cmd == "" {
		return Result{State: st}, nil
	}

	if isQuit(cmd) {
		return Result{State: st}, ErrQuit
	}

	if arg, ok := parseCd(cmd); ok {
		return m.changeDir(arg, st), nil
	}

	if cmd == pwdBuiltin {
		return Result{Output: st.Cwd, State: st}, nil
	}

	output, err := m.exec.Execute(ctx, cmd, st.Cwd)
	if err != nil {
		m.log.Debug().Str("command", cmd).Err(err).Msg("Delegated command failed")
		return Result{Output: output, State: st}, err
	}
	return Result{Output: output, State: st}, nil
}

// DisplayPath renders the working directory for the prompt, with the home
// directory abbreviated to the home marker.
func (m *Machine) DisplayPath(st State) string {
	return pathutil.AbbreviateHome(st.Cwd, m.fs.HomeDir())
}

func (m *Machine) changeDir(arg string, st State) Result {
	target := m.resolveTarget(arg, st)

	if !m.fs.IsDir(target) {
		m.log.Debug().Str("arg", arg).Str("target", target).Msg("Directory change rejected")
		return Result{Output: fmt.Sprintf("cd: no such directory: %s", arg), State: st}
	}

	m.log.Debug().Str("from", st.Cwd).Str("to", target).Msg("Directory changed")
	return Result{State: State{Cwd: target, PrevCwd: st.Cwd}}
}

// resolveTarget turns a cd argument into an absolute path
func (m *Machine) resolveTarget(arg string, st State) string {
	switch arg {
	case "":
		if home := m.fs.HomeDir(); home != "" {
			return home
		}
		return st.Cwd
	case prevMarker:
		return st.PrevCwd
	}

	expanded := pathutil.ExpandHome(arg, m.fs.HomeDir())
	return pathutil.Resolve(pathutil.Normalize(expanded, filepath.Separator), st.Cwd)
}

// parseCd reports whether cmd is the cd built-in and returns its argument.
// The argument is the trimmed remainder, so paths containing spaces survive.
func parseCd(cmd string) (string, bool) {
	if cmd == cdBuiltin {
		return "", true
	}
	rest, ok := strings.CutPrefix(cmd, cdBuiltin)
	if !ok || rest == "" || !unicode.IsSpace(rune(rest[0])) {
		return "", false
	}
	return strings.TrimSpace(rest), true
}

func isQuit(cmd string) bool {
	for _, alias := range QuitAliases {
		if cmd == alias {
			return true
		}
	}
	return false
}

package repl

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/NikitaCOEUR/navsh/internal/completion"
	"github.com/NikitaCOEUR/navsh/internal/executor"
	"github.com/NikitaCOEUR/navsh/internal/fsquery"
	"github.com/NikitaCOEUR/navsh/internal/logger"
	"github.com/NikitaCOEUR/navsh/internal/prompt"
	"github.com/NikitaCOEUR/navsh/internal/shell"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/term"
)

// newTestLoop builds a loop over a temp home with Desktop, Documents and
// Downloads, starting in that home.
func newTestLoop(t *testing.T) (*Loop, string) {
	t.Helper()

	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	home := t.TempDir()
	for _, name := range []string{"Desktop", "Documents", "Downloads"} {
		require.NoError(t, os.Mkdir(filepath.Join(home, name), 0755))
	}

	fs := fsquery.OS{Home: home}
	machine := shell.NewMachine(fs, executor.NewSh(nil, nil), nil)
	renderer, err := prompt.New(prompt.DefaultOptions())
	require.NoError(t, err)

	return New(machine, completion.NewEngine(fs, nil), renderer, shell.NewState(home), nil), home
}

func TestSubmit(t *testing.T) {
	loop, home := newTestLoop(t)
	ctx := context.Background()

	out, quit := loop.Submit(ctx, "pwd")
	assert.False(t, quit)
	assert.Equal(t, home+"\n", out)

	out, quit = loop.Submit(ctx, "cd Documents")
	assert.False(t, quit)
	assert.Equal(t, "", out)
	assert.Equal(t, filepath.Join(home, "Documents"), loop.State().Cwd)

	out, _ = loop.Submit(ctx, "cd nowhere")
	assert.Equal(t, "cd: no such directory: nowhere\n", out)

	out, _ = loop.Submit(ctx, "echo delegated")
	assert.Equal(t, "delegated\n", out)

	out, _ = loop.Submit(ctx, "echo partial; exit 4")
	assert.True(t, strings.HasPrefix(out, "partial\n"))
	assert.Contains(t, out, "4")

	_, quit = loop.Submit(ctx, ":q")
	assert.True(t, quit)
}

func TestSubmit_ResetsCompletionCycle(t *testing.T) {
	loop, _ := newTestLoop(t)
	ctx := context.Background()

	line, _, ok := loop.AutoComplete("cd Do", 5, '\t')
	require.True(t, ok)
	assert.Equal(t, "cd Documents", line)

	loop.Submit(ctx, "")

	line, _, ok = loop.AutoComplete("cd Do", 5, '\t')
	require.True(t, ok)
	assert.Equal(t, "cd Documents", line)
}

func TestAutoComplete(t *testing.T) {
	loop, _ := newTestLoop(t)

	line, pos, ok := loop.AutoComplete("cd Do", 5, '\t')
	require.True(t, ok)
	assert.Equal(t, "cd Documents", line)
	assert.Equal(t, len("cd Documents"), pos)

	line, pos, ok = loop.AutoComplete(line, pos, '\t')
	require.True(t, ok)
	assert.Equal(t, "cd Downloads", line)

	line, _, ok = loop.AutoComplete(line, pos, '\t')
	require.True(t, ok)
	assert.Equal(t, "cd Documents", line)
}

func TestAutoComplete_KeepsTextAfterCursor(t *testing.T) {
	loop, _ := newTestLoop(t)

	line, pos, ok := loop.AutoComplete("cd De tail", 5, '\t')
	require.True(t, ok)
	assert.Equal(t, "cd Desktop tail", line)
	assert.Equal(t, len("cd Desktop"), pos)
}

func TestAutoComplete_IgnoresOtherKeys(t *testing.T) {
	loop, _ := newTestLoop(t)

	_, _, ok := loop.AutoComplete("cd Do", 5, 'x')
	assert.False(t, ok)

	_, _, ok = loop.AutoComplete("ls Do", 5, '\t')
	assert.False(t, ok)
}

func TestPrompt(t *testing.T) {
	loop, _ := newTestLoop(t)
	ctx := context.Background()

	assert.Equal(t, "~ via λ ", loop.Prompt())

	loop.Submit(ctx, "cd Desktop")
	assert.Equal(t, "~/Desktop via λ ", loop.Prompt())
}

func TestRunLines(t *testing.T) {
	loop, home := newTestLoop(t)

	in := strings.NewReader("cd Downloads\npwd\n\ncd -\npwd\n")
	var out bytes.Buffer

	require.NoError(t, loop.RunLines(context.Background(), in, &out))

	text := out.String()
	assert.Contains(t, text, filepath.Join(home, "Downloads")+"\n")
	assert.Contains(t, text, "~/Downloads via λ ")
	assert.Equal(t, home, loop.State().Cwd)
	assert.Equal(t, filepath.Join(home, "Downloads"), loop.State().PrevCwd)
}

func TestRunLines_StopsOnQuit(t *testing.T) {
	loop, home := newTestLoop(t)

	in := strings.NewReader("cd Desktop\n:quit\ncd -\n")
	var out bytes.Buffer

	require.NoError(t, loop.RunLines(context.Background(), in, &out))
	assert.Equal(t, filepath.Join(home, "Desktop"), loop.State().Cwd)
}

func TestRunTerminal_TabCompletion(t *testing.T) {
	loop, home := newTestLoop(t)

	// Two tabs cycle Documents -> Downloads before Enter submits
	in := strings.NewReader("cd Do\t\t\rpwd\r")
	var out bytes.Buffer
	tty := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, &out}, "")

	cookedCalls := 0
	cooked := func() func() {
		cookedCalls++
		return func() {}
	}

	require.NoError(t, loop.RunTerminal(context.Background(), tty, cooked))

	assert.Equal(t, filepath.Join(home, "Downloads"), loop.State().Cwd)
	assert.Contains(t, out.String(), filepath.Join(home, "Downloads"))
	assert.Equal(t, 2, cookedCalls)
}

func TestSubmit_LogsErrorCode(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New("debug", &buf)

	home := t.TempDir()
	fs := fsquery.OS{Home: home}
	renderer, err := prompt.New(prompt.DefaultOptions())
	require.NoError(t, err)
	loop := New(shell.NewMachine(fs, executor.NewSh(nil, nil), nil), completion.NewEngine(fs, nil), renderer, shell.NewState(home), log)

	_, quit := loop.Submit(context.Background(), "exit 2")
	assert.False(t, quit)
	assert.Contains(t, buf.String(), "Line failed")
	assert.Contains(t, buf.String(), "code=EXEC_ERROR")
}

type sessionKey struct{}

func TestRunTerminal_CompletesWithSessionContext(t *testing.T) {
	loop, _ := newTestLoop(t)
	ctx := context.WithValue(context.Background(), sessionKey{}, "session")

	assert.Equal(t, context.Background(), loop.sessionContext())

	var seen context.Context
	in := strings.NewReader("cd Do\t\r")
	tty := term.NewTerminal(struct {
		io.Reader
		io.Writer
	}{in, &bytes.Buffer{}}, "")

	cooked := func() func() {
		seen = loop.sessionContext()
		return func() {}
	}

	require.NoError(t, loop.RunTerminal(ctx, tty, cooked))
	require.NotNil(t, seen)
	assert.Equal(t, "session", seen.Value(sessionKey{}))
	assert.Equal(t, context.Background(), loop.sessionContext())
}

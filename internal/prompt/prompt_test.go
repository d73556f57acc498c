package prompt

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func plainColors(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.Ascii)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func TestRender_Default(t *testing.T) {
	plainColors(t)

	r, err := New(DefaultOptions())
	require.NoError(t, err)

	assert.Equal(t, "~/src via λ ", r.Render("~/src"))
	assert.Equal(t, "/work via λ ", r.Render("/work"))
}

func TestRender_EmptyOptionsUseDefaults(t *testing.T) {
	plainColors(t)

	r, err := New(Options{})
	require.NoError(t, err)
	assert.Equal(t, "~ via λ ", r.Render("~"))
}

func TestRender_CustomTemplateWithSprig(t *testing.T) {
	plainColors(t)

	r, err := New(Options{
		Template: `[{{ .Dir | base | upper }}] {{ .Symbol }} `,
		Symbol:   "$",
	})
	require.NoError(t, err)
	assert.Equal(t, "[SRC] $ ", r.Render("~/src"))
}

func TestRender_ExecutionErrorFallsBack(t *testing.T) {
	plainColors(t)

	r, err := New(Options{Template: `{{ .Missing.Field }}`})
	require.NoError(t, err)
	assert.Equal(t, "/tmp via λ ", r.Render("/tmp"))
}

func TestNew_InvalidTemplate(t *testing.T) {
	_, err := New(Options{Template: `{{ .Path `})
	assert.Error(t, err)
}

func TestRender_Colored(t *testing.T) {
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })

	r, err := New(DefaultOptions())
	require.NoError(t, err)

	out := r.Render("/work")
	assert.Contains(t, out, "/work")
	assert.Contains(t, out, "\x1b[")
}

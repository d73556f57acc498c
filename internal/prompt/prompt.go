// Package prompt renders the navsh prompt line.
package prompt

import (
	"strings"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/charmbracelet/lipgloss"
)

// DefaultTemplate reproduces "<path> via λ "
const DefaultTemplate = `{{ .Path }} {{ .Via }} {{ .Symbol }} `

// Options configures the prompt look
type Options struct {
	Template    string
	PathColor   string
	ViaColor    string
	Symbol      string
	SymbolColor string
}

// DefaultOptions returns the stock cyan/white/green layout
func DefaultOptions() Options {
	return Options{
		Template:    DefaultTemplate,
		PathColor:   "6",
		ViaColor:    "7",
		Symbol:      "λ",
		SymbolColor: "2",
	}
}

// Data is what the template sees. Path, Via and Symbol are already styled;
// Dir is the unstyled display path for use with sprig functions.
type Data struct {
	Path   string
	Via    string
	Symbol string
	Dir    string
}

// Renderer renders prompts from a parsed template
type Renderer struct {
	tmpl        *template.Template
	fallback    *template.Template
	pathStyle   lipgloss.Style
	viaStyle    lipgloss.Style
	symbolStyle lipgloss.Style
	symbol      string
}

// ParseTemplate parses a prompt template with the sprig function set
func ParseTemplate(text string) (*template.Template, error) {
	return template.New("prompt").Funcs(sprig.TxtFuncMap()).Parse(text)
}

// New creates a renderer. Empty option fields take their default values.
func New(opts Options) (*Renderer, error) {
	def := DefaultOptions()
	if opts.Template == "" {
		opts.Template = def.Template
	}
	if opts.Symbol == "" {
		opts.Symbol = def.Symbol
	}

	tmpl, err := ParseTemplate(opts.Template)
	if err != nil {
		return nil, err
	}
	fallback := template.Must(ParseTemplate(DefaultTemplate))

	return &Renderer{
		tmpl:        tmpl,
		fallback:    fallback,
		pathStyle:   style(opts.PathColor, def.PathColor),
		viaStyle:    style(opts.ViaColor, def.ViaColor),
		symbolStyle: style(opts.SymbolColor, def.SymbolColor),
		symbol:      opts.Symbol,
	}, nil
}

func style(color, fallback string) lipgloss.Style {
	if color == "" {
		color = fallback
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Render returns the prompt for the given display path.
// A template that fails at execution time falls back to the default layout.
func (r *Renderer) Render(displayPath string) string {
	data := Data{
		Path:   r.pathStyle.Render(displayPath),
		Via:    r.viaStyle.Render("via"),
		Symbol: r.symbolStyle.Render(r.symbol),
		Dir:    displayPath,
	}

	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err == nil {
		return b.String()
	}

	b.Reset()
	_ = r.fallback.Execute(&b, data)
	return b.String()
}

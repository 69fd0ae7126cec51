package display

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Styles holds the lipgloss styles used when rendering a match.
type Styles struct {
	Title   lipgloss.Style
	Red     lipgloss.Style
	Blue    lipgloss.Style
	Holder  lipgloss.Style
	Pitch   lipgloss.Style
	Event   lipgloss.Style
	Stamp   lipgloss.Style
	Goal    lipgloss.Style
	Status  lipgloss.Style
	Help    lipgloss.Style
	Error   lipgloss.Style
	Heading lipgloss.Style
}

// NewStyles builds the palette on the given lipgloss renderer.
func NewStyles(r *lipgloss.Renderer) Styles {
	return Styles{
		Title: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true),
		Red: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")),
		Blue: r.NewStyle().
			Foreground(lipgloss.Color("#5DADE2")),
		Holder: r.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true),
		Pitch: r.NewStyle().
			Foreground(lipgloss.Color("#04B575")),
		Event: r.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")),
		Stamp: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Goal: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
		Status: r.NewStyle().
			Foreground(lipgloss.Color("#FFEAA7")).
			Bold(true),
		Help: r.NewStyle().
			Foreground(lipgloss.Color("#626262")),
		Error: r.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B")).
			Bold(true),
		Heading: r.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true),
	}
}

// NewLipglossRenderer returns a lipgloss renderer for w. When color is false
// the profile is forced to plain ASCII so no escape sequences are emitted.
func NewLipglossRenderer(w io.Writer, color bool) *lipgloss.Renderer {
	r := lipgloss.NewRenderer(w)
	if !color {
		r.SetColorProfile(termenv.Ascii)
	}
	return r
}

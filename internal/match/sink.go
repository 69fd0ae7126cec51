package match

import (
	"fmt"
	"io"

	"github.com/lox/passandshoot/internal/display"
	"github.com/lox/passandshoot/internal/game"
)

// Sink receives everything the match wants to show.
type Sink interface {
	ShowBanner()
	ShowHelp()
	ShowField(view game.View)
	ShowEvents(events []game.Event)
	ShowPlayers(players []game.Player)
	ShowError(err error)
}

// TextSink writes rendered text to a writer, one block per call.
type TextSink struct {
	out      io.Writer
	renderer *display.Renderer
}

// NewTextSink renders with r and writes to out.
func NewTextSink(out io.Writer, r *display.Renderer) *TextSink {
	return &TextSink{out: out, renderer: r}
}

func (s *TextSink) ShowBanner() { s.write(s.renderer.Banner()) }

func (s *TextSink) ShowHelp() { s.write(s.renderer.Help()) }

func (s *TextSink) ShowField(view game.View) {
	s.write(s.renderer.Field(view.Holder.ID) + "\n" + s.renderer.Status(view))
}

func (s *TextSink) ShowEvents(events []game.Event) {
	if len(events) == 0 {
		return
	}
	s.write(s.renderer.Events(events))
}

func (s *TextSink) ShowPlayers(players []game.Player) { s.write(s.renderer.PlayerInfo(players...)) }

func (s *TextSink) ShowError(err error) { s.write(s.renderer.Error(err)) }

func (s *TextSink) write(block string) {
	_, _ = fmt.Fprintf(s.out, "\n%s\n", block)
}

// DiscardSink drops all output. Headless simulations use it.
type DiscardSink struct{}

func (DiscardSink) ShowBanner()               {}
func (DiscardSink) ShowHelp()                 {}
func (DiscardSink) ShowField(game.View)       {}
func (DiscardSink) ShowEvents([]game.Event)   {}
func (DiscardSink) ShowPlayers([]game.Player) {}
func (DiscardSink) ShowError(error)           {}

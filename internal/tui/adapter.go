package tui

import (
	"context"
	"errors"
	"io"
	"strings"

	"github.com/lox/passandshoot/internal/command"
	"github.com/lox/passandshoot/internal/game"
)

// Controller lets the person at the keyboard play a team.
type Controller struct {
	model *Model
}

// Controller returns the match controller backed by this model.
func (m *Model) Controller() *Controller {
	return &Controller{model: m}
}

// NextCommand marks the human's turn and waits for a submitted line. Leaving
// the program ends the input with io.EOF.
func (c *Controller) NextCommand(ctx context.Context, view game.View) (command.Command, error) {
	c.model.send(turnMsg{view: view})

	line, err := c.model.WaitForLine(ctx)
	if errors.Is(err, ErrClosed) {
		return command.Command{}, io.EOF
	}
	if err != nil {
		return command.Command{}, err
	}
	return command.Parse(line), nil
}

// Sink shows match output in the model's log and sidebar.
type Sink struct {
	model *Model
}

// Sink returns the match sink backed by this model.
func (m *Model) Sink() *Sink {
	return &Sink{model: m}
}

func (s *Sink) ShowBanner() { s.log(s.model.renderer.Banner()) }

func (s *Sink) ShowHelp() { s.log(s.model.renderer.Help()) }

func (s *Sink) ShowField(view game.View) { s.model.send(viewMsg{view: view}) }

func (s *Sink) ShowEvents(events []game.Event) {
	if len(events) == 0 {
		return
	}
	s.log(s.model.renderer.Events(events))
}

func (s *Sink) ShowPlayers(players []game.Player) {
	s.log(s.model.renderer.PlayerInfo(players...))
}

func (s *Sink) ShowError(err error) { s.log(s.model.renderer.Error(err)) }

func (s *Sink) log(block string) {
	s.model.send(logMsg{entries: strings.Split(block, "\n")})
}

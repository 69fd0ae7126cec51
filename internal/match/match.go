// Package match runs the turn loop: it asks the controller of the team in
// possession for a command, applies it to the game and shows the result.
package match

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/lox/passandshoot/internal/command"
	"github.com/lox/passandshoot/internal/game"
)

// DefaultEventsTail is how many events are shown after each action.
const DefaultEventsTail = 5

// Config wires a match together.
type Config struct {
	Red  Controller
	Blue Controller
	Sink Sink
	// RNG feeds every game started by this match, including "new" games.
	RNG    game.Source
	Logger *log.Logger
	// EventsTail overrides DefaultEventsTail when positive.
	EventsTail int
	// Subscriber, when set, is attached to every game created.
	Subscriber game.EventSubscriber
}

// Result describes how Run finished.
type Result struct {
	Score  game.Score
	Events []game.Event
	// Completed is true when the round budget ran out, false when a
	// controller quit or the input ended.
	Completed bool
}

// Match owns the current game and the controllers playing it.
type Match struct {
	cfg    Config
	logger *log.Logger
	game   *game.Game
}

// New validates the configuration and starts the first game.
func New(cfg Config) (*Match, error) {
	if cfg.Red == nil || cfg.Blue == nil {
		return nil, errors.New("match: a controller is required for both teams")
	}
	if cfg.Sink == nil {
		return nil, errors.New("match: sink is required")
	}
	if cfg.RNG == nil {
		return nil, errors.New("match: rng is required")
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(io.Discard)
	}
	if cfg.EventsTail <= 0 {
		cfg.EventsTail = DefaultEventsTail
	}

	m := &Match{cfg: cfg, logger: cfg.Logger.WithPrefix("match")}
	m.newGame()
	return m, nil
}

// Game returns the game currently being played.
func (m *Match) Game() *game.Game { return m.game }

func (m *Match) newGame() {
	opts := []game.Option{game.WithLogger(m.cfg.Logger)}
	if m.cfg.Subscriber != nil {
		opts = append(opts, game.WithSubscriber(m.cfg.Subscriber))
	}
	m.game = game.New(m.cfg.RNG, opts...)
	m.logger.Info("New game", "holder", m.game.Holder().ID)
}

func (m *Match) controller() Controller {
	if m.game.HolderTeam() == game.Red {
		return m.cfg.Red
	}
	return m.cfg.Blue
}

// Run plays until the round budget is spent, a controller quits or its input
// ends. Context cancellation is returned as an error.
func (m *Match) Run(ctx context.Context) (Result, error) {
	sink := m.cfg.Sink
	sink.ShowBanner()
	sink.ShowHelp()
	m.showLatest()

	for {
		cmd, err := m.controller().NextCommand(ctx, m.game.View())
		if errors.Is(err, io.EOF) {
			m.logger.Info("Input closed, stopping")
			return m.result(false), nil
		}
		if err != nil {
			return m.result(false), fmt.Errorf("next command: %w", err)
		}

		m.logger.Debug("Command", "team", m.game.HolderTeam(), "command", cmd)
		if quit := m.dispatch(cmd); quit {
			m.logger.Info("Quit requested")
			return m.result(false), nil
		}

		if m.game.HasEnded() {
			sink.ShowEvents(m.game.LatestEvents(m.cfg.EventsTail))
			m.logger.Info("Game ended", "score", m.game.Score())
			return m.result(true), nil
		}
	}
}

// dispatch applies one command and reports whether the loop should stop.
func (m *Match) dispatch(cmd command.Command) bool {
	sink := m.cfg.Sink
	switch cmd.Verb {
	case command.New:
		m.newGame()
		m.showLatest()
	case command.Pass:
		m.apply(m.game.PassTo(cmd.Arg))
	case command.Shoot:
		m.apply(m.game.ShootAt(cmd.Arg))
	case command.Field:
		sink.ShowField(m.game.View())
	case command.Info:
		m.showInfo(cmd.Arg)
	case command.Events:
		sink.ShowEvents(m.eventsFor(cmd.Arg))
	case command.Quit:
		return true
	default:
		sink.ShowHelp()
	}
	return false
}

func (m *Match) apply(err error) {
	if err != nil {
		m.logger.Debug("Command rejected", "error", err)
		m.cfg.Sink.ShowError(err)
		m.cfg.Sink.ShowHelp()
		return
	}
	m.showLatest()
}

func (m *Match) showLatest() {
	m.cfg.Sink.ShowEvents(m.game.LatestEvents(m.cfg.EventsTail))
	m.cfg.Sink.ShowField(m.game.View())
}

func (m *Match) showInfo(arg string) {
	if arg == "" {
		m.cfg.Sink.ShowPlayers(game.Roster())
		return
	}
	id, err := game.ParsePlayer(arg)
	if err != nil {
		m.cfg.Sink.ShowError(err)
		return
	}
	m.cfg.Sink.ShowPlayers([]game.Player{id.Player()})
}

// eventsFor resolves the "events [ROWS]" argument: a count shows that many
// of the latest events, anything else shows the whole log.
func (m *Match) eventsFor(arg string) []game.Event {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 0 {
		return m.game.Events()
	}
	if n == 0 {
		return nil
	}
	return m.game.LatestEvents(n)
}

func (m *Match) result(completed bool) Result {
	return Result{
		Score:     m.game.Score(),
		Events:    m.game.Events(),
		Completed: completed,
	}
}

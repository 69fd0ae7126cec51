package match

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/passandshoot/internal/bot"
	"github.com/lox/passandshoot/internal/command"
	"github.com/lox/passandshoot/internal/display"
	"github.com/lox/passandshoot/internal/game"
	"github.com/lox/passandshoot/internal/randutil"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

// scripted replays fixed input lines, then reports io.EOF.
type scripted struct {
	lines []string
	views []game.View
}

func (s *scripted) NextCommand(_ context.Context, view game.View) (command.Command, error) {
	s.views = append(s.views, view)
	if len(s.lines) == 0 {
		return command.Command{}, io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return command.Parse(line), nil
}

// recordingSink remembers what was shown.
type recordingSink struct {
	calls   []string
	events  [][]game.Event
	players [][]game.Player
	errs    []error
	fields  []game.View
}

func (r *recordingSink) ShowBanner() { r.calls = append(r.calls, "banner") }
func (r *recordingSink) ShowHelp()   { r.calls = append(r.calls, "help") }
func (r *recordingSink) ShowField(view game.View) {
	r.calls = append(r.calls, "field")
	r.fields = append(r.fields, view)
}
func (r *recordingSink) ShowEvents(events []game.Event) {
	r.calls = append(r.calls, "events")
	r.events = append(r.events, events)
}
func (r *recordingSink) ShowPlayers(players []game.Player) {
	r.calls = append(r.calls, "players")
	r.players = append(r.players, players)
}
func (r *recordingSink) ShowError(err error) {
	r.calls = append(r.calls, "error")
	r.errs = append(r.errs, err)
}

type constSource float64

func (c constSource) Float64() float64 { return float64(c) }

func newTestMatch(t *testing.T, red, blue Controller, sink Sink, rng game.Source) *Match {
	t.Helper()
	m, err := New(Config{Red: red, Blue: blue, Sink: sink, RNG: rng, Logger: quietLogger()})
	require.NoError(t, err)
	return m
}

func TestNewValidatesConfig(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}
	_, err := New(Config{Blue: &scripted{}, Sink: sink, RNG: constSource(0)})
	assert.Error(t, err)
	_, err = New(Config{Red: &scripted{}, Blue: &scripted{}, RNG: constSource(0)})
	assert.Error(t, err)
	_, err = New(Config{Red: &scripted{}, Blue: &scripted{}, Sink: sink})
	assert.Error(t, err)
}

func TestRunShowsIntroduction(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}
	m := newTestMatch(t, &scripted{}, &scripted{}, sink, constSource(0.99))

	res, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.False(t, res.Completed)
	assert.Equal(t, []string{"banner", "help", "events", "field"}, sink.calls)
	require.Len(t, sink.events[0], 1)
	assert.Equal(t, game.EventStart, sink.events[0][0].Kind)
}

func TestRunDispatchesCommands(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}
	blue := &scripted{lines: []string{
		"field",
		"info B_MF",
		"info",
		"info nobody",
		"pass",
		"shoot G",
		"pass B_MF",
		"events 1",
		"events",
		"events 0",
		"dance",
		"quit",
		"pass B_LF",
	}}
	m := newTestMatch(t, &scripted{}, blue, sink, constSource(0.99))

	res, err := m.Run(context.Background())
	require.NoError(t, err)
	assert.False(t, res.Completed)

	// Intro, then one entry per command until quit.
	assert.Equal(t, []string{
		"banner", "help", "events", "field",
		"field",
		"players",
		"players",
		"error",
		"error", "help",
		"error", "help",
		"events", "field",
		"events",
		"events",
		"events",
		"help",
	}, sink.calls)

	require.Len(t, sink.players, 2)
	assert.Equal(t, game.BlueMidfielder, sink.players[0][0].ID)
	assert.Len(t, sink.players[1], game.RosterSize)

	assert.ErrorIs(t, sink.errs[0], game.ErrNotFound)
	assert.ErrorIs(t, sink.errs[1], game.ErrInvalidArgument)
	assert.ErrorIs(t, sink.errs[2], game.ErrInvalidArgument)

	// events 1, events, events 0
	require.Len(t, sink.events, 5)
	assert.Len(t, sink.events[2], 1)
	assert.Len(t, sink.events[3], 2)
	assert.Empty(t, sink.events[4])

	// The command after quit is never read.
	assert.Equal(t, []string{"pass B_LF"}, blue.lines)
	assert.Equal(t, game.BlueMidfielder, m.Game().Holder().ID)
	assert.Equal(t, 2, m.Game().Round())
}

func TestRunAlternatesControllersByPossession(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}
	red := &scripted{lines: []string{"shoot B"}}
	blue := &scripted{lines: []string{"shoot R"}}
	m := newTestMatch(t, red, blue, sink, constSource(0.5))

	_, err := m.Run(context.Background())
	require.NoError(t, err)

	// Blue shoots, the red keeper restarts and shoots back, then blue runs
	// out of input.
	require.Len(t, blue.views, 2)
	require.Len(t, red.views, 1)
	assert.Equal(t, game.BlueGoalkeeper, blue.views[0].Holder.ID)
	assert.Equal(t, game.RedGoalkeeper, red.views[0].Holder.ID)
	assert.Equal(t, 3, m.Game().Round())
}

func TestRunNewGameResets(t *testing.T) {
	t.Parallel()
	sink := &recordingSink{}
	blue := &scripted{lines: []string{"pass B_MF", "new"}}
	m := newTestMatch(t, &scripted{}, blue, sink, constSource(0.99))

	_, err := m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 1, m.Game().Round())
	assert.Equal(t, game.BlueGoalkeeper, m.Game().Holder().ID)
	assert.Len(t, m.Game().Events(), 1)
}

func TestRunBotsPlayToTheEnd(t *testing.T) {
	t.Parallel()
	rng := randutil.New(21)
	clock := quartz.NewReal()
	red := NewBotController(bot.NewForward(rng, quietLogger()), clock, 0, quietLogger())
	blue := NewBotController(bot.NewForward(rng, quietLogger()), clock, 0, quietLogger())
	sink := &recordingSink{}
	m := newTestMatch(t, red, blue, sink, rng)

	res, err := m.Run(context.Background())

	require.NoError(t, err)
	assert.True(t, res.Completed)
	last := res.Events[len(res.Events)-1]
	assert.Equal(t, game.EventEnd, last.Kind)
	assert.Contains(t, last.Description, res.Score.String())

	// Final tail ends with the end event.
	final := sink.events[len(sink.events)-1]
	require.Len(t, final, DefaultEventsTail)
	assert.Equal(t, game.EventEnd, final[len(final)-1].Kind)
	assert.Equal(t, 1, countKind(res.Events, game.EventEnd))
}

func countKind(events []game.Event, kind game.EventKind) int {
	n := 0
	for _, e := range events {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

func TestRunWithTextSink(t *testing.T) {
	t.Parallel()
	var out bytes.Buffer
	sink := NewTextSink(&out, display.NewTextRenderer(&out, false))
	blue := NewLineController(strings.NewReader("pass B_MF\nfield\nquit\n"), &out)
	m := newTestMatch(t, &scripted{}, blue, sink, constSource(0.99))

	_, err := m.Run(context.Background())
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Welcome to play Pass and Shoot!")
	assert.Contains(t, text, "Enter command: ")
	assert.Contains(t, text, "[1:00] B_GK passes the ball to B_MF.")
	assert.Contains(t, text, "B_MF*")
	assert.Contains(t, text, "Round 2/10 | B 0 - R 0 | ball: B_MF")
}

func TestLineControllerEOF(t *testing.T) {
	t.Parallel()
	c := NewLineController(strings.NewReader("shoot R"), nil)

	cmd, err := c.NextCommand(context.Background(), game.View{})
	require.NoError(t, err)
	assert.Equal(t, command.ShootAt("R").String(), cmd.String())

	_, err = c.NextCommand(context.Background(), game.View{})
	assert.ErrorIs(t, err, io.EOF)
}

func TestLineControllerCancellation(t *testing.T) {
	t.Parallel()
	r, w := io.Pipe()
	defer w.Close()
	c := NewLineController(r, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.NextCommand(ctx, game.View{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRunReturnsContextError(t *testing.T) {
	t.Parallel()
	r, w := io.Pipe()
	defer w.Close()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	m := newTestMatch(t, &scripted{}, NewLineController(r, nil), &recordingSink{}, constSource(0))

	_, err := m.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestBotControllerWaitsForClock(t *testing.T) {
	t.Parallel()
	mClock := quartz.NewMock(t)
	policy := bot.PolicyFunc(func(game.View) command.Command { return command.ShootAt("R") })
	c := NewBotController(policy, mClock, time.Second, quietLogger())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan command.Command, 1)
	go func() {
		cmd, err := c.NextCommand(ctx, game.View{})
		if err == nil {
			done <- cmd
		}
	}()

	select {
	case <-done:
		t.Fatal("decided before the delay elapsed")
	case <-time.After(20 * time.Millisecond):
	}

	var got command.Command
	require.Eventually(t, func() bool {
		mClock.Advance(time.Second).MustWait(ctx)
		select {
		case got = <-done:
			return true
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
	assert.Equal(t, command.ShootAt("R"), got)
}

func TestBotControllerCancellation(t *testing.T) {
	t.Parallel()
	mClock := quartz.NewMock(t)
	policy := bot.PolicyFunc(func(game.View) command.Command { return command.ShootAt("B") })
	c := NewBotController(policy, mClock, time.Second, quietLogger())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.NextCommand(ctx, game.View{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestSubscriberFollowsNewGames(t *testing.T) {
	t.Parallel()
	var kinds []game.EventKind
	sub := game.EventSubscriberFunc(func(e game.Event) { kinds = append(kinds, e.Kind) })
	blue := &scripted{lines: []string{"pass B_MF", "new"}}

	m, err := New(Config{
		Red:        &scripted{},
		Blue:       blue,
		Sink:       &recordingSink{},
		RNG:        constSource(0.99),
		Logger:     quietLogger(),
		Subscriber: sub,
	})
	require.NoError(t, err)
	_, err = m.Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []game.EventKind{game.EventStart, game.EventPass, game.EventStart}, kinds)
}

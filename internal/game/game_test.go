package game

import (
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/passandshoot/internal/randutil"
)

func newTestGame(t *testing.T, rng Source, opts ...Option) *Game {
	t.Helper()
	logger := log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
	return New(rng, append([]Option{WithLogger(logger)}, opts...)...)
}

func TestNewGame(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, randutil.New(42))

	assert.Equal(t, BlueGoalkeeper, g.Holder().ID)
	assert.Equal(t, Blue, g.HolderTeam())
	assert.Equal(t, Score{}, g.Score())
	assert.Equal(t, 1, g.Round())
	assert.Equal(t, 10, g.TotalRounds())

	events := g.Events()
	require.Len(t, events, 1)
	assert.Equal(t, EventStart, events[0].Kind)
	assert.Equal(t, "0:00", events[0].Timestamp)
	assert.Contains(t, events[0].Description, "B 0 - R 0")
	assert.Contains(t, events[0].Description, "B-GK has the ball")
}

func TestNewGameIsDeterministic(t *testing.T) {
	t.Parallel()
	a := newTestGame(t, randutil.New(1))
	b := newTestGame(t, randutil.New(2))

	assert.Equal(t, a.View(), b.View())
	assert.Equal(t, a.Events(), b.Events())
}

func TestNewGameRequiresRNG(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() { New(nil) })
}

func TestPassWithoutInterception(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, constSource(0.99))

	require.NoError(t, g.PassTo("B_MF"))

	assert.Equal(t, BlueMidfielder, g.Holder().ID)
	assert.Equal(t, 2, g.Round())
	events := g.Events()
	require.Len(t, events, 2)
	assert.Equal(t, EventPass, events[1].Kind)
	assert.Equal(t, "1:00", events[1].Timestamp)
	assert.Equal(t, "B_GK passes the ball to B_MF.", events[1].Description)
}

func TestPassInterceptionPicksLastQualifyingDefender(t *testing.T) {
	t.Parallel()
	// A zero draw intercepts at exactly distance 2. Both red forwards are two
	// cells from B_MF; R_RF comes later in roster order.
	g := newTestGame(t, constSource(0))

	require.NoError(t, g.PassTo("b_mf"))

	assert.Equal(t, RedRightForward, g.Holder().ID)
	assert.Equal(t, Red, g.HolderTeam())
	last := g.Events()[len(g.Events())-1]
	assert.Equal(t, EventInterception, last.Kind)
	assert.Contains(t, last.Description, "B_GK")
	assert.Contains(t, last.Description, "B_MF")
	assert.Contains(t, last.Description, "R_RF")
}

func TestPassToSelf(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, constSource(0.99))

	require.NoError(t, g.PassTo("B_GK"))
	assert.Equal(t, BlueGoalkeeper, g.Holder().ID)
	assert.Equal(t, 2, g.Round())
}

func TestPassAlwaysEndsOnRosterPlayer(t *testing.T) {
	t.Parallel()
	rng := randutil.New(9)
	targets := []string{"B_MF", "B_LF", "B_RF", "R_MF", "R_GK", "B_LD", "R_LF", "B_GK", "R_RD", "B_RD"}
	g := newTestGame(t, rng)
	for i, target := range targets {
		before := len(g.Events())
		require.NoError(t, g.PassTo(target))
		assert.True(t, g.Holder().ID.Valid())
		assert.Equal(t, i+2, g.Round())
		assert.Len(t, g.Events(), before+1)
	}
}

func TestRejectedTransitionsLeaveStateUnchanged(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		apply   func(*Game) error
		wantErr error
	}{
		{"pass without target", func(g *Game) error { return g.PassTo("") }, ErrInvalidArgument},
		{"pass to blank target", func(g *Game) error { return g.PassTo("  ") }, ErrInvalidArgument},
		{"pass to unknown player", func(g *Game) error { return g.PassTo("X_YZ") }, ErrNotFound},
		{"shoot without team", func(g *Game) error { return g.ShootAt("") }, ErrInvalidArgument},
		{"shoot at unknown team", func(g *Game) error { return g.ShootAt("G") }, ErrInvalidArgument},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := newTestGame(t, randutil.New(5))
			before := g.View()
			beforeEvents := g.Events()

			err := tt.apply(g)

			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, before, g.View())
			assert.Equal(t, beforeEvents, g.Events())
		})
	}
}

func TestShootScores(t *testing.T) {
	t.Parallel()
	// B_GK is 7 cells from R_GK: blocked 95% of the time, so only a draw above
	// 0.95 scores.
	g := newTestGame(t, constSource(0.99))

	require.NoError(t, g.ShootAt("R"))

	assert.Equal(t, Score{Blue: 1}, g.Score())
	assert.Equal(t, RedGoalkeeper, g.Holder().ID)
	assert.Equal(t, 2, g.Round())
	last := g.Events()[len(g.Events())-1]
	assert.Equal(t, EventGoal, last.Kind)
	assert.Contains(t, last.Description, "B_GK")
	assert.Contains(t, last.Description, "B 1 - R 0")
}

func TestShootMisses(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, constSource(0.5))

	require.NoError(t, g.ShootAt("r"))

	assert.Equal(t, Score{}, g.Score())
	assert.Equal(t, RedGoalkeeper, g.Holder().ID)
	last := g.Events()[len(g.Events())-1]
	assert.Equal(t, EventMiss, last.Kind)
	assert.Contains(t, last.Description, "B 0 - R 0")
}

func TestShootAtOwnGoalFromKeeperAlwaysScores(t *testing.T) {
	t.Parallel()
	// The blue keeper shares a cell with the target keeper, so the shot
	// scores for red without a draw.
	g := newTestGame(t, constSource(0))

	require.NoError(t, g.ShootAt("B"))

	assert.Equal(t, Score{Red: 1}, g.Score())
	assert.Equal(t, BlueGoalkeeper, g.Holder().ID)
}

func TestShootResetsPossessionRegardlessOfOutcome(t *testing.T) {
	t.Parallel()
	rng := randutil.New(11)
	g := newTestGame(t, rng)
	for i := range 10 {
		target := Red
		if i%2 == 1 {
			target = Blue
		}
		require.NoError(t, g.ShootAt(target.String()))
		assert.Equal(t, target.Goalkeeper(), g.Holder().ID)
	}
}

func TestHasEndedBoundary(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, randutil.New(12))
	for round := 1; round <= TotalRounds; round++ {
		require.Equal(t, round, g.Round())
		require.False(t, g.HasEnded(), "round %d", round)
		require.NoError(t, g.PassTo("B_GK"))
	}
	assert.Equal(t, 11, g.Round())
	assert.True(t, g.HasEnded())
}

func TestTenAlternatingShotsEndTheGame(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, randutil.New(13))
	targets := []string{"R", "B"}
	for i := range TotalRounds {
		require.False(t, g.HasEnded())
		require.NoError(t, g.ShootAt(targets[i%2]))
	}

	assert.Equal(t, 11, g.Round())
	require.True(t, g.HasEnded())

	events := g.Events()
	require.Len(t, events, 1+TotalRounds+1)
	last := events[len(events)-1]
	assert.Equal(t, EventEnd, last.Kind)
	assert.Equal(t, "10:00", last.Timestamp)
	assert.Contains(t, last.Description, g.Score().String())

	goals := 0
	for _, e := range events {
		if e.Kind == EventGoal {
			goals++
		}
	}
	assert.Equal(t, goals, g.Score().Red+g.Score().Blue)
}

func TestEndEventAppendedOnce(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, randutil.New(14))
	for range TotalRounds {
		require.NoError(t, g.PassTo("B_GK"))
	}

	require.True(t, g.HasEnded())
	n := len(g.Events())
	require.True(t, g.HasEnded())
	require.True(t, g.HasEnded())
	assert.Len(t, g.Events(), n)
}

func TestTransitionsRejectedAfterEnd(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, randutil.New(15))
	for range TotalRounds {
		require.NoError(t, g.ShootAt("R"))
	}
	require.True(t, g.HasEnded())
	before := g.View()
	n := len(g.Events())

	assert.ErrorIs(t, g.PassTo("R_MF"), ErrGameOver)
	assert.ErrorIs(t, g.ShootAt("B"), ErrGameOver)
	assert.Equal(t, before, g.View())
	assert.Len(t, g.Events(), n)
}

func TestLatestEvents(t *testing.T) {
	t.Parallel()
	g := newTestGame(t, constSource(0.99))
	for _, target := range []string{"B_MF", "B_LF", "B_RF"} {
		require.NoError(t, g.PassTo(target))
	}

	latest := g.LatestEvents(2)
	require.Len(t, latest, 2)
	assert.Equal(t, "2:00", latest[0].Timestamp)
	assert.Equal(t, "3:00", latest[1].Timestamp)
	assert.Len(t, g.LatestEvents(0), 4)
	assert.Len(t, g.LatestEvents(99), 4)

	// Returned slices are copies.
	latest[0].Description = "changed"
	assert.NotEqual(t, "changed", g.LatestEvents(2)[0].Description)
}

func TestSubscriberSeesEveryEvent(t *testing.T) {
	t.Parallel()
	var seen []EventKind
	g := newTestGame(t, constSource(0.99), WithSubscriber(EventSubscriberFunc(func(e Event) {
		seen = append(seen, e.Kind)
	})))

	require.NoError(t, g.PassTo("B_MF"))
	require.NoError(t, g.ShootAt("R"))
	require.Error(t, g.PassTo(""))

	assert.Equal(t, []EventKind{EventStart, EventPass, EventGoal}, seen)
}

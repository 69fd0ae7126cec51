package game

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
)

// TotalRounds is the fixed round budget of a match.
const TotalRounds = 10

// Game is the authoritative state of one match. It is owned by a single
// orchestrator and is not safe for concurrent use.
type Game struct {
	rng         Source
	logger      *log.Logger
	subscribers []EventSubscriber

	holder PlayerID
	score  Score
	events []Event
	round  int
	ended  bool
}

// View is a read-only snapshot of a Game for decision making and rendering.
type View struct {
	Holder      Player
	Score       Score
	Round       int
	TotalRounds int
	Ended       bool
}

// New creates a match in its kick-off state: the blue goalkeeper holds the
// ball, the score is level at zero and the log holds the start event. The rng
// is required; construction itself draws nothing from it.
func New(rng Source, opts ...Option) *Game {
	if rng == nil {
		panic("rng is required for game creation")
	}

	g := &Game{
		rng:    rng,
		logger: log.New(io.Discard),
		holder: BlueGoalkeeper,
		round:  1,
	}
	for _, opt := range opts {
		opt(g)
	}

	g.append(newStartEvent(g.holder, g.score))
	return g
}

// PassTo passes the ball from the current holder to the named player. Every
// opposing player is a potential interceptor based on their distance to the
// passer and to the receiver; when several qualify, the last one in roster
// order takes the ball.
//
// A rejected pass leaves the game untouched.
func (g *Game) PassTo(target string) error {
	if g.Ended() {
		return fmt.Errorf("pass: %w", ErrGameOver)
	}
	if strings.TrimSpace(target) == "" {
		return fmt.Errorf("pass: %w: target player required", ErrInvalidArgument)
	}

	from := g.holder.Player()
	if !from.ID.Valid() {
		return fmt.Errorf("pass: %w: passing player %s", ErrNotFound, g.holder)
	}
	toID, err := ParsePlayer(target)
	if err != nil {
		return fmt.Errorf("pass: %w", err)
	}
	to := toID.Player()

	interceptor := NoPlayer
	for _, p := range Roster() {
		if p.Team == from.Team {
			continue
		}
		if IsIntercepted(g.rng, Distance(from.Position, p.Position)) ||
			IsIntercepted(g.rng, Distance(to.Position, p.Position)) {
			interceptor = p.ID
		}
	}

	if interceptor != NoPlayer {
		g.append(newInterceptionEvent(g.round, from.ID, to.ID, interceptor))
		g.holder = interceptor
	} else {
		g.append(newPassEvent(g.round, from.ID, to.ID))
		g.holder = to.ID
	}

	g.logger.Debug("pass", "round", g.round, "from", from.ID, "to", to.ID, "holder", g.holder)
	g.round++
	return nil
}

// ShootAt shoots at the goal defended by the named team ("R" or "B"). A shot
// that gets past that team's goalkeeper scores for the other side. Either way
// the ball restarts with the defending goalkeeper.
//
// A rejected shot leaves the game untouched.
func (g *Game) ShootAt(target string) error {
	if g.Ended() {
		return fmt.Errorf("shoot: %w", ErrGameOver)
	}
	defending, err := ParseTeam(target)
	if err != nil {
		return fmt.Errorf("shoot: %w", err)
	}

	shooter := g.holder.Player()
	if !shooter.ID.Valid() {
		return fmt.Errorf("shoot: %w: shooting player %s", ErrNotFound, g.holder)
	}
	keeper := defending.Goalkeeper().Player()
	if !keeper.ID.Valid() {
		return fmt.Errorf("shoot: %w: goalkeeper of %s", ErrNotFound, defending)
	}

	distance := Distance(shooter.Position, keeper.Position)
	scored := ShotReachesGoal(g.rng, distance)
	if scored {
		g.score.add(defending.Opponent())
	}
	g.append(newShotEvent(g.round, shooter.ID, scored, g.score))

	g.logger.Debug("shot", "round", g.round, "shooter", shooter.ID, "distance", distance, "scored", scored, "score", g.score)
	g.holder = keeper.ID
	g.round++
	return nil
}

// HasEnded reports whether the round budget is spent. The first call that
// observes the end appends the final-score event; later calls only report.
func (g *Game) HasEnded() bool {
	if !g.Ended() {
		return false
	}
	if !g.ended {
		g.ended = true
		g.append(newEndEvent(g.round-1, g.score))
		g.logger.Debug("game ended", "score", g.score)
	}
	return true
}

// Ended reports whether the round budget is spent without touching the log.
func (g *Game) Ended() bool {
	return g.round > TotalRounds
}

// Holder returns the player in possession.
func (g *Game) Holder() Player { return g.holder.Player() }

// HolderTeam returns the team in possession.
func (g *Game) HolderTeam() Team { return g.holder.Player().Team }

// Score returns the current goal tally.
func (g *Game) Score() Score { return g.score }

// Round returns the round about to be played (starting at 1).
func (g *Game) Round() int { return g.round }

// TotalRounds returns the round budget.
func (g *Game) TotalRounds() int { return TotalRounds }

// Events returns a copy of the full log.
func (g *Game) Events() []Event {
	events := make([]Event, len(g.events))
	copy(events, g.events)
	return events
}

// LatestEvents returns a copy of the last n events, or the whole log when n
// is not positive or exceeds its length.
func (g *Game) LatestEvents(n int) []Event {
	if n <= 0 || n > len(g.events) {
		return g.Events()
	}
	events := make([]Event, n)
	copy(events, g.events[len(g.events)-n:])
	return events
}

// View returns a read-only snapshot of the match.
func (g *Game) View() View {
	return View{
		Holder:      g.Holder(),
		Score:       g.score,
		Round:       g.round,
		TotalRounds: TotalRounds,
		Ended:       g.Ended(),
	}
}

func (g *Game) append(event Event) {
	g.events = append(g.events, event)
	for _, sub := range g.subscribers {
		sub.OnEvent(event)
	}
}

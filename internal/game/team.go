package game

import (
	"fmt"
	"strings"
)

// Team identifies one of the two sides.
type Team uint8

const (
	NoTeam Team = iota
	Red
	Blue
)

// Teams lists both sides in display order.
var Teams = [...]Team{Red, Blue}

// ParseTeam resolves a team tag ("R" or "B", any case).
func ParseTeam(s string) (Team, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "":
		return NoTeam, fmt.Errorf("%w: team tag required", ErrInvalidArgument)
	case "R":
		return Red, nil
	case "B":
		return Blue, nil
	default:
		return NoTeam, fmt.Errorf("%w: unknown team %q", ErrInvalidArgument, s)
	}
}

// String returns the team tag.
func (t Team) String() string {
	switch t {
	case Red:
		return "R"
	case Blue:
		return "B"
	default:
		return "?"
	}
}

// Opponent returns the other side.
func (t Team) Opponent() Team {
	switch t {
	case Red:
		return Blue
	case Blue:
		return Red
	default:
		return NoTeam
	}
}

// Goalkeeper returns the team's designated keeper.
func (t Team) Goalkeeper() PlayerID {
	switch t {
	case Red:
		return RedGoalkeeper
	case Blue:
		return BlueGoalkeeper
	default:
		return NoPlayer
	}
}

// Score is the goal tally of a match.
type Score struct {
	Red  int
	Blue int
}

// Get returns the goals scored by a team.
func (s Score) Get(t Team) int {
	switch t {
	case Red:
		return s.Red
	case Blue:
		return s.Blue
	default:
		return 0
	}
}

// add credits one goal to t.
func (s *Score) add(t Team) {
	switch t {
	case Red:
		s.Red++
	case Blue:
		s.Blue++
	}
}

// Leader returns the team ahead, or NoTeam on a draw.
func (s Score) Leader() Team {
	switch {
	case s.Red > s.Blue:
		return Red
	case s.Blue > s.Red:
		return Blue
	default:
		return NoTeam
	}
}

// String renders the score the way the event log does, blue side first.
func (s Score) String() string {
	return fmt.Sprintf("B %d - R %d", s.Blue, s.Red)
}

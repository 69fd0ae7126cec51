package game

import (
	"fmt"
	"strings"
)

// PlayerID identifies one of the twelve fixed roster slots.
type PlayerID uint8

// Roster identities in their fixed iteration order.
const (
	NoPlayer PlayerID = iota
	RedGoalkeeper
	RedLeftDefender
	RedRightDefender
	RedMidfielder
	RedLeftForward
	RedRightForward
	BlueGoalkeeper
	BlueLeftDefender
	BlueRightDefender
	BlueMidfielder
	BlueLeftForward
	BlueRightForward
)

// Role is a player's function within a team.
type Role uint8

const (
	Goalkeeper Role = iota
	LeftDefender
	RightDefender
	Midfielder
	LeftForward
	RightForward
)

var roleNames = [...]string{
	Goalkeeper:    "goalkeeper",
	LeftDefender:  "left defender",
	RightDefender: "right defender",
	Midfielder:    "midfielder",
	LeftForward:   "left forward",
	RightForward:  "right forward",
}

func (r Role) String() string {
	if int(r) < len(roleNames) {
		return roleNames[r]
	}
	return "unknown"
}

// Position is a cell on the pitch grid. X runs across the pitch (0-2), Y runs
// from the red goal line (0) to the blue goal line (7).
type Position struct {
	X uint8
	Y uint8
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Player is an immutable roster entry.
type Player struct {
	ID       PlayerID
	Team     Team
	Role     Role
	Position Position
}

// Name returns the player's roster name, e.g. "B_GK".
func (p Player) Name() string { return p.ID.String() }

type rosterEntry struct {
	name string
	team Team
	role Role
	pos  Position
}

// roster is indexed by PlayerID; index 0 is NoPlayer.
var roster = [...]rosterEntry{
	NoPlayer:          {name: "NONE"},
	RedGoalkeeper:     {"R_GK", Red, Goalkeeper, Position{1, 0}},
	RedLeftDefender:   {"R_LD", Red, LeftDefender, Position{2, 1}},
	RedRightDefender:  {"R_RD", Red, RightDefender, Position{0, 1}},
	RedMidfielder:     {"R_MF", Red, Midfielder, Position{1, 3}},
	RedLeftForward:    {"R_LF", Red, LeftForward, Position{2, 5}},
	RedRightForward:   {"R_RF", Red, RightForward, Position{0, 5}},
	BlueGoalkeeper:    {"B_GK", Blue, Goalkeeper, Position{1, 7}},
	BlueLeftDefender:  {"B_LD", Blue, LeftDefender, Position{0, 6}},
	BlueRightDefender: {"B_RD", Blue, RightDefender, Position{2, 6}},
	BlueMidfielder:    {"B_MF", Blue, Midfielder, Position{1, 4}},
	BlueLeftForward:   {"B_LF", Blue, LeftForward, Position{0, 2}},
	BlueRightForward:  {"B_RF", Blue, RightForward, Position{2, 2}},
}

// RosterSize is the number of players on the pitch.
const RosterSize = len(roster) - 1

// Valid reports whether id names a roster player.
func (id PlayerID) Valid() bool {
	return id > NoPlayer && int(id) < len(roster)
}

func (id PlayerID) String() string {
	if int(id) < len(roster) {
		return roster[id].name
	}
	return fmt.Sprintf("PlayerID(%d)", uint8(id))
}

// Player returns the roster entry for id. The zero Player is returned for
// invalid identities.
func (id PlayerID) Player() Player {
	if !id.Valid() {
		return Player{}
	}
	e := roster[id]
	return Player{ID: id, Team: e.team, Role: e.role, Position: e.pos}
}

// ParsePlayer resolves a roster name. Matching ignores case and accepts '-'
// for '_' so both "b_mf" and "B-MF" resolve.
func ParsePlayer(s string) (PlayerID, error) {
	name := strings.ToUpper(strings.ReplaceAll(strings.TrimSpace(s), "-", "_"))
	if name == "" {
		return NoPlayer, fmt.Errorf("%w: player name required", ErrInvalidArgument)
	}
	for id := RedGoalkeeper; id.Valid(); id++ {
		if roster[id].name == name {
			return id, nil
		}
	}
	return NoPlayer, fmt.Errorf("%w: player %q", ErrNotFound, s)
}

// Roster returns every player in identity order.
func Roster() []Player {
	players := make([]Player, 0, RosterSize)
	for id := RedGoalkeeper; id.Valid(); id++ {
		players = append(players, id.Player())
	}
	return players
}

// TeamRoster returns the players of one team in identity order.
func TeamRoster(t Team) []Player {
	var players []Player
	for _, p := range Roster() {
		if p.Team == t {
			players = append(players, p)
		}
	}
	return players
}

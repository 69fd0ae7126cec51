// Package command resolves a line of user (or bot) input into a match
// command with at most one argument.
package command

import (
	"fmt"
	"strings"
)

// Verb is a recognised command word.
type Verb string

const (
	New     Verb = "new"
	Pass    Verb = "pass"
	Shoot   Verb = "shoot"
	Field   Verb = "field"
	Info    Verb = "info"
	Events  Verb = "events"
	Quit    Verb = "quit"
	Help    Verb = "help"
	Unknown Verb = "unknown"
)

var verbs = map[string]Verb{
	string(New):    New,
	string(Pass):   Pass,
	string(Shoot):  Shoot,
	string(Field):  Field,
	string(Info):   Info,
	string(Events): Events,
	string(Quit):   Quit,
	string(Help):   Help,
}

// Command is a parsed input line.
type Command struct {
	Verb Verb
	// Arg is the single argument, empty when none (or more than one) was given.
	Arg string
	// Raw is the input as typed.
	Raw string
}

// Parse splits a line on whitespace. The verb is matched case-insensitively;
// the argument is kept only when the line holds exactly two words. A blank
// line is a request for help.
func Parse(line string) Command {
	fields := strings.Fields(line)
	cmd := Command{Raw: strings.TrimSpace(line)}
	if len(fields) == 0 {
		cmd.Verb = Help
		return cmd
	}

	verb, ok := verbs[strings.ToLower(fields[0])]
	if !ok {
		verb = Unknown
	}
	cmd.Verb = verb
	if len(fields) == 2 {
		cmd.Arg = fields[1]
	}
	return cmd
}

// PassTo builds a pass command.
func PassTo(player string) Command {
	return Command{Verb: Pass, Arg: player, Raw: fmt.Sprintf("%s %s", Pass, player)}
}

// ShootAt builds a shoot command.
func ShootAt(team string) Command {
	return Command{Verb: Shoot, Arg: team, Raw: fmt.Sprintf("%s %s", Shoot, team)}
}

// HasArg reports whether an argument was supplied.
func (c Command) HasArg() bool { return c.Arg != "" }

func (c Command) String() string {
	if c.Arg == "" {
		return string(c.Verb)
	}
	return fmt.Sprintf("%s %s", c.Verb, c.Arg)
}

// Usage lists every verb with its argument and description, in help order.
var Usage = []struct {
	Verb        Verb
	Arg         string
	Description string
}{
	{Help, "", "print this help"},
	{New, "", "start a new game"},
	{Pass, "PLAYER", "try to pass the ball to a player"},
	{Shoot, "GOAL", "shoot towards a team's goal (R or B)"},
	{Field, "", "show the field"},
	{Info, "[PLAYER]", "show player info"},
	{Events, "[ROWS]", "show the latest events"},
	{Quit, "", "quit the program"},
}

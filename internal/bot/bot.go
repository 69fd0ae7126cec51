// Package bot provides the scripted policies that play a team without a
// human at the keyboard.
package bot

import (
	"fmt"
	rand "math/rand/v2"
	"sort"

	"github.com/charmbracelet/log"

	"github.com/lox/passandshoot/internal/command"
	"github.com/lox/passandshoot/internal/game"
)

// Policy decides the next command for the team in possession. Policies see a
// read-only view of the match and never mutate it.
type Policy interface {
	Decide(view game.View) command.Command
}

// PolicyFunc adapts a function to Policy.
type PolicyFunc func(view game.View) command.Command

func (f PolicyFunc) Decide(view game.View) command.Command { return f(view) }

// Names of the built-in policies.
const (
	ForwardName = "forward"
	RandomName  = "random"
)

var constructors = map[string]func(*rand.Rand, *log.Logger) Policy{
	ForwardName: func(rng *rand.Rand, logger *log.Logger) Policy { return NewForward(rng, logger) },
	RandomName:  func(rng *rand.Rand, logger *log.Logger) Policy { return NewRandom(rng, logger) },
}

// New builds a policy by name.
func New(name string, rng *rand.Rand, logger *log.Logger) (Policy, error) {
	ctor, ok := constructors[name]
	if !ok {
		return nil, fmt.Errorf("unknown bot policy %q (available: %v)", name, Names())
	}
	return ctor(rng, logger), nil
}

// Names lists the built-in policies.
func Names() []string {
	names := make([]string, 0, len(constructors))
	for name := range constructors {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// shootAtOpponent aims at the goal of the side not in possession.
func shootAtOpponent(view game.View) command.Command {
	return command.ShootAt(view.Holder.Team.Opponent().String())
}

package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/passandshoot/internal/command"
	"github.com/lox/passandshoot/internal/game"
)

// lateGame is the share of the round budget after which the forward policy
// stops building up and shoots.
const lateGame = 0.9

// Forward passes to a random teammate positioned closer to the opposing goal
// than the ball, and shoots once nobody is ahead or the match is nearly over.
type Forward struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewForward creates a forward-passing policy.
func NewForward(rng *rand.Rand, logger *log.Logger) *Forward {
	return &Forward{rng: rng, logger: logger.WithPrefix("bot").With("policy", ForwardName)}
}

func (f *Forward) Decide(view game.View) command.Command {
	ahead := ForwardTeammates(view.Holder)
	progress := float64(view.Round) / float64(view.TotalRounds)

	if len(ahead) == 0 || progress > lateGame {
		f.logger.Debug("shooting", "holder", view.Holder.ID, "ahead", len(ahead), "progress", progress)
		return shootAtOpponent(view)
	}

	target := ahead[f.rng.IntN(len(ahead))]
	f.logger.Debug("passing forward", "holder", view.Holder.ID, "target", target.ID, "choices", len(ahead))
	return command.PassTo(target.Name())
}

// ForwardTeammates returns the holder's teammates strictly closer to the
// opposing goal. Red attacks towards y=7, blue towards y=0.
func ForwardTeammates(holder game.Player) []game.Player {
	var ahead []game.Player
	for _, p := range game.TeamRoster(holder.Team) {
		switch holder.Team {
		case game.Red:
			if p.Position.Y > holder.Position.Y {
				ahead = append(ahead, p)
			}
		case game.Blue:
			if p.Position.Y < holder.Position.Y {
				ahead = append(ahead, p)
			}
		}
	}
	return ahead
}

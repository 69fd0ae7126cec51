package bot

import (
	rand "math/rand/v2"

	"github.com/charmbracelet/log"

	"github.com/lox/passandshoot/internal/command"
	"github.com/lox/passandshoot/internal/game"
)

// Random picks uniformly between shooting and passing to any other teammate.
type Random struct {
	rng    *rand.Rand
	logger *log.Logger
}

// NewRandom creates a random policy.
func NewRandom(rng *rand.Rand, logger *log.Logger) *Random {
	return &Random{rng: rng, logger: logger.WithPrefix("bot").With("policy", RandomName)}
}

func (r *Random) Decide(view game.View) command.Command {
	var mates []game.Player
	for _, p := range game.TeamRoster(view.Holder.Team) {
		if p.ID != view.Holder.ID {
			mates = append(mates, p)
		}
	}

	// One extra slot stands for the shot.
	choice := r.rng.IntN(len(mates) + 1)
	if choice == len(mates) {
		r.logger.Debug("random shot", "holder", view.Holder.ID)
		return shootAtOpponent(view)
	}
	r.logger.Debug("random pass", "holder", view.Holder.ID, "target", mates[choice].ID)
	return command.PassTo(mates[choice].Name())
}

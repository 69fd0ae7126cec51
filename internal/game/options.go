package game

import "github.com/charmbracelet/log"

// Option configures a Game during creation.
type Option func(*Game)

// WithLogger sets the logger used for debug tracing of transitions.
func WithLogger(logger *log.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger.WithPrefix("game")
		}
	}
}

// WithSubscriber registers a subscriber that receives every appended event,
// starting with the kick-off event.
func WithSubscriber(sub EventSubscriber) Option {
	return func(g *Game) {
		if sub != nil {
			g.subscribers = append(g.subscribers, sub)
		}
	}
}

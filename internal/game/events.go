package game

import (
	"fmt"
	"strings"
)

// EventKind classifies an entry in the match log.
type EventKind string

const (
	EventStart        EventKind = "start"
	EventPass         EventKind = "pass"
	EventInterception EventKind = "interception"
	EventGoal         EventKind = "goal"
	EventMiss         EventKind = "miss"
	EventEnd          EventKind = "end"
)

func (k EventKind) String() string { return string(k) }

// Event is one entry of the append-only match log. Timestamp is a display
// label derived from the round, not wall-clock time.
type Event struct {
	Round       int
	Kind        EventKind
	Timestamp   string
	Description string
}

func (e Event) String() string {
	return fmt.Sprintf("[%s] %s", e.Timestamp, e.Description)
}

// EventSubscriber is notified of every event appended to a Game's log.
type EventSubscriber interface {
	OnEvent(event Event)
}

// EventSubscriberFunc adapts a function to EventSubscriber.
type EventSubscriberFunc func(Event)

func (f EventSubscriberFunc) OnEvent(event Event) { f(event) }

func timestamp(round int) string {
	return fmt.Sprintf("%d:00", round)
}

func newStartEvent(holder PlayerID, score Score) Event {
	return Event{
		Round:     0,
		Kind:      EventStart,
		Timestamp: timestamp(0),
		Description: fmt.Sprintf("The game starts. The situation is %s. %s has the ball.",
			score, displayName(holder)),
	}
}

func newPassEvent(round int, from, to PlayerID) Event {
	return Event{
		Round:       round,
		Kind:        EventPass,
		Timestamp:   timestamp(round),
		Description: fmt.Sprintf("%s passes the ball to %s.", from, to),
	}
}

func newInterceptionEvent(round int, from, to, by PlayerID) Event {
	return Event{
		Round:       round,
		Kind:        EventInterception,
		Timestamp:   timestamp(round),
		Description: fmt.Sprintf("%s tries to pass the ball to %s but %s intercepts the pass.", from, to, by),
	}
}

func newShotEvent(round int, shooter PlayerID, scored bool, score Score) Event {
	if scored {
		return Event{
			Round:       round,
			Kind:        EventGoal,
			Timestamp:   timestamp(round),
			Description: fmt.Sprintf("%s shoots and scores! The situation is %s.", shooter, score),
		}
	}
	return Event{
		Round:       round,
		Kind:        EventMiss,
		Timestamp:   timestamp(round),
		Description: fmt.Sprintf("%s shoots but fails to score. The situation is still %s.", shooter, score),
	}
}

func newEndEvent(lastRound int, score Score) Event {
	return Event{
		Round:       lastRound,
		Kind:        EventEnd,
		Timestamp:   timestamp(lastRound),
		Description: fmt.Sprintf("The game has ended. The final score is %s.", score),
	}
}

// displayName renders "B_GK" as "B-GK" for prose.
func displayName(id PlayerID) string {
	return strings.ReplaceAll(id.String(), "_", "-")
}

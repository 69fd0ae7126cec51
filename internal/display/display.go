// Package display renders a Pass and Shoot match as text: the pitch with the
// ball holder marked, the event log, help and player information.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/passandshoot/internal/command"
	"github.com/lox/passandshoot/internal/game"
)

const (
	columnWidth = 10
	pitchWidth  = 3 * columnWidth
	// halfway is the last row of the red half.
	halfway = 3
)

// Renderer turns match state into styled strings.
type Renderer struct {
	styles Styles
}

// NewRenderer creates a renderer with the given styles.
func NewRenderer(styles Styles) *Renderer {
	return &Renderer{styles: styles}
}

// NewTextRenderer creates a renderer for a terminal or plain writer.
func NewTextRenderer(w io.Writer, color bool) *Renderer {
	return NewRenderer(NewStyles(NewLipglossRenderer(w, color)))
}

// Banner is shown once when the program starts.
func (r *Renderer) Banner() string {
	return r.styles.Title.Render("Welcome to play Pass and Shoot!")
}

// Help lists the available commands.
func (r *Renderer) Help() string {
	var b strings.Builder
	b.WriteString("Commands:\n")
	for _, u := range command.Usage {
		usage := string(u.Verb)
		if u.Arg != "" {
			usage += " " + u.Arg
		}
		fmt.Fprintf(&b, "\t%-16s %s\n", usage, r.styles.Help.Render(u.Description))
	}
	return strings.TrimRight(b.String(), "\n")
}

// Field draws the pitch with red defending the top goal. The holder's label
// carries a trailing '*'.
func (r *Renderer) Field(holder game.PlayerID) string {
	var grid [8][3]*game.Player
	players := game.Roster()
	for i := range players {
		p := &players[i]
		grid[p.Position.Y][p.Position.X] = p
	}

	goalLine := strings.Repeat("_", 11) + strings.Repeat(" ", pitchWidth-22) + strings.Repeat("_", 11)
	blank := r.styles.Pitch.Render("|") + strings.Repeat(" ", pitchWidth) + r.styles.Pitch.Render("|")

	var lines []string
	lines = append(lines, r.styles.Pitch.Render(" "+goalLine))
	for y := range grid {
		lines = append(lines, blank)
		var row strings.Builder
		row.WriteString(r.styles.Pitch.Render("|"))
		for x := range grid[y] {
			row.WriteString(r.cell(grid[y][x], holder))
		}
		row.WriteString(r.styles.Pitch.Render("|"))
		lines = append(lines, row.String())
		if y == halfway {
			lines = append(lines, blank)
			lines = append(lines, r.styles.Pitch.Render("|"+strings.Repeat("-", pitchWidth)+"|"))
		}
	}
	lines = append(lines, blank)
	lines = append(lines, r.styles.Pitch.Render("|"+goalLine+"|"))
	return strings.Join(lines, "\n")
}

func (r *Renderer) cell(p *game.Player, holder game.PlayerID) string {
	if p == nil {
		return strings.Repeat(" ", columnWidth)
	}
	label := p.Name()
	style := r.styles.Blue
	if p.Team == game.Red {
		style = r.styles.Red
	}
	if p.ID == holder {
		label += "*"
		style = r.styles.Holder
	} else {
		label += " "
	}
	left := (columnWidth - len(label)) / 2
	right := columnWidth - len(label) - left
	return strings.Repeat(" ", left) + style.Render(label) + strings.Repeat(" ", right)
}

// Events renders one line per event.
func (r *Renderer) Events(events []game.Event) string {
	lines := make([]string, 0, len(events))
	for _, e := range events {
		desc := r.styles.Event.Render(e.Description)
		if e.Kind == game.EventGoal || e.Kind == game.EventEnd {
			desc = r.styles.Goal.Render(e.Description)
		}
		lines = append(lines, r.styles.Stamp.Render("["+e.Timestamp+"]")+" "+desc)
	}
	return strings.Join(lines, "\n")
}

// Status is a one line summary of the match.
func (r *Renderer) Status(view game.View) string {
	round := fmt.Sprintf("Round %d/%d", min(view.Round, view.TotalRounds), view.TotalRounds)
	if view.Ended {
		round = "Full time"
	}
	return r.styles.Status.Render(fmt.Sprintf("%s | %s | ball: %s", round, view.Score, view.Holder.Name()))
}

// PlayerInfo describes the given players, one per line.
func (r *Renderer) PlayerInfo(players ...game.Player) string {
	lines := []string{r.styles.Heading.Render(fmt.Sprintf("%-6s %-5s %-15s %s", "NAME", "TEAM", "ROLE", "POSITION"))}
	for _, p := range players {
		style := r.styles.Blue
		if p.Team == game.Red {
			style = r.styles.Red
		}
		lines = append(lines, style.Render(fmt.Sprintf("%-6s %-5s %-15s %s", p.Name(), p.Team, p.Role, p.Position)))
	}
	return strings.Join(lines, "\n")
}

// Error renders a rejected command.
func (r *Renderer) Error(err error) string {
	return r.styles.Error.Render(err.Error())
}

// Package tui is the full-screen front end: a scrolling match log, a sidebar
// with the pitch and a command prompt. The match loop runs on its own
// goroutine and talks to the model through Controller and Sink.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/lox/passandshoot/internal/display"
	"github.com/lox/passandshoot/internal/game"
)

// ErrClosed is returned to a waiting controller once the user leaves.
var ErrClosed = errors.New("tui: closed")

const (
	logPane = iota
	inputPane
)

// Model is the Bubble Tea model for a match.
type Model struct {
	logger   *log.Logger
	renderer *display.Renderer
	program  *tea.Program

	// UI components
	logViewport  viewport.Model
	commandInput textinput.Model

	// State
	gameLog     []string
	lines       chan string
	done        chan struct{}
	closeOnce   sync.Once
	quitting    bool
	focusedPane int

	view      game.View
	hasView   bool
	humanTurn bool
	finished  bool
	finalText string

	// Dimensions
	width       int
	height      int
	initialized bool

	// Test mode
	testMode    bool
	capturedLog []string
}

// Messages sent from the match goroutine.
type (
	logMsg      struct{ entries []string }
	viewMsg     struct{ view game.View }
	turnMsg     struct{ view game.View }
	finishedMsg struct{ summary string }
)

// NewModel creates a model that renders match content with renderer.
func NewModel(renderer *display.Renderer, logger *log.Logger) *Model {
	return NewModelWithOptions(renderer, logger, false)
}

// NewModelWithOptions creates a model, optionally in test mode. A test-mode
// model applies messages synchronously and records every log entry.
func NewModelWithOptions(renderer *display.Renderer, logger *log.Logger, testMode bool) *Model {
	vp := viewport.New(10, 5)
	vp.SetContent("")

	ti := textinput.New()
	ti.Placeholder = "pass B_MF, shoot R, field, events 3, help"
	ti.Focus()
	ti.CharLimit = 64
	ti.Width = 64
	ti.PromptStyle = PromptStyle
	ti.TextStyle = InputTextStyle
	ti.Prompt = "> "

	return &Model{
		logger:       logger.WithPrefix("tui"),
		renderer:     renderer,
		logViewport:  vp,
		commandInput: ti,
		gameLog:      []string{},
		lines:        make(chan string, 1),
		done:         make(chan struct{}),
		focusedPane:  inputPane,
		testMode:     testMode,
		capturedLog:  []string{},
	}
}

// Attach routes messages from the match goroutine through p. It must be
// called before the match starts.
func (m *Model) Attach(p *tea.Program) {
	m.program = p
}

func (m *Model) send(msg tea.Msg) {
	if m.program != nil {
		m.program.Send(msg)
		return
	}
	m.Update(msg)
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case logMsg:
		for _, entry := range msg.entries {
			m.AddLogEntry(entry)
		}
		return m, nil

	case viewMsg:
		m.view = msg.view
		m.hasView = true
		return m, nil

	case turnMsg:
		m.view = msg.view
		m.hasView = true
		m.humanTurn = true
		return m, nil

	case finishedMsg:
		m.finished = true
		m.humanTurn = false
		m.finalText = msg.summary
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.logger.Debug("Updating dimensions", "width", m.width, "height", m.height)

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			return m, m.quit()
		case "tab":
			if m.focusedPane == logPane {
				m.focusedPane = inputPane
				m.commandInput.Focus()
			} else {
				m.focusedPane = logPane
				m.commandInput.Blur()
			}
		case "enter":
			if m.focusedPane == inputPane {
				line := strings.TrimSpace(m.commandInput.Value())
				m.commandInput.SetValue("")
				if cmd := m.submit(line); cmd != nil {
					return m, cmd
				}
			}
		case "up", "k":
			if m.focusedPane == logPane {
				m.logViewport.ScrollUp(1)
			}
		case "down", "j":
			if m.focusedPane == logPane {
				m.logViewport.ScrollDown(1)
			}
		case "pgup":
			if m.focusedPane == logPane {
				m.logViewport.HalfPageUp()
			}
		case "pgdown":
			if m.focusedPane == logPane {
				m.logViewport.HalfPageDown()
			}
		case "home":
			if m.focusedPane == logPane {
				m.logViewport.GotoTop()
			}
		case "end":
			if m.focusedPane == logPane {
				m.logViewport.GotoBottom()
			}
		}
	}

	var cmd tea.Cmd
	if m.focusedPane == inputPane {
		m.commandInput, cmd = m.commandInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	m.logViewport, cmd = m.logViewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit hands a typed line to the waiting controller. Input outside the
// human's turn is refused; after full time Enter leaves the program.
func (m *Model) submit(line string) tea.Cmd {
	if m.finished {
		return m.quit()
	}
	if !m.humanTurn {
		m.AddLogEntry(HintStyle.Render("Wait for your turn."))
		return nil
	}

	select {
	case m.lines <- line:
		m.humanTurn = false
		m.AddLogEntry(EchoStyle.Render("> " + line))
	default:
		m.AddLogEntry(HintStyle.Render("Still working on the previous command."))
	}
	return nil
}

func (m *Model) quit() tea.Cmd {
	m.quitting = true
	m.closeOnce.Do(func() { close(m.done) })
	return tea.Sequence(tea.ClearScreen, tea.Quit)
}

// WaitForLine blocks until the user submits a line, leaves the program or
// ctx is done.
func (m *Model) WaitForLine(ctx context.Context) (string, error) {
	select {
	case line := <-m.lines:
		return line, nil
	case <-m.done:
		return "", ErrClosed
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// Finish tells the model the match loop is over.
func (m *Model) Finish(summary string) {
	m.send(finishedMsg{summary: summary})
}

func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	// Input pane (bottom, full width)
	inputContent := m.renderInputPane()
	inputHeight := lipgloss.Height(inputContent)
	inputStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(inputPane)).
		Width(max(m.width-2, 1)).
		Height(max(inputHeight-2, 1))
	inputView := inputStyle.Render(inputContent)

	// Sidebar (pitch and score)
	sidebarContent := m.renderSidebar()
	sidebarWidth := max(lipgloss.Width(sidebarContent), 25)
	paneHeight := max(m.height-inputHeight-4, 1)
	sidebarView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(blurredBorderColor).
		Width(sidebarWidth).
		Height(paneHeight).
		Render(sidebarContent)

	// Match log
	logWidth := max(m.width-sidebarWidth-4, 1)
	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	m.logViewport.Width = logWidth
	m.logViewport.Height = paneHeight
	if !m.initialized && logWidth > 1 && paneHeight > 1 {
		m.logViewport.GotoBottom()
		m.initialized = true
	}
	logView := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.borderColor(logPane)).
		Width(logWidth).
		Height(paneHeight).
		Render(m.logViewport.View())

	topRow := lipgloss.JoinHorizontal(lipgloss.Top, logView, sidebarView)
	return lipgloss.JoinVertical(lipgloss.Top, topRow, inputView)
}

func (m *Model) borderColor(pane int) lipgloss.Color {
	if m.focusedPane == pane {
		return focusedBorderColor
	}
	return blurredBorderColor
}

func (m *Model) renderSidebar() string {
	if !m.hasView {
		return WaitingStyle.Render("Waiting for kick-off...")
	}
	return m.renderer.Field(m.view.Holder.ID) + "\n\n" + m.renderer.Status(m.view)
}

func (m *Model) renderInputPane() string {
	var content strings.Builder

	switch {
	case m.finished:
		content.WriteString(TurnStyle.Render(m.finalText))
		m.commandInput.Placeholder = "Enter or Ctrl+C to exit"
	case m.humanTurn:
		content.WriteString(TurnStyle.Render(fmt.Sprintf("Your move: %s has the ball.", m.view.Holder.Name())))
		m.commandInput.Placeholder = "pass B_MF, shoot R, field, events 3, help"
	default:
		content.WriteString(WaitingStyle.Render("Waiting for the opponent..."))
		m.commandInput.Placeholder = ""
	}
	content.WriteString("\n")
	content.WriteString(m.commandInput.View())
	content.WriteString("\n")

	if m.focusedPane == logPane {
		content.WriteString(HintStyle.Render("Log focused: ↑↓ scroll, PgUp/PgDn half page, Home/End, Tab to input"))
	} else {
		content.WriteString(HintStyle.Render("Tab to scroll log • Enter to submit • Ctrl+C to quit"))
	}
	return content.String()
}

// AddLogEntry appends a block to the match log and follows it.
func (m *Model) AddLogEntry(entry string) {
	m.gameLog = append(m.gameLog, entry)

	if m.testMode {
		m.capturedLog = append(m.capturedLog, entry)
		return
	}

	m.logViewport.SetContent(strings.Join(m.gameLog, "\n"))
	if m.logViewport.Height > 0 && m.logViewport.Width > 0 {
		m.logViewport.GotoBottom()
	}
}

// IsTestMode returns whether the model runs in test mode.
func (m *Model) IsTestMode() bool {
	return m.testMode
}

// GetCapturedLog returns the captured log entries (test mode only).
func (m *Model) GetCapturedLog() []string {
	if !m.testMode {
		return nil
	}
	result := make([]string, len(m.capturedLog))
	copy(result, m.capturedLog)
	return result
}

// InjectLine queues a line as if the user typed it (test mode only).
func (m *Model) InjectLine(line string) error {
	if !m.testMode {
		return fmt.Errorf("line injection only available in test mode")
	}

	select {
	case m.lines <- line:
		return nil
	default:
		return fmt.Errorf("line channel full")
	}
}

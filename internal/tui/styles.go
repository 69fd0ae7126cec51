package tui

import "github.com/charmbracelet/lipgloss"

// Pane and prompt styles. Match content is styled by the display package.
var (
	focusedBorderColor = lipgloss.Color("#04B575")
	blurredBorderColor = lipgloss.Color("#626262")

	PromptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#04B575")).
			Bold(true)

	InputTextStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA"))

	EchoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4"))

	TurnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFD700")).
			Bold(true)

	WaitingStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#96CEB4")).
			Bold(true)

	HintStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#626262"))
)

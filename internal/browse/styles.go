package browse

import "github.com/charmbracelet/lipgloss"

var (
	// Header style
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(lipgloss.Color("#00ADD8")).
			Padding(0, 1)

	// Table header style
	tableHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Underline(true)

	// Prompt style
	promptStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ADD8"))

	// Highlight for counts and glyph columns
	accentStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFA500"))

	// Footer style
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#808080"))

	// Error style
	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF0000")).
			Bold(true)

	// Progress bar style
	barStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ADD8"))
)

package style

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	SetupTitle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("228")) // Bright yellow
	SetupItem         = lipgloss.NewStyle()
	SetupItemSelected = lipgloss.NewStyle().Foreground(lipgloss.Color("204")).Bold(true) // Pinkish-reddish purple
	SetupHint         = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))

	Header      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("82")) // Green
	Counter     = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	Found       = lipgloss.NewStyle().Foreground(lipgloss.Color("39")) // Blue
	Unreachable = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))  // Bright red
	Busy        = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Italic(true)

	// Page styles
	TopPattern = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))            // Pinkish-reddish purple
	Title      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("228")) // Bright yellow
	Content    = lipgloss.NewStyle()
	Footer     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type RGB struct {
	R int
	G int
	B int
}

// GenerateHexColor generates hexadecimal string for given RGB values in the range 0-255.
// Format: #RRGGBB
func GenerateHexColor(r, g, b int) string {
	return fmt.Sprintf("#%02X%02X%02X", clamp(r), clamp(g), clamp(b))
}

func clamp(v int) int {
	return max(0, min(255, v))
}

package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen    = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow   = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed      = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue     = lipgloss.NewStyle().Foreground(ColorBlue)
	StyleDim      = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg       = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader   = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold     = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	StyleSelected = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
)

// TaskStyle returns the text style for a task's flags. Urgent tasks are
// underlined; the color is taken from the first of obsolete (red), optional
// (grey) and important (blue) that is set.
func TaskStyle(t *domain.Task) lipgloss.Style {
	var s lipgloss.Style
	switch {
	case t.Obsolete:
		s = StyleRed.Strikethrough(true)
	case t.Optional:
		s = StyleDim
	case t.Important:
		s = StyleBlue.Bold(true)
	default:
		s = StyleFg
	}
	if t.Urgent {
		s = s.Underline(true)
	}
	return s
}

// FlagLabels lists the set flags of t other than done, in display order.
func FlagLabels(t *domain.Task) []string {
	var labels []string
	if t.Important {
		labels = append(labels, "important")
	}
	if t.Urgent {
		labels = append(labels, "urgent")
	}
	if t.Optional {
		labels = append(labels, "optional")
	}
	if t.Obsolete {
		labels = append(labels, "obsolete")
	}
	return labels
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}

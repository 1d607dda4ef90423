package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

const defaultMarkdownWidth = 80

// RenderMarkdown renders md for the terminal. Without color the "notty"
// style is used, which keeps the output free of escape sequences.
func RenderMarkdown(md string, width int, color bool) (string, error) {
	if strings.TrimSpace(md) == "" {
		return "", nil
	}
	if width <= 0 {
		width = defaultMarkdownWidth
	}
	style := "notty"
	if color {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}

package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// TreeItem represents a single line in a tree display.
type TreeItem struct {
	Label    string // dim prefix, e.g. the task path
	Title    string
	Level    int
	IsLast   bool // last among its siblings
	Done     bool
	Style    lipgloss.Style // applied to Title unless Done
	Marker   string         // expand/collapse marker shown before the title
	Detail   string         // right-aligned badge
	Selected bool
}

const (
	treeBranch = "├─ "
	treeCorner = "└─ "
	treePipe   = "│  "
	treeBlank  = "   "

	cursorOn  = "› "
	cursorOff = "  "
)

// RenderTree renders items, given in depth-first order, as an indented tree
// with box-drawing connectors. Done items get a green ✔ and a dimmed title;
// detail badges are right-aligned. When any item is selected every line
// gets a cursor gutter.
func RenderTree(items []TreeItem) string {
	if len(items) == 0 {
		return ""
	}

	gutter := false
	for _, item := range items {
		if item.Selected {
			gutter = true
			break
		}
	}

	type lineInfo struct {
		content string
		badge   string
	}
	lines := make([]lineInfo, len(items))
	maxContentWidth := 0

	// lastAt[l] records whether the latest item seen at level l closed its
	// sibling list, which decides between a pipe and a blank below it.
	var lastAt []bool

	for idx, item := range items {
		for len(lastAt) <= item.Level {
			lastAt = append(lastAt, false)
		}
		lastAt[item.Level] = item.IsLast

		var prefix strings.Builder
		if gutter {
			if item.Selected {
				prefix.WriteString(StyleSelected.Render(cursorOn))
			} else {
				prefix.WriteString(cursorOff)
			}
		}
		if item.Level > 0 {
			for l := 1; l < item.Level; l++ {
				if lastAt[l] {
					prefix.WriteString(treeBlank)
				} else {
					prefix.WriteString(StyleDim.Render(treePipe))
				}
			}
			if item.IsLast {
				prefix.WriteString(StyleDim.Render(treeCorner))
			} else {
				prefix.WriteString(StyleDim.Render(treeBranch))
			}
		}

		var content strings.Builder
		content.WriteString(prefix.String())
		if item.Marker != "" {
			content.WriteString(StyleDim.Render(item.Marker + " "))
		}
		if item.Done {
			content.WriteString(StyleGreen.Render("✔ "))
		}
		if item.Label != "" {
			content.WriteString(StyleDim.Render(item.Label + " "))
		}
		switch {
		case item.Selected:
			content.WriteString(StyleSelected.Render(item.Title))
		case item.Done:
			content.WriteString(Dim(item.Title))
		default:
			content.WriteString(item.Style.Render(item.Title))
		}

		lines[idx].content = content.String()
		if item.Detail != "" {
			lines[idx].badge = StyleBlue.Render("[ " + item.Detail + " ]")
		}
		if w := lipgloss.Width(lines[idx].content); w > maxContentWidth {
			maxContentWidth = w
		}
	}

	var b strings.Builder
	for _, li := range lines {
		b.WriteString(li.content)
		if li.badge != "" {
			pad := maxContentWidth - lipgloss.Width(li.content)
			b.WriteString(strings.Repeat(" ", pad) + "  " + li.badge)
		}
		b.WriteString("\n")
	}
	return b.String()
}

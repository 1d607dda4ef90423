// Package importer converts between markdown checklists and task forests.
//
// Parsing is line based and best effort: headings ("## ...") and checkbox
// items ("- [ ] ...", "- [x] ...") become tasks, everything else is skipped.
package importer

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/alexanderramin/weekplan/internal/domain"
)

var (
	headingRe  = regexp.MustCompile(`^(#{2,})\s*(.*)$`)
	checkboxRe = regexp.MustCompile(`^(\s*)- \[([ xX])\]\s*(.+)$`)
	htmlTagRe  = regexp.MustCompile(`<[^>]+>`)
)

const (
	boldMarker = "**"
	indentStep = 4
	tabWidth   = 4
)

// frame is one entry of the nesting stack used while parsing.
type frame struct {
	task  *domain.Task
	level int
}

// ParseMarkdown reads a markdown document and returns the resulting forest.
// Only read failures are reported; unrecognized lines are ignored.
func ParseMarkdown(r io.Reader) ([]*domain.Task, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, strings.TrimSuffix(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading markdown: %w", err)
	}
	return ParseMarkdownLines(lines), nil
}

// ParseMarkdownLines builds a forest from markdown lines.
//
// A heading with n hashes sits at level n-2 and becomes the baseline for the
// checkboxes that follow it. A checkbox sits one level below the last
// heading plus one level per four columns of indentation. Each task attaches
// to the nearest preceding task with a smaller level, or becomes a root.
func ParseMarkdownLines(lines []string) []*domain.Task {
	var roots []*domain.Task
	stack := []frame{{task: nil, level: -1}}
	lastHeadlineLevel := 0

	for _, raw := range lines {
		if strings.TrimSpace(raw) == "" {
			continue
		}

		var (
			level int
			text  string
			done  bool
		)
		if m := headingRe.FindStringSubmatch(raw); m != nil {
			level = len(m[1]) - 2
			lastHeadlineLevel = level
			text = strings.TrimSpace(m[2])
			if text == "" {
				continue
			}
		} else if m := checkboxRe.FindStringSubmatch(raw); m != nil {
			level = lastHeadlineLevel + 1 + indentWidth(m[1])/indentStep
			done = m[2] == "x" || m[2] == "X"
			text = strings.TrimSpace(m[3])
		} else {
			continue
		}

		task := domain.NewTask("")
		task.Done = done
		text, task.Important = stripBold(text)
		task.Text = stripMarkup(text)

		for stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}
		if parent := stack[len(stack)-1].task; parent != nil {
			parent.AddChild(task)
		} else {
			roots = append(roots, task)
		}
		stack = append(stack, frame{task: task, level: level})
	}
	return roots
}

// indentWidth counts leading whitespace in columns.
func indentWidth(ws string) int {
	n := 0
	for _, r := range ws {
		if r == '\t' {
			n += tabWidth
		} else {
			n++
		}
	}
	return n
}

// stripBold removes a surrounding **...** pair and reports whether it was
// present.
func stripBold(text string) (string, bool) {
	if len(text) >= 2*len(boldMarker) &&
		strings.HasPrefix(text, boldMarker) && strings.HasSuffix(text, boldMarker) {
		return strings.TrimSpace(text[len(boldMarker) : len(text)-len(boldMarker)]), true
	}
	return text, false
}

// stripMarkup drops simple HTML tags, leftover bold markers and characters
// that cannot be stored.
func stripMarkup(text string) string {
	text = domain.CleanText(text)
	text = htmlTagRe.ReplaceAllString(text, "")
	text = strings.ReplaceAll(text, boldMarker, "")
	return strings.TrimSpace(text)
}

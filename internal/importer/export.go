package importer

import (
	"strings"

	"github.com/alexanderramin/weekplan/internal/domain"
)

// RenderMarkdown writes forest as a markdown checklist: top-level tasks as
// "##" headings, descendants as checkboxes indented four spaces per level
// below the first. Important tasks are wrapped in bold markers.
//
// Parsing the output with ParseMarkdown restores the shape, text, done and
// important flags of every task whose text is non-empty and free of markup.
// Top-level done state and the remaining flags have no markdown form and are
// dropped.
func RenderMarkdown(forest []*domain.Task) string {
	var b strings.Builder
	for i, root := range forest {
		if i > 0 {
			b.WriteByte('\n')
		}
		b.WriteString("## ")
		b.WriteString(markdownText(root))
		b.WriteByte('\n')
		writeChecklist(&b, root.Children, 0)
	}
	return b.String()
}

func writeChecklist(b *strings.Builder, tasks []*domain.Task, depth int) {
	for _, t := range tasks {
		b.WriteString(strings.Repeat(" ", depth*indentStep))
		if t.Done {
			b.WriteString("- [x] ")
		} else {
			b.WriteString("- [ ] ")
		}
		b.WriteString(markdownText(t))
		b.WriteByte('\n')
		writeChecklist(b, t.Children, depth+1)
	}
}

func markdownText(t *domain.Task) string {
	if t.Important {
		return boldMarker + t.Text + boldMarker
	}
	return t.Text
}

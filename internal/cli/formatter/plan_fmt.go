package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/tree"
)

const (
	markerOpen   = "▾"
	markerClosed = "▸"
	progressBar  = 20
)

// VisibleTask is one displayed row of a plan outline.
type VisibleTask struct {
	Task   *domain.Task
	Path   tree.Path
	Level  int
	IsLast bool
}

// VisibleTasks flattens forest in display order. Unless expandAll is set,
// the children of collapsed tasks are skipped.
func VisibleTasks(forest []*domain.Task, expandAll bool) []VisibleTask {
	var rows []VisibleTask
	var visit func(tasks []*domain.Task, parent tree.Path, level int)
	visit = func(tasks []*domain.Task, parent tree.Path, level int) {
		for i, t := range tasks {
			path := make(tree.Path, len(parent)+1)
			copy(path, parent)
			path[len(parent)] = i + 1
			rows = append(rows, VisibleTask{Task: t, Path: path, Level: level, IsLast: i == len(tasks)-1})
			if expandAll || t.Open {
				visit(t.Children, path, level+1)
			}
		}
	}
	visit(forest, nil, 0)
	return rows
}

// PlanTreeItems converts rows to tree items. selected is the index of the
// highlighted row, or -1. Markers are shown when showMarkers is set.
func PlanTreeItems(rows []VisibleTask, selected int, showMarkers bool) []TreeItem {
	items := make([]TreeItem, len(rows))
	for i, r := range rows {
		item := TreeItem{
			Label:    r.Path.String(),
			Title:    r.Task.Text,
			Level:    r.Level,
			IsLast:   r.IsLast,
			Done:     r.Task.Done,
			Style:    TaskStyle(r.Task),
			Detail:   strings.Join(FlagLabels(r.Task), " · "),
			Selected: i == selected,
		}
		if showMarkers {
			switch {
			case len(r.Task.Children) == 0:
				item.Marker = " "
			case r.Task.Open:
				item.Marker = markerOpen
			default:
				item.Marker = markerClosed
			}
		}
		items[i] = item
	}
	return items
}

// FormatPlanTree renders the full outline of forest.
func FormatPlanTree(forest []*domain.Task) string {
	return RenderTree(PlanTreeItems(VisibleTasks(forest, true), -1, false))
}

// FormatPlan renders a plan with a header, a progress line and the outline.
func FormatPlan(planID string, forest []*domain.Task) string {
	var b strings.Builder
	b.WriteString(Header(planID))
	b.WriteString("\n")
	if len(forest) == 0 {
		b.WriteString(Dim("No tasks yet. Add one with 'weekplan task add " + planID + "'."))
		b.WriteString("\n")
		return b.String()
	}
	done, total := Progress(forest)
	b.WriteString(RenderProgress(done, total, progressBar))
	b.WriteString("\n\n")
	b.WriteString(FormatPlanTree(forest))
	return b.String()
}

// Progress counts done tasks against all tasks that are not obsolete.
func Progress(forest []*domain.Task) (done, total int) {
	domain.Walk(forest, func(t *domain.Task, _ int) bool {
		if t.Obsolete {
			return true
		}
		total++
		if t.Done {
			done++
		}
		return true
	})
	return done, total
}

// FormatPlanList renders the plan identifiers in a box, newest last.
func FormatPlanList(ids []string) string {
	if len(ids) == 0 {
		return Dim("No plans yet. Create one with 'weekplan new <plan>' or 'weekplan import <file.md> <plan>'.") + "\n"
	}
	rows := make([][]string, len(ids))
	for i, id := range ids {
		rows[i] = []string{Dim(strconv.Itoa(i + 1)), Bold(id)}
	}
	return RenderBox("Plans", RenderTable([]string{"#", "PLAN"}, rows)) + "\n"
}

// FormatTaskLine renders one task with its path for command confirmations,
// e.g. "1.2 Write tests [ urgent ]".
func FormatTaskLine(path tree.Path, t *domain.Task) string {
	var b strings.Builder
	if t.Done {
		b.WriteString(StyleGreen.Render("✔ "))
	}
	b.WriteString(Dim(path.String()) + " ")
	b.WriteString(TaskStyle(t).Render(t.Text))
	if labels := FlagLabels(t); len(labels) > 0 {
		b.WriteString(" " + StyleBlue.Render("[ "+strings.Join(labels, " · ")+" ]"))
	}
	return b.String()
}

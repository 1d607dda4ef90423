package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/alexanderramin/weekplan/internal/cli/formatter"
	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/service"
	"github.com/alexanderramin/weekplan/internal/tree"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// editorChrome is the number of lines around the outline: header, progress
// and a blank line above; separator, status and key hints below.
const editorChrome = 6

type editorKeyMap struct {
	Up        key.Binding
	Down      key.Binding
	Collapse  key.Binding
	Expand    key.Binding
	Add       key.Binding
	AddTop    key.Binding
	Delete    key.Binding
	Indent    key.Binding
	Outdent   key.Binding
	MoveUp    key.Binding
	MoveDown  key.Binding
	Important key.Binding
	Urgent    key.Binding
	Optional  key.Binding
	Obsolete  key.Binding
	Done      key.Binding
	Rename    key.Binding
	Copy      key.Binding
	Quit      key.Binding
}

func defaultEditorKeys() editorKeyMap {
	return editorKeyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Collapse:  key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "collapse")),
		Expand:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "expand")),
		Add:       key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add subtask")),
		AddTop:    key.NewBinding(key.WithKeys("A", "n"), key.WithHelp("A", "add top-level")),
		Delete:    key.NewBinding(key.WithKeys("x", "delete"), key.WithHelp("x", "delete")),
		Indent:    key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "indent")),
		Outdent:   key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("S-tab", "outdent")),
		MoveUp:    key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move up")),
		MoveDown:  key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move down")),
		Important: key.NewBinding(key.WithKeys("i"), key.WithHelp("i", "important")),
		Urgent:    key.NewBinding(key.WithKeys("u"), key.WithHelp("u", "urgent")),
		Optional:  key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "optional")),
		Obsolete:  key.NewBinding(key.WithKeys("b"), key.WithHelp("b", "obsolete")),
		Done:      key.NewBinding(key.WithKeys(" ", "d"), key.WithHelp("space", "done")),
		Rename:    key.NewBinding(key.WithKeys("enter", "e"), key.WithHelp("enter", "rename")),
		Copy:      key.NewBinding(key.WithKeys("c", "ctrl+y"), key.WithHelp("c", "copy path")),
		Quit:      key.NewBinding(key.WithKeys("q", "esc", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// editorModel is the full-screen plan editor. Every key that changes the
// plan goes through the PlanService, which persists after each operation.
type editorModel struct {
	ctx      context.Context
	plans    service.PlanService
	copyText func(string) error
	keys     editorKeyMap

	rows     []formatter.VisibleTask
	selected *domain.Task
	cursor   int

	renaming bool
	creating bool
	input    textinput.Model
	vp       viewport.Model
	sized    bool
	width    int

	status  string
	saveErr error
}

func newEditorModel(ctx context.Context, plans service.PlanService, copyText func(string) error) *editorModel {
	ti := textinput.New()
	ti.Prompt = "› "
	ti.CharLimit = 500

	m := &editorModel{
		ctx:      ctx,
		plans:    plans,
		copyText: copyText,
		keys:     defaultEditorKeys(),
		input:    ti,
		vp:       viewport.New(0, 0),
	}
	if forest := plans.Forest(); len(forest) > 0 {
		m.selected = forest[0]
	}
	m.refresh()
	return m
}

func (m *editorModel) Init() tea.Cmd {
	return nil
}

// ShortHelp returns the key hints shown in the bottom bar.
func (m *editorModel) ShortHelp() []key.Binding {
	if m.renaming {
		return []key.Binding{
			key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "save")),
			key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
		}
	}
	k := m.keys
	return []key.Binding{k.Add, k.Delete, k.Indent, k.MoveUp, k.Done, k.Important, k.Urgent, k.Optional, k.Obsolete, k.Rename, k.Copy, k.Quit}
}

func (m *editorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.sized = true
		m.width = msg.Width
		m.vp.Width = msg.Width
		m.vp.Height = max(msg.Height-editorChrome, 1)
		m.input.Width = max(msg.Width-4, 10)
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		if m.renaming {
			return m.updateRename(msg)
		}
		return m.updateBrowse(msg)
	}
	if m.renaming {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *editorModel) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keys
	node := m.selected

	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Up):
		m.moveCursor(-1)
	case key.Matches(msg, k.Down):
		m.moveCursor(1)
	case key.Matches(msg, k.Collapse):
		m.collapse()
	case key.Matches(msg, k.Expand):
		m.expand()
	case key.Matches(msg, k.Add):
		return m, m.create(node)
	case key.Matches(msg, k.AddTop):
		return m, m.create(nil)
	case key.Matches(msg, k.Delete):
		m.apply(m.plans.Delete(m.ctx, node))
	case key.Matches(msg, k.Indent):
		m.apply(m.plans.Indent(m.ctx, node))
	case key.Matches(msg, k.Outdent):
		m.apply(m.plans.Outdent(m.ctx, node))
	case key.Matches(msg, k.MoveUp):
		m.apply(m.plans.MoveUp(m.ctx, node))
	case key.Matches(msg, k.MoveDown):
		m.apply(m.plans.MoveDown(m.ctx, node))
	case key.Matches(msg, k.Important):
		m.apply(m.plans.ToggleImportant(m.ctx, node))
	case key.Matches(msg, k.Urgent):
		m.apply(m.plans.ToggleUrgent(m.ctx, node))
	case key.Matches(msg, k.Optional):
		m.apply(m.plans.ToggleOptional(m.ctx, node))
	case key.Matches(msg, k.Obsolete):
		m.apply(m.plans.ToggleObsolete(m.ctx, node))
	case key.Matches(msg, k.Done):
		m.apply(m.plans.ToggleDone(m.ctx, node))
	case key.Matches(msg, k.Rename):
		if node != nil {
			return m, m.startRename()
		}
	case key.Matches(msg, k.Copy):
		m.copySelected()
	}
	return m, nil
}

func (m *editorModel) updateRename(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter:
		text, creating := m.input.Value(), m.creating
		m.stopRename()
		if creating && text == "" {
			return m, nil
		}
		m.apply(m.plans.Rename(m.ctx, m.selected, text))
		return m, nil
	case tea.KeyEsc:
		m.stopRename()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *editorModel) create(parent *domain.Task) tea.Cmd {
	res, err := m.plans.Create(m.ctx, parent)
	m.apply(res, err)
	if !res.Changed {
		return nil
	}
	cmd := m.startRename()
	// A new task starts with an empty input; leaving it empty keeps the
	// placeholder text.
	m.creating = true
	m.input.SetValue("")
	return cmd
}

func (m *editorModel) startRename() tea.Cmd {
	m.renaming = true
	m.input.Placeholder = m.selected.Text
	m.input.SetValue(m.selected.Text)
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *editorModel) stopRename() {
	m.renaming = false
	m.creating = false
	m.input.Blur()
}

// apply adopts the selection from an operation result and records whether
// the plan could be saved.
// apply records the outcome of an edit. A no-op leaves the last save
// error in place so an unsaved change is still reported on exit.
func (m *editorModel) apply(res tree.Result, err error) {
	m.selected = res.Selected
	if res.Changed || err != nil {
		m.saveErr = err
		m.status = ""
		if err != nil {
			m.status = "Not saved: " + err.Error()
		}
	}
	m.refresh()
}

func (m *editorModel) moveCursor(delta int) {
	if len(m.rows) == 0 {
		return
	}
	next := min(max(m.cursor+delta, 0), len(m.rows)-1)
	m.selected = m.rows[next].Task
	m.refresh()
}

// collapse closes an expanded task, or moves to the parent of a task that
// has nothing to collapse.
func (m *editorModel) collapse() {
	node := m.selected
	if node == nil {
		return
	}
	if node.Open && len(node.Children) > 0 {
		m.apply(m.plans.SetOpen(m.ctx, node, false))
		return
	}
	if parent := m.plans.Tree().Parent(node); parent != nil {
		m.selected = parent
		m.refresh()
	}
}

// expand opens a collapsed task, or moves to the first child of an open one.
func (m *editorModel) expand() {
	node := m.selected
	if node == nil || len(node.Children) == 0 {
		return
	}
	if !node.Open {
		m.apply(m.plans.SetOpen(m.ctx, node, true))
		return
	}
	m.selected = node.Children[0]
	m.refresh()
}

func (m *editorModel) copySelected() {
	if m.selected == nil {
		return
	}
	if m.copyText == nil {
		m.status = "Clipboard is not available"
		return
	}
	full := m.plans.Tree().FullText(m.selected)
	if err := m.copyText(full); err != nil {
		m.status = "Copy failed: " + err.Error()
		return
	}
	m.status = "Copied: " + full
}

// refresh rebuilds the visible rows and places the cursor on the selected
// task, or on its nearest visible ancestor when it is collapsed away.
func (m *editorModel) refresh() {
	m.rows = formatter.VisibleTasks(m.plans.Forest(), false)
	m.cursor = -1
	for node := m.selected; node != nil && m.cursor < 0; node = m.plans.Tree().Parent(node) {
		for i, r := range m.rows {
			if r.Task == node {
				m.cursor = i
				m.selected = node
				break
			}
		}
	}
	if m.cursor < 0 {
		m.selected = nil
		if len(m.rows) > 0 {
			m.cursor = 0
			m.selected = m.rows[0].Task
		}
	}

	m.vp.SetContent(formatter.RenderTree(formatter.PlanTreeItems(m.rows, m.cursor, true)))
	if m.cursor < m.vp.YOffset {
		m.vp.SetYOffset(m.cursor)
	} else if m.vp.Height > 0 && m.cursor >= m.vp.YOffset+m.vp.Height {
		m.vp.SetYOffset(m.cursor - m.vp.Height + 1)
	}
}

func (m *editorModel) View() string {
	var b strings.Builder
	b.WriteString(formatter.Header(m.plans.PlanID()))
	b.WriteString("\n")

	if len(m.rows) == 0 {
		b.WriteString(formatter.Dim("No tasks yet. Press a to add one."))
		b.WriteString("\n\n")
	} else {
		done, total := formatter.Progress(m.plans.Forest())
		b.WriteString(formatter.RenderProgress(done, total, 20))
		b.WriteString("\n\n")
		if m.sized {
			b.WriteString(m.vp.View())
		} else {
			b.WriteString(formatter.RenderTree(formatter.PlanTreeItems(m.rows, m.cursor, true)))
		}
		b.WriteString("\n")
	}

	sepStyle := lipgloss.NewStyle().Foreground(formatter.ColorDim)
	b.WriteString(sepStyle.Render(strings.Repeat("─", max(m.width, 20))))
	b.WriteString("\n")

	switch {
	case m.renaming:
		b.WriteString(m.input.View())
	case m.saveErr != nil:
		b.WriteString(formatter.StyleRed.Render(m.status))
	default:
		b.WriteString(formatter.Dim(m.status))
	}
	b.WriteString("\n")

	var hints []string
	for _, kb := range m.ShortHelp() {
		hints = append(hints, formatter.Dim(kb.Help().Key+": "+kb.Help().Desc))
	}
	b.WriteString(strings.Join(hints, "  "))
	return b.String()
}

// runEditorProgram runs the editor full screen until the user quits. An
// unsaved last change is reported as an error.
func runEditorProgram(ctx context.Context, app *App) error {
	m := newEditorModel(ctx, app.Plans, app.CopyText)
	final, err := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx)).Run()
	if err != nil {
		return fmt.Errorf("running editor: %w", err)
	}
	if em, ok := final.(*editorModel); ok && em.saveErr != nil {
		return fmt.Errorf("last change was not saved: %w", em.saveErr)
	}
	return nil
}

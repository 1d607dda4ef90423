package domain

// DefaultTaskText is the placeholder given to tasks created from the editor.
const DefaultTaskText = "New task"

// Task is one entry of a weekly outline. A plan is an ordered forest of
// tasks; children are owned exclusively by their parent and their order is
// the display order.
type Task struct {
	Text      string
	Done      bool
	Important bool
	Urgent    bool
	Optional  bool
	Obsolete  bool
	Open      bool // expand/collapse state, persisted with the task
	Children  []*Task
}

func NewTask(text string) *Task {
	return &Task{Text: CleanText(text)}
}

// SetObsolete sets the obsolete flag. An obsolete task is never done.
func (t *Task) SetObsolete(obsolete bool) {
	t.Obsolete = obsolete
	if obsolete {
		t.Done = false
	}
}

// AddChild appends c as the last child of t.
func (t *Task) AddChild(c *Task) {
	t.Children = append(t.Children, c)
}

// IndexOf returns the position of c among t's direct children, or -1.
func (t *Task) IndexOf(c *Task) int {
	for i, child := range t.Children {
		if child == c {
			return i
		}
	}
	return -1
}

// Contains reports whether c is t itself or one of its descendants.
func (t *Task) Contains(c *Task) bool {
	if t == c {
		return true
	}
	for _, child := range t.Children {
		if child.Contains(c) {
			return true
		}
	}
	return false
}

// Clone returns a deep copy of the task and its subtree.
func (t *Task) Clone() *Task {
	cp := *t
	cp.Children = CloneForest(t.Children)
	return &cp
}

// CloneForest deep-copies every tree of the forest.
func CloneForest(forest []*Task) []*Task {
	if forest == nil {
		return nil
	}
	out := make([]*Task, len(forest))
	for i, t := range forest {
		out[i] = t.Clone()
	}
	return out
}

// Count returns the number of tasks in the forest, descendants included.
func Count(forest []*Task) int {
	n := 0
	for _, t := range forest {
		n += 1 + Count(t.Children)
	}
	return n
}

// Walk visits every task of the forest depth-first in document order.
// Returning false from fn skips the task's children.
func Walk(forest []*Task, fn func(t *Task, depth int) bool) {
	walk(forest, 0, fn)
}

func walk(forest []*Task, depth int, fn func(t *Task, depth int) bool) {
	for _, t := range forest {
		if fn(t, depth) {
			walk(t.Children, depth+1, fn)
		}
	}
}

// Equal reports whether two tasks have the same text, flags and subtree.
func (t *Task) Equal(o *Task) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Text != o.Text || t.Done != o.Done || t.Important != o.Important ||
		t.Urgent != o.Urgent || t.Optional != o.Optional ||
		t.Obsolete != o.Obsolete || t.Open != o.Open {
		return false
	}
	return ForestEqual(t.Children, o.Children)
}

// ForestEqual compares two forests structurally and attribute-wise.
func ForestEqual(a, b []*Task) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !a[i].Equal(b[i]) {
			return false
		}
	}
	return true
}

func (t *Task) String() string {
	return t.Text
}

package tree

import (
	"github.com/alexanderramin/weekplan/internal/domain"
)

// Create appends a new placeholder task as the last child of parent and
// expands parent. A nil or unknown parent creates a new top-level task.
func (t *Tree) Create(parent *domain.Task) Result {
	task := domain.NewTask(t.Placeholder)
	if parent == nil || !t.Has(parent) {
		parent = t.root
	} else {
		parent.Open = true
	}
	parent.AddChild(task)
	return Result{Node: task, Selected: task, Changed: true}
}

// Delete removes node together with its subtree. The next sibling is
// selected afterwards, else the previous sibling, else the parent.
func (t *Tree) Delete(node *domain.Task) Result {
	parent, idx := t.locate(node)
	if parent == nil {
		return Result{Node: node}
	}
	parent.Children = removeAt(parent.Children, idx)

	var selected *domain.Task
	switch {
	case idx < len(parent.Children):
		selected = parent.Children[idx]
	case idx > 0:
		selected = parent.Children[idx-1]
	case parent != t.root:
		selected = parent
	}
	return Result{Node: node, Selected: selected, Changed: true}
}

// Indent makes node the last child of its previous sibling. The node keeps
// its own subtree.
func (t *Tree) Indent(node *domain.Task) Result {
	parent, idx := t.locate(node)
	if parent == nil || idx <= 0 {
		return noop(node)
	}
	prev := parent.Children[idx-1]
	parent.Children = removeAt(parent.Children, idx)
	prev.AddChild(node)
	prev.Open = true
	return Result{Node: node, Selected: node, Changed: true}
}

// Outdent moves node right after its parent. Siblings that followed node
// become node's trailing children so the outline reads in the same order.
func (t *Tree) Outdent(node *domain.Task) Result {
	parent, idx := t.locate(node)
	if parent == nil || parent == t.root {
		return noop(node)
	}
	grand, pidx := t.locate(parent)
	if grand == nil {
		return noop(node)
	}

	trailing := append([]*domain.Task(nil), parent.Children[idx+1:]...)
	parent.Children = parent.Children[:idx:idx]

	grand.Children = insertAt(grand.Children, pidx+1, node)
	node.Children = append(node.Children, trailing...)
	node.Open = true
	return Result{Node: node, Selected: node, Changed: true}
}

// MoveUp swaps node with its previous sibling.
func (t *Tree) MoveUp(node *domain.Task) Result {
	parent, idx := t.locate(node)
	if parent == nil || idx <= 0 {
		return noop(node)
	}
	s := parent.Children
	s[idx-1], s[idx] = s[idx], s[idx-1]
	return Result{Node: node, Selected: node, Changed: true}
}

// MoveDown swaps node with its next sibling.
func (t *Tree) MoveDown(node *domain.Task) Result {
	parent, idx := t.locate(node)
	if parent == nil || idx >= len(parent.Children)-1 {
		return noop(node)
	}
	s := parent.Children
	s[idx], s[idx+1] = s[idx+1], s[idx]
	return Result{Node: node, Selected: node, Changed: true}
}

// Package tree implements the structural editing operations on a plan's
// task forest: create, delete, indent, outdent, reorder, flag and rename.
//
// Every operation takes the currently selected task and returns a Result
// naming the task that should be selected afterwards. Operations whose
// preconditions do not hold are no-ops (Result.Changed is false); they never
// fail for states reachable from an editor.
package tree

import (
	"github.com/alexanderramin/weekplan/internal/domain"
)

// Tree holds a forest under an invisible container root. The container is
// never persisted and is never returned to callers.
type Tree struct {
	root *domain.Task

	// Placeholder is the text given to tasks created by Create.
	Placeholder string
}

// Result reports the outcome of a tree operation.
type Result struct {
	Node     *domain.Task // task the operation acted on
	Selected *domain.Task // task to select afterwards; nil selects nothing
	Changed  bool         // false when the operation was a no-op
}

// New wraps forest in a Tree. The forest slice is adopted, not copied.
func New(forest []*domain.Task) *Tree {
	return &Tree{
		root:        &domain.Task{Children: forest},
		Placeholder: domain.DefaultTaskText,
	}
}

// Forest returns the top-level tasks in order.
func (t *Tree) Forest() []*domain.Task {
	return t.root.Children
}

// Len returns the number of tasks in the tree.
func (t *Tree) Len() int {
	return domain.Count(t.root.Children)
}

// Has reports whether node is part of the tree.
func (t *Tree) Has(node *domain.Task) bool {
	p, _ := t.locate(node)
	return p != nil
}

// Parent returns node's parent, or nil for top-level or unknown tasks.
func (t *Tree) Parent(node *domain.Task) *domain.Task {
	p, _ := t.locate(node)
	if p == t.root {
		return nil
	}
	return p
}

// locate finds the parent of node and node's index among its siblings.
// Top-level tasks report the container root. Unknown tasks report nil.
func (t *Tree) locate(node *domain.Task) (*domain.Task, int) {
	if node == nil || node == t.root {
		return nil, -1
	}
	return find(t.root, node)
}

func find(parent, node *domain.Task) (*domain.Task, int) {
	for i, c := range parent.Children {
		if c == node {
			return parent, i
		}
		if p, idx := find(c, node); p != nil {
			return p, idx
		}
	}
	return nil, -1
}

// ancestry returns the chain from the top-level task down to node, or nil
// when node is not in the tree.
func (t *Tree) ancestry(node *domain.Task) []*domain.Task {
	if node == nil {
		return nil
	}
	var chain []*domain.Task
	var visit func(parent *domain.Task) bool
	visit = func(parent *domain.Task) bool {
		for _, c := range parent.Children {
			chain = append(chain, c)
			if c == node || visit(c) {
				return true
			}
			chain = chain[:len(chain)-1]
		}
		return false
	}
	if !visit(t.root) {
		return nil
	}
	return chain
}

func noop(node *domain.Task) Result {
	return Result{Node: node, Selected: node}
}

func removeAt(s []*domain.Task, i int) []*domain.Task {
	return append(s[:i], s[i+1:]...)
}

func insertAt(s []*domain.Task, i int, v *domain.Task) []*domain.Task {
	s = append(s, nil)
	copy(s[i+1:], s[i:])
	s[i] = v
	return s
}

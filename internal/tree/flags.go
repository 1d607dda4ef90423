package tree

import (
	"github.com/alexanderramin/weekplan/internal/domain"
)

// Flag names a boolean classification of a task.
type Flag string

const (
	FlagImportant Flag = "important"
	FlagUrgent    Flag = "urgent"
	FlagOptional  Flag = "optional"
	FlagObsolete  Flag = "obsolete"
	FlagDone      Flag = "done"
)

// Flags lists every toggleable flag in display order.
var Flags = []Flag{FlagImportant, FlagUrgent, FlagOptional, FlagObsolete, FlagDone}

// ParseFlag returns the Flag named s.
func ParseFlag(s string) (Flag, bool) {
	for _, f := range Flags {
		if string(f) == s {
			return f, true
		}
	}
	return "", false
}

// Toggle flips flag on node.
func (t *Tree) Toggle(node *domain.Task, flag Flag) Result {
	switch flag {
	case FlagImportant:
		return t.ToggleImportant(node)
	case FlagUrgent:
		return t.ToggleUrgent(node)
	case FlagOptional:
		return t.ToggleOptional(node)
	case FlagObsolete:
		return t.ToggleObsolete(node)
	case FlagDone:
		return t.ToggleDone(node)
	}
	return noop(node)
}

func (t *Tree) ToggleImportant(node *domain.Task) Result {
	return t.mutate(node, func(n *domain.Task) { n.Important = !n.Important })
}

func (t *Tree) ToggleUrgent(node *domain.Task) Result {
	return t.mutate(node, func(n *domain.Task) { n.Urgent = !n.Urgent })
}

func (t *Tree) ToggleOptional(node *domain.Task) Result {
	return t.mutate(node, func(n *domain.Task) { n.Optional = !n.Optional })
}

func (t *Tree) ToggleDone(node *domain.Task) Result {
	return t.mutate(node, func(n *domain.Task) { n.Done = !n.Done })
}

// ToggleObsolete flips the obsolete flag; an obsolete task is never done.
func (t *Tree) ToggleObsolete(node *domain.Task) Result {
	return t.mutate(node, func(n *domain.Task) { n.SetObsolete(!n.Obsolete) })
}

// Rename sets the text of node. Characters that cannot be stored are
// removed first.
func (t *Tree) Rename(node *domain.Task, text string) Result {
	text = domain.CleanText(text)
	return t.mutate(node, func(n *domain.Task) { n.Text = text })
}

// SetOpen records the expand/collapse state of node. Setting the current
// state is a no-op.
func (t *Tree) SetOpen(node *domain.Task, open bool) Result {
	if node != nil && node.Open == open {
		return noop(node)
	}
	return t.mutate(node, func(n *domain.Task) { n.Open = open })
}

func (t *Tree) mutate(node *domain.Task, fn func(*domain.Task)) Result {
	if !t.Has(node) {
		return noop(node)
	}
	fn(node)
	return Result{Node: node, Selected: node, Changed: true}
}

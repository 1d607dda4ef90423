package testutil

import (
	"strings"

	"github.com/alexanderramin/weekplan/internal/domain"
)

// Task options
type TaskOption func(*domain.Task)

func WithDone() TaskOption {
	return func(t *domain.Task) {
		t.Done = true
	}
}

func WithImportant() TaskOption {
	return func(t *domain.Task) {
		t.Important = true
	}
}

func WithUrgent() TaskOption {
	return func(t *domain.Task) {
		t.Urgent = true
	}
}

func WithOptional() TaskOption {
	return func(t *domain.Task) {
		t.Optional = true
	}
}

func WithObsolete() TaskOption {
	return func(t *domain.Task) {
		t.SetObsolete(true)
	}
}

func WithOpen() TaskOption {
	return func(t *domain.Task) {
		t.Open = true
	}
}

func WithChildren(children ...*domain.Task) TaskOption {
	return func(t *domain.Task) {
		t.Children = append(t.Children, children...)
	}
}

func NewTestTask(text string, opts ...TaskOption) *domain.Task {
	t := domain.NewTask(text)
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// NewTestForest returns one childless top-level task per text.
func NewTestForest(texts ...string) []*domain.Task {
	forest := make([]*domain.Task, 0, len(texts))
	for _, text := range texts {
		forest = append(forest, domain.NewTask(text))
	}
	return forest
}

// NewWeekForest returns a small, fully flagged plan used by round-trip and
// rendering tests:
//
//	Sprint 1 (open)
//	  Design API (important)
//	    Draft endpoints (done)
//	  Write tests (urgent)
//	Errands
//	  Dentist (optional)
//	  Old idea (obsolete)
func NewWeekForest() []*domain.Task {
	return []*domain.Task{
		NewTestTask("Sprint 1", WithOpen(), WithChildren(
			NewTestTask("Design API", WithImportant(), WithChildren(
				NewTestTask("Draft endpoints", WithDone()),
			)),
			NewTestTask("Write tests", WithUrgent()),
		)),
		NewTestTask("Errands", WithChildren(
			NewTestTask("Dentist", WithOptional()),
			NewTestTask("Old idea", WithObsolete()),
		)),
	}
}

// Outline renders the forest shape compactly, e.g. "A[A1,A2],B", so tests
// can assert structure in one line.
func Outline(forest []*domain.Task) string {
	parts := make([]string, len(forest))
	for i, t := range forest {
		if len(t.Children) == 0 {
			parts[i] = t.Text
			continue
		}
		parts[i] = t.Text + "[" + Outline(t.Children) + "]"
	}
	return strings.Join(parts, ",")
}

package service

import (
	"context"
	"io"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/tree"
)

// PlanService is the editing session for one open plan. Every mutating call
// applies a tree operation in memory and then persists the whole forest. A
// failed save is returned but the edit stays applied.
type PlanService interface {
	List(ctx context.Context) ([]string, error)
	Latest(ctx context.Context) (string, error)
	Exists(ctx context.Context, planID string) (bool, error)
	New(ctx context.Context, planID string) error
	Load(ctx context.Context, planID string) error
	Save(ctx context.Context) error

	PlanID() string
	Forest() []*domain.Task
	Tree() *tree.Tree

	Create(ctx context.Context, parent *domain.Task) (tree.Result, error)
	Delete(ctx context.Context, node *domain.Task) (tree.Result, error)
	Indent(ctx context.Context, node *domain.Task) (tree.Result, error)
	Outdent(ctx context.Context, node *domain.Task) (tree.Result, error)
	MoveUp(ctx context.Context, node *domain.Task) (tree.Result, error)
	MoveDown(ctx context.Context, node *domain.Task) (tree.Result, error)
	Toggle(ctx context.Context, node *domain.Task, flag tree.Flag) (tree.Result, error)
	ToggleImportant(ctx context.Context, node *domain.Task) (tree.Result, error)
	ToggleUrgent(ctx context.Context, node *domain.Task) (tree.Result, error)
	ToggleOptional(ctx context.Context, node *domain.Task) (tree.Result, error)
	ToggleObsolete(ctx context.Context, node *domain.Task) (tree.Result, error)
	ToggleDone(ctx context.Context, node *domain.Task) (tree.Result, error)
	Rename(ctx context.Context, node *domain.Task, text string) (tree.Result, error)
	SetOpen(ctx context.Context, node *domain.Task, open bool) (tree.Result, error)
}

// ImportResult holds the outcome of a markdown import.
type ImportResult struct {
	PlanID        string
	TopLevelCount int
	TaskCount     int
	Replaced      bool
}

type ImportService interface {
	ImportMarkdown(ctx context.Context, src io.Reader, planID string) (*ImportResult, error)
	ImportMarkdownFile(ctx context.Context, path string, planID string) (*ImportResult, error)
}

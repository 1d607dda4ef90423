package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/repository"
	"github.com/alexanderramin/weekplan/internal/tree"
	"github.com/google/uuid"
)

type planService struct {
	repo        repository.PlanRepo
	observer    UseCaseObserver
	sessionID   string
	placeholder string

	planID string
	tree   *tree.Tree
}

// NewPlanService starts an editing session with no plan open. An empty
// placeholder keeps the default text for created tasks.
func NewPlanService(
	repo repository.PlanRepo,
	placeholder string,
	observers ...UseCaseObserver,
) PlanService {
	s := &planService{
		repo:        repo,
		observer:    useCaseObserverOrNoop(observers),
		sessionID:   uuid.NewString(),
		placeholder: placeholder,
	}
	s.tree = s.newTree(nil)
	return s
}

func (s *planService) newTree(forest []*domain.Task) *tree.Tree {
	t := tree.New(forest)
	if s.placeholder != "" {
		t.Placeholder = s.placeholder
	}
	return t
}

func (s *planService) fields() map[string]any {
	f := map[string]any{"session_id": s.sessionID}
	if s.planID != "" {
		f["plan"] = s.planID
	}
	return f
}

func (s *planService) List(ctx context.Context) (ids []string, err error) {
	startedAt := time.Now().UTC()
	fields := s.fields()
	defer func() {
		fields["count"] = len(ids)
		observe(ctx, s.observer, "list-plans", startedAt, fields, err)
	}()

	ids, err = s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing plans: %w", err)
	}
	return ids, nil
}

// Latest returns the last plan in identifier order. Date-named plans make
// this the most recent week.
func (s *planService) Latest(ctx context.Context) (string, error) {
	ids, err := s.List(ctx)
	if err != nil {
		return "", err
	}
	if len(ids) == 0 {
		return "", fmt.Errorf("no plans yet: %w", domain.ErrNotFound)
	}
	return ids[len(ids)-1], nil
}

func (s *planService) Exists(ctx context.Context, planID string) (bool, error) {
	ok, err := s.repo.Exists(ctx, planID)
	if err != nil {
		return false, fmt.Errorf("checking plan %q: %w", planID, err)
	}
	return ok, nil
}

func (s *planService) New(ctx context.Context, planID string) (err error) {
	startedAt := time.Now().UTC()
	fields := s.fields()
	fields["plan"] = planID
	defer func() {
		observe(ctx, s.observer, "new-plan", startedAt, fields, err)
	}()

	var id string
	id, err = repository.NormalizePlanID(planID)
	if err != nil {
		return err
	}
	fields["plan"] = id

	var exists bool
	exists, err = s.repo.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("checking plan %q: %w", id, err)
	}
	if exists {
		return fmt.Errorf("plan %q: %w", id, domain.ErrPlanExists)
	}
	if err = s.repo.Save(ctx, id, nil); err != nil {
		return fmt.Errorf("creating plan %q: %w", id, err)
	}

	s.planID = id
	s.tree = s.newTree(nil)
	return nil
}

// Load replaces the session's forest with the stored plan. On failure the
// previous plan stays open.
func (s *planService) Load(ctx context.Context, planID string) (err error) {
	startedAt := time.Now().UTC()
	fields := s.fields()
	fields["plan"] = planID
	defer func() {
		observe(ctx, s.observer, "load-plan", startedAt, fields, err)
	}()

	var id string
	id, err = repository.NormalizePlanID(planID)
	if err != nil {
		return err
	}
	fields["plan"] = id

	var forest []*domain.Task
	forest, err = s.repo.Load(ctx, id)
	if err != nil {
		return fmt.Errorf("loading plan: %w", err)
	}
	fields["task_count"] = domain.Count(forest)

	s.planID = id
	s.tree = s.newTree(forest)
	return nil
}

func (s *planService) Save(ctx context.Context) (err error) {
	startedAt := time.Now().UTC()
	fields := s.fields()
	defer func() {
		observe(ctx, s.observer, "save-plan", startedAt, fields, err)
	}()

	return s.persist(ctx)
}

func (s *planService) persist(ctx context.Context) error {
	if s.planID == "" {
		return domain.ErrNoPlan
	}
	if err := s.repo.Save(ctx, s.planID, s.tree.Forest()); err != nil {
		return fmt.Errorf("saving plan %q: %w", s.planID, err)
	}
	return nil
}

func (s *planService) PlanID() string { return s.planID }

func (s *planService) Forest() []*domain.Task { return s.tree.Forest() }

// Tree exposes the open forest for reading, addressing and rendering.
// Mutations made on it directly are not persisted.
func (s *planService) Tree() *tree.Tree { return s.tree }

// apply runs op and persists the forest when op changed it.
func (s *planService) apply(ctx context.Context, name string, op func(*tree.Tree) tree.Result) (res tree.Result, err error) {
	startedAt := time.Now().UTC()
	fields := s.fields()
	defer func() {
		fields["changed"] = res.Changed
		if p := s.tree.PathOf(res.Node); p != nil {
			fields["path"] = p.String()
		}
		observe(ctx, s.observer, name, startedAt, fields, err)
	}()

	res = op(s.tree)
	if !res.Changed {
		return res, nil
	}
	err = s.persist(ctx)
	return res, err
}

func (s *planService) Create(ctx context.Context, parent *domain.Task) (tree.Result, error) {
	return s.apply(ctx, "create-task", func(t *tree.Tree) tree.Result { return t.Create(parent) })
}

func (s *planService) Delete(ctx context.Context, node *domain.Task) (tree.Result, error) {
	return s.apply(ctx, "delete-task", func(t *tree.Tree) tree.Result { return t.Delete(node) })
}

func (s *planService) Indent(ctx context.Context, node *domain.Task) (tree.Result, error) {
	return s.apply(ctx, "indent-task", func(t *tree.Tree) tree.Result { return t.Indent(node) })
}

func (s *planService) Outdent(ctx context.Context, node *domain.Task) (tree.Result, error) {
	return s.apply(ctx, "outdent-task", func(t *tree.Tree) tree.Result { return t.Outdent(node) })
}

func (s *planService) MoveUp(ctx context.Context, node *domain.Task) (tree.Result, error) {
	return s.apply(ctx, "move-task-up", func(t *tree.Tree) tree.Result { return t.MoveUp(node) })
}

func (s *planService) MoveDown(ctx context.Context, node *domain.Task) (tree.Result, error) {
	return s.apply(ctx, "move-task-down", func(t *tree.Tree) tree.Result { return t.MoveDown(node) })
}

func (s *planService) Toggle(ctx context.Context, node *domain.Task, flag tree.Flag) (tree.Result, error) {
	return s.apply(ctx, "toggle-"+string(flag), func(t *tree.Tree) tree.Result { return t.Toggle(node, flag) })
}

func (s *planService) ToggleImportant(ctx context.Context, node *domain.Task) (tree.Result, error) {
	return s.Toggle(ctx, node, tree.FlagImportant)
}

func (s *planService) ToggleUrgent(ctx context.Context, node *domain.Task) (tree.Result, error) {
	return s.Toggle(ctx, node, tree.FlagUrgent)
}

func (s *planService) ToggleOptional(ctx context.Context, node *domain.Task) (tree.Result, error) {
	return s.Toggle(ctx, node, tree.FlagOptional)
}

func (s *planService) ToggleObsolete(ctx context.Context, node *domain.Task) (tree.Result, error) {
	return s.Toggle(ctx, node, tree.FlagObsolete)
}

func (s *planService) ToggleDone(ctx context.Context, node *domain.Task) (tree.Result, error) {
	return s.Toggle(ctx, node, tree.FlagDone)
}

func (s *planService) Rename(ctx context.Context, node *domain.Task, text string) (tree.Result, error) {
	return s.apply(ctx, "rename-task", func(t *tree.Tree) tree.Result { return t.Rename(node, text) })
}

func (s *planService) SetOpen(ctx context.Context, node *domain.Task, open bool) (tree.Result, error) {
	return s.apply(ctx, "set-task-open", func(t *tree.Tree) tree.Result { return t.SetOpen(node, open) })
}

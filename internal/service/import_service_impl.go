package service

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/alexanderramin/weekplan/internal/importer"
	"github.com/alexanderramin/weekplan/internal/repository"
)

type importService struct {
	plans    repository.PlanRepo
	observer UseCaseObserver
}

func NewImportService(plans repository.PlanRepo, observers ...UseCaseObserver) ImportService {
	return &importService{
		plans:    plans,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *importService) ImportMarkdownFile(ctx context.Context, path string, planID string) (*ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening import file: %w", &domain.IOError{Op: "read", Path: path, Err: err})
	}
	defer f.Close()
	return s.ImportMarkdown(ctx, f, planID)
}

// ImportMarkdown parses src and saves the result as planID, replacing any
// existing plan of that name.
func (s *importService) ImportMarkdown(ctx context.Context, src io.Reader, planID string) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"plan": planID}
	defer func() {
		if result != nil {
			fields["top_level_count"] = result.TopLevelCount
			fields["task_count"] = result.TaskCount
			fields["replaced"] = result.Replaced
		}
		observe(ctx, s.observer, "import-markdown", startedAt, fields, err)
	}()

	var id string
	id, err = repository.NormalizePlanID(planID)
	if err != nil {
		return nil, err
	}
	fields["plan"] = id

	var forest []*domain.Task
	forest, err = importer.ParseMarkdown(src)
	if err != nil {
		return nil, fmt.Errorf("parsing markdown: %w", err)
	}

	var replaced bool
	replaced, err = s.plans.Exists(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("checking plan %q: %w", id, err)
	}
	if err = s.plans.Save(ctx, id, forest); err != nil {
		return nil, fmt.Errorf("saving imported plan %q: %w", id, err)
	}

	return &ImportResult{
		PlanID:        id,
		TopLevelCount: len(forest),
		TaskCount:     domain.Count(forest),
		Replaced:      replaced,
	}, nil
}

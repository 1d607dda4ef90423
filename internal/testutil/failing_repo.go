package testutil

import (
	"context"
	"sync/atomic"

	"github.com/alexanderramin/weekplan/internal/domain"
)

// planRepo mirrors repository.PlanRepo; importing repository here would
// create a cycle with the repository package's own tests.
type planRepo interface {
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, id string) ([]*domain.Task, error)
	Save(ctx context.Context, id string, forest []*domain.Task) error
	Exists(ctx context.Context, id string) (bool, error)
}

// FailingSaveRepo wraps a PlanRepo and fails every Save while Fail is set.
// Reads pass through, so tests can check that a failed save leaves the
// stored plan untouched.
type FailingSaveRepo struct {
	planRepo
	Fail  atomic.Bool
	Err   error
	Saves atomic.Int32
}

func NewFailingSaveRepo(inner planRepo, err error) *FailingSaveRepo {
	r := &FailingSaveRepo{planRepo: inner, Err: err}
	r.Fail.Store(true)
	return r
}

func (r *FailingSaveRepo) Save(ctx context.Context, id string, forest []*domain.Task) error {
	r.Saves.Add(1)
	if r.Fail.Load() {
		return &domain.IOError{Op: "write", Path: id, Err: r.Err}
	}
	return r.planRepo.Save(ctx, id, forest)
}

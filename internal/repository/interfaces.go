package repository

import (
	"context"

	"github.com/alexanderramin/weekplan/internal/domain"
)

// PlanRepo persists weekly plans. Implementations return errors matching
// domain.ErrNotFound, domain.ErrParse, domain.ErrIO and
// domain.ErrInvalidPlanID.
type PlanRepo interface {
	// List returns the identifiers of all stored plans, sorted. A missing
	// storage location yields an empty list.
	List(ctx context.Context) ([]string, error)
	Load(ctx context.Context, id string) ([]*domain.Task, error)
	// Save overwrites the plan with forest. Output is deterministic.
	Save(ctx context.Context, id string, forest []*domain.Task) error
	Exists(ctx context.Context, id string) (bool, error)
}

package repository

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/weekplan/internal/db"
	"github.com/alexanderramin/weekplan/internal/domain"
)

// SQLitePlanRepo implements PlanRepo by storing each plan's XML document in
// the plans table.
type SQLitePlanRepo struct {
	db db.DBTX
}

// NewSQLitePlanRepo creates a new SQLitePlanRepo.
func NewSQLitePlanRepo(db db.DBTX) *SQLitePlanRepo {
	return &SQLitePlanRepo{db: db}
}

func (r *SQLitePlanRepo) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM plans ORDER BY id`)
	if err != nil {
		return nil, &domain.IOError{Op: "list", Path: "plans", Err: err}
	}
	defer rows.Close()

	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, &domain.IOError{Op: "list", Path: "plans", Err: err}
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, &domain.IOError{Op: "list", Path: "plans", Err: err}
	}
	return ids, nil
}

func (r *SQLitePlanRepo) Load(ctx context.Context, id string) ([]*domain.Task, error) {
	doc, err := r.Document(ctx, id)
	if err != nil {
		return nil, err
	}
	forest, err := DecodePlan(bytes.NewReader(doc))
	if err != nil {
		return nil, fmt.Errorf("plan %q: %w", id, err)
	}
	return forest, nil
}

func (r *SQLitePlanRepo) Save(ctx context.Context, id string, forest []*domain.Task) error {
	norm, err := NormalizePlanID(id)
	if err != nil {
		return err
	}
	doc, err := EncodePlan(forest)
	if err != nil {
		return err
	}

	now := nowUTC()
	_, err = r.db.ExecContext(ctx, `INSERT INTO plans (id, document, created_at, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET document = excluded.document, updated_at = excluded.updated_at`,
		norm, doc, now, now)
	if err != nil {
		return &domain.IOError{Op: "write", Path: "plans/" + norm, Err: err}
	}
	return nil
}

func (r *SQLitePlanRepo) Exists(ctx context.Context, id string) (bool, error) {
	norm, err := NormalizePlanID(id)
	if err != nil {
		return false, err
	}
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM plans WHERE id = ?`, norm).Scan(&n); err != nil {
		return false, &domain.IOError{Op: "stat", Path: "plans/" + norm, Err: err}
	}
	return n > 0, nil
}

// Document returns the raw stored XML for id.
func (r *SQLitePlanRepo) Document(ctx context.Context, id string) ([]byte, error) {
	norm, err := NormalizePlanID(id)
	if err != nil {
		return nil, err
	}
	var doc []byte
	err = r.db.QueryRowContext(ctx, `SELECT document FROM plans WHERE id = ?`, norm).Scan(&doc)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("plan %q: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, &domain.IOError{Op: "read", Path: "plans/" + norm, Err: err}
	}
	return doc, nil
}

package repository

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexanderramin/weekplan/internal/domain"
	"github.com/natefinch/atomic"
)

const planFilePerm = 0644

// FilePlanRepo implements PlanRepo with one XML document per plan inside a
// single directory.
type FilePlanRepo struct {
	dir string
}

// NewFilePlanRepo creates a FilePlanRepo rooted at dir. The directory is
// created on the first save.
func NewFilePlanRepo(dir string) *FilePlanRepo {
	return &FilePlanRepo{dir: dir}
}

// Dir returns the plan directory.
func (r *FilePlanRepo) Dir() string { return r.dir }

func (r *FilePlanRepo) List(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return []string{}, nil
		}
		return nil, &domain.IOError{Op: "list", Path: r.dir, Err: err}
	}

	ids := make([]string, 0, len(entries))
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.HasSuffix(name, PlanSuffix) || strings.HasPrefix(name, ".") {
			continue
		}
		ids = append(ids, strings.TrimSuffix(name, PlanSuffix))
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *FilePlanRepo) Load(ctx context.Context, id string) ([]*domain.Task, error) {
	path, err := r.path(id)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("plan %q: %w", id, domain.ErrNotFound)
		}
		return nil, &domain.IOError{Op: "read", Path: path, Err: err}
	}
	defer f.Close()

	forest, err := DecodePlan(f)
	if err != nil {
		return nil, fmt.Errorf("plan %q: %w", id, err)
	}
	return forest, nil
}

// Save replaces the plan file atomically, so a failed write never truncates
// an existing plan.
func (r *FilePlanRepo) Save(ctx context.Context, id string, forest []*domain.Task) error {
	path, err := r.path(id)
	if err != nil {
		return err
	}
	data, err := EncodePlan(forest)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(r.dir, 0755); err != nil {
		return &domain.IOError{Op: "mkdir", Path: r.dir, Err: err}
	}
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return &domain.IOError{Op: "write", Path: path, Err: err}
	}
	// New files come out of the temp file with mode 0600.
	if err := os.Chmod(path, planFilePerm); err != nil {
		return &domain.IOError{Op: "chmod", Path: path, Err: err}
	}
	return nil
}

func (r *FilePlanRepo) Exists(ctx context.Context, id string) (bool, error) {
	path, err := r.path(id)
	if err != nil {
		return false, err
	}
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, &domain.IOError{Op: "stat", Path: path, Err: err}
	}
	return !info.IsDir(), nil
}

func (r *FilePlanRepo) path(id string) (string, error) {
	norm, err := NormalizePlanID(id)
	if err != nil {
		return "", err
	}
	return filepath.Join(r.dir, norm+PlanSuffix), nil
}

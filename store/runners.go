package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/jwkim-dev/marathonapi/models"
)

// RunnerStore extends the generic store with runner-specific lookups.
type RunnerStore struct {
	Store[models.Runner]
}

// NewRunnerStore creates a RunnerStore bound to db.
func NewRunnerStore(db bun.IDB) *RunnerStore {
	return &RunnerStore{Store: Store[models.Runner]{db: db}}
}

// GetByName returns the first runner with an exact name match, or (nil, nil).
func (s *RunnerStore) GetByName(ctx context.Context, name string) (*models.Runner, error) {
	r := new(models.Runner)
	err := s.db.NewSelect().Model(r).
		Where("name = ?", name).
		Order("id ASC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

// ListByNationality returns runners with an exact nationality match.
func (s *RunnerStore) ListByNationality(ctx context.Context, nationality string, skip, limit int) ([]models.Runner, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rs []models.Runner
	err := s.db.NewSelect().Model(&rs).
		Where("nationality = ?", nationality).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// GetWithResults returns a runner with its results loaded, or (nil, nil).
// Embedded results are flat: they do not pull in their race in turn.
func (s *RunnerStore) GetWithResults(ctx context.Context, id int) (*models.Runner, error) {
	r := new(models.Runner)
	err := s.db.NewSelect().Model(r).
		Relation("Results", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("id ASC")
		}).
		Where("rn.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

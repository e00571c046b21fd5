package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/jwkim-dev/marathonapi/models"
)

// ResultStore extends the generic store with result-specific lookups.
type ResultStore struct {
	Store[models.Result]
}

// NewResultStore creates a ResultStore bound to db.
func NewResultStore(db bun.IDB) *ResultStore {
	return &ResultStore{Store: Store[models.Result]{db: db}}
}

// GetByRunnerAndRace returns the first result for the (runner, race) pair,
// or (nil, nil). Duplicate pairs are allowed at the schema level, so "first"
// means lowest id.
func (s *ResultStore) GetByRunnerAndRace(ctx context.Context, runnerID, raceID int) (*models.Result, error) {
	r := new(models.Result)
	err := s.db.NewSelect().Model(r).
		Where("runner_id = ?", runnerID).
		Where("race_id = ?", raceID).
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

// ListByRunner returns all results for one runner.
func (s *ResultStore) ListByRunner(ctx context.Context, runnerID, skip, limit int) ([]models.Result, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rs []models.Result
	err := s.db.NewSelect().Model(&rs).
		Where("runner_id = ?", runnerID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// ListByRace returns all results for one race.
func (s *ResultStore) ListByRace(ctx context.Context, raceID, skip, limit int) ([]models.Result, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rs []models.Result
	err := s.db.NewSelect().Model(&rs).
		Where("race_id = ?", raceID).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// TopByRace returns up to limit results for a race ordered fastest first.
// No offset: this is a leaderboard, not a pagination window.
func (s *ResultStore) TopByRace(ctx context.Context, raceID, limit int) ([]models.Result, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rs []models.Result
	err := s.db.NewSelect().Model(&rs).
		Where("race_id = ?", raceID).
		Order("finish_time ASC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"

	"github.com/jwkim-dev/marathonapi/models"
)

// RaceStore extends the generic store with race-specific lookups.
type RaceStore struct {
	Store[models.Race]
}

// NewRaceStore creates a RaceStore bound to db.
func NewRaceStore(db bun.IDB) *RaceStore {
	return &RaceStore{Store: Store[models.Race]{db: db}}
}

// GetByName returns the first race with an exact name match, or (nil, nil).
func (s *RaceStore) GetByName(ctx context.Context, name string) (*models.Race, error) {
	r := new(models.Race)
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

// ListByLocation returns races with an exact location match.
func (s *RaceStore) ListByLocation(ctx context.Context, location string, skip, limit int) ([]models.Race, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rs []models.Race
	err := s.db.NewSelect().Model(&rs).
		Where("location = ?", location).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// ListByDateRange returns races whose date falls within [start, end],
// bounds inclusive. Dates are ISO 8601 strings (YYYY-MM-DD).
func (s *RaceStore) ListByDateRange(ctx context.Context, start, end string, skip, limit int) ([]models.Race, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rs []models.Race
	err := s.db.NewSelect().Model(&rs).
		Where("date >= ?", start).
		Where("date <= ?", end).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// ListByType returns races with an exact type match (marathon, half, 10K...).
func (s *RaceStore) ListByType(ctx context.Context, raceType string, skip, limit int) ([]models.Race, error) {
	if limit <= 0 {
		return nil, nil
	}
	var rs []models.Race
	err := s.db.NewSelect().Model(&rs).
		Where("type = ?", raceType).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return rs, nil
}

// GetWithResults returns a race with its results loaded, or (nil, nil).
// Embedded results are flat: they do not pull in their runner in turn.
func (s *RaceStore) GetWithResults(ctx context.Context, id int) (*models.Race, error) {
	r := new(models.Race)
	err := s.db.NewSelect().Model(r).
		Relation("Results", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Order("id ASC")
		}).
		Where("rc.id = ?", id).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return r, nil
}

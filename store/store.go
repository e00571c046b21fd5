// Package store is the data-access layer: one generic CRUD store reused by
// every model, plus per-entity filtered queries.
package store

import (
	"context"
	"database/sql"
	"errors"

	"github.com/uptrace/bun"
)

// DefaultLimit bounds list queries when the caller does not pass one.
// MaxLimit caps caller-supplied page sizes.
const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// Store provides uniform CRUD over a single model type. All models share an
// integer "id" primary key, which is the only schema knowledge baked in here.
type Store[T any] struct {
	db bun.IDB
}

// NewStore creates a generic store bound to db.
func NewStore[T any](db bun.IDB) *Store[T] {
	return &Store[T]{db: db}
}

// Get returns the record with the given id, or (nil, nil) when absent.
// Absence is not an error at this layer; callers decide what it means.
func (s *Store[T]) Get(ctx context.Context, id int) (*T, error) {
	m := new(T)
	err := s.db.NewSelect().Model(m).Where("id = ?", id).Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return m, nil
}

// List returns records in primary-key order, bounded by skip and limit.
// A zero limit is an explicit empty page, not "no limit".
func (s *Store[T]) List(ctx context.Context, skip, limit int) ([]T, error) {
	if limit <= 0 {
		return nil, nil
	}
	var ms []T
	err := s.db.NewSelect().Model(&ms).
		Order("id ASC").
		Offset(skip).
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}
	return ms, nil
}

// Create inserts m and fills in its assigned id.
func (s *Store[T]) Create(ctx context.Context, m *T) error {
	_, err := s.db.NewInsert().Model(m).Exec(ctx)
	return err
}

// Update persists m as a full row. Merging a partial patch into the loaded
// record is the caller's job; by the time a model reaches here it is the
// complete desired state.
func (s *Store[T]) Update(ctx context.Context, m *T) error {
	_, err := s.db.NewUpdate().Model(m).WherePK().Exec(ctx)
	return err
}

// Delete removes the record with the given id.
// Returns sql.ErrNoRows when nothing was deleted.
func (s *Store[T]) Delete(ctx context.Context, id int) error {
	var m *T
	res, err := s.db.NewDelete().Model(m).Where("id = ?", id).Exec(ctx)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

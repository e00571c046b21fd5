package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunnerGetByName(t *testing.T) {
	tdb := newTestDB(t)
	runners := NewRunnerStore(tdb)
	ctx := context.Background()

	mustCreateRunner(t, runners, "Kim", strPtr("KR"))
	dup := mustCreateRunner(t, runners, "Lee", strPtr("KR"))
	mustCreateRunner(t, runners, "Lee", strPtr("US"))

	got, err := runners.GetByName(ctx, "Lee")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, dup.ID, got.ID, "first match wins")

	got, err = runners.GetByName(ctx, "Park")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRunnerListByNationality(t *testing.T) {
	tdb := newTestDB(t)
	runners := NewRunnerStore(tdb)
	ctx := context.Background()

	mustCreateRunner(t, runners, "Kim", strPtr("KR"))
	mustCreateRunner(t, runners, "Lee", strPtr("KR"))
	mustCreateRunner(t, runners, "Smith", strPtr("US"))
	mustCreateRunner(t, runners, "Cho", nil)

	kr, err := runners.ListByNationality(ctx, "KR", 0, DefaultLimit)
	require.NoError(t, err)
	require.Len(t, kr, 2)
	for _, r := range kr {
		assert.Equal(t, "KR", *r.Nationality)
	}

	fr, err := runners.ListByNationality(ctx, "FR", 0, DefaultLimit)
	require.NoError(t, err)
	assert.Empty(t, fr)
}

func TestRunnerGetWithResults(t *testing.T) {
	tdb := newTestDB(t)
	runners := NewRunnerStore(tdb)
	races := NewRaceStore(tdb)
	results := NewResultStore(tdb)
	ctx := context.Background()

	runner := mustCreateRunner(t, runners, "Kim", nil)
	r1 := mustCreateRace(t, races, "Seoul Marathon", "2024-03-17", "Seoul", "marathon")
	r2 := mustCreateRace(t, races, "Busan Half", "2024-05-12", "Busan", "half-marathon")
	first := mustCreateResult(t, results, runner.ID, r1.ID, "03:15:00")
	second := mustCreateResult(t, results, runner.ID, r2.ID, "01:35:20")

	// A second runner's results must not leak in.
	other := mustCreateRunner(t, runners, "Lee", nil)
	mustCreateResult(t, results, other.ID, r1.ID, "02:58:43")

	got, err := runners.GetWithResults(ctx, runner.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.Results, 2)
	assert.Equal(t, first.ID, got.Results[0].ID)
	assert.Equal(t, second.ID, got.Results[1].ID)

	missing, err := runners.GetWithResults(ctx, 999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const seoulMarathon = `{"name":"Seoul Marathon","date":"2024-03-17","location":"Seoul","distance":42.195,"type":"marathon"}`

func TestCreateRaceValidation(t *testing.T) {
	e := newTestServer(t)

	rec := do(e, http.MethodPost, "/api/v1/races", `{"name":"No Date","location":"Seoul","distance":10,"type":"10K"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "date")

	rec = do(e, http.MethodPost, "/api/v1/races", `{"name":"Bad Date","date":"March 17","location":"Seoul","distance":10,"type":"10K"}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestCreateRaceDefaults(t *testing.T) {
	e := newTestServer(t)

	created := seedRace(t, e, seoulMarathon)
	assert.Equal(t, true, created["is_official"], "is_official defaults to true")

	unofficial := seedRace(t, e, `{"name":"Backyard Ultra","date":"2024-06-01","location":"Yangpyeong","distance":6.7,"type":"ultra","is_official":false}`)
	assert.Equal(t, false, unofficial["is_official"])
}

// The end-to-end scenario: runner + race + result, then the race detail
// carries the result.
func TestRaceDetailEmbedsResults(t *testing.T) {
	e := newTestServer(t)

	seedRunner(t, e, `{"name":"Kim","nationality":"KR"}`)
	seedRace(t, e, seoulMarathon)
	seedResult(t, e, `{"runner_id":1,"race_id":1,"finish_time":"03:15:00"}`)

	rec := do(e, http.MethodGet, "/api/v1/races/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var detail map[string]interface{}
	decode(t, rec, &detail)
	assert.Equal(t, "Seoul Marathon", detail["name"])

	results, ok := detail["results"].([]interface{})
	require.True(t, ok)
	require.Len(t, results, 1)
	first := results[0].(map[string]interface{})
	assert.EqualValues(t, 1, first["id"])
	assert.EqualValues(t, 1, first["runner_id"])
	assert.EqualValues(t, 1, first["race_id"])
	assert.Equal(t, "03:15:00", first["finish_time"])
}

func TestRaceNotFound(t *testing.T) {
	e := newTestServer(t)

	for _, tc := range []struct{ method, path, body string }{
		{http.MethodGet, "/api/v1/races/7", ""},
		{http.MethodPut, "/api/v1/races/7", `{"location":"Busan"}`},
		{http.MethodDelete, "/api/v1/races/7", ""},
	} {
		rec := do(e, tc.method, tc.path, tc.body)
		assert.Equal(t, http.StatusNotFound, rec.Code, "%s %s", tc.method, tc.path)
		assert.Contains(t, rec.Body.String(), "Race not found")
	}
}

func TestUpdateRacePartialPatch(t *testing.T) {
	e := newTestServer(t)

	seedRace(t, e, seoulMarathon)

	rec := do(e, http.MethodPut, "/api/v1/races/1", `{"elevation_gain":120.5,"description":"flat, fast course"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var updated map[string]interface{}
	decode(t, rec, &updated)
	assert.Equal(t, "Seoul Marathon", updated["name"])
	assert.Equal(t, "2024-03-17", updated["date"])
	assert.EqualValues(t, 120.5, updated["elevation_gain"])
	assert.Equal(t, "flat, fast course", updated["description"])
}

func TestListRacesFilters(t *testing.T) {
	e := newTestServer(t)

	seedRace(t, e, seoulMarathon)
	seedRace(t, e, `{"name":"Busan Half","date":"2024-05-12","location":"Busan","distance":21.0975,"type":"half-marathon"}`)
	seedRace(t, e, `{"name":"Seoul Night Run","date":"2024-08-03","location":"Seoul","distance":10,"type":"10K"}`)

	rec := do(e, http.MethodGet, "/api/v1/races?location=Seoul", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var seoul []map[string]interface{}
	decode(t, rec, &seoul)
	assert.Len(t, seoul, 2)

	rec = do(e, http.MethodGet, "/api/v1/races?type=half-marathon", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var halves []map[string]interface{}
	decode(t, rec, &halves)
	require.Len(t, halves, 1)
	assert.Equal(t, "Busan Half", halves[0]["name"])

	rec = do(e, http.MethodGet, "/api/v1/races?start_date=2024-03-17&end_date=2024-05-12", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var spring []map[string]interface{}
	decode(t, rec, &spring)
	assert.Len(t, spring, 2)

	rec = do(e, http.MethodGet, "/api/v1/races?name=Busan+Half", "")
	require.Equal(t, http.StatusOK, rec.Code)
	var byName []map[string]interface{}
	decode(t, rec, &byName)
	require.Len(t, byName, 1)

	// A date range needs both ends.
	rec = do(e, http.MethodGet, "/api/v1/races?start_date=2024-03-17", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestDeleteRaceCascadesToResults(t *testing.T) {
	e := newTestServer(t)

	seedRunner(t, e, `{"name":"Kim"}`)
	seedRace(t, e, seoulMarathon)
	seedResult(t, e, `{"runner_id":1,"race_id":1,"finish_time":"03:15:00"}`)

	rec := do(e, http.MethodDelete, "/api/v1/races/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(e, http.MethodGet, "/api/v1/results/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

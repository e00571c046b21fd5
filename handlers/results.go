package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jwkim-dev/marathonapi/models"
	"github.com/jwkim-dev/marathonapi/store"
)

type createResultRequest struct {
	RunnerID     int      `json:"runner_id" validate:"required"`
	RaceID       int      `json:"race_id" validate:"required"`
	FinishTime   string   `json:"finish_time" validate:"required,datetime=15:04:05"`
	OverallRank  *int     `json:"overall_rank"`
	AgeGroupRank *int     `json:"age_group_rank"`
	GenderRank   *int     `json:"gender_rank"`
	BibNumber    *string  `json:"bib_number"`
	Pace         *float64 `json:"pace"`
	Notes        *string  `json:"notes"`
}

func (r *createResultRequest) model() *models.Result {
	return &models.Result{
		RunnerID:     r.RunnerID,
		RaceID:       r.RaceID,
		FinishTime:   r.FinishTime,
		OverallRank:  r.OverallRank,
		AgeGroupRank: r.AgeGroupRank,
		GenderRank:   r.GenderRank,
		BibNumber:    r.BibNumber,
		Pace:         r.Pace,
		Notes:        r.Notes,
	}
}

// updateResultRequest is a partial patch: nil fields are left unchanged.
// Repointing a result at another runner or race re-checks existence.
type updateResultRequest struct {
	RunnerID     *int     `json:"runner_id"`
	RaceID       *int     `json:"race_id"`
	FinishTime   *string  `json:"finish_time" validate:"omitempty,datetime=15:04:05"`
	OverallRank  *int     `json:"overall_rank"`
	AgeGroupRank *int     `json:"age_group_rank"`
	GenderRank   *int     `json:"gender_rank"`
	BibNumber    *string  `json:"bib_number"`
	Pace         *float64 `json:"pace"`
	Notes        *string  `json:"notes"`
}

func (r *updateResultRequest) apply(m *models.Result) {
	if r.RunnerID != nil {
		m.RunnerID = *r.RunnerID
	}
	if r.RaceID != nil {
		m.RaceID = *r.RaceID
	}
	if r.FinishTime != nil {
		m.FinishTime = *r.FinishTime
	}
	if r.OverallRank != nil {
		m.OverallRank = r.OverallRank
	}
	if r.AgeGroupRank != nil {
		m.AgeGroupRank = r.AgeGroupRank
	}
	if r.GenderRank != nil {
		m.GenderRank = r.GenderRank
	}
	if r.BibNumber != nil {
		m.BibNumber = r.BibNumber
	}
	if r.Pace != nil {
		m.Pace = r.Pace
	}
	if r.Notes != nil {
		m.Notes = r.Notes
	}
}

// checkReferences verifies the runner and race a result points at exist.
// Failing either is a 404 before anything is written.
func (h *Handler) checkReferences(c echo.Context, runnerID, raceID int) error {
	ctx := c.Request().Context()

	runner, err := h.runners.Get(ctx, runnerID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if runner == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Runner not found")
	}

	race, err := h.races.Get(ctx, raceID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if race == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Race not found")
	}
	return nil
}

// ListResults returns a page of results. Optional filters: runner_id,
// race_id; both together narrow to the (runner, race) pair lookup.
func (h *Handler) ListResults(c echo.Context) error {
	ctx := c.Request().Context()

	runnerID, err := intQuery(c, "runner_id", 0)
	if err != nil {
		return err
	}
	raceID, err := intQuery(c, "race_id", 0)
	if err != nil {
		return err
	}

	if runnerID != 0 && raceID != 0 {
		r, err := h.results.GetByRunnerAndRace(ctx, runnerID, raceID)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if r == nil {
			return c.JSON(http.StatusOK, []models.Result{})
		}
		return c.JSON(http.StatusOK, []models.Result{*r})
	}

	skip, limit, err := pagination(c)
	if err != nil {
		return err
	}

	var results []models.Result
	switch {
	case runnerID != 0:
		results, err = h.results.ListByRunner(ctx, runnerID, skip, limit)
	case raceID != 0:
		results, err = h.results.ListByRace(ctx, raceID, skip, limit)
	default:
		results, err = h.results.List(ctx, skip, limit)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, results)
}

// TopResults returns the fastest finishers for one race, ascending by
// finish time. limit defaults to 10.
func (h *Handler) TopResults(c echo.Context) error {
	raceID, err := intQuery(c, "race_id", 0)
	if err != nil {
		return err
	}
	if raceID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "race_id param is required")
	}
	limit, err := intQuery(c, "limit", 10)
	if err != nil {
		return err
	}
	if limit < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "limit must be non-negative")
	}
	if limit > store.MaxLimit {
		limit = store.MaxLimit
	}

	results, err := h.results.TopByRace(c.Request().Context(), raceID, limit)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, results)
}

// CreateResult inserts a new result after resolving both references.
func (h *Handler) CreateResult(c echo.Context) error {
	var req createResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}
	if err := h.checkReferences(c, req.RunnerID, req.RaceID); err != nil {
		return err
	}

	result := req.model()
	if err := h.results.Create(c.Request().Context(), result); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, result)
}

// GetResult returns one result. No embedding here: results are leaves, so
// runner/race expansion stops one level up.
func (h *Handler) GetResult(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	result, err := h.results.Get(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if result == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Result not found")
	}
	return c.JSON(http.StatusOK, result)
}

// UpdateResult applies a partial patch to one result.
func (h *Handler) UpdateResult(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req updateResultRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	result, err := h.results.Get(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if result == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Result not found")
	}

	req.apply(result)
	if req.RunnerID != nil || req.RaceID != nil {
		if err := h.checkReferences(c, result.RunnerID, result.RaceID); err != nil {
			return err
		}
	}
	if err := h.results.Update(ctx, result); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

// DeleteResult removes one result and returns its prior state.
func (h *Handler) DeleteResult(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	result, err := h.results.Get(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if result == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Result not found")
	}

	if err := h.results.Delete(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, result)
}

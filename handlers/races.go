package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jwkim-dev/marathonapi/models"
)

type createRaceRequest struct {
	Name          string   `json:"name" validate:"required"`
	Date          string   `json:"date" validate:"required,datetime=2006-01-02"`
	Location      string   `json:"location" validate:"required"`
	Distance      float64  `json:"distance" validate:"required"`
	ElevationGain *float64 `json:"elevation_gain"`
	Type          string   `json:"type" validate:"required"`
	Description   *string  `json:"description"`
	IsOfficial    *bool    `json:"is_official"`
}

func (r *createRaceRequest) model() *models.Race {
	isOfficial := true
	if r.IsOfficial != nil {
		isOfficial = *r.IsOfficial
	}
	return &models.Race{
		Name:          r.Name,
		Date:          r.Date,
		Location:      r.Location,
		Distance:      r.Distance,
		ElevationGain: r.ElevationGain,
		Type:          r.Type,
		Description:   r.Description,
		IsOfficial:    isOfficial,
	}
}

// updateRaceRequest is a partial patch: nil fields are left unchanged.
type updateRaceRequest struct {
	Name          *string  `json:"name"`
	Date          *string  `json:"date" validate:"omitempty,datetime=2006-01-02"`
	Location      *string  `json:"location"`
	Distance      *float64 `json:"distance"`
	ElevationGain *float64 `json:"elevation_gain"`
	Type          *string  `json:"type"`
	Description   *string  `json:"description"`
	IsOfficial    *bool    `json:"is_official"`
}

func (r *updateRaceRequest) apply(m *models.Race) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.Date != nil {
		m.Date = *r.Date
	}
	if r.Location != nil {
		m.Location = *r.Location
	}
	if r.Distance != nil {
		m.Distance = *r.Distance
	}
	if r.ElevationGain != nil {
		m.ElevationGain = r.ElevationGain
	}
	if r.Type != nil {
		m.Type = *r.Type
	}
	if r.Description != nil {
		m.Description = r.Description
	}
	if r.IsOfficial != nil {
		m.IsOfficial = *r.IsOfficial
	}
}

// raceDetail embeds a race's results one level deep.
type raceDetail struct {
	models.Race
	Results []*models.Result `json:"results"`
}

// ListRaces returns a page of races. Optional filters: name (exact, first
// match), location (exact), type (exact), start_date+end_date (inclusive).
func (h *Handler) ListRaces(c echo.Context) error {
	ctx := c.Request().Context()

	if name := c.QueryParam("name"); name != "" {
		r, err := h.races.GetByName(ctx, name)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if r == nil {
			return c.JSON(http.StatusOK, []models.Race{})
		}
		return c.JSON(http.StatusOK, []models.Race{*r})
	}

	skip, limit, err := pagination(c)
	if err != nil {
		return err
	}

	start, end := c.QueryParam("start_date"), c.QueryParam("end_date")
	if (start == "") != (end == "") {
		return echo.NewHTTPError(http.StatusBadRequest, "start_date and end_date must be given together")
	}

	var races []models.Race
	switch {
	case start != "":
		races, err = h.races.ListByDateRange(ctx, start, end, skip, limit)
	case c.QueryParam("location") != "":
		races, err = h.races.ListByLocation(ctx, c.QueryParam("location"), skip, limit)
	case c.QueryParam("type") != "":
		races, err = h.races.ListByType(ctx, c.QueryParam("type"), skip, limit)
	default:
		races, err = h.races.List(ctx, skip, limit)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, races)
}

// CreateRace inserts a new race.
func (h *Handler) CreateRace(c echo.Context) error {
	var req createRaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	race := req.model()
	if err := h.races.Create(c.Request().Context(), race); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, race)
}

// GetRace returns one race with its results embedded.
func (h *Handler) GetRace(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	race, err := h.races.GetWithResults(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if race == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Race not found")
	}

	results := race.Results
	if results == nil {
		results = []*models.Result{}
	}
	return c.JSON(http.StatusOK, raceDetail{Race: *race, Results: results})
}

// UpdateRace applies a partial patch to one race.
func (h *Handler) UpdateRace(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req updateRaceRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	race, err := h.races.Get(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if race == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Race not found")
	}

	req.apply(race)
	if err := h.races.Update(ctx, race); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, race)
}

// DeleteRace removes one race and returns its prior state.
// The race's results go with it (FK cascade).
func (h *Handler) DeleteRace(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	race, err := h.races.Get(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if race == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Race not found")
	}

	if err := h.races.Delete(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, race)
}

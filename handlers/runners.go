package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/jwkim-dev/marathonapi/models"
)

type createRunnerRequest struct {
	Name         string   `json:"name" validate:"required"`
	BirthDate    *string  `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Gender       *string  `json:"gender"`
	Nationality  *string  `json:"nationality"`
	ProfileImage *string  `json:"profile_image"`
	Height       *float64 `json:"height"`
	Weight       *float64 `json:"weight"`
	Bio          *string  `json:"bio"`
}

func (r *createRunnerRequest) model() *models.Runner {
	return &models.Runner{
		Name:         r.Name,
		BirthDate:    r.BirthDate,
		Gender:       r.Gender,
		Nationality:  r.Nationality,
		ProfileImage: r.ProfileImage,
		Height:       r.Height,
		Weight:       r.Weight,
		Bio:          r.Bio,
	}
}

// updateRunnerRequest is a partial patch: nil fields are left unchanged.
type updateRunnerRequest struct {
	Name         *string  `json:"name"`
	BirthDate    *string  `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Gender       *string  `json:"gender"`
	Nationality  *string  `json:"nationality"`
	ProfileImage *string  `json:"profile_image"`
	Height       *float64 `json:"height"`
	Weight       *float64 `json:"weight"`
	Bio          *string  `json:"bio"`
}

func (r *updateRunnerRequest) apply(m *models.Runner) {
	if r.Name != nil {
		m.Name = *r.Name
	}
	if r.BirthDate != nil {
		m.BirthDate = r.BirthDate
	}
	if r.Gender != nil {
		m.Gender = r.Gender
	}
	if r.Nationality != nil {
		m.Nationality = r.Nationality
	}
	if r.ProfileImage != nil {
		m.ProfileImage = r.ProfileImage
	}
	if r.Height != nil {
		m.Height = r.Height
	}
	if r.Weight != nil {
		m.Weight = r.Weight
	}
	if r.Bio != nil {
		m.Bio = r.Bio
	}
}

// runnerDetail embeds a runner's results one level deep.
type runnerDetail struct {
	models.Runner
	Results []*models.Result `json:"results"`
}

// ListRunners returns a page of runners. Optional filters: name (exact,
// first match) and nationality (exact).
func (h *Handler) ListRunners(c echo.Context) error {
	ctx := c.Request().Context()

	if name := c.QueryParam("name"); name != "" {
		r, err := h.runners.GetByName(ctx, name)
		if err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
		}
		if r == nil {
			return c.JSON(http.StatusOK, []models.Runner{})
		}
		return c.JSON(http.StatusOK, []models.Runner{*r})
	}

	skip, limit, err := pagination(c)
	if err != nil {
		return err
	}

	var runners []models.Runner
	if nat := c.QueryParam("nationality"); nat != "" {
		runners, err = h.runners.ListByNationality(ctx, nat, skip, limit)
	} else {
		runners, err = h.runners.List(ctx, skip, limit)
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, runners)
}

// CreateRunner inserts a new runner.
func (h *Handler) CreateRunner(c echo.Context) error {
	var req createRunnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	runner := req.model()
	if err := h.runners.Create(c.Request().Context(), runner); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusCreated, runner)
}

// GetRunner returns one runner with its results embedded.
func (h *Handler) GetRunner(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	runner, err := h.runners.GetWithResults(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if runner == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Runner not found")
	}

	results := runner.Results
	if results == nil {
		results = []*models.Result{}
	}
	return c.JSON(http.StatusOK, runnerDetail{Runner: *runner, Results: results})
}

// UpdateRunner applies a partial patch to one runner.
func (h *Handler) UpdateRunner(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	var req updateRunnerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx := c.Request().Context()
	runner, err := h.runners.Get(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if runner == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Runner not found")
	}

	req.apply(runner)
	if err := h.runners.Update(ctx, runner); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, runner)
}

// DeleteRunner removes one runner and returns its prior state.
// The runner's results go with it (FK cascade).
func (h *Handler) DeleteRunner(c echo.Context) error {
	id, err := idParam(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	runner, err := h.runners.Get(ctx, id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	if runner == nil {
		return echo.NewHTTPError(http.StatusNotFound, "Runner not found")
	}

	if err := h.runners.Delete(ctx, id); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, runner)
}

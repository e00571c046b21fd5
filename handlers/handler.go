package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/uptrace/bun"

	"github.com/jwkim-dev/marathonapi/store"
)

// Handler holds the per-entity stores used by all route handlers.
type Handler struct {
	runners *store.RunnerStore
	races   *store.RaceStore
	results *store.ResultStore
}

// New creates a Handler with stores bound to the given database connection.
func New(db *bun.DB) *Handler {
	return &Handler{
		runners: store.NewRunnerStore(db),
		races:   store.NewRaceStore(db),
		results: store.NewResultStore(db),
	}
}

// Register mounts all routes on g, normally the /api/v1 group.
func (h *Handler) Register(g *echo.Group) {
	g.GET("/runners", h.ListRunners)
	g.POST("/runners", h.CreateRunner)
	g.GET("/runners/:id", h.GetRunner)
	g.PUT("/runners/:id", h.UpdateRunner)
	g.DELETE("/runners/:id", h.DeleteRunner)

	g.GET("/races", h.ListRaces)
	g.POST("/races", h.CreateRace)
	g.GET("/races/:id", h.GetRace)
	g.PUT("/races/:id", h.UpdateRace)
	g.DELETE("/races/:id", h.DeleteRace)

	g.GET("/results", h.ListResults)
	g.GET("/results/top", h.TopResults)
	g.POST("/results", h.CreateResult)
	g.GET("/results/:id", h.GetResult)
	g.PUT("/results/:id", h.UpdateResult)
	g.DELETE("/results/:id", h.DeleteResult)
}

// idParam parses the :id path segment.
func idParam(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

// pagination reads skip/limit query params with the standard defaults.
// Oversized limits are clamped to store.MaxLimit rather than rejected.
func pagination(c echo.Context) (skip, limit int, err error) {
	skip, err = intQuery(c, "skip", 0)
	if err != nil {
		return 0, 0, err
	}
	limit, err = intQuery(c, "limit", store.DefaultLimit)
	if err != nil {
		return 0, 0, err
	}
	if skip < 0 || limit < 0 {
		return 0, 0, echo.NewHTTPError(http.StatusBadRequest, "skip and limit must be non-negative")
	}
	if limit > store.MaxLimit {
		limit = store.MaxLimit
	}
	return skip, limit, nil
}

func intQuery(c echo.Context, name string, def int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name+" param")
	}
	return n, nil
}

package handlers

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/sqliteshim"

	"github.com/jwkim-dev/marathonapi/db"
)

// newTestServer wires a Handler over an in-memory SQLite database into a
// fresh echo instance with the real validator and routes.
func newTestServer(t *testing.T) *echo.Echo {
	t.Helper()

	sqldb, err := sql.Open(sqliteshim.ShimName, ":memory:")
	require.NoError(t, err)
	sqldb.SetMaxOpenConns(1)

	tdb := bun.NewDB(sqldb, sqlitedialect.New())
	ctx := context.Background()

	_, err = tdb.ExecContext(ctx, "PRAGMA foreign_keys = ON")
	require.NoError(t, err)
	require.NoError(t, db.CreateTables(ctx, tdb))
	t.Cleanup(func() { _ = tdb.Close() })

	e := echo.New()
	e.Validator = NewValidator()
	New(tdb).Register(e.Group("/api/v1"))
	return e
}

// do sends a request through the echo router and returns the recorder.
func do(e *echo.Echo, method, path, body string) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a response body into out.
func decode(t *testing.T, rec *httptest.ResponseRecorder, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), out))
}

// seedRunner and seedRace create fixtures through the API itself so tests
// exercise the same path a client would.
func seedRunner(t *testing.T, e *echo.Echo, body string) map[string]interface{} {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/v1/runners", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out map[string]interface{}
	decode(t, rec, &out)
	return out
}

func seedRace(t *testing.T, e *echo.Echo, body string) map[string]interface{} {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/v1/races", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out map[string]interface{}
	decode(t, rec, &out)
	return out
}

func seedResult(t *testing.T, e *echo.Echo, body string) map[string]interface{} {
	t.Helper()
	rec := do(e, http.MethodPost, "/api/v1/results", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var out map[string]interface{}
	decode(t, rec, &out)
	return out
}

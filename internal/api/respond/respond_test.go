package respond_test

import (
	"encoding/json"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vandringspris/vandringspris-data/internal/api/respond"
)

func TestWriteError(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.WriteError(rec, 400, "INVALID_CLUB", "club must be a positive integer")

	assert.Equal(t, 400, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp respond.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_CLUB", resp.Error.Code)
	assert.Equal(t, "club must be a positive integer", resp.Error.Message)
	assert.Empty(t, resp.Error.Detail)
}

func TestWriteDBError(t *testing.T) {
	t.Run("Postgres Error Carries Message Code Hint", func(t *testing.T) {
		rec := httptest.NewRecorder()
		pgErr := &pgconn.PgError{
			Message: "function rpc_results_enriched does not exist",
			Code:    "42883",
			Hint:    "No function matches the given name and argument types.",
		}
		respond.WriteDBError(rec, pgErr)

		assert.Equal(t, 500, rec.Code)
		var resp respond.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "database_error", resp.Error.Code)
		assert.Contains(t, resp.Error.Detail, "function rpc_results_enriched does not exist")
		assert.Contains(t, resp.Error.Detail, "42883")
		assert.Contains(t, resp.Error.Detail, "No function matches")
	})

	t.Run("Wrapped Postgres Error Unwrapped", func(t *testing.T) {
		rec := httptest.NewRecorder()
		wrapped := errors.Join(errors.New("rpc_results_enriched"), &pgconn.PgError{Message: "boom", Code: "XX000"})
		respond.WriteDBError(rec, wrapped)

		var resp respond.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error.Detail, "boom")
	})

	t.Run("Plain Error Passed Through", func(t *testing.T) {
		rec := httptest.NewRecorder()
		respond.WriteDBError(rec, errors.New("connection refused"))

		var resp respond.ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "connection refused", resp.Error.Detail)
	})
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.WriteJSON(rec, []byte(`{"ok":true}`), `W/"abc"`, time.Minute, true)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, `W/"abc"`, rec.Header().Get("ETag"))
	assert.Equal(t, "HIT", rec.Header().Get("X-Cache"))
	assert.Contains(t, rec.Header().Get("Cache-Control"), "max-age=60")
	assert.Contains(t, rec.Header().Get("Cache-Control"), "stale-while-revalidate=30")
	assert.JSONEq(t, `{"ok":true}`, rec.Body.String())
}

func TestWriteNotModified(t *testing.T) {
	rec := httptest.NewRecorder()
	respond.WriteNotModified(rec, `W/"abc"`)
	assert.Equal(t, 304, rec.Code)
	assert.Equal(t, `W/"abc"`, rec.Header().Get("ETag"))
}

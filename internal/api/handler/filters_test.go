package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFilterOptionsValidation(t *testing.T) {
	h := &Handler{}

	t.Run("Missing Year Rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/results-stats/filters", nil)
		rec := httptest.NewRecorder()
		h.GetFilterOptions(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_YEAR")
	})

	t.Run("Missing Year Rejected On Post", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/results-stats/filters",
			strings.NewReader(`{"club":"461"}`))
		rec := httptest.NewRecorder()
		h.GetFilterOptions(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "MISSING_YEAR")
	})

	t.Run("Invalid Year Rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/results-stats/filters?year=20x5", nil)
		rec := httptest.NewRecorder()
		h.GetFilterOptions(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_YEAR")
	})

	t.Run("Invalid Club Rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/results-stats/filters?year=2025&club=-1", nil)
		rec := httptest.NewRecorder()
		h.GetFilterOptions(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_CLUB")
	})

	t.Run("Malformed Body Rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/results-stats/filters",
			strings.NewReader("not json"))
		rec := httptest.NewRecorder()
		h.GetFilterOptions(rec, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "INVALID_BODY")
	})
}

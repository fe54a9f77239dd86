package result_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vandringspris/vandringspris-data/internal/result"
)

func strp(s string) *string { return &s }
func intp(n int) *int       { return &n }

func TestStatusCounted(t *testing.T) {
	cases := map[string]bool{
		result.StatusOK:          true,
		result.StatusMispunch:    true,
		"MisPunch":               true,
		result.StatusDidNotStart: false,
		result.StatusCancelled:   false,
		"":                       false,
	}
	for status, want := range cases {
		r := result.Record{ResultCompetitorStatus: strp(status)}
		assert.Equal(t, want, r.StatusCounted(), "status %q", status)
	}

	var missing result.Record
	assert.False(t, missing.StatusCounted())
}

func TestForm(t *testing.T) {
	assert.Equal(t, result.FormIndividual, (&result.Record{}).Form())
	assert.Equal(t, result.FormIndividual, (&result.Record{EventForm: strp("  ")}).Form())
	assert.Equal(t, "Relay", (&result.Record{EventForm: strp("Relay")}).Form())
}

func TestDisplayName(t *testing.T) {
	t.Run("Given Plus Family", func(t *testing.T) {
		r := result.Record{PersonNameGiven: strp("Anna"), PersonNameFamily: strp("Svensson")}
		assert.Equal(t, "Anna Svensson", r.DisplayName())
	})

	t.Run("Family Only", func(t *testing.T) {
		r := result.Record{PersonNameFamily: strp("Svensson")}
		assert.Equal(t, "Svensson", r.DisplayName())
	})

	t.Run("XML Fallback", func(t *testing.T) {
		r := result.Record{XMLPersonName: strp(" Bo Ek ")}
		assert.Equal(t, "Bo Ek", r.DisplayName())
	})

	t.Run("Nothing Known", func(t *testing.T) {
		assert.Equal(t, "-", (&result.Record{}).DisplayName())
	})
}

func TestIsChampionship(t *testing.T) {
	assert.True(t, (&result.Record{EventClassificationID: intp(1)}).IsChampionship())
	assert.False(t, (&result.Record{EventClassificationID: intp(3)}).IsChampionship())
	assert.False(t, (&result.Record{}).IsChampionship())
}

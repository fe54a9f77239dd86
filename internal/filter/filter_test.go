package filter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vandringspris/vandringspris-data/internal/result"
)

func TestIntArg(t *testing.T) {
	t.Run("Sentinel And Empty", func(t *testing.T) {
		assert.Nil(t, intArg(""))
		assert.Nil(t, intArg(All))
	})

	t.Run("Numeric", func(t *testing.T) {
		y := intArg("2025")
		require.NotNil(t, y)
		assert.Equal(t, 2025, *y)
	})

	t.Run("Garbage Falls Back To Unrestricted", func(t *testing.T) {
		assert.Nil(t, intArg("senaste"))
	})
}

func TestSortOptions(t *testing.T) {
	opts := []Option{
		{Value: "3", Label: "Öberg"},
		{Value: "1", Label: "Andersson"},
		{Value: "2", Label: "Åkesson"},
	}
	sortOptions(opts)
	assert.Equal(t, []string{"Andersson", "Åkesson", "Öberg"},
		[]string{opts[0].Label, opts[1].Label, opts[2].Label})
}

func TestSortOptionsTiebreak(t *testing.T) {
	opts := []Option{
		{Value: "9", Label: "Lund OK"},
		{Value: "4", Label: "Lund OK"},
	}
	sortOptions(opts)
	assert.Equal(t, "4", opts[0].Value)
	assert.Equal(t, "9", opts[1].Value)
}

func TestNormalizeStringValue(t *testing.T) {
	t.Run("Null Form Becomes Individual", func(t *testing.T) {
		assert.Equal(t, result.FormIndividual, normalizeStringValue(nil, result.FormIndividual))
	})

	t.Run("Blank Form Becomes Individual", func(t *testing.T) {
		for _, s := range []string{"", "  "} {
			v := s
			assert.Equal(t, result.FormIndividual, normalizeStringValue(&v, result.FormIndividual))
		}
	})

	t.Run("Real Value Kept Trimmed", func(t *testing.T) {
		v := " RelaySingleDay "
		assert.Equal(t, "RelaySingleDay", normalizeStringValue(&v, result.FormIndividual))
	})

	t.Run("Blank Distance Skipped", func(t *testing.T) {
		assert.Equal(t, "", normalizeStringValue(nil, ""))
	})
}

func TestSortAndCap(t *testing.T) {
	opts := []Option{
		{Value: "3", Label: "Östberg, Nils"},
		{Value: "1", Label: "Berg, Karin"},
		{Value: "2", Label: "Alm, Sune"},
		{Value: "4", Label: "Åberg, Eva"},
	}
	capped := sortAndCap(opts, 2)
	// The cut happens after the collation sort, so the retained entries are
	// the alphabetically first ones regardless of input order.
	require.Len(t, capped, 2)
	assert.Equal(t, "Alm, Sune", capped[0].Label)
	assert.Equal(t, "Berg, Karin", capped[1].Label)
}

func TestDefaultsSerializeNullWhenEmpty(t *testing.T) {
	data, err := json.Marshal(&Defaults{})
	require.NoError(t, err)
	assert.JSONEq(t, `{"latestYear":null,"defaultClub":null}`, string(data))
}

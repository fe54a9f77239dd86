package csvexport_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vandringspris/vandringspris-data/internal/csvexport"
	"github.com/vandringspris/vandringspris-data/internal/result"
)

func strp(s string) *string { return &s }
func intp(n int) *int { return &n }
func floatp(f float64) *float64 { return &f }

func TestEscape(t *testing.T) {
	t.Run("Plain Field Untouched", func(t *testing.T) {
		assert.Equal(t, "Anna Svensson", csvexport.Escape("Anna Svensson"))
	})

	t.Run("Comma And Quote", func(t *testing.T) {
		assert.Equal(t, `"a,b""c"`, csvexport.Escape(`a,b"c`))
	})

	t.Run("Newline", func(t *testing.T) {
		assert.Equal(t, "\"a\nb\"", csvexport.Escape("a\nb"))
	})

	t.Run("Quote Only", func(t *testing.T) {
		assert.Equal(t, `"say ""hi"""`, csvexport.Escape(`say "hi"`))
	})
}

func TestEncode(t *testing.T) {
	t.Run("Empty Set Is BOM Plus Header", func(t *testing.T) {
		out := csvexport.Encode(nil)
		require.True(t, strings.HasPrefix(out, csvexport.BOM))
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 1)
		header := strings.TrimPrefix(lines[0], csvexport.BOM)
		assert.Equal(t, strings.Join(csvexport.Headers, ","), header)
	})

	t.Run("BOM Bytes", func(t *testing.T) {
		out := csvexport.Encode(nil)
		assert.Equal(t, []byte{0xEF, 0xBB, 0xBF}, []byte(out)[:3])
	})

	t.Run("One Row Per Record", func(t *testing.T) {
		records := []result.Record{
			{
				EventRaceID:            1,
				EventID:                2,
				EventDate:              "2025-05-01",
				EventName:              "Vårträffen, etapp 1",
				PersonID:               7,
				PersonNameGiven:        strp("Anna"),
				PersonNameFamily:       strp("Svensson"),
				PersonAge:              intp(34),
				Points:                 floatp(87.5),
				ResultCompetitorStatus: strp(result.StatusOK),
			},
			{
				EventRaceID: 3,
				EventID:     4,
				EventDate:   "2025-06-01",
				EventName:   "Sommarsprinten",
				PersonID:    0,
			},
		}
		out := csvexport.Encode(records)
		lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
		require.Len(t, lines, 3)

		// The event name contains a comma, so it must be quoted.
		assert.Contains(t, lines[1], `"Vårträffen, etapp 1"`)
		assert.Contains(t, lines[1], "Anna Svensson")
		assert.Contains(t, lines[1], "87.5")

		// Missing optionals stay as empty fields.
		fields := strings.Split(lines[2], ",")
		assert.Equal(t, len(csvexport.Headers), len(fields))
	})
}

func TestFilename(t *testing.T) {
	t.Run("Full Scope", func(t *testing.T) {
		assert.Equal(t, "export_461-all-all_20250601-120000.csv",
			csvexport.Filename(461, nil, nil, "20250601-120000"))
	})

	t.Run("Person And Year", func(t *testing.T) {
		assert.Equal(t, "export_114-12345-2025_20250601-120000.csv",
			csvexport.Filename(114, intp(12345), intp(2025), "20250601-120000"))
	})
}

package locale_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vandringspris/vandringspris-data/internal/locale"
)

func TestSwedishOrder(t *testing.T) {
	t.Run("Letters After Z", func(t *testing.T) {
		names := []string{"Öberg", "Andersson", "Åkesson", "Zorn", "Ärlig"}
		locale.SortStrings(names)
		assert.Equal(t, []string{"Andersson", "Zorn", "Åkesson", "Ärlig", "Öberg"}, names)
	})

	t.Run("Less", func(t *testing.T) {
		assert.True(t, locale.Less("Zorn", "Åkesson"))
		assert.False(t, locale.Less("Öberg", "Ärlig"))
		assert.True(t, locale.Less("Andersson", "Bergström"))
	})

	t.Run("Compare Equal", func(t *testing.T) {
		assert.Equal(t, 0, locale.Compare("Lindgren", "Lindgren"))
	})
}

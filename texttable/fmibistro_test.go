package texttable_test

import (
	"strings"
	"testing"
	"time"

	"github.com/mensa-dev/mensa"
	"github.com/mensa-dev/mensa/texttable"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fmiRow lays five cells out as one whitespace-table line, with a left
// margin and a fixed column width matching fmiHeader below.
func fmiRow(cells ...string) string {
	const margin, width = 14, 24
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", margin))
	for _, cell := range cells {
		b.WriteString(cell)
		if pad := width - len([]rune(cell)); pad > 0 {
			b.WriteString(strings.Repeat(" ", pad))
		}
	}
	return strings.TrimRight(b.String(), " ")
}

func fmiHeader() string {
	return fmiRow("Montag", "Dienstag", "Mittwoch", "Donnerstag", "Freitag")
}

func TestFMIBistroParser_ParseWeek(t *testing.T) {
	t.Parallel()

	t.Run("current layout", func(t *testing.T) {
		t.Parallel()

		text := strings.Join([]string{
			"Speiseplan KW 46",
			"Gaststätte im FMI-Gebäude",
			fmiHeader(),
			fmiRow("Spätzle mit Käse € 3,50", "geschlossen", "Gulasch € 4,20", "Schnitzel € 4,50", "Fischfilet € 4,80"),
			fmiRow("Allergene: Gluten, Ei", "", "Allergene: Gluten", "", ""),
			fmiRow("", "", "Salat € 2,00", "", ""),
		}, "\n")

		p := texttable.NewFMIBistroParser()
		menus, err := p.ParseWeek(text, 2018, 46)
		require.NoError(t, err)
		require.Len(t, menus, 5)

		monday := menus[mensa.Date(2018, time.November, 12)]
		require.NotNil(t, monday)
		require.Len(t, monday.Dishes, 1)
		dish := monday.Dishes[0]
		assert.Equal(t, "Spätzle mit Käse", dish.Name)
		assert.Equal(t, mensa.PriceOf(3.5), dish.Price)
		assert.True(t, dish.Ingredients.Equal(mensa.NewIngredientSet("Gluten", "Ei")))
		assert.Equal(t, "Tagesgericht", dish.Type)

		t.Run("closed day is a valid empty menu", func(t *testing.T) {
			tuesday := menus[mensa.Date(2018, time.November, 13)]
			require.NotNil(t, tuesday)
			assert.Empty(t, tuesday.Dishes)
		})

		t.Run("allergen lists pair with dishes positionally", func(t *testing.T) {
			wednesday := menus[mensa.Date(2018, time.November, 14)]
			require.NotNil(t, wednesday)
			require.Len(t, wednesday.Dishes, 2)
			assert.Equal(t, "Gulasch", wednesday.Dishes[0].Name)
			assert.True(t, wednesday.Dishes[0].Ingredients.Equal(mensa.NewIngredientSet("Gluten")))
			assert.Equal(t, "Salat", wednesday.Dishes[1].Name)
			assert.Empty(t, wednesday.Dishes[1].Ingredients)
		})
	})

	t.Run("dish name starting with an allergen word stays intact", func(t *testing.T) {
		t.Parallel()

		text := strings.Join([]string{
			fmiHeader(),
			fmiRow("Schnitzel € 4,50", "", "", "", ""),
			fmiRow("Allergene: Gluten", "", "", "", ""),
			fmiRow("Fischfilet € 4,80", "", "", "", ""),
		}, "\n")

		p := texttable.NewFMIBistroParser()
		menus, err := p.ParseWeek(text, 2018, 46)
		require.NoError(t, err)

		monday := menus[mensa.Date(2018, time.November, 12)]
		require.NotNil(t, monday)
		require.Len(t, monday.Dishes, 2)
		assert.Equal(t, "Schnitzel", monday.Dishes[0].Name)
		assert.True(t, monday.Dishes[0].Ingredients.Equal(mensa.NewIngredientSet("Gluten")))
		assert.Equal(t, "Fischfilet", monday.Dishes[1].Name)
		assert.Empty(t, monday.Dishes[1].Ingredients)
	})

	t.Run("pre-2018 weekly special applies to every day", func(t *testing.T) {
		t.Parallel()

		text := strings.Join([]string{
			"Speiseplan KW 46",
			fmiHeader(),
			"",
			"Chili con",
			"Carne € 4,50",
			"Aktion",
			"",
			fmiRow("Spätzle € 3,50", "Brezn € 1,20", "Gulasch € 4,20", "Schnitzel € 4,50", "Fisch € 4,80"),
		}, "\n")

		p := texttable.NewFMIBistroParser()
		menus, err := p.ParseWeek(text, 2017, 46)
		require.NoError(t, err)
		require.Len(t, menus, 5)

		monday := menus[mensa.Date(2017, time.November, 13)]
		require.NotNil(t, monday)
		require.Len(t, monday.Dishes, 2)
		assert.Equal(t, "Chili con Carne", monday.Dishes[0].Name)
		assert.Equal(t, mensa.PriceOf(4.5), monday.Dishes[0].Price)
		assert.Equal(t, "Spätzle", monday.Dishes[1].Name)

		friday := menus[mensa.Date(2017, time.November, 17)]
		require.NotNil(t, friday)
		assert.Equal(t, "Chili con Carne", friday.Dishes[0].Name)
	})

	t.Run("truncates corrupted trailing entries", func(t *testing.T) {
		t.Parallel()

		text := strings.Join([]string{
			fmiHeader(),
			fmiRow("Suppe € 1,00", "", "", "", ""),
			fmiRow("Braten € 4,00", "", "", "", ""),
			fmiRow("Rest € 0,10", "", "", "", ""),
		}, "\n")

		p := texttable.NewFMIBistroParser()
		p.MaxDishes = 2
		menus, err := p.ParseWeek(text, 2018, 46)
		require.NoError(t, err)

		monday := menus[mensa.Date(2018, time.November, 12)]
		require.NotNil(t, monday)
		assert.Len(t, monday.Dishes, 2)
	})

	t.Run("fails closed without the weekday header", func(t *testing.T) {
		t.Parallel()

		p := texttable.NewFMIBistroParser()
		menus, err := p.ParseWeek("Betriebsferien bis auf Weiteres", 2018, 46)
		require.Error(t, err)
		assert.Equal(t, mensa.EUNAVAILABLE, mensa.ErrorCode(err))
		assert.Empty(t, menus)
	})
}

package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensa-dev/mensa"
	"github.com/mensa-dev/mensa/sqlite"
)

// MustOpenDB opens an in-memory database that is closed when the test
// finishes.
func MustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()
	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func menuOn(date time.Time, names ...string) *mensa.Menu {
	var dishes []mensa.Dish
	for _, name := range names {
		dishes = append(dishes, mensa.NewDish(name, mensa.PriceOf(3.5),
			mensa.NewIngredientSet("Gluten"), "Tagesgericht"))
	}
	return mensa.NewMenu(date, dishes)
}

func TestMenuService_SaveMenus(t *testing.T) {
	t.Parallel()

	t.Run("round-trips menus", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewMenuService(db)
		ctx := context.Background()

		monday := mensa.Date(2017, time.November, 13)
		tuesday := mensa.Date(2017, time.November, 14)
		require.NoError(t, s.SaveMenus(ctx, "mensa-garching", mensa.MenuMap{
			monday:  menuOn(monday, "Spätzle mit Käse"),
			tuesday: menuOn(tuesday, "Gulasch", "Salat"),
		}))

		record, err := s.FindMenuByDate(ctx, "mensa-garching", monday)
		require.NoError(t, err)
		assert.NotEmpty(t, record.ID)
		assert.Equal(t, "mensa-garching", record.Location)
		assert.NotEmpty(t, record.Hash)
		require.Len(t, record.Menu.Dishes, 1)

		dish := record.Menu.Dishes[0]
		assert.Equal(t, "Spätzle mit Käse", dish.Name)
		assert.Equal(t, mensa.PriceOf(3.5), dish.Price)
		assert.Equal(t, "Tagesgericht", dish.Type)
		assert.True(t, dish.Ingredients.Equal(mensa.NewIngredientSet("Gluten")))
	})

	t.Run("re-saving a date updates in place", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewMenuService(db)
		ctx := context.Background()

		monday := mensa.Date(2017, time.November, 13)
		require.NoError(t, s.SaveMenus(ctx, "mensa-garching", mensa.MenuMap{
			monday: menuOn(monday, "Eintopf"),
		}))
		before, err := s.FindMenuByDate(ctx, "mensa-garching", monday)
		require.NoError(t, err)

		require.NoError(t, s.SaveMenus(ctx, "mensa-garching", mensa.MenuMap{
			monday: menuOn(monday, "Eintopf", "Nachschlag"),
		}))
		after, err := s.FindMenuByDate(ctx, "mensa-garching", monday)
		require.NoError(t, err)

		assert.Equal(t, before.ID, after.ID)
		assert.NotEqual(t, before.Hash, after.Hash)
		assert.Len(t, after.Menu.Dishes, 2)
	})

	t.Run("a closed day round-trips as an empty menu", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewMenuService(db)
		ctx := context.Background()

		holiday := mensa.Date(2017, time.November, 15)
		require.NoError(t, s.SaveMenus(ctx, "ipp-bistro", mensa.MenuMap{
			holiday: mensa.NewMenu(holiday, nil),
		}))

		record, err := s.FindMenuByDate(ctx, "ipp-bistro", holiday)
		require.NoError(t, err)
		assert.Empty(t, record.Menu.Dishes)
	})

	t.Run("requires a location", func(t *testing.T) {
		t.Parallel()

		db := MustOpenDB(t)
		s := sqlite.NewMenuService(db)

		err := s.SaveMenus(context.Background(), "", mensa.MenuMap{})
		require.Error(t, err)
		assert.Equal(t, mensa.EINVALID, mensa.ErrorCode(err))
	})
}

func TestMenuService_FindMenuByDate(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	s := sqlite.NewMenuService(db)

	_, err := s.FindMenuByDate(context.Background(), "mensa-garching", mensa.Date(2017, time.November, 13))
	require.Error(t, err)
	assert.Equal(t, mensa.ENOTFOUND, mensa.ErrorCode(err))
}

func TestMenuService_FindMenus(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	s := sqlite.NewMenuService(db)
	ctx := context.Background()

	monday := mensa.Date(2017, time.November, 13)
	tuesday := mensa.Date(2017, time.November, 14)
	wednesday := mensa.Date(2017, time.November, 15)
	require.NoError(t, s.SaveMenus(ctx, "mensa-garching", mensa.MenuMap{
		monday:    menuOn(monday, "Eintopf"),
		tuesday:   menuOn(tuesday, "Gulasch"),
		wednesday: menuOn(wednesday, "Auflauf"),
	}))
	require.NoError(t, s.SaveMenus(ctx, "fmi-bistro", mensa.MenuMap{
		monday: menuOn(monday, "Pasta"),
	}))

	t.Run("filters by location", func(t *testing.T) {
		location := "mensa-garching"
		records, err := s.FindMenus(ctx, mensa.MenuFilter{Location: &location})
		require.NoError(t, err)
		require.Len(t, records, 3)
		assert.Equal(t, monday, records[0].Menu.Date)
		assert.Equal(t, wednesday, records[2].Menu.Date)
	})

	t.Run("filters by date range", func(t *testing.T) {
		records, err := s.FindMenus(ctx, mensa.MenuFilter{From: &tuesday, To: &tuesday})
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "Gulasch", records[0].Menu.Dishes[0].Name)
	})

	t.Run("orders by date then location", func(t *testing.T) {
		records, err := s.FindMenus(ctx, mensa.MenuFilter{})
		require.NoError(t, err)
		require.Len(t, records, 4)
		assert.Equal(t, "fmi-bistro", records[0].Location)
		assert.Equal(t, "mensa-garching", records[1].Location)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		records, err := s.FindMenus(ctx, mensa.MenuFilter{Limit: 2, Offset: 1})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, "mensa-garching", records[0].Location)
		assert.Equal(t, monday, records[0].Menu.Date)
	})
}

func TestMenuService_DeleteMenusByLocation(t *testing.T) {
	t.Parallel()

	db := MustOpenDB(t)
	s := sqlite.NewMenuService(db)
	ctx := context.Background()

	monday := mensa.Date(2017, time.November, 13)
	require.NoError(t, s.SaveMenus(ctx, "mensa-garching", mensa.MenuMap{monday: menuOn(monday, "Eintopf")}))
	require.NoError(t, s.SaveMenus(ctx, "fmi-bistro", mensa.MenuMap{monday: menuOn(monday, "Pasta")}))

	require.NoError(t, s.DeleteMenusByLocation(ctx, "mensa-garching"))

	_, err := s.FindMenuByDate(ctx, "mensa-garching", monday)
	assert.Equal(t, mensa.ENOTFOUND, mensa.ErrorCode(err))

	_, err = s.FindMenuByDate(ctx, "fmi-bistro", monday)
	assert.NoError(t, err)
}

package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensa-dev/mensa"
	main "github.com/mensa-dev/mensa/cmd/mensa"
	"github.com/mensa-dev/mensa/mock"
)

func TestFetchCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("stores fetched menus", func(t *testing.T) {
		t.Parallel()

		monday := mensa.Date(2017, time.November, 13)
		source := &mock.MenuSource{
			MenusFn: func(ctx context.Context) (mensa.MenuMap, error) {
				return mensa.MenuMap{monday: mensa.NewMenu(monday, []mensa.Dish{
					{Name: "Pasta", Price: mensa.PriceOf(1.9)},
				})}, nil
			},
		}

		var savedLocation string
		var savedMenus mensa.MenuMap
		menus := &mock.MenuService{
			SaveMenusFn: func(ctx context.Context, location string, m mensa.MenuMap) error {
				savedLocation = location
				savedMenus = m
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Menus:  menus,
			Source: source,
		}

		cmd := &main.FetchCmd{Location: "mensa-garching"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "mensa-garching", savedLocation)
		require.Len(t, savedMenus, 1)
		assert.Equal(t, "Pasta", savedMenus[monday].Dishes[0].Name)
		assert.Contains(t, stdout.String(), "Stored 1 menus for mensa-garching")
		assert.Empty(t, stderr.String())
	})

	t.Run("exports when an output directory is given", func(t *testing.T) {
		t.Parallel()

		source := &mock.MenuSource{
			MenusFn: func(ctx context.Context) (mensa.MenuMap, error) {
				monday := mensa.Date(2017, time.November, 13)
				return mensa.MenuMap{monday: mensa.NewMenu(monday, nil)}, nil
			},
		}
		menus := &mock.MenuService{
			SaveMenusFn: func(ctx context.Context, location string, m mensa.MenuMap) error {
				return nil
			},
		}

		var writerDir string
		var written map[mensa.WeekKey]*mensa.Week
		writer := &mock.WeekWriter{
			WriteWeeksFn: func(ctx context.Context, weeks map[mensa.WeekKey]*mensa.Week) error {
				written = weeks
				return nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Menus:  menus,
			Source: source,
			NewWriter: func(dir string) mensa.WeekWriter {
				writerDir = dir
				return writer
			},
		}

		cmd := &main.FetchCmd{Location: "fmi-bistro", Out: "dist"}
		err := cmd.Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "dist/fmi-bistro", writerDir)
		require.Len(t, written, 1)
		assert.Contains(t, written, mensa.WeekKey{Year: 2017, Number: 46})
		assert.Contains(t, stdout.String(), "Exported 1 weeks to dist")
	})

	t.Run("reports extraction failure", func(t *testing.T) {
		t.Parallel()

		source := &mock.MenuSource{
			MenusFn: func(ctx context.Context) (mensa.MenuMap, error) {
				return nil, mensa.Errorf(mensa.EUNAVAILABLE, "no weekly flyers found")
			},
		}

		stderr := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: stderr,
			Source: source,
		}

		cmd := &main.FetchCmd{Location: "fmi-bistro"}
		err := cmd.Run(deps)

		require.Error(t, err)
		assert.Equal(t, mensa.EUNAVAILABLE, mensa.ErrorCode(err))
		assert.Contains(t, stderr.String(), "no weekly flyers found")
	})
}

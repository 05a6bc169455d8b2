package fetch_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensa-dev/mensa"
	"github.com/mensa-dev/mensa/fetch"
	"github.com/mensa-dev/mensa/mock"
)

func TestMedizinerSource_Menus(t *testing.T) {
	t.Parallel()

	newSource := func(page string) *fetch.MedizinerSource {
		s := fetch.NewMedizinerSource(&mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) {
				return page, nil
			},
			FetchBytesFn: func(ctx context.Context, url string) ([]byte, error) {
				return []byte(url), nil
			},
		}, &mock.PDFConverter{
			ConvertFirstPageFn: func(ctx context.Context, pdf []byte) (string, error) {
				return string(pdf), nil
			},
		})
		s.URL = "https://hospital.test/startseite/"
		s.Parser = weekParser()
		return s
	}

	t.Run("parses the single linked plan", func(t *testing.T) {
		t.Parallel()

		s := newSource(`<html><body>
<a href="/Mensaplan/KW_46_Herbst_4_Mensa_2017.pdf">Speiseplan</a>
</body></html>`)

		menus, err := s.Menus(context.Background())
		require.NoError(t, err)
		require.Len(t, menus, 1)
		assert.Contains(t, menus, mensa.Date(2017, time.November, 13)) // Monday of 2017-W46
	})

	t.Run("expands 2-digit years", func(t *testing.T) {
		t.Parallel()

		s := newSource(`<html><body>
<a href="/Mensaplan/KW_50_Winter_1_Mensa_-18.pdf">Speiseplan</a>
</body></html>`)

		menus, err := s.Menus(context.Background())
		require.NoError(t, err)
		require.Len(t, menus, 1)
		assert.Contains(t, menus, mensa.Date(2018, time.December, 10)) // Monday of 2018-W50
	})

	t.Run("fails without a plan link", func(t *testing.T) {
		t.Parallel()

		s := newSource("<html><body><p>kein Plan</p></body></html>")

		_, err := s.Menus(context.Background())
		require.Error(t, err)
		assert.Equal(t, mensa.ENOTFOUND, mensa.ErrorCode(err))
	})

	t.Run("fails when several plans are linked", func(t *testing.T) {
		t.Parallel()

		s := newSource(`<html><body>
<a href="/Mensaplan/KW_46_Herbst_4_Mensa_2017.pdf">eins</a>
<a href="/Mensaplan/KW_47_Herbst_5_Mensa_2017.pdf">zwei</a>
</body></html>`)

		_, err := s.Menus(context.Background())
		require.Error(t, err)
		assert.Equal(t, mensa.ENOTFOUND, mensa.ErrorCode(err))
	})
}

package pdftotext_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mensa-dev/mensa"
	"github.com/mensa-dev/mensa/pdftotext"
)

// fakeBinary installs a shell script standing in for pdftotext. It copies
// the input file to the output file and appends a marker when invoked with
// the first-page flag, so tests can observe the exact invocation.
func fakeBinary(t *testing.T) string {
	t.Helper()
	script := `#!/bin/sh
prev=""; out=""
for a in "$@"; do prev="$out"; out="$a"; done
cp "$prev" "$out"
if [ "$1" = "-l" ]; then printf '\n[first page only]' >> "$out"; fi
`
	path := filepath.Join(t.TempDir(), "pdftotext")
	require.NoError(t, os.WriteFile(path, []byte(script), 0755))
	return path
}

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	c := pdftotext.NewConverter()
	c.Binary = fakeBinary(t)

	text, err := c.Convert(context.Background(), []byte("weekly menu table"))
	require.NoError(t, err)
	assert.Equal(t, "weekly menu table", text)
}

func TestConverter_ConvertFirstPage(t *testing.T) {
	t.Parallel()

	c := pdftotext.NewConverter()
	c.Binary = fakeBinary(t)

	text, err := c.ConvertFirstPage(context.Background(), []byte("weekly menu table"))
	require.NoError(t, err)
	assert.Contains(t, text, "weekly menu table")
	assert.Contains(t, text, "[first page only]")
}

func TestConverter_MissingBinary(t *testing.T) {
	t.Parallel()

	c := pdftotext.NewConverter()
	c.Binary = filepath.Join(t.TempDir(), "no-such-binary")

	_, err := c.Convert(context.Background(), []byte("%PDF-1.4"))
	require.Error(t, err)
	assert.Equal(t, mensa.EUNAVAILABLE, mensa.ErrorCode(err))
}

func TestConverter_Canceled(t *testing.T) {
	t.Parallel()

	c := pdftotext.NewConverter()
	c.Binary = fakeBinary(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Convert(ctx, []byte("weekly menu table"))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}

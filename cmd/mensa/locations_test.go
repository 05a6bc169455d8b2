package main_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	main "github.com/mensa-dev/mensa/cmd/mensa"
)

func TestLocationsCmd_Run(t *testing.T) {
	t.Parallel()

	stdout := &bytes.Buffer{}
	deps := &main.Dependencies{
		Ctx:    context.Background(),
		Stdout: stdout,
		Stderr: &bytes.Buffer{},
	}

	cmd := &main.LocationsCmd{}
	err := cmd.Run(deps)

	require.NoError(t, err)
	output := stdout.String()
	assert.Contains(t, output, "mensa-garching  422")
	assert.Contains(t, output, "stucafe-garching  524")
	assert.Contains(t, output, "fmi-bistro")
	assert.Contains(t, output, "ipp-bistro")
	assert.Contains(t, output, "mediziner-mensa")
}

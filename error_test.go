package mensa_test

import (
	"errors"
	"testing"

	"github.com/mensa-dev/mensa"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := mensa.Errorf(mensa.ENOTFOUND, "location %q not found", "test")

	assert.Equal(t, mensa.ENOTFOUND, mensa.ErrorCode(err))
	assert.Equal(t, "location \"test\" not found", mensa.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, mensa.ErrorCode(nil))
}

func TestErrorCode_NonApplicationError(t *testing.T) {
	t.Parallel()

	assert.Equal(t, mensa.EINTERNAL, mensa.ErrorCode(errors.New("boom")))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, mensa.ErrorMessage(nil))
}

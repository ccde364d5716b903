package flexlist_test

import (
	"fmt"
	"testing"

	"github.com/fwojciec/flexlist"
	"github.com/stretchr/testify/assert"
)

func TestErrorf(t *testing.T) {
	t.Parallel()

	err := flexlist.Errorf(flexlist.ENOTFOUND, "page %q not found", "test")

	assert.Equal(t, flexlist.ENOTFOUND, flexlist.ErrorCode(err))
	assert.Equal(t, "page \"test\" not found", flexlist.ErrorMessage(err))
}

func TestErrorCode_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, flexlist.ErrorCode(nil))
}

func TestErrorMessage_NilError(t *testing.T) {
	t.Parallel()

	assert.Empty(t, flexlist.ErrorMessage(nil))
}

func TestErrorCode_WrappedError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("extract: %w", flexlist.Errorf(flexlist.EMISSINGDATA, "data block not found"))

	assert.Equal(t, flexlist.EMISSINGDATA, flexlist.ErrorCode(err))
	assert.Equal(t, "data block not found", flexlist.ErrorMessage(err))
}

func TestErrorCode_ForeignError(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("disk full")

	assert.Equal(t, flexlist.EINTERNAL, flexlist.ErrorCode(err))
	assert.Equal(t, "Internal error.", flexlist.ErrorMessage(err))
}

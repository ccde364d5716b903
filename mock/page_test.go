package mock_test

import (
	"context"
	"testing"

	"github.com/fwojciec/flexlist"
	"github.com/fwojciec/flexlist/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFragmentWriter_WriteFragment(t *testing.T) {
	t.Parallel()

	t.Run("delegates to WriteFragmentFn", func(t *testing.T) {
		t.Parallel()

		var gotName string
		var gotHTML []byte
		w := &mock.FragmentWriter{
			WriteFragmentFn: func(_ context.Context, name string, html []byte) error {
				gotName = name
				gotHTML = html
				return nil
			},
		}

		err := w.WriteFragment(context.Background(), "Inventory", []byte("<div></div>"))

		require.NoError(t, err)
		assert.Equal(t, "Inventory", gotName)
		assert.Equal(t, []byte("<div></div>"), gotHTML)
	})
}

func TestPageSource_FindSource(t *testing.T) {
	t.Parallel()

	t.Run("returns the configured error", func(t *testing.T) {
		t.Parallel()

		s := &mock.PageSource{
			FindSourceFn: func(_ context.Context, name string) (string, error) {
				return "", flexlist.Errorf(flexlist.ENOTFOUND, "page %q not found", name)
			},
		}

		_, err := s.FindSource(context.Background(), "Missing")

		assert.Equal(t, flexlist.ENOTFOUND, flexlist.ErrorCode(err))
	})
}

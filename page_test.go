package flexlist_test

import (
	"testing"

	"github.com/fwojciec/flexlist"
	"github.com/stretchr/testify/assert"
)

func TestPage_Validate(t *testing.T) {
	t.Parallel()

	t.Run("requires a name", func(t *testing.T) {
		t.Parallel()

		p := &flexlist.Page{Source: "x"}

		assert.Equal(t, flexlist.EINVALID, flexlist.ErrorCode(p.Validate()))
	})

	t.Run("accepts an empty source", func(t *testing.T) {
		t.Parallel()

		p := &flexlist.Page{Name: "Inventory"}

		assert.NoError(t, p.Validate())
	})
}

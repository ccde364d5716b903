package flexlist_test

import (
	"encoding/json"
	"testing"

	"github.com/fwojciec/flexlist"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParsePageSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want flexlist.PageSize
		ok   bool
	}{
		{"20", 20, true},
		{" 50 ", 50, true},
		{"All", flexlist.PageSizeAll, true},
		{"all", flexlist.PageSizeAll, true},
		{"0", 0, false},
		{"-5", 0, false},
		{"ten", 0, false},
		{"", 0, false},
	}

	for _, tt := range tests {
		got, ok := flexlist.ParsePageSize(tt.in)
		assert.Equal(t, tt.ok, ok, "input %q", tt.in)
		if tt.ok {
			assert.Equal(t, tt.want, got, "input %q", tt.in)
		}
	}
}

func TestSettings_Set(t *testing.T) {
	t.Parallel()

	t.Run("splits and trims pagination options", func(t *testing.T) {
		t.Parallel()

		s := flexlist.DefaultSettings()
		ok := s.Set("pagination_options", " 10, 25 ,All, 25, junk")

		assert.True(t, ok)
		assert.Equal(t, []flexlist.PageSize{10, 25, flexlist.PageSizeAll}, s.PaginationOptions)
	})

	t.Run("falls back to 20 for invalid default", func(t *testing.T) {
		t.Parallel()

		s := flexlist.DefaultSettings()
		s.Set("pagination_default", "lots")

		assert.Equal(t, flexlist.DefaultPageSize, s.PaginationDefault)
	})

	t.Run("ignores unknown keys", func(t *testing.T) {
		t.Parallel()

		s := flexlist.DefaultSettings()
		ok := s.Set("theme", "dark")

		assert.False(t, ok)
		assert.Equal(t, flexlist.DefaultSettings(), s)
	})
}

func TestSettings_Normalize(t *testing.T) {
	t.Parallel()

	t.Run("appends default missing from options", func(t *testing.T) {
		t.Parallel()

		s := flexlist.Settings{PaginationOptions: []flexlist.PageSize{10, 30}, PaginationDefault: 20}
		s.Normalize()

		assert.Equal(t, []flexlist.PageSize{10, 30, 20}, s.PaginationOptions)
	})

	t.Run("leaves empty options alone", func(t *testing.T) {
		t.Parallel()

		s := flexlist.Settings{PaginationDefault: 20}
		s.Normalize()

		assert.Empty(t, s.PaginationOptions)
	})
}

func TestSettings_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(flexlist.DefaultSettings())
	require.NoError(t, err)

	assert.JSONEq(t, `{"paginationOptions":["20","50","100","All"],"paginationDefault":"20"}`, string(data))
}

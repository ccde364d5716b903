package goquery_test

import (
	"testing"

	"github.com/fwojciec/flexlist/goquery"
	"github.com/stretchr/testify/assert"
)

func TestStripper_Text(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		markup string
		want   string
	}{
		{name: "plain text is trimmed", markup: "  open \n", want: "open"},
		{name: "tags are removed", markup: `<a href="/x"><strong>Tokyo</strong></a>`, want: "Tokyo"},
		{name: "entities are decoded", markup: "R&amp;D", want: "R&D"},
		{name: "nested markup keeps text order", markup: "<span>red</span>, <em>blue</em>", want: "red, blue"},
		{name: "empty markup", markup: "", want: ""},
	}

	s := goquery.NewStripper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, s.Text(tt.markup))
		})
	}
}

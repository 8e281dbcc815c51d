package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Predator Elite FG", "predator-elite-fg"},
		{"  Home Jersey 2026/27  ", "home-jersey-2026-27"},
		{"Size 42", "size-42"},
		{"ALL CAPS", "all-caps"},
		{"multi---dash  name", "multi-dash-name"},
		{"trailing! ", "trailing"},
		{"", ""},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

// internal/utils/slug_test.go
package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Winter Jackets", "winter-jackets"},
		{"Shoes", "shoes"},
		{"  Trimmed  Name  ", "trimmed-name"},
		{"Kids' T-Shirts & More", "kids-t-shirts-more"},
		{"Déjà Vu", "dj-vu"},
		{"already-slugged", "already-slugged"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Slugify(tc.in), "Slugify(%q)", tc.in)
	}
}

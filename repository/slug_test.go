package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Test Villa", "test-villa"},
		{"  Château Élysée!! ", "chateau-elysee"},
		{"Hello---World", "hello-world"},
		{"100% Ocean-View Estate", "100-ocean-view-estate"},
		{"Penthouse #42, Miami Beach", "penthouse-42-miami-beach"},
		{"", ""},
		{"!!!", ""},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			assert.Equal(t, tc.want, Slugify(tc.in))
		})
	}
}

func TestRecordSlugAvoidsRouteSegments(t *testing.T) {
	assert.Equal(t, "admin-1", recordSlug("Admin"))
	assert.Equal(t, "admin-1", recordSlug(" ADMIN! "))
	assert.Equal(t, "admin-suite", recordSlug("Admin Suite"))
}

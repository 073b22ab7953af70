package slug_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/estatedesk-api/pkg/slug"
)

func TestMake(t *testing.T) {
	cases := map[string]string{
		"North Zone":               "north-zone",
		"  Leading and trailing  ": "leading-and-trailing",
		"Café Olé":                 "cafe-ole",
		"Tower A-12 Main Street":   "tower-a-12-main-street",
		"O'Brien's Place":          "obriens-place",
		"under_score  --  dash":    "under-score-dash",
		"Flat 3, 10 High St.":      "flat-3-10-high-st",
		"":                         "",
		"!!!":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, slug.Make(in), "entrada %q", in)
	}
}

func TestWithSuffix(t *testing.T) {
	assert.Equal(t, "north", slug.WithSuffix("north", 0))
	assert.Equal(t, "north", slug.WithSuffix("north", 1))
	assert.Equal(t, "north-2", slug.WithSuffix("north", 2))
	assert.Equal(t, "north-10", slug.WithSuffix("north", 10))
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Butterfly Tenergy 05":    "butterfly-tenergy-05",
		"Stiga Clipper CR (WRB)":  "stiga-clipper-cr-wrb",
		"  DHS Hurricane 3  ":     "dhs-hurricane-3",
		"Ma Long":                 "ma-long",
		"Donic Bluefire M1 Turbo": "donic-bluefire-m1-turbo",
		"---":                     "",
	}

	for input, want := range cases {
		assert.Equal(t, want, Slugify(input), "input %q", input)
	}
}

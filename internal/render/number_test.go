package render

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatFloat(t *testing.T) {
	for name, tt := range map[string]struct {
		v      float64
		expect string
	}{
		"integral":       {v: 3, expect: "3.0"},
		"ten":            {v: 10, expect: "10.0"},
		"fraction":       {v: 0.1, expect: "0.1"},
		"negative":       {v: -2.5, expect: "-2.5"},
		"third":          {v: 1.0 / 3, expect: "0.3333333333333333"},
		"lower bound":    {v: 0.001, expect: "0.001"},
		"below bound":    {v: 0.0001, expect: "1.0E-4"},
		"upper bound":    {v: 1e7, expect: "1.0E7"},
		"large":          {v: 12345678, expect: "1.2345678E7"},
		"just below 1e7": {v: 9999999, expect: "9999999.0"},
		"negative large": {v: -3e20, expect: "-3.0E20"},
		"zero":           {v: 0, expect: "0.0"},
		"negative zero":  {v: math.Copysign(0, -1), expect: "-0.0"},
		"nan":            {v: math.NaN(), expect: "NaN"},
		"inf":            {v: math.Inf(1), expect: "Infinity"},
		"negative inf":   {v: math.Inf(-1), expect: "-Infinity"},
	} {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.expect, FormatFloat(tt.v))
		})
	}
}

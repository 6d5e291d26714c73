package comparing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPercentChange(t *testing.T) {
	tests := []struct {
		name     string
		current  float64
		previous float64
		expected float64
	}{
		{name: "alta de 10%", current: 110, previous: 100, expected: 10.0},
		{name: "queda de 10%", current: 90, previous: 100, expected: -10.0},
		{name: "base zero reporta 0%", current: 123.45, previous: 0, expected: 0},
		{name: "base zero com corrente zero", current: 0, previous: 0, expected: 0},
		{name: "dobro é +101%", current: 9045, previous: 4500, expected: 101.0},
		{name: "sem variação", current: 50, previous: 50, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, PercentChange(tt.current, tt.previous), 1e-9)
		})
	}
}

func TestSign(t *testing.T) {
	assert.Equal(t, "+", Sign(3.2))
	assert.Equal(t, "-", Sign(-0.1))
	assert.Equal(t, "", Sign(0))
}

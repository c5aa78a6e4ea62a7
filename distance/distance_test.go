package distance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSquaredL2Uint8(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []uint8
		expected float64
	}{
		{"Simple", []uint8{1, 2, 3}, []uint8{4, 5, 6}, 27},
		{"Identical", []uint8{1, 2, 3}, []uint8{1, 2, 3}, 0},
		{"Empty", []uint8{}, []uint8{}, 0},
		{"Single", []uint8{2}, []uint8{5}, 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, SquaredL2(tt.a, tt.b), 1e-9)
		})
	}
}

func TestSquaredL2Float32(t *testing.T) {
	a := []float32{1, -1, 2}
	b := []float32{1, 1, -2}
	assert.InDelta(t, float64(20), SquaredL2(a, b), 1e-9)
}

func TestSquaredL2Symmetric(t *testing.T) {
	a := []uint8{10, 200, 3}
	b := []uint8{250, 1, 9}
	assert.Equal(t, SquaredL2(a, b), SquaredL2(b, a))
}

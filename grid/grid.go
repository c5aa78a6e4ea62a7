package grid

import "github.com/hupe1980/gridvamana/distance"

// Cell is a D-tuple of integer grid coordinates, D ∈ {2, 3}.
type Cell []int32

// Map fixes a grid over a D-dimensional coordinate space: grid_size cells
// per axis, each cell_size coordinate units wide. grid_size * cell_size
// covers the declared coordinate range; coordinates beyond that range clamp
// into the last cell.
type Map struct {
	GridSize int32
	CellSize int32
	Dim      int
}

// New constructs a Map, validating that both parameters are positive.
func New(gridSize, cellSize int32, dim int) Map {
	if gridSize <= 0 || cellSize <= 0 || dim <= 0 {
		panic("grid: gridSize, cellSize and dim must be positive")
	}
	return Map{GridSize: gridSize, CellSize: cellSize, Dim: dim}
}

// CellOf maps a point's coordinates to its grid cell, clamping any axis
// whose quotient would exceed GridSize-1.
func CellOf[T distance.Elem](m Map, point []T) Cell {
	c := make(Cell, m.Dim)
	for i := 0; i < m.Dim; i++ {
		v := int32(point[i]) / m.CellSize
		if v >= m.GridSize {
			v = m.GridSize - 1
		}
		c[i] = v
	}
	return c
}

// Chebyshev returns max_i |a_i - b_i| between two cells of equal dimension.
func Chebyshev(a, b Cell) int {
	max := 0
	for i := range a {
		d := int(a[i]) - int(b[i])
		if d < 0 {
			d = -d
		}
		if d > max {
			max = d
		}
	}
	return max
}

// StratumOf returns the Chebyshev stratum of point q relative to point p:
// the Chebyshev distance between their grid cells.
func StratumOf[T distance.Elem](m Map, p, q []T) int {
	return Chebyshev(CellOf(m, p), CellOf(m, q))
}

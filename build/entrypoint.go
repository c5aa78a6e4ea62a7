package build

import (
	"context"

	"github.com/hupe1980/gridvamana/beam"
	"github.com/hupe1980/gridvamana/distance"
)

// beamSearchNearest runs a beam search for qv seeded from seed, at list size
// R*4, returning the single nearest result. Used by connectivity repair to
// find the nearest vertex reachable from seed.
func beamSearchNearest[T distance.Elem](b *Builder[T], qv []T, seed uint32) ([]beam.Result, []beam.Result, beam.Stats, error) {
	l := b.opts.R * 4
	if l < 1 {
		l = 1
	}
	return beam.Search[T](qv, []uint32{seed}, l, 1, b.graph, b.points)
}

// centroid returns the per-coordinate mean of every stored point, rounded
// (and, for unsigned element types, clamped) back into T.
func (b *Builder[T]) centroid() []T {
	n := b.points.Len()
	d := b.points.Dim()

	sum := make([]float64, d)
	for i := 0; i < n; i++ {
		pv := b.points.At(i)
		for j, v := range pv {
			sum[j] += float64(v)
		}
	}

	out := make([]T, d)
	for j := range sum {
		out[j] = roundElem[T](sum[j] / float64(n))
	}
	return out
}

func roundElem[T distance.Elem](v float64) T {
	var zero T
	switch any(zero).(type) {
	case uint8:
		if v < 0 {
			v = 0
		}
		if v > 255 {
			v = 255
		}
		return T(v + 0.5)
	default:
		return T(v)
	}
}

// selectEntryPoint computes the centroid of all points and beam-searches for
// it from a small random seed set at list size 4R, recording the nearest
// stored point as the build's entry point (§4.6 Entry-point selection).
func (b *Builder[T]) selectEntryPoint(ctx context.Context) (uint32, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	cv := b.centroid()
	n := b.points.Len()

	const seedCount = 4
	seeds := make([]uint32, 0, seedCount)
	b.randMu.Lock()
	for len(seeds) < seedCount && len(seeds) < n {
		id := uint32(b.rng.Intn(n))
		dup := false
		for _, s := range seeds {
			if s == id {
				dup = true
				break
			}
		}
		if !dup {
			seeds = append(seeds, id)
		}
	}
	b.randMu.Unlock()

	l := b.opts.R * 4
	if l < 1 {
		l = 1
	}
	_, pool, _, err := beam.Search[T](cv, seeds, l, 1, b.graph, b.points)
	if err != nil {
		return 0, err
	}
	if len(pool) == 0 {
		return 0, beam.ErrInvalidSeed
	}
	return pool[0].ID, nil
}

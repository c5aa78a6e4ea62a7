package build

import (
	"errors"
	"fmt"
)

// ErrConfigError is the sentinel wrapped by every configuration validation
// failure (§7 ConfigError): overlapping shells, stage budgets exceeding
// R*slack, non-positive list sizes, or a stage list size beyond BuildL.
var ErrConfigError = errors.New("build: invalid configuration")

// Options configures a Builder. The zero value is never valid; construct
// via DefaultOptions and override individual fields.
type Options struct {
	// R is the final per-vertex out-degree cap.
	R int
	// BuildL is the global cap on beam-search list size during build
	// (max_i L_i); every stage's L must not exceed it.
	BuildL int
	// Alpha is the default pruning parameter, used for back-edge capacity
	// pruning and as a fallback for any stage whose Alpha is not positive.
	Alpha float64
	// GridSize, CellSize parameterize the grid map; their product must
	// cover the coordinate range (upper cells clamp any residual).
	GridSize, CellSize int32
	// Dim is the point dimension the grid operates over (2 or 3).
	Dim int
	// Stages is the declared stage policy, executed in order.
	Stages []StagePolicy
	// Slack is the transient per-vertex overflow multiplier during build
	// (§3 Graph invariants); the capacity ceiling is floor(R*Slack).
	Slack float64
	// NumThreads is the build worker pool size.
	NumThreads int
	// TwoPass re-runs the per-point procedure a second time over the
	// richer graph context the first pass produced, tightening long edges
	// when Alpha > 1 (§4.6 Termination). Recommended default: true.
	TwoPass bool
	// SaturateGraph, when true, fills adj(p) up to R by appending unpruned
	// next-closest candidates before the final truncation step; adj(p) stays
	// below R when the candidate set runs out first.
	SaturateGraph bool
	// Seed fixes the build's random sampling (initial bootstrap edges,
	// per-point seed-set sampling). With NumThreads == 1 the same Seed
	// reproduces the same graph; with more workers the result also depends
	// on goroutine scheduling and is not reproducible.
	Seed int64
}

// DefaultOptions returns R=32, Alpha=1.2 and NumThreads=1 (the baseline the
// original command-line tools this system was distilled from used), the 2D
// stage policy, BuildL=300 so that the list sizes of both
// DefaultStagePolicy2D and DefaultStagePolicy3D fit under it, a two-pass
// build, and saturation off (§12).
func DefaultOptions(dim int) Options {
	return Options{
		R:          32,
		BuildL:     300,
		Alpha:      1.2,
		GridSize:   32,
		CellSize:   8,
		Dim:        dim,
		Stages:     DefaultStagePolicy2D(),
		Slack:      1.3,
		NumThreads: 1,
		TwoPass:    true,
		Seed:       1,
	}
}

// Validate checks the declared configuration against §7's ConfigError
// conditions.
func (o Options) Validate() error {
	if o.R <= 0 {
		return fmt.Errorf("%w: R must be positive, got %d", ErrConfigError, o.R)
	}
	if o.BuildL <= 0 {
		return fmt.Errorf("%w: build_L must be positive, got %d", ErrConfigError, o.BuildL)
	}
	if o.Slack < 1 {
		return fmt.Errorf("%w: slack must be >= 1, got %f", ErrConfigError, o.Slack)
	}
	if o.NumThreads <= 0 {
		return fmt.Errorf("%w: num_threads must be positive, got %d", ErrConfigError, o.NumThreads)
	}
	if o.Dim != 2 && o.Dim != 3 {
		return fmt.Errorf("%w: grid-aware build requires dim 2 or 3, got %d", ErrConfigError, o.Dim)
	}
	if o.GridSize <= 0 || o.CellSize <= 0 {
		return fmt.Errorf("%w: grid_size and cell_size must be positive", ErrConfigError)
	}
	if len(o.Stages) == 0 {
		return fmt.Errorf("%w: at least one stage is required", ErrConfigError)
	}

	budgetSum := 0
	for i, s := range o.Stages {
		if s.L <= 0 {
			return fmt.Errorf("%w: stage %d has non-positive list size %d", ErrConfigError, i+1, s.L)
		}
		if s.L > o.BuildL {
			return fmt.Errorf("%w: stage %d list size %d exceeds build_L %d", ErrConfigError, i+1, s.L, o.BuildL)
		}
		if s.R < 0 {
			return fmt.Errorf("%w: stage %d has negative edge budget %d", ErrConfigError, i+1, s.R)
		}
		budgetSum += s.R
		for j := i + 1; j < len(o.Stages); j++ {
			if s.Shell.Overlaps(o.Stages[j].Shell) {
				return fmt.Errorf("%w: stage %d and stage %d shells overlap", ErrConfigError, i+1, j+1)
			}
		}
	}
	if float64(budgetSum) > float64(o.R)*o.Slack {
		return fmt.Errorf("%w: sum of stage budgets %d exceeds R*slack %f", ErrConfigError, budgetSum, float64(o.R)*o.Slack)
	}
	return nil
}

// MaxStageL returns max_i L_i, the list size beam search runs at during the
// candidate-gathering step of the per-point procedure.
func (o Options) MaxStageL() int {
	max := 0
	for _, s := range o.Stages {
		if s.L > max {
			max = s.L
		}
	}
	return max
}

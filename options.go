package gridvamana

import (
	"github.com/hupe1980/gridvamana/build"
)

type options struct {
	buildOptions     build.Options
	metricsCollector MetricsCollector
	logger           *Logger
	searchL          int
}

// Option configures Build and Open behavior.
type Option func(*options)

// WithR sets the final per-vertex out-degree cap.
func WithR(r int) Option {
	return func(o *options) { o.buildOptions.R = r }
}

// WithBuildL sets the global beam-search list-size cap used while gathering
// candidates during build.
func WithBuildL(l int) Option {
	return func(o *options) { o.buildOptions.BuildL = l }
}

// WithAlpha sets the default alpha-prune parameter.
func WithAlpha(alpha float64) Option {
	return func(o *options) { o.buildOptions.Alpha = alpha }
}

// WithGrid sets the grid map's cell geometry.
func WithGrid(gridSize, cellSize int32) Option {
	return func(o *options) {
		o.buildOptions.GridSize = gridSize
		o.buildOptions.CellSize = cellSize
	}
}

// WithStages overrides the declared stage policy (L_i, R_i, alpha_i, shell_i
// per stage). Pass build.DefaultStagePolicy2D() or DefaultStagePolicy3D() to
// restore a shipped default after other overrides.
func WithStages(stages []build.StagePolicy) Option {
	return func(o *options) { o.buildOptions.Stages = stages }
}

// WithNumThreads sets the build worker pool size.
func WithNumThreads(n int) Option {
	return func(o *options) { o.buildOptions.NumThreads = n }
}

// WithTwoPass toggles the second construction pass (default true).
func WithTwoPass(twoPass bool) Option {
	return func(o *options) { o.buildOptions.TwoPass = twoPass }
}

// WithSaturateGraph toggles filling adj(p) up to R with unpruned
// next-closest candidates before truncation.
func WithSaturateGraph(saturate bool) Option {
	return func(o *options) { o.buildOptions.SaturateGraph = saturate }
}

// WithSeed fixes the build's random sampling. With one worker thread the same
// seed reproduces the same graph; with more, the result also depends on
// goroutine scheduling.
func WithSeed(seed int64) Option {
	return func(o *options) { o.buildOptions.Seed = seed }
}

// WithSearchL sets the default query-time beam-search list size used by
// Index.Search when the caller does not pass one explicitly.
func WithSearchL(l int) Option {
	return func(o *options) { o.searchL = l }
}

// WithMetricsCollector configures a metrics collector for build and search
// telemetry. Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) { o.metricsCollector = mc }
}

// WithLogger configures structured logging. Pass nil to disable logging.
func WithLogger(logger *Logger) Option {
	return func(o *options) { o.logger = logger }
}

func applyOptions(dim int, optFns []Option) options {
	o := options{
		buildOptions:     build.DefaultOptions(dim),
		metricsCollector: NoopMetricsCollector{},
		logger:           NoopLogger(),
		searchL:          100,
	}
	for _, fn := range optFns {
		if fn != nil {
			fn(&o)
		}
	}
	if o.metricsCollector == nil {
		o.metricsCollector = NoopMetricsCollector{}
	}
	if o.logger == nil {
		o.logger = NoopLogger()
	}
	return o
}

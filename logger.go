package gridvamana

import (
	"context"
	"log/slog"
	"os"

	"github.com/hupe1980/gridvamana/build"
)

// Logger wraps slog.Logger with gridvamana-specific context, giving
// consistent field names across build and search call sites.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a Logger with the given handler. If handler is nil, it
// falls back to a text handler on stderr at info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})
	}
	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that emits JSON-formatted logs at level.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NewTextLogger creates a Logger that emits human-readable text logs at level.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(1000)}))}
}

// WithStage adds a build stage field to the logger.
func (l *Logger) WithStage(stage int) *Logger {
	return &Logger{Logger: l.Logger.With("stage", stage)}
}

// WithPointID adds a point id field to the logger.
func (l *Logger) WithPointID(id uint32) *Logger {
	return &Logger{Logger: l.Logger.With("point_id", id)}
}

// WithK adds a neighbor-count field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{Logger: l.Logger.With("k", k)}
}

// LogBuildStart logs the start of a build over n points.
func (l *Logger) LogBuildStart(ctx context.Context, n, dim int) {
	l.InfoContext(ctx, "build started", "points", n, "dimension", dim)
}

// LogBuildComplete logs a finished build and its report.
func (l *Logger) LogBuildComplete(ctx context.Context, report build.BuildReport, err error) {
	if err != nil {
		l.ErrorContext(ctx, "build failed", "error", err)
		return
	}
	l.InfoContext(ctx, "build completed",
		"points", report.PointCount,
		"edges", report.EdgeCount,
		"connectivity_repairs", report.ConnectivityRepairs,
		"per_stage_edges", report.PerStageEdges,
	)
}

// LogBuildAbort logs the stage and point id a build aborted at (§7: build
// aborts report the stage and point id at which failure occurred).
func (l *Logger) LogBuildAbort(ctx context.Context, stage int, pointID uint32, err error) {
	l.ErrorContext(ctx, "build aborted", "stage", stage, "point_id", pointID, "error", err)
}

// LogSearch logs a completed search.
func (l *Logger) LogSearch(ctx context.Context, k, resultsFound int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "search failed", "k", k, "error", err)
		return
	}
	l.DebugContext(ctx, "search completed", "k", k, "results", resultsFound)
}

// LogSave logs a completed save to disk.
func (l *Logger) LogSave(ctx context.Context, dir string, err error) {
	if err != nil {
		l.ErrorContext(ctx, "save failed", "dir", dir, "error", err)
		return
	}
	l.InfoContext(ctx, "index saved", "dir", dir)
}

// LogLoad logs a completed load from disk.
func (l *Logger) LogLoad(ctx context.Context, dir string, n int, err error) {
	if err != nil {
		l.ErrorContext(ctx, "load failed", "dir", dir, "error", err)
		return
	}
	l.InfoContext(ctx, "index loaded", "dir", dir, "points", n)
}

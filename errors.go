package gridvamana

import (
	"context"
	"errors"
	"fmt"
	"io/fs"

	"github.com/hupe1980/gridvamana/beam"
	"github.com/hupe1980/gridvamana/build"
	"github.com/hupe1980/gridvamana/persist"
	"github.com/hupe1980/gridvamana/pointstore"
)

// MalformedInput indicates a point-data or graph file whose header disagrees
// with its body: size mismatch, vertex-count disagreement between the two
// files, or a stored degree exceeding R.
//
// The original underlying error can be accessed via errors.Unwrap.
type MalformedInput struct {
	Detail string
	cause  error
}

func (e *MalformedInput) Error() string { return fmt.Sprintf("malformed input: %s", e.Detail) }
func (e *MalformedInput) Unwrap() error { return e.cause }

// InvalidSeed indicates a beam search was asked to start from a seed id
// outside [0, N).
//
// The original underlying error can be accessed via errors.Unwrap.
type InvalidSeed struct {
	cause error
}

func (e *InvalidSeed) Error() string { return "invalid seed: id out of range" }
func (e *InvalidSeed) Unwrap() error { return e.cause }

// IoError wraps a filesystem failure encountered while loading or saving an
// index (permissions, missing file, short read).
//
// The original underlying error can be accessed via errors.Unwrap.
type IoError struct {
	Op    string
	cause error
}

func (e *IoError) Error() string { return fmt.Sprintf("io error during %s: %v", e.Op, e.cause) }
func (e *IoError) Unwrap() error { return e.cause }

// CancelRequested indicates a build was stopped by its cancellation signal
// before completing; the caller must discard the partial graph.
//
// The original underlying error can be accessed via errors.Unwrap.
type CancelRequested struct {
	cause error
}

func (e *CancelRequested) Error() string { return "cancel requested" }
func (e *CancelRequested) Unwrap() error { return e.cause }

// ConfigError indicates an invalid build configuration (overlapping stage
// shells, a stage list size beyond build_L, stage budgets exceeding R*slack,
// or another condition Options.Validate rejects) or an invalid query-time
// search parameter, such as a list size l smaller than the requested result
// count k.
//
// The original underlying error can be accessed via errors.Unwrap.
type ConfigError struct {
	Detail string
	cause  error
}

func (e *ConfigError) Error() string { return fmt.Sprintf("config error: %s", e.Detail) }
func (e *ConfigError) Unwrap() error { return e.cause }

// translateError normalizes sentinel errors raised by the subpackages into
// the taxonomy above, the way a caller of this package is expected to
// discriminate failures (errors.As, not string matching).
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return &CancelRequested{cause: err}
	}
	if errors.Is(err, beam.ErrInvalidSeed) {
		return &InvalidSeed{cause: err}
	}
	if errors.Is(err, build.ErrConfigError) {
		return &ConfigError{Detail: err.Error(), cause: err}
	}
	if errors.Is(err, build.ErrNoPoints) {
		return &ConfigError{Detail: err.Error(), cause: err}
	}
	if errors.Is(err, beam.ErrListTooSmall) {
		return &ConfigError{Detail: err.Error(), cause: err}
	}
	if errors.Is(err, pointstore.ErrSizeMismatch) ||
		errors.Is(err, persist.ErrBadMagic) ||
		errors.Is(err, persist.ErrUnknownVersion) ||
		errors.Is(err, persist.ErrCountMismatch) ||
		errors.Is(err, persist.ErrDegreeExceedsR) ||
		errors.Is(err, persist.ErrChecksum) {
		return &MalformedInput{Detail: err.Error(), cause: err}
	}

	var perr *fs.PathError
	if errors.As(err, &perr) {
		return &IoError{Op: perr.Op, cause: err}
	}

	return err
}

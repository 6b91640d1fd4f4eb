// Package acoveaerr defines the fatal error kinds the core can surface.
// Per-trial failures (a failed compile or a failed benchmark run) are
// never returned as Go errors from the engine; they are absorbed into a
// BOGUS fitness and reported through the progress sink instead.
package acoveaerr

import "errors"

// ErrConfigInvalid marks a target description that cannot be loaded or
// parsed into a valid Target. Fatal: the engine never constructs.
var ErrConfigInvalid = errors.New("acovea: target configuration is invalid")

// ErrShapeMismatch marks an attempt to breed or otherwise combine two
// chromosomes of unequal length or of differing per-position gene variant.
// Fatal: indicates a programmer bug, never a runtime condition a caller
// should retry.
var ErrShapeMismatch = errors.New("acovea: chromosome shape mismatch")

// ErrAborted marks a run terminated early because the progress sink
// requested termination. The engine emits whatever final report it can
// before returning this.
var ErrAborted = errors.New("acovea: run aborted by sink")

package domain

import "errors"

var (
	// ErrInvalidInput rejects malformed clustering parameters before any
	// computation proceeds: a row with fewer than two samples, a non-positive
	// bandwidth, or a degenerate sample count.
	ErrInvalidInput = errors.New("invalid clustering input")

	// ErrInconsistentDerivative marks an extremum candidate pair whose
	// derivative signs classify as neither local max nor local min. It
	// indicates numerical degeneracy or a pairing bug and is surfaced to the
	// caller, never coerced into a default label.
	ErrInconsistentDerivative = errors.New("inconsistent derivative sign pattern")

	ErrReportNotFound = errors.New("report not found")
	ErrLexiconEmpty   = errors.New("lexicon is empty")

	// ErrKernelFailure wraps failures of the external similarity service so
	// callers can distinguish them from local errors.
	ErrKernelFailure = errors.New("similarity kernel failed")
)

// Package nrpterr defines the error kinds used across the sampling driver
// and NRPT engine. Every kind wraps an underlying github.com/pkg/errors
// error so call sites keep the usual Wrap/Wrapf context chain while still
// being able to distinguish kinds with errors.As.
package nrpterr

import (
	stderrors "errors"

	"github.com/pkg/errors"
)

// Kind distinguishes the error categories from spec section 7.
type Kind int

const (
	// KindInvalidArgument covers eager validation failures: bad N, bad
	// discard/thinning, a non-monotone input ladder, N_tune<2. Raised
	// before any sampler call, no partial state.
	KindInvalidArgument Kind = iota
	// KindSamplerFailure surfaces from the sampler's step or model
	// evaluation, propagated unchanged other than added context.
	KindSamplerFailure
	// KindNumericFailure covers non-finite Lambda totals, monotonicity
	// violations during spline construction, and bisection failing to
	// bracket a root.
	KindNumericFailure
	// KindWorkerFailure is raised by the parallel drivers after all
	// already-dispatched workers have settled and the progress channel
	// has been closed.
	KindWorkerFailure
)

func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "InvalidArgument"
	case KindSamplerFailure:
		return "SamplerFailure"
	case KindNumericFailure:
		return "NumericFailure"
	case KindWorkerFailure:
		return "WorkerFailure"
	default:
		return "Unknown"
	}
}

// Error is the concrete type behind every error this package returns. The
// wrapped cause carries the usual pkg/errors message chain.
type Error struct {
	Kind  Kind
	cause error
}

func (e *Error) Error() string { return e.cause.Error() }
func (e *Error) Unwrap() error { return e.cause }

// InvalidArgument builds a KindInvalidArgument error.
func InvalidArgument(format string, args ...interface{}) error {
	return &Error{Kind: KindInvalidArgument, cause: errors.Errorf(format, args...)}
}

// SamplerFailure wraps err as a KindSamplerFailure, adding context.
func SamplerFailure(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindSamplerFailure, cause: errors.Wrapf(err, format, args...)}
}

// NumericFailure builds a KindNumericFailure error with no underlying cause.
func NumericFailure(format string, args ...interface{}) error {
	return &Error{Kind: KindNumericFailure, cause: errors.Errorf(format, args...)}
}

// WrapNumericFailure wraps err as a KindNumericFailure, adding context.
func WrapNumericFailure(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindNumericFailure, cause: errors.Wrapf(err, format, args...)}
}

// WorkerFailure wraps err as a KindWorkerFailure, adding context.
func WorkerFailure(err error, format string, args ...interface{}) error {
	return &Error{Kind: KindWorkerFailure, cause: errors.Wrapf(err, format, args...)}
}

// Is reports whether err is (or wraps) an *Error of the given kind.
func Is(err error, k Kind) bool {
	var e *Error
	if stderrors.As(err, &e) {
		return e.Kind == k
	}
	return false
}

// Wrap adds fmt.Sprintf context to err while preserving its Kind, if it has
// one; otherwise it behaves like errors.Wrapf.
func Wrap(err error, format string, args ...interface{}) error {
	var e *Error
	if stderrors.As(err, &e) {
		return &Error{Kind: e.Kind, cause: errors.Wrapf(err, format, args...)}
	}
	return errors.Wrapf(err, format, args...)
}

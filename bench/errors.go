package bench

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidSize is returned for sizes below 1. Nothing is allocated.
	ErrInvalidSize = errors.New("bench: size must be >= 1")

	// ErrNilTransform is returned when the transform has no function.
	ErrNilTransform = errors.New("bench: transform has no function")

	// ErrAllocation matches every *AllocationError.
	ErrAllocation = errors.New("bench: allocation failed")

	// ErrDomain matches every *DomainError.
	ErrDomain = errors.New("bench: transform undefined for input")

	// ErrStrategyMismatch matches every *MismatchError.
	ErrStrategyMismatch = errors.New("bench: strategies produced different outputs")
)

// AllocationError reports that the two sequences could not be reserved.
type AllocationError struct {
	Size  int
	Bytes int64 // estimated requirement, 0 if it overflows
	Limit int64
	Cause error
}

func (e *AllocationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("bench: allocation failed for size %d: %v", e.Size, e.Cause)
	}
	if e.Bytes == 0 {
		return fmt.Sprintf("bench: allocation failed for size %d: requirement overflows", e.Size)
	}
	return fmt.Sprintf("bench: allocation failed for size %d: needs %d bytes, limit %d", e.Size, e.Bytes, e.Limit)
}

func (e *AllocationError) Is(target error) bool { return target == ErrAllocation }

func (e *AllocationError) Unwrap() error { return e.Cause }

// DomainError reports the first input the transform is undefined at.
type DomainError struct {
	Transform string
	Index     int // -1 if a replay could not reproduce the failure
	Input     float64
	Output    float64 // the non-finite value, or NaN if the transform panicked
	Cause     error   // recovered panic, if any
}

func (e *DomainError) Error() string {
	if e.Index < 0 {
		return fmt.Sprintf("bench: %s undefined at an unknown input: %v", e.Transform, e.Cause)
	}
	if e.Cause != nil {
		return fmt.Sprintf("bench: %s undefined at input[%d] = %v: %v", e.Transform, e.Index, e.Input, e.Cause)
	}
	return fmt.Sprintf("bench: %s undefined at input[%d] = %v: got %v", e.Transform, e.Index, e.Input, e.Output)
}

func (e *DomainError) Is(target error) bool { return target == ErrDomain }

func (e *DomainError) Unwrap() error { return e.Cause }

// MismatchError reports the first index where two strategies disagree.
type MismatchError struct {
	Transform   string
	Index       int
	Plain       float64
	Accelerated float64
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("bench: %s strategies differ at [%d]: plain %v, accelerated %v",
		e.Transform, e.Index, e.Plain, e.Accelerated)
}

func (e *MismatchError) Is(target error) bool { return target == ErrStrategyMismatch }

// Kind names the failure class of err: "precondition", "allocation",
// "domain", "mismatch", or "" for anything else.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInvalidSize), errors.Is(err, ErrNilTransform):
		return "precondition"
	case errors.Is(err, ErrAllocation):
		return "allocation"
	case errors.Is(err, ErrDomain):
		return "domain"
	case errors.Is(err, ErrStrategyMismatch):
		return "mismatch"
	}
	return ""
}

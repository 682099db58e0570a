package render

import (
	"errors"
	"fmt"
)

var (
	// ErrAllocation indicates a pixel grid could not be acquired.
	ErrAllocation = errors.New("render: pixel grid allocation failed")

	// ErrMemoryBudget indicates a grid would exceed the allocator's budget.
	ErrMemoryBudget = errors.New("render: memory budget exceeded")

	// ErrGridSize indicates grid dimensions that cannot be represented.
	ErrGridSize = errors.New("render: invalid grid dimensions")

	// ErrNoSink indicates a Config without an output sink.
	ErrNoSink = errors.New("render: no output sink")

	// ErrUnknownStrategy indicates an unrecognised strategy name or value.
	ErrUnknownStrategy = errors.New("render: unknown strategy")
)

// AllocationError reports which grid request failed.
type AllocationError struct {
	// Worker is the index of the parallel worker whose grid failed, or -1
	// for the single grid of the sequential renderer.
	Worker  int
	Width   int
	Height  int
	Bytes   int64
	Wrapped error
}

func (e *AllocationError) Error() string {
	if e.Worker < 0 {
		return fmt.Sprintf("allocate %dx%d grid (%d bytes): %v", e.Width, e.Height, e.Bytes, e.Wrapped)
	}
	return fmt.Sprintf("allocate %dx%d grid for worker %d (%d bytes): %v", e.Width, e.Height, e.Worker, e.Bytes, e.Wrapped)
}

func (e *AllocationError) Unwrap() error {
	return e.Wrapped
}

func newAllocationError(worker, width, height int, err error) *AllocationError {
	if !errors.Is(err, ErrAllocation) {
		err = fmt.Errorf("%w: %w", ErrAllocation, err)
	}
	return &AllocationError{
		Worker:  worker,
		Width:   width,
		Height:  height,
		Bytes:   GridBytes(width, height),
		Wrapped: err,
	}
}

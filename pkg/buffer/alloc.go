package buffer

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// MinAlloc is the smallest allocation a growing buffer moves to.
	MinAlloc = 256
	// GrowthCeiling bounds the exponential growth step. Past it the buffer
	// grows linearly by this amount.
	GrowthCeiling = 8 << 20
	// Alignment is the granularity of every allocation size.
	Alignment = 8

	maxAllocSize = math.MaxInt &^ (Alignment - 1)
)

// ErrAllocation is returned, wrapped, whenever backing memory cannot be
// obtained. It is the only error a Buffer produces.
var ErrAllocation = errors.New("buffer: allocation failed")

// Allocator provides backing memory. Alloc must return a zeroed slice of at
// least size bytes, or an error.
type Allocator interface {
	Alloc(size int) ([]byte, error)
}

// HeapAllocator allocates from the Go heap. A positive Limit caps the size of
// a single allocation.
type HeapAllocator struct {
	Limit int
}

// Alloc implements Allocator. Sizes the runtime refuses are reported as
// ErrAllocation instead of panicking; exhausting memory is still fatal.
func (a HeapAllocator) Alloc(size int) (data []byte, err error) {
	if size < 0 {
		return nil, errors.Wrapf(ErrAllocation, "negative size %d", size)
	}
	if a.Limit > 0 && size > a.Limit {
		return nil, errors.Wrapf(ErrAllocation, "%d bytes exceeds limit of %d", size, a.Limit)
	}
	defer func() {
		if r := recover(); r != nil {
			data, err = nil, errors.Wrapf(ErrAllocation, "%d bytes: %v", size, r)
		}
	}()
	return make([]byte, size), nil
}

func allocFailure(err error, cur, size int) error {
	if !errors.Is(err, ErrAllocation) {
		err = errors.Wrap(ErrAllocation, err.Error())
	}
	return errors.Wrapf(err, "grow buffer from %d to %d bytes", cur, size)
}

// nextAllocSize applies the growth policy to a current allocation of cur
// bytes that must become at least req bytes.
func nextAllocSize(cur, req int) (int, bool) {
	if req < 0 || req > maxAllocSize {
		return 0, false
	}

	var size int
	switch {
	case cur <= MinAlloc:
		size = max(req, MinAlloc)
	case cur < GrowthCeiling:
		size = max(req, min(cur*2, GrowthCeiling))
	case cur <= maxAllocSize-GrowthCeiling:
		size = max(req, cur+GrowthCeiling)
	default:
		size = req
	}
	return alignUp(size), true
}

func alignUp(n int) int {
	return (n + Alignment - 1) &^ (Alignment - 1)
}

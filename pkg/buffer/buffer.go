// Package buffer implements the output region every encoder in this module
// writes into.
//
// A Buffer exposes two write disciplines on the same type. The bounds-checked
// methods (Reserve, Append, AppendString, PushBack, Write) grow the allocation
// on demand and are always safe. The deferred-check methods (UnsafePushBack,
// UnsafeAppend, UnsafeAppendString, UnsafeSetEnd, Tail) skip the capacity test
// and are only valid inside the margin guaranteed by the last reservation:
// Reserve(n) guarantees n + UnsafeLevel writable bytes past the content end.
//
// Building with the jwdebug tag turns on assertions that panic when a
// deferred-check write leaves the reserved margin.
package buffer

import (
	"fmt"
	"io"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
)

// Buffer is a contiguous byte region with three positions: the start (always
// offset 0), the content end and the capacity end. The byte at the capacity
// end is a zero sentinel that is never handed out as capacity.
//
// A Buffer is owned by a single writer; it has no internal locking.
type Buffer struct {
	data   []byte // len(data) is the allocation size
	end    int    // one past the last content byte
	capEnd int    // one past the last usable byte, data[capEnd] is the sentinel
	limit  int    // deferred writes must stay below this, set by Reserve
	margin int    // unsafe level

	alloc  Allocator
	logger zerolog.Logger
}

// Option configures a Buffer at construction.
type Option func(*Buffer)

// WithUnsafeLevel sets the number of extra deferred-check bytes every
// reservation guarantees.
func WithUnsafeLevel(n int) Option {
	return func(b *Buffer) {
		if n > 0 {
			b.margin = n
		}
	}
}

// WithAllocator replaces the default heap allocator.
func WithAllocator(a Allocator) Option {
	return func(b *Buffer) {
		if a != nil {
			b.alloc = a
		}
	}
}

// WithLogger sets the logger used for growth events.
func WithLogger(logger zerolog.Logger) Option {
	return func(b *Buffer) {
		b.logger = logger
	}
}

// New allocates a Buffer able to hold at least capacity content bytes.
// A zero capacity is valid; the sentinel byte is allocated regardless.
func New(capacity int, opts ...Option) (*Buffer, error) {
	b := &Buffer{
		alloc:  HeapAllocator{},
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(b)
	}

	if capacity < 0 || capacity >= maxAllocSize {
		return nil, errors.Wrapf(ErrAllocation, "invalid initial capacity %d", capacity)
	}
	size := alignUp(capacity + 1)
	data, err := b.alloc.Alloc(size)
	if err != nil {
		return nil, allocFailure(err, 0, size)
	}
	if len(data) < size {
		return nil, errors.Wrapf(ErrAllocation, "allocator returned %d bytes, want %d", len(data), size)
	}
	b.setData(data)
	return b, nil
}

func (b *Buffer) setData(data []byte) {
	b.data = data
	b.capEnd = len(data) - 1
	b.data[b.capEnd] = 0
}

// Reserve makes room for n more content bytes plus the unsafe margin. It never
// shrinks the allocation and is a no-op when the room already exists. After a
// successful call up to n + UnsafeLevel bytes may be written with the
// deferred-check methods.
func (b *Buffer) Reserve(n int) error {
	if n < 0 || n > maxAllocSize-1-b.end-b.margin {
		return errors.Wrapf(ErrAllocation, "cannot reserve %d bytes after %d", n, b.end)
	}
	need := b.end + n + b.margin
	if need > b.capEnd {
		if err := b.grow(need + 1); err != nil {
			return err
		}
	}
	b.limit = need
	return nil
}

// grow reallocates so that the allocation holds at least req bytes. The
// content is copied and the sentinel re-established; on failure the buffer is
// left untouched.
func (b *Buffer) grow(req int) error {
	cur := len(b.data)
	size, ok := nextAllocSize(cur, req)
	if !ok {
		return errors.Wrapf(ErrAllocation, "requested %d bytes", req)
	}

	data, err := b.alloc.Alloc(size)
	if err != nil {
		b.logger.Error().Err(err).Int("cur", cur).Int("req", req).Int("new", size).Msg("Buffer growth failed")
		return allocFailure(err, cur, size)
	}
	if len(data) < size {
		return errors.Wrapf(ErrAllocation, "allocator returned %d bytes, want %d", len(data), size)
	}

	copy(data, b.data[:b.end])
	b.setData(data)

	b.logger.Debug().Int("cur", cur).Int("req", req).Int("new", len(data)).Msg("Buffer grown")
	return nil
}

// Append copies p to the end of the buffer, growing it if needed.
func (b *Buffer) Append(p []byte) error {
	if err := b.Reserve(len(p)); err != nil {
		return err
	}
	b.end += copy(b.data[b.end:], p)
	return nil
}

// AppendString is Append for strings.
func (b *Buffer) AppendString(s string) error {
	if err := b.Reserve(len(s)); err != nil {
		return err
	}
	b.end += copy(b.data[b.end:], s)
	return nil
}

// PushBack appends a single byte, growing the buffer if needed.
func (b *Buffer) PushBack(c byte) error {
	if err := b.Reserve(1); err != nil {
		return err
	}
	b.data[b.end] = c
	b.end++
	return nil
}

// Write implements io.Writer.
func (b *Buffer) Write(p []byte) (int, error) {
	if err := b.Append(p); err != nil {
		return 0, err
	}
	return len(p), nil
}

// WriteTo writes the content to w.
func (b *Buffer) WriteTo(w io.Writer) (int64, error) {
	n, err := w.Write(b.data[:b.end])
	return int64(n), err
}

// UnsafePushBack appends c without checking capacity.
func (b *Buffer) UnsafePushBack(c byte) {
	if debugAssertions {
		b.assertWithin(b.end + 1)
	}
	b.data[b.end] = c
	b.end++
}

// UnsafeAppend appends p without checking capacity.
func (b *Buffer) UnsafeAppend(p []byte) {
	if debugAssertions {
		b.assertWithin(b.end + len(p))
	}
	b.end += copy(b.data[b.end:b.end+len(p)], p)
}

// UnsafeAppendString appends s without checking capacity.
func (b *Buffer) UnsafeAppendString(s string) {
	if debugAssertions {
		b.assertWithin(b.end + len(s))
	}
	b.end += copy(b.data[b.end:b.end+len(s)], s)
}

// UnsafeSetEnd moves the content end to end, committing bytes that were
// written through Tail. end must lie within the last reservation.
func (b *Buffer) UnsafeSetEnd(end int) {
	if debugAssertions {
		if end < 0 {
			panic(fmt.Sprintf("buffer: content end %d is negative", end))
		}
		b.assertWithin(end)
	}
	b.end = end
}

// Tail returns the writable region between the content end and the capacity
// end. It is invalidated by any call that may grow the buffer.
func (b *Buffer) Tail() []byte {
	return b.data[b.end:b.capEnd:b.capEnd]
}

func (b *Buffer) assertWithin(pos int) {
	if pos > b.limit {
		panic(fmt.Sprintf("buffer: deferred write to offset %d passes reserved limit %d (capacity %d, unsafe level %d)",
			pos, b.limit, b.capEnd, b.margin))
	}
}

// Reset empties the buffer. The allocation is kept.
func (b *Buffer) Reset() {
	b.end = 0
	b.limit = 0
}

// Len returns the number of content bytes.
func (b *Buffer) Len() int { return b.end }

// Cap returns the number of bytes usable for content.
func (b *Buffer) Cap() int { return b.capEnd }

// AllocSize returns the size of the backing allocation, sentinel included.
func (b *Buffer) AllocSize() int { return len(b.data) }

// End returns the content end offset.
func (b *Buffer) End() int { return b.end }

// CapEnd returns the capacity end offset, where the sentinel lives.
func (b *Buffer) CapEnd() int { return b.capEnd }

// UnsafeLevel returns the margin every reservation adds.
func (b *Buffer) UnsafeLevel() int { return b.margin }

// Bytes returns the content. The slice aliases the buffer.
func (b *Buffer) Bytes() []byte { return b.data[:b.end] }

// String returns a copy of the content.
func (b *Buffer) String() string { return string(b.data[:b.end]) }

// CString returns the content followed by a zero byte. The zero is written at
// the content end, which is either spare capacity or the sentinel itself.
func (b *Buffer) CString() []byte {
	b.data[b.end] = 0
	return b.data[:b.end+1]
}

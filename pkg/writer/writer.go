// Package writer emits single JSON values into a buffer.Buffer.
//
// It is the layer that applies the caller-facing switches: whether numbers
// are quoted as strings and which escape policy strings and keys go through.
// Each numeric value costs one bounds-checked reservation; the digits
// themselves are written with deferred-check writes.
package writer

import (
	"math"

	"github.com/BLAZED-sh/jsonwriter/pkg/buffer"
	"github.com/BLAZED-sh/jsonwriter/pkg/escape"
	"github.com/BLAZED-sh/jsonwriter/pkg/floatconv"
	"github.com/BLAZED-sh/jsonwriter/pkg/intconv"
)

// Options configures a Writer.
type Options struct {
	// QuoteNumbers wraps every number in double quotes. Non-finite floats
	// are still written as a bare null.
	QuoteNumbers bool
	// Escape decides how keys and string values are escaped.
	Escape escape.Policy
}

// DefaultOptions writes bare numbers and escapes with the table transform.
func DefaultOptions() Options {
	return Options{Escape: escape.DefaultPolicy()}
}

// Writer writes JSON values into a buffer it does not own.
type Writer struct {
	buf  *buffer.Buffer
	opts Options
}

// New returns a Writer appending to buf.
func New(buf *buffer.Buffer, opts Options) *Writer {
	return &Writer{buf: buf, opts: opts}
}

// Buffer returns the destination buffer.
func (w *Writer) Buffer() *buffer.Buffer {
	return w.buf
}

// Options returns the writer's configuration.
func (w *Writer) Options() Options {
	return w.opts
}

func (w *Writer) Null() error {
	return w.buf.AppendString("null")
}

func (w *Writer) Bool(v bool) error {
	if v {
		return w.buf.AppendString("true")
	}
	return w.buf.AppendString("false")
}

// reserveNumber reserves n digits plus quotes when numbers are quoted, and
// writes the opening quote.
func (w *Writer) reserveNumber(n int) error {
	if !w.opts.QuoteNumbers {
		return w.buf.Reserve(n)
	}
	if err := w.buf.Reserve(n + 2); err != nil {
		return err
	}
	w.buf.UnsafePushBack('"')
	return nil
}

func (w *Writer) closeNumber() {
	if w.opts.QuoteNumbers {
		w.buf.UnsafePushBack('"')
	}
}

func (w *Writer) Int8(v int8) error {
	if err := w.reserveNumber(intconv.MaxLenInt8); err != nil {
		return err
	}
	intconv.WriteInt8(w.buf, v)
	w.closeNumber()
	return nil
}

func (w *Writer) Int16(v int16) error {
	if err := w.reserveNumber(intconv.MaxLenInt16); err != nil {
		return err
	}
	intconv.WriteInt16(w.buf, v)
	w.closeNumber()
	return nil
}

func (w *Writer) Int32(v int32) error {
	if err := w.reserveNumber(intconv.MaxLenInt32); err != nil {
		return err
	}
	intconv.WriteInt32(w.buf, v)
	w.closeNumber()
	return nil
}

func (w *Writer) Int64(v int64) error {
	if err := w.reserveNumber(intconv.MaxLenInt64); err != nil {
		return err
	}
	intconv.WriteInt64(w.buf, v)
	w.closeNumber()
	return nil
}

func (w *Writer) Int(v int) error {
	return w.Int64(int64(v))
}

func (w *Writer) Uint8(v uint8) error {
	if err := w.reserveNumber(intconv.MaxLenUint8); err != nil {
		return err
	}
	intconv.WriteUint8(w.buf, v)
	w.closeNumber()
	return nil
}

func (w *Writer) Uint16(v uint16) error {
	if err := w.reserveNumber(intconv.MaxLenUint16); err != nil {
		return err
	}
	intconv.WriteUint16(w.buf, v)
	w.closeNumber()
	return nil
}

func (w *Writer) Uint32(v uint32) error {
	if err := w.reserveNumber(intconv.MaxLenUint32); err != nil {
		return err
	}
	intconv.WriteUint32(w.buf, v)
	w.closeNumber()
	return nil
}

func (w *Writer) Uint64(v uint64) error {
	if err := w.reserveNumber(intconv.MaxLenUint64); err != nil {
		return err
	}
	intconv.WriteUint64(w.buf, v)
	w.closeNumber()
	return nil
}

func (w *Writer) Uint(v uint) error {
	return w.Uint64(uint64(v))
}

// Float64 writes v, or null when v is NaN or infinite.
func (w *Writer) Float64(v float64) error {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return w.Null()
	}
	if err := w.reserveNumber(floatconv.MaxLen); err != nil {
		return err
	}
	floatconv.WriteFloat64(w.buf, v)
	w.closeNumber()
	return nil
}

// Float32 writes v, or null when v is NaN or infinite.
func (w *Writer) Float32(v float32) error {
	if f := float64(v); math.IsNaN(f) || math.IsInf(f, 0) {
		return w.Null()
	}
	if err := w.reserveNumber(floatconv.MaxLen); err != nil {
		return err
	}
	floatconv.WriteFloat32(w.buf, v)
	w.closeNumber()
	return nil
}

// String writes s as a quoted, escaped JSON string.
func (w *Writer) String(s string) error {
	if err := w.buf.PushBack('"'); err != nil {
		return err
	}
	if err := w.opts.Escape.ValueString(w.buf, s); err != nil {
		return err
	}
	return w.buf.PushBack('"')
}

// Bytes writes p as a quoted, escaped JSON string.
func (w *Writer) Bytes(p []byte) error {
	if err := w.buf.PushBack('"'); err != nil {
		return err
	}
	if err := w.opts.Escape.Value(w.buf, p); err != nil {
		return err
	}
	return w.buf.PushBack('"')
}

// Key writes an object key and the following colon.
func (w *Writer) Key(k string) error {
	if err := w.buf.PushBack('"'); err != nil {
		return err
	}
	if err := w.opts.Escape.KeyString(w.buf, k); err != nil {
		return err
	}
	return w.buf.AppendString(`":`)
}

// Raw appends already serialized JSON unchanged.
func (w *Writer) Raw(p []byte) error {
	return w.buf.Append(p)
}

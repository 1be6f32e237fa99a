// Package floatconv writes floating-point numbers as JSON numbers.
//
// Values of a common shape (small magnitude, at most four fractional
// digits) take a fast path that works in integer arithmetic. Everything else
// goes through strconv's shortest round-trip formatting. Both paths produce
// the same text for the same value, and that text always parses back to the
// identical float.
//
// JSON cannot express NaN or infinities; they are written as null.
package floatconv

import (
	"math"
	"strconv"

	"github.com/BLAZED-sh/jsonwriter/pkg/buffer"
	"github.com/BLAZED-sh/jsonwriter/pkg/intconv"
)

// MaxLen is the reservation Write64 and Write32 need.
const MaxLen = 32

const (
	// FastDigits is the number of fractional digits the fast path handles.
	FastDigits = 4
	fastScale  = 1e4

	// FastLimit64 bounds the magnitude of float64 values on the fast path.
	FastLimit64 = 1e4
	// FastLimit32 bounds float32 values. Above 2^10 neighbouring float32
	// values are more than 10^-4 apart and the shortest form can need fewer
	// digits than the fast path writes.
	FastLimit32 = 1 << 10
)

const null = "null"

// PutFloat64 writes v into dst, which must hold MaxLen bytes, and returns
// the number of bytes written.
func PutFloat64(dst []byte, v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return copy(dst, null)
	}
	if n, ok := Fast64(dst, v); ok {
		return n
	}
	return General64(dst, v)
}

// PutFloat32 is PutFloat64 for float32 values.
func PutFloat32(dst []byte, v float32) int {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return copy(dst, null)
	}
	if n, ok := Fast32(dst, v); ok {
		return n
	}
	return General32(dst, v)
}

// Fast64 writes v if it is exactly m/10^4 for an integer m and |v| < 10^4.
// It reports false, writing nothing, for any other value.
func Fast64(dst []byte, v float64) (int, bool) {
	a := math.Abs(v)
	if !(a < FastLimit64) {
		return 0, false
	}
	m := math.Round(a * fastScale)
	if m/fastScale != a {
		return 0, false
	}
	return putFixed(dst, uint32(m), math.Signbit(v)), true
}

// Fast32 is Fast64 for float32 values below FastLimit32.
func Fast32(dst []byte, v float32) (int, bool) {
	a := math.Abs(float64(v))
	if !(a < FastLimit32) {
		return 0, false
	}
	m := math.Round(a * fastScale)
	if float32(m/fastScale) != float32(a) {
		return 0, false
	}
	return putFixed(dst, uint32(m), math.Signbit(float64(v))), true
}

// putFixed writes m/10^4 with trailing fractional zeros removed.
func putFixed(dst []byte, m uint32, neg bool) int {
	n := 0
	if neg {
		dst[0] = '-'
		n = 1
	}
	n += intconv.PutUint32(dst[n:], m/fastScale)

	frac := m % fastScale
	if frac == 0 {
		return n
	}
	width := FastDigits
	for frac%10 == 0 {
		frac /= 10
		width--
	}
	dst[n] = '.'
	n++
	for i := n + width - 1; i >= n; i-- {
		dst[i] = byte('0' + frac%10)
		frac /= 10
	}
	return n + width
}

// General64 writes the shortest decimal that parses back to v. Exponents
// take the form e±dd.
func General64(dst []byte, v float64) int {
	return copy(dst, strconv.AppendFloat(dst[:0], v, 'g', -1, 64))
}

// General32 is General64 for float32 values.
func General32(dst []byte, v float32) int {
	return copy(dst, strconv.AppendFloat(dst[:0], float64(v), 'g', -1, 32))
}

// WriteFloat64 writes v into b's reserved tail; the caller must have reserved
// MaxLen bytes.
func WriteFloat64(b *buffer.Buffer, v float64) {
	n := PutFloat64(b.Tail(), v)
	b.UnsafeSetEnd(b.End() + n)
}

// WriteFloat32 is WriteFloat64 for float32 values.
func WriteFloat32(b *buffer.Buffer, v float32) {
	n := PutFloat32(b.Tail(), v)
	b.UnsafeSetEnd(b.End() + n)
}

// AppendFloat64 reserves room for v and writes it.
func AppendFloat64(b *buffer.Buffer, v float64) error {
	if err := b.Reserve(MaxLen); err != nil {
		return err
	}
	WriteFloat64(b, v)
	return nil
}

// AppendFloat32 reserves room for v and writes it.
func AppendFloat32(b *buffer.Buffer, v float32) error {
	if err := b.Reserve(MaxLen); err != nil {
		return err
	}
	WriteFloat32(b, v)
	return nil
}

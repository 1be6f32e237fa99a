package intconv

// Maximum output length per type, sign included.
const (
	MaxLenUint8  = 3
	MaxLenInt8   = 4
	MaxLenUint16 = 5
	MaxLenInt16  = 6
	MaxLenUint32 = 10
	MaxLenInt32  = 11
	MaxLenUint64 = 20
	MaxLenInt64  = 20
)

// PutUint8 writes v into dst and returns the number of bytes written. dst
// must hold MaxLenUint8 bytes; the same holds for the other Put functions.
func PutUint8(dst []byte, v uint8) int {
	x := uint32(v)
	if x < 100 {
		return put2(dst, x, true)
	}
	n := put2(dst, x/100, true)
	return n + put2(dst[n:], x%100, false)
}

func PutUint16(dst []byte, v uint16) int {
	x := uint32(v)
	if x < 1e4 {
		return put4(dst, x, true)
	}
	n := put2(dst, x/1e4, true)
	return n + put4(dst[n:], x%1e4, false)
}

func PutUint32(dst []byte, v uint32) int {
	if v < 1e8 {
		return put8(dst, v, true)
	}
	n := put2(dst, v/1e8, true)
	return n + put8(dst[n:], v%1e8, false)
}

func PutUint64(dst []byte, v uint64) int {
	if v < 1e8 {
		return put8(dst, uint32(v), true)
	}
	if v < 1e16 {
		n := put8(dst, uint32(v/1e8), true)
		return n + put8(dst[n:], uint32(v%1e8), false)
	}
	// At most 20 digits: a 4-digit head and two 8-digit groups.
	rest := v % 1e16
	n := put4(dst, uint32(v/1e16), true)
	n += put8(dst[n:], uint32(rest/1e8), false)
	return n + put8(dst[n:], uint32(rest%1e8), false)
}

// The signed variants negate in the unsigned type of the same width so the
// minimum value keeps its magnitude.

func PutInt8(dst []byte, v int8) int {
	u := uint8(v)
	if v < 0 {
		dst[0] = '-'
		return 1 + PutUint8(dst[1:], -u)
	}
	return PutUint8(dst, u)
}

func PutInt16(dst []byte, v int16) int {
	u := uint16(v)
	if v < 0 {
		dst[0] = '-'
		return 1 + PutUint16(dst[1:], -u)
	}
	return PutUint16(dst, u)
}

func PutInt32(dst []byte, v int32) int {
	u := uint32(v)
	if v < 0 {
		dst[0] = '-'
		return 1 + PutUint32(dst[1:], -u)
	}
	return PutUint32(dst, u)
}

func PutInt64(dst []byte, v int64) int {
	u := uint64(v)
	if v < 0 {
		dst[0] = '-'
		return 1 + PutUint64(dst[1:], -u)
	}
	return PutUint64(dst, u)
}

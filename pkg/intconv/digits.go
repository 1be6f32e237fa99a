// Package intconv writes integers as decimal JSON numbers.
//
// Digits are produced most significant first, straight into the destination,
// by splitting the value into groups of 8, 4 and 2 digits and looking each
// 2-digit group up in a table. No scratch space or reversal is needed, so the
// Write functions can emit directly into a Buffer's reserved tail.
package intconv

// digitPairs holds "00" through "99".
const digitPairs = "" +
	"00010203040506070809101112131415161718192021222324" +
	"25262728293031323334353637383940414243444546474849" +
	"50515253545556575859606162636465666768697071727374" +
	"75767778798081828384858687888990919293949596979899"

// put2 writes v < 100. A leading group drops its zero tens digit.
func put2(dst []byte, v uint32, lead bool) int {
	if lead && v < 10 {
		dst[0] = byte('0' + v)
		return 1
	}
	dst[0], dst[1] = digitPairs[2*v], digitPairs[2*v+1]
	return 2
}

// put4 writes v < 10^4.
func put4(dst []byte, v uint32, lead bool) int {
	hi, lo := v/100, v%100
	if lead && hi == 0 {
		return put2(dst, lo, true)
	}
	n := put2(dst, hi, lead)
	return n + put2(dst[n:], lo, false)
}

// put8 writes v < 10^8.
func put8(dst []byte, v uint32, lead bool) int {
	hi, lo := v/10000, v%10000
	if lead && hi == 0 {
		return put4(dst, lo, true)
	}
	n := put4(dst, hi, lead)
	return n + put4(dst[n:], lo, false)
}

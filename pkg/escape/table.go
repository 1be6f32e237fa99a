// Package escape writes byte strings as the contents of JSON strings.
//
// The default transform is driven by a 128-entry table: each ASCII byte maps
// either to nothing (copied as is) or to the character written after a
// backslash. Bytes from 128 up are UTF-8 lead or continuation bytes and are
// always copied unchanged, so every input byte produces one or two output
// bytes.
package escape

// Placeholder is written after the backslash for control bytes that have no
// named escape.
const Placeholder = '.'

// table maps an ASCII byte to its escape character, 0 meaning no escape.
// Rows hold 16 bytes each, starting at 0x00.
const table = "" +
	"0......abtnvfr.." +
	"................" +
	"\x00\x00\"\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00" +
	"\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00" +
	"\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00" +
	"\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\\\x00\x00\x00" +
	"\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00" +
	"\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00\x00."

// Lookup reports the escape character for c, if c needs one.
func Lookup(c byte) (byte, bool) {
	if c >= 0x80 {
		return 0, false
	}
	e := table[c]
	return e, e != 0
}

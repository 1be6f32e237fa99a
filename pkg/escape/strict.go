package escape

import (
	"github.com/BLAZED-sh/jsonwriter/pkg/buffer"
)

const hex = "0123456789abcdef"

// strictExpansion is the length of a \u00XX escape.
const strictExpansion = 6

// AppendStrict escapes src following RFC 8259: the short escapes JSON
// defines are used where they exist and every other control byte becomes
// \u00XX. The output is accepted by any conforming parser, unlike the
// default table's \a, \v, \0 and \. forms.
func AppendStrict(b *buffer.Buffer, src []byte) error {
	if err := b.Reserve(strictExpansion * len(src)); err != nil {
		return err
	}
	dst := b.Tail()[:strictExpansion*len(src)]
	n := 0
	for _, c := range src {
		switch {
		case c == '"' || c == '\\':
			dst[n], dst[n+1] = '\\', c
			n += 2
		case c >= 0x20:
			dst[n] = c
			n++
		case c == '\b':
			dst[n], dst[n+1] = '\\', 'b'
			n += 2
		case c == '\f':
			dst[n], dst[n+1] = '\\', 'f'
			n += 2
		case c == '\n':
			dst[n], dst[n+1] = '\\', 'n'
			n += 2
		case c == '\r':
			dst[n], dst[n+1] = '\\', 'r'
			n += 2
		case c == '\t':
			dst[n], dst[n+1] = '\\', 't'
			n += 2
		default:
			dst[n], dst[n+1], dst[n+2], dst[n+3] = '\\', 'u', '0', '0'
			dst[n+4], dst[n+5] = hex[c>>4], hex[c&0xf]
			n += strictExpansion
		}
	}
	b.UnsafeSetEnd(b.End() + n)
	return nil
}

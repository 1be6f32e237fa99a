package escape

import (
	"github.com/BLAZED-sh/jsonwriter/pkg/buffer"
)

// MaxExpansion is the worst case number of output bytes per input byte for
// Append and AppendFast.
const MaxExpansion = 2

// Append escapes src into b one bounds-checked write at a time.
func Append(b *buffer.Buffer, src []byte) error {
	for _, c := range src {
		if c < 0x80 {
			if e := table[c]; e != 0 {
				if err := b.PushBack('\\'); err != nil {
					return err
				}
				c = e
			}
		}
		if err := b.PushBack(c); err != nil {
			return err
		}
	}
	return nil
}

// AppendFast escapes src into b with a single reservation. The loop writes
// straight into the reserved tail and commits the length once at the end.
func AppendFast(b *buffer.Buffer, src []byte) error {
	if err := b.Reserve(MaxExpansion * len(src)); err != nil {
		return err
	}
	dst := b.Tail()[:MaxExpansion*len(src)]
	n := 0
	for _, c := range src {
		if c < 0x80 {
			if e := table[c]; e != 0 {
				dst[n] = '\\'
				dst[n+1] = e
				n += 2
				continue
			}
		}
		dst[n] = c
		n++
	}
	b.UnsafeSetEnd(b.End() + n)
	return nil
}

// AppendFastString is AppendFast for strings.
func AppendFastString(b *buffer.Buffer, s string) error {
	if err := b.Reserve(MaxExpansion * len(s)); err != nil {
		return err
	}
	dst := b.Tail()[:MaxExpansion*len(s)]
	n := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < 0x80 {
			if e := table[c]; e != 0 {
				dst[n] = '\\'
				dst[n+1] = e
				n += 2
				continue
			}
		}
		dst[n] = c
		n++
	}
	b.UnsafeSetEnd(b.End() + n)
	return nil
}

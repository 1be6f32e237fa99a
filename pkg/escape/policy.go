package escape

import (
	"github.com/BLAZED-sh/jsonwriter/pkg/buffer"
)

// Func escapes src into b.
type Func func(b *buffer.Buffer, src []byte) error

// Policy decides which strings are escaped and how.
type Policy struct {
	// Keys escapes object keys. Callers that only emit known identifiers
	// as keys can turn this off.
	Keys bool
	// Values escapes string values.
	Values bool
	// Escape is the transform to apply. nil selects the table transform,
	// which also lets string input skip the conversion to []byte.
	Escape Func
}

// DefaultPolicy escapes keys and values with the table transform.
func DefaultPolicy() Policy {
	return Policy{Keys: true, Values: true}
}

// StrictPolicy escapes keys and values with AppendStrict.
func StrictPolicy() Policy {
	return Policy{Keys: true, Values: true, Escape: AppendStrict}
}

// Key writes a key according to the policy.
func (p Policy) Key(b *buffer.Buffer, src []byte) error {
	return p.apply(b, src, p.Keys)
}

// Value writes a string value according to the policy.
func (p Policy) Value(b *buffer.Buffer, src []byte) error {
	return p.apply(b, src, p.Values)
}

func (p Policy) apply(b *buffer.Buffer, src []byte, escape bool) error {
	if !escape {
		return b.Append(src)
	}
	if p.Escape == nil {
		return AppendFast(b, src)
	}
	return p.Escape(b, src)
}

// KeyString is Key for strings.
func (p Policy) KeyString(b *buffer.Buffer, s string) error {
	return p.applyString(b, s, p.Keys)
}

// ValueString is Value for strings.
func (p Policy) ValueString(b *buffer.Buffer, s string) error {
	return p.applyString(b, s, p.Values)
}

func (p Policy) applyString(b *buffer.Buffer, s string, escape bool) error {
	if !escape {
		return b.AppendString(s)
	}
	if p.Escape == nil {
		return AppendFastString(b, s)
	}
	return p.Escape(b, []byte(s))
}

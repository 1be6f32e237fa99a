package intconv

import (
	"github.com/BLAZED-sh/jsonwriter/pkg/buffer"
)

// The Write functions are deferred-check: the caller must have reserved the
// type's MaxLen bytes. The Append functions reserve first and may grow b.

func WriteUint8(b *buffer.Buffer, v uint8) {
	n := PutUint8(b.Tail(), v)
	b.UnsafeSetEnd(b.End() + n)
}

func AppendUint8(b *buffer.Buffer, v uint8) error {
	if err := b.Reserve(MaxLenUint8); err != nil {
		return err
	}
	WriteUint8(b, v)
	return nil
}

func WriteInt8(b *buffer.Buffer, v int8) {
	n := PutInt8(b.Tail(), v)
	b.UnsafeSetEnd(b.End() + n)
}

func AppendInt8(b *buffer.Buffer, v int8) error {
	if err := b.Reserve(MaxLenInt8); err != nil {
		return err
	}
	WriteInt8(b, v)
	return nil
}

func WriteUint16(b *buffer.Buffer, v uint16) {
	n := PutUint16(b.Tail(), v)
	b.UnsafeSetEnd(b.End() + n)
}

func AppendUint16(b *buffer.Buffer, v uint16) error {
	if err := b.Reserve(MaxLenUint16); err != nil {
		return err
	}
	WriteUint16(b, v)
	return nil
}

func WriteInt16(b *buffer.Buffer, v int16) {
	n := PutInt16(b.Tail(), v)
	b.UnsafeSetEnd(b.End() + n)
}

func AppendInt16(b *buffer.Buffer, v int16) error {
	if err := b.Reserve(MaxLenInt16); err != nil {
		return err
	}
	WriteInt16(b, v)
	return nil
}

func WriteUint32(b *buffer.Buffer, v uint32) {
	n := PutUint32(b.Tail(), v)
	b.UnsafeSetEnd(b.End() + n)
}

func AppendUint32(b *buffer.Buffer, v uint32) error {
	if err := b.Reserve(MaxLenUint32); err != nil {
		return err
	}
	WriteUint32(b, v)
	return nil
}

func WriteInt32(b *buffer.Buffer, v int32) {
	n := PutInt32(b.Tail(), v)
	b.UnsafeSetEnd(b.End() + n)
}

func AppendInt32(b *buffer.Buffer, v int32) error {
	if err := b.Reserve(MaxLenInt32); err != nil {
		return err
	}
	WriteInt32(b, v)
	return nil
}

func WriteUint64(b *buffer.Buffer, v uint64) {
	n := PutUint64(b.Tail(), v)
	b.UnsafeSetEnd(b.End() + n)
}

func AppendUint64(b *buffer.Buffer, v uint64) error {
	if err := b.Reserve(MaxLenUint64); err != nil {
		return err
	}
	WriteUint64(b, v)
	return nil
}

func WriteInt64(b *buffer.Buffer, v int64) {
	n := PutInt64(b.Tail(), v)
	b.UnsafeSetEnd(b.End() + n)
}

func AppendInt64(b *buffer.Buffer, v int64) error {
	if err := b.Reserve(MaxLenInt64); err != nil {
		return err
	}
	WriteInt64(b, v)
	return nil
}

// Package workload generates deterministic record sets for the benchmark CLI
// and encodes them both with this module and with json-iterator.
package workload

import (
	"fmt"
	"math"
	"math/rand"
	"strings"

	jsoniter "github.com/json-iterator/go"

	"github.com/BLAZED-sh/jsonwriter/pkg/writer"
)

// Kind selects which fields of a Record are encoded.
type Kind string

const (
	KindInts    Kind = "ints"
	KindFloats  Kind = "floats"
	KindStrings Kind = "strings"
	KindMixed   Kind = "mixed"
)

// Kinds lists every supported Kind.
func Kinds() []Kind {
	return []Kind{KindInts, KindFloats, KindStrings, KindMixed}
}

// ParseKind validates a kind name.
func ParseKind(s string) (Kind, error) {
	for _, k := range Kinds() {
		if string(k) == s {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown workload kind %q", s)
}

// Record is one line of output.
type Record struct {
	Int   int64
	Uint  uint32
	Float float64
	Small float32
	Text  string
	Flag  bool
}

var textPieces = []string{
	"alpha", "beta", "gamma", " ", " ", "\n", "\t", "\"quoted\"", `back\slash`,
	"héllo", "✓", "日本語", "0123456789", "/path/to/file",
}

// Generate returns count records derived from seed.
func Generate(seed int64, count int, kind Kind) []Record {
	rng := rand.New(rand.NewSource(seed))
	records := make([]Record, count)
	for i := range records {
		r := &records[i]
		r.Int = int64(rng.Uint64()) >> uint(rng.Intn(64))
		r.Uint = rng.Uint32() >> uint(rng.Intn(32))
		r.Flag = rng.Intn(2) == 0

		// Half the floats look like prices or measurements, the rest are
		// arbitrary doubles.
		if rng.Intn(2) == 0 {
			r.Float = float64(rng.Intn(1e6)) / 100
		} else {
			r.Float = rng.NormFloat64() * math.Pow(10, float64(rng.Intn(40)-20))
		}
		r.Small = float32(rng.Intn(1e5)) / 1e3

		if kind == KindStrings || kind == KindMixed {
			var b strings.Builder
			for n := rng.Intn(12); n >= 0; n-- {
				b.WriteString(textPieces[rng.Intn(len(textPieces))])
			}
			r.Text = b.String()
		}
	}
	return records
}

// Encode writes every record as a JSON array followed by a newline.
func Encode(w *writer.Writer, kind Kind, records []Record) error {
	buf := w.Buffer()
	for i := range records {
		if err := buf.PushBack('['); err != nil {
			return err
		}
		if err := encodeFields(w, kind, &records[i]); err != nil {
			return err
		}
		if err := buf.AppendString("]\n"); err != nil {
			return err
		}
	}
	return nil
}

func encodeFields(w *writer.Writer, kind Kind, r *Record) error {
	buf := w.Buffer()
	switch kind {
	case KindInts:
		if err := w.Int64(r.Int); err != nil {
			return err
		}
		if err := buf.PushBack(','); err != nil {
			return err
		}
		return w.Uint32(r.Uint)
	case KindFloats:
		if err := w.Float64(r.Float); err != nil {
			return err
		}
		if err := buf.PushBack(','); err != nil {
			return err
		}
		return w.Float32(r.Small)
	case KindStrings:
		return w.String(r.Text)
	}

	if err := w.Int64(r.Int); err != nil {
		return err
	}
	if err := buf.PushBack(','); err != nil {
		return err
	}
	if err := w.Float64(r.Float); err != nil {
		return err
	}
	if err := buf.PushBack(','); err != nil {
		return err
	}
	if err := w.String(r.Text); err != nil {
		return err
	}
	if err := buf.PushBack(','); err != nil {
		return err
	}
	return w.Bool(r.Flag)
}

// EncodeJsoniter writes the same records through a jsoniter.Stream, as a
// baseline for throughput comparisons.
func EncodeJsoniter(stream *jsoniter.Stream, kind Kind, records []Record) error {
	for i := range records {
		r := &records[i]
		stream.WriteArrayStart()
		switch kind {
		case KindInts:
			stream.WriteInt64(r.Int)
			stream.WriteMore()
			stream.WriteUint32(r.Uint)
		case KindFloats:
			stream.WriteFloat64(r.Float)
			stream.WriteMore()
			stream.WriteFloat32(r.Small)
		case KindStrings:
			stream.WriteString(r.Text)
		default:
			stream.WriteInt64(r.Int)
			stream.WriteMore()
			stream.WriteFloat64(r.Float)
			stream.WriteMore()
			stream.WriteString(r.Text)
			stream.WriteMore()
			stream.WriteBool(r.Flag)
		}
		stream.WriteArrayEnd()
		stream.WriteRaw("\n")
	}
	return stream.Error
}

package escape

import (
	"math/rand"
	"strings"
	"testing"

	gojson "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BLAZED-sh/jsonwriter/pkg/buffer"
)

func newBuffer(t testing.TB, capacity int) *buffer.Buffer {
	t.Helper()
	b, err := buffer.New(capacity)
	require.NoError(t, err)
	return b
}

func TestLookup(t *testing.T) {
	named := map[byte]byte{
		0x00: '0', '\a': 'a', '\b': 'b', '\t': 't', '\n': 'n',
		'\v': 'v', '\f': 'f', '\r': 'r', '"': '"', '\\': '\\',
	}

	for c := 0; c < 256; c++ {
		e, ok := Lookup(byte(c))
		switch {
		case named[byte(c)] != 0 || c == 0:
			assert.True(t, ok, "byte %#x", c)
			assert.Equal(t, named[byte(c)], e, "byte %#x", c)
		case c < 0x20 || c == 0x7f:
			assert.True(t, ok, "byte %#x", c)
			assert.Equal(t, byte(Placeholder), e, "byte %#x", c)
		default:
			assert.False(t, ok, "byte %#x", c)
		}
	}
}

func TestTableShape(t *testing.T) {
	require.Len(t, table, 128)

	escaped := 0
	for i := 0; i < len(table); i++ {
		if table[i] != 0 {
			escaped++
		}
	}
	// 32 control bytes, DEL, quote and backslash.
	assert.Equal(t, 35, escaped)
}

func TestAppend(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "nothing to escape", input: "ABC123", expect: "ABC123"},
		{name: "empty", input: "", expect: ""},
		{name: "named escapes", input: "\n\t\r\"\\\x00", expect: `\n\t\r\"\\\0`},
		{name: "bell and vertical tab", input: "\a\v\b\f", expect: `\a\v\b\f`},
		{name: "placeholder", input: "a\x01b\x1fc\x7f", expect: `a\.b\.c\.`},
		{name: "utf-8 passes through", input: "héllo ✓ 世界", expect: "héllo ✓ 世界"},
		{name: "invalid utf-8 passes through", input: "\xff\xfe\x80", expect: "\xff\xfe\x80"},
		{name: "slash is not escaped", input: "a/b", expect: "a/b"},
		{name: "mixed", input: "Hello\nWorld\t!", expect: `Hello\nWorld\t!`},
	}

	transforms := map[string]Func{
		"Append":     Append,
		"AppendFast": AppendFast,
		"AppendFastString": func(b *buffer.Buffer, src []byte) error {
			return AppendFastString(b, string(src))
		},
	}

	for name, fn := range transforms {
		for _, tc := range testCases {
			t.Run(name+"/"+tc.name, func(t *testing.T) {
				b := newBuffer(t, 0)
				require.NoError(t, b.AppendString("pre:"))
				require.NoError(t, fn(b, []byte(tc.input)))
				assert.Equal(t, "pre:"+tc.expect, b.String())
			})
		}
	}
}

func TestAppendFastMatchesAppend(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 500; i++ {
		src := make([]byte, rng.Intn(600))
		rng.Read(src)

		slow := newBuffer(t, 0)
		fast, err := buffer.New(0, buffer.WithUnsafeLevel(rng.Intn(8)))
		require.NoError(t, err)

		require.NoError(t, Append(slow, src))
		require.NoError(t, AppendFast(fast, src))
		require.Equal(t, slow.Bytes(), fast.Bytes())
		require.LessOrEqual(t, fast.Len(), fast.Cap())
		require.Equal(t, byte(0), fast.CString()[fast.Len()])
	}
}

func TestAppendFastAllocationFailure(t *testing.T) {
	b, err := buffer.New(0, buffer.WithAllocator(buffer.HeapAllocator{Limit: 32}))
	require.NoError(t, err)
	require.NoError(t, b.AppendString("ok"))

	err = AppendFast(b, []byte(strings.Repeat("\n", 20)))
	require.ErrorIs(t, err, buffer.ErrAllocation)
	assert.Equal(t, "ok", b.String())
}

func TestAppendStrict(t *testing.T) {
	testCases := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "short escapes", input: "\b\f\n\r\t\"\\", expect: `\b\f\n\r\t\"\\`},
		{name: "other controls", input: "\x00\x01\a\v\x1f", expect: `\u0000\u0001\u0007\u000b\u001f`},
		{name: "delete is printable", input: "\x7f", expect: "\x7f"},
		{name: "plain", input: "ABC123 ✓", expect: "ABC123 ✓"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			b := newBuffer(t, 0)
			require.NoError(t, AppendStrict(b, []byte(tc.input)))
			assert.Equal(t, tc.expect, b.String())
		})
	}
}

func TestAppendStrictParses(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 300; i++ {
		runes := make([]rune, rng.Intn(50))
		for j := range runes {
			if rng.Intn(3) == 0 {
				runes[j] = rune(rng.Intn(0x20))
			} else {
				runes[j] = rune(0x20 + rng.Intn(0x3000))
			}
		}
		input := string(runes)

		b := newBuffer(t, 0)
		require.NoError(t, b.PushBack('"'))
		require.NoError(t, AppendStrict(b, []byte(input)))
		require.NoError(t, b.PushBack('"'))

		var decoded string
		require.NoError(t, gojson.Unmarshal(b.Bytes(), &decoded), "document %q", b.String())
		require.Equal(t, input, decoded)
	}
}

func TestPolicy(t *testing.T) {
	raw := []byte("a\"b")

	testCases := []struct {
		name   string
		policy Policy
		key    string
		value  string
	}{
		{name: "default", policy: DefaultPolicy(), key: `a\"b`, value: `a\"b`},
		{name: "keys trusted", policy: Policy{Values: true}, key: `a"b`, value: `a\"b`},
		{name: "nothing escaped", policy: Policy{}, key: `a"b`, value: `a"b`},
		{name: "strict", policy: StrictPolicy(), key: `a\"b`, value: `a\"b`},
		{
			name: "custom transform",
			policy: Policy{Keys: true, Values: true, Escape: func(b *buffer.Buffer, src []byte) error {
				return b.AppendString(strings.ToUpper(string(src)))
			}},
			key:   `A"B`,
			value: `A"B`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			kb := newBuffer(t, 0)
			require.NoError(t, tc.policy.Key(kb, raw))
			assert.Equal(t, tc.key, kb.String())

			vb := newBuffer(t, 0)
			require.NoError(t, tc.policy.Value(vb, raw))
			assert.Equal(t, tc.value, vb.String())

			ksb := newBuffer(t, 0)
			require.NoError(t, tc.policy.KeyString(ksb, string(raw)))
			assert.Equal(t, tc.key, ksb.String())

			vsb := newBuffer(t, 0)
			require.NoError(t, tc.policy.ValueString(vsb, string(raw)))
			assert.Equal(t, tc.value, vsb.String())
		})
	}
}

func TestDefaultPolicyStringsDoNotAllocate(t *testing.T) {
	s := "key\twith\"escapes\" and plain text"
	b := newBuffer(t, 4*len(s))
	p := DefaultPolicy()

	allocs := testing.AllocsPerRun(100, func() {
		b.Reset()
		if err := p.KeyString(b, s); err != nil {
			t.Fatal(err)
		}
		if err := p.ValueString(b, s); err != nil {
			t.Fatal(err)
		}
	})
	assert.Zero(t, allocs)
}

func BenchmarkEscape(b *testing.B) {
	src := []byte(strings.Repeat("plain text with a \"quote\" and a\nnewline ", 64))
	buf, err := buffer.New(4 * len(src))
	if err != nil {
		b.Fatal(err)
	}

	for name, fn := range map[string]Func{"checked": Append, "reserved": AppendFast, "strict": AppendStrict} {
		b.Run(name, func(b *testing.B) {
			b.SetBytes(int64(len(src)))
			for i := 0; i < b.N; i++ {
				buf.Reset()
				if err := fn(buf, src); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

package intconv

import (
	"math"
	"math/rand"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BLAZED-sh/jsonwriter/pkg/buffer"
)

var boundaries = []uint64{0, 1, 9, 10, 11, 99, 100, 101, 999, 1000, 1001, 9999, 10000, 10001,
	99999999, 100000000, 100000001, 9999999999999999, 10000000000000000, 10000000000000001}

func checkDecimal(t *testing.T, got string) {
	t.Helper()
	digits := got
	if len(digits) > 0 && digits[0] == '-' {
		digits = digits[1:]
	}
	require.NotEmpty(t, digits)
	require.False(t, len(digits) > 1 && digits[0] == '0', "leading zero in %q", got)
	for i := 0; i < len(digits); i++ {
		require.True(t, digits[i] >= '0' && digits[i] <= '9', "non-digit in %q", got)
	}
}

func TestDigitPairs(t *testing.T) {
	require.Len(t, digitPairs, 200)
	for i := 0; i < 100; i++ {
		assert.Equal(t, strconv.Itoa(i/10)+strconv.Itoa(i%10), digitPairs[2*i:2*i+2])
	}
}

func TestExamples(t *testing.T) {
	var dst [32]byte
	assert.Equal(t, "-128", string(dst[:PutInt8(dst[:], math.MinInt8)]))
	assert.Equal(t, "255", string(dst[:PutUint8(dst[:], math.MaxUint8)]))
	assert.Equal(t, "18446744073709551615", string(dst[:PutUint64(dst[:], math.MaxUint64)]))
	assert.Equal(t, "-9223372036854775808", string(dst[:PutInt64(dst[:], math.MinInt64)]))
	assert.Equal(t, "0", string(dst[:PutInt32(dst[:], 0)]))
	assert.Equal(t, "-1", string(dst[:PutInt16(dst[:], -1)]))
}

func TestEightBitExhaustive(t *testing.T) {
	var dst [MaxLenInt8]byte
	for i := 0; i <= math.MaxUint8; i++ {
		got := string(dst[:PutUint8(dst[:], uint8(i))])
		require.Equal(t, strconv.Itoa(i), got)
		checkDecimal(t, got)
	}
	for i := math.MinInt8; i <= math.MaxInt8; i++ {
		got := string(dst[:PutInt8(dst[:], int8(i))])
		require.Equal(t, strconv.Itoa(i), got)
		checkDecimal(t, got)
	}
}

func TestSixteenBitExhaustive(t *testing.T) {
	var dst [MaxLenInt16]byte
	for i := 0; i <= math.MaxUint16; i++ {
		require.Equal(t, strconv.Itoa(i), string(dst[:PutUint16(dst[:], uint16(i))]))
	}
	for i := math.MinInt16; i <= math.MaxInt16; i++ {
		require.Equal(t, strconv.Itoa(i), string(dst[:PutInt16(dst[:], int16(i))]))
	}
}

func TestWidths(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	testCases := []struct {
		name   string
		maxLen int
		min    int64
		max    uint64
		put    func(dst []byte, v uint64) int
		format func(v uint64) string
	}{
		{
			name: "uint32", maxLen: MaxLenUint32, max: math.MaxUint32,
			put:    func(dst []byte, v uint64) int { return PutUint32(dst, uint32(v)) },
			format: func(v uint64) string { return strconv.FormatUint(uint64(uint32(v)), 10) },
		},
		{
			name: "int32", maxLen: MaxLenInt32, min: math.MinInt32, max: math.MaxInt32,
			put:    func(dst []byte, v uint64) int { return PutInt32(dst, int32(v)) },
			format: func(v uint64) string { return strconv.FormatInt(int64(int32(v)), 10) },
		},
		{
			name: "uint64", maxLen: MaxLenUint64, max: math.MaxUint64,
			put:    func(dst []byte, v uint64) int { return PutUint64(dst, v) },
			format: func(v uint64) string { return strconv.FormatUint(v, 10) },
		},
		{
			name: "int64", maxLen: MaxLenInt64, min: math.MinInt64, max: math.MaxInt64,
			put:    func(dst []byte, v uint64) int { return PutInt64(dst, int64(v)) },
			format: func(v uint64) string { return strconv.FormatInt(int64(v), 10) },
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			values := []uint64{uint64(tc.min), tc.max, uint64(tc.min) + 1, tc.max - 1}
			for _, v := range boundaries {
				if v <= tc.max {
					values = append(values, v)
					if tc.min < 0 {
						values = append(values, -v)
					}
				}
			}
			for i := 0; i < 1000; i++ {
				// Spread lengths evenly instead of clustering at the top of the range.
				v := rng.Uint64() >> uint(rng.Intn(64))
				if tc.min < 0 && rng.Intn(2) == 0 {
					v = -v
				}
				values = append(values, v)
			}

			dst := make([]byte, tc.maxLen)
			for _, v := range values {
				got := string(dst[:tc.put(dst, v)])
				require.Equal(t, tc.format(v), got)
				checkDecimal(t, got)
			}
		})
	}
}

func TestWriteIntoBuffer(t *testing.T) {
	b, err := buffer.New(0)
	require.NoError(t, err)

	require.NoError(t, AppendInt8(b, -128))
	require.NoError(t, b.PushBack(','))
	require.NoError(t, AppendUint16(b, 65535))
	require.NoError(t, b.PushBack(','))
	require.NoError(t, AppendInt32(b, math.MinInt32))
	require.NoError(t, b.PushBack(','))
	require.NoError(t, AppendUint64(b, math.MaxUint64))
	require.NoError(t, b.PushBack(','))

	// One reservation covering several deferred writes.
	require.NoError(t, b.Reserve(MaxLenUint8+1+MaxLenInt64))
	WriteUint8(b, 7)
	b.UnsafePushBack(',')
	WriteInt64(b, math.MinInt64)

	assert.Equal(t, "-128,65535,-2147483648,18446744073709551615,7,-9223372036854775808", b.String())
	assert.LessOrEqual(t, b.Len(), b.Cap())
}

func TestAppendAllocationFailure(t *testing.T) {
	b, err := buffer.New(0, buffer.WithAllocator(buffer.HeapAllocator{Limit: 8}))
	require.NoError(t, err)

	require.ErrorIs(t, AppendUint64(b, 1), buffer.ErrAllocation)
	assert.Equal(t, 0, b.Len())
	require.NoError(t, AppendUint8(b, 200))
	assert.Equal(t, "200", b.String())
}

func BenchmarkPutUint64(b *testing.B) {
	var dst [MaxLenUint64]byte
	values := []uint64{0, 42, 123456, 9876543210, math.MaxUint64}

	b.Run("digit pairs", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			PutUint64(dst[:], values[i%len(values)])
		}
	})
	b.Run("strconv", func(b *testing.B) {
		for i := 0; i < b.N; i++ {
			strconv.AppendUint(dst[:0], values[i%len(values)], 10)
		}
	})
}

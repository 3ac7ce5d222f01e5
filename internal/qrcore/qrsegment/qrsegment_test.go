package qrsegment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drmpanic/panicqr/internal/qrcore/qrversion"
)

func TestModeHeader(t *testing.T) {
	assert.Equal(t, modeBinary, Segment{Kind: Binary}.ModeHeader())
	assert.Equal(t, modeNumeric, Segment{Kind: Numeric}.ModeHeader())
}

func TestLengthFieldBitsBinary(t *testing.T) {
	seg := Segment{Kind: Binary}
	assert.Equal(t, 8, seg.LengthFieldBits(qrversion.Version(1)))
	assert.Equal(t, 8, seg.LengthFieldBits(qrversion.Version(9)))
	assert.Equal(t, 16, seg.LengthFieldBits(qrversion.Version(10)))
	assert.Equal(t, 16, seg.LengthFieldBits(qrversion.Version(40)))
}

func TestLengthFieldBitsNumeric(t *testing.T) {
	seg := Segment{Kind: Numeric}
	assert.Equal(t, 10, seg.LengthFieldBits(qrversion.Version(1)))
	assert.Equal(t, 10, seg.LengthFieldBits(qrversion.Version(9)))
	assert.Equal(t, 12, seg.LengthFieldBits(qrversion.Version(10)))
	assert.Equal(t, 12, seg.LengthFieldBits(qrversion.Version(26)))
	assert.Equal(t, 14, seg.LengthFieldBits(qrversion.Version(27)))
	assert.Equal(t, 14, seg.LengthFieldBits(qrversion.Version(40)))
}

func TestCharCountBinaryIsByteLength(t *testing.T) {
	seg := Segment{Kind: Binary, Data: make([]byte, 17)}
	assert.Equal(t, 17, seg.CharCount())
}

func TestCharCountNumericExactMultipleOf13Bits(t *testing.T) {
	// 13 data bits (rounded to whole bytes: 2 bytes = 16 bits, but the rule
	// keys off bit count, not byte count) produce one full 4-digit group when
	// dataBits % 13 == 0.
	seg := Segment{Kind: Numeric, Data: make([]byte, 13)} // 104 bits = 8*13
	assert.Equal(t, 32, seg.CharCount())
}

func TestTotalSizeBitsIncludesHeaderAndLength(t *testing.T) {
	seg := Segment{Kind: Binary, Data: make([]byte, 5)}
	v := qrversion.Version(1)
	assert.Equal(t, 4+8+5*8, seg.TotalSizeBits(v))
}

func TestIteratorBinaryYieldsEachByte(t *testing.T) {
	seg := Segment{Kind: Binary, Data: []byte{0x00, 0xFF, 0x42}}
	it := seg.Iter()

	v, bits, ok := it.Next()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x00), v)
	assert.Equal(t, 8, bits)

	v, bits, ok = it.Next()
	assert.True(t, ok)
	assert.Equal(t, uint16(0xFF), v)
	assert.Equal(t, 8, bits)

	v, bits, ok = it.Next()
	assert.True(t, ok)
	assert.Equal(t, uint16(0x42), v)
	assert.Equal(t, 8, bits)

	_, _, ok = it.Next()
	assert.False(t, ok)
}

func TestIteratorBinaryEmpty(t *testing.T) {
	it := Segment{Kind: Binary}.Iter()
	_, _, ok := it.Next()
	assert.False(t, ok)
}

func TestIteratorNumericEmpty(t *testing.T) {
	it := Segment{Kind: Numeric}.Iter()
	_, _, ok := it.Next()
	assert.False(t, ok)
}

// TestIteratorNumericTotalBitsMatchesTotalSizeBits checks the Iterator's
// emitted bit total against CharCount/TotalSizeBits's independently derived
// formula, across a range of payload lengths including non-multiples of 13
// bits' worth of bytes.
func TestIteratorNumericTotalBitsMatchesTotalSizeBits(t *testing.T) {
	v := qrversion.Version(5)
	for n := 0; n <= 40; n++ {
		seg := Segment{Kind: Numeric, Data: make([]byte, n)}
		it := seg.Iter()

		total := 0
		for {
			_, bits, ok := it.Next()
			if !ok {
				break
			}
			total += bits
		}

		digits := seg.CharCount()
		want := 10*(digits/3) + numCharsBits[digits%3]
		assert.Equal(t, want, total, "n=%d", n)
		assert.Equal(t, seg.TotalSizeBits(v)-4-seg.LengthFieldBits(v), total, "n=%d", n)
	}
}

func TestIteratorNumericProducesDecodableFullTriplets(t *testing.T) {
	// A single 13-bit group that produces exactly 4 digits forms one full
	// triplet-and-change: the iterator must buffer across the 13-bit
	// boundary and flush once 3 digits have accumulated.
	seg := Segment{Kind: Numeric, Data: make([]byte, 26)} // 208 bits = 16*13
	it := seg.Iter()
	count := 0
	for {
		_, bits, ok := it.Next()
		if !ok {
			break
		}
		assert.Contains(t, []int{4, 7, 10}, bits)
		count++
	}
	assert.Greater(t, count, 0)
}

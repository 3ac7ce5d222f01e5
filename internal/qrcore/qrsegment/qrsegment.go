// Package qrsegment models the two segment kinds this encoder supports:
// Binary (raw 8-bit bytes) and Numeric (bytes repacked into decimal digits
// via the 13-bit-to-4-digit rule, then transmitted as QR numeric-mode
// triplets). A Segment borrows its payload; it never copies or mutates it.
package qrsegment

import "github.com/drmpanic/panicqr/internal/qrcore/qrversion"

// Kind distinguishes the two segment modes this encoder emits. Alphanumeric,
// kanji, and ECI segments are out of scope (see spec Non-goals).
type Kind uint8

const (
	Binary Kind = iota
	Numeric
)

// Mode indicator bits, the 4-bit header preceding every segment.
const (
	modeBinary  uint16 = 0b0100
	modeNumeric uint16 = 0b0001
)

// Exported aliases of the mode headers above, for decoders (outside this
// package) that need to recognize a segment's mode indicator without
// re-deriving the bit pattern. 0b0000 is never a valid header here; it is
// the mode-stop terminator Message.Finish writes.
const (
	ModeHeaderBinary  = modeBinary
	ModeHeaderNumeric = modeNumeric
)

// Segment is a tagged, borrowed byte range: Binary carries raw data, Numeric
// carries a byte string that is reinterpreted as a decimal-digit stream on
// demand (the source bytes are never mutated).
type Segment struct {
	Kind Kind
	Data []byte
}

// ModeHeader returns the 4-bit mode indicator for this segment.
func (s Segment) ModeHeader() uint16 {
	if s.Kind == Numeric {
		return modeNumeric
	}
	return modeBinary
}

// LengthFieldBits returns the width, in bits, of the length field that must
// follow the mode header for this segment at the given version.
func (s Segment) LengthFieldBits(v qrversion.Version) int {
	switch s.Kind {
	case Numeric:
		switch {
		case v <= 9:
			return 10
		case v <= 26:
			return 12
		default:
			return 14
		}
	default: // Binary
		if v <= 9 {
			return 8
		}
		return 16
	}
}

// CharCount returns the number of "characters" this segment represents: the
// byte count for Binary, or the decimal digit count produced by the
// 13-bit-to-4-digit rule for Numeric.
func (s Segment) CharCount() int {
	if s.Kind != Numeric {
		return len(s.Data)
	}

	dataBits := len(s.Data) * 8
	lastChars := 0
	switch k := dataBits % 13; k {
	case 0:
		lastChars = 0
	case 1:
		lastChars = 1
	default:
		lastChars = (k + 1) / 3
	}
	return 4*(dataBits/13) + lastChars
}

// TotalSizeBits returns the total bit length this segment occupies in the
// bitstream at the given version: mode header + length field + payload.
func (s Segment) TotalSizeBits(v qrversion.Version) int {
	dataSize := 0
	switch s.Kind {
	case Numeric:
		digits := s.CharCount()
		dataSize = 10*(digits/3) + numCharsBits[digits%3]
	default:
		dataSize = len(s.Data) * 8
	}
	return 4 + s.LengthFieldBits(v) + dataSize
}

// numCharsBits gives the output bit width for a partial (1 or 2 digit) or
// full (3 digit) numeric triplet.
var numCharsBits = [4]int{0, 4, 7, 10}

// pow10 combines carry digits with freshly produced digits across 13-bit
// group boundaries.
var pow10 = [4]uint16{1, 10, 100, 1000}

// Iter returns a fresh bit-producing iterator over this segment's payload,
// not including the mode header or length field.
func (s Segment) Iter() *Iterator {
	return &Iterator{seg: s}
}

// Iterator produces the (value, bitWidth) pairs that make up a segment's
// payload bits, one chunk at a time, without materializing the full
// bitstream. For Binary segments this is one byte at a time (8 bits each);
// for Numeric segments it walks 13-bit groups of the source and re-buckets
// the resulting digits into 3-digit (10-bit), 2-digit (7-bit), or 1-digit
// (4-bit) triplets, carrying any leftover digits across 13-bit group
// boundaries so the triplet framing is continuous across the whole segment.
type Iterator struct {
	seg      Segment
	offset   int // Binary: byte index. Numeric: bit offset into Data.
	carry    uint16
	carryLen int
}

// Next returns the next (value, bitWidth) pair, or ok=false when the
// segment's payload is exhausted.
func (it *Iterator) Next() (value uint16, bits int, ok bool) {
	if it.seg.Kind == Binary {
		if it.offset >= len(it.seg.Data) {
			return 0, 0, false
		}
		b := it.seg.Data[it.offset]
		it.offset++
		return uint16(b), 8, true
	}

	if it.carryLen == 3 {
		out := it.carry
		it.carryLen = 0
		it.carry = 0
		return out, numCharsBits[3], true
	}

	if raw, size, has := next13Bits(it.seg.Data, it.offset); has {
		it.offset += size
		newChars := 1
		if size != 1 {
			newChars = (size + 1) / 3
		}
		oldCarryLen := it.carryLen
		if oldCarryLen+newChars > 3 {
			it.carryLen = newChars + oldCarryLen - 3
			out := it.carry*pow10[newChars-it.carryLen] + raw/pow10[it.carryLen]
			it.carry = raw % pow10[it.carryLen]
			return out, numCharsBits[3], true
		}
		out := it.carry*pow10[newChars] + raw
		it.carryLen = 0
		it.carry = 0
		return out, numCharsBits[oldCarryLen+newChars], true
	}

	if it.carryLen > 0 {
		out := it.carry
		bitsOut := numCharsBits[it.carryLen]
		it.carryLen = 0
		it.carry = 0
		return out, bitsOut, true
	}

	return 0, 0, false
}

// next13Bits returns up to the next 13 bits of data starting at the given
// bit offset, MSB first, along with how many bits were actually consumed
// (fewer than 13 only for the final, short group). ok is false once offset
// reaches the end of data.
func next13Bits(data []byte, offset int) (value uint16, size int, ok bool) {
	totalBits := len(data) * 8
	if offset >= totalBits {
		return 0, 0, false
	}

	size = 13
	if rem := totalBits - offset; rem < size {
		size = rem
	}

	byteOff := offset / 8
	bitOff := offset % 8
	b := bitOff + size // total bits spanned in the first touched byte onward, <= 20

	firstByte := uint16(data[byteOff] << bitOff >> bitOff)

	switch {
	case b <= 8:
		value = firstByte >> (8 - b)
	case b <= 16:
		value = firstByte<<(b-8) | uint16(data[byteOff+1]>>(16-b))
	default:
		value = firstByte<<(b-8) | uint16(data[byteOff+1])<<(b-16) | uint16(data[byteOff+2]>>(24-b))
	}
	return value, size, true
}

// Package qrdecode retraces the encoder's own steps backward, for tests
// only: it reads a drawn bitmap back into its interleaved codeword stream,
// de-interleaves that stream into block order, and reads segments (mode,
// length, payload) back out of the result. None of this runs on the panic
// path and none of it needs to be allocation-free; it exists so _test.go
// files can assert round-trip properties instead of eyeballing bitmaps.
package qrdecode

import (
	"fmt"

	"github.com/drmpanic/panicqr/internal/qrcore/qrmatrix"
	"github.com/drmpanic/panicqr/internal/qrcore/qrmessage"
	"github.com/drmpanic/panicqr/internal/qrcore/qrsegment"
	"github.com/drmpanic/panicqr/internal/qrcore/qrversion"
)

// ExtractStream walks a drawn bitmap's data area in the same zig-zag order
// qrmatrix used to place it, undoes the checkerboard mask, and returns the
// interleaved codeword stream it reads off: version.StreamLen() bytes.
//
// data is the packed 1-bpp bitmap (MSB-first within each stride byte, one
// light bit meaning 1); width and stride describe its layout the same way
// qrmatrix.Image does.
func ExtractStream(data []byte, width, stride int, version qrversion.Version) []byte {
	w := qrmatrix.NewWalker(width)
	out := make([]byte, version.StreamLen())

	for i := range out {
		var b byte
		for k := 0; k < 8; k++ {
			w.Step()
			for qrmatrix.IsReserved(version, w.X, w.Y) {
				w.Step()
			}
			light := lightBit(data, stride, w.X, w.Y)
			if (w.X^w.Y)%2 == 0 {
				light = !light
			}
			bit := byte(1)
			if light {
				bit = 0
			}
			b = b<<1 | bit
		}
		out[i] = b
	}
	return out
}

func lightBit(data []byte, stride, x, y int) bool {
	off := y*stride + x/8
	return data[off]&(1<<uint(7-x%8)) != 0
}

// Deinterleave scatters an interleaved codeword stream (as ExtractStream or
// qrmessage.Message.Next produces) back into the data array order
// qrmessage.Message builds before interleaving: data codewords block by
// block, followed by each block's ECC codewords.
func Deinterleave(stream []byte, version qrversion.Version) []byte {
	out := make([]byte, len(stream))
	for i, b := range stream {
		out[qrmessage.StreamOffset(i, version)] = b
	}
	return out
}

// BitReader reads fixed-width, MSB-first bit fields out of a byte slice,
// the same framing qrmessage.Message.push wrote them in.
type BitReader struct {
	data   []byte
	offset int // bit cursor
}

// NewBitReader returns a reader starting at the beginning of data.
func NewBitReader(data []byte) *BitReader {
	return &BitReader{data: data}
}

// Read returns the next n bits (n <= 16) as a big-endian value.
func (r *BitReader) Read(n int) uint16 {
	var value uint16
	for i := 0; i < n; i++ {
		byteOff := r.offset / 8
		bitOff := r.offset % 8
		bit := (r.data[byteOff] >> (7 - uint(bitOff))) & 1
		value = value<<1 | uint16(bit)
		r.offset++
	}
	return value
}

// Offset returns the reader's current bit cursor.
func (r *BitReader) Offset() int {
	return r.offset
}

// Segment is one decoded segment: a Binary segment's raw bytes, or a
// Numeric segment's decoded decimal digit string. Per spec, decoding a
// Numeric segment stops at its digit rendering; reversing that rendering
// back into the original bytes it represents (see qrsegment.Iterator, whose
// 13-bit/carry packing produced it) is the caller's concern, not this
// decoder's.
type Segment struct {
	Kind   qrsegment.Kind
	Binary []byte
	Digits string
}

// DecodeSegments reads qrmessage.Message's packed data codewords (the
// de-interleaved stream, data portion only or in full; only the first
// version.MaxData() bytes are read) back into segments, mirroring
// Message.AddSegment/Finish in reverse: a 4-bit mode header selects Binary
// or Numeric, a version-dependent length field gives the character count,
// and the payload is read accordingly. Decoding stops at the mode-stop
// terminator (a 0000 header) or once MaxData capacity is exhausted.
func DecodeSegments(data []byte, version qrversion.Version) ([]Segment, error) {
	r := NewBitReader(data)
	maxBits := version.MaxData() * 8

	var segs []Segment
	for r.Offset()+4 <= maxBits {
		mode := r.Read(4)
		if mode == 0 {
			break
		}

		switch mode {
		case qrsegment.ModeHeaderBinary:
			lengthBits := qrsegment.Segment{Kind: qrsegment.Binary}.LengthFieldBits(version)
			n := int(r.Read(lengthBits))
			buf := make([]byte, n)
			for i := range buf {
				buf[i] = byte(r.Read(8))
			}
			segs = append(segs, Segment{Kind: qrsegment.Binary, Binary: buf})

		case qrsegment.ModeHeaderNumeric:
			lengthBits := qrsegment.Segment{Kind: qrsegment.Numeric}.LengthFieldBits(version)
			digits := int(r.Read(lengthBits))
			segs = append(segs, Segment{Kind: qrsegment.Numeric, Digits: r.readDigits(digits)})

		default:
			return segs, fmt.Errorf("qrdecode: unrecognized mode header %#04b", mode)
		}
	}
	return segs, nil
}

// readDigits reads a Numeric segment's payload: full 3-digit (10-bit)
// groups, then one trailing 2-digit (7-bit) or 1-digit (4-bit) group,
// matching qrsegment's standard QR numeric-mode group widths. Each group's
// value is rendered zero-padded to its digit count, the same rendering
// qrsegment.Iterator produces before transmission.
func (r *BitReader) readDigits(digits int) string {
	out := make([]byte, 0, digits)

	full := digits / 3
	for i := 0; i < full; i++ {
		out = append(out, []byte(fmt.Sprintf("%03d", r.Read(10)))...)
	}

	switch digits % 3 {
	case 1:
		out = append(out, []byte(fmt.Sprintf("%d", r.Read(4)))...)
	case 2:
		out = append(out, []byte(fmt.Sprintf("%02d", r.Read(7)))...)
	}

	return string(out)
}

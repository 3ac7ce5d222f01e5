// Package qrmessage assembles the bit-packed data stream for one or more
// segments, pads it out to the version's data capacity, computes
// Reed-Solomon ECC per block, and exposes the result as an interleaved
// codeword iterator ready for the matrix drawer.
//
// Every working buffer is either the caller-supplied tmp slice or a small
// stack array bounded by qrversion.MaxBlockScratch; nothing here allocates.
package qrmessage

import (
	"github.com/drmpanic/panicqr/internal/qrcore/gf256"
	"github.com/drmpanic/panicqr/internal/qrcore/qrsegment"
	"github.com/drmpanic/panicqr/internal/qrcore/qrversion"
)

// padding bytes, alternated to fill unused data capacity.
var padding = [2]byte{0xEC, 0x11}

// Message holds the data to be placed in the QR Code: correctly segment-
// encoded, padded, and error-corrected. It also implements an iterator
// (Next) that yields codewords in the interleaved order the matrix drawer
// expects.
type Message struct {
	data    []byte // caller-supplied scratch buffer, at least version.StreamLen() bytes
	offset  int    // bit cursor during packing
	version qrversion.Version

	ecSize     int
	g1Blocks   int
	g2Blocks   int
	g1BlkSize  int
	g2BlkSize  int
	poly       []byte

	current int // byte cursor during interleaved readout
}

// Init prepares msg to encode at the given version, using buf as scratch
// storage. buf is zeroed. buf must be at least version.StreamLen() bytes.
func Init(msg *Message, version qrversion.Version, buf []byte) {
	for i := range buf {
		buf[i] = 0
	}

	*msg = Message{
		data:      buf,
		version:   version,
		ecSize:    version.ECSize(),
		g1Blocks:  version.G1Blocks(),
		g2Blocks:  version.G2Blocks(),
		g1BlkSize: version.G1BlockSize(),
		g2BlkSize: version.G2BlockSize(),
		poly:      version.Poly(),
	}
}

// push writes bits (MSB first) at the current bit offset, handling the four
// byte-alignment cases this entails, and advances the cursor.
func (m *Message) push(value uint16, bitCount int) {
	byteOff := m.offset / 8
	bitOff := m.offset % 8
	b := bitOff + bitCount

	m.offset += bitCount

	switch {
	case bitOff == 0 && b <= 8:
		m.data[byteOff] = byte(value << (8 - b))
	case bitOff == 0:
		m.data[byteOff] = byte(value >> (b - 8))
		m.data[byteOff+1] = byte(value << (16 - b))
	case b <= 8:
		m.data[byteOff] |= byte(value << (8 - b))
	case b <= 16:
		m.data[byteOff] |= byte(value >> (b - 8))
		m.data[byteOff+1] = byte(value << (16 - b))
	default:
		m.data[byteOff] |= byte(value >> (b - 8))
		m.data[byteOff+1] = byte(value >> (b - 16))
		m.data[byteOff+2] = byte(value << (24 - b))
	}
}

// AddSegment appends one segment's mode header, length field, and payload
// bits to the message.
func (m *Message) AddSegment(seg qrsegment.Segment) {
	m.push(seg.ModeHeader(), 4)
	m.push(uint16(seg.CharCount()), seg.LengthFieldBits(m.version))

	it := seg.Iter()
	for {
		value, bits, ok := it.Next()
		if !ok {
			break
		}
		m.push(value, bits)
	}
}

// Finish appends the mode-stop terminator, rounds up to a whole byte, and
// pads the remaining data capacity with alternating 0xEC/0x11 bytes.
func (m *Message) Finish() {
	m.push(0, 4)

	padOffset := (m.offset + 7) / 8
	for i := padOffset; i < m.version.MaxData(); i++ {
		m.data[i] = padding[(i^padOffset)&1]
	}
}

// ComputeErrorCode computes and writes the Reed-Solomon ECC codewords for
// every data block, immediately following all data codewords.
func (m *Message) ComputeErrorCode() {
	offset := 0
	ecOffset := m.g1Blocks*m.g1BlkSize + m.g2Blocks*m.g2BlkSize

	for i := 0; i < m.g1Blocks; i++ {
		m.errorCodeForBlock(offset, m.g1BlkSize, ecOffset)
		offset += m.g1BlkSize
		ecOffset += m.ecSize
	}
	for i := 0; i < m.g2Blocks; i++ {
		m.errorCodeForBlock(offset, m.g2BlkSize, ecOffset)
		offset += m.g2BlkSize
		ecOffset += m.ecSize
	}
}

// errorCodeForBlock computes the ECC codewords for one data block of the
// given size at offset, and writes them at ecOffset.
func (m *Message) errorCodeForBlock(offset, size, ecOffset int) {
	var scratch [qrversion.MaxBlockScratch]byte
	tmp := scratch[:size+m.ecSize]
	copy(tmp, m.data[offset:offset+size])

	for i := 0; i < size; i++ {
		lead := tmp[i]
		if lead == 0 {
			continue
		}
		logLead := gf256.Log[lead]
		for j, v := range m.poly {
			tmp[i+1+j] ^= gf256.Exp[(int(v)+int(logLead))%255]
		}
	}

	copy(m.data[ecOffset:ecOffset+m.ecSize], tmp[size:size+m.ecSize])
}

// Encode runs the full pipeline: pack every segment, terminate and pad, and
// compute ECC. After Encode, msg.Next can be used to read the interleaved
// codeword stream.
func (m *Message) Encode(segs []qrsegment.Segment) {
	for _, seg := range segs {
		m.AddSegment(seg)
	}
	m.Finish()
	m.ComputeErrorCode()
}

// StreamOffset returns the data-array offset that the interleaved codeword
// stream's position `current` maps to, for the given version: data columns
// across all blocks, then each group-2 block's trailing byte, then ECC
// columns across all blocks. It is a pure function of version, so test-only
// decoders can call it to de-interleave a captured stream without needing a
// live Message.
func StreamOffset(current int, v qrversion.Version) int {
	g1Blocks, g2Blocks := v.G1Blocks(), v.G2Blocks()
	g1BlkSize, g2BlkSize := v.G1BlockSize(), v.G2BlockSize()
	ecSize := v.ECSize()

	blocks := g1Blocks + g2Blocks
	g1End := g1Blocks * g1BlkSize
	g2End := g1End + g2Blocks*g2BlkSize

	switch {
	case current < g1BlkSize*blocks:
		blk := current % blocks
		blkOff := current / blocks
		if blk < g1Blocks {
			return blk*g1BlkSize + blkOff
		}
		return g1End + g2BlkSize*(blk-g1Blocks) + blkOff
	case current < g2End:
		blk2 := current - blocks*g1BlkSize
		return g1BlkSize*g1Blocks + blk2*g2BlkSize + g2BlkSize - 1
	default:
		ecOffset := current - g2End
		blk := ecOffset % blocks
		blkOff := ecOffset / blocks
		return g2End + blk*ecSize + blkOff
	}
}

// Next returns the next codeword in interleaved order, or ok=false once the
// stream is exhausted.
func (m *Message) Next() (b byte, ok bool) {
	if m.current >= m.version.StreamLen() {
		return 0, false
	}
	offset := StreamOffset(m.current, m.version)
	m.current++
	return m.data[offset], true
}

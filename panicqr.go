// Package panicqr is a self-contained QR Code generator designed to run
// inside a kernel panic handler: it encodes a byte payload (typically a URL
// prefix followed by a compressed stack trace) into a valid, Low-ECC,
// checkerboard-masked QR Code bitmap, writing the result into a
// caller-supplied buffer. EncodeText and EncodeURL write only to the
// caller's buffers and fixed-size stack arrays bounded by the maximum QR
// version (40). A successful call makes one heap allocation: the message
// state built by qrcore.Encode escapes through the qrmatrix.CodewordSource
// interface. A failed call does not allocate.
//
// This package (and everything under internal/qrcore) never logs, never
// panics on bad input, and never depends on floating point, goroutines, or
// the filesystem — it is safe to call from an interrupt handler or a panic
// path, provided two invocations never share a buffer.
package panicqr

import (
	"errors"

	"github.com/drmpanic/panicqr/internal/qrcore"
	"github.com/drmpanic/panicqr/internal/qrcore/qrsegment"
	"github.com/drmpanic/panicqr/internal/qrcore/qrversion"
)

// MaxDataBufLen and MaxTmpBufLen are conservative buffer-size requirements
// that hold for every version up to V40.
const (
	MaxDataBufLen = qrversion.MaxDataBufLen
	MaxTmpBufLen  = qrversion.MaxTmpBufLen
)

// ErrCapacityExceeded is returned when the payload does not fit in a V40
// Low-ECC QR Code, or when a caller-supplied buffer is smaller than the
// selected version requires. It is the only error this package produces;
// use errors.Is to check for it.
var ErrCapacityExceeded = qrcore.ErrCapacityExceeded

// EncodeText encodes dataBuf[:dataLen] as a single binary segment and
// writes the resulting QR Code bitmap into dataBuf starting at offset 0,
// overwriting the input. tmpBuf is used as scratch space for codewords and
// ECC. It returns the module width (21 for V1, up to 177 for V40) on
// success, or an error satisfying errors.Is(err, ErrCapacityExceeded).
func EncodeText(dataBuf []byte, dataLen int, tmpBuf []byte) (uint8, error) {
	segs := [1]qrsegment.Segment{
		{Kind: qrsegment.Binary, Data: dataBuf[:dataLen]},
	}

	width, err := qrcore.Encode(segs[:], dataBuf, tmpBuf)
	if err != nil {
		return 0, err
	}
	return uint8(width), nil
}

// EncodeURL encodes two segments in order — Binary(url), then
// Numeric(dataBuf[:dataLen]) — and writes the resulting bitmap into
// dataBuf. The numeric segment is read from dataBuf before dataBuf is
// overwritten with the image, since all numeric bits are consumed while
// building tmpBuf, before any image write begins. tmpBuf is used as
// scratch space for codewords and ECC.
func EncodeURL(url []byte, dataBuf []byte, dataLen int, tmpBuf []byte) (uint8, error) {
	segs := [2]qrsegment.Segment{
		{Kind: qrsegment.Binary, Data: url},
		{Kind: qrsegment.Numeric, Data: dataBuf[:dataLen]},
	}

	width, err := qrcore.Encode(segs[:], dataBuf, tmpBuf)
	if err != nil {
		return 0, err
	}
	return uint8(width), nil
}

// IsCapacityExceeded reports whether err is (or wraps) ErrCapacityExceeded.
func IsCapacityExceeded(err error) bool {
	return errors.Is(err, ErrCapacityExceeded)
}

// Bitmap is a read-only view over a packed 1-bpp QR Code image produced by
// EncodeText or EncodeURL: row-major, stride bytes per row, MSB-first
// within each byte, 1 = light module, 0 = dark module. It borrows its
// storage from the caller and does not copy it.
type Bitmap struct {
	data   []byte
	width  int
	stride int
}

// NewBitmap wraps the buffer produced by a successful EncodeText/EncodeURL
// call (data) together with the width that call returned.
func NewBitmap(data []byte, width uint8) Bitmap {
	w := int(width)
	return Bitmap{
		data:   data,
		width:  w,
		stride: (w + 7) / 8,
	}
}

// Width returns the module width of the image.
func (b Bitmap) Width() int { return b.width }

// Stride returns the number of bytes per row.
func (b Bitmap) Stride() int { return b.stride }

// Bytes returns the packed backing storage, width*stride bytes, row-major.
func (b Bitmap) Bytes() []byte { return b.data[:b.width*b.stride] }

// Light reports whether the module at (x, y) is light (true) or dark
// (false).
func (b Bitmap) Light(x, y int) bool {
	off := y*b.stride + x/8
	return b.data[off]&(1<<uint(7-x%8)) != 0
}

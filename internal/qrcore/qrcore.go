// Package qrcore ties the segment, message, and matrix layers together:
// picking the smallest version that fits a segment list, running the
// message builder into the caller's scratch buffer, and running the matrix
// drawer into the caller's data buffer. Every larger buffer is borrowed from
// the caller for the duration of one call. Encode makes one heap
// allocation: its qrmessage.Message escapes when passed to the drawer as a
// qrmatrix.CodewordSource. The other locals are fixed-size stack values.
package qrcore

import (
	"errors"

	"github.com/drmpanic/panicqr/internal/qrcore/qrmatrix"
	"github.com/drmpanic/panicqr/internal/qrcore/qrmessage"
	"github.com/drmpanic/panicqr/internal/qrcore/qrsegment"
	"github.com/drmpanic/panicqr/internal/qrcore/qrversion"
)

// ErrCapacityExceeded is the single failure mode this encoder has: either
// the segments do not fit in any version up to V40 under Low ECC, or the
// caller's buffers are smaller than the selected version requires. It is a
// package-level sentinel so the panic-path entry points never allocate an
// error value.
var ErrCapacityExceeded = errors.New("qrcore: payload exceeds V40 Low-ECC capacity or buffer too small")

// SelectVersion scans versions 1..=40 ascending and returns the first whose
// data capacity (in bits) is at least the combined size of segs at that
// version, per spec section 4.2. It returns ErrCapacityExceeded if no
// version qualifies.
func SelectVersion(segs []qrsegment.Segment) (qrversion.Version, error) {
	for v := qrversion.Min; v <= qrversion.Max; v++ {
		capacityBits := v.MaxData() * 8
		usedBits := 0
		for _, seg := range segs {
			usedBits += seg.TotalSizeBits(v)
		}
		if usedBits <= capacityBits {
			return v, nil
		}
	}
	return 0, ErrCapacityExceeded
}

// Encode selects the smallest version holding segs, builds the bit-packed
// and error-corrected codeword stream into tmpBuf, draws the resulting QR
// Code bitmap into dataBuf, and returns the module width. tmpBuf must be at
// least the selected version's StreamLen bytes; dataBuf must be at least
// stride*width bytes for the selected version's width. Both requirements
// are satisfied by sizing the buffers to qrversion.MaxTmpBufLen and
// qrversion.MaxDataBufLen respectively.
func Encode(segs []qrsegment.Segment, dataBuf, tmpBuf []byte) (int, error) {
	version, err := SelectVersion(segs)
	if err != nil {
		return 0, err
	}

	if len(tmpBuf) < version.StreamLen() {
		return 0, ErrCapacityExceeded
	}
	width := version.Width()
	stride := (width + 7) / 8
	if len(dataBuf) < stride*width {
		return 0, ErrCapacityExceeded
	}

	var msg qrmessage.Message
	qrmessage.Init(&msg, version, tmpBuf)
	msg.Encode(segs)

	var img qrmatrix.Image
	qrmatrix.Init(&img, version, dataBuf)
	return img.DrawAll(&msg), nil
}

package qrcore

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/drmpanic/panicqr/internal/qrcore/qrsegment"
	"github.com/drmpanic/panicqr/internal/qrcore/qrversion"
	"github.com/drmpanic/panicqr/internal/qrdecode"
)

func TestSelectVersionPicksSmallestThatFits(t *testing.T) {
	segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: []byte("hello")}}
	v, err := SelectVersion(segs)
	assert.NoError(t, err)
	assert.Equal(t, qrversion.Version(1), v)
}

func TestSelectVersionGrowsWithPayload(t *testing.T) {
	segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: make([]byte, 100)}}
	v, err := SelectVersion(segs)
	assert.NoError(t, err)
	assert.Greater(t, int(v), 1)
}

func TestSelectVersionFailsBeyondV40Capacity(t *testing.T) {
	segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: make([]byte, 2954)}}
	_, err := SelectVersion(segs)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestSelectVersionSucceedsAtV40Capacity(t *testing.T) {
	segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: make([]byte, 2953)}}
	v, err := SelectVersion(segs)
	assert.NoError(t, err)
	assert.Equal(t, qrversion.Version(40), v)
}

func TestEncodeHelloIsV1(t *testing.T) {
	segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: []byte("hello")}}
	dataBuf := make([]byte, qrversion.MaxDataBufLen)
	tmpBuf := make([]byte, qrversion.MaxTmpBufLen)

	width, err := Encode(segs, dataBuf, tmpBuf)
	assert.NoError(t, err)
	assert.Equal(t, 21, width)
}

func TestEncodeSeventeenAsYieldsV1(t *testing.T) {
	segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: []byte(repeat("A", 17))}}
	dataBuf := make([]byte, qrversion.MaxDataBufLen)
	tmpBuf := make([]byte, qrversion.MaxTmpBufLen)

	width, err := Encode(segs, dataBuf, tmpBuf)
	assert.NoError(t, err)
	assert.Equal(t, 21, width)
}

func TestEncodeEighteenAsYieldsV2(t *testing.T) {
	segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: []byte(repeat("A", 18))}}
	dataBuf := make([]byte, qrversion.MaxDataBufLen)
	tmpBuf := make([]byte, qrversion.MaxTmpBufLen)

	width, err := Encode(segs, dataBuf, tmpBuf)
	assert.NoError(t, err)
	assert.Equal(t, 25, width)
}

func TestEncodeZeroBytePayloadFillsV40(t *testing.T) {
	segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: make([]byte, 2953)}}
	dataBuf := make([]byte, qrversion.MaxDataBufLen)
	tmpBuf := make([]byte, qrversion.MaxTmpBufLen)

	width, err := Encode(segs, dataBuf, tmpBuf)
	assert.NoError(t, err)
	assert.Equal(t, 177, width)
}

func TestEncodeOverCapacityFails(t *testing.T) {
	segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: make([]byte, 2954)}}
	dataBuf := make([]byte, qrversion.MaxDataBufLen)
	tmpBuf := make([]byte, qrversion.MaxTmpBufLen)

	_, err := Encode(segs, dataBuf, tmpBuf)
	assert.Error(t, err)
}

func TestEncodeRejectsUndersizedBuffers(t *testing.T) {
	segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: []byte("x")}}

	_, err := Encode(segs, make([]byte, 1), make([]byte, qrversion.MaxTmpBufLen))
	assert.Error(t, err)

	_, err = Encode(segs, make([]byte, qrversion.MaxDataBufLen), make([]byte, 1))
	assert.Error(t, err)
}

// TestEncodeRoundTripsThroughDrawnBitmap re-derives the codeword stream from
// the drawn bitmap (undoing the mask and the zig-zag walk) and de-interleaves
// it back into block order; the result must exactly match the scratch buffer
// Encode itself populated, byte for byte.
func TestEncodeRoundTripsThroughDrawnBitmap(t *testing.T) {
	payloads := [][]byte{
		[]byte("hello"),
		[]byte(repeat("A", 17)),
		[]byte(repeat("A", 18)),
		make([]byte, 250), // forces a version with group-1 and group-2 blocks (V10)
	}

	for _, payload := range payloads {
		segs := []qrsegment.Segment{{Kind: qrsegment.Binary, Data: payload}}
		version, err := SelectVersion(segs)
		assert.NoError(t, err)

		dataBuf := make([]byte, qrversion.MaxDataBufLen)
		tmpBuf := make([]byte, qrversion.MaxTmpBufLen)

		width, err := Encode(segs, dataBuf, tmpBuf)
		assert.NoError(t, err)

		stride := (width + 7) / 8
		stream := qrdecode.ExtractStream(dataBuf, width, stride, version)
		deinterleaved := qrdecode.Deinterleave(stream, version)

		assert.Equal(t, tmpBuf[:version.StreamLen()], deinterleaved, "payload len %d", len(payload))
	}
}

func repeat(s string, n int) string {
	out := make([]byte, 0, n*len(s))
	for i := 0; i < n; i++ {
		out = append(out, s...)
	}
	return string(out)
}

package qrversion

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWidth(t *testing.T) {
	assert.Equal(t, 21, Version(1).Width())
	assert.Equal(t, 25, Version(2).Width())
	assert.Equal(t, 177, Version(40).Width())
}

func TestMaxDataMatchesKnownLowECCCapacities(t *testing.T) {
	// Data codeword counts for Low ECC, well-known from the QR standard.
	cases := map[Version]int{
		1:  19,
		2:  34,
		7:  156,
		10: 274,
		27: 1468,
		40: 2956,
	}
	for v, want := range cases {
		assert.Equal(t, want, v.MaxData(), "version %d", v)
	}
}

func TestGroup2BlockSizeIsOneMoreThanGroup1(t *testing.T) {
	for v := Min; v <= Max; v++ {
		if v.G2Blocks() > 0 {
			assert.Equal(t, v.G1BlockSize()+1, v.G2BlockSize(), "version %d", v)
		}
	}
}

func TestPolyLengthMatchesECSize(t *testing.T) {
	for v := Min; v <= Max; v++ {
		assert.Equal(t, v.ECSize(), len(v.Poly()), "version %d", v)
	}
}

func TestVersionInfoZeroBelowV7(t *testing.T) {
	for v := Version(1); v < 7; v++ {
		assert.Equal(t, uint32(0), v.VersionInfo(), "version %d", v)
	}
}

func TestVersionInfoNonZeroFromV7(t *testing.T) {
	for v := Version(7); v <= Max; v++ {
		assert.NotEqual(t, uint32(0), v.VersionInfo(), "version %d", v)
	}
}

func TestAlignmentPatternEmptyForV1(t *testing.T) {
	assert.Empty(t, Version(1).AlignmentPattern())
}

func TestAlignmentPatternNonEmptyFromV2(t *testing.T) {
	for v := Version(2); v <= Max; v++ {
		assert.NotEmpty(t, v.AlignmentPattern(), "version %d", v)
	}
}

func TestStreamLenAccountsForAllBlocks(t *testing.T) {
	for v := Min; v <= Max; v++ {
		want := v.MaxData() + v.ECSize()*v.TotalBlocks()
		assert.Equal(t, want, v.StreamLen(), "version %d", v)
	}
}

func TestTotalBlocksIsSumOfGroups(t *testing.T) {
	for v := Min; v <= Max; v++ {
		assert.Equal(t, v.G1Blocks()+v.G2Blocks(), v.TotalBlocks(), "version %d", v)
	}
}

func TestFormatInfoLowIsFixedWord(t *testing.T) {
	assert.Equal(t, uint16(0x77C4), FormatInfoLow)
}

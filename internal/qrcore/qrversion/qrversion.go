// Package qrversion holds the static, version-derived tables that drive a
// Low-error-correction, checkerboard-mask QR Code: per-version Reed-Solomon
// generator polynomials, group/block layout, the alignment-pattern grid, and
// the version-info / format-info words.
//
// All of this file's tables are immutable lookups indexed by Version
// (1..=40); nothing here allocates.
package qrversion

// Version is a QR Code version number, 1..=40.
type Version uint8

// Min and Max are the supported version bounds for Low-ECC QR Codes.
const (
	Min = Version(1)
	Max = Version(40)
)

// MaxBlockScratch bounds the scratch array used by Reed-Solomon block
// encoding: the largest data block (123 bytes, group 2 of V27/V37/V38) plus the largest
// generator degree (30).
const MaxBlockScratch = 123 + 30

// MaxTmpBufLen is the largest codeword+ECC buffer required across all 40
// versions (V40: max data codewords + total ECC codewords).
const MaxTmpBufLen = 3706

// MaxDataBufLen is the largest packed bitmap buffer required across all 40
// versions (V40: ceil(177/8)*177 = 23*177 = 4071).
const MaxDataBufLen = 4071

// FormatInfoLow is the 15-bit format-info word for Low ECC with mask 0,
// already including its own BCH error-correction bits.
const FormatInfoLow uint16 = 0x77C4

// Generator polynomials for Low-ECC QR Codes, stored as the n trailing
// coefficients of g(x) in log form: entry v denotes the coefficient
// alpha^v. Only the eight degrees used by Low ECC are needed.
var (
	p7  = [7]byte{87, 229, 146, 149, 238, 102, 21}
	p10 = [10]byte{251, 67, 46, 61, 118, 70, 64, 94, 32, 45}
	p15 = [15]byte{8, 183, 61, 91, 202, 37, 51, 58, 58, 237, 140, 124, 5, 99, 105}
	p18 = [18]byte{215, 234, 158, 94, 184, 97, 118, 170, 79, 187, 152, 148, 252, 179, 5, 98, 96, 153}
	p20 = [20]byte{17, 60, 79, 50, 61, 163, 26, 187, 202, 180, 221, 225, 83, 239, 156, 164, 212, 212, 188, 190}
	p22 = [22]byte{210, 171, 247, 242, 93, 230, 14, 109, 221, 53, 200, 74, 8, 172, 98, 80, 219, 134, 160, 105, 165, 231}
	p24 = [24]byte{229, 121, 135, 48, 211, 117, 251, 126, 159, 180, 169, 152, 192, 226, 228, 218, 111, 0, 117, 232, 87, 96, 227, 21}
	p26 = [26]byte{173, 125, 158, 2, 103, 182, 118, 17, 145, 201, 111, 28, 165, 53, 161, 21, 245, 142, 13, 102, 48, 227, 153, 145, 218, 70}
	p28 = [28]byte{168, 223, 200, 104, 224, 234, 108, 180, 110, 190, 195, 147, 205, 27, 232, 201, 21, 43, 245, 87, 42, 195, 212, 119, 242, 37, 9, 123}
	p30 = [30]byte{41, 173, 145, 152, 216, 31, 179, 182, 50, 48, 110, 86, 239, 96, 222, 125, 42, 173, 226, 193, 224, 130, 156, 37, 251, 216, 238, 40, 192, 180}
)

// params bundles the per-version parameters: generator polynomial, group-1
// block count, group-2 block count, and group-1 block size (group-2 blocks
// are always one codeword longer).
type params struct {
	poly       []byte
	g1Blocks   byte
	g2Blocks   byte
	g1BlkSize  byte
}

// byVersion is indexed [version-1]; it is the Low-ECC equivalent of the
// per-version/per-ECC-level tables other QR implementations carry for all
// four levels.
var byVersion = [40]params{
	{p7[:], 1, 0, 19},    // V1
	{p10[:], 1, 0, 34},   // V2
	{p15[:], 1, 0, 55},   // V3
	{p20[:], 1, 0, 80},   // V4
	{p26[:], 1, 0, 108},  // V5
	{p18[:], 2, 0, 68},   // V6
	{p20[:], 2, 0, 78},   // V7
	{p24[:], 2, 0, 97},   // V8
	{p30[:], 2, 0, 116},  // V9
	{p18[:], 2, 2, 68},   // V10
	{p20[:], 4, 0, 81},   // V11
	{p24[:], 2, 2, 92},   // V12
	{p26[:], 4, 0, 107},  // V13
	{p30[:], 3, 1, 115},  // V14
	{p22[:], 5, 1, 87},   // V15
	{p24[:], 5, 1, 98},   // V16
	{p28[:], 1, 5, 107},  // V17
	{p30[:], 5, 1, 120},  // V18
	{p28[:], 3, 4, 113},  // V19
	{p28[:], 3, 5, 107},  // V20
	{p28[:], 4, 4, 116},  // V21
	{p28[:], 2, 7, 111},  // V22
	{p30[:], 4, 5, 121},  // V23
	{p30[:], 6, 4, 117},  // V24
	{p26[:], 8, 4, 106},  // V25
	{p28[:], 10, 2, 114}, // V26
	{p30[:], 8, 4, 122},  // V27
	{p30[:], 3, 10, 117}, // V28
	{p30[:], 7, 7, 116},  // V29
	{p30[:], 5, 10, 115}, // V30
	{p30[:], 13, 3, 115}, // V31
	{p30[:], 17, 0, 115}, // V32
	{p30[:], 17, 1, 115}, // V33
	{p30[:], 13, 6, 115}, // V34
	{p30[:], 12, 7, 121}, // V35
	{p30[:], 6, 14, 121}, // V36
	{p30[:], 17, 4, 122}, // V37
	{p30[:], 4, 18, 122}, // V38
	{p30[:], 20, 4, 117}, // V39
	{p30[:], 19, 6, 118}, // V40
}

// alignmentPatterns lists the alignment-pattern center coordinates for each
// version, shared across both axes.
var alignmentPatterns = [40][]byte{
	{},
	{6, 18},
	{6, 22},
	{6, 26},
	{6, 30},
	{6, 34},
	{6, 22, 38},
	{6, 24, 42},
	{6, 26, 46},
	{6, 28, 50},
	{6, 30, 54},
	{6, 32, 58},
	{6, 34, 62},
	{6, 26, 46, 66},
	{6, 26, 48, 70},
	{6, 26, 50, 74},
	{6, 30, 54, 78},
	{6, 30, 56, 82},
	{6, 30, 58, 86},
	{6, 34, 62, 90},
	{6, 28, 50, 72, 94},
	{6, 26, 50, 74, 98},
	{6, 30, 54, 78, 102},
	{6, 28, 54, 80, 106},
	{6, 32, 58, 84, 110},
	{6, 30, 58, 86, 114},
	{6, 34, 62, 90, 118},
	{6, 26, 50, 74, 98, 122},
	{6, 30, 54, 78, 102, 126},
	{6, 26, 52, 78, 104, 130},
	{6, 30, 56, 82, 108, 134},
	{6, 34, 60, 86, 112, 138},
	{6, 30, 58, 86, 114, 142},
	{6, 34, 62, 90, 118, 146},
	{6, 30, 54, 78, 102, 126, 150},
	{6, 24, 50, 76, 102, 128, 154},
	{6, 28, 54, 80, 106, 132, 158},
	{6, 32, 58, 84, 110, 136, 162},
	{6, 26, 54, 82, 110, 138, 166},
	{6, 30, 58, 86, 114, 142, 170},
}

// versionInformation holds the 18-bit version-info word (with its own BCH
// error correction) for V7..V40, indexed [version-7].
var versionInformation = [34]uint32{
	0x07C94, 0x085BC, 0x09A99, 0x0A4D3, 0x0BBF6, 0x0C762, 0x0D847, 0x0E60D,
	0x0F928, 0x10B78, 0x1145D, 0x12A17, 0x13532, 0x149A6, 0x15683, 0x168C9,
	0x177EC, 0x18EC4, 0x191E1, 0x1AFAB, 0x1B08E, 0x1CC1A, 0x1D33F, 0x1ED75,
	0x1F250, 0x209D5, 0x216F0, 0x228BA, 0x2379F, 0x24B0B, 0x2542E, 0x26A64,
	0x27541, 0x28C69,
}

// Width returns the module width of the QR symbol for this version:
// 4*V + 17.
func (v Version) Width() int {
	return int(v)*4 + 17
}

// ECSize returns the number of ECC codewords per block.
func (v Version) ECSize() int {
	return len(byVersion[v-1].poly)
}

// G1Blocks returns the number of group-1 blocks.
func (v Version) G1Blocks() int {
	return int(byVersion[v-1].g1Blocks)
}

// G2Blocks returns the number of group-2 blocks.
func (v Version) G2Blocks() int {
	return int(byVersion[v-1].g2Blocks)
}

// G1BlockSize returns the data codeword count of each group-1 block.
func (v Version) G1BlockSize() int {
	return int(byVersion[v-1].g1BlkSize)
}

// G2BlockSize returns the data codeword count of each group-2 block, always
// one more than the group-1 block size.
func (v Version) G2BlockSize() int {
	return v.G1BlockSize() + 1
}

// MaxData returns the number of data codewords (excluding ECC) this version
// can hold.
func (v Version) MaxData() int {
	return v.G1Blocks()*v.G1BlockSize() + v.G2Blocks()*v.G2BlockSize()
}

// Poly returns the Reed-Solomon generator polynomial coefficients (in log
// form) for this version's ECC size.
func (v Version) Poly() []byte {
	return byVersion[v-1].poly
}

// AlignmentPattern returns the alignment-pattern coordinate list for this
// version, shared across both axes.
func (v Version) AlignmentPattern() []byte {
	return alignmentPatterns[v-1]
}

// VersionInfo returns the 18-bit version-info word for this version, or 0
// for versions below 7 (which carry no version-info patch).
func (v Version) VersionInfo() uint32 {
	if v < 7 {
		return 0
	}
	return versionInformation[v-7]
}

// TotalBlocks returns the total number of data blocks (group 1 + group 2).
func (v Version) TotalBlocks() int {
	return v.G1Blocks() + v.G2Blocks()
}

// StreamLen returns the length of the interleaved codeword stream this
// version produces: data codewords plus ECC codewords across all blocks.
func (v Version) StreamLen() int {
	return v.MaxData() + v.ECSize()*v.TotalBlocks()
}

// Package qrmatrix draws function patterns and places data onto the packed
// 1-bpp QR Code bitmap: finders, alignment patterns, timing patterns,
// format/version info, the zig-zag data walk, and the fixed checkerboard
// mask (mask 0 is the only mask this encoder supports).
//
// Convention: bit value 1 means a light module, 0 means dark. The grid
// starts all-dark; "Set" writes a light module. Byte layout is MSB-first
// within each row-major stride byte.
package qrmatrix

import "github.com/drmpanic/panicqr/internal/qrcore/qrversion"

// CodewordSource is the interleaved byte stream the drawer consumes. A
// qrmessage.Message implements this.
type CodewordSource interface {
	Next() (byte, bool)
}

// Walker tracks the current candidate module during the zig-zag data walk
// described in spec section 4.8. It is exported so test-only decoders can
// retrace the same path the drawer took without duplicating the step rule.
type Walker struct {
	width int
	X, Y  int
}

// NewWalker returns a walker positioned at the zig-zag's starting cell for
// the given module width, one step before the first candidate.
func NewWalker(width int) Walker {
	return Walker{width: width, X: width - 2, Y: width}
}

// Step advances the walker to the next candidate module (not skipping
// reserved cells; callers combine this with IsReserved).
func (w *Walker) Step() {
	xAdj := w.X
	if w.X <= 6 {
		xAdj = w.X + 1
	}
	phase := (w.width - xAdj) % 4

	switch {
	case phase == 2 && w.Y > 0:
		w.Y--
		w.X++
	case phase == 0 && w.Y < w.width-1:
		w.Y++
		w.X++
	case (phase == 0 || phase == 2) && w.X == 7:
		w.X -= 2
	default:
		w.X--
	}
}

// Image is a packed, caller-owned QR Code bitmap under construction.
type Image struct {
	data    []byte
	width   int
	stride  int
	version qrversion.Version
	Walker
}

// Init prepares img to draw a QR Code of the given version into buf. buf
// must be at least stride*width bytes, where stride = ceil(width/8).
func Init(img *Image, version qrversion.Version, buf []byte) {
	width := version.Width()
	stride := (width + 7) / 8

	*img = Image{
		data:    buf,
		width:   width,
		stride:  stride,
		version: version,
		Walker:  NewWalker(width),
	}
}

// IsReserved reports whether (x, y) is occupied by any function pattern at
// the given version — the same predicate the drawer uses to skip cells
// during data placement, exposed for test-only decoders.
func IsReserved(version qrversion.Version, x, y int) bool {
	var img Image
	Init(&img, version, nil)
	return img.isReserved(x, y)
}

// Width returns the module width of this image.
func (img *Image) Width() int { return img.width }

func (img *Image) clear() {
	for i := range img.data[:img.stride*img.width] {
		img.data[i] = 0
	}
}

// set marks (x, y) as a light module.
func (img *Image) set(x, y int) {
	off := y*img.stride + x/8
	img.data[off] |= 1 << (7 - uint(x%8))
}

// xor toggles (x, y)'s module color.
func (img *Image) xor(x, y int) {
	off := y*img.stride + x/8
	img.data[off] ^= 1 << (7 - uint(x%8))
}

// drawSquare draws a light, one-module-wide square ring whose top-left
// corner is (x, y) and whose outer edge is `size` modules from it.
func (img *Image) drawSquare(x, y, size int) {
	for k := 0; k < size; k++ {
		img.set(x+k, y)
		img.set(x, y+k+1)
		img.set(x+size, y+k)
		img.set(x+k+1, y+size)
	}
}

// drawFinders draws the three 8x8 finder patterns (including separators) at
// the top-left, top-right, and bottom-left corners.
func (img *Image) drawFinders() {
	img.drawSquare(1, 1, 4)
	img.drawSquare(img.width-6, 1, 4)
	img.drawSquare(1, img.width-6, 4)
	for k := 0; k < 8; k++ {
		img.set(k, 7)
		img.set(img.width-k-1, 7)
		img.set(k, img.width-8)
	}
	for k := 0; k < 7; k++ {
		img.set(7, k)
		img.set(img.width-8, k)
		img.set(7, img.width-1-k)
	}
}

func (img *Image) isFinder(x, y int) bool {
	end := img.width - 8
	return (x < 8 && y < 8) || (x < 8 && y >= end) || (x >= end && y < 8)
}

// drawAlignments draws a 5x5 alignment pattern centered on every coordinate
// pair from the version's alignment grid, skipping centers that overlap a
// finder.
func (img *Image) drawAlignments() {
	positions := img.version.AlignmentPattern()
	for _, x := range positions {
		for _, y := range positions {
			if !img.isFinder(int(x), int(y)) {
				img.drawSquare(int(x)-1, int(y)-1, 2)
			}
		}
	}
}

func (img *Image) isAlignment(x, y int) bool {
	positions := img.version.AlignmentPattern()
	for _, ax8 := range positions {
		for _, ay8 := range positions {
			ax, ay := int(ax8), int(ay8)
			if img.isFinder(ax, ay) {
				continue
			}
			if x >= ax-2 && x <= ax+2 && y >= ay-2 && y <= ay+2 {
				return true
			}
		}
	}
	return false
}

// drawTimingPatterns draws the dotted timing tracks along row 6 and column
// 6, between the finder separators.
func (img *Image) drawTimingPatterns() {
	end := img.width - 8
	for x := 9; x < end; x += 2 {
		img.set(x, 6)
		img.set(6, x)
	}
}

func (img *Image) isTiming(x, y int) bool {
	return x == 6 || y == 6
}

// drawFormatInfo draws the two redundant copies of the 15-bit Low-EC,
// mask-0 format-info word around the top-left finder, split between the
// top-right and bottom-left finders.
func (img *Image) drawFormatInfo() {
	info := qrversion.FormatInfoLow
	skip := 0

	for k := 0; k < 7; k++ {
		if k == 6 {
			skip = 1
		}
		if info&(1<<(14-uint(k))) == 0 {
			img.set(k+skip, 8)
			img.set(8, img.width-1-k)
		}
	}
	skip = 0
	for k := 0; k < 8; k++ {
		if k == 2 {
			skip = 1
		}
		if info&(1<<(7-uint(k))) == 0 {
			img.set(8, 8-skip-k)
			img.set(img.width-8+k, 8)
		}
	}
}

func (img *Image) isFormatInfo(x, y int) bool {
	end := img.width - 8
	return (x <= 8 && y == 8) || (y <= 8 && x == 8) || (x == 8 && y >= end) || (x >= end && y == 8)
}

// drawVersionInfo draws the two copies of the 18-bit version-info word, for
// V7 and above.
func (img *Image) drawVersionInfo() {
	vinfo := img.version.VersionInfo()
	if vinfo == 0 {
		return
	}
	pos := img.width - 11

	for x := 0; x < 3; x++ {
		for y := 0; y < 6; y++ {
			if vinfo&(1<<uint(x+y*3)) == 0 {
				img.set(x+pos, y)
				img.set(y, x+pos)
			}
		}
	}
}

func (img *Image) isVersionInfo(x, y int) bool {
	vinfo := img.version.VersionInfo()
	if vinfo == 0 {
		return false
	}
	pos := img.width - 11
	return (x >= pos && x < pos+3 && y < 6) || (y >= pos && y < pos+3 && x < 6)
}

// isReserved reports whether (x, y) is occupied by any function pattern and
// must be skipped by the data walker.
func (img *Image) isReserved(x, y int) bool {
	return img.isAlignment(x, y) ||
		img.isFinder(x, y) ||
		img.isTiming(x, y) ||
		img.isFormatInfo(x, y) ||
		img.isVersionInfo(x, y)
}

// drawBit steps the walker to the next non-reserved module and sets it
// light iff v is true.
func (img *Image) drawBit(v bool) {
	img.Step()
	for img.isReserved(img.X, img.Y) {
		img.Step()
	}
	if v {
		img.set(img.X, img.Y)
	}
}

// drawByte places one codeword's 8 bits, MSB first. Per the encoding
// convention, a bit writes light iff its value is 0 (plain dark + the
// later mask-0 XOR reproduces the intended bit under this convention).
func (img *Image) drawByte(b byte) {
	for x := 7; x >= 0; x-- {
		img.drawBit(b&(1<<uint(x)) == 0)
	}
}

// drawRemaining walks past the last codeword to the terminal position
// (0, width-1), marking every non-reserved cell it passes as light (the
// version-dependent remainder bits).
func (img *Image) drawRemaining() {
	img.Step()
	for img.X != 0 || img.Y != img.width-1 {
		if !img.isReserved(img.X, img.Y) {
			img.set(img.X, img.Y)
		}
		img.Step()
	}
}

// drawData walks the codeword source onto the data area.
func (img *Image) drawData(src CodewordSource) {
	for {
		b, ok := src.Next()
		if !ok {
			break
		}
		img.drawByte(b)
	}
}

// applyMask XORs every non-reserved module where (x + y) is even: the
// fixed checkerboard, mask 0.
func (img *Image) applyMask() {
	for x := 0; x < img.width; x++ {
		for y := 0; y < img.width; y++ {
			if (x^y)%2 == 0 && !img.isReserved(x, y) {
				img.xor(x, y)
			}
		}
	}
}

// DrawAll clears the buffer, draws every function pattern, places the
// interleaved codeword stream, draws the remainder bits, and applies the
// mask. It returns the module width.
func (img *Image) DrawAll(src CodewordSource) int {
	img.clear()
	img.drawFinders()
	img.drawAlignments()
	img.drawTimingPatterns()
	img.drawVersionInfo()
	img.drawData(src)
	img.drawRemaining()
	img.drawFormatInfo()
	img.applyMask()
	return img.width
}

// Package render turns a panicqr.Bitmap into host-side representations: a
// PNG image, an SVG document, and a terminal-friendly string dump. None of
// this runs on the panic path — it exists for the CLI and preview tooling
// in cmd/, and for developers eyeballing the encoder's output during
// bring-up.
package render

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"strings"

	"github.com/drmpanic/panicqr"
)

// String renders bm as a block-character grid, one line per row, light
// modules as "░" and dark modules as "▓", preceded by a header line giving
// the size in modules.
func String(bm panicqr.Bitmap) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "panicqr: %dx%d modules\n", bm.Width(), bm.Width())
	for y := 0; y < bm.Width(); y++ {
		for x := 0; x < bm.Width(); x++ {
			if bm.Light(x, y) {
				sb.WriteString("░")
			} else {
				sb.WriteString("▓")
			}
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// SVG returns a scalable vector graphics document of bm, with the given
// quiet-zone border in modules. Dark modules are rendered as black squares
// on a white background.
func SVG(bm panicqr.Bitmap, border int) (string, error) {
	if border < 0 {
		return "", fmt.Errorf("render: border must be non-negative")
	}

	dim := bm.Width() + border*2
	var sb strings.Builder
	fmt.Fprintf(&sb, "<svg xmlns=\"http://www.w3.org/2000/svg\" version=\"1.1\" viewBox=\"0 0 %[1]d %[1]d\" stroke=\"none\">\n", dim)
	sb.WriteString("\t<rect width=\"100%\" height=\"100%\" fill=\"#FFFFFF\"/>\n")
	sb.WriteString("\t<path d=\"")
	first := true
	for y := 0; y < bm.Width(); y++ {
		for x := 0; x < bm.Width(); x++ {
			if !bm.Light(x, y) {
				if !first {
					sb.WriteString(" ")
				}
				first = false
				fmt.Fprintf(&sb, "M%d,%dh1v1h-1z", x+border, y+border)
			}
		}
	}
	sb.WriteString("\" fill=\"#000000\"/>\n")
	sb.WriteString("</svg>\n")
	return sb.String(), nil
}

// WritePNG writes bm to w as a PNG, scale pixels per module, with a 4
// module quiet-zone border.
func WritePNG(w io.Writer, bm panicqr.Bitmap, scale int) error {
	if scale < 1 {
		scale = 1
	}
	const border = 4
	dim := (bm.Width() + 2*border) * scale

	img := image.NewPaletted(image.Rect(0, 0, dim, dim), color.Palette{color.White, color.Black})
	for i := range img.Pix {
		img.Pix[i] = 0 // white
	}

	for y := 0; y < bm.Width(); y++ {
		for x := 0; x < bm.Width(); x++ {
			if bm.Light(x, y) {
				continue
			}
			startX := (x + border) * scale
			startY := (y + border) * scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(startX+dx, startY+dy, 1)
				}
			}
		}
	}

	return png.Encode(w, img)
}

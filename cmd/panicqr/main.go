// Command panicqr encodes a payload into a QR Code using the panicqr
// encoder, for local testing of the Low-ECC, checkerboard-mask encoding
// used by drm panic screens. It is ordinary host-side tooling: it reads a
// file or stdin, allocates freely, and is not part of the panic path.
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"github.com/drmpanic/panicqr"
	"github.com/drmpanic/panicqr/internal/qrlog"
	"github.com/drmpanic/panicqr/render"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		qrlog.New("panicqr").Fatal(err)
	}
}

func run(args []string) error {
	flags := pflag.NewFlagSet("panicqr", pflag.ContinueOnError)
	url := flags.String("url", "", "binary URL prefix; if set, the payload is appended as a numeric segment")
	eccLevel := flags.String("ecc-level", "low", "error correction level (only \"low\" is supported)")
	out := flags.String("out", "-", "output file, or - for stdout")
	format := flags.String("format", "term", "output format: term, svg, or png")
	scale := flags.Int("scale", 8, "pixels per module, for png output")
	in := flags.String("in", "-", "input payload file, or - for stdin")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *eccLevel != "low" {
		return fmt.Errorf("panicqr: only --ecc-level=low is supported")
	}

	log := qrlog.New("panicqr")

	payload, err := readAll(*in)
	if err != nil {
		return fmt.Errorf("panicqr: reading input: %w", err)
	}
	if len(payload) > panicqr.MaxDataBufLen {
		return fmt.Errorf("panicqr: payload is %d bytes, exceeds %d-byte capacity: %w", len(payload), panicqr.MaxDataBufLen, panicqr.ErrCapacityExceeded)
	}

	var dataBuf [panicqr.MaxDataBufLen]byte
	var tmpBuf [panicqr.MaxTmpBufLen]byte
	copy(dataBuf[:], payload)

	var width uint8
	if *url != "" {
		width, err = panicqr.EncodeURL([]byte(*url), dataBuf[:], len(payload), tmpBuf[:])
	} else {
		width, err = panicqr.EncodeText(dataBuf[:], len(payload), tmpBuf[:])
	}
	if err != nil {
		return err
	}
	log.Info("encoded", "width", width, "payloadBytes", len(payload))

	bm := panicqr.NewBitmap(dataBuf[:], width)

	w, closeFn, err := openOut(*out)
	if err != nil {
		return err
	}
	defer closeFn()

	switch *format {
	case "term":
		_, err = io.WriteString(w, render.String(bm))
	case "svg":
		var svg string
		svg, err = render.SVG(bm, 4)
		if err == nil {
			_, err = io.WriteString(w, svg)
		}
	case "png":
		err = render.WritePNG(w, bm, *scale)
	default:
		err = fmt.Errorf("panicqr: unknown --format %q", *format)
	}
	return err
}

func readAll(path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}

func openOut(path string) (io.Writer, func(), error) {
	if path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

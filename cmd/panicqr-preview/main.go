// Command panicqr-preview renders a payload to a PNG in a temp directory
// and opens it in the host's default browser, for eyeballing panicqr's
// output during bring-up. It never runs on the panic path.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pkg/browser"
	"github.com/spf13/pflag"

	"github.com/drmpanic/panicqr"
	"github.com/drmpanic/panicqr/internal/qrlog"
	"github.com/drmpanic/panicqr/render"
)

func main() {
	log := qrlog.New("panicqr-preview")

	url := pflag.String("url", "", "binary URL prefix; if set, the payload is appended as a numeric segment")
	scale := pflag.Int("scale", 10, "pixels per module")
	pflag.Parse()

	payload, err := os.ReadFile(pflag.Arg(0))
	if err != nil {
		log.Fatal("reading payload file", "err", err)
	}
	if len(payload) > panicqr.MaxDataBufLen {
		log.Fatal("payload exceeds capacity", "bytes", len(payload), "max", panicqr.MaxDataBufLen)
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
		log.Fatal("encoding", "err", err)
	}

	bm := panicqr.NewBitmap(dataBuf[:], width)

	path := filepath.Join(os.TempDir(), fmt.Sprintf("panicqr-preview-%d.png", os.Getpid()))
	f, err := os.Create(path)
	if err != nil {
		log.Fatal("creating preview file", "err", err)
	}
	if err := render.WritePNG(f, bm, *scale); err != nil {
		f.Close()
		log.Fatal("writing png", "err", err)
	}
	f.Close()

	log.Info("opening preview", "path", path, "width", width)
	if err := browser.OpenFile(path); err != nil {
		log.Fatal("opening browser", "err", err)
	}
}

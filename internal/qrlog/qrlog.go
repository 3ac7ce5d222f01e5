// Package qrlog provides the structured logger used by the panicqr CLI and
// preview tools. It is a thin wrapper around charmbracelet/log configured
// with a fixed time format and colored level tags; internal/qrcore and the
// panicqr package itself never import this package, since the panic-path
// encoder must never log.
package qrlog

import (
	"os"
	"time"

	"github.com/charmbracelet/log"
)

// New returns a logger writing to stderr, prefixed with the given name.
func New(name string) *log.Logger {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.Kitchen,
		Prefix:          name,
	})
	return logger
}

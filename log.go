package hh

import (
	"io"

	kitlog "github.com/go-kit/kit/log"
)

// NewLogger returns a logfmt logger on w, safe for concurrent use.
func NewLogger(w io.Writer) kitlog.Logger {
	return kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(w))
}

func loggerOrNop(l kitlog.Logger) kitlog.Logger {
	if l == nil {
		return kitlog.NewNopLogger()
	}
	return l
}

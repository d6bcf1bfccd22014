package fresco

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/davecgh/go-spew/spew"
)

var dumpConfig = spew.ConfigState{Indent: "  ", SortKeys: true, DisablePointerAddresses: true}

// Dump writes v to stderr prefixed with the caller's location.
func Dump(v ...any) {
	_, file, line, _ := runtime.Caller(1)
	DumpTo(os.Stderr, fmt.Sprintf("%s:%d:", file, line), v...)
}

// DumpTo writes a labelled, deterministic dump of v to w.
func DumpTo(w io.Writer, label string, v ...any) {
	fmt.Fprintln(w, label)
	dumpConfig.Fdump(w, v...)
}

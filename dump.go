package mealcart

import (
	"fmt"
	"io"
	"os"
	"runtime"

	"github.com/davecgh/go-spew/spew"
)

// dumpConfig sorts map keys so two dumps of the same list diff cleanly.
var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

// Dump pretty-prints values to stderr, prefixed with the caller's file and line.
func Dump(v ...any) {
	_, file, line, _ := runtime.Caller(1)
	DumpTo(os.Stderr, fmt.Sprintf("%s:%d:", file, line), v...)
}

// DumpTo writes a labelled spew dump of v to w.
func DumpTo(w io.Writer, label string, v ...any) {
	fmt.Fprintln(w, label)
	dumpConfig.Fdump(w, v...)
}

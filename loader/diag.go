package loader

import (
	"fmt"
	"os"
)

// Diag receives a best-effort notice of the failing physical path before a
// load failure propagates. It is not part of the functional contract and
// must never itself fail the load.
type Diag interface {
	Notice(path string, err error)
}

// DiagFunc adapts a function to the Diag interface.
type DiagFunc func(path string, err error)

// Notice implements Diag.
func (f DiagFunc) Notice(path string, err error) {
	f(path, err)
}

// stderrDiag is the default sink.
type stderrDiag struct{}

func (stderrDiag) Notice(path string, err error) {
	fmt.Fprintf(os.Stderr, "modpath: load failed: %s: %v\n", path, err)
}

// notice reports a failing path on the diagnostic channel. A panicking sink
// is swallowed; diagnostics never turn into a second failure.
func (l *Loader) notice(path string, err error) {
	defer func() {
		_ = recover()
	}()
	if l.diag == nil {
		return
	}
	l.diag.Notice(path, err)
}

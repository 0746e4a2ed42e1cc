package loader

import (
	"sync"

	"github.com/wrybill/modpath/internal/bundle"
)

var (
	installMu      sync.Mutex
	installed      Resolver
	bundleDetector = bundle.Active
)

// Install makes r the process-wide resolver. The transition is one-time and
// irreversible: the first successful installation wins and there is no API
// to uninstall or reconfigure afterward.
//
// Installation is skipped entirely when the binary carries an embedded
// script bundle: those builds fixed every path at link time and standard
// resolution already works for them. The return value reports whether r was
// actually installed.
func Install(r Resolver) bool {
	if r == nil {
		return false
	}
	installMu.Lock()
	defer installMu.Unlock()
	if installed != nil {
		return false
	}
	if bundleDetector() {
		return false
	}
	installed = r
	return true
}

// Default returns the installed process-wide resolver, or nil before
// installation.
func Default() Resolver {
	installMu.Lock()
	defer installMu.Unlock()
	return installed
}

// Installed reports whether a process-wide resolver exists.
func Installed() bool {
	return Default() != nil
}

package loader

import (
	"bytes"
	"fmt"
	"reflect"
	"sort"

	"github.com/traefik/yaegi/interp"
	"github.com/traefik/yaegi/stdlib"

	"github.com/wrybill/modpath/internal/module"
)

// hostPackage is the import path scripts use to reach back into the loader:
//
//	import "modpath"
//	dep, err := modpath.Import("pkg.sub")
const hostPackage = "modpath/modpath"

// scriptPackage is the package name scripts declare; their globals live
// under it inside the interpreter.
const scriptPackage = "main"

// namespace wraps one yaegi interpreter holding a single module's executed
// globals. It implements module.Symbols.
type namespace struct {
	interp *interp.Interpreter
}

// newNamespace builds a fresh interpreter with the Go standard library and
// the host import hook exposed to the script.
func (l *Loader) newNamespace() (*namespace, error) {
	i := interp.New(interp.Options{})
	if err := i.Use(stdlib.Symbols); err != nil {
		return nil, fmt.Errorf("stdlib symbols: %w", err)
	}
	exports := interp.Exports{
		hostPackage: {
			"Import": reflect.ValueOf(l.scriptImport),
		},
	}
	if err := i.Use(exports); err != nil {
		return nil, fmt.Errorf("host symbols: %w", err)
	}
	return &namespace{interp: i}, nil
}

// scriptImport is the Import function scripts see. Binding it to the loader
// rather than a process global keeps isolated loaders isolated in tests.
func (l *Loader) scriptImport(name string) (*module.Module, error) {
	return l.Load(Name(name))
}

// Exec compiles and runs source against the namespace. The path is only
// used to label compile errors.
func (ns *namespace) Exec(path string, src []byte) error {
	if _, err := ns.interp.Eval(string(src)); err != nil {
		return fmt.Errorf("exec %s: %w", path, err)
	}
	return nil
}

// Lookup resolves a single identifier from the executed globals.
func (ns *namespace) Lookup(name string) (reflect.Value, error) {
	return ns.interp.Eval(name)
}

// Exported lists the exported symbols the script declared, sorted.
func (ns *namespace) Exported() []string {
	symbols := ns.interp.Symbols(scriptPackage)
	var names []string
	for _, pkg := range symbols {
		for name := range pkg {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// normalizeNewlines maps CRLF and lone CR to LF so source text compiles the
// same regardless of which platform wrote the file.
func normalizeNewlines(src []byte) []byte {
	src = bytes.ReplaceAll(src, []byte("\r\n"), []byte("\n"))
	return bytes.ReplaceAll(src, []byte("\r"), []byte("\n"))
}

package loader

import (
	"errors"
	"fmt"
)

// NotFoundError reports that a name matched neither a package directory nor
// any recognized extension. Absence of a module is not a load failure; the
// runtime surfaces it as "no such module" and may consult other resolvers.
type NotFoundError struct {
	Name Name
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("loader: no module %s", e.Name)
}

// LoadError is the uniform wrapped failure for any error during file access,
// compilation, or body execution. It carries the failing physical path and
// the original cause, so nested load failures stay traceable to the
// innermost real error through errors.Is and errors.As.
type LoadError struct {
	Name Name
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("loader: load %s (%s): %v", e.Name, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err is a pass for a missing module.
func IsNotFound(err error) bool {
	var notFound *NotFoundError
	return errors.As(err, &notFound)
}

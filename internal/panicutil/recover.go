package panicutil

import (
	"github.com/sourcegraph/conc/panics"
)

// Run calls f and returns a panic raised by f as an error of type *panics.ErrRecovered.
// It returns nil if f returns normally.
func Run(f func()) error {
	var catcher panics.Catcher
	catcher.Try(f)
	if recovered := catcher.Recovered(); recovered != nil {
		return recovered.AsError()
	}
	return nil
}

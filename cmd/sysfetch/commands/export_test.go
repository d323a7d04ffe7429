package commands

import (
	"io"

	"github.com/ubuntu/sysfetch/internal/modules"
)

// SetArgs sets the arguments for the command.
func (a *App) SetArgs(args []string) {
	a.cmd.SetArgs(args)
}

// SetOut sets where the command prints.
func (a *App) SetOut(w io.Writer) {
	a.cmd.SetOut(w)
}

// WithMemoryDetector sets the memory detector of the modules.
func WithMemoryDetector(d modules.MemoryDetector) Options {
	return func(o *appOptions) {
		o.memory = d
	}
}

// WithSystemDetector sets the system detector of the modules.
func WithSystemDetector(d modules.SystemDetector) Options {
	return func(o *appOptions) {
		o.system = d
	}
}

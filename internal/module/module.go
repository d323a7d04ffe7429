// Package module is the dispatch layer of sysfetch.
//
// It resolves the tokens of a structure string, or the entries of a configuration, to modules and
// routes every module to exactly one output: a configuration document when migrating, a JSON
// result when printing JSON, or text otherwise.
package module

import (
	"context"

	"github.com/ubuntu/sysfetch/internal/printer"
)

// Module is a unit of detected information.
type Module interface {
	// Name is the name used in structures, options and keys.
	Name() string
	// Description is a one line summary of what the module prints.
	Description() string
	// ParseOption parses a --<name>-<subkey> command line option.
	// It returns false if the option is not handled by the module.
	ParseOption(key, value string) (bool, error)
	// Print detects and prints the module information.
	Print(ctx context.Context, p *printer.Printer)
}

// JSONConfigGenerator is a module that can describe its options in a configuration document.
type JSONConfigGenerator interface {
	// GenerateJSONConfig adds the module options that differ from their default to obj.
	GenerateJSONConfig(obj map[string]any)
}

// JSONResultGenerator is a module that can print its information as JSON.
type JSONResultGenerator interface {
	// GenerateJSONResult detects the module information and returns it as a JSON serializable value.
	GenerateJSONResult(ctx context.Context) (any, error)
}

// ObjectParser is a module that can be configured from a configuration object.
type ObjectParser interface {
	// FromObject returns a new module configured with obj, starting from the default options.
	// Invalid keys are reported in the error, while the returned module carries the valid ones.
	FromObject(obj map[string]any) (Module, error)
}

// Preparer is a module starting its detection before it is printed.
type Preparer interface {
	// Prepare starts the detection in the background.
	Prepare(ctx context.Context)
}

// SubKeyLister is a module parsing command line options beyond the ones every module shares.
type SubKeyLister interface {
	// SubKeys lists the <subkey> part of every --<name>-<subkey> option the module parses.
	SubKeys() []string
}

// Package testutils provides helpers shared by the tests of several packages.
package testutils

import (
	"errors"
	"os"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

// FlagCase describes a flag expected on a command.
type FlagCase struct {
	Short string
	// Default is checked when not empty.
	Default string
	// Local flags are looked up in the command flags instead of its persistent flags.
	Local bool
}

// AssertFlag checks that cmd defines the flag name as described by fc.
func AssertFlag(t *testing.T, cmd *cobra.Command, name string, fc FlagCase) bool {
	t.Helper()

	flags := cmd.PersistentFlags()
	if fc.Local {
		flags = cmd.Flags()
	}

	f := flags.Lookup(name)
	if !assert.NotNil(t, f, "Flag %q should exist", name) {
		return false
	}

	ok := assert.Equal(t, fc.Short, f.Shorthand, "Flag %q has an unexpected shorthand", name)
	if fc.Default != "" {
		ok = assert.Equal(t, fc.Default, f.DefValue, "Flag %q has an unexpected default value", name) && ok
	}
	return ok
}

// fakeCmdSeparator separates the test binary arguments from the fake command arguments.
const fakeCmdSeparator = "--"

// SetupFakeCmdArgs returns the command line to run the test binary as a fake command.
// fakeCmdFunc is the name of the test function acting as the command and args are handed to it.
func SetupFakeCmdArgs(fakeCmdFunc string, args ...string) []string {
	cmdArgs := []string{os.Args[0], "-test.run=^" + fakeCmdFunc + "$", fakeCmdSeparator}
	return append(cmdArgs, args...)
}

// GetFakeCmdArgs returns the arguments handed to a fake command.
// It returns an error when the test binary was not started as a fake command.
func GetFakeCmdArgs() ([]string, error) {
	for i, arg := range os.Args {
		if arg != fakeCmdSeparator {
			continue
		}
		if i+1 >= len(os.Args) {
			return nil, errors.New("no arguments were given to the fake command")
		}
		return os.Args[i+1:], nil
	}
	return nil, errors.New("not running as a fake command")
}

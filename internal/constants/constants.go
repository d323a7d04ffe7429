// Package constants is responsible for defining the constants used in the application.
// It also lists the directories the configuration file is searched in.
package constants

import (
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
)

var (
	// Version is the version of the application, overridden at build time.
	Version = "Dev"
)

const (
	// CmdName is the name of the command line tool.
	CmdName = "sysfetch"

	// DefaultAppFolder is the name of the default configuration folder.
	DefaultAppFolder = "sysfetch"

	// DefaultLogLevel is the default log level selected without any verbosity flags.
	DefaultLogLevel = slog.LevelWarn

	// DefaultStructure is the structure used when none is configured.
	DefaultStructure = "Title:Separator:OS:Host:Kernel:Uptime:CPU:Memory:Swap:Break"

	// StructureSeparator separates module tokens in a structure string.
	StructureSeparator = ':'

	// NoImplementation is reported for structure tokens matching no module nor custom value.
	NoImplementation = "<no implementation provided>"

	// UnsupportedJSON is reported in JSON results for modules without a JSON result.
	UnsupportedJSON = "Unsupported for JSON format"
)

type options struct {
	userConfigDir func() (string, error)
	executable    func() (string, error)
	goos          string
}

type option func(*options)

// ConfigDirs returns the directories searched for the configuration file, most specific first:
// the current directory, the user configuration directory, the system configuration directories
// and the directory of the executable.
func ConfigDirs(opts ...option) []string {
	o := options{
		userConfigDir: os.UserConfigDir,
		executable:    os.Executable,
		goos:          runtime.GOOS,
	}
	for _, opt := range opts {
		opt(&o)
	}

	dirs := []string{"."}
	if dir, err := o.userConfigDir(); err == nil && dir != "" {
		dirs = append(dirs, filepath.Join(dir, DefaultAppFolder))
	}

	if o.goos == "windows" {
		dirs = append(dirs, `C:\ProgramData\`+DefaultAppFolder)
	} else {
		dirs = append(dirs, "/etc/"+DefaultAppFolder, "/usr/local/etc/"+DefaultAppFolder)
	}

	if exe, err := o.executable(); err != nil {
		slog.Warn("Failed to get current executable path, not adding it as a config dir", "error", err)
	} else {
		dirs = append(dirs, filepath.Dir(exe))
	}
	return dirs
}

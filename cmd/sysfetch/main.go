// Main package for the sysfetch command line tool.
package main

import (
	"log/slog"
	"os"

	"github.com/ubuntu/sysfetch/cmd/sysfetch/commands"
	"github.com/ubuntu/sysfetch/internal/constants"
)

func main() {
	slog.SetLogLoggerLevel(constants.DefaultLogLevel)

	a, err := commands.New()
	if err != nil {
		slog.Error(err.Error())
		os.Exit(1)
	}

	os.Exit(run(a))
}

type app interface {
	Run() error
	UsageError() bool
}

func run(a app) int {
	if err := a.Run(); err != nil {
		slog.Error(err.Error())

		if a.UsageError() {
			return 2
		}
		return 1
	}

	return 0
}

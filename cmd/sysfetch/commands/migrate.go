package commands

import (
	"bytes"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/ubuntu/sysfetch/internal/config"
	"github.com/ubuntu/sysfetch/internal/fileutils"
	"github.com/ubuntu/sysfetch/internal/module"
)

type migrateConfig struct {
	format string
}

func installMigrateCmd(app *App) {
	var mc migrateConfig

	migrateCmd := &cobra.Command{
		Use:   "migrate-config [FILE]",
		Short: "Print the modules and their options as a configuration file",
		Long: `Print the modules of the structure, with the options set on the command line, as the
modules list of a configuration file.

If FILE is provided, the configuration is written to it instead of the standard output and its
extension selects the format, unless --format is set.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			slog.Info("Running migrate-config command", "file", path)
			return app.migrate(path, mc)
		},
	}

	migrateCmd.Flags().StringVarP(&mc.format, "format", "f", "", "format of the configuration: json, yaml or toml (default from the file extension, or json)")

	app.cmd.AddCommand(migrateCmd)
}

// migrate writes the configuration document of the modules to path, or to the command output
// when path is empty.
func (a *App) migrate(path string, mc migrateConfig) error {
	format := config.FormatFromPath(path)
	if mc.format != "" {
		f, err := config.ParseFormat(mc.format)
		if err != nil {
			return err
		}
		format = f
	}

	doc, err := a.document()
	if err != nil {
		return err
	}

	var out bytes.Buffer
	d, err := a.newDispatcher(io.Discard, module.WithMigration(true))
	if err != nil {
		return err
	}
	a.dispatch(d, doc)

	migrated := config.Document{Modules: make([]any, 0, len(d.Config()))}
	for _, obj := range d.Config() {
		migrated.Modules = append(migrated.Modules, obj)
	}
	if err := config.Write(&out, format, migrated); err != nil {
		return err
	}

	if path == "" {
		_, err := a.cmd.OutOrStdout().Write(out.Bytes())
		return err
	}

	if err := fileutils.AtomicWrite(path, out.Bytes(), 0644); err != nil {
		return err
	}
	slog.Info("Configuration written", "file", path, "format", format)
	return nil
}

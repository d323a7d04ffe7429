// Package commands implements the sysfetch command line.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/ubuntu/sysfetch/internal/cli"
	"github.com/ubuntu/sysfetch/internal/constants"
	"github.com/ubuntu/sysfetch/internal/detect/memory"
	"github.com/ubuntu/sysfetch/internal/detect/system"
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/modules"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// App represents the application.
type App struct {
	cmd    *cobra.Command
	viper  *viper.Viper
	config appConfig

	detectors   appOptions
	registry    *module.Registry
	moduleFlags []string

	ctx    context.Context
	cancel context.CancelFunc
}

// appConfig holds the global settings of the application.
type appConfig struct {
	Verbosity    int    `mapstructure:"verbose"`
	Structure    string `mapstructure:"structure"`
	JSON         bool   `mapstructure:"json"`
	Stat         bool   `mapstructure:"stat"`
	Pipe         bool   `mapstructure:"pipe"`
	ShowErrors   bool   `mapstructure:"show-errors"`
	Separator    string `mapstructure:"separator"`
	KeyColor     string `mapstructure:"key-color"`
	KeyWidth     int    `mapstructure:"key-width"`
	BinaryPrefix string `mapstructure:"binary-prefix"`
	PercentType  uint8  `mapstructure:"percent-type"`
	Watch        bool   `mapstructure:"watch"`

	// Custom values are only read from the command line: viper splits string arrays on commas.
	Set        []string `mapstructure:"-"`
	SetKeyless []string `mapstructure:"-"`
}

type appOptions struct {
	memory modules.MemoryDetector
	system modules.SystemDetector
}

// Options represents an optional function to override App default values.
type Options func(*appOptions)

// New registers commands and returns a new App.
func New(args ...Options) (*App, error) {
	opts := appOptions{
		memory: memory.New(),
		system: system.New(),
	}
	for _, opt := range args {
		opt(&opts)
	}

	a := App{detectors: opts}
	r, err := a.newRegistry()
	if err != nil {
		return nil, err
	}
	a.registry = r
	a.ctx, a.cancel = context.WithCancel(context.Background())

	a.cmd = &cobra.Command{
		Use:   constants.CmdName,
		Short: "Print system information",
		Long: `Print system information, one module per line.

The modules to print are read from the structure, a colon separated list of module names, or from
the modules list of the configuration file.`,
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Command parsing has been successful. Returns to not print usage anymore.
			a.cmd.SilenceUsage = true
			cli.SetVerbosity(a.config.Verbosity) // Set verbosity before loading config
			if err := cli.InitViperConfig(constants.CmdName, a.cmd, a.viper); err != nil {
				return err
			}
			return a.applyConfig()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.fetch()
		},
	}
	a.viper = viper.New()
	a.cmd.CompletionOptions.HiddenDefaultCmd = true

	installRootCmd(&a)
	cli.InstallConfigFlag(a.cmd)
	if err := a.installModuleFlags(); err != nil {
		return nil, err
	}

	if err := a.viper.BindPFlags(a.cmd.PersistentFlags()); err != nil {
		return nil, err
	}

	installMigrateCmd(&a)
	installModulesCmd(&a)
	a.installVersion()

	return &a, nil
}

func installRootCmd(app *App) {
	cmd := app.cmd
	defaults := printer.DefaultConfig()

	cmd.PersistentFlags().CountVarP(&app.config.Verbosity, "verbose", "v", "issue INFO (-v), DEBUG (-vv)")

	cmd.PersistentFlags().StringVarP(&app.config.Structure, "structure", "s", "", "colon separated list of the modules to print, overriding the configured modules")
	cmd.PersistentFlags().BoolVarP(&app.config.JSON, "json", "j", false, "print the module results as JSON")
	cmd.PersistentFlags().BoolVar(&app.config.Stat, "stat", false, "print the time every module took")
	cmd.PersistentFlags().BoolVar(&app.config.Pipe, "pipe", !isTerminal(os.Stdout), "disable colors, the default when the output is not a terminal")
	cmd.PersistentFlags().BoolVar(&app.config.ShowErrors, "show-errors", false, "print module errors instead of skipping the module")
	cmd.PersistentFlags().StringVar(&app.config.Separator, "separator", defaults.Separator, "string printed between a key and its value")
	cmd.PersistentFlags().StringVar(&app.config.KeyColor, "key-color", defaults.KeyColor, "color of the keys, as a name, an ANSI code or a hex value")
	cmd.PersistentFlags().IntVar(&app.config.KeyWidth, "key-width", 0, "pad keys and their separator to this width")
	cmd.PersistentFlags().StringVar(&app.config.BinaryPrefix, "binary-prefix", string(defaults.BinaryPrefix), "units used to print sizes: iec, si or jedec")
	cmd.PersistentFlags().Uint8Var(&app.config.PercentType, "percent-type", uint8(defaults.PercentType), "percentage style, a sum of 1 (number), 2 (bar) and 4 (hide other values)")
	cmd.PersistentFlags().StringArrayVar(&app.config.Set, "set", nil, "print a custom value with its key when the structure names it, as key=value")
	cmd.PersistentFlags().StringArrayVar(&app.config.SetKeyless, "set-keyless", nil, "print a custom value without key when the structure names it, as key=value")
	cmd.PersistentFlags().BoolVar(&app.config.Watch, "watch", false, "print again every time the configuration file changes, until interrupted")
}

// newRegistry returns a registry of every module, with their default options.
func (a *App) newRegistry() (*module.Registry, error) {
	r, err := module.NewRegistry(modules.All(a.detectors.memory, a.detectors.system)...)
	if err != nil {
		return nil, fmt.Errorf("failed to register modules: %v", err)
	}
	return r, nil
}

// applyConfig decodes the settings read by viper into the app and hands the module options to a
// new set of modules.
func (a *App) applyConfig() error {
	if err := a.viper.Unmarshal(&a.config); err != nil {
		return fmt.Errorf("unable to decode configuration into struct: %w", err)
	}
	slog.Debug("Got app config", "config", a.config)
	cli.SetVerbosity(a.config.Verbosity)

	r, err := a.newRegistry()
	if err != nil {
		return err
	}
	a.registry = r
	return a.parseModuleFlags()
}

// installModuleFlags adds a --<module>-<subkey> flag for every option of every module.
func (a *App) installModuleFlags() error {
	fs := pflag.NewFlagSet("modules", pflag.ContinueOnError)
	for _, m := range a.registry.Modules() {
		subKeys := options.ArgSubKeys
		if l, ok := m.(module.SubKeyLister); ok {
			subKeys = l.SubKeys()
		}

		for _, k := range subKeys {
			name := strings.ToLower(m.Name()) + "-" + k
			if a.cmd.PersistentFlags().Lookup(name) != nil || fs.Lookup(name) != nil {
				return fmt.Errorf("flag %q of module %s is already defined", name, m.Name())
			}
			fs.String(name, "", fmt.Sprintf("%s %s", m.Name(), k))
			a.moduleFlags = append(a.moduleFlags, name)
		}
	}
	a.cmd.PersistentFlags().AddFlagSet(fs)
	return nil
}

// parseModuleFlags hands the module options set on the command line or in the configuration
// file to the modules.
func (a *App) parseModuleFlags() error {
	for _, name := range a.moduleFlags {
		if !a.viper.IsSet(name) {
			continue
		}

		key := "--" + name
		handled, err := a.registry.ParseOption(key, a.viper.GetString(name))
		if err != nil {
			return fmt.Errorf("invalid option %s: %w", key, err)
		}
		if !handled {
			return fmt.Errorf("option %s is not handled by any module", key)
		}
	}
	return nil
}

// Run executes the command and associated process, returning an error if any.
func (a App) Run() error {
	defer a.cancel()
	return a.cmd.Execute()
}

// UsageError returns if the error is a command parsing or runtime one.
func (a App) UsageError() bool {
	return !a.cmd.SilenceUsage
}

// Quit stops a running watch.
func (a *App) Quit() {
	a.cancel()
}

// RootCmd returns the root command.
func (a App) RootCmd() cobra.Command {
	return *a.cmd
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

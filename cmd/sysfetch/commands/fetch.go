package commands

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ubuntu/sysfetch/internal/config"
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// fetch prints the configured modules once, or on every configuration change when watching.
func (a *App) fetch() error {
	doc, err := a.document()
	if err != nil {
		return err
	}

	if a.config.Watch {
		return a.watch(doc)
	}
	return a.render(a.cmd.OutOrStdout(), doc)
}

// document returns the structure and modules to print.
// A structure given on the command line replaces the configured modules.
func (a *App) document() (config.Document, error) {
	doc := config.Document{Structure: a.config.Structure}
	if a.cmd.PersistentFlags().Changed("structure") {
		return doc, nil
	}

	entries, err := config.Entries(a.viper.Get("modules"))
	if err != nil {
		return config.Document{}, fmt.Errorf("invalid configuration: %w", err)
	}
	doc.Modules = entries
	return doc, nil
}

// render runs the modules of doc and writes them as text or as a JSON result to w.
func (a *App) render(w io.Writer, doc config.Document) error {
	d, err := a.newDispatcher(w, module.WithJSONResult(a.config.JSON))
	if err != nil {
		return err
	}
	a.dispatch(d, doc)

	if !a.config.JSON {
		return nil
	}

	data, err := json.MarshalIndent(d.Result(), "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode JSON result: %v", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}

// newDispatcher builds a dispatcher printing to w with the global settings.
func (a *App) newDispatcher(w io.Writer, args ...module.Options) (*module.Dispatcher, error) {
	cfg, err := a.printerConfig()
	if err != nil {
		return nil, err
	}

	custom, err := a.customValues()
	if err != nil {
		return nil, err
	}

	args = append([]module.Options{
		module.WithCustomValues(custom),
		module.WithStat(a.config.Stat),
	}, args...)
	return module.NewDispatcher(a.registry, printer.New(w, cfg), args...), nil
}

// dispatch runs the configured modules when no structure is set, and the structure otherwise.
func (a *App) dispatch(d *module.Dispatcher, doc config.Document) {
	if doc.Structure == "" && len(doc.Modules) > 0 {
		d.RunEntries(a.ctx, doc.Modules)
		return
	}
	d.Run(a.ctx, doc.Structure)
}

func (a *App) printerConfig() (printer.Config, error) {
	prefix, err := printer.ParseBinaryPrefix(a.config.BinaryPrefix)
	if err != nil {
		return printer.Config{}, err
	}

	if a.config.PercentType > uint8(printer.PercentNum|printer.PercentBar|printer.PercentHideOthers) {
		return printer.Config{}, fmt.Errorf("invalid percent type %d: must be between 0 and 7", a.config.PercentType)
	}
	if a.config.KeyWidth < 0 {
		return printer.Config{}, fmt.Errorf("invalid key width %d: must be a non-negative integer", a.config.KeyWidth)
	}

	return printer.Config{
		Pipe:         a.config.Pipe,
		ShowErrors:   a.config.ShowErrors,
		Separator:    a.config.Separator,
		KeyColor:     a.config.KeyColor,
		KeyWidth:     a.config.KeyWidth,
		BinaryPrefix: prefix,
		PercentType:  printer.PercentType(a.config.PercentType),
	}, nil
}

func (a *App) customValues() ([]module.CustomValue, error) {
	var values []module.CustomValue
	for _, set := range []struct {
		values   []string
		printKey bool
	}{
		{a.config.Set, true},
		{a.config.SetKeyless, false},
	} {
		for _, s := range set.values {
			cv, err := module.ParseCustomValue(s, set.printKey)
			if err != nil {
				return nil, err
			}
			values = append(values, cv)
		}
	}
	return values, nil
}

// watch prints doc, then prints the configuration file again every time it changes, until
// interrupted or quit.
func (a *App) watch(doc config.Document) error {
	path := a.viper.ConfigFileUsed()
	if path == "" {
		return errors.New("watching needs a configuration file")
	}

	ctx, stop := signal.NotifyContext(a.ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	cm := config.NewManager(path)
	changes, errs, err := cm.Watch(ctx)
	if err != nil {
		return err
	}

	w := a.cmd.OutOrStdout()
	if err := a.render(w, doc); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			slog.Debug("Stopped watching configuration", "path", path)
			return nil
		case _, ok := <-changes:
			if !ok {
				// The watcher stopped: report the error it stopped on, if any.
				return <-errs
			}
			slog.Info("Configuration changed, printing again", "path", path)

			next, err := a.reload()
			if err != nil {
				slog.Warn("Ignoring configuration change", "path", path, "error", err)
				continue
			}
			if err := a.render(w, next); err != nil {
				slog.Warn("Failed to print modules", "error", err)
			}
		case err, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			return err
		}
	}
}

// reload reads the configuration file again and applies it below the command line flags.
func (a *App) reload() (config.Document, error) {
	if err := a.viper.ReadInConfig(); err != nil {
		return config.Document{}, fmt.Errorf("invalid configuration file: %w", err)
	}
	if err := a.applyConfig(); err != nil {
		return config.Document{}, err
	}
	return a.document()
}

package module

import (
	"context"
	"fmt"
	"log/slog"
	"slices"
	"time"

	"github.com/ubuntu/sysfetch/internal/constants"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
	"github.com/ubuntu/sysfetch/internal/structure"
)

// sink is where the dispatcher sends the modules it resolves.
type sink int

const (
	sinkText sink = iota
	sinkResult
	sinkConfig
)

// Result is an element of the JSON result document.
type Result struct {
	Type   string `json:"type"`
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
	// Stat is the time the module took, in milliseconds.
	Stat *int64 `json:"stat,omitempty"`
}

type timeProvider interface {
	Now() time.Time
}

type realTimeProvider struct{}

func (realTimeProvider) Now() time.Time {
	return time.Now()
}

// Dispatcher runs modules and routes them to exactly one output.
type Dispatcher struct {
	registry *Registry
	printer  *printer.Printer

	custom []CustomValue
	stat   bool
	sink   sink
	time   timeProvider

	result []Result
	config []map[string]any

	log *slog.Logger
}

type dispatchOptions struct {
	custom     []CustomValue
	stat       bool
	jsonResult bool
	migration  bool

	log *slog.Logger
	// Private members exported for tests.
	timeProvider timeProvider
}

// Options represents an optional function to override Dispatcher default values.
type Options func(*dispatchOptions)

// WithCustomValues sets the custom values matched before the modules.
func WithCustomValues(values []CustomValue) Options {
	return func(o *dispatchOptions) {
		o.custom = values
	}
}

// WithStat reports the time every module took.
func WithStat(stat bool) Options {
	return func(o *dispatchOptions) {
		o.stat = stat
	}
}

// WithJSONResult collects module results in a JSON result document instead of printing them.
func WithJSONResult(enabled bool) Options {
	return func(o *dispatchOptions) {
		o.jsonResult = enabled
	}
}

// WithMigration collects module options in a configuration document instead of running them.
// It takes precedence over WithJSONResult.
func WithMigration(enabled bool) Options {
	return func(o *dispatchOptions) {
		o.migration = enabled
	}
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Options {
	return func(o *dispatchOptions) {
		o.log = l
	}
}

// NewDispatcher returns a Dispatcher resolving modules from r and printing text with p.
func NewDispatcher(r *Registry, p *printer.Printer, args ...Options) *Dispatcher {
	opts := &dispatchOptions{
		log:          slog.Default(),
		timeProvider: realTimeProvider{},
	}
	for _, opt := range args {
		opt(opts)
	}

	s := sinkText
	switch {
	case opts.migration:
		s = sinkConfig
	case opts.jsonResult:
		s = sinkResult
	}

	return &Dispatcher{
		registry: r,
		printer:  p,
		custom:   opts.custom,
		stat:     opts.stat && s != sinkConfig,
		sink:     s,
		time:     opts.timeProvider,
		log:      opts.log,
	}
}

// Run runs the modules of a structure string, in order. The default structure is used when it is
// empty.
func (d *Dispatcher) Run(ctx context.Context, s string) {
	tokens := structure.Split(structure.OrDefault(s))
	d.log.Debug("Running structure", "tokens", tokens)

	// Tokens replaced by a custom value never reach their module.
	d.prepare(ctx, slices.DeleteFunc(slices.Clone(tokens), d.isCustom))
	for _, token := range tokens {
		start := d.time.Now()
		d.runToken(ctx, token)
		d.recordStat(start)
	}
}

// RunEntries runs the modules of a configuration. String entries are resolved like structure
// tokens, while objects are resolved by their "type" key and configured from their other keys.
func (d *Dispatcher) RunEntries(ctx context.Context, entries []any) {
	var tokens []string
	for _, e := range entries {
		switch v := e.(type) {
		case string:
			if !d.isCustom(v) {
				tokens = append(tokens, v)
			}
		case map[string]any:
			if t, ok := v["type"].(string); ok {
				tokens = append(tokens, t)
			}
		}
	}
	d.prepare(ctx, tokens)

	for _, e := range entries {
		start := d.time.Now()
		switch v := e.(type) {
		case string:
			d.runToken(ctx, v)
		case map[string]any:
			d.runObject(ctx, v)
		default:
			d.unknown("", fmt.Sprintf("invalid module entry %v: must be a module name or an object", v))
		}
		d.recordStat(start)
	}
}

// ParseModuleCommand resolves token to a module and emits it.
// It returns false when no module is named token.
func (d *Dispatcher) ParseModuleCommand(ctx context.Context, token string) bool {
	m, ok := d.registry.Lookup(token)
	if !ok {
		return false
	}
	d.emit(ctx, m)
	return true
}

// Result returns the JSON result document accumulated so far.
func (d *Dispatcher) Result() []Result {
	if d.result == nil {
		return []Result{}
	}
	return d.result
}

// Config returns the module entries of the configuration document accumulated so far.
func (d *Dispatcher) Config() []map[string]any {
	if d.config == nil {
		return []map[string]any{}
	}
	return d.config
}

func (d *Dispatcher) runToken(ctx context.Context, token string) {
	if cv, ok := d.customValue(token); ok {
		d.emit(ctx, cv.module())
		return
	}

	if d.ParseModuleCommand(ctx, token) {
		return
	}
	d.unknown(token, constants.NoImplementation)
}

// customValue returns the custom value replacing token. Keys match exactly.
func (d *Dispatcher) customValue(token string) (CustomValue, bool) {
	for _, cv := range d.custom {
		if cv.Key == token {
			return cv, true
		}
	}
	return CustomValue{}, false
}

func (d *Dispatcher) isCustom(token string) bool {
	_, ok := d.customValue(token)
	return ok
}

func (d *Dispatcher) runObject(ctx context.Context, obj map[string]any) {
	t, ok := obj["type"].(string)
	if !ok || t == "" {
		d.unknown("", fmt.Sprintf("invalid module object %v: missing type", obj))
		return
	}

	m, ok := d.registry.Lookup(t)
	if !ok {
		d.unknown(t, constants.NoImplementation)
		return
	}

	if parser, ok := m.(ObjectParser); ok {
		configured, err := parser.FromObject(obj)
		if err != nil {
			d.reportError(m.Name(), err)
		}
		if configured != nil {
			m = configured
		}
	}

	d.emit(ctx, m)
}

// emit sends m to the dispatcher sink.
func (d *Dispatcher) emit(ctx context.Context, m Module) {
	switch d.sink {
	case sinkConfig:
		obj := map[string]any{"type": configType(m.Name())}
		if g, ok := m.(JSONConfigGenerator); ok {
			g.GenerateJSONConfig(obj)
		}
		d.config = append(d.config, obj)

	case sinkResult:
		r := Result{Type: m.Name()}
		g, ok := m.(JSONResultGenerator)
		if !ok {
			r.Error = constants.UnsupportedJSON
			d.result = append(d.result, r)
			return
		}
		v, err := g.GenerateJSONResult(ctx)
		if err != nil {
			r.Error = err.Error()
		} else {
			r.Result = v
		}
		d.result = append(d.result, r)

	default:
		m.Print(ctx, d.printer)
	}
}

// unknown reports an entry that could not be resolved to a module.
func (d *Dispatcher) unknown(name, msg string) {
	switch d.sink {
	case sinkConfig:
		d.log.Warn("Skipping unknown module", "module", name, "reason", msg)
	case sinkResult:
		d.result = append(d.result, Result{Type: name, Error: msg})
	default:
		d.printer.Error(name, 0, options.Args{}, "%s", msg)
	}
}

// reportError reports a configuration error of a module that still runs.
func (d *Dispatcher) reportError(name string, err error) {
	if d.sink == sinkText {
		d.printer.Error(name, 0, options.Args{}, "%v", err)
		return
	}
	d.log.Warn("Invalid module configuration", "module", name, "error", err)
}

func (d *Dispatcher) prepare(ctx context.Context, tokens []string) {
	if d.sink == sinkConfig {
		return
	}

	for _, m := range d.registry.Modules() {
		p, ok := m.(Preparer)
		if !ok || !structure.Contains(tokens, m.Name()) {
			continue
		}
		d.log.Debug("Preparing module", "module", m.Name())
		p.Prepare(ctx)
	}
}

func (d *Dispatcher) recordStat(start time.Time) {
	if !d.stat {
		return
	}

	ms := d.time.Now().Sub(start).Milliseconds()
	switch d.sink {
	case sinkResult:
		if len(d.result) > 0 {
			d.result[len(d.result)-1].Stat = &ms
		}
	case sinkText:
		d.printer.Stat(ms)
	}
}

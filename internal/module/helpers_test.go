package module_test

import (
	"context"
	"errors"

	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// fakeModule implements every module capability.
type fakeModule struct {
	name      string
	value     string
	resultErr bool
	args      options.Args

	prepared *bool
}

func newFake(name, value string) *fakeModule {
	return &fakeModule{name: name, value: value, prepared: new(bool)}
}

func (f *fakeModule) Name() string        { return f.name }
func (f *fakeModule) Description() string { return "Fake " + f.name }

func (f *fakeModule) ParseOption(key, value string) (bool, error) {
	subKey, ok := options.TestPrefix(key, f.name)
	if !ok {
		return false, nil
	}
	return f.args.ParseArg(subKey, value)
}

func (f *fakeModule) Print(_ context.Context, p *printer.Printer) {
	p.Line(f.name, 0, f.args, f.value)
}

func (f *fakeModule) GenerateJSONConfig(obj map[string]any) {
	f.args.GenerateConfig(obj)
}

func (f *fakeModule) GenerateJSONResult(context.Context) (any, error) {
	if f.resultErr {
		return nil, errors.New("detection failed")
	}
	return f.value, nil
}

func (f *fakeModule) FromObject(obj map[string]any) (module.Module, error) {
	n := newFake(f.name, f.value)
	return n, options.Decode(obj, &n.args)
}

func (f *fakeModule) Prepare(context.Context) {
	*f.prepared = true
}

// plainModule only implements Module.
type plainModule struct {
	name string
}

func (m plainModule) Name() string                             { return m.name }
func (m plainModule) Description() string                      { return "Plain " + m.name }
func (m plainModule) ParseOption(string, string) (bool, error) { return false, nil }

func (m plainModule) Print(_ context.Context, p *printer.Printer) {
	p.Raw(m.name)
}

package modules

import (
	"context"

	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// Break prints an empty line.
type Break struct {
	base
}

// NewBreak returns the Break module.
func NewBreak() *Break {
	return &Break{base: base{name: "Break", description: "Print an empty line"}}
}

// Print implements module.Module.
func (b *Break) Print(_ context.Context, p *printer.Printer) {
	p.Raw("")
}

// FromObject implements module.ObjectParser.
func (b *Break) FromObject(obj map[string]any) (module.Module, error) {
	n := &Break{base: b.fresh()}
	return n, options.Decode(obj, &n.args)
}

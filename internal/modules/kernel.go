package modules

import (
	"context"

	"github.com/ubuntu/sysfetch/internal/detect/system"
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// KernelDetector detects the running kernel.
type KernelDetector interface {
	Kernel(ctx context.Context) (system.Kernel, error)
}

// Kernel prints the kernel release.
type Kernel struct {
	base
	detector KernelDetector
}

// NewKernel returns the Kernel module.
func NewKernel(d KernelDetector) *Kernel {
	return &Kernel{
		base:     base{name: "Kernel", description: "Print system kernel version"},
		detector: d,
	}
}

// Print implements module.Module.
// The format arguments are {1} name, {2} release and {3} arch.
func (k *Kernel) Print(ctx context.Context, p *printer.Printer) {
	info, err := k.detector.Kernel(ctx)
	if err != nil {
		p.Error(k.name, 0, k.args, "%v", err)
		return
	}

	if k.args.Format == "" {
		p.Line(k.name, 0, k.args, info.Name+" "+info.Release)
		return
	}

	p.Format(k.name, 0, k.args, []printer.Arg{
		{Name: "name", Value: info.Name},
		{Name: "release", Value: info.Release},
		{Name: "arch", Value: info.Arch},
	})
}

// GenerateJSONResult implements module.JSONResultGenerator.
func (k *Kernel) GenerateJSONResult(ctx context.Context) (any, error) {
	return k.detector.Kernel(ctx)
}

// FromObject implements module.ObjectParser.
func (k *Kernel) FromObject(obj map[string]any) (module.Module, error) {
	n := &Kernel{base: k.fresh(), detector: k.detector}
	return n, options.Decode(obj, &n.args)
}

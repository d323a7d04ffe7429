package modules

import (
	"context"
	"fmt"
	"sync"

	"github.com/ubuntu/sysfetch/internal/detect/system"
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// CPUDetector detects the processors.
type CPUDetector interface {
	CPU(ctx context.Context) (system.CPU, error)
}

type cpuResult struct {
	info system.CPU
	err  error
}

// cpuPreparation holds a detection started ahead of printing.
type cpuPreparation struct {
	mu      sync.Mutex
	pending chan cpuResult
}

// CPU prints the processor model and count.
type CPU struct {
	base
	detector CPUDetector
	prep     *cpuPreparation
}

// NewCPU returns the CPU module.
func NewCPU(d CPUDetector) *CPU {
	return &CPU{
		base:     base{name: "CPU", description: "Print CPU name and count"},
		detector: d,
		prep:     &cpuPreparation{},
	}
}

// Prepare implements module.Preparer. The detection runs in the background until the module is
// printed.
func (c *CPU) Prepare(ctx context.Context) {
	c.prep.mu.Lock()
	defer c.prep.mu.Unlock()

	if c.prep.pending != nil {
		return
	}

	ch := make(chan cpuResult, 1)
	c.prep.pending = ch
	go func() {
		info, err := c.detector.CPU(ctx)
		ch <- cpuResult{info: info, err: err}
	}()
}

// detect returns the prepared detection, or detects now.
func (c *CPU) detect(ctx context.Context) (system.CPU, error) {
	c.prep.mu.Lock()
	ch := c.prep.pending
	c.prep.pending = nil
	c.prep.mu.Unlock()

	if ch == nil {
		return c.detector.CPU(ctx)
	}

	select {
	case r := <-ch:
		return r.info, r.err
	case <-ctx.Done():
		return system.CPU{}, ctx.Err()
	}
}

// Print implements module.Module.
// The format arguments are {1} name, {2} vendor, {3} architecture and {4} count.
func (c *CPU) Print(ctx context.Context, p *printer.Printer) {
	info, err := c.detect(ctx)
	if err != nil {
		p.Error(c.name, 0, c.args, "%v", err)
		return
	}

	if c.args.Format == "" {
		v := info.Name
		if info.Count > 0 {
			v = fmt.Sprintf("%s (%d)", v, info.Count)
		}
		p.Line(c.name, 0, c.args, v)
		return
	}

	p.Format(c.name, 0, c.args, []printer.Arg{
		{Name: "name", Value: info.Name},
		{Name: "vendor", Value: info.Vendor},
		{Name: "arch", Value: info.Arch},
		{Name: "count", Value: info.Count},
	})
}

// GenerateJSONResult implements module.JSONResultGenerator.
func (c *CPU) GenerateJSONResult(ctx context.Context) (any, error) {
	return c.detect(ctx)
}

// FromObject implements module.ObjectParser. The new module shares the prepared detection.
func (c *CPU) FromObject(obj map[string]any) (module.Module, error) {
	n := &CPU{base: c.fresh(), detector: c.detector, prep: c.prep}
	return n, options.Decode(obj, &n.args)
}

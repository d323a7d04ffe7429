package modules

import (
	"context"
	"fmt"
	"strings"

	"github.com/ubuntu/sysfetch/internal/detect/memory"
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// MemoryDetector detects memory and swap usage.
type MemoryDetector interface {
	Memory() (memory.Info, error)
	Swap() (memory.Info, error)
}

// Memory prints the usage of a memory area: the physical memory or the swap.
type Memory struct {
	base
	detect func() (memory.Info, error)
}

// NewMemory returns the module printing the physical memory usage.
func NewMemory(d MemoryDetector) *Memory {
	return &Memory{
		base:   base{name: "Memory", description: "Print system memory usage info"},
		detect: d.Memory,
	}
}

// NewSwap returns the module printing the swap usage.
func NewSwap(d MemoryDetector) *Memory {
	return &Memory{
		base:   base{name: "Swap", description: "Print swap (paging file) space usage"},
		detect: d.Swap,
	}
}

// Print implements module.Module.
//
// Without a format, it prints the used and total sizes with the used percentage, according to the
// printer percent type, or "Disabled" when the area is empty.
// The format arguments are {1} used, {2} total and {3} percentage.
func (m *Memory) Print(_ context.Context, p *printer.Printer) {
	info, err := m.detect()
	if err != nil {
		p.Error(m.name, 0, m.args, "%v", err)
		return
	}

	if m.args.Format == "" {
		p.Line(m.name, 0, m.args, usage(p, info))
		return
	}

	p.Format(m.name, 0, m.args, []printer.Arg{
		{Name: "used", Value: p.Size(info.Used)},
		{Name: "total", Value: p.Size(info.Total)},
		{Name: "percentage", Value: info.Percentage()},
	})
}

// usage renders info as "[bar] used / total (percentage)".
func usage(p *printer.Printer, info memory.Info) string {
	if info.Total == 0 {
		return "Disabled"
	}

	percent := info.Percentage()
	percentType := p.Config().PercentType

	var b strings.Builder
	if percentType.Has(printer.PercentBar) {
		b.WriteString(p.PercentBar(percent, 0, 5, 8))
		b.WriteString(" ")
	}
	if !percentType.Has(printer.PercentHideOthers) {
		fmt.Fprintf(&b, "%s / %s ", p.Size(info.Used), p.Size(info.Total))
	}
	if percentType.Has(printer.PercentNum) {
		b.WriteString(p.PercentNum(percent, 50, 80, b.Len() > 0))
	}

	return strings.TrimRight(b.String(), " ")
}

// GenerateJSONResult implements module.JSONResultGenerator.
func (m *Memory) GenerateJSONResult(context.Context) (any, error) {
	return m.detect()
}

// FromObject implements module.ObjectParser.
func (m *Memory) FromObject(obj map[string]any) (module.Module, error) {
	n := &Memory{base: m.fresh(), detect: m.detect}
	return n, options.Decode(obj, &n.args)
}

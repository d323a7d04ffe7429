package modules

import (
	"context"

	"github.com/ubuntu/sysfetch/internal/detect/system"
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// HostDetector detects the machine product.
type HostDetector interface {
	Product() (system.Product, error)
}

// Host prints the machine product name.
type Host struct {
	base
	detector HostDetector
}

// NewHost returns the Host module.
func NewHost(d HostDetector) *Host {
	return &Host{
		base:     base{name: "Host", description: "Print product name of your computer"},
		detector: d,
	}
}

// Print implements module.Module.
// The format arguments are {1} name, {2} family and {3} vendor.
func (h *Host) Print(_ context.Context, p *printer.Printer) {
	info, err := h.detector.Product()
	if err != nil {
		p.Error(h.name, 0, h.args, "%v", err)
		return
	}

	if h.args.Format == "" {
		v := info.Name
		switch {
		case v == "":
			v = info.Family
		case info.Family != "" && info.Family != v:
			v += " (" + info.Family + ")"
		}
		p.Line(h.name, 0, h.args, v)
		return
	}

	p.Format(h.name, 0, h.args, []printer.Arg{
		{Name: "name", Value: info.Name},
		{Name: "family", Value: info.Family},
		{Name: "vendor", Value: info.Vendor},
	})
}

// GenerateJSONResult implements module.JSONResultGenerator.
func (h *Host) GenerateJSONResult(context.Context) (any, error) {
	return h.detector.Product()
}

// FromObject implements module.ObjectParser.
func (h *Host) FromObject(obj map[string]any) (module.Module, error) {
	n := &Host{base: h.fresh(), detector: h.detector}
	return n, options.Decode(obj, &n.args)
}

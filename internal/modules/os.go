package modules

import (
	"context"

	"github.com/ubuntu/sysfetch/internal/detect/system"
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// OSDetector detects the operating system.
type OSDetector interface {
	OSRelease(ctx context.Context) (system.OSRelease, error)
}

// OS prints the operating system name and architecture.
type OS struct {
	base
	detector OSDetector
}

// NewOS returns the OS module.
func NewOS(d OSDetector) *OS {
	return &OS{
		base:     base{name: "OS", description: "Print operating system name and version"},
		detector: d,
	}
}

// Print implements module.Module.
// The format arguments are {1} name, {2} pretty-name, {3} id, {4} version-id and {5} arch.
func (o *OS) Print(ctx context.Context, p *printer.Printer) {
	info, err := o.detector.OSRelease(ctx)
	if err != nil {
		p.Error(o.name, 0, o.args, "%v", err)
		return
	}

	if o.args.Format == "" {
		p.Line(o.name, 0, o.args, info.PrettyName+" "+info.Arch)
		return
	}

	p.Format(o.name, 0, o.args, []printer.Arg{
		{Name: "name", Value: info.Name},
		{Name: "pretty-name", Value: info.PrettyName},
		{Name: "id", Value: info.ID},
		{Name: "version-id", Value: info.VersionID},
		{Name: "arch", Value: info.Arch},
	})
}

// GenerateJSONResult implements module.JSONResultGenerator.
func (o *OS) GenerateJSONResult(ctx context.Context) (any, error) {
	return o.detector.OSRelease(ctx)
}

// FromObject implements module.ObjectParser.
func (o *OS) FromObject(obj map[string]any) (module.Module, error) {
	n := &OS{base: o.fresh(), detector: o.detector}
	return n, options.Decode(obj, &n.args)
}

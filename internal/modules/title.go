package modules

import (
	"context"
	"unicode/utf8"

	"github.com/ubuntu/sysfetch/internal/detect/system"
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// TitleDetector detects the user and host names.
type TitleDetector interface {
	Title(ctx context.Context) (system.Title, error)
}

// Title prints user@host, without key.
type Title struct {
	base
	detector TitleDetector
}

// NewTitle returns the Title module.
func NewTitle(d TitleDetector) *Title {
	return &Title{
		base:     base{name: "Title", description: "Print title, which contains your user name, hostname"},
		detector: d,
	}
}

// Print implements module.Module.
// The user and host names are colored with the key color. The format arguments are {1} user and
// {2} host.
func (t *Title) Print(ctx context.Context, p *printer.Printer) {
	info, err := t.detector.Title(ctx)
	if err != nil {
		p.Error(t.name, 0, t.args, "%v", err)
		return
	}

	if t.args.Format != "" {
		p.Format("", 0, t.args, []printer.Arg{
			{Name: "user", Value: info.User},
			{Name: "host", Value: info.Host},
		})
		return
	}

	color := t.args.KeyColor
	if color == "" {
		color = p.Config().KeyColor
	}
	p.Raw(p.Colorize(info.User, color) + "@" + p.Colorize(info.Host, color))
}

// titleLength is the number of characters of the printed title.
func titleLength(info system.Title) int {
	return utf8.RuneCountInString(info.User) + 1 + utf8.RuneCountInString(info.Host)
}

// GenerateJSONResult implements module.JSONResultGenerator.
func (t *Title) GenerateJSONResult(ctx context.Context) (any, error) {
	return t.detector.Title(ctx)
}

// FromObject implements module.ObjectParser.
func (t *Title) FromObject(obj map[string]any) (module.Module, error) {
	n := &Title{base: t.fresh(), detector: t.detector}
	return n, options.Decode(obj, &n.args)
}

// Package printer renders module output as text: keys, values, templates, sizes and percentages.
package printer

import (
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/charmbracelet/lipgloss"
	"github.com/ubuntu/sysfetch/internal/options"
)

// Config holds the display settings shared by every module.
type Config struct {
	// Pipe disables every color and terminal decoration.
	Pipe bool
	// ShowErrors prints module errors instead of only logging them.
	ShowErrors bool
	// Separator is printed between a key and its value.
	Separator string
	// KeyColor is the default color of the keys.
	KeyColor string
	// KeyWidth pads every key and its separator to this width.
	KeyWidth int
	// BinaryPrefix selects the units used to print sizes.
	BinaryPrefix BinaryPrefix
	// PercentType selects how percentages are printed.
	PercentType PercentType
}

// DefaultConfig returns the settings used when nothing is configured.
func DefaultConfig() Config {
	return Config{
		Separator:    ": ",
		KeyColor:     "blue",
		BinaryPrefix: PrefixIEC,
		PercentType:  PercentNum,
	}
}

// Printer writes module output to a writer.
type Printer struct {
	w        io.Writer
	cfg      Config
	renderer *lipgloss.Renderer

	log *slog.Logger
}

type printerOptions struct {
	log *slog.Logger
}

// Options are the variadic options available to the Printer.
type Options func(*printerOptions)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Options {
	return func(o *printerOptions) {
		o.log = l
	}
}

// New returns a Printer writing to w.
func New(w io.Writer, cfg Config, args ...Options) *Printer {
	opts := &printerOptions{
		log: slog.Default(),
	}
	for _, opt := range args {
		opt(opts)
	}

	return &Printer{
		w:        w,
		cfg:      cfg,
		renderer: lipgloss.NewRenderer(w),
		log:      opts.log,
	}
}

// Config returns the display settings of the printer.
func (p *Printer) Config() Config {
	return p.cfg
}

// Key returns the rendered key of a module, including its separator and padding.
//
// The key is args.Key when set, where "{1}" is replaced by index. Otherwise, it is the module name
// followed by the index when it is not 0. An empty name without a custom key renders nothing.
func (p *Printer) Key(name string, index uint8, args options.Args) string {
	k := args.Key
	switch {
	case k == "" && name == "":
		return ""
	case k == "":
		k = name
		if index > 0 {
			k += " " + strconv.Itoa(int(index))
		}
	default:
		k = strings.ReplaceAll(k, "{1}", strconv.Itoa(int(index)))
	}

	color := args.KeyColor
	if color == "" {
		color = p.cfg.KeyColor
	}

	rendered := k
	if !p.cfg.Pipe {
		rendered = p.style(color).Bold(true).Render(k)
	}
	rendered += p.cfg.Separator

	width := args.KeyWidth
	if width == 0 {
		width = p.cfg.KeyWidth
	}
	if pad := width - utf8.RuneCountInString(k+p.cfg.Separator); pad > 0 {
		rendered += strings.Repeat(" ", pad)
	}
	return rendered
}

// Line prints a module value after its key.
func (p *Printer) Line(name string, index uint8, args options.Args, value string) {
	if args.OutputColor != "" {
		value = p.Colorize(value, args.OutputColor)
	}
	p.write(p.Key(name, index, args) + value)
}

// Format prints the module format template, rendered with fargs, after the module key.
// Nothing is printed when the template renders to an empty string.
func (p *Printer) Format(name string, index uint8, args options.Args, fargs []Arg) {
	value := Render(args.Format, fargs)
	if value == "" {
		return
	}
	p.Line(name, index, args, value)
}

// Error reports a module error. It is printed after the key in error color only when errors are
// shown, and always logged.
func (p *Printer) Error(name string, index uint8, args options.Args, format string, a ...any) {
	msg := fmt.Sprintf(format, a...)
	p.log.Debug("Module failed", "module", name, "error", msg)
	if !p.cfg.ShowErrors {
		return
	}
	p.write(p.Key(name, index, args) + p.Colorize(msg, "red"))
}

// Raw prints a line without any key.
func (p *Printer) Raw(line string) {
	p.write(line)
}

// Stat prints the time a module took to run.
func (p *Printer) Stat(ms int64) {
	s := fmt.Sprintf("%dms", ms)
	if !p.cfg.Pipe {
		s = p.style("").Faint(true).Render(s)
	}
	p.write(s)
}

// Colorize renders s in color, unless the printer is piped or color is empty.
func (p *Printer) Colorize(s, color string) string {
	if p.cfg.Pipe || color == "" {
		return s
	}
	return p.style(color).Render(s)
}

func (p *Printer) style(color string) lipgloss.Style {
	s := p.renderer.NewStyle()
	if color == "" {
		return s
	}
	return s.Foreground(lipgloss.Color(ansiColor(color)))
}

func (p *Printer) write(line string) {
	if _, err := fmt.Fprintln(p.w, line); err != nil {
		p.log.Warn("Failed to write output", "error", err)
	}
}

// namedColors maps color names to their ANSI index.
var namedColors = map[string]string{
	"black":   "0",
	"red":     "1",
	"green":   "2",
	"yellow":  "3",
	"blue":    "4",
	"magenta": "5",
	"cyan":    "6",
	"white":   "7",
}

// ansiColor translates a color name to its ANSI index. Other colors (ANSI indexes, hex codes) are
// returned as is.
func ansiColor(color string) string {
	if c, ok := namedColors[strings.ToLower(color)]; ok {
		return c
	}
	return color
}

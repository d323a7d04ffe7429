package modules

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

const defaultSeparatorString = "-"

// Separator prints a line under the title.
type Separator struct {
	base
	detector TitleDetector

	str    string
	length int
}

// NewSeparator returns the Separator module.
func NewSeparator(d TitleDetector) *Separator {
	return &Separator{
		base:     base{name: "Separator", description: "Print a separator line"},
		detector: d,
		str:      defaultSeparatorString,
	}
}

// ParseOption implements module.Module. It handles --separator-string and --separator-length on
// top of the common arguments.
func (s *Separator) ParseOption(key, value string) (bool, error) {
	subKey, ok := options.TestPrefix(key, s.name)
	if !ok {
		return false, nil
	}

	switch subKey {
	case "string":
		s.str = value
	case "length":
		l, err := strconv.Atoi(value)
		if err != nil || l < 0 {
			return true, fmt.Errorf("invalid separator length %q: must be a non-negative integer", value)
		}
		s.length = l
	default:
		return s.args.ParseArg(subKey, value)
	}
	return true, nil
}

// SubKeys implements module.SubKeyLister.
func (s *Separator) SubKeys() []string {
	return append(slices.Clone(options.ArgSubKeys), "string", "length")
}

// Print implements module.Module.
// The line is as long as the title, unless a length is set.
func (s *Separator) Print(ctx context.Context, p *printer.Printer) {
	length := s.length
	if length == 0 {
		info, err := s.detector.Title(ctx)
		if err != nil {
			p.Error(s.name, 0, s.args, "%v", err)
			return
		}
		length = titleLength(info)
	}

	p.Raw(p.Colorize(repeat(s.str, length), s.args.OutputColor))
}

// repeat repeats str up to length characters.
func repeat(str string, length int) string {
	n := utf8.RuneCountInString(str)
	if n == 0 || length <= 0 {
		return ""
	}

	r := []rune(strings.Repeat(str, length/n+1))
	return string(r[:length])
}

// GenerateJSONConfig implements module.JSONConfigGenerator.
func (s *Separator) GenerateJSONConfig(obj map[string]any) {
	s.args.GenerateConfig(obj)
	if s.str != defaultSeparatorString {
		obj["string"] = s.str
	}
	if s.length != 0 {
		obj["length"] = s.length
	}
}

// FromObject implements module.ObjectParser.
func (s *Separator) FromObject(obj map[string]any) (module.Module, error) {
	o := struct {
		options.Args `mapstructure:",squash"`
		String       string `mapstructure:"string"`
		Length       int    `mapstructure:"length"`
	}{String: defaultSeparatorString}

	err := options.Decode(obj, &o)
	return &Separator{
		base:     base{name: s.name, description: s.description, args: o.Args},
		detector: s.detector,
		str:      o.String,
		length:   max(o.Length, 0),
	}, err
}

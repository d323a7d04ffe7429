package module

import (
	"context"
	"fmt"
	"strings"

	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// CustomValue is a user provided line, printed when its key appears in the structure.
type CustomValue struct {
	Key   string
	Value string
	// PrintKey prints Key in front of Value.
	PrintKey bool
}

// ParseCustomValue parses a key=value custom value.
func ParseCustomValue(s string, printKey bool) (CustomValue, error) {
	k, v, ok := strings.Cut(s, "=")
	if !ok {
		return CustomValue{}, fmt.Errorf("invalid custom value %q: missing '='", s)
	}
	if k == "" {
		return CustomValue{}, fmt.Errorf("invalid custom value %q: empty key", s)
	}
	return CustomValue{Key: k, Value: v, PrintKey: printKey}, nil
}

func (cv CustomValue) module() *Custom {
	c := NewCustom()
	c.args.Format = cv.Value
	if cv.PrintKey {
		c.args.Key = cv.Key
	}
	return c
}

// Custom prints its format as is. It prints no key unless one is set.
type Custom struct {
	args options.Args
}

// NewCustom returns a Custom module with default options.
func NewCustom() *Custom {
	return &Custom{}
}

// Name implements Module.
func (c *Custom) Name() string {
	return "Custom"
}

// Description implements Module.
func (c *Custom) Description() string {
	return "Print a custom string, with an optional key"
}

// ParseOption implements Module.
func (c *Custom) ParseOption(key, value string) (bool, error) {
	subKey, ok := options.TestPrefix(key, c.Name())
	if !ok {
		return false, nil
	}
	return c.args.ParseArg(subKey, value)
}

// Print implements Module.
func (c *Custom) Print(_ context.Context, p *printer.Printer) {
	value := printer.Render(c.args.Format, nil)
	if value == "" {
		return
	}
	p.Line("", 0, c.args, value)
}

// GenerateJSONConfig implements JSONConfigGenerator.
func (c *Custom) GenerateJSONConfig(obj map[string]any) {
	c.args.GenerateConfig(obj)
}

// CustomResult is the JSON result of a Custom module.
type CustomResult struct {
	Key   string `json:"key,omitempty"`
	Value string `json:"value"`
}

// GenerateJSONResult implements JSONResultGenerator.
func (c *Custom) GenerateJSONResult(context.Context) (any, error) {
	return CustomResult{Key: c.args.Key, Value: printer.Render(c.args.Format, nil)}, nil
}

// FromObject implements ObjectParser.
func (c *Custom) FromObject(obj map[string]any) (Module, error) {
	n := NewCustom()
	return n, options.Decode(obj, &n.args)
}

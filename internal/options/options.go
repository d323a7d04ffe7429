// Package options handles the arguments shared by every module, from the command line and from
// configuration objects.
package options

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/go-viper/mapstructure/v2"
)

// Sub keys of the arguments every module accepts on the command line.
const (
	SubKey         = "key"
	SubFormat      = "format"
	SubKeyColor    = "key-color"
	SubKeyWidth    = "key-width"
	SubOutputColor = "output-color"
)

// ArgSubKeys lists the command line sub keys handled by Args.ParseArg.
var ArgSubKeys = []string{SubKey, SubFormat, SubKeyColor, SubKeyWidth, SubOutputColor}

// Args are the arguments shared by every module.
type Args struct {
	// Key replaces the module name in front of the module output.
	Key string `mapstructure:"key"`
	// Format is the template of the module output.
	Format string `mapstructure:"format"`
	// KeyColor overrides the global key color.
	KeyColor string `mapstructure:"keyColor"`
	// KeyWidth pads the key and its separator, 0 disables padding.
	KeyWidth int `mapstructure:"keyWidth"`
	// OutputColor colors the module output.
	OutputColor string `mapstructure:"outputColor"`
}

// TestPrefix checks that key is a command line option of the module moduleName, in the form
// --<modulename>-<subkey>, compared case-insensitively. It returns the sub key.
func TestPrefix(key, moduleName string) (subKey string, ok bool) {
	prefix := "--" + moduleName + "-"
	if len(key) <= len(prefix) || !strings.EqualFold(key[:len(prefix)], prefix) {
		return "", false
	}
	return strings.ToLower(key[len(prefix):]), true
}

// ParseArg parses a command line sub key shared by all modules.
// It returns false if subKey is not one of them.
func (a *Args) ParseArg(subKey, value string) (bool, error) {
	switch subKey {
	case SubKey:
		a.Key = value
	case SubFormat:
		a.Format = value
	case SubKeyColor:
		a.KeyColor = value
	case SubKeyWidth:
		w, err := strconv.Atoi(value)
		if err != nil || w < 0 {
			return true, fmt.Errorf("invalid key width %q: must be a non-negative integer", value)
		}
		a.KeyWidth = w
	case SubOutputColor:
		a.OutputColor = value
	default:
		return false, nil
	}
	return true, nil
}

// GenerateConfig adds the arguments differing from their defaults to a configuration object.
func (a Args) GenerateConfig(obj map[string]any) {
	if a.Key != "" {
		obj["key"] = a.Key
	}
	if a.Format != "" {
		obj["format"] = a.Format
	}
	if a.KeyColor != "" {
		obj["keyColor"] = a.KeyColor
	}
	if a.KeyWidth != 0 {
		obj["keyWidth"] = a.KeyWidth
	}
	if a.OutputColor != "" {
		obj["outputColor"] = a.OutputColor
	}
}

// Decode decodes a module configuration object into target.
//
// The "type" key, naming the module, is skipped. Keys are matched case-insensitively and weakly
// typed values are converted. Every key target does not know about is reported in the returned
// error, after the known keys were decoded.
func Decode(obj map[string]any, target any) error {
	in := make(map[string]any, len(obj))
	for k, v := range obj {
		if strings.EqualFold(k, "type") {
			continue
		}
		in[k] = v
	}

	var md mapstructure.Metadata
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Metadata:         &md,
		WeaklyTypedInput: true,
		Result:           target,
	})
	if err != nil {
		return fmt.Errorf("failed to create decoder: %v", err)
	}

	var errs []error
	if err := decoder.Decode(in); err != nil {
		errs = append(errs, err)
	}

	slices.Sort(md.Unused)
	for _, k := range md.Unused {
		errs = append(errs, fmt.Errorf("Unknown JSON key %s", k)) //nolint:staticcheck // Printed as is after the module key.
	}

	return errors.Join(errs...)
}

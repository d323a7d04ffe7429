// Package config loads sysfetch configuration files and writes the documents produced by
// configuration migration.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/viper"
	"github.com/ubuntu/decorate"
	"gopkg.in/yaml.v3"
)

// Document is the module part of a configuration file.
type Document struct {
	// Structure, when set, is printed instead of Modules.
	Structure string `json:"structure,omitempty" yaml:"structure,omitempty" toml:"structure,omitempty" mapstructure:"structure"`
	// Modules are module names or module objects, holding their "type" and options.
	Modules []any `json:"modules" yaml:"modules" toml:"modules" mapstructure:"modules"`
}

// Format is the encoding of a configuration file.
type Format string

const (
	// FormatJSON encodes configuration documents as indented JSON.
	FormatJSON Format = "json"
	// FormatYAML encodes configuration documents as YAML.
	FormatYAML Format = "yaml"
	// FormatTOML encodes configuration documents as TOML.
	FormatTOML Format = "toml"
)

// ParseFormat returns the format named s, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unknown configuration format %q: must be one of %s, %s or %s", s, FormatJSON, FormatYAML, FormatTOML)
	}
}

// FormatFromPath returns the format matching the extension of path, JSON by default.
func FormatFromPath(path string) Format {
	f, err := ParseFormat(strings.TrimPrefix(filepath.Ext(path), "."))
	if err != nil {
		return FormatJSON
	}
	return f
}

// Load reads the configuration file at path. The encoding is picked from its extension.
func Load(path string) (doc Document, err error) {
	defer decorate.OnError(&err, "failed to load configuration %s", path)

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return Document{}, err
	}

	modules, err := Entries(v.Get("modules"))
	if err != nil {
		return Document{}, err
	}

	return Document{
		Structure: v.GetString("structure"),
		Modules:   modules,
	}, nil
}

// Entries normalizes the decoded "modules" value of a configuration file into module names and
// module objects.
func Entries(raw any) ([]any, error) {
	var items []any
	switch v := raw.(type) {
	case nil:
		return nil, nil
	case []any:
		items = v
	case []map[string]any:
		for _, m := range v {
			items = append(items, m)
		}
	case []string:
		for _, s := range v {
			items = append(items, s)
		}
	default:
		return nil, fmt.Errorf("modules must be a list, got %T", raw)
	}

	entries := make([]any, 0, len(items))
	for i, item := range items {
		switch v := item.(type) {
		case string, map[string]any:
			entries = append(entries, v)
		case map[any]any:
			m := make(map[string]any, len(v))
			for k, val := range v {
				m[fmt.Sprint(k)] = val
			}
			entries = append(entries, m)
		default:
			return nil, fmt.Errorf("module %d must be a name or an object, got %T", i, item)
		}
	}

	return entries, nil
}

// Write encodes doc to w in format.
func Write(w io.Writer, format Format, doc Document) (err error) {
	defer decorate.OnError(&err, "failed to write %s configuration", format)

	if doc.Modules == nil {
		doc.Modules = []any{}
	}

	switch format {
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return err
		}
		return enc.Close()
	case FormatTOML:
		return toml.NewEncoder(w).Encode(doc)
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w, "%s\n", data)
		return err
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

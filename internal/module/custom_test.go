package module_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/printer"
)

func TestParseCustomValue(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		value    string
		printKey bool

		want    module.CustomValue
		wantErr bool
	}{
		"Key and value":           {value: "Shell=zsh", printKey: true, want: module.CustomValue{Key: "Shell", Value: "zsh", PrintKey: true}},
		"Keyless":                 {value: "motd=Hello", want: module.CustomValue{Key: "motd", Value: "Hello"}},
		"Empty value":             {value: "Empty=", want: module.CustomValue{Key: "Empty"}},
		"Value with equal signs":  {value: "Eq=a=b", want: module.CustomValue{Key: "Eq", Value: "a=b"}},
		"Error on missing equal":  {value: "Shell", wantErr: true},
		"Error on empty key":      {value: "=zsh", wantErr: true},
		"Error on empty argument": {value: "", wantErr: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			got, err := module.ParseCustomValue(tc.value, tc.printKey)
			if tc.wantErr {
				require.Error(t, err, "ParseCustomValue should return an error")
				return
			}
			require.NoError(t, err, "ParseCustomValue should not return an error")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestCustom(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		options map[string]string
		object  map[string]any

		wantText    string
		wantConfig  map[string]any
		wantErr     bool
		wantNoPrint bool
	}{
		"Prints format without key": {
			options:    map[string]string{"--custom-format": "Hello"},
			wantText:   "Hello\n",
			wantConfig: map[string]any{"format": "Hello"},
		},
		"Prints format with key": {
			options:    map[string]string{"--custom-format": "Hello", "--custom-key": "Greeting"},
			wantText:   "Greeting: Hello\n",
			wantConfig: map[string]any{"format": "Hello", "key": "Greeting"},
		},
		"Prints nothing without format": {
			wantText:   "",
			wantConfig: map[string]any{},
		},
		"Configured from object": {
			object:     map[string]any{"type": "custom", "format": "From object", "keyWidth": "12"},
			wantText:   "From object\n",
			wantConfig: map[string]any{"format": "From object", "keyWidth": 12},
		},
		"Configured from object with unknown keys": {
			object:     map[string]any{"type": "custom", "format": "Partial", "colour": "red"},
			wantText:   "Partial\n",
			wantConfig: map[string]any{"format": "Partial"},
			wantErr:    true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var m module.Module = module.NewCustom()
			for k, v := range tc.options {
				handled, err := m.ParseOption(k, v)
				require.NoError(t, err, "Setup: ParseOption should not return an error")
				require.True(t, handled, "Setup: ParseOption should handle %s", k)
			}
			if tc.object != nil {
				var err error
				m, err = module.NewCustom().FromObject(tc.object)
				if tc.wantErr {
					require.Error(t, err, "FromObject should return an error")
				} else {
					require.NoError(t, err, "FromObject should not return an error")
				}
			}

			var out bytes.Buffer
			m.Print(context.Background(), printer.New(&out, pipeConfig()))
			assert.Equal(t, tc.wantText, out.String())

			obj := map[string]any{}
			m.(module.JSONConfigGenerator).GenerateJSONConfig(obj)
			assert.Equal(t, tc.wantConfig, obj)
		})
	}
}

func pipeConfig() printer.Config {
	cfg := printer.DefaultConfig()
	cfg.Pipe = true
	cfg.ShowErrors = true
	return cfg
}

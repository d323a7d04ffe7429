package modules_test

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ubuntu/sysfetch/internal/detect/system"
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/modules"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

func TestAllCanBeRegistered(t *testing.T) {
	t.Parallel()

	r, err := module.NewRegistry(modules.All(fakeMemory{}, newFakeSystem())...)
	require.NoError(t, err, "All modules should be registered without conflict")

	var names []string
	for _, m := range r.Modules() {
		names = append(names, m.Name())
		assert.NotEmpty(t, m.Description(), "Module %s should have a description", m.Name())
	}
	assert.Equal(t, []string{"Break", "CPU", "Custom", "Host", "Kernel", "Memory", "OS", "Separator", "Swap", "Title", "Uptime"}, names)
}

func TestPrint(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		module    string
		options   map[string]string
		product   *system.Product
		detectErr bool

		want string
	}{
		"Break":     {module: "Break", want: "\n"},
		"CPU":       {module: "CPU", want: "CPU: Intel(R) Core(TM) i7-8750H CPU @ 2.20GHz (12)\n"},
		"Host":      {module: "Host", want: "Host: Precision 5530 (Precision)\n"},
		"Kernel":    {module: "Kernel", want: "Kernel: Linux 6.8.0-45-generic\n"},
		"OS":        {module: "OS", want: "OS: Ubuntu 24.04.1 LTS x86_64\n"},
		"Separator": {module: "Separator", want: "------------------\n"},
		"Title":     {module: "Title", want: "ubuntu@workstation\n"},
		"Uptime":    {module: "Uptime", want: "Uptime: 1 day, 2 hours, 3 mins\n"},

		"CPU format":       {module: "CPU", options: map[string]string{"--cpu-format": "{vendor} x{4}"}, want: "CPU: GenuineIntel x12\n"},
		"Host format":      {module: "Host", options: map[string]string{"--host-format": "{3} {1}"}, want: "Host: Dell Inc. Precision 5530\n"},
		"Kernel format":    {module: "Kernel", options: map[string]string{"--kernel-format": "{2} ({arch})"}, want: "Kernel: 6.8.0-45-generic (x86_64)\n"},
		"OS format":        {module: "OS", options: map[string]string{"--os-format": "{name} {version-id}"}, want: "OS: Ubuntu 24.04\n"},
		"Title format":     {module: "Title", options: map[string]string{"--title-format": "{host}"}, want: "workstation\n"},
		"Uptime format":    {module: "Uptime", options: map[string]string{"--uptime-format": "{1}d {2}h {3}m {4}s"}, want: "Uptime: 1d 2h 3m 12s\n"},
		"Custom key":       {module: "Kernel", options: map[string]string{"--kernel-key": "Linux"}, want: "Linux: Linux 6.8.0-45-generic\n"},
		"Separator string": {module: "Separator", options: map[string]string{"--separator-string": "=-"}, want: "=-=-=-=-=-=-=-=-=-\n"},
		"Separator length": {module: "Separator", options: map[string]string{"--separator-length": "4"}, want: "----\n"},

		"Host without family": {module: "Host", product: &system.Product{Name: "Virtual Machine"}, want: "Host: Virtual Machine\n"},
		"Host family only":    {module: "Host", product: &system.Product{Family: "ThinkPad"}, want: "Host: ThinkPad\n"},
		"Host same family":    {module: "Host", product: &system.Product{Name: "Surface", Family: "Surface"}, want: "Host: Surface\n"},

		"Break never fails":              {module: "Break", detectErr: true, want: "\n"},
		"Separator with length no title": {module: "Separator", detectErr: true, options: map[string]string{"--separator-length": "2"}, want: "--\n"},
		"Error CPU":                      {module: "CPU", detectErr: true, want: "CPU: " + errDetection.Error() + "\n"},
		"Error Host":                     {module: "Host", detectErr: true, want: "Host: " + errDetection.Error() + "\n"},
		"Error Kernel":                   {module: "Kernel", detectErr: true, want: "Kernel: " + errDetection.Error() + "\n"},
		"Error OS":                       {module: "OS", detectErr: true, want: "OS: " + errDetection.Error() + "\n"},
		"Error Separator":                {module: "Separator", detectErr: true, want: "Separator: " + errDetection.Error() + "\n"},
		"Error Title":                    {module: "Title", detectErr: true, want: "Title: " + errDetection.Error() + "\n"},
		"Error Uptime":                   {module: "Uptime", detectErr: true, want: "Uptime: " + errDetection.Error() + "\n"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			sys := newFakeSystem()
			sys.err = tc.detectErr
			if tc.product != nil {
				sys.product = *tc.product
			}
			r, err := module.NewRegistry(modules.All(fakeMemory{}, sys)...)
			require.NoError(t, err, "Setup: NewRegistry should not return an error")

			for k, v := range tc.options {
				handled, err := r.ParseOption(k, v)
				require.NoError(t, err, "Setup: ParseOption should not return an error")
				require.True(t, handled, "Setup: ParseOption should handle %s", k)
			}

			m, ok := r.Lookup(tc.module)
			require.True(t, ok, "Setup: module %s should exist", tc.module)

			var out bytes.Buffer
			m.Print(context.Background(), printer.New(&out, pipeConfig()))
			assert.Equal(t, tc.want, out.String())
		})
	}
}

func TestJSONResult(t *testing.T) {
	t.Parallel()

	sys := newFakeSystem()
	tests := map[string]struct {
		module string

		want       any
		wantNoJSON bool
	}{
		"CPU":    {module: "CPU", want: system.CPU{Name: "Intel(R) Core(TM) i7-8750H CPU @ 2.20GHz", Vendor: "GenuineIntel", Arch: "x86_64", Count: 12}},
		"Host":   {module: "Host", want: sys.product},
		"Kernel": {module: "Kernel", want: system.Kernel{Name: "Linux", Release: "6.8.0-45-generic", Arch: "x86_64"}},
		"OS":     {module: "OS", want: system.OSRelease{Name: "Ubuntu", PrettyName: "Ubuntu 24.04.1 LTS", ID: "ubuntu", VersionID: "24.04", Arch: "x86_64"}},
		"Title":  {module: "Title", want: system.Title{User: "ubuntu", Host: "workstation"}},

		"Break has no JSON result":     {module: "Break", wantNoJSON: true},
		"Separator has no JSON result": {module: "Separator", wantNoJSON: true},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			r, err := module.NewRegistry(modules.All(fakeMemory{}, newFakeSystem())...)
			require.NoError(t, err, "Setup: NewRegistry should not return an error")
			m, ok := r.Lookup(tc.module)
			require.True(t, ok, "Setup: module %s should exist", tc.module)

			g, ok := m.(module.JSONResultGenerator)
			if tc.wantNoJSON {
				assert.False(t, ok, "Module should not generate a JSON result")
				return
			}
			require.True(t, ok, "Module should generate a JSON result")

			got, err := g.GenerateJSONResult(context.Background())
			require.NoError(t, err, "GenerateJSONResult should not return an error")
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestUptimeJSONResultIsInSeconds(t *testing.T) {
	t.Parallel()

	got, err := modules.NewUptime(newFakeSystem()).GenerateJSONResult(context.Background())
	require.NoError(t, err, "GenerateJSONResult should not return an error")

	data, err := json.Marshal(got)
	require.NoError(t, err, "Result should be serializable")
	assert.JSONEq(t, `{"uptime": 93792}`, string(data))
}

func TestFormatUptime(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		uptime time.Duration

		want string
	}{
		"No uptime":             {uptime: 0, want: "0 secs"},
		"One second":            {uptime: time.Second, want: "1 sec"},
		"Seconds":               {uptime: 42 * time.Second, want: "42 secs"},
		"One minute":            {uptime: time.Minute + 12*time.Second, want: "1 min"},
		"Hours without minutes": {uptime: 3 * time.Hour, want: "3 hours"},
		"One of each":           {uptime: 25*time.Hour + time.Minute + time.Second, want: "1 day, 1 hour, 1 min"},
		"Days and minutes":      {uptime: 48*time.Hour + 5*time.Minute, want: "2 days, 5 mins"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.want, modules.FormatUptime(tc.uptime))
		})
	}
}

func TestSeparatorOptions(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		options map[string]string
		obj     map[string]any

		wantConfig map[string]any
		wantText   string
		wantErr    bool
	}{
		"Default options": {
			wantConfig: map[string]any{},
			wantText:   "------------------\n",
		},
		"Command line options": {
			options:    map[string]string{"--separator-string": "─", "--separator-length": "3"},
			wantConfig: map[string]any{"string": "─", "length": 3},
			wantText:   "───\n",
		},
		"Object options": {
			obj:        map[string]any{"type": "separator", "string": "=", "length": 5, "outputColor": "blue"},
			wantConfig: map[string]any{"string": "=", "length": 5, "outputColor": "blue"},
			wantText:   "=====\n",
		},
		"Object with unknown keys": {
			obj:        map[string]any{"type": "separator", "char": "="},
			wantConfig: map[string]any{},
			wantText:   "------------------\n",
			wantErr:    true,
		},
		"Empty string prints an empty line": {
			options:    map[string]string{"--separator-string": ""},
			wantConfig: map[string]any{"string": ""},
			wantText:   "\n",
		},

		"Error on negative length": {
			options: map[string]string{"--separator-length": "-1"},
			wantErr: true,
		},
		"Error on invalid length": {
			options: map[string]string{"--separator-length": "long"},
			wantErr: true,
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var m module.Module = modules.NewSeparator(newFakeSystem())
			for k, v := range tc.options {
				handled, err := m.ParseOption(k, v)
				require.True(t, handled, "ParseOption should handle %s", k)
				if tc.wantErr {
					require.Error(t, err, "ParseOption should return an error")
					return
				}
				require.NoError(t, err, "ParseOption should not return an error")
			}
			if tc.obj != nil {
				var err error
				m, err = m.(module.ObjectParser).FromObject(tc.obj)
				if tc.wantErr {
					require.Error(t, err, "FromObject should return an error")
				} else {
					require.NoError(t, err, "FromObject should not return an error")
				}
			}

			obj := map[string]any{}
			m.(module.JSONConfigGenerator).GenerateJSONConfig(obj)
			assert.Equal(t, tc.wantConfig, obj)

			var out bytes.Buffer
			m.Print(context.Background(), printer.New(&out, pipeConfig()))
			assert.Equal(t, tc.wantText, out.String())
		})
	}
}

func TestSeparatorSubKeys(t *testing.T) {
	t.Parallel()

	s := modules.NewSeparator(newFakeSystem())
	keys := s.SubKeys()
	assert.Subset(t, keys, options.ArgSubKeys, "Separator should list the common sub keys")
	assert.Contains(t, keys, "string")
	assert.Contains(t, keys, "length")

	for _, k := range keys {
		handled, _ := s.ParseOption("--separator-"+k, "1")
		assert.True(t, handled, "Listed sub key %s should be handled", k)
	}
}

func TestCPUPrepare(t *testing.T) {
	t.Parallel()

	sys := newFakeSystem()
	c := modules.NewCPU(sys)

	c.Prepare(context.Background())
	c.Prepare(context.Background())

	configured, err := c.FromObject(map[string]any{"type": "cpu", "key": "Processor"})
	require.NoError(t, err, "FromObject should not return an error")

	var out bytes.Buffer
	configured.Print(context.Background(), printer.New(&out, pipeConfig()))
	assert.Equal(t, "Processor: Intel(R) Core(TM) i7-8750H CPU @ 2.20GHz (12)\n", out.String())
	assert.Equal(t, int32(1), sys.cpuCalls.Load(), "Prepared detection should run once and be shared")

	out.Reset()
	c.Print(context.Background(), printer.New(&out, pipeConfig()))
	assert.Equal(t, "CPU: Intel(R) Core(TM) i7-8750H CPU @ 2.20GHz (12)\n", out.String())
	assert.Equal(t, int32(2), sys.cpuCalls.Load(), "Consumed preparation should detect again")
}

func TestCPUPrepareCancelled(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	c := modules.NewCPU(blockingCPU{release: release})

	c.Prepare(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.GenerateJSONResult(ctx)
	require.ErrorIs(t, err, context.Canceled, "A cancelled context should stop waiting for the prepared detection")
}

// blockingCPU detects nothing until released.
type blockingCPU struct {
	release chan struct{}
}

func (b blockingCPU) CPU(context.Context) (system.CPU, error) {
	<-b.release
	return system.CPU{}, nil
}

package commands_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/ubuntu/sysfetch/cmd/sysfetch/commands"
	"github.com/ubuntu/sysfetch/internal/detect/memory"
	"github.com/ubuntu/sysfetch/internal/detect/system"
)

var errDetection = errors.New("detection requested error")

type fakeMemory struct {
	err bool
}

func (f fakeMemory) Memory() (memory.Info, error) {
	if f.err {
		return memory.Info{}, errDetection
	}
	return memory.Info{Total: 8 << 30, Used: 2 << 30}, nil
}

func (f fakeMemory) Swap() (memory.Info, error) {
	if f.err {
		return memory.Info{}, errDetection
	}
	return memory.Info{Total: 2 << 30, Used: 1 << 30}, nil
}

type fakeSystem struct{}

func (fakeSystem) OSRelease(context.Context) (system.OSRelease, error) {
	return system.OSRelease{Name: "Ubuntu", PrettyName: "Ubuntu 24.04.1 LTS", ID: "ubuntu", VersionID: "24.04", Arch: "x86_64"}, nil
}

func (fakeSystem) Product() (system.Product, error) {
	return system.Product{Name: "Precision 5530", Family: "Precision", Vendor: "Dell Inc."}, nil
}

func (fakeSystem) CPU(context.Context) (system.CPU, error) {
	return system.CPU{Name: "Intel(R) Core(TM) i7-8750H CPU @ 2.20GHz", Vendor: "GenuineIntel", Arch: "x86_64", Count: 12}, nil
}

func (fakeSystem) Kernel(context.Context) (system.Kernel, error) {
	return system.Kernel{Name: "Linux", Release: "6.8.0-45-generic", Arch: "x86_64"}, nil
}

func (fakeSystem) Uptime(context.Context) (time.Duration, error) {
	return 26*time.Hour + 3*time.Minute + 12*time.Second, nil
}

func (fakeSystem) Title(context.Context) (system.Title, error) {
	return system.Title{User: "ubuntu", Host: "workstation"}, nil
}

// syncBuffer is a bytes.Buffer safe to read while the app writes to it.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type appTestConfig struct {
	// config is the content of the YAML configuration file.
	config    string
	memoryErr bool
}

// newAppForTests returns an app with fake detectors and a private configuration file, printing
// without colors to out.
func newAppForTests(t *testing.T, args []string, tc appTestConfig) (app *commands.App, out *syncBuffer, configPath string) {
	t.Helper()

	if tc.config == "" {
		tc.config = "{}\n"
	}
	configPath = filepath.Join(t.TempDir(), "sysfetch.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(tc.config), 0600), "Setup: could not write configuration file")

	app, err := commands.New(
		commands.WithMemoryDetector(fakeMemory{err: tc.memoryErr}),
		commands.WithSystemDetector(fakeSystem{}),
	)
	require.NoError(t, err, "Setup: could not create app")

	out = &syncBuffer{}
	app.SetOut(out)
	app.SetArgs(append(args, "--config", configPath, "--pipe"))

	return app, out, configPath
}

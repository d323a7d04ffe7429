package modules_test

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/ubuntu/sysfetch/internal/detect/memory"
	"github.com/ubuntu/sysfetch/internal/detect/system"
	"github.com/ubuntu/sysfetch/internal/printer"
)

var errDetection = errors.New("detection requested error")

type fakeMemory struct {
	mem  memory.Info
	swap memory.Info
	err  bool
}

func (f fakeMemory) Memory() (memory.Info, error) {
	if f.err {
		return memory.Info{}, errDetection
	}
	return f.mem, nil
}

func (f fakeMemory) Swap() (memory.Info, error) {
	if f.err {
		return memory.Info{}, errDetection
	}
	return f.swap, nil
}

type fakeSystem struct {
	product system.Product
	err     bool

	cpuCalls *atomic.Int32
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		product:  system.Product{Name: "Precision 5530", Family: "Precision", Vendor: "Dell Inc."},
		cpuCalls: &atomic.Int32{},
	}
}

func (f *fakeSystem) OSRelease(context.Context) (system.OSRelease, error) {
	if f.err {
		return system.OSRelease{}, errDetection
	}
	return system.OSRelease{Name: "Ubuntu", PrettyName: "Ubuntu 24.04.1 LTS", ID: "ubuntu", VersionID: "24.04", Arch: "x86_64"}, nil
}

func (f *fakeSystem) Product() (system.Product, error) {
	if f.err {
		return system.Product{}, errDetection
	}
	return f.product, nil
}

func (f *fakeSystem) CPU(context.Context) (system.CPU, error) {
	f.cpuCalls.Add(1)
	if f.err {
		return system.CPU{}, errDetection
	}
	return system.CPU{Name: "Intel(R) Core(TM) i7-8750H CPU @ 2.20GHz", Vendor: "GenuineIntel", Arch: "x86_64", Count: 12}, nil
}

func (f *fakeSystem) Kernel(context.Context) (system.Kernel, error) {
	if f.err {
		return system.Kernel{}, errDetection
	}
	return system.Kernel{Name: "Linux", Release: "6.8.0-45-generic", Arch: "x86_64"}, nil
}

func (f *fakeSystem) Uptime(context.Context) (time.Duration, error) {
	if f.err {
		return 0, errDetection
	}
	return 26*time.Hour + 3*time.Minute + 12*time.Second, nil
}

func (f *fakeSystem) Title(context.Context) (system.Title, error) {
	if f.err {
		return system.Title{}, errDetection
	}
	return system.Title{User: "ubuntu", Host: "workstation"}, nil
}

func pipeConfig() printer.Config {
	cfg := printer.DefaultConfig()
	cfg.Pipe = true
	cfg.ShowErrors = true
	return cfg
}

package system

import (
	"context"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
)

// WithRoot overrides the default root directory of the system.
func WithRoot(root string) Options {
	return func(o *options) {
		o.root = root
	}
}

// WithCPUInfo overrides the lscpu command line.
func WithCPUInfo(cmd []string) Options {
	return func(o *options) {
		o.cpuInfoCmd = cmd
	}
}

// WithCPUFallback overrides the CPU detection used when lscpu fails.
func WithCPUFallback(f func(context.Context) ([]cpu.InfoStat, error)) Options {
	return func(o *options) {
		o.cpuFallback = f
	}
}

// WithHostInfo overrides the host information.
func WithHostInfo(f func(context.Context) (*host.InfoStat, error)) Options {
	return func(o *options) {
		o.hostInfo = f
	}
}

// WithUptime overrides the uptime, in seconds.
func WithUptime(f func(context.Context) (uint64, error)) Options {
	return func(o *options) {
		o.uptime = f
	}
}

// WithCurrentUser overrides the current user name.
func WithCurrentUser(f func() (string, error)) Options {
	return func(o *options) {
		o.currentUser = f
	}
}

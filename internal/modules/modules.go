// Package modules implements the modules printed by sysfetch.
package modules

import (
	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
)

// SystemDetector detects everything the system modules print.
type SystemDetector interface {
	CPUDetector
	HostDetector
	KernelDetector
	OSDetector
	TitleDetector
	UptimeDetector
}

// All returns a new instance of every module.
func All(mem MemoryDetector, sys SystemDetector) []module.Module {
	return []module.Module{
		NewBreak(),
		NewCPU(sys),
		module.NewCustom(),
		NewHost(sys),
		NewKernel(sys),
		NewMemory(mem),
		NewOS(sys),
		NewSeparator(sys),
		NewSwap(mem),
		NewTitle(sys),
		NewUptime(sys),
	}
}

// base is the name and the common arguments every module carries.
type base struct {
	name        string
	description string
	args        options.Args
}

// Name implements module.Module.
func (b *base) Name() string {
	return b.name
}

// Description implements module.Module.
func (b *base) Description() string {
	return b.description
}

// ParseOption implements module.Module.
func (b *base) ParseOption(key, value string) (bool, error) {
	subKey, ok := options.TestPrefix(key, b.name)
	if !ok {
		return false, nil
	}
	return b.args.ParseArg(subKey, value)
}

// GenerateJSONConfig implements module.JSONConfigGenerator.
func (b *base) GenerateJSONConfig(obj map[string]any) {
	b.args.GenerateConfig(obj)
}

// fresh returns a copy of b with default arguments.
func (b *base) fresh() base {
	return base{name: b.name, description: b.description}
}

//go:build !linux

package memory

import (
	"log/slog"

	"github.com/shirou/gopsutil/v4/mem"
)

type options struct {
	log *slog.Logger
}

func defaultOptions() *options {
	return &options{
		log: slog.Default(),
	}
}

func (c Collector) memory() (Info, error) {
	v, err := mem.VirtualMemory()
	if err != nil {
		return Info{}, err
	}
	return Info{Total: v.Total, Used: v.Used}, nil
}

func (c Collector) swap() (Info, error) {
	s, err := mem.SwapMemory()
	if err != nil {
		return Info{}, err
	}
	return Info{Total: s.Total, Used: s.Used}, nil
}

// Package memory detects the physical memory and swap usage of the system.
package memory

import (
	"log/slog"

	"github.com/ubuntu/decorate"
)

// Info is the usage of a memory area, in bytes.
type Info struct {
	Total uint64 `json:"total"`
	Used  uint64 `json:"used"`
}

// Percentage returns the used share of the total, truncated. It is 0 when total is 0.
func (i Info) Percentage() uint8 {
	if i.Total == 0 {
		return 0
	}
	return uint8(float64(i.Used) / float64(i.Total) * 100)
}

// Collector detects memory usage.
type Collector struct {
	opts options
}

// Options are the variadic options available to the Collector.
type Options func(*options)

// New returns a new Collector.
func New(args ...Options) Collector {
	opts := defaultOptions()
	for _, opt := range args {
		opt(opts)
	}

	return Collector{opts: *opts}
}

// Memory returns the physical memory usage.
func (c Collector) Memory() (info Info, err error) {
	defer decorate.OnError(&err, "failed to detect memory")

	return c.memory()
}

// Swap returns the swap usage. Total is 0 when the system has no swap.
func (c Collector) Swap() (info Info, err error) {
	defer decorate.OnError(&err, "failed to detect swap")

	return c.swap()
}

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Options {
	return func(o *options) {
		o.log = l
	}
}

package modules

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ubuntu/sysfetch/internal/module"
	"github.com/ubuntu/sysfetch/internal/options"
	"github.com/ubuntu/sysfetch/internal/printer"
)

// UptimeDetector detects the time since boot.
type UptimeDetector interface {
	Uptime(ctx context.Context) (time.Duration, error)
}

// Uptime prints how long the system has been running.
type Uptime struct {
	base
	detector UptimeDetector
}

// NewUptime returns the Uptime module.
func NewUptime(d UptimeDetector) *Uptime {
	return &Uptime{
		base:     base{name: "Uptime", description: "Print how long system has been running"},
		detector: d,
	}
}

// Print implements module.Module.
// The format arguments are {1} days, {2} hours, {3} minutes and {4} seconds.
func (u *Uptime) Print(ctx context.Context, p *printer.Printer) {
	d, err := u.detector.Uptime(ctx)
	if err != nil {
		p.Error(u.name, 0, u.args, "%v", err)
		return
	}

	if u.args.Format == "" {
		p.Line(u.name, 0, u.args, formatUptime(d))
		return
	}

	secs := int64(d / time.Second)
	p.Format(u.name, 0, u.args, []printer.Arg{
		{Name: "days", Value: secs / 86400},
		{Name: "hours", Value: secs / 3600 % 24},
		{Name: "minutes", Value: secs / 60 % 60},
		{Name: "seconds", Value: secs % 60},
	})
}

// formatUptime renders d as "1 day, 2 hours, 3 mins". Durations under a minute are printed in
// seconds.
func formatUptime(d time.Duration) string {
	secs := int64(d / time.Second)
	if secs < 60 {
		return plural(secs, "sec", "secs")
	}

	var parts []string
	if days := secs / 86400; days > 0 {
		parts = append(parts, plural(days, "day", "days"))
	}
	if hours := secs / 3600 % 24; hours > 0 {
		parts = append(parts, plural(hours, "hour", "hours"))
	}
	if mins := secs / 60 % 60; mins > 0 {
		parts = append(parts, plural(mins, "min", "mins"))
	}
	return strings.Join(parts, ", ")
}

func plural(n int64, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}

type uptimeResult struct {
	Uptime int64 `json:"uptime"`
}

// GenerateJSONResult implements module.JSONResultGenerator. The uptime is in seconds.
func (u *Uptime) GenerateJSONResult(ctx context.Context) (any, error) {
	d, err := u.detector.Uptime(ctx)
	if err != nil {
		return nil, err
	}
	return uptimeResult{Uptime: int64(d / time.Second)}, nil
}

// FromObject implements module.ObjectParser.
func (u *Uptime) FromObject(obj map[string]any) (module.Module, error) {
	n := &Uptime{base: u.fresh(), detector: u.detector}
	return n, options.Decode(obj, &n.args)
}

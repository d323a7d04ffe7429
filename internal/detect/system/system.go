// Package system detects the facts about the running machine printed by the companion modules:
// operating system, product, CPU, kernel, uptime and the user and host names.
package system

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/ubuntu/decorate"
	"github.com/ubuntu/sysfetch/internal/cmdutils"
	"github.com/ubuntu/sysfetch/internal/fileutils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"gopkg.in/ini.v1"
)

// OSRelease describes the operating system, from os-release.
type OSRelease struct {
	Name       string `json:"name"`
	PrettyName string `json:"prettyName"`
	ID         string `json:"id"`
	VersionID  string `json:"versionID"`
	Arch       string `json:"architecture"`
}

// Product describes the machine, from DMI.
type Product struct {
	Name   string `json:"name"`
	Family string `json:"family"`
	Vendor string `json:"vendor"`
}

// CPU describes the processors.
type CPU struct {
	Name   string `json:"name"`
	Vendor string `json:"vendor"`
	Arch   string `json:"architecture"`
	Count  uint64 `json:"cpus"`
}

// Kernel describes the running kernel.
type Kernel struct {
	Name    string `json:"name"`
	Release string `json:"release"`
	Arch    string `json:"architecture"`
}

// Title identifies who runs sysfetch, and where.
type Title struct {
	User string `json:"user"`
	Host string `json:"host"`
}

// ErrNoOSRelease is returned when no os-release file could be read.
var ErrNoOSRelease = errors.New("no os-release file found")

// Collector detects system information.
type Collector struct {
	opts options
}

type options struct {
	root        string
	cpuInfoCmd  []string
	cpuFallback func(context.Context) ([]cpu.InfoStat, error)
	hostInfo    func(context.Context) (*host.InfoStat, error)
	uptime      func(context.Context) (uint64, error)
	currentUser func() (string, error)
	log         *slog.Logger
}

func defaultOptions() *options {
	return &options{
		root:        "/",
		cpuInfoCmd:  []string{"lscpu", "-J"},
		cpuFallback: cpu.InfoWithContext,
		hostInfo:    host.InfoWithContext,
		uptime:      host.UptimeWithContext,
		currentUser: currentUser,
		log:         slog.Default(),
	}
}

// Options are the variadic options available to the Collector.
type Options func(*options)

// WithLogger overrides the default logger.
func WithLogger(l *slog.Logger) Options {
	return func(o *options) {
		o.log = l
	}
}

// New returns a new Collector.
func New(args ...Options) Collector {
	opts := defaultOptions()
	for _, opt := range args {
		opt(opts)
	}

	return Collector{opts: *opts}
}

// OSRelease reads os-release, from /etc or from /usr/lib when the former is missing.
func (c Collector) OSRelease(ctx context.Context) (info OSRelease, err error) {
	defer decorate.OnError(&err, "failed to detect operating system")

	for _, p := range []string{"etc/os-release", "usr/lib/os-release"} {
		cfg, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, filepath.Join(c.opts.root, p))
		if errors.Is(err, os.ErrNotExist) {
			c.opts.log.Debug("os-release not found", "path", p)
			continue
		}
		if err != nil {
			return OSRelease{}, fmt.Errorf("failed to parse %s: %v", p, err)
		}

		s := cfg.Section(ini.DefaultSection)
		info = OSRelease{
			Name:       s.Key("NAME").String(),
			PrettyName: s.Key("PRETTY_NAME").String(),
			ID:         s.Key("ID").String(),
			VersionID:  s.Key("VERSION_ID").String(),
			Arch:       c.arch(ctx),
		}
		if info.Name == "" {
			info.Name = "Linux"
		}
		if info.PrettyName == "" {
			info.PrettyName = strings.TrimSpace(info.Name + " " + info.VersionID)
		}
		return info, nil
	}

	return OSRelease{}, ErrNoOSRelease
}

// Product reads the DMI product information.
func (c Collector) Product() (info Product, err error) {
	defer decorate.OnError(&err, "failed to detect host")

	dmi := filepath.Join(c.opts.root, "sys/class/dmi/id")
	info = Product{
		Name:   fileutils.ReadValue(filepath.Join(dmi, "product_name"), c.opts.log),
		Family: fileutils.ReadValue(filepath.Join(dmi, "product_family"), c.opts.log),
		Vendor: fileutils.ReadValue(filepath.Join(dmi, "sys_vendor"), c.opts.log),
	}

	for _, v := range []*string{&info.Name, &info.Family, &info.Vendor} {
		if strings.ContainsRune(*v, '\n') {
			c.opts.log.Warn("product contains invalid value", "value", *v)
			*v = ""
		}
	}

	if info == (Product{}) {
		return info, errors.New("no product information found")
	}
	return info, nil
}

type lscpuEntry struct {
	Field    string       `json:"field"`
	Data     string       `json:"data"`
	Children []lscpuEntry `json:"children,omitempty"`
}

// CPU detects the processors with lscpu, or with the platform API when lscpu fails.
func (c Collector) CPU(ctx context.Context) (info CPU, err error) {
	defer decorate.OnError(&err, "failed to detect CPU")

	info, err = c.lscpu(ctx)
	if err == nil {
		return info, nil
	}
	c.opts.log.Info("lscpu failed, falling back to the platform API", "error", err)

	stats, err := c.opts.cpuFallback(ctx)
	if err != nil {
		return CPU{}, err
	}
	if len(stats) == 0 {
		return CPU{}, errors.New("no CPU information found")
	}

	return CPU{
		Name:   stats[0].ModelName,
		Vendor: stats[0].VendorID,
		Arch:   c.arch(ctx),
		Count:  uint64(len(stats)),
	}, nil
}

func (c Collector) lscpu(ctx context.Context) (CPU, error) {
	out, err := cmdutils.Run(ctx, 15*time.Second, c.opts.cpuInfoCmd[0], c.opts.cpuInfoCmd[1:]...)
	if err != nil {
		return CPU{}, err
	}
	if len(out.Stderr) > 0 {
		c.opts.log.Info("lscpu output to stderr", "stderr", string(out.Stderr))
	}

	var result struct {
		Lscpu []lscpuEntry `json:"lscpu"`
	}
	if err := json.Unmarshal(out.Stdout, &result); err != nil {
		return CPU{}, fmt.Errorf("failed to parse lscpu output: %v", err)
	}

	fields := make(map[string]string)
	collectLscpuFields(result.Lscpu, fields)

	info := CPU{
		Name:   fields["Model name:"],
		Vendor: fields["Vendor ID:"],
		Arch:   fields["Architecture:"],
	}
	if n := fields["CPU(s):"]; n != "" {
		info.Count, err = strconv.ParseUint(n, 10, 64)
		if err != nil {
			c.opts.log.Warn("lscpu reported an invalid CPU count", "value", n, "error", err)
		}
	}

	if info.Name == "" {
		return CPU{}, errors.New("no CPU model found in lscpu output")
	}
	return info, nil
}

// collectLscpuFields recursively flattens the lscpu JSON entries into fields.
func collectLscpuFields(entries []lscpuEntry, fields map[string]string) {
	for _, e := range entries {
		fields[e.Field] = e.Data
		collectLscpuFields(e.Children, fields)
	}
}

// Kernel detects the running kernel.
func (c Collector) Kernel(ctx context.Context) (info Kernel, err error) {
	defer decorate.OnError(&err, "failed to detect kernel")

	h, err := c.opts.hostInfo(ctx)
	if err != nil {
		return Kernel{}, err
	}

	return Kernel{
		Name:    cases.Title(language.Und).String(h.OS),
		Release: h.KernelVersion,
		Arch:    h.KernelArch,
	}, nil
}

// Uptime returns the time since boot.
func (c Collector) Uptime(ctx context.Context) (d time.Duration, err error) {
	defer decorate.OnError(&err, "failed to detect uptime")

	secs, err := c.opts.uptime(ctx)
	if err != nil {
		return 0, err
	}
	return time.Duration(secs) * time.Second, nil
}

// Title returns the current user name and the host name.
func (c Collector) Title(ctx context.Context) (info Title, err error) {
	defer decorate.OnError(&err, "failed to detect title")

	u, err := c.opts.currentUser()
	if err != nil {
		return Title{}, err
	}

	h, err := c.opts.hostInfo(ctx)
	if err != nil {
		return Title{}, err
	}

	return Title{User: u, Host: h.Hostname}, nil
}

// arch returns the machine architecture as reported by the kernel, or the one sysfetch was built for.
func (c Collector) arch(ctx context.Context) string {
	h, err := c.opts.hostInfo(ctx)
	if err != nil || h.KernelArch == "" {
		c.opts.log.Debug("Could not get kernel architecture", "error", err)
		return runtime.GOARCH
	}
	return h.KernelArch
}

func currentUser() (string, error) {
	if u := os.Getenv("USER"); u != "" {
		return u, nil
	}
	u, err := user.Current()
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

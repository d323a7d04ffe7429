package memory

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/ubuntu/sysfetch/internal/fileutils"
)

type options struct {
	root string
	log  *slog.Logger
}

func defaultOptions() *options {
	return &options{
		root: "/",
		log:  slog.Default(),
	}
}

// ErrNoTotal is returned when meminfo does not report the total memory.
var ErrNoTotal = errors.New("MemTotal not found in meminfo")

// Lines are in the form `key`:   `value` (`unit`).
// For example: "MemTotal: 123 kB" or "HugePages_Total:   0".
var meminfoRegex = regexp.MustCompile(`^([^\s:]+):\s*([0-9]+)(?:\s+([^\s]+))?\s*$`)

// readMeminfo returns the values of meminfo, in bytes.
func (c Collector) readMeminfo() (map[string]uint64, error) {
	f, err := os.ReadFile(filepath.Join(c.opts.root, "proc/meminfo"))
	if err != nil {
		return nil, fmt.Errorf("failed to read meminfo: %v", err)
	}

	fields := make(map[string]uint64)
	for i, l := range strings.Split(string(f), "\n") {
		if l == "" {
			continue
		}

		m := meminfoRegex.FindStringSubmatch(l)
		if m == nil {
			c.opts.log.Warn("meminfo contains invalid line", "line", l, "linenum", i)
			continue
		}

		v, err := strconv.ParseUint(m[2], 10, 64)
		if err != nil {
			c.opts.log.Warn("meminfo value was not an integer", "value", m[2], "error", err, "linenum", i)
			continue
		}

		b, err := fileutils.ToBytes(v, m[3])
		if err != nil {
			c.opts.log.Warn("meminfo had invalid unit", "unit", m[3], "error", err, "linenum", i)
			continue
		}
		fields[m[1]] = b
	}

	return fields, nil
}

func (c Collector) memory() (Info, error) {
	fields, err := c.readMeminfo()
	if err != nil {
		return Info{}, err
	}

	total, ok := fields["MemTotal"]
	if !ok {
		return Info{}, ErrNoTotal
	}

	available, ok := fields["MemAvailable"]
	if !ok {
		// Kernels before 3.14 do not report MemAvailable.
		available = fields["MemFree"] + fields["Buffers"] + fields["Cached"] + fields["SReclaimable"]
		available -= min(available, fields["Shmem"])
	}

	return Info{Total: total, Used: total - min(total, available)}, nil
}

func (c Collector) swap() (Info, error) {
	fields, err := c.readMeminfo()
	if err != nil {
		return Info{}, err
	}

	total := fields["SwapTotal"]
	return Info{Total: total, Used: total - min(total, fields["SwapFree"])}, nil
}

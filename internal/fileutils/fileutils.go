// Package fileutils reads the small files system facts are exposed in, and writes files atomically.
package fileutils

import (
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/go-units"
	"github.com/ubuntu/decorate"
)

// ReadValue returns the trimmed content of a file holding a single value, like the ones of sysfs.
// A file which can't be read is logged and reads as "".
func ReadValue(path string, log *slog.Logger) string {
	data, err := os.ReadFile(path)
	if err != nil {
		log.Warn("Failed to read value", "file", path, "error", err)
		return ""
	}
	return strings.TrimSpace(string(data))
}

// unitSizes are the sizes of the units found in procfs, which are all binary.
var unitSizes = map[string]uint64{
	"":    1,
	"b":   1,
	"k":   units.KiB,
	"kb":  units.KiB,
	"kib": units.KiB,
	"m":   units.MiB,
	"mb":  units.MiB,
	"mib": units.MiB,
	"g":   units.GiB,
	"gb":  units.GiB,
	"gib": units.GiB,
	"t":   units.TiB,
	"tb":  units.TiB,
	"tib": units.TiB,
}

// ToBytes converts value, expressed in unit, to bytes. Units are case insensitive.
// On error, value is returned unchanged.
func ToBytes(value uint64, unit string) (uint64, error) {
	size, ok := unitSizes[strings.ToLower(unit)]
	if !ok {
		return value, fmt.Errorf("unrecognized bytes unit: %s", unit)
	}
	if value > math.MaxUint64/size {
		return value, fmt.Errorf("%d %s overflows", value, unit)
	}
	return value * size, nil
}

// AtomicWrite replaces the file at path with data, giving it perm.
// Readers never see a partially written file, except on Windows where the rename is not atomic.
func AtomicWrite(path string, data []byte, perm os.FileMode) (err error) {
	defer decorate.OnError(&err, "could not write %s", path)

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		if err := os.Remove(tmp.Name()); err != nil && !os.IsNotExist(err) {
			slog.Warn("Failed to remove temporary file", "file", tmp.Name(), "error", err)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		return err
	}
	if err := tmp.Chmod(perm); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

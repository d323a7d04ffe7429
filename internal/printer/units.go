package printer

import (
	"fmt"
	"strings"

	"github.com/docker/go-units"
)

// BinaryPrefix selects the units used to print sizes.
type BinaryPrefix string

const (
	// PrefixIEC uses powers of 1024 with KiB, MiB, ... units.
	PrefixIEC BinaryPrefix = "iec"
	// PrefixSI uses powers of 1000 with kB, MB, ... units.
	PrefixSI BinaryPrefix = "si"
	// PrefixJEDEC uses powers of 1024 with KB, MB, ... units.
	PrefixJEDEC BinaryPrefix = "jedec"
)

var (
	iecUnits   = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	siUnits    = []string{"B", "kB", "MB", "GB", "TB", "PB", "EB"}
	jedecUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
)

// ParseBinaryPrefix returns the binary prefix named s, case-insensitively.
func ParseBinaryPrefix(s string) (BinaryPrefix, error) {
	switch p := BinaryPrefix(strings.ToLower(s)); p {
	case PrefixIEC, PrefixSI, PrefixJEDEC:
		return p, nil
	default:
		return "", fmt.Errorf("unknown binary prefix %q: must be one of %s, %s or %s", s, PrefixIEC, PrefixSI, PrefixJEDEC)
	}
}

// FormatSize renders a size in bytes with the units of prefix.
// Sizes below the base are printed as bytes, others with two decimals.
func FormatSize(bytes uint64, prefix BinaryPrefix) string {
	base, abbrs := 1024.0, iecUnits
	switch prefix {
	case PrefixSI:
		base, abbrs = 1000.0, siUnits
	case PrefixJEDEC:
		abbrs = jedecUnits
	}

	if float64(bytes) < base {
		return fmt.Sprintf("%d B", bytes)
	}
	return units.CustomSize("%.2f %s", float64(bytes), base, abbrs)
}

// Size renders a size in bytes with the configured binary prefix.
func (p *Printer) Size(bytes uint64) string {
	return FormatSize(bytes, p.cfg.BinaryPrefix)
}

// Package format renders byte counts as human-readable, column-aligned
// strings — the ByteFormatter ambient component of SPEC_FULL.md §4.10,
// generalized from the teacher's formatBytes/formatAlignedColumn
// (pkg/output/formatter.go, now retired in favor of this package).
package format

import "fmt"

// Mode selects a byte-formatting scheme, mirroring the -f/--format values
// in spec.md §6.
type Mode int

const (
	// Metric scales by 1000 (B, KB, MB, GB, TB, PB).
	Metric Mode = iota
	// Binary scales by 1024 (B, KiB, MiB, GiB, TiB, PiB).
	Binary
	// Bytes prints the raw integer byte count with no scaling.
	Bytes
	// GB always renders in fixed 1e9-byte units.
	GB
	// GiB always renders in fixed 2^30-byte units.
	GiB
	// MB always renders in fixed 1e6-byte units.
	MB
	// MiB always renders in fixed 2^20-byte units.
	MiB
)

// ParseMode maps a CLI flag value to a Mode. It returns an error for any
// value other than the set named in spec.md §6 global flags.
func ParseMode(s string) (Mode, error) {
	switch s {
	case "metric":
		return Metric, nil
	case "binary":
		return Binary, nil
	case "bytes":
		return Bytes, nil
	case "gb":
		return GB, nil
	case "gib":
		return GiB, nil
	case "mb":
		return MB, nil
	case "mib":
		return MiB, nil
	default:
		return 0, fmt.Errorf("unknown format %q: want one of metric, binary, bytes, gb, gib, mb, mib", s)
	}
}

var metricUnits = []string{"B", "KB", "MB", "GB", "TB", "PB", "EB"}
var binaryUnits = []string{"B", "KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// Formatter renders byte counts for a fixed Mode. Each call renders
// independently with no cross-call state, unlike the teacher's
// formatAlignedColumn; the column width comes from ColumnWidth alone
// (SPEC_FULL.md §4.10).
type Formatter struct {
	mode Mode
}

// New creates a Formatter for the given Mode.
func New(mode Mode) *Formatter {
	return &Formatter{mode: mode}
}

// Format renders n bytes according to the Formatter's Mode.
func (f *Formatter) Format(n int64) string {
	switch f.mode {
	case Bytes:
		return fmt.Sprintf("%d", n)
	case GB:
		return fixedUnit(n, 1_000_000_000, "GB")
	case GiB:
		return fixedUnit(n, 1<<30, "GiB")
	case MB:
		return fixedUnit(n, 1_000_000, "MB")
	case MiB:
		return fixedUnit(n, 1<<20, "MiB")
	case Binary:
		return scaled(n, 1024, binaryUnits)
	default: // Metric
		return scaled(n, 1000, metricUnits)
	}
}

// ColumnWidth reports the width Aggregator should right-align values to,
// wide enough for the longest string this Mode is expected to produce
// (e.g. "1023.9 TiB").
func (f *Formatter) ColumnWidth() int {
	switch f.mode {
	case Bytes:
		return 12
	case GB, GiB, MB, MiB:
		return 10
	default:
		return 11
	}
}

func scaled(n int64, base float64, units []string) string {
	if n == 0 {
		return "0 " + units[0]
	}
	f := float64(n)
	idx := 0
	for f >= base && idx < len(units)-1 {
		f /= base
		idx++
	}
	if idx == 0 {
		return fmt.Sprintf("%d %s", n, units[0])
	}
	return fmt.Sprintf("%.1f %s", f, units[idx])
}

func fixedUnit(n int64, unitBytes float64, suffix string) string {
	return fmt.Sprintf("%.2f %s", float64(n)/unitBytes, suffix)
}

// Package human formats numbers compactly for terminal reports.
package human

import (
	"strconv"
)

var suffixes = []string{"K", "M", "G", "T", "P", "E"}

// Count renders n as a short string like "999", "1.5K" or "12.3M".
func Count(n int64) string {
	if n < 0 {
		return "-" + Count(-n)
	}
	if n < 1000 {
		return strconv.FormatInt(n, 10)
	}
	f := float64(n)
	for _, suf := range suffixes {
		f /= 1000
		if f >= 1000 {
			continue
		}
		prec := 0
		switch {
		case f < 10:
			prec = 2
		case f < 100:
			prec = 1
		}
		return strconv.FormatFloat(f, 'f', prec, 64) + suf
	}
	panic("must not happen")
}

// Rate renders an operations-per-second value, e.g. "435K op/s".
func Rate(opsPerSec float64) string {
	if opsPerSec < 1000 {
		return strconv.FormatFloat(opsPerSec, 'f', 0, 64) + " op/s"
	}
	return Count(int64(opsPerSec)) + " op/s"
}

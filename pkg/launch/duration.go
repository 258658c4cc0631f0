package launch

import (
	"math"
	"strconv"
	"strings"
	"time"
)

// durationUnits is ordered so that two-letter suffixes are tried before "s"
var durationUnits = []struct {
	suffix string
	unit   time.Duration
}{
	{"ns", time.Nanosecond},
	{"us", time.Microsecond},
	{"ms", time.Millisecond},
	{"s", time.Second},
	{"m", time.Minute},
	{"h", time.Hour},
	{"d", 24 * time.Hour},
}

// ParseDuration converts a human-readable duration to whole seconds.
//
// The accepted form is an integer optionally followed by one of the
// case-insensitive suffixes ns, us, ms, s, m, h or d. A bare integer is
// taken as seconds and sub-second results truncate toward zero, so "1500ms"
// is 1. An empty string is 0. Negative values are rejected.
func ParseDuration(s string) (int64, error) {
	trimmed := strings.ToLower(strings.TrimSpace(s))
	if trimmed == "" {
		return 0, nil
	}

	number, unit := trimmed, time.Second
	for _, u := range durationUnits {
		if strings.HasSuffix(trimmed, u.suffix) {
			number = strings.TrimSpace(strings.TrimSuffix(trimmed, u.suffix))
			unit = u.unit
			break
		}
	}

	n, err := strconv.ParseInt(number, 10, 64)
	if err != nil {
		return 0, &DurationError{Input: s, Reason: "expected an integer with an optional ns, us, ms, s, m, h or d suffix"}
	}
	if n < 0 {
		return 0, &DurationError{Input: s, Reason: "must not be negative"}
	}

	if unit >= time.Second {
		perUnit := int64(unit / time.Second)
		if n > math.MaxInt64/perUnit {
			return 0, &DurationError{Input: s, Reason: "out of range"}
		}
		return n * perUnit, nil
	}
	return n / int64(time.Second/unit), nil
}

// Package swimtime converts textual race times to and from canonical
// seconds. The two accepted shapes are "SS.ss" and "MM:SS.ss"; everything
// the results site reports for a non-finish (DQ, Pending, NS) maps to a
// no-time value rather than an error.
package swimtime

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// secondsPerMinute converts the minute component of "MM:SS.ss" times.
const secondsPerMinute = 60

// noTimeSentinels are the markers the upstream results site uses for
// swims without a valid finish.
var noTimeSentinels = map[string]struct{}{
	"DQ":      {},
	"PENDING": {},
	"NS":      {},
}

// Parse converts a textual race time to seconds.
//
// It returns (seconds, true, nil) for a valid time, (0, false, nil) for a
// recognized no-time sentinel or empty input, and a wrapped
// ErrMalformedTime for anything else. Sentinels are an expected state of
// the data, not a failure; callers decide per record whether a malformed
// time skips the row or aborts the batch.
func Parse(text string) (float64, bool, error) {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return 0, false, nil
	}
	if _, ok := noTimeSentinels[strings.ToUpper(trimmed)]; ok {
		return 0, false, nil
	}

	var seconds float64
	switch parts := strings.Split(trimmed, ":"); len(parts) {
	case 1:
		sec, err := strconv.ParseFloat(parts[0], 64)
		if err != nil {
			return 0, false, fmt.Errorf("%w: %q", ErrMalformedTime, text)
		}
		seconds = sec
	case 2:
		minutes, err := strconv.Atoi(parts[0])
		if err != nil || minutes < 0 {
			return 0, false, fmt.Errorf("%w: %q", ErrMalformedTime, text)
		}
		sec, err := strconv.ParseFloat(parts[1], 64)
		if err != nil || sec < 0 || sec >= secondsPerMinute {
			return 0, false, fmt.Errorf("%w: %q", ErrMalformedTime, text)
		}
		seconds = float64(minutes)*secondsPerMinute + sec
	default:
		return 0, false, fmt.Errorf("%w: %q", ErrMalformedTime, text)
	}

	// A race time of zero or below never happens; treat it as corrupt
	// upstream data rather than a sentinel.
	if seconds <= 0 {
		return 0, false, fmt.Errorf("%w: non-positive time %q", ErrMalformedTime, text)
	}
	return seconds, true, nil
}

// Format renders seconds in the site's notation: "M:SS.ss" at or above a
// minute (seconds zero-padded to width 5), "SS.ss" below. It is the exact
// inverse of Parse for valid times, within floating-point tolerance.
func Format(seconds float64) string {
	// Round to centiseconds first so "1:59.999" cannot render as 1:60.00.
	rounded := math.Round(seconds*100) / 100
	if rounded < secondsPerMinute {
		return fmt.Sprintf("%.2f", rounded)
	}
	minutes := int(rounded) / secondsPerMinute
	rem := rounded - float64(minutes*secondsPerMinute)
	return fmt.Sprintf("%d:%05.2f", minutes, rem)
}

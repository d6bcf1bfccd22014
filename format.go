package fresco

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"time"
)

// UnknownTime is rendered in place of a recipe total time that is zero or unreadable.
const UnknownTime = "unknown"

var isoDuration = regexp.MustCompile(`^P(?:(\d+)D)?(?:T(?:(\d+)H)?(?:(\d+)M)?(?:(\d+(?:\.\d+)?)S)?)?$`)

// ParseTotalTime parses the ISO-8601 durations the API uses for recipe times, e.g. "PT1H15M".
func ParseTotalTime(iso string) (time.Duration, error) {
	m := isoDuration.FindStringSubmatch(iso)
	if m == nil || iso == "P" || iso == "PT" {
		return 0, fmt.Errorf("invalid duration %q", iso)
	}

	var d time.Duration
	units := []time.Duration{24 * time.Hour, time.Hour, time.Minute}
	for i, unit := range units {
		if m[i+1] == "" {
			continue
		}
		n, err := strconv.ParseInt(m[i+1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", iso, err)
		}
		if n > int64(math.MaxInt64/unit) {
			return 0, fmt.Errorf("invalid duration %q: out of range", iso)
		}
		if d, err = addDuration(d, time.Duration(n)*unit); err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", iso, err)
		}
	}
	if m[4] != "" {
		s, err := strconv.ParseFloat(m[4], 64)
		if err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", iso, err)
		}
		if s >= float64(math.MaxInt64)/float64(time.Second) {
			return 0, fmt.Errorf("invalid duration %q: out of range", iso)
		}
		if d, err = addDuration(d, time.Duration(s*float64(time.Second))); err != nil {
			return 0, fmt.Errorf("invalid duration %q: %w", iso, err)
		}
	}
	return d, nil
}

func addDuration(a, b time.Duration) (time.Duration, error) {
	if a > math.MaxInt64-b {
		return 0, fmt.Errorf("out of range")
	}
	return a + b, nil
}

// FormatTotalTime renders a recipe's total time as "1h 15m", "2h" or "30m".
func FormatTotalTime(iso string) string {
	d, err := ParseTotalTime(iso)
	if err != nil {
		return UnknownTime
	}

	d = d.Round(time.Minute)
	if d <= 0 {
		return UnknownTime
	}

	hours := int(d / time.Hour)
	minutes := int((d % time.Hour) / time.Minute)
	switch {
	case hours > 0 && minutes > 0:
		return fmt.Sprintf("%dh %dm", hours, minutes)
	case hours > 0:
		return fmt.Sprintf("%dh", hours)
	default:
		return fmt.Sprintf("%dm", minutes)
	}
}

// Kcal estimates energy from macros using 4 kcal/g for protein and carbs and 9 kcal/g for fat.
func (m Macros) Kcal() float64 {
	return 4*m.Proteins + 4*m.Carbs + 9*m.Fats
}

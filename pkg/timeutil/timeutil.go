package timeutil

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// FormatTime formats seconds as H:MM:SS (e.g. 0:01:30, 1:11:22).
func FormatTime(seconds float64) string {
	if seconds < 0 || math.IsNaN(seconds) {
		seconds = 0
	}
	totalSeconds := int(seconds)
	hours := totalSeconds / 3600
	mins := (totalSeconds % 3600) / 60
	secs := totalSeconds % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, mins, secs)
}

// FormatSeconds renders a seconds value with millisecond precision, the form
// ffmpeg accepts for -ss and -to.
func FormatSeconds(seconds float64) string {
	return strconv.FormatFloat(seconds, 'f', 3, 64)
}

// ParseTimeToSeconds parses a time string in HH:MM:SS, MM:SS, or raw seconds format.
// Uses colon count: 2 colons = H:M:S, 1 colon = M:S, 0 colons = raw seconds.
// The last component may carry a fractional part (1:02.5).
func ParseTimeToSeconds(timeStr string) (float64, error) {
	trimmed := strings.TrimSpace(timeStr)
	parts := strings.Split(trimmed, ":")
	if trimmed == "" || len(parts) > 3 {
		return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
	}

	total := 0.0
	for i, part := range parts {
		last := i == len(parts)-1
		var value float64
		if last {
			v, err := strconv.ParseFloat(part, 64)
			if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
				return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
			}
			value = v
		} else {
			v, err := strconv.Atoi(part)
			if err != nil {
				return 0, fmt.Errorf("expected HH:MM:SS, MM:SS, or seconds, got '%s'", timeStr)
			}
			value = float64(v)
		}
		if value < 0 {
			return 0, fmt.Errorf("time must not be negative, got '%s'", timeStr)
		}
		// Minutes and seconds fields are bounded once a larger unit is present.
		if len(parts) > 1 && i > 0 && value >= 60 {
			return 0, fmt.Errorf("minutes and seconds must be below 60, got '%s'", timeStr)
		}
		total = total*60 + value
	}
	return total, nil
}

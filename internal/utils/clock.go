package utils

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseClockHours converts a timesheet field of the form "H" or "H:MM"
// into fractional hours ("2:15" -> 2.25). Hour and minute parts must be
// non-negative integers and minutes must stay below 60.
func ParseClockHours(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return 0, fmt.Errorf("empty time string")
	}

	hourPart := s
	minutePart := ""
	if i := strings.Index(s, ":"); i >= 0 {
		hourPart = s[:i]
		minutePart = s[i+1:]
	}

	hours, err := strconv.Atoi(hourPart)
	if err != nil || hours < 0 {
		return 0, fmt.Errorf("invalid hours in %q", raw)
	}

	if minutePart == "" {
		if strings.Contains(s, ":") {
			return 0, fmt.Errorf("missing minutes in %q", raw)
		}
		return float64(hours), nil
	}

	minutes, err := strconv.Atoi(minutePart)
	if err != nil || minutes < 0 || minutes >= 60 {
		return 0, fmt.Errorf("invalid minutes in %q", raw)
	}

	return float64(hours) + float64(minutes)/60, nil
}

// SplitClockHours parses like ParseClockHours but keeps the hour and
// minute components separate, for storage as an explicit report row.
func SplitClockHours(raw string) (hours, minutes float64, err error) {
	s := strings.TrimSpace(raw)
	i := strings.Index(s, ":")
	if i < 0 {
		v, err := ParseClockHours(s)
		if err != nil {
			return 0, 0, err
		}
		return v, 0, nil
	}

	h, err := strconv.Atoi(s[:i])
	if err != nil || h < 0 {
		return 0, 0, fmt.Errorf("invalid hours in %q", raw)
	}
	m, err := strconv.Atoi(s[i+1:])
	if err != nil || m < 0 || m >= 60 {
		return 0, 0, fmt.Errorf("invalid minutes in %q", raw)
	}
	return float64(h), float64(m), nil
}

package clip

import (
	"fmt"
	"strconv"
	"strings"
)

// DurationSeconds converts a canonical timecode into a second count. Two
// textual forms are accepted: colon-separated (MM:SS or HH:MM:SS, each field
// an integer) and a bare number with a trailing unit suffix such as "45s"
// (trailing non-digits stripped, remainder parsed).
func DurationSeconds(value string) (int, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, fmt.Errorf("empty timecode")
	}

	if strings.Contains(trimmed, ":") {
		parts := strings.Split(trimmed, ":")
		if len(parts) < 2 || len(parts) > 3 {
			return 0, fmt.Errorf("timecode %q: expected MM:SS or HH:MM:SS", value)
		}
		total := 0
		for _, part := range parts {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || n < 0 {
				return 0, fmt.Errorf("timecode %q: invalid field %q", value, part)
			}
			total = total*60 + n
		}
		return total, nil
	}

	digits := strings.TrimRightFunc(trimmed, func(r rune) bool {
		return r < '0' || r > '9'
	})
	if digits == "" {
		return 0, fmt.Errorf("timecode %q: no digits", value)
	}
	n, err := strconv.Atoi(digits)
	if err != nil {
		return 0, fmt.Errorf("timecode %q: %w", value, err)
	}
	return n, nil
}

package logger

import (
	"fmt"
	"strings"
	"time"
)

// RoundMS rounds d to whole milliseconds; negative durations become zero.
func RoundMS(d time.Duration) time.Duration {
	return max(d, 0).Round(time.Millisecond)
}

// Preview joins at most limit values and notes how many were left out, for
// example "a, b (+3 more)".
func Preview(values []string, limit int) string {
	if len(values) <= limit {
		return strings.Join(values, ", ")
	}
	limit = max(limit, 0)
	head := strings.Join(values[:limit], ", ")
	if head == "" {
		return fmt.Sprintf("(+%d more)", len(values))
	}
	return fmt.Sprintf("%s (+%d more)", head, len(values)-limit)
}

package appointment

import (
	"strings"
	"time"
)

const observationTimeFormat = "2006-01-02T15:04:05"

// appendObservation concatenates a timestamp-bannered note onto the existing
// description. Prior content is never truncated or rewritten; a blank line
// separates entries.
func appendObservation(description, observation string, now time.Time) string {
	banner := "--- " + now.Format(observationTimeFormat) + " ---\n" + observation
	if strings.TrimSpace(description) == "" {
		return banner
	}
	return description + "\n\n" + banner
}

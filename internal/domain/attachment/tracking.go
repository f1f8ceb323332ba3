package attachment

import (
	"fmt"
	"regexp"
)

// TrackingPrefix is the fixed prefix of every tracking reference
const TrackingPrefix = "EUJ"

var trackingPattern = regexp.MustCompile(`^` + TrackingPrefix + `-(\d{4})-(\d{3,})$`)

// FormatTrackingID builds a tracking reference from a year and a sequence
// number, e.g. EUJ-2024-003. The sequence is zero-padded to three digits but
// grows beyond that without truncation.
func FormatTrackingID(year int, sequence int64) string {
	return fmt.Sprintf("%s-%d-%03d", TrackingPrefix, year, sequence)
}

// IsTrackingID reports whether s looks like a tracking reference
func IsTrackingID(s string) bool {
	return trackingPattern.MatchString(s)
}

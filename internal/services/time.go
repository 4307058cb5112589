package services

import (
	"time"

	"github.com/rs/zerolog/log"
)

// Timestamps are persisted as UTC text with a fixed-width 9-digit fraction
// so that lexicographic order on the stored strings matches chronological
// order, which the newest-first queries rely on. RFC3339Nano is not used for
// writing because it trims trailing zeros and breaks string ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		log.Warn().Err(err).Str("value", s).Msg("Failed to parse stored timestamp")
		return time.Time{}
	}
	return t
}

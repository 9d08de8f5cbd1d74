package service

import (
	"math"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/msomdec/cyber-thread/internal/domain"
)

// timeAgoMagnitudes are the display tiers for TimeAgo: under a minute is
// "just now", then whole minutes, hours, and days, truncated.
var timeAgoMagnitudes = []humanize.RelTimeMagnitude{
	{D: time.Minute, Format: "just now", DivBy: 1},
	{D: 2 * time.Minute, Format: "1 minute %s", DivBy: 1},
	{D: time.Hour, Format: "%d minutes %s", DivBy: time.Minute},
	{D: 2 * time.Hour, Format: "1 hour %s", DivBy: 1},
	{D: 24 * time.Hour, Format: "%d hours %s", DivBy: time.Hour},
	{D: 48 * time.Hour, Format: "1 day %s", DivBy: 1},
	{D: math.MaxInt64, Format: "%d days %s", DivBy: 24 * time.Hour},
}

// TimeAgo describes how long before now t was, e.g. "5 minutes ago".
// A zero or future t reads as "just now".
func TimeAgo(t, now time.Time) string {
	if t.IsZero() || t.After(now) {
		return "just now"
	}
	return humanize.CustomRelTime(t, now, "ago", "from now", timeAgoMagnitudes)
}

// TimeAgoString is TimeAgo for a textual timestamp. Unparsable or empty
// input reads as "just now".
func TimeAgoString(raw string, now time.Time) string {
	t, ok := domain.ParseTimestamp(raw)
	if !ok {
		return "just now"
	}
	return TimeAgo(t, now)
}

package utils

import (
	"fmt"
	"time"
)

// TimeAgo formats the distance between t and now: "3 days ago", "1 hours ago", "12 seconds ago".
// A unit is used once more than one whole unit has passed.
func TimeAgo(t, now time.Time) string {
	seconds := now.Sub(t).Seconds()

	units := []struct {
		size float64
		name string
	}{
		{31536000, "years"},
		{2592000, "months"},
		{86400, "days"},
		{3600, "hours"},
		{60, "minutes"},
	}
	for _, u := range units {
		if interval := seconds / u.size; interval > 1 {
			return fmt.Sprintf("%d %s ago", int(interval), u.name)
		}
	}
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d seconds ago", int(seconds))
}

package utils

import "time"

// NowRFC3339 returns the current UTC time in RFC3339 format, the timestamp
// format used in API responses and stored rows.
func NowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339)
}

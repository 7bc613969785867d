package shared

import "time"

// DayLayout is the wire format for calendar dates throughout the API.
// Punches, justifications and consolidations are all keyed by day.
const DayLayout = "2006-01-02"

// ParseDate accepts YYYY-MM-DD, the common case for this API, and falls back
// to RFC3339 for clients that send full timestamps. Calendar dates are
// interpreted in UTC. An empty value parses to the zero time without error so
// optional query parameters stay optional.
func ParseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if parsed, err := time.ParseInLocation(DayLayout, value, time.UTC); err == nil {
		return parsed, nil
	}
	return time.Parse(time.RFC3339, value)
}

// FormatDay renders a time as the API's calendar-date wire format.
func FormatDay(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

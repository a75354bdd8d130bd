package db

import "time"

// TimeFormat renders t as RFC3339 in UTC, the canonical storage format.
func TimeFormat(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TimeParse parses an RFC3339 timestamp as stored by TimeFormat.
// The zero string parses to the zero time.
func TimeParse(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, s)
}

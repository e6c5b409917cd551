package repository

import (
	"strings"
	"time"
)

// nowUTC returns the current UTC time, truncated to the stored precision.
func nowUTC() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}

// formatTime renders t for storage. RFC3339 strings sort chronologically.
func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// escapeLike escapes LIKE wildcards so user input matches literally.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

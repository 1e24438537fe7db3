package model

import (
	"strings"
	"time"
)

func oneOf(allowed []string, v string) bool {
	for _, a := range allowed {
		if a == v {
			return true
		}
	}
	return false
}

// canonical maps v to the allowed spelling, ignoring case
func canonical(allowed []string, v string) (string, bool) {
	for _, a := range allowed {
		if strings.EqualFold(a, v) {
			return a, true
		}
	}
	return v, false
}

// uniqueStrings drops blanks and duplicates, keeping first occurrence order
func uniqueStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, s := range in {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}

// NextUpdate returns a timestamp strictly after prev, preferring now.
// Stored timestamps have microsecond precision.
func NextUpdate(prev, now time.Time) time.Time {
	now = now.UTC().Truncate(time.Microsecond)
	if !now.After(prev) {
		return prev.Add(time.Microsecond)
	}
	return now
}

// Stamp returns now in the precision used for stored timestamps
func Stamp(now time.Time) time.Time {
	return now.UTC().Truncate(time.Microsecond)
}

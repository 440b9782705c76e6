package utils

import (
	"fmt"
	"time"
)

// BRT is the Brasília time location used for Piauí (UTC-3, no DST).
var BRT *time.Location

func init() {
	var err error
	BRT, err = time.LoadLocation("America/Fortaleza")
	if err != nil {
		// Fallback: create fixed zone if tz database is not available
		BRT = time.FixedZone("BRT", -3*60*60)
	}
}

// NowBRT returns the current time in BRT.
func NowBRT() time.Time {
	return time.Now().In(BRT)
}

// ToBRT converts a time.Time to BRT.
func ToBRT(t time.Time) time.Time {
	return t.In(BRT)
}

// StartOfDayBRT returns midnight BRT of the day t falls on.
func StartOfDayBRT(t time.Time) time.Time {
	d := t.In(BRT)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, BRT)
}

// ParseDateBRT parses a date string in "2006-01-02" format and returns it in BRT.
func ParseDateBRT(dateStr string) (time.Time, error) {
	return time.ParseInLocation("2006-01-02", dateStr, BRT)
}

// ParseSinceBRT parses a lower date bound given either as "2006-01-02" or
// as an RFC 3339 timestamp. Timestamps are truncated to midnight BRT of the
// day they fall on.
func ParseSinceBRT(s string) (time.Time, error) {
	if d, err := ParseDateBRT(s); err == nil {
		return d, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: use YYYY-MM-DD", s)
	}
	return StartOfDayBRT(t), nil
}

// FormatDateTimeBRT formats a time.Time the Brazilian way, "02/01/2006 15:04".
// The zero time renders as "-".
func FormatDateTimeBRT(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.In(BRT).Format("02/01/2006 15:04")
}

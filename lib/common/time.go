package common

import (
	"strconv"
	"time"
)

const (
	TIMEFORMAT_ISO8601 string = "2006-01-02T15:04:05.000000000Z07:00"
)

func FormatISO8601(t time.Time) string {
	return t.Format(TIMEFORMAT_ISO8601)
}

func NowISO8601() string {
	return FormatISO8601(time.Now())
}

func ParseISO8601(s string) (time.Time, error) {
	return time.Parse(TIMEFORMAT_ISO8601, s)
}

// ParseTimeParam accepts ISO8601, RFC3339 or unix seconds, the forms
// clients use for the `since` bound.
func ParseTimeParam(s string) (t time.Time, err error) {
	if t, err = ParseISO8601(s); err == nil {
		return
	}
	if t, err = time.Parse(time.RFC3339Nano, s); err == nil {
		return
	}

	var sec int64
	if sec, err = strconv.ParseInt(s, 10, 64); err != nil {
		return
	}

	return time.Unix(sec, 0).UTC(), nil
}

package utils

import "time"

// TimestampLayout is ISO-8601 with millisecond precision, the resolution
// note timestamps are stored at.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

func FormatEpoch(millis int64) string {
	return time.UnixMilli(millis).
		UTC().
		Format(TimestampLayout)
}

// ParseEpoch reads an ISO-8601 instant back into epoch millis. Instants
// without a zone offset are taken as UTC.
func ParseEpoch(value string) (int64, error) {
	t, err := time.Parse(time.RFC3339Nano, value)
	if err != nil {
		var lerr error
		t, lerr = time.ParseInLocation("2006-01-02T15:04:05.999999999", value, time.UTC)
		if lerr != nil {
			return 0, err
		}
	}
	return t.UTC().UnixMilli(), nil
}

func NowUTC() int64 {
	return time.Now().
		UTC().
		UnixMilli()
}

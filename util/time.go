// 2026 Craig Tomkow

// Package util provides supporting functions. The first useful function is for timestamps.
package util

import "time"

// Layout is the timestamp format embedded in dump filenames, e.g. shop-2026-10-19-142501
const Layout = "2006-01-02-150405"

type Timestamp struct {

	// stores the captured time in the local zone
	localTime time.Time

	// stores formatted timestamp
	fmtTime string
}

// creates a timestamp of the given time.
// The time is converted to the local zone so filenames match the developer's wall clock
func TimestampOf(t time.Time) *Timestamp {
	var ts Timestamp
	ts.localTime = t.Local()
	ts.fmtTime = ts.localTime.Format(Layout)
	return &ts
}

// returns the formatted timestamp
func (t *Timestamp) Timestamp() string {
	return t.fmtTime
}

// ParseTimestamp returns time.Time from a timestamp string formatted with Layout
func ParseTimestamp(timeStr string) (time.Time, error) {
	parsedTime, err := time.ParseInLocation(Layout, timeStr, time.Local)
	if err != nil {
		return time.Time{}, err
	}
	return parsedTime, nil
}

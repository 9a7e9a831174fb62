// Package civil pins date arithmetic to the facility's wall clock so that
// "today" never shifts a day when the server runs in UTC.
package civil

import "time"

// IST is the fixed civil offset all dates are normalized to.
var IST = time.FixedZone("IST", (5*60+30)*60)

// Date renders t as a YYYY-MM-DD civil date.
func Date(t time.Time) string {
	return t.In(IST).Format("2006-01-02")
}

// Stamp renders t the way booking emails quote request times.
func Stamp(t time.Time) string {
	return t.In(IST).Format("2/1/2006, 3:04:05 pm")
}

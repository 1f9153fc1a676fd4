package tz

import (
	"fmt"
	"strings"
	"time"
	_ "time/tzdata"
)

// Kigali is the Africa/Kigali location (CAT, UTC+2, no DST).
var Kigali *time.Location

func init() {
	var err error
	Kigali, err = time.LoadLocation("Africa/Kigali")
	if err != nil {
		panic("tz: load Africa/Kigali: " + err.Error())
	}
}

// dateLayouts are the accepted spellings of a calendar day.
var dateLayouts = []string{time.DateOnly, "02/01/2006"}

// ParseDate parses a day (YYYY-MM-DD or DD/MM/YYYY) at midnight in Kigali.
// A day after today is rejected: nothing is lost or found in the future.
func ParseDate(s string, now time.Time) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		d, err := time.ParseInLocation(layout, s, Kigali)
		if err != nil {
			continue
		}
		y, m, day := now.In(Kigali).Date()
		if d.After(time.Date(y, m, day, 0, 0, 0, 0, Kigali)) {
			return time.Time{}, fmt.Errorf("date %s is in the future", s)
		}
		return d, nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD or DD/MM/YYYY)", s)
}

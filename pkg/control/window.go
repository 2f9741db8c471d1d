package control

import "time"

// TimestampLayout renders timestamps with a numeric UTC offset, never a literal Z.
const TimestampLayout = "2006-01-02T15:04:05-07:00"

const statsTimeUnit = "hours"

// DayWindow returns the first and last second of now's calendar day in now's location.
func DayWindow(now time.Time) (start, end time.Time) {
	y, m, d := now.Date()
	start = time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	end = time.Date(y, m, d, 23, 59, 59, 0, now.Location())
	return start, end
}

// statsHistoryParams builds the query for stats_history from the given moment.
func statsHistoryParams(now time.Time) map[string]string {
	start, end := DayWindow(now)
	return map[string]string{
		"start_time": start.Format(TimestampLayout),
		"end_time":   end.Format(TimestampLayout),
		"time_unit":  statsTimeUnit,
	}
}

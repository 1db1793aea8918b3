package helpers

import "time"

// DateLayout is the format of event dates stored in post details.
const DateLayout = "2006-01-02"

// Today formats now as YYYY-MM-DD in UTC.
func Today(now time.Time) string {
	return now.UTC().Format(DateLayout)
}

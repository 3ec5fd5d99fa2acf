package render

import (
	"fmt"
	"mdpuppy/internal/domain/content"
	"strings"
)

// LongDate formats an ISO-8601 date as "January  1, 1970 | 12:00 am": space
// padded day and hour, lowercase meridiem, in the offset the date was written
// with. A date that does not parse is returned as written.
func LongDate(s string) string {
	t, ok := content.ParseDate(s)
	if !ok {
		return s
	}
	hour := t.Hour() % 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%s %2d, %d | %2d:%02d %s",
		t.Month(), t.Day(), t.Year(), hour, t.Minute(), strings.ToLower(t.Format("PM")))
}

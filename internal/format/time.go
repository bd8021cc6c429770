package format

import (
	"fmt"
	"time"

	"github.com/mkhasanoff/academy-backend/internal/model"
)

// DateTime renders a timestamp for display.
func DateTime(t time.Time) string {
	return t.Format("02.01.2006 15:04")
}

// Date renders the date part only.
func Date(t time.Time) string {
	return t.Format("02.01.2006")
}

// SlotRange renders a time slot as "09:00-10:30".
func SlotRange(s model.TimeSlot) string {
	return s.String()
}

// Duration renders a minute count as "1 h 30 min".
func Duration(minutes int) string {
	if minutes < 60 {
		return fmt.Sprintf("%d min", minutes)
	}
	hours := minutes / 60
	mins := minutes % 60
	if mins == 0 {
		return fmt.Sprintf("%d h", hours)
	}
	return fmt.Sprintf("%d h %d min", hours, mins)
}

// WeekdayShort renders a compact weekday name.
func WeekdayShort(d time.Weekday) string {
	names := [...]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if d >= 0 && int(d) < len(names) {
		return names[d]
	}
	return "?"
}

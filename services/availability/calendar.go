package availability

import (
	"time"

	"citaflow/models"
)

const monthViewCells = 6 * 7

// ResolveMonth renders the month containing anchor as exactly 42 cells (six
// full Sunday-aligned weeks), padding with adjacent-month days. Padding cells
// are never selectable regardless of date. Pure function of (anchor, now).
func ResolveMonth(anchor, now time.Time) []models.CalendarCell {
	today := midnight(now)
	firstOfMonth := time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location())
	gridStart := firstOfMonth.AddDate(0, 0, -int(firstOfMonth.Weekday()))

	cells := make([]models.CalendarCell, 0, monthViewCells)
	for i := 0; i < monthViewCells; i++ {
		date := gridStart.AddDate(0, 0, i)
		inMonth := date.Month() == anchor.Month() && date.Year() == anchor.Year()
		cells = append(cells, models.CalendarCell{
			Date:            date,
			InCurrentPeriod: inMonth,
			IsToday:         date.Equal(today),
			Selectable:      inMonth && !date.Before(today),
		})
	}
	return cells
}

// ResolveWeek renders the Sunday-started week containing anchor as 7 cells.
func ResolveWeek(anchor, now time.Time) []models.CalendarCell {
	today := midnight(now)
	day := midnight(anchor)
	weekStart := day.AddDate(0, 0, -int(day.Weekday()))

	cells := make([]models.CalendarCell, 0, 7)
	for i := 0; i < 7; i++ {
		date := weekStart.AddDate(0, 0, i)
		cells = append(cells, models.CalendarCell{
			Date:            date,
			InCurrentPeriod: true,
			IsToday:         date.Equal(today),
			Selectable:      !date.Before(today),
		})
	}
	return cells
}

// ShiftMonth moves the anchor by n months, pinned to the first of the month
// so a day-31 anchor cannot skip short months.
func ShiftMonth(anchor time.Time, n int) time.Time {
	return time.Date(anchor.Year(), anchor.Month(), 1, 0, 0, 0, 0, anchor.Location()).AddDate(0, n, 0)
}

// ShiftWeek moves the anchor by n weeks.
func ShiftWeek(anchor time.Time, n int) time.Time {
	return anchor.AddDate(0, 0, 7*n)
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

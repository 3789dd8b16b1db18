package models

import "time"

// CalendarCell is one day in a rendered month or week view.
type CalendarCell struct {
	Date            time.Time `json:"date"`
	InCurrentPeriod bool      `json:"inCurrentPeriod"`
	IsToday         bool      `json:"isToday"`
	Selectable      bool      `json:"selectable"`
}

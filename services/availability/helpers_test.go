package availability

import (
	"context"
	"sync"
	"time"

	"citaflow/services/scheduling"
)

type fixedClock struct {
	t time.Time
}

func (c fixedClock) Now() time.Time { return c.t }

// stubClient is a canned scheduling API for tests.
type stubClient struct {
	mu            sync.Mutex
	schedules     []scheduling.SchedulePayload
	schedulesErr  error
	sedes         []scheduling.SedePayload
	sedesErr      error
	scheduleCalls int
	sedeCalls     int
}

func (c *stubClient) AvailableSchedules(_ context.Context, _, _, _ string) ([]scheduling.SchedulePayload, error) {
	c.mu.Lock()
	c.scheduleCalls++
	c.mu.Unlock()
	if c.schedulesErr != nil {
		return nil, c.schedulesErr
	}
	return c.schedules, nil
}

func (c *stubClient) AvailableSedes(_ context.Context, _ string) ([]scheduling.SedePayload, error) {
	c.mu.Lock()
	c.sedeCalls++
	c.mu.Unlock()
	if c.sedesErr != nil {
		return nil, c.sedesErr
	}
	return c.sedes, nil
}

func (c *stubClient) calls() (schedules, sedes int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.scheduleCalls, c.sedeCalls
}

// morningPayload is one "Morning" template with a single 09:00 slot.
func morningPayload(available, total int) []scheduling.SchedulePayload {
	return []scheduling.SchedulePayload{
		{
			Template: scheduling.TemplatePayload{
				ID:        "tpl-1",
				Name:      "Morning",
				StartTime: "08:00",
				EndTime:   "12:00",
			},
			Slots: []scheduling.SlotPayload{
				{StartTime: "09:00", EndTime: "09:30", AvailableCapacity: available, TotalCapacity: total},
			},
		},
	}
}

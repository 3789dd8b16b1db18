package scheduling

// Wire payloads for the scheduling API. Shapes follow the API contract, not
// the engine's domain models; normalization happens in the slot fetcher.

// SchedulePayload is one template with its slots as returned by
// GET /schedules/available.
type SchedulePayload struct {
	Template TemplatePayload `json:"template"`
	Slots    []SlotPayload   `json:"slots"`
}

type TemplatePayload struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type SlotPayload struct {
	StartTime         string `json:"start_time"`
	EndTime           string `json:"end_time"`
	AvailableCapacity int    `json:"available_capacity"`
	TotalCapacity     int    `json:"total_capacity"`
}

// SedePayload is one service location as returned by GET /available-sedes.
// Only the id matters for compatibility checks; the rest of the object is
// passed through untouched.
type SedePayload struct {
	ID   string `json:"id"`
	Name string `json:"name,omitempty"`
}

type schedulesResponse struct {
	Data []SchedulePayload `json:"data"`
}

type sedesResponse struct {
	Data []SedePayload `json:"data"`
}

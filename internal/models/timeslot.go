package models

// TimeSlot is a bookable interval derived from the jornada configuration.
// Slots are generated fresh per request and never persisted.
type TimeSlot struct {
	StartTime       string `json:"start_time"`
	EndTime         string `json:"end_time"`
	DurationMinutes int    `json:"duration_minutes"`
}

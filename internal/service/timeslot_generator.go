package service

import (
	"github.com/covalenzuela/schedule-sub000/internal/models"
)

// TimeSlotGenerator derives the ordered set of bookable slots for a weekday
// from the jornada configuration. Breaks separate consecutive slots but are
// never emitted; slots never intersect the day's lunch window.
type TimeSlotGenerator struct{}

// SlotsForDay walks the minute axis from the jornada start to its end in
// steps of the block duration. A step landing inside the lunch window skips
// forward to the window's end instead of emitting a truncated slot. An empty
// result means the day has no bookable slots, which is not an error.
func (TimeSlotGenerator) SlotsForDay(cfg models.SchoolDayConfig, day string) []models.TimeSlot {
	start, err := minuteOfDay(cfg.StartTime)
	if err != nil {
		return nil
	}
	end, err := minuteOfDay(cfg.EndTime)
	if err != nil {
		return nil
	}
	block := cfg.BlockDurationMinutes
	if start >= end || block <= 0 {
		return nil
	}

	lunchStart, lunchEnd := -1, -1
	if window, ok := cfg.LunchWindowFor(day); ok {
		ls, err1 := minuteOfDay(window.StartTime)
		le, err2 := minuteOfDay(window.EndTime)
		if err1 == nil && err2 == nil && ls < le {
			lunchStart, lunchEnd = ls, le
		}
	}

	var slots []models.TimeSlot
	cursor := start
	for cursor+block <= end {
		slotEnd := cursor + block
		if lunchStart >= 0 && intervalsOverlap(cursor, slotEnd, lunchStart, lunchEnd) {
			cursor = lunchEnd
			continue
		}
		slots = append(slots, models.TimeSlot{
			StartTime:       formatClock(cursor),
			EndTime:         formatClock(slotEnd),
			DurationMinutes: block,
		})
		cursor = slotEnd + cfg.BreakDurationMinutes
	}
	return slots
}

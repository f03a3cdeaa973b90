package models

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// LunchWindow marks a daily interval that must never hold a bookable slot.
type LunchWindow struct {
	Enabled   bool   `json:"enabled"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// SchoolDayConfig describes the jornada for one academic level: the daily
// operating window and its block/break/lunch structure.
type SchoolDayConfig struct {
	ID                   string         `db:"id" json:"id"`
	AcademicLevel        string         `db:"academic_level" json:"academic_level"`
	StartTime            string         `db:"start_time" json:"start_time"`
	EndTime              string         `db:"end_time" json:"end_time"`
	BlockDurationMinutes int            `db:"block_duration_minutes" json:"block_duration_minutes"`
	BreakDurationMinutes int            `db:"break_duration_minutes" json:"break_duration_minutes"`
	LunchWindowsRaw      types.JSONText `db:"lunch_windows" json:"-"`
	CreatedAt            time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt            time.Time      `db:"updated_at" json:"updated_at"`

	// Decoded from LunchWindowsRaw by the repository, keyed by weekday name.
	LunchWindows map[string]LunchWindow `db:"-" json:"lunch_windows,omitempty"`
}

// LunchWindowFor returns the enabled lunch window for the given weekday.
func (c SchoolDayConfig) LunchWindowFor(day string) (LunchWindow, bool) {
	window, ok := c.LunchWindows[day]
	if !ok || !window.Enabled {
		return LunchWindow{}, false
	}
	return window, true
}

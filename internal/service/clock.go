package service

import (
	"fmt"
	"strconv"
	"strings"
)

var dayOrder = map[string]int{
	"MONDAY":    1,
	"TUESDAY":   2,
	"WEDNESDAY": 3,
	"THURSDAY":  4,
	"FRIDAY":    5,
	"SATURDAY":  6,
	"SUNDAY":    7,
}

func dayIndex(day string) int {
	return dayOrder[strings.ToUpper(strings.TrimSpace(day))]
}

// minuteOfDay parses a HH:MM clock value into minutes since midnight.
func minuteOfDay(raw string) (int, error) {
	parts := strings.SplitN(strings.TrimSpace(raw), ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid clock value %q", raw)
	}
	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", raw)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("invalid clock value %q", raw)
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return 0, fmt.Errorf("clock value %q out of range", raw)
	}
	return hours*60 + minutes, nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// intervalsOverlap reports whether [aStart,aEnd) and [bStart,bEnd) intersect.
func intervalsOverlap(aStart, aEnd, bStart, bEnd int) bool {
	return aStart < bEnd && bStart < aEnd
}

func clockIntervalsOverlap(aStart, aEnd, bStart, bEnd string) bool {
	as, err1 := minuteOfDay(aStart)
	ae, err2 := minuteOfDay(aEnd)
	bs, err3 := minuteOfDay(bStart)
	be, err4 := minuteOfDay(bEnd)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return false
	}
	return intervalsOverlap(as, ae, bs, be)
}

package service

import (
	"context"

	"github.com/covalenzuela/schedule-sub000/internal/models"
	appErrors "github.com/covalenzuela/schedule-sub000/pkg/errors"
)

type committedBlockReader interface {
	ListByTeacherAndYear(ctx context.Context, teacherID string, academicYear int) ([]models.ScheduleBlock, error)
}

type availabilityKey struct {
	TeacherID string
	Day       string
	Start     string
	End       string
}

// AvailabilityOracle answers "is teacher T free on day D for [start,end)?"
// by combining the teacher's declared weekly availability with blocks already
// committed across all courses. Both the memo map and the per-teacher
// committed snapshot are scoped to one generation run; committed state can
// change between runs, so neither may outlive the oracle instance.
type AvailabilityOracle struct {
	blocks       committedBlockReader
	academicYear int
	declared     map[string][]models.AvailabilitySlot
	committed    map[string][]models.ScheduleBlock
	memo         map[availabilityKey]bool
	cacheHits    int
	cacheMisses  int
}

// NewAvailabilityOracle builds a run-scoped oracle over the roster snapshot.
func NewAvailabilityOracle(blocks committedBlockReader, roster []models.Teacher, academicYear int) *AvailabilityOracle {
	declared := make(map[string][]models.AvailabilitySlot, len(roster))
	for _, teacher := range roster {
		declared[teacher.ID] = teacher.Availability
	}
	return &AvailabilityOracle{
		blocks:       blocks,
		academicYear: academicYear,
		declared:     declared,
		committed:    make(map[string][]models.ScheduleBlock),
		memo:         make(map[availabilityKey]bool),
	}
}

// IsAvailable reports whether the interval lies fully inside at least one
// declared availability slot and clashes with no committed block. Results are
// memoized per (teacher, day, start, end); errors are never memoized.
func (o *AvailabilityOracle) IsAvailable(ctx context.Context, teacherID, day, start, end string) (bool, error) {
	key := availabilityKey{TeacherID: teacherID, Day: day, Start: start, End: end}
	if cached, ok := o.memo[key]; ok {
		o.cacheHits++
		return cached, nil
	}
	o.cacheMisses++

	available, err := o.check(ctx, teacherID, day, start, end)
	if err != nil {
		return false, err
	}
	o.memo[key] = available
	return available, nil
}

// CacheStats returns memo hit/miss counts for the run.
func (o *AvailabilityOracle) CacheStats() (hits, misses int) {
	return o.cacheHits, o.cacheMisses
}

func (o *AvailabilityOracle) check(ctx context.Context, teacherID, day, start, end string) (bool, error) {
	startMin, err := minuteOfDay(start)
	if err != nil {
		return false, nil
	}
	endMin, err := minuteOfDay(end)
	if err != nil {
		return false, nil
	}

	if !o.insideDeclared(teacherID, day, startMin, endMin) {
		return false, nil
	}

	committed, err := o.committedFor(ctx, teacherID)
	if err != nil {
		return false, err
	}
	for _, block := range committed {
		if block.DayOfWeek != day {
			continue
		}
		if clockIntervalsOverlap(block.StartTime, block.EndTime, start, end) {
			return false, nil
		}
	}
	return true, nil
}

func (o *AvailabilityOracle) insideDeclared(teacherID, day string, startMin, endMin int) bool {
	for _, slot := range o.declared[teacherID] {
		if slot.DayOfWeek != day {
			continue
		}
		ds, err1 := minuteOfDay(slot.StartTime)
		de, err2 := minuteOfDay(slot.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		if ds <= startMin && endMin <= de {
			return true
		}
	}
	return false
}

func (o *AvailabilityOracle) committedFor(ctx context.Context, teacherID string) ([]models.ScheduleBlock, error) {
	if cached, ok := o.committed[teacherID]; ok {
		return cached, nil
	}
	if o.blocks == nil {
		o.committed[teacherID] = nil
		return nil, nil
	}
	blocks, err := o.blocks.ListByTeacherAndYear(ctx, teacherID, o.academicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load committed blocks")
	}
	o.committed[teacherID] = blocks
	return blocks, nil
}

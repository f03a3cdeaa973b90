package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/covalenzuela/schedule-sub000/internal/models"
	appErrors "github.com/covalenzuela/schedule-sub000/pkg/errors"
)

type courseBlockReader interface {
	ListByCourseAndYear(ctx context.Context, courseID string, academicYear int) ([]models.ScheduleBlock, error)
}

type timetableCache interface {
	Get(ctx context.Context, key string, dest interface{}) error
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// TimetableService serves committed timetables for courses, with a Redis
// read-through cache invalidated on save.
type TimetableService struct {
	courses  generatorCourseReader
	blocks   courseBlockReader
	cache    timetableCache
	cacheTTL time.Duration
	logger   *zap.Logger
}

// NewTimetableService wires the timetable read path. The cache is optional.
func NewTimetableService(courses generatorCourseReader, blocks courseBlockReader, cache timetableCache, cacheTTL time.Duration, logger *zap.Logger) *TimetableService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cacheTTL <= 0 {
		cacheTTL = 5 * time.Minute
	}
	return &TimetableService{
		courses:  courses,
		blocks:   blocks,
		cache:    cache,
		cacheTTL: cacheTTL,
		logger:   logger,
	}
}

// CourseTimetable returns the committed blocks for a course and academic year.
func (s *TimetableService) CourseTimetable(ctx context.Context, courseID string, academicYear int) ([]models.ScheduleBlock, error) {
	if courseID == "" || academicYear <= 0 {
		return nil, appErrors.Clone(appErrors.ErrValidation, "courseId and academicYear are required")
	}
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	key := timetableCacheKey(courseID, academicYear)
	if s.cache != nil {
		var cached []models.ScheduleBlock
		if err := s.cache.Get(ctx, key, &cached); err == nil {
			return cached, nil
		}
	}

	blocks, err := s.blocks.ListByCourseAndYear(ctx, courseID, academicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule blocks")
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, blocks, s.cacheTTL); err != nil {
			s.logger.Warn("timetable_cache_set_failed", zap.String("key", key), zap.Error(err))
		}
	}
	return blocks, nil
}

// InvalidateCourse drops the cached timetable after a save.
func (s *TimetableService) InvalidateCourse(ctx context.Context, courseID string, academicYear int) {
	if s.cache == nil {
		return
	}
	key := timetableCacheKey(courseID, academicYear)
	if err := s.cache.Delete(ctx, key); err != nil {
		s.logger.Warn("timetable_cache_invalidate_failed", zap.String("key", key), zap.Error(err))
	}
}

func timetableCacheKey(courseID string, academicYear int) string {
	return fmt.Sprintf("timetable:%s:%d", courseID, academicYear)
}

package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/covalenzuela/schedule-sub000/internal/models"
)

// ScheduleRepository persists committed schedule blocks. Blocks become ground
// truth for later generation runs once saved.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository creates a new schedule repository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleBlockColumns = `id, course_id, subject_id, teacher_id, academic_year,
	day_of_week, start_time, end_time, duration_minutes, created_at, updated_at`

// ListByTeacherAndYear returns a teacher's committed blocks across all courses.
func (r *ScheduleRepository) ListByTeacherAndYear(ctx context.Context, teacherID string, academicYear int) ([]models.ScheduleBlock, error) {
	var blocks []models.ScheduleBlock
	query := `SELECT ` + scheduleBlockColumns + ` FROM schedule_blocks
		WHERE teacher_id = $1 AND academic_year = $2
		ORDER BY day_of_week ASC, start_time ASC`
	if err := r.db.SelectContext(ctx, &blocks, query, teacherID, academicYear); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ListByCourseAndYear returns a course's committed weekly timetable.
func (r *ScheduleRepository) ListByCourseAndYear(ctx context.Context, courseID string, academicYear int) ([]models.ScheduleBlock, error) {
	var blocks []models.ScheduleBlock
	query := `SELECT ` + scheduleBlockColumns + ` FROM schedule_blocks
		WHERE course_id = $1 AND academic_year = $2
		ORDER BY day_of_week ASC, start_time ASC`
	if err := r.db.SelectContext(ctx, &blocks, query, courseID, academicYear); err != nil {
		return nil, err
	}
	return blocks, nil
}

// ListDetailedByCourseAndYear joins subject, teacher and course names for rendering.
func (r *ScheduleRepository) ListDetailedByCourseAndYear(ctx context.Context, courseID string, academicYear int) ([]models.ScheduleBlockDetail, error) {
	var blocks []models.ScheduleBlockDetail
	query := `SELECT sb.id, sb.course_id, sb.subject_id, sb.teacher_id, sb.academic_year,
			sb.day_of_week, sb.start_time, sb.end_time, sb.duration_minutes, sb.created_at, sb.updated_at,
			s.name AS subject_name, t.full_name AS teacher_name, c.name AS course_name
		FROM schedule_blocks sb
		JOIN subjects s ON s.id = sb.subject_id
		JOIN teachers t ON t.id = sb.teacher_id
		JOIN courses c ON c.id = sb.course_id
		WHERE sb.course_id = $1 AND sb.academic_year = $2
		ORDER BY sb.day_of_week ASC, sb.start_time ASC`
	if err := r.db.SelectContext(ctx, &blocks, query, courseID, academicYear); err != nil {
		return nil, err
	}
	return blocks, nil
}

// BulkCreateWithTx inserts blocks inside the caller's transaction.
func (r *ScheduleRepository) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, blocks []models.ScheduleBlock) error {
	if len(blocks) == 0 {
		return nil
	}
	query := `INSERT INTO schedule_blocks
		(id, course_id, subject_id, teacher_id, academic_year, day_of_week, start_time, end_time, duration_minutes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	now := time.Now().UTC()
	for i := range blocks {
		if blocks[i].ID == "" {
			blocks[i].ID = uuid.NewString()
		}
		blocks[i].CreatedAt = now
		blocks[i].UpdatedAt = now
		if _, err := tx.ExecContext(ctx, query,
			blocks[i].ID,
			blocks[i].CourseID,
			blocks[i].SubjectID,
			blocks[i].TeacherID,
			blocks[i].AcademicYear,
			blocks[i].DayOfWeek,
			blocks[i].StartTime,
			blocks[i].EndTime,
			blocks[i].DurationMinutes,
			blocks[i].CreatedAt,
			blocks[i].UpdatedAt,
		); err != nil {
			return err
		}
	}
	return nil
}

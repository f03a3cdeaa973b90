package repository

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/covalenzuela/schedule-sub000/internal/models"
)

// TeacherRepository provides the roster snapshot consumed by the generation
// engine: active teachers with their qualified subjects and declared weekly
// availability attached.
type TeacherRepository struct {
	db *sqlx.DB
}

// NewTeacherRepository creates a new teacher repository.
func NewTeacherRepository(db *sqlx.DB) *TeacherRepository {
	return &TeacherRepository{db: db}
}

// Roster returns all active teachers with qualifications and availability.
// The result is a read-only snapshot taken once per generation call.
func (r *TeacherRepository) Roster(ctx context.Context) ([]models.Teacher, error) {
	var teachers []models.Teacher
	query := `SELECT id, email, full_name, phone, active, created_at, updated_at
		FROM teachers WHERE active = TRUE ORDER BY full_name ASC`
	if err := r.db.SelectContext(ctx, &teachers, query); err != nil {
		return nil, err
	}
	if len(teachers) == 0 {
		return teachers, nil
	}

	index := make(map[string]int, len(teachers))
	ids := make([]string, 0, len(teachers))
	for i, teacher := range teachers {
		index[teacher.ID] = i
		ids = append(ids, teacher.ID)
	}

	if err := r.attachQualifications(ctx, teachers, index, ids); err != nil {
		return nil, err
	}
	if err := r.attachAvailability(ctx, teachers, index, ids); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (r *TeacherRepository) attachQualifications(ctx context.Context, teachers []models.Teacher, index map[string]int, ids []string) error {
	query, args, err := sqlx.In(
		`SELECT teacher_id, subject_id FROM teacher_subjects WHERE teacher_id IN (?) ORDER BY subject_id ASC`, ids)
	if err != nil {
		return err
	}
	query = r.db.Rebind(query)

	rows := []struct {
		TeacherID string `db:"teacher_id"`
		SubjectID string `db:"subject_id"`
	}{}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return err
	}
	for _, row := range rows {
		if i, ok := index[row.TeacherID]; ok {
			teachers[i].QualifiedSubjects = append(teachers[i].QualifiedSubjects, row.SubjectID)
		}
	}
	return nil
}

func (r *TeacherRepository) attachAvailability(ctx context.Context, teachers []models.Teacher, index map[string]int, ids []string) error {
	query, args, err := sqlx.In(
		`SELECT id, teacher_id, day_of_week, start_time, end_time
			FROM teacher_availability WHERE teacher_id IN (?)
			ORDER BY day_of_week ASC, start_time ASC`, ids)
	if err != nil {
		return err
	}
	query = r.db.Rebind(query)

	var slots []models.AvailabilitySlot
	if err := r.db.SelectContext(ctx, &slots, query, args...); err != nil {
		return err
	}
	for _, slot := range slots {
		if i, ok := index[slot.TeacherID]; ok {
			teachers[i].Availability = append(teachers[i].Availability, slot)
		}
	}
	return nil
}

package models

import "time"

// ScheduleBlock is one committed lesson: a single time slot occupied by a
// subject/teacher/course combination on a weekday.
type ScheduleBlock struct {
	ID              string    `db:"id" json:"id"`
	CourseID        string    `db:"course_id" json:"course_id"`
	SubjectID       string    `db:"subject_id" json:"subject_id"`
	TeacherID       string    `db:"teacher_id" json:"teacher_id"`
	AcademicYear    int       `db:"academic_year" json:"academic_year"`
	DayOfWeek       string    `db:"day_of_week" json:"day_of_week"`
	StartTime       string    `db:"start_time" json:"start_time"`
	EndTime         string    `db:"end_time" json:"end_time"`
	DurationMinutes int       `db:"duration_minutes" json:"duration_minutes"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
	UpdatedAt       time.Time `db:"updated_at" json:"updated_at"`
}

// ScheduleBlockDetail enriches a block with descriptive names for rendering.
type ScheduleBlockDetail struct {
	ScheduleBlock
	SubjectName string `db:"subject_name" json:"subject_name"`
	TeacherName string `db:"teacher_name" json:"teacher_name"`
	CourseName  string `db:"course_name" json:"course_name"`
}

// BlockConflict describes an existing committed block that overlaps a block
// being persisted. Cross-course teacher conflicts are reported as warnings
// at persistence time, never rejected outright.
type BlockConflict struct {
	BlockID   string `json:"block_id"`
	CourseID  string `json:"course_id"`
	SubjectID string `json:"subject_id"`
	TeacherID string `json:"teacher_id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
	Dimension string `json:"dimension"`
}

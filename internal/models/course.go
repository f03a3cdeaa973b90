package models

import "time"

// Course represents a class group that receives a weekly timetable.
type Course struct {
	ID            string    `db:"id" json:"id"`
	Name          string    `db:"name" json:"name"`
	AcademicLevel string    `db:"academic_level" json:"academic_level"`
	AcademicYear  int       `db:"academic_year" json:"academic_year"`
	Active        bool      `db:"active" json:"active"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

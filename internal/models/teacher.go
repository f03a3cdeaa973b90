package models

import "time"

// Teacher represents an instructor record.
type Teacher struct {
	ID        string    `db:"id" json:"id"`
	Email     string    `db:"email" json:"email"`
	FullName  string    `db:"full_name" json:"full_name"`
	Phone     *string   `db:"phone" json:"phone,omitempty"`
	Active    bool      `db:"active" json:"active"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`

	// Attached by the roster snapshot query set, not columns on teachers.
	QualifiedSubjects []string           `db:"-" json:"qualified_subjects,omitempty"`
	Availability      []AvailabilitySlot `db:"-" json:"availability,omitempty"`
}

// AvailabilitySlot is a declared interval of willingness to teach.
// It is advisory, not a commitment.
type AvailabilitySlot struct {
	ID        string `db:"id" json:"id"`
	TeacherID string `db:"teacher_id" json:"teacher_id"`
	DayOfWeek string `db:"day_of_week" json:"day_of_week"`
	StartTime string `db:"start_time" json:"start_time"`
	EndTime   string `db:"end_time" json:"end_time"`
}

// QualifiedFor reports whether the teacher declares the subject.
func (t Teacher) QualifiedFor(subjectID string) bool {
	for _, id := range t.QualifiedSubjects {
		if id == subjectID {
			return true
		}
	}
	return false
}

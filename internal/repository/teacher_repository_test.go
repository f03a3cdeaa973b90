package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTeacherRepositoryRoster(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	teacherRows := sqlmock.NewRows([]string{"id", "email", "full_name", "phone", "active", "created_at", "updated_at"}).
		AddRow("t1", "ana@example.com", "Ana Rojas", nil, true, time.Now(), time.Now()).
		AddRow("t2", "luis@example.com", "Luis Soto", nil, true, time.Now(), time.Now())
	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers WHERE active = TRUE")).
		WillReturnRows(teacherRows)

	subjectRows := sqlmock.NewRows([]string{"teacher_id", "subject_id"}).
		AddRow("t1", "MATH").
		AddRow("t1", "PHY").
		AddRow("t2", "HIST")
	mock.ExpectQuery(regexp.QuoteMeta("FROM teacher_subjects WHERE teacher_id IN ($1, $2)")).
		WithArgs("t1", "t2").
		WillReturnRows(subjectRows)

	availabilityRows := sqlmock.NewRows([]string{"id", "teacher_id", "day_of_week", "start_time", "end_time"}).
		AddRow("a1", "t1", "MONDAY", "08:00", "14:00").
		AddRow("a2", "t2", "TUESDAY", "10:00", "16:00")
	mock.ExpectQuery(regexp.QuoteMeta("FROM teacher_availability WHERE teacher_id IN ($1, $2)")).
		WithArgs("t1", "t2").
		WillReturnRows(availabilityRows)

	teachers, err := repo.Roster(context.Background())
	require.NoError(t, err)
	require.Len(t, teachers, 2)

	assert.Equal(t, []string{"MATH", "PHY"}, teachers[0].QualifiedSubjects)
	assert.True(t, teachers[0].QualifiedFor("MATH"))
	assert.False(t, teachers[0].QualifiedFor("HIST"))

	require.Len(t, teachers[1].Availability, 1)
	assert.Equal(t, "TUESDAY", teachers[1].Availability[0].DayOfWeek)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTeacherRepositoryRosterEmpty(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewTeacherRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM teachers WHERE active = TRUE")).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "full_name", "phone", "active", "created_at", "updated_at"}))

	teachers, err := repo.Roster(context.Background())
	require.NoError(t, err)
	assert.Empty(t, teachers)
	assert.NoError(t, mock.ExpectationsWereMet())
}

package service

import (
	"context"
	"database/sql"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/covalenzuela/schedule-sub000/internal/dto"
	"github.com/covalenzuela/schedule-sub000/internal/models"
	"github.com/covalenzuela/schedule-sub000/pkg/config"
	appErrors "github.com/covalenzuela/schedule-sub000/pkg/errors"
)

type mockCourseRepo struct {
	course *models.Course
	err    error
}

func (m *mockCourseRepo) FindByID(ctx context.Context, id string) (*models.Course, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.course, nil
}

type mockRosterRepo struct {
	teachers []models.Teacher
}

func (m *mockRosterRepo) Roster(ctx context.Context) ([]models.Teacher, error) {
	return m.teachers, nil
}

type mockConfigRepo struct {
	cfg *models.SchoolDayConfig
	err error
}

func (m *mockConfigRepo) GetByAcademicLevel(ctx context.Context, level string) (*models.SchoolDayConfig, error) {
	if m.err != nil {
		return nil, m.err
	}
	return m.cfg, nil
}

type mockScheduleStore struct {
	committedByTeacher map[string][]models.ScheduleBlock
	courseBlocks       []models.ScheduleBlock
	saved              []models.ScheduleBlock
}

func (m *mockScheduleStore) ListByTeacherAndYear(ctx context.Context, teacherID string, academicYear int) ([]models.ScheduleBlock, error) {
	return m.committedByTeacher[teacherID], nil
}

func (m *mockScheduleStore) ListByCourseAndYear(ctx context.Context, courseID string, academicYear int) ([]models.ScheduleBlock, error) {
	return m.courseBlocks, nil
}

func (m *mockScheduleStore) BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, blocks []models.ScheduleBlock) error {
	m.saved = append(m.saved, blocks...)
	return nil
}

type mockInvalidator struct {
	invalidated []string
}

func (m *mockInvalidator) InvalidateCourse(ctx context.Context, courseID string, academicYear int) {
	m.invalidated = append(m.invalidated, fmt.Sprintf("%s:%d", courseID, academicYear))
}

func weekdayAvailability(start, end string) []models.AvailabilitySlot {
	days := []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}
	slots := make([]models.AvailabilitySlot, 0, len(days))
	for _, day := range days {
		slots = append(slots, models.AvailabilitySlot{DayOfWeek: day, StartTime: start, EndTime: end})
	}
	return slots
}

func qualifiedTeacher(id string, subjects ...string) models.Teacher {
	return models.Teacher{
		ID:                id,
		FullName:          "Teacher " + id,
		Active:            true,
		QualifiedSubjects: subjects,
		Availability:      weekdayAvailability("08:00", "14:00"),
	}
}

type generatorFixture struct {
	courses   *mockCourseRepo
	roster    *mockRosterRepo
	configs   *mockConfigRepo
	schedules *mockScheduleStore
	service   *TimetableGeneratorService
}

// newGeneratorFixture wires an engine over a one-course school with a
// 08:00-14:00 jornada of 60-minute blocks and no breaks.
func newGeneratorFixture(teachers ...models.Teacher) *generatorFixture {
	f := &generatorFixture{
		courses: &mockCourseRepo{course: &models.Course{
			ID:            "c1",
			Name:          "8-A",
			AcademicLevel: "SECONDARY",
			AcademicYear:  2026,
			Active:        true,
		}},
		roster: &mockRosterRepo{teachers: teachers},
		configs: &mockConfigRepo{cfg: &models.SchoolDayConfig{
			AcademicLevel:        "SECONDARY",
			StartTime:            "08:00",
			EndTime:              "14:00",
			BlockDurationMinutes: 60,
		}},
		schedules: &mockScheduleStore{},
	}
	f.service = NewTimetableGeneratorService(f.courses, f.roster, f.configs, f.schedules, nil, nil, nil, nil, nil, config.GeneratorConfig{})
	return f
}

func generationRequest(subjects ...dto.SubjectDemand) dto.GenerationRequest {
	return dto.GenerationRequest{CourseID: "c1", AcademicYear: 2026, Subjects: subjects}
}

func TestGenerateFullCoverageSpreadsAcrossDays(t *testing.T) {
	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", SubjectName: "Mathematics", HoursPerWeek: 3},
	))
	require.NoError(t, err)
	require.True(t, result.Success)
	require.Len(t, result.Blocks, 3)

	assert.Equal(t, 100, result.Stats.CoveragePercentage)
	assert.Equal(t, 3, result.Stats.RequiredHours)
	assert.Equal(t, 3.0, result.Stats.AssignedHours)
	assert.Equal(t, 1, result.Stats.TeachersUsed)
	assert.Empty(t, result.Warnings)
	assert.NotEmpty(t, result.ProposalID)

	days := make(map[string]int)
	for _, block := range result.Blocks {
		assert.Equal(t, "c1", block.CourseID)
		assert.Equal(t, "t1", block.TeacherID)
		assert.Equal(t, 60, block.DurationMinutes)
		days[block.DayOfWeek]++
	}
	assert.GreaterOrEqual(t, len(days), 2, "three blocks under a 2-per-day cap need at least two days")
}

func TestGenerateSubjectWithoutQualifiedTeacher(t *testing.T) {
	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 2},
		dto.SubjectDemand{SubjectID: "ART", HoursPerWeek: 2},
	))
	require.NoError(t, err)
	require.True(t, result.Success)

	for _, block := range result.Blocks {
		assert.NotEqual(t, "ART", block.SubjectID)
	}
	assert.Contains(t, result.Warnings, "subject ART has no qualified teachers and will not be scheduled")
	assert.Equal(t, 50, result.Stats.CoveragePercentage)

	require.Len(t, result.Stats.Subjects, 2)
	assert.Equal(t, 100, result.Stats.Subjects[0].CoveragePercentage)
	assert.Equal(t, 0, result.Stats.Subjects[1].CoveragePercentage)
	assert.Equal(t, 0, result.Stats.Subjects[1].QualifiedTeachers)
}

func TestGenerateHonoursSubjectPerDayCap(t *testing.T) {
	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 10},
	))
	require.NoError(t, err)
	require.Len(t, result.Blocks, 10)
	assert.Equal(t, 100, result.Stats.CoveragePercentage)

	perDay := make(map[string]int)
	for _, block := range result.Blocks {
		perDay[block.DayOfWeek]++
	}
	for day, count := range perDay {
		assert.LessOrEqual(t, count, 2, "day %s exceeds the subject cap", day)
	}
}

func TestGeneratePartialCoverageIsWarningNotError(t *testing.T) {
	// One teacher available only two mornings cannot satisfy ten hours.
	teacher := qualifiedTeacher("t1", "MATH")
	teacher.Availability = []models.AvailabilitySlot{
		{DayOfWeek: "MONDAY", StartTime: "08:00", EndTime: "11:00"},
		{DayOfWeek: "TUESDAY", StartTime: "08:00", EndTime: "11:00"},
	}
	f := newGeneratorFixture(teacher)

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", SubjectName: "Mathematics", HoursPerWeek: 10},
	))
	require.NoError(t, err)
	require.True(t, result.Success)
	assert.Less(t, result.Stats.CoveragePercentage, 100)
	assert.NotEmpty(t, result.Blocks)

	found := false
	for _, warning := range result.Warnings {
		if warning == fmt.Sprintf("subject Mathematics covered at %d%% (%.1f of 10 hours)", result.Stats.Subjects[0].CoveragePercentage, result.Stats.Subjects[0].AssignedHours) {
			found = true
		}
	}
	assert.True(t, found, "expected a coverage warning, got %v", result.Warnings)
}

func TestGenerateNeverDoubleBooksCourseOrTeacher(t *testing.T) {
	f := newGeneratorFixture(
		qualifiedTeacher("t1", "MATH"),
		qualifiedTeacher("t2", "HIST"),
	)

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 4},
		dto.SubjectDemand{SubjectID: "HIST", HoursPerWeek: 4},
	))
	require.NoError(t, err)
	assert.Equal(t, 100, result.Stats.CoveragePercentage)

	type slotKey struct{ day, start string }
	courseSeen := make(map[slotKey]bool)
	teacherSeen := make(map[string]map[slotKey]bool)
	for _, block := range result.Blocks {
		key := slotKey{block.DayOfWeek, block.StartTime}
		assert.False(t, courseSeen[key], "course double-booked at %s %s", block.DayOfWeek, block.StartTime)
		courseSeen[key] = true
		if teacherSeen[block.TeacherID] == nil {
			teacherSeen[block.TeacherID] = make(map[slotKey]bool)
		}
		assert.False(t, teacherSeen[block.TeacherID][key], "teacher %s double-booked", block.TeacherID)
		teacherSeen[block.TeacherID][key] = true
	}
}

func TestGenerateHonoursTeacherPerDayCap(t *testing.T) {
	// One teacher carries five subjects over a ten-slot day, so the teacher
	// cap binds before the per-subject caps do.
	teacher := qualifiedTeacher("t1", "S1", "S2", "S3", "S4", "S5")
	teacher.Availability = weekdayAvailability("08:00", "18:00")
	f := newGeneratorFixture(teacher)
	f.configs.cfg.EndTime = "18:00"

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "S1", HoursPerWeek: 2},
		dto.SubjectDemand{SubjectID: "S2", HoursPerWeek: 2},
		dto.SubjectDemand{SubjectID: "S3", HoursPerWeek: 2},
		dto.SubjectDemand{SubjectID: "S4", HoursPerWeek: 2},
		dto.SubjectDemand{SubjectID: "S5", HoursPerWeek: 2},
	))
	require.NoError(t, err)
	require.Len(t, result.Blocks, 10)
	assert.Equal(t, 100, result.Stats.CoveragePercentage)

	perDay := make(map[string]int)
	for _, block := range result.Blocks {
		assert.Equal(t, "t1", block.TeacherID)
		perDay[block.DayOfWeek]++
	}
	for day, count := range perDay {
		assert.LessOrEqual(t, count, 4, "day %s exceeds the teacher cap", day)
	}
	assert.Equal(t, 4, perDay["MONDAY"], "the cap, not the day length, must bound Monday")
}

func TestGenerateNoBackToBackTeaching(t *testing.T) {
	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 4},
	))
	require.NoError(t, err)
	require.NotEmpty(t, result.Blocks)

	type teacherDay struct{ teacher, day string }
	ends := make(map[teacherDay]map[string]bool)
	for _, block := range result.Blocks {
		key := teacherDay{block.TeacherID, block.DayOfWeek}
		if ends[key] == nil {
			ends[key] = make(map[string]bool)
		}
		ends[key][block.EndTime] = true
	}
	for _, block := range result.Blocks {
		key := teacherDay{block.TeacherID, block.DayOfWeek}
		assert.False(t, ends[key][block.StartTime],
			"teacher %s teaches back-to-back on %s at %s", block.TeacherID, block.DayOfWeek, block.StartTime)
	}
}

func TestGenerateAvoidConsecutiveAppliesToPersistedBlocks(t *testing.T) {
	// Two teachers keep the per-teacher adjacency rule out of the way; only
	// the subject-level consecutive check can reject the 09:00 slot.
	f := newGeneratorFixture(
		qualifiedTeacher("t1", "MATH"),
		qualifiedTeacher("t2", "MATH"),
	)
	f.schedules.courseBlocks = []models.ScheduleBlock{
		{CourseID: "c1", SubjectID: "MATH", TeacherID: "t1", DayOfWeek: "MONDAY", StartTime: "08:00", EndTime: "09:00"},
	}

	req := generationRequest(dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 2})
	req.Constraints.AvoidConsecutiveBlocks = true

	result, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, result.Blocks)
	for _, block := range result.Blocks {
		if block.DayOfWeek == "MONDAY" {
			assert.NotEqual(t, "09:00", block.StartTime,
				"block would be consecutive with the persisted 08:00 MATH block")
		}
	}
}

func TestGenerateAvoidConsecutiveBlocks(t *testing.T) {
	f := newGeneratorFixture(
		qualifiedTeacher("t1", "MATH"),
		qualifiedTeacher("t2", "MATH"),
	)

	req := generationRequest(dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 4})
	req.Constraints.AvoidConsecutiveBlocks = true

	result, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)
	require.Len(t, result.Blocks, 4)

	endsByDay := make(map[string]map[string]bool)
	for _, block := range result.Blocks {
		if endsByDay[block.DayOfWeek] == nil {
			endsByDay[block.DayOfWeek] = make(map[string]bool)
		}
		endsByDay[block.DayOfWeek][block.EndTime] = true
	}
	for _, block := range result.Blocks {
		assert.False(t, endsByDay[block.DayOfWeek][block.StartTime],
			"block at %s %s starts where another MATH block ends", block.DayOfWeek, block.StartTime)
	}
}

func TestGeneratePrefersRequestedTeacher(t *testing.T) {
	f := newGeneratorFixture(
		qualifiedTeacher("t1", "MATH"),
		qualifiedTeacher("t2", "MATH"),
	)

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 3, PreferredTeacherID: "t2"},
	))
	require.NoError(t, err)
	require.Len(t, result.Blocks, 3)
	for _, block := range result.Blocks {
		assert.Equal(t, "t2", block.TeacherID)
	}
}

func TestGenerateRespectsExistingCourseBlocks(t *testing.T) {
	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))
	f.schedules.courseBlocks = []models.ScheduleBlock{
		{CourseID: "c1", SubjectID: "BIO", TeacherID: "t9", DayOfWeek: "MONDAY", StartTime: "08:00", EndTime: "09:00"},
	}

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 2},
	))
	require.NoError(t, err)
	for _, block := range result.Blocks {
		if block.DayOfWeek == "MONDAY" {
			assert.NotEqual(t, "08:00", block.StartTime, "persisted block's slot must stay occupied")
		}
	}
}

func TestGenerateDeterministicAcrossRuns(t *testing.T) {
	f := newGeneratorFixture(
		qualifiedTeacher("t1", "MATH", "HIST"),
		qualifiedTeacher("t2", "HIST"),
	)
	req := generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 4},
		dto.SubjectDemand{SubjectID: "HIST", HoursPerWeek: 3},
	)

	first, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)
	second, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, first.Blocks, second.Blocks)
	assert.Equal(t, first.Stats.CoveragePercentage, second.Stats.CoveragePercentage)
}

func TestGenerateDynamicStrategyInterleavesSubjects(t *testing.T) {
	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH", "HIST"))

	req := generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 2},
		dto.SubjectDemand{SubjectID: "HIST", HoursPerWeek: 2},
	)
	req.Constraints.RecomputePriorities = true

	result, err := f.service.Generate(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, 100, result.Stats.CoveragePercentage)
	require.Len(t, result.Blocks, 4)
}

func TestGenerateCourseNotFound(t *testing.T) {
	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))
	f.courses.err = sql.ErrNoRows

	_, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 2},
	))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErr.Code)
}

func TestGenerateMissingJornadaConfiguration(t *testing.T) {
	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))
	f.configs.err = sql.ErrNoRows

	_, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 2},
	))
	require.Error(t, err)
	appErr := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErr.Code)
}

func TestGenerateRejectsInvalidPayload(t *testing.T) {
	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))

	cases := []dto.GenerationRequest{
		{AcademicYear: 2026, Subjects: []dto.SubjectDemand{{SubjectID: "MATH", HoursPerWeek: 2}}},
		{CourseID: "c1", AcademicYear: 1800, Subjects: []dto.SubjectDemand{{SubjectID: "MATH", HoursPerWeek: 2}}},
		{CourseID: "c1", AcademicYear: 2026},
		{CourseID: "c1", AcademicYear: 2026, Subjects: []dto.SubjectDemand{{SubjectID: "MATH", HoursPerWeek: 0}}},
		{CourseID: "c1", AcademicYear: 2026, Subjects: []dto.SubjectDemand{{SubjectID: "MATH", HoursPerWeek: 21}}},
	}
	for _, req := range cases {
		_, err := f.service.Generate(context.Background(), req)
		require.Error(t, err)
		assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
	}
}

func TestSavePersistsProposalAndInvalidatesCache(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	sqlxDB := sqlx.NewDb(db, "sqlmock")

	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))
	invalidator := &mockInvalidator{}
	f.service = NewTimetableGeneratorService(f.courses, f.roster, f.configs, f.schedules, sqlxDB, invalidator, nil, nil, nil, config.GeneratorConfig{})

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 3},
	))
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectCommit()

	saved, err := f.service.Save(context.Background(), dto.SaveTimetableRequest{ProposalID: result.ProposalID})
	require.NoError(t, err)
	assert.Equal(t, "c1", saved.CourseID)
	assert.Equal(t, 3, saved.BlocksSaved)
	assert.Empty(t, saved.Conflicts)
	require.Len(t, f.schedules.saved, 3)
	assert.Equal(t, 2026, f.schedules.saved[0].AcademicYear)
	assert.Equal(t, []string{"c1:2026"}, invalidator.invalidated)
	require.NoError(t, mock.ExpectationsWereMet())

	// The proposal is single-use.
	_, err = f.service.Save(context.Background(), dto.SaveTimetableRequest{ProposalID: result.ProposalID})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSaveReportsCrossCourseConflictsAsWarnings(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()
	sqlxDB := sqlx.NewDb(db, "sqlmock")

	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))
	f.service = NewTimetableGeneratorService(f.courses, f.roster, f.configs, f.schedules, sqlxDB, nil, nil, nil, nil, config.GeneratorConfig{})

	result, err := f.service.Generate(context.Background(), generationRequest(
		dto.SubjectDemand{SubjectID: "MATH", HoursPerWeek: 1},
	))
	require.NoError(t, err)
	require.Len(t, result.Blocks, 1)
	block := result.Blocks[0]

	// Another course books t1 into the same interval between generate and save.
	f.schedules.committedByTeacher = map[string][]models.ScheduleBlock{
		"t1": {{
			ID: "b9", CourseID: "c2", SubjectID: "PHY", TeacherID: "t1",
			DayOfWeek: block.DayOfWeek, StartTime: block.StartTime, EndTime: block.EndTime,
		}},
	}

	mock.ExpectBegin()
	mock.ExpectCommit()

	saved, err := f.service.Save(context.Background(), dto.SaveTimetableRequest{ProposalID: result.ProposalID})
	require.NoError(t, err, "conflicts must not block the save")
	assert.Equal(t, 1, saved.BlocksSaved)
	require.Len(t, saved.Conflicts, 1)
	assert.Equal(t, "TEACHER", saved.Conflicts[0].Dimension)
	assert.Equal(t, "c2", saved.Conflicts[0].CourseID)
	assert.NotEmpty(t, saved.Warnings)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSaveUnknownProposal(t *testing.T) {
	f := newGeneratorFixture(qualifiedTeacher("t1", "MATH"))

	_, err := f.service.Save(context.Background(), dto.SaveTimetableRequest{ProposalID: "nope"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

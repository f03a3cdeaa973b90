package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/covalenzuela/schedule-sub000/internal/dto"
	"github.com/covalenzuela/schedule-sub000/internal/models"
	"github.com/covalenzuela/schedule-sub000/pkg/config"
	appErrors "github.com/covalenzuela/schedule-sub000/pkg/errors"
)

type generatorCourseReader interface {
	FindByID(ctx context.Context, id string) (*models.Course, error)
}

type rosterReader interface {
	Roster(ctx context.Context) ([]models.Teacher, error)
}

type schoolConfigReader interface {
	GetByAcademicLevel(ctx context.Context, level string) (*models.SchoolDayConfig, error)
}

type generatorScheduleStore interface {
	committedBlockReader
	ListByCourseAndYear(ctx context.Context, courseID string, academicYear int) ([]models.ScheduleBlock, error)
	BulkCreateWithTx(ctx context.Context, tx *sqlx.Tx, blocks []models.ScheduleBlock) error
}

type generatorTxProvider interface {
	BeginTxx(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)
}

type timetableInvalidator interface {
	InvalidateCourse(ctx context.Context, courseID string, academicYear int)
}

type generationObserver interface {
	ObserveGeneration(duration time.Duration, coverage int)
	ObserveAvailabilityCache(hits, misses int)
}

// TimetableGeneratorService builds weekly timetable proposals for one course
// at a time and persists accepted proposals. Generation is a single greedy
// forward pass; other courses' persisted blocks are fixed constraints seen
// only through the availability oracle.
type TimetableGeneratorService struct {
	courses   generatorCourseReader
	roster    rosterReader
	configs   schoolConfigReader
	schedules generatorScheduleStore
	tx        generatorTxProvider
	cacheInv  timetableInvalidator
	metrics   generationObserver
	slots     TimeSlotGenerator
	validator *validator.Validate
	logger    *zap.Logger
	proposals *gocache.Cache
	cfg       config.GeneratorConfig
}

// NewTimetableGeneratorService wires generator dependencies. The cache
// invalidator and metrics observer are optional.
func NewTimetableGeneratorService(
	courses generatorCourseReader,
	roster rosterReader,
	configs schoolConfigReader,
	schedules generatorScheduleStore,
	tx generatorTxProvider,
	cacheInv timetableInvalidator,
	metrics generationObserver,
	validate *validator.Validate,
	logger *zap.Logger,
	cfg config.GeneratorConfig,
) *TimetableGeneratorService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.ProposalTTL <= 0 {
		cfg.ProposalTTL = 30 * time.Minute
	}
	if cfg.SubjectBlocksPerDay <= 0 {
		cfg.SubjectBlocksPerDay = 2
	}
	if cfg.TeacherBlocksPerDay <= 0 {
		cfg.TeacherBlocksPerDay = 4
	}
	if len(cfg.SchoolDays) == 0 {
		cfg.SchoolDays = []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"}
	}
	return &TimetableGeneratorService{
		courses:   courses,
		roster:    roster,
		configs:   configs,
		schedules: schedules,
		tx:        tx,
		cacheInv:  cacheInv,
		metrics:   metrics,
		validator: validate,
		logger:    logger,
		proposals: gocache.New(cfg.ProposalTTL, 2*cfg.ProposalTTL),
		cfg:       cfg,
	}
}

// Generate runs the engine for one course: demand normalization, slot
// derivation, candidate scoring and the greedy assignment pass. Structural
// failures (missing course, empty demand) abort with a typed error; coverage
// shortfalls are warnings on an otherwise successful result.
func (s *TimetableGeneratorService) Generate(ctx context.Context, req dto.GenerationRequest) (*dto.GenerationResult, error) {
	started := time.Now()

	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid generation payload")
	}
	if max := s.cfg.MaxSubjectsPerRequest; max > 0 && len(req.Subjects) > max {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("subjects exceeds supported limit of %d", max))
	}

	course, err := s.courses.FindByID(ctx, req.CourseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	dayCfg, err := s.configs.GetByAcademicLevel(ctx, course.AcademicLevel)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "no jornada configuration for this academic level")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load jornada configuration")
	}

	teachers, err := s.roster.Roster(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher roster")
	}

	existing, err := s.schedules.ListByCourseAndYear(ctx, course.ID, req.AcademicYear)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course schedule")
	}

	plans, warnings := buildDemand(req.Subjects, teachers)

	slotsByDay := make(map[string][]models.TimeSlot, len(s.cfg.SchoolDays))
	for _, day := range s.cfg.SchoolDays {
		slotsByDay[day] = s.slots.SlotsForDay(*dayCfg, day)
	}

	oracle := NewAvailabilityOracle(s.schedules, teachers, req.AcademicYear)
	state := newGenerationState(course.ID, s.cfg.SchoolDays, slotsByDay, plans, resolveConstraints(req.Constraints, s.cfg))
	state.seedCourseBlocks(existing)

	if state.constraints.RecomputePriorities {
		err = state.assignDynamic(ctx, oracle)
	} else {
		err = state.assignStatic(ctx, oracle)
	}
	if err != nil {
		return nil, err
	}

	result := state.aggregate(warnings, time.Since(started))
	result.ProposalID = uuid.NewString()
	s.proposals.Set(result.ProposalID, timetableProposal{
		ID:           result.ProposalID,
		CourseID:     course.ID,
		AcademicYear: req.AcademicYear,
		Blocks:       result.Blocks,
		RequestedAt:  time.Now().UTC(),
	}, gocache.DefaultExpiration)

	hits, misses := oracle.CacheStats()
	if s.metrics != nil {
		s.metrics.ObserveGeneration(time.Since(started), result.Stats.CoveragePercentage)
		s.metrics.ObserveAvailabilityCache(hits, misses)
	}
	s.logger.Info("timetable_generated",
		zap.String("course_id", course.ID),
		zap.Int("academic_year", req.AcademicYear),
		zap.Int("blocks", len(result.Blocks)),
		zap.Int("coverage", result.Stats.CoveragePercentage),
		zap.Int("cache_hits", hits),
		zap.Int("cache_misses", misses),
		zap.Duration("elapsed", time.Since(started)),
	)
	return result, nil
}

// Save persists a proposal's blocks in one transaction. Teachers already
// booked in another course at an overlapping interval are reported as
// warnings, not rejected.
func (s *TimetableGeneratorService) Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.SaveTimetableResponse, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid save payload")
	}
	raw, ok := s.proposals.Get(req.ProposalID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "proposal not found or expired")
	}
	proposal, ok := raw.(timetableProposal)
	if !ok || len(proposal.Blocks) == 0 {
		return nil, appErrors.Clone(appErrors.ErrPreconditionFailed, "proposal has no blocks to save")
	}
	if s.tx == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "transaction provider missing")
	}

	conflicts, warnings, err := s.crossCourseConflicts(ctx, proposal)
	if err != nil {
		return nil, err
	}

	tx, err := s.tx.BeginTxx(ctx, nil)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to begin transaction")
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	records := make([]models.ScheduleBlock, 0, len(proposal.Blocks))
	for _, block := range proposal.Blocks {
		records = append(records, models.ScheduleBlock{
			CourseID:        proposal.CourseID,
			SubjectID:       block.SubjectID,
			TeacherID:       block.TeacherID,
			AcademicYear:    proposal.AcademicYear,
			DayOfWeek:       block.DayOfWeek,
			StartTime:       block.StartTime,
			EndTime:         block.EndTime,
			DurationMinutes: block.DurationMinutes,
		})
	}
	if err = s.schedules.BulkCreateWithTx(ctx, tx, records); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist schedule blocks")
		return nil, err
	}
	if err = tx.Commit(); err != nil {
		err = appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to commit schedule blocks")
		return nil, err
	}

	s.proposals.Delete(req.ProposalID)
	if s.cacheInv != nil {
		s.cacheInv.InvalidateCourse(ctx, proposal.CourseID, proposal.AcademicYear)
	}
	s.logger.Info("timetable_saved",
		zap.String("course_id", proposal.CourseID),
		zap.Int("blocks", len(records)),
		zap.Int("cross_course_conflicts", len(conflicts)),
	)

	return &dto.SaveTimetableResponse{
		CourseID:    proposal.CourseID,
		BlocksSaved: len(records),
		Warnings:    warnings,
		Conflicts:   conflicts,
	}, nil
}

func (s *TimetableGeneratorService) crossCourseConflicts(ctx context.Context, proposal timetableProposal) ([]models.BlockConflict, []string, error) {
	committedByTeacher := make(map[string][]models.ScheduleBlock)
	var conflicts []models.BlockConflict
	var warnings []string

	for _, block := range proposal.Blocks {
		committed, ok := committedByTeacher[block.TeacherID]
		if !ok {
			var err error
			committed, err = s.schedules.ListByTeacherAndYear(ctx, block.TeacherID, proposal.AcademicYear)
			if err != nil {
				return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check cross-course conflicts")
			}
			committedByTeacher[block.TeacherID] = committed
		}
		for _, other := range committed {
			if other.CourseID == proposal.CourseID || other.DayOfWeek != block.DayOfWeek {
				continue
			}
			if !clockIntervalsOverlap(other.StartTime, other.EndTime, block.StartTime, block.EndTime) {
				continue
			}
			conflicts = append(conflicts, models.BlockConflict{
				BlockID:   other.ID,
				CourseID:  other.CourseID,
				SubjectID: other.SubjectID,
				TeacherID: other.TeacherID,
				DayOfWeek: other.DayOfWeek,
				StartTime: other.StartTime,
				EndTime:   other.EndTime,
				Dimension: "TEACHER",
			})
			warnings = append(warnings, fmt.Sprintf(
				"teacher %s is already booked in course %s on %s %s-%s",
				other.TeacherID, other.CourseID, other.DayOfWeek, other.StartTime, other.EndTime,
			))
		}
	}
	return conflicts, warnings, nil
}

// --- Proposal cache ---

type timetableProposal struct {
	ID           string
	CourseID     string
	AcademicYear int
	Blocks       []dto.BlockProposal
	RequestedAt  time.Time
}

// --- Demand model ---

type subjectPlan struct {
	demand          dto.SubjectDemand
	teachers        []models.Teacher
	assignedMinutes int
}

func (p *subjectPlan) requiredMinutes() int {
	return p.demand.HoursPerWeek * 60
}

func (p *subjectPlan) deficitHours() float64 {
	return float64(p.requiredMinutes()-p.assignedMinutes) / 60
}

func (p *subjectPlan) quotaMet() bool {
	return p.assignedMinutes >= p.requiredMinutes()
}

func (p *subjectPlan) displayName() string {
	if p.demand.SubjectName != "" {
		return p.demand.SubjectName
	}
	return p.demand.SubjectID
}

// buildDemand resolves each demand to the qualified teachers from the roster,
// preferred teacher first. Subjects with no qualified teacher yield a warning
// and are never assigned.
func buildDemand(subjects []dto.SubjectDemand, roster []models.Teacher) ([]*subjectPlan, []string) {
	plans := make([]*subjectPlan, 0, len(subjects))
	var warnings []string
	for _, demand := range subjects {
		plan := &subjectPlan{demand: demand}
		for _, teacher := range roster {
			if teacher.QualifiedFor(demand.SubjectID) {
				plan.teachers = append(plan.teachers, teacher)
			}
		}
		if demand.PreferredTeacherID != "" {
			for i, teacher := range plan.teachers {
				if teacher.ID == demand.PreferredTeacherID && i > 0 {
					preferred := plan.teachers[i]
					copy(plan.teachers[1:i+1], plan.teachers[0:i])
					plan.teachers[0] = preferred
					break
				}
			}
		}
		if len(plan.teachers) == 0 {
			warnings = append(warnings, fmt.Sprintf("subject %s has no qualified teachers and will not be scheduled", plan.displayName()))
		}
		plans = append(plans, plan)
	}
	return plans, warnings
}

// --- Scheduler state ---

type generationConstraints struct {
	AvoidConsecutiveBlocks bool
	SubjectBlocksPerDay    int
	TeacherBlocksPerDay    int
	RecomputePriorities    bool
}

func resolveConstraints(req dto.GenerationConstraints, cfg config.GeneratorConfig) generationConstraints {
	resolved := generationConstraints{
		AvoidConsecutiveBlocks: req.AvoidConsecutiveBlocks,
		SubjectBlocksPerDay:    cfg.SubjectBlocksPerDay,
		TeacherBlocksPerDay:    cfg.TeacherBlocksPerDay,
		RecomputePriorities:    req.RecomputePriorities || cfg.RecomputePriorities,
	}
	if req.MaxBlocksPerDay > 0 {
		resolved.SubjectBlocksPerDay = req.MaxBlocksPerDay
	}
	if req.MaxTeacherBlocksPerDay > 0 {
		resolved.TeacherBlocksPerDay = req.MaxTeacherBlocksPerDay
	}
	return resolved
}

type interval struct {
	start int
	end   int
}

type candidate struct {
	day      string
	dayIdx   int
	slot     models.TimeSlot
	startMin int
	endMin   int
	plan     *subjectPlan
	score    float64
	used     bool
}

type generationState struct {
	courseID    string
	days        []string
	slotsByDay  map[string][]models.TimeSlot
	plans       []*subjectPlan
	constraints generationConstraints

	blocks     []dto.BlockProposal
	courseBusy map[string][]interval
	subjectDay map[string]map[string]int
	teacherDay map[string]map[string]int
	teacherUse map[string]map[string][]interval
	subjectEnd map[string]map[int]string

	candidatesEvaluated int
}

func newGenerationState(courseID string, days []string, slotsByDay map[string][]models.TimeSlot, plans []*subjectPlan, constraints generationConstraints) *generationState {
	return &generationState{
		courseID:    courseID,
		days:        days,
		slotsByDay:  slotsByDay,
		plans:       plans,
		constraints: constraints,
		courseBusy:  make(map[string][]interval),
		subjectDay:  make(map[string]map[string]int),
		teacherDay:  make(map[string]map[string]int),
		teacherUse:  make(map[string]map[string][]interval),
		subjectEnd:  make(map[string]map[int]string),
	}
}

// seedCourseBlocks marks the course's already-persisted blocks as occupied so
// a re-run cannot double-book the course itself. Their subject end times are
// seeded too, so avoidConsecutiveBlocks holds across persisted and new blocks.
func (st *generationState) seedCourseBlocks(existing []models.ScheduleBlock) {
	for _, block := range existing {
		start, err1 := minuteOfDay(block.StartTime)
		end, err2 := minuteOfDay(block.EndTime)
		if err1 != nil || err2 != nil {
			continue
		}
		st.courseBusy[block.DayOfWeek] = append(st.courseBusy[block.DayOfWeek], interval{start: start, end: end})
		if st.subjectEnd[block.DayOfWeek] == nil {
			st.subjectEnd[block.DayOfWeek] = make(map[int]string)
		}
		st.subjectEnd[block.DayOfWeek][end] = block.SubjectID
	}
}

func (st *generationState) enumerate() []*candidate {
	var out []*candidate
	for _, day := range st.days {
		idx := dayIndex(day)
		for _, slot := range st.slotsByDay[day] {
			start, err1 := minuteOfDay(slot.StartTime)
			end, err2 := minuteOfDay(slot.EndTime)
			if err1 != nil || err2 != nil {
				continue
			}
			for _, plan := range st.plans {
				out = append(out, &candidate{
					day:      day,
					dayIdx:   idx,
					slot:     slot,
					startMin: start,
					endMin:   end,
					plan:     plan,
				})
			}
		}
	}
	return out
}

// liveScore rewards subjects furthest from their weekly quota and penalizes
// clustering the same subject on one day.
func (st *generationState) liveScore(c *candidate) float64 {
	return c.plan.deficitHours()*10 - float64(st.subjectDay[c.plan.demand.SubjectID][c.day])
}

func candidateLess(a, b *candidate) bool {
	if a.score != b.score {
		return a.score > b.score
	}
	if a.dayIdx != b.dayIdx {
		return a.dayIdx < b.dayIdx
	}
	if a.slot.StartTime != b.slot.StartTime {
		return a.slot.StartTime < b.slot.StartTime
	}
	return a.plan.demand.SubjectID < b.plan.demand.SubjectID
}

// assignStatic is the default strategy: scores are computed once and the
// sorted list is consumed in a single forward pass, no backtracking. Commits
// do not re-rank the remaining candidates.
func (st *generationState) assignStatic(ctx context.Context, oracle *AvailabilityOracle) error {
	candidates := st.enumerate()
	for _, c := range candidates {
		c.score = st.liveScore(c)
	}
	sort.Slice(candidates, func(i, j int) bool {
		return candidateLess(candidates[i], candidates[j])
	})
	for _, c := range candidates {
		if _, err := st.attempt(ctx, oracle, c); err != nil {
			return err
		}
	}
	return nil
}

// assignDynamic re-evaluates remaining-deficit priority after every commit,
// trading extra scanning for better coverage.
func (st *generationState) assignDynamic(ctx context.Context, oracle *AvailabilityOracle) error {
	candidates := st.enumerate()
	for {
		var best *candidate
		for _, c := range candidates {
			if c.used || c.plan.quotaMet() {
				continue
			}
			c.score = st.liveScore(c)
			if best == nil || candidateLess(c, best) {
				best = c
			}
		}
		if best == nil {
			return nil
		}
		best.used = true
		if _, err := st.attempt(ctx, oracle, best); err != nil {
			return err
		}
	}
}

// attempt applies the hard-constraint ladder to one candidate and commits the
// first available teacher. A candidate failing any check is dropped silently;
// that is expected heuristic behaviour, not a fault.
func (st *generationState) attempt(ctx context.Context, oracle *AvailabilityOracle, c *candidate) (bool, error) {
	st.candidatesEvaluated++
	subjectID := c.plan.demand.SubjectID

	if c.plan.quotaMet() {
		return false, nil
	}
	for _, busy := range st.courseBusy[c.day] {
		if intervalsOverlap(busy.start, busy.end, c.startMin, c.endMin) {
			return false, nil
		}
	}
	if st.constraints.AvoidConsecutiveBlocks {
		if st.subjectEnd[c.day][c.startMin] == subjectID {
			return false, nil
		}
	}
	if st.subjectDay[subjectID][c.day] >= st.constraints.SubjectBlocksPerDay {
		return false, nil
	}

	for _, teacher := range c.plan.teachers {
		if st.teacherDay[teacher.ID][c.day] >= st.constraints.TeacherBlocksPerDay {
			continue
		}
		if st.teacherClashes(teacher.ID, c.day, c.startMin, c.endMin) {
			continue
		}
		available, err := oracle.IsAvailable(ctx, teacher.ID, c.day, c.slot.StartTime, c.slot.EndTime)
		if err != nil {
			return false, err
		}
		if !available {
			continue
		}
		st.commit(c, teacher.ID)
		return true, nil
	}
	return false, nil
}

// teacherClashes rejects run-local overlaps and back-to-back teaching for the
// same teacher (a committed block ending where this slot starts, or starting
// where it ends).
func (st *generationState) teacherClashes(teacherID, day string, start, end int) bool {
	for _, used := range st.teacherUse[teacherID][day] {
		if intervalsOverlap(used.start, used.end, start, end) {
			return true
		}
		if used.end == start || used.start == end {
			return true
		}
	}
	return false
}

func (st *generationState) commit(c *candidate, teacherID string) {
	subjectID := c.plan.demand.SubjectID
	st.blocks = append(st.blocks, dto.BlockProposal{
		DayOfWeek:       c.day,
		StartTime:       c.slot.StartTime,
		EndTime:         c.slot.EndTime,
		DurationMinutes: c.slot.DurationMinutes,
		SubjectID:       subjectID,
		SubjectName:     c.plan.demand.SubjectName,
		TeacherID:       teacherID,
		CourseID:        st.courseID,
	})
	c.plan.assignedMinutes += c.slot.DurationMinutes

	st.courseBusy[c.day] = append(st.courseBusy[c.day], interval{start: c.startMin, end: c.endMin})
	if st.subjectDay[subjectID] == nil {
		st.subjectDay[subjectID] = make(map[string]int)
	}
	st.subjectDay[subjectID][c.day]++
	if st.teacherDay[teacherID] == nil {
		st.teacherDay[teacherID] = make(map[string]int)
	}
	st.teacherDay[teacherID][c.day]++
	if st.teacherUse[teacherID] == nil {
		st.teacherUse[teacherID] = make(map[string][]interval)
	}
	st.teacherUse[teacherID][c.day] = append(st.teacherUse[teacherID][c.day], interval{start: c.startMin, end: c.endMin})
	if st.subjectEnd[c.day] == nil {
		st.subjectEnd[c.day] = make(map[int]string)
	}
	st.subjectEnd[c.day][c.endMin] = subjectID
}

// --- Result aggregation ---

func (st *generationState) aggregate(warnings []string, elapsed time.Duration) *dto.GenerationResult {
	stats := dto.GenerationStats{
		CandidatesEvaluated: st.candidatesEvaluated,
		ElapsedMs:           elapsed.Milliseconds(),
	}

	teachers := make(map[string]struct{})
	for _, block := range st.blocks {
		teachers[block.TeacherID] = struct{}{}
	}
	stats.TeachersUsed = len(teachers)

	requiredMinutes := 0
	assignedMinutes := 0
	for _, plan := range st.plans {
		requiredMinutes += plan.requiredMinutes()
		assignedMinutes += plan.assignedMinutes

		coverage := coveragePercentage(plan.assignedMinutes, plan.requiredMinutes())
		stats.Subjects = append(stats.Subjects, dto.SubjectCoverage{
			SubjectID:          plan.demand.SubjectID,
			SubjectName:        plan.demand.SubjectName,
			RequestedHours:     plan.demand.HoursPerWeek,
			AssignedHours:      float64(plan.assignedMinutes) / 60,
			CoveragePercentage: coverage,
			QualifiedTeachers:  len(plan.teachers),
		})
		if coverage < 100 && len(plan.teachers) > 0 {
			warnings = append(warnings, fmt.Sprintf(
				"subject %s covered at %d%% (%.1f of %d hours)",
				plan.displayName(), coverage, float64(plan.assignedMinutes)/60, plan.demand.HoursPerWeek,
			))
		}
	}
	stats.RequiredHours = requiredMinutes / 60
	stats.AssignedHours = float64(assignedMinutes) / 60
	stats.CoveragePercentage = coveragePercentage(assignedMinutes, requiredMinutes)

	blocks := make([]dto.BlockProposal, len(st.blocks))
	copy(blocks, st.blocks)
	sort.Slice(blocks, func(i, j int) bool {
		if blocks[i].DayOfWeek != blocks[j].DayOfWeek {
			return dayIndex(blocks[i].DayOfWeek) < dayIndex(blocks[j].DayOfWeek)
		}
		return blocks[i].StartTime < blocks[j].StartTime
	})

	return &dto.GenerationResult{
		Success:  true,
		Blocks:   blocks,
		Warnings: warnings,
		Stats:    stats,
	}
}

func coveragePercentage(assigned, required int) int {
	if required <= 0 {
		return 0
	}
	return int(math.Round(float64(assigned) / float64(required) * 100))
}

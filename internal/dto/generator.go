package dto

import "github.com/covalenzuela/schedule-sub000/internal/models"

// SubjectDemand captures the weekly teaching hours requested for one subject.
type SubjectDemand struct {
	SubjectID          string `json:"subjectId" validate:"required"`
	SubjectName        string `json:"subjectName"`
	HoursPerWeek       int    `json:"hoursPerWeek" validate:"required,min=1,max=20"`
	PreferredTeacherID string `json:"preferredTeacherId"`
}

// GenerationConstraints tune the greedy pass. Zero values fall back to the
// configured defaults (2 blocks per subject per day, 4 per teacher per day).
type GenerationConstraints struct {
	AvoidConsecutiveBlocks bool `json:"avoidConsecutiveBlocks"`
	MaxBlocksPerDay        int  `json:"maxBlocksPerDay" validate:"omitempty,min=1,max=8"`
	MaxTeacherBlocksPerDay int  `json:"maxTeacherBlocksPerDay" validate:"omitempty,min=1,max=12"`
	RecomputePriorities    bool `json:"recomputePriorities"`
}

// GenerationRequest instructs the engine to build a weekly timetable for a course.
type GenerationRequest struct {
	CourseID     string                `json:"courseId" validate:"required"`
	AcademicYear int                   `json:"academicYear" validate:"required,min=2000,max=2100"`
	Subjects     []SubjectDemand       `json:"subjects" validate:"required,min=1,dive"`
	Constraints  GenerationConstraints `json:"constraints"`
}

// BlockProposal is one proposed lesson. It becomes a committed fact only
// after the caller saves the proposal.
type BlockProposal struct {
	DayOfWeek       string `json:"dayOfWeek"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	DurationMinutes int    `json:"durationMinutes"`
	SubjectID       string `json:"subjectId"`
	SubjectName     string `json:"subjectName,omitempty"`
	TeacherID       string `json:"teacherId"`
	CourseID        string `json:"courseId"`
}

// SubjectCoverage breaks down assigned versus requested hours for one subject.
type SubjectCoverage struct {
	SubjectID          string  `json:"subjectId"`
	SubjectName        string  `json:"subjectName,omitempty"`
	RequestedHours     int     `json:"requestedHours"`
	AssignedHours      float64 `json:"assignedHours"`
	CoveragePercentage int     `json:"coveragePercentage"`
	QualifiedTeachers  int     `json:"qualifiedTeachers"`
}

// GenerationStats summarises one generation run.
type GenerationStats struct {
	RequiredHours       int               `json:"requiredHours"`
	AssignedHours       float64           `json:"assignedHours"`
	CoveragePercentage  int               `json:"coveragePercentage"`
	TeachersUsed        int               `json:"teachersUsed"`
	CandidatesEvaluated int               `json:"candidatesEvaluated"`
	ElapsedMs           int64             `json:"elapsedMs"`
	Subjects            []SubjectCoverage `json:"subjects"`
}

// GenerationResult is the engine's sole output. Success means no structural
// errors occurred; partial coverage is a normal outcome surfaced via warnings.
type GenerationResult struct {
	Success    bool            `json:"success"`
	ProposalID string          `json:"proposalId,omitempty"`
	Blocks     []BlockProposal `json:"blocks"`
	Errors     []string        `json:"errors,omitempty"`
	Warnings   []string        `json:"warnings,omitempty"`
	Stats      GenerationStats `json:"stats"`
}

// SaveTimetableRequest persists a previously generated proposal.
type SaveTimetableRequest struct {
	ProposalID string `json:"proposalId" validate:"required"`
}

// SaveTimetableResponse reports the persisted blocks and any cross-course
// teacher conflicts detected at persistence time.
type SaveTimetableResponse struct {
	CourseID    string                 `json:"courseId"`
	BlocksSaved int                    `json:"blocksSaved"`
	Warnings    []string               `json:"warnings,omitempty"`
	Conflicts   []models.BlockConflict `json:"conflicts,omitempty"`
}

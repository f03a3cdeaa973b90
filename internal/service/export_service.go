package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/covalenzuela/schedule-sub000/internal/models"
	appErrors "github.com/covalenzuela/schedule-sub000/pkg/errors"
	"github.com/covalenzuela/schedule-sub000/pkg/export"
)

type detailedBlockReader interface {
	ListDetailedByCourseAndYear(ctx context.Context, courseID string, academicYear int) ([]models.ScheduleBlockDetail, error)
}

// ExportService renders a course's committed timetable as a weekly PDF grid.
type ExportService struct {
	courses  generatorCourseReader
	blocks   detailedBlockReader
	exporter *export.PDFExporter
	title    string
}

// NewExportService wires the export path.
func NewExportService(courses generatorCourseReader, blocks detailedBlockReader, exporter *export.PDFExporter, title string) *ExportService {
	if exporter == nil {
		exporter = export.NewPDFExporter()
	}
	if title == "" {
		title = "Weekly Timetable"
	}
	return &ExportService{courses: courses, blocks: blocks, exporter: exporter, title: title}
}

// CourseTimetablePDF returns the rendered document and a suggested filename.
func (s *ExportService) CourseTimetablePDF(ctx context.Context, courseID string, academicYear int) ([]byte, string, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}

	blocks, err := s.blocks.ListDetailedByCourseAndYear(ctx, courseID, academicYear)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedule blocks")
	}
	if len(blocks) == 0 {
		return nil, "", appErrors.Clone(appErrors.ErrNotFound, "course has no committed timetable for this academic year")
	}

	grid := buildTimetableGrid(s.title, course, academicYear, blocks)
	payload, err := s.exporter.Render(grid)
	if err != nil {
		return nil, "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render timetable pdf")
	}

	filename := fmt.Sprintf("timetable_%s_%d.pdf", course.ID, academicYear)
	return payload, filename, nil
}

func buildTimetableGrid(title string, course *models.Course, academicYear int, blocks []models.ScheduleBlockDetail) export.TimetableGrid {
	daySet := make(map[string]struct{})
	rowSet := make(map[string]string)
	for _, block := range blocks {
		daySet[block.DayOfWeek] = struct{}{}
		rowSet[block.StartTime] = block.EndTime
	}

	days := make([]string, 0, len(daySet))
	for day := range daySet {
		days = append(days, day)
	}
	sort.Slice(days, func(i, j int) bool { return dayIndex(days[i]) < dayIndex(days[j]) })

	starts := make([]string, 0, len(rowSet))
	for start := range rowSet {
		starts = append(starts, start)
	}
	sort.Strings(starts)

	rows := make([]export.TimetableRow, 0, len(starts))
	for _, start := range starts {
		row := export.TimetableRow{
			Time:  fmt.Sprintf("%s - %s", start, rowSet[start]),
			Cells: make(map[string]string, len(days)),
		}
		for _, block := range blocks {
			if block.StartTime != start {
				continue
			}
			label := block.SubjectName
			if label == "" {
				label = block.SubjectID
			}
			if block.TeacherName != "" {
				label = fmt.Sprintf("%s (%s)", label, block.TeacherName)
			}
			row.Cells[block.DayOfWeek] = label
		}
		rows = append(rows, row)
	}

	return export.TimetableGrid{
		Title:    title,
		Subtitle: fmt.Sprintf("%s - %d", course.Name, academicYear),
		Days:     days,
		Rows:     rows,
	}
}

package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/covalenzuela/schedule-sub000/internal/models"
	"github.com/covalenzuela/schedule-sub000/internal/service"
	appErrors "github.com/covalenzuela/schedule-sub000/pkg/errors"
	"github.com/covalenzuela/schedule-sub000/pkg/response"
)

type timetableReader interface {
	CourseTimetable(ctx context.Context, courseID string, academicYear int) ([]models.ScheduleBlock, error)
}

type timetableExporter interface {
	CourseTimetablePDF(ctx context.Context, courseID string, academicYear int) ([]byte, string, error)
}

// TimetableHandler exposes committed timetable reads and export.
type TimetableHandler struct {
	timetables timetableReader
	exports    timetableExporter
}

// NewTimetableHandler constructs the handler. The exporter may be nil when
// export is disabled.
func NewTimetableHandler(timetables timetableReader, exports *service.ExportService) *TimetableHandler {
	h := &TimetableHandler{timetables: timetables}
	if exports != nil {
		h.exports = exports
	}
	return h
}

// Timetable godoc
// @Summary Get a course's committed weekly timetable
// @Tags Timetable
// @Produce json
// @Param id path string true "Course ID"
// @Param academicYear query int true "Academic year"
// @Success 200 {object} response.Envelope
// @Router /courses/{id}/timetable [get]
func (h *TimetableHandler) Timetable(c *gin.Context) {
	year, err := academicYearParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	blocks, err := h.timetables.CourseTimetable(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, blocks)
}

// Export godoc
// @Summary Download a course timetable as PDF
// @Tags Timetable
// @Produce application/pdf
// @Param id path string true "Course ID"
// @Param academicYear query int true "Academic year"
// @Success 200 {file} binary
// @Router /courses/{id}/timetable/export [get]
func (h *TimetableHandler) Export(c *gin.Context) {
	if h.exports == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "timetable export is disabled"))
		return
	}
	year, err := academicYearParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, filename, err := h.exports.CourseTimetablePDF(c.Request.Context(), c.Param("id"), year)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/pdf", payload)
}

func academicYearParam(c *gin.Context) (int, error) {
	raw := c.Query("academicYear")
	if raw == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "academicYear query parameter is required")
	}
	year, err := strconv.Atoi(raw)
	if err != nil || year <= 0 {
		return 0, appErrors.Clone(appErrors.ErrValidation, "academicYear must be a positive integer")
	}
	return year, nil
}

package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/covalenzuela/schedule-sub000/internal/dto"
	appErrors "github.com/covalenzuela/schedule-sub000/pkg/errors"
	"github.com/covalenzuela/schedule-sub000/pkg/response"
)

type timetableGenerator interface {
	Generate(ctx context.Context, req dto.GenerationRequest) (*dto.GenerationResult, error)
	Save(ctx context.Context, req dto.SaveTimetableRequest) (*dto.SaveTimetableResponse, error)
}

type timetablePreviewResponse struct {
	Mode   string                `json:"mode"`
	Result *dto.GenerationResult `json:"result"`
}

// TimetableGeneratorHandler exposes the generation engine endpoints.
type TimetableGeneratorHandler struct {
	service timetableGenerator
}

// NewTimetableGeneratorHandler constructs the handler.
func NewTimetableGeneratorHandler(svc timetableGenerator) *TimetableGeneratorHandler {
	return &TimetableGeneratorHandler{service: svc}
}

// Generate godoc
// @Summary Generate a weekly timetable proposal for a course
// @Description Runs the greedy generation engine. The proposal is held in memory until saved or expired; partial coverage is surfaced through warnings.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.GenerationRequest true "Generation payload"
// @Success 200 {object} response.Envelope
// @Router /timetable/generate [post]
func (h *TimetableGeneratorHandler) Generate(c *gin.Context) {
	var req dto.GenerationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid generation payload"))
		return
	}
	result, err := h.service.Generate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, timetablePreviewResponse{Mode: "preview", Result: result})
}

// Save godoc
// @Summary Persist a generated timetable proposal
// @Description Saves the proposal's blocks in one transaction. Teachers already booked in another course are reported as warnings, never rejected.
// @Tags Timetable
// @Accept json
// @Produce json
// @Param payload body dto.SaveTimetableRequest true "Save payload"
// @Success 201 {object} response.Envelope
// @Router /timetable/save [post]
func (h *TimetableGeneratorHandler) Save(c *gin.Context) {
	var req dto.SaveTimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid save payload"))
		return
	}
	result, err := h.service.Save(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, result)
}

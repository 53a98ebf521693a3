package controllers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lilnurik/uniadmit/internal/app/models/dto"
	"github.com/lilnurik/uniadmit/internal/app/services"
	"github.com/lilnurik/uniadmit/internal/middleware"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
)

// ExamDateController handles exam date endpoints
type ExamDateController struct {
	examDateService services.ExamDateService
}

// NewExamDateController creates a new ExamDateController
func NewExamDateController(examDateService services.ExamDateService) *ExamDateController {
	return &ExamDateController{
		examDateService: examDateService,
	}
}

// Accepted timestamp layouts, most specific first. The admin dashboard sends
// datetime-local values without a zone; bare dates mean midnight.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
}

func parseExamDate(raw string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, nil
		}
	}
	return time.Time{}, apperrors.NewValidationError("invalid date format: " + raw)
}

// parseLinkage decodes the faculty_ids JSON array and its comma-joined
// duplicate. A malformed payload is rejected here; set equality is checked in
// the service.
func parseLinkage(facultyIDs, facultyIDsStr string) ([]int64, []int64, error) {
	ids, err := dto.ParseFacultyIDs(facultyIDs)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error())
	}
	idsStr, err := dto.ParseFacultyIDsStr(facultyIDsStr)
	if err != nil {
		return nil, nil, apperrors.NewValidationError(err.Error())
	}
	return ids, idsStr, nil
}

// List godoc
// @Summary List exam dates
// @Description Returns exam dates ordered by date, optionally narrowed to one faculty
// @Tags exam-dates
// @Produce json
// @Param faculty_id query int false "Faculty ID"
// @Success 200 {object} dto.APIResponse{data=[]models.ExamDate}
// @Failure 500 {object} dto.ErrorResponse
// @Router /exam-dates [get]
func (c *ExamDateController) List(ctx *gin.Context) {
	var facultyID *int64
	if raw := ctx.Query("faculty_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid faculty_id parameter"))
			return
		}
		facultyID = &id
	}

	dates, err := c.examDateService.List(ctx.Request.Context(), facultyID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dates))
}

// ListAvailable godoc
// @Summary List bookable exam dates
// @Description Returns active, future exam dates with spots remaining
// @Tags exam-dates
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.ExamDate}
// @Failure 500 {object} dto.ErrorResponse
// @Router /exam-dates/available [get]
func (c *ExamDateController) ListAvailable(ctx *gin.Context) {
	dates, err := c.examDateService.ListAvailable(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dates))
}

// GetByID godoc
// @Summary Get an exam date
// @Tags exam-dates
// @Produce json
// @Param id path int true "Exam date ID"
// @Success 200 {object} dto.APIResponse{data=models.ExamDate}
// @Failure 404 {object} dto.ErrorResponse
// @Router /exam-dates/{id} [get]
func (c *ExamDateController) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	date, err := c.examDateService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(date))
}

// Create godoc
// @Summary Create an exam date
// @Description Creates an exam date linked to one or more faculties. Requires at least one spot and a future date.
// @Tags exam-dates
// @Accept mpfd
// @Produce json
// @Param date formData string true "Exam date (RFC3339 or YYYY-MM-DD)"
// @Param available_spots formData int true "Available spots"
// @Param faculty_ids formData string true "Faculty IDs as JSON array"
// @Param faculty_ids_str formData string true "Faculty IDs comma-joined"
// @Success 201 {object} dto.APIResponse{data=dto.IDResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/exam-dates [post]
func (c *ExamDateController) Create(ctx *gin.Context) {
	var form dto.CreateExamDateForm
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("date, available_spots, faculty_ids and faculty_ids_str are required"))
		return
	}

	date, err := parseExamDate(form.Date)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ids, idsStr, err := parseLinkage(form.FacultyIDs, form.FacultyIDsStr)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	id, err := c.examDateService.Create(ctx.Request.Context(), services.CreateExamDateInput{
		Date:           date,
		AvailableSpots: form.AvailableSpots,
		FacultyIDs:     ids,
		FacultyIDsStr:  idsStr,
	})
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.IDResponse{ID: id}))
}

// Update godoc
// @Summary Update an exam date
// @Description Partially updates an exam date; the faculty linkage set is always replaced in full
// @Tags exam-dates
// @Accept mpfd
// @Produce json
// @Param id path int true "Exam date ID"
// @Param date formData string false "Exam date (RFC3339 or YYYY-MM-DD)"
// @Param available_spots formData int false "Available spots"
// @Param is_active formData bool false "Active flag"
// @Param faculty_ids formData string true "Faculty IDs as JSON array"
// @Param faculty_ids_str formData string false "Faculty IDs comma-joined"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/exam-dates/{id} [put]
func (c *ExamDateController) Update(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var form dto.UpdateExamDateForm
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("faculty_ids is required"))
		return
	}

	input := services.UpdateExamDateInput{
		AvailableSpots: form.AvailableSpots,
		IsActive:       form.IsActive,
	}

	if form.Date != "" {
		date, err := parseExamDate(form.Date)
		if err != nil {
			middleware.HandleAPIError(ctx, err)
			return
		}
		input.Date = &date
	}

	ids, err := dto.ParseFacultyIDs(form.FacultyIDs)
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
		return
	}
	input.FacultyIDs = ids

	if form.FacultyIDsStr != nil {
		idsStr, err := dto.ParseFacultyIDsStr(*form.FacultyIDsStr)
		if err != nil {
			middleware.HandleAPIError(ctx, apperrors.NewValidationError(err.Error()))
			return
		}
		input.FacultyIDsStr = idsStr
	}

	if err := c.examDateService.Update(ctx.Request.Context(), id, input); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Exam date updated"))
}

// Delete godoc
// @Summary Delete an exam date
// @Description Deletes an exam date and its faculty links. Applications keep their stored reference.
// @Tags exam-dates
// @Produce json
// @Param id path int true "Exam date ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/exam-dates/{id} [delete]
func (c *ExamDateController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.examDateService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Exam date deleted"))
}

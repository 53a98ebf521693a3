package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/lilnurik/uniadmit/internal/app/models/dto"
	"github.com/lilnurik/uniadmit/internal/app/repositories"
	"github.com/lilnurik/uniadmit/internal/app/services"
	"github.com/lilnurik/uniadmit/internal/middleware"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
)

// ApplicationController handles application endpoints
type ApplicationController struct {
	applicationService services.ApplicationService
}

// NewApplicationController creates a new ApplicationController
func NewApplicationController(applicationService services.ApplicationService) *ApplicationController {
	return &ApplicationController{
		applicationService: applicationService,
	}
}

// Create godoc
// @Summary Submit an application
// @Description Public intake submission. The faculty must belong to the chosen program and the exam date must be linked to the faculty.
// @Tags applications
// @Accept mpfd
// @Produce json
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param middle_name formData string false "Middle name"
// @Param gender formData string true "Gender (male or female)"
// @Param phone formData string true "Phone number"
// @Param school formData string true "School"
// @Param program_degree formData string true "Program (bachelor or master)"
// @Param faculty_id formData int true "Faculty ID"
// @Param exam_date_id formData int true "Exam date ID"
// @Param has_english_cert formData bool false "Has English certificate"
// @Param english_cert_type formData string false "Certificate type (IELTS, TOEFL, CAMBRIDGE)"
// @Param cert_score formData number false "Certificate score"
// @Param terms_accepted formData bool true "Terms accepted"
// @Success 201 {object} dto.APIResponse{data=dto.IDResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Router /applications [post]
func (c *ApplicationController) Create(ctx *gin.Context) {
	var form dto.CreateApplicationForm
	if err := ctx.ShouldBind(&form); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("missing required application fields"))
		return
	}

	id, err := c.applicationService.Create(ctx.Request.Context(), &form)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.IDResponse{ID: id}))
}

// LookupByPhone godoc
// @Summary Check application status by phone
// @Description Returns the most recent application submitted under the phone number
// @Tags applications
// @Produce json
// @Param phone query string true "Phone number"
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 404 {object} dto.ErrorResponse
// @Router /applications/check [get]
func (c *ApplicationController) LookupByPhone(ctx *gin.Context) {
	phone := ctx.Query("phone")

	application, err := c.applicationService.LookupByPhone(ctx.Request.Context(), phone)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(application))
}

func buildListFilter(filter dto.ApplicationFilter) (repositories.ListFilter, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 100 {
		filter.Limit = 20
	}

	out := repositories.ListFilter{
		Search:    filter.Search,
		FacultyID: filter.FacultyID,
		Offset:    (filter.Page - 1) * filter.Limit,
		Limit:     filter.Limit,
	}

	if filter.PaymentStatus != "" {
		status := models.PaymentStatus(filter.PaymentStatus)
		if !status.Valid() {
			return out, apperrors.NewValidationError("unknown payment_status filter")
		}
		out.PaymentStatus = status
	}
	if filter.StartDate != "" {
		t, err := parseExamDate(filter.StartDate)
		if err != nil {
			return out, err
		}
		out.StartDate = &t
	}
	if filter.EndDate != "" {
		t, err := parseExamDate(filter.EndDate)
		if err != nil {
			return out, err
		}
		out.EndDate = &t
	}
	return out, nil
}

// List godoc
// @Summary List applications
// @Description Returns filtered applications, newest first, with assignment availability resolved
// @Tags applications
// @Produce json
// @Param search query string false "Search in name, phone and school"
// @Param faculty_id query int false "Faculty ID"
// @Param payment_status query string false "Payment status"
// @Param start_date query string false "Submitted after (YYYY-MM-DD)"
// @Param end_date query string false "Submitted before (YYYY-MM-DD)"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.APIResponse{data=dto.PaginatedList}
// @Failure 400 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/applications [get]
func (c *ApplicationController) List(ctx *gin.Context) {
	var filter dto.ApplicationFilter
	if err := ctx.ShouldBindQuery(&filter); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid list filters"))
		return
	}

	repoFilter, err := buildListFilter(filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	applications, total, err := c.applicationService.List(ctx.Request.Context(), repoFilter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	pages := 0
	if repoFilter.Limit > 0 {
		pages = (total + repoFilter.Limit - 1) / repoFilter.Limit
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(dto.PaginatedList{
		Items: applications,
		Total: total,
		Page:  repoFilter.Offset/repoFilter.Limit + 1,
		Pages: pages,
	}))
}

// GetByID godoc
// @Summary Get an application
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/applications/{id} [get]
func (c *ApplicationController) GetByID(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	application, err := c.applicationService.GetByID(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(application))
}

// Update godoc
// @Summary Update an application
// @Description Reassigns the faculty/exam-date pair and/or advances the payment status
// @Tags applications
// @Accept json
// @Produce json
// @Param id path int true "Application ID"
// @Param application body dto.UpdateApplicationRequest true "Fields to update"
// @Success 200 {object} dto.APIResponse{data=models.Application}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/applications/{id} [put]
func (c *ApplicationController) Update(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateApplicationRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("invalid update payload"))
		return
	}

	application, err := c.applicationService.Update(ctx.Request.Context(), id, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(application))
}

// Delete godoc
// @Summary Delete an application
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/applications/{id} [delete]
func (c *ApplicationController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.applicationService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Application deleted"))
}

// AddDocument godoc
// @Summary Upload an applicant document
// @Description Stores a passport, photo or English certificate file against an application
// @Tags applications
// @Accept mpfd
// @Produce json
// @Param id path int true "Application ID"
// @Param document_type formData string true "Document type (passport, photo, english_cert)"
// @Param file formData file true "Document file"
// @Success 201 {object} dto.APIResponse{data=models.Document}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /applications/{id}/documents [post]
func (c *ApplicationController) AddDocument(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	file, err := ctx.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("file is required"))
		return
	}

	document, err := c.applicationService.AddDocument(ctx.Request.Context(), id, ctx.PostForm("document_type"), file)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(document))
}

// ListDocuments godoc
// @Summary List applicant documents
// @Tags applications
// @Produce json
// @Param id path int true "Application ID"
// @Success 200 {object} dto.APIResponse{data=[]models.Document}
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/applications/{id}/documents [get]
func (c *ApplicationController) ListDocuments(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	documents, err := c.applicationService.ListDocuments(ctx.Request.Context(), id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewDataResponse(documents))
}

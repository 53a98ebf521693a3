package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lilnurik/uniadmit/internal/app/models/dto"
	"github.com/lilnurik/uniadmit/internal/app/services"
	"github.com/lilnurik/uniadmit/internal/middleware"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
)

// FacultyController handles faculty endpoints
type FacultyController struct {
	facultyService services.FacultyService
}

// NewFacultyController creates a new FacultyController
func NewFacultyController(facultyService services.FacultyService) *FacultyController {
	return &FacultyController{
		facultyService: facultyService,
	}
}

func parseIDParam(ctx *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(ctx.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewValidationError("invalid " + name + " parameter")
	}
	return id, nil
}

// GetGrouped godoc
// @Summary List faculties grouped by program
// @Description Returns all faculties partitioned into bachelor and master groups
// @Tags faculties
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.FacultyGroup}
// @Failure 500 {object} dto.ErrorResponse
// @Router /faculties [get]
func (c *FacultyController) GetGrouped(ctx *gin.Context) {
	groups, stale, err := c.facultyService.GetGrouped(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewDataResponse(groups)
	if stale {
		resp.Message = "serving last known data"
	}
	ctx.JSON(http.StatusOK, resp)
}

// GetAvailable godoc
// @Summary List faculties open for admission
// @Description Returns active faculties partitioned by program, the view the intake form uses
// @Tags faculties
// @Produce json
// @Success 200 {object} dto.APIResponse{data=[]models.FacultyGroup}
// @Failure 500 {object} dto.ErrorResponse
// @Router /faculties/available [get]
func (c *FacultyController) GetAvailable(ctx *gin.Context) {
	groups, stale, err := c.facultyService.GetAvailable(ctx.Request.Context())
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	resp := dto.NewDataResponse(groups)
	if stale {
		resp.Message = "serving last known data"
	}
	ctx.JSON(http.StatusOK, resp)
}

// Create godoc
// @Summary Create a faculty
// @Description Creates a faculty under the given program
// @Tags faculties
// @Accept json
// @Produce json
// @Param faculty body dto.CreateFacultyRequest true "Faculty data"
// @Success 201 {object} dto.APIResponse{data=dto.IDResponse}
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/faculties [post]
func (c *FacultyController) Create(ctx *gin.Context) {
	var req dto.CreateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("name and program are required"))
		return
	}

	id, err := c.facultyService.Create(ctx.Request.Context(), req.Name, req.Program)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewDataResponse(dto.IDResponse{ID: id}))
}

// Update godoc
// @Summary Update a faculty
// @Description Updates a faculty's name, program and active flag
// @Tags faculties
// @Accept json
// @Produce json
// @Param id path int true "Faculty ID"
// @Param faculty body dto.UpdateFacultyRequest true "Faculty data"
// @Success 200 {object} dto.APIResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/faculties/{id} [put]
func (c *FacultyController) Update(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	var req dto.UpdateFacultyRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(ctx, apperrors.NewValidationError("name and program are required"))
		return
	}

	if err := c.facultyService.Update(ctx.Request.Context(), id, req.Name, req.Program, req.IsActive); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Faculty updated"))
}

// Delete godoc
// @Summary Delete a faculty
// @Description Deletes a faculty and its exam date links. Applications keep their stored reference.
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/faculties/{id} [delete]
func (c *FacultyController) Delete(ctx *gin.Context) {
	id, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.facultyService.Delete(ctx.Request.Context(), id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Faculty deleted"))
}

// LinkExamDate godoc
// @Summary Link a faculty to an exam date
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID"
// @Param examDateId path int true "Exam date ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/faculties/{id}/exam-dates/{examDateId} [post]
func (c *FacultyController) LinkExamDate(ctx *gin.Context) {
	facultyID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	examDateID, err := parseIDParam(ctx, "examDateId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.facultyService.LinkExamDate(ctx.Request.Context(), facultyID, examDateID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Exam date linked"))
}

// UnlinkExamDate godoc
// @Summary Unlink a faculty from an exam date
// @Tags faculties
// @Produce json
// @Param id path int true "Faculty ID"
// @Param examDateId path int true "Exam date ID"
// @Success 200 {object} dto.APIResponse
// @Failure 404 {object} dto.ErrorResponse
// @Security BearerAuth
// @Router /admin/faculties/{id}/exam-dates/{examDateId} [delete]
func (c *FacultyController) UnlinkExamDate(ctx *gin.Context) {
	facultyID, err := parseIDParam(ctx, "id")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}
	examDateID, err := parseIDParam(ctx, "examDateId")
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if err := c.facultyService.UnlinkExamDate(ctx.Request.Context(), facultyID, examDateID); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Exam date unlinked"))
}

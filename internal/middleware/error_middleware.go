package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lilnurik/uniadmit/internal/app/models/dto"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/lilnurik/uniadmit/internal/pkg/logger"
)

// HandleAPIError maps application errors to HTTP responses. Controllers call
// this with whatever the service returned; the mapping from sentinel errors to
// status codes lives here and nowhere else.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := err.Error()
	if errors.As(err, &customErr) && customErr.Message != "" {
		message = customErr.Message
	}

	status, detail := classifyError(err, message)

	if status >= http.StatusInternalServerError {
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Internal error handling request")
	} else {
		logger.Debug().Err(err).Str("path", c.Request.URL.Path).Int("status", status).Msg("Request rejected")
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func classifyError(err error, message string) (int, *dto.ErrorDetail) {
	switch {
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidCredentials, message)
	case errors.Is(err, apperrors.ErrTokenExpired):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, message)
	case errors.Is(err, apperrors.ErrTokenInvalid):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, message)

	case errors.Is(err, apperrors.ErrFacultyNotFound),
		errors.Is(err, apperrors.ErrExamDateNotFound),
		errors.Is(err, apperrors.ErrApplicationNotFound),
		errors.Is(err, apperrors.ErrAdminNotFound),
		errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message)

	case errors.Is(err, apperrors.ErrFacultyAlreadyExists),
		errors.Is(err, apperrors.ErrConflict):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, message)

	case errors.Is(err, apperrors.ErrUnknownProgram):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeUnknownProgram, message).WithField("program")
	case errors.Is(err, apperrors.ErrInvalidSpotCount):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField("available_spots")
	case errors.Is(err, apperrors.ErrExamDateNoFaculty),
		errors.Is(err, apperrors.ErrFacultyIDsMismatch):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField("faculty_ids")
	case errors.Is(err, apperrors.ErrExamDateInPast):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField("date")
	case errors.Is(err, apperrors.ErrAssignmentInvalid),
		errors.Is(err, apperrors.ErrProgramMismatch):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidAssignment, message)
	case errors.Is(err, apperrors.ErrInvalidPaymentTransition):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField("payment_status")
	case errors.Is(err, apperrors.ErrTermsNotAccepted):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message).WithField("terms_accepted")
	case errors.Is(err, apperrors.ErrValidationFailed),
		errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, message)

	case errors.Is(err, apperrors.ErrFetchFailed):
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeStoreFailure, message)
	}

	return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "An unexpected error occurred")
}

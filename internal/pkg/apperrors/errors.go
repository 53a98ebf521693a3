package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrResourceNotFound = errors.New("resource not found")
	ErrConflict         = errors.New("conflict")

	// Authentication errors
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("invalid token")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")
	ErrBadRequest       = errors.New("bad request")

	// Store errors
	ErrFetchFailed = errors.New("failed to fetch data from store")
)

// Faculty errors
var (
	ErrFacultyNotFound      = errors.New("faculty not found")
	ErrFacultyAlreadyExists = errors.New("faculty with this name already exists")
	ErrUnknownProgram       = errors.New("unknown program")
)

// Exam date errors
var (
	ErrExamDateNotFound   = errors.New("exam date not found")
	ErrExamDateNoFaculty  = errors.New("exam date must be linked to at least one faculty")
	ErrExamDateInPast     = errors.New("exam date must not be in the past")
	ErrInvalidSpotCount   = errors.New("available spots must be a positive number")
	ErrFacultyIDsMismatch = errors.New("faculty_ids and faculty_ids_str do not match")
)

// Application errors
var (
	ErrApplicationNotFound      = errors.New("application not found")
	ErrAssignmentInvalid        = errors.New("exam date is not linked to the selected faculty")
	ErrProgramMismatch          = errors.New("faculty does not belong to the selected program")
	ErrInvalidPaymentTransition = errors.New("invalid payment status transition")
	ErrTermsNotAccepted         = errors.New("terms must be accepted")
)

// Admin errors
var (
	ErrAdminNotFound = errors.New("admin not found")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewValidationError creates a new custom error for invalid input with a message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

// NewBadRequestError creates a new custom error for bad request with a message
func NewBadRequestError(message string) error {
	return &CustomError{
		Err:     ErrBadRequest,
		Message: message,
	}
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err     error
	Message string
	Details map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

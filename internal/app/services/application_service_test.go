package services_test

import (
	"context"
	"testing"

	"github.com/lilnurik/uniadmit/internal/app/models/dto"
	"github.com/lilnurik/uniadmit/internal/app/services"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func validApplicationForm() *dto.CreateApplicationForm {
	return &dto.CreateApplicationForm{
		FirstName:     "Aziz",
		LastName:      "Karimov",
		Gender:        "male",
		Phone:         "+998901234567",
		School:        "School 21",
		ProgramDegree: "bachelor",
		FacultyID:     1,
		ExamDateID:    1,
		TermsAccepted: true,
	}
}

func newApplicationValidationService() services.ApplicationService {
	// Validation failures fire before any repository or storage access.
	return services.NewApplicationService(nil, nil, nil, nil, nil)
}

func TestApplicationCreate_RejectsUnacceptedTerms(t *testing.T) {
	svc := newApplicationValidationService()

	form := validApplicationForm()
	form.TermsAccepted = false

	_, err := svc.Create(context.Background(), form)
	assert.ErrorIs(t, err, apperrors.ErrTermsNotAccepted)
}

func TestApplicationCreate_RejectsUnknownGender(t *testing.T) {
	svc := newApplicationValidationService()

	form := validApplicationForm()
	form.Gender = "unspecified"

	_, err := svc.Create(context.Background(), form)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestApplicationCreate_RejectsUnknownProgram(t *testing.T) {
	svc := newApplicationValidationService()

	form := validApplicationForm()
	form.ProgramDegree = "phd"

	_, err := svc.Create(context.Background(), form)
	assert.ErrorIs(t, err, apperrors.ErrUnknownProgram)
}

func TestApplicationCreate_RejectsUnknownCertType(t *testing.T) {
	svc := newApplicationValidationService()

	form := validApplicationForm()
	form.HasEnglishCert = true
	form.EnglishCertType = "DUOLINGO"

	_, err := svc.Create(context.Background(), form)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestApplicationGetByID_RejectsInvalidID(t *testing.T) {
	svc := newApplicationValidationService()

	_, err := svc.GetByID(context.Background(), 0)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestApplicationLookupByPhone_RejectsEmptyPhone(t *testing.T) {
	svc := newApplicationValidationService()

	_, err := svc.LookupByPhone(context.Background(), "  ")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestApplicationAddDocument_RejectsUnknownType(t *testing.T) {
	svc := newApplicationValidationService()

	_, err := svc.AddDocument(context.Background(), 1, "diploma", nil)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

package services_test

import (
	"context"
	"testing"

	"github.com/lilnurik/uniadmit/internal/app/services"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

func TestFacultyCreate_RejectsEmptyName(t *testing.T) {
	svc := services.NewFacultyService(nil, nil)

	_, err := svc.Create(context.Background(), "   ", "bachelor")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestFacultyCreate_RejectsUnknownProgram(t *testing.T) {
	svc := services.NewFacultyService(nil, nil)

	_, err := svc.Create(context.Background(), "Physics", "doctorate")
	assert.ErrorIs(t, err, apperrors.ErrUnknownProgram)
}

func TestFacultyUpdate_RejectsInvalidID(t *testing.T) {
	svc := services.NewFacultyService(nil, nil)

	err := svc.Update(context.Background(), 0, "Physics", "bachelor", true)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestFacultyLink_RejectsInvalidIDs(t *testing.T) {
	svc := services.NewFacultyService(nil, nil)

	assert.ErrorIs(t, svc.LinkExamDate(context.Background(), 0, 1), apperrors.ErrValidationFailed)
	assert.ErrorIs(t, svc.UnlinkExamDate(context.Background(), 1, -2), apperrors.ErrValidationFailed)
}

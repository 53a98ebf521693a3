package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/lilnurik/uniadmit/internal/app/services"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/stretchr/testify/assert"
)

// A fixed clock keeps past-date rejection deterministic.
var testNow = time.Date(2025, 5, 1, 12, 0, 0, 0, time.UTC)

func fixedClock() time.Time { return testNow }

// Validation failures must happen before any store access, so a nil
// repository is safe here: reaching the repository would panic the test.
func newValidationOnlyService() services.ExamDateService {
	return services.NewExamDateService(nil, fixedClock)
}

func TestExamDateCreate_RejectsZeroSpots(t *testing.T) {
	svc := newValidationOnlyService()

	_, err := svc.Create(context.Background(), services.CreateExamDateInput{
		Date:           testNow.Add(24 * time.Hour),
		AvailableSpots: 0,
		FacultyIDs:     []int64{1},
		FacultyIDsStr:  []int64{1},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSpotCount)
}

func TestExamDateCreate_RejectsNegativeSpots(t *testing.T) {
	svc := newValidationOnlyService()

	_, err := svc.Create(context.Background(), services.CreateExamDateInput{
		Date:           testNow.Add(24 * time.Hour),
		AvailableSpots: -5,
		FacultyIDs:     []int64{1},
		FacultyIDsStr:  []int64{1},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSpotCount)
}

func TestExamDateCreate_RejectsEmptyFacultySet(t *testing.T) {
	svc := newValidationOnlyService()

	_, err := svc.Create(context.Background(), services.CreateExamDateInput{
		Date:           testNow.Add(24 * time.Hour),
		AvailableSpots: 50,
		FacultyIDs:     nil,
		FacultyIDsStr:  nil,
	})
	assert.ErrorIs(t, err, apperrors.ErrExamDateNoFaculty)
}

func TestExamDateCreate_RejectsLinkageMismatch(t *testing.T) {
	svc := newValidationOnlyService()

	_, err := svc.Create(context.Background(), services.CreateExamDateInput{
		Date:           testNow.Add(24 * time.Hour),
		AvailableSpots: 50,
		FacultyIDs:     []int64{1, 2},
		FacultyIDsStr:  []int64{1, 3},
	})
	assert.ErrorIs(t, err, apperrors.ErrFacultyIDsMismatch)
}

func TestExamDateCreate_AcceptsReorderedDuplicate(t *testing.T) {
	svc := newValidationOnlyService()

	// Order differs but the sets agree; the past date fails last so set
	// comparison is known to have passed.
	_, err := svc.Create(context.Background(), services.CreateExamDateInput{
		Date:           testNow.Add(-24 * time.Hour),
		AvailableSpots: 50,
		FacultyIDs:     []int64{1, 2},
		FacultyIDsStr:  []int64{2, 1},
	})
	assert.ErrorIs(t, err, apperrors.ErrExamDateInPast)
}

func TestExamDateCreate_RejectsPastDate(t *testing.T) {
	svc := newValidationOnlyService()

	_, err := svc.Create(context.Background(), services.CreateExamDateInput{
		Date:           testNow.Add(-time.Minute),
		AvailableSpots: 50,
		FacultyIDs:     []int64{1},
		FacultyIDsStr:  []int64{1},
	})
	assert.ErrorIs(t, err, apperrors.ErrExamDateInPast)
}

func TestExamDateUpdate_RejectsNegativeSpots(t *testing.T) {
	svc := newValidationOnlyService()

	spots := -1
	err := svc.Update(context.Background(), 1, services.UpdateExamDateInput{
		AvailableSpots: &spots,
		FacultyIDs:     []int64{1},
	})
	assert.ErrorIs(t, err, apperrors.ErrInvalidSpotCount)
}

func TestExamDateUpdate_RejectsPastDate(t *testing.T) {
	svc := newValidationOnlyService()

	past := testNow.Add(-time.Hour)
	err := svc.Update(context.Background(), 1, services.UpdateExamDateInput{
		Date:       &past,
		FacultyIDs: []int64{1},
	})
	assert.ErrorIs(t, err, apperrors.ErrExamDateInPast)
}

func TestExamDateUpdate_RejectsInvalidID(t *testing.T) {
	svc := newValidationOnlyService()

	err := svc.Update(context.Background(), 0, services.UpdateExamDateInput{FacultyIDs: []int64{1}})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

package services

import (
	"context"
	"fmt"
	"time"

	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/lilnurik/uniadmit/internal/app/repositories"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/lilnurik/uniadmit/internal/pkg/auth"
	"github.com/lilnurik/uniadmit/internal/pkg/logger"
)

// CreateExamDateInput carries a validated-at-the-boundary create request.
// FacultyIDsStr is the comma-joined duplicate of FacultyIDs the transport
// contract sends alongside the JSON array; the two sets must agree.
type CreateExamDateInput struct {
	Date           time.Time
	AvailableSpots int
	FacultyIDs     []int64
	FacultyIDsStr  []int64
}

// UpdateExamDateInput carries a partial update. Nil pointers leave the stored
// value untouched; FacultyIDs always replaces the full linkage set.
type UpdateExamDateInput struct {
	Date           *time.Time
	AvailableSpots *int
	IsActive       *bool
	FacultyIDs     []int64
	FacultyIDsStr  []int64
}

// ExamDateService defines the interface for exam date operations
type ExamDateService interface {
	List(ctx context.Context, facultyID *int64) ([]models.ExamDate, error)
	// ListAvailable returns active, future exam dates with spots remaining.
	ListAvailable(ctx context.Context) ([]models.ExamDate, error)
	GetByID(ctx context.Context, id int64) (*models.ExamDate, error)
	Create(ctx context.Context, input CreateExamDateInput) (int64, error)
	Update(ctx context.Context, id int64, input UpdateExamDateInput) error
	Delete(ctx context.Context, id int64) error
}

// examDateServiceImpl implements the ExamDateService interface
type examDateServiceImpl struct {
	examDateRepo *repositories.ExamDateRepository
	now          func() time.Time
}

// NewExamDateService creates a new exam date service instance. The clock is
// injected so past-date rejection is deterministic under test.
func NewExamDateService(examDateRepo *repositories.ExamDateRepository, now func() time.Time) ExamDateService {
	if now == nil {
		now = time.Now
	}
	return &examDateServiceImpl{
		examDateRepo: examDateRepo,
		now:          now,
	}
}

// List returns exam dates, optionally narrowed to one faculty's linkage.
func (s *examDateServiceImpl) List(ctx context.Context, facultyID *int64) ([]models.ExamDate, error) {
	return s.examDateRepo.List(ctx, facultyID)
}

// ListAvailable returns the bookable exam dates as of now.
func (s *examDateServiceImpl) ListAvailable(ctx context.Context) ([]models.ExamDate, error) {
	return s.examDateRepo.ListAvailable(ctx, s.now())
}

// GetByID returns one exam date with its linked faculty ids.
func (s *examDateServiceImpl) GetByID(ctx context.Context, id int64) (*models.ExamDate, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid exam date ID", apperrors.ErrValidationFailed)
	}
	return s.examDateRepo.GetByID(ctx, id)
}

// sameIDSet reports whether two id lists contain the same set, ignoring
// order and duplicates.
func sameIDSet(a, b []int64) bool {
	seen := make(map[int64]struct{}, len(a))
	for _, id := range a {
		seen[id] = struct{}{}
	}
	other := make(map[int64]struct{}, len(b))
	for _, id := range b {
		if _, ok := seen[id]; !ok {
			return false
		}
		other[id] = struct{}{}
	}
	return len(seen) == len(other)
}

// Create validates and stores a new exam date. Every rule is checked before
// the repository is touched: a rejected create leaves no partial record.
func (s *examDateServiceImpl) Create(ctx context.Context, input CreateExamDateInput) (int64, error) {
	if input.AvailableSpots < 1 {
		return 0, apperrors.ErrInvalidSpotCount
	}
	if len(input.FacultyIDs) == 0 {
		return 0, apperrors.ErrExamDateNoFaculty
	}
	if !sameIDSet(input.FacultyIDs, input.FacultyIDsStr) {
		return 0, apperrors.ErrFacultyIDsMismatch
	}
	if input.Date.Before(s.now()) {
		return 0, apperrors.ErrExamDateInPast
	}

	examDate := &models.ExamDate{
		Date:           input.Date,
		AvailableSpots: input.AvailableSpots,
		IsActive:       true,
		FacultyIDs:     input.FacultyIDs,
	}

	id, err := s.examDateRepo.Create(ctx, examDate)
	if err != nil {
		return 0, err
	}

	logger.Info().
		Int64("examDateID", id).
		Time("date", input.Date).
		Int("availableSpots", input.AvailableSpots).
		Str("actor", auth.ActorFromContext(ctx)).
		Msg("Exam date created")
	return id, nil
}

// Update validates and applies a partial update. The linkage set is replaced
// wholesale; an empty set detaches the exam date from every faculty. Spots
// may drop to zero here, never below.
func (s *examDateServiceImpl) Update(ctx context.Context, id int64, input UpdateExamDateInput) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid exam date ID", apperrors.ErrValidationFailed)
	}
	if input.AvailableSpots != nil && *input.AvailableSpots < 0 {
		return apperrors.ErrInvalidSpotCount
	}
	if input.FacultyIDsStr != nil && !sameIDSet(input.FacultyIDs, input.FacultyIDsStr) {
		return apperrors.ErrFacultyIDsMismatch
	}
	if input.Date != nil && input.Date.Before(s.now()) {
		return apperrors.ErrExamDateInPast
	}

	err := s.examDateRepo.Update(ctx, id, repositories.UpdateFields{
		Date:           input.Date,
		AvailableSpots: input.AvailableSpots,
		IsActive:       input.IsActive,
		FacultyIDs:     input.FacultyIDs,
	})
	if err != nil {
		return err
	}

	logger.Info().Int64("examDateID", id).Str("actor", auth.ActorFromContext(ctx)).Msg("Exam date updated")
	return nil
}

// Delete removes an exam date. Applications keep their stored reference;
// it surfaces as an unavailable assignment on read.
func (s *examDateServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid exam date ID", apperrors.ErrValidationFailed)
	}

	if err := s.examDateRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("examDateID", id).Str("actor", auth.ActorFromContext(ctx)).Msg("Exam date deleted")
	return nil
}

package services

import (
	"context"
	"fmt"
	"strings"

	gocache "github.com/patrickmn/go-cache"
	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/lilnurik/uniadmit/internal/app/repositories"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/lilnurik/uniadmit/internal/pkg/auth"
	"github.com/lilnurik/uniadmit/internal/pkg/logger"
)

const (
	groupedAllCacheKey    = "faculties:grouped:all"
	groupedActiveCacheKey = "faculties:grouped:active"
)

// FacultyService defines the interface for faculty-related operations
type FacultyService interface {
	// GetGrouped returns the faculty set partitioned by program. The boolean
	// is true when the result is a cached last-known-good snapshot served
	// because the store fetch failed.
	GetGrouped(ctx context.Context) ([]models.FacultyGroup, bool, error)
	// GetAvailable is GetGrouped restricted to active faculties, the view the
	// public form consumes.
	GetAvailable(ctx context.Context) ([]models.FacultyGroup, bool, error)
	Create(ctx context.Context, name, program string) (int64, error)
	Update(ctx context.Context, id int64, name, program string, isActive bool) error
	Delete(ctx context.Context, id int64) error
	LinkExamDate(ctx context.Context, facultyID, examDateID int64) error
	UnlinkExamDate(ctx context.Context, facultyID, examDateID int64) error
}

// facultyServiceImpl implements the FacultyService interface
type facultyServiceImpl struct {
	facultyRepo *repositories.FacultyRepository
	cache       *gocache.Cache
}

// NewFacultyService creates a new faculty service instance
func NewFacultyService(facultyRepo *repositories.FacultyRepository, cache *gocache.Cache) FacultyService {
	return &facultyServiceImpl{
		facultyRepo: facultyRepo,
		cache:       cache,
	}
}

// groupByProgram partitions faculties into the fixed program groups, keyed by
// the display labels the intake form matches against.
func groupByProgram(faculties []models.Faculty) []models.FacultyGroup {
	groups := []models.FacultyGroup{
		{Program: models.ProgramBachelor.Label(), Faculties: []models.Faculty{}},
		{Program: models.ProgramMaster.Label(), Faculties: []models.Faculty{}},
	}
	for _, f := range faculties {
		if f.Program == models.ProgramMaster {
			groups[1].Faculties = append(groups[1].Faculties, f)
		} else {
			groups[0].Faculties = append(groups[0].Faculties, f)
		}
	}
	return groups
}

func (s *facultyServiceImpl) getGrouped(ctx context.Context, activeOnly bool, cacheKey string) ([]models.FacultyGroup, bool, error) {
	faculties, err := s.facultyRepo.GetAll(ctx, activeOnly)
	if err != nil {
		// Serve the last-known-good grouping instead of resetting to empty.
		if cached, found := s.cache.Get(cacheKey); found {
			logger.Warn().Err(err).Msg("Faculty fetch failed, serving last-known-good grouping")
			return cached.([]models.FacultyGroup), true, nil
		}
		return nil, false, fmt.Errorf("%w: %v", apperrors.ErrFetchFailed, err)
	}

	groups := groupByProgram(faculties)
	s.cache.Set(cacheKey, groups, gocache.NoExpiration)
	return groups, false, nil
}

// GetGrouped returns all faculties partitioned by program
func (s *facultyServiceImpl) GetGrouped(ctx context.Context) ([]models.FacultyGroup, bool, error) {
	return s.getGrouped(ctx, false, groupedAllCacheKey)
}

// GetAvailable returns active faculties partitioned by program
func (s *facultyServiceImpl) GetAvailable(ctx context.Context) ([]models.FacultyGroup, bool, error) {
	return s.getGrouped(ctx, true, groupedActiveCacheKey)
}

func (s *facultyServiceImpl) validateName(name string) error {
	if strings.TrimSpace(name) == "" {
		return fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidationFailed)
	}
	return nil
}

// Create creates a new faculty under the given program. The stored name
// carries the program prefix exactly once.
func (s *facultyServiceImpl) Create(ctx context.Context, name, program string) (int64, error) {
	if err := s.validateName(name); err != nil {
		return 0, err
	}

	p, err := models.ParseProgram(program)
	if err != nil {
		return 0, err
	}

	faculty := &models.Faculty{
		Name:     models.FormatFacultyName(strings.TrimSpace(name), p),
		Program:  p,
		IsActive: true,
	}

	id, err := s.facultyRepo.Create(ctx, faculty)
	if err != nil {
		return 0, fmt.Errorf("error creating faculty: %w", err)
	}

	logger.Info().Int64("facultyID", id).Str("actor", auth.ActorFromContext(ctx)).Msg("Faculty created")
	return id, nil
}

// Update updates a faculty, re-formatting the name under the possibly new
// program.
func (s *facultyServiceImpl) Update(ctx context.Context, id int64, name, program string, isActive bool) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid faculty ID", apperrors.ErrValidationFailed)
	}
	if err := s.validateName(name); err != nil {
		return err
	}

	p, err := models.ParseProgram(program)
	if err != nil {
		return err
	}

	// Strip any old prefix before re-applying under the new program, so a
	// program change re-labels the name instead of keeping the stale prefix.
	bare := models.StripProgramPrefix(strings.TrimSpace(name))

	faculty := &models.Faculty{
		ID:       id,
		Name:     models.FormatFacultyName(bare, p),
		Program:  p,
		IsActive: isActive,
	}

	if err := s.facultyRepo.Update(ctx, faculty); err != nil {
		return err
	}

	logger.Info().Int64("facultyID", id).Str("actor", auth.ActorFromContext(ctx)).Msg("Faculty updated")
	return nil
}

// Delete deletes a faculty by ID
func (s *facultyServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid faculty ID", apperrors.ErrValidationFailed)
	}

	if err := s.facultyRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("facultyID", id).Str("actor", auth.ActorFromContext(ctx)).Msg("Faculty deleted")
	return nil
}

// LinkExamDate links a faculty to an exam date
func (s *facultyServiceImpl) LinkExamDate(ctx context.Context, facultyID, examDateID int64) error {
	if facultyID <= 0 || examDateID <= 0 {
		return fmt.Errorf("%w: invalid faculty or exam date ID", apperrors.ErrValidationFailed)
	}
	return s.facultyRepo.LinkExamDate(ctx, facultyID, examDateID)
}

// UnlinkExamDate removes a faculty/exam-date link
func (s *facultyServiceImpl) UnlinkExamDate(ctx context.Context, facultyID, examDateID int64) error {
	if facultyID <= 0 || examDateID <= 0 {
		return fmt.Errorf("%w: invalid faculty or exam date ID", apperrors.ErrValidationFailed)
	}
	return s.facultyRepo.UnlinkExamDate(ctx, facultyID, examDateID)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/lilnurik/uniadmit/internal/app/models/dto"
	"github.com/lilnurik/uniadmit/internal/app/repositories"
	"github.com/lilnurik/uniadmit/internal/app/selection"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/lilnurik/uniadmit/internal/pkg/auth"
	"github.com/lilnurik/uniadmit/internal/pkg/filestorage"
	"github.com/lilnurik/uniadmit/internal/pkg/logger"
)

// ApplicationService defines the interface for application operations
type ApplicationService interface {
	Create(ctx context.Context, form *dto.CreateApplicationForm) (int64, error)
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	List(ctx context.Context, filter repositories.ListFilter) ([]models.Application, int, error)
	// Update applies an admin edit: faculty/exam-date reassignment and/or a
	// payment status transition. Returns the updated record.
	Update(ctx context.Context, id int64, req *dto.UpdateApplicationRequest) (*models.Application, error)
	Delete(ctx context.Context, id int64) error
	LookupByPhone(ctx context.Context, phone string) (*models.Application, error)
	AddDocument(ctx context.Context, applicationID int64, docType string, file *multipart.FileHeader) (*models.Document, error)
	ListDocuments(ctx context.Context, applicationID int64) ([]models.Document, error)
}

// applicationServiceImpl implements the ApplicationService interface
type applicationServiceImpl struct {
	applicationRepo *repositories.ApplicationRepository
	facultyRepo     *repositories.FacultyRepository
	examDateRepo    *repositories.ExamDateRepository
	documentRepo    *repositories.DocumentRepository
	storage         filestorage.FileStorage
}

// NewApplicationService creates a new application service instance
func NewApplicationService(
	applicationRepo *repositories.ApplicationRepository,
	facultyRepo *repositories.FacultyRepository,
	examDateRepo *repositories.ExamDateRepository,
	documentRepo *repositories.DocumentRepository,
	storage filestorage.FileStorage,
) ApplicationService {
	return &applicationServiceImpl{
		applicationRepo: applicationRepo,
		facultyRepo:     facultyRepo,
		examDateRepo:    examDateRepo,
		documentRepo:    documentRepo,
		storage:         storage,
	}
}

// Create validates a public submission and stores it with payment status
// pending. The selection chain is re-checked server-side: the program must be
// known, the faculty must belong to that program and be active, and the exam
// date must be linked to the faculty. Seat counts are advisory and not
// enforced here.
func (s *applicationServiceImpl) Create(ctx context.Context, form *dto.CreateApplicationForm) (int64, error) {
	if !form.TermsAccepted {
		return 0, apperrors.ErrTermsNotAccepted
	}

	gender := models.Gender(strings.ToLower(form.Gender))
	if !gender.Valid() {
		return 0, fmt.Errorf("%w: unknown gender %q", apperrors.ErrValidationFailed, form.Gender)
	}

	program, err := models.ParseProgram(form.ProgramDegree)
	if err != nil {
		return 0, err
	}

	var certType models.EnglishCertType
	var certScore *float64
	if form.HasEnglishCert {
		certType = models.EnglishCertType(strings.ToUpper(form.EnglishCertType))
		if !certType.Valid() {
			return 0, fmt.Errorf("%w: unknown english certificate type %q", apperrors.ErrValidationFailed, form.EnglishCertType)
		}
		certScore = form.CertScore
	}

	faculty, err := s.facultyRepo.GetByID(ctx, form.FacultyID)
	if err != nil {
		if errors.Is(err, apperrors.ErrResourceNotFound) || errors.Is(err, apperrors.ErrFacultyNotFound) {
			return 0, fmt.Errorf("%w: faculty %d does not exist", apperrors.ErrValidationFailed, form.FacultyID)
		}
		return 0, err
	}
	if !faculty.IsActive {
		return 0, fmt.Errorf("%w: faculty %d is not open for admission", apperrors.ErrValidationFailed, form.FacultyID)
	}
	if faculty.Program != program {
		return 0, apperrors.ErrProgramMismatch
	}

	dates, err := s.examDateRepo.List(ctx, &form.FacultyID)
	if err != nil {
		return 0, err
	}
	if !selection.AssignmentValid(form.FacultyID, form.ExamDateID, dates) {
		return 0, apperrors.ErrAssignmentInvalid
	}

	application := &models.Application{
		FirstName:       strings.TrimSpace(form.FirstName),
		LastName:        strings.TrimSpace(form.LastName),
		MiddleName:      strings.TrimSpace(form.MiddleName),
		Gender:          gender,
		Phone:           strings.TrimSpace(form.Phone),
		School:          strings.TrimSpace(form.School),
		ProgramDegree:   program,
		FacultyID:       form.FacultyID,
		ExamDateID:      form.ExamDateID,
		HasEnglishCert:  form.HasEnglishCert,
		EnglishCertType: certType,
		CertScore:       certScore,
		TermsAccepted:   form.TermsAccepted,
	}

	id, err := s.applicationRepo.Create(ctx, application)
	if err != nil {
		return 0, err
	}

	logger.Info().
		Int64("applicationID", id).
		Int64("facultyID", form.FacultyID).
		Int64("examDateID", form.ExamDateID).
		Msg("Application submitted")
	return id, nil
}

// annotateAssignment derives AssignmentAvailable for each application by
// resolving the stored faculty/exam-date pair against the current linkage
// graph. Applications carry no foreign keys, so a deleted faculty or exam
// date shows up here instead of cascading.
func (s *applicationServiceImpl) annotateAssignment(ctx context.Context, applications []models.Application) error {
	if len(applications) == 0 {
		return nil
	}

	faculties, err := s.facultyRepo.GetAll(ctx, false)
	if err != nil {
		return err
	}
	facultyExists := make(map[int64]bool, len(faculties))
	for _, f := range faculties {
		facultyExists[f.ID] = true
	}

	dates, err := s.examDateRepo.List(ctx, nil)
	if err != nil {
		return err
	}

	for i := range applications {
		a := &applications[i]
		a.AssignmentAvailable = facultyExists[a.FacultyID] &&
			selection.AssignmentValid(a.FacultyID, a.ExamDateID, dates)
		if !a.AssignmentAvailable {
			logger.Warn().
				Int64("applicationID", a.ID).
				Int64("facultyID", a.FacultyID).
				Int64("examDateID", a.ExamDateID).
				Msg("Application references an unresolvable faculty/exam-date pair")
		}
	}
	return nil
}

// GetByID returns one application with its assignment availability resolved.
func (s *applicationServiceImpl) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	if id <= 0 {
		return nil, fmt.Errorf("%w: invalid application ID", apperrors.ErrValidationFailed)
	}

	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	annotated := []models.Application{*application}
	if err := s.annotateAssignment(ctx, annotated); err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

// List returns filtered applications with assignment availability resolved,
// plus the total match count.
func (s *applicationServiceImpl) List(ctx context.Context, filter repositories.ListFilter) ([]models.Application, int, error) {
	applications, total, err := s.applicationRepo.List(ctx, filter)
	if err != nil {
		return nil, 0, err
	}
	if err := s.annotateAssignment(ctx, applications); err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// Update applies an admin edit. A reassignment must target an existing
// faculty and an exam date currently linked to it; a payment status change
// must follow the transition rules of the ledger.
func (s *applicationServiceImpl) Update(ctx context.Context, id int64, req *dto.UpdateApplicationRequest) (*models.Application, error) {
	application, err := s.applicationRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	targetFaculty := application.FacultyID
	if req.FacultyID != nil {
		targetFaculty = *req.FacultyID
	}
	targetExamDate := application.ExamDateID
	if req.ExamDateID != nil {
		targetExamDate = *req.ExamDateID
	}

	if req.FacultyID != nil || req.ExamDateID != nil {
		if _, err := s.facultyRepo.GetByID(ctx, targetFaculty); err != nil {
			if errors.Is(err, apperrors.ErrResourceNotFound) || errors.Is(err, apperrors.ErrFacultyNotFound) {
				return nil, apperrors.ErrAssignmentInvalid
			}
			return nil, err
		}
		dates, err := s.examDateRepo.List(ctx, &targetFaculty)
		if err != nil {
			return nil, err
		}
		if !selection.AssignmentValid(targetFaculty, targetExamDate, dates) {
			return nil, apperrors.ErrAssignmentInvalid
		}
	}

	var newStatus *models.PaymentStatus
	if req.PaymentStatus != nil {
		status := models.PaymentStatus(strings.ToLower(*req.PaymentStatus))
		if !status.Valid() {
			return nil, fmt.Errorf("%w: unknown payment status %q", apperrors.ErrValidationFailed, *req.PaymentStatus)
		}
		if !application.PaymentStatus.CanTransitionTo(status) {
			return nil, fmt.Errorf("%w: %s -> %s", apperrors.ErrInvalidPaymentTransition, application.PaymentStatus, status)
		}
		newStatus = &status
	}

	if err := s.applicationRepo.UpdateAssignment(ctx, id, req.FacultyID, req.ExamDateID, newStatus); err != nil {
		return nil, err
	}

	logger.Info().
		Int64("applicationID", id).
		Str("actor", auth.ActorFromContext(ctx)).
		Msg("Application updated")

	return s.GetByID(ctx, id)
}

// Delete removes an application
func (s *applicationServiceImpl) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid application ID", apperrors.ErrValidationFailed)
	}

	if err := s.applicationRepo.Delete(ctx, id); err != nil {
		return err
	}

	logger.Info().Int64("applicationID", id).Str("actor", auth.ActorFromContext(ctx)).Msg("Application deleted")
	return nil
}

// LookupByPhone returns the most recent application submitted under a phone
// number, the status-check entry point of the public site.
func (s *applicationServiceImpl) LookupByPhone(ctx context.Context, phone string) (*models.Application, error) {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return nil, fmt.Errorf("%w: phone cannot be empty", apperrors.ErrValidationFailed)
	}

	application, err := s.applicationRepo.GetByPhone(ctx, phone)
	if err != nil {
		return nil, err
	}

	annotated := []models.Application{*application}
	if err := s.annotateAssignment(ctx, annotated); err != nil {
		return nil, err
	}
	return &annotated[0], nil
}

// AddDocument stores an uploaded file and records it against the application.
func (s *applicationServiceImpl) AddDocument(ctx context.Context, applicationID int64, docType string, file *multipart.FileHeader) (*models.Document, error) {
	t := models.DocumentType(strings.ToLower(docType))
	if !t.Valid() {
		return nil, fmt.Errorf("%w: unknown document type %q", apperrors.ErrValidationFailed, docType)
	}
	if file == nil {
		return nil, fmt.Errorf("%w: file is required", apperrors.ErrValidationFailed)
	}

	if _, err := s.applicationRepo.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}

	filePath, err := s.storage.SaveFile(file, fmt.Sprintf("applications/%d", applicationID))
	if err != nil {
		return nil, fmt.Errorf("error storing document file: %w", err)
	}

	document := &models.Document{
		ApplicationID: applicationID,
		DocumentType:  t,
		FilePath:      filePath,
		OriginalName:  file.Filename,
	}

	id, err := s.documentRepo.Create(ctx, document)
	if err != nil {
		// The record failed, drop the orphaned file.
		if delErr := s.storage.DeleteFile(filePath); delErr != nil {
			logger.Warn().Err(delErr).Str("filePath", filePath).Msg("Failed to remove orphaned document file")
		}
		return nil, err
	}
	document.ID = id

	logger.Info().
		Int64("applicationID", applicationID).
		Int64("documentID", id).
		Str("documentType", string(t)).
		Msg("Document uploaded")
	return document, nil
}

// ListDocuments returns the documents attached to an application.
func (s *applicationServiceImpl) ListDocuments(ctx context.Context, applicationID int64) ([]models.Document, error) {
	if _, err := s.applicationRepo.GetByID(ctx, applicationID); err != nil {
		return nil, err
	}
	return s.documentRepo.ListByApplication(ctx, applicationID)
}

package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/lilnurik/uniadmit/internal/pkg/logger"
)

// ApplicationRepository handles application database operations
type ApplicationRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewApplicationRepository creates a new ApplicationRepository
func NewApplicationRepository(db *pgxpool.Pool) *ApplicationRepository {
	return &ApplicationRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

var applicationColumns = []string{
	"id", "first_name", "last_name", "middle_name", "gender", "phone",
	"school", "program_degree", "faculty_id", "exam_date_id",
	"has_english_cert", "english_cert_type", "cert_score",
	"payment_status", "terms_accepted", "created_at", "updated_at",
}

func scanApplication(row pgx.Row) (*models.Application, error) {
	a := &models.Application{}
	var middleName, certType *string
	var gender, program, paymentStatus string
	err := row.Scan(
		&a.ID, &a.FirstName, &a.LastName, &middleName, &gender, &a.Phone,
		&a.School, &program, &a.FacultyID, &a.ExamDateID,
		&a.HasEnglishCert, &certType, &a.CertScore,
		&paymentStatus, &a.TermsAccepted, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if middleName != nil {
		a.MiddleName = *middleName
	}
	if certType != nil {
		a.EnglishCertType = models.EnglishCertType(*certType)
	}
	a.Gender = models.Gender(gender)
	a.ProgramDegree = models.Program(program)
	a.PaymentStatus = models.PaymentStatus(paymentStatus)
	return a, nil
}

// Create inserts a new application with payment status pending
func (r *ApplicationRepository) Create(ctx context.Context, a *models.Application) (int64, error) {
	var middleName, certType *string
	if a.MiddleName != "" {
		middleName = &a.MiddleName
	}
	if a.EnglishCertType != "" {
		s := string(a.EnglishCertType)
		certType = &s
	}

	sql, args, err := r.sb.Insert("applications").
		Columns("first_name", "last_name", "middle_name", "gender", "phone",
			"school", "program_degree", "faculty_id", "exam_date_id",
			"has_english_cert", "english_cert_type", "cert_score",
			"payment_status", "terms_accepted").
		Values(a.FirstName, a.LastName, middleName, string(a.Gender), a.Phone,
			a.School, string(a.ProgramDegree), a.FacultyID, a.ExamDateID,
			a.HasEnglishCert, certType, a.CertScore,
			string(models.PaymentPending), a.TermsAccepted).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create application SQL")
		return 0, fmt.Errorf("failed to build create application query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		logger.Error().Err(err).Msg("Error executing create application query")
		return 0, fmt.Errorf("error creating application: %w", err)
	}
	return id, nil
}

// GetByID retrieves an application by ID
func (r *ApplicationRepository) GetByID(ctx context.Context, id int64) (*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns...).
		From("applications").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get application SQL")
		return nil, fmt.Errorf("failed to build get application query: %w", err)
	}

	a, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application by ID: %w", err)
	}
	return a, nil
}

// GetByPhone retrieves the most recent application for a phone number
func (r *ApplicationRepository) GetByPhone(ctx context.Context, phone string) (*models.Application, error) {
	sql, args, err := r.sb.Select(applicationColumns...).
		From("applications").
		Where(squirrel.Eq{"phone": phone}).
		OrderBy("created_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get application by phone SQL")
		return nil, fmt.Errorf("failed to build get application by phone query: %w", err)
	}

	a, err := scanApplication(r.db.QueryRow(ctx, sql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Str("phone", phone).Msg("Error scanning application row")
		return nil, fmt.Errorf("error getting application by phone: %w", err)
	}
	return a, nil
}

// ListFilter narrows the application list query.
type ListFilter struct {
	Search        string
	FacultyID     *int64
	PaymentStatus models.PaymentStatus
	StartDate     *time.Time
	EndDate       *time.Time
	Offset        int
	Limit         int
}

func (f ListFilter) apply(builder squirrel.SelectBuilder) squirrel.SelectBuilder {
	if f.Search != "" {
		pattern := "%" + f.Search + "%"
		builder = builder.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"last_name": pattern},
			squirrel.ILike{"phone": pattern},
			squirrel.ILike{"school": pattern},
		})
	}
	if f.FacultyID != nil {
		builder = builder.Where(squirrel.Eq{"faculty_id": *f.FacultyID})
	}
	if f.PaymentStatus != "" {
		builder = builder.Where(squirrel.Eq{"payment_status": string(f.PaymentStatus)})
	}
	if f.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"created_at": *f.StartDate})
	}
	if f.EndDate != nil {
		builder = builder.Where(squirrel.LtOrEq{"created_at": *f.EndDate})
	}
	return builder
}

// List retrieves applications matching the filter, newest first, with the
// total count of matches.
func (r *ApplicationRepository) List(ctx context.Context, filter ListFilter) ([]models.Application, int, error) {
	countSQL, countArgs, err := filter.apply(r.sb.Select("COUNT(*)").From("applications")).ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building count applications SQL")
		return nil, 0, fmt.Errorf("failed to build count applications query: %w", err)
	}

	var total int
	if err := r.db.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		logger.Error().Err(err).Msg("Error counting applications")
		return nil, 0, fmt.Errorf("error counting applications: %w", err)
	}

	builder := filter.apply(r.sb.Select(applicationColumns...).From("applications")).
		OrderBy("created_at DESC")
	if filter.Limit > 0 {
		builder = builder.Limit(uint64(filter.Limit)).Offset(uint64(filter.Offset))
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list applications SQL")
		return nil, 0, fmt.Errorf("failed to build list applications query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list applications query")
		return nil, 0, fmt.Errorf("error querying applications: %w", err)
	}
	defer rows.Close()

	applications := []models.Application{}
	for rows.Next() {
		a, err := scanApplication(rows)
		if err != nil {
			logger.Error().Err(err).Msg("Error scanning application row during list")
			return nil, 0, fmt.Errorf("error scanning application row: %w", err)
		}
		applications = append(applications, *a)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating application rows")
		return nil, 0, fmt.Errorf("error iterating application rows: %w", err)
	}

	return applications, total, nil
}

// UpdateAssignment persists a new faculty/exam-date pair and/or payment
// status. Nil pointers leave the stored value untouched. Validation of the
// pair against the linkage graph happens in the service before this call.
func (r *ApplicationRepository) UpdateAssignment(ctx context.Context, id int64, facultyID, examDateID *int64, paymentStatus *models.PaymentStatus) error {
	set := map[string]interface{}{
		"updated_at": squirrel.Expr("NOW()"),
	}
	if facultyID != nil {
		set["faculty_id"] = *facultyID
	}
	if examDateID != nil {
		set["exam_date_id"] = *examDateID
	}
	if paymentStatus != nil {
		set["payment_status"] = string(*paymentStatus)
	}

	sql, args, err := r.sb.Update("applications").
		SetMap(set).
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building update application SQL")
		return fmt.Errorf("failed to build update application query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing update application query")
		return fmt.Errorf("error updating application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

// Delete removes an application
func (r *ApplicationRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := r.sb.Delete("applications").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building delete application SQL")
		return fmt.Errorf("failed to build delete application query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("applicationID", id).Msg("Error executing delete application query")
		return fmt.Errorf("error deleting application: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrApplicationNotFound
	}
	return nil
}

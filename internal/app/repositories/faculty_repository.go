package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/lilnurik/uniadmit/internal/db"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/lilnurik/uniadmit/internal/pkg/logger"
)

// FacultyRepository handles faculty database operations, including the
// faculty/exam-date linkage graph.
type FacultyRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewFacultyRepository creates a new FacultyRepository
func NewFacultyRepository(db *pgxpool.Pool) *FacultyRepository {
	return &FacultyRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new faculty
func (r *FacultyRepository) Create(ctx context.Context, faculty *models.Faculty) (int64, error) {
	sql, args, err := r.sb.Insert("faculties").
		Columns("name", "program", "is_active").
		Values(faculty.Name, string(faculty.Program), faculty.IsActive).
		Suffix("RETURNING id").
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building create faculty SQL")
		return 0, fmt.Errorf("failed to build create faculty query: %w", err)
	}

	var id int64
	err = r.db.QueryRow(ctx, sql, args...).Scan(&id)
	if err != nil {
		if isDuplicateKeyError(err) {
			return 0, apperrors.ErrFacultyAlreadyExists
		}
		logger.Error().Err(err).Msg("Error executing create faculty query")
		return 0, fmt.Errorf("error creating faculty: %w", err)
	}

	return id, nil
}

// GetByID retrieves a faculty by ID
func (r *FacultyRepository) GetByID(ctx context.Context, id int64) (*models.Faculty, error) {
	sql, args, err := r.sb.Select("id", "name", "program", "is_active", "created_at", "updated_at").
		From("faculties").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building get faculty by ID SQL")
		return nil, fmt.Errorf("failed to build get faculty query: %w", err)
	}

	faculty := &models.Faculty{}
	var program string
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&faculty.ID, &faculty.Name, &program, &faculty.IsActive,
		&faculty.CreatedAt, &faculty.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error scanning faculty row")
		return nil, fmt.Errorf("error getting faculty by ID: %w", err)
	}
	faculty.Program = models.Program(program)

	return faculty, nil
}

// GetAll retrieves all faculties ordered by program then name, each carrying
// its linked exam dates.
func (r *FacultyRepository) GetAll(ctx context.Context, activeOnly bool) ([]models.Faculty, error) {
	builder := r.sb.Select("id", "name", "program", "is_active", "created_at", "updated_at").
		From("faculties").
		OrderBy("program ASC", "name ASC")
	if activeOnly {
		builder = builder.Where(squirrel.Eq{"is_active": true})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get all faculties SQL")
		return nil, fmt.Errorf("failed to build get all faculties query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing get all faculties query")
		return nil, fmt.Errorf("error querying faculties: %w", err)
	}
	defer rows.Close()

	faculties := []models.Faculty{}
	for rows.Next() {
		var f models.Faculty
		var program string
		if err := rows.Scan(&f.ID, &f.Name, &program, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning faculty row during get all")
			return nil, fmt.Errorf("error scanning faculty row: %w", err)
		}
		f.Program = models.Program(program)
		f.ExamDates = []models.ExamDate{}
		faculties = append(faculties, f)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating faculty rows")
		return nil, fmt.Errorf("error iterating faculty rows: %w", err)
	}

	if err := r.attachExamDates(ctx, faculties); err != nil {
		return nil, err
	}

	return faculties, nil
}

// attachExamDates loads the linkage graph and fills each faculty's exam date
// list, ordered ascending by date.
func (r *FacultyRepository) attachExamDates(ctx context.Context, faculties []models.Faculty) error {
	if len(faculties) == 0 {
		return nil
	}

	sql, args, err := r.sb.
		Select("fe.faculty_id", "e.id", "e.date", "e.available_spots", "e.is_active", "e.created_at", "e.updated_at").
		From("faculty_exam_dates fe").
		Join("exam_dates e ON e.id = fe.exam_date_id").
		OrderBy("e.date ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building faculty exam dates SQL")
		return fmt.Errorf("failed to build faculty exam dates query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying faculty exam dates")
		return fmt.Errorf("error querying faculty exam dates: %w", err)
	}
	defer rows.Close()

	byFaculty := make(map[int64][]models.ExamDate)
	for rows.Next() {
		var facultyID int64
		var e models.ExamDate
		if err := rows.Scan(&facultyID, &e.ID, &e.Date, &e.AvailableSpots, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning faculty exam date row")
			return fmt.Errorf("error scanning faculty exam date row: %w", err)
		}
		byFaculty[facultyID] = append(byFaculty[facultyID], e)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating faculty exam date rows: %w", err)
	}

	for i := range faculties {
		if dates, ok := byFaculty[faculties[i].ID]; ok {
			faculties[i].ExamDates = dates
		}
	}
	return nil
}

// Update updates an existing faculty
func (r *FacultyRepository) Update(ctx context.Context, faculty *models.Faculty) error {
	sql, args, err := r.sb.Update("faculties").
		SetMap(map[string]interface{}{
			"name":       faculty.Name,
			"program":    string(faculty.Program),
			"is_active":  faculty.IsActive,
			"updated_at": squirrel.Expr("NOW()"),
		}).
		Where(squirrel.Eq{"id": faculty.ID}).
		ToSql()

	if err != nil {
		logger.Error().Err(err).Msg("Error building update faculty SQL")
		return fmt.Errorf("failed to build update faculty query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		if isDuplicateKeyError(err) {
			return apperrors.ErrFacultyAlreadyExists
		}
		logger.Error().Err(err).Int64("facultyID", faculty.ID).Msg("Error executing update faculty query")
		return fmt.Errorf("error updating faculty: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrFacultyNotFound
	}

	return nil
}

// Delete removes a faculty and its exam date linkage in one transaction.
// Applications referencing the faculty keep their stored id; the dangling
// reference surfaces as an unavailable assignment on read.
func (r *FacultyRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		linkSQL, linkArgs, err := r.sb.Delete("faculty_exam_dates").
			Where(squirrel.Eq{"faculty_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete faculty linkage query: %w", err)
		}
		if _, err := tx.Exec(ctx, linkSQL, linkArgs...); err != nil {
			logger.Error().Err(err).Int64("facultyID", id).Msg("Error deleting faculty linkage")
			return fmt.Errorf("error deleting faculty linkage: %w", err)
		}

		sql, args, err := r.sb.Delete("faculties").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete faculty query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Int64("facultyID", id).Msg("Error executing delete faculty query")
			return fmt.Errorf("error deleting faculty: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrFacultyNotFound
		}
		return nil
	})
}

// LinkExamDate links a faculty to an exam date. Linking an already linked
// pair is a no-op.
func (r *FacultyRepository) LinkExamDate(ctx context.Context, facultyID, examDateID int64) error {
	sql, args, err := r.sb.Insert("faculty_exam_dates").
		Columns("faculty_id", "exam_date_id").
		Values(facultyID, examDateID).
		Suffix("ON CONFLICT (faculty_id, exam_date_id) DO NOTHING").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building link exam date SQL")
		return fmt.Errorf("failed to build link exam date query: %w", err)
	}

	if _, err := r.db.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyError(err) {
			return apperrors.ErrResourceNotFound
		}
		logger.Error().Err(err).Int64("facultyID", facultyID).Int64("examDateID", examDateID).Msg("Error linking faculty to exam date")
		return fmt.Errorf("error linking faculty to exam date: %w", err)
	}
	return nil
}

// UnlinkExamDate removes a faculty/exam-date link.
func (r *FacultyRepository) UnlinkExamDate(ctx context.Context, facultyID, examDateID int64) error {
	sql, args, err := r.sb.Delete("faculty_exam_dates").
		Where(squirrel.Eq{"faculty_id": facultyID, "exam_date_id": examDateID}).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building unlink exam date SQL")
		return fmt.Errorf("failed to build unlink exam date query: %w", err)
	}

	cmdTag, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Int64("facultyID", facultyID).Int64("examDateID", examDateID).Msg("Error unlinking faculty from exam date")
		return fmt.Errorf("error unlinking faculty from exam date: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrResourceNotFound
	}
	return nil
}

// Exists reports whether a faculty id exists.
func (r *FacultyRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := r.sb.Select("1").
		From("faculties").
		Where(squirrel.Eq{"id": id}).
		Prefix("SELECT EXISTS (").Suffix(")").
		Limit(1).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("failed to build faculty existence query: %w", err)
	}

	var exists bool
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exists)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		logger.Error().Err(err).Int64("facultyID", id).Msg("Error checking faculty existence")
		return false, fmt.Errorf("error checking faculty existence: %w", err)
	}
	return exists, nil
}

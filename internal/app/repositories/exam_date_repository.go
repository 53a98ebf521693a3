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
	"github.com/lilnurik/uniadmit/internal/db"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/lilnurik/uniadmit/internal/pkg/logger"
)

// ExamDateRepository handles exam date database operations. Linkage writes
// always replace the full faculty set inside a transaction; there is no
// incremental add/remove path here.
type ExamDateRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewExamDateRepository creates a new ExamDateRepository
func NewExamDateRepository(db *pgxpool.Pool) *ExamDateRepository {
	return &ExamDateRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// List retrieves exam dates ordered ascending by date. When facultyID is
// non-nil only exam dates linked to that faculty are returned; no linkage
// yields an empty slice.
func (r *ExamDateRepository) List(ctx context.Context, facultyID *int64) ([]models.ExamDate, error) {
	builder := r.sb.Select("e.id", "e.date", "e.available_spots", "e.is_active", "e.created_at", "e.updated_at").
		From("exam_dates e").
		OrderBy("e.date ASC")
	if facultyID != nil {
		builder = builder.
			Join("faculty_exam_dates fe ON fe.exam_date_id = e.id").
			Where(squirrel.Eq{"fe.faculty_id": *facultyID})
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list exam dates SQL")
		return nil, fmt.Errorf("failed to build list exam dates query: %w", err)
	}

	dates, err := r.queryExamDates(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	if err := r.attachFacultyIDs(ctx, dates); err != nil {
		return nil, err
	}
	return dates, nil
}

// ListAvailable retrieves active, future exam dates with spots remaining,
// the view the public form consumes.
func (r *ExamDateRepository) ListAvailable(ctx context.Context, now time.Time) ([]models.ExamDate, error) {
	sql, args, err := r.sb.Select("e.id", "e.date", "e.available_spots", "e.is_active", "e.created_at", "e.updated_at").
		From("exam_dates e").
		Where(squirrel.Eq{"e.is_active": true}).
		Where(squirrel.GtOrEq{"e.date": now}).
		Where(squirrel.Gt{"e.available_spots": 0}).
		OrderBy("e.date ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list available exam dates SQL")
		return nil, fmt.Errorf("failed to build list available exam dates query: %w", err)
	}

	dates, err := r.queryExamDates(ctx, sql, args)
	if err != nil {
		return nil, err
	}
	if err := r.attachFacultyIDs(ctx, dates); err != nil {
		return nil, err
	}
	return dates, nil
}

func (r *ExamDateRepository) queryExamDates(ctx context.Context, sql string, args []interface{}) ([]models.ExamDate, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing exam dates query")
		return nil, fmt.Errorf("error querying exam dates: %w", err)
	}
	defer rows.Close()

	dates := []models.ExamDate{}
	for rows.Next() {
		var e models.ExamDate
		if err := rows.Scan(&e.ID, &e.Date, &e.AvailableSpots, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning exam date row")
			return nil, fmt.Errorf("error scanning exam date row: %w", err)
		}
		e.FacultyIDs = []int64{}
		dates = append(dates, e)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating exam date rows")
		return nil, fmt.Errorf("error iterating exam date rows: %w", err)
	}
	return dates, nil
}

// attachFacultyIDs fills the linked faculty id set of each exam date.
func (r *ExamDateRepository) attachFacultyIDs(ctx context.Context, dates []models.ExamDate) error {
	if len(dates) == 0 {
		return nil
	}

	sql, args, err := r.sb.Select("exam_date_id", "faculty_id").
		From("faculty_exam_dates").
		OrderBy("faculty_id ASC").
		ToSql()
	if err != nil {
		return fmt.Errorf("failed to build linkage query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error querying exam date linkage")
		return fmt.Errorf("error querying exam date linkage: %w", err)
	}
	defer rows.Close()

	byDate := make(map[int64][]int64)
	for rows.Next() {
		var examDateID, facultyID int64
		if err := rows.Scan(&examDateID, &facultyID); err != nil {
			return fmt.Errorf("error scanning linkage row: %w", err)
		}
		byDate[examDateID] = append(byDate[examDateID], facultyID)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error iterating linkage rows: %w", err)
	}

	for i := range dates {
		if ids, ok := byDate[dates[i].ID]; ok {
			dates[i].FacultyIDs = ids
		}
	}
	return nil
}

// GetByID retrieves an exam date with its linked faculty ids
func (r *ExamDateRepository) GetByID(ctx context.Context, id int64) (*models.ExamDate, error) {
	sql, args, err := r.sb.Select("id", "date", "available_spots", "is_active", "created_at", "updated_at").
		From("exam_dates").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building get exam date SQL")
		return nil, fmt.Errorf("failed to build get exam date query: %w", err)
	}

	e := &models.ExamDate{FacultyIDs: []int64{}}
	err = r.db.QueryRow(ctx, sql, args...).Scan(&e.ID, &e.Date, &e.AvailableSpots, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrExamDateNotFound
		}
		logger.Error().Err(err).Int64("examDateID", id).Msg("Error scanning exam date row")
		return nil, fmt.Errorf("error getting exam date by ID: %w", err)
	}

	linkSQL, linkArgs, err := r.sb.Select("faculty_id").
		From("faculty_exam_dates").
		Where(squirrel.Eq{"exam_date_id": id}).
		OrderBy("faculty_id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build linkage query: %w", err)
	}

	rows, err := r.db.Query(ctx, linkSQL, linkArgs...)
	if err != nil {
		return nil, fmt.Errorf("error querying exam date linkage: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var facultyID int64
		if err := rows.Scan(&facultyID); err != nil {
			return nil, fmt.Errorf("error scanning linkage row: %w", err)
		}
		e.FacultyIDs = append(e.FacultyIDs, facultyID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating linkage rows: %w", err)
	}

	return e, nil
}

// Create inserts an exam date and its faculty linkage in one transaction.
func (r *ExamDateRepository) Create(ctx context.Context, examDate *models.ExamDate) (int64, error) {
	var id int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		sql, args, err := r.sb.Insert("exam_dates").
			Columns("date", "available_spots", "is_active").
			Values(examDate.Date, examDate.AvailableSpots, examDate.IsActive).
			Suffix("RETURNING id").
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build create exam date query: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			logger.Error().Err(err).Msg("Error executing create exam date query")
			return fmt.Errorf("error creating exam date: %w", err)
		}

		return r.insertLinkage(ctx, tx, id, examDate.FacultyIDs)
	})
	if err != nil {
		return 0, err
	}
	return id, nil
}

// UpdateFields is the set of columns changed by a partial update. Nil
// pointers leave the stored value untouched; FacultyIDs always replaces the
// full linkage set.
type UpdateFields struct {
	Date           *time.Time
	AvailableSpots *int
	IsActive       *bool
	FacultyIDs     []int64
}

// Update applies a partial update and replaces the linkage set in one
// transaction.
func (r *ExamDateRepository) Update(ctx context.Context, id int64, fields UpdateFields) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		set := map[string]interface{}{
			"updated_at": squirrel.Expr("NOW()"),
		}
		if fields.Date != nil {
			set["date"] = *fields.Date
		}
		if fields.AvailableSpots != nil {
			set["available_spots"] = *fields.AvailableSpots
		}
		if fields.IsActive != nil {
			set["is_active"] = *fields.IsActive
		}

		sql, args, err := r.sb.Update("exam_dates").
			SetMap(set).
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build update exam date query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Int64("examDateID", id).Msg("Error executing update exam date query")
			return fmt.Errorf("error updating exam date: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrExamDateNotFound
		}

		delSQL, delArgs, err := r.sb.Delete("faculty_exam_dates").
			Where(squirrel.Eq{"exam_date_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete linkage query: %w", err)
		}
		if _, err := tx.Exec(ctx, delSQL, delArgs...); err != nil {
			logger.Error().Err(err).Int64("examDateID", id).Msg("Error replacing exam date linkage")
			return fmt.Errorf("error replacing exam date linkage: %w", err)
		}

		return r.insertLinkage(ctx, tx, id, fields.FacultyIDs)
	})
}

func (r *ExamDateRepository) insertLinkage(ctx context.Context, tx pgx.Tx, examDateID int64, facultyIDs []int64) error {
	if len(facultyIDs) == 0 {
		return nil
	}

	builder := r.sb.Insert("faculty_exam_dates").Columns("faculty_id", "exam_date_id")
	for _, facultyID := range facultyIDs {
		builder = builder.Values(facultyID, examDateID)
	}

	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("failed to build insert linkage query: %w", err)
	}

	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		if isForeignKeyError(err) {
			return apperrors.ErrFacultyNotFound
		}
		logger.Error().Err(err).Int64("examDateID", examDateID).Msg("Error inserting exam date linkage")
		return fmt.Errorf("error inserting exam date linkage: %w", err)
	}
	return nil
}

// Delete removes an exam date and its linkage in one transaction.
// Applications referencing the exam date keep their stored id; the dangling
// reference surfaces as an unavailable assignment on read.
func (r *ExamDateRepository) Delete(ctx context.Context, id int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		linkSQL, linkArgs, err := r.sb.Delete("faculty_exam_dates").
			Where(squirrel.Eq{"exam_date_id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete linkage query: %w", err)
		}
		if _, err := tx.Exec(ctx, linkSQL, linkArgs...); err != nil {
			logger.Error().Err(err).Int64("examDateID", id).Msg("Error deleting exam date linkage")
			return fmt.Errorf("error deleting exam date linkage: %w", err)
		}

		sql, args, err := r.sb.Delete("exam_dates").
			Where(squirrel.Eq{"id": id}).
			ToSql()
		if err != nil {
			return fmt.Errorf("failed to build delete exam date query: %w", err)
		}

		cmdTag, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			logger.Error().Err(err).Int64("examDateID", id).Msg("Error executing delete exam date query")
			return fmt.Errorf("error deleting exam date: %w", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return apperrors.ErrExamDateNotFound
		}
		return nil
	})
}

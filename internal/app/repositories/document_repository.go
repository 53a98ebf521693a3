package repositories

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lilnurik/uniadmit/internal/app/models"
	"github.com/lilnurik/uniadmit/internal/pkg/apperrors"
	"github.com/lilnurik/uniadmit/internal/pkg/logger"
)

// DocumentRepository handles applicant document records
type DocumentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDocumentRepository creates a new DocumentRepository
func NewDocumentRepository(db *pgxpool.Pool) *DocumentRepository {
	return &DocumentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a document record
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) (int64, error) {
	sql, args, err := r.sb.Insert("documents").
		Columns("application_id", "document_type", "file_path", "original_name").
		Values(doc.ApplicationID, string(doc.DocumentType), doc.FilePath, doc.OriginalName).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building create document SQL")
		return 0, fmt.Errorf("failed to build create document query: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		if isForeignKeyError(err) {
			return 0, apperrors.ErrApplicationNotFound
		}
		logger.Error().Err(err).Msg("Error executing create document query")
		return 0, fmt.Errorf("error creating document: %w", err)
	}
	return id, nil
}

// ListByApplication retrieves documents attached to an application
func (r *DocumentRepository) ListByApplication(ctx context.Context, applicationID int64) ([]models.Document, error) {
	sql, args, err := r.sb.Select("id", "application_id", "document_type", "file_path", "original_name", "uploaded_at").
		From("documents").
		Where(squirrel.Eq{"application_id": applicationID}).
		OrderBy("uploaded_at ASC").
		ToSql()
	if err != nil {
		logger.Error().Err(err).Msg("Error building list documents SQL")
		return nil, fmt.Errorf("failed to build list documents query: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		logger.Error().Err(err).Msg("Error executing list documents query")
		return nil, fmt.Errorf("error querying documents: %w", err)
	}
	defer rows.Close()

	documents := []models.Document{}
	for rows.Next() {
		var d models.Document
		var docType string
		var originalName *string
		if err := rows.Scan(&d.ID, &d.ApplicationID, &docType, &d.FilePath, &originalName, &d.UploadedAt); err != nil {
			logger.Error().Err(err).Msg("Error scanning document row")
			return nil, fmt.Errorf("error scanning document row: %w", err)
		}
		d.DocumentType = models.DocumentType(docType)
		if originalName != nil {
			d.OriginalName = *originalName
		}
		documents = append(documents, d)
	}
	if err := rows.Err(); err != nil {
		logger.Error().Err(err).Msg("Error iterating document rows")
		return nil, fmt.Errorf("error iterating document rows: %w", err)
	}

	return documents, nil
}

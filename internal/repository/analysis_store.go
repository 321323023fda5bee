package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/homevest/api/internal/database"
	"github.com/homevest/api/internal/models"
	"github.com/jackc/pgx/v5"
)

// AnalysisStore defines the interface for persisted analysis access.
type AnalysisStore interface {
	// Save inserts a completed analysis.
	Save(ctx context.Context, record *models.AnalysisRecord) error

	// GetByID fetches one analysis with its full result document.
	// Returns nil, nil if no analysis with that ID exists (not an error).
	GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error)

	// List returns summaries of the most recent analyses, newest first.
	// An empty zipCode matches all zip codes. Returns an empty slice when
	// nothing matches (not an error).
	List(ctx context.Context, zipCode string, limit int) ([]models.AnalysisSummary, error)

	// Delete removes an analysis. Returns false, nil when no analysis with
	// that ID exists.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

// analysisStore is the concrete pgx-backed implementation of AnalysisStore.
type analysisStore struct {
	db *database.Database
}

// NewAnalysisStore creates a new instance of AnalysisStore.
func NewAnalysisStore(db *database.Database) AnalysisStore {
	return &analysisStore{
		db: db,
	}
}

// Save inserts the record. The property, profile and result documents go
// into JSONB columns; pgx encodes them with encoding/json.
func (s *analysisStore) Save(ctx context.Context, record *models.AnalysisRecord) error {
	query := `
		INSERT INTO analyses (
			id,
			profile_kind,
			zip_code,
			price,
			score,
			level,
			property,
			profile,
			result,
			created_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`

	_, err := s.db.Pool.Exec(ctx, query,
		record.ID,
		string(record.ProfileKind),
		record.ZipCode,
		record.Price,
		record.Score,
		record.Level,
		record.Property,
		record.Profile,
		record.Result,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save analysis %s: %w", record.ID, err)
	}
	return nil
}

func (s *analysisStore) GetByID(ctx context.Context, id uuid.UUID) (*models.AnalysisRecord, error) {
	query := `
		SELECT
			id,
			profile_kind,
			zip_code,
			price,
			score,
			level,
			property,
			profile,
			result,
			created_at
		FROM analyses
		WHERE id = $1
	`

	var record models.AnalysisRecord
	var kind string

	err := s.db.Pool.QueryRow(ctx, query, id).Scan(
		&record.ID,
		&kind,
		&record.ZipCode,
		&record.Price,
		&record.Score,
		&record.Level,
		&record.Property,
		&record.Profile,
		&record.Result,
		&record.CreatedAt,
	)

	// No rows is not an error at the repository level
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query analysis %s: %w", id, err)
	}

	record.ProfileKind = models.ProfileKind(kind)
	return &record, nil
}

// Maximum number of analyses a single list query returns
const maxListResults = 50

func (s *analysisStore) List(ctx context.Context, zipCode string, limit int) ([]models.AnalysisSummary, error) {
	if limit <= 0 || limit > maxListResults {
		limit = maxListResults
	}

	query := `
		SELECT
			id,
			profile_kind,
			zip_code,
			price,
			score,
			level,
			created_at
		FROM analyses
		WHERE ($1 = '' OR zip_code = $1)
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := s.db.Pool.Query(ctx, query, zipCode, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses (zip=%q, limit=%d): %w", zipCode, limit, err)
	}
	defer rows.Close()

	var results []models.AnalysisSummary

	for rows.Next() {
		var summary models.AnalysisSummary
		var kind string

		err := rows.Scan(
			&summary.ID,
			&kind,
			&summary.ZipCode,
			&summary.Price,
			&summary.Score,
			&summary.Level,
			&summary.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis row: %w", err)
		}

		summary.ProfileKind = models.ProfileKind(kind)
		results = append(results, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating analysis rows: %w", err)
	}

	// Return empty slice if nothing matched (not an error)
	if results == nil {
		results = []models.AnalysisSummary{}
	}

	return results, nil
}

func (s *analysisStore) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := s.db.Pool.Exec(ctx, `DELETE FROM analyses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis %s: %w", id, err)
	}
	return tag.RowsAffected() > 0, nil
}

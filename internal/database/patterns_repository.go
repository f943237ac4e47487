package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jonesrussell/tipline/internal/domain"
)

// PatternsRepository handles database operations for scam patterns.
type PatternsRepository struct {
	db *sqlx.DB
}

// NewPatternsRepository creates a new patterns repository.
func NewPatternsRepository(db *sqlx.DB) *PatternsRepository {
	return &PatternsRepository{db: db}
}

// Create inserts a new scam pattern.
func (r *PatternsRepository) Create(ctx context.Context, pattern *domain.ScamPattern) error {
	if pattern.ID == "" {
		pattern.ID = uuid.NewString()
	}

	query := `
		INSERT INTO scam_patterns (id, name, pattern_type, keywords, confidence_threshold, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		pattern.ID,
		pattern.Name,
		pattern.PatternType,
		pq.Array(pattern.PatternData.Keywords),
		pattern.ConfidenceThreshold,
		pattern.IsActive,
	).Scan(&pattern.CreatedAt, &pattern.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create pattern: %w", err)
	}

	return nil
}

// GetByID retrieves a pattern by its ID.
func (r *PatternsRepository) GetByID(ctx context.Context, id string) (*domain.ScamPattern, error) {
	var pattern domain.ScamPattern
	query := `
		SELECT id, name, pattern_type, keywords, confidence_threshold,
		       times_detected, is_active, created_at, updated_at
		FROM scam_patterns
		WHERE id = $1
	`

	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&pattern.ID,
		&pattern.Name,
		&pattern.PatternType,
		pq.Array(&pattern.PatternData.Keywords),
		&pattern.ConfidenceThreshold,
		&pattern.TimesDetected,
		&pattern.IsActive,
		&pattern.CreatedAt,
		&pattern.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("pattern not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get pattern: %w", err)
	}

	return &pattern, nil
}

// List retrieves all patterns, optionally filtered by active state.
func (r *PatternsRepository) List(ctx context.Context, activeOnly bool) ([]*domain.ScamPattern, error) {
	query := `
		SELECT id, name, pattern_type, keywords, confidence_threshold,
		       times_detected, is_active, created_at, updated_at
		FROM scam_patterns
	`
	if activeOnly {
		query += ` WHERE is_active = true`
	}
	query += ` ORDER BY created_at`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patterns: %w", err)
	}
	defer rows.Close()

	var patterns []*domain.ScamPattern
	for rows.Next() {
		var pattern domain.ScamPattern
		if scanErr := rows.Scan(
			&pattern.ID,
			&pattern.Name,
			&pattern.PatternType,
			pq.Array(&pattern.PatternData.Keywords),
			&pattern.ConfidenceThreshold,
			&pattern.TimesDetected,
			&pattern.IsActive,
			&pattern.CreatedAt,
			&pattern.UpdatedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan pattern: %w", scanErr)
		}
		patterns = append(patterns, &pattern)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate patterns: %w", err)
	}

	return patterns, nil
}

// Update modifies an existing pattern's rule fields.
func (r *PatternsRepository) Update(ctx context.Context, pattern *domain.ScamPattern) error {
	query := `
		UPDATE scam_patterns
		SET name = $1, pattern_type = $2, keywords = $3,
		    confidence_threshold = $4, is_active = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING updated_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		pattern.Name,
		pattern.PatternType,
		pq.Array(pattern.PatternData.Keywords),
		pattern.ConfidenceThreshold,
		pattern.IsActive,
		pattern.ID,
	).Scan(&pattern.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("pattern not found: %s", pattern.ID)
		}
		return fmt.Errorf("failed to update pattern: %w", err)
	}

	return nil
}

// Deactivate marks a pattern inactive. Patterns are never deleted so the
// audit trail of past detections stays intact.
func (r *PatternsRepository) Deactivate(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE scam_patterns SET is_active = false, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to deactivate pattern: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check deactivate result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("pattern not found: %s", id)
	}

	return nil
}

// IncrementTimesDetected bumps a pattern's detection counter.
func (r *PatternsRepository) IncrementTimesDetected(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE scam_patterns SET times_detected = times_detected + 1, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to increment detection count: %w", err)
	}
	return nil
}

package database

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/jonesrussell/tipline/internal/domain"
)

// HistoryRepository handles the verification audit trail.
type HistoryRepository struct {
	db *sqlx.DB
}

// NewHistoryRepository creates a new history repository.
func NewHistoryRepository(db *sqlx.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// VerificationStats summarizes the verification history.
type VerificationStats struct {
	TotalVerified       int            `json:"total_verified"`
	AvgOverallScore     float64        `json:"avg_overall_score"`
	DuplicateCount      int            `json:"duplicate_count"`
	AvgProcessingTimeMs float64        `json:"avg_processing_time_ms"`
	BucketCounts        map[string]int `json:"bucket_counts"`
}

// Create inserts an audit record for one verification.
func (r *HistoryRepository) Create(ctx context.Context, record *domain.VerificationRecord) error {
	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO verification_history (
			id, tip_id, case_id, tipster_id, overall_score, priority_bucket,
			is_duplicate, hoax_indicators, engine_version, processing_time_ms
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING verified_at
	`

	err := r.db.QueryRowContext(
		ctx,
		query,
		record.ID,
		record.TipID,
		record.CaseID,
		record.TipsterID,
		record.OverallScore,
		record.PriorityBucket,
		record.IsDuplicate,
		pq.Array(record.HoaxIndicators),
		record.EngineVersion,
		record.ProcessingTimeMs,
	).Scan(&record.VerifiedAt)

	if err != nil {
		return fmt.Errorf("failed to create verification record: %w", err)
	}

	return nil
}

// ListByCase retrieves the audit trail for a case, newest first.
func (r *HistoryRepository) ListByCase(ctx context.Context, caseID string, limit int) ([]*domain.VerificationRecord, error) {
	query := `
		SELECT id, tip_id, case_id, COALESCE(tipster_id, '') AS tipster_id,
		       overall_score, priority_bucket, is_duplicate, hoax_indicators,
		       engine_version, processing_time_ms, verified_at
		FROM verification_history
		WHERE case_id = $1
		ORDER BY verified_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, caseID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list verification history: %w", err)
	}
	defer rows.Close()

	var records []*domain.VerificationRecord
	for rows.Next() {
		var record domain.VerificationRecord
		if scanErr := rows.Scan(
			&record.ID,
			&record.TipID,
			&record.CaseID,
			&record.TipsterID,
			&record.OverallScore,
			&record.PriorityBucket,
			&record.IsDuplicate,
			pq.Array(&record.HoaxIndicators),
			&record.EngineVersion,
			&record.ProcessingTimeMs,
			&record.VerifiedAt,
		); scanErr != nil {
			return nil, fmt.Errorf("failed to scan verification record: %w", scanErr)
		}
		records = append(records, &record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate verification history: %w", err)
	}

	return records, nil
}

// Stats aggregates the verification history.
func (r *HistoryRepository) Stats(ctx context.Context) (*VerificationStats, error) {
	stats := &VerificationStats{BucketCounts: make(map[string]int)}

	err := r.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(overall_score), 0),
		       COUNT(*) FILTER (WHERE is_duplicate),
		       COALESCE(AVG(processing_time_ms), 0)
		FROM verification_history
	`).Scan(&stats.TotalVerified, &stats.AvgOverallScore, &stats.DuplicateCount, &stats.AvgProcessingTimeMs)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate verification stats: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT priority_bucket, COUNT(*)
		FROM verification_history
		GROUP BY priority_bucket
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to count buckets: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var bucket string
		var count int
		if scanErr := rows.Scan(&bucket, &count); scanErr != nil {
			return nil, fmt.Errorf("failed to scan bucket count: %w", scanErr)
		}
		stats.BucketCounts[bucket] = count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate bucket counts: %w", err)
	}

	return stats, nil
}

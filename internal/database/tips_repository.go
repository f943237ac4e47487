package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/tipline/internal/domain"
)

// TipsRepository stores the tip content snapshots the duplicate detector
// compares against.
type TipsRepository struct {
	db *sqlx.DB
}

// NewTipsRepository creates a new tips repository.
func NewTipsRepository(db *sqlx.DB) *TipsRepository {
	return &TipsRepository{db: db}
}

// ListRecentByCase retrieves the most recent tips for a case, newest first.
func (r *TipsRepository) ListRecentByCase(ctx context.Context, caseID string, limit int) ([]domain.ExistingTip, error) {
	var tips []domain.ExistingTip
	query := `
		SELECT id, case_id, content, status, created_at
		FROM tips
		WHERE case_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	if err := r.db.SelectContext(ctx, &tips, query, caseID, limit); err != nil {
		return nil, fmt.Errorf("failed to list recent tips: %w", err)
	}

	return tips, nil
}

// Record stores a tip snapshot so future submissions can be checked against
// it. Re-verifying an already stored tip is a no-op.
func (r *TipsRepository) Record(ctx context.Context, tip *domain.TipVerificationInput, bucket domain.PriorityBucket) error {
	query := `
		INSERT INTO tips (id, case_id, content, status)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, tip.TipID, tip.CaseID, tip.Content, string(bucket)); err != nil {
		return fmt.Errorf("failed to record tip: %w", err)
	}

	return nil
}

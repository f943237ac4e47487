package database

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/tipline/internal/domain"
)

// LeadsRepository reads investigator-curated leads for cross-reference
// matching. Leads are owned by the case-management collaborator; this
// repository never writes them.
type LeadsRepository struct {
	db *sqlx.DB
}

// NewLeadsRepository creates a new leads repository.
func NewLeadsRepository(db *sqlx.DB) *LeadsRepository {
	return &LeadsRepository{db: db}
}

// ListByCase retrieves all leads for a case in creation order.
func (r *LeadsRepository) ListByCase(ctx context.Context, caseID string) ([]domain.ExistingLead, error) {
	var leads []domain.ExistingLead
	query := `
		SELECT id, case_id, latitude, longitude,
		       COALESCE(location_text, '') AS location_text, status, created_at
		FROM leads
		WHERE case_id = $1
		ORDER BY created_at
	`

	if err := r.db.SelectContext(ctx, &leads, query, caseID); err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}

	return leads, nil
}

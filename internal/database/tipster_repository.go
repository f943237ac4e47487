package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/jonesrussell/tipline/internal/domain"
)

// Default neutral reliability score for a first-time tipster (matches the
// engine's unknown-tipster default).
const defaultReliabilityScore = 50

// Reliability tier cutoffs applied after each recorded outcome.
const (
	tierHighFloor     = 75
	tierModerateFloor = 40
)

// Outcome score adjustments. Reliability drifts with confirmed outcomes,
// bounded to [0, 100] in SQL.
const (
	verifiedScoreDelta   = 5
	partialScoreDelta    = 2
	falseScoreDelta      = -8
	spamScoreDelta       = -15
	resolutionScoreDelta = 10
)

// TipsterRepository handles database operations for tipster profiles.
type TipsterRepository struct {
	db *sqlx.DB
}

// NewTipsterRepository creates a new tipster repository.
func NewTipsterRepository(db *sqlx.DB) *TipsterRepository {
	return &TipsterRepository{db: db}
}

const tipsterColumns = `
	id, is_blocked, COALESCE(blocked_reason, '') AS blocked_reason,
	reliability_tier, reliability_score, total_tips, verified_tips,
	partially_verified_tips, false_tips, spam_tips, tips_leading_to_resolution,
	provides_photos, provides_detailed_info, consistent_location_reporting,
	last_tip_at, created_at, updated_at
`

// Get retrieves a tipster profile by ID.
func (r *TipsterRepository) Get(ctx context.Context, id string) (*domain.TipsterProfile, error) {
	var profile domain.TipsterProfile
	query := `SELECT ` + tipsterColumns + ` FROM tipster_profiles WHERE id = $1`

	err := r.db.GetContext(ctx, &profile, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("tipster not found: %s", id)
		}
		return nil, fmt.Errorf("failed to get tipster: %w", err)
	}

	return &profile, nil
}

// Create inserts a fresh neutral profile.
func (r *TipsterRepository) Create(ctx context.Context, profile *domain.TipsterProfile) error {
	query := `
		INSERT INTO tipster_profiles (id, reliability_tier, reliability_score)
		VALUES ($1, $2, $3)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowContext(ctx, query,
		profile.ID, profile.ReliabilityTier, profile.ReliabilityScore,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create tipster: %w", err)
	}

	return nil
}

// GetOrCreate retrieves a profile or creates a neutral one if the tipster is
// new.
func (r *TipsterRepository) GetOrCreate(ctx context.Context, id string) (*domain.TipsterProfile, error) {
	profile, err := r.Get(ctx, id)
	if err == nil {
		return profile, nil
	}

	fresh := &domain.TipsterProfile{
		ID:               id,
		ReliabilityTier:  domain.ReliabilityTierModerate,
		ReliabilityScore: defaultReliabilityScore,
	}

	if createErr := r.Create(ctx, fresh); createErr != nil {
		// Another request may have created it concurrently
		existing, getErr := r.Get(ctx, id)
		if getErr == nil {
			return existing, nil
		}
		return nil, fmt.Errorf("failed to create or get tipster: %w", createErr)
	}

	return fresh, nil
}

// RecordOutcome applies a human-reviewed tip outcome to the tipster's
// counters and reliability score. This is the collaborator-side bookkeeping
// the scoring engine itself never performs.
func (r *TipsterRepository) RecordOutcome(ctx context.Context, id, outcome string) (*domain.TipsterProfile, error) {
	column, delta, err := outcomeAdjustment(outcome)
	if err != nil {
		return nil, err
	}

	query := fmt.Sprintf(`
		UPDATE tipster_profiles
		SET %s = %s + 1,
		    total_tips = total_tips + 1,
		    reliability_score = LEAST(100, GREATEST(0, reliability_score + $1)),
		    last_tip_at = NOW(),
		    updated_at = NOW()
		WHERE id = $2
	`, column, column)

	result, err := r.db.ExecContext(ctx, query, delta, id)
	if err != nil {
		return nil, fmt.Errorf("failed to record outcome: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to check outcome result: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("tipster not found: %s", id)
	}

	if err := r.refreshTier(ctx, id); err != nil {
		return nil, err
	}

	return r.Get(ctx, id)
}

// outcomeAdjustment maps an outcome to the counter column it increments and
// the reliability score delta it applies.
func outcomeAdjustment(outcome string) (string, int, error) {
	switch outcome {
	case domain.TipOutcomeVerified:
		return "verified_tips", verifiedScoreDelta, nil
	case domain.TipOutcomePartiallyVerified:
		return "partially_verified_tips", partialScoreDelta, nil
	case domain.TipOutcomeFalse:
		return "false_tips", falseScoreDelta, nil
	case domain.TipOutcomeSpam:
		return "spam_tips", spamScoreDelta, nil
	case domain.TipOutcomeLedToResolution:
		return "tips_leading_to_resolution", resolutionScoreDelta, nil
	default:
		return "", 0, fmt.Errorf("unknown tip outcome: %s", outcome)
	}
}

// refreshTier recomputes the coarse reliability tier from the score. The
// verified_source tier is assigned manually by investigators and never
// downgraded here.
func (r *TipsterRepository) refreshTier(ctx context.Context, id string) error {
	query := `
		UPDATE tipster_profiles
		SET reliability_tier = CASE
			WHEN reliability_tier = $1 THEN reliability_tier
			WHEN reliability_score >= $2 THEN $3
			WHEN reliability_score >= $4 THEN $5
			ELSE $6
		END
		WHERE id = $7
	`

	_, err := r.db.ExecContext(ctx, query,
		domain.ReliabilityTierVerifiedSource,
		tierHighFloor, domain.ReliabilityTierHigh,
		tierModerateFloor, domain.ReliabilityTierModerate,
		domain.ReliabilityTierLow,
		id,
	)
	if err != nil {
		return fmt.Errorf("failed to refresh reliability tier: %w", err)
	}
	return nil
}

// SetBlocked blocks or unblocks a tipster.
func (r *TipsterRepository) SetBlocked(ctx context.Context, id string, blocked bool, reason string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE tipster_profiles
		SET is_blocked = $1, blocked_reason = $2, updated_at = NOW()
		WHERE id = $3
	`, blocked, reason, id)
	if err != nil {
		return fmt.Errorf("failed to update block state: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check block result: %w", err)
	}
	if rows == 0 {
		return fmt.Errorf("tipster not found: %s", id)
	}

	return nil
}

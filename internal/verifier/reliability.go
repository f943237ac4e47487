package verifier

import (
	"github.com/jonesrussell/tipline/internal/domain"
)

const (
	// Unknown or anonymous tipsters score neutral.
	unknownTipsterScore = 50.0

	// Blocked tipsters score zero regardless of history.
	blockedTipsterScore = 0.0

	qualityFlagBonus   = 5.0
	spamTipPenaltyEach = 5.0
)

// TipsterReliabilityScorer converts a tipster's historical track record into
// a working reliability score. The stored score on the profile is the
// starting point, not a trusted cache.
type TipsterReliabilityScorer struct {
	logger Logger
}

// NewTipsterReliabilityScorer creates a new reliability scorer
func NewTipsterReliabilityScorer(logger Logger) *TipsterReliabilityScorer {
	return &TipsterReliabilityScorer{logger: logger}
}

// Score computes the working reliability score for a tipster. A nil profile
// means anonymous or first-time; blocked overrides everything else.
func (s *TipsterReliabilityScorer) Score(profile *domain.TipsterProfile) float64 {
	if profile == nil {
		return unknownTipsterScore
	}
	if profile.IsBlocked {
		s.logger.Debug("Blocked tipster", "tipster_id", profile.ID, "reason", profile.BlockedReason)
		return blockedTipsterScore
	}

	score := profile.ReliabilityScore
	if profile.ProvidesPhotos {
		score += qualityFlagBonus
	}
	if profile.ProvidesDetailedInfo {
		score += qualityFlagBonus
	}
	if profile.ConsistentLocationReporting {
		score += qualityFlagBonus
	}
	score -= spamTipPenaltyEach * float64(profile.SpamTips)

	return clampScore(score)
}

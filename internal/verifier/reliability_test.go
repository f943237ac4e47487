package verifier

import (
	"testing"

	"github.com/jonesrussell/tipline/internal/domain"
)

func TestTipsterReliability_UnknownTipster(t *testing.T) {
	scorer := NewTipsterReliabilityScorer(&mockLogger{})

	if score := scorer.Score(nil); score != 50 {
		t.Errorf("expected exactly 50 for an unknown tipster, got %v", score)
	}
}

func TestTipsterReliability_BlockedOverridesEverything(t *testing.T) {
	scorer := NewTipsterReliabilityScorer(&mockLogger{})

	profile := &domain.TipsterProfile{
		ID:                          "tipster-1",
		IsBlocked:                   true,
		BlockedReason:               "repeated hoaxes",
		ReliabilityTier:             domain.ReliabilityTierVerifiedSource,
		ReliabilityScore:            95,
		VerifiedTips:                40,
		TipsLeadingToResolution:     3,
		ProvidesPhotos:              true,
		ProvidesDetailedInfo:        true,
		ConsistentLocationReporting: true,
	}

	if score := scorer.Score(profile); score != 0 {
		t.Errorf("expected 0 for a blocked tipster regardless of history, got %v", score)
	}
}

func TestTipsterReliability_QualityBonuses(t *testing.T) {
	scorer := NewTipsterReliabilityScorer(&mockLogger{})

	base := &domain.TipsterProfile{ID: "tipster-1", ReliabilityScore: 60}
	flagged := &domain.TipsterProfile{
		ID:                          "tipster-1",
		ReliabilityScore:            60,
		ProvidesPhotos:              true,
		ProvidesDetailedInfo:        true,
		ConsistentLocationReporting: true,
	}

	baseScore := scorer.Score(base)
	flaggedScore := scorer.Score(flagged)

	if flaggedScore-baseScore != 15 {
		t.Errorf("expected all three quality flags to add exactly 15, got %v", flaggedScore-baseScore)
	}
}

func TestTipsterReliability_SpamPenalty(t *testing.T) {
	scorer := NewTipsterReliabilityScorer(&mockLogger{})

	clean := &domain.TipsterProfile{ID: "tipster-1", ReliabilityScore: 60}
	spammy := &domain.TipsterProfile{ID: "tipster-1", ReliabilityScore: 60, SpamTips: 3}

	cleanScore := scorer.Score(clean)
	spammyScore := scorer.Score(spammy)

	if cleanScore-spammyScore != 15 {
		t.Errorf("expected three spam tips to subtract exactly 15, got %v", cleanScore-spammyScore)
	}
}

func TestTipsterReliability_AlwaysInRange(t *testing.T) {
	scorer := NewTipsterReliabilityScorer(&mockLogger{})

	profiles := []*domain.TipsterProfile{
		{ID: "a", ReliabilityScore: 98, ProvidesPhotos: true, ProvidesDetailedInfo: true, ConsistentLocationReporting: true},
		{ID: "b", ReliabilityScore: 5, SpamTips: 20},
		{ID: "c", ReliabilityScore: 0},
		// Counter invariant violated; must not panic or leave range
		{ID: "d", ReliabilityScore: 30, TotalTips: 1, SpamTips: 9, FalseTips: 8},
	}

	for _, p := range profiles {
		score := scorer.Score(p)
		if score < 0 || score > 100 {
			t.Errorf("profile %s: score out of [0, 100]: %v", p.ID, score)
		}
	}
}

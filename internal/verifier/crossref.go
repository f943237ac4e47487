package verifier

import (
	"github.com/jonesrussell/tipline/internal/domain"
)

const (
	// Neutral score when nothing matches
	crossRefBaseline = 50.0

	// Spatial matching
	defaultProximityRadiusKm = 0.3
	spatialMatchBonusBase    = 10.0
	spatialMatchBonusScale   = 5.0

	// Textual matching
	defaultCrossRefSimilarity = 0.5
	textMatchBonusBase        = 5.0
	textMatchBonusScale       = 10.0
)

// CrossRefResult is the outcome of comparing one tip against the case's
// existing leads.
type CrossRefResult struct {
	Score                 float64  `json:"score"`
	MatchingLeadIDs       []string `json:"matching_lead_ids"`
	MatchesKnownLocations bool     `json:"matches_known_locations"`
}

// CrossReferenceMatcher compares a tip against investigator-curated leads
// using spatial proximity and location-text similarity.
type CrossReferenceMatcher struct {
	logger              Logger
	proximityRadiusKm   float64
	similarityThreshold float64
}

// CrossReferenceConfig holds the matcher's tunable thresholds.
type CrossReferenceConfig struct {
	ProximityRadiusKm   float64
	SimilarityThreshold float64
}

// NewCrossReferenceMatcher creates a new cross-reference matcher.
// Zero-valued config fields fall back to defaults.
func NewCrossReferenceMatcher(logger Logger, cfg CrossReferenceConfig) *CrossReferenceMatcher {
	if cfg.ProximityRadiusKm <= 0 {
		cfg.ProximityRadiusKm = defaultProximityRadiusKm
	}
	if cfg.SimilarityThreshold <= 0 {
		cfg.SimilarityThreshold = defaultCrossRefSimilarity
	}
	return &CrossReferenceMatcher{
		logger:              logger,
		proximityRadiusKm:   cfg.ProximityRadiusKm,
		similarityThreshold: cfg.SimilarityThreshold,
	}
}

// Match compares the tip against each lead. Each matching lead raises the
// score above the neutral baseline; closer or more similar matches raise it
// further. Matching lead IDs preserve lead iteration order without
// duplicates.
func (m *CrossReferenceMatcher) Match(tip *domain.TipVerificationInput, leads []domain.ExistingLead) *CrossRefResult {
	result := &CrossRefResult{
		Score:           crossRefBaseline,
		MatchingLeadIDs: []string{},
	}

	hasLocationText := len(Tokenize(tip.Location)) > 0
	matched := make(map[string]bool, len(leads))

	for i := range leads {
		lead := &leads[i]

		if tip.HasCoordinates() && lead.HasCoordinates() {
			d := HaversineKm(*tip.Latitude, *tip.Longitude, *lead.Latitude, *lead.Longitude)
			if d <= m.proximityRadiusKm {
				closeness := 1 - d/m.proximityRadiusKm
				result.Score += spatialMatchBonusBase + spatialMatchBonusScale*closeness
				m.addMatch(result, matched, lead.ID)
				m.logger.Debug("Spatial lead match",
					"tip_id", tip.TipID,
					"lead_id", lead.ID,
					"distance_km", d,
				)
				continue
			}
		}

		if lead.LocationText != "" && hasLocationText {
			sim := TokenSetJaccard(tip.Location, lead.LocationText)
			if sim >= m.similarityThreshold {
				result.Score += textMatchBonusBase + textMatchBonusScale*sim
				result.MatchesKnownLocations = true
				m.addMatch(result, matched, lead.ID)
				m.logger.Debug("Textual lead match",
					"tip_id", tip.TipID,
					"lead_id", lead.ID,
					"similarity", sim,
				)
			}
		}
	}

	result.Score = clampScore(result.Score)
	return result
}

func (m *CrossReferenceMatcher) addMatch(result *CrossRefResult, matched map[string]bool, leadID string) {
	if matched[leadID] {
		return
	}
	matched[leadID] = true
	result.MatchingLeadIDs = append(result.MatchingLeadIDs, leadID)
}

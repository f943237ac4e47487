package verifier

import (
	"github.com/jonesrussell/tipline/internal/domain"
)

// defaultDuplicateSimilarity only flags near-exact paraphrases or copies.
// A false positive here suppresses a unique lead.
const defaultDuplicateSimilarity = 0.85

// DuplicateResult lists the recent tips the new tip duplicates.
type DuplicateResult struct {
	IsDuplicate  bool     `json:"is_duplicate"`
	DuplicateIDs []string `json:"duplicate_ids"`
}

// DuplicateDetector compares a new tip's content against recent tips for the
// same case using token-set Jaccard similarity.
type DuplicateDetector struct {
	logger              Logger
	similarityThreshold float64
}

// NewDuplicateDetector creates a new duplicate detector. A non-positive
// threshold falls back to the default.
func NewDuplicateDetector(logger Logger, similarityThreshold float64) *DuplicateDetector {
	if similarityThreshold <= 0 {
		similarityThreshold = defaultDuplicateSimilarity
	}
	return &DuplicateDetector{logger: logger, similarityThreshold: similarityThreshold}
}

// Detect returns the recent tips whose content is near-identical to the new
// tip's. IDs preserve iteration order.
func (d *DuplicateDetector) Detect(tip *domain.TipVerificationInput, recentTips []domain.ExistingTip) *DuplicateResult {
	result := &DuplicateResult{DuplicateIDs: []string{}}

	for i := range recentTips {
		existing := &recentTips[i]
		if existing.ID == tip.TipID {
			continue
		}
		sim := TokenSetJaccard(tip.Content, existing.Content)
		if sim >= d.similarityThreshold {
			result.DuplicateIDs = append(result.DuplicateIDs, existing.ID)
			d.logger.Debug("Duplicate tip detected",
				"tip_id", tip.TipID,
				"duplicate_of", existing.ID,
				"similarity", sim,
			)
		}
	}

	result.IsDuplicate = len(result.DuplicateIDs) > 0
	return result
}

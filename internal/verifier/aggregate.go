package verifier

import (
	"github.com/jonesrussell/tipline/internal/domain"
)

const (
	// Neutral score when no check produced a factor
	neutralOverallScore = 50.0

	// Spam scores above the midpoint penalize at half strength
	spamPenaltyMidpoint = 50.0
	spamPenaltyScale    = 0.5

	hoaxIndicatorPenalty = 10.0
	duplicatePenalty     = 20.0
)

// Bucket decision-table thresholds
const (
	spamBucketCeiling   = 20.0
	criticalBucketFloor = 70.0
	highBucketFloor     = 60.0
	mediumBucketFloor   = 45.0
)

// CredibilityAggregator folds the individual check results into one overall
// score and assigns the priority bucket.
type CredibilityAggregator struct {
	logger Logger
}

// NewCredibilityAggregator creates a new credibility aggregator
func NewCredibilityAggregator(logger Logger) *CredibilityAggregator {
	return &CredibilityAggregator{logger: logger}
}

// Aggregate computes the weighted-average credibility score and applies the
// spam, hoax, and duplicate penalties. Hoax indicators are deduplicated by
// string before penalizing so the location and time checks cannot
// double-count the same impossibility.
func (a *CredibilityAggregator) Aggregate(factors []domain.CredibilityFactor, spamScore float64, hoaxIndicators []string, isDuplicate bool) float64 {
	score := weightedAverage(factors)

	if spamScore > spamPenaltyMidpoint {
		score -= (spamScore - spamPenaltyMidpoint) * spamPenaltyScale
	}

	score -= hoaxIndicatorPenalty * float64(len(dedupeStrings(hoaxIndicators)))

	if isDuplicate {
		score -= duplicatePenalty
	}

	return clampScore(score)
}

// weightedAverage returns the weight-normalized mean of the factor scores,
// neutral when there is no signal.
func weightedAverage(factors []domain.CredibilityFactor) float64 {
	var weightedSum, totalWeight float64
	for _, f := range factors {
		weightedSum += f.Score * f.Weight
		totalWeight += f.Weight
	}
	if totalWeight == 0 {
		return neutralOverallScore
	}
	return weightedSum / totalWeight
}

// dedupeStrings returns the unique values in first-seen order.
func dedupeStrings(values []string) []string {
	seen := make(map[string]bool, len(values))
	unique := make([]string, 0, len(values))
	for _, v := range values {
		if !seen[v] {
			seen[v] = true
			unique = append(unique, v)
		}
	}
	return unique
}

// BucketInput carries everything the bucket decision table reads.
type BucketInput struct {
	OverallScore    float64
	CasePriority    int
	ReliabilityTier string
	HasCoordinates  bool
	HasPhotos       bool
}

// bucketRule is one row of the priority decision table.
type bucketRule struct {
	name   string
	bucket domain.PriorityBucket
	match  func(in BucketInput) bool
}

// bucketRules is evaluated top to bottom; the first match wins. The order is
// the tie-break contract: a verified-source tipster or a well-evidenced tip
// reaches high even on a lower-priority case, and only a near-top-tier case
// combined with a high score reaches critical.
var bucketRules = []bucketRule{
	{
		name:   "spam_floor",
		bucket: domain.BucketSpam,
		match: func(in BucketInput) bool {
			return in.OverallScore < spamBucketCeiling
		},
	},
	{
		name:   "critical_case",
		bucket: domain.BucketCritical,
		match: func(in BucketInput) bool {
			return in.OverallScore >= criticalBucketFloor && in.CasePriority == domain.CasePriorityCritical
		},
	},
	{
		name:   "verified_source",
		bucket: domain.BucketHigh,
		match: func(in BucketInput) bool {
			return in.ReliabilityTier == domain.ReliabilityTierVerifiedSource && in.OverallScore >= highBucketFloor
		},
	},
	{
		name:   "strong_evidence",
		bucket: domain.BucketHigh,
		match: func(in BucketInput) bool {
			return in.HasCoordinates && in.HasPhotos && in.OverallScore >= highBucketFloor
		},
	},
	{
		name:   "medium_floor",
		bucket: domain.BucketMedium,
		match: func(in BucketInput) bool {
			return in.OverallScore >= mediumBucketFloor
		},
	},
}

// DetermineBucket routes a scored tip into its triage queue.
func (a *CredibilityAggregator) DetermineBucket(in BucketInput) domain.PriorityBucket {
	for _, rule := range bucketRules {
		if rule.match(in) {
			a.logger.Debug("Priority bucket assigned",
				"rule", rule.name,
				"bucket", string(rule.bucket),
				"overall_score", in.OverallScore,
			)
			return rule.bucket
		}
	}
	return domain.BucketLow
}

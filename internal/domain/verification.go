package domain

import "time"

// PriorityBucket is the triage queue a tip is routed into after scoring.
type PriorityBucket string

// Priority buckets, least to most urgent.
const (
	BucketSpam     PriorityBucket = "spam"
	BucketLow      PriorityBucket = "low"
	BucketMedium   PriorityBucket = "medium"
	BucketHigh     PriorityBucket = "high"
	BucketCritical PriorityBucket = "critical"
)

// Factor sources identify which check produced a credibility factor.
const (
	FactorSourceTextAnalysis   = "text_analysis"
	FactorSourceLocation       = "location"
	FactorSourceTime           = "time_plausibility"
	FactorSourceCrossReference = "cross_reference"
	FactorSourceTipsterHistory = "tipster_history"
)

// Hoax indicator tags. Location and time checks may each surface the same
// tag; the aggregator dedupes by string before applying penalties.
const (
	IndicatorImpossibleTimeline = "impossible_timeline"
	IndicatorSpamSignature      = "spam_signature"
	IndicatorKnownScamPattern   = "known_scam_pattern"
)

// CredibilityFactor is one weighted, named, scored contribution to the
// overall credibility score.
type CredibilityFactor struct {
	Factor      string  `json:"factor"`
	Score       float64 `json:"score"`  // 0-100
	Weight      float64 `json:"weight"` // >= 0
	Description string  `json:"description"`
	Source      string  `json:"source"`
}

// VerificationResult is the structured credibility verdict for one tip.
// Immutable once returned; the caller decides what to persist and how to
// route the tip.
type VerificationResult struct {
	TipID            string              `json:"tip_id"`
	OverallScore     float64             `json:"overall_score"` // 0-100
	Factors          []CredibilityFactor `json:"factors"`
	HoaxIndicators   []string            `json:"hoax_indicators"`
	IsDuplicate      bool                `json:"is_duplicate"`
	DuplicateIDs     []string            `json:"duplicate_ids"`
	MatchingLeadIDs  []string            `json:"matching_lead_ids"`
	PriorityBucket   PriorityBucket      `json:"priority_bucket"`
	EngineVersion    string              `json:"engine_version"`
	ProcessingTimeMs int64               `json:"processing_time_ms"`
	VerifiedAt       time.Time           `json:"verified_at"`
}

// VerificationRecord is the audit-trail row persisted for each verification.
type VerificationRecord struct {
	ID               string    `db:"id"                 json:"id"`
	TipID            string    `db:"tip_id"             json:"tip_id"`
	CaseID           string    `db:"case_id"            json:"case_id"`
	TipsterID        string    `db:"tipster_id"         json:"tipster_id,omitempty"`
	OverallScore     float64   `db:"overall_score"      json:"overall_score"`
	PriorityBucket   string    `db:"priority_bucket"    json:"priority_bucket"`
	IsDuplicate      bool      `db:"is_duplicate"       json:"is_duplicate"`
	HoaxIndicators   []string  `db:"hoax_indicators"    json:"hoax_indicators,omitempty"`
	EngineVersion    string    `db:"engine_version"     json:"engine_version"`
	ProcessingTimeMs int64     `db:"processing_time_ms" json:"processing_time_ms"`
	VerifiedAt       time.Time `db:"verified_at"        json:"verified_at"`
}

package domain

import "time"

// Reliability tiers for a tipster profile.
const (
	ReliabilityTierLow            = "low"
	ReliabilityTierModerate       = "moderate"
	ReliabilityTierHigh           = "high"
	ReliabilityTierVerifiedSource = "verified_source"
)

// TipsterProfile is the aggregate reputation record for one tipster, owned by
// the case-management collaborator and persisted across cases. The engine
// receives a value snapshot per call and never mutates the counters; they are
// updated only after a human reviewer confirms an outcome (see
// TipsterRepository.RecordOutcome).
//
// Invariant the collaborator maintains (and the engine tolerates violations
// of): VerifiedTips + PartiallyVerifiedTips + FalseTips + SpamTips <= TotalTips.
type TipsterProfile struct {
	ID                          string     `db:"id"                            json:"id"`
	IsBlocked                   bool       `db:"is_blocked"                    json:"is_blocked"`
	BlockedReason               string     `db:"blocked_reason"                json:"blocked_reason,omitempty"`
	ReliabilityTier             string     `db:"reliability_tier"              json:"reliability_tier"`
	ReliabilityScore            float64    `db:"reliability_score"             json:"reliability_score"` // 0-100
	TotalTips                   int        `db:"total_tips"                    json:"total_tips"`
	VerifiedTips                int        `db:"verified_tips"                 json:"verified_tips"`
	PartiallyVerifiedTips       int        `db:"partially_verified_tips"       json:"partially_verified_tips"`
	FalseTips                   int        `db:"false_tips"                    json:"false_tips"`
	SpamTips                    int        `db:"spam_tips"                     json:"spam_tips"`
	TipsLeadingToResolution     int        `db:"tips_leading_to_resolution"    json:"tips_leading_to_resolution"`
	ProvidesPhotos              bool       `db:"provides_photos"               json:"provides_photos"`
	ProvidesDetailedInfo        bool       `db:"provides_detailed_info"        json:"provides_detailed_info"`
	ConsistentLocationReporting bool       `db:"consistent_location_reporting" json:"consistent_location_reporting"`
	LastTipAt                   *time.Time `db:"last_tip_at"                   json:"last_tip_at,omitempty"`
	CreatedAt                   time.Time  `db:"created_at"                    json:"created_at"`
	UpdatedAt                   time.Time  `db:"updated_at"                    json:"updated_at"`
}

// Tip outcome values recorded by human reviewers.
const (
	TipOutcomeVerified          = "verified"
	TipOutcomePartiallyVerified = "partially_verified"
	TipOutcomeFalse             = "false"
	TipOutcomeSpam              = "spam"
	TipOutcomeLedToResolution   = "led_to_resolution"
)

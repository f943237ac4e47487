package domain

import "time"

// Pattern type constants.
const (
	PatternTypeText = "text"
)

// PatternData holds the matchable payload of a scam pattern.
type PatternData struct {
	Keywords []string `json:"keywords"`
}

// ScamPattern is a named, investigator-editable rule from the fraud-pattern
// catalog. Patterns are deactivated rather than deleted; the engine only
// evaluates rows with IsActive set.
type ScamPattern struct {
	ID                  string      `db:"id"                   json:"id"`
	Name                string      `db:"name"                 json:"name"`
	PatternType         string      `db:"pattern_type"         json:"pattern_type"`
	PatternData         PatternData `db:"-"                    json:"pattern_data"`
	ConfidenceThreshold float64     `db:"confidence_threshold" json:"confidence_threshold"` // 0-1
	TimesDetected       int         `db:"times_detected"       json:"times_detected"`
	IsActive            bool        `db:"is_active"            json:"is_active"`
	CreatedAt           time.Time   `db:"created_at"           json:"created_at"`
	UpdatedAt           time.Time   `db:"updated_at"           json:"updated_at"`
}

package domain

import "time"

// TipVerificationInput is the tip under evaluation. It is immutable for the
// duration of scoring; the engine never writes to it.
type TipVerificationInput struct {
	TipID        string     `json:"tip_id"`
	Content      string     `json:"content"`
	Location     string     `json:"location,omitempty"`
	Latitude     *float64   `json:"latitude,omitempty"`
	Longitude    *float64   `json:"longitude,omitempty"`
	SightingDate *time.Time `json:"sighting_date,omitempty"`
	IsAnonymous  bool       `json:"is_anonymous"`
	CaseID       string     `json:"case_id"`
	TipsterID    string     `json:"tipster_id,omitempty"`
	PhotoURLs    []string   `json:"photo_urls,omitempty"`
}

// HasCoordinates reports whether the tip carries a GPS pair.
// Callers validate that latitude and longitude are set together.
func (t *TipVerificationInput) HasCoordinates() bool {
	return t.Latitude != nil && t.Longitude != nil
}

// HasPhotoEvidence reports whether the tipster attached photos.
func (t *TipVerificationInput) HasPhotoEvidence() bool {
	return len(t.PhotoURLs) > 0
}

// Case priority tiers, most urgent first.
const (
	CasePriorityCritical = 1
	CasePriorityHigh     = 2
	CasePriorityMedium   = 3
	CasePriorityLow      = 4
)

// CaseContext holds read-only facts about the missing-person case, supplied
// by the case-management collaborator.
type CaseContext struct {
	ID                string    `db:"id"                  json:"id"`
	PriorityLevel     int       `db:"priority_level"      json:"priority_level"` // 1 = most urgent
	Status            string    `db:"status"              json:"status"`
	LastSeenLatitude  *float64  `db:"last_seen_latitude"  json:"last_seen_latitude,omitempty"`
	LastSeenLongitude *float64  `db:"last_seen_longitude" json:"last_seen_longitude,omitempty"`
	LastSeenDate      time.Time `db:"last_seen_date"      json:"last_seen_date"`
	SubjectFirstName  string    `db:"subject_first_name"  json:"subject_first_name,omitempty"`
	SubjectLastName   string    `db:"subject_last_name"   json:"subject_last_name,omitempty"`
}

// HasLastSeenCoordinates reports whether the case has a usable last-seen GPS pair.
func (c *CaseContext) HasLastSeenCoordinates() bool {
	return c.LastSeenLatitude != nil && c.LastSeenLongitude != nil
}

// ExistingLead is the minimal shape of an investigator-curated lead used for
// cross-reference comparison. Never mutated by the engine.
type ExistingLead struct {
	ID           string    `db:"id"            json:"id"`
	CaseID       string    `db:"case_id"       json:"case_id"`
	Latitude     *float64  `db:"latitude"      json:"latitude,omitempty"`
	Longitude    *float64  `db:"longitude"     json:"longitude,omitempty"`
	LocationText string    `db:"location_text" json:"location_text,omitempty"`
	Status       string    `db:"status"        json:"status"`
	CreatedAt    time.Time `db:"created_at"    json:"created_at"`
}

// HasCoordinates reports whether the lead carries a GPS pair.
func (l *ExistingLead) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// ExistingTip is the minimal shape of a previously submitted tip used for
// duplicate comparison.
type ExistingTip struct {
	ID        string    `db:"id"         json:"id"`
	CaseID    string    `db:"case_id"    json:"case_id"`
	Content   string    `db:"content"    json:"content"`
	Status    string    `db:"status"     json:"status"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

package verifier

import (
	"fmt"

	"github.com/jonesrussell/tipline/internal/domain"
)

const (
	// Fixed scores for tips without usable coordinates
	noLocationScore   = 30.0
	textLocationScore = 40.0

	// Score when the tip has coordinates but the case has no last-seen point
	unanchoredCoordsScore = 55.0

	// Distance beyond which no plausible sighting exists regardless of time
	impossibleDistanceKm = 2000.0

	locationScoreFloor = 15.0
)

// distanceAnchor maps a distance from the last-seen point to a score.
// Scores between anchors are linearly interpolated.
type distanceAnchor struct {
	km    float64
	score float64
}

// distanceAnchors must be sorted by km ascending.
var distanceAnchors = []distanceAnchor{
	{0, 95},
	{5, 85},
	{25, 75},
	{50, 65},
	{100, 50},
	{250, 35},
	{500, 25},
}

// LocationCheck is the location plausibility result for one tip.
type LocationCheck struct {
	Score          float64  `json:"score"`
	Description    string   `json:"description"`
	DistanceKm     *float64 `json:"distance_km,omitempty"`
	HoaxIndicators []string `json:"hoax_indicators,omitempty"`
}

// LocationVerifier scores the plausibility of a reported sighting location
// against the case's last-known position.
type LocationVerifier struct {
	logger Logger
}

// NewLocationVerifier creates a new location verifier
func NewLocationVerifier(logger Logger) *LocationVerifier {
	return &LocationVerifier{logger: logger}
}

// Verify scores the tip's location information. Tips without coordinates
// receive fixed scores; tips with coordinates are scored on great-circle
// distance to the case's last-seen point.
func (v *LocationVerifier) Verify(tip *domain.TipVerificationInput, caseCtx *domain.CaseContext) *LocationCheck {
	if !tip.HasCoordinates() {
		if tip.Location == "" {
			return &LocationCheck{
				Score:       noLocationScore,
				Description: "No location provided.",
			}
		}
		return &LocationCheck{
			Score:       textLocationScore,
			Description: "Text-based location only.",
		}
	}

	if !caseCtx.HasLastSeenCoordinates() {
		return &LocationCheck{
			Score:       unanchoredCoordsScore,
			Description: "GPS coordinates provided but case has no last-seen position to compare against.",
		}
	}

	distance := HaversineKm(*tip.Latitude, *tip.Longitude,
		*caseCtx.LastSeenLatitude, *caseCtx.LastSeenLongitude)
	bearing := InitialBearing(*caseCtx.LastSeenLatitude, *caseCtx.LastSeenLongitude,
		*tip.Latitude, *tip.Longitude)

	check := &LocationCheck{
		Score:      scoreDistance(distance),
		DistanceKm: &distance,
		Description: fmt.Sprintf("Sighting reported %.1f km %s of last-seen position.",
			distance, CompassPoint(bearing)),
	}

	if distance > impossibleDistanceKm {
		check.HoaxIndicators = append(check.HoaxIndicators, domain.IndicatorImpossibleTimeline)
	}

	v.logger.Debug("Location verified",
		"tip_id", tip.TipID,
		"distance_km", distance,
		"score", check.Score,
	)

	return check
}

// scoreDistance interpolates linearly between the distance anchors,
// flooring at locationScoreFloor beyond the last anchor.
func scoreDistance(km float64) float64 {
	if km <= distanceAnchors[0].km {
		return distanceAnchors[0].score
	}
	for i := 1; i < len(distanceAnchors); i++ {
		lo, hi := distanceAnchors[i-1], distanceAnchors[i]
		if km <= hi.km {
			frac := (km - lo.km) / (hi.km - lo.km)
			return lo.score + frac*(hi.score-lo.score)
		}
	}
	return locationScoreFloor
}

package verifier

import (
	"fmt"
	"time"

	"github.com/jonesrussell/tipline/internal/domain"
)

const (
	// Fixed scores
	noSightingDateScore     = 40.0
	impossibleTimelineScore = 10.0
	infeasibleTravelScore   = 15.0

	// Recent sightings are the most actionable
	recentSightingWindow = 24 * time.Hour
	recentSightingScore  = 70.0

	// Older sightings interpolate from this ceiling down to the floor
	staleScoreCeiling = 65.0
	staleScoreFloor   = 25.0
	staleHorizonDays  = 90.0

	// Fastest plausible sustained travel (commercial flight)
	maxTravelSpeedKmh = 900.0
)

// TimeCheck is the temporal plausibility result for one tip.
type TimeCheck struct {
	Score          float64  `json:"score"`
	Description    string   `json:"description"`
	TravelFeasible bool     `json:"travel_feasible"`
	HoaxIndicators []string `json:"hoax_indicators,omitempty"`
}

// TimePlausibilityChecker scores the reported sighting time against the
// disappearance time and, when coordinates allow, travel feasibility.
type TimePlausibilityChecker struct {
	logger Logger
	now    func() time.Time
}

// NewTimePlausibilityChecker creates a new time plausibility checker.
// A nil clock defaults to time.Now.
func NewTimePlausibilityChecker(logger Logger, now func() time.Time) *TimePlausibilityChecker {
	if now == nil {
		now = time.Now
	}
	return &TimePlausibilityChecker{logger: logger, now: now}
}

// Check scores the tip's sighting time. Missing dates get the benefit of
// the doubt; dates before the disappearance or in the future are flagged
// as impossible.
func (c *TimePlausibilityChecker) Check(tip *domain.TipVerificationInput, caseCtx *domain.CaseContext) *TimeCheck {
	if tip.SightingDate == nil {
		return &TimeCheck{
			Score:          noSightingDateScore,
			Description:    "No sighting date provided.",
			TravelFeasible: true,
		}
	}

	now := c.now()
	sighting := *tip.SightingDate

	if sighting.Before(caseCtx.LastSeenDate) {
		return &TimeCheck{
			Score:          impossibleTimelineScore,
			Description:    "Reported sighting is before disappearance.",
			TravelFeasible: false,
			HoaxIndicators: []string{domain.IndicatorImpossibleTimeline},
		}
	}

	if sighting.After(now) {
		return &TimeCheck{
			Score:          impossibleTimelineScore,
			Description:    "Reported sighting is in the future.",
			TravelFeasible: false,
			HoaxIndicators: []string{domain.IndicatorImpossibleTimeline},
		}
	}

	if feasible, speed := c.travelFeasible(tip, caseCtx, sighting); !feasible {
		return &TimeCheck{
			Score: infeasibleTravelScore,
			Description: fmt.Sprintf(
				"Travel from last-seen position would require %.0f km/h.", speed),
			TravelFeasible: false,
			HoaxIndicators: []string{domain.IndicatorImpossibleTimeline},
		}
	}

	age := now.Sub(sighting)
	if age <= recentSightingWindow {
		return &TimeCheck{
			Score:          recentSightingScore,
			Description:    "Sighting reported within the last 24 hours.",
			TravelFeasible: true,
		}
	}

	return &TimeCheck{
		Score:          scoreSightingAge(age),
		Description:    fmt.Sprintf("Sighting reported %.0f days ago.", age.Hours()/24),
		TravelFeasible: true,
	}
}

// travelFeasible checks whether the subject could have reached the tip's
// coordinates from the last-seen position in the elapsed time. Returns the
// implied speed for diagnostics. Without both coordinate pairs it always
// reports feasible.
func (c *TimePlausibilityChecker) travelFeasible(tip *domain.TipVerificationInput, caseCtx *domain.CaseContext, sighting time.Time) (bool, float64) {
	if !tip.HasCoordinates() || !caseCtx.HasLastSeenCoordinates() {
		return true, 0
	}

	elapsed := sighting.Sub(caseCtx.LastSeenDate).Hours()
	if elapsed <= 0 {
		return true, 0
	}

	distance := HaversineKm(*caseCtx.LastSeenLatitude, *caseCtx.LastSeenLongitude,
		*tip.Latitude, *tip.Longitude)
	speed := distance / elapsed
	if speed > maxTravelSpeedKmh {
		c.logger.Debug("Implied travel speed exceeds feasibility ceiling",
			"tip_id", tip.TipID,
			"distance_km", distance,
			"elapsed_hours", elapsed,
			"speed_kmh", speed,
		)
		return false, speed
	}
	return true, speed
}

// scoreSightingAge interpolates from the stale ceiling at 24 hours down to
// the floor at the stale horizon.
func scoreSightingAge(age time.Duration) float64 {
	days := age.Hours() / 24
	if days >= staleHorizonDays {
		return staleScoreFloor
	}
	frac := (days - 1) / (staleHorizonDays - 1)
	return staleScoreCeiling - frac*(staleScoreCeiling-staleScoreFloor)
}

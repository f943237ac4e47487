package verifier

import (
	"strings"
	"testing"
	"time"

	"github.com/jonesrussell/tipline/internal/domain"
)

func floatPtr(f float64) *float64 { return &f }

func timePtr(t time.Time) *time.Time { return &t }

func baseCaseContext() *domain.CaseContext {
	return &domain.CaseContext{
		ID:                "case-1",
		PriorityLevel:     domain.CasePriorityMedium,
		Status:            "active",
		LastSeenLatitude:  floatPtr(43.6532),
		LastSeenLongitude: floatPtr(-79.3832),
		LastSeenDate:      time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestLocationVerifier_NoLocation(t *testing.T) {
	verifier := NewLocationVerifier(&mockLogger{})

	tip := &domain.TipVerificationInput{TipID: "tip-1", CaseID: "case-1"}
	check := verifier.Verify(tip, baseCaseContext())

	if check.Score != 30 {
		t.Errorf("expected exactly 30 with no location data, got %v", check.Score)
	}
	if !strings.Contains(check.Description, "No location") {
		t.Errorf("expected description to flag missing location, got %q", check.Description)
	}
	if check.DistanceKm != nil {
		t.Errorf("expected nil distance, got %v", *check.DistanceKm)
	}
}

func TestLocationVerifier_TextOnlyLocation(t *testing.T) {
	verifier := NewLocationVerifier(&mockLogger{})

	tip := &domain.TipVerificationInput{
		TipID:    "tip-1",
		CaseID:   "case-1",
		Location: "near the old train station downtown",
	}
	check := verifier.Verify(tip, baseCaseContext())

	if check.Score != 40 {
		t.Errorf("expected exactly 40 for text-only location, got %v", check.Score)
	}
	if !strings.Contains(check.Description, "Text-based") {
		t.Errorf("expected description to flag text-based location, got %q", check.Description)
	}
}

func TestLocationVerifier_NearbyCoordinates(t *testing.T) {
	verifier := NewLocationVerifier(&mockLogger{})

	// Roughly 0.3 km north of the last-seen point
	tip := &domain.TipVerificationInput{
		TipID:     "tip-1",
		CaseID:    "case-1",
		Latitude:  floatPtr(43.6559),
		Longitude: floatPtr(-79.3832),
	}
	check := verifier.Verify(tip, baseCaseContext())

	if check.Score <= 60 {
		t.Errorf("expected score above 60 for near-coincident sighting, got %v", check.Score)
	}
	if check.DistanceKm == nil {
		t.Fatal("expected distance to be populated when coordinates exist")
	}
	if *check.DistanceKm >= 1 {
		t.Errorf("expected distance below 1 km, got %v", *check.DistanceKm)
	}
	if len(check.HoaxIndicators) != 0 {
		t.Errorf("expected no hoax indicators nearby, got %v", check.HoaxIndicators)
	}
}

func TestLocationVerifier_ScoreDecreasesWithDistance(t *testing.T) {
	verifier := NewLocationVerifier(&mockLogger{})
	caseCtx := baseCaseContext()

	// Successively farther east of the last-seen point
	offsets := []float64{0.01, 0.1, 0.5, 1, 3, 6}
	prev := 101.0
	for _, offset := range offsets {
		tip := &domain.TipVerificationInput{
			TipID:     "tip-1",
			CaseID:    "case-1",
			Latitude:  floatPtr(43.6532),
			Longitude: floatPtr(-79.3832 + offset),
		}
		check := verifier.Verify(tip, caseCtx)
		if check.Score >= prev {
			t.Errorf("expected monotonically decreasing score, got %v after %v at offset %v",
				check.Score, prev, offset)
		}
		prev = check.Score
	}
}

func TestLocationVerifier_ImpossibleDistance(t *testing.T) {
	verifier := NewLocationVerifier(&mockLogger{})

	// Sydney, about 15500 km from the Toronto last-seen point
	tip := &domain.TipVerificationInput{
		TipID:     "tip-1",
		CaseID:    "case-1",
		Latitude:  floatPtr(-33.8688),
		Longitude: floatPtr(151.2093),
	}
	check := verifier.Verify(tip, baseCaseContext())

	found := false
	for _, indicator := range check.HoaxIndicators {
		if indicator == domain.IndicatorImpossibleTimeline {
			found = true
		}
	}
	if !found {
		t.Errorf("expected %s indicator for an intercontinental sighting, got %v",
			domain.IndicatorImpossibleTimeline, check.HoaxIndicators)
	}
	if check.Score > 20 {
		t.Errorf("expected floor score for an intercontinental sighting, got %v", check.Score)
	}
}

func TestLocationVerifier_CoordinatesWithoutCaseAnchor(t *testing.T) {
	verifier := NewLocationVerifier(&mockLogger{})

	caseCtx := baseCaseContext()
	caseCtx.LastSeenLatitude = nil
	caseCtx.LastSeenLongitude = nil

	tip := &domain.TipVerificationInput{
		TipID:     "tip-1",
		CaseID:    "case-1",
		Latitude:  floatPtr(43.6532),
		Longitude: floatPtr(-79.3832),
	}
	check := verifier.Verify(tip, caseCtx)

	if check.Score <= 40 || check.Score >= 70 {
		t.Errorf("expected moderate score when case has no anchor, got %v", check.Score)
	}
	if check.DistanceKm != nil {
		t.Errorf("expected nil distance without a case anchor, got %v", *check.DistanceKm)
	}
}

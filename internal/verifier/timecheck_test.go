package verifier

import (
	"strings"
	"testing"
	"time"

	"github.com/jonesrussell/tipline/internal/domain"
)

// fixedNow pins the checker's clock for deterministic assertions.
var fixedNow = time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)

func newTestTimeChecker() *TimePlausibilityChecker {
	return NewTimePlausibilityChecker(&mockLogger{}, func() time.Time { return fixedNow })
}

func TestTimePlausibility_NoSightingDate(t *testing.T) {
	checker := newTestTimeChecker()

	tip := &domain.TipVerificationInput{TipID: "tip-1", CaseID: "case-1"}
	check := checker.Check(tip, baseCaseContext())

	if check.Score != 40 {
		t.Errorf("expected exactly 40 without a sighting date, got %v", check.Score)
	}
	if !check.TravelFeasible {
		t.Error("expected benefit of the doubt on travel feasibility")
	}
	if len(check.HoaxIndicators) != 0 {
		t.Errorf("expected no indicators, got %v", check.HoaxIndicators)
	}
}

func TestTimePlausibility_BeforeDisappearance(t *testing.T) {
	checker := newTestTimeChecker()

	caseCtx := baseCaseContext()
	sighting := caseCtx.LastSeenDate.Add(-48 * time.Hour)
	tip := &domain.TipVerificationInput{
		TipID:        "tip-1",
		CaseID:       "case-1",
		SightingDate: timePtr(sighting),
	}
	check := checker.Check(tip, caseCtx)

	if check.Score != 10 {
		t.Errorf("expected score 10 for a sighting before disappearance, got %v", check.Score)
	}
	if !containsString(check.HoaxIndicators, domain.IndicatorImpossibleTimeline) {
		t.Errorf("expected %s indicator, got %v", domain.IndicatorImpossibleTimeline, check.HoaxIndicators)
	}
	if !strings.Contains(check.Description, "before disappearance") {
		t.Errorf("expected description to note before disappearance, got %q", check.Description)
	}
}

func TestTimePlausibility_FutureSighting(t *testing.T) {
	checker := newTestTimeChecker()

	tip := &domain.TipVerificationInput{
		TipID:        "tip-1",
		CaseID:       "case-1",
		SightingDate: timePtr(fixedNow.Add(6 * time.Hour)),
	}
	check := checker.Check(tip, baseCaseContext())

	if check.Score != 10 {
		t.Errorf("expected score 10 for a future sighting, got %v", check.Score)
	}
	if !containsString(check.HoaxIndicators, domain.IndicatorImpossibleTimeline) {
		t.Errorf("expected %s indicator, got %v", domain.IndicatorImpossibleTimeline, check.HoaxIndicators)
	}
	if !strings.Contains(check.Description, "in the future") {
		t.Errorf("expected description to note future sighting, got %q", check.Description)
	}
}

func TestTimePlausibility_RecentSighting(t *testing.T) {
	checker := newTestTimeChecker()

	tip := &domain.TipVerificationInput{
		TipID:        "tip-1",
		CaseID:       "case-1",
		SightingDate: timePtr(fixedNow.Add(-12 * time.Hour)),
	}
	check := checker.Check(tip, baseCaseContext())

	if check.Score <= 60 {
		t.Errorf("expected score above 60 for a sighting 12 hours ago, got %v", check.Score)
	}
	if !strings.Contains(check.Description, "24 hours") {
		t.Errorf("expected description to reference 24 hours, got %q", check.Description)
	}
	if !check.TravelFeasible {
		t.Error("expected travel feasible without coordinates")
	}
}

func TestTimePlausibility_StaleSightingsDecay(t *testing.T) {
	checker := newTestTimeChecker()
	caseCtx := &domain.CaseContext{
		ID:           "case-1",
		LastSeenDate: fixedNow.Add(-365 * 24 * time.Hour),
	}

	ages := []time.Duration{
		3 * 24 * time.Hour,
		10 * 24 * time.Hour,
		45 * 24 * time.Hour,
		120 * 24 * time.Hour,
	}
	prev := 101.0
	for _, age := range ages {
		tip := &domain.TipVerificationInput{
			TipID:        "tip-1",
			CaseID:       "case-1",
			SightingDate: timePtr(fixedNow.Add(-age)),
		}
		check := checker.Check(tip, caseCtx)
		if check.Score > prev {
			t.Errorf("expected non-increasing score with age, got %v after %v at %v", check.Score, prev, age)
		}
		if check.Score < 25 || check.Score > 65 {
			t.Errorf("expected stale score within [25, 65], got %v at %v", check.Score, age)
		}
		prev = check.Score
	}
}

func TestTimePlausibility_InfeasibleTravel(t *testing.T) {
	checker := newTestTimeChecker()

	// Sighting in Sydney one hour after the subject was last seen in Toronto
	caseCtx := baseCaseContext()
	caseCtx.LastSeenDate = fixedNow.Add(-2 * time.Hour)
	tip := &domain.TipVerificationInput{
		TipID:        "tip-1",
		CaseID:       "case-1",
		Latitude:     floatPtr(-33.8688),
		Longitude:    floatPtr(151.2093),
		SightingDate: timePtr(fixedNow.Add(-time.Hour)),
	}
	check := checker.Check(tip, caseCtx)

	if check.TravelFeasible {
		t.Error("expected infeasible travel for Toronto to Sydney in one hour")
	}
	if !containsString(check.HoaxIndicators, domain.IndicatorImpossibleTimeline) {
		t.Errorf("expected %s indicator, got %v", domain.IndicatorImpossibleTimeline, check.HoaxIndicators)
	}
	if check.Score > 20 {
		t.Errorf("expected low score for infeasible travel, got %v", check.Score)
	}
}

func TestTimePlausibility_FeasibleTravelKeepsRecentBonus(t *testing.T) {
	checker := newTestTimeChecker()

	// A few km away, days after disappearance, sighted 12 hours ago
	caseCtx := baseCaseContext()
	caseCtx.LastSeenDate = fixedNow.Add(-10 * 24 * time.Hour)
	tip := &domain.TipVerificationInput{
		TipID:        "tip-1",
		CaseID:       "case-1",
		Latitude:     floatPtr(43.70),
		Longitude:    floatPtr(-79.40),
		SightingDate: timePtr(fixedNow.Add(-12 * time.Hour)),
	}
	check := checker.Check(tip, caseCtx)

	if !check.TravelFeasible {
		t.Error("expected feasible travel for a short distance over days")
	}
	if check.Score <= 60 {
		t.Errorf("expected recent-sighting bonus, got %v", check.Score)
	}
}

func containsString(values []string, target string) bool {
	for _, v := range values {
		if v == target {
			return true
		}
	}
	return false
}

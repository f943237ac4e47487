package verifier

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jonesrussell/tipline/internal/domain"
	"github.com/jonesrussell/tipline/internal/telemetry"
)

// EngineVersion is stamped into every result so persisted verdicts can be
// traced back to the scoring rules that produced them.
const EngineVersion = "1.0.0"

// Factor weights for the overall credibility average.
const (
	textFactorWeight        = 0.20
	locationFactorWeight    = 0.25
	timeFactorWeight        = 0.20
	crossRefFactorWeight    = 0.15
	reliabilityFactorWeight = 0.20
)

// Structural input violations callers must fix before invoking the engine.
var (
	ErrPartialCoordinates = errors.New("latitude and longitude must be set together")
	ErrCaseMismatch       = errors.New("tip case id does not match case context")
)

// Config holds the engine's tunable thresholds.
type Config struct {
	ProximityRadiusKm            float64
	CrossRefSimilarityThreshold  float64
	DuplicateSimilarityThreshold float64
}

// Verifier runs every credibility check against one tip and folds the
// results into a single verdict. It is pure: all inputs arrive by value or
// as read-only snapshots, and identical inputs always produce an identical
// result, which is what makes verdicts safe to re-run offline for audits.
type Verifier struct {
	text        *TextAnalyzer
	location    *LocationVerifier
	timecheck   *TimePlausibilityChecker
	crossRef    *CrossReferenceMatcher
	duplicates  *DuplicateDetector
	spam        *SpamHoaxDetector
	reliability *TipsterReliabilityScorer
	aggregator  *CredibilityAggregator
	telemetry   *telemetry.Provider
	logger      Logger
	now         func() time.Time
}

// New creates a verifier with all checks wired. The telemetry provider may
// be nil; nil now defaults to time.Now.
func New(cfg Config, tel *telemetry.Provider, logger Logger, now func() time.Time) *Verifier {
	if now == nil {
		now = time.Now
	}
	return &Verifier{
		text:      NewTextAnalyzer(logger),
		location:  NewLocationVerifier(logger),
		timecheck: NewTimePlausibilityChecker(logger, now),
		crossRef: NewCrossReferenceMatcher(logger, CrossReferenceConfig{
			ProximityRadiusKm:   cfg.ProximityRadiusKm,
			SimilarityThreshold: cfg.CrossRefSimilarityThreshold,
		}),
		duplicates:  NewDuplicateDetector(logger, cfg.DuplicateSimilarityThreshold),
		spam:        NewSpamHoaxDetector(logger),
		reliability: NewTipsterReliabilityScorer(logger),
		aggregator:  NewCredibilityAggregator(logger),
		telemetry:   tel,
		logger:      logger,
		now:         now,
	}
}

// ValidateInput checks the structural constraints the engine itself assumes.
// These are caller errors: a lone latitude or longitude, or a tip whose case
// id does not match the supplied context.
func ValidateInput(tip *domain.TipVerificationInput, caseCtx *domain.CaseContext) error {
	if (tip.Latitude == nil) != (tip.Longitude == nil) {
		return ErrPartialCoordinates
	}
	if tip.CaseID != caseCtx.ID {
		return fmt.Errorf("%w: tip has %q, context has %q", ErrCaseMismatch, tip.CaseID, caseCtx.ID)
	}
	return nil
}

// Verify runs every check against the tip and returns the verdict. It never
// fails on malformed-but-well-typed input; every branch degrades to a
// conservative neutral or low score, because a triage miss is cheaper than a
// crash that drops a tip.
func (v *Verifier) Verify(
	ctx context.Context,
	tip *domain.TipVerificationInput,
	caseCtx *domain.CaseContext,
	profile *domain.TipsterProfile,
	leads []domain.ExistingLead,
	recentTips []domain.ExistingTip,
	patterns []domain.ScamPattern,
) *domain.VerificationResult {
	start := time.Now()

	textResult := v.text.Analyze(tip.Content)
	locationResult := v.location.Verify(tip, caseCtx)
	timeResult := v.timecheck.Check(tip, caseCtx)
	crossRefResult := v.crossRef.Match(tip, leads)
	duplicateResult := v.duplicates.Detect(tip, recentTips)
	spamResult := v.spam.Detect(tip, patterns)
	reliabilityScore := v.reliability.Score(profile)

	factors := []domain.CredibilityFactor{
		{
			Factor:      "text_quality",
			Score:       textResult.Score,
			Weight:      textFactorWeight,
			Description: fmt.Sprintf("Detail richness %.0f, coherence %.0f.", textResult.DetailRichness, textResult.Coherence),
			Source:      domain.FactorSourceTextAnalysis,
		},
		{
			Factor:      "location_plausibility",
			Score:       locationResult.Score,
			Weight:      locationFactorWeight,
			Description: locationResult.Description,
			Source:      domain.FactorSourceLocation,
		},
		{
			Factor:      "time_plausibility",
			Score:       timeResult.Score,
			Weight:      timeFactorWeight,
			Description: timeResult.Description,
			Source:      domain.FactorSourceTime,
		},
		{
			Factor:      "lead_corroboration",
			Score:       crossRefResult.Score,
			Weight:      crossRefFactorWeight,
			Description: fmt.Sprintf("Matched %d existing lead(s).", len(crossRefResult.MatchingLeadIDs)),
			Source:      domain.FactorSourceCrossReference,
		},
		{
			Factor:      "tipster_reliability",
			Score:       reliabilityScore,
			Weight:      reliabilityFactorWeight,
			Description: describeReliability(profile),
			Source:      domain.FactorSourceTipsterHistory,
		},
	}

	hoaxIndicators := dedupeStrings(concatIndicators(
		locationResult.HoaxIndicators,
		timeResult.HoaxIndicators,
		spamResult.HoaxIndicators,
	))

	overall := v.aggregator.Aggregate(factors, spamResult.SpamScore, hoaxIndicators, duplicateResult.IsDuplicate)

	bucket := v.aggregator.DetermineBucket(BucketInput{
		OverallScore:    overall,
		CasePriority:    caseCtx.PriorityLevel,
		ReliabilityTier: reliabilityTier(profile),
		HasCoordinates:  tip.HasCoordinates(),
		HasPhotos:       tip.HasPhotoEvidence(),
	})

	elapsed := time.Since(start)
	result := &domain.VerificationResult{
		TipID:            tip.TipID,
		OverallScore:     overall,
		Factors:          factors,
		HoaxIndicators:   hoaxIndicators,
		IsDuplicate:      duplicateResult.IsDuplicate,
		DuplicateIDs:     duplicateResult.DuplicateIDs,
		MatchingLeadIDs:  crossRefResult.MatchingLeadIDs,
		PriorityBucket:   bucket,
		EngineVersion:    EngineVersion,
		ProcessingTimeMs: elapsed.Milliseconds(),
		VerifiedAt:       v.now().UTC(),
	}

	if v.telemetry != nil {
		v.telemetry.RecordVerification(ctx, strconv.Itoa(caseCtx.PriorityLevel), elapsed)
		v.telemetry.RecordTriage(ctx, string(bucket), hoaxIndicators, duplicateResult.IsDuplicate, spamResult.SpamScore)
	}

	v.logger.Info("Tip verified",
		"tip_id", tip.TipID,
		"case_id", tip.CaseID,
		"overall_score", overall,
		"bucket", string(bucket),
		"is_duplicate", duplicateResult.IsDuplicate,
		"hoax_indicators", len(hoaxIndicators),
		"duration_ms", elapsed.Milliseconds(),
	)

	return result
}

// concatIndicators merges indicator slices without allocating when all are
// empty.
func concatIndicators(lists ...[]string) []string {
	total := 0
	for _, l := range lists {
		total += len(l)
	}
	if total == 0 {
		return nil
	}
	merged := make([]string, 0, total)
	for _, l := range lists {
		merged = append(merged, l...)
	}
	return merged
}

func describeReliability(profile *domain.TipsterProfile) string {
	if profile == nil {
		return "Unknown tipster."
	}
	if profile.IsBlocked {
		return "Tipster is blocked."
	}
	return fmt.Sprintf("Tier %s, %d prior tip(s).", profile.ReliabilityTier, profile.TotalTips)
}

func reliabilityTier(profile *domain.TipsterProfile) string {
	if profile == nil {
		return ""
	}
	return profile.ReliabilityTier
}

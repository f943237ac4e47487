package processor

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jonesrussell/tipline/internal/domain"
	"github.com/jonesrussell/tipline/internal/verifier"
)

// mockLogger implements Logger for testing
type mockLogger struct{}

func (m *mockLogger) Debug(msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Info(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warn(msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(msg string, keysAndValues ...interface{}) {}

type mockTipsterStore struct {
	profiles map[string]*domain.TipsterProfile
	err      error
}

func (m *mockTipsterStore) GetOrCreate(ctx context.Context, id string) (*domain.TipsterProfile, error) {
	if m.err != nil {
		return nil, m.err
	}
	if profile, ok := m.profiles[id]; ok {
		return profile, nil
	}
	profile := &domain.TipsterProfile{ID: id, ReliabilityScore: 50, ReliabilityTier: domain.ReliabilityTierModerate}
	if m.profiles == nil {
		m.profiles = make(map[string]*domain.TipsterProfile)
	}
	m.profiles[id] = profile
	return profile, nil
}

type mockLeadStore struct {
	leads []domain.ExistingLead
	err   error
}

func (m *mockLeadStore) ListByCase(ctx context.Context, caseID string) ([]domain.ExistingLead, error) {
	return m.leads, m.err
}

type mockTipStore struct {
	mu       sync.Mutex
	recent   []domain.ExistingTip
	recorded []string
}

func (m *mockTipStore) ListRecentByCase(ctx context.Context, caseID string, limit int) ([]domain.ExistingTip, error) {
	return m.recent, nil
}

func (m *mockTipStore) Record(ctx context.Context, tip *domain.TipVerificationInput, bucket domain.PriorityBucket) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recorded = append(m.recorded, tip.TipID)
	return nil
}

type mockHistoryStore struct {
	mu      sync.Mutex
	records []*domain.VerificationRecord
}

func (m *mockHistoryStore) Create(ctx context.Context, record *domain.VerificationRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, record)
	return nil
}

type staticPatterns struct {
	patterns []domain.ScamPattern
}

func (s *staticPatterns) Snapshot() []domain.ScamPattern {
	return s.patterns
}

func fixedNow() time.Time {
	return time.Date(2026, 8, 15, 12, 0, 0, 0, time.UTC)
}

func testPipeline(tips *mockTipStore, history *mockHistoryStore, tipsters *mockTipsterStore) *Pipeline {
	logger := &mockLogger{}
	v := verifier.New(verifier.Config{
		ProximityRadiusKm:            0.3,
		CrossRefSimilarityThreshold:  0.5,
		DuplicateSimilarityThreshold: 0.85,
	}, nil, logger, fixedNow)

	return NewPipeline(
		v,
		&staticPatterns{},
		tipsters,
		&mockLeadStore{},
		tips,
		history,
		Config{Concurrency: 2, RecentTipsLimit: 50},
		nil,
		logger,
	)
}

func testJob(tipID string) *VerifyJob {
	sighting := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	return &VerifyJob{
		Tip: &domain.TipVerificationInput{
			TipID:     tipID,
			CaseID:    "case-1",
			TipsterID: "tipster-1",
			Content:   "I saw a woman matching the description wearing a red jacket near the harbourfront around 9am on Sunday.",
			Location:  "Harbourfront, Toronto",
			SightingDate: func() *time.Time {
				d := sighting
				return &d
			}(),
		},
		Case: &domain.CaseContext{
			ID:            "case-1",
			PriorityLevel: domain.CasePriorityMedium,
			LastSeenDate:  time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestVerifyOne_PersistsResult(t *testing.T) {
	tips := &mockTipStore{}
	history := &mockHistoryStore{}
	pipeline := testPipeline(tips, history, &mockTipsterStore{})

	result, err := pipeline.VerifyOne(context.Background(), testJob("tip-1"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if result.TipID != "tip-1" {
		t.Errorf("expected tip_id tip-1, got %q", result.TipID)
	}
	if len(tips.recorded) != 1 || tips.recorded[0] != "tip-1" {
		t.Errorf("expected tip to be recorded, got %v", tips.recorded)
	}
	if len(history.records) != 1 {
		t.Fatalf("expected 1 history record, got %d", len(history.records))
	}
	record := history.records[0]
	if record.CaseID != "case-1" || record.TipsterID != "tipster-1" {
		t.Errorf("history record not populated: %+v", record)
	}
	if record.PriorityBucket != string(result.PriorityBucket) {
		t.Errorf("history bucket %q does not match result bucket %q", record.PriorityBucket, result.PriorityBucket)
	}
}

func TestVerifyOne_CaseMismatchRejected(t *testing.T) {
	pipeline := testPipeline(&mockTipStore{}, &mockHistoryStore{}, &mockTipsterStore{})

	job := testJob("tip-1")
	job.Tip.CaseID = "case-other"

	_, err := pipeline.VerifyOne(context.Background(), job)
	if !errors.Is(err, verifier.ErrCaseMismatch) {
		t.Errorf("expected ErrCaseMismatch, got %v", err)
	}
}

func TestVerifyOne_ProfileLookupFailureDegrades(t *testing.T) {
	tips := &mockTipStore{}
	history := &mockHistoryStore{}
	pipeline := testPipeline(tips, history, &mockTipsterStore{err: errors.New("connection refused")})

	result, err := pipeline.VerifyOne(context.Background(), testJob("tip-1"))
	if err != nil {
		t.Fatalf("expected degraded scoring, got error: %v", err)
	}

	// No profile means a neutral reliability factor.
	for _, factor := range result.Factors {
		if factor.Source == domain.FactorSourceTipsterHistory && factor.Score != 50 {
			t.Errorf("expected neutral reliability 50 without a profile, got %.1f", factor.Score)
		}
	}
	if len(history.records) != 1 {
		t.Errorf("expected the verdict to be persisted despite the lookup failure")
	}
	if history.records[0].TipsterID != "" {
		t.Errorf("expected empty tipster_id when the profile could not be loaded")
	}
}

func TestVerifyOne_AnonymousSkipsProfileLookup(t *testing.T) {
	tipsters := &mockTipsterStore{err: errors.New("must not be called")}
	pipeline := testPipeline(&mockTipStore{}, &mockHistoryStore{}, tipsters)

	job := testJob("tip-1")
	job.Tip.IsAnonymous = true
	job.Tip.TipsterID = ""

	if _, err := pipeline.VerifyOne(context.Background(), job); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestProcess_AllJobsReturnResults(t *testing.T) {
	tips := &mockTipStore{}
	history := &mockHistoryStore{}
	pipeline := testPipeline(tips, history, &mockTipsterStore{})

	jobs := make([]*VerifyJob, 0, 5)
	for i := 0; i < 5; i++ {
		jobs = append(jobs, testJob(fmt.Sprintf("tip-%d", i)))
	}

	results := pipeline.Process(context.Background(), jobs)
	if len(results) != 5 {
		t.Fatalf("expected 5 results, got %d", len(results))
	}

	seen := make(map[string]bool)
	for _, result := range results {
		if result.Error != nil {
			t.Errorf("unexpected error for %s: %v", result.TipID, result.Error)
		}
		seen[result.TipID] = true
	}
	if len(seen) != 5 {
		t.Errorf("expected 5 distinct tip ids, got %d", len(seen))
	}
	if len(history.records) != 5 {
		t.Errorf("expected 5 history records, got %d", len(history.records))
	}
}

func TestProcess_EmptyBatch(t *testing.T) {
	pipeline := testPipeline(&mockTipStore{}, &mockHistoryStore{}, &mockTipsterStore{})

	results := pipeline.Process(context.Background(), nil)
	if len(results) != 0 {
		t.Errorf("expected no results for an empty batch, got %d", len(results))
	}
}

func TestProcess_MixedValidity(t *testing.T) {
	pipeline := testPipeline(&mockTipStore{}, &mockHistoryStore{}, &mockTipsterStore{})

	good := testJob("tip-good")
	bad := testJob("tip-bad")
	lat := 43.6
	bad.Tip.Latitude = &lat // longitude missing

	results := pipeline.Process(context.Background(), []*VerifyJob{good, bad})
	if len(results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(results))
	}

	for _, result := range results {
		switch result.TipID {
		case "tip-good":
			if result.Error != nil {
				t.Errorf("expected tip-good to succeed, got %v", result.Error)
			}
		case "tip-bad":
			if !errors.Is(result.Error, verifier.ErrPartialCoordinates) {
				t.Errorf("expected ErrPartialCoordinates for tip-bad, got %v", result.Error)
			}
			if result.ErrMsg == "" {
				t.Error("expected error message to be set for failed job")
			}
		default:
			t.Errorf("unexpected tip id %q", result.TipID)
		}
	}
}

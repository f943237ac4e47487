package processor

import (
	"context"
	"sync"
	"time"

	"github.com/jonesrussell/tipline/internal/domain"
	"github.com/jonesrussell/tipline/internal/telemetry"
	"github.com/jonesrussell/tipline/internal/verifier"
)

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// TipsterStore loads tipster profiles for context assembly.
type TipsterStore interface {
	GetOrCreate(ctx context.Context, id string) (*domain.TipsterProfile, error)
}

// LeadStore loads investigator-curated leads for a case.
type LeadStore interface {
	ListByCase(ctx context.Context, caseID string) ([]domain.ExistingLead, error)
}

// TipStore loads recent tips for duplicate comparison and records verified ones.
type TipStore interface {
	ListRecentByCase(ctx context.Context, caseID string, limit int) ([]domain.ExistingTip, error)
	Record(ctx context.Context, tip *domain.TipVerificationInput, bucket domain.PriorityBucket) error
}

// HistoryStore persists the verification audit trail.
type HistoryStore interface {
	Create(ctx context.Context, record *domain.VerificationRecord) error
}

// PatternSource supplies the active scam-pattern snapshot.
type PatternSource interface {
	Snapshot() []domain.ScamPattern
}

// VerifyJob is one tip plus the case facts it is evaluated against. The
// case context arrives with the request because case records live with the
// case-management service, not here.
type VerifyJob struct {
	Tip  *domain.TipVerificationInput `json:"tip"  binding:"required"`
	Case *domain.CaseContext          `json:"case" binding:"required"`
}

// ProcessResult holds the outcome of processing a single job
type ProcessResult struct {
	TipID  string                     `json:"tip_id"`
	Result *domain.VerificationResult `json:"result,omitempty"`
	Error  error                      `json:"-"`
	ErrMsg string                     `json:"error,omitempty"`
}

// Config holds pipeline tuning knobs.
type Config struct {
	Concurrency     int
	RecentTipsLimit int
	RequestsPerSec  int
	RequestBurst    int
}

const (
	defaultConcurrency     = 10
	defaultRecentTipsLimit = 100
)

// Pipeline assembles verification context from storage, runs the engine,
// and persists the outcome. Batches fan out over a fixed worker pool.
type Pipeline struct {
	verifier    *verifier.Verifier
	patterns    PatternSource
	tipsters    TipsterStore
	leads       LeadStore
	tips        TipStore
	history     HistoryStore
	limiter     *RateLimiter
	telemetry   *telemetry.Provider
	concurrency int
	recentLimit int
	logger      Logger
}

// NewPipeline creates a verification pipeline.
func NewPipeline(
	v *verifier.Verifier,
	patterns PatternSource,
	tipsters TipsterStore,
	leads LeadStore,
	tips TipStore,
	history HistoryStore,
	cfg Config,
	tel *telemetry.Provider,
	logger Logger,
) *Pipeline {
	concurrency := cfg.Concurrency
	if concurrency <= 0 {
		concurrency = defaultConcurrency
	}
	recentLimit := cfg.RecentTipsLimit
	if recentLimit <= 0 {
		recentLimit = defaultRecentTipsLimit
	}

	return &Pipeline{
		verifier:    v,
		patterns:    patterns,
		tipsters:    tipsters,
		leads:       leads,
		tips:        tips,
		history:     history,
		limiter:     NewRateLimiter(cfg.RequestsPerSec, cfg.RequestBurst, logger),
		telemetry:   tel,
		concurrency: concurrency,
		recentLimit: recentLimit,
		logger:      logger,
	}
}

// VerifyOne runs the full pipeline for a single tip: validate, assemble
// context, score, persist. Storage read failures degrade to the engine's
// neutral defaults rather than rejecting the tip; a tip lost to a transient
// outage is worse than one scored without its full context.
func (p *Pipeline) VerifyOne(ctx context.Context, job *VerifyJob) (*domain.VerificationResult, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	if err := verifier.ValidateInput(job.Tip, job.Case); err != nil {
		if p.telemetry != nil {
			p.telemetry.RecordVerificationFailure(ctx, "invalid_input")
		}
		return nil, err
	}

	profile := p.loadProfile(ctx, job.Tip)
	leads := p.loadLeads(ctx, job.Case.ID)
	recentTips := p.loadRecentTips(ctx, job.Case.ID)

	result := p.verifier.Verify(ctx, job.Tip, job.Case, profile, leads, recentTips, p.patterns.Snapshot())

	p.persist(ctx, job, profile, result)

	return result, nil
}

// Process verifies a batch of jobs using a worker pool. Results come back
// in arbitrary order; callers match on TipID.
func (p *Pipeline) Process(ctx context.Context, jobs []*VerifyJob) []*ProcessResult {
	if len(jobs) == 0 {
		return []*ProcessResult{}
	}

	p.logger.Info("Starting batch verification",
		"batch_size", len(jobs),
		"concurrency", p.concurrency,
	)

	if p.telemetry != nil {
		p.telemetry.RecordBatchSize(len(jobs))
		p.telemetry.SetActiveWorkers(p.concurrency)
		defer p.telemetry.SetActiveWorkers(0)
	}

	startTime := time.Now()

	queue := make(chan *VerifyJob, len(jobs))
	results := make(chan *ProcessResult, len(jobs))

	var wg sync.WaitGroup
	for i := 0; i < p.concurrency; i++ {
		wg.Add(1)
		go p.worker(ctx, i, queue, results, &wg)
	}

	for _, job := range jobs {
		queue <- job
	}
	close(queue)

	wg.Wait()
	close(results)

	processResults := make([]*ProcessResult, 0, len(jobs))
	successCount := 0
	for result := range results {
		if result.Error == nil {
			successCount++
		}
		processResults = append(processResults, result)
	}

	duration := time.Since(startTime)
	p.logger.Info("Batch verification complete",
		"total", len(jobs),
		"success", successCount,
		"errors", len(processResults)-successCount,
		"duration_ms", duration.Milliseconds(),
	)

	return processResults
}

// worker drains the queue until it closes or the context is cancelled.
func (p *Pipeline) worker(
	ctx context.Context,
	id int,
	queue <-chan *VerifyJob,
	results chan<- *ProcessResult,
	wg *sync.WaitGroup,
) {
	defer wg.Done()

	p.logger.Debug("Worker started", "worker_id", id)

	for job := range queue {
		select {
		case <-ctx.Done():
			p.logger.Warn("Worker stopping due to context cancellation", "worker_id", id)
			return
		default:
		}

		result, err := p.VerifyOne(ctx, job)
		processResult := &ProcessResult{TipID: job.Tip.TipID, Result: result, Error: err}
		if err != nil {
			processResult.ErrMsg = err.Error()
		}
		results <- processResult
	}

	p.logger.Debug("Worker finished", "worker_id", id)
}

// loadProfile fetches the tipster profile, or nil for anonymous tips and
// lookup failures. A nil profile scores a neutral 50 downstream.
func (p *Pipeline) loadProfile(ctx context.Context, tip *domain.TipVerificationInput) *domain.TipsterProfile {
	if tip.IsAnonymous || tip.TipsterID == "" {
		return nil
	}

	profile, err := p.tipsters.GetOrCreate(ctx, tip.TipsterID)
	if err != nil {
		p.logger.Warn("Failed to load tipster profile, scoring without it",
			"tipster_id", tip.TipsterID,
			"error", err,
		)
		return nil
	}
	return profile
}

func (p *Pipeline) loadLeads(ctx context.Context, caseID string) []domain.ExistingLead {
	leads, err := p.leads.ListByCase(ctx, caseID)
	if err != nil {
		p.logger.Warn("Failed to load existing leads, scoring without them",
			"case_id", caseID,
			"error", err,
		)
		return nil
	}
	return leads
}

func (p *Pipeline) loadRecentTips(ctx context.Context, caseID string) []domain.ExistingTip {
	tips, err := p.tips.ListRecentByCase(ctx, caseID, p.recentLimit)
	if err != nil {
		p.logger.Warn("Failed to load recent tips, skipping duplicate check",
			"case_id", caseID,
			"error", err,
		)
		return nil
	}
	return tips
}

// persist records the tip for future duplicate checks and writes the audit
// row. Write failures are logged but never void the verdict.
func (p *Pipeline) persist(ctx context.Context, job *VerifyJob, profile *domain.TipsterProfile, result *domain.VerificationResult) {
	if err := p.tips.Record(ctx, job.Tip, result.PriorityBucket); err != nil {
		p.logger.Error("Failed to record tip",
			"tip_id", job.Tip.TipID,
			"error", err,
		)
	}

	record := &domain.VerificationRecord{
		TipID:            result.TipID,
		CaseID:           job.Case.ID,
		OverallScore:     result.OverallScore,
		PriorityBucket:   string(result.PriorityBucket),
		IsDuplicate:      result.IsDuplicate,
		HoaxIndicators:   result.HoaxIndicators,
		EngineVersion:    result.EngineVersion,
		ProcessingTimeMs: result.ProcessingTimeMs,
	}
	if profile != nil {
		record.TipsterID = profile.ID
	}

	if err := p.history.Create(ctx, record); err != nil {
		p.logger.Error("Failed to write verification history",
			"tip_id", result.TipID,
			"error", err,
		)
	}
}

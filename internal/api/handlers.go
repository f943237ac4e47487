package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/tipline/internal/database"
	"github.com/jonesrussell/tipline/internal/domain"
	"github.com/jonesrussell/tipline/internal/patterns"
	"github.com/jonesrussell/tipline/internal/processor"
	"github.com/jonesrussell/tipline/internal/verifier"
)

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// PatternStore manages the scam-pattern catalog rows.
type PatternStore interface {
	Create(ctx context.Context, pattern *domain.ScamPattern) error
	GetByID(ctx context.Context, id string) (*domain.ScamPattern, error)
	List(ctx context.Context, activeOnly bool) ([]*domain.ScamPattern, error)
	Update(ctx context.Context, pattern *domain.ScamPattern) error
	Deactivate(ctx context.Context, id string) error
}

// TipsterStore manages tipster profiles and their outcome bookkeeping.
type TipsterStore interface {
	Get(ctx context.Context, id string) (*domain.TipsterProfile, error)
	RecordOutcome(ctx context.Context, id, outcome string) (*domain.TipsterProfile, error)
	SetBlocked(ctx context.Context, id string, blocked bool, reason string) error
}

// HistoryStore reads the verification audit trail.
type HistoryStore interface {
	ListByCase(ctx context.Context, caseID string, limit int) ([]*domain.VerificationRecord, error)
	Stats(ctx context.Context) (*database.VerificationStats, error)
}

// Handler handles HTTP requests for the tip verification API
type Handler struct {
	pipeline    *processor.Pipeline
	catalog     *patterns.Catalog
	patternRepo PatternStore
	tipsterRepo TipsterStore
	historyRepo HistoryStore
	batchLimit  int
	dbPing      func() error
	logger      Logger
}

const defaultBatchLimit = 200

// NewHandler creates a new API handler
func NewHandler(
	pipeline *processor.Pipeline,
	catalog *patterns.Catalog,
	patternRepo PatternStore,
	tipsterRepo TipsterStore,
	historyRepo HistoryStore,
	batchLimit int,
	dbPing func() error,
	logger Logger,
) *Handler {
	if batchLimit <= 0 {
		batchLimit = defaultBatchLimit
	}

	return &Handler{
		pipeline:    pipeline,
		catalog:     catalog,
		patternRepo: patternRepo,
		tipsterRepo: tipsterRepo,
		historyRepo: historyRepo,
		batchLimit:  batchLimit,
		dbPing:      dbPing,
		logger:      logger,
	}
}

// Verify handles POST /api/v1/verify
func (h *Handler) Verify(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid verify request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Verifying tip",
		"tip_id", req.Tip.TipID,
		"case_id", req.Case.ID,
	)

	result, err := h.pipeline.VerifyOne(c.Request.Context(), &processor.VerifyJob{
		Tip:  req.Tip,
		Case: req.Case,
	})
	if err != nil {
		if errors.Is(err, verifier.ErrPartialCoordinates) || errors.Is(err, verifier.ErrCaseMismatch) {
			h.logger.Warn("Rejected tip input", "tip_id", req.Tip.TipID, "error", err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("Verification failed", "tip_id", req.Tip.TipID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Verification failed"})
		return
	}

	h.logger.Info("Tip verified",
		"tip_id", result.TipID,
		"overall_score", result.OverallScore,
		"priority_bucket", result.PriorityBucket,
	)

	c.JSON(http.StatusOK, VerifyResponse{Result: result})
}

// VerifyBatch handles POST /api/v1/verify/batch
func (h *Handler) VerifyBatch(c *gin.Context) {
	var req BatchVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid batch verify request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if len(req.Jobs) > h.batchLimit {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("batch size %d exceeds limit %d", len(req.Jobs), h.batchLimit),
		})
		return
	}

	h.logger.Info("Batch verifying tips", "batch_size", len(req.Jobs))

	results := h.pipeline.Process(c.Request.Context(), req.Jobs)

	success := 0
	for _, result := range results {
		if result.Error == nil {
			success++
		}
	}

	h.logger.Info("Batch verification completed",
		"total", len(results),
		"success", success,
		"failed", len(results)-success,
	)

	c.JSON(http.StatusOK, BatchVerifyResponse{
		Results: results,
		Total:   len(results),
		Success: success,
		Failed:  len(results) - success,
	})
}

// ListPatterns handles GET /api/v1/patterns
func (h *Handler) ListPatterns(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	h.logger.Debug("Listing scam patterns", "active_only", activeOnly)

	rows, err := h.patternRepo.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.logger.Error("Failed to list patterns", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load patterns"})
		return
	}

	c.JSON(http.StatusOK, PatternsListResponse{
		Patterns: rows,
		Total:    len(rows),
	})
}

// CreatePattern handles POST /api/v1/patterns
func (h *Handler) CreatePattern(c *gin.Context) {
	var req CreatePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid create pattern request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pattern := req.toPattern()

	h.logger.Info("Creating scam pattern", "name", pattern.Name)

	if err := h.patternRepo.Create(c.Request.Context(), pattern); err != nil {
		h.logger.Error("Failed to create pattern", "name", pattern.Name, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create pattern"})
		return
	}

	h.reloadPatterns(c.Request.Context())

	h.logger.Info("Pattern created", "id", pattern.ID, "name", pattern.Name)

	c.JSON(http.StatusCreated, pattern)
}

// GetPattern handles GET /api/v1/patterns/:id
func (h *Handler) GetPattern(c *gin.Context) {
	id := c.Param("id")

	pattern, err := h.patternRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err, "pattern", id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pattern not found"})
			return
		}
		h.logger.Error("Failed to get pattern", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get pattern"})
		return
	}

	c.JSON(http.StatusOK, pattern)
}

// UpdatePattern handles PUT /api/v1/patterns/:id
func (h *Handler) UpdatePattern(c *gin.Context) {
	id := c.Param("id")

	var req CreatePatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid update pattern request", "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pattern, err := h.patternRepo.GetByID(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err, "pattern", id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pattern not found"})
			return
		}
		h.logger.Error("Failed to get pattern", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get pattern"})
		return
	}

	req.applyTo(pattern)

	if err := h.patternRepo.Update(c.Request.Context(), pattern); err != nil {
		h.logger.Error("Failed to update pattern", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update pattern"})
		return
	}

	h.reloadPatterns(c.Request.Context())

	h.logger.Info("Pattern updated", "id", id, "name", pattern.Name)

	c.JSON(http.StatusOK, pattern)
}

// DeactivatePattern handles DELETE /api/v1/patterns/:id. Patterns are
// deactivated, never deleted, so detection history keeps its references.
func (h *Handler) DeactivatePattern(c *gin.Context) {
	id := c.Param("id")

	h.logger.Info("Deactivating scam pattern", "id", id)

	if err := h.patternRepo.Deactivate(c.Request.Context(), id); err != nil {
		if isNotFound(err, "pattern", id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Pattern not found"})
			return
		}
		h.logger.Error("Failed to deactivate pattern", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to deactivate pattern"})
		return
	}

	h.reloadPatterns(c.Request.Context())

	c.JSON(http.StatusOK, gin.H{"message": "Pattern deactivated"})
}

// GetTipster handles GET /api/v1/tipsters/:id
func (h *Handler) GetTipster(c *gin.Context) {
	id := c.Param("id")

	profile, err := h.tipsterRepo.Get(c.Request.Context(), id)
	if err != nil {
		if isNotFound(err, "tipster", id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tipster not found"})
			return
		}
		h.logger.Error("Failed to get tipster", "id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get tipster"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// RecordTipsterOutcome handles POST /api/v1/tipsters/:id/outcome. Outcome
// bookkeeping lives here with investigators, not in the scoring engine.
func (h *Handler) RecordTipsterOutcome(c *gin.Context) {
	id := c.Param("id")

	var req RecordOutcomeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid outcome request", "tipster_id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Recording tip outcome", "tipster_id", id, "outcome", req.Outcome)

	profile, err := h.tipsterRepo.RecordOutcome(c.Request.Context(), id, req.Outcome)
	if err != nil {
		if isNotFound(err, "tipster", id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tipster not found"})
			return
		}
		h.logger.Error("Failed to record outcome", "tipster_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to record outcome"})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// BlockTipster handles POST /api/v1/tipsters/:id/block
func (h *Handler) BlockTipster(c *gin.Context) {
	id := c.Param("id")

	var req BlockTipsterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid block request", "tipster_id", id, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	h.logger.Info("Blocking tipster", "tipster_id", id, "reason", req.Reason)

	if err := h.tipsterRepo.SetBlocked(c.Request.Context(), id, true, req.Reason); err != nil {
		if isNotFound(err, "tipster", id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tipster not found"})
			return
		}
		h.logger.Error("Failed to block tipster", "tipster_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to block tipster"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tipster blocked"})
}

// UnblockTipster handles POST /api/v1/tipsters/:id/unblock
func (h *Handler) UnblockTipster(c *gin.Context) {
	id := c.Param("id")

	h.logger.Info("Unblocking tipster", "tipster_id", id)

	if err := h.tipsterRepo.SetBlocked(c.Request.Context(), id, false, ""); err != nil {
		if isNotFound(err, "tipster", id) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Tipster not found"})
			return
		}
		h.logger.Error("Failed to unblock tipster", "tipster_id", id, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to unblock tipster"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Tipster unblocked"})
}

// GetStats handles GET /api/v1/stats
func (h *Handler) GetStats(c *gin.Context) {
	h.logger.Debug("Getting verification stats")

	stats, err := h.historyRepo.Stats(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to get stats", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get stats"})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetCaseHistory handles GET /api/v1/stats/cases/:case_id
func (h *Handler) GetCaseHistory(c *gin.Context) {
	caseID := c.Param("case_id")
	limit := intQuery(c, "limit", defaultHistoryLimit, maxHistoryLimit)

	h.logger.Debug("Getting case verification history", "case_id", caseID, "limit", limit)

	records, err := h.historyRepo.ListByCase(c.Request.Context(), caseID, limit)
	if err != nil {
		h.logger.Error("Failed to get case history", "case_id", caseID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get case history"})
		return
	}

	c.JSON(http.StatusOK, CaseHistoryResponse{
		CaseID:  caseID,
		Records: records,
		Total:   len(records),
	})
}

// HealthCheck handles GET /health
func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": "tipline",
		"version": verifier.EngineVersion,
	})
}

// ReadyCheck handles GET /ready
func (h *Handler) ReadyCheck(c *gin.Context) {
	checks := gin.H{}
	ready := true

	if h.dbPing != nil {
		if err := h.dbPing(); err != nil {
			checks["postgresql"] = err.Error()
			ready = false
		} else {
			checks["postgresql"] = "ok"
		}
	}

	if h.catalog != nil && h.catalog.LoadedAt().IsZero() {
		checks["patterns"] = "not loaded"
		ready = false
	} else {
		checks["patterns"] = "ok"
	}

	if !ready {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "not ready", "checks": checks})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ready", "checks": checks})
}

// reloadPatterns refreshes the detector snapshot after a catalog mutation.
func (h *Handler) reloadPatterns(ctx context.Context) {
	if h.catalog == nil {
		return
	}
	if err := h.catalog.Reload(ctx); err != nil {
		h.logger.Error("Failed to reload pattern snapshot", "error", err)
	}
}

// isNotFound matches the repositories' not-found errors.
func isNotFound(err error, kind, id string) bool {
	return err.Error() == fmt.Sprintf("%s not found: %s", kind, id)
}

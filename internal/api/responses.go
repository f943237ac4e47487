package api

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jonesrussell/tipline/internal/domain"
	"github.com/jonesrussell/tipline/internal/processor"
)

const (
	defaultHistoryLimit = 50
	maxHistoryLimit     = 500
)

// VerifyRequest represents a single verification request. The case context
// rides along because case records belong to the case-management service.
type VerifyRequest struct {
	Tip  *domain.TipVerificationInput `json:"tip"  binding:"required"`
	Case *domain.CaseContext          `json:"case" binding:"required"`
}

// VerifyResponse represents a verification response
type VerifyResponse struct {
	Result *domain.VerificationResult `json:"result"`
}

// BatchVerifyRequest represents a batch verification request
type BatchVerifyRequest struct {
	Jobs []*processor.VerifyJob `json:"jobs" binding:"required,min=1,dive,required"`
}

// BatchVerifyResponse represents a batch verification response
type BatchVerifyResponse struct {
	Results []*processor.ProcessResult `json:"results"`
	Total   int                        `json:"total"`
	Success int                        `json:"success"`
	Failed  int                        `json:"failed"`
}

// PatternsListResponse represents a list of scam patterns.
type PatternsListResponse struct {
	Patterns []*domain.ScamPattern `json:"patterns"`
	Total    int                   `json:"total"`
}

// CreatePatternRequest represents a request to create or update a pattern.
type CreatePatternRequest struct {
	Name                string   `json:"name"                 binding:"required"`
	Keywords            []string `json:"keywords"             binding:"required,min=1"`
	ConfidenceThreshold float64  `json:"confidence_threshold" binding:"min=0,max=1"`
	IsActive            bool     `json:"is_active"`
}

func (r *CreatePatternRequest) toPattern() *domain.ScamPattern {
	return &domain.ScamPattern{
		Name:                r.Name,
		PatternType:         domain.PatternTypeText,
		PatternData:         domain.PatternData{Keywords: r.Keywords},
		ConfidenceThreshold: r.ConfidenceThreshold,
		IsActive:            r.IsActive,
	}
}

func (r *CreatePatternRequest) applyTo(pattern *domain.ScamPattern) {
	pattern.Name = r.Name
	pattern.PatternData.Keywords = r.Keywords
	pattern.ConfidenceThreshold = r.ConfidenceThreshold
	pattern.IsActive = r.IsActive
}

// RecordOutcomeRequest represents a tip outcome report from investigators.
type RecordOutcomeRequest struct {
	Outcome string `json:"outcome" binding:"required,oneof=verified partially_verified false spam led_to_resolution"`
}

// BlockTipsterRequest represents a request to block a tipster.
type BlockTipsterRequest struct {
	Reason string `json:"reason" binding:"required"`
}

// CaseHistoryResponse represents the verification audit trail for one case.
type CaseHistoryResponse struct {
	CaseID  string                       `json:"case_id"`
	Records []*domain.VerificationRecord `json:"records"`
	Total   int                          `json:"total"`
}

// intQuery parses a bounded integer query parameter with a fallback.
func intQuery(c *gin.Context, name string, fallback, max int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	if value > max {
		return max
	}
	return value
}

package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// SetupRoutes configures all API routes. Health and metrics stay public;
// everything under /api/v1 requires a bearer token when a secret is set.
func SetupRoutes(router *gin.Engine, handler *Handler, jwtSecret string, metricsHandler http.Handler) {
	// Health and readiness checks
	router.GET("/health", handler.HealthCheck)
	router.GET("/ready", handler.ReadyCheck)

	if metricsHandler != nil {
		router.GET("/metrics", gin.WrapH(metricsHandler))
	}

	// API v1 routes
	v1 := router.Group("/api/v1")
	if jwtSecret != "" {
		v1.Use(JWTMiddleware(jwtSecret))
	}

	// Verification endpoints
	verify := v1.Group("/verify")
	verify.POST("", handler.Verify)            // POST /api/v1/verify
	verify.POST("/batch", handler.VerifyBatch) // POST /api/v1/verify/batch

	// Scam pattern catalog endpoints
	patterns := v1.Group("/patterns")
	patterns.GET("", handler.ListPatterns)             // GET /api/v1/patterns
	patterns.POST("", handler.CreatePattern)           // POST /api/v1/patterns
	patterns.GET("/:id", handler.GetPattern)           // GET /api/v1/patterns/:id
	patterns.PUT("/:id", handler.UpdatePattern)        // PUT /api/v1/patterns/:id
	patterns.DELETE("/:id", handler.DeactivatePattern) // DELETE /api/v1/patterns/:id

	// Tipster endpoints
	tipsters := v1.Group("/tipsters")
	tipsters.GET("/:id", handler.GetTipster)                    // GET /api/v1/tipsters/:id
	tipsters.POST("/:id/outcome", handler.RecordTipsterOutcome) // POST /api/v1/tipsters/:id/outcome
	tipsters.POST("/:id/block", handler.BlockTipster)           // POST /api/v1/tipsters/:id/block
	tipsters.POST("/:id/unblock", handler.UnblockTipster)       // POST /api/v1/tipsters/:id/unblock

	// Statistics endpoints
	stats := v1.Group("/stats")
	stats.GET("", handler.GetStats)                      // GET /api/v1/stats
	stats.GET("/cases/:case_id", handler.GetCaseHistory) // GET /api/v1/stats/cases/:case_id
}

package patterns

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jonesrussell/tipline/internal/domain"
	"github.com/jonesrussell/tipline/internal/telemetry"
)

// Logger defines the logging interface
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// Lister loads active scam patterns from storage.
type Lister interface {
	List(ctx context.Context, activeOnly bool) ([]*domain.ScamPattern, error)
}

// Catalog caches the active scam patterns so every verification reads a
// consistent snapshot instead of hitting the database. Reload swaps the
// snapshot atomically; readers never see a half-loaded catalog.
type Catalog struct {
	repo      Lister
	telemetry *telemetry.Provider
	logger    Logger

	mu       sync.RWMutex
	snapshot []domain.ScamPattern
	loadedAt time.Time
}

// NewCatalog creates an empty catalog. Call Reload before serving traffic.
func NewCatalog(repo Lister, tel *telemetry.Provider, logger Logger) *Catalog {
	return &Catalog{
		repo:      repo,
		telemetry: tel,
		logger:    logger,
	}
}

// Reload replaces the cached snapshot with the active patterns from storage.
// On failure the previous snapshot stays in place.
func (c *Catalog) Reload(ctx context.Context) error {
	rows, err := c.repo.List(ctx, true)
	if err != nil {
		return fmt.Errorf("failed to reload scam patterns: %w", err)
	}

	snapshot := make([]domain.ScamPattern, 0, len(rows))
	for _, row := range rows {
		snapshot = append(snapshot, *row)
	}

	c.mu.Lock()
	c.snapshot = snapshot
	c.loadedAt = time.Now()
	c.mu.Unlock()

	if c.telemetry != nil {
		c.telemetry.RecordPatternReload(ctx)
	}

	c.logger.Info("Scam patterns reloaded", "count", len(snapshot))

	return nil
}

// Snapshot returns the cached active patterns. The returned slice is shared;
// callers must not mutate it.
func (c *Catalog) Snapshot() []domain.ScamPattern {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// LoadedAt returns when the current snapshot was taken.
func (c *Catalog) LoadedAt() time.Time {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.loadedAt
}

// Run refreshes the catalog on the given interval until the context is
// cancelled. Reload failures are logged and retried on the next tick.
func (c *Catalog) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	c.logger.Info("Pattern catalog refresher started", "interval", interval.String())

	for {
		select {
		case <-ctx.Done():
			c.logger.Info("Pattern catalog refresher stopped")
			return
		case <-ticker.C:
			if err := c.Reload(ctx); err != nil {
				c.logger.Error("Scheduled pattern reload failed", "error", err)
			}
		}
	}
}

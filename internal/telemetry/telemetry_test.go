package telemetry_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonesrussell/tipline/internal/telemetry"
)

// providerOnce ensures we only create one Provider per test run to avoid
// duplicate Prometheus metric registration errors from promauto's global registry
var (
	testProvider *telemetry.Provider
	providerOnce sync.Once
)

func getTestProvider(t *testing.T) *telemetry.Provider {
	t.Helper()
	providerOnce.Do(func() {
		testProvider = telemetry.NewProvider()
	})
	return testProvider
}

func TestNewProvider(t *testing.T) {
	provider := getTestProvider(t)
	if provider == nil {
		t.Fatal("expected non-nil provider")
	}
	if provider.Tracer == nil {
		t.Error("expected non-nil tracer")
	}
	if provider.Metrics == nil {
		t.Error("expected non-nil metrics")
	}
}

func TestRecordVerification(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	// Should not panic
	provider.RecordVerification(ctx, "1", 100*time.Millisecond)
	provider.RecordVerification(ctx, "3", 50*time.Microsecond)
}

func TestRecordTriage(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	provider.RecordTriage(ctx, "medium", nil, false, 0)
	provider.RecordTriage(ctx, "spam", []string{"impossible_timeline", "spam_signature"}, true, 85)
}

func TestRecordPatternMatch(t *testing.T) {
	provider := getTestProvider(t)
	ctx := context.Background()

	provider.RecordPatternMatch(ctx, 5*time.Millisecond, 25, 3)
	provider.RecordPatternReload(ctx)
}

func TestSetActiveWorkers(t *testing.T) {
	provider := getTestProvider(t)

	provider.SetActiveWorkers(4)
	provider.SetActiveWorkers(0)
	provider.RecordBatchSize(25)
}

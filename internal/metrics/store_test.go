package metrics

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/thedadreport/family-recipe-garden/internal/shared"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore(filepath.Join(t.TempDir(), "metrics.db"))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordAndDailyUsage(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	metrics := []GenerationMetric{
		{AgentName: "recipe", Model: "claude-sonnet-4", PromptTokens: 100, CompletionTokens: 50, LatencyMS: 1200, Attempts: 1},
		{AgentName: "recipe", Model: "claude-sonnet-4", PromptTokens: 200, CompletionTokens: 80, LatencyMS: 900, Attempts: 2},
		{AgentName: "planner", Model: "claude-sonnet-4", Fallback: true},
	}
	for _, m := range metrics {
		if err := store.Record(ctx, m); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}

	usage, err := store.GetDailyUsage(ctx, 7)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(usage) != 1 {
		t.Fatalf("Expected 1 day of usage, got %d", len(usage))
	}
	day := usage[0]
	if day.Calls != 3 {
		t.Errorf("Expected 3 calls, got %d", day.Calls)
	}
	if day.TotalPrompt != 300 {
		t.Errorf("Expected 300 prompt tokens, got %d", day.TotalPrompt)
	}
	if day.TotalCompletion != 130 {
		t.Errorf("Expected 130 completion tokens, got %d", day.TotalCompletion)
	}
	if day.Fallbacks != 1 {
		t.Errorf("Expected 1 fallback, got %d", day.Fallbacks)
	}
}

func TestRecordMeta(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("RecordsTokenUsage", func(t *testing.T) {
		meta := shared.CallMeta{
			AgentName: "recipe",
			Usage:     shared.TokenUsage{PromptTokens: 150, CompletionTokens: 60, Model: "claude-sonnet-4"},
			Latency:   2 * time.Second,
			Attempts:  1,
		}
		if err := store.RecordMeta(ctx, meta); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		usage, err := store.GetDailyUsage(ctx, 1)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if len(usage) != 1 || usage[0].Calls != 1 {
			t.Fatalf("Expected one recorded call, got %+v", usage)
		}
	})

	t.Run("SkipsEmptyCalls", func(t *testing.T) {
		meta := shared.CallMeta{AgentName: "recipe", Attempts: 1}
		if err := store.RecordMeta(ctx, meta); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		usage, err := store.GetDailyUsage(ctx, 1)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if usage[0].Calls != 1 {
			t.Errorf("Expected empty call to be skipped, got %d calls", usage[0].Calls)
		}
	})

	t.Run("RecordsFallbackWithoutTokens", func(t *testing.T) {
		meta := shared.CallMeta{AgentName: "planner", Fallback: true, Attempts: 3}
		if err := store.RecordMeta(ctx, meta); err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}

		usage, err := store.GetDailyUsage(ctx, 1)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if usage[0].Fallbacks != 1 {
			t.Errorf("Expected 1 fallback, got %d", usage[0].Fallbacks)
		}
	})
}

func TestCleanup(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	old := GenerationMetric{
		AgentName: "recipe", Model: "claude-sonnet-4",
		PromptTokens: 10, CompletionTokens: 5,
		Timestamp: time.Now().UTC().AddDate(0, 0, -60),
	}
	recent := GenerationMetric{
		AgentName: "recipe", Model: "claude-sonnet-4",
		PromptTokens: 20, CompletionTokens: 8,
	}
	if err := store.Record(ctx, old); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if err := store.Record(ctx, recent); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	removed, err := store.Cleanup(ctx, 30)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if removed != 1 {
		t.Errorf("Expected 1 record removed, got %d", removed)
	}

	usage, err := store.GetDailyUsage(ctx, 90)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(usage) != 1 {
		t.Errorf("Expected 1 remaining day of usage, got %d", len(usage))
	}
}

func TestGetSysHealth(t *testing.T) {
	health := GetSysHealth(t.TempDir())
	if health.Goroutines < 1 {
		t.Errorf("Expected at least one goroutine, got %d", health.Goroutines)
	}
	if health.DataDirSize == "" {
		t.Error("Expected data dir size to be reported")
	}
}

package signal

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"signal-desk/internal/domain"
)

func testAsset(t *testing.T) domain.Asset {
	t.Helper()
	a, ok := domain.FindAsset("BTCUSD")
	if !ok {
		t.Fatal("BTCUSD missing from catalog")
	}
	return a
}

func TestGenerateBuildsPendingSignal(t *testing.T) {
	g := NewGenerator(rand.NewPCG(1, 2), func() string { return "INF-1" })
	now := time.Date(2026, 10, 14, 8, 30, 0, 0, time.UTC)

	s := g.Generate(testAsset(t), "5m", now)
	if s.ID != "INF-1" || s.Timeframe != "5m" || s.Asset.ID != "BTCUSD" {
		t.Fatalf("unexpected signal: %+v", s)
	}
	if s.Status != domain.StatusPending || !s.Timestamp.Equal(now) {
		t.Fatalf("unexpected status/timestamp: %+v", s)
	}
}

func TestGenerateDefaultIDsAreUnique(t *testing.T) {
	g := NewGenerator(nil, nil)
	seen := make(map[string]bool)
	for i := 0; i < 500; i++ {
		s := g.Generate(testAsset(t), "1m", time.Now())
		if !strings.HasPrefix(s.ID, "INF-") {
			t.Fatalf("expected INF- prefix, got %s", s.ID)
		}
		if seen[s.ID] {
			t.Fatalf("duplicate id %s", s.ID)
		}
		seen[s.ID] = true
	}
}

func TestGenerateCoversBothDirections(t *testing.T) {
	g := NewGenerator(rand.NewPCG(7, 7), nil)
	dirs := map[domain.SignalDirection]int{}
	for i := 0; i < 200; i++ {
		dirs[g.Generate(testAsset(t), "1m", time.Now()).Direction]++
	}
	if dirs[domain.DirectionBuy] == 0 || dirs[domain.DirectionSell] == 0 {
		t.Fatalf("expected both directions, got %+v", dirs)
	}
}

func TestHistoryPrependNewestFirst(t *testing.T) {
	h := NewHistory(nil)
	for i := 0; i < 3; i++ {
		h.Prepend(domain.Signal{ID: fmt.Sprintf("s%d", i)})
	}
	items := h.Items()
	if len(items) != 3 || items[0].ID != "s2" || items[2].ID != "s0" {
		t.Fatalf("unexpected order: %+v", items)
	}
	head, ok := h.Head()
	if !ok || head.ID != "s2" {
		t.Fatalf("unexpected head: %+v", head)
	}
}

func TestHistoryItemsIsACopy(t *testing.T) {
	h := NewHistory([]domain.Signal{{ID: "a", Status: domain.StatusPending}})
	items := h.Items()
	items[0].Status = domain.StatusFailed
	if s, _ := h.Find("a"); s.Status != domain.StatusPending {
		t.Fatal("mutating the returned slice must not affect history")
	}
}

func TestApplyFeedback(t *testing.T) {
	h := NewHistory([]domain.Signal{
		{ID: "new", Status: domain.StatusPending},
		{ID: "old", Status: domain.StatusPending},
	})

	updated, err := h.ApplyFeedback("old", domain.StatusConfirmed)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Status != domain.StatusConfirmed {
		t.Fatalf("expected confirmed, got %s", updated.Status)
	}
	if s, _ := h.Find("old"); s.Status != domain.StatusConfirmed {
		t.Fatalf("history entry not updated: %+v", s)
	}

	if _, err := h.ApplyFeedback("old", domain.StatusFailed); !errors.Is(err, ErrFeedbackClosed) {
		t.Fatalf("expected ErrFeedbackClosed, got %v", err)
	}
	if s, _ := h.Find("old"); s.Status != domain.StatusConfirmed {
		t.Fatalf("terminal status was overwritten: %+v", s)
	}

	if _, err := h.ApplyFeedback("missing", domain.StatusFailed); !errors.Is(err, ErrSignalNotFound) {
		t.Fatalf("expected ErrSignalNotFound, got %v", err)
	}
	if _, err := h.ApplyFeedback("new", domain.StatusPending); !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}

package metrics

import (
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"signal-desk/internal/domain"
	"signal-desk/internal/session"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordEventOutcomes(t *testing.T) {
	m := New()
	m.RecordEvent(session.EventSelectAsset, nil)
	m.RecordEvent(session.EventSelectAsset, fmt.Errorf("select: %w", session.ErrMarketClosed))
	m.RecordEvent(session.EventNewCycle, session.ErrQuotaExhausted)
	m.RecordEvent(session.EventBack, errors.New("other"))

	cases := []struct {
		ev      session.EventType
		outcome string
	}{
		{session.EventSelectAsset, "ok"},
		{session.EventSelectAsset, "market_closed"},
		{session.EventNewCycle, "quota_exhausted"},
		{session.EventBack, "rejected"},
	}
	for _, tc := range cases {
		if got := testutil.ToFloat64(m.Events.WithLabelValues(string(tc.ev), tc.outcome)); got != 1 {
			t.Fatalf("%s/%s: expected 1, got %v", tc.ev, tc.outcome, got)
		}
	}
}

func TestRecordEventCollapsesUnknownTypes(t *testing.T) {
	m := New()
	for i := 0; i < 50; i++ {
		m.RecordEvent(session.EventType(fmt.Sprintf("junk-%d", i)), session.ErrUnknownEvent)
	}

	if got := testutil.CollectAndCount(m.Events); got != 1 {
		t.Fatalf("expected a single series for unknown types, got %d", got)
	}
	if got := testutil.ToFloat64(m.Events.WithLabelValues("unknown", "unknown_event")); got != 50 {
		t.Fatalf("expected 50 unknown events, got %v", got)
	}
}

func TestRecordSignalAndReset(t *testing.T) {
	m := New()
	m.RecordSignal(domain.TierElite)
	m.RecordSignal(domain.TierElite)
	m.RecordReset()

	if got := testutil.ToFloat64(m.Signals.WithLabelValues("ELITE")); got != 2 {
		t.Fatalf("expected 2 elite signals, got %v", got)
	}
	if got := testutil.ToFloat64(m.QuotaResets); got != 1 {
		t.Fatalf("expected 1 reset, got %v", got)
	}
}

func TestHandlerServesRegistry(t *testing.T) {
	m := New()
	m.RecordReset()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "signal_desk_quota_resets_total 1") {
		t.Fatalf("expected reset counter in output, got:\n%s", body)
	}
}

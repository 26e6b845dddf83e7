package job

import (
	"context"
	"io"
	"sync/atomic"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/trace"
)

func TestQuotaResetPollerStart(t *testing.T) {
	t.Parallel()

	tracer := trace.NewNoopTracerProvider().Tracer("test")
	stub := &stubResetter{}
	poller := NewQuotaResetPoller(tracer, stub, 5*time.Millisecond, log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()

	eventually(t, func() bool { return stub.calls.Load() >= 3 })
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("poller did not stop after cancel")
	}
}

func TestQuotaResetPollerRunsImmediately(t *testing.T) {
	tracer := trace.NewNoopTracerProvider().Tracer("test")
	stub := &stubResetter{fired: 2}
	poller := NewQuotaResetPoller(tracer, stub, time.Hour, log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go poller.Start(ctx)

	eventually(t, func() bool { return stub.calls.Load() == 1 })
}

func TestQuotaResetPollerDefaults(t *testing.T) {
	poller := NewQuotaResetPoller(trace.NewNoopTracerProvider().Tracer("test"), &stubResetter{}, 0, nil)
	if poller.interval != DefaultQuotaPollInterval {
		t.Fatalf("expected default interval, got %s", poller.interval)
	}
	if poller.logger == nil {
		t.Fatal("expected default logger")
	}
}

func TestQuotaResetPollerDisabledWithoutResetter(t *testing.T) {
	poller := NewQuotaResetPoller(trace.NewNoopTracerProvider().Tracer("test"), nil, time.Millisecond, log.New(io.Discard))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		poller.Start(ctx)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("disabled poller did not return after cancel")
	}
}

type stubResetter struct {
	calls atomic.Int32
	fired int
}

func (s *stubResetter) CheckResets(ctx context.Context) int {
	s.calls.Add(1)
	return s.fired
}

func eventually(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(500 * time.Millisecond)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(2 * time.Millisecond)
	}
	t.Fatal("condition not met before deadline")
}

package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"signal-desk/internal/market"
	"signal-desk/internal/metrics"
	"signal-desk/internal/session"
	"signal-desk/internal/signal"
	"signal-desk/internal/store"
	"signal-desk/internal/tier"

	"github.com/charmbracelet/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const maxSessionIDLen = 128

var ErrInvalidSessionID = errors.New("invalid session id")

// SessionService owns one live Session per session id. Sessions are created
// lazily from persisted preferences and share the generator, market hours
// and tier secrets.
type SessionService struct {
	tracer    trace.Tracer
	kv        store.KV
	logger    *log.Logger
	now       func() time.Time
	hours     market.Hours
	generator *signal.Generator
	tiers     tier.Manager
	metrics   *metrics.Metrics
	namespace string

	mu       sync.Mutex
	sessions map[string]*session.Session
}

type SessionServiceConfig struct {
	Now       func() time.Time
	Hours     market.Hours
	Generator *signal.Generator
	Tiers     tier.Manager
	Logger    *log.Logger
	// Metrics is optional.
	Metrics *metrics.Metrics
	// Namespace separates this process's keys from other front-ends that
	// share the store. Sessions are cached per process, so two processes
	// must never share a namespace.
	Namespace string
}

func NewSessionService(tracer trace.Tracer, kv store.KV, cfg SessionServiceConfig) *SessionService {
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if cfg.Generator == nil {
		cfg.Generator = signal.NewGenerator(nil, nil)
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	return &SessionService{
		tracer:    tracer,
		kv:        kv,
		logger:    cfg.Logger,
		now:       cfg.Now,
		hours:     cfg.Hours,
		generator: cfg.Generator,
		tiers:     cfg.Tiers,
		metrics:   cfg.Metrics,
		namespace: cfg.Namespace,
		sessions:  make(map[string]*session.Session),
	}
}

// Get returns the live session for id, restoring it from the store on first use.
func (s *SessionService) Get(ctx context.Context, id string) (*session.Session, error) {
	ctx, span := s.tracer.Start(ctx, "session-service.get")
	defer span.End()

	id = strings.TrimSpace(id)
	if id == "" || len(id) > maxSessionIDLen || strings.ContainsAny(id, ": \t\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSessionID, id)
	}
	span.SetAttributes(attribute.String("session.id", id))

	if sess, ok := s.lookup(id); ok {
		return sess, nil
	}

	// Load outside the lock; a slow store must not stall other sessions.
	prefs := store.NewNamespacedPreferences(s.kv, s.namespace, id, s.logger)
	st := prefs.Load(ctx, s.now())

	s.mu.Lock()
	defer s.mu.Unlock()
	if sess, ok := s.sessions[id]; ok {
		return sess, nil
	}
	opts := session.Options{
		Now:       s.now,
		Hours:     s.hours,
		Generator: s.generator,
		Tiers:     s.tiers,
		Persister: prefs,
		Logger:    s.logger,
	}
	if s.metrics != nil {
		opts.Recorder = s.metrics
	}
	sess := session.New(ctx, id, st, opts)
	s.sessions[id] = sess
	if s.metrics != nil {
		s.metrics.LiveSessions.Set(float64(len(s.sessions)))
	}
	s.logger.Debug("session restored", "session", id, "tier", st.Tier, "used", st.SignalsUsed)
	return sess, nil
}

func (s *SessionService) lookup(id string) (*session.Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	return sess, ok
}

// Dispatch routes ev to the session id. Rejected events return the resulting
// snapshot together with the rejection.
func (s *SessionService) Dispatch(ctx context.Context, id string, ev session.Event) (session.Snapshot, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return session.Snapshot{}, err
	}

	ctx, span := s.tracer.Start(ctx, "session-service.dispatch")
	defer span.End()
	span.SetAttributes(
		attribute.String("session.id", sess.ID()),
		attribute.String("session.event", string(ev.Type)),
	)

	snap, err := sess.Dispatch(ctx, ev)
	if err != nil {
		span.SetAttributes(attribute.String("session.rejection", err.Error()))
	}
	return snap, err
}

func (s *SessionService) Snapshot(ctx context.Context, id string) (session.Snapshot, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return session.Snapshot{}, err
	}
	return sess.Snapshot(), nil
}

// Sessions lists the live sessions ordered by id.
func (s *SessionService) Sessions() []*session.Session {
	s.mu.Lock()
	out := make([]*session.Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	s.mu.Unlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// CheckResets runs the quota window check on every live session and returns
// how many were reset.
func (s *SessionService) CheckResets(ctx context.Context) int {
	ctx, span := s.tracer.Start(ctx, "session-service.check-resets")
	defer span.End()

	fired := 0
	for _, sess := range s.Sessions() {
		if sess.CheckReset(ctx) {
			fired++
		}
	}
	span.SetAttributes(attribute.Int("session.resets", fired))
	return fired
}

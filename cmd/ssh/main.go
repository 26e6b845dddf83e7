package main

import (
	"context"
	"errors"
	"net"
	"os"
	ossignal "os/signal"
	"strconv"
	"syscall"
	"time"

	"signal-desk/internal/app"
	"signal-desk/internal/config"
	"signal-desk/internal/job"
	"signal-desk/internal/market"
	"signal-desk/internal/tui"
	"signal-desk/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/charmbracelet/wish/logging"
	"github.com/joho/godotenv"
)

const sessionLookupTimeout = 5 * time.Second

var (
	loadEnvFunc           = godotenv.Load
	loadConfigFunc        = config.Load
	initTracerFunc        = tracing.InitTracer
	openStoreFunc         = app.OpenStore
	newSessionServiceFunc = app.NewSessionService
	startPollerFunc       = func(p *job.QuotaResetPoller, ctx context.Context) { go p.Start(ctx) }
	setupSignalNotify     = ossignal.Notify
	waitForSignalFunc     = func(quit <-chan os.Signal) { <-quit }
	startSSHServerFunc    = func(srv *ssh.Server) error { return srv.ListenAndServe() }
	shutdownSSHServerFunc = func(srv *ssh.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// SessionRegistry resolves the session for an SSH user.
type SessionRegistry interface {
	Get(ctx context.Context, id string) (tui.SessionDriver, error)
}

func main() {
	_ = loadEnvFunc()

	cfg := loadConfigFunc()
	log.SetLevel(cfg.LogLevel)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		log.Fatal("failed to initialize tracer", "err", err)
	}
	defer func() {
		if err := tp.Shutdown(context.Background()); err != nil {
			log.Error("error shutting down tracer provider", "err", err)
		}
	}()

	kv, closeStore, err := openStoreFunc(ctx, cfg, tracer)
	if err != nil {
		log.Fatal("failed to open store", "backend", cfg.StoreBackend, "err", err)
	}
	defer closeStore()

	sessions := newSessionServiceFunc(cfg, tracer, kv, app.NamespaceSSH, nil)
	startPollerFunc(job.NewQuotaResetPoller(tracer, sessions, cfg.QuotaPollInterval(), log.Default()), ctx)

	srv, err := newServer(cfg, registryFunc(func(ctx context.Context, id string) (tui.SessionDriver, error) {
		return sessions.Get(ctx, id)
	}))
	if err != nil {
		log.Fatal("could not create ssh server", "err", err)
	}

	go func() {
		log.Info("ssh server listening", "addr", srv.Addr)
		if err := startSSHServerFunc(srv); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			log.Fatal("listen", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info("Shutting down ssh server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := shutdownSSHServerFunc(srv, shutdownCtx); err != nil {
		log.Error("ssh server forced to shutdown", "err", err)
	}
	log.Info("SSH server exiting")
}

type registryFunc func(ctx context.Context, id string) (tui.SessionDriver, error)

func (f registryFunc) Get(ctx context.Context, id string) (tui.SessionDriver, error) {
	return f(ctx, id)
}

func newServer(cfg *config.Config, sessions SessionRegistry) (*ssh.Server, error) {
	return wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.SSHHost, strconv.Itoa(cfg.SSHPort))),
		wish.WithHostKeyPath(cfg.SSHHostKeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(teaHandler(cfg, sessions)),
			activeterm.Middleware(),
			logging.Middleware(),
		),
	)
}

// teaHandler starts one TUI per connection, keyed by the SSH user name.
func teaHandler(cfg *config.Config, sessions SessionRegistry) bubbletea.Handler {
	return func(s ssh.Session) (tea.Model, []tea.ProgramOption) {
		ctx, cancel := context.WithTimeout(context.Background(), sessionLookupTimeout)
		defer cancel()

		sess, err := sessions.Get(ctx, s.User())
		if err != nil {
			log.Warn("rejecting ssh session", "user", s.User(), "err", err)
			wish.Fatalln(s, "signal-desk: "+err.Error())
			return nil, nil
		}
		m := tui.NewAppModel(tui.Services{
			Session:       sess,
			AnalysisDelay: cfg.AnalysisDelay(),
			Hours:         market.NewHours(cfg.MarketLocation),
			Username:      s.User(),
		})
		return m, []tea.ProgramOption{tea.WithAltScreen()}
	}
}

package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"signal-desk/internal/app"
	"signal-desk/internal/config"
	"signal-desk/internal/market"
	"signal-desk/internal/tui"
	"signal-desk/pkg/tracing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
)

var (
	loadEnvFunc    = godotenv.Load
	loadConfigFunc = config.Load
	initTracerFunc = tracing.InitTracer
	openStoreFunc  = app.OpenStore
	runProgramFunc = func(m tea.Model) error {
		_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
		return err
	}
)

func main() {
	id := flag.String("session", defaultSessionID(), "session id used for persisted state")
	flag.Parse()

	if err := run(*id); err != nil {
		fmt.Fprintln(os.Stderr, "signal-desk:", err)
		os.Exit(1)
	}
}

func run(id string) error {
	_ = loadEnvFunc()
	cfg := loadConfigFunc()
	// The program owns the terminal, so only warnings and above are logged.
	log.SetLevel(log.WarnLevel)

	ctx := context.Background()
	tp, tracer, err := initTracerFunc(ctx)
	if err != nil {
		return fmt.Errorf("init tracer: %w", err)
	}
	defer func() { _ = tp.Shutdown(context.Background()) }()

	kv, closeStore, err := openStoreFunc(ctx, cfg, tracer)
	if err != nil {
		return err
	}
	defer closeStore()

	sess, err := app.NewSessionService(cfg, tracer, kv, app.NamespaceLocal, nil).Get(ctx, id)
	if err != nil {
		return err
	}
	return runProgramFunc(tui.NewAppModel(tui.Services{
		Session:       sess,
		AnalysisDelay: cfg.AnalysisDelay(),
		Hours:         market.NewHours(cfg.MarketLocation),
		Username:      id,
	}))
}

func defaultSessionID() string {
	if u := os.Getenv("USER"); u != "" {
		return u
	}
	return "local"
}

package main

import (
	"context"
	"net/http"
	"os"
	ossignal "os/signal"
	"strconv"
	"syscall"
	"time"

	_ "signal-desk/docs"
	"signal-desk/internal/app"
	"signal-desk/internal/bot"
	"signal-desk/internal/config"
	"signal-desk/internal/handler"
	"signal-desk/internal/job"
	"signal-desk/internal/metrics"
	"signal-desk/pkg/tracing"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

var (
	loadEnvFunc            = godotenv.Load
	loadConfigFunc         = config.Load
	initTracerFunc         = tracing.InitTracer
	openStoreFunc          = app.OpenStore
	newSessionServiceFunc  = app.NewSessionService
	newQuotaPollerFunc     = job.NewQuotaResetPoller
	startPollerFunc        = func(p *job.QuotaResetPoller, ctx context.Context) { go p.Start(ctx) }
	startTelegramBotFunc   = bot.StartTelegramBot
	newRouterFunc          = gin.Default
	setupSignalNotify      = ossignal.Notify
	waitForSignalFunc      = func(quit <-chan os.Signal) { <-quit }
	startHTTPServerFunc    = func(srv *http.Server) error { return srv.ListenAndServe() }
	shutdownHTTPServerFunc = func(srv *http.Server, ctx context.Context) error { return srv.Shutdown(ctx) }
)

// @title           Signal Desk API
// @version         1.0
// @description     Guided trade-signal sessions with tiered quota accounting, served over HTTP and websocket.

// @host      localhost:8080
// @BasePath  /
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

	m := metrics.New()
	sessions := newSessionServiceFunc(cfg, tracer, kv, app.NamespaceAPI, m)

	// Quota resets run until ctx is cancelled.
	poller := newQuotaPollerFunc(tracer, sessions, cfg.QuotaPollInterval(), log.Default())
	startPollerFunc(poller, ctx)

	tg, err := startTelegramBotFunc(cfg.TelegramBotToken, sessions, cfg.AnalysisDelay())
	if err != nil {
		log.Error("telegram bot disabled", "err", err)
	}
	if tg != nil {
		defer tg.Stop()
	}

	h := handler.New(tracer, sessions, handler.NewHub())

	r := newRouterFunc()
	r.Use(otelgin.Middleware(tracing.ServiceName))
	r.Use(handler.CORS(cfg.CORSOrigins))
	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(m.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	srv := &http.Server{
		Addr:    httpAddr(cfg),
		Handler: r,
	}

	go func() {
		log.Info("http server listening", "addr", srv.Addr)
		if err := startHTTPServerFunc(srv); err != nil && err != http.ErrServerClosed {
			log.Fatal("listen", "err", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	setupSignalNotify(quit, syscall.SIGINT, syscall.SIGTERM)
	waitForSignalFunc(quit)
	log.Info("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := shutdownHTTPServerFunc(srv, shutdownCtx); err != nil {
		log.Error("server forced to shutdown", "err", err)
	}

	log.Info("Server exiting")
}

func httpAddr(cfg *config.Config) string {
	return ":" + strconv.Itoa(cfg.HTTPPort)
}

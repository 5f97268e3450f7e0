package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/meli-product-tracker/internal/api/handlers"
	apimw "github.com/donaldgifford/meli-product-tracker/internal/api/middleware"
	"github.com/donaldgifford/meli-product-tracker/internal/config"
	"github.com/donaldgifford/meli-product-tracker/internal/engine"
	"github.com/donaldgifford/meli-product-tracker/internal/meli"
	"github.com/donaldgifford/meli-product-tracker/internal/notify"
	applog "github.com/donaldgifford/meli-product-tracker/pkg/logger"
	"github.com/donaldgifford/meli-product-tracker/pkg/summarize"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level: parseLogLevel(cfg.Logging.Level),
	})

	// Components log through slog. Text format renders via charmbracelet,
	// JSON goes straight to a JSON handler.
	slogger := slog.New(logger)
	if cfg.Logging.Format == "json" {
		slogger = applog.New(cfg.Logging.Level, "json")
	}

	// MercadoLibre API client.
	tokens := meli.NewClientCredentialsProvider(
		cfg.Meli.ClientID,
		cfg.Meli.ClientSecret,
		meli.WithTokenURL(cfg.Meli.TokenURL),
	)
	limiter := meli.NewRateLimiter(
		cfg.Meli.RateLimit.PerSecond,
		cfg.Meli.RateLimit.Burst,
		cfg.Meli.RateLimit.DailyLimit,
	)
	market := meli.NewClient(
		tokens,
		meli.WithAPIURL(cfg.Meli.APIURL),
		meli.WithSite(cfg.Meli.Site),
		meli.WithRateLimiter(limiter),
		meli.WithClientLogger(slogger),
	)

	// Enrichment pipeline.
	enricher := engine.NewEnricher(
		market,
		engine.WithSubqueryTimeout(cfg.Pipeline.SubqueryTimeout),
		engine.WithEnricherLogger(slogger),
	)
	eng := engine.NewEngine(
		market,
		enricher,
		engine.WithWorkers(cfg.Pipeline.Workers),
		engine.WithTokenProvider(tokens),
		engine.WithLogger(slogger),
	)
	session := engine.NewSession(initialModel(cfg))

	// Summary backend.
	backend, err := buildBackend(cfg)
	if err != nil {
		return err
	}
	summarizer := summarize.NewSummarizer(backend)

	var notifier notify.Notifier = notify.NewNoOpNotifier(slogger)
	if cfg.Notifications.Discord.Enabled {
		notifier = notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(apimw.RequestLog(slogger))
	e.Use(apimw.Recovery(slogger))
	e.Use(apimw.Metrics())

	health := handlers.NewHealthHandler(tokens)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)

	// Prometheus metrics.
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("meli-product-tracker", Version))
	handlers.RegisterCategoriesRoutes(api, handlers.NewCategoriesHandler())
	handlers.RegisterFetchRoutes(api, handlers.NewFetchHandler(eng, session))
	handlers.RegisterBatchRoutes(api, handlers.NewBatchHandler(session))
	handlers.RegisterModelsRoutes(api, handlers.NewModelsHandler(session))

	// SSE streaming and file downloads bypass huma.
	summary := handlers.NewSummaryHandler(summarizer, session, slogger)
	e.POST("/api/v1/summary/stream", summary.Stream)
	e.GET("/api/v1/summary/download", summary.Download)

	exports := handlers.NewExportHandler(session)
	e.GET("/api/v1/export/csv", exports.CSV)
	e.GET("/api/v1/export/xlsx", exports.XLSX)

	var sched *engine.Scheduler
	if cfg.Schedule.RefreshEnabled {
		sched, err = engine.NewScheduler(
			eng,
			session,
			notifier,
			cfg.Schedule.RefreshCategory,
			cfg.Schedule.RefreshLimit,
			cfg.Schedule.RefreshInterval,
			slogger,
		)
		if err != nil {
			return fmt.Errorf("creating scheduler: %w", err)
		}
		sched.Start()
	}

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("starting server", "addr", addr, "backend", summarizer.Backend())

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
		}
	}()

	// Wait for interrupt signal.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if sched != nil {
		select {
		case <-sched.Stop().Done():
		case <-ctx.Done():
			logger.Warn("scheduler did not stop in time")
		}
	}

	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	logger.Info("server stopped")
	return nil
}

// initialModel picks the session's starting summary model. A configured
// Groq model wins when it is in the catalog, otherwise the default.
func initialModel(cfg *config.Config) string {
	if cfg.LLM.Backend == "groq" {
		if _, ok := summarize.LookupModel(cfg.LLM.Groq.Model); ok {
			return cfg.LLM.Groq.Model
		}
	}
	return summarize.DefaultModelID
}

func buildBackend(cfg *config.Config) (summarize.StreamBackend, error) {
	switch cfg.LLM.Backend {
	case "groq":
		apiKey := cfg.LLM.Groq.APIKey
		if apiKey == "" {
			apiKey = os.Getenv("GROQ_API_KEY")
		}
		return summarize.NewGroqBackend(
			cfg.LLM.Groq.Model,
			summarize.WithGroqEndpoint(cfg.LLM.Groq.Endpoint),
			summarize.WithGroqAPIKey(apiKey),
		), nil
	case "ollama":
		return summarize.NewOllamaBackend(cfg.LLM.Ollama.Endpoint, cfg.LLM.Ollama.Model), nil
	default:
		return nil, fmt.Errorf("unknown llm backend %q", cfg.LLM.Backend)
	}
}

func parseLogLevel(level string) log.Level {
	switch level {
	case "debug":
		return log.DebugLevel
	case "warn":
		return log.WarnLevel
	case "error":
		return log.ErrorLevel
	default:
		return log.InfoLevel
	}
}

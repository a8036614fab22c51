package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	"github.com/pbelx/ibm-hackathon/internal/ai"
	"github.com/pbelx/ibm-hackathon/internal/config"
	"github.com/pbelx/ibm-hackathon/internal/db"
	"github.com/pbelx/ibm-hackathon/internal/events"
	httpapi "github.com/pbelx/ibm-hackathon/internal/http"
	"github.com/pbelx/ibm-hackathon/internal/http/handlers"
	"github.com/pbelx/ibm-hackathon/internal/metrics"
	"github.com/pbelx/ibm-hackathon/internal/refdata"
	"github.com/pbelx/ibm-hackathon/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	zerolog.TimeFieldFormat = time.RFC3339
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		level = zerolog.InfoLevel
	}
	logger := log.Level(level).With().Str("service", "dispatch-backend").Str("env", cfg.Env).Logger()

	refs, err := refdata.Load(refdata.Paths{
		Territory: cfg.TerritoryFile,
		Roster:    cfg.RosterFile,
		Locale:    cfg.LocaleFile,
	})
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load reference data")
	}
	sum := refdata.Summarize(refs)
	logger.Info().
		Int("zones", sum.Zones).
		Int("areas", sum.Areas).
		Int("technicians", sum.Technicians).
		Int("available", sum.Available).
		Msg("reference data loaded")

	ctx := context.Background()
	var store db.LeadStore
	if cfg.DatabaseURL == "" {
		store = db.NewMemoryStore()
		logger.Warn().Msg("DATABASE_URL not set, leads are kept in memory")
	} else {
		pg, err := db.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("failed to connect db")
		}
		if err := pg.EnsureSchema(ctx); err != nil {
			logger.Fatal().Err(err).Msg("failed to apply schema")
		}
		store = pg
	}
	defer store.Close()

	var publisher events.Publisher
	if cfg.RedisURL != "" {
		sp, err := events.NewStreamPublisher(cfg.RedisURL, cfg.LeadsStream)
		if err != nil {
			logger.Fatal().Err(err).Msg("invalid REDIS_URL")
		}
		if err := sp.Ping(ctx); err != nil {
			logger.Warn().Err(err).Msg("redis unreachable, lead events will fail until it recovers")
		}
		defer sp.Close()
		publisher = sp
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	recorder := service.NewLeadRecorder(store, publisher, cfg.RecorderBuffer, logger, m)
	recorder.Start()

	svc := &service.DispatchService{
		Refs:            refs,
		Analyzer:        newAnalyzer(cfg, logger),
		Generator:       newGenerator(cfg, logger),
		Recorder:        recorder,
		Metrics:         m,
		Logger:          logger,
		AnalyzeTimeout:  cfg.NLUTimeout,
		GenerateTimeout: cfg.GeneratorTimeout,
	}

	h := &handlers.Handler{
		Service:    svc,
		Store:      store,
		Validator:  validator.New(),
		Logger:     logger,
		LeadsLimit: cfg.LeadsLimit,
	}
	router := httpapi.Router(cfg, h, reg, logger)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info().Str("port", cfg.Port).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctxShutdown)
	recorder.Close()
	logger.Info().Msg("server stopped")
}

func newAnalyzer(cfg config.Config, logger zerolog.Logger) ai.Analyzer {
	if !cfg.AnalyzerEnabled() {
		logger.Info().Msg("text analysis disabled")
		return nil
	}
	if cfg.NLUURL != "" {
		return ai.HTTPAnalyzer{
			BaseURL: cfg.NLUURL,
			APIKey:  cfg.NLUAPIKey,
			Limit:   cfg.NLUKeywordLimit,
			Client:  &http.Client{Timeout: cfg.NLUTimeout},
			Limiter: rate.NewLimiter(rate.Limit(10), 5),
		}
	}
	logger.Info().Msg("using mock text analyzer")
	return ai.MockAnalyzer{}
}

func newGenerator(cfg config.Config, logger zerolog.Logger) ai.Generator {
	if !cfg.GeneratorEnabled() {
		logger.Info().Msg("message generation disabled, using templates")
		return nil
	}
	if cfg.GeneratorBaseURL != "" && cfg.GeneratorModel != "" {
		return ai.NewOpenAICompatGenerator(ai.GeneratorConfig{
			BaseURL:   cfg.GeneratorBaseURL,
			Model:     cfg.GeneratorModel,
			APIKey:    cfg.GeneratorAPIKey,
			MaxTokens: cfg.GeneratorMaxTokens,
			Timeout:   cfg.GeneratorTimeout,
			RPS:       cfg.GeneratorRPS,
			CacheTTL:  cfg.GeneratorCacheTTL,
		})
	}
	logger.Info().Msg("using mock message generator")
	return ai.MockGenerator{}
}

package app

import (
	"github.com/klokku/meeting-fatigue/internal/config"
	"github.com/klokku/meeting-fatigue/internal/metrics"
	"github.com/klokku/meeting-fatigue/internal/utils"
	"github.com/klokku/meeting-fatigue/pkg/analysis"
	"github.com/klokku/meeting-fatigue/pkg/analytics"
	"github.com/klokku/meeting-fatigue/pkg/categorizer"
	"github.com/klokku/meeting-fatigue/pkg/google"
	"github.com/klokku/meeting-fatigue/pkg/oracle"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	log "github.com/sirupsen/logrus"
)

// Dependencies holds all services and handlers for the application.
type Dependencies struct {
	Registry *prometheus.Registry
	Metrics  *metrics.Recorder
	Clock    utils.Clock

	Oracle      categorizer.Oracle
	Categorizer *categorizer.Categorizer
	Engine      *analytics.Engine

	GoogleClient *google.Client
	GoogleAuth   *google.Auth

	AnalysisService *analysis.ServiceImpl
	CsvRenderer     *analytics.CsvRenderer
	AnalysisHandler *analysis.Handler
}

// BuildDependencies initializes and wires all application services and handlers.
func BuildDependencies(cfg config.Application) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Registry = prometheus.NewRegistry()
	deps.Registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder, err := metrics.NewRecorder(deps.Registry)
	if err != nil {
		return nil, err
	}
	deps.Metrics = recorder
	deps.Clock = &utils.SystemClock{}

	deps.Oracle = NewOracle(cfg.Oracle)
	deps.Categorizer = NewCategorizer(cfg.Oracle, deps.Oracle, deps.Metrics)
	deps.Engine = NewEngine(cfg.Analysis)

	deps.GoogleClient = google.NewClient(deps.Clock)
	deps.GoogleAuth = google.NewAuth(cfg)

	deps.AnalysisService = analysis.NewService(deps.GoogleClient, deps.GoogleClient, deps.Categorizer, deps.Engine, deps.Metrics)
	deps.CsvRenderer = analytics.NewCsvRenderer()
	deps.AnalysisHandler = analysis.NewHandler(deps.AnalysisService, deps.CsvRenderer, cfg)

	return deps, nil
}

// NewOracle returns the OpenAI-compatible oracle, or a disabled one when no
// API key is configured.
func NewOracle(cfg config.Oracle) categorizer.Oracle {
	if cfg.ApiKey == "" {
		log.Warn("No oracle API key configured, meetings will be categorized by keyword rules only")
		return oracle.Disabled{}
	}
	return oracle.NewOpenAI(oracle.Config{
		ApiKey:           cfg.ApiKey,
		BaseURL:          cfg.BaseUrl,
		Model:            cfg.Model,
		Timeout:          cfg.Timeout,
		FailureThreshold: int(cfg.FailureThreshold),
		BreakerTimeout:   cfg.BreakerTimeout,
	})
}

func NewCategorizer(cfg config.Oracle, o categorizer.Oracle, recorder *metrics.Recorder) *categorizer.Categorizer {
	batchDelay := cfg.BatchDelay
	if _, disabled := o.(oracle.Disabled); disabled {
		// nothing to rate limit
		batchDelay = 0
	}
	return categorizer.NewCategorizer(o, categorizer.Config{
		BatchSize:  cfg.BatchSize,
		BatchDelay: batchDelay,
	}, recorder)
}

func NewEngine(cfg config.Analysis) *analytics.Engine {
	return analytics.NewEngine(analytics.Config{
		WindowDays: cfg.DefaultDays,
		WeekStart:  cfg.FirstWeekday(),
	})
}


package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/anapaulaelz/final-practicum-project/internal/cache"
	"github.com/anapaulaelz/final-practicum-project/internal/domain"
	"github.com/anapaulaelz/final-practicum-project/internal/ingest"
	"github.com/anapaulaelz/final-practicum-project/internal/pipeline"
	"github.com/anapaulaelz/final-practicum-project/internal/report"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

const reportTitle = "Inventory Health Analysis"

// ErrNoCachedDashboard is returned when the cache holds no dashboard yet.
var ErrNoCachedDashboard = errors.New("no cached dashboard")

// DashboardPublisher uploads a finished dashboard somewhere the frontend can
// reach it.
type DashboardPublisher interface {
	Publish(ctx context.Context, runID string, at time.Time, data []byte) ([]string, error)
}

// AnalysisOptions selects the inputs and outputs of one run.
type AnalysisOptions struct {
	Paths      ingest.Paths
	OutputFile string
	Report     io.Writer
}

// AnalysisOutcome describes a finished run.
type AnalysisOutcome struct {
	Run         *pipeline.Run
	Result      *pipeline.Result
	OutputFile  string
	Published   []string
	DocumentLen int
}

// AnalysisService runs the load, analyze, report and write steps of a run.
type AnalysisService struct {
	loader       *ingest.Loader
	config       pipeline.Config
	quickExclude []string
	cache        cache.DashboardCache
	publisher    DashboardPublisher
	now          func() time.Time
	newRunID     func() string
}

// NewAnalysisService wires a service. cacheImpl and publisher may be nil.
func NewAnalysisService(cfg pipeline.Config, quickExclude []string, cacheImpl cache.DashboardCache, publisher DashboardPublisher) *AnalysisService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &AnalysisService{
		loader:       ingest.NewLoader(),
		config:       cfg,
		quickExclude: quickExclude,
		cache:        cacheImpl,
		publisher:    publisher,
		now:          time.Now,
		newRunID:     func() string { return uuid.NewString() },
	}
}

func (s *AnalysisService) startRun(ctx context.Context) (*pipeline.Run, context.Context, *zerolog.Logger) {
	run := &pipeline.Run{
		ID:        s.newRunID(),
		Status:    pipeline.StatusProcessing,
		StartedAt: s.now(),
	}
	logger := log.With().Str("run_id", run.ID).Logger()
	return run, logger.WithContext(ctx), &logger
}

// Analyze performs a full run: every report section is printed, the dashboard
// document is written to OutputFile and then cached and published. Nothing
// is written when loading fails.
func (s *AnalysisService) Analyze(ctx context.Context, opts AnalysisOptions) (*AnalysisOutcome, error) {
	run, ctx, logger := s.startRun(ctx)
	logger.Info().Str("inventory", opts.Paths.Inventory).Msg("analysis started")

	outcome, err := s.analyze(ctx, run, opts, logger)
	if err != nil {
		run.Fail(s.now(), err)
		logger.Error().Err(err).Dur("duration", run.Duration()).Msg("analysis failed")
		return nil, err
	}

	run.Complete(s.now())
	logger.Info().
		Dur("duration", run.Duration()).
		Int("products", outcome.Result.Metrics.TotalProducts).
		Int("reorders", outcome.Result.Metrics.ReorderCount).
		Str("output", outcome.OutputFile).
		Msg("analysis completed")
	return outcome, nil
}

func (s *AnalysisService) analyze(ctx context.Context, run *pipeline.Run, opts AnalysisOptions, logger *zerolog.Logger) (*AnalysisOutcome, error) {
	if opts.OutputFile == "" {
		return nil, fmt.Errorf("output file must be set")
	}

	ds, err := s.loader.LoadAll(ctx, opts.Paths)
	if err != nil {
		return nil, err
	}

	result := pipeline.NewAnalyzer(s.config).Analyze(pipeline.Input{
		Inventory: ds.Inventory,
		Sales:     ds.Sales,
		Partners:  ds.Partners,
	})

	doc := report.BuildDashboard(result, s.now())
	data, err := report.MarshalDashboard(doc)
	if err != nil {
		return nil, err
	}

	if opts.Report != nil {
		r := report.NewTextReporter(opts.Report, s.config.Thresholds)
		r.WriteTitle(reportTitle)
		r.WriteLoadSummary(len(ds.Inventory), len(ds.Sales), len(ds.Partners))
		r.WriteReport(result)
	}

	if err := report.WriteDashboardFile(opts.OutputFile, data); err != nil {
		return nil, err
	}

	outcome := &AnalysisOutcome{
		Run:         run,
		Result:      result,
		OutputFile:  opts.OutputFile,
		DocumentLen: len(data),
	}

	if err := s.cache.SetLatest(ctx, run.ID, data); err != nil {
		logger.Warn().Err(err).Msg("dashboard cache set failed")
	}

	if s.publisher != nil {
		keys, err := s.publisher.Publish(ctx, run.ID, run.StartedAt, data)
		if err != nil {
			return nil, fmt.Errorf("dashboard written to %s but not published: %w", opts.OutputFile, err)
		}
		outcome.Published = keys
	}

	if opts.Report != nil {
		report.NewTextReporter(opts.Report, s.config.Thresholds).WriteSaved(opts.OutputFile)
	}

	return outcome, nil
}

// Quick prints the short dashboard check. The quick exclusion list is applied
// on top of the configured one and nothing is written.
func (s *AnalysisService) Quick(ctx context.Context, paths ingest.Paths, w io.Writer) (*pipeline.Result, error) {
	run, ctx, logger := s.startRun(ctx)

	ds, err := s.loader.LoadAll(ctx, paths)
	if err != nil {
		run.Fail(s.now(), err)
		return nil, err
	}

	cfg := s.config
	cfg.ExcludeProducts = append(append([]string{}, s.config.ExcludeProducts...), s.quickExclude...)
	result := pipeline.NewAnalyzer(cfg).Analyze(pipeline.Input{
		Inventory: ds.Inventory,
		Sales:     ds.Sales,
		Partners:  ds.Partners,
	})

	report.NewTextReporter(w, s.config.Thresholds).WriteQuick(result)

	run.Complete(s.now())
	logger.Info().Dur("duration", run.Duration()).Int("products", result.Metrics.TotalProducts).Msg("quick analysis completed")
	return result, nil
}

// Financials prints the financial aggregates of the latest snapshot.
func (s *AnalysisService) Financials(ctx context.Context, paths ingest.Paths, w io.Writer) (*pipeline.Financials, error) {
	run, ctx, logger := s.startRun(ctx)

	ds, err := s.loader.LoadAll(ctx, paths)
	if err != nil {
		run.Fail(s.now(), err)
		return nil, err
	}

	result := pipeline.NewAnalyzer(s.config).Analyze(pipeline.Input{
		Inventory: ds.Inventory,
		Sales:     ds.Sales,
		Partners:  ds.Partners,
	})
	report.NewTextReporter(w, s.config.Thresholds).WriteFinancials(result.Financials)

	run.Complete(s.now())
	logger.Info().Dur("duration", run.Duration()).Str("total_value", result.Financials.TotalInventoryValue.StringFixed(2)).Msg("financials computed")
	return &result.Financials, nil
}

// CachedDashboard writes the latest cached dashboard to w. An empty status
// writes the raw document; CRITICAL or LOW prints only that class's rows.
func (s *AnalysisService) CachedDashboard(ctx context.Context, status string, w io.Writer) error {
	var filter domain.StockStatus
	if status != "" {
		parsed, err := domain.ParseStockStatus(status)
		if err != nil {
			return err
		}
		if !parsed.NeedsAttention() {
			return fmt.Errorf("dashboard does not list %s stock products", parsed.Label())
		}
		filter = parsed
	}

	data, ok, err := s.cache.GetLatest(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNoCachedDashboard
	}

	if filter == "" {
		_, err = w.Write(data)
		return err
	}

	var doc domain.DashboardDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("failed to decode cached dashboard: %w", err)
	}
	report.NewTextReporter(w, s.config.Thresholds).WriteStockDetails(&doc, filter)
	return nil
}

// ClearCache drops every cached dashboard, the latest one and per-run copies.
func (s *AnalysisService) ClearCache(ctx context.Context) error {
	if err := s.cache.InvalidateAll(ctx); err != nil {
		return fmt.Errorf("failed to clear dashboard cache: %w", err)
	}
	log.Info().Msg("dashboard cache cleared")
	return nil
}

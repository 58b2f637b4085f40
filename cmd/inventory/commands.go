package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/anapaulaelz/final-practicum-project/internal/cache"
	"github.com/anapaulaelz/final-practicum-project/internal/config"
	"github.com/anapaulaelz/final-practicum-project/internal/domain"
	"github.com/anapaulaelz/final-practicum-project/internal/drive"
	"github.com/anapaulaelz/final-practicum-project/internal/ingest"
	"github.com/anapaulaelz/final-practicum-project/internal/pipeline"
	"github.com/anapaulaelz/final-practicum-project/internal/service"
	"github.com/anapaulaelz/final-practicum-project/internal/storage"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"
)

func pipelineConfig(cfg config.Config) pipeline.Config {
	return pipeline.Config{
		Thresholds: domain.Thresholds{
			Critical: cfg.Thresholds.Critical,
			Low:      cfg.Thresholds.Low,
		},
		Planner: pipeline.PlannerConfig{
			CoverageDays:             cfg.Planner.CoverageDays,
			MinReorderQty:            cfg.Planner.MinReorderQty,
			FallbackRecommendedStock: cfg.Planner.FallbackRecommendedStock,
			FallbackReorderQty:       cfg.Planner.FallbackReorderQty,
		},
		Financials: pipeline.FinancialOptions{
			Markup:           cfg.Financials.Markup,
			PremiumUnitCost:  cfg.Financials.PremiumUnitCost,
			ReorderCoverDays: cfg.Financials.ReorderCoverDays,
			ReorderSafetyQty: cfg.Financials.ReorderSafetyQty,
			MinReorderQty:    float64(cfg.Planner.MinReorderQty),
		},
		ExcludeProducts: cfg.App.ExcludeProducts,
	}
}

func inputPaths(cfg config.Config) ingest.Paths {
	return ingest.ResolvePaths(cfg.App.DataDir, cfg.App.InventoryFile, cfg.App.SalesFile, cfg.App.PartnersFile)
}

func newObjectStorage(cfg config.StorageConfig) (*storage.S3Client, error) {
	return storage.NewS3Client(storage.S3Config{
		Endpoint:  cfg.Endpoint,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
		Bucket:    cfg.Bucket,
		Region:    cfg.Region,
		UseSSL:    cfg.UseSSL,
	})
}

func (s *state) newService(publish bool) (*service.AnalysisService, error) {
	dashboardCache, err := cache.NewDashboardCache(s.cfg.Cache)
	if err != nil {
		// the cache only feeds the frontend; a run without it is still useful
		log.Warn().Err(err).Msg("dashboard cache unavailable, continuing without it")
		dashboardCache = cache.NewNoopDashboardCache()
	}

	var publisher service.DashboardPublisher
	if publish {
		client, err := newObjectStorage(s.cfg.Storage)
		if err != nil {
			return nil, fmt.Errorf("failed to set up object storage: %w", err)
		}
		publisher = storage.NewPublisher(client, s.cfg.Storage.Prefix)
	}

	return service.NewAnalysisService(pipelineConfig(s.cfg), s.cfg.App.QuickExcludeList, dashboardCache, publisher), nil
}

// newCacheService connects to redis without the no-op fallback, since the
// cache commands have nothing to do without it.
func (s *state) newCacheService() (*service.AnalysisService, error) {
	if !s.cfg.Cache.Enabled {
		return nil, fmt.Errorf("dashboard cache is disabled, set CACHE_ENABLED=true")
	}
	dashboardCache, err := cache.NewDashboardCache(s.cfg.Cache)
	if err != nil {
		return nil, err
	}
	return service.NewAnalysisService(pipelineConfig(s.cfg), s.cfg.App.QuickExcludeList, dashboardCache, nil), nil
}

func (s *state) runAnalyze(c *cli.Context) error {
	output := s.cfg.App.OutputFile
	if c.IsSet("output") {
		output = c.String("output")
	}

	svc, err := s.newService(c.Bool("publish-storage") || s.cfg.Storage.Enabled)
	if err != nil {
		return err
	}

	opts := service.AnalysisOptions{
		Paths:      inputPaths(s.cfg),
		OutputFile: output,
	}
	if !c.Bool("quiet") {
		opts.Report = os.Stdout
	}

	outcome, err := svc.Analyze(c.Context, opts)
	if err != nil {
		return err
	}
	for _, key := range outcome.Published {
		fmt.Fprintf(os.Stdout, "Published: %s\n", key)
	}
	return nil
}

func (s *state) runQuick(c *cli.Context) error {
	svc, err := s.newService(false)
	if err != nil {
		return err
	}
	_, err = svc.Quick(c.Context, inputPaths(s.cfg), os.Stdout)
	return err
}

func (s *state) runFinancials(c *cli.Context) error {
	svc, err := s.newService(false)
	if err != nil {
		return err
	}
	_, err = svc.Financials(c.Context, inputPaths(s.cfg), os.Stdout)
	return err
}

func (s *state) runFetch(c *cli.Context) error {
	paths := inputPaths(s.cfg)

	var (
		fetched []string
		err     error
	)
	switch source := strings.ToLower(c.String("source")); source {
	case "drive":
		fetched, err = s.fetchFromDrive(c, paths)
	case "s3", "storage":
		fetched, err = s.fetchFromStorage(c, paths)
	default:
		return fmt.Errorf("unknown source %q, expected drive or s3", source)
	}
	if err != nil {
		return err
	}

	if len(fetched) == 0 {
		return fmt.Errorf("no input exports found at the source")
	}
	for _, p := range fetched {
		fmt.Fprintf(os.Stdout, "Fetched: %s\n", p)
	}
	return nil
}

func (s *state) fetchFromDrive(c *cli.Context, paths ingest.Paths) ([]string, error) {
	driveSvc, err := drive.NewService(c.Context, s.cfg.Drive.CredentialsJSON)
	if err != nil {
		return nil, fmt.Errorf("failed to create Drive service: %w", err)
	}

	folderID := c.String("drive-folder-id")
	if folderID == "" {
		folderID = s.cfg.Drive.FolderID
	}
	if folderID == "" {
		folderID, err = driveSvc.FindFolderByPath(c.Context, c.String("drive-folder-path"))
		if err != nil {
			return nil, err
		}
	}

	log.Info().Str("folder_id", folderID).Str("data_dir", s.cfg.App.DataDir).Msg("downloading exports from Drive")
	return drive.NewDownloader(driveSvc).DownloadInputs(c.Context, folderID, paths.Match)
}

func (s *state) fetchFromStorage(c *cli.Context, paths ingest.Paths) ([]string, error) {
	client, err := newObjectStorage(s.cfg.Storage)
	if err != nil {
		return nil, fmt.Errorf("failed to set up object storage: %w", err)
	}

	log.Info().Str("prefix", storage.InputsPrefix(s.cfg.Storage.Prefix)).Msg("downloading exports from object storage")
	return storage.NewPublisher(client, s.cfg.Storage.Prefix).FetchInputs(c.Context, paths.Match)
}

func (s *state) runCacheShow(c *cli.Context) error {
	svc, err := s.newCacheService()
	if err != nil {
		return err
	}
	return svc.CachedDashboard(c.Context, c.String("status"), os.Stdout)
}

func (s *state) runCacheClear(c *cli.Context) error {
	svc, err := s.newCacheService()
	if err != nil {
		return err
	}
	if err := svc.ClearCache(c.Context); err != nil {
		return err
	}
	fmt.Fprintln(os.Stdout, "Dashboard cache cleared")
	return nil
}

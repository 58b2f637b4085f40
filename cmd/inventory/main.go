package main

import (
	"fmt"
	"os"

	"github.com/anapaulaelz/final-practicum-project/internal/config"
	"github.com/anapaulaelz/final-practicum-project/pkg/logger"
	"github.com/urfave/cli/v2"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Log.Error().Err(err).Msg("inventory run failed")
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// state carries the resolved config from the Before hook to the commands.
type state struct {
	cfg config.Config
}

func newApp() *cli.App {
	st := &state{}

	return &cli.App{
		Name:  "inventory",
		Usage: "Analyze inventory health and build the stock dashboard",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "data-dir",
				Usage: "Directory containing the input exports",
			},
			&cli.StringFlag{
				Name:  "inventory-file",
				Usage: "Inventory export (CSV or XLSX), relative to data-dir",
			},
			&cli.StringFlag{
				Name:  "sales-file",
				Usage: "Sales export (CSV or XLSX), relative to data-dir",
			},
			&cli.StringFlag{
				Name:  "partners-file",
				Usage: "Partner export (CSV or XLSX), relative to data-dir",
			},
			&cli.StringSliceFlag{
				Name:  "exclude",
				Usage: "Product names to leave out of the analysis",
			},
			&cli.IntFlag{
				Name:  "critical-threshold",
				Usage: "Stock at or below this is CRITICAL",
			},
			&cli.IntFlag{
				Name:  "low-threshold",
				Usage: "Stock at or below this is LOW",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Before: st.before,
		Commands: []*cli.Command{
			{
				Name:  "analyze",
				Usage: "Run the full analysis, print the report and write the dashboard JSON",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "output",
						Usage: "Dashboard JSON path",
					},
					&cli.BoolFlag{
						Name:  "publish-storage",
						Usage: "Upload the dashboard to object storage",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Do not print the text report",
					},
				},
				Action: st.runAnalyze,
			},
			{
				Name:   "quick",
				Usage:  "Print the latest stock, its classification and the headline metrics",
				Action: st.runQuick,
			},
			{
				Name:   "financials",
				Usage:  "Print inventory value, premium share, turnover and reorder value",
				Action: st.runFinancials,
			},
			{
				Name:  "fetch",
				Usage: "Download the input exports into data-dir",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "source",
						Usage: "Where to fetch from: drive or s3",
						Value: "drive",
					},
					&cli.StringFlag{
						Name:    "drive-folder-id",
						Usage:   "Google Drive folder holding the exports",
						EnvVars: []string{"GOOGLE_DRIVE_FOLDER_ID"},
					},
					&cli.StringFlag{
						Name:  "drive-folder-path",
						Usage: "Slash separated Drive folder path, used when no folder id is given",
					},
				},
				Action: st.runFetch,
			},
			{
				Name:  "cache",
				Usage: "Inspect or clear the dashboard cached in redis",
				Subcommands: []*cli.Command{
					{
						Name:  "show",
						Usage: "Print the latest cached dashboard",
						Flags: []cli.Flag{
							&cli.StringFlag{
								Name:  "status",
								Usage: "Only list products of this status: critical or low",
							},
						},
						Action: st.runCacheShow,
					},
					{
						Name:   "clear",
						Usage:  "Delete every cached dashboard",
						Action: st.runCacheClear,
					},
				},
			},
		},
	}
}

func (s *state) before(c *cli.Context) error {
	s.cfg = *config.Load()
	applyOverrides(c, &s.cfg)
	logger.SetLevel(s.cfg.Log.Level)
	return s.cfg.Validate()
}

// applyOverrides lets explicitly set flags win over the environment.
func applyOverrides(c *cli.Context, cfg *config.Config) {
	if c.IsSet("data-dir") {
		cfg.App.DataDir = c.String("data-dir")
	}
	if c.IsSet("inventory-file") {
		cfg.App.InventoryFile = c.String("inventory-file")
	}
	if c.IsSet("sales-file") {
		cfg.App.SalesFile = c.String("sales-file")
	}
	if c.IsSet("partners-file") {
		cfg.App.PartnersFile = c.String("partners-file")
	}
	if c.IsSet("exclude") {
		cfg.App.ExcludeProducts = c.StringSlice("exclude")
	}
	if c.IsSet("critical-threshold") {
		cfg.Thresholds.Critical = c.Int("critical-threshold")
	}
	if c.IsSet("low-threshold") {
		cfg.Thresholds.Low = c.Int("low-threshold")
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
}

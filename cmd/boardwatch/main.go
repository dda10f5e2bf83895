package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"boardwatch/internal/batch"
	"boardwatch/internal/config"
	"boardwatch/internal/discover"
	"boardwatch/internal/enrich"
	"boardwatch/internal/scheduler"
	"boardwatch/internal/util"

	"github.com/urfave/cli/v3"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	root := &cli.Command{
		Name:  "boardwatch",
		Usage: "discover and track company job boards hosted on an ATS platform",
		Commands: []*cli.Command{
			runCommand(),
			probeCommand(),
			diagCommand(),
		},
	}

	if err := root.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:  "data-dir",
			Usage: "directory holding the registry and config",
			Value: ".",
		},
		&cli.StringFlag{
			Name:  "config",
			Usage: "explicit config file (skips the data-dir bootstrap)",
		},
		&cli.StringFlag{
			Name:  "env",
			Usage: "env file with search credentials",
			Value: ".env",
		},
	}
}

// loadConfig resolves configuration the same way for every subcommand:
// yaml file (bootstrapped into the data dir on first run), then environment
// overlay for credentials.
func loadConfig(cmd *cli.Command) (config.Config, error) {
	dataDir := cmd.String("data-dir")
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return config.Config{}, err
	}

	cfgPath := cmd.String("config")
	if cfgPath == "" {
		p, err := config.EnsureUserConfig(dataDir, filepath.Join("config", "config.yml"))
		if err != nil {
			// No packaged default around (installed binary); built-in
			// defaults carry the run.
			cfg := config.Default()
			cfg.App.DataDir = dataDir
			if err := config.OverlayEnv(&cfg, cmd.String("env")); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		cfgPath = p
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return cfg, fmt.Errorf("config load (%s): %w", cfgPath, err)
	}
	cfg.App.DataDir = dataDir
	if err := config.OverlayEnv(&cfg, cmd.String("env")); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newRunner(cfg config.Config) *batch.Runner {
	searchLim := util.NewHostLimiter(cfg.Pacing.SearchPerSec, cfg.Pacing.Burst)
	fetchLim := util.NewHostLimiter(cfg.Pacing.FetchPerSec, cfg.Pacing.Burst)

	return &batch.Runner{
		Cfg: cfg,
		Discoverer: &discover.Sweeper{
			Searcher:      discover.NewClient(cfg, searchLim),
			Host:          cfg.Platform.Host,
			MaxStart:      cfg.Search.MaxStart,
			ProgressEvery: cfg.Output.ProgressEvery,
		},
		Enricher: enrich.NewClient(cfg, fetchLim),
	}
}

func runCommand() *cli.Command {
	return &cli.Command{
		Name:  "run",
		Usage: "run one discovery + enrichment pass",
		Flags: append(commonFlags(),
			&cli.DurationFlag{
				Name:  "every",
				Usage: "rerun on this interval instead of exiting (e.g. 24h)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Search.APIKey == "" || cfg.Search.EngineID == "" {
				log.Printf("[run] search credentials missing; every search call will fail as an auth error")
			}

			runner := newRunner(cfg)

			if every := cmd.Duration("every"); every > 0 {
				scheduler.Every(ctx, every, "run", func(ctx context.Context) error {
					_, err := runner.Run(ctx)
					return err
				})
				return nil
			}

			_, err = runner.Run(ctx)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

func probeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "brute-force word-combination slugs against the live board host",
		Flags: append(commonFlags(),
			&cli.BoolFlag{
				Name:  "save",
				Usage: "enrich hits and merge them into the registry",
			},
			&cli.IntFlag{
				Name:  "limit",
				Usage: "probe at most this many candidates (0 = all)",
			},
		),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return runProbe(ctx, cfg, int(cmd.Int("limit")), cmd.Bool("save"))
		},
	}
}

func diagCommand() *cli.Command {
	return &cli.Command{
		Name:  "diag",
		Usage: "check credentials, search API reachability and quota",
		Flags: commonFlags(),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			diagCtx, cancel := context.WithTimeout(ctx, 3*time.Minute)
			defer cancel()
			runDiag(diagCtx, cfg)
			return nil
		},
	}
}

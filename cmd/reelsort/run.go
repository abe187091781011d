package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/reelsort/reelsort/internal/config"
	"github.com/reelsort/reelsort/internal/decision"
	"github.com/reelsort/reelsort/internal/logger"
	"github.com/reelsort/reelsort/internal/metadata"
	"github.com/reelsort/reelsort/internal/metadata/omdb"
	"github.com/reelsort/reelsort/internal/metadata/querycache"
	"github.com/reelsort/reelsort/internal/metadata/ratelimit"
	"github.com/reelsort/reelsort/internal/metadata/tmdb"
	"github.com/reelsort/reelsort/internal/metadata/tvmaze"
	"github.com/reelsort/reelsort/internal/organizer"
	"github.com/reelsort/reelsort/internal/pipeline"
	"github.com/reelsort/reelsort/internal/probe"
	"github.com/reelsort/reelsort/internal/report"
	"github.com/reelsort/reelsort/internal/scoring"
)

const clientTimeout = 10 * time.Second

func newRunCommand(configFlag *string) *cobra.Command {
	var (
		srcFlag     string
		dstFlag     string
		reportFlag  string
		applyFlag   bool
		verboseFlag bool
	)

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Scan, identify, and organize a source directory",
		Long: `Scan a source directory for media files, group them into logical items,
resolve each against metadata catalogs, and move confident matches into the
library. Uncertain items land in the review directory with a side-car
explaining the doubt.

Without --apply nothing is moved; the run prints what it would do.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configFlag)
			if err != nil {
				return err
			}
			if srcFlag != "" {
				cfg.Paths.Source = srcFlag
			}
			if dstFlag != "" {
				cfg.Paths.Library = dstFlag
			}
			if reportFlag != "" {
				cfg.Paths.Report = reportFlag
			}
			if cfg.Paths.Source == "" {
				return fmt.Errorf("no source directory: set --src or paths.source")
			}
			if cfg.Paths.Library == "" {
				return fmt.Errorf("no library directory: set --dst or paths.library")
			}
			if verboseFlag {
				cfg.Logging.Level = "debug"
			}
			return runPipeline(cmd, cfg, !applyFlag)
		},
	}

	cmd.Flags().StringVar(&srcFlag, "src", "", "source directory to scan")
	cmd.Flags().StringVar(&dstFlag, "dst", "", "library root for accepted items")
	cmd.Flags().StringVar(&reportFlag, "report", "", "path for the JSON run report")
	cmd.Flags().BoolVar(&applyFlag, "apply", false, "perform moves instead of printing them")
	cmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "enable debug logging")

	return cmd
}

func runPipeline(cmd *cobra.Command, cfg *config.Config, dryRun bool) error {
	log := logger.New(logger.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Path:   cfg.Logging.Path,
	})
	defer log.Close()

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var prober probe.Prober = probe.Null{}
	if cfg.Behavior.ProbeFiles {
		ff := probe.NewFFprobe(cfg.Behavior.FFprobePath, log.Logger)
		if ff.Available() {
			prober = ff
		} else {
			log.Warn().Msg("ffprobe not found, technical hints disabled")
		}
	}

	var cache metadata.Cache = metadata.NullCache{}
	if cfg.Resolver.CachePath != "" {
		store, err := querycache.Open(cfg.Resolver.CachePath, cfg.CacheTTL(), log.Logger)
		if err != nil {
			log.Warn().Err(err).Msg("query cache unavailable, continuing without")
		} else {
			defer store.Close()
			cache = store
		}
	}

	movieSources, tvSources := buildSources(cfg, log)
	if len(movieSources) == 0 && len(tvSources) == 0 {
		log.Warn().Msg("no metadata source configured, every item will need review")
	}

	resolver := metadata.NewResolver(
		movieSources,
		tvSources,
		metadata.FallbackPolicy(cfg.Sources.MovieFallbackPolicy),
		cache,
		ratelimit.New(cfg.RateLimitInterval()),
		log.Logger,
	)

	scorer := scoring.New(scoring.Config{
		Weights: scoring.Weights{
			Title:   cfg.Scoring.TitleWeight,
			Year:    cfg.Scoring.YearWeight,
			Keyword: cfg.Scoring.KeywordWeight,
		},
		YearTolerance: cfg.Thresholds.YearTolerance,
		MinConfidence: cfg.Thresholds.MinConfidence,
	}, log.Logger)

	engine := decision.New(decision.Thresholds{
		AutoAccept: cfg.Thresholds.AutoAccept,
		Quarantine: cfg.Thresholds.Quarantine,
	}, cfg.Behavior.IgnoreGlobs, log.Logger)

	var mover organizer.Mover = organizer.NewFileMover(log.Logger)
	if dryRun {
		mover = organizer.DryRunMover{}
	}
	executor := organizer.NewExecutor(organizer.Config{
		LibraryRoot: cfg.Paths.Library,
		ReviewRoot:  cfg.Paths.Review,
		Naming:      cfg.Naming,
		WriteNFO:    cfg.Behavior.WriteNFO,
		DryRun:      dryRun,
	}, mover, log.Logger)

	pipe := pipeline.New(pipeline.Options{
		SourceDir: cfg.Paths.Source,
		Prober:    prober,
		Resolver:  resolver,
		Scorer:    scorer,
		Engine:    engine,
		Executor:  executor,
		Workers:   cfg.Resolver.Workers,
		Logger:    log.Logger,
	})

	rep := report.New(cfg.Paths.Source, cfg.Paths.Library, dryRun)
	if err := pipe.Run(ctx, rep); err != nil {
		return err
	}

	rep.PrintSummary(cmd.OutOrStdout())

	if cfg.Paths.Report != "" {
		if err := rep.Save(cfg.Paths.Report); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		log.Info().Str("path", cfg.Paths.Report).Msg("report written")
	}
	return nil
}

// buildSources assembles the catalog lineup. TMDB is the primary movie
// source with OMDb as fallback; shows query TMDB and TVmaze together.
func buildSources(cfg *config.Config, log *logger.Logger) (movie, tv []metadata.Source) {
	if cfg.Sources.TMDBAPIKey != "" {
		c := tmdb.NewClient(tmdb.Config{APIKey: cfg.Sources.TMDBAPIKey, Timeout: clientTimeout}, log.Logger)
		movie = append(movie, c)
		tv = append(tv, c)
	}
	if cfg.Sources.OMDBAPIKey != "" {
		movie = append(movie, omdb.NewClient(omdb.Config{APIKey: cfg.Sources.OMDBAPIKey, Timeout: clientTimeout}, log.Logger))
	}
	if cfg.Sources.TVmazeEnabled {
		tv = append(tv, tvmaze.NewClient(tvmaze.Config{Timeout: clientTimeout}, log.Logger))
	}
	return movie, tv
}

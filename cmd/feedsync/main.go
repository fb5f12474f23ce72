package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/umputun/feedsync/pkg/config"
	"github.com/umputun/feedsync/pkg/content"
	"github.com/umputun/feedsync/pkg/feed"
	"github.com/umputun/feedsync/pkg/reconcile"
	"github.com/umputun/feedsync/pkg/repository"
	"github.com/umputun/feedsync/pkg/sanitize"
	"github.com/umputun/feedsync/pkg/scheduler"
	"github.com/umputun/feedsync/server"
)

// Opts with all CLI options
type Opts struct {
	Config string `short:"c" long:"config" env:"CONFIG" description:"configuration file, defaults are used when empty"`
	Listen string `short:"l" long:"listen" env:"LISTEN" description:"listen address, overrides config"`
	DB     string `long:"db" env:"DB" description:"database dsn, overrides config"`
	Once   bool   `long:"once" description:"refresh all feeds once and exit"`

	// common options
	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	Version bool `short:"V" long:"version" description:"show version info"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
}

var revision = "unknown"

func main() {
	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if opts.Version {
		fmt.Printf("Version: %s\nGolang: %s\n", revision, runtime.Version())
		os.Exit(0)
	}

	setupLog(opts.Debug, opts.NoColor)
	log.Printf("[INFO] starting feedsync version %s", revision)

	ctx, cancel := context.WithCancel(context.Background())

	// handle termination signals
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
		<-sigChan
		log.Print("[INFO] termination signal received")
		cancel()
	}()

	err := run(ctx, opts)
	cancel()
	if err != nil {
		log.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
	log.Print("[INFO] shutdown complete")
}

// run wires all components and blocks until ctx is canceled, or until the single refresh is done in once mode
func run(ctx context.Context, opts Opts) error {
	cfg, err := loadConfig(opts)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	repo, err := repository.Shared(ctx, repository.Config{
		DSN:             cfg.Database.DSN,
		MaxOpenConns:    cfg.Database.MaxOpenConns,
		MaxIdleConns:    cfg.Database.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Database.ConnMaxLifetime) * time.Second,
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer func() {
		if err := repository.CloseShared(); err != nil {
			log.Printf("[WARN] failed to close database: %v", err)
		}
	}()

	refresher := newRefresher(cfg, repo)

	seeds := make([]scheduler.SeedFeed, 0, len(cfg.Feeds))
	for _, f := range cfg.GetFeeds() {
		seeds = append(seeds, scheduler.SeedFeed{URL: f.URL, Tags: f.Tags})
	}
	if _, err := refresher.Seed(ctx, seeds); err != nil {
		return fmt.Errorf("failed to seed feeds: %w", err)
	}

	if opts.Once {
		results, err := refresher.RefreshAll(ctx)
		if err != nil {
			return fmt.Errorf("failed to refresh feeds: %w", err)
		}
		for _, res := range results {
			if res.Error != "" {
				log.Printf("[WARN] feed %s: %s", res.FeedURL, res.Error)
				continue
			}
			log.Printf("[INFO] feed %s: %d added, %d updated, %d total", res.FeedURL, res.Added, res.Updated, res.Total)
		}
		return nil
	}

	sched := scheduler.NewScheduler(refresher, cfg.Schedule.UpdateInterval)
	sched.Start(ctx)
	defer sched.Stop()

	srv := server.New(cfg, refresher, revision, opts.Debug)
	if err := srv.Run(ctx); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}

// loadConfig reads the config file if set, then applies command line overrides
func loadConfig(opts Opts) (*config.Config, error) {
	cfg := config.Default()
	if opts.Config != "" {
		var err error
		if cfg, err = config.Load(opts.Config); err != nil {
			return nil, err
		}
	}
	if opts.Listen != "" {
		cfg.Server.Listen = opts.Listen
	}
	if opts.DB != "" {
		cfg.Database.DSN = opts.DB
	}
	return cfg, nil
}

// newRefresher builds the ingestion pipeline on top of the catalog store
func newRefresher(cfg *config.Config, repo *repository.Repository) *scheduler.Refresher {
	sanitizer := sanitize.New()
	fetcher := feed.NewFetcher(feed.FetcherParams{
		Timeout:     cfg.Fetch.Timeout,
		UserAgent:   cfg.Fetch.UserAgent,
		MaxBodySize: cfg.Fetch.MaxBodySize,
	})

	params := scheduler.RefresherParams{
		Store:           repo,
		Reconciler:      reconcile.New(repo),
		Fetcher:         fetcher,
		Normalizer:      feed.NewNormalizer(sanitizer),
		Discoverer:      feed.NewDiscoverer(fetcher),
		MaxWorkers:      cfg.Schedule.MaxWorkers,
		ReaderMinLength: cfg.Extraction.ReaderMinLength,
	}

	if ext := cfg.GetExtractionConfig(); ext.Enabled {
		// article pages get their own timeout, they are slower than feed documents
		pageFetcher := feed.NewFetcher(feed.FetcherParams{
			Timeout:     ext.Timeout,
			UserAgent:   cfg.Fetch.UserAgent,
			MaxBodySize: cfg.Fetch.MaxBodySize,
		})
		params.Extractor = content.NewExtractor(content.Params{
			Fetcher:       pageFetcher,
			Sanitizer:     sanitizer,
			RateLimit:     ext.RateLimit,
			Burst:         ext.Burst,
			IncludeImages: ext.IncludeImages,
			IncludeLinks:  ext.IncludeLinks,
		})
	}

	return scheduler.NewRefresher(params)
}

func setupLog(dbg, noColor bool, secs ...string) {
	logOpts := []lgr.Option{lgr.Msec, lgr.LevelBraces}
	if dbg {
		logOpts = []lgr.Option{lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces, lgr.StackTraceOnError}
	}

	if !noColor {
		colorizer := lgr.Mapper{
			ErrorFunc:  func(s string) string { return color.New(color.FgHiRed).Sprint(s) },
			WarnFunc:   func(s string) string { return color.New(color.FgRed).Sprint(s) },
			InfoFunc:   func(s string) string { return color.New(color.FgYellow).Sprint(s) },
			DebugFunc:  func(s string) string { return color.New(color.FgWhite).Sprint(s) },
			CallerFunc: func(s string) string { return color.New(color.FgBlue).Sprint(s) },
			TimeFunc:   func(s string) string { return color.New(color.FgCyan).Sprint(s) },
		}
		logOpts = append(logOpts, lgr.Map(colorizer))
	}
	if len(secs) > 0 {
		logOpts = append(logOpts, lgr.Secret(secs...))
	}
	lgr.SetupStdLogger(logOpts...)
	lgr.Setup(logOpts...)
}

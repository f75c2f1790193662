package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/vilaca/brand-dashboard/internal/api"
	"github.com/vilaca/brand-dashboard/internal/api/github"
	"github.com/vilaca/brand-dashboard/internal/api/leetcode"
	"github.com/vilaca/brand-dashboard/internal/cache"
	"github.com/vilaca/brand-dashboard/internal/config"
	"github.com/vilaca/brand-dashboard/internal/dashboard"
	"github.com/vilaca/brand-dashboard/internal/domain"
	"github.com/vilaca/brand-dashboard/internal/logger"
	"github.com/vilaca/brand-dashboard/internal/metrics"
	"github.com/vilaca/brand-dashboard/internal/normalize"
	"github.com/vilaca/brand-dashboard/internal/service"
	"github.com/vilaca/brand-dashboard/internal/store"
	"github.com/vilaca/brand-dashboard/internal/synth"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "brand-dashboard",
		Short:        "Aggregated developer statistics for linked platform accounts",
		SilenceUsage: true,
	}

	serve := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}

	stats := &cobra.Command{
		Use:   "stats <platform> <username>",
		Short: "Print the stats envelope for one account",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(cmd.Context(), cmd, args[0], args[1])
		},
	}

	root.AddCommand(serve, stats)
	root.RunE = serve.RunE
	return root
}

func runServe(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	log := logger.Init(logger.Config{Env: cfg.Env, Level: cfg.LogLevel})
	defer func() { _ = log.Sync() }()

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	statsService, closeAll, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAll()

	metricsHandler, err := metrics.Register(prometheus.DefaultRegisterer)
	if err != nil {
		return fmt.Errorf("registering metrics: %w", err)
	}

	var auth *dashboard.Authenticator
	if cfg.HasAuth() {
		auth = dashboard.NewAuthenticator(cfg.JWTSecret)
	} else {
		log.Warn("AUTH_JWT_SECRET not set; authenticated stats route will answer 500")
	}

	handler := dashboard.NewHandler(dashboard.HandlerConfig{
		StatsService:   statsService,
		Authenticator:  auth,
		MetricsHandler: metricsHandler,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           handler.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Info("starting brand dashboard",
		zap.String("addr", srv.Addr),
		zap.Bool("github_token", cfg.HasGitHubToken()),
		zap.Bool("leetcode_token", cfg.HasLeetCodeToken()),
		zap.Duration("upstream_timeout", cfg.UpstreamTimeout),
		zap.String("cache", cfg.CacheKind),
	)

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func runStats(ctx context.Context, cmd *cobra.Command, platformName, username string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger.Init(logger.Config{Env: cfg.Env, Level: "warn"})

	platform, ok := domain.ParsePlatform(platformName)
	if !ok {
		return fmt.Errorf("%w: %s", service.ErrUnsupportedPlatform, platformName)
	}

	// The CLI never needs the shared cache or the profile store.
	cfg.CacheKind = cache.KindNone
	cfg.DatabaseURL = ""

	statsService, closeAll, err := buildService(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeAll()

	env, err := statsService.GetByUsername(ctx, platform, username)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(env)
}

// buildService wires up all dependencies of the stats service.
// This is the composition root where collaborators are created and injected.
func buildService(ctx context.Context, cfg *config.Config) (*service.StatsService, func(), error) {
	var closers []func()
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	// The per-fetch deadline is enforced by each client; this is a backstop.
	httpClient := &http.Client{Timeout: 2 * cfg.UpstreamTimeout}

	statsCache, err := cache.New(ctx, cache.Config{
		Kind:       cfg.CacheKind,
		DefaultTTL: cfg.CacheTTL,
		RedisAddr:  cfg.RedisAddr,
		RedisDB:    cfg.RedisDB,
		Prefix:     cfg.RedisPrefix,
	})
	if err != nil {
		return nil, closeAll, err
	}
	if statsCache != nil {
		closers = append(closers, func() { _ = statsCache.Close() })
	}

	var profiles store.ProfileLookup
	if cfg.HasDatabase() {
		pg, err := store.NewPostgresProfileStore(ctx, store.PostgresConfig{DSN: cfg.DatabaseURL})
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		closers = append(closers, pg.Close)
		profiles = pg
	} else {
		profiles = store.NewMemoryProfileStore(cfg.Profiles)
	}

	statsService := service.NewStatsService(service.StatsServiceConfig{
		Normalizer:  normalize.New(),
		Synthesizer: synth.New(),
		Profiles:    profiles,
		Cache:       statsCache,
		CacheTTL:    cfg.CacheTTL,
	})

	statsService.RegisterFetcher(github.NewClient(api.ClientConfig{
		BaseURL: cfg.GitHubURL,
		Token:   cfg.GitHubToken,
		Timeout: cfg.UpstreamTimeout,
	}, httpClient))

	statsService.RegisterFetcher(leetcode.NewClient(api.ClientConfig{
		BaseURL: cfg.LeetCodeURL,
		Token:   cfg.LeetCodeToken,
		Timeout: cfg.UpstreamTimeout,
	}, httpClient))

	return statsService, closeAll, nil
}

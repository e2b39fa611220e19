package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KirkDiggler/rpg-toolkit/dice"
	"github.com/KirkDiggler/rpg-toolkit/events"

	"github.com/KirkDiggler/gurps-api/internal/archive"
	"github.com/KirkDiggler/gurps-api/internal/catalog"
	"github.com/KirkDiggler/gurps-api/internal/config"
	"github.com/KirkDiggler/gurps-api/internal/engine/rpgtoolkit"
	"github.com/KirkDiggler/gurps-api/internal/errors"
	"github.com/KirkDiggler/gurps-api/internal/metrics"
	characterorch "github.com/KirkDiggler/gurps-api/internal/orchestrators/character"
	"github.com/KirkDiggler/gurps-api/internal/pkg/clock"
	"github.com/KirkDiggler/gurps-api/internal/pkg/idgen"
	redisclient "github.com/KirkDiggler/gurps-api/internal/redis"
	characterrepo "github.com/KirkDiggler/gurps-api/internal/repositories/character"
)

// app holds everything a command needs to work on stored characters
type app struct {
	repo         characterrepo.Repository
	engine       *rpgtoolkit.Adapter
	orchestrator *characterorch.Orchestrator
	metrics      *metrics.Metrics
	idGen        idgen.Generator
	closers      []func() error
}

// Close releases storage connections
func (a *app) Close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			slog.Warn("failed to close resource", "error", err)
		}
	}
}

func setupLogging(cfg config.LogConfig) {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	var handler slog.Handler = slog.NewTextHandler(os.Stderr, opts)
	if cfg.Format == config.LogFormatJSON {
		handler = slog.NewJSONHandler(os.Stderr, opts)
	}
	slog.SetDefault(slog.New(handler))
}

func newEngine(cfg config.RulesConfig, bus events.EventBus, gen idgen.Generator) (*rpgtoolkit.Adapter, error) {
	return rpgtoolkit.NewAdapter(&rpgtoolkit.AdapterConfig{
		EventBus:          bus,
		DiceRoller:        dice.DefaultRoller,
		IDGenerator:       gen,
		OverridePolicy:    cfg.Policy(),
		IncludeSocialCost: cfg.IncludeSocialCost,
	})
}

func openRepository(ctx context.Context, cfg config.StorageConfig, clk clock.Clock) (characterrepo.Repository, func() error, error) {
	switch cfg.Driver {
	case config.StorageSQLite:
		repo, err := characterrepo.NewSQLite(ctx, &characterrepo.SQLiteConfig{
			Path:  cfg.SQLitePath,
			Clock: clk,
		})
		if err != nil {
			return nil, nil, err
		}
		return repo, repo.Close, nil
	default:
		client, err := redisclient.Connect(ctx, []string{cfg.RedisAddr}, &redisclient.Options{
			Password: cfg.RedisPassword,
		})
		if err != nil {
			return nil, nil, err
		}
		repo, err := characterrepo.NewRedis(&characterrepo.RedisConfig{
			Client: client,
			Clock:  clk,
		})
		if err != nil {
			_ = client.Close()
			return nil, nil, err
		}
		return repo, client.Close, nil
	}
}

// buildApp wires storage, engine, archive, catalog and metrics from cfg
func buildApp(ctx context.Context, cfg *config.Config) (*app, error) {
	clk := clock.New()
	gen := idgen.NewUUID("")
	a := &app{idGen: gen, metrics: metrics.New()}

	repo, closeRepo, err := openRepository(ctx, cfg.Storage, clk)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open %s storage", cfg.Storage.Driver)
	}
	a.repo = repo
	a.closers = append(a.closers, closeRepo)

	bus := events.NewBus()
	if err := a.metrics.Subscribe(bus); err != nil {
		a.Close()
		return nil, err
	}

	a.engine, err = newEngine(cfg.Rules, bus, gen)
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to create engine")
	}

	store, err := archive.Open(ctx, cfg.Archive.StoreConfig())
	if err != nil {
		a.Close()
		return nil, errors.Wrapf(err, "failed to open %s archive", cfg.Archive.Driver)
	}

	cat, err := catalog.NewLoader(catalog.LoaderConfig{}).Load(ctx, cfg.Catalog.Sources...)
	if err != nil {
		a.Close()
		return nil, errors.Wrap(err, "failed to load catalog")
	}

	a.orchestrator, err = characterorch.New(&characterorch.Config{
		CharacterRepo: repo,
		Engine:        a.engine,
		Archive:       store,
		IDGenerator:   gen,
		Clock:         clk,
		Catalog:       cat,
		Metrics:       a.metrics,
	})
	if err != nil {
		a.Close()
		return nil, err
	}

	slog.InfoContext(ctx, "dependencies ready",
		"storage", cfg.Storage.Driver,
		"archive", store.Driver(),
		"override_policy", cfg.Rules.OverridePolicy,
		"catalog_skills", len(cat.Skills))

	return a, nil
}

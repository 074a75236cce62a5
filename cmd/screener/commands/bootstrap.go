package commands

import (
	"fmt"

	"github.com/nordquant/screener/internal/combine"
	"github.com/nordquant/screener/internal/features"
	"github.com/nordquant/screener/internal/pipeline"
	"github.com/nordquant/screener/internal/snapshot"
	"github.com/nordquant/screener/internal/strategyconfig"
	"github.com/nordquant/screener/pkg/config"
	"github.com/nordquant/screener/pkg/database"
	"github.com/nordquant/screener/pkg/logger"
	"github.com/nordquant/screener/pkg/redis"
)

// app holds the wired dependency graph shared by all commands
type app struct {
	cfg        *config.Config
	log        *logger.Logger
	db         *database.DB
	cache      *redis.Client
	store      snapshot.Store
	service    *pipeline.Service
	combiner   *combine.Combiner
	strategies []strategyconfig.Strategy
}

// newApp wires config, logging, storage and the ranking pipeline
func newApp() (*app, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if strategyFile != "" {
		cfg.StrategyFile = strategyFile
	}
	if verbose {
		cfg.LogLevel = "debug"
	}

	log := logger.New(cfg)

	db, err := database.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	cacheClient, err := redis.New(cfg)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	strategyCfg, rawYAML, err := strategyconfig.Load(cfg.StrategyFile)
	if err != nil {
		cacheClient.Close()
		db.Close()
		return nil, fmt.Errorf("load strategies: %w", err)
	}
	for _, w := range strategyCfg.Warnings {
		log.WithFields(map[string]interface{}{
			"strategy": w.Strategy,
			"warning":  w.Message,
		}).Warn("Strategy config normalized")
	}

	decision, err := strategyconfig.NewDecisionSnapshot(strategyCfg, rawYAML)
	if err != nil {
		cacheClient.Close()
		db.Close()
		return nil, fmt.Errorf("snapshot strategy config: %w", err)
	}
	log.WithFields(map[string]interface{}{
		"config_hash": decision.ConfigHash,
		"strategies":  len(strategyCfg.Strategies),
	}).Info("Strategy config loaded")

	store := snapshot.NewPostgresStore(db.Pool, redis.NewCache(cacheClient, "screener"))
	engine := snapshot.NewEngine(store, log)
	repo := features.NewRepository(db.Pool)
	builder := features.NewBuilder(log)
	service := pipeline.NewService(repo, builder, engine, strategyCfg.Strategies, log)

	return &app{
		cfg:        cfg,
		log:        log,
		db:         db,
		cache:      cacheClient,
		store:      store,
		service:    service,
		combiner:   combine.NewCombiner(log),
		strategies: strategyCfg.Strategies,
	}, nil
}

// close releases all connections
func (a *app) close() {
	if a.cache != nil {
		_ = a.cache.Close()
	}
	if a.db != nil {
		a.db.Close()
	}
}

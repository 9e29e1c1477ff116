package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"chefwho/internal/api"
	"chefwho/internal/audit"
	"chefwho/internal/config"
	"chefwho/internal/inventory"
	"chefwho/internal/redis"
	"chefwho/internal/service/ai"
	"chefwho/internal/service/chef"
	"chefwho/internal/storage"
)

// App holds the long-lived clients shared by every request.
type App struct {
	Config    *config.Config
	DB        *sql.DB
	Redis     *redis.Client
	Inventory *inventory.SQLStore
	Recorder  *audit.Recorder
	Chef      *chef.Service
	Handler   *api.Handler

	logger *slog.Logger
}

// Option customizes App construction.
type Option func(*options)

type options struct {
	generator ai.Generator
	now       func() time.Time
}

// WithGenerator replaces the configured chat model.
func WithGenerator(gen ai.Generator) Option {
	return func(o *options) { o.generator = gen }
}

// WithClock replaces the wall clock used for meal periods.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// New validates cfg and builds the store, audit recorder, completion client and HTTP handler.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger, opts ...Option) (*App, error) {
	if logger == nil {
		logger = slog.Default()
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	dbType := cfg.BasicConfig.Database
	db, err := storage.Open(dbType, cfg)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	a := &App{Config: cfg, DB: db, logger: logger}

	if cfg.BasicConfig.AutoMigrate {
		if err := storage.Migrate(db, dbType); err != nil {
			a.closeClients()
			return nil, fmt.Errorf("migrate database: %w", err)
		}
	}

	a.Inventory, err = inventory.NewSQLStore(db, dbType)
	if err != nil {
		a.closeClients()
		return nil, err
	}
	sink, err := audit.NewSQLSink(db, dbType)
	if err != nil {
		a.closeClients()
		return nil, err
	}

	var publisher audit.Publisher
	if cfg.Redis.Enabled {
		a.Redis, err = redis.NewRedisClient(cfg)
		if err != nil {
			a.closeClients()
			return nil, fmt.Errorf("create redis client: %w", err)
		}
		publisher = audit.NewRedisPublisher(a.Redis, cfg.Redis.Channel)
	}

	gen := o.generator
	if gen == nil {
		gen, err = ai.NewChatModel(ctx, cfg.BasicConfig.Provider, cfg.Provider())
		if err != nil {
			a.closeClients()
			return nil, fmt.Errorf("init chat model: %w", err)
		}
	}
	completer := ai.NewClient(gen, ai.BreakerConfig{
		Enabled:          cfg.Breaker.Enabled,
		FailureThreshold: cfg.Breaker.FailureThreshold,
		OpenTimeout:      time.Duration(cfg.Breaker.OpenSeconds) * time.Second,
	}, logger)

	a.Recorder = audit.NewRecorder(sink, publisher, audit.Config{
		Workers:      cfg.Audit.Workers,
		QueueSize:    cfg.Audit.QueueSize,
		WriteTimeout: time.Duration(cfg.Audit.WriteTimeoutSeconds) * time.Second,
	}, logger)

	a.Chef = chef.NewService(inventory.NewReader(a.Inventory, logger), completer, a.Recorder, logger).
		WithClock(o.now)
	a.Handler = api.NewHandler(a.Chef, logger)

	logger.Info("chefwho initialized",
		"database", dbType,
		"provider", cfg.BasicConfig.Provider,
		"model", cfg.Provider().Model,
		"redis", cfg.Redis.Enabled,
	)
	return a, nil
}

// Router returns the HTTP engine serving the chef routes.
func (a *App) Router(withRequestLog bool) *gin.Engine {
	return a.Handler.NewRouter(withRequestLog)
}

// Close drains pending audit writes, then releases redis and the database.
func (a *App) Close(ctx context.Context) error {
	var errs []error
	if a.Recorder != nil {
		if err := a.Recorder.Close(ctx); err != nil {
			errs = append(errs, fmt.Errorf("drain audit queue: %w", err))
		}
	}
	if err := a.closeClients(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (a *App) closeClients() error {
	var errs []error
	if a.Redis != nil {
		if err := a.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if a.DB != nil {
		if err := a.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}

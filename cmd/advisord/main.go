// Package main provides the advisor HTTP daemon.
// It serves combat move and loot recommendations and optionally audits every decision to PostgreSQL.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/gigaverse-labs/advisor/internal/advisor"
	"github.com/gigaverse-labs/advisor/internal/config"
	"github.com/gigaverse-labs/advisor/internal/frontend/httpapi"
	"github.com/gigaverse-labs/advisor/internal/observability"
	"github.com/gigaverse-labs/advisor/internal/server"
	"github.com/gigaverse-labs/advisor/internal/storage/postgres"
)

const healthInterval = 30 * time.Second

func main() {
	start := time.Now()

	configPath := flag.String("config", "configs/dev.yaml", "path to configuration file")
	hashKey := flag.String("hash-api-key", "", "print the bcrypt hash of this API key for http.api_key_hash and exit")
	flag.Parse()

	if *hashKey != "" {
		hash, err := httpapi.HashAPIKey(*hashKey)
		if err != nil {
			log.Fatalf("hashing api key: %v", err)
		}
		fmt.Fprintln(os.Stdout, hash)
		return
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logging)
	if err != nil {
		log.Fatalf("initializing logger: %v", err)
	}
	defer logger.Sync()

	strategy, err := cfg.Advisor.Strategy()
	if err != nil {
		logger.Fatal("resolving default strategy", zap.Error(err))
	}

	logger.Info("starting advisor",
		zap.String("http_addr", cfg.HTTP.Addr()),
		zap.Bool("audit", cfg.Database.Enabled),
		zap.Stringer("default_strategy", strategy),
		zap.Int("shield_on_defend", cfg.Advisor.ShieldOnDefend),
		zap.Float64("shield_weight", cfg.Advisor.ShieldWeight),
	)

	ctx := context.Background()
	lifecycle := server.NewLifecycle(logger, cfg.HTTP.ShutdownTimeout)

	var recorder advisor.Recorder = advisor.NopRecorder{}
	var decisions httpapi.DecisionLog
	if cfg.Database.Enabled {
		dbStart := time.Now()
		pool, err := postgres.NewPool(ctx, cfg.Database, logger)
		if err != nil {
			logger.Fatal("connecting to database", zap.Error(err))
		}
		if err := pool.EnsureSchema(ctx); err != nil {
			logger.Fatal("checking audit schema", zap.Error(err))
		}
		logger.Info("database connected",
			zap.String("host", cfg.Database.Host),
			zap.Int("port", cfg.Database.Port),
			zap.String("database", cfg.Database.Name),
			zap.Duration("elapsed", time.Since(dbStart)),
		)
		repo := postgres.NewDecisionRepository(pool.DB())
		recorder = repo
		decisions = repo
		lifecycle.Add("postgres", poolService(ctx, pool, logger))
	}

	svc := advisor.New(cfg.Advisor.Params(), strategy, recorder, logger)

	if cfg.Logging.Level != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := httpapi.NewRouter(svc, decisions, cfg.HTTP.APIKeyHash, logger)
	lifecycle.Add("http", server.NewHTTPService(&http.Server{
		Addr:         cfg.HTTP.Addr(),
		Handler:      router,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
	}))

	logger.Info("advisor initialized",
		zap.Duration("startup", time.Since(start)),
		zap.Bool("api_key_required", cfg.HTTP.APIKeyHash != ""),
	)

	if err := lifecycle.Run(ctx); err != nil {
		logger.Fatal("server error", zap.Error(err))
	}
}

// poolService pings the database periodically until stopped, then closes the pool.
func poolService(ctx context.Context, pool *postgres.Pool, logger *zap.Logger) *server.FuncService {
	done := make(chan struct{})
	return &server.FuncService{
		StartFn: func() error {
			ticker := time.NewTicker(healthInterval)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return nil
				case <-ticker.C:
					if err := pool.Health(ctx, 5*time.Second); err != nil {
						logger.Warn("database health check failed", zap.Error(err))
					}
				}
			}
		},
		StopFn: func(context.Context) error {
			close(done)
			pool.Close()
			return nil
		},
	}
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/shelfmate/book-recommendation-service/internal/cache"
	"github.com/shelfmate/book-recommendation-service/internal/catalog"
	"github.com/shelfmate/book-recommendation-service/internal/config"
	"github.com/shelfmate/book-recommendation-service/internal/handler"
	"github.com/shelfmate/book-recommendation-service/internal/recommender"
	"github.com/shelfmate/book-recommendation-service/internal/repository"
	"github.com/shelfmate/book-recommendation-service/internal/router"
	"github.com/shelfmate/book-recommendation-service/internal/service"
	"github.com/shelfmate/book-recommendation-service/seeds"
)

func main() {
	log := zerolog.New(os.Stderr).With().Timestamp().Logger()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	ctx := context.Background()

	// ------------ Catalog ---------------
	records, err := loadRecords(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load catalog records")
	}

	cat := catalog.Build(records)
	if cat.Len() == 0 {
		log.Fatal().Msg("catalog is empty after preprocessing")
	}
	log.Info().Int("books", cat.Len()).Str("source", cfg.DataSource).Msg("catalog ready")

	// ------------ Engine ---------------
	// Eager build of the full similarity matrix; the expensive step
	// happens once here, queries are cheap sorts afterwards.
	start := time.Now()
	engine := recommender.New(cat, recommender.Params{
		ContentWeight:    cfg.ContentWeight,
		PopularityWeight: cfg.PopularityWeight,
	})
	log.Info().Dur("elapsed", time.Since(start)).Msg("recommendation engine built")

	// ------------ Cache (optional) ---------------
	var respCache *cache.Cache
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse redis url")
		}
		respCache = cache.NewCache(redis.NewClient(opts), cfg.CacheTTL)
		if err := respCache.Ping(ctx); err != nil {
			log.Fatal().Err(err).Msg("failed to connect to redis")
		}
		log.Info().Msg("connected to Redis")
	}

	// ---------------- Server --------------------
	svc := service.NewService(cat, engine, respCache, log)
	h := handler.NewHandler(svc)

	log.Info().Str("addr", cfg.Addr()).Msg("server running")
	if err := http.ListenAndServe(cfg.Addr(), router.Setup(h)); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

// loadRecords fetches raw book rows from the configured source. Both
// paths feed the same catalog build step.
func loadRecords(ctx context.Context, cfg *config.Config, log zerolog.Logger) ([]catalog.Record, error) {
	if cfg.DataSource == "csv" {
		return catalog.LoadCSV(cfg.BooksCSVPath)
	}

	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database config: %w", err)
	}
	poolConfig.MaxConns = int32(cfg.DBPoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool, log); err != nil {
		return nil, err
	}
	log.Info().Msg("connected to PostgreSQL")

	// for migrate-down using CLI command
	if len(os.Args) > 1 && os.Args[1] == "migrate-down" {
		if err := runMigration(ctx, pool, "migrations/create_tables.down.sql"); err != nil {
			return nil, fmt.Errorf("migrate down: %w", err)
		}
		log.Info().Msg("migrations dropped")
		os.Exit(0)
	}

	if err := runMigration(ctx, pool, "migrations/create_tables.up.sql"); err != nil {
		return nil, fmt.Errorf("migrate up: %w", err)
	}

	repo := repository.New(pool)
	if err := checkSeed(ctx, pool, repo, log); err != nil {
		return nil, fmt.Errorf("check seed: %w", err)
	}

	return repo.ListBooks(ctx)
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Int("attempt", i+1).Msg("waiting for database")
		time.Sleep(1 * time.Second)
	}
	return fmt.Errorf("database connection timeout after 30s")
}

func runMigration(ctx context.Context, pool *pgxpool.Pool, path string) error {
	sql, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read migration file: %w", err)
	}
	if _, err := pool.Exec(ctx, string(sql)); err != nil {
		return fmt.Errorf("execute migration: %w", err)
	}
	return nil
}

func checkSeed(ctx context.Context, pool *pgxpool.Pool, repo *repository.Repository, log zerolog.Logger) error {
	count, err := repo.CountBooks(ctx)
	if err != nil {
		return err
	}
	if count > 0 {
		log.Info().Int("books", count).Msg("database already seeded, skipping")
		return nil
	}
	return seeds.Setup(ctx, pool, log)
}

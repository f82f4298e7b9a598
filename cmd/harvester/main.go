// cmd/harvester/main.go

package main

import (
	"context"
	"fmt"
	"log"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"bitescout/internal/adapter/storage"
	"bitescout/internal/config"
	"bitescout/internal/service/harvest"
)

// The harvester is a one-shot job, run on a schedule (e.g. daily cron).
// Each run observes every brand's public profile, upserts one dated
// follower sample per brand, and announces the samples on NATS for any
// running API process to pick up.
func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// NATS is best-effort for the harvester: samples land in storage
	// either way, and the API replays them at startup.
	natsConn, err := nats.Connect(
		cfg.NATS.URL,
		nats.MaxReconnects(cfg.NATS.MaxReconnects),
		nats.ReconnectWait(cfg.NATS.ReconnectWait),
		nats.Timeout(cfg.NATS.ConnectTimeout),
	)
	if err != nil {
		log.Printf("NATS unavailable, running without sample events: %v", err)
		natsConn = nil
	} else {
		defer natsConn.Close()
	}

	brandStore := storage.NewBrandStore(db)
	followerStore := storage.NewFollowerStore(db)
	fetcher := harvest.NewHTTPProfileFetcher(
		cfg.Harvest.ProfileBaseURL,
		cfg.Harvest.UserAgent,
		cfg.Harvest.FetchTimeout,
	)

	harvester := harvest.NewHarvester(brandStore, followerStore, fetcher, natsConn, harvest.HarvesterConfig{
		SamplesTopic: cfg.NATS.SamplesTopic,
	})

	result, err := harvester.Run(ctx)
	if err != nil {
		log.Fatalf("Harvest run failed: %v", err)
	}

	log.Printf("Harvest complete: %d harvested, %d skipped, %d failed",
		result.Harvested, result.Skipped, result.Failed)
}

// Initialize database connection
func initDatabase(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	connString := fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.Database, cfg.SSLMode,
	)

	poolConfig, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("unable to parse connection string: %w", err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = int32(cfg.MaxIdleConns)
	poolConfig.MaxConnLifetime = cfg.MaxLifetime

	db, err := pgxpool.ConnectConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to database: %w", err)
	}

	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

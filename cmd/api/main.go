// cmd/api/main.go

package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/joho/godotenv"
	"github.com/nats-io/nats.go"

	"bitescout/internal/adapter/storage"
	"bitescout/internal/config"
	"bitescout/internal/server"
	"bitescout/internal/server/handlers"
	"bitescout/internal/service/analytics"
	engagementService "bitescout/internal/service/engagement"
	"bitescout/internal/service/harvest"
	rankingService "bitescout/internal/service/ranking"
	statsService "bitescout/internal/service/stats"
	trackerService "bitescout/internal/service/tracker"
)

func main() {
	// Load .env if present; real deployments set the environment directly
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Setup context with cancellation for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Initialize dependencies
	db, err := initDatabase(ctx, cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	natsConn, err := initNATS(cfg.NATS)
	if err != nil {
		log.Fatalf("Failed to connect to NATS: %v", err)
	}
	defer natsConn.Close()

	// Initialize storage adapters
	brandStore := storage.NewBrandStore(db)
	followerStore := storage.NewFollowerStore(db)

	// Initialize the session engagement store and hydrate it from storage
	engagementStore := engagementService.NewStore()
	if err := hydrateEngagementStore(ctx, engagementStore, brandStore, followerStore); err != nil {
		log.Fatalf("Failed to hydrate engagement store: %v", err)
	}

	// Initialize the hot-score calculator and wire synchronous cache
	// invalidation to store writes
	calculator := analytics.NewCalculator(engagementStore, analytics.CalculatorConfig{
		GrowthWeight:        cfg.Analytics.GrowthWeight,
		EngagementWeight:    cfg.Analytics.EngagementWeight,
		GrowthWindowDays:    cfg.Analytics.GrowthWindowDays,
		EngagementReference: cfg.Analytics.EngagementReference,
		StaleAfterDays:      cfg.Analytics.StaleAfterDays,
	})
	engagementStore.RegisterInvalidationHandler(calculator.Invalidate)

	// Initialize services
	pipeline := rankingService.NewPipeline()
	tracker := trackerService.NewTracker(engagementStore, calculator)
	statsSvc := statsService.NewService()

	// Fold harvester sample events into the session store as they arrive
	subscription, err := natsConn.Subscribe(cfg.NATS.SamplesTopic, func(msg *nats.Msg) {
		sample, err := harvest.DecodeSampleEvent(msg.Data)
		if err != nil {
			log.Printf("Dropping malformed sample event: %v", err)
			return
		}
		if err := engagementStore.RecordFollowerSample(sample.BrandID, sample.Date, sample.Count); err != nil {
			log.Printf("Rejected sample for %s: %v", sample.BrandID, err)
		}
	})
	if err != nil {
		log.Fatalf("Failed to subscribe to sample events: %v", err)
	}
	defer subscription.Unsubscribe()

	// Initialize handlers
	brandHandler := handlers.NewBrandHandler(brandStore, engagementStore, pipeline, calculator.Analytics)
	analyticsHandler := handlers.NewAnalyticsHandler(engagementStore, calculator, tracker, brandStore, followerStore)
	statsHandler := handlers.NewStatsHandler(brandStore, statsSvc, calculator.Analytics)

	// Initialize HTTP server
	httpServer := server.NewServer(cfg.Server, brandHandler, analyticsHandler, statsHandler)

	// Start HTTP server
	go func() {
		log.Printf("Starting HTTP server on %s:%d", cfg.Server.Host, cfg.Server.Port)
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server error: %v", err)
		}
	}()

	// Wait for shutdown signal
	<-shutdown
	log.Println("Shutdown signal received")

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer shutdownCancel()

	// Graceful shutdown
	log.Println("Shutting down services...")

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	log.Println("Shutdown complete")
}

// hydrateEngagementStore seeds the session store with the brand ids and
// follower history already on disk
func hydrateEngagementStore(
	ctx context.Context,
	store *engagementService.Store,
	brands *storage.BrandStore,
	followers *storage.FollowerStore,
) error {
	brandList, err := brands.ListBrands(ctx)
	if err != nil {
		return fmt.Errorf("error listing brands: %w", err)
	}
	for _, b := range brandList {
		store.RegisterBrand(b.ID)
	}

	samples, err := followers.ListAllSamples(ctx)
	if err != nil {
		return fmt.Errorf("error listing samples: %w", err)
	}
	for _, sample := range samples {
		if err := store.RecordFollowerSample(sample.BrandID, sample.Date, sample.Count); err != nil {
			return fmt.Errorf("error replaying sample for %s: %w", sample.BrandID, err)
		}
	}

	log.Printf("Hydrated engagement store: %d brands, %d samples", len(brandList), len(samples))
	return nil
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

	// Test connection
	if err := db.Ping(ctx); err != nil {
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}

	return db, nil
}

// Initialize NATS connection
func initNATS(cfg config.NATSConfig) (*nats.Conn, error) {
	options := []nats.Option{
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(cfg.ReconnectWait),
		nats.Timeout(cfg.ConnectTimeout),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			log.Printf("NATS disconnected: %v", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			log.Printf("NATS reconnected to %s", nc.ConnectedUrl())
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			log.Printf("NATS connection closed")
		}),
	}

	nc, err := nats.Connect(cfg.URL, options...)
	if err != nil {
		return nil, fmt.Errorf("unable to connect to NATS: %w", err)
	}

	return nc, nil
}

package main

import (
	"SolidarityHospital/cache"
	"SolidarityHospital/config"
	"SolidarityHospital/database"
	"SolidarityHospital/models"
	"SolidarityHospital/routes"
	"SolidarityHospital/services"
	"SolidarityHospital/store"
	"SolidarityHospital/utils"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

const redisStatsInterval = time.Minute

func main() {
	rootCmd := &cobra.Command{
		Use:   "frontdesk",
		Short: "SOLIDARITY Hospital front desk server",
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(migrateCmd())
	rootCmd.AddCommand(reportCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the front desk API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func migrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the collections table",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			utils.SetupLogger(cfg.LogLevel, cfg.Env)

			ctx := context.Background()
			db, err := database.InitDB(ctx, cfg.Postgres())
			if err != nil {
				return err
			}
			if sqlDB, err := db.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := database.RunMigrations(ctx, db); err != nil {
				return fmt.Errorf("migration failed: %w", err)
			}
			fmt.Println("Migrations applied successfully.")
			return nil
		},
	}
}

func reportCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the financial report export",
		RunE: func(cmd *cobra.Command, args []string) error {
			period, _ := cmd.Flags().GetString("period")

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			utils.SetupLogger(cfg.LogLevel, cfg.Env)

			ctx := context.Background()
			storage, err := openBackend(ctx, cfg)
			if err != nil {
				return err
			}
			defer storage.close()

			svc := routes.NewServices(routes.Dependencies{Config: cfg, Store: storage.store, Cache: storage.cache})
			report, err := svc.Billing.Report(ctx, period, time.Now())
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(svc.Billing.ExportReport(report))
		},
	}
	cmd.Flags().String("period", models.PeriodMonthly, "Report period: monthly, quarterly or yearly")
	return cmd
}

// backend is the configured store together with the cache used for reset codes.
type backend struct {
	store   store.Store
	cache   cache.Cache
	redis   *redis.Client
	closers []func() error
}

func (b *backend) close() {
	for _, closeFn := range b.closers {
		if err := closeFn(); err != nil {
			log.Warn().Err(err).Msg("Failed to close backend connection")
		}
	}
}

func openBackend(ctx context.Context, cfg *config.AppConfig) (*backend, error) {
	b := &backend{}

	if cfg.RedisURL != "" {
		client, err := database.NewRedisClient(ctx, cfg.Redis())
		if err != nil {
			return nil, err
		}
		b.redis = client
		b.closers = append(b.closers, client.Close)

		redisCache, err := cache.NewRedisCache(client)
		if err != nil {
			b.close()
			return nil, err
		}
		b.cache = redisCache
	} else {
		b.cache = cache.NewMemoryCache()
	}

	switch cfg.StoreBackend {
	case config.StorePostgres:
		db, err := database.InitDB(ctx, cfg.Postgres())
		if err != nil {
			b.close()
			return nil, err
		}
		if sqlDB, err := db.DB(); err == nil {
			b.closers = append(b.closers, sqlDB.Close)
		}
		if err := database.RunMigrations(ctx, db); err != nil {
			b.close()
			return nil, err
		}
		var readCache cache.Cache
		if b.redis != nil {
			readCache = b.cache
		}
		pg := store.NewPostgresStore(db, readCache)
		if err := pg.FlushCache(ctx); err != nil {
			log.Warn().Err(err).Msg("Failed to flush collection cache")
		}
		b.store = pg
	default:
		b.store = store.NewCacheStore(b.cache, cfg.StorePrefix)
	}

	log.Info().Str("backend", cfg.StoreBackend).Msg("Record store ready")
	return b, nil
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	logger := utils.SetupLogger(cfg.LogLevel, cfg.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	storage, err := openBackend(ctx, cfg)
	if err != nil {
		return err
	}
	defer storage.close()

	tokens, err := utils.NewTokenIssuer(cfg.SymmetricKey)
	if err != nil {
		return err
	}

	mailer := utils.NewMailer(cfg.SMTP())
	if !mailer.Enabled() {
		log.Warn().Msg("SMTP_HOST not set, receipts and reset codes will not be emailed")
	}

	handler := routes.SetupRoutes(routes.Dependencies{
		Config:  cfg,
		Store:   storage.store,
		Cache:   storage.cache,
		Tokens:  tokens,
		Mailer:  mailer,
		Gateway: services.NewSimulatedGateway(cfg.PaymentDelay),
		Logger:  logger,
	})

	srv := &http.Server{
		Addr:           ":" + cfg.Port,
		Handler:        handler,
		ReadTimeout:    30 * time.Second,
		WriteTimeout:   30 * time.Second,
		MaxHeaderBytes: 1 << 20,
		IdleTimeout:    30 * time.Second,
	}

	var wg sync.WaitGroup

	if storage.redis != nil {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ticker := time.NewTicker(redisStatsInterval)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					database.MonitorRedisPool(storage.redis)
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	serveErr := make(chan error, 1)
	wg.Add(1)
	go func() {
		defer wg.Done()
		log.Info().Str("addr", srv.Addr).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancelShutdown()

	log.Info().Msg("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	wg.Wait()

	select {
	case err := <-serveErr:
		return fmt.Errorf("listen and serve: %w", err)
	default:
	}
	log.Info().Msg("Server exited gracefully")
	return nil
}

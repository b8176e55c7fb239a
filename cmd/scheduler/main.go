package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"

	"github.com/wekeza/pricing-engine/internal/config"
	"github.com/wekeza/pricing-engine/internal/repository"
	"github.com/wekeza/pricing-engine/internal/service"
)

func main() {
	_ = godotenv.Load()

	log.Info().Msg("Starting pricing scheduler...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	db, err := sqlx.Connect("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Host + ":" + cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	defer redisClient.Close()

	pricingService := service.NewPricingService(
		repository.NewProductRepository(db),
		repository.NewCustomerRepository(db),
		repository.NewLoanRepository(db),
		redisClient,
		cfg,
	)

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Scheduler.Timezone).Msg("Invalid scheduler timezone")
	}

	// Initialize cron scheduler
	c := cron.New(cron.WithSeconds(), cron.WithLocation(location))

	// Schedule tasks
	setupCronJobs(c, cfg, pricingService)

	// Start the scheduler
	c.Start()
	log.Info().Msg("Scheduler started successfully")

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down scheduler...")
	c.Stop()
	log.Info().Msg("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, svc *service.PricingService) {
	// Daily job flipping pending installments past their due date to overdue
	_, err := c.AddFunc(cfg.Scheduler.OverdueCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		updated, err := svc.MarkOverdueSchedules(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Overdue schedule job failed")
			return
		}
		log.Info().Int64("updated", updated).Msg("Overdue schedule job finished")
	})
	if err != nil {
		log.Error().Err(err).Msg("Error scheduling overdue job")
	}

	// Hourly job keeping the catalog cache warm so quote requests
	// rarely fall through to the database
	_, err = c.AddFunc(cfg.Scheduler.CatalogCron, func() {
		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		if err := svc.RefreshCatalogCache(ctx); err != nil {
			log.Error().Err(err).Msg("Catalog cache refresh failed")
			return
		}
		log.Info().Msg("Catalog cache refreshed")
	})
	if err != nil {
		log.Error().Err(err).Msg("Error scheduling catalog refresh job")
	}

	log.Info().Msg("Cron jobs scheduled successfully")
}

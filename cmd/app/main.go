package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"fooddelivery/cmd"
	"fooddelivery/internal/adapters/out/postgres"
	"fooddelivery/internal/adapters/out/redispush"
	"fooddelivery/internal/pkg/telemetry"

	"github.com/labstack/gommon/log"
	"golang.org/x/sync/errgroup"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func main() {
	config, err := cmd.LoadConfig(".env")
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, config.ServiceName, config.OTelEndpoint)
	if err != nil {
		log.Fatalf("Error setting up tracing: %v", err)
	}

	gormDB, err := gorm.Open(gormpostgres.Open(config.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}
	if err := postgres.Migrate(gormDB); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	redisClient := redispush.NewClient(config.RedisAddr, config.RedisPassword, config.RedisDB)

	app, err := cmd.NewCompositionRoot(config, gormDB, redisClient, logger)
	if err != nil {
		log.Fatalf("Error wiring application: %v", err)
	}

	if err := run(ctx, app, config, logger); err != nil {
		logger.Error("service stopped with error", "error", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := errors.Join(app.Close(), redisClient.Close(), shutdownTracing(shutdownCtx)); err != nil {
		logger.Error("shutdown", "error", err)
	}
	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func run(ctx context.Context, app *cmd.CompositionRoot, config cmd.Config, logger *slog.Logger) error {
	e, err := app.CreateRouter()
	if err != nil {
		return fmt.Errorf("build router: %w", err)
	}

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		return err
	}
	defer jobManager.StopAll()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return app.Relay().Run(ctx)
	})
	// Publish whatever a previous run left in the outbox.
	app.Relay().Notify()

	if consumer := app.CreateKafkaConsumer(); consumer != nil {
		g.Go(func() error {
			return consumer.Run(ctx)
		})
	}

	g.Go(func() error {
		logger.Info("http server listening", "port", config.HTTPPort)
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", config.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

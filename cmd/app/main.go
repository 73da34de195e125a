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
	"time"

	"foodorders/cmd"
	httpin "foodorders/internal/adapters/in/http"
	"foodorders/internal/adapters/out/postgres"
	"foodorders/internal/adapters/out/rabbitmq"
	"foodorders/internal/pkg/observability"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func main() {
	configs, err := cmd.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading configuration: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instruments, shutdownTelemetry, err := observability.Init(ctx, observability.Settings{
		ServiceName:  "foodorders",
		Environment:  configs.Environment,
		LogLevel:     observability.ParseLevel(configs.LogLevel),
		LogFormat:    configs.LogFormat,
		OTLPEndpoint: configs.OTLPEndpoint,
		TraceStdout:  configs.OTelStdout,
	})
	if err != nil {
		log.Fatalf("Error initializing telemetry: %v", err)
	}
	logger := instruments.Logger

	gormDB, err := openDatabase(configs, logger)
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	opts := []cmd.Option{cmd.WithLogger(logger), cmd.WithInstruments(instruments)}
	var broker *rabbitmq.Transport
	if configs.RabbitMQURL != "" {
		broker, err = rabbitmq.Dial(configs.RabbitMQURL, configs.RabbitMQExchange, logger)
		if err != nil {
			log.Fatalf("Error connecting to RabbitMQ: %v", err)
		}
		opts = append(opts, cmd.WithTransport(broker))
	}

	app, err := cmd.NewCompositionRoot(configs, gormDB, opts...)
	if err != nil {
		log.Fatalf("Error building application: %v", err)
	}
	if err = app.Load(ctx); err != nil {
		log.Fatalf("Error loading orders: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}

	e, err := newEcho(app)
	if err != nil {
		log.Fatalf("Error building HTTP server: %v", err)
	}

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil && !errors.Is(err, http.ErrServerClosed) {
			e.Logger.Fatal(err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err = e.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", "error", err)
	}
	jobManager.StopAll(shutdownCtx)
	if err = app.Close(shutdownCtx); err != nil {
		logger.Error("notification drain failed", "error", err)
	}
	if broker != nil {
		if err = broker.Close(); err != nil {
			logger.Error("rabbitmq close failed", "error", err)
		}
	}
	if err = shutdownTelemetry(shutdownCtx); err != nil {
		logger.Error("telemetry shutdown failed", "error", err)
	}
}

func openDatabase(configs cmd.Config, logger *slog.Logger) (*gorm.DB, error) {
	if !configs.UsesDatabase() {
		logger.Warn("DB_HOST not set, keeping orders in memory")
		return nil, nil
	}

	gormDB, err := postgres.Open(configs.DSN())
	if err != nil {
		return nil, err
	}
	if err = postgres.Migrate(gormDB); err != nil {
		return nil, err
	}
	return gormDB, nil
}

func newEcho(app *cmd.CompositionRoot) (*echo.Echo, error) {
	server, err := app.CreateHTTPServer()
	if err != nil {
		return nil, err
	}
	e, err := httpin.NewEcho(server)
	if err != nil {
		return nil, err
	}
	e.Logger.SetLevel(log.INFO)
	return e, nil
}

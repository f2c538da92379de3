package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/hyperitsme/axion-backend/internal/app"
	"github.com/hyperitsme/axion-backend/internal/clock"
	"github.com/hyperitsme/axion-backend/internal/config"
	"github.com/hyperitsme/axion-backend/internal/notify"
	"github.com/hyperitsme/axion-backend/internal/storage/postgres"
	transporthttp "github.com/hyperitsme/axion-backend/internal/transport/http"
	"github.com/hyperitsme/axion-backend/internal/worker"
	"github.com/hyperitsme/axion-backend/migrations"
)

const shutdownTimeout = 10 * time.Second

func main() {
	logger := log.Default()

	cfg, err := config.Load(logger)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	startupCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(startupCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("connect to db: %v", err)
	}
	defer pool.Close()

	if err := pool.Ping(startupCtx); err != nil {
		log.Fatalf("db ping: %v", err)
	}
	if err := migrations.Apply(startupCtx, pool); err != nil {
		log.Fatalf("apply migrations: %v", err)
	}

	orderRepo := postgres.NewOrderRepository(pool)
	routeRepo := postgres.NewRouteRepository(pool)
	validatorRepo := postgres.NewValidatorRepository(pool)

	hub := notify.NewHub()

	var sinks []notify.Sink
	if cfg.AMQPURL != "" {
		amqpSink, err := notify.NewAMQPSink(cfg.AMQPURL, cfg.AMQPQueue)
		if err != nil {
			log.Fatalf("amqp sink: %v", err)
		}
		defer amqpSink.Close()
		sinks = append(sinks, amqpSink)
		logger.Printf("amqp sink enabled queue=%s", cfg.AMQPQueue)
	}
	if len(cfg.KafkaBrokers) > 0 {
		kafkaSink := notify.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaTopic)
		defer kafkaSink.Close()
		sinks = append(sinks, kafkaSink)
		logger.Printf("kafka sink enabled topic=%s", cfg.KafkaTopic)
	}

	notifier := notify.NewNotifier(orderRepo, hub, notify.WithSinks(sinks...))

	quoteSvc := app.NewQuoteService()
	orderSvc := app.NewOrderService(orderRepo, clock.NewSystem(), notifier)
	metricsSvc := app.NewMetricsService(orderRepo, clock.NewSystem())
	settler := worker.NewSettler(orderRepo, clock.NewSystem(), notifier,
		worker.WithInterval(cfg.SimInterval),
		worker.WithLogger(logger),
	)

	runCtx, stopWorkers := context.WithCancel(context.Background())
	defer stopWorkers()
	go notifier.Run(runCtx)
	go settler.Run(runCtx)

	mux := http.NewServeMux()
	mux.HandleFunc("/health", transporthttp.HealthHandler(clock.NewSystem()))
	mux.Handle("/v1/quote", transporthttp.HandleQuote(quoteSvc))
	mux.Handle("/v1/orders", transporthttp.HandleCreateOrder(orderSvc))
	mux.Handle("/v1/orders/", transporthttp.HandleGetOrder(orderSvc))
	mux.Handle("/v1/messages", transporthttp.HandleListOrders(orderSvc))
	mux.Handle("/v1/metrics/overview", transporthttp.HandleMetricsOverview(metricsSvc))
	mux.Handle("/v1/routes", transporthttp.HandleListRoutes(routeRepo))
	mux.Handle("/v1/validators", transporthttp.HandleListValidators(validatorRepo))
	mux.Handle("/v1/events", transporthttp.HandleEvents(hub))
	mux.Handle("/", transporthttp.NotFoundHandler())

	handler := transporthttp.RequestLogger(transporthttp.CORS(cfg.CORSOrigins, mux), logger)

	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	log.Printf("api listening on :%s", cfg.Port)

	srvErr := make(chan error, 1)
	go func() {
		srvErr <- server.ListenAndServe()
	}()

	stopCtx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	select {
	case err := <-srvErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server error: %v", err)
		}
	case <-stopCtx.Done():
		log.Printf("shutdown signal received, stopping server")
	}

	stopWorkers()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()
	if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Printf("server shutdown error: %v", err)
	}
	log.Printf("server stopped")
}

package app

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	healthcheck "github.com/vladislavdragonenkov/beershop/internal/health"
	"github.com/vladislavdragonenkov/beershop/internal/messaging/kafka"
	"github.com/vladislavdragonenkov/beershop/internal/service/idempotency"
	"github.com/vladislavdragonenkov/beershop/internal/service/outbox"
	"github.com/vladislavdragonenkov/beershop/internal/version"
)

// Config описывает минимальные настройки запуска приложения.
type Config struct {
	MetricsAddr string
	// PostgresDSN включает PostgreSQL-хранилище; пустая строка означает
	// in-memory режим для локальной разработки.
	PostgresDSN string
	// KafkaBrokers включает публикацию outbox-событий; пустая строка
	// отключает relay.
	KafkaBrokers string
	// SigningKey подписывает токены доступа.
	SigningKey string
}

// DefaultConfig возвращает базовый адрес для HTTP-метрик и health-проверок.
func DefaultConfig() Config {
	return Config{
		MetricsAddr: ":9090",
	}
}

const insecureDevSigningKey = "beershop-dev-signing-key"

type runOptions struct {
	onServicesReady func(*Services)
}

// RunOption настраивает запуск приложения.
type RunOption func(*runOptions)

// WithServicesReady вызывает fn с собранными сервисами после инициализации.
// Используется встраивающим кодом и тестами для доступа к прикладному слою.
func WithServicesReady(fn func(*Services)) RunOption {
	return func(opts *runOptions) {
		opts.onServicesReady = fn
	}
}

// Run собирает зависимости и сервисы магазина, запускает фоновые воркеры
// (outbox relay, очистку идемпотентных отправок) и HTTP-сервер метрик и
// health-проверок, затем блокируется до отмены ctx.
func Run(ctx context.Context, cfg Config, options ...RunOption) error {
	opts := runOptions{}
	for _, option := range options {
		option(&opts)
	}

	logger := log.WithField("component", "app")

	var (
		deps *Dependencies
		err  error
	)
	if cfg.PostgresDSN != "" {
		deps, err = NewPostgresDependencies(ctx, cfg.PostgresDSN, logger)
		if err != nil {
			return err
		}
		logger.Info("postgres storage initialized")
	} else {
		deps = NewDependencies(logger)
		logger.Info("in-memory storage initialized")
	}
	defer func() {
		if closeErr := deps.Close(); closeErr != nil {
			logger.WithError(closeErr).Warn("failed to close storage")
		}
	}()

	signingKey := []byte(cfg.SigningKey)
	if len(signingKey) == 0 {
		signingKey = []byte(insecureDevSigningKey)
		logger.Warn("token signing key is not configured, using insecure default")
	}

	services := BuildServices(deps, signingKey)
	logger.Info("storefront services initialized")
	if opts.onServicesReady != nil {
		opts.onServicesReady(services)
	}

	// Инициализация Kafka producer (опционально)
	kafkaProducer, _ := initKafkaProducer(cfg.KafkaBrokers, logger)

	var wg sync.WaitGroup

	if kafkaProducer != nil {
		publisher := kafka.NewOutboxPublisher(kafkaProducer, kafka.TopicOrderEvents)
		dlqPublisher := kafka.NewOutboxPublisher(kafkaProducer, kafka.TopicDeadLetterQueue)

		relay := outbox.NewWorker(
			deps.Outbox,
			publisher,
			outbox.WithLogger(logger.WithField("component", "outbox-worker")),
			outbox.WithDLQPublisher(dlqPublisher),
		)
		wg.Add(1)
		go func() {
			defer wg.Done()
			relay.Run(ctx)
		}()
	} else {
		logger.Info("kafka brokers are not configured, outbox relay is disabled")
	}

	cleanup := idempotency.NewCleanupWorker(
		deps.Submissions,
		idempotency.WithLogger(logger.WithField("component", "submission-cleanup-worker")),
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		cleanup.Run(ctx)
	}()

	healthHandler := healthcheck.NewHandler(version.GetVersion())
	if deps.Store != nil {
		store := deps.Store
		healthHandler.RegisterChecker("storage", healthcheck.NewSimpleChecker("storage", func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return store.Ping(pingCtx)
		}))
	}

	metricsSrv := startMetricsServer(ctx, cfg.MetricsAddr, logger, healthHandler)

	<-ctx.Done()
	logger.Info("получен сигнал остановки, останавливаем воркеры")
	wg.Wait()
	shutdownHTTP(metricsSrv, logger)
	closeKafka(kafkaProducer, logger)

	return ctx.Err()
}

// startMetricsServer запускает HTTP-обработчик /metrics для Prometheus
// вместе с health-проверками.
func startMetricsServer(ctx context.Context, addr string, logger *log.Entry, healthHandler *healthcheck.Handler) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/healthz", healthHandler)
	mux.HandleFunc("/livez", healthcheck.LivenessHandler)
	mux.HandleFunc("/readyz", healthHandler.ReadinessHandler)

	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		logger.Infof("метрики доступны по адресу %s/metrics", addr)
		logger.Infof("health checks: %s/healthz, %s/livez, %s/readyz", addr, addr, addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.WithError(err).Warn("metrics server failed")
		}
	}()

	go func() {
		<-ctx.Done()
		shutdownHTTP(srv, logger)
	}()

	return srv
}

// shutdownHTTP аккуратно останавливает HTTP-сервер.
func shutdownHTTP(srv *http.Server, logger *log.Entry) {
	if srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.WithError(err).Warn("metrics shutdown with error")
	}
}

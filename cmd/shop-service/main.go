package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"strings"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/beershop/internal/app"
)

// Переменные окружения сервиса магазина.
const (
	envMetricsAddr  = "SHOP_METRICS_ADDR"
	envPostgresDSN  = "SHOP_POSTGRES_DSN"
	envKafkaBrokers = "SHOP_KAFKA_BROKERS"
	envSigningKey   = "SHOP_SIGNING_KEY"
)

// envLookup абстрагирует os.LookupEnv для тестов.
type envLookup func(key string) (string, bool)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
}

// readConfigFromEnv формирует конфигурацию приложения, позволяя
// переопределить значения через переменные окружения. Пустые значения
// оставляют значения по умолчанию.
func readConfigFromEnv(lookup envLookup) app.Config {
	cfg := app.DefaultConfig()

	if v, ok := lookupTrimmed(lookup, envMetricsAddr); ok {
		cfg.MetricsAddr = v
	}
	if v, ok := lookupTrimmed(lookup, envPostgresDSN); ok {
		cfg.PostgresDSN = v
	}
	if v, ok := lookupTrimmed(lookup, envKafkaBrokers); ok {
		cfg.KafkaBrokers = v
	}
	if v, ok := lookupTrimmed(lookup, envSigningKey); ok {
		cfg.SigningKey = v
	}

	return cfg
}

func lookupTrimmed(lookup envLookup, key string) (string, bool) {
	raw, ok := lookup(key)
	if !ok {
		return "", false
	}
	value := strings.TrimSpace(raw)
	if value == "" {
		return "", false
	}
	return value, true
}

func main() {
	setupLogger()
	cfg := readConfigFromEnv(os.LookupEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"metrics_addr":   cfg.MetricsAddr,
		"postgres":       cfg.PostgresDSN != "",
		"kafka_brokers":  cfg.KafkaBrokers != "",
		"custom_signing": cfg.SigningKey != "",
	}).Info("запускаем сервис магазина")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("сервис магазина остановлен")
}

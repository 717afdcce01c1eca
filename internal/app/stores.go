package app

import (
	"fmt"

	"github.com/dayanaadylkhanova/health-exporter/internal/adapter/store/clickhouse"
	"github.com/dayanaadylkhanova/health-exporter/internal/adapter/store/postgres"
	"github.com/dayanaadylkhanova/health-exporter/internal/healthstore"
	"github.com/dayanaadylkhanova/health-exporter/pkg/config"
	"go.uber.org/zap"
)

type sourceLoader func(cfg config.Config, log *zap.Logger) (healthstore.Source, error)

var sourceLoaders = map[string]sourceLoader{
	config.StorePostgres:   loadPostgres,
	config.StoreClickHouse: loadClickHouse,
}

func openSource(cfg config.Config, log *zap.Logger) (healthstore.Source, error) {
	loader, ok := sourceLoaders[cfg.HealthStore]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHealthStore, cfg.HealthStore)
	}
	src, err := loader(cfg, log.Named(cfg.HealthStore))
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.HealthStore, err)
	}
	return src, nil
}

func loadPostgres(cfg config.Config, log *zap.Logger) (healthstore.Source, error) {
	return postgres.New(cfg.DatabaseURL, log)
}

func loadClickHouse(cfg config.Config, log *zap.Logger) (healthstore.Source, error) {
	return clickhouse.New(clickhouse.Config{
		DSN:          cfg.ClickHouseDSN,
		Database:     cfg.ClickHouseDatabase,
		MetricsTable: cfg.ClickHouseMetricsTable,
	}, log)
}

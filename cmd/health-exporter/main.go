package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/dayanaadylkhanova/health-exporter/internal/app"
	"github.com/dayanaadylkhanova/health-exporter/pkg/config"
	"github.com/dayanaadylkhanova/health-exporter/pkg/logger"
	"go.uber.org/zap"
)

var (
	AppName      = "health-exporter"
	AppBuildTime = "dev"
	AppCommit    = "dev"
	AppRelease   = "dev"
)

func main() {
	cfg, err := config.Parse()
	if err != nil {
		log.Fatalf("can't parse app config: %v", err)
	}
	if cfg.MaxCPU > 0 {
		runtime.GOMAXPROCS(cfg.MaxCPU)
	}

	zl := logger.New(cfg.LogLevel, cfg.LogFormat)
	zap.ReplaceGlobals(zl)

	code := run(cfg, zl)
	_ = zl.Sync()
	os.Exit(code)
}

func run(cfg *config.Config, zl *zap.Logger) (code int) {
	defer func() {
		if r := recover(); r != nil {
			zl.Error("panic error", zap.Error(fmt.Errorf("%v", r)))
			code = 2
		}
	}()

	info := &app.AppInfo{Name: AppName, BuildTime: AppBuildTime, Commit: AppCommit, Release: AppRelease}
	zl.Info("starting",
		zap.String("app", info.Name),
		zap.String("release", info.Release),
		zap.String("commit", info.Commit),
		zap.String("built", info.BuildTime),
	)
	zl.Info("config", configFields(cfg)...)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	application, err := app.New(*cfg, info, zl)
	if err != nil {
		zl.Error("can't build app", zap.Error(err))
		return 1
	}

	err = application.Run(ctx)
	switch {
	case errors.Is(err, app.ErrAppStartup):
		zl.Error("can't run application", zap.Error(err))
		return 1
	case errors.Is(err, app.ErrAppShutdownWithError):
		zl.Error("application is shutdown with error", zap.Error(err))
		return 1
	default:
		zl.Warn("application is shutdown")
		return 0
	}
}

// configFields lists the effective settings; credentials are reported only
// as set or unset.
func configFields(cfg *config.Config) []zap.Field {
	fields := []zap.Field{
		zap.String("listen_addr", cfg.ListenAddr),
		zap.String("health_store", cfg.HealthStore),
		zap.Duration("query_window", cfg.QueryWindow),
		zap.Int("query_batch_size", cfg.QueryBatchSize),
		zap.String("report_tz", cfg.ReportTimezone),
		zap.Bool("smtp", cfg.SMTPHost != ""),
		zap.Bool("smtp_auth", cfg.SMTPUsername != ""),
		zap.Bool("default_recipient", cfg.MailTo != ""),
		zap.Strings("kafka_brokers", cfg.KafkaBrokers),
	}
	if cfg.HealthStore == config.StoreClickHouse {
		fields = append(fields, zap.String("clickhouse_table", cfg.ClickHouseDatabase+"."+cfg.ClickHouseMetricsTable))
	}
	if cfg.SMTPHost == "" {
		fields = append(fields, zap.String("draft_dir", cfg.MailDraftDir))
	}
	return fields
}

package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	StorePostgres   = "postgres"
	StoreClickHouse = "clickhouse"
)

type Config struct {
	ListenAddr   string
	LogLevel     string
	LogFormat    string
	MaxCPU       int
	ShutdownWait time.Duration

	// Health store
	HealthStore            string
	DatabaseURL            string
	ClickHouseDSN          string
	ClickHouseDatabase     string
	ClickHouseMetricsTable string
	QueryWindow            time.Duration
	QueryBatchSize         int
	ReportTimezone         string

	// Mail
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	MailTo       string
	MailDraftDir string

	// Events
	KafkaBrokers []string
	KafkaTopic   string
}

func Parse() (*Config, error) {
	var errs []error
	c := &Config{}
	c.ListenAddr = getenv("LISTEN_ADDR", ":3000")
	c.LogLevel = getenv("LOG_LEVEL", "info")
	c.LogFormat = strings.ToLower(getenv("LOG_FORMAT", "json"))
	c.MaxCPU = mustInt(getenv("MAX_CPU", "0"))
	c.ShutdownWait = mustDuration(getenv("SHUTDOWN_WAIT", "5s"), 5*time.Second)

	c.HealthStore = strings.ToLower(getenv("HEALTH_STORE", StorePostgres))
	c.DatabaseURL = getenv("DATABASE_URL", "")
	c.ClickHouseDSN = getenv("CLICKHOUSE_DSN", "")
	c.ClickHouseDatabase = getenv("CLICKHOUSE_DATABASE", "health")
	c.ClickHouseMetricsTable = getenv("CLICKHOUSE_METRICS_TABLE", "metrics")
	c.QueryWindow = mustDuration(getenv("QUERY_WINDOW", "168h"), 7*24*time.Hour)
	c.QueryBatchSize = mustInt(getenv("QUERY_BATCH_SIZE", "500"))
	c.ReportTimezone = getenv("REPORT_TZ", "UTC")

	c.SMTPHost = getenv("SMTP_HOST", "")
	c.SMTPPort = mustInt(getenv("SMTP_PORT", "587"))
	c.SMTPUsername = getenv("SMTP_USERNAME", "")
	c.SMTPPassword = getenv("SMTP_PASSWORD", "")
	c.MailFrom = getenv("MAIL_FROM", "health-exporter@localhost")
	c.MailTo = getenv("MAIL_TO", "")
	c.MailDraftDir = getenv("MAIL_DRAFT_DIR", "drafts")

	c.KafkaBrokers = splitAndTrim(getenv("KAFKA_BROKERS", ""))
	c.KafkaTopic = getenv("KAFKA_TOPIC", "health.exports")

	switch c.HealthStore {
	case StorePostgres:
		if c.DatabaseURL == "" {
			errs = append(errs, fmt.Errorf("DATABASE_URL is required for HEALTH_STORE=%s", StorePostgres))
		}
	case StoreClickHouse:
		if c.ClickHouseDSN == "" {
			errs = append(errs, fmt.Errorf("CLICKHOUSE_DSN is required for HEALTH_STORE=%s", StoreClickHouse))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown HEALTH_STORE %q", c.HealthStore))
	}
	if c.QueryBatchSize <= 0 {
		errs = append(errs, fmt.Errorf("QUERY_BATCH_SIZE must be > 0"))
	}
	if _, err := time.LoadLocation(c.ReportTimezone); err != nil {
		errs = append(errs, fmt.Errorf("REPORT_TZ: %w", err))
	}
	if c.SMTPHost != "" && (c.SMTPPort <= 0 || c.SMTPPort > 65535) {
		errs = append(errs, fmt.Errorf("SMTP_PORT must be in 1..65535"))
	}
	if len(errs) > 0 {
		return nil, joinErrs(errs)
	}
	return c, nil
}

// Location resolves ReportTimezone; Parse has already validated it.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.ReportTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
func mustInt(s string) int { n, _ := strconv.Atoi(s); return n }
func mustDuration(s string, def time.Duration) time.Duration {
	d, _ := time.ParseDuration(s)
	if d <= 0 {
		return def
	}
	return d
}

func splitAndTrim(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func joinErrs(errs []error) error {
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += e.Error()
	}
	return errors.New(msg)
}

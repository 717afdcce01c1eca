package clickhouse

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"time"

	_ "github.com/ClickHouse/clickhouse-go/v2"
	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/dayanaadylkhanova/health-exporter/internal/healthstore"
	"go.uber.org/zap"
)

// Config points at the metrics table filled by the Auto Export import server.
type Config struct {
	DSN          string `json:"dsn"`
	Database     string `json:"database"`
	MetricsTable string `json:"metrics_table"`
}

// MetricNames maps health type identifiers to Auto Export metric names.
var MetricNames = map[string]string{
	healthstore.QuantityStepCount:                      "step_count",
	"HKQuantityTypeIdentifierDistanceWalkingRunning":   "walking_running_distance",
	"HKQuantityTypeIdentifierFlightsClimbed":           "flights_climbed",
	"HKQuantityTypeIdentifierActiveEnergyBurned":       "active_energy",
	"HKQuantityTypeIdentifierAppleExerciseTime":        "apple_exercise_time",
	"HKQuantityTypeIdentifierRestingHeartRate":         "resting_heart_rate",
	"HKQuantityTypeIdentifierHeartRateVariabilitySDNN": "heart_rate_variability",
	"HKQuantityTypeIdentifierBasalEnergyBurned":        "basal_energy_burned",
	"HKQuantityTypeIdentifierWalkingHeartRateAverage":  "walking_heart_rate_average",
}

var (
	ErrUnknownMetric = errors.New("no clickhouse metric for health type")
	ErrMissingTable  = errors.New("clickhouse metrics table does not exist")

	identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Store reads quantity samples from the ClickHouse metrics table. The table
// has no characteristics, and every sample is a point in time.
type Store struct {
	db           *sql.DB
	log          *zap.Logger
	database     string
	metricsTable string
}

var _ healthstore.Source = (*Store)(nil)

func New(cfg Config, log *zap.Logger) (*Store, error) {
	if !identRe.MatchString(cfg.Database) || !identRe.MatchString(cfg.MetricsTable) {
		return nil, fmt.Errorf("invalid clickhouse database/table name %q.%q", cfg.Database, cfg.MetricsTable)
	}
	db, err := sql.Open("clickhouse", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to open ClickHouse: %w", err)
	}
	return &Store{db: db, log: log, database: cfg.Database, metricsTable: cfg.MetricsTable}, nil
}

func (store *Store) Name() string { return "clickhouse" }

func (store *Store) Init(ctx context.Context) error {
	var n uint64
	err := store.db.QueryRowContext(ctx,
		`SELECT count() FROM system.tables WHERE database = ? AND name = ?`,
		store.database, store.metricsTable).Scan(&n)
	if err != nil {
		return fmt.Errorf("failed to inspect tables: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s.%s", ErrMissingTable, store.database, store.metricsTable)
	}
	return nil
}

func (store *Store) Ping(ctx context.Context) error {
	if err := store.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping ClickHouse: %w", err)
	}
	return nil
}

func MetricName(typeID string) (string, error) {
	name, ok := MetricNames[typeID]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownMetric, typeID)
	}
	return name, nil
}

func (store *Store) samplesQuery() string {
	return fmt.Sprintf(`SELECT timestamp, qty, metric_unit FROM %s.%s
WHERE metric_name = ? AND timestamp >= ? AND timestamp < ? ORDER BY timestamp`,
		store.database, store.metricsTable)
}

func (store *Store) QuerySamples(ctx context.Context, req healthstore.SampleRequest, fn func([]entity.RawObject) error) error {
	metric, err := MetricName(req.TypeID)
	if err != nil {
		return err
	}
	rows, err := store.db.QueryContext(ctx, store.samplesQuery(), metric, req.From.UTC(), req.To.UTC())
	if err != nil {
		return fmt.Errorf("failed to query metrics: %w", err)
	}
	defer rows.Close()

	b := healthstore.NewBatcher(req.BatchSize, fn)
	for rows.Next() {
		var (
			ts   time.Time
			qty  float64
			unit string
		)
		if err := rows.Scan(&ts, &qty, &unit); err != nil {
			return fmt.Errorf("failed to scan metric: %w", err)
		}
		obj := entity.RawObject{
			Kind:   entity.KindQuantitySample,
			TypeID: req.TypeID,
			Value:  qty,
			Unit:   unit,
			Start:  ts.UTC(),
			End:    ts.UTC(),
			Source: "auto-export",
		}
		if err := b.Add(obj); err != nil {
			return err
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if err := b.Flush(); err != nil {
		return err
	}
	store.log.Debug("metrics read", zap.String("metric", metric), zap.Int("rows", b.Count()))
	return nil
}

func (store *Store) QueryCharacteristics(context.Context, []string) ([]entity.RawObject, error) {
	return nil, nil
}

func (store *Store) Close() error {
	return store.db.Close()
}

package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/dayanaadylkhanova/health-exporter/internal/healthstore"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// Store reads imported health samples from Postgres.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

var _ healthstore.Source = (*Store)(nil)

func New(dsn string, log *zap.Logger) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	pool, err := pgxpool.NewWithConfig(context.Background(), cfg)
	if err != nil {
		return nil, err
	}
	return &Store{pool: pool, log: log}, nil
}

func (s *Store) Name() string { return "postgres" }

func (s *Store) Init(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS health_samples (
	type_id  TEXT             NOT NULL,
	value    DOUBLE PRECISION NOT NULL,
	unit     TEXT             NOT NULL DEFAULT '',
	start_at TIMESTAMPTZ      NOT NULL,
	end_at   TIMESTAMPTZ      NOT NULL,
	source   TEXT             NOT NULL DEFAULT '',
	PRIMARY KEY (type_id, start_at, end_at, source)
);
CREATE TABLE IF NOT EXISTS health_characteristics (
	type_id TEXT PRIMARY KEY,
	value   TEXT NOT NULL
);
`
	_, err := s.pool.Exec(ctx, ddl)
	return err
}

func (s *Store) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

// QuerySamples implements healthstore.Source
func (s *Store) QuerySamples(ctx context.Context, req healthstore.SampleRequest, fn func([]entity.RawObject) error) error {
	const q = `SELECT value, unit, start_at, end_at, source FROM health_samples
WHERE type_id=$1 AND start_at >= $2 AND start_at < $3 ORDER BY start_at, end_at`
	rows, err := s.pool.Query(ctx, q, req.TypeID, sinceEpoch(req.From), req.To)
	if err != nil {
		return err
	}
	defer rows.Close()

	b := healthstore.NewBatcher(req.BatchSize, fn)
	for rows.Next() {
		obj := entity.RawObject{Kind: entity.KindQuantitySample, TypeID: req.TypeID}
		if err := rows.Scan(&obj.Value, &obj.Unit, &obj.Start, &obj.End, &obj.Source); err != nil {
			return err
		}
		obj.Start, obj.End = obj.Start.UTC(), obj.End.UTC()
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
	s.log.Debug("samples read", zap.String("type", req.TypeID), zap.Int("rows", b.Count()))
	return nil
}

// QueryCharacteristics implements healthstore.Source
func (s *Store) QueryCharacteristics(ctx context.Context, typeIDs []string) ([]entity.RawObject, error) {
	const q = `SELECT type_id, value FROM health_characteristics WHERE type_id = ANY($1) ORDER BY type_id`
	rows, err := s.pool.Query(ctx, q, typeIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []entity.RawObject
	for rows.Next() {
		obj := entity.RawObject{Kind: entity.KindCharacteristic}
		if err := rows.Scan(&obj.TypeID, &obj.Text); err != nil {
			return nil, err
		}
		out = append(out, obj)
	}
	return out, rows.Err()
}

// InsertSamples stores quantity samples, ignoring ones already present.
func (s *Store) InsertSamples(ctx context.Context, objs []entity.RawObject) error {
	if len(objs) == 0 {
		return nil
	}
	sql := "INSERT INTO health_samples (type_id, value, unit, start_at, end_at, source) VALUES "
	args := make([]any, 0, len(objs)*6)
	for i, o := range objs {
		if i > 0 {
			sql += ","
		}
		n := i*6 + 1
		sql += fmt.Sprintf("($%d,$%d,$%d,$%d,$%d,$%d)", n, n+1, n+2, n+3, n+4, n+5)
		args = append(args, o.TypeID, o.Value, o.Unit, o.Start.UTC(), o.End.UTC(), o.Source)
	}
	sql += " ON CONFLICT (type_id, start_at, end_at, source) DO NOTHING"
	_, err := s.pool.Exec(ctx, sql, args...)
	return err
}

func (s *Store) UpsertCharacteristic(ctx context.Context, typeID, value string) error {
	const q = `INSERT INTO health_characteristics (type_id, value) VALUES ($1, $2)
ON CONFLICT (type_id) DO UPDATE SET value = EXCLUDED.value`
	_, err := s.pool.Exec(ctx, q, typeID, value)
	return err
}

func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// sinceEpoch keeps zero times out of TIMESTAMPTZ comparisons.
func sinceEpoch(t time.Time) time.Time {
	if t.IsZero() {
		return time.Unix(0, 0).UTC()
	}
	return t
}

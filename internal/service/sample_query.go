package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/dayanaadylkhanova/health-exporter/internal/healthstore"
	"github.com/dayanaadylkhanova/health-exporter/internal/observability"
	"go.uber.org/zap"
)

const DefaultQueryWindow = 7 * 24 * time.Hour

// SampleQuery fetches step count samples, plus the requested characteristics,
// into a SampleAggregator. It fans out to one platform query per quantity
// identifier and runs them one after another.
type SampleQuery struct {
	lifecycle

	log             *zap.Logger
	hc              HealthController
	characteristics healthstore.Identifiers
	quantities      healthstore.Identifiers
	window          time.Duration
	batchSize       int
	now             func() time.Time

	agg *SampleAggregator
}

type SampleQueryOption func(*SampleQuery)

func WithWindow(d time.Duration) SampleQueryOption {
	return func(q *SampleQuery) {
		if d > 0 {
			q.window = d
		}
	}
}

func WithQueryBatchSize(n int) SampleQueryOption {
	return func(q *SampleQuery) { q.batchSize = n }
}

func WithClock(now func() time.Time) SampleQueryOption {
	return func(q *SampleQuery) {
		if now != nil {
			q.now = now
		}
	}
}

func NewSampleQuery(log *zap.Logger, hc HealthController, characteristics, quantities healthstore.Identifiers, opts ...SampleQueryOption) *SampleQuery {
	q := &SampleQuery{
		lifecycle:       newLifecycle(),
		log:             log,
		hc:              hc,
		characteristics: characteristics.Clone(),
		quantities:      quantities.Clone(),
		window:          DefaultQueryWindow,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(q)
	}
	q.log = q.log.With(zap.String("query_id", q.id.String()))
	q.agg = NewSampleAggregator(q.log, q.stepTypeID(), q.characteristics)
	return q
}

var _ Query[*SampleAggregator] = (*SampleQuery)(nil)

func (q *SampleQuery) stepTypeID() string {
	if id, ok := q.quantities["stepCount"]; ok {
		return id
	}
	return healthstore.QuantityStepCount
}

// Execute moves the query to QUERYING before it returns and runs the fetch in
// the background. completion is called once, after which the state is DONE.
func (q *SampleQuery) Execute(ctx context.Context, completion func(Result[*SampleAggregator])) error {
	if completion == nil {
		return ErrNilCompletion
	}
	if err := q.begin(); err != nil {
		return err
	}
	observability.RecordQueryStarted()
	q.log.Info("query started", zap.Int("quantities", len(q.quantities)), zap.Int("characteristics", len(q.characteristics)))

	go q.run(ctx, completion)
	return nil
}

func (q *SampleQuery) run(ctx context.Context, completion func(Result[*SampleAggregator])) {
	to := q.now()
	from := to.Add(-q.window)

	var errs []error
	for _, id := range sortedValues(q.quantities) {
		pq := &healthstore.PlatformQuery{
			Kind:   healthstore.KindSamples,
			Sample: healthstore.SampleRequest{TypeID: id, From: from, To: to, BatchSize: q.batchSize},
		}
		if err := q.submit(ctx, pq); err != nil {
			errs = append(errs, fmt.Errorf("quantity %s: %w", id, err))
		}
	}
	if len(q.characteristics) > 0 {
		pq := &healthstore.PlatformQuery{
			Kind:            healthstore.KindCharacteristics,
			Characteristics: sortedValues(q.characteristics),
		}
		if err := q.submit(ctx, pq); err != nil {
			errs = append(errs, fmt.Errorf("characteristics: %w", err))
		}
	}

	err := errors.Join(errs...)
	observability.RecordQueryCompleted(err)
	if err != nil {
		q.log.Warn("query finished with errors", zap.Error(err), zap.Int("samples", len(q.agg.StepCounts())))
	} else {
		q.log.Info("query finished", zap.Int("samples", len(q.agg.StepCounts())), zap.Int("skipped", q.agg.Skipped()))
	}

	completion(Result[*SampleAggregator]{Aggregator: q.agg, Err: err})
	if err := q.updateState(entity.QueryDone); err != nil {
		q.log.Error("settle query state", zap.Error(err))
	}
}

// submit hands pq to the controller and blocks until its completion handler
// reports back, so batches of different platform queries never interleave.
func (q *SampleQuery) submit(ctx context.Context, pq *healthstore.PlatformQuery) error {
	done := make(chan error, 1)
	pq.ResultsHandler = q.agg.ProcessObjects
	pq.CompletionHandler = func(err error) { done <- err }
	q.hc.ExecuteQuery(ctx, pq)
	return <-done
}

func sortedValues(ids healthstore.Identifiers) []string {
	out := ids.Values()
	sort.Strings(out)
	return out
}

package healthstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/dayanaadylkhanova/health-exporter/internal/observability"
	"go.uber.org/zap"
)

var (
	ErrNoSource      = errors.New("health data source is not configured")
	ErrNotAuthorized = errors.New("health data access was not granted")
	ErrInvalidQuery  = errors.New("invalid platform query")
)

const defaultBatchSize = 500

// Controller is the single point of contact with the health data store.
// One Controller is built at startup and passed to everything that queries.
type Controller struct {
	src Source
	log *zap.Logger

	characteristics Identifiers
	quantities      Identifiers
	batchSize       int

	authMu     sync.Mutex
	authorized bool

	wg sync.WaitGroup
}

type Option func(*Controller)

func WithCharacteristicTypes(ids Identifiers) Option {
	return func(c *Controller) { c.characteristics = ids.Clone() }
}

func WithQuantityTypes(ids Identifiers) Option {
	return func(c *Controller) { c.quantities = ids.Clone() }
}

func WithBatchSize(n int) Option {
	return func(c *Controller) {
		if n > 0 {
			c.batchSize = n
		}
	}
}

func NewController(src Source, log *zap.Logger, opts ...Option) *Controller {
	c := &Controller{
		src:             src,
		log:             log,
		characteristics: DefaultCharacteristicTypes(),
		quantities:      DefaultQuantityTypes(),
		batchSize:       defaultBatchSize,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Controller) CharacteristicTypes() Identifiers { return c.characteristics.Clone() }
func (c *Controller) QuantityTypes() Identifiers       { return c.quantities.Clone() }

// IsHealthDataAvailable reports whether a store is configured and reachable.
func (c *Controller) IsHealthDataAvailable(ctx context.Context) bool {
	if c.src == nil {
		return false
	}
	if err := c.src.Ping(ctx); err != nil {
		c.log.Warn("health data unavailable", zap.String("store", c.src.Name()), zap.Error(err))
		return false
	}
	return true
}

// authorize performs first-use setup of the store. Only success is
// remembered; after a failure the next query runs Init again.
func (c *Controller) authorize(ctx context.Context) error {
	c.authMu.Lock()
	defer c.authMu.Unlock()
	if c.authorized {
		return nil
	}
	if err := c.src.Init(ctx); err != nil {
		return fmt.Errorf("%w: %v", ErrNotAuthorized, err)
	}
	c.authorized = true
	c.log.Info("health store ready", zap.String("store", c.src.Name()))
	return nil
}

// ExecuteQuery runs q asynchronously. Batches are delivered to
// q.ResultsHandler one after another from a single goroutine, then
// q.CompletionHandler is called exactly once.
func (c *Controller) ExecuteQuery(ctx context.Context, q *PlatformQuery) {
	if q == nil {
		return
	}
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()
		start := time.Now()
		err := c.run(ctx, q)
		observability.ObservePlatformQuery(kindLabel(q.Kind), time.Since(start), err)
		if err != nil {
			c.log.Warn("platform query failed", zap.String("kind", kindLabel(q.Kind)), zap.Error(err))
		}
		if q.CompletionHandler != nil {
			q.CompletionHandler(err)
		}
	}()
}

func (c *Controller) run(ctx context.Context, q *PlatformQuery) error {
	if c.src == nil {
		return ErrNoSource
	}
	if err := c.authorize(ctx); err != nil {
		return err
	}
	deliver := func(batch []entity.RawObject) {
		if len(batch) > 0 && q.ResultsHandler != nil {
			q.ResultsHandler(batch)
		}
	}

	switch q.Kind {
	case KindSamples:
		req := q.Sample
		if req.TypeID == "" || req.To.Before(req.From) {
			return fmt.Errorf("%w: sample request %+v", ErrInvalidQuery, req)
		}
		if req.BatchSize <= 0 {
			req.BatchSize = c.batchSize
		}
		return c.src.QuerySamples(ctx, req, func(batch []entity.RawObject) error {
			deliver(batch)
			return ctx.Err()
		})
	case KindCharacteristics:
		if len(q.Characteristics) == 0 {
			return nil
		}
		objs, err := c.src.QueryCharacteristics(ctx, q.Characteristics)
		if err != nil {
			return err
		}
		deliver(objs)
		return nil
	default:
		return fmt.Errorf("%w: kind %d", ErrInvalidQuery, q.Kind)
	}
}

// Wait blocks until all in-flight platform queries have completed.
func (c *Controller) Wait() { c.wg.Wait() }

func (c *Controller) Close() error {
	c.wg.Wait()
	if c.src == nil {
		return nil
	}
	return c.src.Close()
}

func kindLabel(k QueryKind) string {
	switch k {
	case KindSamples:
		return "samples"
	case KindCharacteristics:
		return "characteristics"
	default:
		return "unknown"
	}
}

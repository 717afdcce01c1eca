package service

import (
	"context"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/dayanaadylkhanova/health-exporter/internal/healthstore"
	"github.com/google/uuid"
)

//go:generate mockgen -destination=mock_contracts_test.go -package=service github.com/dayanaadylkhanova/health-exporter/internal/service HealthController,Mailer,EventPublisher

// HealthController is the access point to the health data store.
// healthstore.Controller implements it.
type HealthController interface {
	CharacteristicTypes() healthstore.Identifiers
	QuantityTypes() healthstore.Identifiers
	IsHealthDataAvailable(ctx context.Context) bool
	ExecuteQuery(ctx context.Context, q *healthstore.PlatformQuery)
}

// Mailer delivers a composed report. The returned result is meaningful even
// when err is non-nil.
type Mailer interface {
	Send(ctx context.Context, msg entity.MailMessage) (entity.MailResult, error)
}

type EventPublisher interface {
	Publish(ctx context.Context, ev entity.ExportEvent) error
}

// Aggregator folds batches of raw objects into typed collections.
// ProcessObjects may be called any number of times; every call adds to
// what earlier calls produced.
type Aggregator interface {
	ProcessObjects(batch []entity.RawObject)
}

// Result is handed to a query's completion callback. Err carries platform
// failures; Aggregator keeps whatever was ingested before them.
type Result[A Aggregator] struct {
	Aggregator A
	Err        error
}

type Query[A Aggregator] interface {
	ID() uuid.UUID
	State() entity.QueryState
	Execute(ctx context.Context, completion func(Result[A])) error
	Observe(fn func(entity.QueryState)) uuid.UUID
	Unobserve(id uuid.UUID)
}

// SessionPort is what the transport drives: fetch, inspect, export.
type SessionPort interface {
	StartFetch(ctx context.Context) (uuid.UUID, error)
	View(ctx context.Context) entity.SessionView
	Report() ([]byte, error)
	Share(ctx context.Context, to string) (entity.MailResult, error)
}

type TypesReaderPort interface {
	CharacteristicTypes() healthstore.Identifiers
	QuantityTypes() healthstore.Identifiers
	IsHealthDataAvailable(ctx context.Context) bool
}

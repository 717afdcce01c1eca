package healthstore

import (
	"context"
	"time"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
)

// Identifiers maps a symbolic health type name (e.g. "stepCount") to the
// identifier the store knows it by.
type Identifiers map[string]string

func (ids Identifiers) Clone() Identifiers {
	out := make(Identifiers, len(ids))
	for k, v := range ids {
		out[k] = v
	}
	return out
}

// Values returns the identifiers in no particular order.
func (ids Identifiers) Values() []string {
	out := make([]string, 0, len(ids))
	for _, v := range ids {
		out = append(out, v)
	}
	return out
}

const (
	CharacteristicBiologicalSex = "HKCharacteristicTypeIdentifierBiologicalSex"
	CharacteristicDateOfBirth   = "HKCharacteristicTypeIdentifierDateOfBirth"
	CharacteristicBloodType     = "HKCharacteristicTypeIdentifierBloodType"

	QuantityStepCount = "HKQuantityTypeIdentifierStepCount"
)

func DefaultCharacteristicTypes() Identifiers {
	return Identifiers{
		"biologicalSex": CharacteristicBiologicalSex,
		"dateOfBirth":   CharacteristicDateOfBirth,
		"bloodType":     CharacteristicBloodType,
	}
}

func DefaultQuantityTypes() Identifiers {
	return Identifiers{
		"stepCount": QuantityStepCount,
	}
}

type SampleRequest struct {
	TypeID    string
	From      time.Time
	To        time.Time
	BatchSize int
}

//go:generate mockgen -source=types.go -destination=mock_source_test.go -package=healthstore

// Source is a backend holding imported health samples.
type Source interface {
	Name() string
	// Init runs once, on first use, before any query is served.
	Init(ctx context.Context) error
	Ping(ctx context.Context) error
	// QuerySamples streams samples ordered by start time in batches of at most
	// req.BatchSize. Returning an error from fn aborts the query.
	QuerySamples(ctx context.Context, req SampleRequest, fn func([]entity.RawObject) error) error
	QueryCharacteristics(ctx context.Context, typeIDs []string) ([]entity.RawObject, error)
	Close() error
}

type QueryKind int

const (
	KindSamples QueryKind = iota
	KindCharacteristics
)

// PlatformQuery is a prepared request. Results and errors reach the caller
// only through the handlers attached to it.
type PlatformQuery struct {
	Kind            QueryKind
	Sample          SampleRequest
	Characteristics []string

	ResultsHandler    func(batch []entity.RawObject)
	CompletionHandler func(err error)
}

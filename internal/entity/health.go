package entity

import "time"

// ObjectKind tags the variant carried by a RawObject.
type ObjectKind string

const (
	KindQuantitySample ObjectKind = "quantity_sample"
	KindCharacteristic ObjectKind = "characteristic"
)

// RawObject is one loosely typed record as delivered by a health store.
// Sample fields are set for KindQuantitySample, Text for KindCharacteristic.
type RawObject struct {
	Kind   ObjectKind
	TypeID string

	Value  float64
	Unit   string
	Start  time.Time
	End    time.Time
	Source string

	Text string
}

type StepCount struct {
	Count     float64
	StartDate time.Time
	EndDate   time.Time
}

// QueryState is the lifecycle of a health query. It only moves forward.
type QueryState int

const (
	QueryNew QueryState = iota
	QueryQuerying
	QueryDone
)

func (s QueryState) String() string {
	switch s {
	case QueryNew:
		return "NEW"
	case QueryQuerying:
		return "QUERYING"
	case QueryDone:
		return "DONE"
	default:
		return "UNKNOWN"
	}
}

func (s QueryState) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

package service

import (
	"math"
	"sync"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/dayanaadylkhanova/health-exporter/internal/healthstore"
	"github.com/dayanaadylkhanova/health-exporter/internal/observability"
	"go.uber.org/zap"
)

// SampleAggregator collects step count samples and characteristic values.
type SampleAggregator struct {
	log        *zap.Logger
	stepTypeID string
	charNames  map[string]string // identifier -> symbolic name

	mu              sync.RWMutex
	stepCounts      []entity.StepCount
	characteristics map[string]string
	skipped         int
}

func NewSampleAggregator(log *zap.Logger, stepTypeID string, characteristics healthstore.Identifiers) *SampleAggregator {
	if stepTypeID == "" {
		stepTypeID = healthstore.QuantityStepCount
	}
	names := make(map[string]string, len(characteristics))
	for name, id := range characteristics {
		names[id] = name
	}
	return &SampleAggregator{
		log:             log,
		stepTypeID:      stepTypeID,
		charNames:       names,
		characteristics: make(map[string]string),
	}
}

var _ Aggregator = (*SampleAggregator)(nil)

func (a *SampleAggregator) ProcessObjects(batch []entity.RawObject) {
	kept, skipped := 0, 0

	a.mu.Lock()
	for _, obj := range batch {
		switch obj.Kind {
		case entity.KindQuantitySample:
			if !a.validStepSample(obj) {
				skipped++
				a.log.Debug("skip sample",
					zap.String("type", obj.TypeID),
					zap.Float64("value", obj.Value),
					zap.Time("start", obj.Start),
					zap.Time("end", obj.End))
				continue
			}
			a.stepCounts = append(a.stepCounts, entity.StepCount{Count: obj.Value, StartDate: obj.Start, EndDate: obj.End})
			kept++
		case entity.KindCharacteristic:
			key := obj.TypeID
			if name, ok := a.charNames[obj.TypeID]; ok {
				key = name
			}
			if obj.Text == "" {
				skipped++
				continue
			}
			if _, seen := a.characteristics[key]; !seen {
				a.characteristics[key] = obj.Text
			}
			kept++
		default:
			skipped++
		}
	}
	a.skipped += skipped
	a.mu.Unlock()

	observability.RecordObjects(kept, skipped)
}

func (a *SampleAggregator) validStepSample(obj entity.RawObject) bool {
	if obj.TypeID != a.stepTypeID {
		return false
	}
	if obj.Value < 0 || math.IsNaN(obj.Value) || math.IsInf(obj.Value, 0) {
		return false
	}
	if obj.Start.IsZero() || obj.End.IsZero() {
		return false
	}
	return !obj.End.Before(obj.Start)
}

// StepCounts returns a copy of the ingested step samples in arrival order.
func (a *SampleAggregator) StepCounts() []entity.StepCount {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return append([]entity.StepCount(nil), a.stepCounts...)
}

func (a *SampleAggregator) Characteristics() map[string]string {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make(map[string]string, len(a.characteristics))
	for k, v := range a.characteristics {
		out[k] = v
	}
	return out
}

func (a *SampleAggregator) TotalSteps() float64 {
	a.mu.RLock()
	defer a.mu.RUnlock()
	var total float64
	for _, sc := range a.stepCounts {
		total += sc.Count
	}
	return total
}

// Skipped is the number of objects rejected as invalid so far.
func (a *SampleAggregator) Skipped() int {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.skipped
}

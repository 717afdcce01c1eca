package healthstore

import (
	"errors"
	"testing"
	"time"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
)

func TestBatcher_SplitsAndFlushes(t *testing.T) {
	var sizes []int
	b := NewBatcher(2, func(batch []entity.RawObject) error {
		sizes = append(sizes, len(batch))
		return nil
	})
	for _, obj := range samples(5, time.Now()) {
		if err := b.Add(obj); err != nil {
			t.Fatalf("add: %v", err)
		}
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	if err := b.Flush(); err != nil {
		t.Fatalf("second flush: %v", err)
	}
	if len(sizes) != 3 || sizes[0] != 2 || sizes[1] != 2 || sizes[2] != 1 {
		t.Fatalf("unexpected batch sizes %v", sizes)
	}
	if b.Count() != 5 {
		t.Fatalf("expected count 5, got %d", b.Count())
	}
}

func TestBatcher_PropagatesHandlerError(t *testing.T) {
	stop := errors.New("stop")
	b := NewBatcher(1, func([]entity.RawObject) error { return stop })
	if err := b.Add(entity.RawObject{}); !errors.Is(err, stop) {
		t.Fatalf("expected handler error, got %v", err)
	}
}

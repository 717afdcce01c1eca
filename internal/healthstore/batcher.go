package healthstore

import "github.com/dayanaadylkhanova/health-exporter/internal/entity"

// Batcher groups streamed rows into batches of at most size objects.
type Batcher struct {
	size int
	fn   func([]entity.RawObject) error
	buf  []entity.RawObject
	n    int
}

func NewBatcher(size int, fn func([]entity.RawObject) error) *Batcher {
	if size <= 0 {
		size = defaultBatchSize
	}
	return &Batcher{size: size, fn: fn, buf: make([]entity.RawObject, 0, size)}
}

func (b *Batcher) Add(obj entity.RawObject) error {
	b.buf = append(b.buf, obj)
	b.n++
	if len(b.buf) >= b.size {
		return b.Flush()
	}
	return nil
}

// Flush hands any buffered objects to fn. The slice passed to fn is not
// reused afterwards.
func (b *Batcher) Flush() error {
	if len(b.buf) == 0 {
		return nil
	}
	batch := b.buf
	b.buf = make([]entity.RawObject, 0, b.size)
	return b.fn(batch)
}

// Count is the number of objects added so far.
func (b *Batcher) Count() int { return b.n }

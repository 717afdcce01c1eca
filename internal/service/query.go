package service

import (
	"errors"
	"fmt"
	"sync"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/google/uuid"
)

var (
	ErrQueryAlreadyStarted = errors.New("query already started")
	ErrInvalidTransition   = errors.New("invalid query state transition")
	ErrNilCompletion       = errors.New("completion callback is required")
)

// lifecycle is the state machine shared by concrete queries:
// NEW -> QUERYING -> DONE, one step at a time.
type lifecycle struct {
	id uuid.UUID

	mu        sync.Mutex
	state     entity.QueryState
	observers map[uuid.UUID]func(entity.QueryState)
}

func newLifecycle() lifecycle {
	return lifecycle{id: uuid.New(), state: entity.QueryNew, observers: make(map[uuid.UUID]func(entity.QueryState))}
}

func (l *lifecycle) ID() uuid.UUID { return l.id }

func (l *lifecycle) State() entity.QueryState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// Observe registers fn for every later state change. The query does not
// own the observer; callers remove it with Unobserve when they go away.
func (l *lifecycle) Observe(fn func(entity.QueryState)) uuid.UUID {
	id := uuid.New()
	if fn == nil {
		return id
	}
	l.mu.Lock()
	l.observers[id] = fn
	l.mu.Unlock()
	return id
}

func (l *lifecycle) Unobserve(id uuid.UUID) {
	l.mu.Lock()
	delete(l.observers, id)
	l.mu.Unlock()
}

// updateState is the only way state changes. Observers run after the lock
// is released, in the caller's goroutine.
func (l *lifecycle) updateState(next entity.QueryState) error {
	l.mu.Lock()
	if next != l.state+1 || next > entity.QueryDone {
		cur := l.state
		l.mu.Unlock()
		return fmt.Errorf("%w: %s -> %s", ErrInvalidTransition, cur, next)
	}
	l.state = next
	fns := make([]func(entity.QueryState), 0, len(l.observers))
	for _, fn := range l.observers {
		fns = append(fns, fn)
	}
	l.mu.Unlock()

	for _, fn := range fns {
		fn(next)
	}
	return nil
}

func (l *lifecycle) begin() error {
	if err := l.updateState(entity.QueryQuerying); err != nil {
		if errors.Is(err, ErrInvalidTransition) {
			return ErrQueryAlreadyStarted
		}
		return err
	}
	return nil
}

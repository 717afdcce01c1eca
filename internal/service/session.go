package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
	"github.com/dayanaadylkhanova/health-exporter/internal/observability"
	"github.com/dayanaadylkhanova/health-exporter/internal/report"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrHealthDataUnavailable = errors.New("health data is not available")
	ErrFetchInProgress       = errors.New("a fetch is already in progress")
	ErrNothingToShare        = errors.New("no result to share yet")
	ErrShareInProgress       = errors.New("a report is already being sent")
	ErrNoRecipient           = errors.New("no recipient for the report")
)

// publishTimeout bounds one export event write.
const publishTimeout = 5 * time.Second

type SessionConfig struct {
	Window    time.Duration
	BatchSize int
	Location  *time.Location
	MailFrom  string
	MailTo    string
}

// Session drives one fetch-render-share cycle at a time: it starts a sample
// query, exposes its progress and result as table sections, and mails the
// result as a JSON report.
type Session struct {
	log    *zap.Logger
	hc     HealthController
	mailer Mailer
	events EventPublisher
	cfg    SessionConfig
	// queries outlive the request that started them
	baseCtx context.Context
	now     func() time.Time

	mu         sync.Mutex
	query      *SampleQuery
	observerID uuid.UUID
	state      entity.QueryState
	result     *SampleAggregator
	resultErr  error
	sharing    bool
	lastMail   entity.MailResult
	done       chan struct{}
	// completion event of the current query, published once it is DONE
	pending *entity.ExportEvent

	publishing sync.WaitGroup
	closed     bool
}

func NewSession(baseCtx context.Context, log *zap.Logger, hc HealthController, mailer Mailer, events EventPublisher, cfg SessionConfig) *Session {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Window <= 0 {
		cfg.Window = DefaultQueryWindow
	}
	return &Session{
		log:     log,
		hc:      hc,
		mailer:  mailer,
		events:  events,
		cfg:     cfg,
		baseCtx: baseCtx,
		now:     time.Now,
	}
}

// StartFetch creates and executes a new sample query. Nothing is created when
// health data is unavailable or another query is still running.
func (s *Session) StartFetch(ctx context.Context) (uuid.UUID, error) {
	if !s.hc.IsHealthDataAvailable(ctx) {
		return uuid.Nil, ErrHealthDataUnavailable
	}

	s.mu.Lock()
	if s.query != nil && s.state != entity.QueryDone {
		s.mu.Unlock()
		return uuid.Nil, ErrFetchInProgress
	}
	if s.query != nil {
		s.query.Unobserve(s.observerID)
	}
	q := NewSampleQuery(s.log, s.hc, s.hc.CharacteristicTypes(), s.hc.QuantityTypes(),
		WithWindow(s.cfg.Window), WithQueryBatchSize(s.cfg.BatchSize), WithClock(s.now))
	s.query = q
	s.state = entity.QueryNew
	s.pending = nil
	s.done = make(chan struct{})
	s.observerID = q.Observe(func(st entity.QueryState) { s.onState(q, st) })
	s.mu.Unlock()

	if err := q.Execute(s.baseCtx, func(res Result[*SampleAggregator]) { s.onComplete(q, res) }); err != nil {
		s.mu.Lock()
		q.Unobserve(s.observerID)
		s.query = nil
		s.mu.Unlock()
		return uuid.Nil, err
	}
	return q.ID(), nil
}

func (s *Session) onState(q *SampleQuery, st entity.QueryState) {
	s.mu.Lock()
	if s.query != q {
		s.mu.Unlock()
		return
	}
	s.state = st
	done := s.done
	var ev *entity.ExportEvent
	if st == entity.QueryDone {
		ev, s.pending = s.pending, nil
		if ev != nil && !s.closed {
			s.publishing.Add(1)
		} else {
			ev = nil
		}
	}
	s.mu.Unlock()

	s.log.Debug("query state", zap.String("query_id", q.ID().String()), zap.Stringer("state", st))
	if st != entity.QueryDone {
		return
	}
	close(done)
	if ev != nil {
		go func() {
			defer s.publishing.Done()
			s.publish(*ev)
		}()
	}
}

// onComplete runs on the query goroutine before the query is DONE, so it
// only records the outcome.
func (s *Session) onComplete(q *SampleQuery, res Result[*SampleAggregator]) {
	ev := &entity.ExportEvent{
		Type:       entity.EventQueryCompleted,
		QueryID:    q.ID().String(),
		OccurredAt: s.now().UTC(),
		Samples:    len(res.Aggregator.StepCounts()),
		TotalSteps: res.Aggregator.TotalSteps(),
	}
	if res.Err != nil {
		ev.Error = res.Err.Error()
	}

	s.mu.Lock()
	if s.query == q {
		s.result = res.Aggregator
		s.resultErr = res.Err
		s.pending = ev
	}
	s.mu.Unlock()
}

// settled returns the result of the last query once it is DONE.
func (s *Session) settled() *SampleAggregator {
	if s.state != entity.QueryDone {
		return nil
	}
	return s.result
}

// Wait blocks until the current query is DONE or ctx ends.
func (s *Session) Wait(ctx context.Context) error {
	s.mu.Lock()
	done := s.done
	s.mu.Unlock()
	if done == nil {
		return nil
	}
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Session) View(ctx context.Context) entity.SessionView {
	available := s.hc.IsHealthDataAvailable(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()

	agg := s.settled()
	v := entity.SessionView{
		State:          s.state,
		FetchEnabled:   available && (s.query == nil || s.state == entity.QueryDone),
		ShareEnabled:   agg != nil && !s.sharing,
		LastMailResult: s.lastMail,
		Sections:       []entity.DaySection{},
	}
	if s.query != nil {
		v.QueryID = s.query.ID().String()
	}
	if agg != nil {
		if s.resultErr != nil {
			v.Error = s.resultErr.Error()
		}
		v.Sections = report.Sections(agg.StepCounts(), s.cfg.Location)
		v.TotalSteps = agg.TotalSteps()
		if chars := agg.Characteristics(); len(chars) > 0 {
			v.Characteristics = chars
		}
	}
	return v
}

// Report returns the JSON array of step count records of the last result.
func (s *Session) Report() ([]byte, error) {
	s.mu.Lock()
	agg := s.settled()
	s.mu.Unlock()
	if agg == nil {
		return nil, ErrNothingToShare
	}
	return report.MarshalStepCounts(agg.StepCounts())
}

// Share mails the last result to "to", or to the configured recipient when
// "to" is empty. The outcome is reported, never retried.
func (s *Session) Share(ctx context.Context, to string) (entity.MailResult, error) {
	to = strings.TrimSpace(to)
	if to == "" {
		to = s.cfg.MailTo
	}

	s.mu.Lock()
	agg := s.settled()
	switch {
	case agg == nil:
		s.mu.Unlock()
		return "", ErrNothingToShare
	case s.sharing:
		s.mu.Unlock()
		return "", ErrShareInProgress
	case to == "":
		s.mu.Unlock()
		return "", ErrNoRecipient
	}
	s.sharing = true
	queryID := s.query.ID().String()
	s.mu.Unlock()

	result, err := s.send(ctx, agg, to)

	s.mu.Lock()
	s.sharing = false
	s.lastMail = result
	s.mu.Unlock()

	observability.RecordMailResult(string(result))
	if err != nil {
		s.log.Warn("report not delivered", zap.String("result", string(result)), zap.Error(err))
	} else {
		s.log.Info("report shared", zap.String("result", string(result)), zap.String("to", to))
	}

	ev := entity.ExportEvent{
		Type:       entity.EventReportShared,
		QueryID:    queryID,
		OccurredAt: s.now().UTC(),
		Samples:    len(agg.StepCounts()),
		TotalSteps: agg.TotalSteps(),
		MailResult: result,
	}
	if err != nil {
		ev.Error = err.Error()
	}
	s.publish(ev)
	return result, err
}

func (s *Session) send(ctx context.Context, agg *SampleAggregator, to string) (entity.MailResult, error) {
	msg, err := report.NewMail(s.cfg.MailFrom, to, agg.StepCounts(), agg.Characteristics(), s.cfg.Location)
	if err != nil {
		return entity.MailFailed, fmt.Errorf("compose report: %w", err)
	}
	result, err := s.mailer.Send(ctx, msg)
	if result == "" {
		result = entity.MailSent
		if err != nil {
			result = entity.MailFailed
		}
	}
	return result, err
}

func (s *Session) publish(ev entity.ExportEvent) {
	if s.events == nil {
		return
	}
	ctx, cancel := context.WithTimeout(s.baseCtx, publishTimeout)
	defer cancel()
	err := s.events.Publish(ctx, ev)
	observability.RecordEvent(ev.Type, err)
	if err != nil {
		s.log.Warn("publish event", zap.String("type", ev.Type), zap.Error(err))
	}
}

// Close detaches the session from its query and waits for pending event
// writes.
func (s *Session) Close() {
	s.mu.Lock()
	s.closed = true
	if s.query != nil {
		s.query.Unobserve(s.observerID)
	}
	s.mu.Unlock()
	s.publishing.Wait()
}

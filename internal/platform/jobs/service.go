package jobs

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"hrpay/internal/platform/logger"
	"hrpay/internal/platform/metrics"
)

const JobPayrollCalculation = "payroll_calculation"

const (
	StatusQueued    = "queued"
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

const (
	queueSize = 128
	maxRuns   = 512
)

var ErrQueueFull = errors.New("job queue is full")

type RunFunc func(context.Context) (any, error)

// Run is the externally visible state of one job.
type Run struct {
	ID          string     `json:"jobId"`
	Type        string     `json:"type"`
	Status      string     `json:"status"`
	QueuedAt    time.Time  `json:"queuedAt"`
	StartedAt   *time.Time `json:"startedAt,omitempty"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	Result      any        `json:"result,omitempty"`
	Error       string     `json:"error,omitempty"`
}

type job struct {
	id  string
	typ string
	run RunFunc
}

type schedule struct {
	typ      string
	interval time.Duration
	run      RunFunc
}

type Service struct {
	queue   chan job
	metrics *metrics.Collector

	mu    sync.Mutex
	runs  map[string]*Run
	order []string

	schedules []schedule
	wg        sync.WaitGroup
}

func New(m *metrics.Collector) *Service {
	return &Service{
		queue:   make(chan job, queueSize),
		metrics: m,
		runs:    make(map[string]*Run),
	}
}

// Every registers a job enqueued on each tick once Start is called. A
// non-positive interval is ignored.
func (s *Service) Every(jobType string, interval time.Duration, run RunFunc) {
	if interval <= 0 {
		return
	}
	s.schedules = append(s.schedules, schedule{typ: jobType, interval: interval, run: run})
}

// Start runs the worker and schedulers until ctx is cancelled. Wait blocks
// until they have exited.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.worker(ctx)
	}()
	for _, sch := range s.schedules {
		sch := sch
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.scheduleLoop(ctx, sch)
		}()
	}
}

func (s *Service) Wait() {
	s.wg.Wait()
}

// Enqueue records a queued run and hands it to the worker without blocking.
func (s *Service) Enqueue(jobType string, run RunFunc) (Run, error) {
	j := job{id: uuid.NewString(), typ: jobType, run: run}
	rec := &Run{ID: j.id, Type: jobType, Status: StatusQueued, QueuedAt: time.Now().UTC()}

	s.mu.Lock()
	s.track(rec)
	s.mu.Unlock()

	select {
	case s.queue <- j:
		return s.snapshot(j.id), nil
	default:
		s.finish(j.id, nil, ErrQueueFull)
		return s.snapshot(j.id), ErrQueueFull
	}
}

// RunNow executes run on the caller's goroutine and records it like a queued
// job.
func (s *Service) RunNow(ctx context.Context, jobType string, run RunFunc) (Run, error) {
	j := job{id: uuid.NewString(), typ: jobType, run: run}
	s.mu.Lock()
	s.track(&Run{ID: j.id, Type: jobType, Status: StatusQueued, QueuedAt: time.Now().UTC()})
	s.mu.Unlock()

	err := s.runJob(ctx, j)
	return s.snapshot(j.id), err
}

func (s *Service) Get(id string) (Run, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.runs[id]
	if !ok {
		return Run{}, false
	}
	return *rec, true
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-s.queue:
			if err := s.runJob(ctx, j); err != nil {
				logger.Warn(ctx, err, fmt.Sprintf("job %s failed", j.typ))
			}
		}
	}
}

func (s *Service) runJob(ctx context.Context, j job) (err error) {
	started := time.Now().UTC()
	s.mu.Lock()
	if rec, ok := s.runs[j.id]; ok {
		rec.Status = StatusRunning
		rec.StartedAt = &started
	}
	s.mu.Unlock()

	var result any
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("job %s panicked: %v", j.typ, r)
		}
		s.finish(j.id, result, err)
	}()

	l := logger.From(ctx)
	l.Info().Str("job_id", j.id).Str("job_type", j.typ).Msg("job started")
	result, err = j.run(ctx)
	return err
}

func (s *Service) finish(id string, result any, err error) {
	completed := time.Now().UTC()
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.runs[id]
	if !ok {
		return
	}
	rec.CompletedAt = &completed
	rec.Result = result
	if err != nil {
		rec.Status = StatusFailed
		rec.Error = err.Error()
		s.metrics.JobFailed()
		return
	}
	rec.Status = StatusCompleted
}

func (s *Service) snapshot(id string) Run {
	rec, _ := s.Get(id)
	return rec
}

// track stores rec and forgets the oldest runs beyond maxRuns. Callers hold mu.
func (s *Service) track(rec *Run) {
	s.runs[rec.ID] = rec
	s.order = append(s.order, rec.ID)
	for len(s.order) > maxRuns {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
}

func (s *Service) scheduleLoop(ctx context.Context, sch schedule) {
	ticker := time.NewTicker(sch.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := s.Enqueue(sch.typ, sch.run); err != nil {
				logger.Warn(ctx, err, fmt.Sprintf("scheduled job %s not queued", sch.typ))
			}
		}
	}
}

package scheduler

import (
	"context"
	"log"
	"sync"
	"time"
)

// Task is a unit of periodic maintenance work.
type Task func(ctx context.Context) error

type Scheduler struct {
	jobs   map[string]*Job // job name -> job
	mu     sync.Mutex
	wg     sync.WaitGroup
	ctx    context.Context
	cancel context.CancelFunc
}

type Job struct {
	name   string
	ticker *time.Ticker
	cancel context.CancelFunc
}

// NewScheduler initializes a new Scheduler instance
func NewScheduler() *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		jobs:   make(map[string]*Job),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Stop cancels every job and waits for running tasks to return
func (s *Scheduler) Stop() {
	log.Println("Stopping scheduler...")
	s.cancel()

	s.mu.Lock()
	for _, job := range s.jobs {
		job.ticker.Stop()
		job.cancel()
	}
	s.jobs = make(map[string]*Job)
	s.mu.Unlock()

	s.wg.Wait()
	log.Println("Scheduler stopped")
}

// Every runs task immediately and then once per interval until Stop. Adding a
// job under an existing name replaces it.
func (s *Scheduler) Every(name string, interval time.Duration, task Task) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, exists := s.jobs[name]; exists {
		existing.ticker.Stop()
		existing.cancel()
	}

	jobCtx, jobCancel := context.WithCancel(s.ctx)
	job := &Job{
		name:   name,
		ticker: time.NewTicker(interval),
		cancel: jobCancel,
	}

	s.jobs[name] = job

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.execute(jobCtx, job.name, task)
		s.run(jobCtx, job, task)
	}()

	log.Printf("Scheduled %s every %s", name, interval)
}

func (s *Scheduler) run(ctx context.Context, job *Job, task Task) {
	defer job.ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-job.ticker.C:
			s.execute(ctx, job.name, task)
		}
	}
}

func (s *Scheduler) execute(ctx context.Context, name string, task Task) {
	if ctx.Err() != nil {
		return
	}

	if err := task(ctx); err != nil && ctx.Err() == nil {
		log.Printf("Scheduled job %s failed: %v", name, err)
	}
}

package scheduler

import (
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/osse101/PrizeGrid_Go/internal/worker"
)

// Scheduler manages scheduled jobs. Interval jobs run on tickers, calendar jobs on a UTC cron.
type Scheduler struct {
	workerPool *worker.Pool
	cron       *cron.Cron
	quit       chan struct{}
	wg         sync.WaitGroup
	stopOnce   sync.Once
}

// New creates a new scheduler
func New(pool *worker.Pool) *Scheduler {
	return &Scheduler{
		workerPool: pool,
		cron:       cron.New(cron.WithLocation(time.UTC)),
		quit:       make(chan struct{}),
	}
}

// Schedule registers a job to run at a fixed interval
func (s *Scheduler) Schedule(interval time.Duration, job worker.Job) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				s.workerPool.TryEnqueue(job)
			case <-s.quit:
				return
			}
		}
	}()
}

// ScheduleCron registers a job on a standard five-field cron expression evaluated in UTC
func (s *Scheduler) ScheduleCron(spec string, job worker.Job) (cron.EntryID, error) {
	id, err := s.cron.AddFunc(spec, func() {
		s.workerPool.TryEnqueue(job)
	})
	if err != nil {
		return 0, fmt.Errorf("invalid cron spec %q: %w", spec, err)
	}
	return id, nil
}

// Next returns the next fire time of a cron entry, or the zero time if the entry is unknown
func (s *Scheduler) Next(id cron.EntryID) time.Time {
	return s.cron.Entry(id).Next
}

// Start starts the cron runner. Interval jobs start as soon as they are scheduled.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops all scheduled jobs
func (s *Scheduler) Stop() {
	s.stopOnce.Do(func() {
		close(s.quit)
		<-s.cron.Stop().Done()
	})
	s.wg.Wait()
}

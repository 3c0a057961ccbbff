package jobs

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/sjperalta/obrafin-api/pkg/logger"
)

// Job represents a background task
type Job func(ctx context.Context) error

// Worker manages background jobs and scheduled tasks
type Worker struct {
	ctx           context.Context
	cancel        context.CancelFunc
	wg            sync.WaitGroup
	queue         chan namedJob
	asyncSem      chan struct{}
	maxConcurrent int

	statsMu   sync.RWMutex
	stats     WorkerStats
	schedules map[string]time.Duration
}

type namedJob struct {
	name string
	run  Job
}

// WorkerStats holds statistics about the worker
type WorkerStats struct {
	ActiveJobs    int               `json:"active_jobs"`
	SucceededJobs int64             `json:"succeeded_jobs"`
	FailedJobs    int64             `json:"failed_jobs"`
	QueueLength   int               `json:"queue_length"`
	MaxConcurrent int               `json:"max_concurrent"`
	Schedules     map[string]string `json:"schedules"`
	LastFailure   string            `json:"last_failure,omitempty"`
}

// NewWorker creates a worker with numWorkers queue processors
func NewWorker(numWorkers int) *Worker {
	if numWorkers < 1 {
		numWorkers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	asyncLimit := numWorkers * 2
	if asyncLimit < 10 {
		asyncLimit = 10
	}

	w := &Worker{
		ctx:           ctx,
		cancel:        cancel,
		queue:         make(chan namedJob, 100),
		asyncSem:      make(chan struct{}, asyncLimit),
		maxConcurrent: asyncLimit,
		schedules:     make(map[string]time.Duration),
	}

	for i := 0; i < numWorkers; i++ {
		w.wg.Add(1)
		go w.process(i)
	}

	return w
}

// Enqueue adds a job to the worker pool. A full queue runs the job inline.
func (w *Worker) Enqueue(name string, job Job) {
	select {
	case w.queue <- namedJob{name: name, run: job}:
	default:
		logger.Warn("worker queue full, running job inline", slog.String("job", name))
		w.run(logger.With(slog.String("job", name)), namedJob{name: name, run: job})
	}
}

// EnqueueAsync runs a job in its own goroutine, bounded by a semaphore
func (w *Worker) EnqueueAsync(name string, job Job) {
	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		select {
		case w.asyncSem <- struct{}{}:
		case <-w.ctx.Done():
			return
		}
		defer func() { <-w.asyncSem }()

		w.run(logger.With(slog.String("job", name), slog.Bool("async", true)), namedJob{name: name, run: job})
	}()
}

func (w *Worker) process(workerID int) {
	defer w.wg.Done()
	log := logger.With(slog.Int("worker", workerID))
	for {
		select {
		case <-w.ctx.Done():
			return
		case job, ok := <-w.queue:
			if !ok {
				return
			}
			w.run(log.With(slog.String("job", job.name)), job)
		}
	}
}

// ScheduleEvery runs a job at fixed intervals. The first run happens after the interval.
func (w *Worker) ScheduleEvery(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, job, false)
}

// ScheduleEveryImmediate runs a job once at startup, then at fixed intervals.
func (w *Worker) ScheduleEveryImmediate(name string, interval time.Duration, job Job) {
	w.schedule(name, interval, job, true)
}

func (w *Worker) schedule(name string, interval time.Duration, job Job, immediate bool) {
	w.statsMu.Lock()
	w.schedules[name] = interval
	w.statsMu.Unlock()

	log := logger.With(slog.String("job", name), slog.Duration("interval", interval))
	nj := namedJob{name: name, run: job}

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		if immediate {
			w.run(log, nj)
		}
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-w.ctx.Done():
				return
			case <-ticker.C:
				w.run(log, nj)
			}
		}
	}()
}

// run executes one job with panic recovery and stats tracking.
func (w *Worker) run(log *slog.Logger, job namedJob) {
	w.trackStart()
	start := time.Now()

	var err error
	func() {
		defer func() {
			if r := recover(); r != nil {
				log.Error("job panic", slog.Any("panic", r))
				err = errPanic
			}
		}()
		err = job.run(w.ctx)
	}()

	if err != nil {
		if err != errPanic {
			log.Error("job failed", slog.Any("error", err))
		}
		w.trackEnd(job.name, false)
		return
	}
	log.Debug("job completed", slog.Duration("took", time.Since(start)))
	w.trackEnd(job.name, true)
}

// Shutdown stops all workers and waits for running jobs
func (w *Worker) Shutdown() {
	w.cancel()
	w.wg.Wait()
}

// Context returns the worker's context for checking cancellation
func (w *Worker) Context() context.Context {
	return w.ctx
}

// GetStats returns the current worker statistics
func (w *Worker) GetStats() WorkerStats {
	w.statsMu.RLock()
	defer w.statsMu.RUnlock()
	stats := w.stats
	stats.QueueLength = len(w.queue)
	stats.MaxConcurrent = w.maxConcurrent
	stats.Schedules = make(map[string]string, len(w.schedules))
	for name, every := range w.schedules {
		stats.Schedules[name] = every.String()
	}
	return stats
}

func (w *Worker) trackStart() {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs++
}

func (w *Worker) trackEnd(name string, ok bool) {
	w.statsMu.Lock()
	defer w.statsMu.Unlock()
	w.stats.ActiveJobs--
	if ok {
		w.stats.SucceededJobs++
		return
	}
	w.stats.FailedJobs++
	w.stats.LastFailure = name
}

package tasks

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

var _ TaskSchedulerInterface = (*Scheduler)(nil)

const (
	queueSize   = 300
	taskTimeout = 30 * time.Second
)

type Scheduler struct {
	workerCount int
	ctx         context.Context
	cancel      context.CancelFunc
	wg          sync.WaitGroup
	taskQueue   chan TaskInterface
	periodic    []periodic
}

type periodic struct {
	interval time.Duration
	build    func() TaskInterface
}

func NewScheduler(workerCount int) *Scheduler {
	ctx, cancel := context.WithCancel(context.Background())
	if workerCount <= 0 {
		workerCount = 1
	}

	return &Scheduler{
		workerCount: workerCount,
		ctx:         ctx,
		cancel:      cancel,
		taskQueue:   make(chan TaskInterface, queueSize),
	}
}

func (s *Scheduler) Start() {
	for i := 0; i < s.workerCount; i++ {
		s.wg.Add(1)
		go s.worker(i)
	}

	for _, p := range s.periodic {
		s.wg.Add(1)
		go s.tick(p)
	}
	slog.Debug("Task workers started", "count", s.workerCount, "periodic", len(s.periodic))
}

// Every enqueues a task built by build at startup and then once per interval.
// It must be called before Start.
func (s *Scheduler) Every(interval time.Duration, build func() TaskInterface) {
	s.periodic = append(s.periodic, periodic{interval: interval, build: build})
}

func (s *Scheduler) tick(p periodic) {
	defer s.wg.Done()

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	s.enqueuePeriodic(p)
	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.enqueuePeriodic(p)
		}
	}
}

func (s *Scheduler) enqueuePeriodic(p periodic) {
	task := p.build()
	if err := s.EnqueueTask(task); err != nil {
		slog.Warn("Failed to enqueue periodic task", "type", string(task.GetType()), "error", err)
	}
}

// Stop lets the workers finish the queued tasks, then returns.
func (s *Scheduler) Stop() {
	s.cancel()
	s.wg.Wait()
}

// EnqueueTask never blocks: a full queue is reported as an error.
func (s *Scheduler) EnqueueTask(task TaskInterface) error {
	if s.ctx.Err() != nil {
		return s.ctx.Err()
	}
	select {
	case s.taskQueue <- task:
		return nil
	default:
		return fmt.Errorf("task queue is full")
	}
}

func (s *Scheduler) worker(id int) {
	defer s.wg.Done()

	for {
		select {
		case task := <-s.taskQueue:
			s.executeTask(id, task)

		case <-s.ctx.Done():
			s.drain(id)
			return
		}
	}
}

func (s *Scheduler) drain(id int) {
	for {
		select {
		case task := <-s.taskQueue:
			s.executeTask(id, task)
		default:
			return
		}
	}
}

func (s *Scheduler) executeTask(workerID int, task TaskInterface) {
	task.Start()

	taskCtx, cancel := context.WithTimeout(context.Background(), taskTimeout)
	defer cancel()

	if err := task.Execute(taskCtx); err != nil {
		slog.Error("Worker task execution failed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "error", err)
		return
	}

	slog.Debug("Task completed", "worker_id", workerID, "type", string(task.GetType()), "id", task.GetID(), "duration", task.GetDuration())
}

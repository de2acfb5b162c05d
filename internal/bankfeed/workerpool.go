package bankfeed

import (
	"context"

	"go.uber.org/zap"
)

type WorkerPoolI interface {
	AddTask(ctx context.Context, task Task) error
	Close()
}

// Task polls one account's bank balance end to end.
type Task func() error

// WorkerPool bounds how many accounts are polled concurrently so a large
// account set cannot flood the bank API in a single tick.
type WorkerPool struct {
	tasks chan Task
}

func NewWorkerPool(workers int) *WorkerPool {
	wp := &WorkerPool{tasks: make(chan Task, workers)}
	for i := 0; i < workers; i++ {
		go wp.run()
	}
	return wp
}

func (wp *WorkerPool) run() {
	for task := range wp.tasks {
		if err := task(); err != nil {
			zap.L().Error("Bank poll task failed", zap.Error(err))
		}
	}
}

// AddTask enqueues a poll, or gives up when ctx ends before a worker frees up.
func (wp *WorkerPool) AddTask(ctx context.Context, task Task) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case wp.tasks <- task:
		return nil
	}
}

func (wp *WorkerPool) Close() {
	select {
	case <-wp.tasks:
	default:
		close(wp.tasks)
	}
}

package event

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/internal/application/service"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

var ErrQueueClosed = errors.New("deploy queue closed")

type DeployHandler func(ctx context.Context, job service.DeployJob) error

// InProcessDeployQueue runs deploy jobs on a fixed set of goroutines. It is
// used when no Kafka brokers are configured.
type InProcessDeployQueue struct {
	jobs    chan service.DeployJob
	handler DeployHandler
	logger  logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu     sync.RWMutex
	closed bool
}

func NewInProcessDeployQueue(handler DeployHandler, workers, buffer int, log logger.Logger) *InProcessDeployQueue {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	q := &InProcessDeployQueue{
		jobs:    make(chan service.DeployJob, buffer),
		handler: handler,
		logger:  log,
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workers; i++ {
		q.wg.Add(1)
		go q.run()
	}
	return q
}

func (q *InProcessDeployQueue) run() {
	defer q.wg.Done()
	for job := range q.jobs {
		if err := q.handler(q.ctx, job); err != nil {
			q.logger.Error("Failed to process deploy job", err, zap.String("session_id", job.SessionID.String()))
		}
	}
}

func (q *InProcessDeployQueue) Enqueue(ctx context.Context, job service.DeployJob) error {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.closed {
		return ErrQueueClosed
	}
	select {
	case q.jobs <- job:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops accepting jobs, cancels running ones and waits for the workers.
func (q *InProcessDeployQueue) Close() error {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return nil
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	q.cancel()
	q.wg.Wait()
	return nil
}

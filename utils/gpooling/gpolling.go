package gpooling

import (
	"sync/atomic"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"
)

const waitPollInterval = 10 * time.Millisecond

// Pool - pooling struct
type Pool struct {
	antsPool *ants.Pool
	logger   *zap.Logger
	pending  int64
}

// IPool - pooling interface
type IPool interface {
	Submit(task func())
	Release()
	Pending() int
	Wait(timeout time.Duration) bool
}

// NewPooling - init pooling. Submit never blocks: when every worker is busy
// the task is dropped and logged. Panics inside tasks are logged, not propagated.
func NewPooling(maxPoolSize int, logger *zap.Logger) (*Pool, error) {
	pool, err := ants.NewPool(maxPoolSize, ants.WithNonblocking(true), ants.WithPanicHandler(func(data interface{}) {
		logger.With(zap.Any("err-data-pool", data)).Error("err pool")
	}))
	if err != nil {
		return nil, err
	}
	return &Pool{
		antsPool: pool,
		logger:   logger,
	}, nil
}

// Release - release all gorotine
func (p *Pool) Release() {
	p.antsPool.Release()
}

// Pending - returns the number of submitted tasks that have not finished.
func (p *Pool) Pending() int {
	return int(atomic.LoadInt64(&p.pending))
}

// Submit - submit a task to this pool
func (p *Pool) Submit(task func()) {
	atomic.AddInt64(&p.pending, 1)
	err := p.antsPool.Submit(func() {
		defer atomic.AddInt64(&p.pending, -1)
		task()
	})
	if err != nil {
		atomic.AddInt64(&p.pending, -1)
		p.logger.With(zap.Error(err)).Warn("pool submit rejected")
	}
}

// Wait blocks until every submitted task has finished or timeout passes. It
// reports whether the pool drained.
func (p *Pool) Wait(timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for p.Pending() > 0 {
		if !time.Now().Before(deadline) {
			return false
		}
		time.Sleep(waitPollInterval)
	}
	return true
}

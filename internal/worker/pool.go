package worker

import (
	"context"
	"errors"
	"hash/fnv"
	"sync"

	"go.uber.org/zap"
)

var ErrPoolStopped = errors.New("POOL_STOPPED")

// Pool runs tasks on a fixed set of serial lanes. Tasks sharing a key always
// land on the same lane, so work for one tenant-channel pair is strictly
// ordered while unrelated tenants proceed in parallel. A wallet is therefore
// never touched by two lanes at once.
type Pool struct {
	lanes  []chan func()
	wg     sync.WaitGroup
	mu     sync.RWMutex
	closed bool
	logger *zap.Logger
}

func NewPool(lanes int, depth int, logger *zap.Logger) *Pool {
	if lanes <= 0 {
		lanes = 1
	}

	if depth <= 0 {
		depth = 1
	}

	p := &Pool{lanes: make([]chan func(), lanes), logger: logger}

	for i := range p.lanes {
		ch := make(chan func(), depth)
		p.lanes[i] = ch

		p.wg.Add(1)
		go func(ch chan func()) {
			defer p.wg.Done()
			for task := range ch {
				task()
			}
		}(ch)
	}

	return p
}

// Enqueue places fn on the lane for key and returns a channel carrying its
// result. Tasks enqueued from one goroutine run in enqueue order within a
// lane, which is what gives a tenant-channel pair its FIFO guarantee. It
// blocks while the lane is full, which backpressures the caller the same way
// a full queue would.
func (p *Pool) Enqueue(ctx context.Context, key string, fn func() error) (<-chan error, error) {
	p.mu.RLock()
	if p.closed {
		p.mu.RUnlock()
		return nil, ErrPoolStopped
	}

	lane := p.lanes[laneIndex(key, len(p.lanes))]
	done := make(chan error, 1)

	select {
	case lane <- func() { done <- fn() }:
		p.mu.RUnlock()
		return done, nil
	case <-ctx.Done():
		p.mu.RUnlock()
		return nil, ctx.Err()
	}
}

// Submit schedules fn on the lane for key and waits for its result.
func (p *Pool) Submit(ctx context.Context, key string, fn func() error) error {
	done, err := p.Enqueue(ctx, key, fn)
	if err != nil {
		return err
	}

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		// The task may still run; the caller only stops waiting.
		return ctx.Err()
	}
}

// Stop closes the lanes and waits for queued tasks to drain.
func (p *Pool) Stop() {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	for _, lane := range p.lanes {
		close(lane)
	}

	p.wg.Wait()

	if p.logger != nil {
		p.logger.Info("Worker pool drained")
	}
}

func laneIndex(key string, lanes int) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(key))
	return int(h.Sum32() % uint32(lanes))
}

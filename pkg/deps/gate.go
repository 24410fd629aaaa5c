package deps

import (
	"context"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Gate admits at most a fixed number of concurrent holders. Callers that
// find it full queue in arrival order and are admitted as slots free up.
// A Gate is safe for concurrent use.
type Gate struct {
	sem      *semaphore.Weighted
	limit    int64
	inFlight atomic.Int64
	waiting  atomic.Int64
	peak     atomic.Int64
}

// NewGate returns a gate with limit slots. A limit below 1 is treated as 1.
func NewGate(limit int) *Gate {
	l := int64(max(limit, 1))
	return &Gate{sem: semaphore.NewWeighted(l), limit: l}
}

// Acquire blocks until a slot is free or ctx is done. On success the
// caller must call [Gate.Release] exactly once.
func (g *Gate) Acquire(ctx context.Context) error {
	g.waiting.Add(1)
	err := g.sem.Acquire(ctx, 1)
	g.waiting.Add(-1)
	if err != nil {
		return err
	}

	n := g.inFlight.Add(1)
	for {
		p := g.peak.Load()
		if n <= p || g.peak.CompareAndSwap(p, n) {
			break
		}
	}
	return nil
}

// Release frees a slot taken by Acquire.
func (g *Gate) Release() {
	g.inFlight.Add(-1)
	g.sem.Release(1)
}

// Do runs fn while holding a slot.
func (g *Gate) Do(ctx context.Context, fn func() error) error {
	if err := g.Acquire(ctx); err != nil {
		return err
	}
	defer g.Release()
	return fn()
}

func (g *Gate) Limit() int    { return int(g.limit) }
func (g *Gate) InFlight() int { return int(g.inFlight.Load()) }
func (g *Gate) Waiting() int  { return int(g.waiting.Load()) }

// Peak returns the highest number of simultaneous holders seen so far.
func (g *Gate) Peak() int { return int(g.peak.Load()) }

// Package bufpool provides reusable byte buffers for the wrap service hot
// path. Buffers are organized in size buckets backed by sync.Pool and are
// zeroed on return, so key material never lingers in pooled memory.
package bufpool

import (
	"sync"
	"sync/atomic"
)

// Pool hands out byte slices from per-size buckets. Requests above the
// largest bucket fall back to plain allocations.
type Pool struct {
	pools   map[int]*sync.Pool
	buckets []int

	requests  atomic.Int64
	misses    atomic.Int64
	oversized atomic.Int64
}

// New creates a pool with buckets sized for typical wrap command payloads,
// from a single hex-encoded KCV up to the largest framed request.
func New() *Pool {
	p := &Pool{
		buckets: []int{64, 128, 256, 512, 1024, 2048, 4096},
	}

	p.pools = make(map[int]*sync.Pool, len(p.buckets))
	for _, size := range p.buckets {
		size := size
		p.pools[size] = &sync.Pool{
			New: func() any {
				p.misses.Add(1)

				return make([]byte, 0, size)
			},
		}
	}

	return p
}

// Get returns a buffer of length size from the smallest bucket that fits.
// The buffer must be handed back with Put when no longer needed.
func (p *Pool) Get(size int) []byte {
	p.requests.Add(1)

	for _, bs := range p.buckets {
		if bs >= size {
			buf, _ := p.pools[bs].Get().([]byte)

			return buf[:size]
		}
	}

	p.misses.Add(1)
	p.oversized.Add(1)

	return make([]byte, size)
}

// Put zeroes buf and returns it to its bucket. Buffers whose capacity does
// not match a bucket, including oversized ones, are left to the garbage
// collector.
func (p *Pool) Put(buf []byte) {
	if buf == nil {
		return
	}

	pool, ok := p.pools[cap(buf)]
	if !ok {
		return
	}

	buf = buf[:cap(buf)]
	clear(buf)
	pool.Put(buf[:0])
}

// Prewarm seeds every bucket with count ready buffers to absorb the first
// burst of traffic without allocation.
func (p *Pool) Prewarm(count int) {
	for _, size := range p.buckets {
		for range count {
			p.pools[size].Put(make([]byte, 0, size))
		}
	}
}

// Stats reports request, hit and miss counters in a form ready for
// structured logging.
func (p *Pool) Stats() map[string]any {
	misses := p.misses.Load()
	requests := p.requests.Load()
	hits := requests - misses

	hitRate := 0.0
	if requests > 0 {
		hitRate = float64(hits) / float64(requests) * 100.0
	}

	return map[string]any{
		"requests":     requests,
		"hits":         hits,
		"misses":       misses,
		"oversized":    p.oversized.Load(),
		"hit_rate_pct": hitRate,
	}
}

package replay

import (
	"context"
	"sync"

	"github.com/yourusername/mlb-edge/internal/boxscore"
)

type fetchResult struct {
	raw boxscore.RawBoxScore
	err error
}

// Prefetcher fetches the next game's box score in the background while the
// current one is aggregated. Only the network call runs concurrently; cache
// and database access stay on the replay goroutine.
type Prefetcher struct {
	fetcher boxscore.Fetcher

	mu      sync.Mutex
	pending map[int64]chan fetchResult
}

// NewPrefetcher wraps a fetcher
func NewPrefetcher(fetcher boxscore.Fetcher) *Prefetcher {
	return &Prefetcher{fetcher: fetcher, pending: make(map[int64]chan fetchResult)}
}

// Prefetch starts fetching a game unless a fetch is already pending
func (p *Prefetcher) Prefetch(ctx context.Context, gamePK int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.pending[gamePK]; ok {
		return
	}
	ch := make(chan fetchResult, 1)
	p.pending[gamePK] = ch
	go func() {
		raw, err := p.fetcher.FetchBoxScore(ctx, gamePK)
		ch <- fetchResult{raw: raw, err: err}
	}()
}

// FetchBoxScore returns the prefetched payload when there is one, otherwise
// it fetches synchronously
func (p *Prefetcher) FetchBoxScore(ctx context.Context, gamePK int64) (boxscore.RawBoxScore, error) {
	p.mu.Lock()
	ch, ok := p.pending[gamePK]
	delete(p.pending, gamePK)
	p.mu.Unlock()

	if !ok {
		return p.fetcher.FetchBoxScore(ctx, gamePK)
	}
	select {
	case res := <-ch:
		return res.raw, res.err
	case <-ctx.Done():
		return boxscore.RawBoxScore{}, ctx.Err()
	}
}

// Pending returns the number of prefetches not yet consumed
func (p *Prefetcher) Pending() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.pending)
}

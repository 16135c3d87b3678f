package storage

import (
	"log"
	"sync"

	"github.com/hailam/knightroutes/internal/search"
)

// CachedSolver answers route requests from the storage when it can and
// runs a search otherwise, storing what it computes.
type CachedSolver struct {
	store  *Storage
	sorted bool

	mu     sync.Mutex
	hits   uint64
	misses uint64
}

// NewCachedSolver creates a cached solver over store. sorted selects
// canonical predecessor order for the searches it runs.
func NewCachedSolver(store *Storage, sorted bool) *CachedSolver {
	return &CachedSolver{
		store:  store,
		sorted: sorted,
	}
}

// Solve returns the result for req. Cache read and write failures are
// logged and fall back to searching.
func (cs *CachedSolver) Solve(req search.Request) (*search.Result, error) {
	res, ok, err := cs.store.LoadResult(req, cs.sorted)
	if err != nil {
		log.Printf("Warning: ignoring cached %s: %v", req, err)
	}
	if ok {
		cs.record(true)
		return res, nil
	}

	// Cache miss - search
	res, err = search.Solve(req.Start, req.Target, search.WithSortedPredecessors(cs.sorted))
	if err != nil {
		return nil, err
	}
	if err := cs.store.SaveResult(res, cs.sorted); err != nil {
		log.Printf("Warning: failed to cache %s: %v", req, err)
	}
	cs.record(false)
	return res, nil
}

func (cs *CachedSolver) record(hit bool) {
	cs.mu.Lock()
	if hit {
		cs.hits++
	} else {
		cs.misses++
	}
	cs.mu.Unlock()

	if err := cs.store.RecordQuery(hit); err != nil {
		log.Printf("Warning: failed to record query: %v", err)
	}
}

// Stats returns the hits and misses seen by this solver.
func (cs *CachedSolver) Stats() (hits, misses uint64) {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.hits, cs.misses
}

// Store returns the underlying storage.
func (cs *CachedSolver) Store() *Storage {
	return cs.store
}

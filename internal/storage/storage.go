package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"

	"github.com/hailam/knightroutes/internal/board"
	"github.com/hailam/knightroutes/internal/search"
)

// Storage keys
const (
	keyRoutePrefix = "route:"
	keyStats       = "stats"
)

// ErrCorruptResult is returned when a cached result does not describe valid knight routes.
var ErrCorruptResult = errors.New("corrupt cached result")

// CachedResult is the stored form of a search.Result.
type CachedResult struct {
	Start    string     `json:"start"`
	Target   string     `json:"target"`
	Moves    int        `json:"moves"`
	Explored [][]string `json:"explored"`
	Layers   [][]string `json:"layers"`
	Routes   []string   `json:"routes"`
	SavedAt  time.Time  `json:"saved_at"`
}

// QueryStats stores lifetime query statistics.
type QueryStats struct {
	Queries   int       `json:"queries"`
	Hits      int       `json:"hits"`
	Misses    int       `json:"misses"`
	LastQuery time.Time `json:"last_query"`
}

// HitRate returns the cache hit rate as a percentage (0-100)
func (s *QueryStats) HitRate() float64 {
	if s.Queries == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Queries) * 100
}

// Storage wraps BadgerDB for persistent storage
type Storage struct {
	db *badger.DB
}

// NewStorage opens the storage in the platform data directory.
func NewStorage() (*Storage, error) {
	dbDir, err := GetDatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dbDir)
}

// Open opens (or creates) the storage in dir.
func Open(dir string) (*Storage, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging
	return open(opts)
}

// OpenInMemory opens a storage that lives only as long as the process.
func OpenInMemory() (*Storage, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	opts.Logger = nil
	return open(opts)
}

func open(opts badger.Options) (*Storage, error) {
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open route cache: %w", err)
	}
	return &Storage{db: db}, nil
}

// Close closes the database
func (s *Storage) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// resultKey includes the predecessor order because it changes the route order.
func resultKey(req search.Request, sorted bool) []byte {
	key := keyRoutePrefix + req.String()
	if sorted {
		key += ":sorted"
	}
	return []byte(key)
}

// SaveResult stores a solved result.
func (s *Storage) SaveResult(res *search.Result, sorted bool) error {
	data, err := json.Marshal(encodeResult(res))
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(resultKey(res.Request(), sorted), data)
	})
}

// LoadResult returns a stored result, or false if none is stored.
func (s *Storage) LoadResult(req search.Request, sorted bool) (*search.Result, bool, error) {
	var cached *CachedResult

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(resultKey(req, sorted))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			cached = &CachedResult{}
			return json.Unmarshal(val, cached)
		})
	})
	if err != nil || cached == nil {
		return nil, false, err
	}

	res, err := cached.Decode()
	if err != nil {
		return nil, false, err
	}
	if res.Request() != req {
		return nil, false, fmt.Errorf("%w: stored under %s but describes %s", ErrCorruptResult, req, res.Request())
	}
	return res, true, nil
}

// ClearResults deletes every stored result. Statistics are kept.
func (s *Storage) ClearResults() error {
	return s.db.DropPrefix([]byte(keyRoutePrefix))
}

// SaveStats saves query statistics
func (s *Storage) SaveStats(stats *QueryStats) error {
	data, err := json.Marshal(stats)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(keyStats), data)
	})
}

// LoadStats loads query statistics, returns empty stats if not found
func (s *Storage) LoadStats() (*QueryStats, error) {
	stats := &QueryStats{}

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyStats))
		if err == badger.ErrKeyNotFound {
			return nil // Use empty stats
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, stats)
		})
	})

	return stats, err
}

// RecordQuery records one lookup and updates statistics
func (s *Storage) RecordQuery(hit bool) error {
	stats, err := s.LoadStats()
	if err != nil {
		return err
	}

	stats.Queries++
	if hit {
		stats.Hits++
	} else {
		stats.Misses++
	}
	stats.LastQuery = time.Now()

	return s.SaveStats(stats)
}

func encodeLayers(layers []search.Layer) [][]string {
	out := make([][]string, len(layers))
	for i, layer := range layers {
		out[i] = make([]string, len(layer))
		for j, sq := range layer {
			out[i][j] = sq.String()
		}
	}
	return out
}

func encodeResult(res *search.Result) *CachedResult {
	routes := make([]string, len(res.Routes))
	for i, r := range res.Routes {
		routes[i] = r.String()
	}
	return &CachedResult{
		Start:    res.Start.String(),
		Target:   res.Target.String(),
		Moves:    res.Moves,
		Explored: encodeLayers(res.Explored),
		Layers:   encodeLayers(res.Layers),
		Routes:   routes,
		SavedAt:  time.Now(),
	}
}

func decodeLayers(layers [][]string) ([]search.Layer, error) {
	out := make([]search.Layer, len(layers))
	for i, layer := range layers {
		out[i] = make(search.Layer, len(layer))
		for j, text := range layer {
			sq, err := board.ParseSquare(text)
			if err != nil || !sq.IsValid() {
				return nil, fmt.Errorf("%w: square %q", ErrCorruptResult, text)
			}
			out[i][j] = sq
		}
	}
	return out, nil
}

// Decode converts the stored form back into a search.Result, checking that
// every route is a chain of knight moves of the stored length.
func (c *CachedResult) Decode() (*search.Result, error) {
	req, err := search.ParseRequest(c.Start + "-" + c.Target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCorruptResult, err)
	}

	explored, err := decodeLayers(c.Explored)
	if err != nil {
		return nil, err
	}
	layers, err := decodeLayers(c.Layers)
	if err != nil {
		return nil, err
	}
	if len(layers) != c.Moves+1 {
		return nil, fmt.Errorf("%w: %d layers for %d moves", ErrCorruptResult, len(layers), c.Moves)
	}

	routes := make([]search.Route, len(c.Routes))
	for i, text := range c.Routes {
		route, err := decodeRoute(text, c.Moves)
		if err != nil {
			return nil, err
		}
		if route[0] != req.Start || route[len(route)-1] != req.Target {
			return nil, fmt.Errorf("%w: route %s does not join %s", ErrCorruptResult, text, req)
		}
		routes[i] = route
	}

	return &search.Result{
		Start:    req.Start,
		Target:   req.Target,
		Moves:    c.Moves,
		Explored: explored,
		Layers:   layers,
		Routes:   routes,
	}, nil
}

func decodeRoute(text string, moves int) (search.Route, error) {
	route := make(search.Route, 0, moves+1)
	for i := 0; i < len(text); i += 3 {
		if i+2 > len(text) || (i+2 < len(text) && text[i+2] != '-') {
			return nil, fmt.Errorf("%w: route %q", ErrCorruptResult, text)
		}
		sq, err := board.ParseSquare(text[i : i+2])
		if err != nil || !sq.IsValid() {
			return nil, fmt.Errorf("%w: route %q", ErrCorruptResult, text)
		}
		if n := len(route); n > 0 && !board.IsKnightMove(route[n-1], sq) {
			return nil, fmt.Errorf("%w: route %q has illegal hop %s-%s", ErrCorruptResult, text, route[n-1], sq)
		}
		route = append(route, sq)
	}
	if len(route) != moves+1 {
		return nil, fmt.Errorf("%w: route %q is not %d moves", ErrCorruptResult, text, moves)
	}
	return route, nil
}

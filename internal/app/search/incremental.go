package search

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"
)

// Phase is the coarse state of an incremental search.
type Phase string

// Incremental search phases
const (
	PhaseIdle      Phase = "IDLE"
	PhaseSearching Phase = "SEARCHING"
	PhaseOpen      Phase = "OPEN"
)

// Snapshot is an immutable view of incremental-search state handed to the
// observer after every transition.
type Snapshot struct {
	Query   string
	Phase   Phase
	Results []Result
}

// IncrementalOptions tunes an IncrementalSearch.
type IncrementalOptions struct {
	// Debounce is how long input must stay quiet before a lookup fires.
	Debounce time.Duration
	// MinLength is the shortest query that triggers a lookup. Shorter input
	// clears results without touching the store.
	MinLength int
	// Limit caps each of the two entity lookups independently.
	Limit int
	// OnUpdate, if set, receives a snapshot after every state change. It is
	// called without internal locks held.
	OnUpdate func(Snapshot)
}

// IncrementalSearch is the debounced, cancelable dual-entity lookup behind
// the search box. Only the most recent invocation may update state: every
// SetQuery bumps a sequence number, and a lookup finishing under a stale
// number is dropped, so a slow early response can never clobber a newer one.
type IncrementalSearch struct {
	store Store
	opts  IncrementalOptions

	mu      sync.Mutex
	seq     uint64
	timer   *time.Timer
	cancel  context.CancelFunc
	query   string
	phase   Phase
	results []Result
	closed  bool
}

// NewIncrementalSearch creates an idle incremental search over store.
func NewIncrementalSearch(store Store, opts IncrementalOptions) *IncrementalSearch {
	if opts.Debounce <= 0 {
		opts.Debounce = 300 * time.Millisecond
	}
	if opts.MinLength <= 0 {
		opts.MinLength = 2
	}
	if opts.Limit <= 0 {
		opts.Limit = 5
	}
	return &IncrementalSearch{
		store: store,
		opts:  opts,
		phase: PhaseIdle,
	}
}

// SetQuery feeds new input text. Input below the minimum length clears
// results immediately and never reaches the store; anything longer schedules
// a debounced lookup, superseding whatever was pending or in flight.
func (s *IncrementalSearch) SetQuery(text string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.seq++
	seq := s.seq
	s.supersedeLocked()
	s.query = text

	if len(strings.TrimSpace(text)) < s.opts.MinLength {
		s.results = nil
		s.phase = PhaseIdle
		snap := s.snapshotLocked()
		s.mu.Unlock()
		s.notify(snap)
		return
	}

	s.phase = PhaseSearching
	s.timer = time.AfterFunc(s.opts.Debounce, func() {
		s.run(seq, text)
	})
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// run executes the lookup for one debounced invocation.
func (s *IncrementalSearch) run(seq uint64, text string) {
	s.mu.Lock()
	if seq != s.seq || s.closed {
		s.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.mu.Unlock()

	results, err := Lookup(ctx, s.store, text, s.opts.Limit)
	cancel()

	s.mu.Lock()
	if seq != s.seq || s.closed {
		// A newer query took over while we were in flight.
		s.mu.Unlock()
		return
	}
	s.cancel = nil
	switch {
	case errors.Is(err, context.Canceled):
		s.mu.Unlock()
		return
	case err != nil:
		// Search-as-you-type degrades silently: clear and close.
		s.results = nil
		s.phase = PhaseIdle
	case len(results) == 0:
		s.results = nil
		s.phase = PhaseIdle
	default:
		s.results = results
		s.phase = PhaseOpen
	}
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
}

// Select closes the dropdown and returns the chosen result to the caller. It
// does not mutate any filter selection; that is the caller's decision.
func (s *IncrementalSearch) Select(index int) (Result, bool) {
	s.mu.Lock()
	if index < 0 || index >= len(s.results) {
		s.mu.Unlock()
		return Result{}, false
	}
	chosen := s.results[index]
	s.results = nil
	s.phase = PhaseIdle
	snap := s.snapshotLocked()
	s.mu.Unlock()
	s.notify(snap)
	return chosen, true
}

// Snapshot returns the current state.
func (s *IncrementalSearch) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Close tears down the debounce timer and cancels any in-flight lookup.
func (s *IncrementalSearch) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.seq++
	s.supersedeLocked()
}

// supersedeLocked stops the pending timer and cancels the in-flight request.
func (s *IncrementalSearch) supersedeLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

func (s *IncrementalSearch) snapshotLocked() Snapshot {
	results := make([]Result, len(s.results))
	copy(results, s.results)
	return Snapshot{Query: s.query, Phase: s.phase, Results: results}
}

func (s *IncrementalSearch) notify(snap Snapshot) {
	if s.opts.OnUpdate != nil {
		s.opts.OnUpdate(snap)
	}
}

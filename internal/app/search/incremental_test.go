package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

const testTimeout = 2 * time.Second

// collectSnapshots wires an IncrementalSearch to a channel of snapshots.
func collectSnapshots(store Store, opts IncrementalOptions) (*IncrementalSearch, chan Snapshot) {
	updates := make(chan Snapshot, 32)
	opts.OnUpdate = func(snap Snapshot) { updates <- snap }
	return NewIncrementalSearch(store, opts), updates
}

// waitFor drains snapshots until pred matches or the timeout hits.
func waitFor(t *testing.T, updates chan Snapshot, pred func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(testTimeout)
	for {
		select {
		case snap := <-updates:
			if pred(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
			return Snapshot{}
		}
	}
}

func searchFixtures() *memStore {
	store := newMemStore()
	store.courses = []models.Course{
		{Code: "CS 111", Title: "Fundamentals of Computer Programming"},
		{Code: "CS 211", Title: "Fundamentals of Programming II"},
	}
	store.instructors = []models.Instructor{
		{ID: 1, Name: "Ada Lovelace"},
		{ID: 2, Name: "Alan Turing"},
	}
	return store
}

func TestIncrementalSearchShortInputSkipsStore(t *testing.T) {
	store := searchFixtures()
	s, updates := collectSnapshots(store, IncrementalOptions{Debounce: time.Millisecond})
	defer s.Close()

	s.SetQuery("a")
	snap := waitFor(t, updates, func(s Snapshot) bool { return s.Phase == PhaseIdle })
	assert.Empty(t, snap.Results)

	// Give any stray debounce timer a chance to misfire before checking.
	time.Sleep(20 * time.Millisecond)
	store.mu.Lock()
	calls := store.lookupCalls
	store.mu.Unlock()
	assert.Zero(t, calls)
}

func TestIncrementalSearchMergesAndTagsResults(t *testing.T) {
	store := searchFixtures()
	s, updates := collectSnapshots(store, IncrementalOptions{Debounce: time.Millisecond})
	defer s.Close()

	s.SetQuery("fundamentals")
	snap := waitFor(t, updates, func(s Snapshot) bool { return s.Phase == PhaseOpen })

	require.Len(t, snap.Results, 2)
	assert.Equal(t, ResultCourse, snap.Results[0].Type)
	assert.Equal(t, ResultCourse, snap.Results[1].Type)

	s.SetQuery("lovelace")
	snap = waitFor(t, updates, func(s Snapshot) bool { return s.Phase == PhaseOpen })
	require.Len(t, snap.Results, 1)
	assert.Equal(t, ResultInstructor, snap.Results[0].Type)
	assert.Equal(t, "Ada Lovelace", snap.Results[0].Instructor.Name)
}

func TestIncrementalSearchDebounceCoalescesKeystrokes(t *testing.T) {
	store := searchFixtures()
	s, updates := collectSnapshots(store, IncrementalOptions{Debounce: 50 * time.Millisecond})
	defer s.Close()

	s.SetQuery("ad")
	s.SetQuery("ada")
	s.SetQuery("ada ")
	snap := waitFor(t, updates, func(s Snapshot) bool { return s.Phase == PhaseOpen })

	require.Len(t, snap.Results, 1)
	assert.Equal(t, "Ada Lovelace", snap.Results[0].Instructor.Name)

	// Only the final keystroke's lookup reached the store.
	store.mu.Lock()
	calls := store.lookupCalls
	store.mu.Unlock()
	assert.Equal(t, 1, calls)
}

func TestIncrementalSearchStaleResponseDropped(t *testing.T) {
	store := searchFixtures()
	release := make(chan struct{})
	firstEntered := make(chan struct{})
	gateUsed := false
	store.courseHook = func(ctx context.Context, text string) error {
		store.mu.Lock()
		first := !gateUsed
		gateUsed = true
		store.mu.Unlock()
		if first {
			close(firstEntered)
			// Deliberately ignore ctx: the stale response arrives anyway and
			// must be discarded by the sequence check, not just by cancel.
			<-release
		}
		return nil
	}

	s, updates := collectSnapshots(store, IncrementalOptions{Debounce: time.Millisecond})
	defer s.Close()

	s.SetQuery("ada")
	<-firstEntered
	s.SetQuery("turing")
	snap := waitFor(t, updates, func(s Snapshot) bool { return s.Phase == PhaseOpen })
	close(release)

	require.Len(t, snap.Results, 1)
	assert.Equal(t, "Alan Turing", snap.Results[0].Instructor.Name)

	// The released stale response must not reopen the dropdown with old data.
	time.Sleep(20 * time.Millisecond)
	final := s.Snapshot()
	require.Len(t, final.Results, 1)
	assert.Equal(t, "Alan Turing", final.Results[0].Instructor.Name)
}

func TestIncrementalSearchLookupFailureDegradesSilently(t *testing.T) {
	store := searchFixtures()
	store.courseHook = func(ctx context.Context, text string) error {
		return errors.New("store unavailable")
	}

	s, updates := collectSnapshots(store, IncrementalOptions{Debounce: time.Millisecond})
	defer s.Close()

	s.SetQuery("ada")
	waitFor(t, updates, func(s Snapshot) bool { return s.Phase == PhaseSearching })
	snap := waitFor(t, updates, func(s Snapshot) bool { return s.Phase == PhaseIdle })
	assert.Empty(t, snap.Results)
}

func TestIncrementalSearchSelectClosesDropdown(t *testing.T) {
	store := searchFixtures()
	s, updates := collectSnapshots(store, IncrementalOptions{Debounce: time.Millisecond})
	defer s.Close()

	s.SetQuery("ada")
	waitFor(t, updates, func(s Snapshot) bool { return s.Phase == PhaseOpen })

	chosen, ok := s.Select(0)
	require.True(t, ok)
	assert.Equal(t, ResultInstructor, chosen.Type)
	assert.Equal(t, "Ada Lovelace", chosen.Instructor.Name)

	snap := s.Snapshot()
	assert.Equal(t, PhaseIdle, snap.Phase)
	assert.Empty(t, snap.Results)

	_, ok = s.Select(0)
	assert.False(t, ok)
}

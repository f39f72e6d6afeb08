package search

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

func collectQuery(store Store, pageSize int) (*OfferingQuery, chan QuerySnapshot) {
	updates := make(chan QuerySnapshot, 32)
	q := NewOfferingQuery(store, pageSize, func(snap QuerySnapshot) { updates <- snap })
	return q, updates
}

func waitForQuery(t *testing.T, updates chan QuerySnapshot, pred func(QuerySnapshot) bool) QuerySnapshot {
	t.Helper()
	deadline := time.After(testTimeout)
	for {
		select {
		case snap := <-updates:
			if pred(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for query snapshot")
			return QuerySnapshot{}
		}
	}
}

// offeringFixtures seeds count offerings of one course across descending
// terms, tagged with the given requirement ids.
func offeringFixtures(store *memStore, courseID uuid.UUID, count int, requirementIDs ...int64) {
	quarters := []models.Quarter{models.QuarterFall, models.QuarterSpring, models.QuarterWinter}
	for i := 0; i < count; i++ {
		store.addOffering(models.Offering{
			ID:             int64(i + 1),
			CourseID:       courseID,
			InstructorID:   int64(i%3 + 1),
			Quarter:        quarters[i%len(quarters)],
			Year:           2024 - i/len(quarters),
			RequirementIDs: requirementIDs,
		})
	}
}

func courseSelection(courseID uuid.UUID, requirementIDs ...int64) Selection {
	return Selection{
		Courses:        []CourseRef{{ID: courseID, Code: "CS 111"}},
		RequirementIDs: requirementIDs,
	}
}

func TestOfferingQueryEmptySelectionShortCircuits(t *testing.T) {
	store := newMemStore()
	q, updates := collectQuery(store, 10)
	defer q.Close()

	q.FetchInitial(Selection{RequirementIDs: []int64{1}})
	snap := waitForQuery(t, updates, func(s QuerySnapshot) bool { return s.State == QueryNoFilters })

	assert.Empty(t, snap.Items)
	assert.False(t, snap.HasMore)
	store.mu.Lock()
	calls := store.offeringCalls
	store.mu.Unlock()
	assert.Zero(t, calls)
}

func TestOfferingQueryOrdersNewestFirst(t *testing.T) {
	store := newMemStore()
	courseID := uuid.New()
	store.addOffering(models.Offering{ID: 1, CourseID: courseID, Quarter: models.QuarterWinter, Year: 2024})
	store.addOffering(models.Offering{ID: 2, CourseID: courseID, Quarter: models.QuarterFall, Year: 2024})
	store.addOffering(models.Offering{ID: 3, CourseID: courseID, Quarter: models.QuarterFall, Year: 2023})

	q, updates := collectQuery(store, 10)
	defer q.Close()

	q.FetchInitial(courseSelection(courseID))
	snap := waitForQuery(t, updates, func(s QuerySnapshot) bool { return s.State == QueryReady })

	require.Len(t, snap.Items, 3)
	assert.Equal(t, int64(2), snap.Items[0].ID) // Fall 2024
	assert.Equal(t, int64(1), snap.Items[1].ID) // Winter 2024
	assert.Equal(t, int64(3), snap.Items[2].ID) // Fall 2023
}

func TestOfferingQueryPaginationTermination(t *testing.T) {
	store := newMemStore()
	courseID := uuid.New()
	offeringFixtures(store, courseID, 25)

	q, updates := collectQuery(store, 10)
	defer q.Close()

	q.FetchInitial(courseSelection(courseID))
	snap := waitForQuery(t, updates, func(s QuerySnapshot) bool { return s.State == QueryReady })
	assert.Len(t, snap.Items, 10)
	assert.Equal(t, 25, snap.TotalCount)
	assert.True(t, snap.HasMore)

	q.FetchMore()
	snap = waitForQuery(t, updates, func(s QuerySnapshot) bool {
		return s.State == QueryReady && len(s.Items) == 20
	})
	assert.True(t, snap.HasMore)

	q.FetchMore()
	snap = waitForQuery(t, updates, func(s QuerySnapshot) bool {
		return s.State == QueryReady && len(s.Items) == 25
	})
	assert.False(t, snap.HasMore)

	// Exhausted: a further FetchMore must not hit the store again.
	store.mu.Lock()
	calls := store.offeringCalls
	store.mu.Unlock()
	q.FetchMore()
	time.Sleep(20 * time.Millisecond)
	store.mu.Lock()
	after := store.offeringCalls
	store.mu.Unlock()
	assert.Equal(t, calls, after)
}

func TestOfferingQueryFullFinalPage(t *testing.T) {
	store := newMemStore()
	courseID := uuid.New()
	offeringFixtures(store, courseID, 20)

	q, updates := collectQuery(store, 10)
	defer q.Close()

	q.FetchInitial(courseSelection(courseID))
	waitForQuery(t, updates, func(s QuerySnapshot) bool { return s.State == QueryReady })
	q.FetchMore()
	snap := waitForQuery(t, updates, func(s QuerySnapshot) bool {
		return s.State == QueryReady && len(s.Items) == 20
	})

	// 20 of 20 fetched with a full page: both hasMore conditions disagree,
	// so no empty tail fetch is offered.
	assert.False(t, snap.HasMore)
}

func TestOfferingQueryCancellationRace(t *testing.T) {
	store := newMemStore()
	courseA := uuid.New()
	courseB := uuid.New()
	store.addOffering(models.Offering{ID: 1, CourseID: courseA, Quarter: models.QuarterFall, Year: 2024})
	store.addOffering(models.Offering{ID: 2, CourseID: courseB, Quarter: models.QuarterFall, Year: 2024})

	release := make(chan struct{})
	firstEntered := make(chan struct{})
	gated := false
	store.offeringHook = func(ctx context.Context, filter OfferingFilter) error {
		store.mu.Lock()
		first := !gated
		gated = true
		store.mu.Unlock()
		if first {
			close(firstEntered)
			// Ignores ctx on purpose: the stale page still arrives and must
			// be dropped by the sequence check.
			<-release
		}
		return nil
	}

	q, updates := collectQuery(store, 10)
	defer q.Close()

	q.FetchInitial(courseSelection(courseA))
	<-firstEntered
	q.FetchInitial(courseSelection(courseB))
	snap := waitForQuery(t, updates, func(s QuerySnapshot) bool { return s.State == QueryReady })
	close(release)

	require.Len(t, snap.Items, 1)
	assert.Equal(t, int64(2), snap.Items[0].ID)

	// The late page from the first fetch must never merge in.
	time.Sleep(20 * time.Millisecond)
	final := q.Snapshot()
	require.Len(t, final.Items, 1)
	assert.Equal(t, int64(2), final.Items[0].ID)
}

func TestOfferingQueryRequirementPostFilter(t *testing.T) {
	store := newMemStore()
	courseID := uuid.New()
	offeringFixtures(store, courseID, 5) // no requirement tags

	q, updates := collectQuery(store, 10)
	defer q.Close()

	// Selecting a requirement the course never satisfies empties the visible
	// list while the underlying fetch still reports the pre-filter total.
	q.FetchInitial(courseSelection(courseID, 3))
	snap := waitForQuery(t, updates, func(s QuerySnapshot) bool { return s.State == QueryReady })

	assert.Empty(t, snap.Items)
	assert.Equal(t, 5, snap.TotalCount)
}

func TestOfferingQueryRequirementOrSemantics(t *testing.T) {
	store := newMemStore()
	courseID := uuid.New()
	store.addOffering(models.Offering{ID: 1, CourseID: courseID, Quarter: models.QuarterFall, Year: 2024, RequirementIDs: []int64{1}})
	store.addOffering(models.Offering{ID: 2, CourseID: courseID, Quarter: models.QuarterSpring, Year: 2024, RequirementIDs: []int64{2}})
	store.addOffering(models.Offering{ID: 3, CourseID: courseID, Quarter: models.QuarterWinter, Year: 2024, RequirementIDs: []int64{9}})

	q, updates := collectQuery(store, 10)
	defer q.Close()

	q.FetchInitial(courseSelection(courseID, 1, 2))
	snap := waitForQuery(t, updates, func(s QuerySnapshot) bool { return s.State == QueryReady })

	require.Len(t, snap.Items, 2)
	assert.Equal(t, 3, snap.TotalCount)
}

func TestOfferingQueryFailureIsRetryable(t *testing.T) {
	store := newMemStore()
	courseID := uuid.New()
	offeringFixtures(store, courseID, 3)

	failing := true
	store.offeringHook = func(ctx context.Context, filter OfferingFilter) error {
		store.mu.Lock()
		defer store.mu.Unlock()
		if failing {
			return errors.New("connection refused")
		}
		return nil
	}

	q, updates := collectQuery(store, 10)
	defer q.Close()

	q.FetchInitial(courseSelection(courseID))
	snap := waitForQuery(t, updates, func(s QuerySnapshot) bool { return s.State == QueryFailed })
	require.Error(t, snap.Err)
	assert.Empty(t, snap.Items)

	store.mu.Lock()
	failing = false
	store.mu.Unlock()

	q.Retry()
	snap = waitForQuery(t, updates, func(s QuerySnapshot) bool { return s.State == QueryReady })
	assert.Len(t, snap.Items, 3)
	assert.NoError(t, snap.Err)
}

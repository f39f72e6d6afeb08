package search

import (
	"context"
	"errors"
	"sync"

	"github.com/ctecscope/ctecscope/internal/app/models"
)

// QueryState distinguishes the three empty-looking panel states plus the two
// loading flavors. NoFilters means nothing was asked; Empty means the store
// was asked and found nothing; Failed means the last request errored and can
// be retried.
type QueryState string

// Offering query states
const (
	QueryNoFilters   QueryState = "NO_FILTERS"
	QueryLoading     QueryState = "LOADING"
	QueryLoadingMore QueryState = "LOADING_MORE"
	QueryReady       QueryState = "READY"
	QueryFailed      QueryState = "FAILED"
)

// QuerySnapshot is an immutable view of offering-query state.
type QuerySnapshot struct {
	State QueryState
	// Items is the requirement-post-filtered visible list.
	Items []models.Offering
	// TotalCount is the server-reported pre-filter match count.
	TotalCount int
	HasMore    bool
	Err        error
}

// OfferingQuery manages the paginated offering list for one filter selection.
// Any new FetchInitial supersedes whatever is in flight, of either kind;
// superseded requests are canceled and their results dropped, so the visible
// list always reflects exactly one selection.
type OfferingQuery struct {
	store    Store
	pageSize int
	onUpdate func(QuerySnapshot)

	mu        sync.Mutex
	seq       uint64
	cancel    context.CancelFunc
	selection Selection
	items     []models.Offering
	total     int
	fetched   int
	hasMore   bool
	state     QueryState
	err       error
}

// NewOfferingQuery creates an offering query with the given page size.
// onUpdate, if non-nil, observes every state change.
func NewOfferingQuery(store Store, pageSize int, onUpdate func(QuerySnapshot)) *OfferingQuery {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &OfferingQuery{
		store:    store,
		pageSize: pageSize,
		onUpdate: onUpdate,
		state:    QueryNoFilters,
	}
}

// FetchInitial starts a fresh retrieval for the given selection, replacing
// the result list. A selection with no courses and no instructors
// short-circuits to an empty list without touching the store.
func (q *OfferingQuery) FetchInitial(selection Selection) {
	q.mu.Lock()
	q.seq++
	seq := q.seq
	q.supersedeLocked()
	q.selection = selection
	q.items = nil
	q.total = 0
	q.fetched = 0
	q.hasMore = false
	q.err = nil

	if selection.Empty() {
		q.state = QueryNoFilters
		snap := q.snapshotLocked()
		q.mu.Unlock()
		q.notify(snap)
		return
	}

	q.state = QueryLoading
	snap := q.snapshotLocked()
	q.mu.Unlock()
	q.notify(snap)

	go q.fetch(seq, 0, true)
}

// FetchMore appends the next page. It is a no-op while another load is
// running or when the store has nothing left.
func (q *OfferingQuery) FetchMore() {
	q.mu.Lock()
	if q.state == QueryLoading || q.state == QueryLoadingMore || !q.hasMore {
		q.mu.Unlock()
		return
	}
	q.seq++
	seq := q.seq
	q.supersedeLocked()
	offset := q.fetched
	q.state = QueryLoadingMore
	snap := q.snapshotLocked()
	q.mu.Unlock()
	q.notify(snap)

	go q.fetch(seq, offset, false)
}

// Retry re-issues the last failed request as a fresh initial fetch.
func (q *OfferingQuery) Retry() {
	q.mu.Lock()
	if q.state != QueryFailed {
		q.mu.Unlock()
		return
	}
	selection := q.selection
	q.mu.Unlock()
	q.FetchInitial(selection)
}

// fetch performs one store round-trip for the invocation identified by seq.
func (q *OfferingQuery) fetch(seq uint64, offset int, replace bool) {
	q.mu.Lock()
	if seq != q.seq {
		q.mu.Unlock()
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	q.cancel = cancel
	filter := OfferingFilter{
		CourseIDs:     q.selection.CourseIDs(),
		InstructorIDs: q.selection.InstructorIDs(),
		Offset:        offset,
		Limit:         q.pageSize,
	}
	requirementIDs := q.selection.RequirementIDs
	q.mu.Unlock()

	page, err := q.store.FindOfferings(ctx, filter)
	cancel()

	q.mu.Lock()
	if seq != q.seq {
		// Superseded while in flight: no partial or late appends.
		q.mu.Unlock()
		return
	}
	q.cancel = nil
	if errors.Is(err, context.Canceled) {
		q.mu.Unlock()
		return
	}
	if err != nil {
		q.state = QueryFailed
		q.err = err
		snap := q.snapshotLocked()
		q.mu.Unlock()
		q.notify(snap)
		return
	}

	visible := FilterByRequirements(page.Items, requirementIDs)
	if replace {
		q.items = visible
	} else {
		q.items = append(q.items, visible...)
	}
	q.total = page.TotalCount
	q.fetched = offset + q.pageSize
	// Both conditions matter: a short page means the tail was reached even if
	// the count says otherwise, and a full final page must not invite an
	// empty tail fetch.
	q.hasMore = len(page.Items) == q.pageSize && offset+len(page.Items) < page.TotalCount
	q.state = QueryReady
	q.err = nil
	snap := q.snapshotLocked()
	q.mu.Unlock()
	q.notify(snap)
}

// Snapshot returns the current state.
func (q *OfferingQuery) Snapshot() QuerySnapshot {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.snapshotLocked()
}

// Close cancels any in-flight request.
func (q *OfferingQuery) Close() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.seq++
	q.supersedeLocked()
}

func (q *OfferingQuery) supersedeLocked() {
	if q.cancel != nil {
		q.cancel()
		q.cancel = nil
	}
}

func (q *OfferingQuery) snapshotLocked() QuerySnapshot {
	items := make([]models.Offering, len(q.items))
	copy(items, q.items)
	return QuerySnapshot{
		State:      q.state,
		Items:      items,
		TotalCount: q.total,
		HasMore:    q.hasMore,
		Err:        q.err,
	}
}

func (q *OfferingQuery) notify(snap QuerySnapshot) {
	if q.onUpdate != nil {
		q.onUpdate(snap)
	}
}

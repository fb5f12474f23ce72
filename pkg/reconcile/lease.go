package reconcile

import (
	"sort"
	"sync"

	"github.com/umputun/feedsync/pkg/domain"
)

// Leases serializes refreshes per feed. A feed can be held by one refresh at a time.
type Leases struct {
	mu   sync.Mutex
	held map[string]struct{}
}

// NewLeases makes an empty lease map
func NewLeases() *Leases {
	return &Leases{held: map[string]struct{}{}}
}

// Acquire takes the lease for feedID or fails with domain.ErrRefreshInProgress without waiting.
// The returned release func is safe to call more than once.
func (l *Leases) Acquire(feedID string) (release func(), err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if _, ok := l.held[feedID]; ok {
		return nil, domain.ErrRefreshInProgress
	}
	l.held[feedID] = struct{}{}

	var once sync.Once
	return func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.held, feedID)
			l.mu.Unlock()
		})
	}, nil
}

// Refreshing returns ids of feeds currently held, sorted
func (l *Leases) Refreshing() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := make([]string, 0, len(l.held))
	for id := range l.held {
		res = append(res, id)
	}
	sort.Strings(res)
	return res
}

package store

import (
	"strings"
	"sync"

	"catalog.GO/model/entity"
	"catalog.GO/view"
)

// Store holds the full fetched record set plus the filter/sort/cursor state
// the view is derived from. The view is always recomputed from `all`, never
// patched incrementally.
//
// The logical command flow is sequential; the mutex only guards against echo
// serving concurrent requests.
type Store struct {
	mu       sync.RWMutex
	all      []entity.Product
	term     string
	order    view.SortOrder
	page     int
	pageSize int
	loadErr  error
}

// NewStore creates an empty store with the given default page size.
func NewStore(pageSize int) *Store {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &Store{page: 1, pageSize: pageSize}
}

// Load normalizes raw records and replaces the record set. Any malformed
// record fails the whole load and leaves prior state untouched.
func (s *Store) Load(raw []map[string]interface{}) error {
	products, err := entity.Normalize(raw)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = products
	s.page = 1
	s.loadErr = nil
	return nil
}

// SetLoadError records a failed load so presentation can offer a retry
// affordance. Cleared by the next successful Load.
func (s *Store) SetLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loadErr = err
}

// LoadError returns the last load failure, if any.
func (s *Store) LoadError() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loadErr
}

// Create prepends a record (newest first, matching server id ordering) and
// resets to the first page.
func (s *Store) Create(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.all = append([]entity.Product{p}, s.all...)
	s.page = 1
}

// Update shallow-merges the patch over the record with the given id. Returns
// false (a silent no-op) when the id is not present.
func (s *Store) Update(id int, patch map[string]interface{}) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.all {
		if p.ID != id {
			continue
		}
		merged, err := p.Merge(patch)
		if err != nil {
			return false
		}
		merged.ID = id
		s.all[i] = merged
		return true
	}
	return false
}

// Search stores the lowercased term as the active filter and resets to the
// first page. Empty term clears filtering.
func (s *Store) Search(term string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.term = strings.ToLower(term)
	s.page = 1
}

// SetSort toggles the sort criterion for the field and resets to the first
// page.
func (s *Store) SetSort(field view.SortField) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.order = s.order.Toggle(field)
	s.page = 1
}

// SetPageSize changes the page size and resets to the first page.
func (s *Store) SetPageSize(n int) {
	if n <= 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pageSize = n
	s.page = 1
}

// SetPage jumps to a page. Out-of-range values are ignored.
func (s *Store) SetPage(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n < 1 || n > s.maxPageLocked() {
		return
	}
	s.page = n
}

// NextPage advances one page. No-op past the last page.
func (s *Store) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page >= s.maxPageLocked() {
		return false
	}
	s.page++
	return true
}

// PrevPage goes back one page. No-op on page 1.
func (s *Store) PrevPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.page <= 1 {
		return false
	}
	s.page--
	return true
}

func (s *Store) maxPageLocked() int {
	filtered := view.Compute(s.all, s.term, view.SortNone, view.Cursor{Page: 1, PageSize: len(s.all) + 1})
	return view.MaxPage(filtered.TotalCount, s.pageSize)
}

// View recomputes the current view from the record set and state.
func (s *Store) View() view.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Compute(s.all, s.term, s.order, view.Cursor{Page: s.page, PageSize: s.pageSize})
}

// Get returns the record with the given id from the full set.
func (s *Store) Get(id int) (entity.Product, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, p := range s.all {
		if p.ID == id {
			return p, true
		}
	}
	return entity.Product{}, false
}

// Snapshot returns a copy of the full record set in insertion order.
func (s *Store) Snapshot() []entity.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.Product, len(s.all))
	copy(out, s.all)
	return out
}

// Len returns the size of the full record set.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.all)
}

// Term returns the active filter term.
func (s *Store) Term() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.term
}

// Order returns the active sort criterion.
func (s *Store) Order() view.SortOrder {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.order
}

// Cursor returns the pagination cursor.
func (s *Store) Cursor() view.Cursor {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return view.Cursor{Page: s.page, PageSize: s.pageSize}
}

// Package view holds the per-collection browsing state machine: the loaded
// page of records, pagination, the free-text search term, and the fetch
// lifecycle. One State exists per collection for the lifetime of the
// process; it is mutated only through its methods.
package view

import "github.com/google/uuid"

// PageSizes is the fixed set of selectable page sizes.
var PageSizes = []int{5, 10, 20, 50}

// DefaultPageSize is used when no page size is configured.
const DefaultPageSize = 5

// Tab is the product view's category tab.
type Tab string

const (
	TabAll     Tab = "ALL"
	TabLaptops Tab = "LAPTOPS"
)

// Category returns the remote category the tab scopes fetches to, or ""
// for the unscoped listing.
func (t Tab) Category() string {
	if t == TabLaptops {
		return "laptops"
	}
	return ""
}

// State is the per-collection view state. Items always reflect the most
// recently completed fetch that was still current when it resolved; a fetch
// in flight does not clear them, so the previous page stays on screen under
// the loading flag instead of blanking.
type State[R any] struct {
	Items       []R
	Total       int
	Loading     bool
	Err         error
	SearchTerm  string
	PageSize    int
	CurrentPage int
	ActiveTab   Tab

	// latest identifies the most recently dispatched fetch. Responses
	// carrying any other token are stale and must not apply.
	latest uuid.UUID
}

// NewState creates a State with default values. pageSize must be one of
// PageSizes; anything else falls back to DefaultPageSize.
func NewState[R any](pageSize int) *State[R] {
	if !ValidPageSize(pageSize) {
		pageSize = DefaultPageSize
	}
	return &State[R]{
		PageSize:    pageSize,
		CurrentPage: 1,
		ActiveTab:   TabAll,
	}
}

// ValidPageSize reports whether n is a selectable page size.
func ValidPageSize(n int) bool {
	for _, s := range PageSizes {
		if s == n {
			return true
		}
	}
	return false
}

// SetSearchTerm replaces the search term. Search is applied client-side to
// the already-loaded page, so the current page is left alone and no refetch
// is needed.
func (s *State[R]) SetSearchTerm(term string) {
	s.SearchTerm = term
}

// SetPageSize replaces the page size and resets to page 1, since the new
// size invalidates the prior page alignment.
func (s *State[R]) SetPageSize(n int) {
	s.PageSize = n
	s.CurrentPage = 1
}

// NextPageSize returns the page size after the current one in PageSizes,
// wrapping around.
func (s *State[R]) NextPageSize() int {
	for i, size := range PageSizes {
		if size == s.PageSize {
			return PageSizes[(i+1)%len(PageSizes)]
		}
	}
	return DefaultPageSize
}

// SetCurrentPage replaces the 1-based page number. The caller owns bounds.
func (s *State[R]) SetCurrentPage(page int) {
	s.CurrentPage = page
}

// SetActiveTab replaces the category tab and resets to page 1.
func (s *State[R]) SetActiveTab(tab Tab) {
	s.ActiveTab = tab
	s.CurrentPage = 1
}

// BeginFetch marks a fetch as in flight and mints the token that identifies
// it as the latest dispatched one. Prior items stay in place.
func (s *State[R]) BeginFetch() uuid.UUID {
	s.Loading = true
	s.Err = nil
	s.latest = uuid.New()
	return s.latest
}

// Resolve applies a completed fetch. A response whose token is not the
// latest dispatched one is discarded untouched and Resolve returns false.
// On failure the error is recorded and the previously loaded items and
// total stay intact.
func (s *State[R]) Resolve(token uuid.UUID, items []R, total int, err error) bool {
	if token != s.latest {
		return false
	}
	s.Loading = false
	if err != nil {
		s.Err = err
		return true
	}
	s.Items = items
	s.Total = total
	return true
}

// Skip is the zero-based fetch offset for the current page.
func (s *State[R]) Skip() int {
	return (s.CurrentPage - 1) * s.PageSize
}

// TotalPages is computed from the server-reported total of the unfiltered
// collection, not the client-filtered count.
func (s *State[R]) TotalPages() int {
	if s.PageSize <= 0 {
		return 0
	}
	return (s.Total + s.PageSize - 1) / s.PageSize
}

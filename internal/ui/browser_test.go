package ui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/abelbrown/datascope/internal/api"
	"github.com/abelbrown/datascope/internal/view"
)

// fetchRecorder captures dispatched page requests without touching the
// network.
type fetchRecorder struct {
	calls []api.PageRequest
}

func (f *fetchRecorder) usersFetch(token uuid.UUID, req api.PageRequest) tea.Cmd {
	f.calls = append(f.calls, req)
	return nil
}

func newUsersBrowser(rec *fetchRecorder) browser[api.User] {
	cfg := Config[api.User]{
		Title:        "Users",
		Columns:      userColumns,
		FilterFields: userFilterFields,
		Fetch:        rec.usersFetch,
	}
	return newBrowser(cfg, defaultKeyMap(), 5)
}

func newProductsBrowser(rec *fetchRecorder) browser[api.Product] {
	cfg := Config[api.Product]{
		Title:        "Products",
		Columns:      productColumns,
		FilterFields: productFilterFields,
		HasTabs:      true,
		Fetch: func(token uuid.UUID, req api.PageRequest) tea.Cmd {
			rec.calls = append(rec.calls, req)
			return nil
		},
	}
	return newBrowser(cfg, defaultKeyMap(), 5)
}

// loadUsers resolves a fetch with the given items so the browser has rows.
func loadUsers(b browser[api.User], users []api.User, total int) browser[api.User] {
	token := b.state.BeginFetch()
	b, _ = b.update(pageLoadedMsg[api.User]{Token: token, Items: users, Total: total})
	return b
}

func keyRune(r rune) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}}
}

func TestPageLoadedRefreshesRows(t *testing.T) {
	b := newUsersBrowser(&fetchRecorder{})
	b = loadUsers(b, []api.User{
		{ID: 1, FirstName: "Emily"},
		{ID: 2, FirstName: "John"},
	}, 208)

	if b.state.Loading {
		t.Error("resolution should clear the loading flag")
	}
	if got := len(b.tbl.Rows()); got != 2 {
		t.Errorf("expected 2 table rows, got %d", got)
	}
	if b.state.TotalPages() != 42 {
		t.Errorf("expected 42 pages, got %d", b.state.TotalPages())
	}
}

func TestStalePageLoadedIgnored(t *testing.T) {
	b := newUsersBrowser(&fetchRecorder{})

	staleToken := b.state.BeginFetch() // page 1
	b.state.SetCurrentPage(2)
	freshToken := b.state.BeginFetch() // supersedes page 1

	b, _ = b.update(pageLoadedMsg[api.User]{Token: freshToken, Items: []api.User{{ID: 2}}, Total: 53})
	b, _ = b.update(pageLoadedMsg[api.User]{Token: staleToken, Items: []api.User{{ID: 1}}, Total: 99})

	if b.state.Total != 53 {
		t.Errorf("stale response overwrote total: got %d, want 53", b.state.Total)
	}
	rows := b.tbl.Rows()
	if len(rows) != 1 || rows[0][0] != "2" {
		t.Errorf("stale response overwrote rows: %v", rows)
	}
}

func TestNextPageDispatchesFetch(t *testing.T) {
	rec := &fetchRecorder{}
	b := newUsersBrowser(rec)
	b = loadUsers(b, []api.User{{ID: 1}}, 53) // 11 pages of 5
	rec.calls = nil

	b, cmd := b.update(tea.KeyMsg{Type: tea.KeyRight})
	if cmd == nil {
		t.Fatal("next page should dispatch a fetch")
	}
	if b.state.CurrentPage != 2 {
		t.Errorf("CurrentPage = %d, want 2", b.state.CurrentPage)
	}
	if len(rec.calls) != 1 || rec.calls[0].Skip != 5 || rec.calls[0].Limit != 5 {
		t.Errorf("unexpected fetch request: %+v", rec.calls)
	}
}

func TestPrevPageBoundedAtOne(t *testing.T) {
	rec := &fetchRecorder{}
	b := newUsersBrowser(rec)
	b = loadUsers(b, []api.User{{ID: 1}}, 53)
	rec.calls = nil

	b, cmd := b.update(tea.KeyMsg{Type: tea.KeyLeft})
	if cmd != nil || len(rec.calls) != 0 {
		t.Error("prev page on page 1 must not dispatch a fetch")
	}
	if b.state.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1", b.state.CurrentPage)
	}
}

func TestNextPageBoundedAtTotalPages(t *testing.T) {
	rec := &fetchRecorder{}
	b := newUsersBrowser(rec)
	b = loadUsers(b, []api.User{{ID: 1}}, 5) // exactly one page
	rec.calls = nil

	_, cmd := b.update(tea.KeyMsg{Type: tea.KeyRight})
	if cmd != nil || len(rec.calls) != 0 {
		t.Error("next page on the last page must not dispatch a fetch")
	}
}

func TestPageSizeKeyResetsPageAndRefetches(t *testing.T) {
	rec := &fetchRecorder{}
	b := newUsersBrowser(rec)
	b = loadUsers(b, []api.User{{ID: 1}}, 53)
	b.state.SetCurrentPage(3)
	rec.calls = nil

	b, cmd := b.update(keyRune('s'))
	if cmd == nil {
		t.Fatal("page size change should dispatch a fetch")
	}
	if b.state.PageSize != 10 {
		t.Errorf("PageSize = %d, want 10", b.state.PageSize)
	}
	if b.state.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1 after page-size change", b.state.CurrentPage)
	}
	if len(rec.calls) != 1 || rec.calls[0].Limit != 10 || rec.calls[0].Skip != 0 {
		t.Errorf("unexpected fetch request: %+v", rec.calls)
	}
}

func TestTabToggleProductsOnly(t *testing.T) {
	rec := &fetchRecorder{}
	p := newProductsBrowser(rec)
	token := p.state.BeginFetch()
	p, _ = p.update(pageLoadedMsg[api.Product]{Token: token, Items: []api.Product{{ID: 1}}, Total: 10})
	p.state.SetCurrentPage(2)
	rec.calls = nil

	p, cmd := p.update(keyRune('t'))
	if cmd == nil {
		t.Fatal("tab toggle should dispatch a fetch")
	}
	if p.state.ActiveTab != view.TabLaptops {
		t.Errorf("ActiveTab = %v, want LAPTOPS", p.state.ActiveTab)
	}
	if p.state.CurrentPage != 1 {
		t.Errorf("CurrentPage = %d, want 1 after tab change", p.state.CurrentPage)
	}
	if len(rec.calls) != 1 || rec.calls[0].Category != "laptops" {
		t.Errorf("expected category-scoped fetch, got %+v", rec.calls)
	}

	// Users view has no tabs; 't' is a no-op there.
	urec := &fetchRecorder{}
	u := newUsersBrowser(urec)
	u = loadUsers(u, []api.User{{ID: 1}}, 5)
	urec.calls = nil
	_, cmd = u.update(keyRune('t'))
	if len(urec.calls) != 0 {
		t.Error("'t' must not dispatch a fetch on the users view")
	}
}

func TestSearchFiltersLoadedPageWithoutRefetch(t *testing.T) {
	rec := &fetchRecorder{}
	b := newUsersBrowser(rec)
	b = loadUsers(b, []api.User{
		{ID: 1, FirstName: "Emily", Email: "emily@x.com"},
		{ID: 2, FirstName: "John", Email: "john@x.com"},
	}, 208)
	rec.calls = nil

	b, _ = b.update(keyRune('/'))
	for _, r := range "EMI" {
		b, _ = b.update(keyRune(r))
	}

	if len(rec.calls) != 0 {
		t.Error("search must not refetch")
	}
	rows := b.tbl.Rows()
	if len(rows) != 1 || rows[0][1] != "Emily" {
		t.Errorf("search EMI rows = %v, want just Emily", rows)
	}
	// Pagination still reflects the unfiltered server total.
	if b.state.TotalPages() != 42 {
		t.Errorf("TotalPages = %d, want 42", b.state.TotalPages())
	}
}

func TestOpeningAnotherFilterClearsPrevious(t *testing.T) {
	b := newUsersBrowser(&fetchRecorder{})
	b = loadUsers(b, []api.User{
		{ID: 1, FirstName: "Emily", Gender: "female"},
		{ID: 2, FirstName: "John", Gender: "male"},
	}, 2)

	// Open the first filter field (Name) and type a value.
	b, _ = b.update(keyRune('f'))
	for _, r := range "emily" {
		b, _ = b.update(keyRune(r))
	}
	if b.active.Key != "firstName" || b.active.Value != "emily" {
		t.Fatalf("active filter = %+v, want firstName=emily", b.active)
	}
	if got := len(b.tbl.Rows()); got != 1 {
		t.Fatalf("expected 1 row under name filter, got %d", got)
	}

	// Cycling to the next field must drop the name filter entirely.
	b, _ = b.update(tea.KeyMsg{Type: tea.KeyTab})
	if b.active.Active() {
		t.Errorf("opening another filter must clear the previous one, got %+v", b.active)
	}
	if got := len(b.tbl.Rows()); got != 2 {
		t.Errorf("expected all rows after filter cleared, got %d", got)
	}
	if b.cfg.FilterFields[b.openFilter].Key != "email" {
		t.Errorf("open filter = %v, want email", b.openFilter)
	}
}

func TestEscKeepsFilterInEffect(t *testing.T) {
	b := newUsersBrowser(&fetchRecorder{})
	b = loadUsers(b, []api.User{
		{ID: 1, Gender: "female"},
		{ID: 2, Gender: "male"},
	}, 2)

	// Cycle to the gender field: firstName -> email -> birthDate -> gender.
	b, _ = b.update(keyRune('f'))
	b, _ = b.update(tea.KeyMsg{Type: tea.KeyTab})
	b, _ = b.update(tea.KeyMsg{Type: tea.KeyTab})
	b, _ = b.update(tea.KeyMsg{Type: tea.KeyTab})
	for _, r := range "female" {
		b, _ = b.update(keyRune(r))
	}
	b, _ = b.update(tea.KeyMsg{Type: tea.KeyEsc})

	if b.mode != modeBrowse || b.openFilter != -1 {
		t.Error("esc should close the filter control")
	}
	if !b.active.Active() || b.active.Key != "gender" {
		t.Errorf("esc must keep the filter in effect, got %+v", b.active)
	}
	if got := len(b.tbl.Rows()); got != 1 {
		t.Errorf("expected 1 row under gender filter, got %d", got)
	}
}

func TestClearResetsSearchAndFilter(t *testing.T) {
	b := newUsersBrowser(&fetchRecorder{})
	b = loadUsers(b, []api.User{{ID: 1, FirstName: "Emily"}, {ID: 2, FirstName: "John"}}, 2)

	b, _ = b.update(keyRune('/'))
	b, _ = b.update(keyRune('e'))
	b, _ = b.update(tea.KeyMsg{Type: tea.KeyEsc})
	b, _ = b.update(keyRune('c'))

	if b.state.SearchTerm != "" || b.active.Active() {
		t.Error("clear should reset both search term and filter")
	}
	if got := len(b.tbl.Rows()); got != 2 {
		t.Errorf("expected all rows after clear, got %d", got)
	}
}

func TestLoadingViewKeepsStaleRows(t *testing.T) {
	b := newUsersBrowser(&fetchRecorder{})
	b = loadUsers(b, []api.User{{ID: 1, FirstName: "Emily"}}, 1)

	b.state.BeginFetch()
	out := b.view()

	if !strings.Contains(out, "Loading") {
		t.Error("loading view should show a loading indicator")
	}
	if !strings.Contains(out, "Emily") {
		t.Error("loading view should keep the previous page's rows on screen")
	}
}

func TestEmptyView(t *testing.T) {
	b := newUsersBrowser(&fetchRecorder{})
	b = loadUsers(b, nil, 0)

	out := b.view()
	if !strings.Contains(out, "No data found") {
		t.Error("empty view should show the empty-state indicator")
	}
}

func TestErrorSurfacedInView(t *testing.T) {
	b := newUsersBrowser(&fetchRecorder{})
	b = loadUsers(b, []api.User{{ID: 1, FirstName: "Emily"}}, 1)

	token := b.state.BeginFetch()
	b, _ = b.update(pageLoadedMsg[api.User]{Token: token, Err: errors.New("HTTP error: 500")})

	out := b.view()
	if !strings.Contains(out, "HTTP error: 500") {
		t.Error("fetch failure should be rendered in the error bar")
	}
	if !strings.Contains(out, "Emily") {
		t.Error("fetch failure must leave the previous page's rows on screen")
	}
}

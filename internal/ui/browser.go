package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/abelbrown/datascope/internal/api"
	"github.com/abelbrown/datascope/internal/filter"
	"github.com/abelbrown/datascope/internal/view"
)

// FetchFunc builds the command that fetches one collection page. The token
// must be echoed back in the resulting pageLoadedMsg so stale responses can
// be told apart from current ones.
type FetchFunc func(token uuid.UUID, req api.PageRequest) tea.Cmd

// Config parameterizes the shared browser model for one collection view:
// its columns, its filter-field descriptors, and how to fetch a page.
type Config[R filter.Record] struct {
	Title        string
	Columns      []Column
	FilterFields []FilterField
	HasTabs      bool
	Fetch        FetchFunc
}

// inputMode says where keystrokes go.
type inputMode int

const (
	modeBrowse inputMode = iota
	modeSearch
	modeFilter
)

// browser is the table/pagination model for one collection. The state
// store is shared by pointer so the value-copied model always sees the
// latest fetch resolution.
type browser[R filter.Record] struct {
	cfg   Config[R]
	keys  keyMap
	state *view.State[R]

	tbl    table.Model
	pager  paginator.Model
	spin   spinner.Model
	search textinput.Model
	fval   textinput.Model

	mode       inputMode
	openFilter int // index into cfg.FilterFields, -1 when closed
	active     filter.Filter

	width  int
	height int
}

func newBrowser[R filter.Record](cfg Config[R], keys keyMap, pageSize int) browser[R] {
	cols := make([]table.Column, len(cfg.Columns))
	for i, c := range cfg.Columns {
		cols[i] = table.Column{Title: c.Title, Width: c.Width}
	}

	tbl := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(10),
	)
	ts := table.DefaultStyles()
	ts.Header = ts.Header.Bold(true).Foreground(colorHighlight)
	ts.Selected = ts.Selected.Bold(true).Foreground(colorWhite).Background(colorPrimary)
	tbl.SetStyles(ts)

	pager := paginator.New()
	pager.Type = paginator.Dots
	pager.ActiveDot = ActiveTabStyle.Padding(0).Render("•")
	pager.InactiveDot = InactiveTabStyle.Padding(0).Render("•")

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = FilterBarPrompt

	search := textinput.New()
	search.Placeholder = "Search"
	search.Prompt = "/"
	search.CharLimit = 64

	fval := textinput.New()
	fval.CharLimit = 64

	return browser[R]{
		cfg:        cfg,
		keys:       keys,
		state:      view.NewState[R](pageSize),
		tbl:        tbl,
		pager:      pager,
		spin:       sp,
		search:     search,
		fval:       fval,
		openFilter: -1,
	}
}

// dispatchFetch marks the store loading and returns the fetch command for
// the current (pageSize, currentPage, activeTab) triple, plus a spinner
// tick so the loading indicator animates.
func (b *browser[R]) dispatchFetch() tea.Cmd {
	token := b.state.BeginFetch()
	req := api.PageRequest{
		Limit:    b.state.PageSize,
		Skip:     b.state.Skip(),
		Category: b.state.ActiveTab.Category(),
	}
	return tea.Batch(b.cfg.Fetch(token, req), b.spin.Tick)
}

func (b browser[R]) update(msg tea.Msg) (browser[R], tea.Cmd) {
	switch msg := msg.(type) {
	case pageLoadedMsg[R]:
		if b.state.Resolve(msg.Token, msg.Items, msg.Total, msg.Err) {
			b.refreshRows()
		}
		return b, nil

	case spinner.TickMsg:
		if !b.state.Loading {
			return b, nil
		}
		var cmd tea.Cmd
		b.spin, cmd = b.spin.Update(msg)
		return b, cmd

	case tea.KeyMsg:
		return b.handleKey(msg)
	}
	return b, nil
}

func (b browser[R]) handleKey(msg tea.KeyMsg) (browser[R], tea.Cmd) {
	switch b.mode {
	case modeSearch:
		return b.handleSearchKey(msg)
	case modeFilter:
		return b.handleFilterKey(msg)
	}
	return b.handleBrowseKey(msg)
}

func (b browser[R]) handleBrowseKey(msg tea.KeyMsg) (browser[R], tea.Cmd) {
	switch {
	case key.Matches(msg, b.keys.Search):
		b.mode = modeSearch
		cmd := b.search.Focus()
		return b, cmd

	case key.Matches(msg, b.keys.Filter):
		return b.cycleFilter()

	case key.Matches(msg, b.keys.Clear):
		b.state.SetSearchTerm("")
		b.search.SetValue("")
		b.active = filter.Filter{}
		b.fval.SetValue("")
		b.openFilter = -1
		b.refreshRows()
		return b, nil

	case key.Matches(msg, b.keys.PrevPage):
		if b.state.CurrentPage > 1 {
			b.state.SetCurrentPage(b.state.CurrentPage - 1)
			return b, b.dispatchFetch()
		}
		return b, nil

	case key.Matches(msg, b.keys.NextPage):
		if b.state.CurrentPage < b.state.TotalPages() {
			b.state.SetCurrentPage(b.state.CurrentPage + 1)
			return b, b.dispatchFetch()
		}
		return b, nil

	case key.Matches(msg, b.keys.PageSize):
		b.state.SetPageSize(b.state.NextPageSize())
		return b, b.dispatchFetch()

	case key.Matches(msg, b.keys.Tab):
		if !b.cfg.HasTabs {
			return b, nil
		}
		if b.state.ActiveTab == view.TabLaptops {
			b.state.SetActiveTab(view.TabAll)
		} else {
			b.state.SetActiveTab(view.TabLaptops)
		}
		return b, b.dispatchFetch()

	case key.Matches(msg, b.keys.Refresh):
		return b, b.dispatchFetch()
	}

	// Everything else (cursor movement) goes to the table.
	var cmd tea.Cmd
	b.tbl, cmd = b.tbl.Update(msg)
	return b, cmd
}

func (b browser[R]) handleSearchKey(msg tea.KeyMsg) (browser[R], tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		b.mode = modeBrowse
		b.search.Blur()
		return b, nil
	}

	var cmd tea.Cmd
	b.search, cmd = b.search.Update(msg)
	// Search applies live to the loaded page; no refetch.
	b.state.SetSearchTerm(b.search.Value())
	b.refreshRows()
	return b, cmd
}

func (b browser[R]) handleFilterKey(msg tea.KeyMsg) (browser[R], tea.Cmd) {
	switch msg.String() {
	case "esc", "enter":
		// Closing the control keeps the filter in effect.
		b.mode = modeBrowse
		b.openFilter = -1
		b.fval.Blur()
		return b, nil
	case "tab":
		// Opening the next field replaces the previous filter.
		return b.cycleFilter()
	}

	var cmd tea.Cmd
	b.fval, cmd = b.fval.Update(msg)
	if b.openFilter >= 0 {
		b.active = filter.Filter{
			Key:   b.cfg.FilterFields[b.openFilter].Key,
			Value: b.fval.Value(),
		}
	}
	b.refreshRows()
	return b, cmd
}

// cycleFilter opens the next filter field, wrapping back to closed after
// the last one. Opening a different field drops any previously active
// filter: at most one (field, value) pair is ever in effect.
func (b browser[R]) cycleFilter() (browser[R], tea.Cmd) {
	next := b.openFilter + 1
	if next >= len(b.cfg.FilterFields) {
		b.mode = modeBrowse
		b.openFilter = -1
		b.fval.Blur()
		return b, nil
	}

	b.mode = modeFilter
	b.openFilter = next
	b.active = filter.Filter{}
	b.fval.SetValue("")

	field := b.cfg.FilterFields[next]
	if field.Key == "gender" {
		b.fval.Placeholder = "male or female"
	} else {
		b.fval.Placeholder = "Filter by " + strings.ToLower(field.Label)
	}
	cmd := b.fval.Focus()
	b.refreshRows()
	return b, cmd
}

// visibleRows computes the filtered view of the loaded page.
func (b *browser[R]) visibleRows() []R {
	return filter.Visible(b.state.Items, b.state.SearchTerm, b.active)
}

// refreshRows re-derives the table rows and pagination from current state.
func (b *browser[R]) refreshRows() {
	visible := b.visibleRows()
	rows := make([]table.Row, len(visible))
	for i, rec := range visible {
		fields := rec.FieldValues()
		row := make(table.Row, len(b.cfg.Columns))
		for j, col := range b.cfg.Columns {
			row[j] = fields[col.Key]
		}
		rows[i] = row
	}
	b.tbl.SetRows(rows)
	if cursor := b.tbl.Cursor(); cursor >= len(rows) && len(rows) > 0 {
		b.tbl.SetCursor(len(rows) - 1)
	}

	// Pagination tracks the server-reported total of the unfiltered
	// collection, not the filtered count.
	if pages := b.state.TotalPages(); pages > 0 {
		b.pager.SetTotalPages(pages)
		b.pager.Page = b.state.CurrentPage - 1
	}
}

func (b *browser[R]) setSize(width, height int) {
	b.width = width
	b.height = height
	b.tbl.SetWidth(width)
	// Header, control bar, status bar, and a possible error bar.
	h := height - 6
	if h < 3 {
		h = 3
	}
	b.tbl.SetHeight(h)
}

func (b browser[R]) headerView() string {
	title := TitleStyle.Render(b.cfg.Title)
	if !b.cfg.HasTabs {
		return title
	}

	all := InactiveTabStyle.Render("All")
	laptops := InactiveTabStyle.Render("Laptops")
	if b.state.ActiveTab == view.TabLaptops {
		laptops = ActiveTabStyle.Render("Laptops")
	} else {
		all = ActiveTabStyle.Render("All")
	}
	return title + " " + all + " " + laptops
}

func (b browser[R]) controlsView() string {
	var parts []string
	parts = append(parts, StatusBarText.Render(fmt.Sprintf("%d entries", b.state.PageSize)))

	if b.mode == modeSearch || b.search.Value() != "" {
		parts = append(parts, b.search.View())
	}

	for i, f := range b.cfg.FilterFields {
		label := FilterLabel.Render(f.Label + " ▾")
		if i == b.openFilter {
			label = ActiveFilterLabel.Render(f.Label+" ▾") + " " + b.fval.View()
		} else if b.active.Active() && b.active.Key == f.Key {
			label = ActiveFilterLabel.Render(f.Label + "=" + b.active.Value)
		}
		parts = append(parts, label)
	}

	return strings.Join(parts, "  ")
}

func (b browser[R]) statusView() string {
	visible := len(b.tbl.Rows())
	status := fmt.Sprintf("page %d/%d · %d of %d shown · %d total",
		b.state.CurrentPage, b.state.TotalPages(), visible, len(b.state.Items), b.state.Total)
	if b.state.Loading {
		status = b.spin.View() + "Loading… " + status
	}
	line := StatusBar.Render(status)
	if b.state.TotalPages() > 1 {
		line += " " + b.pager.View()
	}
	return line
}

func (b browser[R]) view() string {
	var sb strings.Builder
	sb.WriteString(b.headerView())
	sb.WriteString("\n")
	sb.WriteString(b.controlsView())
	sb.WriteString("\n")

	if len(b.tbl.Rows()) == 0 && !b.state.Loading {
		sb.WriteString(EmptyStyle.Render("No data found"))
	} else {
		sb.WriteString(b.tbl.View())
	}
	sb.WriteString("\n")

	if b.state.Err != nil {
		sb.WriteString(ErrorStyle.Render("Error: " + b.state.Err.Error()))
		sb.WriteString("\n")
	}

	sb.WriteString(b.statusView())
	return sb.String()
}

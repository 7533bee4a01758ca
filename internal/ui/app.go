package ui

import (
	"context"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/abelbrown/datascope/internal/api"
)

// viewID identifies which collection view is on screen.
type viewID int

const (
	viewUsers viewID = iota
	viewProducts
)

// App is the root Bubble Tea model. It owns one browser per collection and
// switches between them; fetch results are routed to the browser whose
// record type they carry, whether or not that view is currently active.
type App struct {
	active   viewID
	users    browser[api.User]
	products browser[api.Product]

	keys   keyMap
	help   help.Model
	width  int
	height int
	ready  bool
}

// NewApp wires both collection views against the given client. The users
// view is shown first, mirroring the default route.
func NewApp(client *api.Client, pageSize int) App {
	keys := defaultKeyMap()

	usersCfg := Config[api.User]{
		Title:        "Users",
		Columns:      userColumns,
		FilterFields: userFilterFields,
		Fetch: func(token uuid.UUID, req api.PageRequest) tea.Cmd {
			return func() tea.Msg {
				items, total, err := client.Users(context.Background(), req)
				return pageLoadedMsg[api.User]{Token: token, Items: items, Total: total, Err: err}
			}
		},
	}

	productsCfg := Config[api.Product]{
		Title:        "Products",
		Columns:      productColumns,
		FilterFields: productFilterFields,
		HasTabs:      true,
		Fetch: func(token uuid.UUID, req api.PageRequest) tea.Cmd {
			return func() tea.Msg {
				items, total, err := client.Products(context.Background(), req)
				return pageLoadedMsg[api.Product]{Token: token, Items: items, Total: total, Err: err}
			}
		},
	}

	return App{
		active:   viewUsers,
		users:    newBrowser(usersCfg, keys, pageSize),
		products: newBrowser(productsCfg, keys, pageSize),
		keys:     keys,
		help:     help.New(),
	}
}

// Init fetches the first page of the default view.
func (a App) Init() tea.Cmd {
	return a.users.dispatchFetch()
}

// Update handles messages and returns the updated model and any commands.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ready = true
		a.help.Width = msg.Width
		a.users.setSize(msg.Width, msg.Height-2)
		a.products.setSize(msg.Width, msg.Height-2)
		return a, nil

	case pageLoadedMsg[api.User]:
		var cmd tea.Cmd
		a.users, cmd = a.users.update(msg)
		return a, cmd

	case pageLoadedMsg[api.Product]:
		var cmd tea.Cmd
		a.products, cmd = a.products.update(msg)
		return a, cmd

	case spinner.TickMsg:
		// Both views may be loading; let each decide.
		var cmds []tea.Cmd
		var cmd tea.Cmd
		a.users, cmd = a.users.update(msg)
		cmds = append(cmds, cmd)
		a.products, cmd = a.products.update(msg)
		cmds = append(cmds, cmd)
		return a, tea.Batch(cmds...)

	case tea.KeyMsg:
		return a.handleKey(msg)
	}

	return a, nil
}

func (a App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// View switching and quit apply only when no text input is capturing.
	if a.browsing() {
		switch {
		case key.Matches(msg, a.keys.Quit):
			return a, tea.Quit

		case key.Matches(msg, a.keys.Help):
			a.help.ShowAll = !a.help.ShowAll
			return a, nil

		case key.Matches(msg, a.keys.Users):
			return a.switchTo(viewUsers)

		case key.Matches(msg, a.keys.Products):
			return a.switchTo(viewProducts)
		}
	}

	var cmd tea.Cmd
	switch a.active {
	case viewProducts:
		a.products, cmd = a.products.update(msg)
	default:
		a.users, cmd = a.users.update(msg)
	}
	return a, cmd
}

// browsing reports whether the active view is in plain browse mode, i.e.
// no search or filter input has keyboard focus.
func (a App) browsing() bool {
	if a.active == viewProducts {
		return a.products.mode == modeBrowse
	}
	return a.users.mode == modeBrowse
}

// switchTo activates a view and refetches its current page, the same way
// mounting a route refetches in a browser.
func (a App) switchTo(v viewID) (tea.Model, tea.Cmd) {
	if a.active == v {
		return a, nil
	}
	a.active = v
	if v == viewProducts {
		return a, a.products.dispatchFetch()
	}
	return a, a.users.dispatchFetch()
}

// View renders the UI.
func (a App) View() string {
	if !a.ready {
		return "Loading..."
	}

	usersTab := InactiveTabStyle.Render("1 Users")
	productsTab := InactiveTabStyle.Render("2 Products")
	if a.active == viewUsers {
		usersTab = ActiveTabStyle.Render("1 Users")
	} else {
		productsTab = ActiveTabStyle.Render("2 Products")
	}
	header := usersTab + " " + productsTab

	var body string
	if a.active == viewProducts {
		body = a.products.view()
	} else {
		body = a.users.view()
	}

	return header + "\n" + body + "\n" + HelpStyle.Render(a.help.View(a.keys))
}

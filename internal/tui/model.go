// Package tui renders the application as a Bubble Tea program.
package tui

import (
	"errors"
	"log/slog"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/marco/popcorn/internal/state"
	"github.com/marco/popcorn/internal/watched"
)

type focus int

const (
	focusSearch focus = iota
	focusResults
	focusDetail
	focusWatched
)

type searchResultMsg state.SearchResult

type detailResultMsg state.DetailResult

// StoreChangedMsg tells the model the persisted watched list changed on disk.
type StoreChangedMsg struct{}

// Model is the root Bubble Tea model.
type Model struct {
	app     *state.App
	fetcher state.Fetcher

	input       textinput.Model
	results     list.Model
	watchedList list.Model
	spinner     spinner.Model

	focus       focus
	rating      int
	status      string
	showResults bool
	showRight   bool
	title       string

	width  int
	height int
}

// New creates the model around app. Network lookups are run through fetcher.
func New(app *state.App, fetcher state.Fetcher) *Model {
	ti := textinput.New()
	ti.Placeholder = "Search movies..."
	ti.CharLimit = 100
	ti.Width = 30
	ti.Focus()

	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = StarStyle

	m := &Model{
		app:         app,
		fetcher:     fetcher,
		input:       ti,
		results:     newList(),
		watchedList: newList(),
		spinner:     s,
		showResults: true,
		showRight:   true,
		title:       app.Title(),
	}
	m.watchedList.SetItems(watchedItems(app.Watched.Entries()))
	return m
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle(m.title))
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.app.Shutdown()
			return m, tea.Quit
		}
		cmds = append(cmds, m.handleKey(msg))

	case spinner.TickMsg:
		if m.loading() {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case searchResultMsg:
		if m.app.Search.Resolve(state.SearchResult(msg)) {
			cmds = append(cmds, m.results.SetItems(movieItems(m.app.Search.Movies())))
			m.results.ResetSelected()
		}

	case detailResultMsg:
		if m.app.Selection.Resolve(state.DetailResult(msg)) && m.app.Selection.Phase() == state.DetailReady {
			m.rating = 0
		}

	case StoreChangedMsg:
		if m.app.Watched.Reload() {
			slog.Info("watched list reloaded", "count", m.app.Watched.Len())
			m.refreshWatched()
		}
	}

	if t := m.app.Title(); t != m.title {
		m.title = t
		cmds = append(cmds, tea.SetWindowTitle(t))
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	m.status = ""
	k := msg.String()

	switch k {
	case "tab":
		return m.setFocus(m.nextFocus())
	case "shift+tab":
		return m.setFocus(m.prevFocus())
	}

	switch m.focus {
	case focusSearch:
		return m.handleSearchKey(msg)
	case focusResults:
		return m.handleResultsKey(msg)
	case focusDetail:
		return m.handleDetailKey(msg)
	case focusWatched:
		return m.handleWatchedKey(msg)
	}
	return nil
}

func (m *Model) handleSearchKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "enter", "down":
		return m.setFocus(focusResults)
	case "esc":
		if m.app.Panel() == state.PanelDetail {
			m.closeDetail()
			return nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return tea.Batch(cmd, m.search())
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		return m.setFocus(focusSearch)
	case "esc":
		if m.app.Panel() == state.PanelDetail {
			m.closeDetail()
			return nil
		}
		return m.setFocus(focusSearch)
	case "[":
		m.showResults = !m.showResults
		return nil
	case "]":
		m.showRight = !m.showRight
		return nil
	case "enter":
		item, ok := m.results.SelectedItem().(movieItem)
		if !ok {
			return nil
		}
		return m.selectMovie(item.movie.ImdbID)
	}

	var cmd tea.Cmd
	m.results, cmd = m.results.Update(msg)
	return cmd
}

func (m *Model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	k := msg.String()
	switch k {
	case "esc", "backspace", "q":
		m.closeDetail()
		return nil
	case "/":
		return m.setFocus(focusSearch)
	case "]":
		m.showRight = !m.showRight
		return nil
	case "+", "right", "l":
		m.setRating(m.rating + 1)
		return nil
	case "-", "left", "h":
		m.setRating(m.rating - 1)
		return nil
	case "enter", "a":
		m.addWatched()
		return nil
	}

	if len(k) == 1 && k[0] >= '0' && k[0] <= '9' {
		r := int(k[0] - '0')
		if r == 0 {
			r = 10
		}
		m.setRating(r)
	}
	return nil
}

func (m *Model) handleWatchedKey(msg tea.KeyMsg) tea.Cmd {
	switch msg.String() {
	case "/":
		return m.setFocus(focusSearch)
	case "esc":
		return m.setFocus(focusSearch)
	case "[":
		m.showResults = !m.showResults
		return nil
	case "]":
		m.showRight = !m.showRight
		return nil
	case "d", "x", "delete":
		item, ok := m.watchedList.SelectedItem().(watchedItem)
		if !ok {
			return nil
		}
		if err := m.app.RemoveWatched(item.entry.ImdbID); err != nil {
			slog.Error("failed to remove watched movie", "id", item.entry.ImdbID, "error", err)
			m.status = "Could not save watched list"
		}
		m.refreshWatched()
		return nil
	}

	var cmd tea.Cmd
	m.watchedList, cmd = m.watchedList.Update(msg)
	return cmd
}

func (m *Model) search() tea.Cmd {
	prev := m.app.Search.Query()
	req, ok := m.app.SetQuery(m.input.Value())
	if !ok {
		if prev != m.app.Search.Query() {
			m.results.SetItems(movieItems(m.app.Search.Movies()))
		}
		return nil
	}
	f := m.fetcher
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return searchResultMsg(req.Run(f))
	})
}

func (m *Model) selectMovie(id string) tea.Cmd {
	req, ok := m.app.Select(id)
	m.rating = 0
	if !ok {
		if m.focus == focusDetail {
			return m.setFocus(focusResults)
		}
		return nil
	}
	f := m.fetcher
	return tea.Batch(m.setFocus(focusDetail), m.spinner.Tick, func() tea.Msg {
		return detailResultMsg(req.Run(f))
	})
}

func (m *Model) closeDetail() {
	m.app.Selection.Close()
	m.rating = 0
	if m.focus == focusDetail {
		m.setFocus(focusResults)
	}
}

func (m *Model) setRating(r int) {
	if _, rated := m.app.SelectedWatched(); rated || m.app.Selection.Phase() != state.DetailReady {
		return
	}
	if r < 1 || r > m.app.MaxRating() {
		return
	}
	m.rating = r
}

func (m *Model) addWatched() {
	if m.rating == 0 {
		return
	}
	err := m.app.AddWatched(float64(m.rating))
	switch {
	case errors.Is(err, watched.ErrAlreadyWatched):
		m.status = "Already in your watched list"
		return
	case errors.Is(err, state.ErrInvalidRating), errors.Is(err, state.ErrNoDetail):
		return
	case err != nil:
		slog.Error("failed to save watched list", "error", err)
		m.status = "Could not save watched list"
		return
	}
	m.rating = 0
	m.refreshWatched()
	m.setFocus(focusResults)
}

func (m *Model) refreshWatched() {
	m.watchedList.SetItems(watchedItems(m.app.Watched.Entries()))
}

func (m *Model) setFocus(f focus) tea.Cmd {
	if f == focusDetail && m.app.Panel() != state.PanelDetail {
		f = focusWatched
	}
	if f == focusWatched && m.app.Panel() == state.PanelDetail {
		f = focusDetail
	}
	m.focus = f
	if f == focusSearch {
		return m.input.Focus()
	}
	m.input.Blur()
	return nil
}

func (m *Model) nextFocus() focus {
	switch m.focus {
	case focusSearch:
		return focusResults
	case focusResults:
		return focusDetail
	default:
		return focusSearch
	}
}

func (m *Model) prevFocus() focus {
	switch m.focus {
	case focusSearch:
		return focusDetail
	case focusResults:
		return focusSearch
	default:
		return focusResults
	}
}

func (m *Model) loading() bool {
	return m.app.Search.Loading() || m.app.Selection.Loading()
}

func (m *Model) layout() {
	w := m.panelWidth() - 4
	h := m.height - 8
	if h < 3 {
		h = 3
	}
	m.results.SetSize(w, h)
	m.watchedList.SetSize(w, h-5)

	inputWidth := m.width - 40
	if inputWidth < 10 {
		inputWidth = 10
	}
	m.input.Width = inputWidth
}

func (m *Model) panelWidth() int {
	w := m.width / 2
	if w < 20 {
		w = 20
	}
	return w
}

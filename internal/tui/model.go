// Package tui implements the interactive expense browser. It is a thin view
// over the API client: every mutation is a round trip, and the list shown is
// always whatever the server last returned.
package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/spentcli/spent/internal/api"
	"github.com/spentcli/spent/internal/model"
	"github.com/spentcli/spent/internal/toast"
)

// State represents the current state of the TUI.
type State int

const (
	StateList State = iota
	StateSearch
	StateConfirmDelete
)

// Config configures the TUI.
type Config struct {
	Client *api.Client
	Toasts *toast.Queue
	Width  int
	Height int
}

// Model holds the main TUI state.
type Model struct {
	client      *api.Client
	toasts      *toast.Queue
	expenses    []model.Expense
	filter      api.Filter
	searchInput textinput.Model
	spinner     spinner.Model
	keymap      KeyMap
	state       State
	cursor      int
	catIndex    int
	width       int
	height      int
	loading     bool
	showHelp    bool
	quitting    bool
}

// newModel creates a new model with the given configuration.
func newModel(cfg Config) Model {
	search := textinput.New()
	search.Placeholder = "search expenses..."
	search.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#3B82F6"))

	toasts := cfg.Toasts
	if toasts == nil {
		// Expiry is driven by tea.Tick, not the queue's own timers.
		toasts = toast.NewQueue(0)
	}

	return Model{
		client:      cfg.Client,
		toasts:      toasts,
		searchInput: search,
		spinner:     sp,
		keymap:      DefaultKeyMap(),
		state:       StateList,
		catIndex:    -1,
		width:       cfg.Width,
		height:      cfg.Height,
		loading:     true,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tea.EnterAltScreen,
		m.spinner.Tick,
		m.fetchExpenses(m.filter),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case expensesLoadedMsg:
		m.loading = false
		if msg.err != nil {
			return m, m.notify("Failed to load expenses", toast.SeverityError)
		}
		m.expenses = msg.expenses
		m.filter = msg.filter
		if m.cursor >= len(m.expenses) {
			m.cursor = max(0, len(m.expenses)-1)
		}
		return m, nil

	case expenseDeletedMsg:
		if msg.err != nil {
			return m, m.notify(msg.err.Error(), toast.SeverityError)
		}
		for i, e := range m.expenses {
			if e.ID == msg.id {
				m.expenses = append(m.expenses[:i], m.expenses[i+1:]...)
				break
			}
		}
		if m.cursor >= len(m.expenses) {
			m.cursor = max(0, len(m.expenses)-1)
		}
		return m, m.notify("Expense deleted successfully!", toast.SeveritySuccess)

	case toastExpiredMsg:
		m.toasts.Remove(msg.id)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keymap.ForceQuit) {
		m.quitting = true
		return m, tea.Quit
	}

	switch m.state {
	case StateSearch:
		return m.handleSearchKey(msg)
	case StateConfirmDelete:
		return m.handleConfirmKey(msg)
	default:
		return m.handleListKey(msg)
	}
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.state = StateList
		m.searchInput.Blur()
		return m, nil
	case tea.KeyEnter:
		m.state = StateList
		m.searchInput.Blur()
		filter := m.filter
		filter.Search = m.searchInput.Value()
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchExpenses(filter))
	default:
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}
}

func (m Model) handleConfirmKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Confirm):
		m.state = StateList
		if m.cursor < len(m.expenses) {
			return m, m.deleteExpense(m.expenses[m.cursor].ID)
		}
		return m, nil
	case key.Matches(msg, m.keymap.Cancel):
		m.state = StateList
		return m, nil
	}
	return m, nil
}

func (m Model) handleListKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keymap.Down):
		if m.cursor < len(m.expenses)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keymap.Home):
		m.cursor = 0
	case key.Matches(msg, m.keymap.End):
		m.cursor = max(0, len(m.expenses)-1)
	case key.Matches(msg, m.keymap.PageUp):
		m.cursor = max(0, m.cursor-10)
	case key.Matches(msg, m.keymap.PageDown):
		m.cursor = min(max(0, len(m.expenses)-1), m.cursor+10)

	case key.Matches(msg, m.keymap.Search):
		m.state = StateSearch
		m.searchInput.SetValue(m.filter.Search)
		m.searchInput.Focus()
		return m, textinput.Blink

	case key.Matches(msg, m.keymap.Category):
		// Cycle: all -> each category in declaration order -> all.
		m.catIndex++
		filter := m.filter
		if m.catIndex >= len(model.Categories) {
			m.catIndex = -1
			filter.Category = ""
		} else {
			filter.Category = model.Categories[m.catIndex].Value
		}
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchExpenses(filter))

	case key.Matches(msg, m.keymap.ClearFilters):
		// The cleared filter is passed straight into the fetch; nothing
		// depends on state being visible to the request builder first.
		m.catIndex = -1
		m.searchInput.SetValue("")
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchExpenses(api.Filter{}))

	case key.Matches(msg, m.keymap.Refresh):
		m.loading = true
		return m, tea.Batch(m.spinner.Tick, m.fetchExpenses(m.filter))

	case key.Matches(msg, m.keymap.Delete):
		if len(m.expenses) > 0 {
			m.state = StateConfirmDelete
		}

	case key.Matches(msg, m.keymap.Help):
		m.showHelp = !m.showHelp
	}

	return m, nil
}

// Package tui is a terminal browser for datasets built on bubbletea. Key
// presses are translated into query engine actions; the table shows the
// visible page of the resulting view.
package tui

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/fwojciec/flexlist"
)

// MaxColumnWidth caps the width of a table column in cells.
const MaxColumnWidth = 40

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeFilter
)

// Model is the bubbletea model of the browser.
type Model struct {
	engine   flexlist.QueryEngine
	settings flexlist.Settings
	state    flexlist.ViewState
	view     *flexlist.View

	keymap KeyMap
	styles Styles
	help   help.Model
	table  table.Model
	search textinput.Model

	mode         mode
	col          int
	filterCursor int
}

// New creates a browser over engine starting from the initial state of
// settings.
func New(engine flexlist.QueryEngine, settings flexlist.Settings) *Model {
	m := &Model{
		engine:   engine,
		settings: settings,
		state:    flexlist.NewViewState(settings),
		keymap:   DefaultKeyMap(),
		styles:   DefaultStyles(),
		help:     help.New(),
		search:   textinput.New(),
		table:    table.New(table.WithFocused(true), table.WithHeight(20)),
	}
	m.search.Prompt = "/"
	m.search.Placeholder = "search"
	m.search.CharLimit = 256
	m.refresh()
	return m
}

// Run starts an interactive program on the terminal and blocks until the
// user quits or ctx is cancelled.
func Run(ctx context.Context, m *Model) error {
	p := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// State returns the current view state.
func (m *Model) State() flexlist.ViewState {
	return m.state
}

// CurrentView returns the current view of the dataset.
func (m *Model) CurrentView() *flexlist.View {
	return m.view
}

// SelectedColumn returns the key of the column targeted by sort and filter
// keys.
func (m *Model) SelectedColumn() string {
	if len(m.view.Columns) == 0 {
		return ""
	}
	return m.view.Columns[m.col].Key
}

func (m *Model) Init() tea.Cmd {
	return nil
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.table.SetWidth(msg.Width)
		m.table.SetHeight(max(msg.Height-4, 1))
		return m, nil
	case tea.KeyMsg:
		switch m.mode {
		case modeSearch:
			return m.updateSearch(msg)
		case modeFilter:
			return m.updateFilter(msg), nil
		}
		return m.updateBrowse(msg)
	}
	return m, nil
}

func (m *Model) updateBrowse(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := m.keymap
	switch {
	case key.Matches(msg, k.Quit):
		return m, tea.Quit
	case key.Matches(msg, k.Search):
		m.mode = modeSearch
		m.search.SetValue(m.state.Search)
		return m, m.search.Focus()
	case key.Matches(msg, k.Sort):
		m.dispatch(flexlist.ToggleSortAction{Key: m.SelectedColumn()})
	case key.Matches(msg, k.MultiSort):
		m.dispatch(flexlist.ToggleSortAction{Key: m.SelectedColumn(), Multi: true})
	case key.Matches(msg, k.Filter):
		if col, ok := m.selected(); ok && col.Caps.Has(flexlist.CapFilter) {
			m.mode = modeFilter
			m.filterCursor = 0
		}
	case key.Matches(msg, k.Group):
		m.dispatch(flexlist.SetGroupAction{Key: m.nextGroup()})
	case key.Matches(msg, k.Left):
		if m.col > 0 {
			m.col--
			m.refresh()
		}
	case key.Matches(msg, k.Right):
		if m.col < len(m.view.Columns)-1 {
			m.col++
			m.refresh()
		}
	case key.Matches(msg, k.NextPage):
		m.dispatch(flexlist.SetPageAction{Page: m.state.Page + 1})
	case key.Matches(msg, k.PrevPage):
		m.dispatch(flexlist.SetPageAction{Page: m.state.Page - 1})
	case key.Matches(msg, k.PageSize):
		if size, ok := m.nextPageSize(); ok {
			m.dispatch(flexlist.SetPageSizeAction{Size: size})
		}
	default:
		var cmd tea.Cmd
		m.table, cmd = m.table.Update(msg)
		return m, cmd
	}
	return m, nil
}

// updateSearch applies the query on every keystroke.
func (m *Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEnter, tea.KeyEsc:
		m.mode = modeBrowse
		m.search.Blur()
		return m, nil
	case tea.KeyCtrlC:
		return m, tea.Quit
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != m.state.Search {
		m.dispatch(flexlist.SearchAction{Query: m.search.Value()})
	}
	return m, cmd
}

func (m *Model) updateFilter(msg tea.KeyMsg) tea.Model {
	k := m.keymap
	options := m.engine.FilterOptions(m.SelectedColumn())
	switch {
	case key.Matches(msg, k.Close), key.Matches(msg, k.Filter):
		m.mode = modeBrowse
	case key.Matches(msg, k.Up):
		if m.filterCursor > 0 {
			m.filterCursor--
		}
	case key.Matches(msg, k.Down):
		if m.filterCursor < len(options)-1 {
			m.filterCursor++
		}
	case key.Matches(msg, k.Toggle):
		if m.filterCursor < len(options) {
			m.dispatch(flexlist.ToggleFilterAction{Key: m.SelectedColumn(), Value: options[m.filterCursor]})
		}
	}
	return m
}

func (m *Model) dispatch(action flexlist.Action) {
	m.state = m.engine.Dispatch(m.state, action)
	m.refresh()
}

func (m *Model) selected() (flexlist.Column, bool) {
	if len(m.view.Columns) == 0 {
		return flexlist.Column{}, false
	}
	return m.view.Columns[m.col], true
}

// nextGroup cycles through no grouping and each group-capable column.
func (m *Model) nextGroup() string {
	keys := []string{flexlist.GroupNone}
	for _, col := range m.view.Columns {
		if col.Caps.Has(flexlist.CapGroup) {
			keys = append(keys, col.Key)
		}
	}
	current := m.state.Group
	if current == "" {
		current = flexlist.GroupNone
	}
	i := slices.Index(keys, current)
	return keys[(i+1)%len(keys)]
}

// nextPageSize cycles through the configured page size options.
func (m *Model) nextPageSize() (flexlist.PageSize, bool) {
	options := m.settings.PaginationOptions
	if len(options) == 0 {
		return 0, false
	}
	i := slices.Index(options, m.state.PageSize)
	return options[(i+1)%len(options)], true
}

// refresh recomputes the view and rebuilds the table.
func (m *Model) refresh() {
	m.view = m.engine.View(m.state)
	m.col = min(m.col, max(len(m.view.Columns)-1, 0))

	columns := make([]table.Column, len(m.view.Columns))
	for i, col := range m.view.Columns {
		title := col.Label
		if dir, ok := m.state.SortDirection(col.Key); ok {
			title += " " + arrow(dir)
		}
		if i == m.col {
			title = "▸" + title
		}
		columns[i] = table.Column{Title: title, Width: lipgloss.Width(title)}
	}

	rows := make([]table.Row, 0, len(m.view.Rows))
	for _, vr := range m.view.Rows {
		row := make(table.Row, len(columns))
		if vr.Group {
			if len(row) > 0 {
				row[0] = "▾ " + vr.Label
			}
		} else {
			for i, col := range m.view.Columns {
				row[i] = strings.ReplaceAll(vr.Text[col.Key], "\n", " ")
			}
		}
		for i, cell := range row {
			columns[i].Width = min(max(columns[i].Width, lipgloss.Width(cell)), MaxColumnWidth)
		}
		rows = append(rows, row)
	}

	// Rows are cleared first so no row is shorter than the new columns.
	m.table.SetRows(nil)
	m.table.SetColumns(columns)
	m.table.SetRows(rows)
}

func arrow(dir flexlist.Direction) string {
	if dir == flexlist.Desc {
		return "▼"
	}
	return "▲"
}

func (m *Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Status.Render(m.status()))
	b.WriteString("\n")
	if m.mode == modeSearch || m.state.Search != "" {
		b.WriteString(m.search.View())
		b.WriteString("\n")
	}
	b.WriteString(m.table.View())
	b.WriteString("\n")
	if m.mode == modeFilter {
		b.WriteString(m.filterView())
		b.WriteString("\n")
	}
	b.WriteString(m.help.View(m.keymap))
	return b.String()
}

// status summarizes the view: page, row counts, sort and grouping.
func (m *Model) status() string {
	parts := []string{
		fmt.Sprintf("page %d/%d", m.view.Page, max(m.view.PageCount, 1)),
		fmt.Sprintf("%d/%d rows", m.view.Visible, m.view.Total),
		"size " + m.state.PageSize.String(),
	}
	if len(m.state.Sort) > 0 {
		keys := make([]string, len(m.state.Sort))
		for i, k := range m.state.Sort {
			keys[i] = k.Key + " " + string(k.Dir)
		}
		parts = append(parts, "sort "+strings.Join(keys, ", "))
	}
	if m.state.Group != "" {
		parts = append(parts, "group "+m.state.Group)
	}
	return strings.Join(parts, " · ")
}

func (m *Model) filterView() string {
	col, _ := m.selected()
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(col.Label))
	for i, value := range m.engine.FilterOptions(col.Key) {
		box := "[ ]"
		if m.state.Accepts(col.Key, value) {
			box = m.styles.Checked.Render("[x]")
		}
		line := box + " " + value
		if i == m.filterCursor {
			line = m.styles.Selected.Render("> ") + line
		} else {
			line = "  " + line
		}
		b.WriteString("\n")
		b.WriteString(line)
	}
	return m.styles.Popup.Render(b.String())
}

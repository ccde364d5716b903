package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap lists the key bindings of the browser.
type KeyMap struct {
	Search    key.Binding
	Sort      key.Binding
	MultiSort key.Binding
	Filter    key.Binding
	Group     key.Binding
	Left      key.Binding
	Right     key.Binding
	NextPage  key.Binding
	PrevPage  key.Binding
	PageSize  key.Binding
	Toggle    key.Binding
	Up        key.Binding
	Down      key.Binding
	Close     key.Binding
	Quit      key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		MultiSort: key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "add sort")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		Group:     key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "group")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/→", "column")),
		Right:     key.NewBinding(key.WithKeys("right", "l")),
		NextPage:  key.NewBinding(key.WithKeys("n", "pgdown"), key.WithHelp("n/p", "page")),
		PrevPage:  key.NewBinding(key.WithKeys("p", "pgup")),
		PageSize:  key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "page size")),
		Toggle:    key.NewBinding(key.WithKeys(" ", "x"), key.WithHelp("space", "toggle")),
		Up:        key.NewBinding(key.WithKeys("up", "k")),
		Down:      key.NewBinding(key.WithKeys("down", "j")),
		Close:     key.NewBinding(key.WithKeys("esc", "enter"), key.WithHelp("esc", "close")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Sort, k.Filter, k.Group, k.Left, k.NextPage, k.PageSize, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Search, k.Sort, k.MultiSort, k.Filter, k.Group},
		{k.Left, k.NextPage, k.PageSize, k.Toggle, k.Close, k.Quit},
	}
}

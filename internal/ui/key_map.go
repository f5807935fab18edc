package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up      key.Binding
	down    key.Binding
	enter   key.Binding
	back    key.Binding
	more    key.Binding
	genre   key.Binding
	admin   key.Binding
	delete  key.Binding
	confirm key.Binding
	search  key.Binding
	prev    key.Binding
	next    key.Binding
	rate    key.Binding
	quit    key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:      key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:    key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		enter:   key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "details")),
		back:    key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		more:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "more")),
		genre:   key.NewBinding(key.WithKeys("g"), key.WithHelp("g", "genre")),
		admin:   key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "admin")),
		delete:  key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		confirm: key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "confirm")),
		search:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		prev:    key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev page")),
		next:    key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next page")),
		rate:    key.NewBinding(key.WithKeys("1", "2", "3", "4", "5"), key.WithHelp("1-5", "rate")),
		quit:    key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.enter},
		{k.back, k.more, k.genre},
		{k.admin, k.delete, k.rate},
		{k.prev, k.next, k.quit},
	}
}

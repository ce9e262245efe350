package tui

import "github.com/charmbracelet/bubbles/key"

// keyMap holds the bindings of the ROI view.
type keyMap struct {
	quit       key.Binding
	toggleHelp key.Binding
	fieldUp    key.Binding
	fieldDown  key.Binding
	decrease   key.Binding
	increase   key.Binding
	nextPreset key.Binding
	prevPreset key.Binding
	pickPreset key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		quit:       key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		toggleHelp: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "toggle help")),
		fieldUp:    key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("k/↑", "field up")),
		fieldDown:  key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("j/↓", "field down")),
		decrease:   key.NewBinding(key.WithKeys("h", "left", "-"), key.WithHelp("h/←", "decrease")),
		increase:   key.NewBinding(key.WithKeys("l", "right", "+", "="), key.WithHelp("l/→", "increase")),
		nextPreset: key.NewBinding(key.WithKeys("tab", "p"), key.WithHelp("tab", "next preset")),
		prevPreset: key.NewBinding(key.WithKeys("shift+tab", "P"), key.WithHelp("shift+tab", "previous preset")),
		pickPreset: key.NewBinding(key.WithKeys("1", "2", "3", "4", "5", "6", "7", "8", "9"), key.WithHelp("1-9", "apply preset")),
	}
}

// ShortHelp implements help.KeyMap.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.fieldUp, k.fieldDown, k.decrease, k.increase, k.nextPreset, k.toggleHelp, k.quit}
}

// FullHelp implements help.KeyMap.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.fieldUp, k.fieldDown, k.decrease, k.increase},
		{k.nextPreset, k.prevPreset, k.pickPreset},
		{k.toggleHelp, k.quit},
	}
}

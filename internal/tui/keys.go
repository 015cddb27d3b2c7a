package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Toggle key.Binding
	Lap    key.Binding
	Reset  key.Binding
	Laps   key.Binding
	Help   key.Binding
	Quit   key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Toggle: key.NewBinding(key.WithKeys(" ", "s"), key.WithHelp("space", "start")),
		Lap:    key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "lap")),
		Reset:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset")),
		Laps:   key.NewBinding(key.WithKeys("v", "tab"), key.WithHelp("v", "laps")),
		Help:   key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:   key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

// sync mirrors the watch face: stop and lap while running, start and reset
// while stopped.
func (k *keyMap) sync(running bool) {
	if running {
		k.Toggle.SetHelp("space", "stop")
	} else {
		k.Toggle.SetHelp("space", "start")
	}
	k.Lap.SetEnabled(running)
	k.Reset.SetEnabled(!running)
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Toggle, k.Lap, k.Reset, k.Laps, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Toggle, k.Lap, k.Reset},
		{k.Laps, k.Help, k.Quit},
	}
}

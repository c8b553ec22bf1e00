// Package teatest drives bubbletea models synchronously in tests.
//
// Update is called directly and every returned Cmd is executed in place, so
// tests see the model exactly as a running program would, without a
// terminal or goroutines to coordinate.
package teatest

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// MaxDepth bounds nested Cmd execution.
const MaxDepth = 64

// cmdTimeout skips Cmds that block on timers (cursor blinks, ticks).
const cmdTimeout = 10 * time.Millisecond

// Driver wraps a model under test.
type Driver struct {
	t     *testing.T
	model tea.Model

	// Quitting is set once tea.Quit has been returned.
	Quitting bool
}

type Option func(*Driver)

// WithSize delivers a WindowSizeMsg before the test starts.
func WithSize(w, h int) Option {
	return func(d *Driver) {
		d.Send(tea.WindowSizeMsg{Width: w, Height: h})
	}
}

// New runs the model's Init command and applies opts.
func New(t *testing.T, model tea.Model, opts ...Option) *Driver {
	t.Helper()
	d := &Driver{t: t, model: model}
	d.run(model.Init(), 0)
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Model returns the current model, for type assertions in tests.
func (d *Driver) Model() tea.Model { return d.model }

// View renders the current model.
func (d *Driver) View() string { return d.model.View() }

// Send passes msg to Update and runs the resulting commands.
func (d *Driver) Send(msg tea.Msg) {
	d.t.Helper()
	if d.Quitting {
		return
	}
	var cmd tea.Cmd
	d.model, cmd = d.model.Update(msg)
	d.run(cmd, 0)
}

// Press sends named keys in order. Names follow tea.KeyMsg.String(), such as
// "enter", "esc", "left" or "ctrl+c"; anything else is typed as runes.
func (d *Driver) Press(keys ...string) {
	d.t.Helper()
	for _, k := range keys {
		d.Send(keyMsg(k))
	}
}

var namedKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEsc,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"home":   tea.KeyHome,
	"end":    tea.KeyEnd,
	"tab":    tea.KeyTab,
	"ctrl+c": tea.KeyCtrlC,
}

func keyMsg(name string) tea.KeyMsg {
	if kt, ok := namedKeys[name]; ok {
		return tea.KeyMsg{Type: kt}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(name)}
}

func (d *Driver) run(cmd tea.Cmd, depth int) {
	d.t.Helper()
	if cmd == nil {
		return
	}
	if depth >= MaxDepth {
		d.t.Logf("teatest: command depth limit %d reached", MaxDepth)
		return
	}

	switch msg := execWithTimeout(cmd).(type) {
	case nil:
	case tea.BatchMsg:
		for _, c := range msg {
			d.run(c, depth+1)
		}
	case tea.QuitMsg:
		d.Quitting = true
	default:
		var next tea.Cmd
		d.model, next = d.model.Update(msg)
		d.run(next, depth+1)
	}
}

func execWithTimeout(cmd tea.Cmd) tea.Msg {
	ch := make(chan tea.Msg, 1)
	go func() { ch <- cmd() }()
	select {
	case msg := <-ch:
		return msg
	case <-time.After(cmdTimeout):
		return nil
	}
}

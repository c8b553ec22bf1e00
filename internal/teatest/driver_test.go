package teatest

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
)

type loadedMsg struct{ n int }

// counter loads a start value on Init and counts key presses.
type counter struct {
	n     int
	width int
	keys  []string
}

func (c counter) Init() tea.Cmd {
	return func() tea.Msg { return loadedMsg{n: 10} }
}

func (c counter) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		c.n = msg.n
	case tea.WindowSizeMsg:
		c.width = msg.Width
	case tea.KeyMsg:
		c.keys = append(c.keys, msg.String())
		switch msg.String() {
		case "q":
			return c, tea.Quit
		case "b":
			return c, tea.Batch(
				func() tea.Msg { return loadedMsg{n: c.n + 1} },
				nil,
			)
		}
		c.n++
	}
	return c, nil
}

func (c counter) View() string { return fmt.Sprintf("n=%d w=%d", c.n, c.width) }

func TestDriver_InitAndSize(t *testing.T) {
	d := New(t, counter{}, WithSize(80, 24))
	assert.Equal(t, "n=10 w=80", d.View())
}

func TestDriver_PressMapsNamedKeys(t *testing.T) {
	d := New(t, counter{})
	d.Press("enter", "x", "ctrl+c", "left")
	assert.Equal(t, []string{"enter", "x", "ctrl+c", "left"}, d.Model().(counter).keys)
	assert.Equal(t, "n=14 w=0", d.View())
}

func TestDriver_BatchAndQuit(t *testing.T) {
	d := New(t, counter{})
	d.Press("b")
	assert.Equal(t, "n=11 w=0", d.View())

	d.Press("q", "x")
	assert.True(t, d.Quitting)
	assert.Equal(t, []string{"b", "q"}, d.Model().(counter).keys, "keys after quit are ignored")
}

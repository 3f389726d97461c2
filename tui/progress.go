// Package tui renders job progress as a small Bubbletea program.
package tui

import (
	"io"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/user/vid2gif-cli/tui/components"
)

const defaultWidth = 60

// advanceMsg moves the displayed progress forward by a number of seconds.
type advanceMsg float64

// finishMsg ends the program, leaving the final state on screen.
type finishMsg struct {
	ok bool
}

// Model is the Bubbletea model for a single job's progress box.
type Model struct {
	state components.JobProgressState
	width int
}

// NewModel creates a progress model for a job of total seconds.
func NewModel(description, input string, total float64) Model {
	return Model{
		state: components.JobProgressState{
			Description: description,
			Input:       input,
			Total:       total,
		},
		width: defaultWidth,
	}
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case advanceMsg:
		m.state.Current += float64(msg)
	case finishMsg:
		m.state.Done = true
		m.state.OK = msg.ok
		return m, tea.Quit
	case tea.WindowSizeMsg:
		if msg.Width > 0 && msg.Width < defaultWidth {
			m.width = msg.Width
		}
	}
	return m, nil
}

func (m Model) View() string {
	return components.JobProgress(m.state, m.width) + "\n"
}

// State returns the progress currently displayed.
func (m Model) State() components.JobProgressState {
	return m.state
}

// Indicator drives a Bubbletea program from ffmpeg progress updates.
// Advance and Finish may be called from the goroutine running the job.
type Indicator struct {
	program  *tea.Program
	done     chan struct{}
	finished sync.Once
}

// NewIndicator starts a program rendering to out. Input and signal handling
// are disabled; the caller owns interruption.
func NewIndicator(out io.Writer, description, input string, total float64) *Indicator {
	ind := &Indicator{
		program: tea.NewProgram(
			NewModel(description, input, total),
			tea.WithOutput(out),
			tea.WithInput(nil),
			tea.WithoutSignalHandler(),
		),
		done: make(chan struct{}),
	}
	go func() {
		defer close(ind.done)
		_, _ = ind.program.Run()
	}()
	return ind
}

func (i *Indicator) Advance(delta float64) {
	i.program.Send(advanceMsg(delta))
}

// Finish renders the terminal state and waits for the program to exit.
func (i *Indicator) Finish(ok bool) {
	i.finished.Do(func() {
		i.program.Send(finishMsg{ok: ok})
		<-i.done
	})
}

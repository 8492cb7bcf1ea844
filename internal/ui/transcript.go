package ui

import (
	"io"

	"github.com/Cyclone1070/codereview/internal/workflow"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
)

// SpinnerFactory creates the spinner shown while the model is thinking.
type SpinnerFactory func() spinner.Model

// DefaultSpinner is the dot spinner.
func DefaultSpinner() spinner.Model {
	return spinner.New(spinner.WithSpinner(spinner.Dot))
}

// Transcript renders a run inline on a terminal. Finished lines are printed
// above the program; the live area only holds the thinking spinner. The
// program ends when the event channel is closed.
type Transcript struct {
	out       io.Writer
	f         formatter
	spinner   SpinnerFactory
	interrupt func()
	opts      []tea.ProgramOption
}

// NewTranscript creates a Transcript writing to out. interrupt is called on
// ctrl+c, since the terminal is in raw mode and no SIGINT is delivered.
func NewTranscript(out io.Writer, md markdownRenderer, verbose bool, spinnerFactory SpinnerFactory, interrupt func(), opts ...tea.ProgramOption) *Transcript {
	return &Transcript{
		out:       out,
		f:         formatter{md: md, styled: true, verbose: verbose},
		spinner:   spinnerFactory,
		interrupt: interrupt,
		opts:      opts,
	}
}

// Run blocks until events is closed and every line has been printed.
func (t *Transcript) Run(events <-chan workflow.Event) error {
	opts := append([]tea.ProgramOption{tea.WithOutput(t.out)}, t.opts...)
	_, err := tea.NewProgram(newTranscriptModel(events, t.f, t.spinner(), t.interrupt), opts...).Run()
	return err
}

type eventMsg struct{ event workflow.Event }

type eventsClosedMsg struct{}

func listenForEvents(ch <-chan workflow.Event) tea.Cmd {
	return func() tea.Msg {
		e, ok := <-ch
		if !ok {
			return eventsClosedMsg{}
		}
		return eventMsg{event: e}
	}
}

// transcriptModel implements tea.Model.
type transcriptModel struct {
	events    <-chan workflow.Event
	f         formatter
	spinner   spinner.Model
	thinking  bool
	interrupt func()
}

func newTranscriptModel(events <-chan workflow.Event, f formatter, sp spinner.Model, interrupt func()) transcriptModel {
	return transcriptModel{events: events, f: f, spinner: sp, interrupt: interrupt}
}

func (m transcriptModel) Init() tea.Cmd {
	return listenForEvents(m.events)
}

func (m transcriptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC && m.interrupt != nil {
			m.interrupt()
		}
		return m, nil

	case eventMsg:
		var cmds []tea.Cmd
		if lines := m.f.lines(msg.event); len(lines) > 0 {
			for _, line := range lines {
				cmds = append(cmds, tea.Println(line))
			}
		}
		switch msg.event.(type) {
		case workflow.ThinkingEvent:
			if !m.thinking {
				m.thinking = true
				cmds = append(cmds, m.spinner.Tick)
			}
		case workflow.MessageEvent, workflow.ToolStartEvent, workflow.TextEvent, workflow.DoneEvent:
			m.thinking = false
		}
		cmds = append(cmds, listenForEvents(m.events))
		return m, tea.Sequence(cmds...)

	case eventsClosedMsg:
		m.thinking = false
		return m, tea.Quit

	case spinner.TickMsg:
		if !m.thinking {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m transcriptModel) View() string {
	if !m.thinking {
		return ""
	}
	return m.spinner.View() + " " + ToolStyle.Render("thinking...")
}

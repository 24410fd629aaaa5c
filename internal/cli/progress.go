package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/deptree/pkg/deps"
)

// resolveDoneMsg ends the progress display.
type resolveDoneMsg struct{ err error }

// progressModel shows a spinner with live gate counters while a resolution
// runs.
type progressModel struct {
	spinner spinner.Model
	label   string
	gate    *deps.Gate
	start   time.Time
	now     func() time.Time
	done    bool
	err     error
}

func newProgressModel(label string, gate *deps.Gate) progressModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styleIconSpinner
	return progressModel{
		spinner: s,
		label:   label,
		gate:    gate,
		start:   time.Now(),
		now:     time.Now,
	}
}

func (m progressModel) Init() tea.Cmd {
	return m.spinner.Tick
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resolveDoneMsg:
		m.done = true
		m.err = msg.err
		return m, tea.Quit
	case tea.KeyMsg:
		if msg.Type == tea.KeyCtrlC {
			return m, tea.Quit
		}
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	if m.done {
		return ""
	}
	elapsed := m.now().Sub(m.start).Round(100 * time.Millisecond)
	stats := fmt.Sprintf("%d/%d fetching · %d queued · %s",
		m.gate.InFlight(), m.gate.Limit(), m.gate.Waiting(), elapsed)
	return m.spinner.View() + " Resolving " + StyleHighlight.Render(m.label) + "  " + StyleDim.Render(stats) + "\n"
}

// runWithProgress runs fn while rendering progress on stderr. It returns
// fn's error once fn has returned, even if the display stopped early.
func runWithProgress(ctx context.Context, label string, gate *deps.Gate, fn func(context.Context) error) error {
	p := tea.NewProgram(newProgressModel(label, gate),
		tea.WithContext(ctx),
		tea.WithOutput(os.Stderr),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	errc := make(chan error, 1)
	go func() {
		err := fn(ctx)
		errc <- err
		p.Send(resolveDoneMsg{err: err})
	}()

	if _, err := p.Run(); err != nil {
		loggerFromContext(ctx).Debugf("progress display: %v", err)
	}
	return <-errc
}

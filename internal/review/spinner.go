package review

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/akapil/prospect/internal/model"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

type probeDoneMsg struct {
	record model.CompanyRecord
	err    error
}

type spinnerTickMsg struct{}

type spinnerModel struct {
	companyName string
	probeFn     func(ctx context.Context) (model.CompanyRecord, error)
	frame       int
	result      model.CompanyRecord
	err         error
	done        bool
}

func (m spinnerModel) Init() tea.Cmd {
	return tea.Batch(m.doProbe(), m.tick())
}

func (m spinnerModel) doProbe() tea.Cmd {
	probeFn := m.probeFn
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
		defer cancel()
		rec, err := probeFn(ctx)
		return probeDoneMsg{record: rec, err: err}
	}
}

func (m spinnerModel) tick() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(time.Time) tea.Msg {
		return spinnerTickMsg{}
	})
}

func (m spinnerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case probeDoneMsg:
		m.result = msg.record
		m.err = msg.err
		m.done = true
		return m, tea.Quit
	case spinnerTickMsg:
		m.frame = (m.frame + 1) % len(spinnerFrames)
		return m, m.tick()
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.done = true
			m.err = fmt.Errorf("cancelled")
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m spinnerModel) View() string {
	if m.done {
		return ""
	}
	spinner := lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Render(spinnerFrames[m.frame])
	return fmt.Sprintf("%s Probing %s...\n", spinner, m.companyName)
}

// RunProbe shows a spinner while the discovery chain runs for one company.
// It renders inline (no alt screen).
func RunProbe(companyName string, probeFn func(ctx context.Context) (model.CompanyRecord, error)) (model.CompanyRecord, error) {
	m := spinnerModel{
		companyName: companyName,
		probeFn:     probeFn,
	}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return model.CompanyRecord{}, err
	}
	final := result.(spinnerModel)
	return final.result, final.err
}

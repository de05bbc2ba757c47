package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/doitintl/idlegw/internal/core"
	"github.com/doitintl/idlegw/internal/metrics"
	"github.com/doitintl/idlegw/pkg/types"
)

type analyzeModel struct {
	scanner  *core.Scanner
	ctx      context.Context
	days     int
	spinner  spinner.Model
	step     string
	gateways []types.Gateway
	events   chan metrics.Event

	done     int
	total    int
	failures []metrics.Failure

	result *metrics.Result
	err    error
	quit   bool
}

type gatewaysDiscoveredMsg struct {
	gateways []types.Gateway
}

type progressMsg metrics.Event

type analysisDoneMsg struct {
	result *metrics.Result
}

type analysisErrorMsg struct {
	err error
}

// RunAnalysis drives discovery and collection behind an interactive
// progress view and returns the finished result.
func RunAnalysis(ctx context.Context, scanner *core.Scanner, gateways []types.Gateway, days int) (*metrics.Result, error) {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4"))

	m := analyzeModel{
		scanner:  scanner,
		ctx:      ctx,
		days:     days,
		spinner:  s,
		step:     "Starting analysis...",
		gateways: gateways,
		total:    len(gateways),
		events:   make(chan metrics.Event),
	}

	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return nil, err
	}

	fm := final.(analyzeModel)
	if fm.quit {
		return nil, fmt.Errorf("analysis cancelled")
	}
	if fm.err != nil {
		return nil, fm.err
	}
	return fm.result, nil
}

func (m analyzeModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.startAnalysis, m.nextEvent)
}

func (m analyzeModel) startAnalysis() tea.Msg {
	result, err := m.scanner.Analyze(m.ctx, m.gateways, m.days, func(e metrics.Event) {
		m.events <- e
	})
	if err != nil {
		return analysisErrorMsg{err: err}
	}
	return analysisDoneMsg{result: result}
}

func (m analyzeModel) nextEvent() tea.Msg {
	return progressMsg(<-m.events)
}

func (m analyzeModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" || msg.String() == "q" {
			m.quit = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case progressMsg:
		m.done = msg.Done
		if msg.Err != nil {
			m.failures = append(m.failures, metrics.Failure{Gateway: msg.Gateway, Err: msg.Err})
			m.step = fmt.Sprintf("Failed %s (%s)", msg.Gateway.Name, msg.Gateway.ID)
		} else {
			m.step = fmt.Sprintf("Collected %s (%s)", msg.Gateway.Name, msg.Gateway.ID)
		}
		return m, m.nextEvent

	case analysisDoneMsg:
		m.result = msg.result
		return m, tea.Quit

	case analysisErrorMsg:
		m.err = msg.err
		return m, tea.Quit
	}

	return m, nil
}

func (m analyzeModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("🔍 idlegw — Gateway Idle Analysis"))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render("✗ " + m.err.Error()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("%s %s\n", m.spinner.View(), m.step))
	b.WriteString(infoStyle.Render(fmt.Sprintf("  %d/%d gateways · %d day lookback", m.done, m.total, m.days)))
	b.WriteString("\n")

	for _, f := range m.failures {
		b.WriteString(warningStyle.Render(fmt.Sprintf("  ⚠ %s: %v", f.Gateway.ID, f.Err)))
		b.WriteString("\n")
	}

	b.WriteString(infoStyle.Render("\nPress q to cancel"))
	b.WriteString("\n")
	return b.String()
}

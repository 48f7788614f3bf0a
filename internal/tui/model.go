package tui

import (
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/tinytelemetry/sshmon/internal/dataset"
	"github.com/tinytelemetry/sshmon/internal/filter"
	"github.com/tinytelemetry/sshmon/internal/model"
	"github.com/tinytelemetry/sshmon/internal/report"
	"github.com/tinytelemetry/sshmon/internal/timeseries"
)

// DashboardModel is the Bubble Tea model for the analytics dashboard. The
// dataset is immutable; every filter change rebuilds the snapshot from
// scratch, so the model carries no derived state beyond the latest snapshot.
type DashboardModel struct {
	ds     *dataset.Dataset
	parser timeseries.Parser
	keys   KeyMap

	// Filter cycling state. Index -1 is the "no constraint" sentinel.
	eventOptions []string
	ipOptions    []string
	eventIdx     int
	ipIdx        int

	snapshot report.Snapshot
	rows     viewport.Model

	width  int
	height int
	ready  bool
}

// NewDashboard creates a dashboard over a loaded dataset.
func NewDashboard(ds *dataset.Dataset, parser timeseries.Parser) *DashboardModel {
	m := &DashboardModel{
		ds:           ds,
		parser:       parser,
		keys:         DefaultKeyMap(),
		eventOptions: dataset.DistinctValues(ds.Set, model.ColEventID),
		ipOptions:    dataset.DistinctValues(ds.Set, model.ColSourceIP),
		eventIdx:     -1,
		ipIdx:        -1,
	}
	m.recompute()
	return m
}

// Run starts the dashboard program and blocks until it exits.
func Run(ds *dataset.Dataset, parser timeseries.Parser) error {
	p := tea.NewProgram(NewDashboard(ds, parser), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// selection translates the cycling indexes into the engine's filter
// selection.
func (m *DashboardModel) selection() filter.Selection {
	var sel filter.Selection
	if m.eventIdx >= 0 && m.eventIdx < len(m.eventOptions) {
		sel.EventID = m.eventOptions[m.eventIdx]
	}
	if m.ipIdx >= 0 && m.ipIdx < len(m.ipOptions) {
		sel.SourceIPs = filter.NewValueSet(m.ipOptions[m.ipIdx])
	}
	return sel
}

// recompute runs one full pipeline evaluation for the current selection.
func (m *DashboardModel) recompute() {
	m.snapshot = report.Build(m.ds, m.selection(), m.parser)
	if m.ready {
		m.rows.SetContent(m.renderRows())
		m.rows.GotoTop()
	}
}

func (m *DashboardModel) Init() tea.Cmd {
	return nil
}

func (m *DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		rowsHeight := m.rowsViewportHeight()
		if !m.ready {
			m.rows = viewport.New(msg.Width-2, rowsHeight)
			m.ready = true
		} else {
			m.rows.Width = msg.Width - 2
			m.rows.Height = rowsHeight
		}
		m.rows.SetContent(m.renderRows())
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit), key.Matches(msg, m.keys.ForceQuit):
			return m, tea.Quit

		case key.Matches(msg, m.keys.NextEvent):
			m.eventIdx = cycle(m.eventIdx, len(m.eventOptions), 1)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.PrevEvent):
			m.eventIdx = cycle(m.eventIdx, len(m.eventOptions), -1)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.NextIP):
			m.ipIdx = cycle(m.ipIdx, len(m.ipOptions), 1)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.PrevIP):
			m.ipIdx = cycle(m.ipIdx, len(m.ipOptions), -1)
			m.recompute()
			return m, nil

		case key.Matches(msg, m.keys.Clear):
			m.eventIdx = -1
			m.ipIdx = -1
			m.recompute()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.rows, cmd = m.rows.Update(msg)
	return m, cmd
}

// cycle steps an index through [-1, n), where -1 is the sentinel slot.
func cycle(idx, n, step int) int {
	if n == 0 {
		return -1
	}
	idx += step
	if idx >= n {
		return -1
	}
	if idx < -1 {
		return n - 1
	}
	return idx
}

func (m *DashboardModel) rowsViewportHeight() int {
	h := m.height - chartAreaHeight - headerHeight - statusLineHeight
	if h < 3 {
		h = 3
	}
	return h
}

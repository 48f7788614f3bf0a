package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tinytelemetry/sshmon/internal/report"
)

const (
	headerHeight     = 4
	chartAreaHeight  = 13
	statusLineHeight = 1
)

func (m *DashboardModel) View() string {
	if !m.ready {
		return "Loading dashboard..."
	}

	var sections []string
	sections = append(sections, m.renderHeader())
	sections = append(sections, m.renderCharts())
	sections = append(sections, m.renderShareStrip())
	sections = append(sections, m.rows.View())
	sections = append(sections, m.renderStatusLine())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m *DashboardModel) renderHeader() string {
	title := chartTitleStyle.Render("SSH Monitor")
	filters := m.renderFilterStatus()

	metrics := m.snapshot.Metrics
	metricLine := strings.Join([]string{
		renderMetric("Total Events", metrics.TotalEvents),
		renderMetric("Unique IPs", metrics.UniqueIPs),
		renderMetric("Targeted Users", metrics.TargetedUsers),
	}, "    ")

	if m.snapshot.NoResults {
		metricLine = warningStyle.Render("No results with these filters. Adjust your selection.")
	}

	return lipgloss.JoinVertical(lipgloss.Left, title+"  "+filters, metricLine, "")
}

func renderMetric(label string, value int) string {
	return metricLabelStyle.Render(label+": ") + metricValueStyle.Render(fmt.Sprintf("%d", value))
}

func (m *DashboardModel) renderFilterStatus() string {
	event := "all"
	if m.eventIdx >= 0 && m.eventIdx < len(m.eventOptions) {
		event = m.eventOptions[m.eventIdx]
	}
	ip := "all"
	if m.ipIdx >= 0 && m.ipIdx < len(m.ipOptions) {
		ip = m.ipOptions[m.ipIdx]
	}
	return filterStyle.Render(fmt.Sprintf("[event: %s] [ip: %s]", event, ip))
}

func (m *DashboardModel) renderCharts() string {
	panelWidth := (m.width - 6) / 2
	if panelWidth < 30 {
		panelWidth = 30
	}
	panelHeight := chartAreaHeight - 2

	left := m.renderTopIPsPanel(panelWidth, panelHeight)
	right := m.renderHourlyPanel(panelWidth, panelHeight)

	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

// renderShareStrip shows the top-10 share ranking as one compact line.
func (m *DashboardModel) renderShareStrip() string {
	share := m.snapshot.TopIPShare
	if len(share) == 0 {
		return helpStyle.Render("Share (top 10): no data")
	}

	total := 0
	for _, entry := range share {
		total += entry.Count
	}

	parts := make([]string, 0, len(share))
	for _, entry := range share {
		pct := 100 * float64(entry.Count) / float64(total)
		parts = append(parts, fmt.Sprintf("%s %.1f%%", entry.Value, pct))
	}

	line := metricLabelStyle.Render("Share (top 10): ") + strings.Join(parts, " · ")
	if m.width > 4 && lipgloss.Width(line) > m.width-2 {
		line = line[:m.width-2]
	}
	return line
}

func (m *DashboardModel) renderRows() string {
	view := report.View(m.ds, m.selection())
	if view.Len() == 0 {
		return helpStyle.Render("No rows to display")
	}

	columns := view.Columns()
	widths := make([]int, len(columns))
	for i, col := range columns {
		widths[i] = len(col)
	}

	const maxDisplayRows = 500
	rows := view.Rows()
	if len(rows) > maxDisplayRows {
		rows = rows[:maxDisplayRows]
	}

	for _, rec := range rows {
		for i, col := range columns {
			if w := len(rec[col]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	for i, col := range columns {
		if i > 0 {
			b.WriteString("  ")
		}
		fmt.Fprintf(&b, "%-*s", widths[i], col)
	}
	header := chartTitleStyle.Render(b.String())

	lines := make([]string, 0, len(rows)+1)
	lines = append(lines, header)
	for _, rec := range rows {
		var row strings.Builder
		for i, col := range columns {
			if i > 0 {
				row.WriteString("  ")
			}
			fmt.Fprintf(&row, "%-*s", widths[i], rec[col])
		}
		lines = append(lines, row.String())
	}

	return strings.Join(lines, "\n")
}

func (m *DashboardModel) renderStatusLine() string {
	help := []string{
		"→/e event", "i ip", "c clear", "↑/↓ scroll", "q quit",
	}
	status := fmt.Sprintf("%d rows", m.snapshot.RowCount)
	if m.snapshot.Hourly.Dropped > 0 {
		status += fmt.Sprintf(" · %d rows without parseable timestamp", m.snapshot.Hourly.Dropped)
	}
	return helpStyle.Render(status + "   " + strings.Join(help, " · "))
}

package tui

import (
	"fmt"
	"strings"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/lipgloss"
)

// renderTopIPsPanel renders the top source IPs as a ranked bar listing.
func (m *DashboardModel) renderTopIPsPanel(width, height int) string {
	style := sectionStyle.Width(width).Height(height)
	title := chartTitleStyle.Render("Top Source IPs")

	entries := m.snapshot.TopIPs
	if len(entries) == 0 {
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, title,
			helpStyle.Render("No data available")))
	}

	maxItems := height - 2
	if maxItems > len(entries) {
		maxItems = len(entries)
	}

	topCount := entries[0].Count
	countFieldWidth := len(fmt.Sprintf("%d", topCount))
	if countFieldWidth < 3 {
		countFieldWidth = 3
	}

	barWidth := 15
	if width < 40 {
		barWidth = 8
	}
	labelWidth := width - barWidth - countFieldWidth - 12
	if labelWidth < 8 {
		labelWidth = 8
	}

	var lines []string
	for i := 0; i < maxItems; i++ {
		entry := entries[i]

		filled := int(float64(entry.Count) / float64(topCount) * float64(barWidth))
		if filled == 0 && entry.Count > 0 {
			filled = 1
		}
		bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

		label := entry.Value
		if len(label) > labelWidth {
			label = label[:labelWidth-3] + "..."
		}

		formatStr := fmt.Sprintf("%%2d. %%-%ds %%%dd |%%s|", labelWidth, countFieldWidth)
		line := fmt.Sprintf(formatStr, i+1, label, entry.Count, bar)
		lines = append(lines, lipgloss.NewStyle().Foreground(ColorWhite).Render(line))
	}

	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, strings.Join(lines, "\n")))
}

// renderHourlyPanel renders the hourly activity series as a bar chart.
func (m *DashboardModel) renderHourlyPanel(width, height int) string {
	style := sectionStyle.Width(width).Height(height)

	buckets := m.snapshot.Hourly.Buckets
	if len(buckets) == 0 {
		title := chartTitleStyle.Render("Hourly Activity")
		return style.Render(lipgloss.JoinVertical(lipgloss.Left, title,
			helpStyle.Render("No temporal data available")))
	}

	first := buckets[0].Start
	last := buckets[len(buckets)-1].Start
	title := chartTitleStyle.Render(fmt.Sprintf("Hourly Activity  %s to %s",
		first.Format("Jan 2 15:00"), last.Format("Jan 2 15:00")))

	chartWidth := width - 4
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := height - 3
	if chartHeight < 4 {
		chartHeight = 4
	}

	// One bar per bucket; when the series is wider than the panel, keep the
	// most recent buckets.
	maxBars := chartWidth / 2
	visible := buckets
	if len(visible) > maxBars {
		visible = visible[len(visible)-maxBars:]
	}

	bc := barchart.New(chartWidth, chartHeight,
		barchart.WithBarGap(1),
		barchart.WithBarWidth(1),
		barchart.WithNoAxis(),
	)

	barStyle := lipgloss.NewStyle().Foreground(ColorBlue).Background(ColorBlue)
	for _, bucket := range visible {
		bc.Push(barchart.BarData{
			Label: "",
			Values: []barchart.BarValue{
				{Name: "events", Value: float64(bucket.Count), Style: barStyle},
			},
		})
	}

	bc.Draw()
	return style.Render(lipgloss.JoinVertical(lipgloss.Left, title, bc.View()))
}

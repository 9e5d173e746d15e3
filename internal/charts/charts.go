// Package charts renders interactive HTML charts of the tracked statistics.
package charts

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/ymatsuda/deck-ledger/internal/storage/models"
)

// ChartConfig holds configuration for charts.
type ChartConfig struct {
	Title      string
	Subtitle   string
	Width      string // e.g., "900px"
	Height     string // e.g., "500px"
	Theme      string
	ShowLegend bool
	Colors     []string
}

// DefaultChartConfig returns default chart configuration.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:      "900px",
		Height:     "500px",
		Theme:      "light",
		ShowLegend: true,
		Colors:     []string{"#5470C6", "#91CC75", "#FAC858", "#EE6666", "#73C0DE", "#3BA272", "#FC8452", "#9A60B4", "#EA7CCC"},
	}
}

// DataPoint represents a single bar or point in a chart.
type DataPoint struct {
	Label string
	Value float64
}

// RenderBarChart creates an interactive bar chart HTML file.
func RenderBarChart(data []DataPoint, seriesName string, config ChartConfig, outputPath string) error {
	if len(data) == 0 {
		return fmt.Errorf("no data points provided")
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  config.Width,
			Height: config.Height,
			Theme:  config.Theme,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    config.Title,
			Subtitle: config.Subtitle,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:    opts.Bool(true),
			Trigger: "axis",
		}),
		charts.WithLegendOpts(opts.Legend{
			Show: opts.Bool(config.ShowLegend),
		}),
		charts.WithColorsOpts(opts.Colors{
			config.Colors[0],
		}),
	)

	xLabels := make([]string, len(data))
	yData := make([]opts.BarData, len(data))
	for i, point := range data {
		xLabels[i] = point.Label
		yData[i] = opts.BarData{Value: point.Value}
	}

	bar.SetXAxis(xLabels).
		AddSeries(seriesName, yData).
		SetSeriesOptions(
			charts.WithLabelOpts(opts.Label{
				Show: opts.Bool(false),
			}),
		)

	f, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create chart file: %w", err)
	}
	defer f.Close()

	if err := bar.Render(f); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	return nil
}

// RenderSummaryChart charts per-archetype win rates from the summary view.
func RenderSummaryChart(summaries []*models.ArchetypeSummary, outputPath string) error {
	if len(summaries) == 0 {
		return fmt.Errorf("no summary data to chart")
	}

	data := make([]DataPoint, 0, len(summaries))
	for _, s := range summaries {
		data = append(data, DataPoint{Label: s.Archetype, Value: s.WinRate})
	}

	config := DefaultChartConfig()
	config.Title = "Archetype win rates"
	config.Subtitle = "Overall win rate per archetype, both sides of the table"

	return RenderBarChart(data, "Win Rate", config, outputPath)
}

// RenderMatchupChart charts a focus archetype's per-opponent win rates.
// Only the type-agnostic rows are charted, one bar per opponent.
func RenderMatchupChart(archetype string, matchups []*models.MatchupRow, outputPath string) error {
	var data []DataPoint
	for _, m := range matchups {
		if m.OpponentType != nil {
			continue
		}
		data = append(data, DataPoint{Label: m.OpponentDeck, Value: m.WinRate})
	}
	if len(data) == 0 {
		return fmt.Errorf("no matchup data to chart")
	}

	config := DefaultChartConfig()
	config.Title = fmt.Sprintf("%s matchups", archetype)
	config.Subtitle = "Win rate against each opponent archetype"

	return RenderBarChart(data, "Win Rate", config, outputPath)
}

// OpenInBrowser opens the given file path in the default web browser.
func OpenInBrowser(filePath string) error {
	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", absPath)
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", absPath)
	case "linux":
		cmd = exec.Command("xdg-open", absPath)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}

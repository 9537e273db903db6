// Package chart renders ranked impact summaries as bar-chart PNG files.
package chart

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	gochart "github.com/wcharczuk/go-chart/v2"

	"github.com/ely-xavier/NOAA-Reproducible-Research/internal/domain"
)

// Renderer writes one bar chart per ranked metric. It implements
// pipeline.ReportSink.
type Renderer struct {
	dir    string
	logger *slog.Logger
}

// NewRenderer creates a Renderer writing into dir (created on first use).
func NewRenderer(dir string, logger *slog.Logger) *Renderer {
	return &Renderer{dir: dir, logger: logger}
}

// Name implements pipeline.ReportSink.
func (r *Renderer) Name() string { return "chart" }

// Publish renders the report's three rankings. Rankings with no entries or
// all-zero values produce no file; the bar chart would be degenerate.
func (r *Renderer) Publish(_ context.Context, report domain.Report) error {
	if err := os.MkdirAll(r.dir, 0o755); err != nil {
		return fmt.Errorf("create chart directory: %w", err)
	}

	charts := []struct {
		file    string
		title   string
		entries []domain.RankedEntry
		scale   float64
	}{
		{"top_fatalities.png", "Fatalities by event type", report.TopFatalities, 1},
		{"top_injuries.png", "Injuries by event type", report.TopInjuries, 1},
		{"top_damage.png", "Economic damage by event type (USD billions)", report.TopDamage, 1e9},
	}

	for _, c := range charts {
		path := filepath.Join(r.dir, c.file)
		if !renderable(c.entries) {
			r.logger.Warn("skipping chart with no non-zero values", "chart", c.file)
			continue
		}
		if err := r.renderBarChart(path, c.title, c.entries, c.scale); err != nil {
			return fmt.Errorf("render %s: %w", c.file, err)
		}
		r.logger.Info("chart written", "path", path)
	}
	return nil
}

func renderable(entries []domain.RankedEntry) bool {
	for _, e := range entries {
		if e.Value > 0 {
			return true
		}
	}
	return false
}

func (r *Renderer) renderBarChart(path, title string, entries []domain.RankedEntry, scale float64) error {
	bars := make([]gochart.Value, len(entries))
	for i, e := range entries {
		bars[i] = gochart.Value{
			Label: e.Label,
			Value: e.Value / scale,
		}
	}

	c := gochart.BarChart{
		Title:      title,
		Background: gochart.Style{Padding: gochart.Box{Top: 40}},
		Width:      1280,
		Height:     720,
		BarWidth:   80,
		Bars:       bars,
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := c.Render(gochart.PNG, f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

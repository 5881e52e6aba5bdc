package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/gogpu/depthraster"
	"github.com/gogpu/depthraster/internal/config"
)

// result is one row of the sweep report.
type result struct {
	shapes     int
	sequential time.Duration
	partition  time.Duration
	rasterize  time.Duration
	composite  time.Duration
	parallel   time.Duration
	maxDiff    int // -1 when only one mode ran
	painted    int
	output     string
	image      *depthraster.PixelBuffer
}

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	borderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)

// renderReport formats the sweep as a table, one row per shape count.
func renderReport(cfg config.Config, workers int, rows []result) string {
	p := message.NewPrinter(language.English)

	title := titleStyle.Render(p.Sprintf("%dx%d canvas, depth 0..%d, %d workers, mode %s",
		cfg.Width, cfg.Height, cfg.MaxDepth, workers, cfg.Mode))

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(borderStyle).
		Headers("Shapes", "Sequential", "Partition", "Rasterize", "Composite", "Parallel", "Speedup", "Max Δ", "Painted px", "Output")

	for _, r := range rows {
		t.Row(
			p.Sprintf("%d", r.shapes),
			formatDuration(r.sequential),
			formatDuration(r.partition),
			formatDuration(r.rasterize),
			formatDuration(r.composite),
			formatDuration(r.parallel),
			speedup(r.sequential, r.parallel),
			formatDiff(r.maxDiff),
			p.Sprintf("%d", r.painted),
			r.output,
		)
	}

	return strings.Join([]string{title, t.String()}, "\n")
}

func formatDuration(d time.Duration) string {
	if d == 0 {
		return "-"
	}
	return d.Round(time.Microsecond).String()
}

func speedup(seq, par time.Duration) string {
	if seq == 0 || par == 0 {
		return "-"
	}
	return fmt.Sprintf("%.2fx", float64(seq)/float64(par))
}

func formatDiff(d int) string {
	if d < 0 {
		return "-"
	}
	return fmt.Sprintf("%d", d)
}

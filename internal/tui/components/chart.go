package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/LucasAust/forecaster/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Sparkline renders a unicode sparkline from values, normalized over the
// series range so series crossing zero render sensibly.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	low, high := values[0], values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	span := high - low
	if span == 0 {
		span = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int((v - low) / span * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BalanceChart renders a projected balance series as a column chart hung off
// a zero axis. Days in the red literally render red. labels, when provided,
// must be one per value.
func BalanceChart(values []float64, labels []string, width, height int) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active
	if width < 15 || height < 4 {
		return Sparkline(values, t.Accent)
	}

	low, high := values[0], values[0]
	for _, v := range values[1:] {
		if v < low {
			low = v
		}
		if v > high {
			high = v
		}
	}
	// The zero axis is always in frame.
	if low > 0 {
		low = 0
	}
	if high < 0 {
		high = 0
	}

	step := chartTickStep(math.Max(high, -low))
	ceiling := math.Ceil(high/step) * step
	floor := math.Floor(low/step) * step
	if ceiling == floor {
		ceiling = floor + step
	}

	yLabelW := len(formatChartLabel(ceiling))
	if w := len(formatChartLabel(floor)); w > yLabelW {
		yLabelW = w
	}
	if yLabelW < 4 {
		yLabelW = 4
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// One column per day; sample down when the series is wider than the
	// chart area.
	n := len(values)
	if n > chartW {
		sampled := make([]float64, chartW)
		var sampledLabels []string
		if len(labels) == n {
			sampledLabels = make([]string, chartW)
		}
		for i := range sampled {
			srcIdx := i * (n - 1) / (chartW - 1)
			sampled[i] = values[srcIdx]
			if sampledLabels != nil {
				sampledLabels[i] = labels[srcIdx]
			}
		}
		values = sampled
		labels = sampledLabels
		n = chartW
	}

	span := ceiling - floor
	zeroRow := int(math.Round(float64(height) * ceiling / span))
	if zeroRow < 1 {
		zeroRow = 1
	}
	if zeroRow > height {
		zeroRow = height
	}

	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	aboveStyle := lipgloss.NewStyle().Foreground(t.Accent).Background(t.Surface)
	belowStyle := lipgloss.NewStyle().Foreground(t.Red).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)

	partials := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	var b strings.Builder
	for row := 1; row <= height; row++ {
		// Value band covered by this screen row, top edge first.
		rowTop := ceiling - span*float64(row-1)/float64(height)
		rowBottom := ceiling - span*float64(row)/float64(height)

		label := ""
		switch row {
		case 1:
			label = formatChartLabel(ceiling)
		case zeroRow:
			label = "0"
		case height:
			label = formatChartLabel(floor)
		}
		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, label)))
		if row == zeroRow {
			b.WriteString(axisStyle.Render("┼"))
		} else {
			b.WriteString(axisStyle.Render("│"))
		}

		for _, v := range values {
			switch {
			case v > 0 && rowBottom >= 0 && v >= rowTop:
				b.WriteString(aboveStyle.Render("█"))
			case v > 0 && rowBottom >= 0 && v > rowBottom:
				frac := (v - rowBottom) / (rowTop - rowBottom)
				idx := int(frac * 8)
				if idx > 8 {
					idx = 8
				}
				if idx < 1 {
					idx = 1
				}
				b.WriteString(aboveStyle.Render(string(partials[idx])))
			case v < 0 && rowTop <= 0 && v <= rowBottom:
				b.WriteString(belowStyle.Render("█"))
			case row == zeroRow:
				b.WriteString(axisStyle.Render("─"))
			default:
				b.WriteString(blankStyle.Render(" "))
			}
		}
		b.WriteString("\n")
	}

	// X-axis labels
	if len(labels) == n && n > 0 {
		buf := make([]byte, n)
		for i := range buf {
			buf[i] = ' '
		}

		minSpacing := 8
		labelStep := max(1, (n*minSpacing)/(n+1))
		if labelStep < minSpacing {
			labelStep = minSpacing
		}

		lastEnd := -1
		for i := 0; i < n; i += labelStep {
			lbl := labels[i]
			end := i + len(lbl)
			if i <= lastEnd || end > n {
				continue
			}
			copy(buf[i:end], lbl)
			lastEnd = end + 1
		}
		if lbl := labels[n-1]; len(lbl) <= n {
			pos := n - len(lbl)
			if pos > lastEnd {
				copy(buf[pos:], lbl)
			}
		}

		labelStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
		b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(labelStyle.Render(strings.TrimRight(string(buf), " ")))
	}

	return b.String()
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	if v < 0 {
		return "-" + formatChartLabel(-v)
	}
	switch {
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

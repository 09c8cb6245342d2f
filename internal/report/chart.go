// Package report renders sentiment analyses as SVG charts and as HTML
// or plain-text reports.
package report

import (
	"fmt"
	"math"
	"strings"

	"github.com/newspulse/newspulse/pkg/models"
)

// ════════════════════════════════════════════════════════════════════
// SVG Chart Generator
// ════════════════════════════════════════════════════════════════════

// ChartConfig holds rendering parameters for SVG charts.
type ChartConfig struct {
	Width        int    // SVG width in pixels (default: 520)
	Height       int    // SVG height in pixels (default: 320)
	MarginTop    int    // top margin (default: 40)
	MarginRight  int    // right margin (default: 30)
	MarginBottom int    // bottom margin (default: 50)
	MarginLeft   int    // left margin (default: 50)
	BgColor      string // background color (default: "#ffffff")
	GridColor    string // grid line color (default: "#e8e8e8")
	TextColor    string // axis label color (default: "#333333")
	FontSize     int    // axis label font size (default: 11)
	Title        string // chart title
}

// DefaultChartConfig returns sensible defaults for chart rendering.
func DefaultChartConfig() ChartConfig {
	return ChartConfig{
		Width:        520,
		Height:       320,
		MarginTop:    40,
		MarginRight:  30,
		MarginBottom: 50,
		MarginLeft:   50,
		BgColor:      "#ffffff",
		GridColor:    "#e8e8e8",
		TextColor:    "#333333",
		FontSize:     11,
	}
}

// plotArea returns the usable drawing area dimensions.
func (c ChartConfig) plotArea() (x, y, w, h int) {
	return c.MarginLeft, c.MarginTop,
		c.Width - c.MarginLeft - c.MarginRight,
		c.Height - c.MarginTop - c.MarginBottom
}

// ════════════════════════════════════════════════════════════════════
// Sentiment Bar Chart
// ════════════════════════════════════════════════════════════════════

// SentimentBarChart generates a vertical bar chart of the sentiment
// breakdown: one column per label, colored like the dashboard badges,
// with the count above each column.
func SentimentBarChart(summary models.SentimentSummary, cfg ChartConfig) string {
	if summary.Total == 0 {
		return emptySVG(cfg, "No articles analyzed")
	}

	if cfg.Width == 0 {
		cfg = DefaultChartConfig()
	}
	if cfg.Title == "" {
		cfg.Title = "Sentiment Breakdown"
	}

	px, py, pw, ph := cfg.plotArea()

	labels := []string{"Positive", "Neutral", "Negative"}
	values := []int{summary.Positive, summary.Neutral, summary.Negative}
	colors := []string{
		models.SentimentPositive.BadgeColor(),
		models.SentimentNeutral.BadgeColor(),
		models.SentimentNegative.BadgeColor(),
	}

	maxCount := 0
	for _, v := range values {
		if v > maxCount {
			maxCount = v
		}
	}
	if maxCount == 0 {
		maxCount = 1
	}

	var sb strings.Builder
	sb.WriteString(svgHeader(cfg))

	// Background
	sb.WriteString(fmt.Sprintf(`<rect x="0" y="0" width="%d" height="%d" fill="%s"/>`,
		cfg.Width, cfg.Height, cfg.BgColor))

	// Title
	sb.WriteString(fmt.Sprintf(`<text x="%d" y="20" font-size="14" font-weight="bold" fill="%s" text-anchor="middle">%s</text>`,
		cfg.Width/2, cfg.TextColor, escapeXML(cfg.Title)))

	// Y-axis grid lines and count labels
	gridLines := 5
	if maxCount < gridLines {
		gridLines = maxCount
	}
	for i := 0; i <= gridLines; i++ {
		count := float64(maxCount) * float64(i) / float64(gridLines)
		y := py + ph - int(float64(ph)*float64(i)/float64(gridLines))
		sb.WriteString(fmt.Sprintf(`<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s" stroke-dasharray="3,3"/>`,
			px, y, px+pw, y, cfg.GridColor))
		sb.WriteString(fmt.Sprintf(`<text x="%d" y="%d" font-size="%d" fill="%s" text-anchor="end">%.0f</text>`,
			px-5, y+4, cfg.FontSize, cfg.TextColor, count))
	}

	// Columns
	slot := float64(pw) / float64(len(values))
	barW := slot * 0.5
	if barW > 90 {
		barW = 90
	}
	for i, v := range values {
		cx := float64(px) + slot*float64(i) + slot/2
		barH := float64(ph) * float64(v) / float64(maxCount)
		barY := float64(py+ph) - barH

		if v > 0 {
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" rx="2"/>`,
				cx-barW/2, barY, barW, barH, colors[i]))
		}

		// Count above the column
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="%d" font-weight="bold" fill="%s" text-anchor="middle">%d</text>`,
			cx, barY-6, cfg.FontSize+1, colors[i], v))

		// Category label below the axis
		sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="%d" fill="%s" text-anchor="middle">%s</text>`,
			cx, py+ph+18, cfg.FontSize, cfg.TextColor, labels[i]))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Score Gauge
// ════════════════════════════════════════════════════════════════════

// ScoreGauge generates an SVG semicircular gauge for the average
// sentiment score. The score is mapped from [-1, 1] onto the dial, so
// the needle points straight up for a neutral batch.
func ScoreGauge(avg float64, width int) string {
	if width == 0 {
		width = 200
	}
	height := width/2 + 30

	cx := float64(width) / 2
	cy := float64(width)/2 - 10
	radius := float64(width)/2 - 20

	// Map [-1, 1] to [0, 100]; out-of-range scores pin the needle.
	value := (avg + 1) / 2 * 100
	if value < 0 {
		value = 0
	}
	if value > 100 {
		value = 100
	}

	// Angle: 180° (left) to 0° (right), value maps 0→180°, 100→0°
	angle := math.Pi - (value/100)*math.Pi
	needleX := cx + radius*0.85*math.Cos(angle)
	needleY := cy - radius*0.85*math.Sin(angle)

	// Color zones
	var color string
	switch {
	case value < 30:
		color = "#ef5350" // red
	case value < 50:
		color = "#ff9800" // orange
	case value < 70:
		color = "#ffc107" // yellow
	default:
		color = "#4caf50" // green
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`, width, height, width, height))
	sb.WriteString(fmt.Sprintf(`<rect width="%d" height="%d" fill="white"/>`, width, height))

	// Background arc
	sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f A%.1f,%.1f 0 0,1 %.1f,%.1f" fill="none" stroke="#e0e0e0" stroke-width="12" stroke-linecap="round"/>`,
		cx-radius, cy, radius, radius, cx+radius, cy))

	// Colored arc (proportional to value)
	endX := cx + radius*math.Cos(angle)
	endY := cy - radius*math.Sin(angle)
	largeArc := 0
	if value > 50 {
		largeArc = 1
	}
	sb.WriteString(fmt.Sprintf(`<path d="M%.1f,%.1f A%.1f,%.1f 0 %d,1 %.1f,%.1f" fill="none" stroke="%s" stroke-width="12" stroke-linecap="round"/>`,
		cx-radius, cy, radius, radius, largeArc, endX, endY, color))

	// Needle
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333" stroke-width="2"/>`,
		cx, cy, needleX, needleY))
	sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="5" fill="#333"/>`, cx, cy))

	// Score text (the raw average, not the mapped value)
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%.1f" font-size="20" font-weight="bold" fill="%s" text-anchor="middle">%.2f</text>`,
		cx, cy+25, color, avg))

	// Label
	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-size="11" fill="#666" text-anchor="middle">Average sentiment</text>`,
		cx, height-5))

	sb.WriteString("</svg>")
	return sb.String()
}

// ════════════════════════════════════════════════════════════════════
// Chart Payload (client-side rendering)
// ════════════════════════════════════════════════════════════════════

// ChartData is the JSON chart payload the dashboard renders itself.
type ChartData struct {
	Name   string   `json:"name"`
	Type   string   `json:"type"`
	Labels []string `json:"labels"`
	Values []int    `json:"values"`
	Colors []string `json:"colors"`
}

// ChartPayload builds the bar chart payload for a sentiment summary.
func ChartPayload(summary models.SentimentSummary) ChartData {
	return ChartData{
		Name:   "sentiment",
		Type:   "bar",
		Labels: []string{"Positive", "Neutral", "Negative"},
		Values: []int{summary.Positive, summary.Neutral, summary.Negative},
		Colors: []string{
			models.SentimentPositive.BadgeColor(),
			models.SentimentNeutral.BadgeColor(),
			models.SentimentNegative.BadgeColor(),
		},
	}
}

// ════════════════════════════════════════════════════════════════════
// SVG Helpers
// ════════════════════════════════════════════════════════════════════

func svgHeader(cfg ChartConfig) string {
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" font-family="sans-serif">`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height)
}

func emptySVG(cfg ChartConfig, msg string) string {
	if cfg.Width == 0 {
		cfg.Width = 400
	}
	if cfg.Height == 0 {
		cfg.Height = 200
	}
	return fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d"><rect width="%d" height="%d" fill="#f5f5f5"/><text x="%d" y="%d" text-anchor="middle" fill="#999" font-size="14">%s</text></svg>`,
		cfg.Width, cfg.Height, cfg.Width, cfg.Height, cfg.Width/2, cfg.Height/2, escapeXML(msg))
}

func escapeXML(s string) string {
	s = strings.ReplaceAll(s, "&", "&amp;")
	s = strings.ReplaceAll(s, "<", "&lt;")
	s = strings.ReplaceAll(s, ">", "&gt;")
	s = strings.ReplaceAll(s, `"`, "&quot;")
	return s
}

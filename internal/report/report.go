package report

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/newspulse/newspulse/pkg/models"
	"github.com/newspulse/newspulse/pkg/utils"
)

// ════════════════════════════════════════════════════════════════════
// Report Generator
// ════════════════════════════════════════════════════════════════════

// ReportConfig controls report generation behaviour.
type ReportConfig struct {
	Title    string      // custom report title (optional)
	Author   string      // author line (default: "NewsPulse")
	ChartCfg ChartConfig // chart rendering config
}

// DefaultReportConfig returns sensible defaults.
func DefaultReportConfig() ReportConfig {
	return ReportConfig{
		Author:   "NewsPulse",
		ChartCfg: DefaultChartConfig(),
	}
}

// ════════════════════════════════════════════════════════════════════
// Report Data
// ════════════════════════════════════════════════════════════════════

// ReportData is the template model passed to the HTML template.
type ReportData struct {
	// Header
	Title       string
	Query       string
	WindowLabel string
	Provider    string
	Mode        string
	Author      string
	GeneratedAt string

	// Summary
	Total        int
	Positive     int
	Neutral      int
	Negative     int
	AverageScore string
	Overall      string
	OverallClass string // CSS class: positive, neutral, negative

	// Headlines
	Headlines []HeadlineRow

	// Charts (embedded SVG strings)
	BarChart   template.HTML
	GaugeChart template.HTML
}

// HeadlineRow is a flattened scored article for template rendering.
type HeadlineRow struct {
	Title     string
	URL       string
	Source    string
	Published string
	Sentiment string
	Badge     string // CSS class: positive, neutral, negative
	Score     string
}

// ════════════════════════════════════════════════════════════════════
// Generate Report
// ════════════════════════════════════════════════════════════════════

// GenerateHTML renders an HTML sentiment report from an analysis.
func GenerateHTML(a *models.Analysis, cfg ReportConfig) (string, error) {
	if a == nil {
		return "", fmt.Errorf("analysis is nil")
	}

	data := buildReportData(a, cfg)

	tmpl, err := template.New("report").Parse(ReportTemplate)
	if err != nil {
		return "", fmt.Errorf("parsing template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing template: %w", err)
	}

	return buf.String(), nil
}

// GenerateText renders a plain-text sentiment report (terminal / CLI
// friendly).
func GenerateText(a *models.Analysis, cfg ReportConfig) (string, error) {
	if a == nil {
		return "", fmt.Errorf("analysis is nil")
	}

	data := buildReportData(a, cfg)
	return renderTextReport(data), nil
}

// ════════════════════════════════════════════════════════════════════
// Internal: build template data
// ════════════════════════════════════════════════════════════════════

func buildReportData(a *models.Analysis, cfg ReportConfig) ReportData {
	now := time.Now().UTC()

	data := ReportData{
		Title:        cfg.Title,
		Query:        a.Query,
		WindowLabel:  utils.WindowLabel(a.Window),
		Provider:     a.Provider,
		Mode:         a.Mode,
		Author:       cfg.Author,
		GeneratedAt:  now.Format("02 Jan 2006, 15:04 MST"),
		Total:        a.Summary.Total,
		Positive:     a.Summary.Positive,
		Neutral:      a.Summary.Neutral,
		Negative:     a.Summary.Negative,
		AverageScore: fmt.Sprintf("%.2f", a.Summary.AverageScore),
		Overall:      labelTitle(a.Summary.Overall),
		OverallClass: string(a.Summary.Overall),
	}

	if data.Title == "" {
		data.Title = fmt.Sprintf("%s — Sentiment Report", a.Query)
	}
	if data.Mode == "" {
		data.Mode = models.AnalysisModeShallow
	}
	if data.Overall == "" {
		data.Overall = "Neutral"
		data.OverallClass = string(models.SentimentNeutral)
	}

	data.Headlines = make([]HeadlineRow, len(a.Articles))
	for i, art := range a.Articles {
		data.Headlines[i] = HeadlineRow{
			Title:     art.Title,
			URL:       art.URL,
			Source:    art.Source,
			Published: utils.RelativeTime(art.PublishedAt, now),
			Sentiment: labelTitle(art.Sentiment),
			Badge:     string(art.Sentiment),
			Score:     fmt.Sprintf("%.2f", art.Score),
		}
	}

	// Charts
	chartCfg := cfg.ChartCfg
	if chartCfg.Title == "" {
		chartCfg.Title = fmt.Sprintf("Sentiment: %s", a.Query)
	}
	data.BarChart = template.HTML(SentimentBarChart(a.Summary, chartCfg))
	data.GaugeChart = template.HTML(ScoreGauge(a.Summary.AverageScore, 180))

	return data
}

func labelTitle(l models.SentimentLabel) string {
	switch l {
	case models.SentimentPositive:
		return "Positive"
	case models.SentimentNegative:
		return "Negative"
	case models.SentimentNeutral:
		return "Neutral"
	default:
		return string(l)
	}
}

// ════════════════════════════════════════════════════════════════════
// Plain-text renderer
// ════════════════════════════════════════════════════════════════════

func renderTextReport(d ReportData) string {
	var sb strings.Builder
	line := strings.Repeat("═", 60)
	thinLine := strings.Repeat("─", 60)

	sb.WriteString("\n" + line + "\n")
	sb.WriteString(fmt.Sprintf("  %s\n", d.Title))
	sb.WriteString(fmt.Sprintf("  Generated: %s | %s\n", d.GeneratedAt, d.Author))
	sb.WriteString(line + "\n\n")

	sb.WriteString(fmt.Sprintf("  Query: %s | Window: %s | Mode: %s\n", d.Query, d.WindowLabel, d.Mode))
	if d.Provider != "" {
		sb.WriteString(fmt.Sprintf("  Source: %s\n", d.Provider))
	}
	sb.WriteString(thinLine + "\n")

	sb.WriteString(fmt.Sprintf("\n  ★ OVERALL: %s\n", strings.ToUpper(d.Overall)))
	sb.WriteString(fmt.Sprintf("  Articles: %d | Positive: %d | Neutral: %d | Negative: %d\n",
		d.Total, d.Positive, d.Neutral, d.Negative))
	sb.WriteString(fmt.Sprintf("  Average score: %s\n", d.AverageScore))
	sb.WriteString(thinLine + "\n")

	if len(d.Headlines) > 0 {
		sb.WriteString("\n  ■ HEADLINES\n")
		for i, h := range d.Headlines {
			sb.WriteString(fmt.Sprintf("  %2d. [%s] %s\n", i+1, strings.ToUpper(h.Sentiment), h.Title))
			meta := h.Source
			if h.Published != "" {
				meta += " | " + h.Published
			}
			sb.WriteString(fmt.Sprintf("      %s | score %s\n", meta, h.Score))
		}
		sb.WriteString(thinLine + "\n")
	}

	sb.WriteString("\n" + line + "\n")
	return sb.String()
}

// FormatDuration formats a duration for display.
func FormatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		return fmt.Sprintf("%.1fm", d.Minutes())
	}
	return fmt.Sprintf("%.1fh", d.Hours())
}
